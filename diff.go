package gosplice

// DiffResult represents the difference between two segment lists, used for
// incremental retranslation: only added or modified segments need to be sent
// out again.
type DiffResult struct {
	// Added contains segments whose markup is new.
	Added []Segment

	// Removed contains segments whose markup no longer appears.
	Removed []Segment

	// Unchanged contains segments present in both versions.
	Unchanged []Segment

	// Modified pairs segments whose id survived but whose markup changed.
	Modified []ModifiedSegment
}

// ModifiedSegment is a segment whose markup changed between versions.
type ModifiedSegment struct {
	Old Segment
	New Segment
}

// DiffStats contains summary statistics for a diff.
type DiffStats struct {
	Added     int
	Removed   int
	Unchanged int
	Modified  int
}

// Stats returns summary statistics for the diff.
func (d *DiffResult) Stats() DiffStats {
	return DiffStats{
		Added:     len(d.Added),
		Removed:   len(d.Removed),
		Unchanged: len(d.Unchanged),
		Modified:  len(d.Modified),
	}
}

// HasChanges returns true if there are any differences.
func (d *DiffResult) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Modified) > 0
}

// NeedsTranslation returns the segments that need to be translated: new
// segments plus the new side of modified ones.
func (d *DiffResult) NeedsTranslation() []Segment {
	result := make([]Segment, 0, len(d.Added)+len(d.Modified))
	result = append(result, d.Added...)
	for _, m := range d.Modified {
		result = append(result, m.New)
	}
	return result
}

// DiffSegments compares two segment lists by markup hash.
func DiffSegments(oldSegments, newSegments []Segment) *DiffResult {
	result := &DiffResult{}

	oldByHash := make(map[string]Segment)
	newByHash := make(map[string]Segment)
	for _, seg := range oldSegments {
		oldByHash[HashMarkup(seg.Source)] = seg
	}
	for _, seg := range newSegments {
		newByHash[HashMarkup(seg.Source)] = seg
	}

	for _, seg := range oldSegments {
		if _, exists := newByHash[HashMarkup(seg.Source)]; exists {
			result.Unchanged = append(result.Unchanged, seg)
		} else {
			result.Removed = append(result.Removed, seg)
		}
	}
	for _, seg := range newSegments {
		if _, exists := oldByHash[HashMarkup(seg.Source)]; !exists {
			result.Added = append(result.Added, seg)
		}
	}

	return result
}

// DiffSegmentsByID refines DiffSegments by pairing removed and added
// segments that share an identifier. Segment ids are stable across
// re-parses of the same skeleton, so a shared id with different markup
// means the source content was edited in place.
func DiffSegmentsByID(oldSegments, newSegments []Segment) *DiffResult {
	result := DiffSegments(oldSegments, newSegments)

	if len(result.Added) == 0 || len(result.Removed) == 0 {
		return result
	}

	addedByID := make(map[string]int, len(result.Added))
	for i, seg := range result.Added {
		addedByID[seg.ID] = i
	}

	matchedAdded := make(map[int]bool)
	var stillRemoved []Segment
	for _, removed := range result.Removed {
		if i, ok := addedByID[removed.ID]; ok && !matchedAdded[i] {
			result.Modified = append(result.Modified, ModifiedSegment{Old: removed, New: result.Added[i]})
			matchedAdded[i] = true
			continue
		}
		stillRemoved = append(stillRemoved, removed)
	}
	result.Removed = stillRemoved

	var stillAdded []Segment
	for i, seg := range result.Added {
		if !matchedAdded[i] {
			stillAdded = append(stillAdded, seg)
		}
	}
	result.Added = stillAdded

	return result
}
