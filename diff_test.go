package gosplice

import "testing"

func TestDiffSegments(t *testing.T) {
	oldSegs := []Segment{
		{ID: "a", Source: "unchanged"},
		{ID: "b", Source: "removed"},
	}
	newSegs := []Segment{
		{ID: "a", Source: "unchanged"},
		{ID: "c", Source: "added"},
	}

	diff := DiffSegments(oldSegs, newSegs)
	stats := diff.Stats()

	if stats.Unchanged != 1 || stats.Added != 1 || stats.Removed != 1 || stats.Modified != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if !diff.HasChanges() {
		t.Error("expected changes")
	}
	needs := diff.NeedsTranslation()
	if len(needs) != 1 || needs[0].Source != "added" {
		t.Errorf("unexpected needs-translation set: %v", needs)
	}
}

func TestDiffSegments_NoChanges(t *testing.T) {
	segs := []Segment{{ID: "a", Source: "same"}}
	diff := DiffSegments(segs, segs)
	if diff.HasChanges() {
		t.Error("identical lists must report no changes")
	}
}

func TestDiffSegmentsByID_PairsModified(t *testing.T) {
	oldSegs := []Segment{
		{ID: "a", Source: "original wording"},
		{ID: "b", Source: "gone"},
	}
	newSegs := []Segment{
		{ID: "a", Source: "edited wording"},
		{ID: "c", Source: "brand new"},
	}

	diff := DiffSegmentsByID(oldSegs, newSegs)
	stats := diff.Stats()

	if stats.Modified != 1 {
		t.Fatalf("expected 1 modified, got %+v", stats)
	}
	if diff.Modified[0].Old.Source != "original wording" || diff.Modified[0].New.Source != "edited wording" {
		t.Errorf("unexpected pairing: %+v", diff.Modified[0])
	}
	if stats.Added != 1 || stats.Removed != 1 {
		t.Errorf("unpaired segments miscounted: %+v", stats)
	}

	needs := diff.NeedsTranslation()
	if len(needs) != 2 {
		t.Errorf("expected 2 segments needing translation, got %d", len(needs))
	}
}

func TestHashMarkup(t *testing.T) {
	if HashMarkup("hello") != HashMarkup("  hello  ") {
		t.Error("hash must be whitespace-insensitive at the edges")
	}
	if HashMarkup("hello") == HashMarkup("world") {
		t.Error("different markup must hash differently")
	}
	if len(HashMarkup("x")) != 64 {
		t.Errorf("unexpected hash length: %d", len(HashMarkup("x")))
	}
}

func TestMemoryKey(t *testing.T) {
	if MemoryKey("abc", "de-DE") != "abc:de-DE" {
		t.Errorf("unexpected key: %s", MemoryKey("abc", "de-DE"))
	}
	if MemoryKeyExtended("abc", "en-US", "de-DE", "dummy") != "abc:en-US:de-DE:dummy" {
		t.Errorf("unexpected extended key: %s", MemoryKeyExtended("abc", "en-US", "de-DE", "dummy"))
	}
}
