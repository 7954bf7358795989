package gosplice

import (
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/rs/zerolog"

	"github.com/ZaguanLabs/gosplice/xmltree"
)

// Reintegrator applies translated segment entries directly into a skeleton
// document.
type Reintegrator struct {
	log zerolog.Logger
}

// NewReintegrator creates a direct-path reintegrator.
func NewReintegrator(log zerolog.Logger) *Reintegrator {
	return &Reintegrator{log: log}
}

// Apply replaces each addressed container's inner markup with its translated
// fragment. Entries whose id has no matching container are logged and
// skipped; the rest of the batch still applies. Fragments that are not
// well-formed markup are inserted as literal text. The returned slice
// reports the skipped ids. Applying a permutation of the same entries
// yields an identical tree: every entry addresses a distinct container.
func (r *Reintegrator) Apply(skeleton *xmltree.Document, entries []TranslationEntry) []error {
	var skipped []error
	for _, entry := range entries {
		elem, err := findSegment(skeleton, entry.ID)
		if err != nil || elem == nil {
			r.log.Error().Str("id", entry.ID).Msg("segment id not found in skeleton")
			skipped = append(skipped, &SegmentNotFoundError{ID: entry.ID})
			continue
		}
		xmltree.SetInnerXML(elem, entry.Text)
	}
	return skipped
}

// findSegment locates the unique container carrying the given segment id.
func findSegment(doc *xmltree.Document, id string) (*xmlquery.Node, error) {
	return xmlquery.Query(doc.Top(), fmt.Sprintf("//*[@%s='%s']", SegIDAttr, id))
}

// StripSegmentIDs removes every segment-id attribute from the tree. The ids
// are a processing artifact, not part of the output schema.
func StripSegmentIDs(doc *xmltree.Document) {
	for _, elem := range xmltree.Elements(doc.Root()) {
		xmltree.RemoveAttr(elem, SegIDAttr)
	}
}
