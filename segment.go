package gosplice

import (
	"github.com/antchfx/xmlquery"
	"github.com/rs/zerolog"

	"github.com/ZaguanLabs/gosplice/xmltree"
)

// Segmenter assigns stable segment identifiers to translation containers and
// extracts their inner markup.
type Segmenter struct {
	classifier *Classifier
	idLength   int
	genID      IDFunc
	log        zerolog.Logger
}

// NewSegmenter creates a segmenter using the given classifier.
func NewSegmenter(classifier *Classifier, idLength int, genID IDFunc, log zerolog.Logger) *Segmenter {
	if genID == nil {
		genID = NewID
	}
	return &Segmenter{classifier: classifier, idLength: idLength, genID: genID, log: log}
}

// Segment mutates the document into a skeleton: every container gets a
// segment-id attribute (existing ids are reused, so repeated runs on an
// already-segmented skeleton are idempotent) and its inner markup is
// extracted as the segment's source content. Segments are returned in
// document order. Identifiers are assigned in a full pass before any markup
// is extracted, so nested containers appear in their parent's markup with
// their ids attached.
func (s *Segmenter) Segment(doc *xmltree.Document) []Segment {
	var containers []*xmlquery.Node
	for _, elem := range xmltree.Elements(doc.Root()) {
		if !s.classifier.IsContainer(elem) {
			continue
		}
		if _, ok := xmltree.SelectAttr(elem, SegIDAttr); !ok {
			xmltree.SetAttr(elem, SegIDAttr, s.genID(s.idLength))
		}
		containers = append(containers, elem)
	}

	segments := make([]Segment, 0, len(containers))
	for _, elem := range containers {
		id, _ := xmltree.SelectAttr(elem, SegIDAttr)
		segments = append(segments, Segment{ID: id, Source: xmltree.InnerXML(elem)})
	}

	s.log.Info().Int("containers", len(segments)).Msg("containers found")
	return segments
}
