package gosplice

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/rs/zerolog"

	"github.com/ZaguanLabs/gosplice/xmltree"
)

// Merger reconciles a translated minimal document against the original
// skeleton by structural alignment: segment ids give an exact join for
// container boundaries, and id-less children inside a merged subtree are
// aligned by tag order. This tolerates translators reordering inline markup
// within a sentence while the outer document skeleton never loses structure.
type Merger struct {
	log zerolog.Logger
}

// NewMerger creates a structural-alignment merger.
func NewMerger(log zerolog.Logger) *Merger {
	return &Merger{log: log}
}

// ReverseMinimal undoes the minimization in place: each tag is split on its
// first underscore into placeholder and segment id, the placeholder is
// mapped back to the original tag name, and the segment id is re-attached
// as an attribute. Placeholders missing from the mapping keep their name.
func (m *Merger) ReverseMinimal(minimal *xmltree.Document, mapping PlaceholderMapping) {
	for _, elem := range xmltree.Elements(minimal.Root()) {
		placeholder, segID, _ := strings.Cut(elem.Data, "_")
		if tag, ok := mapping.Lookup(placeholder); ok {
			elem.Data = tag
		} else {
			elem.Data = placeholder
			m.log.Warn().Str("placeholder", placeholder).Msg("placeholder not in mapping")
		}
		if segID != "" {
			xmltree.SetAttr(elem, SegIDAttr, segID)
		}
	}
}

// Merge copies translated content from a reconstructed minimal tree into the
// skeleton. For every translated node carrying a segment id, the unique
// skeleton node with the same id is located and the pair is merged
// recursively. Skeleton children with no translated counterpart are left
// untouched, so a translator dropping an inline element degrades gracefully.
func (m *Merger) Merge(translated, skeleton *xmltree.Document) error {
	for _, elem := range xmltree.Elements(translated.Root()) {
		segID, ok := xmltree.SelectAttr(elem, SegIDAttr)
		if !ok {
			continue
		}
		target, err := xmlquery.Query(skeleton.Top(), fmt.Sprintf("//*[@%s='%s']", SegIDAttr, segID))
		if err != nil {
			return fmt.Errorf("locating segment %s: %w", segID, err)
		}
		if target == nil {
			m.log.Error().Str("id", segID).Msg("segment id not found in skeleton")
			continue
		}
		m.mergePair(elem, target)
	}
	return nil
}

// mergePair merges one translated node into its skeleton counterpart.
// Skeleton attributes missing on the translated side are copied over
// (present translated attributes win); the skeleton adopts the translated
// node's leading text. Children are aligned by segment id when present,
// otherwise by first-available tag-order match, with a consumed set scoped
// to this recursion frame so the algorithm stays re-entrant per subtree.
func (m *Merger) mergePair(trans, skel *xmlquery.Node) {
	for name, value := range xmltree.Attrs(skel) {
		if _, ok := xmltree.SelectAttr(trans, name); !ok {
			xmltree.SetAttr(trans, name, value)
		}
	}

	xmltree.SetText(skel, xmltree.Text(trans))

	used := make(map[*xmlquery.Node]bool)
	for sChild := skel.FirstChild; sChild != nil; sChild = sChild.NextSibling {
		if sChild.Type != xmlquery.ElementNode {
			continue
		}

		var match *xmlquery.Node
		if sid, ok := xmltree.SelectAttr(sChild, SegIDAttr); ok {
			match = childBySegID(trans, sid)
		} else {
			match = childByTag(trans, sChild.Data, used)
			if match != nil {
				used[match] = true
			}
		}
		if match == nil {
			continue
		}
		m.mergePair(match, sChild)
		xmltree.SetTail(sChild, xmltree.Tail(match))
	}
}

// childBySegID returns the direct element child carrying the segment id.
func childBySegID(parent *xmlquery.Node, segID string) *xmlquery.Node {
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		if sid, ok := xmltree.SelectAttr(c, SegIDAttr); ok && sid == segID {
			return c
		}
	}
	return nil
}

// childByTag returns the first not-yet-consumed direct element child with
// the given tag.
func childByTag(parent *xmlquery.Node, tag string, used map[*xmlquery.Node]bool) *xmlquery.Node {
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == tag && !used[c] {
			return c
		}
	}
	return nil
}
