package gosplice

import (
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/rs/zerolog"

	"github.com/ZaguanLabs/gosplice/xmltree"
)

// Isolator extracts do-not-translate elements behind opaque placeholder
// nodes and restores them after reintegration.
type Isolator struct {
	dnt      map[string]bool
	idLength int
	genID    IDFunc
	log      zerolog.Logger
}

// NewIsolator creates an isolator for the configured do-not-translate tags.
func NewIsolator(dntTags []string, idLength int, genID IDFunc, log zerolog.Logger) *Isolator {
	if genID == nil {
		genID = NewID
	}
	return &Isolator{dnt: tagSet(dntTags), idLength: idLength, genID: genID, log: log}
}

// Isolate replaces every do-not-translate element, anywhere in the tree,
// with a <dnt> placeholder carrying a fresh identifier, the original tag
// name and the serialized inner markup. Trailing text stays in place. The
// returned mapping has one entry per isolated element; it is empty when no
// tags matched. Isolation must run before segmentation so that no DNT tag
// ever appears inside extracted segment markup.
func (iso *Isolator) Isolate(doc *xmltree.Document) DNTMapping {
	mapping := DNTMapping{}
	if len(iso.dnt) == 0 {
		return mapping
	}

	// Collect first: replacement while walking would skip siblings. Nested
	// matches are processed in document order, so an outer element's markup
	// is captured before any inner match is rewritten.
	var targets []*xmlquery.Node
	for _, elem := range xmltree.Elements(doc.Root()) {
		if iso.dnt[elem.Data] {
			targets = append(targets, elem)
		}
	}

	for _, elem := range targets {
		id := iso.genID(iso.idLength)
		content := xmltree.InnerXML(elem)

		placeholder := xmltree.NewElement(DNTTag)
		xmltree.SetAttr(placeholder, "id", id)
		xmltree.SetAttr(placeholder, "element", elem.Data)
		xmltree.SetAttr(placeholder, "content", content)

		if elem.Parent != nil {
			xmltree.Replace(elem, placeholder)
		}
		mapping[id] = DNTEntry{Element: elem.Data, Content: content}
	}

	if len(mapping) > 0 {
		iso.log.Info().Int("count", len(mapping)).Msg("DNT elements replaced")
	}
	return mapping
}

// Restore rebuilds the original elements for every <dnt> placeholder found
// in the tree. When the mapping is nil or lacks an identifier, the tag name
// and content attributes carried on the placeholder itself are used, so
// restoration degrades gracefully instead of failing.
func (iso *Isolator) Restore(doc *xmltree.Document, mapping DNTMapping) error {
	placeholders, err := xmlquery.QueryAll(doc.Top(), fmt.Sprintf("//%s[@id]", DNTTag))
	if err != nil {
		return fmt.Errorf("querying placeholders: %w", err)
	}

	for _, ph := range placeholders {
		id, _ := xmltree.SelectAttr(ph, "id")

		entry, ok := mapping[id]
		if !ok {
			element, _ := xmltree.SelectAttr(ph, "element")
			content, _ := xmltree.SelectAttr(ph, "content")
			entry = DNTEntry{Element: element, Content: content}
			iso.log.Debug().Str("id", id).Msg("DNT mapping entry missing, using placeholder fallback")
		}
		if entry.Element == "" {
			iso.log.Warn().Str("id", id).Msg("DNT placeholder has no element name, leaving as-is")
			continue
		}

		restored := xmltree.NewElement(entry.Element)
		xmltree.SetInnerXML(restored, entry.Content)
		xmltree.Replace(ph, restored)
	}
	return nil
}
