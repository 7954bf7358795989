package gosplice

import (
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/ZaguanLabs/gosplice/xmltree"
)

// Classifier decides which elements are translation containers.
type Classifier struct {
	inline map[string]bool
}

// NewClassifier creates a classifier for the given inline tag set.
func NewClassifier(inlineTags []string) *Classifier {
	return &Classifier{inline: tagSet(inlineTags)}
}

// IsContainer reports whether the element should be translated as a unit.
// A container must carry actual translatable text or inline-formatted runs:
// its tag is not inline, and it has non-blank leading text, or a child with
// non-blank tail text, or an inline element child. Pure structural wrappers
// and the inline spans themselves are never containers.
func (c *Classifier) IsContainer(n *xmlquery.Node) bool {
	if n == nil || n.Type != xmlquery.ElementNode {
		return false
	}
	if c.inline[n.Data] {
		return false
	}
	if strings.TrimSpace(xmltree.Text(n)) != "" {
		return true
	}
	for _, child := range xmltree.StructuralChildren(n) {
		if strings.TrimSpace(xmltree.Tail(child)) != "" {
			return true
		}
		if child.Type == xmlquery.ElementNode && c.inline[child.Data] {
			return true
		}
	}
	return false
}
