package gosplice

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/ZaguanLabs/gosplice/xmltree"
)

// PlaceholderPair maps one generated placeholder to the original tag name.
type PlaceholderPair struct {
	Placeholder string
	Tag         string
}

// PlaceholderMapping is the ordered placeholder-to-tag listing produced by
// one minimization pass. Its length equals the number of distinct tags in
// the skeleton, not the number of elements.
type PlaceholderMapping []PlaceholderPair

// Lookup returns the original tag for a placeholder.
func (m PlaceholderMapping) Lookup(placeholder string) (string, bool) {
	for _, p := range m {
		if p.Placeholder == placeholder {
			return p.Tag, true
		}
	}
	return "", false
}

// Encode renders the mapping in its persisted form, one pair per line.
func (m PlaceholderMapping) Encode() []byte {
	var b strings.Builder
	for _, p := range m {
		fmt.Fprintf(&b, "%s -> %s\n", p.Placeholder, p.Tag)
	}
	return []byte(b.String())
}

// ParsePlaceholderMapping reads the persisted `placeholder -> tag` listing.
// Lines without the separator are ignored.
func ParsePlaceholderMapping(data []byte) PlaceholderMapping {
	var m PlaceholderMapping
	for _, line := range strings.Split(string(data), "\n") {
		placeholder, tag, ok := strings.Cut(strings.TrimSpace(line), " -> ")
		if !ok {
			continue
		}
		m = append(m, PlaceholderPair{Placeholder: placeholder, Tag: tag})
	}
	return m
}

// Minimizer produces vocabulary-reduced copies of skeleton documents for
// low-context translation agents.
type Minimizer struct{}

// Minimize returns a minimal copy of the skeleton: comments and processing
// instructions are stripped anywhere in the tree (root siblings included),
// every tag is replaced by a small stable placeholder (the same tag always
// gets the same placeholder, first seen wins), attributes are removed, and
// a node's segment id is re-encoded as a `_<id>` suffix on its placeholder
// tag. The skeleton itself is never modified; the work happens on a private
// deep copy. The returned mapping restores original tag names later.
func (Minimizer) Minimize(skeleton *xmltree.Document) (*xmltree.Document, PlaceholderMapping) {
	minimal := skeleton.Clone()
	minimal.Declaration = ""
	minimal.Doctype = ""

	var drop []*xmlquery.Node
	xmltree.Walk(minimal.Top(), func(n *xmlquery.Node) bool {
		switch n.Type {
		case xmlquery.CommentNode, xmlquery.ProcessingInstruction,
			xmlquery.DeclarationNode, xmlquery.NotationNode:
			drop = append(drop, n)
		}
		return true
	})
	for _, n := range drop {
		xmltree.Detach(n)
	}

	var mapping PlaceholderMapping
	tagToPlaceholder := make(map[string]string)
	counter := 1

	for _, elem := range xmltree.Elements(minimal.Root()) {
		placeholder, ok := tagToPlaceholder[elem.Data]
		if !ok {
			placeholder = fmt.Sprintf("t%d", counter)
			tagToPlaceholder[elem.Data] = placeholder
			mapping = append(mapping, PlaceholderPair{Placeholder: placeholder, Tag: elem.Data})
			counter++
		}

		segID, _ := xmltree.SelectAttr(elem, SegIDAttr)
		elem.Attr = nil
		elem.Prefix = ""
		if segID != "" {
			elem.Data = placeholder + "_" + segID
		} else {
			elem.Data = placeholder
		}
	}

	return minimal, mapping
}
