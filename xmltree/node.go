package xmltree

import (
	"encoding/xml"
	"errors"
	"strings"

	"github.com/antchfx/xmlquery"
)

// ErrEmptyFragment is returned by ParseFragment for input with no content.
var ErrEmptyFragment = errors.New("xmltree: empty fragment")

// NewElement creates a detached element node.
func NewElement(tag string) *xmlquery.Node {
	return &xmlquery.Node{Type: xmlquery.ElementNode, Data: tag}
}

// NewText creates a detached text node.
func NewText(text string) *xmlquery.Node {
	return &xmlquery.Node{Type: xmlquery.TextNode, Data: text}
}

// NewComment creates a detached comment node.
func NewComment(text string) *xmlquery.Node {
	return &xmlquery.Node{Type: xmlquery.CommentNode, Data: text}
}

// NewInstruction creates a detached processing-instruction node with the
// given target and instruction text.
func NewInstruction(target, inst string) *xmlquery.Node {
	n := &xmlquery.Node{Type: xmlquery.ProcessingInstruction, Data: target}
	n.ProcInst = &xmlquery.ProcInstData{Target: target, Inst: inst}
	return n
}

func isText(n *xmlquery.Node) bool {
	return n.Type == xmlquery.TextNode || n.Type == xmlquery.CharDataNode
}

// Detach removes a node from its parent and siblings. The node keeps its
// children and can be re-attached elsewhere.
func Detach(n *xmlquery.Node) {
	if n.Parent != nil {
		if n.Parent.FirstChild == n {
			n.Parent.FirstChild = n.NextSibling
		}
		if n.Parent.LastChild == n {
			n.Parent.LastChild = n.PrevSibling
		}
	}
	if n.PrevSibling != nil {
		n.PrevSibling.NextSibling = n.NextSibling
	}
	if n.NextSibling != nil {
		n.NextSibling.PrevSibling = n.PrevSibling
	}
	n.Parent, n.PrevSibling, n.NextSibling = nil, nil, nil
}

// AppendChild attaches n as the last child of parent.
func AppendChild(parent, n *xmlquery.Node) {
	n.Parent = parent
	n.PrevSibling = parent.LastChild
	n.NextSibling = nil
	if parent.LastChild != nil {
		parent.LastChild.NextSibling = n
	} else {
		parent.FirstChild = n
	}
	parent.LastChild = n
}

// PrependChild attaches n as the first child of parent.
func PrependChild(parent, n *xmlquery.Node) {
	n.Parent = parent
	n.PrevSibling = nil
	n.NextSibling = parent.FirstChild
	if parent.FirstChild != nil {
		parent.FirstChild.PrevSibling = n
	} else {
		parent.LastChild = n
	}
	parent.FirstChild = n
}

// InsertAfter places n immediately after ref under the same parent.
func InsertAfter(ref, n *xmlquery.Node) {
	n.Parent = ref.Parent
	n.PrevSibling = ref
	n.NextSibling = ref.NextSibling
	if ref.NextSibling != nil {
		ref.NextSibling.PrevSibling = n
	} else if ref.Parent != nil {
		ref.Parent.LastChild = n
	}
	ref.NextSibling = n
}

// Replace substitutes n for old at old's position. old is detached; its
// following siblings, in particular any trailing text, are untouched.
func Replace(old, n *xmlquery.Node) {
	n.Parent = old.Parent
	n.PrevSibling = old.PrevSibling
	n.NextSibling = old.NextSibling
	if old.PrevSibling != nil {
		old.PrevSibling.NextSibling = n
	} else if old.Parent != nil {
		old.Parent.FirstChild = n
	}
	if old.NextSibling != nil {
		old.NextSibling.PrevSibling = n
	} else if old.Parent != nil {
		old.Parent.LastChild = n
	}
	old.Parent, old.PrevSibling, old.NextSibling = nil, nil, nil
}

// Clone returns a detached deep copy of n.
func Clone(n *xmlquery.Node) *xmlquery.Node {
	c := &xmlquery.Node{
		Type:         n.Type,
		Data:         n.Data,
		Prefix:       n.Prefix,
		NamespaceURI: n.NamespaceURI,
		ProcInst:     n.ProcInst,
	}
	if len(n.Attr) > 0 {
		c.Attr = append([]xmlquery.Attr(nil), n.Attr...)
	}
	for k := n.FirstChild; k != nil; k = k.NextSibling {
		AppendChild(c, Clone(k))
	}
	return c
}

// SelectAttr returns the value of the named attribute and whether it exists.
func SelectAttr(n *xmlquery.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if attrName(a.Name) == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets or appends an attribute, preserving attribute order.
func SetAttr(n *xmlquery.Node, name, value string) {
	for i, a := range n.Attr {
		if attrName(a.Name) == name {
			n.Attr[i].Value = value
			return
		}
	}
	n.Attr = append(n.Attr, xmlquery.Attr{Name: xml.Name{Local: name}, Value: value})
}

// RemoveAttr deletes the named attribute if present.
func RemoveAttr(n *xmlquery.Node, name string) {
	for i, a := range n.Attr {
		if attrName(a.Name) == name {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// Attrs returns the node's attributes as a map for set comparisons.
func Attrs(n *xmlquery.Node) map[string]string {
	m := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		m[attrName(a.Name)] = a.Value
	}
	return m
}

// Text returns the node's leading text: the run of text nodes before its
// first non-text child.
func Text(n *xmlquery.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil && isText(c); c = c.NextSibling {
		b.WriteString(c.Data)
	}
	return b.String()
}

// SetText replaces the node's leading text run.
func SetText(n *xmlquery.Node, text string) {
	for n.FirstChild != nil && isText(n.FirstChild) {
		Detach(n.FirstChild)
	}
	if text != "" {
		PrependChild(n, NewText(text))
	}
}

// Tail returns the text run immediately following n under the same parent.
func Tail(n *xmlquery.Node) string {
	var b strings.Builder
	for s := n.NextSibling; s != nil && isText(s); s = s.NextSibling {
		b.WriteString(s.Data)
	}
	return b.String()
}

// SetTail replaces the text run immediately following n.
func SetTail(n *xmlquery.Node, text string) {
	for n.NextSibling != nil && isText(n.NextSibling) {
		Detach(n.NextSibling)
	}
	if text != "" {
		InsertAfter(n, NewText(text))
	}
}

// Elements returns n and every descendant element in document order.
func Elements(n *xmlquery.Node) []*xmlquery.Node {
	var out []*xmlquery.Node
	Walk(n, func(c *xmlquery.Node) bool {
		if c.Type == xmlquery.ElementNode {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the node's subtree.
func Walk(n *xmlquery.Node, fn func(*xmlquery.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, fn)
	}
}

// StructuralChildren returns the node's non-text children: elements,
// comments and processing instructions, in order.
func StructuralChildren(n *xmlquery.Node) []*xmlquery.Node {
	var out []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !isText(c) {
			out = append(out, c)
		}
	}
	return out
}

// InnerXML serializes everything inside n: leading text, child elements with
// their own subtrees and trailing text, comments and instructions. The
// node's own tag and attributes are excluded.
func InnerXML(n *xmlquery.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		serializeNode(&b, c)
	}
	return b.String()
}

// ParseFragment parses a markup fragment that may contain text and multiple
// top-level elements. The returned node is a synthetic wrapper element whose
// children are the fragment's nodes.
func ParseFragment(s string) (*xmlquery.Node, error) {
	top, err := xmlquery.Parse(strings.NewReader("<wrapper>" + s + "</wrapper>"))
	if err != nil {
		return nil, err
	}
	for c := top.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c, nil
		}
	}
	return nil, ErrEmptyFragment
}

// SetInnerXML replaces the node's content with the parsed fragment. A
// fragment that is not well-formed markup is inserted verbatim as literal
// text instead of failing.
func SetInnerXML(n *xmlquery.Node, s string) {
	for n.FirstChild != nil {
		Detach(n.FirstChild)
	}
	wrapper, err := ParseFragment(s)
	if err != nil {
		if s != "" {
			AppendChild(n, NewText(s))
		}
		return
	}
	for wrapper.FirstChild != nil {
		c := wrapper.FirstChild
		Detach(c)
		AppendChild(n, c)
	}
}
