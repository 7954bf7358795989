// Package xmltree wraps xmlquery nodes with the document-level state and
// mutation helpers the segmentation engine needs: prolog capture for
// byte-identical declarations, an attribute-order-preserving serializer,
// inner-markup extraction and replacement, and leading/trailing text access.
package xmltree

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Document is a parsed XML document. The underlying node tree is the
// xmlquery document node, so comments and processing instructions that are
// siblings of the root element are retained.
type Document struct {
	top *xmlquery.Node

	// Declaration is the raw `<?xml ...?>` prolog captured at parse time,
	// or empty when the source had none.
	Declaration string

	// Doctype is the raw `<!DOCTYPE ...>` declaration, or empty.
	Doctype string

	// Encoding is the encoding named in the declaration, defaulting to utf-8.
	Encoding string
}

var (
	declPattern     = regexp.MustCompile(`(?s)^\xEF?\xBB?\xBF?\s*(<\?xml\s.*?\?>)`)
	encodingPattern = regexp.MustCompile(`encoding=["']([^"']+)["']`)
)

// Parse parses a complete XML document.
func Parse(data []byte) (*Document, error) {
	top, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	d := &Document{top: top, Encoding: "utf-8"}

	if m := declPattern.FindSubmatch(data); m != nil {
		d.Declaration = string(m[1])
		if em := encodingPattern.FindSubmatch(m[1]); em != nil {
			d.Encoding = string(em[1])
		}
	}
	d.Doctype = scanDoctype(data)

	return d, nil
}

// ParseString parses a complete XML document from a string.
func ParseString(s string) (*Document, error) {
	return Parse([]byte(s))
}

// ParseFile reads and parses an XML file.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// scanDoctype extracts the raw DOCTYPE declaration from the document prolog.
// The internal subset (bracketed part) is honored when present.
func scanDoctype(data []byte) string {
	idx := bytes.Index(data, []byte("<!DOCTYPE"))
	if idx < 0 {
		return ""
	}
	depth := 0
	for i := idx; i < len(data); i++ {
		switch data[i] {
		case '[':
			depth++
		case ']':
			depth--
		case '>':
			if depth == 0 {
				return string(data[idx : i+1])
			}
		}
	}
	return ""
}

// Top returns the document node whose children are the prolog nodes and the
// root element.
func (d *Document) Top() *xmlquery.Node {
	return d.top
}

// Root returns the root element. It is looked up on every call because
// transformations may replace the root node in place.
func (d *Document) Root() *xmlquery.Node {
	for c := d.top.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}

// Clone returns a deep copy of the document. The copy shares no nodes with
// the original.
func (d *Document) Clone() *Document {
	return &Document{
		top:         Clone(d.top),
		Declaration: d.Declaration,
		Doctype:     d.Doctype,
		Encoding:    d.Encoding,
	}
}

// EnsureDeclaration synthesizes an XML declaration for the given encoding
// when the document does not already carry one. Passing an empty encoding
// keeps the document's own.
func (d *Document) EnsureDeclaration(encoding string) {
	if encoding != "" {
		d.Encoding = encoding
	}
	d.Declaration = fmt.Sprintf("<?xml version=\"1.0\" encoding=\"%s\"?>", d.Encoding)
}

// Bytes serializes the document: declaration, doctype, then every top-level
// node in source order. The declaration and doctype are reproduced exactly
// as captured at parse time.
func (d *Document) Bytes() []byte {
	var b strings.Builder
	if d.Declaration != "" {
		b.WriteString(d.Declaration)
		b.WriteByte('\n')
	}
	if d.Doctype != "" {
		b.WriteString(d.Doctype)
		b.WriteByte('\n')
	}
	for c := d.top.FirstChild; c != nil; c = c.NextSibling {
		// The parsed declaration and doctype nodes are emitted from the
		// raw strings above.
		if c.Type == xmlquery.DeclarationNode && c.Data == "xml" {
			continue
		}
		if c.Type == xmlquery.NotationNode {
			continue
		}
		serializeNode(&b, c)
	}
	b.WriteByte('\n')
	return []byte(b.String())
}

// String returns the serialized document.
func (d *Document) String() string {
	return string(d.Bytes())
}

// WriteFile serializes the document to a file.
func (d *Document) WriteFile(path string) error {
	return os.WriteFile(path, d.Bytes(), 0o644)
}
