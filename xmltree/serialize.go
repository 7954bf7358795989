package xmltree

import (
	"encoding/xml"
	"strings"

	"github.com/antchfx/xmlquery"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

func attrName(name xml.Name) string {
	if name.Space != "" {
		return name.Space + ":" + name.Local
	}
	return name.Local
}

func elementName(n *xmlquery.Node) string {
	if n.Prefix != "" {
		return n.Prefix + ":" + n.Data
	}
	return n.Data
}

// OutputXML serializes the node and its subtree.
func OutputXML(n *xmlquery.Node) string {
	var b strings.Builder
	serializeNode(&b, n)
	return b.String()
}

func serializeNode(b *strings.Builder, n *xmlquery.Node) {
	switch n.Type {
	case xmlquery.TextNode:
		b.WriteString(textEscaper.Replace(n.Data))
	case xmlquery.CharDataNode:
		b.WriteString("<![CDATA[")
		b.WriteString(n.Data)
		b.WriteString("]]>")
	case xmlquery.CommentNode:
		b.WriteString("<!--")
		b.WriteString(n.Data)
		b.WriteString("-->")
	case xmlquery.DeclarationNode:
		b.WriteString("<?")
		b.WriteString(n.Data)
		writeAttrs(b, n)
		b.WriteString("?>")
	case xmlquery.ProcessingInstruction:
		// The raw instruction text is written back verbatim.
		b.WriteString("<?")
		b.WriteString(n.ProcInst.Target)
		if inst := string(n.ProcInst.Inst); inst != "" {
			b.WriteByte(' ')
			b.WriteString(inst)
		}
		b.WriteString("?>")
	case xmlquery.NotationNode:
		b.WriteString("<!")
		b.WriteString(n.Data)
		b.WriteString(">")
	case xmlquery.ElementNode:
		name := elementName(n)
		b.WriteByte('<')
		b.WriteString(name)
		writeAttrs(b, n)
		if n.FirstChild == nil {
			b.WriteString("/>")
			return
		}
		b.WriteByte('>')
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			serializeNode(b, c)
		}
		b.WriteString("</")
		b.WriteString(name)
		b.WriteByte('>')
	case xmlquery.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			serializeNode(b, c)
		}
	}
}

func writeAttrs(b *strings.Builder, n *xmlquery.Node) {
	for _, a := range n.Attr {
		b.WriteByte(' ')
		b.WriteString(attrName(a.Name))
		b.WriteString(`="`)
		b.WriteString(attrEscaper.Replace(a.Value))
		b.WriteByte('"')
	}
}
