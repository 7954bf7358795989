package xmltree

import (
	"testing"

	"github.com/antchfx/xmlquery"
)

func mustParse(t *testing.T, s string) *Document {
	t.Helper()
	doc, err := ParseString(s)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

func TestSetAttr_PreservesOrder(t *testing.T) {
	n := NewElement("p")
	SetAttr(n, "a", "1")
	SetAttr(n, "b", "2")
	SetAttr(n, "a", "updated")

	if got := OutputXML(n); got != `<p a="updated" b="2"/>` {
		t.Errorf("unexpected serialization: %s", got)
	}
}

func TestRemoveAttr(t *testing.T) {
	n := NewElement("p")
	SetAttr(n, "a", "1")
	SetAttr(n, "b", "2")
	RemoveAttr(n, "a")

	if _, ok := SelectAttr(n, "a"); ok {
		t.Error("attribute not removed")
	}
	if v, ok := SelectAttr(n, "b"); !ok || v != "2" {
		t.Error("other attribute disturbed")
	}
}

func TestText_SetText(t *testing.T) {
	doc := mustParse(t, `<p>lead<b>x</b>tail</p>`)
	p := doc.Root()

	if Text(p) != "lead" {
		t.Errorf("Text = %q", Text(p))
	}

	SetText(p, "replaced")
	if got := OutputXML(p); got != `<p>replaced<b>x</b>tail</p>` {
		t.Errorf("unexpected tree after SetText: %s", got)
	}

	SetText(p, "")
	if got := OutputXML(p); got != `<p><b>x</b>tail</p>` {
		t.Errorf("empty SetText should drop leading text: %s", got)
	}
}

func TestTail_SetTail(t *testing.T) {
	doc := mustParse(t, `<p><b>x</b>tail text</p>`)
	b := doc.Root().FirstChild

	if Tail(b) != "tail text" {
		t.Errorf("Tail = %q", Tail(b))
	}

	SetTail(b, "new tail")
	if got := OutputXML(doc.Root()); got != `<p><b>x</b>new tail</p>` {
		t.Errorf("unexpected tree after SetTail: %s", got)
	}
}

func TestInnerXML(t *testing.T) {
	doc := mustParse(t, `<p>Hello <b>bold</b> and <i>italic</i>!</p>`)
	if got := InnerXML(doc.Root()); got != `Hello <b>bold</b> and <i>italic</i>!` {
		t.Errorf("InnerXML = %s", got)
	}
}

func TestSetInnerXML_WellFormed(t *testing.T) {
	doc := mustParse(t, `<p>old <b>content</b></p>`)
	SetInnerXML(doc.Root(), `new <i>markup</i> here`)

	if got := OutputXML(doc.Root()); got != `<p>new <i>markup</i> here</p>` {
		t.Errorf("unexpected tree: %s", got)
	}
}

func TestSetInnerXML_MalformedFallsBackToText(t *testing.T) {
	doc := mustParse(t, `<p>old</p>`)
	SetInnerXML(doc.Root(), `broken <b markup`)

	p := doc.Root()
	if p.FirstChild == nil || p.FirstChild.Type != xmlquery.TextNode {
		t.Fatal("expected a literal text child")
	}
	if p.FirstChild.Data != `broken <b markup` {
		t.Errorf("literal text = %q", p.FirstChild.Data)
	}
}

func TestReplace_KeepsTail(t *testing.T) {
	doc := mustParse(t, `<p><old/>tail</p>`)
	old := doc.Root().FirstChild

	Replace(old, NewElement("new"))

	if got := OutputXML(doc.Root()); got != `<p><new/>tail</p>` {
		t.Errorf("unexpected tree: %s", got)
	}
}

func TestDetach(t *testing.T) {
	doc := mustParse(t, `<p><a/><b/><c/></p>`)
	b := doc.Root().FirstChild.NextSibling

	Detach(b)

	if got := OutputXML(doc.Root()); got != `<p><a/><c/></p>` {
		t.Errorf("unexpected tree: %s", got)
	}
	if b.Parent != nil || b.PrevSibling != nil || b.NextSibling != nil {
		t.Error("detached node still linked")
	}
}

func TestStructuralChildren(t *testing.T) {
	doc := mustParse(t, `<p>text<b/>more<!--c--><i/>end</p>`)
	kids := StructuralChildren(doc.Root())
	if len(kids) != 3 {
		t.Fatalf("expected 3 structural children, got %d", len(kids))
	}
	if kids[0].Data != "b" || kids[1].Type != xmlquery.CommentNode || kids[2].Data != "i" {
		t.Errorf("unexpected children: %v, %v, %v", kids[0].Data, kids[1].Type, kids[2].Data)
	}
}

func TestElements_DocumentOrder(t *testing.T) {
	doc := mustParse(t, `<a><b><c/></b><d/></a>`)
	var tags []string
	for _, e := range Elements(doc.Root()) {
		tags = append(tags, e.Data)
	}
	want := []string{"a", "b", "c", "d"}
	for i := range want {
		if i >= len(tags) || tags[i] != want[i] {
			t.Fatalf("unexpected order: %v", tags)
		}
	}
}

func TestParseFragment_MultipleRoots(t *testing.T) {
	wrapper, err := ParseFragment(`text <b>one</b> and <i>two</i>`)
	if err != nil {
		t.Fatalf("ParseFragment failed: %v", err)
	}
	if got := InnerXML(wrapper); got != `text <b>one</b> and <i>two</i>` {
		t.Errorf("fragment content = %s", got)
	}
}

func TestParseFragment_Empty(t *testing.T) {
	wrapper, err := ParseFragment(``)
	if err != nil {
		t.Fatalf("ParseFragment failed: %v", err)
	}
	if wrapper.FirstChild != nil {
		t.Error("expected no children for empty fragment")
	}
}

func TestNewInstruction(t *testing.T) {
	p := NewElement("p")
	AppendChild(p, NewInstruction("ditaot", "flag"))
	AppendChild(p, NewInstruction("break", ""))

	want := `<p><?ditaot flag?><?break?></p>`
	if got := OutputXML(p); got != want {
		t.Errorf("got %s\nwant %s", got, want)
	}
	if got := OutputXML(Clone(p)); got != want {
		t.Errorf("clone lost instruction content: %s", got)
	}
}

func TestClone_Deep(t *testing.T) {
	doc := mustParse(t, `<p a="1">text<b>x</b></p>`)
	c := Clone(doc.Root())

	SetAttr(c, "a", "2")
	SetText(c, "changed")

	if got := OutputXML(doc.Root()); got != `<p a="1">text<b>x</b></p>` {
		t.Errorf("original mutated: %s", got)
	}
}

func TestAttrEscaping(t *testing.T) {
	n := NewElement("dnt")
	SetAttr(n, "content", `<b>bold</b> "quoted" & more`)

	got := OutputXML(n)
	want := `<dnt content="&lt;b&gt;bold&lt;/b&gt; &quot;quoted&quot; &amp; more"/>`
	if got != want {
		t.Errorf("got %s\nwant %s", got, want)
	}
}
