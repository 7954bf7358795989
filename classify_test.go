package gosplice

import (
	"testing"

	"github.com/ZaguanLabs/gosplice/xmltree"
)

func TestClassifier_IsContainer(t *testing.T) {
	c := NewClassifier(DefaultInlineTags)

	tests := []struct {
		name string
		xml  string
		want bool
	}{
		{"leading text", `<p>Some text</p>`, true},
		{"child tail text", `<p><b>bold</b> tail</p>`, true},
		{"inline child only", `<p><b>bold</b></p>`, true},
		{"structural wrapper", `<body><p>x</p></body>`, false},
		{"empty element", `<p/>`, false},
		{"whitespace only", `<p>   </p>`, false},
		{"whitespace around block child", `<body> <p>x</p> </body>`, false},
		{"block child with text after", `<body><p>x</p>after</body>`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := xmltree.ParseString(tt.xml)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := c.IsContainer(doc.Root()); got != tt.want {
				t.Errorf("IsContainer(%s) = %v, want %v", tt.xml, got, tt.want)
			}
		})
	}
}

func TestClassifier_InlineTagNeverContainer(t *testing.T) {
	c := NewClassifier(DefaultInlineTags)

	doc, err := xmltree.ParseString(`<b>bold text</b>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.IsContainer(doc.Root()) {
		t.Error("inline tag must not be a container even with text")
	}
}

func TestClassifier_NilAndNonElement(t *testing.T) {
	c := NewClassifier(nil)
	if c.IsContainer(nil) {
		t.Error("nil must not be a container")
	}

	doc, err := xmltree.ParseString(`<p>text</p>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.IsContainer(doc.Root().FirstChild) {
		t.Error("text node must not be a container")
	}
}

func TestClassifier_CustomInlineSet(t *testing.T) {
	c := NewClassifier([]string{"em"})

	doc, err := xmltree.ParseString(`<p><em>x</em></p>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !c.IsContainer(doc.Root()) {
		t.Error("parent of custom inline tag should be a container")
	}

	doc2, err := xmltree.ParseString(`<p><b>x</b></p>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	// b is not inline in this configuration, and p has no text
	if c.IsContainer(doc2.Root()) {
		t.Error("p with only non-inline children and no text is not a container")
	}
}
