package gosplice

import (
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"

	"github.com/ZaguanLabs/gosplice/xmltree"
)

func TestMinimizer_Minimize(t *testing.T) {
	doc := parseDoc(t, `<topic id="t1"><p data-seg-id="aaa">one</p><p data-seg-id="bbb">two</p></topic>`)

	minimal, mapping := Minimizer{}.Minimize(doc)

	// Same tag always gets the same placeholder; the mapping has one entry
	// per distinct tag
	if len(mapping) != 2 {
		t.Fatalf("expected 2 mapping entries, got %d: %v", len(mapping), mapping)
	}
	if mapping[0].Tag != "topic" || mapping[0].Placeholder != "t1" {
		t.Errorf("first pair = %+v", mapping[0])
	}
	if mapping[1].Tag != "p" || mapping[1].Placeholder != "t2" {
		t.Errorf("second pair = %+v", mapping[1])
	}

	out := minimal.String()
	if !strings.Contains(out, "<t2_aaa>one</t2_aaa>") || !strings.Contains(out, "<t2_bbb>two</t2_bbb>") {
		t.Errorf("segment ids not encoded in tag names:\n%s", out)
	}
	if strings.Contains(out, `id="t1"`) {
		t.Errorf("attributes not stripped:\n%s", out)
	}
}

func TestMinimizer_SkeletonUntouched(t *testing.T) {
	doc := parseDoc(t, `<topic id="t1"><p data-seg-id="aaa">one</p></topic>`)
	before := doc.String()

	Minimizer{}.Minimize(doc)

	if doc.String() != before {
		t.Error("minimization modified the skeleton")
	}
}

func TestMinimizer_StripsCommentsAndInstructions(t *testing.T) {
	doc := parseDoc(t, `<?xml version="1.0"?><topic><!--note--><p>x<!--inline--></p><?pi data?></topic>`)

	minimal, _ := Minimizer{}.Minimize(doc)
	out := minimal.String()

	if strings.Contains(out, "note") || strings.Contains(out, "inline") || strings.Contains(out, "pi data") {
		t.Errorf("comments or instructions survived:\n%s", out)
	}
	if minimal.Declaration != "" || minimal.Doctype != "" {
		t.Error("minimal document should carry no prolog")
	}

	// Stripped from the tree itself, not just absent from the output
	leftover := 0
	xmltree.Walk(minimal.Top(), func(n *xmlquery.Node) bool {
		switch n.Type {
		case xmlquery.CommentNode, xmlquery.ProcessingInstruction:
			leftover++
		}
		return true
	})
	if leftover != 0 {
		t.Errorf("%d comment or instruction nodes left in the tree", leftover)
	}
}

func TestMinimizer_PlaceholderStability(t *testing.T) {
	doc := parseDoc(t, `<a><b/><c/><b/><c/><b/></a>`)

	_, mapping := Minimizer{}.Minimize(doc)
	if len(mapping) != 3 {
		t.Fatalf("expected 3 distinct tags, got %d", len(mapping))
	}

	// First-seen order: a, b, c
	want := []string{"a", "b", "c"}
	for i, pair := range mapping {
		if pair.Tag != want[i] {
			t.Errorf("pair %d = %+v, want tag %s", i, pair, want[i])
		}
	}
}

func TestPlaceholderMapping_EncodeParse(t *testing.T) {
	m := PlaceholderMapping{
		{Placeholder: "t1", Tag: "topic"},
		{Placeholder: "t2", Tag: "p"},
	}

	parsed := ParsePlaceholderMapping(m.Encode())
	if len(parsed) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(parsed))
	}
	if tag, ok := parsed.Lookup("t2"); !ok || tag != "p" {
		t.Errorf("Lookup(t2) = %q, %v", tag, ok)
	}
	if _, ok := parsed.Lookup("t9"); ok {
		t.Error("unknown placeholder should not resolve")
	}
}

func TestParsePlaceholderMapping_IgnoresJunkLines(t *testing.T) {
	data := []byte("t1 -> topic\n\nnot a mapping line\nt2 -> p\n")
	parsed := ParsePlaceholderMapping(data)
	if len(parsed) != 2 {
		t.Errorf("expected 2 pairs, got %d: %v", len(parsed), parsed)
	}
}
