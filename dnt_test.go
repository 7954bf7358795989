package gosplice

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ZaguanLabs/gosplice/xmltree"
)

func newTestIsolator(tags ...string) *Isolator {
	return NewIsolator(tags, 12, testIDs(), zerolog.Nop())
}

func TestIsolator_Isolate(t *testing.T) {
	doc := parseDoc(t, `<p>Press <uicontrol>OK</uicontrol> to continue</p>`)

	mapping := newTestIsolator("uicontrol").Isolate(doc)
	if len(mapping) != 1 {
		t.Fatalf("expected 1 mapping entry, got %d", len(mapping))
	}

	out := doc.String()
	if strings.Contains(out, "<uicontrol>") {
		t.Error("uicontrol not replaced")
	}
	if !strings.Contains(out, `element="uicontrol"`) || !strings.Contains(out, `content="OK"`) {
		t.Errorf("placeholder attributes missing:\n%s", out)
	}
	// Tail stays in place
	if !strings.Contains(out, "/> to continue") {
		t.Errorf("trailing text lost:\n%s", out)
	}

	for _, entry := range mapping {
		if entry.Element != "uicontrol" || entry.Content != "OK" {
			t.Errorf("unexpected mapping entry: %+v", entry)
		}
	}
}

func TestIsolator_IsolateThenRestore(t *testing.T) {
	doc := parseDoc(t, `<p>Run <codeblock>make &amp; test</codeblock> now</p>`)
	iso := newTestIsolator("codeblock")

	mapping := iso.Isolate(doc)
	if err := iso.Restore(doc, mapping); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if got := xmltree.OutputXML(doc.Root()); got != `<p>Run <codeblock>make &amp; test</codeblock> now</p>` {
		t.Errorf("round trip lost content: %s", got)
	}
}

func TestIsolator_RestoreWithoutMapping(t *testing.T) {
	doc := parseDoc(t, `<p><codeblock>x = 1</codeblock></p>`)
	iso := newTestIsolator("codeblock")

	iso.Isolate(doc)
	// Restoration falls back to the attributes on the placeholder itself
	if err := iso.Restore(doc, nil); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if got := xmltree.OutputXML(doc.Root()); got != `<p><codeblock>x = 1</codeblock></p>` {
		t.Errorf("fallback restore failed: %s", got)
	}
}

func TestIsolator_NestedMatches(t *testing.T) {
	doc := parseDoc(t, `<p><codeblock>outer <codeph>inner</codeph></codeblock></p>`)
	iso := newTestIsolator("codeblock", "codeph")

	mapping := iso.Isolate(doc)
	if len(mapping) != 2 {
		t.Fatalf("expected 2 mapping entries, got %d", len(mapping))
	}

	// The outer element's content was captured before the inner match was
	// rewritten
	foundOuter := false
	for _, entry := range mapping {
		if entry.Element == "codeblock" {
			foundOuter = true
			if entry.Content != `outer <codeph>inner</codeph>` {
				t.Errorf("outer content = %q", entry.Content)
			}
		}
	}
	if !foundOuter {
		t.Fatal("outer element missing from mapping")
	}
}

func TestIsolator_NestedRoundTrip(t *testing.T) {
	original := `<p>See <codeblock>run <codeph>go</codeph> now</codeblock>.</p>`
	doc := parseDoc(t, original)
	iso := newTestIsolator("codeblock", "codeph")

	mapping := iso.Isolate(doc)
	if err := iso.Restore(doc, mapping); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if got := xmltree.OutputXML(doc.Root()); got != original {
		t.Errorf("nested round trip:\ngot  %s\nwant %s", got, original)
	}
}

func TestIsolator_NoTagsConfigured(t *testing.T) {
	doc := parseDoc(t, `<p><codeblock>x</codeblock></p>`)

	mapping := newTestIsolator().Isolate(doc)
	if len(mapping) != 0 {
		t.Errorf("expected empty mapping, got %d entries", len(mapping))
	}
	if !strings.Contains(doc.String(), "<codeblock>") {
		t.Error("document modified with no tags configured")
	}
}

func TestIsolator_SegmentationSkipsPlaceholders(t *testing.T) {
	doc := parseDoc(t, `<p>Press <uicontrol>OK</uicontrol> now</p>`)
	iso := newTestIsolator("uicontrol")
	iso.Isolate(doc)

	segments := newTestSegmenter().Segment(doc)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if strings.Contains(segments[0].Source, "<uicontrol") {
		t.Errorf("DNT tag leaked into segment markup: %q", segments[0].Source)
	}
	if !strings.Contains(segments[0].Source, "<"+DNTTag+" ") {
		t.Errorf("placeholder missing from segment markup: %q", segments[0].Source)
	}
}
