// Package gosplice prepares XML documents for external translation and
// splices the translated content back in.
//
// A source document is decomposed into a structural skeleton (all markup
// retained, translation containers tagged with stable segment identifiers),
// an ordered list of translation segments, and a vocabulary-reduced minimal
// document for low-context translation agents. Elements configured as
// do-not-translate are isolated behind reversible placeholders before
// segmentation. After translation, content is merged back either directly
// from {id, markup} entries or by structural alignment of a translated
// minimal document against the skeleton, and the result is checked for
// structural fidelity against the source.
//
// Basic usage:
//
//	import (
//	    "github.com/ZaguanLabs/gosplice"
//	)
//
//	func main() {
//	    eng := gosplice.NewEngine(gosplice.DefaultConfig(),
//	        gosplice.WithIntermediateDir("work"),
//	        gosplice.WithTargetDir("out"),
//	        gosplice.WithLanguages("en-US", "de-DE"),
//	    )
//
//	    res, err := eng.Parse("topic.xml")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    // ... translate res.SegmentsPath externally ...
//	    out, err := eng.Integrate("topic.de-DE_translated.json", "", "")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    report := eng.Validate("topic.xml", out)
//	    fmt.Println(report.Passed)
//	}
package gosplice
