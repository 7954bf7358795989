package gosplice

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/rs/zerolog"

	"github.com/ZaguanLabs/gosplice/xmltree"
)

// Report is the result of one validation run. Details holds errors followed
// by warnings; warnings (untranslated segments) do not affect Passed.
type Report struct {
	Passed  bool
	Details []string
}

// Validator checks structural fidelity of a translated document against its
// source. Text content differences are expected (that is the translation);
// tag, attribute-set or child-count differences are structural defects.
type Validator struct {
	log zerolog.Logger
}

// NewValidator creates a validator.
func NewValidator(log zerolog.Logger) *Validator {
	return &Validator{log: log}
}

// ValidateFiles validates a source/target document pair on disk. The
// skeleton path may name a missing file, in which case the untranslated
// check is skipped. Missing inputs or parse failures short-circuit to a
// single failing report; they are never raised to the caller.
func (v *Validator) ValidateFiles(srcPath, tgtPath, skeletonPath string) *Report {
	v.log.Info().Str("source", srcPath).Str("target", tgtPath).Msg("start validate")

	if _, err := os.Stat(srcPath); err != nil {
		msg := fmt.Sprintf("Source XML not found: %s", srcPath)
		v.log.Error().Msg(msg)
		return &Report{Passed: false, Details: []string{msg}}
	}
	if _, err := os.Stat(tgtPath); err != nil {
		msg := fmt.Sprintf("Target XML not found: %s", tgtPath)
		v.log.Error().Msg(msg)
		return &Report{Passed: false, Details: []string{msg}}
	}

	src, err := xmltree.ParseFile(srcPath)
	if err != nil {
		v.log.Error().Err(err).Str("path", srcPath).Msg("validation parse error")
		return &Report{Passed: false, Details: []string{"Parse error"}}
	}
	tgt, err := xmltree.ParseFile(tgtPath)
	if err != nil {
		v.log.Error().Err(err).Str("path", tgtPath).Msg("validation parse error")
		return &Report{Passed: false, Details: []string{"Parse error"}}
	}

	var skeleton *xmltree.Document
	if skeletonPath != "" {
		if skel, err := xmltree.ParseFile(skeletonPath); err == nil {
			skeleton = skel
		}
	}

	return v.ValidateTrees(src, tgt, skeleton)
}

// ValidateTrees validates parsed documents. A nil skeleton skips the
// untranslated-segment check.
func (v *Validator) ValidateTrees(src, tgt, skeleton *xmltree.Document) *Report {
	var errs []string

	if src.Doctype != tgt.Doctype {
		errs = append(errs, "DOCTYPE changed")
	}

	v.walk(src.Root(), tgt.Root(), "", &errs)

	var warnings []string
	if skeleton != nil {
		warnings = v.collectUntranslated(src, tgt, skeleton)
	}

	for _, e := range errs {
		v.log.Error().Msg(e)
	}
	for _, w := range warnings {
		v.log.Warn().Msg(w)
	}

	return &Report{Passed: len(errs) == 0, Details: append(errs, warnings...)}
}

// walk compares corresponding nodes in lock-step. A tag mismatch stops
// descent into that branch; attribute-set and child-count mismatches are
// reported but descent continues over the overlapping child prefix.
func (v *Validator) walk(e1, e2 *xmlquery.Node, path string, errs *[]string) {
	switch {
	case e1.Type == xmlquery.ElementNode && e2.Type == xmlquery.ElementNode:
		if e1.Data != e2.Data {
			*errs = append(*errs, fmt.Sprintf("tag mismatch at %s/%s", path, e1.Data))
			return
		}
		if !reflect.DeepEqual(xmltree.Attrs(e1), xmltree.Attrs(e2)) {
			*errs = append(*errs, fmt.Sprintf("attrib mismatch at %s/%s", path, e1.Data))
		}
		children1 := xmltree.StructuralChildren(e1)
		children2 := xmltree.StructuralChildren(e2)
		if len(children1) != len(children2) {
			*errs = append(*errs, fmt.Sprintf("child count mismatch at %s/%s", path, e1.Data))
		}
		for i := 0; i < len(children1) && i < len(children2); i++ {
			v.walk(children1[i], children2[i], path+"/"+e1.Data, errs)
		}
	case e1.Type == xmlquery.CommentNode && e2.Type == xmlquery.CommentNode:
		if e1.Data != e2.Data {
			*errs = append(*errs, fmt.Sprintf("comment mismatch at %s", path))
		}
	case e1.Type == xmlquery.ProcessingInstruction && e2.Type == xmlquery.ProcessingInstruction:
		if e1.ProcInst.Target != e2.ProcInst.Target ||
			string(e1.ProcInst.Inst) != string(e2.ProcInst.Inst) {
			*errs = append(*errs, fmt.Sprintf("pi mismatch at %s", path))
		}
	}
}

// collectUntranslated flags segments whose inner markup is textually
// identical in source and target. The skeleton's segment annotations locate
// the corresponding positions in both trees via positional paths, so the
// check is independent of the structural comparison above.
func (v *Validator) collectUntranslated(src, tgt, skeleton *xmltree.Document) []string {
	var warnings []string
	for _, elem := range xmltree.Elements(skeleton.Root()) {
		segID, ok := xmltree.SelectAttr(elem, SegIDAttr)
		if !ok {
			continue
		}
		path := positionalPath(elem)
		srcMatch, err1 := xmlquery.Query(src.Top(), path)
		tgtMatch, err2 := xmlquery.Query(tgt.Top(), path)
		if err1 != nil || err2 != nil || srcMatch == nil || tgtMatch == nil {
			continue
		}
		sInner := strings.TrimSpace(xmltree.InnerXML(srcMatch))
		tInner := strings.TrimSpace(xmltree.InnerXML(tgtMatch))
		if sInner != "" && sInner == tInner {
			warnings = append(warnings, fmt.Sprintf("Untranslated segment %s at %s", segID, path))
		}
	}
	return warnings
}

// positionalPath builds an absolute positional xpath for an element, with an
// index only when the element has same-tag siblings.
func positionalPath(n *xmlquery.Node) string {
	var parts []string
	for cur := n; cur != nil && cur.Type == xmlquery.ElementNode; cur = cur.Parent {
		idx, total := 0, 0
		if cur.Parent != nil {
			for c := cur.Parent.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == xmlquery.ElementNode && c.Data == cur.Data {
					total++
					if c == cur {
						idx = total
					}
				}
			}
		}
		step := cur.Data
		if total > 1 {
			step = fmt.Sprintf("%s[%d]", cur.Data, idx)
		}
		parts = append(parts, step)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return "/" + strings.Join(parts, "/")
}
