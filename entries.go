package gosplice

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// DecodeTranslations normalizes the accepted wire shapes into canonical
// entries. Records may be `{"id": "xyz", "<target-lang>": "..."}` or the
// single-pair form `{"xyz": "..."}`; a bare record is treated as a
// one-element sequence. When a keyed record does not carry the target
// language, the first non-id value is used.
func DecodeTranslations(data []byte, targetLang string) ([]TranslationEntry, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid translations JSON")
	}

	parsed := gjson.ParseBytes(data)
	var records []gjson.Result
	switch {
	case parsed.IsArray():
		records = parsed.Array()
	case parsed.IsObject():
		records = []gjson.Result{parsed}
	default:
		return nil, fmt.Errorf("translations JSON must be an object or an array of objects")
	}

	entries := make([]TranslationEntry, 0, len(records))
	for _, rec := range records {
		if !rec.IsObject() {
			return nil, fmt.Errorf("translation record must be an object, got %s", rec.Type)
		}
		entry, err := decodeRecord(rec, targetLang)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func decodeRecord(rec gjson.Result, targetLang string) (TranslationEntry, error) {
	if id := rec.Get("id"); id.Exists() {
		entry := TranslationEntry{ID: id.String()}
		if v := rec.Get(gjsonEscape(targetLang)); v.Exists() {
			entry.Text = v.String()
			return entry, nil
		}
		// Fall back to the first non-id value.
		rec.ForEach(func(key, value gjson.Result) bool {
			if key.String() == "id" {
				return true
			}
			entry.Text = value.String()
			return false
		})
		return entry, nil
	}

	var entry TranslationEntry
	found := false
	rec.ForEach(func(key, value gjson.Result) bool {
		entry = TranslationEntry{ID: key.String(), Text: value.String()}
		found = true
		return false
	})
	if !found {
		return TranslationEntry{}, fmt.Errorf("translation record has no keys")
	}
	return entry, nil
}

// gjsonEscape protects language tags containing gjson path syntax (dots in
// tags like "de.CH" would otherwise be treated as path separators).
func gjsonEscape(key string) string {
	r := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)
	return r.Replace(key)
}

// DecodeSegments reads a persisted segments listing. Each record carries an
// "id" and the markup keyed by the source language; when the language key is
// absent the first non-id value is used.
func DecodeSegments(data []byte, sourceLang string) ([]Segment, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid segments JSON")
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("segments JSON must be an array")
	}

	var segments []Segment
	for _, rec := range parsed.Array() {
		id := rec.Get("id")
		if !id.Exists() {
			return nil, fmt.Errorf("segment record missing id")
		}
		seg := Segment{ID: id.String()}
		if v := rec.Get(gjsonEscape(sourceLang)); v.Exists() {
			seg.Source = v.String()
		} else {
			rec.ForEach(func(key, value gjson.Result) bool {
				if key.String() == "id" {
					return true
				}
				seg.Source = value.String()
				return false
			})
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

// EncodeSegments renders segments in their persisted form: an ordered
// sequence of `{"id": ..., "<source-lang>": markup}` records.
func EncodeSegments(segments []Segment, sourceLang string) []byte {
	var b strings.Builder
	b.WriteString("[\n")
	for i, seg := range segments {
		fmt.Fprintf(&b, "  {\n    %s: %s,\n    %s: %s\n  }",
			jsonString("id"), jsonString(seg.ID),
			jsonString(sourceLang), jsonString(seg.Source))
		if i < len(segments)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("]\n")
	return []byte(b.String())
}

// EncodeTranslations renders entries as `{"id": ..., "<target-lang>": text}`
// records, the shape produced for dummy translations and by the provider
// batch step.
func EncodeTranslations(entries []TranslationEntry, targetLang string) []byte {
	var b strings.Builder
	b.WriteString("[\n")
	for i, entry := range entries {
		fmt.Fprintf(&b, "  {\n    %s: %s,\n    %s: %s\n  }",
			jsonString("id"), jsonString(entry.ID),
			jsonString(targetLang), jsonString(entry.Text))
		if i < len(entries)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("]\n")
	return []byte(b.String())
}

// jsonString marshals one string value. Key order in the records is fixed
// by hand because the language key is dynamic.
func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
