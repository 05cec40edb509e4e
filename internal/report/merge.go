package report

import "strings"

// MergeExtraction folds one extraction result into the document. Section
// data arrives incrementally per category; keys merge shallowly except
// nested field maps, which merge one level deep so a re-extraction of a
// section keeps manually edited sibling fields. The extractor is
// inconsistent about the subject section's casing, so "SUBJECT" in any
// case normalizes to "Subject" before the merge.
func (d Document) MergeExtraction(fields map[string]any) {
	for key, val := range fields {
		norm := key
		if strings.EqualFold(key, "SUBJECT") {
			norm = "Subject"
		}
		if nested, ok := val.(map[string]any); ok {
			existing, _ := d[norm].(map[string]any)
			merged := make(map[string]any, len(existing)+len(nested))
			for k, v := range existing {
				merged[k] = v
			}
			for k, v := range nested {
				merged[k] = v
			}
			d[norm] = merged
			continue
		}
		d[norm] = val
	}
}
