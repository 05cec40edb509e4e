package report

import (
	"encoding/json"
	"strings"
)

// Document is the full appraisal record: a mapping from section key
// (e.g. "CONTRACT", "SITE", "COMPARABLE SALE #1") to a field map, plus
// root-level subject fields stored directly under their label. Field
// values are strings or one-level nested objects; numeric-looking values
// are kept as formatted strings (e.g. "$1,234", "12%") and parsed on
// demand by validation rules.
type Document map[string]any

// Section returns the named section's field map, or nil when the key is
// absent or holds a root-level scalar.
func (d Document) Section(key string) map[string]any {
	if d == nil {
		return nil
	}
	m, _ := d[key].(map[string]any)
	return m
}

// Lookup walks the path and returns the raw value.
func (d Document) Lookup(path FieldPath) (any, bool) {
	var cur any = map[string]any(d)
	for _, seg := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			if dm, ok2 := cur.(Document); ok2 {
				m = map[string]any(dm)
			} else {
				return nil, false
			}
		}
		v, ok := m[seg]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// Text returns the value at path rendered as a string. Nested objects are
// JSON-encoded, mirroring how the review surface displays them. Missing
// values render as "".
func (d Document) Text(segments ...string) string {
	v, ok := d.Lookup(FieldPath(segments))
	if !ok || v == nil {
		return ""
	}
	return Stringify(v)
}

// Field is shorthand for the trimmed text of a section-scoped field.
func (d Document) Field(section, field string) string {
	return strings.TrimSpace(d.Text(section, field))
}

// Root is shorthand for the trimmed text of a root-level subject field.
func (d Document) Root(field string) string {
	return strings.TrimSpace(d.Text(field))
}

// Set writes a value at path, creating intermediate field maps as needed.
// Existing scalar segments along the way are replaced by maps.
func (d Document) Set(path FieldPath, value any) {
	if len(path) == 0 {
		return
	}
	cur := map[string]any(d)
	for _, seg := range path[:len(path)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[seg] = next
		}
		cur = next
	}
	cur[path[len(path)-1]] = value
}

// Stringify renders a field value the way the review surface shows it:
// strings pass through, nested objects become their JSON encoding.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
