package report

import "encoding/json"

// FieldPath locates a value inside a Document: [section, field] for a
// section-scoped field, [field] for a root-level subject field, or
// [saleName, field] for a sales-grid comparable.
type FieldPath []string

// NewFieldPath builds a path from its segments.
func NewFieldPath(segments ...string) FieldPath {
	return FieldPath(segments)
}

// Serialize returns the stable JSON-array encoding of the path. Two paths
// are equal iff their serialized forms are equal; the serialized form is
// the manual-validation map key.
func (p FieldPath) Serialize() string {
	b, err := json.Marshal([]string(p))
	if err != nil {
		// []string cannot fail to marshal; keep the signature simple.
		return ""
	}
	return string(b)
}

// ParseFieldPath decodes a serialized path back into its segments.
func ParseFieldPath(s string) (FieldPath, error) {
	var segments []string
	if err := json.Unmarshal([]byte(s), &segments); err != nil {
		return nil, err
	}
	return FieldPath(segments), nil
}

// Equal reports structural equality via the serialized form.
func (p FieldPath) Equal(other FieldPath) bool {
	return p.Serialize() == other.Serialize()
}

// Field returns the final segment, the field label.
func (p FieldPath) Field() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Section returns the leading segment for section-scoped paths, or "" for
// root-level paths.
func (p FieldPath) Section() string {
	if len(p) < 2 {
		return ""
	}
	return p[0]
}
