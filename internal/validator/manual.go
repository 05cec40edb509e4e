package validator

import "apprev/internal/report"

// ManualStore records the field paths a reviewer has signed off on
// despite a failing rule, keyed by serialized path. Entries survive edits
// to the same path until toggled off or the store is cleared for a new
// source document. Single-writer; callers wanting cross-request use must
// hold one store per review session.
type ManualStore struct {
	entries map[string]bool
}

// NewManualStore creates an empty store.
func NewManualStore() *ManualStore {
	return &ManualStore{entries: make(map[string]bool)}
}

// Toggle flips a path's override: present becomes absent and vice versa.
func (m *ManualStore) Toggle(path report.FieldPath) {
	key := path.Serialize()
	if m.entries[key] {
		delete(m.entries, key)
		return
	}
	m.entries[key] = true
}

// IsValidated reports whether a path carries a manual override.
func (m *ManualStore) IsValidated(path report.FieldPath) bool {
	return m.entries[path.Serialize()]
}

// Clear drops every override. Invoked when a new source document loads.
func (m *ManualStore) Clear() {
	m.entries = make(map[string]bool)
}

// Keys returns the serialized paths currently overridden, for persistence.
func (m *ManualStore) Keys() []string {
	out := make([]string, 0, len(m.entries))
	for k := range m.entries {
		out = append(out, k)
	}
	return out
}

// Load seeds the store from persisted serialized paths.
func (m *ManualStore) Load(keys []string) {
	for _, k := range keys {
		m.entries[k] = true
	}
}

// Len returns the number of overridden paths.
func (m *ManualStore) Len() int {
	return len(m.entries)
}
