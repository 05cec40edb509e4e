package validator

// Registry maps a field label to its ordered rule list. Order matters:
// the resolver short-circuits on the first error, so a structural check
// registered ahead of a not-blank check wins over it and vice versa.
//
// The registry is built once at startup and not mutated afterwards.
type Registry struct {
	rules map[string][]Rule
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string][]Rule)}
}

// Register associates a field label with a rule list, replacing any
// previous registration for that label (last registration wins).
func (r *Registry) Register(field string, rules ...Rule) {
	r.rules[field] = rules
}

// BulkRegister appends one shared rule to each listed field label,
// creating empty lists as needed. Used for the large not-blank groups.
func (r *Registry) BulkRegister(fields []string, rule Rule) {
	for _, f := range fields {
		r.rules[f] = append(r.rules[f], rule)
	}
}

// Lookup returns the ordered rule list for a field label, or nil when no
// rules are registered.
func (r *Registry) Lookup(field string) []Rule {
	return r.rules[field]
}

// Fields returns every registered field label.
func (r *Registry) Fields() []string {
	out := make([]string, 0, len(r.rules))
	for f := range r.rules {
		out = append(out, f)
	}
	return out
}
