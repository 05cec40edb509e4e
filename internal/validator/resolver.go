package validator

import (
	"log"
	"strings"

	"apprev/internal/report"
)

// Style classifies a resolved field for the review surface.
type Style string

const (
	StyleNone    Style = "none"
	StyleMatch   Style = "match"
	StyleError   Style = "error"
	StyleManual  Style = "manual"
	StyleWarning Style = "warning"
)

// Default messages surfaced when a rule supplies none.
const (
	ManualMessage  = "Manually validated."
	SuccessMessage = "Validation successful!"
)

// Zoning value rendered as a standing warning regardless of rule outcome.
const grandfatheredZoning = "Legal Nonconforming (Grandfathered Use)"

// FieldStatus is the resolver's output for one field: the presentation
// classification plus the tooltip message. CanOverride marks an error
// that has not yet been manually validated, the target for the reviewer's
// sign-off affordance.
type FieldStatus struct {
	Style       Style  `json:"style"`
	Message     string `json:"message,omitempty"`
	CanOverride bool   `json:"can_override,omitempty"`
}

// Resolver runs a field's registered rules under the resolution protocol
// and layers the manual-override check on top. Stateless; safe to share
// across concurrent documents.
type Resolver struct {
	registry *Registry
}

// NewResolver creates a Resolver over a built registry.
func NewResolver(registry *Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Registry exposes the underlying registry, for batch traversal.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Resolve classifies one field. Rules run in registration order against
// (field, value, doc, path, rowName); the first error short-circuits and
// is never displaced by a later match. When a row context is supplied and
// the primary pass had no opinion, rules with a row form run again as
// (field, doc, rowName) and the first non-nil result stands. Precedence
// of the final classification: manual override, error, match, the static
// grandfathered-zoning warning, none.
func (r *Resolver) Resolve(field, value string, doc report.Document, path report.FieldPath, rowName string, manual *ManualStore) FieldStatus {
	outcome := r.run(field, value, doc, path, rowName)

	if manual != nil && manual.IsValidated(path) {
		return FieldStatus{Style: StyleManual, Message: ManualMessage}
	}
	switch {
	case outcome != nil && outcome.IsError:
		return FieldStatus{Style: StyleError, Message: outcome.Message, CanOverride: true}
	case outcome != nil && outcome.IsMatch:
		msg := outcome.Message
		if msg == "" {
			msg = SuccessMessage
		}
		return FieldStatus{Style: StyleMatch, Message: msg}
	case field == "Zoning Compliance" && strings.TrimSpace(value) == grandfatheredZoning:
		return FieldStatus{Style: StyleWarning}
	default:
		return FieldStatus{Style: StyleNone}
	}
}

// run executes the rule passes and returns the winning outcome, or nil.
func (r *Resolver) run(field, value string, doc report.Document, path report.FieldPath, rowName string) *Outcome {
	rules := r.registry.Lookup(field)
	if len(rules) == 0 {
		return nil
	}

	var outcome *Outcome
	for i := range rules {
		result := r.safeCheck(&rules[i], field, value, doc, path, rowName)
		if result == nil {
			continue
		}
		outcome = result
		if result.IsError {
			break
		}
	}

	if outcome == nil && rowName != "" {
		for i := range rules {
			if rules[i].Row == nil {
				continue
			}
			if result := r.safeRow(&rules[i], field, doc, rowName); result != nil {
				outcome = result
				break
			}
		}
	}
	return outcome
}

// safeCheck isolates a panicking rule to a no-opinion result so one bad
// rule cannot abort resolution of the rest of the document.
func (r *Resolver) safeCheck(rule *Rule, field, value string, doc report.Document, path report.FieldPath, rowName string) (out *Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("validator.Resolver: rule %q panicked on field %q: %v", rule.Name, field, rec)
			out = nil
		}
	}()
	if rule.Check == nil {
		return nil
	}
	return rule.Check(field, value, doc, path, rowName)
}

func (r *Resolver) safeRow(rule *Rule, field string, doc report.Document, rowName string) (out *Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("validator.Resolver: row rule %q panicked on field %q (%s): %v", rule.Name, field, rowName, rec)
			out = nil
		}
	}()
	return rule.Row(field, doc, rowName)
}
