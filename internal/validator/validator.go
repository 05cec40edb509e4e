package validator

import (
	"fmt"

	"apprev/internal/report"
)

// Outcome is a single rule's finding for one field. A nil *Outcome means
// the rule has no opinion (not applicable to the current value/context).
type Outcome struct {
	IsError bool   `json:"is_error,omitempty"`
	IsMatch bool   `json:"is_match,omitempty"`
	Message string `json:"message,omitempty"`
}

// Errorf builds an error outcome with a formatted message.
func Errorf(format string, args ...any) *Outcome {
	return &Outcome{IsError: true, Message: fmt.Sprintf(format, args...)}
}

// Match builds a passing outcome. An empty message lets the resolver fall
// back to the default success message.
func Match(message string) *Outcome {
	return &Outcome{IsMatch: true, Message: message}
}

// CheckFunc is the field-scoped rule form: it receives the field label,
// its current display value, the whole document, the field's path, and
// the comparable/sale name when the field sits in a grid row. Rules are
// pure: they may read any part of doc but never mutate it.
type CheckFunc func(field, value string, doc report.Document, path report.FieldPath, rowName string) *Outcome

// RowFunc is the row-scoped rule form, used on the resolver's second pass
// for grid fields when the field-scoped pass produced no opinion.
type RowFunc func(field string, doc report.Document, rowName string) *Outcome

// Rule couples a named business rule with its check forms. Check runs on
// the primary pass; Row, when set, runs on the row-context pass.
type Rule struct {
	Name  string
	Check CheckFunc
	Row   RowFunc
}
