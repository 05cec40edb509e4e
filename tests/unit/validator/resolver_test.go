package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"apprev/internal/report"
	"apprev/internal/validator"
)

func errorRule(name, message string) validator.Rule {
	return validator.Rule{
		Name: name,
		Check: func(_, _ string, _ report.Document, _ report.FieldPath, _ string) *validator.Outcome {
			return validator.Errorf("%s", message)
		},
	}
}

func matchRule(name, message string) validator.Rule {
	return validator.Rule{
		Name: name,
		Check: func(_, _ string, _ report.Document, _ report.FieldPath, _ string) *validator.Outcome {
			return validator.Match(message)
		},
	}
}

func noOpinionRule(name string) validator.Rule {
	return validator.Rule{
		Name: name,
		Check: func(_, _ string, _ report.Document, _ report.FieldPath, _ string) *validator.Outcome {
			return nil
		},
	}
}

func TestResolver_NoRules_StyleNone(t *testing.T) {
	r := validator.NewResolver(validator.NewRegistry())

	status := r.Resolve("Unknown Field", "anything", report.Document{}, report.FieldPath{"Unknown Field"}, "", nil)

	assert.Equal(t, validator.StyleNone, status.Style)
	assert.Empty(t, status.Message)
	assert.False(t, status.CanOverride)
}

func TestResolver_FirstErrorWins(t *testing.T) {
	reg := validator.NewRegistry()
	reg.Register("f",
		matchRule("m1", "first match"),
		errorRule("e1", "first error"),
		errorRule("e2", "second error"),
		matchRule("m2", "late match"),
	)
	r := validator.NewResolver(reg)

	status := r.Resolve("f", "v", report.Document{}, report.FieldPath{"f"}, "", nil)

	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "first error", status.Message)
	assert.True(t, status.CanOverride)
}

func TestResolver_LaterMatchReplacesEarlierMatch(t *testing.T) {
	reg := validator.NewRegistry()
	reg.Register("f",
		matchRule("m1", "first match"),
		noOpinionRule("skip"),
		matchRule("m2", "last match"),
	)
	r := validator.NewResolver(reg)

	status := r.Resolve("f", "v", report.Document{}, report.FieldPath{"f"}, "", nil)

	assert.Equal(t, validator.StyleMatch, status.Style)
	assert.Equal(t, "last match", status.Message)
}

func TestResolver_MatchDefaultMessage(t *testing.T) {
	reg := validator.NewRegistry()
	reg.Register("f", matchRule("m", ""))
	r := validator.NewResolver(reg)

	status := r.Resolve("f", "v", report.Document{}, report.FieldPath{"f"}, "", nil)

	assert.Equal(t, validator.StyleMatch, status.Style)
	assert.Equal(t, validator.SuccessMessage, status.Message)
}

func TestResolver_ManualOverrideBeatsError(t *testing.T) {
	reg := validator.NewRegistry()
	reg.Register("f", errorRule("e", "broken"))
	r := validator.NewResolver(reg)

	path := report.FieldPath{"SECTION", "f"}
	manual := validator.NewManualStore()
	manual.Toggle(path)

	status := r.Resolve("f", "v", report.Document{}, path, "", manual)

	assert.Equal(t, validator.StyleManual, status.Style)
	assert.Equal(t, validator.ManualMessage, status.Message)
	assert.False(t, status.CanOverride)
}

func TestResolver_ManualOverrideIsPathScoped(t *testing.T) {
	reg := validator.NewRegistry()
	reg.Register("f", errorRule("e", "broken"))
	r := validator.NewResolver(reg)

	manual := validator.NewManualStore()
	manual.Toggle(report.FieldPath{"OTHER SECTION", "f"})

	status := r.Resolve("f", "v", report.Document{}, report.FieldPath{"SECTION", "f"}, "", manual)

	assert.Equal(t, validator.StyleError, status.Style)
}

func TestResolver_RowPassRunsWhenPrimaryHasNoOpinion(t *testing.T) {
	reg := validator.NewRegistry()
	reg.Register("f",
		noOpinionRule("skip"),
		validator.Rule{
			Name: "row_check",
			Row: func(_ string, _ report.Document, rowName string) *validator.Outcome {
				return validator.Errorf("row %s failed", rowName)
			},
		},
	)
	r := validator.NewResolver(reg)

	status := r.Resolve("f", "v", report.Document{}, report.FieldPath{"COMPARABLE SALE #1", "f"}, "COMPARABLE SALE #1", nil)

	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "row COMPARABLE SALE #1 failed", status.Message)
}

func TestResolver_RowPassSkippedWithoutRowContext(t *testing.T) {
	reg := validator.NewRegistry()
	reg.Register("f",
		validator.Rule{
			Name: "row_check",
			Row: func(_ string, _ report.Document, _ string) *validator.Outcome {
				return validator.Errorf("should not run")
			},
		},
	)
	r := validator.NewResolver(reg)

	status := r.Resolve("f", "v", report.Document{}, report.FieldPath{"f"}, "", nil)

	assert.Equal(t, validator.StyleNone, status.Style)
}

func TestResolver_RowPassSkippedWhenPrimaryMatched(t *testing.T) {
	reg := validator.NewRegistry()
	reg.Register("f",
		matchRule("m", "primary match"),
		validator.Rule{
			Name: "row_check",
			Row: func(_ string, _ report.Document, _ string) *validator.Outcome {
				return validator.Errorf("should not run")
			},
		},
	)
	r := validator.NewResolver(reg)

	status := r.Resolve("f", "v", report.Document{}, report.FieldPath{"COMPARABLE SALE #1", "f"}, "COMPARABLE SALE #1", nil)

	assert.Equal(t, validator.StyleMatch, status.Style)
	assert.Equal(t, "primary match", status.Message)
}

func TestResolver_PanickingRuleIsIsolated(t *testing.T) {
	reg := validator.NewRegistry()
	reg.Register("f",
		validator.Rule{
			Name: "panics",
			Check: func(_, _ string, _ report.Document, _ report.FieldPath, _ string) *validator.Outcome {
				panic("boom")
			},
		},
		matchRule("m", "survived"),
	)
	r := validator.NewResolver(reg)

	status := r.Resolve("f", "v", report.Document{}, report.FieldPath{"f"}, "", nil)

	assert.Equal(t, validator.StyleMatch, status.Style)
	assert.Equal(t, "survived", status.Message)
}

func TestResolver_GrandfatheredZoningWarning(t *testing.T) {
	// The warning only surfaces when no rule has an opinion; an empty
	// registry models a form variant without a zoning rule.
	r := validator.NewResolver(validator.NewRegistry())

	status := r.Resolve("Zoning Compliance", "Legal Nonconforming (Grandfathered Use)",
		report.Document{}, report.FieldPath{"SITE", "Zoning Compliance"}, "", nil)

	assert.Equal(t, validator.StyleWarning, status.Style)

	status = r.Resolve("Zoning Compliance", "Legal",
		report.Document{}, report.FieldPath{"SITE", "Zoning Compliance"}, "", nil)

	assert.Equal(t, validator.StyleNone, status.Style)
}

func TestManualStore_ToggleAndClear(t *testing.T) {
	store := validator.NewManualStore()
	path := report.FieldPath{"CONTRACT", "Contract Price $"}

	assert.False(t, store.IsValidated(path))

	store.Toggle(path)
	assert.True(t, store.IsValidated(path))
	assert.Equal(t, 1, store.Len())

	store.Toggle(path)
	assert.False(t, store.IsValidated(path))
	assert.Equal(t, 0, store.Len())

	store.Toggle(path)
	store.Clear()
	assert.False(t, store.IsValidated(path))
	assert.Equal(t, 0, store.Len())
}

func TestManualStore_KeysAndLoad(t *testing.T) {
	store := validator.NewManualStore()
	p1 := report.FieldPath{"CONTRACT", "Contract Price $"}
	p2 := report.FieldPath{"SITE", "Zoning Compliance"}
	store.Toggle(p1)
	store.Toggle(p2)

	keys := store.Keys()
	assert.Len(t, keys, 2)

	restored := validator.NewManualStore()
	restored.Load(keys)
	assert.True(t, restored.IsValidated(p1))
	assert.True(t, restored.IsValidated(p2))
}
