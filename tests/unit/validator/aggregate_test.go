package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"apprev/internal/report"
	"apprev/internal/validator"
)

func notBlankTestRule(fields ...string) validator.Rule {
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return validator.Rule{
		Name: "not_blank",
		Check: func(field, value string, _ report.Document, _ report.FieldPath, _ string) *validator.Outcome {
			if !set[field] {
				return nil
			}
			if value == "" {
				return validator.Errorf("'%s' should not be blank.", field)
			}
			return validator.Match("")
		},
	}
}

func TestCollectErrors_SectionFields(t *testing.T) {
	reg := validator.NewRegistry()
	reg.Register("Borrower", notBlankTestRule("Borrower"))
	reg.Register("County", notBlankTestRule("County"))
	r := validator.NewResolver(reg)

	doc := report.Document{
		"Subject": map[string]any{
			"Borrower": "",
			"County":   "Orange",
		},
	}

	errs := r.CollectErrors(doc)

	assert.Len(t, errs, 1)
	assert.Equal(t, "Subject", errs[0].Section)
	assert.Equal(t, "Borrower", errs[0].Field)
	assert.Equal(t, "'Borrower' should not be blank.", errs[0].Message)
}

func TestCollectErrors_RootFieldsUnderGeneral(t *testing.T) {
	reg := validator.NewRegistry()
	reg.Register("Assignment Type", notBlankTestRule("Assignment Type"))
	r := validator.NewResolver(reg)

	doc := report.Document{"Assignment Type": ""}

	errs := r.CollectErrors(doc)

	assert.Len(t, errs, 1)
	assert.Equal(t, "General", errs[0].Section)
	assert.Equal(t, "Assignment Type", errs[0].Field)
}

func TestCollectErrors_ComparableRowsLabeled(t *testing.T) {
	reg := validator.NewRegistry()
	reg.Register("Sale Price", notBlankTestRule("Sale Price"))
	r := validator.NewResolver(reg)

	doc := report.Document{
		"COMPARABLE SALE #1": map[string]any{"Sale Price": ""},
		"COMPARABLE SALE #2": map[string]any{"Sale Price": "$400,000"},
	}

	errs := r.CollectErrors(doc)

	assert.Len(t, errs, 1)
	assert.Equal(t, "Sales Comparison", errs[0].Section)
	assert.Equal(t, "Sale Price (COMPARABLE SALE #1)", errs[0].Field)
}

func TestCollectErrors_EmptyDocument(t *testing.T) {
	r := validator.NewResolver(validator.NewRegistry())

	assert.Empty(t, r.CollectErrors(report.Document{}))
	assert.Empty(t, r.CollectErrors(nil))
}

func TestMissingFields_FlagsBlankExpectedFields(t *testing.T) {
	doc := report.Document{
		"State": "CA",
		"CONTRACT": map[string]any{
			"Contract Price $": "$425,000",
			"Date of Contract": "",
		},
	}

	missing := validator.MissingFields(doc)

	assert.NotEmpty(t, missing)
	assert.True(t, containsMissing(missing, "Contract", "Date of Contract"))
	assert.False(t, containsMissing(missing, "Contract", "Contract Price $"))
}

func containsMissing(missing []validator.MissingField, section, field string) bool {
	for _, m := range missing {
		if m.Section == section && m.Field == field {
			return true
		}
	}
	return false
}

func TestCheckComparableAddresses_StreetSuffixVariantsDisagree(t *testing.T) {
	doc := report.Document{
		"COMPARABLE SALE #1":     map[string]any{"Address": "123 Main St"},
		"Location Map Address 1": "123 Main Street",
	}

	inconsistencies := validator.CheckComparableAddresses(doc, false)

	assert.Len(t, inconsistencies, 1)
	assert.Equal(t, "Comp #1", inconsistencies[0].Comparable)
	assert.Equal(t, "123 Main St", inconsistencies[0].SalesGrid)
	assert.Equal(t, "123 Main Street", inconsistencies[0].LocationMap)
}

func TestCheckComparableAddresses_CaseAndTailInsensitive(t *testing.T) {
	doc := report.Document{
		"COMPARABLE SALE #1":     map[string]any{"Address": "456 Oak Ave Springfield CA"},
		"Location Map Address 1": "456 OAK AVE",
	}

	assert.Empty(t, validator.CheckComparableAddresses(doc, false))
}

func TestCheckComparableAddresses_PunctuationTokensDiffer(t *testing.T) {
	// Prefixes split on whitespace only, so a comma glued to the third
	// word makes the tokens differ.
	doc := report.Document{
		"COMPARABLE SALE #1":     map[string]any{"Address": "456 Oak Ave, Springfield CA"},
		"Location Map Address 1": "456 OAK AVE",
	}

	inconsistencies := validator.CheckComparableAddresses(doc, false)

	assert.Len(t, inconsistencies, 1)
	assert.Equal(t, "Comp #1", inconsistencies[0].Comparable)
}

func TestCheckComparableAddresses_SingleCandidateIsConsistent(t *testing.T) {
	doc := report.Document{
		"COMPARABLE SALE #1": map[string]any{"Address": "123 Main St"},
	}

	assert.Empty(t, validator.CheckComparableAddresses(doc, false))
}

func TestCheckComparableAddresses_AnyAgreeingPairAccepted(t *testing.T) {
	// Legacy behavior: three candidates where only two coincide still pass.
	doc := report.Document{
		"COMPARABLE SALE #1":         map[string]any{"Address": "123 Main St"},
		"Location Map Address 1":     "123 Main St",
		"Comparable Photo Address 1": "999 Elm Dr",
	}

	assert.Empty(t, validator.CheckComparableAddresses(doc, false))
}

func TestCheckComparableAddresses_StrictRequiresAllAgree(t *testing.T) {
	doc := report.Document{
		"COMPARABLE SALE #1":         map[string]any{"Address": "123 Main St"},
		"Location Map Address 1":     "123 Main St",
		"Comparable Photo Address 1": "999 Elm Dr",
	}

	inconsistencies := validator.CheckComparableAddresses(doc, true)

	assert.Len(t, inconsistencies, 1)
	assert.Equal(t, "Comp #1", inconsistencies[0].Comparable)
	assert.Equal(t, "999 Elm Dr", inconsistencies[0].ComparablePhoto)
}

func TestCheckComparableAddresses_MultipleComparables(t *testing.T) {
	doc := report.Document{
		"COMPARABLE SALE #1":     map[string]any{"Address": "123 Main St"},
		"Location Map Address 1": "123 Main St",
		"COMPARABLE SALE #2":     map[string]any{"Address": "77 Birch Ln"},
		"Location Map Address 2": "500 Pine Rd",
	}

	inconsistencies := validator.CheckComparableAddresses(doc, false)

	assert.Len(t, inconsistencies, 1)
	assert.Equal(t, "Comp #2", inconsistencies[0].Comparable)
}
