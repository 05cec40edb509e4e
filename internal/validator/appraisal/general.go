package appraisal

import (
	"strings"

	"apprev/internal/report"
	"apprev/internal/validator"
)

// notBlankError is the shared finding for every required-field group.
func notBlankError(field string) *validator.Outcome {
	return validator.Errorf("'%s' should not be blank.", field)
}

// notBlankIn builds the canonical required-field check: when the field is
// in the group and its trimmed value is empty, it errs; otherwise it has
// no opinion. The membership test keeps the check safe to attach broadly.
func notBlankIn(fields []string) validator.CheckFunc {
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return func(field, value string, _ report.Document, _ report.FieldPath, _ string) *validator.Outcome {
		if set[field] && isBlank(value) {
			return notBlankError(field)
		}
		return nil
	}
}

// notBlankRule wraps notBlankIn with a rule name for diagnostics.
func notBlankRule(name string, fields []string) validator.Rule {
	return validator.Rule{Name: name, Check: notBlankIn(fields)}
}

// Subject fields whose blankness the subject section flags directly.
var subjectNotBlankFields = []string{
	"Property Address",
	"County",
	"Borrower",
	"Owner of Public Record",
	"Legal Description",
	"Assessor's Parcel #",
	"Neighborhood Name",
	"Map Reference",
	"Census Tract",
	"Occupant",
	"Property Rights Appraised",
	"Lender/Client",
	"Address (Lender/Client)",
}

// CheckSubjectFieldsNotBlank flags blank mandatory subject fields.
var CheckSubjectFieldsNotBlank = notBlankIn(subjectNotBlankFields)

// Recognized assignment types on the 1004 subject section.
var assignmentTypes = []string{"Purchase Transaction", "Refinance Transaction", "Other (describe)", "Purchase", "Refinance", "Other"}

// CheckAssignmentTypeConsistency validates the Assignment Type choice and
// its agreement with the contract section: a purchase with no contract
// price on file is flagged here as well as on the contract fields.
func CheckAssignmentTypeConsistency(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	if field != "Assignment Type" {
		return nil
	}
	if isBlank(value) {
		return notBlankError(field)
	}
	lower := strings.ToLower(value)
	switch {
	case strings.Contains(lower, "purchase"):
		if isBlank(doc.Field("CONTRACT", "Contract Price $")) {
			return validator.Errorf("Assignment Type is a purchase but the Contract section has no Contract Price $.")
		}
		return validator.Match("")
	case strings.Contains(lower, "refinance"), strings.Contains(lower, "other"):
		return validator.Match("")
	default:
		return validator.Errorf("Assignment Type '%s' is not a recognized transaction type.", strings.TrimSpace(value))
	}
}

// assignmentType returns the lower-cased subject Assignment Type,
// checking the root field first and the Subject section as fallback.
func assignmentType(doc report.Document) string {
	v := doc.Root("Assignment Type")
	if v == "" {
		v = doc.Field("Subject", "Assignment Type")
	}
	return strings.ToLower(v)
}

func isPurchase(doc report.Document) bool {
	return strings.Contains(assignmentType(doc), "purchase")
}

func isRefinance(doc report.Document) bool {
	return strings.Contains(assignmentType(doc), "refinance")
}
