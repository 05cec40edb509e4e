package appraisal

import (
	"strings"
	"time"

	"apprev/internal/report"
	"apprev/internal/validator"
)

// CheckTaxYear requires a plausible recent tax year: a parseable year no
// more than two years behind the effective date of the appraisal.
func CheckTaxYear(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	if isBlank(value) {
		return notBlankError(field)
	}
	year, ok := parseYear(value)
	if !ok {
		return validator.Errorf("'%s' has '%s', which is not a recognizable year.", field, strings.TrimSpace(value))
	}
	reference := time.Now().Year()
	if effective, ok := parseDate(doc.Field("CERTIFICATION", "Effective Date of Appraisal")); ok {
		reference = effective.Year()
	}
	if year > reference || year < reference-2 {
		return validator.Errorf("'%s' of %d is not within two years of the appraisal effective date year %d.", field, year, reference)
	}
	return validator.Match("")
}

// CheckRETaxes requires the real-estate tax amount to parse as a
// non-negative dollar figure.
func CheckRETaxes(field, value string, _ report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	if isBlank(value) {
		return notBlankError(field)
	}
	amount, ok := parseMoney(value)
	if !ok {
		return validator.Errorf("'%s' has '%s', which is not a dollar amount.", field, strings.TrimSpace(value))
	}
	if amount < 0 {
		return validator.Errorf("'%s' must not be negative.", field)
	}
	return validator.Match("")
}

// CheckSpecialAssessments accepts blank (none assessed) or a parseable
// dollar amount.
func CheckSpecialAssessments(field, value string, _ report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	if isBlank(value) {
		return nil
	}
	if _, ok := parseMoney(value); !ok && !oneOfFold(value, []string{"none", "n/a", "0"}) {
		return validator.Errorf("'%s' has '%s', which is not a dollar amount.", field, strings.TrimSpace(value))
	}
	return validator.Match("")
}

// CheckPUDHOAConsistency cross-checks the subject PUD flag with the HOA
// fee: a PUD needs an HOA amount on file, and an HOA amount with the PUD
// box unchecked is equally suspect.
func CheckPUDHOAConsistency(field, _ string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	pud := subjectValue(doc, "PUD")
	hoa := subjectValue(doc, "HOA $")

	pudAnswer := answerOf(pud)
	pudIndicated := pudAnswer == "yes" || pudAnswer == "pud" || containsFold(pud, "pud")

	switch {
	case pudIndicated && isBlank(hoa):
		return validator.Errorf("PUD is indicated but 'HOA $' is blank.")
	case !pudIndicated && !isBlank(hoa) && !oneOfFold(hoa, []string{"0", "$0", "none", "n/a"}):
		if field == "PUD" {
			return validator.Errorf("'HOA $' has '%s' but PUD is not indicated.", strings.TrimSpace(hoa))
		}
		return validator.Errorf("'%s' has a fee but PUD is not indicated.", field)
	case pudIndicated || !isBlank(hoa):
		return validator.Match("")
	default:
		return nil
	}
}

// CheckOfferedForSale pairs the offered-for-sale answer with its
// mandatory data-source narrative.
func CheckOfferedForSale(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	const narrativeField = "Report data source(s) used, offering price(s), and date(s)"

	answer := answerOf(subjectValue(doc, "Offered for Sale in Last 12 Months"))
	narrative := subjectValue(doc, narrativeField)

	switch answer {
	case "":
		if field == "Offered for Sale in Last 12 Months" {
			return notBlankError(field)
		}
		return nil
	case "yes", "no":
		if isBlank(narrative) {
			return validator.Errorf("'%s' is answered but '%s' is blank.", "Offered for Sale in Last 12 Months", narrativeField)
		}
		return validator.Match("")
	default:
		if field == "Offered for Sale in Last 12 Months" {
			return validator.Errorf("'%s' must be answered 'Yes' or 'No', but has '%s'.", field, strings.TrimSpace(value))
		}
		return nil
	}
}

// CheckSubjectAddressConsistency compares the subject property address
// against the address repeated in the certification section.
func CheckSubjectAddressConsistency(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	subject := strings.TrimSpace(value)
	if subject == "" {
		subject = subjectValue(doc, "Property Address")
	}
	certified := doc.Field("CERTIFICATION", "ADDRESS OF PROPERTY APPRAISED")
	if subject == "" || certified == "" {
		return nil
	}
	if firstThreeTokensFold(subject) != firstThreeTokensFold(certified) {
		return validator.Errorf("Property address mismatch: Subject section has '%s', but Appraiser section has '%s'.", subject, certified)
	}
	return validator.Match("")
}

// CheckOccupant requires the occupant to be one of the form's choices.
func CheckOccupant(field, value string, _ report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	if isBlank(value) {
		return notBlankError(field)
	}
	if oneOfFold(value, []string{"Owner", "Tenant", "Vacant"}) {
		return validator.Match("")
	}
	return validator.Errorf("'%s' must be Owner, Tenant, or Vacant, but has '%s'.", field, strings.TrimSpace(value))
}

// CheckPropertyRights requires the appraised rights to be Fee Simple or
// Leasehold, the only choices on the form.
func CheckPropertyRights(field, value string, _ report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	if isBlank(value) {
		return notBlankError(field)
	}
	if containsFold(value, "fee simple") || containsFold(value, "leasehold") {
		return validator.Match("")
	}
	return validator.Errorf("'%s' must be Fee Simple or Leasehold, but has '%s'.", field, strings.TrimSpace(value))
}

// subjectValue reads a subject field, checking the document root first
// and the merged Subject section as fallback.
func subjectValue(doc report.Document, field string) string {
	if v := doc.Root(field); v != "" {
		return v
	}
	return doc.Field("Subject", field)
}

// firstThreeTokensFold folds an address to its first three lower-cased
// whitespace tokens for loose comparison.
func firstThreeTokensFold(s string) string {
	words := strings.Fields(s)
	if len(words) > 3 {
		words = words[:3]
	}
	return strings.ToLower(strings.Join(words, " "))
}
