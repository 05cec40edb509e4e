package appraisal

import (
	"strings"

	"apprev/internal/report"
	"apprev/internal/validator"
)

// Project-information unit counters whose totals must reconcile.
var projectUnitCountFields = []string{
	"# of Units", "# of Units Completed", "# of Units For Sale",
	"# of Units Sold", "# of Units Rented", "# of Owner Occupied Units",
}

// CheckProjectUnitCounts requires each project counter to be numeric and
// no partial counter to exceed the project total.
func CheckProjectUnitCounts(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	if !oneOfFold(field, projectUnitCountFields) {
		return nil
	}
	if isBlank(value) {
		return notBlankError(field)
	}
	count, ok := parseLeadingNumber(value)
	if !ok {
		return validator.Errorf("'%s' has '%s', which is not a number of units.", field, strings.TrimSpace(value))
	}
	total, ok := parseLeadingNumber(doc.Field("PROJECT_INFO", "# of Units"))
	if !ok {
		return nil
	}
	if field != "# of Units" && count > total {
		return validator.Errorf("'%s' of %g exceeds the project's total of %g units.", field, count, total)
	}
	return validator.Match("")
}

// CheckCommercialSpace pairs the commercial-space answer with its
// percentage follow-up.
func CheckCommercialSpace(field, _ string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	const questionField = "Is there any commercial space in the project?"
	const detailField = "If Yes, describe and indicate the overall percentage of the commercial space."

	answer := answerOf(doc.Field("PROJECT_INFO", questionField))
	detail := doc.Field("PROJECT_INFO", detailField)

	switch answer {
	case "yes":
		if isBlank(detail) {
			return validator.Errorf("Commercial space is indicated but '%s' is blank.", detailField)
		}
		if !strings.ContainsAny(detail, "0123456789") {
			return validator.Errorf("'%s' must state the overall percentage of commercial space.", detailField)
		}
		return validator.Match("")
	case "no":
		return validator.Match("")
	case "":
		if field == questionField {
			return notBlankError(field)
		}
		return nil
	default:
		if field == questionField {
			return validator.Errorf("'%s' must be answered 'Yes' or 'No'.", field)
		}
		return nil
	}
}

// CheckUnitChargeArithmetic verifies the unit charge line: the monthly
// charge times twelve must equal the stated annual charge.
func CheckUnitChargeArithmetic(field, _ string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	monthly, monthlyOK := parseMoney(doc.Field("UNIT_DESCRIPTIONS", "Unit Charge$"))
	annual, annualOK := parseMoney(doc.Field("UNIT_DESCRIPTIONS", "per year"))
	if !monthlyOK || !annualOK {
		return nil
	}
	if monthly*12 != annual {
		return validator.Errorf("Annual unit charge of $%.0f does not equal the monthly charge $%.0f times twelve ($%.0f).", annual, monthly, monthly*12)
	}
	return validator.Match("")
}

// CheckUnitChargeAppearance validates the competitive-charge appearance
// choice and its High/Low follow-up.
func CheckUnitChargeAppearance(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	const describeField = "If High or Low, describe"

	if isBlank(value) {
		return notBlankError(field)
	}
	if !oneOfFold(value, []string{"High", "Average", "Low"}) {
		return validator.Errorf("'%s' must be High, Average, or Low, but has '%s'.", field, strings.TrimSpace(value))
	}
	if !strings.EqualFold(strings.TrimSpace(value), "Average") && isBlank(doc.Field("PROJECT_ANALYSIS", describeField)) {
		return validator.Errorf("Unit charge appears %s but '%s' is blank.", strings.TrimSpace(value), describeField)
	}
	return validator.Match("")
}
