package appraisal

import (
	"strings"

	"apprev/internal/report"
	"apprev/internal/validator"
)

const reconciliationBasisField = `This appraisal is made "as is", subject to completion per plans and specifications on the basis of a hypothetical condition that the improvements have been completed, subject to the following repairs or alterations on the basis of a hypothetical condition that the repairs or alterations have been completed, or subject to the following required inspection based on the extraordinary assumption that the condition or deficiency does not require alteration or repair:`

const marketValueOpinionField = "opinion of the market value, as defined, of the real property that is the subject of this report is $"

// finalValue reads the reconciled value, preferring the explicit final
// value field over the market-value opinion line.
func finalValue(doc report.Document) (float64, bool) {
	if v, ok := parseMoney(doc.Field("RECONCILIATION", "final value")); ok {
		return v, true
	}
	return parseMoney(doc.Field("RECONCILIATION", marketValueOpinionField))
}

// CheckFinalValueConsistency requires the reconciled value to be
// repeated consistently: the market-value opinion line, the sales
// comparison indicated value, and the certification's appraised value
// must all state the same figure.
func CheckFinalValueConsistency(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	final, ok := parseMoney(value)
	if !ok {
		final, ok = finalValue(doc)
	}
	if !ok {
		if isBlank(value) {
			return notBlankError(field)
		}
		return validator.Errorf("'%s' has '%s', which is not a dollar amount.", field, strings.TrimSpace(value))
	}

	counterparts := []struct {
		label string
		raw   string
	}{
		{"opinion of market value", doc.Field("RECONCILIATION", marketValueOpinionField)},
		{"Indicated Value by: Sales Comparison Approach $", doc.Field("RECONCILIATION", "Indicated Value by: Sales Comparison Approach $")},
		{"APPRAISED VALUE OF SUBJECT PROPERTY $", doc.Field("CERTIFICATION", "APPRAISED VALUE OF SUBJECT PROPERTY $")},
	}
	for _, c := range counterparts {
		other, ok := parseMoney(c.raw)
		if !ok {
			continue
		}
		if other != final {
			return validator.Errorf("Final value of $%.0f does not match %s of $%.0f.", final, c.label, other)
		}
	}
	return validator.Match("")
}

// CheckFinalValueBracketing requires the reconciled value to lie within
// the range of the comparables' adjusted sale prices.
func CheckFinalValueBracketing(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	final, ok := parseMoney(value)
	if !ok {
		final, ok = finalValue(doc)
	}
	if !ok {
		return nil
	}

	var low, high float64
	found := false
	for _, saleName := range report.ComparableSales {
		price, ok := parseMoney(doc.Field(saleName, "Adjusted Sale Price of Comparable"))
		if !ok {
			continue
		}
		if !found {
			low, high = price, price
			found = true
			continue
		}
		if price < low {
			low = price
		}
		if price > high {
			high = price
		}
	}
	if !found {
		return nil
	}
	if final < low || final > high {
		return validator.Errorf("Final value of $%.0f is not bracketed by the adjusted sale prices of the comparables ($%.0f to $%.0f).", final, low, high)
	}
	return validator.Match("")
}

// CheckReconciliationFieldsNotBlank flags blank reconciliation fields.
var CheckReconciliationFieldsNotBlank = notBlankIn(report.ReconciliationFields)

// CheckAsOfDateConsistency requires the reconciliation's "as of" date to
// equal the certification's effective date of appraisal.
func CheckAsOfDateConsistency(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	asOf, ok := parseDate(value)
	if !ok {
		asOf, ok = parseDate(doc.Field("RECONCILIATION", "as of"))
	}
	if !ok {
		if field == "as of" && isBlank(value) {
			return notBlankError(field)
		}
		return nil
	}
	effective, ok := parseDate(doc.Field("CERTIFICATION", "Effective Date of Appraisal"))
	if !ok {
		return nil
	}
	if !asOf.Equal(effective) {
		return validator.Errorf("Reconciliation 'as of' date %s does not match the Effective Date of Appraisal %s.",
			asOf.Format("01/02/2006"), effective.Format("01/02/2006"))
	}
	return validator.Match("")
}

// CheckIncomeApproachComment requires the income-approach comment when
// an income-approach value is developed.
func CheckIncomeApproachComment(field, _ string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	developed := doc.Field("RECONCILIATION", "Income Approach (if developed) $")
	comment := doc.Field("RECONCILIATION", "Income Approach (if developed) $ Comment")
	if isBlank(developed) || oneOfFold(developed, []string{"n/a", "none"}) {
		return nil
	}
	if isBlank(comment) {
		return validator.Errorf("Income Approach value is developed but its comment is blank.")
	}
	return validator.Match("")
}
