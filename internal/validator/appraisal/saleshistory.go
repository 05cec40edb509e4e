package appraisal

import (
	"strings"

	"apprev/internal/report"
	"apprev/internal/validator"
)

// CheckResearchStatement validates the "I did / did not research"
// statements: the value must resolve the printed did/did-not choice, and
// a "did not" must carry an explanation.
func CheckResearchStatement(field, value string, _ report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	if isBlank(value) {
		return notBlankError(field)
	}
	lower := strings.ToLower(value)
	didNot := strings.Contains(lower, "did not")
	did := strings.Contains(lower, "did") && !didNot

	switch {
	case didNot:
		rest := strings.TrimSpace(lower)
		rest = strings.TrimPrefix(rest, "i ")
		rest = strings.TrimPrefix(rest, "did not")
		if isBlank(rest) || len(strings.Fields(rest)) < 3 {
			return validator.Errorf("'%s' states the research was not performed but gives no explanation.", field)
		}
		return validator.Match("")
	case did:
		return validator.Match("")
	default:
		return validator.Errorf("'%s' must resolve the did/did not choice, but has '%s'.", field, strings.TrimSpace(value))
	}
}

// CheckPriorSalePair cross-checks the subject prior sale fields: a
// recorded transfer date needs a price and a data source alongside it.
func CheckPriorSalePair(field, _ string, doc report.Document, path report.FieldPath, _ string) *validator.Outcome {
	section := path.Section()
	if section == "" {
		section = "SALES_HISTORY"
	}
	date := doc.Field(section, "Date of Prior Sale/Transfer")
	price := doc.Field(section, "Price of Prior Sale/Transfer")
	source := doc.Field(section, "Data Source(s) for prior sale")

	if isBlank(date) || oneOfFold(date, []string{"none", "n/a"}) {
		return nil
	}
	if isBlank(price) {
		return validator.Errorf("A prior sale/transfer date is recorded but 'Price of Prior Sale/Transfer' is blank.")
	}
	if isBlank(source) {
		return validator.Errorf("A prior sale/transfer date is recorded but 'Data Source(s) for prior sale' is blank.")
	}
	return validator.Match("")
}

// CheckSalesHistoryFieldsNotBlank flags blank sales-history fields.
var CheckSalesHistoryFieldsNotBlank = notBlankIn(report.SalesHistoryFields)
