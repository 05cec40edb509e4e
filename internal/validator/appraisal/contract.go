package appraisal

import (
	"strings"

	"apprev/internal/report"
	"apprev/internal/validator"
)

// Contract fields that become mandatory on a purchase transaction.
var purchaseMandatoryFields = []string{
	"I did did not analyze the contract for sale for the subject purchase transaction. Explain the results of the analysis of the contract for sale or why the analysis was not performed.",
	"Contract Price $",
	"Date of Contract",
	"Data Source(s)",
}

// Contract fields that must stay blank on a refinance.
var refinanceBlankFields = []string{
	"Contract Price $",
	"Date of Contract",
}

const financialAssistanceField = "Is there any financial assistance (loan charges, sale concessions, gift or downpayment assistance, etc.) to be paid by any party on behalf of the borrower?"
const financialAssistanceDetailField = "If Yes, report the total dollar amount and describe the items to be paid"
const contractAnalysisField = "I did did not analyze the contract for sale for the subject purchase transaction. Explain the results of the analysis of the contract for sale or why the analysis was not performed."

// CheckContractFieldsMandatory enforces the assignment-type split: on a
// purchase the contract fields must be present; on a refinance the price
// and date must be blank. Any other assignment type has no opinion.
func CheckContractFieldsMandatory(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	switch {
	case isPurchase(doc):
		for _, f := range purchaseMandatoryFields {
			if f == field && isBlank(value) {
				return notBlankError(field)
			}
		}
		if isBlank(value) {
			return nil
		}
		return validator.Match("")
	case isRefinance(doc):
		for _, f := range refinanceBlankFields {
			if f == field && !isBlank(value) {
				return validator.Errorf("'%s' should be blank on a refinance transaction, but has '%s'.", field, strings.TrimSpace(value))
			}
		}
		return nil
	default:
		return nil
	}
}

// CheckContractAnalysisConsistency cross-checks the contract-analysis
// narrative against the populated contract fields: a contract price with
// a narrative stating the analysis was not performed is inconsistent, as
// is a purchase whose narrative is missing entirely.
func CheckContractAnalysisConsistency(field, _ string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	narrative := doc.Field("CONTRACT", contractAnalysisField)
	price := doc.Field("CONTRACT", "Contract Price $")

	if isPurchase(doc) && isBlank(narrative) {
		if field == contractAnalysisField {
			return notBlankError(field)
		}
		return validator.Errorf("Contract analysis narrative is missing for a purchase transaction.")
	}
	if !isBlank(price) && analysisNotPerformed(narrative) {
		return validator.Errorf("Contract Price $ is populated but the narrative states the contract analysis was not performed.")
	}
	if isBlank(narrative) {
		return nil
	}
	return validator.Match("")
}

// analysisNotPerformed detects the "did not analyze" phrasing with no
// following explanation beyond the boilerplate.
func analysisNotPerformed(narrative string) bool {
	lower := strings.ToLower(narrative)
	return strings.Contains(lower, "did not") && !strings.Contains(lower, "did analyze")
}

// YesNoOnlySpec names the field a yes/no-only check is bound to.
type YesNoOnlySpec struct {
	Name string
}

// CheckYesNoOnly requires the answer to be exactly "yes" or "no",
// case-insensitively, for the bound field.
func CheckYesNoOnly(field, value string, _ report.Document, _ report.FieldPath, _ string, spec YesNoOnlySpec) *validator.Outcome {
	if field != spec.Name {
		return nil
	}
	answer := strings.ToLower(strings.TrimSpace(value))
	switch answer {
	case "":
		return validator.Errorf("'%s' must be answered 'Yes' or 'No'.", field)
	case "yes", "no":
		return validator.Match("")
	default:
		return validator.Errorf("'%s' must be exactly 'Yes' or 'No', but has '%s'.", field, strings.TrimSpace(value))
	}
}

// YesNoOnlyRule binds CheckYesNoOnly to a field label.
func YesNoOnlyRule(name string) validator.Rule {
	spec := YesNoOnlySpec{Name: name}
	return validator.Rule{
		Name: "yes_no_only",
		Check: func(field, value string, doc report.Document, path report.FieldPath, rowName string) *validator.Outcome {
			return CheckYesNoOnly(field, value, doc, path, rowName, spec)
		},
	}
}

// CheckFinancialAssistanceInconsistency pairs the financial-assistance
// answer with its mandatory follow-up: a "Yes" needs the dollar amount
// and description, a "No" should leave the follow-up blank.
func CheckFinancialAssistanceInconsistency(field, _ string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	answer := answerOf(doc.Field("CONTRACT", financialAssistanceField))
	detail := doc.Field("CONTRACT", financialAssistanceDetailField)

	switch answer {
	case "yes":
		if isBlank(detail) {
			return validator.Errorf("Financial assistance is marked 'Yes' but '%s' is blank.", financialAssistanceDetailField)
		}
		return validator.Match("")
	case "no":
		if !isBlank(detail) && field == financialAssistanceDetailField {
			return validator.Errorf("Financial assistance is marked 'No' but '%s' is populated.", financialAssistanceDetailField)
		}
		return validator.Match("")
	default:
		return nil
	}
}
