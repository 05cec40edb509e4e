package appraisal

import (
	"apprev/internal/report"
	"apprev/internal/validator"
)

// CheckCostApproachArithmetic recomputes the cost-approach bottom line:
// site value plus depreciated improvements plus as-is site improvements
// must equal the indicated value.
func CheckCostApproachArithmetic(field, _ string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	siteValue, siteOK := parseMoney(doc.Field("COST_APPROACH", "OPINION OF SITE VALUE = $ ................................................"))
	depreciated, depOK := parseMoney(doc.Field("COST_APPROACH", "Depreciated Cost of Improvements......................................................=$ "))
	asIs, asIsOK := parseMoney(doc.Field("COST_APPROACH", "“As-is” Value of Site Improvements......................................................=$"))
	indicated, indOK := parseMoney(doc.Field("COST_APPROACH", "Indicated Value By Cost Approach......................................................=$"))

	if !siteOK || !depOK || !indOK {
		return nil
	}
	if !asIsOK {
		asIs = 0
	}
	if siteValue+depreciated+asIs != indicated {
		return validator.Errorf("Indicated Value By Cost Approach of $%.0f does not equal site value $%.0f plus depreciated improvements $%.0f plus site improvements $%.0f.",
			indicated, siteValue, depreciated, asIs)
	}
	return validator.Match("")
}

// CheckGRMArithmetic verifies the income approach line: market rent
// times the gross rent multiplier equals the indicated value.
func CheckGRMArithmetic(field, _ string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	rent, rentOK := parseMoney(doc.Field("INCOME_APPROACH", "Estimated Monthly Market Rent $"))
	grm, grmOK := parseMoney(doc.Field("INCOME_APPROACH", "X Gross Rent Multiplier  = $"))
	indicated, indOK := parseMoney(doc.Field("INCOME_APPROACH", "Indicated Value by Income Approach"))
	if !rentOK || !grmOK || !indOK {
		return nil
	}
	product := rent * grm
	// Extracted figures round to whole dollars; allow that much slack.
	if diff := product - indicated; diff > 1 || diff < -1 {
		return validator.Errorf("Indicated Value by Income Approach of $%.0f does not equal market rent $%.0f times GRM %g ($%.0f).", indicated, rent, grm, product)
	}
	return validator.Match("")
}
