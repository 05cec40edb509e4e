package appraisal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"apprev/internal/report"
	"apprev/internal/validator"
	"apprev/internal/validator/appraisal"
)

func newResolver() *validator.Resolver {
	return validator.NewResolver(appraisal.BuildRegistry())
}

func resolve(t *testing.T, doc report.Document, path report.FieldPath, value, rowName string) validator.FieldStatus {
	t.Helper()
	return newResolver().Resolve(path.Field(), value, doc, path, rowName, nil)
}

func TestSubjectField_NotBlank(t *testing.T) {
	doc := report.Document{"Subject": map[string]any{}}

	status := resolve(t, doc, report.FieldPath{"Subject", "County"}, "", "")

	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "'County' should not be blank.", status.Message)
	assert.True(t, status.CanOverride)
}

func TestAssignmentType_PurchaseNeedsContractPrice(t *testing.T) {
	doc := report.Document{"CONTRACT": map[string]any{}}
	path := report.FieldPath{"Subject", "Assignment Type"}

	status := resolve(t, doc, path, "Purchase Transaction", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "Assignment Type is a purchase but the Contract section has no Contract Price $.", status.Message)

	doc["CONTRACT"] = map[string]any{"Contract Price $": "$425,000"}
	status = resolve(t, doc, path, "Purchase Transaction", "")
	assert.Equal(t, validator.StyleMatch, status.Style)

	status = resolve(t, doc, path, "Cash-Out Something", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "Assignment Type 'Cash-Out Something' is not a recognized transaction type.", status.Message)
}

func TestContractPrice_MandatoryOnPurchase(t *testing.T) {
	doc := report.Document{"Assignment Type": "Purchase Transaction"}
	path := report.FieldPath{"CONTRACT", "Contract Price $"}

	status := resolve(t, doc, path, "", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "'Contract Price $' should not be blank.", status.Message)

	status = resolve(t, doc, path, "$425,000", "")
	assert.Equal(t, validator.StyleMatch, status.Style)
	assert.Equal(t, validator.SuccessMessage, status.Message)
}

func TestContractPrice_BlankOnRefinance(t *testing.T) {
	doc := report.Document{"Assignment Type": "Refinance Transaction"}
	path := report.FieldPath{"CONTRACT", "Contract Price $"}

	status := resolve(t, doc, path, "$400,000", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "'Contract Price $' should be blank on a refinance transaction, but has '$400,000'.", status.Message)

	status = resolve(t, doc, path, "", "")
	assert.Equal(t, validator.StyleNone, status.Style)
}

func TestYesNoOnly(t *testing.T) {
	doc := report.Document{}
	path := report.FieldPath{"CONTRACT", "Is property seller owner of public record?"}

	status := resolve(t, doc, path, "Yes", "")
	assert.Equal(t, validator.StyleMatch, status.Style)

	status = resolve(t, doc, path, "Maybe", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "'Is property seller owner of public record?' must be exactly 'Yes' or 'No', but has 'Maybe'.", status.Message)

	status = resolve(t, doc, path, "", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "'Is property seller owner of public record?' must be answered 'Yes' or 'No'.", status.Message)
}

func landUseDoc(oneUnit, twoFour, multi, commercial, other string) report.Document {
	return report.Document{
		"NEIGHBORHOOD": map[string]any{
			"One-Unit":     oneUnit,
			"2-4 Unit":     twoFour,
			"Multi-Family": multi,
			"Commercial":   commercial,
			"Other":        other,
		},
	}
}

func TestLandUsePercentages(t *testing.T) {
	path := report.FieldPath{"NEIGHBORHOOD", "One-Unit"}

	status := resolve(t, landUseDoc("70%", "20%", "5%", "5%", ""), path, "70%", "")
	assert.Equal(t, validator.StyleMatch, status.Style)

	status = resolve(t, landUseDoc("70%", "20%", "5%", "10%", ""), path, "70%", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "Present land use percentages must total 100%, but total 105%.", status.Message)

	status = resolve(t, landUseDoc("70%", "20%", "5%", "5%", ""), path, "abc", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "'One-Unit' has 'abc', which is not a percentage.", status.Message)
}

func TestHousingTriple(t *testing.T) {
	path := report.FieldPath{"NEIGHBORHOOD", "one unit housing price(high,low,pred)"}

	status := resolve(t, report.Document{}, path, "850 400 625", "")
	assert.Equal(t, validator.StyleMatch, status.Style)

	status = resolve(t, report.Document{}, path, "625", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "'one unit housing price(high,low,pred)' must carry high, low, and predominant figures, but has '625'.", status.Message)
}

func TestLenderNameConsistency(t *testing.T) {
	doc := report.Document{
		"CERTIFICATION": map[string]any{"Lender/Client Company Name": "Summit Bank"},
	}
	path := report.FieldPath{"Subject", "Lender/Client"}

	status := resolve(t, doc, path, "Acme Bank", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "Lender Name mismatch: Subject section has 'Acme Bank', but Appraiser section has 'Summit Bank'.", status.Message)

	status = resolve(t, doc, path, "Summit Bank", "")
	assert.Equal(t, validator.StyleMatch, status.Style)
}

func TestLenderAddressConsistency(t *testing.T) {
	doc := report.Document{
		"CERTIFICATION": map[string]any{"Lender/Client Company Address": "1 Finance Way, Dallas TX"},
	}
	path := report.FieldPath{"Subject", "Address (Lender/Client)"}

	status := resolve(t, doc, path, "2 Other Rd, Austin TX", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "Lender Address mismatch: Subject section has '2 Other Rd, Austin TX', but Appraiser section has '1 Finance Way, Dallas TX'.", status.Message)

	status = resolve(t, doc, path, "1 Finance Way, Dallas TX", "")
	assert.Equal(t, validator.StyleMatch, status.Style)
}

func TestZoningCompliance(t *testing.T) {
	path := report.FieldPath{"SITE", "Zoning Compliance"}

	status := resolve(t, report.Document{}, path, "Legal", "")
	assert.Equal(t, validator.StyleMatch, status.Style)

	status = resolve(t, report.Document{}, path, "Mostly Legal", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "'Zoning Compliance' has 'Mostly Legal', which is not one of the form's zoning compliance choices.", status.Message)

	doc := report.Document{"SITE": map[string]any{"Specific Zoning Classification": "R-1"}}
	status = resolve(t, doc, path, "No Zoning", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "Zoning Compliance is 'No Zoning' but Specific Zoning Classification has 'R-1'.", status.Message)
}

func TestFEMAConsistency(t *testing.T) {
	path := report.FieldPath{"SITE", "FEMA Special Flood Hazard Area"}

	doc := report.Document{"SITE": map[string]any{
		"FEMA Flood Zone": "",
		"FEMA Map #":      "06059C0123J",
		"FEMA Map Date":   "12/21/2018",
	}}
	status := resolve(t, doc, path, "Yes", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "FEMA Special Flood Hazard Area is 'Yes' but 'FEMA Flood Zone' is blank.", status.Message)

	doc = report.Document{"SITE": map[string]any{
		"FEMA Flood Zone": "AE",
		"FEMA Map #":      "06059C0123J",
		"FEMA Map Date":   "12/21/2018",
	}}
	status = resolve(t, doc, path, "Yes", "")
	assert.Equal(t, validator.StyleMatch, status.Style)

	status = resolve(t, doc, path, "No", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "FEMA Special Flood Hazard Area is 'No' but FEMA Flood Zone has 'AE'.", status.Message)

	doc = report.Document{"SITE": map[string]any{"FEMA Flood Zone": "X"}}
	status = resolve(t, doc, path, "No", "")
	assert.Equal(t, validator.StyleMatch, status.Style)
}

func TestUtility(t *testing.T) {
	path := report.FieldPath{"SITE", "Water"}

	status := resolve(t, report.Document{}, path, "Public", "")
	assert.Equal(t, validator.StyleMatch, status.Style)

	status = resolve(t, report.Document{}, path, "Well", "")
	assert.Equal(t, validator.StyleMatch, status.Style)

	status = resolve(t, report.Document{}, path, "Cistern", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "'Water' has 'Cistern'; a non-public utility needs a description.", status.Message)
}

func TestFinalValueBracketing(t *testing.T) {
	doc := report.Document{
		"RECONCILIATION":     map[string]any{},
		"COMPARABLE SALE #1": map[string]any{"Adjusted Sale Price of Comparable": "$290,000"},
		"COMPARABLE SALE #2": map[string]any{"Adjusted Sale Price of Comparable": "$310,000"},
	}
	path := report.FieldPath{"RECONCILIATION", "final value"}

	status := resolve(t, doc, path, "$300,000", "")
	assert.Equal(t, validator.StyleMatch, status.Style)

	status = resolve(t, doc, path, "$320,000", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "Final value of $320000 is not bracketed by the adjusted sale prices of the comparables ($290000 to $310000).", status.Message)

	status = resolve(t, doc, path, "$280,000", "")
	assert.Equal(t, validator.StyleError, status.Style)
}

func TestFinalValueConsistency(t *testing.T) {
	doc := report.Document{
		"CERTIFICATION": map[string]any{"APPRAISED VALUE OF SUBJECT PROPERTY $": "$310,000"},
	}
	path := report.FieldPath{"RECONCILIATION", "final value"}

	status := resolve(t, doc, path, "$300,000", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "Final value of $300000 does not match APPRAISED VALUE OF SUBJECT PROPERTY $ of $310000.", status.Message)

	status = resolve(t, doc, path, "$310,000", "")
	assert.Equal(t, validator.StyleMatch, status.Style)
}

func TestNetAdjustment(t *testing.T) {
	doc := report.Document{
		"COMPARABLE SALE #1": map[string]any{
			"Site Adjustment":        "$3,000",
			"View Adjustment":        "$2,000",
			"Net Adjustment (Total)": "$5,000",
		},
	}
	path := report.FieldPath{"COMPARABLE SALE #1", "Net Adjustment (Total)"}

	status := resolve(t, doc, path, "$5,000", "COMPARABLE SALE #1")
	assert.Equal(t, validator.StyleMatch, status.Style)

	doc["COMPARABLE SALE #1"].(map[string]any)["Net Adjustment (Total)"] = "$6,000"
	status = resolve(t, doc, path, "$6,000", "COMPARABLE SALE #1")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "Net Adjustment (Total) of $6000 does not match the sum of the line adjustments ($5000).", status.Message)
}

func TestAdjustedSalePrice(t *testing.T) {
	doc := report.Document{
		"COMPARABLE SALE #1": map[string]any{
			"Sale Price":                        "$400,000",
			"Net Adjustment (Total)":            "$5,000",
			"Adjusted Sale Price of Comparable": "$405,000",
		},
	}
	path := report.FieldPath{"COMPARABLE SALE #1", "Adjusted Sale Price of Comparable"}

	status := resolve(t, doc, path, "$405,000", "COMPARABLE SALE #1")
	assert.Equal(t, validator.StyleMatch, status.Style)

	doc["COMPARABLE SALE #1"].(map[string]any)["Adjusted Sale Price of Comparable"] = "$410,000"
	status = resolve(t, doc, path, "$410,000", "COMPARABLE SALE #1")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "Adjusted Sale Price of $410000 does not equal Sale Price $400000 plus Net Adjustment $5000.", status.Message)
}

func TestGridAdjustmentDirection(t *testing.T) {
	doc := report.Document{
		"Gross Living Area": "2,000",
		"COMPARABLE SALE #1": map[string]any{
			"Gross Living Area":            "2,400",
			"Gross Living Area Adjustment": "$10,000",
		},
	}
	path := report.FieldPath{"COMPARABLE SALE #1", "Gross Living Area"}

	status := resolve(t, doc, path, "2,400", "COMPARABLE SALE #1")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "Gross Living Area: comparable (2,400) is superior to the subject (2,000) but the adjustment is positive ($10000); a superior comparable is adjusted downward.", status.Message)

	doc["COMPARABLE SALE #1"].(map[string]any)["Gross Living Area Adjustment"] = "-$10,000"
	status = resolve(t, doc, path, "2,400", "COMPARABLE SALE #1")
	assert.Equal(t, validator.StyleMatch, status.Style)
}

func TestGridAdjustmentDirection_EqualValuesNoAdjustment(t *testing.T) {
	doc := report.Document{
		"Gross Living Area": "2,000",
		"COMPARABLE SALE #1": map[string]any{
			"Gross Living Area":            "2,000",
			"Gross Living Area Adjustment": "$5,000",
		},
	}
	path := report.FieldPath{"COMPARABLE SALE #1", "Gross Living Area"}

	status := resolve(t, doc, path, "2,000", "COMPARABLE SALE #1")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "Gross Living Area: comparable matches the subject (2,000) but carries a $5000 adjustment.", status.Message)
}

func TestSubjectPriorSaleDate(t *testing.T) {
	doc := report.Document{
		"CERTIFICATION": map[string]any{"Effective Date of Appraisal": "01/15/2025"},
	}
	path := report.FieldPath{"SALES_HISTORY", "Date of Prior Sale/Transfer"}

	status := resolve(t, doc, path, "06/01/2025", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "'Date of Prior Sale/Transfer' of 06/01/2025 is after the Effective Date of Appraisal 01/15/2025.", status.Message)

	status = resolve(t, doc, path, "06/01/2022", "")
	assert.Equal(t, validator.StyleMatch, status.Style)
}

func TestNeighborhoodChoice(t *testing.T) {
	path := report.FieldPath{"NEIGHBORHOOD", "Location"}

	status := resolve(t, report.Document{}, path, "Suburban", "")
	assert.Equal(t, validator.StyleMatch, status.Style)

	status = resolve(t, report.Document{}, path, "Downtown", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "'Location' has 'Downtown', which is not one of the form's choices.", status.Message)
}

func TestHighestAndBestUse(t *testing.T) {
	const field = "Is the highest and best use of subject property as improved (or as proposed per plans and specifications) the present use?"
	path := report.FieldPath{"SITE", field}

	status := resolve(t, report.Document{}, path, "Yes", "")
	assert.Equal(t, validator.StyleMatch, status.Style)

	status = resolve(t, report.Document{}, path, "No", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "'"+field+"' is answered 'No' with no explanation.", status.Message)

	status = resolve(t, report.Document{}, path, "No - zoned for future commercial use", "")
	assert.Equal(t, validator.StyleMatch, status.Style)
}

func TestGridAdjustmentDirection_ConditionRating(t *testing.T) {
	doc := report.Document{
		"Condition": "C4",
		"COMPARABLE SALE #1": map[string]any{
			"Condition":            "C2",
			"Condition Adjustment": "$5,000",
		},
	}
	path := report.FieldPath{"COMPARABLE SALE #1", "Condition Adjustment"}

	status := resolve(t, doc, path, "$5,000", "COMPARABLE SALE #1")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "Condition Adjustment: comparable (C2) is superior to the subject (C4) but the adjustment is positive ($5000); a superior comparable is adjusted downward.", status.Message)

	doc["COMPARABLE SALE #1"].(map[string]any)["Condition Adjustment"] = "-$5,000"
	status = resolve(t, doc, path, "-$5,000", "COMPARABLE SALE #1")
	assert.Equal(t, validator.StyleMatch, status.Style)
}

func TestGridAdjustmentDirection_InferiorNote(t *testing.T) {
	doc := report.Document{
		"Quality of Construction": "Q3",
		"COMPARABLE SALE #1": map[string]any{
			"Quality of Construction":            "Inferior",
			"Quality of Construction Adjustment": "-$8,000",
		},
	}
	path := report.FieldPath{"COMPARABLE SALE #1", "Quality of Construction Adjustment"}

	status := resolve(t, doc, path, "-$8,000", "COMPARABLE SALE #1")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "Quality of Construction Adjustment: comparable (Inferior) is inferior to the subject (Q3) but the adjustment is negative ($-8000); an inferior comparable is adjusted upward.", status.Message)
}

func TestRentComparableProximity(t *testing.T) {
	doc := report.Document{
		"COMPARABLE RENT #1": map[string]any{"Proximity to Subject": "1.2 miles"},
	}
	path := report.FieldPath{"COMPARABLE RENT #1", "Proximity to Subject"}

	status := resolve(t, doc, path, "1.2 miles", "COMPARABLE RENT #1")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "For Rent Comparables, Proximity to Subject (1.2 miles) must not be greater than 1.0 mile.", status.Message)

	doc["COMPARABLE RENT #1"].(map[string]any)["Proximity to Subject"] = "0.85 miles"
	status = resolve(t, doc, path, "0.85 miles", "COMPARABLE RENT #1")
	assert.Equal(t, validator.StyleMatch, status.Style)
}

func Test1004DDates_AppraisalUpdate(t *testing.T) {
	doc := report.Document{"1004D": map[string]any{
		"SUMMARY APPRAISAL UPDATE REPORT": "Checked",
		"Inspection Date":                 "02/01/2025",
	}}
	path := report.FieldPath{"1004D", "Effective Date"}

	status := resolve(t, doc, path, "", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "'Effective Date' should not be blank.", status.Message)

	status = resolve(t, doc, path, "01/15/2025", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "Inspection Date 02/01/2025 is after the update's Effective Date 01/15/2025.", status.Message)

	status = resolve(t, doc, path, "02/01/2025", "")
	assert.Equal(t, validator.StyleMatch, status.Style)
}

func Test1004DDates_CertificationOfCompletion(t *testing.T) {
	doc := report.Document{"1004D": map[string]any{
		"CERTIFICATION OF COMPLETION": "X",
		"Inspection Date":             "01/01/2025",
	}}
	path := report.FieldPath{"1004D", "Effective Date"}

	// The completion effective date must fall on or after the inspection.
	status := resolve(t, doc, path, "02/01/2025", "")
	assert.Equal(t, validator.StyleMatch, status.Style)

	status = resolve(t, doc, path, "01/01/2025", "")
	assert.Equal(t, validator.StyleMatch, status.Style)

	status = resolve(t, doc, path, "12/15/2024", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "Effective Date 12/15/2024 is before the completion's Inspection Date 01/01/2025.", status.Message)
}

func Test1004DDates_CompletionRequiresInspection(t *testing.T) {
	doc := report.Document{"1004D": map[string]any{
		"CERTIFICATION OF COMPLETION": "X",
	}}

	status := resolve(t, doc, report.FieldPath{"1004D", "Inspection Date"}, "", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "'Inspection Date' should not be blank.", status.Message)

	status = resolve(t, doc, report.FieldPath{"1004D", "Effective Date"}, "02/01/2025", "")
	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "The certification of completion requires an Inspection Date.", status.Message)
}

func TestGridValueLabelKeepsSectionRule(t *testing.T) {
	// "View" is both a site field and a sales-grid row; the site
	// not-blank check must survive the grid registration.
	status := resolve(t, report.Document{}, report.FieldPath{"SITE", "View"}, "", "")

	assert.Equal(t, validator.StyleError, status.Style)
	assert.Equal(t, "'View' should not be blank.", status.Message)
}

func findingByName(findings []appraisal.RequirementFinding, name string) (appraisal.RequirementFinding, bool) {
	for _, f := range findings {
		if f.Name == name {
			return f, true
		}
	}
	return appraisal.RequirementFinding{}, false
}

func TestEvaluateStateRequirements_California(t *testing.T) {
	doc := report.Document{"State": "CA"}

	findings := appraisal.EvaluateStateRequirements(doc)
	assert.NotEmpty(t, findings)

	detector, ok := findingByName(findings, "Smoke/CO detector comment")
	assert.True(t, ok)
	assert.Equal(t, appraisal.StatusNotFulfilled, detector.Status)

	heater, ok := findingByName(findings, "Double-strapped water heater comment")
	assert.True(t, ok)
	assert.Equal(t, appraisal.StatusNotFulfilled, heater.Status)

	invoice, ok := findingByName(findings, "Invoice attachment")
	assert.True(t, ok)
	assert.Equal(t, appraisal.StatusNotApplicable, invoice.Status)
}

func TestEvaluateStateRequirements_NarrativeSatisfiesComments(t *testing.T) {
	doc := report.Document{
		"State": "CA",
		"IMPROVEMENTS": map[string]any{
			"Additional features": "Smoke detectors present; water heater is double strapped per code.",
		},
	}

	findings := appraisal.EvaluateStateRequirements(doc)

	detector, _ := findingByName(findings, "Smoke/CO detector comment")
	assert.Equal(t, appraisal.StatusFulfilled, detector.Status)

	heater, _ := findingByName(findings, "Double-strapped water heater comment")
	assert.Equal(t, appraisal.StatusFulfilled, heater.Status)
}

func TestEvaluateStateRequirements_BlankState(t *testing.T) {
	findings := appraisal.EvaluateStateRequirements(report.Document{})

	assert.Len(t, findings, 1)
	assert.Equal(t, appraisal.StatusNeedsReview, findings[0].Status)
}
