package appraisal

import (
	"strings"

	"apprev/internal/report"
	"apprev/internal/validator"
)

// Grid rows whose values compare numerically: a larger figure means the
// comparable is superior and its adjustment must be negative.
var numericGridRows = map[string]bool{
	"Site":              true,
	"Actual Age":        false, // larger age is inferior, sign flips
	"Bedrooms":          true,
	"Baths":             true,
	"Gross Living Area": true,
}

// Grid rows rated on the UAD quality/condition scale (C1 superior to
// C6, Q1 superior to Q6) or carrying a superior/inferior note.
var ratedGridRows = map[string]bool{
	"Condition":               true,
	"Quality of Construction": true,
	"Functional Utility":      true,
	"Heating/Cooling":         true,
	"Energy Efficient Items":  true,
	"Porch/Patio/Deck":        true,
	"Design (Style)":          true,
}

// parseUADRating extracts a C1-C6 or Q1-Q6 rating from a grid value
// such as "C3" or "Q4;Updated kitchen".
func parseUADRating(raw string) (int, bool) {
	s := strings.ToUpper(raw)
	for i := 0; i+1 < len(s); i++ {
		if s[i] != 'C' && s[i] != 'Q' {
			continue
		}
		if s[i+1] < '1' || s[i+1] > '6' {
			continue
		}
		if i > 0 && s[i-1] >= 'A' && s[i-1] <= 'Z' {
			continue
		}
		if i+2 < len(s) && s[i+2] >= '0' && s[i+2] <= '9' {
			continue
		}
		return int(s[i+1] - '0'), true
	}
	return 0, false
}

// ratedDelta compares a rated row. Positive means the comparable is
// superior. An explicit superior/inferior note on the comparable wins;
// otherwise both sides must carry a UAD rating, where the lower code is
// the better one.
func ratedDelta(compRaw, subjRaw string) (float64, bool) {
	if containsFold(compRaw, "superior") {
		return 1, true
	}
	if containsFold(compRaw, "inferior") {
		return -1, true
	}
	comp, compOK := parseUADRating(compRaw)
	subj, subjOK := parseUADRating(subjRaw)
	if !compOK || !subjOK {
		return 0, false
	}
	return float64(subj - comp), true
}

// CheckGridAdjustmentDirection compares a comparable's attribute to the
// subject's and flags a dollar adjustment pointing the wrong way: a
// superior comparable must be adjusted downward, an inferior one upward,
// and an equal one not at all.
func CheckGridAdjustmentDirection(field string, doc report.Document, rowName string) *validator.Outcome {
	row, isAdjustment, ok := report.GridRowFor(field)
	if !ok || row.AdjustmentKey == "" {
		return nil
	}
	largerIsSuperior, numeric := numericGridRows[row.Label]
	rated := ratedGridRows[row.Label]
	if !numeric && !rated {
		return nil
	}

	compRaw := doc.Field(rowName, row.ValueKey)
	subjRaw := subjectGridValue(doc, row)
	adjRaw := doc.Field(rowName, row.AdjustmentKey)

	var delta float64
	if rated {
		d, ok := ratedDelta(compRaw, subjRaw)
		if !ok {
			return nil
		}
		delta = d
	} else {
		compVal, compOK := parseLeadingNumber(compRaw)
		subjVal, subjOK := parseLeadingNumber(subjRaw)
		if !compOK || !subjOK {
			return nil
		}
		delta = compVal - subjVal
		if !largerIsSuperior {
			delta = -delta
		}
	}
	adj, adjOK := parseMoney(adjRaw)
	if !adjOK {
		adj = 0
	}

	label := row.Label
	if isAdjustment {
		label = row.AdjustmentKey
	}
	switch {
	case delta == 0 && adj != 0:
		return validator.Errorf("%s: comparable matches the subject (%s) but carries a $%.0f adjustment.", label, strings.TrimSpace(compRaw), adj)
	case delta > 0 && adj > 0:
		return validator.Errorf("%s: comparable (%s) is superior to the subject (%s) but the adjustment is positive ($%.0f); a superior comparable is adjusted downward.", label, strings.TrimSpace(compRaw), strings.TrimSpace(subjRaw), adj)
	case delta < 0 && adj < 0:
		return validator.Errorf("%s: comparable (%s) is inferior to the subject (%s) but the adjustment is negative ($%.0f); an inferior comparable is adjusted upward.", label, strings.TrimSpace(compRaw), strings.TrimSpace(subjRaw), adj)
	default:
		return validator.Match("")
	}
}

// GridAdjustmentRule wires the direction check as a row-context rule.
func GridAdjustmentRule() validator.Rule {
	return validator.Rule{Name: "grid_adjustment_direction", Row: CheckGridAdjustmentDirection}
}

// CheckNetAdjustment recomputes a comparable's net adjustment from its
// line adjustments and compares it to the stated total.
func CheckNetAdjustment(field string, doc report.Document, rowName string) *validator.Outcome {
	if field != "Net Adjustment (Total)" {
		return nil
	}
	statedRaw := doc.Field(rowName, "Net Adjustment (Total)")
	stated, ok := parseMoney(statedRaw)
	if !ok {
		return nil
	}
	sum := 0.0
	found := false
	for _, row := range report.SalesGridRows {
		if row.AdjustmentKey == "" {
			continue
		}
		if adj, ok := parseMoney(doc.Field(rowName, row.AdjustmentKey)); ok {
			sum += adj
			found = true
		}
	}
	if !found {
		return nil
	}
	if sum != stated {
		return validator.Errorf("Net Adjustment (Total) of $%.0f does not match the sum of the line adjustments ($%.0f).", stated, sum)
	}
	return validator.Match("")
}

// CheckAdjustedSalePrice verifies Adjusted Sale Price = Sale Price + Net
// Adjustment for the comparable.
func CheckAdjustedSalePrice(field string, doc report.Document, rowName string) *validator.Outcome {
	if field != "Adjusted Sale Price of Comparable" {
		return nil
	}
	adjusted, ok := parseMoney(doc.Field(rowName, "Adjusted Sale Price of Comparable"))
	if !ok {
		return nil
	}
	salePrice, ok := parseMoney(doc.Field(rowName, "Sale Price"))
	if !ok {
		return nil
	}
	net, ok := parseMoney(doc.Field(rowName, "Net Adjustment (Total)"))
	if !ok {
		net = 0
	}
	if salePrice+net != adjusted {
		return validator.Errorf("Adjusted Sale Price of $%.0f does not equal Sale Price $%.0f plus Net Adjustment $%.0f.", adjusted, salePrice, net)
	}
	return validator.Match("")
}

// CheckSaleProximity flags a sale comparable more than a mile from the
// subject unless the distance is explained elsewhere; beyond the form's
// customary range the reviewer needs to see it.
func CheckSaleProximity(field string, doc report.Document, rowName string) *validator.Outcome {
	if field != "Proximity to Subject" || rentRow(rowName) {
		return nil
	}
	raw := doc.Field(rowName, "Proximity to Subject")
	if isBlank(raw) {
		return notBlankError(field)
	}
	if _, ok := parseLeadingNumber(raw); !ok {
		return validator.Errorf("'Proximity to Subject' has '%s', which does not begin with a distance.", strings.TrimSpace(raw))
	}
	return validator.Match("")
}

// CheckSubjectPriorSaleDate requires the subject's prior sale, when one
// is recorded, to predate the effective date of the appraisal.
func CheckSubjectPriorSaleDate(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	sold, ok := parseDate(value)
	if !ok {
		return nil
	}
	effective, ok := parseDate(doc.Field("CERTIFICATION", "Effective Date of Appraisal"))
	if !ok {
		return nil
	}
	if sold.After(effective) {
		return validator.Errorf("'%s' of %s is after the Effective Date of Appraisal %s.", field, sold.Format("01/02/2006"), effective.Format("01/02/2006"))
	}
	return validator.Match("")
}

// CheckCompPriorSaleDate applies the same bound per comparable: a prior
// transfer recorded after the comparable's date of sale is impossible.
func CheckCompPriorSaleDate(field string, doc report.Document, rowName string) *validator.Outcome {
	sold, ok := parseDate(doc.Field(rowName, "Date of Prior Sale/Transfer"))
	if !ok {
		return nil
	}
	saleDate, ok := parseDate(doc.Field(rowName, "Date of Sale/Time"))
	if !ok {
		return nil
	}
	if sold.After(saleDate) {
		return validator.Errorf("Prior sale/transfer of %s postdates the comparable's date of sale %s.", sold.Format("01/02/2006"), saleDate.Format("01/02/2006"))
	}
	return validator.Match("")
}

// subjectGridValue reads the subject-side value for a grid row: the
// dedicated subject key at the root when one exists, the row's own key
// otherwise, with the improvements section as fallback.
func subjectGridValue(doc report.Document, row report.GridRow) string {
	key := row.ValueKey
	if row.SubjectValueKey != "" {
		key = row.SubjectValueKey
	}
	if v := doc.Root(key); v != "" {
		return v
	}
	if v := doc.Field("Subject", key); v != "" {
		return v
	}
	return doc.Field("IMPROVEMENTS", gridRowImprovementsKey(row))
}

// gridRowImprovementsKey maps grid rows whose subject-side data lives on
// the improvements section.
func gridRowImprovementsKey(row report.GridRow) string {
	switch row.Label {
	case "Gross Living Area":
		return "Square Feet of Gross Living Area Above Grade"
	case "Bedrooms":
		return "Finished area above grade Bedrooms"
	case "Baths":
		return "Finished area above grade Bath(s)"
	case "Design (Style)":
		return "Design (Style)"
	default:
		return row.ValueKey
	}
}
