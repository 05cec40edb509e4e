package appraisal

import (
	"strings"

	"apprev/internal/report"
	"apprev/internal/validator"
)

// rentRow reports whether a row name addresses a rent-schedule
// comparable rather than a sale comparable.
func rentRow(rowName string) bool {
	return strings.HasPrefix(rowName, "COMPARABLE RENT") || strings.HasPrefix(rowName, "COMPARABLE NO.")
}

// CheckRentProximity bounds a rent comparable's distance at one mile.
func CheckRentProximity(field string, doc report.Document, rowName string) *validator.Outcome {
	if field != "Proximity to Subject" || !rentRow(rowName) {
		return nil
	}
	raw := doc.Field(rowName, "Proximity to Subject")
	distance, ok := parseLeadingNumber(raw)
	if !ok {
		return nil
	}
	if distance > 1 {
		return validator.Errorf("For Rent Comparables, Proximity to Subject (%s) must not be greater than 1.0 mile.", strings.TrimSpace(raw))
	}
	return validator.Match("")
}

// CheckAdjustedMonthlyRent verifies the rent arithmetic: monthly rental
// less utilities and furniture equals the adjusted monthly rent.
func CheckAdjustedMonthlyRent(field string, doc report.Document, rowName string) *validator.Outcome {
	if field != "Adjusted Monthly Rent" || !rentRow(rowName) {
		return nil
	}
	rent, rentOK := parseMoney(doc.Field(rowName, "Monthly Rental"))
	adjusted, adjOK := parseMoney(doc.Field(rowName, "Adjusted Monthly Rent"))
	if !rentOK || !adjOK {
		return nil
	}
	utilities, ok := parseMoney(doc.Field(rowName, "Less: Utilities"))
	if !ok {
		utilities = 0
	}
	furniture, ok := parseMoney(doc.Field(rowName, "Furniture"))
	if !ok {
		furniture = 0
	}
	if rent-utilities-furniture != adjusted {
		return validator.Errorf("Adjusted Monthly Rent of $%.0f does not equal Monthly Rental $%.0f less utilities $%.0f and furniture $%.0f.", adjusted, rent, utilities, furniture)
	}
	return validator.Match("")
}

// CheckLeaseDates requires a rent comparable's lease to begin before it
// expires.
func CheckLeaseDates(field string, doc report.Document, rowName string) *validator.Outcome {
	if !rentRow(rowName) {
		return nil
	}
	begins, ok := parseDate(doc.Field(rowName, "Date Lease Begins"))
	if !ok {
		return nil
	}
	expires, ok := parseDate(doc.Field(rowName, "Date Lease Expires"))
	if !ok {
		return nil
	}
	if !begins.Before(expires) {
		return validator.Errorf("Lease begins %s on or after it expires %s.", begins.Format("01/02/2006"), expires.Format("01/02/2006"))
	}
	return validator.Match("")
}

// CheckEstimatedMarketRent requires the final rent reconciliation figure
// to fall within the comparables' indicated monthly market rents.
func CheckEstimatedMarketRent(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	estimate, ok := parseMoney(value)
	if !ok {
		if isBlank(value) {
			return notBlankError(field)
		}
		return validator.Errorf("'%s' has '%s', which is not a dollar amount.", field, strings.TrimSpace(value))
	}
	var low, high float64
	found := false
	for _, rentName := range report.ComparableRents {
		indicated, ok := parseMoney(doc.Field(rentName, "Indicated Monthly Market Rent"))
		if !ok {
			continue
		}
		if !found {
			low, high = indicated, indicated
			found = true
			continue
		}
		if indicated < low {
			low = indicated
		}
		if indicated > high {
			high = indicated
		}
	}
	if !found {
		return nil
	}
	if estimate < low || estimate > high {
		return validator.Errorf("Estimated monthly market rent of $%.0f is not bracketed by the comparables' indicated rents ($%.0f to $%.0f).", estimate, low, high)
	}
	return validator.Match("")
}
