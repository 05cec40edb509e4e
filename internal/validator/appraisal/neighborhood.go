package appraisal

import (
	"strings"

	"apprev/internal/report"
	"apprev/internal/validator"
)

// The five present-land-use percentage fields that must sum to 100.
var landUseFields = []string{"One-Unit", "2-4 Unit", "Multi-Family", "Commercial", "Other"}

// LandUseTotal sums the five land-use percentages. Blank fields count as
// zero; a non-numeric entry fails the parse.
func LandUseTotal(doc report.Document) (float64, bool) {
	total := 0.0
	for _, f := range landUseFields {
		v, ok := parsePercent(doc.Field("NEIGHBORHOOD", f))
		if !ok {
			return 0, false
		}
		total += v
	}
	return total, true
}

// CheckLandUsePercentages requires the five present-land-use fields to
// sum to exactly 100, reporting the live total on deviation.
func CheckLandUsePercentages(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	if !oneOfFold(field, landUseFields) {
		return nil
	}
	if _, ok := parsePercent(value); !ok {
		return validator.Errorf("'%s' has '%s', which is not a percentage.", field, strings.TrimSpace(value))
	}
	total, ok := LandUseTotal(doc)
	if !ok {
		return validator.Errorf("Present land use percentages contain a non-numeric entry.")
	}
	if total != 100 {
		return validator.Errorf("Present land use percentages must total 100%%, but total %g%%.", total)
	}
	return validator.Match("")
}

// Single-choice neighborhood characteristics and their form choices.
var neighborhoodChoices = map[string][]string{
	"Location":        {"Urban", "Suburban", "Rural"},
	"Built-Up":        {"Over 75%", "25-75%", "Under 25%"},
	"Growth":          {"Rapid", "Stable", "Slow"},
	"Property Values": {"Increasing", "Stable", "Declining"},
	"Demand/Supply":   {"Shortage", "In Balance", "Over Supply"},
	"Marketing Time":  {"Under 3 mths", "3-6 mths", "Over 6 mths", "Under 3 months", "3-6 months", "Over 6 months"},
}

// CheckNeighborhoodChoice validates the one-of-three characteristic
// fields against the form's printed choices. Grid rows reuse labels
// like "Location" with UAD values, so a row context opts out.
func CheckNeighborhoodChoice(field, value string, _ report.Document, _ report.FieldPath, rowName string) *validator.Outcome {
	if rowName != "" {
		return nil
	}
	choices, ok := neighborhoodChoices[field]
	if !ok {
		return nil
	}
	if isBlank(value) {
		return notBlankError(field)
	}
	if oneOfFold(value, choices) {
		return validator.Match("")
	}
	return validator.Errorf("'%s' has '%s', which is not one of the form's choices.", field, strings.TrimSpace(value))
}

// CheckHousingTriple validates the one-unit housing price/age fields,
// which pack high, low, and predominant figures into one value. All
// three parts must carry a number.
func CheckHousingTriple(field, value string, _ report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	if isBlank(value) {
		return notBlankError(field)
	}
	numbers := 0
	for _, token := range strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';' || r == '/' || r == ' '
	}) {
		if _, ok := parseMoney(token); ok {
			numbers++
		}
	}
	if numbers < 3 {
		return validator.Errorf("'%s' must carry high, low, and predominant figures, but has '%s'.", field, strings.TrimSpace(value))
	}
	return validator.Match("")
}

// CheckNeighborhoodBoundaries wants the boundaries narrative to orient
// the reader with compass directions.
func CheckNeighborhoodBoundaries(field, value string, _ report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	if isBlank(value) {
		return notBlankError(field)
	}
	lower := strings.ToLower(value)
	directions := 0
	for _, d := range []string{"north", "south", "east", "west"} {
		if strings.Contains(lower, d) {
			directions++
		}
	}
	if directions < 2 {
		return validator.Errorf("'%s' should describe the boundaries with compass directions (north/south/east/west).", field)
	}
	return validator.Match("")
}
