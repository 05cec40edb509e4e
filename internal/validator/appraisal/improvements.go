package appraisal

import (
	"strings"

	"apprev/internal/report"
	"apprev/internal/validator"
)

// Fields recorded as "Material/Condition" pairs on the improvements
// section; both halves must be present, separated by a slash.
var materialConditionFields = []string{
	"Foundation Walls (Material/Condition)",
	"Exterior Walls (Material/Condition)",
	"Roof Surface (Material/Condition)",
	"Gutters & Downspouts (Material/Condition)",
	"Window Type (Material/Condition)",
	"Floors (Material/Condition)",
	"Walls (Material/Condition)",
	"Trim/Finish (Material/Condition)",
	"Bath Floor (Material/Condition)",
	"Bath Wainscot (Material/Condition)",
}

// CheckMaterialCondition requires a slash-separated material/condition
// pair with both halves populated.
func CheckMaterialCondition(field, value string, _ report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	if !oneOfFold(field, materialConditionFields) {
		return nil
	}
	if isBlank(value) {
		return notBlankError(field)
	}
	parts := strings.SplitN(value, "/", 2)
	if len(parts) < 2 || isBlank(parts[0]) || isBlank(parts[1]) {
		return validator.Errorf("'%s' must be recorded as Material/Condition, but has '%s'.", field, strings.TrimSpace(value))
	}
	return validator.Match("")
}

// CheckConstructionStatus validates the Existing/Proposed/Under Const.
// choice and cross-checks the reconciliation: a proposed or
// under-construction subject must be appraised subject to completion.
func CheckConstructionStatus(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	if isBlank(value) {
		return notBlankError(field)
	}
	if !oneOfFold(value, []string{"Existing", "Proposed", "Under Construction", "Under Const.", "Under Const"}) {
		return validator.Errorf("'%s' must be Existing, Proposed, or Under Construction, but has '%s'.", field, strings.TrimSpace(value))
	}
	if !containsFold(value, "existing") {
		basis := doc.Field("RECONCILIATION", reconciliationBasisField)
		if !isBlank(basis) && !containsFold(basis, "subject to completion") {
			return validator.Errorf("'%s' is '%s' but the appraisal is not made subject to completion per plans and specifications.", field, strings.TrimSpace(value))
		}
	}
	return validator.Match("")
}

// CheckBasementConsistency cross-checks the foundation type against the
// basement area and finish fields.
func CheckBasementConsistency(field, _ string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	foundation := doc.Field("IMPROVEMENTS", "Foundation Type")
	area := doc.Field("IMPROVEMENTS", "Basement Area sq.ft.")
	finish := doc.Field("IMPROVEMENTS", "Basement Finish %")

	hasBasement := containsFold(foundation, "basement")
	switch {
	case hasBasement && isBlank(area):
		return validator.Errorf("Foundation Type indicates a basement but 'Basement Area sq.ft.' is blank.")
	case hasBasement && isBlank(finish):
		return validator.Errorf("Foundation Type indicates a basement but 'Basement Finish %%' is blank.")
	case !hasBasement && !isBlank(area) && !oneOfFold(area, []string{"0", "none", "n/a"}):
		if field == "Foundation Type" || field == "Basement Area sq.ft." {
			return validator.Errorf("'Basement Area sq.ft.' has '%s' but Foundation Type does not indicate a basement.", strings.TrimSpace(area))
		}
		return nil
	case isBlank(foundation):
		if field == "Foundation Type" {
			return notBlankError(field)
		}
		return nil
	default:
		return validator.Match("")
	}
}

// CheckYearBuiltEffectiveAge requires a plausible year built and an
// effective age that does not exceed the actual age.
func CheckYearBuiltEffectiveAge(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	yearBuiltRaw := doc.Field("IMPROVEMENTS", "Year Built")
	effectiveRaw := doc.Field("IMPROVEMENTS", "Effective Age (Yrs)")

	if field == "Year Built" && isBlank(value) {
		return notBlankError(field)
	}
	year, ok := parseYear(yearBuiltRaw)
	if !ok {
		if field == "Year Built" {
			return validator.Errorf("'Year Built' has '%s', which is not a recognizable year.", strings.TrimSpace(yearBuiltRaw))
		}
		return nil
	}
	if isBlank(effectiveRaw) {
		return nil
	}
	effective, ok := parseLeadingNumber(effectiveRaw)
	if !ok {
		if field == "Effective Age (Yrs)" {
			return validator.Errorf("'Effective Age (Yrs)' has '%s', which is not a number of years.", strings.TrimSpace(effectiveRaw))
		}
		return nil
	}
	actualAge := float64(appraisalYear(doc) - year)
	if actualAge >= 0 && effective > actualAge {
		return validator.Errorf("Effective Age of %g years exceeds the actual age of %g years from Year Built %d.", effective, actualAge, year)
	}
	return validator.Match("")
}

// CheckCarStorage validates the car-storage choice and its paired count
// fields: a garage needs a garage car count, a driveway a driveway count.
func CheckCarStorage(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	if field != "Car Storage" {
		return nil
	}
	if isBlank(value) {
		return notBlankError(field)
	}
	lower := strings.ToLower(value)
	switch {
	case strings.Contains(lower, "none"):
		return validator.Match("")
	case strings.Contains(lower, "garage"):
		if isBlank(doc.Field("IMPROVEMENTS", "Garage # of Cars")) {
			return validator.Errorf("Car Storage indicates a garage but 'Garage # of Cars' is blank.")
		}
		return validator.Match("")
	case strings.Contains(lower, "driveway"):
		if isBlank(doc.Field("IMPROVEMENTS", "Driveway # of Cars")) {
			return validator.Errorf("Car Storage indicates a driveway but 'Driveway # of Cars' is blank.")
		}
		return validator.Match("")
	case strings.Contains(lower, "carport"):
		if isBlank(doc.Field("IMPROVEMENTS", "Carport # of Cars")) {
			return validator.Errorf("Car Storage indicates a carport but 'Carport # of Cars' is blank.")
		}
		return validator.Match("")
	default:
		return validator.Errorf("'%s' has '%s', which is not a recognized car storage type.", field, strings.TrimSpace(value))
	}
}

// CheckHeatingFuel validates the heating fuel against the common closed
// set and requires it whenever a heating type is on file.
func CheckHeatingFuel(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	if field != "Fuel" {
		return nil
	}
	if isBlank(value) {
		if !isBlank(doc.Field("IMPROVEMENTS", "Heating Type")) {
			return validator.Errorf("Heating Type is on file but 'Fuel' is blank.")
		}
		return nil
	}
	if oneOfFold(value, []string{"Gas", "Oil", "Electric", "Propane", "Solar", "Wood", "Other"}) {
		return validator.Match("")
	}
	return validator.Errorf("'%s' has '%s', which is not a recognized heating fuel.", field, strings.TrimSpace(value))
}

// CheckRoomCounts requires the above-grade room, bedroom, and bath
// counts to be numeric and mutually plausible.
func CheckRoomCounts(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	rooms, roomsOK := parseLeadingNumber(doc.Field("IMPROVEMENTS", "Finished area above grade Rooms"))
	bedrooms, bedroomsOK := parseLeadingNumber(doc.Field("IMPROVEMENTS", "Finished area above grade Bedrooms"))

	if isBlank(value) {
		return notBlankError(field)
	}
	if _, ok := parseLeadingNumber(value); !ok {
		return validator.Errorf("'%s' has '%s', which is not a number.", field, strings.TrimSpace(value))
	}
	if roomsOK && bedroomsOK && bedrooms >= rooms {
		return validator.Errorf("Above-grade bedrooms (%g) must be fewer than total rooms (%g).", bedrooms, rooms)
	}
	return validator.Match("")
}

// appraisalYear is the effective-date year, falling back to the report
// signature date then the current year.
func appraisalYear(doc report.Document) int {
	if t, ok := parseDate(doc.Field("CERTIFICATION", "Effective Date of Appraisal")); ok {
		return t.Year()
	}
	if t, ok := parseDate(doc.Field("CERTIFICATION", "Date of Signature and Report")); ok {
		return t.Year()
	}
	return currentYear()
}
