package appraisal

import (
	"apprev/internal/report"
	"apprev/internal/validator"
)

// 1004D section and checkbox labels.
const (
	form1004DSection       = "1004D"
	updateReportCheckbox   = "SUMMARY APPRAISAL UPDATE REPORT"
	completionCheckbox     = "CERTIFICATION OF COMPLETION"
	form1004DEffectiveDate = "Effective Date"
	form1004DInspection    = "Inspection Date"
)

// checkboxChecked interprets the extracted value of a form checkbox.
func checkboxChecked(v string) bool {
	return oneOfFold(v, []string{"checked", "x", "yes", "true", "selected", "1"})
}

// Check1004DDates enforces the date relationship for whichever half of
// the 1004D is in play: an appraisal update requires the effective date,
// with any inspection date on or before it; a certification of
// completion requires the inspection date, with any effective date on or
// after it.
func Check1004DDates(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	update := checkboxChecked(doc.Field(form1004DSection, updateReportCheckbox))
	completion := checkboxChecked(doc.Field(form1004DSection, completionCheckbox))
	if !update && !completion {
		return nil
	}

	effectiveRaw := doc.Field(form1004DSection, form1004DEffectiveDate)
	inspectionRaw := doc.Field(form1004DSection, form1004DInspection)
	if field == form1004DEffectiveDate {
		effectiveRaw = value
	}
	if field == form1004DInspection {
		inspectionRaw = value
	}

	effective, effectiveOK := parseDate(effectiveRaw)
	inspection, inspectionOK := parseDate(inspectionRaw)

	if update {
		if isBlank(effectiveRaw) {
			if field == form1004DEffectiveDate {
				return notBlankError(field)
			}
			return validator.Errorf("The appraisal update requires an Effective Date.")
		}
		if effectiveOK && inspectionOK && inspection.After(effective) {
			return validator.Errorf("Inspection Date %s is after the update's Effective Date %s.",
				inspection.Format("01/02/2006"), effective.Format("01/02/2006"))
		}
		return validator.Match("")
	}

	if isBlank(inspectionRaw) {
		if field == form1004DInspection {
			return notBlankError(field)
		}
		return validator.Errorf("The certification of completion requires an Inspection Date.")
	}
	if effectiveOK && inspectionOK && effective.Before(inspection) {
		return validator.Errorf("Effective Date %s is before the completion's Inspection Date %s.",
			effective.Format("01/02/2006"), inspection.Format("01/02/2006"))
	}
	return validator.Match("")
}
