package appraisal

import (
	"strings"

	"apprev/internal/report"
	"apprev/internal/validator"
)

// Zoning compliance choices on the 1004/1073 site sections.
var zoningComplianceChoices = []string{
	"Legal",
	"Legal Nonconforming (Grandfathered Use)",
	"No Zoning",
	"Illegal (describe)",
	"Illegal",
}

// CheckZoningCompliance validates the closed zoning choice and its
// agreement with the specific classification field: "No Zoning" with a
// classification on file is inconsistent.
func CheckZoningCompliance(field, value string, doc report.Document, path report.FieldPath, _ string) *validator.Outcome {
	if isBlank(value) {
		return notBlankError(field)
	}
	if !oneOfFold(value, zoningComplianceChoices) {
		return validator.Errorf("'%s' has '%s', which is not one of the form's zoning compliance choices.", field, strings.TrimSpace(value))
	}
	classification := siteValue(doc, path, "Specific Zoning Classification")
	if containsFold(value, "no zoning") && !isBlank(classification) && !oneOfFold(classification, []string{"none", "n/a"}) {
		return validator.Errorf("Zoning Compliance is 'No Zoning' but Specific Zoning Classification has '%s'.", strings.TrimSpace(classification))
	}
	return validator.Match("")
}

// CheckFEMAConsistency treats the four FEMA fields as one joint group:
// in a special flood hazard area the zone, map number, and map date are
// mandatory; outside one they should be blank or neutral.
func CheckFEMAConsistency(field, value string, doc report.Document, path report.FieldPath, _ string) *validator.Outcome {
	// The resolved field carries the live edit; its siblings come off
	// the document.
	read := func(label string) string {
		if field == label {
			return value
		}
		return siteValue(doc, path, label)
	}
	area := answerOf(read("FEMA Special Flood Hazard Area"))
	zone := read("FEMA Flood Zone")
	mapNum := read("FEMA Map #")
	mapDate := read("FEMA Map Date")

	switch area {
	case "yes":
		for label, v := range map[string]string{"FEMA Flood Zone": zone, "FEMA Map #": mapNum, "FEMA Map Date": mapDate} {
			if isBlank(v) {
				return validator.Errorf("FEMA Special Flood Hazard Area is 'Yes' but '%s' is blank.", label)
			}
		}
		return validator.Match("")
	case "no":
		// Map number and date are commonly carried even outside a hazard
		// area; only a non-neutral zone designation conflicts.
		if !isBlank(zone) && !oneOfFold(zone, []string{"X", "Zone X", "C", "N/A", "None"}) {
			return validator.Errorf("FEMA Special Flood Hazard Area is 'No' but FEMA Flood Zone has '%s'.", strings.TrimSpace(zone))
		}
		return validator.Match("")
	case "":
		if field == "FEMA Special Flood Hazard Area" {
			return notBlankError(field)
		}
		return nil
	default:
		if field == "FEMA Special Flood Hazard Area" {
			return validator.Errorf("'%s' must be answered 'Yes' or 'No'.", field)
		}
		return nil
	}
}

// Utility fields whose value must name Public or a described Other.
var utilityFields = []string{"Electricity", "Gas", "Water", "Sanitary Sewer"}

// CheckUtility validates a utility line: Public stands alone, anything
// else counts as Other and needs a description.
func CheckUtility(field, value string, _ report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	if !oneOfFold(field, utilityFields) {
		return nil
	}
	if isBlank(value) {
		return notBlankError(field)
	}
	if containsFold(value, "public") {
		return validator.Match("")
	}
	if len(strings.Fields(value)) < 2 && !oneOfFold(value, []string{"none", "n/a", "well", "septic"}) {
		return validator.Errorf("'%s' has '%s'; a non-public utility needs a description.", field, strings.TrimSpace(value))
	}
	return validator.Match("")
}

// YesNoCommentSpec drives the paired answer-plus-comment check: the
// unwanted answer is the one that obliges a describing comment.
type YesNoCommentSpec struct {
	Name     string
	Unwanted string
}

// CheckYesNoWithComment validates a yes/no question whose unwanted
// answer must carry a comment. The comment may trail the answer in the
// same value ("Yes - easement along rear lot line").
func CheckYesNoWithComment(field, value string, _ report.Document, _ report.FieldPath, _ string, spec YesNoCommentSpec) *validator.Outcome {
	if field != spec.Name {
		return nil
	}
	answer := answerOf(value)
	switch answer {
	case "":
		return validator.Errorf("'%s' must be answered 'Yes' or 'No'.", field)
	case "yes", "no":
		if answer == strings.ToLower(spec.Unwanted) && isBlank(commentAfterAnswer(value)) {
			return validator.Errorf("'%s' is answered '%s' but has no describing comment.", field, spec.Unwanted)
		}
		return validator.Match("")
	default:
		return validator.Errorf("'%s' must begin with 'Yes' or 'No', but has '%s'.", field, strings.TrimSpace(value))
	}
}

// YesNoCommentRule binds CheckYesNoWithComment to a field and polarity.
func YesNoCommentRule(name, unwanted string) validator.Rule {
	spec := YesNoCommentSpec{Name: name, Unwanted: unwanted}
	return validator.Rule{
		Name: "yes_no_with_comment",
		Check: func(field, value string, doc report.Document, path report.FieldPath, rowName string) *validator.Outcome {
			return CheckYesNoWithComment(field, value, doc, path, rowName, spec)
		},
	}
}

// CheckHighestAndBestUse wants a "Yes"; a "No" present use demands an
// explanation and still flags for reviewer attention.
func CheckHighestAndBestUse(field, value string, _ report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	answer := answerOf(value)
	switch answer {
	case "":
		return notBlankError(field)
	case "yes":
		return validator.Match("")
	case "no":
		if isBlank(commentAfterAnswer(value)) {
			return validator.Errorf("'%s' is answered 'No' with no explanation.", field)
		}
		return validator.Match("")
	default:
		return validator.Errorf("'%s' must begin with 'Yes' or 'No', but has '%s'.", field, strings.TrimSpace(value))
	}
}

// siteValue reads a sibling site field from whichever site section the
// resolved field lives in, falling back to SITE then PROJECT_SITE.
func siteValue(doc report.Document, path report.FieldPath, field string) string {
	if section := path.Section(); section != "" {
		if v := doc.Field(section, field); v != "" {
			return v
		}
	}
	if v := doc.Field("SITE", field); v != "" {
		return v
	}
	return doc.Field("PROJECT_SITE", field)
}
