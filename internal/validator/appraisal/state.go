package appraisal

import (
	"strings"

	"apprev/internal/report"
	"apprev/internal/validator"
)

// Requirement statuses surfaced to the review checklist.
const (
	StatusFulfilled     = "Fulfilled"
	StatusNotFulfilled  = "Not Fulfilled"
	StatusNotApplicable = "Not Applicable"
	StatusNeedsReview   = "Needs Review"
)

// State-law requirement tables. Kept as data so the lists read the way
// the state boards publish them.
var (
	statesRequiringAMCFee = []string{"NV", "NM", "UT"}

	statesRequiringDetectorComment   = []string{"CA", "UT", "VA", "WI"}
	statesRequiringWaterHeaterStrap  = []string{"CA", "UT"}
	statesRequiringInvoiceAttachment = []string{"WI", "NY"}
)

// Illinois publishes a single statewide AMC license.
const (
	illinoisAMCLicense    = "558000312"
	illinoisAMCExpiration = "12/31/2026"
)

// RequirementFinding is one state-law checklist row.
type RequirementFinding struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// subjectState returns the upper-cased two-letter subject state.
func subjectState(doc report.Document) string {
	return strings.ToUpper(strings.TrimSpace(subjectValue(doc, "State")))
}

// CheckAppraisersFee requires the fee disclosure field in states that
// mandate it; elsewhere it has no opinion.
func CheckAppraisersFee(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	state := subjectState(doc)
	if !stateIn(state, report.StatesRequiringFeeDisclosure) {
		return nil
	}
	if isBlank(value) {
		return validator.Errorf("%s requires the appraiser's fee to be disclosed, but '%s' is blank.", state, field)
	}
	if _, ok := parseMoney(value); !ok {
		return validator.Errorf("'%s' has '%s', which is not a dollar amount.", field, strings.TrimSpace(value))
	}
	return validator.Match("")
}

// CheckAMCLicense requires the AMC license number in states that mandate
// it, and pins Illinois to its published statewide license.
func CheckAMCLicense(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	state := subjectState(doc)
	if !stateIn(state, report.StatesRequiringAMCLicense) {
		return nil
	}
	if isBlank(value) {
		return validator.Errorf("%s requires the AMC license number, but '%s' is blank.", state, field)
	}
	if state == "IL" && !strings.Contains(value, illinoisAMCLicense) {
		return validator.Errorf("Illinois AMC license must be %s (expires %s), but '%s' has '%s'.", illinoisAMCLicense, illinoisAMCExpiration, field, strings.TrimSpace(value))
	}
	return validator.Match("")
}

// EvaluateStateRequirements builds the state-law checklist for the
// subject property from the requirement tables and the document's
// comment fields.
func EvaluateStateRequirements(doc report.Document) []RequirementFinding {
	state := subjectState(doc)
	if state == "" {
		return []RequirementFinding{{Name: "State requirements", Status: StatusNeedsReview, Detail: "Subject state is blank."}}
	}

	narrative := strings.ToLower(strings.Join([]string{
		doc.Field("IMPROVEMENTS", "Additional features"),
		doc.Field("IMPROVEMENTS", "Describe the condition of the property"),
		doc.Field("RECONCILIATION", reconciliationBasisField),
	}, " "))

	findings := []RequirementFinding{
		presenceFinding("Appraiser's fee disclosure", state, report.StatesRequiringFeeDisclosure,
			!isBlank(subjectValue(doc, "Appraiser's Fee")),
			"Subject section has no Appraiser's Fee entry."),
		presenceFinding("AMC license number", state, report.StatesRequiringAMCLicense,
			!isBlank(subjectValue(doc, "AMC License #")),
			"Subject section has no AMC License # entry."),
		presenceFinding("AMC fee inclusion", state, statesRequiringAMCFee,
			!isBlank(subjectValue(doc, "Appraiser's Fee")) || !isBlank(subjectValue(doc, "AMC License #")),
			"Neither an AMC fee nor license entry is on file."),
		presenceFinding("Smoke/CO detector comment", state, statesRequiringDetectorComment,
			strings.Contains(narrative, "smoke") || strings.Contains(narrative, "detector") || strings.Contains(narrative, "101.647"),
			"No smoke or carbon monoxide detector comment found in the report narrative."),
		presenceFinding("Double-strapped water heater comment", state, statesRequiringWaterHeaterStrap,
			strings.Contains(narrative, "water heater") && (strings.Contains(narrative, "strap") || strings.Contains(narrative, "braced")),
			"No double-strapped water heater comment found in the report narrative."),
	}

	findings = append(findings, invoiceFinding(doc, state))

	if state == "IL" {
		detail := ""
		status := StatusFulfilled
		if !strings.Contains(subjectValue(doc, "AMC License #"), illinoisAMCLicense) {
			status = StatusNotFulfilled
			detail = "Illinois AMC license " + illinoisAMCLicense + " (expires " + illinoisAMCExpiration + ") is not on file."
		}
		findings = append(findings, RequirementFinding{Name: "Illinois statewide AMC license", Status: status, Detail: detail})
	}

	return findings
}

// invoiceFinding handles the invoice-attachment states; New York waives
// the requirement for Plaza Home Mortgage engagements.
func invoiceFinding(doc report.Document, state string) RequirementFinding {
	const name = "Invoice attachment"
	if !stateIn(state, statesRequiringInvoiceAttachment) {
		return RequirementFinding{Name: name, Status: StatusNotApplicable}
	}
	if state == "NY" && containsFold(subjectValue(doc, "Lender/Client"), "Plaza Home Mortgage") {
		return RequirementFinding{Name: name, Status: StatusNotApplicable, Detail: "New York invoice requirement is waived for Plaza Home Mortgage."}
	}
	attached := containsFold(doc.Root("Attachments"), "invoice")
	if attached {
		return RequirementFinding{Name: name, Status: StatusFulfilled}
	}
	return RequirementFinding{Name: name, Status: StatusNotFulfilled, Detail: state + " requires the invoice to be attached to the report."}
}

func presenceFinding(name, state string, states []string, present bool, detail string) RequirementFinding {
	if !stateIn(state, states) {
		return RequirementFinding{Name: name, Status: StatusNotApplicable}
	}
	if present {
		return RequirementFinding{Name: name, Status: StatusFulfilled}
	}
	return RequirementFinding{Name: name, Status: StatusNotFulfilled, Detail: detail}
}

func stateIn(state string, states []string) bool {
	for _, s := range states {
		if strings.EqualFold(s, state) {
			return true
		}
	}
	return false
}
