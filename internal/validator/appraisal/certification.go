package appraisal

import (
	"strings"
	"time"

	"apprev/internal/report"
	"apprev/internal/validator"
)

// CheckLenderNameConsistency requires the subject section's lender to
// equal the certification's lender company name, exact after trimming.
func CheckLenderNameConsistency(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	subject := strings.TrimSpace(value)
	if subject == "" {
		subject = strings.TrimSpace(subjectValue(doc, "Lender/Client"))
	}
	certified := strings.TrimSpace(doc.Field("CERTIFICATION", "Lender/Client Company Name"))
	if subject == "" || certified == "" {
		return nil
	}
	if subject != certified {
		return validator.Errorf("Lender Name mismatch: Subject section has '%s', but Appraiser section has '%s'.", subject, certified)
	}
	return validator.Match("")
}

// CheckLenderAddressConsistency is the address counterpart.
func CheckLenderAddressConsistency(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	subject := strings.TrimSpace(value)
	if subject == "" {
		subject = strings.TrimSpace(subjectValue(doc, "Address (Lender/Client)"))
	}
	certified := strings.TrimSpace(doc.Field("CERTIFICATION", "Lender/Client Company Address"))
	if subject == "" || certified == "" {
		return nil
	}
	if subject != certified {
		return validator.Errorf("Lender Address mismatch: Subject section has '%s', but Appraiser section has '%s'.", subject, certified)
	}
	return validator.Match("")
}

// CheckAppraiserFieldsNotBlank flags blank appraiser/certification
// fields.
var CheckAppraiserFieldsNotBlank = notBlankIn(report.AppraiserFields)

// CheckLicenseNumberConsistency compares a stated license or
// registration number against the certification section's entries.
func CheckLicenseNumberConsistency(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	stated := strings.TrimSpace(value)
	if stated == "" {
		return nil
	}
	possibles := []string{
		doc.Field("CERTIFICATION", "State Certification #"),
		doc.Field("CERTIFICATION", "or State License #"),
		doc.Field("CERTIFICATION", "State #"),
	}
	anyPresent := false
	for _, p := range possibles {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		anyPresent = true
		if strings.EqualFold(p, stated) {
			return validator.Match("")
		}
	}
	if !anyPresent {
		return nil
	}
	return validator.Errorf("License number '%s' does not match any certification-section license or registration number.", stated)
}

// CheckDateNotInPast flags an expiration-style date that has already
// passed as of the effective date of the appraisal.
func CheckDateNotInPast(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	expires, ok := parseDate(value)
	if !ok {
		if isBlank(value) {
			return notBlankError(field)
		}
		return validator.Errorf("'%s' has '%s', which is not a recognizable date.", field, strings.TrimSpace(value))
	}
	reference := time.Now()
	if effective, ok := parseDate(doc.Field("CERTIFICATION", "Effective Date of Appraisal")); ok {
		reference = effective
	}
	if expires.Before(reference) {
		return validator.Errorf("'%s' of %s is already expired.", field, expires.Format("01/02/2006"))
	}
	return validator.Match("")
}

// CheckSignatureDateOrder requires the report signature date to fall on
// or after the effective date of the appraisal.
func CheckSignatureDateOrder(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	signed, ok := parseDate(value)
	if !ok {
		signed, ok = parseDate(doc.Field("CERTIFICATION", "Date of Signature and Report"))
	}
	if !ok {
		return nil
	}
	effective, ok := parseDate(doc.Field("CERTIFICATION", "Effective Date of Appraisal"))
	if !ok {
		return nil
	}
	if signed.Before(effective) {
		return validator.Errorf("Date of Signature and Report %s is before the Effective Date of Appraisal %s.", signed.Format("01/02/2006"), effective.Format("01/02/2006"))
	}
	return validator.Match("")
}

// CheckAppraisedValueConsistency requires the certification's appraised
// value to equal the reconciled final value.
func CheckAppraisedValueConsistency(field, value string, doc report.Document, _ report.FieldPath, _ string) *validator.Outcome {
	appraised, ok := parseMoney(value)
	if !ok {
		if isBlank(value) {
			return notBlankError(field)
		}
		return validator.Errorf("'%s' has '%s', which is not a dollar amount.", field, strings.TrimSpace(value))
	}
	final, ok := finalValue(doc)
	if !ok {
		return nil
	}
	if appraised != final {
		return validator.Errorf("Appraised value of $%.0f does not match the reconciled final value of $%.0f.", appraised, final)
	}
	return validator.Match("")
}
