package port

import "context"

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	// SendErrorReportEmail delivers a link to an exported error-log
	// workbook for a reviewed report.
	SendErrorReportEmail(ctx context.Context, toEmail, toName, reportName, downloadURL string) error
}
