package noop

import (
	"context"
	"log"

	"apprev/internal/port"
)

type noopSender struct {
	frontendURL string
}

// NewNoopSender creates a no-op EmailSender that logs download URLs to stdout.
func NewNoopSender(frontendURL string) port.EmailSender {
	return &noopSender{frontendURL: frontendURL}
}

func (s *noopSender) SendErrorReportEmail(_ context.Context, toEmail, toName, reportName, downloadURL string) error {
	log.Printf("[NOOP EMAIL] Error log for %s ready; would mail %s (%s): %s", reportName, toName, toEmail, downloadURL)
	return nil
}
