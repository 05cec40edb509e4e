package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendErrorReportEmail(ctx context.Context, toEmail, toName, reportName, downloadURL string) error {
	args := m.Called(ctx, toEmail, toName, reportName, downloadURL)
	return args.Error(0)
}
