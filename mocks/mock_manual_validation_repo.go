package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"apprev/internal/domain"
)

// MockManualValidationRepo is a mock implementation of port.ManualValidationRepository.
type MockManualValidationRepo struct {
	mock.Mock
}

func (m *MockManualValidationRepo) Toggle(ctx context.Context, mv *domain.ManualValidation) (bool, error) {
	args := m.Called(ctx, mv)
	return args.Bool(0), args.Error(1)
}

func (m *MockManualValidationRepo) ListByReport(ctx context.Context, tenantID, reportID uuid.UUID) ([]domain.ManualValidation, error) {
	args := m.Called(ctx, tenantID, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ManualValidation), args.Error(1)
}

func (m *MockManualValidationRepo) ClearByReport(ctx context.Context, tenantID, reportID uuid.UUID) error {
	args := m.Called(ctx, tenantID, reportID)
	return args.Error(0)
}
