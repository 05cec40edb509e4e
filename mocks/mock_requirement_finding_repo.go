package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"apprev/internal/domain"
)

// MockRequirementFindingRepo is a mock implementation of port.RequirementFindingRepository.
type MockRequirementFindingRepo struct {
	mock.Mock
}

func (m *MockRequirementFindingRepo) ReplaceForReport(ctx context.Context, tenantID, reportID uuid.UUID, checkType domain.RequirementCheck, findings []domain.RequirementFinding) error {
	args := m.Called(ctx, tenantID, reportID, checkType, findings)
	return args.Error(0)
}

func (m *MockRequirementFindingRepo) ListByReport(ctx context.Context, tenantID, reportID uuid.UUID) ([]domain.RequirementFinding, error) {
	args := m.Called(ctx, tenantID, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RequirementFinding), args.Error(1)
}
