package mocks

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"apprev/internal/domain"
)

// MockReportRepo is a mock implementation of port.ReportRepository.
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) Create(ctx context.Context, rep *domain.AppraisalReport) error {
	args := m.Called(ctx, rep)
	return args.Error(0)
}

func (m *MockReportRepo) GetByID(ctx context.Context, tenantID, reportID uuid.UUID) (*domain.AppraisalReport, error) {
	args := m.Called(ctx, tenantID, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppraisalReport), args.Error(1)
}

func (m *MockReportRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.AppraisalReport, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.AppraisalReport), args.Int(1), args.Error(2)
}

func (m *MockReportRepo) UpdateFieldData(ctx context.Context, tenantID, reportID uuid.UUID, fieldData json.RawMessage) error {
	args := m.Called(ctx, tenantID, reportID, fieldData)
	return args.Error(0)
}

func (m *MockReportRepo) UpdateExtraction(ctx context.Context, tenantID, reportID uuid.UUID, status domain.ExtractionStatus, extractionError string) error {
	args := m.Called(ctx, tenantID, reportID, status, extractionError)
	return args.Error(0)
}

func (m *MockReportRepo) UpdateReview(ctx context.Context, tenantID, reportID uuid.UUID, status domain.ReviewStatus, reviewedBy uuid.UUID, notes string) error {
	args := m.Called(ctx, tenantID, reportID, status, reviewedBy, notes)
	return args.Error(0)
}

func (m *MockReportRepo) Delete(ctx context.Context, tenantID, reportID uuid.UUID) error {
	args := m.Called(ctx, tenantID, reportID)
	return args.Error(0)
}
