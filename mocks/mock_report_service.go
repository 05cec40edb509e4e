package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"apprev/internal/domain"
	"apprev/internal/report"
	"apprev/internal/service"
	"apprev/internal/validator"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Upload(ctx context.Context, input *service.UploadReportInput) (*domain.AppraisalReport, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppraisalReport), args.Error(1)
}

func (m *MockReportService) GetByID(ctx context.Context, tenantID, reportID uuid.UUID) (*domain.AppraisalReport, error) {
	args := m.Called(ctx, tenantID, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppraisalReport), args.Error(1)
}

func (m *MockReportService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.AppraisalReport, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.AppraisalReport), args.Int(1), args.Error(2)
}

func (m *MockReportService) RetryExtraction(ctx context.Context, tenantID, reportID uuid.UUID) (*domain.AppraisalReport, error) {
	args := m.Called(ctx, tenantID, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppraisalReport), args.Error(1)
}

func (m *MockReportService) PatchField(ctx context.Context, input *service.PatchFieldInput) (*validator.FieldStatus, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*validator.FieldStatus), args.Error(1)
}

func (m *MockReportService) ResolveField(ctx context.Context, tenantID, reportID uuid.UUID, path report.FieldPath, rowName string) (*validator.FieldStatus, error) {
	args := m.Called(ctx, tenantID, reportID, path, rowName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*validator.FieldStatus), args.Error(1)
}

func (m *MockReportService) FieldStatuses(ctx context.Context, tenantID, reportID uuid.UUID) ([]service.FieldResolution, error) {
	args := m.Called(ctx, tenantID, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.FieldResolution), args.Error(1)
}

func (m *MockReportService) ToggleManualValidation(ctx context.Context, input *service.ToggleValidationInput) (bool, *validator.FieldStatus, error) {
	args := m.Called(ctx, input)
	var status *validator.FieldStatus
	if args.Get(1) != nil {
		status = args.Get(1).(*validator.FieldStatus)
	}
	return args.Bool(0), status, args.Error(2)
}

func (m *MockReportService) RequirementFindings(ctx context.Context, tenantID, reportID uuid.UUID, refresh bool) ([]domain.RequirementFinding, error) {
	args := m.Called(ctx, tenantID, reportID, refresh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RequirementFinding), args.Error(1)
}

func (m *MockReportService) IngestFindings(ctx context.Context, input *service.IngestFindingsInput) ([]domain.RequirementFinding, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RequirementFinding), args.Error(1)
}

func (m *MockReportService) GetErrorReport(ctx context.Context, tenantID, reportID uuid.UUID) (*service.ErrorReport, error) {
	args := m.Called(ctx, tenantID, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ErrorReport), args.Error(1)
}

func (m *MockReportService) ExportErrorLog(ctx context.Context, tenantID, reportID, userID uuid.UUID) (*service.ErrorLogExport, error) {
	args := m.Called(ctx, tenantID, reportID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ErrorLogExport), args.Error(1)
}

func (m *MockReportService) UpdateReview(ctx context.Context, input *service.UpdateReviewInput) (*domain.AppraisalReport, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppraisalReport), args.Error(1)
}

func (m *MockReportService) GetDownloadURL(ctx context.Context, tenantID, reportID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID, reportID)
	return args.String(0), args.Error(1)
}

func (m *MockReportService) Delete(ctx context.Context, tenantID, reportID uuid.UUID) error {
	args := m.Called(ctx, tenantID, reportID)
	return args.Error(0)
}

func (m *MockReportService) ExtractReport(ctx context.Context, tenantID, reportID uuid.UUID) {
	m.Called(ctx, tenantID, reportID)
}
