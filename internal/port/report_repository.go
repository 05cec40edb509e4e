package port

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"apprev/internal/domain"
)

// ReportRepository defines the contract for appraisal report persistence.
// All query methods include tenantID to enforce tenant isolation.
type ReportRepository interface {
	Create(ctx context.Context, rep *domain.AppraisalReport) error
	GetByID(ctx context.Context, tenantID, reportID uuid.UUID) (*domain.AppraisalReport, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.AppraisalReport, int, error)
	UpdateFieldData(ctx context.Context, tenantID, reportID uuid.UUID, fieldData json.RawMessage) error
	UpdateExtraction(ctx context.Context, tenantID, reportID uuid.UUID, status domain.ExtractionStatus, extractionError string) error
	UpdateReview(ctx context.Context, tenantID, reportID uuid.UUID, status domain.ReviewStatus, reviewedBy uuid.UUID, notes string) error
	Delete(ctx context.Context, tenantID, reportID uuid.UUID) error
}

// ManualValidationRepository persists reviewer sign-offs per report,
// keyed by serialized field path.
type ManualValidationRepository interface {
	Toggle(ctx context.Context, mv *domain.ManualValidation) (active bool, err error)
	ListByReport(ctx context.Context, tenantID, reportID uuid.UUID) ([]domain.ManualValidation, error)
	ClearByReport(ctx context.Context, tenantID, reportID uuid.UUID) error
}

// RequirementFindingRepository persists requirement checklist results.
type RequirementFindingRepository interface {
	ReplaceForReport(ctx context.Context, tenantID, reportID uuid.UUID, checkType domain.RequirementCheck, findings []domain.RequirementFinding) error
	ListByReport(ctx context.Context, tenantID, reportID uuid.UUID) ([]domain.RequirementFinding, error)
}
