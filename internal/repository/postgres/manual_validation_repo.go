package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"apprev/internal/domain"
	"apprev/internal/port"
)

type manualValidationRepo struct {
	db *sqlx.DB
}

// NewManualValidationRepo creates a new PostgreSQL-backed
// ManualValidationRepository.
func NewManualValidationRepo(db *sqlx.DB) port.ManualValidationRepository {
	return &manualValidationRepo{db: db}
}

// Toggle removes an existing sign-off for the path, or inserts one when
// none exists. Returns whether the sign-off is active afterwards.
func (r *manualValidationRepo) Toggle(ctx context.Context, mv *domain.ManualValidation) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM manual_validations
		 WHERE tenant_id = $1 AND report_id = $2 AND field_path = $3`,
		mv.TenantID, mv.ReportID, mv.FieldPath)
	if err != nil {
		return false, fmt.Errorf("manualValidationRepo.Toggle delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("manualValidationRepo.Toggle rows: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	mv.CreatedAt = time.Now().UTC()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO manual_validations (id, tenant_id, report_id, field_path, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		mv.ID, mv.TenantID, mv.ReportID, mv.FieldPath, mv.CreatedBy, mv.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("manualValidationRepo.Toggle insert: %w", err)
	}
	return true, nil
}

func (r *manualValidationRepo) ListByReport(ctx context.Context, tenantID, reportID uuid.UUID) ([]domain.ManualValidation, error) {
	var mvs []domain.ManualValidation
	err := r.db.SelectContext(ctx, &mvs,
		`SELECT * FROM manual_validations
		 WHERE tenant_id = $1 AND report_id = $2 ORDER BY created_at`,
		tenantID, reportID)
	if err != nil {
		return nil, fmt.Errorf("manualValidationRepo.ListByReport: %w", err)
	}
	return mvs, nil
}

func (r *manualValidationRepo) ClearByReport(ctx context.Context, tenantID, reportID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM manual_validations WHERE tenant_id = $1 AND report_id = $2",
		tenantID, reportID)
	if err != nil {
		return fmt.Errorf("manualValidationRepo.ClearByReport: %w", err)
	}
	return nil
}
