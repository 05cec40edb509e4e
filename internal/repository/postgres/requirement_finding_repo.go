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

type requirementFindingRepo struct {
	db *sqlx.DB
}

// NewRequirementFindingRepo creates a new PostgreSQL-backed
// RequirementFindingRepository.
func NewRequirementFindingRepo(db *sqlx.DB) port.RequirementFindingRepository {
	return &requirementFindingRepo{db: db}
}

// ReplaceForReport swaps the stored checklist for one check type in a
// single transaction, so re-running a check never leaves stale rows.
func (r *requirementFindingRepo) ReplaceForReport(ctx context.Context, tenantID, reportID uuid.UUID, checkType domain.RequirementCheck, findings []domain.RequirementFinding) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("requirementFindingRepo.ReplaceForReport begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM requirement_findings
		 WHERE tenant_id = $1 AND report_id = $2 AND check_type = $3`,
		tenantID, reportID, checkType)
	if err != nil {
		return fmt.Errorf("requirementFindingRepo.ReplaceForReport delete: %w", err)
	}

	now := time.Now().UTC()
	for i := range findings {
		f := &findings[i]
		f.TenantID = tenantID
		f.ReportID = reportID
		f.CheckType = checkType
		f.CheckedAt = now
		if f.ID == uuid.Nil {
			f.ID = uuid.New()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO requirement_findings (id, tenant_id, report_id, check_type, name, status, detail, checked_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			f.ID, f.TenantID, f.ReportID, f.CheckType, f.Name, f.Status, f.Detail, f.CheckedAt)
		if err != nil {
			return fmt.Errorf("requirementFindingRepo.ReplaceForReport insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("requirementFindingRepo.ReplaceForReport commit: %w", err)
	}
	return nil
}

func (r *requirementFindingRepo) ListByReport(ctx context.Context, tenantID, reportID uuid.UUID) ([]domain.RequirementFinding, error) {
	var findings []domain.RequirementFinding
	err := r.db.SelectContext(ctx, &findings,
		`SELECT * FROM requirement_findings
		 WHERE tenant_id = $1 AND report_id = $2 ORDER BY check_type, name`,
		tenantID, reportID)
	if err != nil {
		return nil, fmt.Errorf("requirementFindingRepo.ListByReport: %w", err)
	}
	return findings, nil
}
