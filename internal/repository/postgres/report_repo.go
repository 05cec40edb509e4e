package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"apprev/internal/domain"
	"apprev/internal/port"
)

type reportRepo struct {
	db *sqlx.DB
}

// NewReportRepo creates a new PostgreSQL-backed ReportRepository.
func NewReportRepo(db *sqlx.DB) port.ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) Create(ctx context.Context, rep *domain.AppraisalReport) error {
	now := time.Now().UTC()
	rep.CreatedAt = now
	rep.UpdatedAt = now

	query := `INSERT INTO appraisal_reports (
		id, tenant_id, uploaded_by, file_name, original_name,
		form_type, file_type, file_size, s3_bucket, s3_key, content_type,
		field_data, extraction_status, extraction_error, extracted_at,
		review_status, reviewed_by, reviewed_at, reviewer_notes,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8, $9, $10, $11,
		$12, $13, $14, $15,
		$16, $17, $18, $19,
		$20, $21
	)`

	_, err := r.db.ExecContext(ctx, query,
		rep.ID, rep.TenantID, rep.UploadedBy, rep.FileName, rep.OriginalName,
		rep.FormType, rep.FileType, rep.FileSize, rep.S3Bucket, rep.S3Key, rep.ContentType,
		rep.FieldData, rep.ExtractionStatus, rep.ExtractionError, rep.ExtractedAt,
		rep.ReviewStatus, rep.ReviewedBy, rep.ReviewedAt, rep.ReviewerNotes,
		rep.CreatedAt, rep.UpdatedAt)
	if err != nil {
		return fmt.Errorf("reportRepo.Create: %w", err)
	}
	return nil
}

func (r *reportRepo) GetByID(ctx context.Context, tenantID, reportID uuid.UUID) (*domain.AppraisalReport, error) {
	var rep domain.AppraisalReport
	err := r.db.GetContext(ctx, &rep,
		"SELECT * FROM appraisal_reports WHERE id = $1 AND tenant_id = $2", reportID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reportRepo.GetByID: %w", err)
	}
	return &rep, nil
}

func (r *reportRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.AppraisalReport, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM appraisal_reports WHERE tenant_id = $1", tenantID)
	if err != nil {
		return nil, 0, fmt.Errorf("reportRepo.ListByTenant count: %w", err)
	}

	var reps []domain.AppraisalReport
	err = r.db.SelectContext(ctx, &reps,
		`SELECT * FROM appraisal_reports WHERE tenant_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("reportRepo.ListByTenant: %w", err)
	}
	return reps, total, nil
}

func (r *reportRepo) UpdateFieldData(ctx context.Context, tenantID, reportID uuid.UUID, fieldData json.RawMessage) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE appraisal_reports SET field_data = $1, updated_at = $2
		 WHERE id = $3 AND tenant_id = $4`,
		fieldData, time.Now().UTC(), reportID, tenantID)
	if err != nil {
		return fmt.Errorf("reportRepo.UpdateFieldData: %w", err)
	}
	return requireRow(res, "reportRepo.UpdateFieldData")
}

func (r *reportRepo) UpdateExtraction(ctx context.Context, tenantID, reportID uuid.UUID, status domain.ExtractionStatus, extractionError string) error {
	now := time.Now().UTC()
	var extractedAt *time.Time
	if status == domain.ExtractionCompleted {
		extractedAt = &now
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE appraisal_reports
		 SET extraction_status = $1, extraction_error = $2,
		     extracted_at = COALESCE($3, extracted_at), updated_at = $4
		 WHERE id = $5 AND tenant_id = $6`,
		status, extractionError, extractedAt, now, reportID, tenantID)
	if err != nil {
		return fmt.Errorf("reportRepo.UpdateExtraction: %w", err)
	}
	return requireRow(res, "reportRepo.UpdateExtraction")
}

func (r *reportRepo) UpdateReview(ctx context.Context, tenantID, reportID uuid.UUID, status domain.ReviewStatus, reviewedBy uuid.UUID, notes string) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE appraisal_reports
		 SET review_status = $1, reviewed_by = $2, reviewed_at = $3,
		     reviewer_notes = $4, updated_at = $3
		 WHERE id = $5 AND tenant_id = $6`,
		status, reviewedBy, now, notes, reportID, tenantID)
	if err != nil {
		return fmt.Errorf("reportRepo.UpdateReview: %w", err)
	}
	return requireRow(res, "reportRepo.UpdateReview")
}

func (r *reportRepo) Delete(ctx context.Context, tenantID, reportID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM appraisal_reports WHERE id = $1 AND tenant_id = $2", reportID, tenantID)
	if err != nil {
		return fmt.Errorf("reportRepo.Delete: %w", err)
	}
	return requireRow(res, "reportRepo.Delete")
}

// requireRow converts a zero-row update into ErrNotFound.
func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows: %w", op, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
