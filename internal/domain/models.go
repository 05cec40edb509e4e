package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Tenant represents an isolated organizational tenant.
type Tenant struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// User represents an authenticated user belonging to a tenant.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TenantID     uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// AppraisalReport represents one uploaded appraisal document under
// review: the stored source file plus the extracted field data the
// validation rules run against.
type AppraisalReport struct {
	ID               uuid.UUID        `db:"id" json:"id"`
	TenantID         uuid.UUID        `db:"tenant_id" json:"tenant_id"`
	UploadedBy       uuid.UUID        `db:"uploaded_by" json:"uploaded_by"`
	FileName         string           `db:"file_name" json:"file_name"`
	OriginalName     string           `db:"original_name" json:"original_name"`
	FormType         string           `db:"form_type" json:"form_type"`
	FileType         FileType         `db:"file_type" json:"file_type"`
	FileSize         int64            `db:"file_size" json:"file_size"`
	S3Bucket         string           `db:"s3_bucket" json:"s3_bucket"`
	S3Key            string           `db:"s3_key" json:"s3_key"`
	ContentType      string           `db:"content_type" json:"content_type"`
	FieldData        json.RawMessage  `db:"field_data" json:"field_data"`
	ExtractionStatus ExtractionStatus `db:"extraction_status" json:"extraction_status"`
	ExtractionError  string           `db:"extraction_error" json:"extraction_error"`
	ExtractedAt      *time.Time       `db:"extracted_at" json:"extracted_at"`
	ReviewStatus     ReviewStatus     `db:"review_status" json:"review_status"`
	ReviewedBy       *uuid.UUID       `db:"reviewed_by" json:"reviewed_by"`
	ReviewedAt       *time.Time       `db:"reviewed_at" json:"reviewed_at"`
	ReviewerNotes    string           `db:"reviewer_notes" json:"reviewer_notes"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updated_at"`
}

// ManualValidation records a reviewer's sign-off on one flagged field,
// keyed by the field path's serialized form.
type ManualValidation struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	ReportID  uuid.UUID `db:"report_id" json:"report_id"`
	FieldPath string    `db:"field_path" json:"field_path"`
	CreatedBy uuid.UUID `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// RequirementFinding stores one row of a report's requirement checklist
// (state law, client, FHA, ADU, escalation).
type RequirementFinding struct {
	ID        uuid.UUID        `db:"id" json:"id"`
	TenantID  uuid.UUID        `db:"tenant_id" json:"tenant_id"`
	ReportID  uuid.UUID        `db:"report_id" json:"report_id"`
	CheckType RequirementCheck `db:"check_type" json:"check_type"`
	Name      string           `db:"name" json:"name"`
	Status    string           `db:"status" json:"status"`
	Detail    string           `db:"detail" json:"detail"`
	CheckedAt time.Time        `db:"checked_at" json:"checked_at"`
}
