package handler

import (
	"time"

	"apprev/internal/domain"
	"apprev/internal/validator"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// LoginRequest represents the login request body.
type LoginRequest struct {
	TenantSlug string `json:"tenant_slug" binding:"required" example:"lakeshore"`
	Email      string `json:"email" binding:"required" example:"admin@lakeshorereview.com"`
	Password   string `json:"password" binding:"required" example:"second-look-2025"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// CreateUserRequest represents the create user request body.
type CreateUserRequest struct {
	Email    string          `json:"email" binding:"required" example:"elena@lakeshorereview.com"`
	Password string          `json:"password" binding:"required" example:"field-review-2025"`
	FullName string          `json:"full_name" example:"Elena Vasquez"`
	Role     domain.UserRole `json:"role" binding:"required" example:"reviewer"`
}

// UpdateUserRequest represents the update user request body.
type UpdateUserRequest struct {
	Email    *string          `json:"email" example:"elena.vasquez@lakeshorereview.com"`
	FullName *string          `json:"full_name" example:"Elena Vasquez"`
	Role     *domain.UserRole `json:"role" example:"admin"`
	IsActive *bool            `json:"is_active" example:"true"`
}

// CreateTenantRequest represents the create tenant request body.
type CreateTenantRequest struct {
	Name string `json:"name" binding:"required" example:"Lakeshore Valuation Review"`
	Slug string `json:"slug" binding:"required" example:"lakeshore"`
}

// UpdateTenantRequest represents the update tenant request body.
type UpdateTenantRequest struct {
	Name     *string `json:"name" example:"Lakeshore Review Group"`
	Slug     *string `json:"slug" example:"lakeshore-review"`
	IsActive *bool   `json:"is_active" example:"false"`
}

// PatchFieldRequest represents the field edit request body.
type PatchFieldRequest struct {
	Path    []string `json:"path" binding:"required" example:"CONTRACT,Contract Price $"`
	Value   string   `json:"value" example:"$425,000"`
	RowName string   `json:"row_name" example:"COMPARABLE SALE #1"`
}

// FieldPathRequest represents a request addressed by field path.
type FieldPathRequest struct {
	Path []string `json:"path" binding:"required" example:"SITE,Zoning Compliance"`
}

// UpdateReviewRequest represents the review status update request body.
type UpdateReviewRequest struct {
	Status domain.ReviewStatus `json:"status" binding:"required" example:"approved"`
	Notes  string              `json:"notes" example:"All flagged fields verified against the source PDF."`
}

// --- Response Types ---

// TokenResponse represents the authentication token response.
type TokenResponse struct {
	AccessToken  string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string    `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt    time.Time `json:"expires_at" example:"2025-01-15T10:30:00Z"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// ReportWithDownloadURL represents a report with its presigned download URL.
type ReportWithDownloadURL struct {
	Report      domain.AppraisalReport `json:"report"`
	DownloadURL string                 `json:"download_url" example:"https://s3.amazonaws.com/apprev-uploads/...?X-Amz-Signature=..."`
}

// ManualValidationResult represents the outcome of toggling a sign-off.
type ManualValidationResult struct {
	Active bool                   `json:"active" example:"true"`
	Status *validator.FieldStatus `json:"status"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
