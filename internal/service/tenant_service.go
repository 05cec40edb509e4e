package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"apprev/internal/domain"
	"apprev/internal/port"
)

// Tenant slugs appear in login requests and URLs, so they are locked to
// a URL-safe shape: lowercase alphanumerics separated by single hyphens.
var tenantSlugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// CreateTenantInput carries the fields for onboarding a review firm.
type CreateTenantInput struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

// UpdateTenantInput carries the mutable tenant fields; nil means leave
// the field as is.
type UpdateTenantInput struct {
	Name     *string `json:"name"`
	Slug     *string `json:"slug"`
	IsActive *bool   `json:"is_active"`
}

// TenantService manages the review firms sharing the platform. Each
// tenant isolates its own reviewers and reports.
type TenantService interface {
	Create(ctx context.Context, input CreateTenantInput) (*domain.Tenant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	List(ctx context.Context, offset, limit int) ([]domain.Tenant, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateTenantInput) (*domain.Tenant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type tenantService struct {
	repo port.TenantRepository
}

// NewTenantService creates a TenantService over the given repository.
func NewTenantService(repo port.TenantRepository) TenantService {
	return &tenantService{repo: repo}
}

// normalizeSlug lowercases and trims a requested slug, then checks it
// against the URL-safe pattern.
func normalizeSlug(raw string) (string, error) {
	slug := strings.ToLower(strings.TrimSpace(raw))
	if !tenantSlugPattern.MatchString(slug) {
		return "", domain.ErrInvalidTenantSlug
	}
	return slug, nil
}

func (s *tenantService) Create(ctx context.Context, input CreateTenantInput) (*domain.Tenant, error) {
	slug, err := normalizeSlug(input.Slug)
	if err != nil {
		return nil, err
	}

	tenant := &domain.Tenant{
		Name:     strings.TrimSpace(input.Name),
		Slug:     slug,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *tenantService) List(ctx context.Context, offset, limit int) ([]domain.Tenant, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *tenantService) Update(ctx context.Context, id uuid.UUID, input UpdateTenantInput) (*domain.Tenant, error) {
	tenant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		tenant.Name = strings.TrimSpace(*input.Name)
	}
	if input.Slug != nil {
		slug, err := normalizeSlug(*input.Slug)
		if err != nil {
			return nil, err
		}
		tenant.Slug = slug
	}
	if input.IsActive != nil {
		tenant.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
