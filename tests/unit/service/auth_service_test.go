package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"apprev/internal/config"
	"apprev/internal/domain"
	"apprev/internal/service"
	"apprev/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "unit-test-signing-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 168 * time.Hour,
		Issuer:             "apprev-test",
	}
}

func hashPassword(password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), 12)
	return string(hash)
}

type authFixture struct {
	svc        service.AuthService
	tenantRepo *mocks.MockTenantRepo
	userRepo   *mocks.MockUserRepo
	tenant     *domain.Tenant
	reviewer   *domain.User
}

// newAuthFixture wires an AuthService over mocked repositories with one
// active review firm and one active reviewer.
func newAuthFixture() *authFixture {
	f := &authFixture{
		tenantRepo: new(mocks.MockTenantRepo),
		userRepo:   new(mocks.MockUserRepo),
	}
	f.svc = service.NewAuthService(f.userRepo, f.tenantRepo, testJWTConfig())
	f.tenant = &domain.Tenant{
		ID:       uuid.New(),
		Name:     "Keystone Review Partners",
		Slug:     "keystone",
		IsActive: true,
	}
	f.reviewer = &domain.User{
		ID:           uuid.New(),
		TenantID:     f.tenant.ID,
		Email:        "priya@keystonereview.com",
		PasswordHash: hashPassword("review-pass-1"),
		FullName:     "Priya Raghavan",
		Role:         domain.RoleReviewer,
		IsActive:     true,
	}
	return f
}

func (f *authFixture) login(t *testing.T, password string) (*service.TokenPair, error) {
	t.Helper()
	return f.svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "keystone",
		Email:      "priya@keystonereview.com",
		Password:   password,
	})
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture()
	f.tenantRepo.On("GetBySlug", mock.Anything, "keystone").Return(f.tenant, nil)
	f.userRepo.On("GetByEmail", mock.Anything, f.tenant.ID, "priya@keystonereview.com").Return(f.reviewer, nil)

	pair, err := f.login(t, "review-pass-1")

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.ExpiresAt.After(time.Now()))
	f.tenantRepo.AssertExpectations(t)
	f.userRepo.AssertExpectations(t)
}

func TestAuthService_Login_NormalizesEmail(t *testing.T) {
	f := newAuthFixture()
	f.tenantRepo.On("GetBySlug", mock.Anything, "keystone").Return(f.tenant, nil)
	f.userRepo.On("GetByEmail", mock.Anything, f.tenant.ID, "priya@keystonereview.com").Return(f.reviewer, nil)

	// The lookup must hit the stored lowercase address.
	pair, err := f.svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "keystone",
		Email:      "  Priya@KeystoneReview.com ",
		Password:   "review-pass-1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	f.userRepo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	f := newAuthFixture()
	f.tenantRepo.On("GetBySlug", mock.Anything, "keystone").Return(f.tenant, nil)
	f.userRepo.On("GetByEmail", mock.Anything, f.tenant.ID, "priya@keystonereview.com").Return(f.reviewer, nil)

	pair, err := f.login(t, "not-the-password")

	assert.Nil(t, pair)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownFirm(t *testing.T) {
	f := newAuthFixture()
	f.tenantRepo.On("GetBySlug", mock.Anything, "ghost-firm").Return(nil, domain.ErrNotFound)

	pair, err := f.svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "ghost-firm",
		Email:      "priya@keystonereview.com",
		Password:   "review-pass-1",
	})

	assert.Nil(t, pair)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownReviewer(t *testing.T) {
	f := newAuthFixture()
	f.tenantRepo.On("GetBySlug", mock.Anything, "keystone").Return(f.tenant, nil)
	f.userRepo.On("GetByEmail", mock.Anything, f.tenant.ID, "nobody@keystonereview.com").Return(nil, domain.ErrNotFound)

	pair, err := f.svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "keystone",
		Email:      "nobody@keystonereview.com",
		Password:   "review-pass-1",
	})

	assert.Nil(t, pair)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_SuspendedFirm(t *testing.T) {
	f := newAuthFixture()
	f.tenant.IsActive = false
	f.tenantRepo.On("GetBySlug", mock.Anything, "keystone").Return(f.tenant, nil)

	pair, err := f.login(t, "review-pass-1")

	assert.Nil(t, pair)
	assert.ErrorIs(t, err, domain.ErrTenantInactive)
}

func TestAuthService_Login_DeactivatedReviewer(t *testing.T) {
	f := newAuthFixture()
	f.reviewer.IsActive = false
	f.tenantRepo.On("GetBySlug", mock.Anything, "keystone").Return(f.tenant, nil)
	f.userRepo.On("GetByEmail", mock.Anything, f.tenant.ID, "priya@keystonereview.com").Return(f.reviewer, nil)

	pair, err := f.login(t, "review-pass-1")

	assert.Nil(t, pair)
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthService_ValidateToken_CarriesTenantContext(t *testing.T) {
	f := newAuthFixture()
	f.tenantRepo.On("GetBySlug", mock.Anything, "keystone").Return(f.tenant, nil)
	f.userRepo.On("GetByEmail", mock.Anything, f.tenant.ID, "priya@keystonereview.com").Return(f.reviewer, nil)

	pair, err := f.login(t, "review-pass-1")
	require.NoError(t, err)

	claims, err := f.svc.ValidateToken(pair.AccessToken)

	require.NoError(t, err)
	assert.Equal(t, f.tenant.ID, claims.TenantID)
	assert.Equal(t, f.reviewer.ID, claims.UserID)
	assert.Equal(t, "priya@keystonereview.com", claims.Email)
	assert.Equal(t, domain.RoleReviewer, claims.Role)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	f := newAuthFixture()

	claims, err := f.svc.ValidateToken("not.a.jwt")

	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_RejectsRefreshToken(t *testing.T) {
	f := newAuthFixture()
	f.tenantRepo.On("GetBySlug", mock.Anything, "keystone").Return(f.tenant, nil)
	f.userRepo.On("GetByEmail", mock.Anything, f.tenant.ID, "priya@keystonereview.com").Return(f.reviewer, nil)

	pair, err := f.login(t, "review-pass-1")
	require.NoError(t, err)

	// Audiences are disjoint, so a refresh token is no access token.
	claims, err := f.svc.ValidateToken(pair.RefreshToken)

	assert.Nil(t, claims)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_RefreshToken_RotatesPair(t *testing.T) {
	f := newAuthFixture()
	f.tenantRepo.On("GetBySlug", mock.Anything, "keystone").Return(f.tenant, nil)
	f.userRepo.On("GetByEmail", mock.Anything, f.tenant.ID, "priya@keystonereview.com").Return(f.reviewer, nil)
	f.userRepo.On("GetByID", mock.Anything, f.tenant.ID, f.reviewer.ID).Return(f.reviewer, nil)

	pair, err := f.login(t, "review-pass-1")
	require.NoError(t, err)

	rotated, err := f.svc.RefreshToken(context.Background(), pair.RefreshToken)

	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)
	assert.NotEmpty(t, rotated.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, rotated.AccessToken)
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	f := newAuthFixture()
	f.tenantRepo.On("GetBySlug", mock.Anything, "keystone").Return(f.tenant, nil)
	f.userRepo.On("GetByEmail", mock.Anything, f.tenant.ID, "priya@keystonereview.com").Return(f.reviewer, nil)

	pair, err := f.login(t, "review-pass-1")
	require.NoError(t, err)

	rotated, err := f.svc.RefreshToken(context.Background(), pair.AccessToken)

	assert.Nil(t, rotated)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_RefreshToken_DeactivatedReviewer(t *testing.T) {
	f := newAuthFixture()
	f.tenantRepo.On("GetBySlug", mock.Anything, "keystone").Return(f.tenant, nil)
	f.userRepo.On("GetByEmail", mock.Anything, f.tenant.ID, "priya@keystonereview.com").Return(f.reviewer, nil)

	pair, err := f.login(t, "review-pass-1")
	require.NoError(t, err)

	f.reviewer.IsActive = false
	f.userRepo.On("GetByID", mock.Anything, f.tenant.ID, f.reviewer.ID).Return(f.reviewer, nil)

	rotated, err := f.svc.RefreshToken(context.Background(), pair.RefreshToken)

	assert.Nil(t, rotated)
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}
