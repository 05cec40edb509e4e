package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"apprev/internal/domain"
	"apprev/internal/handler"
	"apprev/internal/middleware"
	"apprev/internal/service"
	"apprev/mocks"
)

func newUserHandler() (*handler.UserHandler, *mocks.MockUserService) {
	mockSvc := new(mocks.MockUserService)
	h := handler.NewUserHandler(mockSvc)
	return h, mockSvc
}

// staffContext builds a test context carrying the auth middleware's keys
// for a signed-in staff member and, when targetID is non-empty, the :id
// route parameter.
func staffContext(w *httptest.ResponseRecorder, tenantID, userID uuid.UUID, role domain.UserRole, targetID string) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.ContextKeyTenantID, tenantID)
	c.Set(middleware.ContextKeyUserID, userID)
	c.Set(middleware.ContextKeyRole, string(role))
	if targetID != "" {
		c.Params = gin.Params{{Key: "id", Value: targetID}}
	}
	return c
}

// --- Create ---

func TestUserHandler_Create_AdminProvisionsReviewer(t *testing.T) {
	h, mockSvc := newUserHandler()
	firmID := uuid.New()
	adminID := uuid.New()

	created := &domain.User{
		ID:       uuid.New(),
		TenantID: firmID,
		Email:    "elena@lakeshorereview.com",
		FullName: "Elena Vasquez",
		Role:     domain.RoleReviewer,
		IsActive: true,
	}
	mockSvc.On("Create", mock.Anything, firmID, mock.MatchedBy(func(input service.CreateUserInput) bool {
		return input.Email == "elena@lakeshorereview.com" && input.Role == domain.RoleReviewer
	})).Return(created, nil)

	w := httptest.NewRecorder()
	c := staffContext(w, firmID, adminID, domain.RoleAdmin, "")
	jsonRequest(c, http.MethodPost, "/api/v1/users", map[string]string{
		"email":     "elena@lakeshorereview.com",
		"password":  "second-look-2025",
		"full_name": "Elena Vasquez",
		"role":      "reviewer",
	})

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestUserHandler_Create_Unauthenticated(t *testing.T) {
	h, _ := newUserHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	jsonRequest(c, http.MethodPost, "/api/v1/users", map[string]string{
		"email":     "elena@lakeshorereview.com",
		"password":  "second-look-2025",
		"full_name": "Elena Vasquez",
		"role":      "reviewer",
	})

	h.Create(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserHandler_Create_DuplicateEmail(t *testing.T) {
	h, mockSvc := newUserHandler()
	firmID := uuid.New()

	mockSvc.On("Create", mock.Anything, firmID, mock.AnythingOfType("service.CreateUserInput")).
		Return(nil, domain.ErrDuplicateEmail)

	w := httptest.NewRecorder()
	c := staffContext(w, firmID, uuid.New(), domain.RoleAdmin, "")
	jsonRequest(c, http.MethodPost, "/api/v1/users", map[string]string{
		"email":     "elena@lakeshorereview.com",
		"password":  "second-look-2025",
		"full_name": "Elena Vasquez",
		"role":      "reviewer",
	})

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUserHandler_Create_MissingFields(t *testing.T) {
	h, _ := newUserHandler()

	w := httptest.NewRecorder()
	c := staffContext(w, uuid.New(), uuid.New(), domain.RoleAdmin, "")
	jsonRequest(c, http.MethodPost, "/api/v1/users", map[string]string{
		"email": "elena@lakeshorereview.com",
	})

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- List ---

func TestUserHandler_List_ReturnsRosterWithMeta(t *testing.T) {
	h, mockSvc := newUserHandler()
	firmID := uuid.New()

	roster := []domain.User{
		{ID: uuid.New(), TenantID: firmID, Email: "elena@lakeshorereview.com", IsActive: true},
		{ID: uuid.New(), TenantID: firmID, Email: "marcus@lakeshorereview.com", IsActive: true},
	}
	mockSvc.On("List", mock.Anything, firmID, 0, 20).Return(roster, 2, nil)

	w := httptest.NewRecorder()
	c := staffContext(w, firmID, uuid.New(), domain.RoleAdmin, "")
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/users?offset=0&limit=20", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Total)
	mockSvc.AssertExpectations(t)
}

func TestUserHandler_List_Unauthenticated(t *testing.T) {
	h, _ := newUserHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/users", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// --- GetByID ---

func TestUserHandler_GetByID_Self(t *testing.T) {
	h, mockSvc := newUserHandler()
	firmID := uuid.New()
	reviewerID := uuid.New()

	reviewer := &domain.User{ID: reviewerID, TenantID: firmID, Email: "elena@lakeshorereview.com", Role: domain.RoleReviewer}
	mockSvc.On("GetByID", mock.Anything, firmID, reviewerID).Return(reviewer, nil)

	w := httptest.NewRecorder()
	c := staffContext(w, firmID, reviewerID, domain.RoleReviewer, reviewerID.String())
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/users/"+reviewerID.String(), http.NoBody)

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestUserHandler_GetByID_AdminSeesColleague(t *testing.T) {
	h, mockSvc := newUserHandler()
	firmID := uuid.New()
	colleagueID := uuid.New()

	colleague := &domain.User{ID: colleagueID, TenantID: firmID, Email: "marcus@lakeshorereview.com"}
	mockSvc.On("GetByID", mock.Anything, firmID, colleagueID).Return(colleague, nil)

	w := httptest.NewRecorder()
	c := staffContext(w, firmID, uuid.New(), domain.RoleAdmin, colleagueID.String())
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/users/"+colleagueID.String(), http.NoBody)

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestUserHandler_GetByID_ReviewerBlockedFromColleague(t *testing.T) {
	h, _ := newUserHandler()
	firmID := uuid.New()
	colleagueID := uuid.New()

	w := httptest.NewRecorder()
	c := staffContext(w, firmID, uuid.New(), domain.RoleReviewer, colleagueID.String())
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/users/"+colleagueID.String(), http.NoBody)

	h.GetByID(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserHandler_GetByID_MalformedID(t *testing.T) {
	h, _ := newUserHandler()

	w := httptest.NewRecorder()
	c := staffContext(w, uuid.New(), uuid.New(), domain.RoleAdmin, "not-a-uuid")
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/users/not-a-uuid", http.NoBody)

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_GetByID_NotFound(t *testing.T) {
	h, mockSvc := newUserHandler()
	firmID := uuid.New()
	reviewerID := uuid.New()

	mockSvc.On("GetByID", mock.Anything, firmID, reviewerID).Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	c := staffContext(w, firmID, reviewerID, domain.RoleReviewer, reviewerID.String())
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/users/"+reviewerID.String(), http.NoBody)

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --- Update ---

func TestUserHandler_Update_SelfRename(t *testing.T) {
	h, mockSvc := newUserHandler()
	firmID := uuid.New()
	reviewerID := uuid.New()

	updated := &domain.User{
		ID:       reviewerID,
		TenantID: firmID,
		Email:    "elena@lakeshorereview.com",
		FullName: "Elena Vasquez-Reid",
		Role:     domain.RoleReviewer,
	}
	mockSvc.On("Update", mock.Anything, firmID, reviewerID, mock.AnythingOfType("service.UpdateUserInput")).
		Return(updated, nil)

	w := httptest.NewRecorder()
	c := staffContext(w, firmID, reviewerID, domain.RoleReviewer, reviewerID.String())
	jsonRequest(c, http.MethodPut, "/api/v1/users/"+reviewerID.String(), map[string]string{
		"full_name": "Elena Vasquez-Reid",
	})

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestUserHandler_Update_ReviewerCannotChangeOwnRole(t *testing.T) {
	h, _ := newUserHandler()
	firmID := uuid.New()
	reviewerID := uuid.New()

	admin := domain.RoleAdmin
	w := httptest.NewRecorder()
	c := staffContext(w, firmID, reviewerID, domain.RoleReviewer, reviewerID.String())
	jsonRequest(c, http.MethodPut, "/api/v1/users/"+reviewerID.String(), service.UpdateUserInput{
		Role: &admin,
	})

	h.Update(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserHandler_Update_AdminPromotesReviewer(t *testing.T) {
	h, mockSvc := newUserHandler()
	firmID := uuid.New()
	colleagueID := uuid.New()

	promoted := &domain.User{ID: colleagueID, Role: domain.RoleAdmin}
	mockSvc.On("Update", mock.Anything, firmID, colleagueID, mock.AnythingOfType("service.UpdateUserInput")).
		Return(promoted, nil)

	admin := domain.RoleAdmin
	w := httptest.NewRecorder()
	c := staffContext(w, firmID, uuid.New(), domain.RoleAdmin, colleagueID.String())
	jsonRequest(c, http.MethodPut, "/api/v1/users/"+colleagueID.String(), service.UpdateUserInput{
		Role: &admin,
	})

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestUserHandler_Update_ReviewerBlockedFromColleague(t *testing.T) {
	h, _ := newUserHandler()
	firmID := uuid.New()
	colleagueID := uuid.New()

	w := httptest.NewRecorder()
	c := staffContext(w, firmID, uuid.New(), domain.RoleReviewer, colleagueID.String())
	jsonRequest(c, http.MethodPut, "/api/v1/users/"+colleagueID.String(), map[string]string{
		"full_name": "Someone Else",
	})

	h.Update(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserHandler_Update_MalformedID(t *testing.T) {
	h, _ := newUserHandler()

	w := httptest.NewRecorder()
	c := staffContext(w, uuid.New(), uuid.New(), domain.RoleAdmin, "not-a-uuid")
	c.Request, _ = http.NewRequest(http.MethodPut, "/api/v1/users/not-a-uuid", http.NoBody)

	h.Update(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Delete ---

func TestUserHandler_Delete_AdminRemovesReviewer(t *testing.T) {
	h, mockSvc := newUserHandler()
	firmID := uuid.New()
	colleagueID := uuid.New()

	mockSvc.On("Delete", mock.Anything, firmID, colleagueID).Return(nil)

	w := httptest.NewRecorder()
	c := staffContext(w, firmID, uuid.New(), domain.RoleAdmin, colleagueID.String())
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/users/"+colleagueID.String(), http.NoBody)

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestUserHandler_Delete_NotFound(t *testing.T) {
	h, mockSvc := newUserHandler()
	firmID := uuid.New()
	colleagueID := uuid.New()

	mockSvc.On("Delete", mock.Anything, firmID, colleagueID).Return(domain.ErrNotFound)

	w := httptest.NewRecorder()
	c := staffContext(w, firmID, uuid.New(), domain.RoleAdmin, colleagueID.String())
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/users/"+colleagueID.String(), http.NoBody)

	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserHandler_Delete_Unauthenticated(t *testing.T) {
	h, _ := newUserHandler()
	colleagueID := uuid.New()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: colleagueID.String()}}
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/users/"+colleagueID.String(), http.NoBody)

	h.Delete(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserHandler_Delete_MalformedID(t *testing.T) {
	h, _ := newUserHandler()

	w := httptest.NewRecorder()
	c := staffContext(w, uuid.New(), uuid.New(), domain.RoleAdmin, "not-a-uuid")
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/users/not-a-uuid", http.NoBody)

	h.Delete(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
