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
	"apprev/internal/service"
	"apprev/mocks"
)

func newTenantHandler() (*handler.TenantHandler, *mocks.MockTenantService) {
	mockSvc := new(mocks.MockTenantService)
	h := handler.NewTenantHandler(mockSvc)
	return h, mockSvc
}

// idContext builds a test context carrying only the :id route parameter;
// tenant administration routes sit behind the platform-admin middleware,
// so the handlers read no auth keys themselves.
func idContext(w *httptest.ResponseRecorder, id string) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: id}}
	return c
}

// --- Create ---

func TestTenantHandler_Create_OnboardsFirm(t *testing.T) {
	h, mockSvc := newTenantHandler()

	onboarded := &domain.Tenant{
		ID:       uuid.New(),
		Name:     "Lakeshore Valuation Review",
		Slug:     "lakeshore",
		IsActive: true,
	}
	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(input service.CreateTenantInput) bool {
		return input.Name == "Lakeshore Valuation Review" && input.Slug == "lakeshore"
	})).Return(onboarded, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	jsonRequest(c, http.MethodPost, "/api/v1/admin/tenants", map[string]string{
		"name": "Lakeshore Valuation Review",
		"slug": "lakeshore",
	})

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestTenantHandler_Create_MissingSlug(t *testing.T) {
	h, _ := newTenantHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	jsonRequest(c, http.MethodPost, "/api/v1/admin/tenants", map[string]string{
		"name": "Lakeshore Valuation Review",
	})

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTenantHandler_Create_DuplicateSlug(t *testing.T) {
	h, mockSvc := newTenantHandler()

	mockSvc.On("Create", mock.Anything, mock.AnythingOfType("service.CreateTenantInput")).
		Return(nil, domain.ErrDuplicateTenantSlug)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	jsonRequest(c, http.MethodPost, "/api/v1/admin/tenants", map[string]string{
		"name": "Lakeshore Valuation Review",
		"slug": "lakeshore",
	})

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTenantHandler_Create_MalformedSlug(t *testing.T) {
	h, mockSvc := newTenantHandler()

	mockSvc.On("Create", mock.Anything, mock.AnythingOfType("service.CreateTenantInput")).
		Return(nil, domain.ErrInvalidTenantSlug)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	jsonRequest(c, http.MethodPost, "/api/v1/admin/tenants", map[string]string{
		"name": "Lakeshore Valuation Review",
		"slug": "lake shore",
	})

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- List ---

func TestTenantHandler_List_ReturnsFirmsWithMeta(t *testing.T) {
	h, mockSvc := newTenantHandler()

	firms := []domain.Tenant{
		{ID: uuid.New(), Name: "Lakeshore Valuation Review", Slug: "lakeshore", IsActive: true},
		{ID: uuid.New(), Name: "Summit Appraisal Audit", Slug: "summit", IsActive: true},
	}
	mockSvc.On("List", mock.Anything, 0, 20).Return(firms, 2, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/admin/tenants?offset=0&limit=20", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Total)
	mockSvc.AssertExpectations(t)
}

// --- GetByID ---

func TestTenantHandler_GetByID(t *testing.T) {
	h, mockSvc := newTenantHandler()
	firmID := uuid.New()

	firm := &domain.Tenant{ID: firmID, Name: "Lakeshore Valuation Review", Slug: "lakeshore", IsActive: true}
	mockSvc.On("GetByID", mock.Anything, firmID).Return(firm, nil)

	w := httptest.NewRecorder()
	c := idContext(w, firmID.String())
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/admin/tenants/"+firmID.String(), http.NoBody)

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestTenantHandler_GetByID_NotFound(t *testing.T) {
	h, mockSvc := newTenantHandler()
	firmID := uuid.New()

	mockSvc.On("GetByID", mock.Anything, firmID).Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	c := idContext(w, firmID.String())
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/admin/tenants/"+firmID.String(), http.NoBody)

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTenantHandler_GetByID_MalformedID(t *testing.T) {
	h, _ := newTenantHandler()

	w := httptest.NewRecorder()
	c := idContext(w, "not-a-uuid")
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/admin/tenants/not-a-uuid", http.NoBody)

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Update ---

func TestTenantHandler_Update_RenamesFirm(t *testing.T) {
	h, mockSvc := newTenantHandler()
	firmID := uuid.New()

	renamed := &domain.Tenant{
		ID:       firmID,
		Name:     "Lakeshore Review Group",
		Slug:     "lakeshore",
		IsActive: true,
	}
	mockSvc.On("Update", mock.Anything, firmID, mock.AnythingOfType("service.UpdateTenantInput")).
		Return(renamed, nil)

	w := httptest.NewRecorder()
	c := idContext(w, firmID.String())
	jsonRequest(c, http.MethodPut, "/api/v1/admin/tenants/"+firmID.String(), map[string]any{
		"name":      "Lakeshore Review Group",
		"is_active": true,
	})

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestTenantHandler_Update_MalformedID(t *testing.T) {
	h, _ := newTenantHandler()

	w := httptest.NewRecorder()
	c := idContext(w, "not-a-uuid")
	c.Request, _ = http.NewRequest(http.MethodPut, "/api/v1/admin/tenants/not-a-uuid", http.NoBody)

	h.Update(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTenantHandler_Update_NotFound(t *testing.T) {
	h, mockSvc := newTenantHandler()
	firmID := uuid.New()

	mockSvc.On("Update", mock.Anything, firmID, mock.AnythingOfType("service.UpdateTenantInput")).
		Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	c := idContext(w, firmID.String())
	jsonRequest(c, http.MethodPut, "/api/v1/admin/tenants/"+firmID.String(), map[string]string{
		"name": "Lakeshore Review Group",
	})

	h.Update(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --- Delete ---

func TestTenantHandler_Delete(t *testing.T) {
	h, mockSvc := newTenantHandler()
	firmID := uuid.New()

	mockSvc.On("Delete", mock.Anything, firmID).Return(nil)

	w := httptest.NewRecorder()
	c := idContext(w, firmID.String())
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/admin/tenants/"+firmID.String(), http.NoBody)

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestTenantHandler_Delete_NotFound(t *testing.T) {
	h, mockSvc := newTenantHandler()
	firmID := uuid.New()

	mockSvc.On("Delete", mock.Anything, firmID).Return(domain.ErrNotFound)

	w := httptest.NewRecorder()
	c := idContext(w, firmID.String())
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/admin/tenants/"+firmID.String(), http.NoBody)

	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTenantHandler_Delete_MalformedID(t *testing.T) {
	h, _ := newTenantHandler()

	w := httptest.NewRecorder()
	c := idContext(w, "not-a-uuid")
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/admin/tenants/not-a-uuid", http.NoBody)

	h.Delete(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
