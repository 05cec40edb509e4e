package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"apprev/internal/middleware"
)

const reviewPortal = "https://portal.apprev.io"

func corsRouter(origins ...string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.CORS(origins))
	r.GET("/reports", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.PUT("/reports", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func corsGet(r *gin.Engine, origin string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/reports", http.NoBody)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCORS_AllowedOrigin(t *testing.T) {
	r := corsRouter(reviewPortal, "http://localhost:5173")

	w := corsGet(r, reviewPortal)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, reviewPortal, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	w := corsGet(corsRouter(reviewPortal), "https://evil.example")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	r := corsRouter(reviewPortal)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodOptions, "/reports", http.NoBody)
	req.Header.Set("Origin", reviewPortal)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, reviewPortal, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestCORS_PreflightFromDisallowedOrigin(t *testing.T) {
	r := corsRouter(reviewPortal)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodOptions, "/reports", http.NoBody)
	req.Header.Set("Origin", "https://evil.example")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_NoOriginHeader(t *testing.T) {
	w := corsGet(corsRouter(reviewPortal), "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_EachConfiguredOriginEchoed(t *testing.T) {
	origins := []string{reviewPortal, "https://staging.apprev.io", "http://localhost:5173"}
	r := corsRouter(origins...)

	for _, origin := range origins {
		w := corsGet(r, origin)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"), "origin %s should be allowed", origin)
	}
}

func TestCORS_NoConfiguredOrigins(t *testing.T) {
	w := corsGet(corsRouter(), reviewPortal)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
