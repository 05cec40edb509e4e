package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"apprev/internal/domain"
	"apprev/internal/handler"
	"apprev/internal/middleware"
	"apprev/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	reportH *handler.ReportHandler,
	tenantH *handler.TenantHandler,
	userH *handler.UserHandler,
	healthH *handler.HealthHandler,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation, served from the spec generated by swag init
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))
	protected.Use(middleware.TenantGuard())

	// Appraisal report routes
	reports := protected.Group("/reports")
	reports.POST("/upload", reportH.Upload)
	reports.GET("", reportH.List)
	reports.GET("/:id", reportH.GetByID)
	reports.POST("/:id/extract", reportH.RetryExtraction)
	reports.PATCH("/:id/fields", reportH.PatchField)
	reports.GET("/:id/fields/status", reportH.ResolveField)
	reports.GET("/:id/statuses", reportH.FieldStatuses)
	reports.POST("/:id/manual-validations", reportH.ToggleManualValidation)
	reports.GET("/:id/findings", reportH.RequirementFindings)
	reports.POST("/:id/findings", reportH.IngestFindings)
	reports.GET("/:id/errors", reportH.GetErrorReport)
	reports.POST("/:id/error-log", reportH.ExportErrorLog)
	reports.PATCH("/:id/review", reportH.UpdateReview)
	reports.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), reportH.Delete)

	// User management (tenant-scoped)
	users := protected.Group("/users")
	users.POST("", middleware.RequireRole(domain.RoleAdmin), userH.Create)
	users.GET("", middleware.RequireRole(domain.RoleAdmin), userH.List)
	users.GET("/:id", userH.GetByID)
	users.PUT("/:id", userH.Update)
	users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Delete)

	// Admin routes - tenant management
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authSvc))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.POST("/tenants", tenantH.Create)
	admin.GET("/tenants", tenantH.List)
	admin.GET("/tenants/:id", tenantH.GetByID)
	admin.PUT("/tenants/:id", tenantH.Update)
	admin.DELETE("/tenants/:id", tenantH.Delete)

	return r
}
