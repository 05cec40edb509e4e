package main

import (
	"fmt"
	"log"

	"apprev/internal/config"
	"apprev/internal/email/noop"
	"apprev/internal/email/ses"
	"apprev/internal/extraction"
	"apprev/internal/handler"
	"apprev/internal/port"
	"apprev/internal/repository/postgres"
	"apprev/internal/router"
	"apprev/internal/service"
	s3storage "apprev/internal/storage/s3"
	"apprev/internal/validator"
	"apprev/internal/validator/appraisal"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	tenantRepo := postgres.NewTenantRepo(db)
	userRepo := postgres.NewUserRepo(db)
	reportRepo := postgres.NewReportRepo(db)
	manualRepo := postgres.NewManualValidationRepo(db)
	findingRepo := postgres.NewRequirementFindingRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = noop.NewNoopSender(cfg.Email.FrontendURL)
	}

	// Initialize extraction client and validation engine
	extractor := extraction.NewClient(&cfg.Extraction)
	resolver := validator.NewResolver(appraisal.BuildRegistry())

	// Initialize services
	authSvc := service.NewAuthService(userRepo, tenantRepo, cfg.JWT)
	reportSvc := service.NewReportService(reportRepo, manualRepo, findingRepo, userRepo,
		s3Client, extractor, emailSender, resolver, &cfg.S3, &cfg.Validation)
	tenantSvc := service.NewTenantService(tenantRepo)
	userSvc := service.NewUserService(userRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	reportH := handler.NewReportHandler(reportSvc)
	tenantH := handler.NewTenantHandler(tenantSvc)
	userH := handler.NewUserHandler(userSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, authH, reportH, tenantH, userH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
