package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"apprev/internal/config"
	"apprev/internal/domain"
	"apprev/internal/port"
	"apprev/internal/report"
	"apprev/internal/validator"
	"apprev/internal/validator/appraisal"
	"apprev/internal/xlsxexport"
)

// UploadReportInput is the DTO for uploading an appraisal report.
type UploadReportInput struct {
	TenantID   uuid.UUID
	UploadedBy uuid.UUID
	FormType   string
	File       multipart.File
	Header     *multipart.FileHeader
}

// PatchFieldInput is the DTO for editing one field of a report's data.
type PatchFieldInput struct {
	TenantID uuid.UUID
	ReportID uuid.UUID
	UserID   uuid.UUID
	Path     report.FieldPath
	Value    string
	RowName  string
}

// ToggleValidationInput is the DTO for flipping a reviewer sign-off.
type ToggleValidationInput struct {
	TenantID uuid.UUID
	ReportID uuid.UUID
	UserID   uuid.UUID
	Path     report.FieldPath
}

// IngestFindingsInput is the DTO for storing one checklist's findings,
// posted by the external review pipeline.
type IngestFindingsInput struct {
	TenantID  uuid.UUID
	ReportID  uuid.UUID
	CheckType domain.RequirementCheck
	Findings  []IngestedFinding
}

// IngestedFinding is one checklist row as submitted by the pipeline.
type IngestedFinding struct {
	Name   string
	Status string
	Detail string
}

// UpdateReviewInput is the DTO for updating a report's review status.
type UpdateReviewInput struct {
	TenantID   uuid.UUID
	ReportID   uuid.UUID
	ReviewerID uuid.UUID
	Status     domain.ReviewStatus
	Notes      string
}

// FieldResolution pairs a field path with its resolved status, for the
// whole-document statuses listing.
type FieldResolution struct {
	Path    string                `json:"path"`
	Status  validator.FieldStatus `json:"status"`
	RowName string                `json:"row_name,omitempty"`
}

// ErrorReport is the aggregate validation state of one report.
type ErrorReport struct {
	ReportID        uuid.UUID                        `json:"report_id"`
	Errors          []validator.ErrorEntry           `json:"errors"`
	MissingFields   []validator.MissingField         `json:"missing_fields"`
	Findings        []domain.RequirementFinding      `json:"findings"`
	Inconsistencies []validator.AddressInconsistency `json:"address_inconsistencies"`
}

// ErrorLogExport is the result of exporting an error log workbook.
type ErrorLogExport struct {
	FileName    string `json:"file_name"`
	DownloadURL string `json:"download_url"`
	ErrorCount  int    `json:"error_count"`
	EmailSent   bool   `json:"email_sent"`
}

// ReportService defines the appraisal report management contract.
type ReportService interface {
	Upload(ctx context.Context, input *UploadReportInput) (*domain.AppraisalReport, error)
	GetByID(ctx context.Context, tenantID, reportID uuid.UUID) (*domain.AppraisalReport, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.AppraisalReport, int, error)
	RetryExtraction(ctx context.Context, tenantID, reportID uuid.UUID) (*domain.AppraisalReport, error)
	PatchField(ctx context.Context, input *PatchFieldInput) (*validator.FieldStatus, error)
	ResolveField(ctx context.Context, tenantID, reportID uuid.UUID, path report.FieldPath, rowName string) (*validator.FieldStatus, error)
	FieldStatuses(ctx context.Context, tenantID, reportID uuid.UUID) ([]FieldResolution, error)
	ToggleManualValidation(ctx context.Context, input *ToggleValidationInput) (bool, *validator.FieldStatus, error)
	RequirementFindings(ctx context.Context, tenantID, reportID uuid.UUID, refresh bool) ([]domain.RequirementFinding, error)
	IngestFindings(ctx context.Context, input *IngestFindingsInput) ([]domain.RequirementFinding, error)
	GetErrorReport(ctx context.Context, tenantID, reportID uuid.UUID) (*ErrorReport, error)
	ExportErrorLog(ctx context.Context, tenantID, reportID, userID uuid.UUID) (*ErrorLogExport, error)
	UpdateReview(ctx context.Context, input *UpdateReviewInput) (*domain.AppraisalReport, error)
	GetDownloadURL(ctx context.Context, tenantID, reportID uuid.UUID) (string, error)
	Delete(ctx context.Context, tenantID, reportID uuid.UUID) error
	ExtractReport(ctx context.Context, tenantID, reportID uuid.UUID)
}

type reportService struct {
	reportRepo  port.ReportRepository
	manualRepo  port.ManualValidationRepository
	findingRepo port.RequirementFindingRepository
	userRepo    port.UserRepository
	storage     port.ObjectStorage
	extractor   port.FieldExtractor
	email       port.EmailSender
	resolver    *validator.Resolver
	s3Cfg       *config.S3Config
	strictAddrs bool
}

// NewReportService creates a new ReportService implementation.
func NewReportService(
	reportRepo port.ReportRepository,
	manualRepo port.ManualValidationRepository,
	findingRepo port.RequirementFindingRepository,
	userRepo port.UserRepository,
	storage port.ObjectStorage,
	extractor port.FieldExtractor,
	emailSender port.EmailSender,
	resolver *validator.Resolver,
	s3Cfg *config.S3Config,
	validationCfg *config.ValidationConfig,
) ReportService {
	return &reportService{
		reportRepo:  reportRepo,
		manualRepo:  manualRepo,
		findingRepo: findingRepo,
		userRepo:    userRepo,
		storage:     storage,
		extractor:   extractor,
		email:       emailSender,
		resolver:    resolver,
		s3Cfg:       s3Cfg,
		strictAddrs: validationCfg != nil && validationCfg.StrictAddressConsistency,
	}
}

func (s *reportService) Upload(ctx context.Context, input *UploadReportInput) (*domain.AppraisalReport, error) {
	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.s3Cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detectedType := strings.SplitN(http.DetectContentType(buf[:n]), ";", 2)[0]
	if _, validContent := domain.AllowedContentTypes[detectedType]; !validContent {
		return nil, domain.ErrUnsupportedFileType
	}

	// Seek back to beginning for upload
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	formType := input.FormType
	if formType == "" {
		formType = report.FormTypes[0]
	}

	reportID := uuid.New()
	s3Key := fmt.Sprintf("tenants/%s/reports/%s/%s", input.TenantID, reportID, input.Header.Filename)
	contentType := domain.AllowedFileTypes[fileType]

	rep := &domain.AppraisalReport{
		ID:               reportID,
		TenantID:         input.TenantID,
		UploadedBy:       input.UploadedBy,
		FileName:         reportID.String() + "." + ext,
		OriginalName:     input.Header.Filename,
		FormType:         formType,
		FileType:         fileType,
		FileSize:         input.Header.Size,
		S3Bucket:         s.s3Cfg.Bucket,
		S3Key:            s3Key,
		ContentType:      contentType,
		FieldData:        json.RawMessage("{}"),
		ExtractionStatus: domain.ExtractionPending,
		ReviewStatus:     domain.ReviewInProgress,
	}

	log.Printf("reportService.Upload: uploading report %s (%s, %d bytes) for tenant %s by user %s",
		input.Header.Filename, contentType, input.Header.Size, input.TenantID, input.UploadedBy)

	if err := s.reportRepo.Create(ctx, rep); err != nil {
		return nil, fmt.Errorf("creating report: %w", err)
	}

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         s3Key,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	}); err != nil {
		log.Printf("reportService.Upload: S3 upload failed for report %s: %v", rep.ID, err)
		_ = s.reportRepo.UpdateExtraction(ctx, rep.TenantID, rep.ID, domain.ExtractionFailed, "upload to storage failed")
		return nil, domain.ErrUploadFailed
	}

	// Copy before launching goroutine so the caller's value is independent of background work
	result := *rep

	go s.extractInBackground(rep.TenantID, rep.ID)

	return &result, nil
}

func (s *reportService) extractInBackground(tenantID, reportID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	s.ExtractReport(ctx, tenantID, reportID)
}

// ExtractReport performs the core extraction flow: S3 download, extraction
// service call, merge into stored field data, manual-override reset, and
// requirement re-evaluation. Called by both the upload goroutine and the
// retry endpoint.
func (s *reportService) ExtractReport(ctx context.Context, tenantID, reportID uuid.UUID) {
	log.Printf("reportService.ExtractReport: starting extraction for report %s", reportID)

	rep, err := s.reportRepo.GetByID(ctx, tenantID, reportID)
	if err != nil {
		log.Printf("reportService.ExtractReport: failed to get report %s: %v", reportID, err)
		return
	}

	if err := s.reportRepo.UpdateExtraction(ctx, tenantID, reportID, domain.ExtractionProcessing, ""); err != nil {
		log.Printf("reportService.ExtractReport: failed to set processing status for %s: %v", reportID, err)
		return
	}

	fileBytes, err := s.storage.Download(ctx, rep.S3Bucket, rep.S3Key)
	if err != nil {
		s.failExtraction(ctx, tenantID, reportID, fmt.Sprintf("downloading report: %v", err))
		return
	}

	output, err := s.extractor.Extract(ctx, port.ExtractInput{
		FileBytes:   fileBytes,
		ContentType: rep.ContentType,
		FormType:    rep.FormType,
	})
	if err != nil {
		s.failExtraction(ctx, tenantID, reportID, fmt.Sprintf("extracting fields: %v", err))
		return
	}

	doc, err := decodeDocument(rep.FieldData)
	if err != nil {
		s.failExtraction(ctx, tenantID, reportID, fmt.Sprintf("decoding stored field data: %v", err))
		return
	}
	doc.MergeExtraction(output.Fields)

	fieldJSON, err := json.Marshal(doc)
	if err != nil {
		s.failExtraction(ctx, tenantID, reportID, fmt.Sprintf("encoding field data: %v", err))
		return
	}
	if err := s.reportRepo.UpdateFieldData(ctx, tenantID, reportID, fieldJSON); err != nil {
		s.failExtraction(ctx, tenantID, reportID, fmt.Sprintf("saving field data: %v", err))
		return
	}

	// A fresh extraction invalidates earlier sign-offs
	if err := s.manualRepo.ClearByReport(ctx, tenantID, reportID); err != nil {
		log.Printf("reportService.ExtractReport: failed to clear manual validations for %s: %v", reportID, err)
	}

	if err := s.reportRepo.UpdateExtraction(ctx, tenantID, reportID, domain.ExtractionCompleted, ""); err != nil {
		log.Printf("reportService.ExtractReport: failed to set completed status for %s: %v", reportID, err)
		return
	}

	log.Printf("reportService.ExtractReport: report %s extracted successfully", reportID)

	if err := s.refreshStateFindings(ctx, tenantID, reportID, doc); err != nil {
		log.Printf("reportService.ExtractReport: requirement evaluation failed for %s: %v", reportID, err)
	}
}

func (s *reportService) failExtraction(ctx context.Context, tenantID, reportID uuid.UUID, errMsg string) {
	log.Printf("reportService.failExtraction: report %s failed: %s", reportID, errMsg)
	if err := s.reportRepo.UpdateExtraction(ctx, tenantID, reportID, domain.ExtractionFailed, errMsg); err != nil {
		log.Printf("reportService.failExtraction: failed to update status for %s: %v", reportID, err)
	}
}

func (s *reportService) GetByID(ctx context.Context, tenantID, reportID uuid.UUID) (*domain.AppraisalReport, error) {
	return s.reportRepo.GetByID(ctx, tenantID, reportID)
}

func (s *reportService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.AppraisalReport, int, error) {
	return s.reportRepo.ListByTenant(ctx, tenantID, offset, limit)
}

func (s *reportService) RetryExtraction(ctx context.Context, tenantID, reportID uuid.UUID) (*domain.AppraisalReport, error) {
	rep, err := s.reportRepo.GetByID(ctx, tenantID, reportID)
	if err != nil {
		return nil, err
	}
	if rep.ExtractionStatus == domain.ExtractionProcessing {
		return nil, domain.ErrExtractionInProgress
	}

	if err := s.reportRepo.UpdateExtraction(ctx, tenantID, reportID, domain.ExtractionPending, ""); err != nil {
		return nil, fmt.Errorf("resetting extraction status: %w", err)
	}
	rep.ExtractionStatus = domain.ExtractionPending
	rep.ExtractionError = ""

	log.Printf("reportService.RetryExtraction: retrying extraction for report %s", reportID)

	result := *rep
	go s.extractInBackground(tenantID, reportID)
	return &result, nil
}

func (s *reportService) PatchField(ctx context.Context, input *PatchFieldInput) (*validator.FieldStatus, error) {
	if len(input.Path) == 0 {
		return nil, domain.ErrInvalidFieldPath
	}

	rep, err := s.reportRepo.GetByID(ctx, input.TenantID, input.ReportID)
	if err != nil {
		return nil, err
	}

	doc, err := decodeDocument(rep.FieldData)
	if err != nil {
		return nil, fmt.Errorf("decoding field data: %w", err)
	}
	doc.Set(input.Path, input.Value)

	fieldJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding field data: %w", err)
	}
	if err := s.reportRepo.UpdateFieldData(ctx, input.TenantID, input.ReportID, fieldJSON); err != nil {
		return nil, fmt.Errorf("saving field data: %w", err)
	}

	manual, err := s.loadManualStore(ctx, input.TenantID, input.ReportID)
	if err != nil {
		return nil, err
	}

	status := s.resolver.Resolve(input.Path.Field(), input.Value, doc, input.Path, input.RowName, manual)
	return &status, nil
}

func (s *reportService) ResolveField(ctx context.Context, tenantID, reportID uuid.UUID, path report.FieldPath, rowName string) (*validator.FieldStatus, error) {
	if len(path) == 0 {
		return nil, domain.ErrInvalidFieldPath
	}
	doc, manual, err := s.loadDocumentAndOverrides(ctx, tenantID, reportID)
	if err != nil {
		return nil, err
	}
	value := doc.Text(path...)
	status := s.resolver.Resolve(path.Field(), value, doc, path, rowName, manual)
	return &status, nil
}

func (s *reportService) FieldStatuses(ctx context.Context, tenantID, reportID uuid.UUID) ([]FieldResolution, error) {
	doc, manual, err := s.loadDocumentAndOverrides(ctx, tenantID, reportID)
	if err != nil {
		return nil, err
	}

	comparables := make(map[string]bool, len(report.ComparableSales)+len(report.ComparableRents))
	for _, name := range report.ComparableSales {
		comparables[name] = true
	}
	for _, name := range report.ComparableRents {
		comparables[name] = true
	}

	var out []FieldResolution
	resolve := func(field, value string, path report.FieldPath, rowName string) {
		status := s.resolver.Resolve(field, value, doc, path, rowName, manual)
		if status.Style == validator.StyleNone {
			return
		}
		out = append(out, FieldResolution{Path: path.Serialize(), Status: status, RowName: rowName})
	}

	for sectionKey, sectionVal := range doc {
		rowName := ""
		if comparables[sectionKey] {
			rowName = sectionKey
		}
		if fields, ok := sectionVal.(map[string]any); ok {
			for fieldKey, v := range fields {
				resolve(fieldKey, report.Stringify(v), report.FieldPath{sectionKey, fieldKey}, rowName)
			}
			continue
		}
		resolve(sectionKey, report.Stringify(sectionVal), report.FieldPath{sectionKey}, "")
	}
	return out, nil
}

func (s *reportService) ToggleManualValidation(ctx context.Context, input *ToggleValidationInput) (bool, *validator.FieldStatus, error) {
	if len(input.Path) == 0 {
		return false, nil, domain.ErrInvalidFieldPath
	}

	rep, err := s.reportRepo.GetByID(ctx, input.TenantID, input.ReportID)
	if err != nil {
		return false, nil, err
	}

	active, err := s.manualRepo.Toggle(ctx, &domain.ManualValidation{
		ID:        uuid.New(),
		TenantID:  input.TenantID,
		ReportID:  input.ReportID,
		FieldPath: input.Path.Serialize(),
		CreatedBy: input.UserID,
	})
	if err != nil {
		return false, nil, fmt.Errorf("toggling manual validation: %w", err)
	}

	log.Printf("reportService.ToggleManualValidation: report %s path %s now active=%v",
		input.ReportID, input.Path.Serialize(), active)

	doc, err := decodeDocument(rep.FieldData)
	if err != nil {
		return active, nil, fmt.Errorf("decoding field data: %w", err)
	}
	manual, err := s.loadManualStore(ctx, input.TenantID, input.ReportID)
	if err != nil {
		return active, nil, err
	}

	value := doc.Text(input.Path...)
	status := s.resolver.Resolve(input.Path.Field(), value, doc, input.Path, "", manual)
	return active, &status, nil
}

func (s *reportService) RequirementFindings(ctx context.Context, tenantID, reportID uuid.UUID, refresh bool) ([]domain.RequirementFinding, error) {
	if refresh {
		rep, err := s.reportRepo.GetByID(ctx, tenantID, reportID)
		if err != nil {
			return nil, err
		}
		if rep.ExtractionStatus != domain.ExtractionCompleted {
			return nil, domain.ErrNotExtracted
		}
		doc, err := decodeDocument(rep.FieldData)
		if err != nil {
			return nil, fmt.Errorf("decoding field data: %w", err)
		}
		if err := s.refreshStateFindings(ctx, tenantID, reportID, doc); err != nil {
			return nil, err
		}
	}
	return s.findingRepo.ListByReport(ctx, tenantID, reportID)
}

func (s *reportService) IngestFindings(ctx context.Context, input *IngestFindingsInput) ([]domain.RequirementFinding, error) {
	if _, err := s.reportRepo.GetByID(ctx, input.TenantID, input.ReportID); err != nil {
		return nil, err
	}

	findings := make([]domain.RequirementFinding, 0, len(input.Findings))
	for _, f := range input.Findings {
		findings = append(findings, domain.RequirementFinding{
			ID:        uuid.New(),
			TenantID:  input.TenantID,
			ReportID:  input.ReportID,
			CheckType: input.CheckType,
			Name:      f.Name,
			Status:    f.Status,
			Detail:    f.Detail,
		})
	}
	if err := s.findingRepo.ReplaceForReport(ctx, input.TenantID, input.ReportID, input.CheckType, findings); err != nil {
		return nil, fmt.Errorf("saving requirement findings: %w", err)
	}
	return findings, nil
}

// refreshStateFindings recomputes the state-law checklist and replaces the
// stored rows for that check type.
func (s *reportService) refreshStateFindings(ctx context.Context, tenantID, reportID uuid.UUID, doc report.Document) error {
	results := appraisal.EvaluateStateRequirements(doc)
	findings := make([]domain.RequirementFinding, 0, len(results))
	for _, r := range results {
		findings = append(findings, domain.RequirementFinding{
			ID:        uuid.New(),
			TenantID:  tenantID,
			ReportID:  reportID,
			CheckType: domain.CheckState,
			Name:      r.Name,
			Status:    r.Status,
			Detail:    r.Detail,
		})
	}
	if err := s.findingRepo.ReplaceForReport(ctx, tenantID, reportID, domain.CheckState, findings); err != nil {
		return fmt.Errorf("saving requirement findings: %w", err)
	}
	return nil
}

func (s *reportService) GetErrorReport(ctx context.Context, tenantID, reportID uuid.UUID) (*ErrorReport, error) {
	rep, err := s.reportRepo.GetByID(ctx, tenantID, reportID)
	if err != nil {
		return nil, err
	}
	if rep.ExtractionStatus != domain.ExtractionCompleted {
		return nil, domain.ErrNotExtracted
	}

	doc, err := decodeDocument(rep.FieldData)
	if err != nil {
		return nil, fmt.Errorf("decoding field data: %w", err)
	}

	findings, err := s.findingRepo.ListByReport(ctx, tenantID, reportID)
	if err != nil {
		return nil, fmt.Errorf("listing requirement findings: %w", err)
	}

	return &ErrorReport{
		ReportID:        reportID,
		Errors:          s.resolver.CollectErrors(doc),
		MissingFields:   validator.MissingFields(doc),
		Findings:        findings,
		Inconsistencies: validator.CheckComparableAddresses(doc, s.strictAddrs),
	}, nil
}

func (s *reportService) ExportErrorLog(ctx context.Context, tenantID, reportID, userID uuid.UUID) (*ErrorLogExport, error) {
	rep, err := s.reportRepo.GetByID(ctx, tenantID, reportID)
	if err != nil {
		return nil, err
	}

	errReport, err := s.GetErrorReport(ctx, tenantID, reportID)
	if err != nil {
		return nil, err
	}

	workbook, err := xlsxexport.Build(&xlsxexport.ErrorLog{
		ReportName:      rep.OriginalName,
		Errors:          errReport.Errors,
		Missing:         errReport.MissingFields,
		Findings:        errReport.Findings,
		Inconsistencies: errReport.Inconsistencies,
	})
	if err != nil {
		return nil, fmt.Errorf("building error log workbook: %w", err)
	}

	fileName := xlsxexport.BuildFilename(rep.OriginalName)
	s3Key := fmt.Sprintf("tenants/%s/reports/%s/exports/%s", tenantID, reportID, fileName)

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         s3Key,
		Body:        bytes.NewReader(workbook),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Size:        int64(len(workbook)),
	}); err != nil {
		return nil, fmt.Errorf("uploading error log: %w", err)
	}

	downloadURL, err := s.storage.GetPresignedURL(ctx, s.s3Cfg.Bucket, s3Key, s.s3Cfg.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presigning error log: %w", err)
	}

	result := &ErrorLogExport{
		FileName:    fileName,
		DownloadURL: downloadURL,
		ErrorCount:  len(errReport.Errors),
	}

	// Email delivery is best-effort; the caller still gets the URL
	user, err := s.userRepo.GetByID(ctx, tenantID, userID)
	if err != nil {
		log.Printf("reportService.ExportErrorLog: failed to look up user %s for email: %v", userID, err)
		return result, nil
	}
	if err := s.email.SendErrorReportEmail(ctx, user.Email, user.FullName, rep.OriginalName, downloadURL); err != nil {
		log.Printf("reportService.ExportErrorLog: failed to email error log for %s: %v", reportID, err)
		return result, nil
	}
	result.EmailSent = true
	return result, nil
}

func (s *reportService) UpdateReview(ctx context.Context, input *UpdateReviewInput) (*domain.AppraisalReport, error) {
	rep, err := s.reportRepo.GetByID(ctx, input.TenantID, input.ReportID)
	if err != nil {
		return nil, err
	}
	if rep.ExtractionStatus != domain.ExtractionCompleted {
		return nil, domain.ErrNotExtracted
	}

	if err := s.reportRepo.UpdateReview(ctx, input.TenantID, input.ReportID, input.Status, input.ReviewerID, input.Notes); err != nil {
		return nil, fmt.Errorf("updating review status: %w", err)
	}

	now := time.Now().UTC()
	rep.ReviewStatus = input.Status
	rep.ReviewedBy = &input.ReviewerID
	rep.ReviewedAt = &now
	rep.ReviewerNotes = input.Notes
	return rep, nil
}

func (s *reportService) GetDownloadURL(ctx context.Context, tenantID, reportID uuid.UUID) (string, error) {
	rep, err := s.reportRepo.GetByID(ctx, tenantID, reportID)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, rep.S3Bucket, rep.S3Key, s.s3Cfg.PresignExpiry)
}

func (s *reportService) Delete(ctx context.Context, tenantID, reportID uuid.UUID) error {
	log.Printf("reportService.Delete: deleting report %s for tenant %s", reportID, tenantID)

	rep, err := s.reportRepo.GetByID(ctx, tenantID, reportID)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, rep.S3Bucket, rep.S3Key); err != nil {
		log.Printf("reportService.Delete: failed to delete from S3: %v", err)
		return fmt.Errorf("deleting from storage: %w", err)
	}
	return s.reportRepo.Delete(ctx, tenantID, reportID)
}

// loadDocumentAndOverrides fetches the report's field data and manual
// overrides together, the inputs every resolution needs.
func (s *reportService) loadDocumentAndOverrides(ctx context.Context, tenantID, reportID uuid.UUID) (report.Document, *validator.ManualStore, error) {
	rep, err := s.reportRepo.GetByID(ctx, tenantID, reportID)
	if err != nil {
		return nil, nil, err
	}
	doc, err := decodeDocument(rep.FieldData)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding field data: %w", err)
	}
	manual, err := s.loadManualStore(ctx, tenantID, reportID)
	if err != nil {
		return nil, nil, err
	}
	return doc, manual, nil
}

func (s *reportService) loadManualStore(ctx context.Context, tenantID, reportID uuid.UUID) (*validator.ManualStore, error) {
	rows, err := s.manualRepo.ListByReport(ctx, tenantID, reportID)
	if err != nil {
		return nil, fmt.Errorf("listing manual validations: %w", err)
	}
	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, row.FieldPath)
	}
	store := validator.NewManualStore()
	store.Load(keys)
	return store, nil
}

func decodeDocument(raw json.RawMessage) (report.Document, error) {
	doc := report.Document{}
	if len(raw) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
