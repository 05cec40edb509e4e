package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"apprev/internal/domain"
	"apprev/internal/middleware"
	"apprev/internal/report"
	"apprev/internal/service"
)

// ReportHandler handles appraisal report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// patchFieldRequest is the body for field edits.
type patchFieldRequest struct {
	Path    []string `json:"path" binding:"required,min=1"`
	Value   string   `json:"value"`
	RowName string   `json:"row_name"`
}

// fieldPathRequest is the body for operations addressed by field path.
type fieldPathRequest struct {
	Path []string `json:"path" binding:"required,min=1"`
}

// updateReviewRequest is the body for review status updates.
type updateReviewRequest struct {
	Status domain.ReviewStatus `json:"status" binding:"required"`
	Notes  string              `json:"notes"`
}

var validReviewStatuses = map[domain.ReviewStatus]bool{
	domain.ReviewInProgress: true,
	domain.ReviewApproved:   true,
	domain.ReviewEscalated:  true,
	domain.ReviewRejected:   true,
}

// reportAndID extracts the auth context plus the :id path parameter.
func reportAndID(c *gin.Context) (tenantID, userID, reportID uuid.UUID, ok bool) {
	tenantID, userID, _, ok = extractAuthContext(c)
	if !ok {
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid report ID")
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	return tenantID, userID, reportID, true
}

// Upload handles POST /api/v1/reports/upload
// @Summary Upload an appraisal report
// @Description Upload an appraisal report (PDF, HTML, or XML) and start background field extraction
// @Tags reports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Report file to upload (PDF, HTML, or XML)"
// @Param form_type formData string false "Appraisal form type (e.g. 1004, 1025, 1073)"
// @Success 201 {object} APIResponse{data=domain.AppraisalReport} "Report uploaded, extraction queued"
// @Failure 400 {object} APIResponse "Missing file or unsupported type"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 413 {object} APIResponse "File too large"
// @Failure 500 {object} APIResponse "Upload failed"
// @Security BearerAuth
// @Router /reports/upload [post]
func (h *ReportHandler) Upload(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	rep, err := h.reportService.Upload(c.Request.Context(), &service.UploadReportInput{
		TenantID:   tenantID,
		UploadedBy: userID,
		FormType:   c.PostForm("form_type"),
		File:       file,
		Header:     header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, rep)
}

// List handles GET /api/v1/reports
// @Summary List appraisal reports
// @Description List all reports for the tenant with pagination
// @Tags reports
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.AppraisalReport,meta=PagMeta} "List of reports"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Security BearerAuth
// @Router /reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	offset, limit := paginationParams(c)

	reports, total, err := h.reportService.List(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, reports, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/reports/:id
// @Summary Get report by ID
// @Description Get report metadata, extracted field data, and a presigned download URL
// @Tags reports
// @Produce json
// @Param id path string true "Report ID (UUID)"
// @Success 200 {object} APIResponse{data=ReportWithDownloadURL} "Report with download URL"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Report not found"
// @Security BearerAuth
// @Router /reports/{id} [get]
func (h *ReportHandler) GetByID(c *gin.Context) {
	tenantID, _, reportID, ok := reportAndID(c)
	if !ok {
		return
	}

	rep, err := h.reportService.GetByID(c.Request.Context(), tenantID, reportID)
	if err != nil {
		HandleError(c, err)
		return
	}

	downloadURL, err := h.reportService.GetDownloadURL(c.Request.Context(), tenantID, reportID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"report":       rep,
		"download_url": downloadURL,
	})
}

// RetryExtraction handles POST /api/v1/reports/:id/extract
// @Summary Retry field extraction
// @Description Re-run field extraction for a report whose extraction failed or completed
// @Tags reports
// @Produce json
// @Param id path string true "Report ID (UUID)"
// @Success 200 {object} APIResponse{data=domain.AppraisalReport} "Extraction queued"
// @Failure 400 {object} APIResponse "Extraction already in progress"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Report not found"
// @Security BearerAuth
// @Router /reports/{id}/extract [post]
func (h *ReportHandler) RetryExtraction(c *gin.Context) {
	tenantID, _, reportID, ok := reportAndID(c)
	if !ok {
		return
	}

	rep, err := h.reportService.RetryExtraction(c.Request.Context(), tenantID, reportID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rep)
}

// PatchField handles PATCH /api/v1/reports/:id/fields
// @Summary Edit one field
// @Description Write a new value at a field path and return the field's fresh validation status
// @Tags reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID (UUID)"
// @Param request body patchFieldRequest true "Field path, new value, and optional comparable row name"
// @Success 200 {object} APIResponse{data=validator.FieldStatus} "Resolved field status"
// @Failure 400 {object} APIResponse "Invalid path"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Report not found"
// @Security BearerAuth
// @Router /reports/{id}/fields [patch]
func (h *ReportHandler) PatchField(c *gin.Context) {
	tenantID, userID, reportID, ok := reportAndID(c)
	if !ok {
		return
	}

	var req patchFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	status, err := h.reportService.PatchField(c.Request.Context(), &service.PatchFieldInput{
		TenantID: tenantID,
		ReportID: reportID,
		UserID:   userID,
		Path:     report.FieldPath(req.Path),
		Value:    req.Value,
		RowName:  req.RowName,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, status)
}

// ResolveField handles GET /api/v1/reports/:id/fields/status
// @Summary Resolve one field's status
// @Description Run the field's registered rules and return its style and message
// @Tags reports
// @Produce json
// @Param id path string true "Report ID (UUID)"
// @Param path query string true "Serialized field path (JSON array of segments)"
// @Param row_name query string false "Comparable row name for grid fields"
// @Success 200 {object} APIResponse{data=validator.FieldStatus} "Resolved field status"
// @Failure 400 {object} APIResponse "Invalid path"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Report not found"
// @Security BearerAuth
// @Router /reports/{id}/fields/status [get]
func (h *ReportHandler) ResolveField(c *gin.Context) {
	tenantID, _, reportID, ok := reportAndID(c)
	if !ok {
		return
	}

	path, err := report.ParseFieldPath(c.Query("path"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_PATH", "path must be a JSON array of segments")
		return
	}

	status, err := h.reportService.ResolveField(c.Request.Context(), tenantID, reportID, path, c.Query("row_name"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, status)
}

// FieldStatuses handles GET /api/v1/reports/:id/statuses
// @Summary Resolve all field statuses
// @Description Run every field of the report through validation and return the non-neutral statuses
// @Tags reports
// @Produce json
// @Param id path string true "Report ID (UUID)"
// @Success 200 {object} APIResponse{data=[]service.FieldResolution} "Resolved statuses"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Report not found"
// @Security BearerAuth
// @Router /reports/{id}/statuses [get]
func (h *ReportHandler) FieldStatuses(c *gin.Context) {
	tenantID, _, reportID, ok := reportAndID(c)
	if !ok {
		return
	}

	statuses, err := h.reportService.FieldStatuses(c.Request.Context(), tenantID, reportID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, statuses)
}

// ToggleManualValidation handles POST /api/v1/reports/:id/manual-validations
// @Summary Toggle a manual validation
// @Description Flip the reviewer sign-off on a field path and return the field's new status
// @Tags reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID (UUID)"
// @Param request body fieldPathRequest true "Field path to toggle"
// @Success 200 {object} APIResponse{data=ManualValidationResult} "Override state and resolved status"
// @Failure 400 {object} APIResponse "Invalid path"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Report not found"
// @Security BearerAuth
// @Router /reports/{id}/manual-validations [post]
func (h *ReportHandler) ToggleManualValidation(c *gin.Context) {
	tenantID, userID, reportID, ok := reportAndID(c)
	if !ok {
		return
	}

	var req fieldPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	active, status, err := h.reportService.ToggleManualValidation(c.Request.Context(), &service.ToggleValidationInput{
		TenantID: tenantID,
		ReportID: reportID,
		UserID:   userID,
		Path:     report.FieldPath(req.Path),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"active": active,
		"status": status,
	})
}

// RequirementFindings handles GET /api/v1/reports/:id/findings
// @Summary List requirement findings
// @Description List the report's requirement checklist rows, optionally recomputing state-law checks first
// @Tags reports
// @Produce json
// @Param id path string true "Report ID (UUID)"
// @Param refresh query bool false "Recompute state requirement checks before listing" default(false)
// @Success 200 {object} APIResponse{data=[]domain.RequirementFinding} "Requirement findings"
// @Failure 400 {object} APIResponse "Report not extracted"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Report not found"
// @Security BearerAuth
// @Router /reports/{id}/findings [get]
func (h *ReportHandler) RequirementFindings(c *gin.Context) {
	tenantID, _, reportID, ok := reportAndID(c)
	if !ok {
		return
	}

	refresh := c.DefaultQuery("refresh", "false") == "true"
	findings, err := h.reportService.RequirementFindings(c.Request.Context(), tenantID, reportID, refresh)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, findings)
}

// ingestFindingsRequest is the body for storing one checklist's findings.
type ingestFindingsRequest struct {
	CheckType domain.RequirementCheck `json:"check_type" binding:"required"`
	Findings  []ingestedFinding       `json:"findings" binding:"required,dive"`
}

type ingestedFinding struct {
	Name   string `json:"name" binding:"required"`
	Status string `json:"status" binding:"required"`
	Detail string `json:"detail"`
}

// IngestFindings handles POST /api/v1/reports/:id/findings
// @Summary Store requirement findings
// @Description Replace one checklist's stored findings with rows posted by the external review pipeline
// @Tags reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID (UUID)"
// @Param request body ingestFindingsRequest true "Check type and findings"
// @Success 200 {object} APIResponse{data=[]domain.RequirementFinding} "Stored findings"
// @Failure 400 {object} APIResponse "Invalid check type or body"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Report not found"
// @Security BearerAuth
// @Router /reports/{id}/findings [post]
func (h *ReportHandler) IngestFindings(c *gin.Context) {
	tenantID, _, reportID, ok := reportAndID(c)
	if !ok {
		return
	}

	var req ingestFindingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if !domain.ValidRequirementChecks[req.CheckType] {
		RespondError(c, http.StatusBadRequest, "INVALID_CHECK_TYPE", "check_type must be one of state, client, fha, adu, escalation")
		return
	}

	findings := make([]service.IngestedFinding, 0, len(req.Findings))
	for _, f := range req.Findings {
		findings = append(findings, service.IngestedFinding{Name: f.Name, Status: f.Status, Detail: f.Detail})
	}

	stored, err := h.reportService.IngestFindings(c.Request.Context(), &service.IngestFindingsInput{
		TenantID:  tenantID,
		ReportID:  reportID,
		CheckType: req.CheckType,
		Findings:  findings,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stored)
}

// GetErrorReport handles GET /api/v1/reports/:id/errors
// @Summary Aggregate error report
// @Description Collect every validation error, missing field, requirement finding, and address inconsistency
// @Tags reports
// @Produce json
// @Param id path string true "Report ID (UUID)"
// @Success 200 {object} APIResponse{data=service.ErrorReport} "Aggregate error report"
// @Failure 400 {object} APIResponse "Report not extracted"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Report not found"
// @Security BearerAuth
// @Router /reports/{id}/errors [get]
func (h *ReportHandler) GetErrorReport(c *gin.Context) {
	tenantID, _, reportID, ok := reportAndID(c)
	if !ok {
		return
	}

	errReport, err := h.reportService.GetErrorReport(c.Request.Context(), tenantID, reportID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, errReport)
}

// ExportErrorLog handles POST /api/v1/reports/:id/error-log
// @Summary Export the error log workbook
// @Description Build the XLSX error log, store it, email the presigned link, and return it
// @Tags reports
// @Produce json
// @Param id path string true "Report ID (UUID)"
// @Success 200 {object} APIResponse{data=service.ErrorLogExport} "Download URL for the workbook"
// @Failure 400 {object} APIResponse "Report not extracted"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Report not found"
// @Security BearerAuth
// @Router /reports/{id}/error-log [post]
func (h *ReportHandler) ExportErrorLog(c *gin.Context) {
	tenantID, userID, reportID, ok := reportAndID(c)
	if !ok {
		return
	}

	result, err := h.reportService.ExportErrorLog(c.Request.Context(), tenantID, reportID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// UpdateReview handles PATCH /api/v1/reports/:id/review
// @Summary Update review status
// @Description Set the report's review status (approved, escalated, rejected, in_progress) with optional notes
// @Tags reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID (UUID)"
// @Param request body updateReviewRequest true "Review status and notes"
// @Success 200 {object} APIResponse{data=domain.AppraisalReport} "Updated report"
// @Failure 400 {object} APIResponse "Invalid status or report not extracted"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Report not found"
// @Security BearerAuth
// @Router /reports/{id}/review [patch]
func (h *ReportHandler) UpdateReview(c *gin.Context) {
	tenantID, userID, reportID, ok := reportAndID(c)
	if !ok {
		return
	}

	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if !validReviewStatuses[req.Status] {
		RespondError(c, http.StatusBadRequest, "INVALID_STATUS", "status must be one of in_progress, approved, escalated, rejected")
		return
	}

	rep, err := h.reportService.UpdateReview(c.Request.Context(), &service.UpdateReviewInput{
		TenantID:   tenantID,
		ReportID:   reportID,
		ReviewerID: userID,
		Status:     req.Status,
		Notes:      req.Notes,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rep)
}

// Delete handles DELETE /api/v1/reports/:id
// @Summary Delete a report
// @Description Delete a report and its stored file (admin only)
// @Tags reports
// @Produce json
// @Param id path string true "Report ID (UUID)"
// @Success 200 {object} APIResponse{data=MessageResponse} "Report deleted"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 403 {object} APIResponse "Forbidden - admin only"
// @Failure 404 {object} APIResponse "Report not found"
// @Security BearerAuth
// @Router /reports/{id} [delete]
func (h *ReportHandler) Delete(c *gin.Context) {
	tenantID, _, reportID, ok := reportAndID(c)
	if !ok {
		return
	}

	if err := h.reportService.Delete(c.Request.Context(), tenantID, reportID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "report deleted"})
}
