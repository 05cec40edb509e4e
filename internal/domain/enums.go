package domain

// FileType represents the allowed source document types for upload.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeHTML FileType = "html"
	FileTypeXML  FileType = "xml"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF:  "application/pdf",
	FileTypeHTML: "text/html",
	FileTypeXML:  "application/xml",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"text/html":       FileTypeHTML,
	"application/xml": FileTypeXML,
	"text/xml":        FileTypeXML,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"html": FileTypeHTML,
	"htm":  FileTypeHTML,
	"xml":  FileTypeXML,
}

// UserRole defines the role hierarchy within a tenant.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleReviewer UserRole = "reviewer"
)

// ValidUserRoles enumerates the assignable roles.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:    true,
	RoleReviewer: true,
}

// ExtractionStatus tracks the external extraction of a report's fields.
type ExtractionStatus string

const (
	ExtractionPending    ExtractionStatus = "pending"
	ExtractionProcessing ExtractionStatus = "processing"
	ExtractionCompleted  ExtractionStatus = "completed"
	ExtractionFailed     ExtractionStatus = "failed"
)

// ReviewStatus tracks the human review of a report.
type ReviewStatus string

const (
	ReviewInProgress ReviewStatus = "in_progress"
	ReviewApproved   ReviewStatus = "approved"
	ReviewEscalated  ReviewStatus = "escalated"
	ReviewRejected   ReviewStatus = "rejected"
)

// RequirementCheck names the requirement checklists run per report.
type RequirementCheck string

const (
	CheckState      RequirementCheck = "state"
	CheckClient     RequirementCheck = "client"
	CheckFHA        RequirementCheck = "fha"
	CheckADU        RequirementCheck = "adu"
	CheckEscalation RequirementCheck = "escalation"
)

// ValidRequirementChecks is the set of accepted requirement check types.
var ValidRequirementChecks = map[RequirementCheck]bool{
	CheckState:      true,
	CheckClient:     true,
	CheckFHA:        true,
	CheckADU:        true,
	CheckEscalation: true,
}
