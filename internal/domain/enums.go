package domain

// DocumentType identifies which specialized extraction record backs a document.
// The set is closed; the reconciler registry is keyed on it.
type DocumentType string

const (
	DocumentTypeInvoice  DocumentType = "invoice"
	DocumentTypeReceipt  DocumentType = "receipt"
	DocumentTypeResume   DocumentType = "resume"
	DocumentTypeContract DocumentType = "contract"
)

// ValidDocumentTypes enumerates the accepted document types.
var ValidDocumentTypes = map[DocumentType]bool{
	DocumentTypeInvoice:  true,
	DocumentTypeReceipt:  true,
	DocumentTypeResume:   true,
	DocumentTypeContract: true,
}

// ProcessingStatus represents the document processing lifecycle.
type ProcessingStatus string

const (
	ProcessingStatusPending     ProcessingStatus = "pending"
	ProcessingStatusProcessing  ProcessingStatus = "processing"
	ProcessingStatusCompleted   ProcessingStatus = "completed"
	ProcessingStatusNeedsReview ProcessingStatus = "needs_review"
	ProcessingStatusFailed      ProcessingStatus = "failed"
)

// ValidationStatus is the extraction worker's verdict on a processed payload.
type ValidationStatus string

const (
	ValidationStatusValid       ValidationStatus = "valid"
	ValidationStatusNeedsReview ValidationStatus = "needs_review"
	ValidationStatusInvalid     ValidationStatus = "invalid"
)

// JobStatus represents the lifecycle of a job posting.
type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

// ValidJobStatuses enumerates the accepted posting statuses.
var ValidJobStatuses = map[JobStatus]bool{
	JobStatusOpen:   true,
	JobStatusClosed: true,
}

// Recommendation is the hiring recommendation derived from a match score.
type Recommendation string

const (
	RecommendationStrongYes Recommendation = "strong_yes"
	RecommendationYes       Recommendation = "yes"
	RecommendationMaybe     Recommendation = "maybe"
	RecommendationNo        Recommendation = "no"
	RecommendationStrongNo  Recommendation = "strong_no"
)

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeDOCX FileType = "docx"
)

// ContentTypeDOCX is the OOXML word-processing MIME type. Content sniffers
// report DOCX files as application/zip, so uploads normalize to this value.
const ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
	ContentTypeDOCX:   FileTypeDOCX,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
	"docx": FileTypeDOCX,
}
