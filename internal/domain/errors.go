package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrDuplicateEmail      = errors.New("email already exists")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")

	ErrDocumentNotFound   = errors.New("document not found")
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrReceiptNotFound    = errors.New("receipt not found")
	ErrResumeNotFound     = errors.New("resume not found")
	ErrContractNotFound   = errors.New("contract not found")
	ErrJobPostingNotFound = errors.New("job posting not found")

	ErrInvalidDocumentType = errors.New("invalid document type")
	ErrInvalidJobStatus    = errors.New("invalid job status")
	ErrInvalidPayload      = errors.New("invalid webhook payload")
	ErrInvalidDate         = errors.New("invalid date value in payload")
)
