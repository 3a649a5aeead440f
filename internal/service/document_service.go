package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docuflow/internal/config"
	"docuflow/internal/domain"
	"docuflow/internal/port"
)

// DocumentUploadInput is the DTO for document upload requests.
type DocumentUploadInput struct {
	UserID       uuid.UUID
	DocumentType domain.DocumentType
	File         multipart.File
	Header       *multipart.FileHeader
}

// DocumentService defines the document registry contract. Upload registers
// the generic document together with its empty specialized record, so the
// reconciler always finds a record to patch.
type DocumentService interface {
	Upload(ctx context.Context, input DocumentUploadInput) (*domain.Document, error)
	AcknowledgeUpload(ctx context.Context, docID uuid.UUID) (*domain.Document, error)
	GetByID(ctx context.Context, userID, docID uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Document, int, error)
	GetDownloadURL(ctx context.Context, userID, docID uuid.UUID) (string, error)
	Delete(ctx context.Context, userID, docID uuid.UUID) error
}

type documentService struct {
	docRepo      port.DocumentRepository
	invoiceRepo  port.InvoiceRepository
	receiptRepo  port.ReceiptRepository
	resumeRepo   port.ResumeRepository
	contractRepo port.ContractRepository
	storage      port.ObjectStorage
	cfg          *config.S3Config
	log          *zap.Logger
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	docRepo port.DocumentRepository,
	invoiceRepo port.InvoiceRepository,
	receiptRepo port.ReceiptRepository,
	resumeRepo port.ResumeRepository,
	contractRepo port.ContractRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
	log *zap.Logger,
) DocumentService {
	return &documentService{
		docRepo:      docRepo,
		invoiceRepo:  invoiceRepo,
		receiptRepo:  receiptRepo,
		resumeRepo:   resumeRepo,
		contractRepo: contractRepo,
		storage:      storage,
		cfg:          cfg,
		log:          log,
	}
}

func (s *documentService) Upload(ctx context.Context, input DocumentUploadInput) (*domain.Document, error) {
	if !domain.ValidDocumentTypes[input.DocumentType] {
		return nil, domain.ErrInvalidDocumentType
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Magic-byte detection; the client-supplied content type is not trusted.
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detectedType := http.DetectContentType(buf[:n])
	// DOCX is an OOXML zip container; the sniffer only sees the zip magic.
	if detectedType == "application/zip" && ext == string(domain.FileTypeDOCX) {
		detectedType = domain.ContentTypeDOCX
	}
	if _, ok := domain.AllowedContentTypes[detectedType]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	docID := uuid.New()
	storagePath := fmt.Sprintf("users/%s/documents/%s/%s", input.UserID, docID, input.Header.Filename)

	doc := &domain.Document{
		ID:               docID,
		UserID:           input.UserID,
		DocumentType:     input.DocumentType,
		OriginalFilename: input.Header.Filename,
		StoragePath:      storagePath,
		MimeType:         detectedType,
		FileSize:         input.Header.Size,
		ProcessingStatus: domain.ProcessingStatusPending,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("creating document: %w", err)
	}
	if err := s.createSpecializedRecord(ctx, doc); err != nil {
		return nil, fmt.Errorf("creating %s record: %w", doc.DocumentType, err)
	}

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         storagePath,
		Body:        input.File,
		ContentType: detectedType,
		Size:        input.Header.Size,
	}); err != nil {
		s.log.Error("storage upload failed",
			zap.String("document_id", docID.String()),
			zap.Error(err))
		_ = s.docRepo.UpdateProcessingStatus(ctx, docID, domain.ProcessingStatusFailed, nil)
		return nil, domain.ErrUploadFailed
	}

	s.log.Info("document registered",
		zap.String("document_id", docID.String()),
		zap.String("document_type", string(doc.DocumentType)),
		zap.String("filename", doc.OriginalFilename),
		zap.Int64("size", doc.FileSize))

	return doc, nil
}

// createSpecializedRecord seeds the empty extraction record the reconciler
// will later patch. Exactly one exists per document.
func (s *documentService) createSpecializedRecord(ctx context.Context, doc *domain.Document) error {
	base := struct {
		ID         uuid.UUID
		UserID     uuid.UUID
		DocumentID uuid.UUID
	}{uuid.New(), doc.UserID, doc.ID}

	switch doc.DocumentType {
	case domain.DocumentTypeInvoice:
		return s.invoiceRepo.Create(ctx, &domain.Invoice{
			ID: base.ID, UserID: base.UserID, DocumentID: base.DocumentID, Currency: "USD",
		})
	case domain.DocumentTypeReceipt:
		return s.receiptRepo.Create(ctx, &domain.Receipt{
			ID: base.ID, UserID: base.UserID, DocumentID: base.DocumentID, Currency: "USD",
		})
	case domain.DocumentTypeResume:
		return s.resumeRepo.Create(ctx, &domain.Resume{
			ID: base.ID, UserID: base.UserID, DocumentID: base.DocumentID,
		})
	case domain.DocumentTypeContract:
		return s.contractRepo.Create(ctx, &domain.Contract{
			ID: base.ID, UserID: base.UserID, DocumentID: base.DocumentID, Currency: "USD",
		})
	default:
		return domain.ErrInvalidDocumentType
	}
}

// AcknowledgeUpload moves a pending document into processing. Re-asserting
// processing is accepted so workers can retry the acknowledgement; documents
// already in a terminal state are left unchanged.
func (s *documentService) AcknowledgeUpload(ctx context.Context, docID uuid.UUID) (*domain.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(doc.ProcessingStatus, domain.ProcessingStatusProcessing) {
		s.log.Warn("upload acknowledgement ignored for settled document",
			zap.String("document_id", docID.String()),
			zap.String("processing_status", string(doc.ProcessingStatus)))
		return doc, nil
	}

	if err := s.docRepo.UpdateProcessingStatus(ctx, docID, domain.ProcessingStatusProcessing, nil); err != nil {
		return nil, err
	}
	doc.ProcessingStatus = domain.ProcessingStatusProcessing
	return doc, nil
}

func (s *documentService) GetByID(ctx context.Context, userID, docID uuid.UUID) (*domain.Document, error) {
	return s.docRepo.GetByIDForUser(ctx, userID, docID)
}

func (s *documentService) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Document, int, error) {
	return s.docRepo.ListByUser(ctx, userID, offset, limit)
}

func (s *documentService) GetDownloadURL(ctx context.Context, userID, docID uuid.UUID) (string, error) {
	doc, err := s.docRepo.GetByIDForUser(ctx, userID, docID)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, s.cfg.Bucket, doc.StoragePath, s.cfg.PresignExpiry)
}

func (s *documentService) Delete(ctx context.Context, userID, docID uuid.UUID) error {
	doc, err := s.docRepo.GetByIDForUser(ctx, userID, docID)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, s.cfg.Bucket, doc.StoragePath); err != nil {
		s.log.Error("storage delete failed",
			zap.String("document_id", docID.String()),
			zap.Error(err))
		return fmt.Errorf("deleting from storage: %w", err)
	}

	// Specialized records cascade with the document row.
	return s.docRepo.Delete(ctx, userID, docID)
}
