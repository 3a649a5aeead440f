package service_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docuflow/internal/config"
	"docuflow/internal/domain"
	"docuflow/internal/port"
	"docuflow/internal/service"
	"docuflow/mocks"
)

func testS3Config() config.S3Config {
	return config.S3Config{
		Region:        "us-east-1",
		Bucket:        "test-bucket",
		MaxFileSizeMB: 50,
		PresignExpiry: 3600,
	}
}

type docServiceMocks struct {
	docs      *mocks.MockDocumentRepo
	invoices  *mocks.MockInvoiceRepo
	receipts  *mocks.MockReceiptRepo
	resumes   *mocks.MockResumeRepo
	contracts *mocks.MockContractRepo
	storage   *mocks.MockObjectStorage
}

func newDocService() (service.DocumentService, *docServiceMocks) {
	m := &docServiceMocks{
		docs:      new(mocks.MockDocumentRepo),
		invoices:  new(mocks.MockInvoiceRepo),
		receipts:  new(mocks.MockReceiptRepo),
		resumes:   new(mocks.MockResumeRepo),
		contracts: new(mocks.MockContractRepo),
		storage:   new(mocks.MockObjectStorage),
	}
	cfg := testS3Config()
	svc := service.NewDocumentService(m.docs, m.invoices, m.receipts, m.resumes, m.contracts, m.storage, &cfg, zap.NewNop())
	return svc, m
}

// createMultipartFile creates a fake multipart file header and content for testing.
func createMultipartFile(filename string, content []byte, contentType string) (multipart.File, *multipart.FileHeader) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)

	part, _ := writer.CreatePart(h)
	_, _ = part.Write(content)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, _ := reader.ReadForm(int64(len(content) + 1024))
	file, _ := form.File["file"][0].Open()
	return file, form.File["file"][0]
}

// pdfContent returns minimal valid PDF bytes.
func pdfContent() []byte {
	return []byte("%PDF-1.4 test content that is at least a few bytes long for detection purposes")
}

// docxContent returns bytes opening with the zip local-file-header magic,
// which is all a content sniffer sees of a DOCX file.
func docxContent() []byte {
	return append([]byte("PK\x03\x04"), bytes.Repeat([]byte{0}, 60)...)
}

func TestDocumentUpload_RegistersDocumentAndEmptyInvoice(t *testing.T) {
	svc, m := newDocService()
	userID := uuid.New()

	file, header := createMultipartFile("inv.pdf", pdfContent(), "application/pdf")
	defer file.Close()

	m.docs.On("Create", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(nil)
	m.invoices.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)
	m.storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "https://test-bucket/x", ETag: "abc"}, nil)

	doc, err := svc.Upload(context.Background(), service.DocumentUploadInput{
		UserID:       userID,
		DocumentType: domain.DocumentTypeInvoice,
		File:         file,
		Header:       header,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ProcessingStatusPending, doc.ProcessingStatus)
	assert.Equal(t, domain.DocumentTypeInvoice, doc.DocumentType)
	assert.Equal(t, "application/pdf", doc.MimeType)
	m.invoices.AssertCalled(t, "Create", mock.Anything, mock.AnythingOfType("*domain.Invoice"))
	m.resumes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDocumentUpload_AcceptsDocxZipContainer(t *testing.T) {
	svc, m := newDocService()

	file, header := createMultipartFile("resume.docx", docxContent(), "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	defer file.Close()

	m.docs.On("Create", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(nil)
	m.resumes.On("Create", mock.Anything, mock.AnythingOfType("*domain.Resume")).Return(nil)
	m.storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "https://test-bucket/x", ETag: "abc"}, nil)

	doc, err := svc.Upload(context.Background(), service.DocumentUploadInput{
		UserID:       uuid.New(),
		DocumentType: domain.DocumentTypeResume,
		File:         file,
		Header:       header,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ContentTypeDOCX, doc.MimeType)
}

func TestDocumentUpload_RejectsZipWithoutDocxExtension(t *testing.T) {
	svc, m := newDocService()

	// Same zip magic bytes, but a plain .zip is not an allowed upload.
	file, header := createMultipartFile("archive.zip", docxContent(), "application/zip")
	defer file.Close()

	_, err := svc.Upload(context.Background(), service.DocumentUploadInput{
		UserID:       uuid.New(),
		DocumentType: domain.DocumentTypeResume,
		File:         file,
		Header:       header,
	})

	require.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	m.docs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDocumentUpload_RejectsUnknownType(t *testing.T) {
	svc, m := newDocService()

	file, header := createMultipartFile("x.pdf", pdfContent(), "application/pdf")
	defer file.Close()

	_, err := svc.Upload(context.Background(), service.DocumentUploadInput{
		UserID:       uuid.New(),
		DocumentType: domain.DocumentType("spreadsheet"),
		File:         file,
		Header:       header,
	})

	require.ErrorIs(t, err, domain.ErrInvalidDocumentType)
	m.docs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDocumentUpload_RejectsBadExtension(t *testing.T) {
	svc, m := newDocService()

	file, header := createMultipartFile("malware.exe", pdfContent(), "application/pdf")
	defer file.Close()

	_, err := svc.Upload(context.Background(), service.DocumentUploadInput{
		UserID:       uuid.New(),
		DocumentType: domain.DocumentTypeInvoice,
		File:         file,
		Header:       header,
	})

	require.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	m.docs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDocumentUpload_StorageFailureMarksFailed(t *testing.T) {
	svc, m := newDocService()

	file, header := createMultipartFile("resume.pdf", pdfContent(), "application/pdf")
	defer file.Close()

	m.docs.On("Create", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(nil)
	m.resumes.On("Create", mock.Anything, mock.AnythingOfType("*domain.Resume")).Return(nil)
	m.storage.On("Upload", mock.Anything, mock.Anything).Return(nil, assert.AnError)
	m.docs.On("UpdateProcessingStatus", mock.Anything, mock.AnythingOfType("uuid.UUID"), domain.ProcessingStatusFailed, mock.Anything).Return(nil)

	_, err := svc.Upload(context.Background(), service.DocumentUploadInput{
		UserID:       uuid.New(),
		DocumentType: domain.DocumentTypeResume,
		File:         file,
		Header:       header,
	})

	require.ErrorIs(t, err, domain.ErrUploadFailed)
	m.docs.AssertCalled(t, "UpdateProcessingStatus", mock.Anything, mock.AnythingOfType("uuid.UUID"), domain.ProcessingStatusFailed, mock.Anything)
}

func TestAcknowledgeUpload_PendingMovesToProcessing(t *testing.T) {
	svc, m := newDocService()
	docID := uuid.New()

	m.docs.On("GetByID", mock.Anything, docID).Return(&domain.Document{
		ID:               docID,
		ProcessingStatus: domain.ProcessingStatusPending,
	}, nil)
	m.docs.On("UpdateProcessingStatus", mock.Anything, docID, domain.ProcessingStatusProcessing, mock.Anything).Return(nil)

	doc, err := svc.AcknowledgeUpload(context.Background(), docID)

	require.NoError(t, err)
	assert.Equal(t, domain.ProcessingStatusProcessing, doc.ProcessingStatus)
}

func TestAcknowledgeUpload_SettledDocumentIsNoOp(t *testing.T) {
	svc, m := newDocService()
	docID := uuid.New()

	m.docs.On("GetByID", mock.Anything, docID).Return(&domain.Document{
		ID:               docID,
		ProcessingStatus: domain.ProcessingStatusCompleted,
	}, nil)

	doc, err := svc.AcknowledgeUpload(context.Background(), docID)

	require.NoError(t, err)
	assert.Equal(t, domain.ProcessingStatusCompleted, doc.ProcessingStatus)
	m.docs.AssertNotCalled(t, "UpdateProcessingStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentDelete_RemovesStorageObjectFirst(t *testing.T) {
	svc, m := newDocService()
	userID := uuid.New()
	docID := uuid.New()

	m.docs.On("GetByIDForUser", mock.Anything, userID, docID).Return(&domain.Document{
		ID:          docID,
		UserID:      userID,
		StoragePath: "users/x/documents/y/inv.pdf",
	}, nil)
	m.storage.On("Delete", mock.Anything, "test-bucket", "users/x/documents/y/inv.pdf").Return(nil)
	m.docs.On("Delete", mock.Anything, userID, docID).Return(nil)

	err := svc.Delete(context.Background(), userID, docID)

	require.NoError(t, err)
	m.storage.AssertExpectations(t)
	m.docs.AssertExpectations(t)
}
