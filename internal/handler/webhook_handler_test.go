package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docuflow/internal/config"
	"docuflow/internal/domain"
	"docuflow/internal/handler"
	"docuflow/internal/middleware"
	"docuflow/internal/reconcile"
	"docuflow/internal/service"
	"docuflow/internal/webhook"
	"docuflow/mocks"
)

const testSecret = "whsec_test"

type webhookFixture struct {
	router    *gin.Engine
	verifier  *webhook.Verifier
	docs      *mocks.MockDocumentRepo
	invoices  *mocks.MockInvoiceRepo
	receipts  *mocks.MockReceiptRepo
	resumes   *mocks.MockResumeRepo
	contracts *mocks.MockContractRepo
}

func newWebhookFixture(t *testing.T) *webhookFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	f := &webhookFixture{
		docs:      new(mocks.MockDocumentRepo),
		invoices:  new(mocks.MockInvoiceRepo),
		receipts:  new(mocks.MockReceiptRepo),
		resumes:   new(mocks.MockResumeRepo),
		contracts: new(mocks.MockContractRepo),
	}
	f.verifier = webhook.NewVerifier(testSecret, 5*time.Minute, nil)

	storage := new(mocks.MockObjectStorage)
	s3cfg := config.S3Config{Bucket: "test", MaxFileSizeMB: 50}
	docSvc := service.NewDocumentService(f.docs, f.invoices, f.receipts, f.resumes, f.contracts, storage, &s3cfg, log)

	registry := reconcile.NewRegistry(
		reconcile.NewInvoiceReconciler(f.invoices, f.docs, log),
		reconcile.NewReceiptReconciler(f.receipts, f.docs, log),
		reconcile.NewResumeReconciler(f.resumes, f.docs, log),
		reconcile.NewContractReconciler(f.contracts, f.docs, log),
	)
	h := handler.NewWebhookHandler(docSvc, registry, log)

	r := gin.New()
	hooks := r.Group("/api/webhooks")
	hooks.Use(middleware.WebhookVerify(f.verifier, log))
	hooks.POST("/document-uploaded", h.DocumentUploaded)
	hooks.POST("/invoice-processed", h.InvoiceProcessed)
	hooks.POST("/resume-processed", h.ResumeProcessed)
	f.router = r
	return f
}

// deliver signs and posts a webhook body, returning the recorder.
func (f *webhookFixture) deliver(path string, body []byte, mutate func(r *http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(webhook.SignatureHeader, f.verifier.Sign(body))
	req.Header.Set(webhook.TimestampHeader, fmt.Sprintf("%d", time.Now().UnixMilli()))
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestWebhook_TamperedBodyRejectedWithoutMutation(t *testing.T) {
	f := newWebhookFixture(t)
	docID := uuid.New()
	body := []byte(fmt.Sprintf(`{"document_id":%q,"validation":{"status":"valid"}}`, docID))

	// Deliver a body that differs by one byte from the one the signature
	// was computed over.
	tampered := bytes.Replace(body, []byte("valid"), []byte("VALID"), 1)
	w := f.deliver("/api/webhooks/invoice-processed", tampered, func(r *http.Request) {
		r.Header.Set(webhook.SignatureHeader, f.verifier.Sign(body))
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_SIGNATURE")
	f.invoices.AssertNotCalled(t, "GetByDocumentID", mock.Anything, mock.Anything)
	f.docs.AssertNotCalled(t, "UpdateProcessingStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhook_MissingHeaders(t *testing.T) {
	f := newWebhookFixture(t)
	body := []byte(`{"document_id":"x"}`)

	w := f.deliver("/api/webhooks/invoice-processed", body, func(r *http.Request) {
		r.Header.Del(webhook.SignatureHeader)
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_SIGNATURE")

	w = f.deliver("/api/webhooks/invoice-processed", body, func(r *http.Request) {
		r.Header.Del(webhook.TimestampHeader)
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_TIMESTAMP")
}

func TestWebhook_StaleTimestampRejected(t *testing.T) {
	f := newWebhookFixture(t)
	body := []byte(`{"document_id":"x"}`)

	w := f.deliver("/api/webhooks/invoice-processed", body, func(r *http.Request) {
		stale := time.Now().Add(-6 * time.Minute).UnixMilli()
		r.Header.Set(webhook.TimestampHeader, fmt.Sprintf("%d", stale))
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TIMESTAMP")
}

func TestWebhook_UploadedAckIsIdempotent(t *testing.T) {
	f := newWebhookFixture(t)
	docID := uuid.New()
	body := []byte(fmt.Sprintf(`{"document_id":%q,"document_type":"invoice"}`, docID))

	pending := &domain.Document{ID: docID, DocumentType: domain.DocumentTypeInvoice, ProcessingStatus: domain.ProcessingStatusPending}
	processing := &domain.Document{ID: docID, DocumentType: domain.DocumentTypeInvoice, ProcessingStatus: domain.ProcessingStatusProcessing}

	f.docs.On("GetByID", mock.Anything, docID).Return(pending, nil).Once()
	f.docs.On("GetByID", mock.Anything, docID).Return(processing, nil)
	f.docs.On("UpdateProcessingStatus", mock.Anything, docID, domain.ProcessingStatusProcessing, (*time.Time)(nil)).Return(nil)

	// First delivery: pending -> processing.
	w := f.deliver("/api/webhooks/document-uploaded", body, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"processing"`)

	// Re-delivery: still processing, still 200.
	w = f.deliver("/api/webhooks/document-uploaded", body, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"processing"`)
}

func TestWebhook_InvoiceProcessedEndToEnd(t *testing.T) {
	f := newWebhookFixture(t)
	docID := uuid.New()
	inv := &domain.Invoice{ID: uuid.New(), DocumentID: docID, Currency: "USD"}
	doc := &domain.Document{ID: docID, DocumentType: domain.DocumentTypeInvoice, ProcessingStatus: domain.ProcessingStatusProcessing}

	f.invoices.On("GetByDocumentID", mock.Anything, docID).Return(inv, nil)
	f.invoices.On("Update", mock.Anything, inv).Return(nil)
	f.docs.On("GetByID", mock.Anything, docID).Return(doc, nil)
	f.docs.On("UpdateProcessingStatus", mock.Anything, docID, domain.ProcessingStatusCompleted, mock.Anything).Return(nil)

	body, _ := json.Marshal(map[string]interface{}{
		"document_id": docID,
		"processed_data": map[string]interface{}{
			"invoice_number": "INV-042",
			"vendor_name":    "Globex",
			"total_amount":   199.99,
		},
		"validation": map[string]interface{}{"status": "valid", "confidence_score": 97},
	})

	w := f.deliver("/api/webhooks/invoice-processed", body, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "INV-042", *inv.InvoiceNumber)
	assert.Equal(t, "Globex", *inv.VendorName)
	assert.Equal(t, 199.99, *inv.TotalAmount)
	assert.Equal(t, 97, inv.ConfidenceScore)
	assert.Contains(t, w.Body.String(), `"completed"`)
}

func TestWebhook_MissingSpecializedRecordIs404(t *testing.T) {
	f := newWebhookFixture(t)
	docID := uuid.New()
	f.invoices.On("GetByDocumentID", mock.Anything, docID).Return(nil, domain.ErrInvoiceNotFound)

	body := []byte(fmt.Sprintf(`{"document_id":%q,"validation":{"status":"valid"}}`, docID))
	w := f.deliver("/api/webhooks/invoice-processed", body, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "INVOICE_NOT_FOUND")
	f.docs.AssertNotCalled(t, "UpdateProcessingStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhook_MalformedJSONAfterValidSignature(t *testing.T) {
	f := newWebhookFixture(t)
	body := []byte(`{not json at all`)

	// The signature covers the malformed body exactly, so verification
	// passes and the parse failure is reported as INVALID_PAYLOAD.
	w := f.deliver("/api/webhooks/resume-processed", body, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_PAYLOAD")
	f.resumes.AssertNotCalled(t, "GetByDocumentID", mock.Anything, mock.Anything)
}
