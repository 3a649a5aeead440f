package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"docuflow/internal/domain"
	"docuflow/internal/reconcile"
	"docuflow/internal/service"
)

// webhookEnvelope is the JSON body shared by all worker callbacks. Unknown
// fields are ignored so the worker can evolve its envelope independently.
type webhookEnvelope struct {
	DocumentID    string               `json:"document_id"`
	DocumentType  string               `json:"document_type"`
	ProcessedData json.RawMessage      `json:"processed_data"`
	ExtractedText *string              `json:"extracted_text"`
	Validation    reconcile.Validation `json:"validation"`
	Timestamp     string               `json:"timestamp"`
}

// WebhookHandler handles authenticated callbacks from the extraction worker.
// Signature verification has already happened in middleware by the time any
// of these methods run.
type WebhookHandler struct {
	documents service.DocumentService
	registry  *reconcile.Registry
	log       *zap.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(documents service.DocumentService, registry *reconcile.Registry, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{documents: documents, registry: registry, log: log}
}

// DocumentUploaded handles POST /api/webhooks/document-uploaded.
// The worker acknowledges it has picked up the file; the document moves
// from pending to processing. Re-delivery is a safe no-op.
func (h *WebhookHandler) DocumentUploaded(c *gin.Context) {
	env, docID, ok := h.bind(c)
	if !ok {
		return
	}

	doc, err := h.documents.AcknowledgeUpload(c.Request.Context(), docID)
	if err != nil {
		h.respondWebhookError(c, docID, err)
		return
	}

	h.log.Info("upload acknowledged",
		zap.String("document_id", docID.String()),
		zap.String("document_type", env.DocumentType),
		zap.String("processing_status", string(doc.ProcessingStatus)))

	RespondOK(c, gin.H{
		"document_id":       doc.ID,
		"processing_status": doc.ProcessingStatus,
	})
}

// InvoiceProcessed handles POST /api/webhooks/invoice-processed.
func (h *WebhookHandler) InvoiceProcessed(c *gin.Context) {
	h.reconcileCallback(c, domain.DocumentTypeInvoice)
}

// ReceiptProcessed handles POST /api/webhooks/receipt-processed.
func (h *WebhookHandler) ReceiptProcessed(c *gin.Context) {
	h.reconcileCallback(c, domain.DocumentTypeReceipt)
}

// ResumeProcessed handles POST /api/webhooks/resume-processed.
func (h *WebhookHandler) ResumeProcessed(c *gin.Context) {
	h.reconcileCallback(c, domain.DocumentTypeResume)
}

// ContractAnalyzed handles POST /api/webhooks/contract-analyzed.
func (h *WebhookHandler) ContractAnalyzed(c *gin.Context) {
	h.reconcileCallback(c, domain.DocumentTypeContract)
}

func (h *WebhookHandler) reconcileCallback(c *gin.Context, docType domain.DocumentType) {
	env, docID, ok := h.bind(c)
	if !ok {
		return
	}

	rec, found := h.registry.For(docType)
	if !found {
		RespondError(c, http.StatusInternalServerError, "WEBHOOK_ERROR", "no reconciler for document type")
		return
	}

	result, err := rec.Reconcile(c.Request.Context(), &reconcile.Input{
		DocumentID:    docID,
		ProcessedData: env.ProcessedData,
		Validation:    env.Validation,
		ExtractedText: env.ExtractedText,
		Now:           time.Now().UTC(),
	})
	if err != nil {
		h.respondWebhookError(c, docID, err)
		return
	}

	RespondOK(c, result)
}

// bind parses the shared envelope. A body that fails to parse, or that
// carries an unparseable document id, is INVALID_PAYLOAD; verification has
// already passed, so this is a worker bug, not an auth failure.
func (h *WebhookHandler) bind(c *gin.Context) (*webhookEnvelope, uuid.UUID, bool) {
	var env webhookEnvelope
	if err := c.ShouldBindJSON(&env); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_PAYLOAD", "request body is not valid JSON")
		return nil, uuid.Nil, false
	}
	docID, err := uuid.Parse(env.DocumentID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_PAYLOAD", "document_id is not a valid id")
		return nil, uuid.Nil, false
	}
	return &env, docID, true
}

func (h *WebhookHandler) respondWebhookError(c *gin.Context, docID uuid.UUID, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		code = "WEBHOOK_ERROR"
		msg = "webhook processing failed"
		h.log.Error("webhook processing failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("document_id", docID.String()),
			zap.Error(err),
			zap.Stack("stack"))
	} else if status == http.StatusNotFound || errors.Is(err, domain.ErrInvalidPayload) || errors.Is(err, domain.ErrInvalidDate) {
		h.log.Warn("webhook delivery rejected",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("document_id", docID.String()),
			zap.String("code", code))
	}
	RespondError(c, status, code, msg)
}
