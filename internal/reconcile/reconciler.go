// Package reconcile merges sparse extraction payloads from the external
// worker into type-specific records and drives the document status state
// machine. One reconciler exists per document type; the set is closed and
// fixed at construction time.
package reconcile

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docuflow/internal/domain"
	"docuflow/internal/port"
)

// Validation is the worker's verdict attached to every processed callback.
type Validation struct {
	Status          string          `json:"status"`
	ConfidenceScore int             `json:"confidence_score"`
	Errors          json.RawMessage `json:"errors"`
}

// Input is one processed-data delivery for a single document.
type Input struct {
	DocumentID    uuid.UUID
	ProcessedData json.RawMessage
	Validation    Validation
	ExtractedText *string
	Now           time.Time
}

// Result is returned to the caller for acknowledgement.
type Result struct {
	RecordID        uuid.UUID               `json:"record_id"`
	ConfidenceScore int                     `json:"confidence_score"`
	Status          string                  `json:"status"`
	DocumentStatus  domain.ProcessingStatus `json:"document_status"`
}

// Reconciler merges one delivery into the specialized record for its
// document type and commits the resulting document status transition.
type Reconciler interface {
	DocumentType() domain.DocumentType
	Reconcile(ctx context.Context, in *Input) (*Result, error)
}

// Registry holds the closed set of per-type reconcilers. The constructor
// takes all four explicitly so that adding a document type is a
// compile-time-checked extension, not runtime branching.
type Registry struct {
	byType map[domain.DocumentType]Reconciler
}

// NewRegistry builds the registry from the four type reconcilers.
func NewRegistry(invoice, receipt, resume, contract Reconciler) *Registry {
	return &Registry{byType: map[domain.DocumentType]Reconciler{
		invoice.DocumentType():  invoice,
		receipt.DocumentType():  receipt,
		resume.DocumentType():   resume,
		contract.DocumentType(): contract,
	}}
}

// For returns the reconciler for a document type.
func (r *Registry) For(t domain.DocumentType) (Reconciler, bool) {
	rec, ok := r.byType[t]
	return rec, ok
}

// documentCommitter finalizes the parent document after a specialized record
// has been patched. It is shared by all four reconcilers.
type documentCommitter struct {
	docs port.DocumentRepository
	log  *zap.Logger
}

// commit derives the next processing status from the validation verdict and
// applies it if the state machine allows the move. A delivery whose derived
// status cannot be reached from the current one (a duplicate on a settled
// document, or an out-of-order delivery) leaves the document status
// untouched; the record patch itself has already landed and is idempotent.
// Extracted text riding on the delivery lands on the document either way.
func (c *documentCommitter) commit(ctx context.Context, in *Input) (domain.ProcessingStatus, error) {
	next := domain.StatusForValidation(domain.ValidationStatus(in.Validation.Status))

	doc, err := c.docs.GetByID(ctx, in.DocumentID)
	if err != nil {
		return "", err
	}

	if in.ExtractedText != nil {
		if err := c.docs.UpdateExtractedText(ctx, in.DocumentID, *in.ExtractedText); err != nil {
			return "", err
		}
	}

	if !domain.CanTransition(doc.ProcessingStatus, next) {
		c.log.Warn("skipping document status transition",
			zap.String("document_id", in.DocumentID.String()),
			zap.String("from", string(doc.ProcessingStatus)),
			zap.String("to", string(next)))
		return doc.ProcessingStatus, nil
	}

	processedAt := in.Now
	if err := c.docs.UpdateProcessingStatus(ctx, in.DocumentID, next, &processedAt); err != nil {
		return "", err
	}
	return next, nil
}
