package port

import (
	"context"

	"github.com/google/uuid"

	"docuflow/internal/domain"
)

// InvoiceRepository defines the contract for invoice record persistence.
// Update writes the full record; sparse-patch semantics live in the
// reconciler, which loads, patches, and writes back.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByDocumentID(ctx context.Context, docID uuid.UUID) (*domain.Invoice, error)
	Update(ctx context.Context, inv *domain.Invoice) error
}

// ReceiptRepository defines the contract for receipt record persistence.
type ReceiptRepository interface {
	Create(ctx context.Context, rec *domain.Receipt) error
	GetByDocumentID(ctx context.Context, docID uuid.UUID) (*domain.Receipt, error)
	Update(ctx context.Context, rec *domain.Receipt) error
}

// ResumeRepository defines the contract for résumé record persistence.
type ResumeRepository interface {
	Create(ctx context.Context, res *domain.Resume) error
	GetByID(ctx context.Context, resumeID uuid.UUID) (*domain.Resume, error)
	GetByDocumentID(ctx context.Context, docID uuid.UUID) (*domain.Resume, error)
	List(ctx context.Context, offset, limit int) ([]domain.Resume, error)
	Update(ctx context.Context, res *domain.Resume) error
	// UpdateMatch overwrites the résumé's match state wholesale.
	UpdateMatch(ctx context.Context, res *domain.Resume) error
	// ClearJobReferences nulls job_id on every résumé referencing the given
	// posting. Match history (score, breakdown) is left untouched.
	ClearJobReferences(ctx context.Context, jobID uuid.UUID) error
}

// ContractRepository defines the contract for contract record persistence.
type ContractRepository interface {
	Create(ctx context.Context, con *domain.Contract) error
	GetByDocumentID(ctx context.Context, docID uuid.UUID) (*domain.Contract, error)
	Update(ctx context.Context, con *domain.Contract) error
}
