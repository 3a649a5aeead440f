package reconcile

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"docuflow/internal/domain"
	"docuflow/internal/port"
)

// invoicePayload is the sparse patch shape for invoice-processed callbacks.
// Pointer fields distinguish "absent" from "set"; absent keys leave the
// stored value untouched.
type invoicePayload struct {
	InvoiceNumber *string         `json:"invoice_number"`
	VendorName    *string         `json:"vendor_name"`
	VendorAddress *string         `json:"vendor_address"`
	CustomerName  *string         `json:"customer_name"`
	TotalAmount   *float64        `json:"total_amount"`
	Subtotal      *float64        `json:"subtotal"`
	TaxAmount     *float64        `json:"tax_amount"`
	Currency      *string         `json:"currency"`
	IssueDate     *string         `json:"issue_date"`
	DueDate       *string         `json:"due_date"`
	PaymentTerms  *string         `json:"payment_terms"`
	Status        *string         `json:"status"`
	LineItems     json.RawMessage `json:"line_items"`
}

type invoiceReconciler struct {
	invoices  port.InvoiceRepository
	committer documentCommitter
	log       *zap.Logger
}

// NewInvoiceReconciler creates the reconciler for invoice documents.
func NewInvoiceReconciler(invoices port.InvoiceRepository, docs port.DocumentRepository, log *zap.Logger) Reconciler {
	return &invoiceReconciler{
		invoices:  invoices,
		committer: documentCommitter{docs: docs, log: log},
		log:       log,
	}
}

func (r *invoiceReconciler) DocumentType() domain.DocumentType {
	return domain.DocumentTypeInvoice
}

func (r *invoiceReconciler) Reconcile(ctx context.Context, in *Input) (*Result, error) {
	var p invoicePayload
	if err := decodePayload(in.ProcessedData, &p); err != nil {
		return nil, err
	}

	inv, err := r.invoices.GetByDocumentID(ctx, in.DocumentID)
	if err != nil {
		return nil, err
	}

	// Parse dates before touching the record so an invalid value fails the
	// whole delivery with nothing written.
	issueDate, err := parseDatePtr(p.IssueDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDatePtr(p.DueDate)
	if err != nil {
		return nil, err
	}

	if p.InvoiceNumber != nil {
		inv.InvoiceNumber = p.InvoiceNumber
	}
	if p.VendorName != nil {
		inv.VendorName = p.VendorName
	}
	if p.VendorAddress != nil {
		inv.VendorAddress = p.VendorAddress
	}
	if p.CustomerName != nil {
		inv.CustomerName = p.CustomerName
	}
	if p.TotalAmount != nil {
		inv.TotalAmount = p.TotalAmount
	}
	if p.Subtotal != nil {
		inv.Subtotal = p.Subtotal
	}
	if p.TaxAmount != nil {
		inv.Tax = p.TaxAmount
	}
	if p.Currency != nil {
		inv.Currency = *p.Currency
	}
	if issueDate != nil {
		inv.InvoiceDate = issueDate
	}
	if dueDate != nil {
		inv.DueDate = dueDate
	}
	if p.PaymentTerms != nil {
		inv.PaymentTerms = p.PaymentTerms
	}
	if p.Status != nil {
		vs := domain.ValidationStatus(*p.Status)
		switch vs {
		case domain.ValidationStatusValid, domain.ValidationStatusNeedsReview, domain.ValidationStatusInvalid:
			inv.ValidationStatus = &vs
		}
	}
	if present(p.LineItems) {
		inv.LineItems = p.LineItems
	}
	if present(in.Validation.Errors) {
		inv.ValidationErrors = in.Validation.Errors
	}
	inv.ConfidenceScore = clampScore(in.Validation.ConfidenceScore)

	if err := r.invoices.Update(ctx, inv); err != nil {
		return nil, err
	}

	docStatus, err := r.committer.commit(ctx, in)
	if err != nil {
		return nil, err
	}

	r.log.Info("invoice reconciled",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("document_id", in.DocumentID.String()),
		zap.Int("confidence_score", inv.ConfidenceScore),
		zap.String("document_status", string(docStatus)))

	return &Result{
		RecordID:        inv.ID,
		ConfidenceScore: inv.ConfidenceScore,
		Status:          in.Validation.Status,
		DocumentStatus:  docStatus,
	}, nil
}
