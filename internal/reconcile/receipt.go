package reconcile

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"docuflow/internal/domain"
	"docuflow/internal/port"
)

// receiptPayload is the sparse patch shape for receipt-processed callbacks.
type receiptPayload struct {
	MerchantName      *string         `json:"merchant_name"`
	TotalAmount       *float64        `json:"total_amount"`
	Subtotal          *float64        `json:"subtotal"`
	TaxAmount         *float64        `json:"tax_amount"`
	Tip               *float64        `json:"tip"`
	Currency          *string         `json:"currency"`
	PurchaseDate      *string         `json:"purchase_date"`
	Category          *string         `json:"category"`
	PaymentMethod     *string         `json:"payment_method"`
	IsBusinessExpense *bool           `json:"is_business_expense"`
	Items             json.RawMessage `json:"items"`
}

type receiptReconciler struct {
	receipts  port.ReceiptRepository
	committer documentCommitter
	log       *zap.Logger
}

// NewReceiptReconciler creates the reconciler for receipt documents.
func NewReceiptReconciler(receipts port.ReceiptRepository, docs port.DocumentRepository, log *zap.Logger) Reconciler {
	return &receiptReconciler{
		receipts:  receipts,
		committer: documentCommitter{docs: docs, log: log},
		log:       log,
	}
}

func (r *receiptReconciler) DocumentType() domain.DocumentType {
	return domain.DocumentTypeReceipt
}

func (r *receiptReconciler) Reconcile(ctx context.Context, in *Input) (*Result, error) {
	var p receiptPayload
	if err := decodePayload(in.ProcessedData, &p); err != nil {
		return nil, err
	}

	rec, err := r.receipts.GetByDocumentID(ctx, in.DocumentID)
	if err != nil {
		return nil, err
	}

	purchaseDate, err := parseDatePtr(p.PurchaseDate)
	if err != nil {
		return nil, err
	}

	if p.MerchantName != nil {
		rec.MerchantName = p.MerchantName
	}
	if p.TotalAmount != nil {
		rec.TotalAmount = p.TotalAmount
	}
	if p.Subtotal != nil {
		rec.Subtotal = p.Subtotal
	}
	if p.TaxAmount != nil {
		rec.Tax = p.TaxAmount
	}
	if p.Tip != nil {
		rec.Tip = p.Tip
	}
	if p.Currency != nil {
		rec.Currency = *p.Currency
	}
	if purchaseDate != nil {
		rec.PurchaseDate = purchaseDate
	}
	if p.Category != nil {
		rec.ExpenseCategory = p.Category
	}
	if p.PaymentMethod != nil {
		rec.PaymentMethod = p.PaymentMethod
	}
	if p.IsBusinessExpense != nil {
		rec.IsBusinessExpense = *p.IsBusinessExpense
	}
	if present(p.Items) {
		rec.Items = p.Items
	}
	if present(in.Validation.Errors) {
		rec.ValidationErrors = in.Validation.Errors
	}
	rec.ConfidenceScore = clampScore(in.Validation.ConfidenceScore)

	if err := r.receipts.Update(ctx, rec); err != nil {
		return nil, err
	}

	docStatus, err := r.committer.commit(ctx, in)
	if err != nil {
		return nil, err
	}

	r.log.Info("receipt reconciled",
		zap.String("receipt_id", rec.ID.String()),
		zap.String("document_id", in.DocumentID.String()),
		zap.Int("confidence_score", rec.ConfidenceScore),
		zap.String("document_status", string(docStatus)))

	return &Result{
		RecordID:        rec.ID,
		ConfidenceScore: rec.ConfidenceScore,
		Status:          in.Validation.Status,
		DocumentStatus:  docStatus,
	}, nil
}
