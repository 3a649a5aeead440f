package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docuflow/internal/domain"
	"docuflow/internal/port"
)

type receiptRepo struct {
	db *sqlx.DB
}

// NewReceiptRepo creates a new PostgreSQL-backed ReceiptRepository.
func NewReceiptRepo(db *sqlx.DB) port.ReceiptRepository {
	return &receiptRepo{db: db}
}

func (r *receiptRepo) Create(ctx context.Context, rec *domain.Receipt) error {
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	query := `INSERT INTO receipts (
		id, user_id, document_id, merchant_name, purchase_date, items,
		subtotal, tax, tip, total_amount, currency,
		payment_method, expense_category, is_business_expense,
		validation_errors, confidence_score, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10, $11,
		$12, $13, $14,
		$15, $16, $17, $18
	)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.UserID, rec.DocumentID, rec.MerchantName, rec.PurchaseDate, rec.Items,
		rec.Subtotal, rec.Tax, rec.Tip, rec.TotalAmount, rec.Currency,
		rec.PaymentMethod, rec.ExpenseCategory, rec.IsBusinessExpense,
		rec.ValidationErrors, rec.ConfidenceScore, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("receiptRepo.Create: %w", err)
	}
	return nil
}

func (r *receiptRepo) GetByDocumentID(ctx context.Context, docID uuid.UUID) (*domain.Receipt, error) {
	var rec domain.Receipt
	err := r.db.GetContext(ctx, &rec,
		"SELECT * FROM receipts WHERE document_id = $1", docID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReceiptNotFound
		}
		return nil, fmt.Errorf("receiptRepo.GetByDocumentID: %w", err)
	}
	return &rec, nil
}

func (r *receiptRepo) Update(ctx context.Context, rec *domain.Receipt) error {
	rec.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE receipts SET
			merchant_name = $1, purchase_date = $2, items = $3,
			subtotal = $4, tax = $5, tip = $6, total_amount = $7,
			currency = $8, payment_method = $9, expense_category = $10,
			is_business_expense = $11, validation_errors = $12, confidence_score = $13,
			updated_at = $14
		 WHERE id = $15`,
		rec.MerchantName, rec.PurchaseDate, rec.Items,
		rec.Subtotal, rec.Tax, rec.Tip, rec.TotalAmount,
		rec.Currency, rec.PaymentMethod, rec.ExpenseCategory,
		rec.IsBusinessExpense, rec.ValidationErrors, rec.ConfidenceScore,
		rec.UpdatedAt, rec.ID)
	if err != nil {
		return fmt.Errorf("receiptRepo.Update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("receiptRepo.Update rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrReceiptNotFound
	}
	return nil
}
