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

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	query := `INSERT INTO invoices (
		id, user_id, document_id, invoice_number, invoice_date, due_date,
		vendor_name, vendor_address, customer_name, line_items,
		subtotal, tax, total_amount, currency, payment_terms,
		validation_status, validation_errors, confidence_score,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10,
		$11, $12, $13, $14, $15,
		$16, $17, $18,
		$19, $20
	)`

	_, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.UserID, inv.DocumentID, inv.InvoiceNumber, inv.InvoiceDate, inv.DueDate,
		inv.VendorName, inv.VendorAddress, inv.CustomerName, inv.LineItems,
		inv.Subtotal, inv.Tax, inv.TotalAmount, inv.Currency, inv.PaymentTerms,
		inv.ValidationStatus, inv.ValidationErrors, inv.ConfidenceScore,
		inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByDocumentID(ctx context.Context, docID uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv,
		"SELECT * FROM invoices WHERE document_id = $1", docID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByDocumentID: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) Update(ctx context.Context, inv *domain.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET
			invoice_number = $1, invoice_date = $2, due_date = $3,
			vendor_name = $4, vendor_address = $5, customer_name = $6,
			line_items = $7, subtotal = $8, tax = $9, total_amount = $10,
			currency = $11, payment_terms = $12,
			validation_status = $13, validation_errors = $14, confidence_score = $15,
			updated_at = $16
		 WHERE id = $17`,
		inv.InvoiceNumber, inv.InvoiceDate, inv.DueDate,
		inv.VendorName, inv.VendorAddress, inv.CustomerName,
		inv.LineItems, inv.Subtotal, inv.Tax, inv.TotalAmount,
		inv.Currency, inv.PaymentTerms,
		inv.ValidationStatus, inv.ValidationErrors, inv.ConfidenceScore,
		inv.UpdatedAt, inv.ID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("invoiceRepo.Update rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}
