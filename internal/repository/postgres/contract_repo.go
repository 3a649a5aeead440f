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

type contractRepo struct {
	db *sqlx.DB
}

// NewContractRepo creates a new PostgreSQL-backed ContractRepository.
func NewContractRepo(db *sqlx.DB) port.ContractRepository {
	return &contractRepo{db: db}
}

func (r *contractRepo) Create(ctx context.Context, con *domain.Contract) error {
	now := time.Now().UTC()
	con.CreatedAt = now
	con.UpdatedAt = now

	query := `INSERT INTO contracts (
		id, user_id, document_id, contract_title, contract_type, contract_value,
		currency, parties, effective_date, expiration_date, auto_renewal,
		payment_terms, key_obligations, termination_clauses, penalties,
		confidentiality_terms, liability_limitations, governing_law,
		special_conditions, risk_score, requires_legal_review, red_flags,
		summary, validation_errors, confidence_score, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10, $11,
		$12, $13, $14, $15,
		$16, $17, $18,
		$19, $20, $21, $22,
		$23, $24, $25, $26, $27
	)`

	_, err := r.db.ExecContext(ctx, query,
		con.ID, con.UserID, con.DocumentID, con.ContractTitle, con.ContractType, con.ContractValue,
		con.Currency, con.Parties, con.EffectiveDate, con.ExpirationDate, con.AutoRenewal,
		con.PaymentTerms, con.KeyObligations, con.TerminationClauses, con.Penalties,
		con.ConfidentialityTerms, con.LiabilityLimitations, con.GoverningLaw,
		con.SpecialConditions, con.RiskScore, con.RequiresLegalReview, con.RedFlags,
		con.Summary, con.ValidationErrors, con.ConfidenceScore, con.CreatedAt, con.UpdatedAt)
	if err != nil {
		return fmt.Errorf("contractRepo.Create: %w", err)
	}
	return nil
}

func (r *contractRepo) GetByDocumentID(ctx context.Context, docID uuid.UUID) (*domain.Contract, error) {
	var con domain.Contract
	err := r.db.GetContext(ctx, &con,
		"SELECT * FROM contracts WHERE document_id = $1", docID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrContractNotFound
		}
		return nil, fmt.Errorf("contractRepo.GetByDocumentID: %w", err)
	}
	return &con, nil
}

func (r *contractRepo) Update(ctx context.Context, con *domain.Contract) error {
	con.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE contracts SET
			contract_title = $1, contract_type = $2, contract_value = $3,
			currency = $4, parties = $5, effective_date = $6, expiration_date = $7,
			auto_renewal = $8, payment_terms = $9, key_obligations = $10,
			termination_clauses = $11, penalties = $12, confidentiality_terms = $13,
			liability_limitations = $14, governing_law = $15, special_conditions = $16,
			risk_score = $17, requires_legal_review = $18, red_flags = $19,
			summary = $20, validation_errors = $21, confidence_score = $22,
			updated_at = $23
		 WHERE id = $24`,
		con.ContractTitle, con.ContractType, con.ContractValue,
		con.Currency, con.Parties, con.EffectiveDate, con.ExpirationDate,
		con.AutoRenewal, con.PaymentTerms, con.KeyObligations,
		con.TerminationClauses, con.Penalties, con.ConfidentialityTerms,
		con.LiabilityLimitations, con.GoverningLaw, con.SpecialConditions,
		con.RiskScore, con.RequiresLegalReview, con.RedFlags,
		con.Summary, con.ValidationErrors, con.ConfidenceScore,
		con.UpdatedAt, con.ID)
	if err != nil {
		return fmt.Errorf("contractRepo.Update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("contractRepo.Update rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrContractNotFound
	}
	return nil
}
