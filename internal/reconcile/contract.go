package reconcile

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"docuflow/internal/domain"
	"docuflow/internal/port"
)

// contractPayload is the sparse patch shape for contract-analyzed callbacks.
// The worker has used both start_date/end_date and effective_date/
// expiration_date for the same columns, and both obligations and
// key_obligations; the aliases are accepted with the explicit name winning.
type contractPayload struct {
	ContractTitle        *string         `json:"contract_title"`
	ContractType         *string         `json:"contract_type"`
	ContractValue        *float64        `json:"contract_value"`
	Currency             *string         `json:"currency"`
	StartDate            *string         `json:"start_date"`
	EndDate              *string         `json:"end_date"`
	EffectiveDate        *string         `json:"effective_date"`
	ExpirationDate       *string         `json:"expiration_date"`
	RiskScore            *int            `json:"risk_score"`
	AutoRenewal          *bool           `json:"auto_renewal"`
	GoverningLaw         *string         `json:"governing_law"`
	Summary              *string         `json:"summary"`
	RequiresLegalReview  *bool           `json:"requires_legal_review"`
	ConfidentialityTerms *string         `json:"confidentiality_terms"`
	LiabilityLimitations *string         `json:"liability_limitations"`
	Parties              json.RawMessage `json:"parties"`
	PaymentTerms         json.RawMessage `json:"payment_terms"`
	Obligations          json.RawMessage `json:"obligations"`
	KeyObligations       json.RawMessage `json:"key_obligations"`
	TerminationClauses   json.RawMessage `json:"termination_clauses"`
	Penalties            json.RawMessage `json:"penalties"`
	SpecialConditions    json.RawMessage `json:"special_conditions"`
	RedFlags             json.RawMessage `json:"red_flags"`
}

type contractReconciler struct {
	contracts port.ContractRepository
	committer documentCommitter
	log       *zap.Logger
}

// NewContractReconciler creates the reconciler for contract documents.
// Contracts follow the same canonical status mapping as every other type:
// valid completes, needs_review parks for review, anything else fails.
func NewContractReconciler(contracts port.ContractRepository, docs port.DocumentRepository, log *zap.Logger) Reconciler {
	return &contractReconciler{
		contracts: contracts,
		committer: documentCommitter{docs: docs, log: log},
		log:       log,
	}
}

func (r *contractReconciler) DocumentType() domain.DocumentType {
	return domain.DocumentTypeContract
}

func (r *contractReconciler) Reconcile(ctx context.Context, in *Input) (*Result, error) {
	var p contractPayload
	if err := decodePayload(in.ProcessedData, &p); err != nil {
		return nil, err
	}

	con, err := r.contracts.GetByDocumentID(ctx, in.DocumentID)
	if err != nil {
		return nil, err
	}

	startRaw := p.EffectiveDate
	if startRaw == nil {
		startRaw = p.StartDate
	}
	endRaw := p.ExpirationDate
	if endRaw == nil {
		endRaw = p.EndDate
	}
	effectiveDate, err := parseDatePtr(startRaw)
	if err != nil {
		return nil, err
	}
	expirationDate, err := parseDatePtr(endRaw)
	if err != nil {
		return nil, err
	}

	if p.ContractTitle != nil {
		con.ContractTitle = p.ContractTitle
	}
	if p.ContractType != nil {
		con.ContractType = p.ContractType
	}
	if p.ContractValue != nil {
		con.ContractValue = p.ContractValue
	}
	if p.Currency != nil {
		con.Currency = *p.Currency
	}
	if effectiveDate != nil {
		con.EffectiveDate = effectiveDate
	}
	if expirationDate != nil {
		con.ExpirationDate = expirationDate
	}
	if p.RiskScore != nil {
		score := clampScore(*p.RiskScore)
		con.RiskScore = &score
	}
	if p.AutoRenewal != nil {
		con.AutoRenewal = *p.AutoRenewal
	}
	if p.GoverningLaw != nil {
		con.GoverningLaw = p.GoverningLaw
	}
	if p.Summary != nil {
		con.Summary = p.Summary
	}
	if p.RequiresLegalReview != nil {
		con.RequiresLegalReview = *p.RequiresLegalReview
	}
	if p.ConfidentialityTerms != nil {
		con.ConfidentialityTerms = p.ConfidentialityTerms
	}
	if p.LiabilityLimitations != nil {
		con.LiabilityLimitations = p.LiabilityLimitations
	}
	if present(p.Parties) {
		con.Parties = p.Parties
	}
	if present(p.PaymentTerms) {
		con.PaymentTerms = p.PaymentTerms
	}
	obligations := p.KeyObligations
	if !present(obligations) {
		obligations = p.Obligations
	}
	if present(obligations) {
		con.KeyObligations = obligations
	}
	if present(p.TerminationClauses) {
		con.TerminationClauses = p.TerminationClauses
	}
	if present(p.Penalties) {
		con.Penalties = p.Penalties
	}
	if present(p.SpecialConditions) {
		con.SpecialConditions = p.SpecialConditions
	}
	if present(p.RedFlags) {
		con.RedFlags = p.RedFlags
	}
	if present(in.Validation.Errors) {
		con.ValidationErrors = in.Validation.Errors
	}
	con.ConfidenceScore = clampScore(in.Validation.ConfidenceScore)

	if err := r.contracts.Update(ctx, con); err != nil {
		return nil, err
	}

	docStatus, err := r.committer.commit(ctx, in)
	if err != nil {
		return nil, err
	}

	r.log.Info("contract reconciled",
		zap.String("contract_id", con.ID.String()),
		zap.String("document_id", in.DocumentID.String()),
		zap.Int("confidence_score", con.ConfidenceScore),
		zap.String("document_status", string(docStatus)))

	return &Result{
		RecordID:        con.ID,
		ConfidenceScore: con.ConfidenceScore,
		Status:          in.Validation.Status,
		DocumentStatus:  docStatus,
	}, nil
}
