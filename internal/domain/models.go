package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated account that owns documents.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Document is the generic record for one uploaded file and its processing
// lifecycle. Exactly one specialized record of the matching type exists per
// document; document_type is immutable after creation.
type Document struct {
	ID               uuid.UUID        `db:"id" json:"id"`
	UserID           uuid.UUID        `db:"user_id" json:"user_id"`
	DocumentType     DocumentType     `db:"document_type" json:"document_type"`
	OriginalFilename string           `db:"original_filename" json:"original_filename"`
	StoragePath      string           `db:"storage_path" json:"storage_path"`
	MimeType         string           `db:"mime_type" json:"mime_type"`
	FileSize         int64            `db:"file_size" json:"file_size"`
	ProcessingStatus ProcessingStatus `db:"processing_status" json:"processing_status"`
	ProcessedAt      *time.Time       `db:"processed_at" json:"processed_at"`
	ExtractedText    *string          `db:"extracted_text" json:"extracted_text,omitempty"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updated_at"`
}

// Invoice is the specialized extraction record for invoice documents.
// JSONB payload fields carry worker-defined shapes and are never inspected
// beyond being well-formed JSON.
type Invoice struct {
	ID               uuid.UUID         `db:"id" json:"id"`
	UserID           uuid.UUID         `db:"user_id" json:"user_id"`
	DocumentID       uuid.UUID         `db:"document_id" json:"document_id"`
	InvoiceNumber    *string           `db:"invoice_number" json:"invoice_number"`
	InvoiceDate      *time.Time        `db:"invoice_date" json:"invoice_date"`
	DueDate          *time.Time        `db:"due_date" json:"due_date"`
	VendorName       *string           `db:"vendor_name" json:"vendor_name"`
	VendorAddress    *string           `db:"vendor_address" json:"vendor_address"`
	CustomerName     *string           `db:"customer_name" json:"customer_name"`
	LineItems        json.RawMessage   `db:"line_items" json:"line_items"`
	Subtotal         *float64          `db:"subtotal" json:"subtotal"`
	Tax              *float64          `db:"tax" json:"tax"`
	TotalAmount      *float64          `db:"total_amount" json:"total_amount"`
	Currency         string            `db:"currency" json:"currency"`
	PaymentTerms     *string           `db:"payment_terms" json:"payment_terms"`
	ValidationStatus *ValidationStatus `db:"validation_status" json:"validation_status"`
	ValidationErrors json.RawMessage   `db:"validation_errors" json:"validation_errors"`
	ConfidenceScore  int               `db:"confidence_score" json:"confidence_score"`
	CreatedAt        time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time         `db:"updated_at" json:"updated_at"`
}

// Receipt is the specialized extraction record for receipt documents.
type Receipt struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	UserID            uuid.UUID       `db:"user_id" json:"user_id"`
	DocumentID        uuid.UUID       `db:"document_id" json:"document_id"`
	MerchantName      *string         `db:"merchant_name" json:"merchant_name"`
	PurchaseDate      *time.Time      `db:"purchase_date" json:"purchase_date"`
	Items             json.RawMessage `db:"items" json:"items"`
	Subtotal          *float64        `db:"subtotal" json:"subtotal"`
	Tax               *float64        `db:"tax" json:"tax"`
	Tip               *float64        `db:"tip" json:"tip"`
	TotalAmount       *float64        `db:"total_amount" json:"total_amount"`
	Currency          string          `db:"currency" json:"currency"`
	PaymentMethod     *string         `db:"payment_method" json:"payment_method"`
	ExpenseCategory   *string         `db:"expense_category" json:"expense_category"`
	IsBusinessExpense bool            `db:"is_business_expense" json:"is_business_expense"`
	ValidationErrors  json.RawMessage `db:"validation_errors" json:"validation_errors"`
	ConfidenceScore   int             `db:"confidence_score" json:"confidence_score"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

// Resume is the specialized extraction record for résumé documents. It also
// carries the match state against a job posting: job_id is a weak reference
// (nulled when the referenced posting is deleted), and the match fields are
// overwritten wholesale by every matching invocation.
type Resume struct {
	ID                   uuid.UUID       `db:"id" json:"id"`
	UserID               uuid.UUID       `db:"user_id" json:"user_id"`
	DocumentID           uuid.UUID       `db:"document_id" json:"document_id"`
	CandidateName        *string         `db:"candidate_name" json:"candidate_name"`
	Email                *string         `db:"email" json:"email"`
	Phone                *string         `db:"phone" json:"phone"`
	Location             *string         `db:"location" json:"location"`
	LinkedinURL          *string         `db:"linkedin_url" json:"linkedin_url"`
	GithubURL            *string         `db:"github_url" json:"github_url"`
	ProfessionalSummary  *string         `db:"professional_summary" json:"professional_summary"`
	CurrentPosition      *string         `db:"current_position" json:"current_position"`
	Experience           json.RawMessage `db:"experience" json:"experience"`
	Education            json.RawMessage `db:"education" json:"education"`
	Skills               json.RawMessage `db:"skills" json:"skills"`
	Certifications       json.RawMessage `db:"certifications" json:"certifications"`
	TotalYearsExperience *float64        `db:"total_years_experience" json:"total_years_experience"`
	JobID                *uuid.UUID      `db:"job_id" json:"job_id"`
	MatchScore           *int            `db:"match_score" json:"match_score"`
	MatchBreakdown       MatchBreakdown  `db:"match_breakdown" json:"match_breakdown"`
	MatchedSkills        StringList      `db:"matched_skills" json:"matched_skills"`
	MissingSkills        StringList      `db:"missing_skills" json:"missing_skills"`
	Recommendation       *Recommendation `db:"recommendation" json:"recommendation"`
	ValidationErrors     json.RawMessage `db:"validation_errors" json:"validation_errors"`
	ConfidenceScore      int             `db:"confidence_score" json:"confidence_score"`
	CreatedAt            time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at" json:"updated_at"`
}

// Contract is the specialized extraction record for contract documents.
type Contract struct {
	ID                   uuid.UUID       `db:"id" json:"id"`
	UserID               uuid.UUID       `db:"user_id" json:"user_id"`
	DocumentID           uuid.UUID       `db:"document_id" json:"document_id"`
	ContractTitle        *string         `db:"contract_title" json:"contract_title"`
	ContractType         *string         `db:"contract_type" json:"contract_type"`
	ContractValue        *float64        `db:"contract_value" json:"contract_value"`
	Currency             string          `db:"currency" json:"currency"`
	Parties              json.RawMessage `db:"parties" json:"parties"`
	EffectiveDate        *time.Time      `db:"effective_date" json:"effective_date"`
	ExpirationDate       *time.Time      `db:"expiration_date" json:"expiration_date"`
	AutoRenewal          bool            `db:"auto_renewal" json:"auto_renewal"`
	PaymentTerms         json.RawMessage `db:"payment_terms" json:"payment_terms"`
	KeyObligations       json.RawMessage `db:"key_obligations" json:"key_obligations"`
	TerminationClauses   json.RawMessage `db:"termination_clauses" json:"termination_clauses"`
	Penalties            json.RawMessage `db:"penalties" json:"penalties"`
	ConfidentialityTerms *string         `db:"confidentiality_terms" json:"confidentiality_terms"`
	LiabilityLimitations *string         `db:"liability_limitations" json:"liability_limitations"`
	GoverningLaw         *string         `db:"governing_law" json:"governing_law"`
	SpecialConditions    json.RawMessage `db:"special_conditions" json:"special_conditions"`
	RiskScore            *int            `db:"risk_score" json:"risk_score"`
	RequiresLegalReview  bool            `db:"requires_legal_review" json:"requires_legal_review"`
	RedFlags             json.RawMessage `db:"red_flags" json:"red_flags"`
	Summary              *string         `db:"summary" json:"summary"`
	ValidationErrors     json.RawMessage `db:"validation_errors" json:"validation_errors"`
	ConfidenceScore      int             `db:"confidence_score" json:"confidence_score"`
	CreatedAt            time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at" json:"updated_at"`
}

// JobPosting is an independent aggregate; résumés reference it weakly.
type JobPosting struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	Title              string     `db:"title" json:"title"`
	Description        string     `db:"description" json:"description"`
	RequiredSkills     StringList `db:"required_skills" json:"required_skills"`
	PreferredSkills    StringList `db:"preferred_skills" json:"preferred_skills"`
	ExperienceRequired *string    `db:"experience_required" json:"experience_required"`
	Location           *string    `db:"location" json:"location"`
	Status             JobStatus  `db:"status" json:"status"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}
