package reconcile

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"docuflow/internal/domain"
	"docuflow/internal/port"
)

// resumePayload is the sparse patch shape for resume-processed callbacks.
// The worker reports years_of_experience; it lands in the record's
// total_years_experience column.
type resumePayload struct {
	CandidateName     *string         `json:"candidate_name"`
	Email             *string         `json:"email"`
	Phone             *string         `json:"phone"`
	Location          *string         `json:"location"`
	LinkedinURL       *string         `json:"linkedin_url"`
	GithubURL         *string         `json:"github_url"`
	YearsOfExperience *float64        `json:"years_of_experience"`
	CurrentPosition   *string         `json:"current_position"`
	Summary           *string         `json:"summary"`
	Skills            json.RawMessage `json:"skills"`
	Experience        json.RawMessage `json:"experience"`
	Education         json.RawMessage `json:"education"`
	Certifications    json.RawMessage `json:"certifications"`
}

type resumeReconciler struct {
	resumes   port.ResumeRepository
	committer documentCommitter
	log       *zap.Logger
}

// NewResumeReconciler creates the reconciler for résumé documents.
func NewResumeReconciler(resumes port.ResumeRepository, docs port.DocumentRepository, log *zap.Logger) Reconciler {
	return &resumeReconciler{
		resumes:   resumes,
		committer: documentCommitter{docs: docs, log: log},
		log:       log,
	}
}

func (r *resumeReconciler) DocumentType() domain.DocumentType {
	return domain.DocumentTypeResume
}

func (r *resumeReconciler) Reconcile(ctx context.Context, in *Input) (*Result, error) {
	var p resumePayload
	if err := decodePayload(in.ProcessedData, &p); err != nil {
		return nil, err
	}

	res, err := r.resumes.GetByDocumentID(ctx, in.DocumentID)
	if err != nil {
		return nil, err
	}

	if p.CandidateName != nil {
		res.CandidateName = p.CandidateName
	}
	if p.Email != nil {
		res.Email = p.Email
	}
	if p.Phone != nil {
		res.Phone = p.Phone
	}
	if p.Location != nil {
		res.Location = p.Location
	}
	if p.LinkedinURL != nil {
		res.LinkedinURL = p.LinkedinURL
	}
	if p.GithubURL != nil {
		res.GithubURL = p.GithubURL
	}
	if p.YearsOfExperience != nil {
		res.TotalYearsExperience = p.YearsOfExperience
	}
	if p.CurrentPosition != nil {
		res.CurrentPosition = p.CurrentPosition
	}
	if p.Summary != nil {
		res.ProfessionalSummary = p.Summary
	}
	if present(p.Skills) {
		res.Skills = p.Skills
	}
	if present(p.Experience) {
		res.Experience = p.Experience
	}
	if present(p.Education) {
		res.Education = p.Education
	}
	if present(p.Certifications) {
		res.Certifications = p.Certifications
	}
	if present(in.Validation.Errors) {
		res.ValidationErrors = in.Validation.Errors
	}
	res.ConfidenceScore = clampScore(in.Validation.ConfidenceScore)

	if err := r.resumes.Update(ctx, res); err != nil {
		return nil, err
	}

	docStatus, err := r.committer.commit(ctx, in)
	if err != nil {
		return nil, err
	}

	r.log.Info("resume reconciled",
		zap.String("resume_id", res.ID.String()),
		zap.String("document_id", in.DocumentID.String()),
		zap.Int("confidence_score", res.ConfidenceScore),
		zap.String("document_status", string(docStatus)))

	return &Result{
		RecordID:        res.ID,
		ConfidenceScore: res.ConfidenceScore,
		Status:          in.Validation.Status,
		DocumentStatus:  docStatus,
	}, nil
}
