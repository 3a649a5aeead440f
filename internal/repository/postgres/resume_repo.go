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

type resumeRepo struct {
	db *sqlx.DB
}

// NewResumeRepo creates a new PostgreSQL-backed ResumeRepository.
func NewResumeRepo(db *sqlx.DB) port.ResumeRepository {
	return &resumeRepo{db: db}
}

func (r *resumeRepo) Create(ctx context.Context, res *domain.Resume) error {
	now := time.Now().UTC()
	res.CreatedAt = now
	res.UpdatedAt = now

	query := `INSERT INTO resumes (
		id, user_id, document_id, candidate_name, email, phone, location,
		linkedin_url, github_url, professional_summary, current_position,
		experience, education, skills, certifications, total_years_experience,
		job_id, match_score, match_breakdown, matched_skills, missing_skills,
		recommendation, validation_errors, confidence_score, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7,
		$8, $9, $10, $11,
		$12, $13, $14, $15, $16,
		$17, $18, $19, $20, $21,
		$22, $23, $24, $25, $26
	)`

	_, err := r.db.ExecContext(ctx, query,
		res.ID, res.UserID, res.DocumentID, res.CandidateName, res.Email, res.Phone, res.Location,
		res.LinkedinURL, res.GithubURL, res.ProfessionalSummary, res.CurrentPosition,
		res.Experience, res.Education, res.Skills, res.Certifications, res.TotalYearsExperience,
		res.JobID, res.MatchScore, res.MatchBreakdown, res.MatchedSkills, res.MissingSkills,
		res.Recommendation, res.ValidationErrors, res.ConfidenceScore, res.CreatedAt, res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("resumeRepo.Create: %w", err)
	}
	return nil
}

func (r *resumeRepo) GetByID(ctx context.Context, resumeID uuid.UUID) (*domain.Resume, error) {
	var res domain.Resume
	err := r.db.GetContext(ctx, &res,
		"SELECT * FROM resumes WHERE id = $1", resumeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrResumeNotFound
		}
		return nil, fmt.Errorf("resumeRepo.GetByID: %w", err)
	}
	return &res, nil
}

func (r *resumeRepo) GetByDocumentID(ctx context.Context, docID uuid.UUID) (*domain.Resume, error) {
	var res domain.Resume
	err := r.db.GetContext(ctx, &res,
		"SELECT * FROM resumes WHERE document_id = $1", docID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrResumeNotFound
		}
		return nil, fmt.Errorf("resumeRepo.GetByDocumentID: %w", err)
	}
	return &res, nil
}

func (r *resumeRepo) List(ctx context.Context, offset, limit int) ([]domain.Resume, error) {
	// A negative limit reads as LIMIT ALL.
	var resumes []domain.Resume
	err := r.db.SelectContext(ctx, &resumes,
		`SELECT * FROM resumes ORDER BY created_at DESC
		 LIMIT CASE WHEN $1 < 0 THEN NULL ELSE $1 END OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("resumeRepo.List: %w", err)
	}
	return resumes, nil
}

func (r *resumeRepo) Update(ctx context.Context, res *domain.Resume) error {
	res.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE resumes SET
			candidate_name = $1, email = $2, phone = $3, location = $4,
			linkedin_url = $5, github_url = $6, professional_summary = $7,
			current_position = $8, experience = $9, education = $10,
			skills = $11, certifications = $12, total_years_experience = $13,
			validation_errors = $14, confidence_score = $15, updated_at = $16
		 WHERE id = $17`,
		res.CandidateName, res.Email, res.Phone, res.Location,
		res.LinkedinURL, res.GithubURL, res.ProfessionalSummary,
		res.CurrentPosition, res.Experience, res.Education,
		res.Skills, res.Certifications, res.TotalYearsExperience,
		res.ValidationErrors, res.ConfidenceScore, res.UpdatedAt, res.ID)
	if err != nil {
		return fmt.Errorf("resumeRepo.Update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("resumeRepo.Update rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrResumeNotFound
	}
	return nil
}

func (r *resumeRepo) UpdateMatch(ctx context.Context, res *domain.Resume) error {
	res.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE resumes SET
			job_id = $1, match_score = $2, match_breakdown = $3,
			matched_skills = $4, missing_skills = $5, recommendation = $6,
			updated_at = $7
		 WHERE id = $8`,
		res.JobID, res.MatchScore, res.MatchBreakdown,
		res.MatchedSkills, res.MissingSkills, res.Recommendation,
		res.UpdatedAt, res.ID)
	if err != nil {
		return fmt.Errorf("resumeRepo.UpdateMatch: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("resumeRepo.UpdateMatch rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrResumeNotFound
	}
	return nil
}

func (r *resumeRepo) ClearJobReferences(ctx context.Context, jobID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE resumes SET job_id = NULL, updated_at = $1 WHERE job_id = $2",
		time.Now().UTC(), jobID)
	if err != nil {
		return fmt.Errorf("resumeRepo.ClearJobReferences: %w", err)
	}
	return nil
}
