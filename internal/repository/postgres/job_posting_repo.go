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

type jobPostingRepo struct {
	db *sqlx.DB
}

// NewJobPostingRepo creates a new PostgreSQL-backed JobPostingRepository.
func NewJobPostingRepo(db *sqlx.DB) port.JobPostingRepository {
	return &jobPostingRepo{db: db}
}

func (r *jobPostingRepo) Create(ctx context.Context, job *domain.JobPosting) error {
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	query := `INSERT INTO job_postings (
		id, title, description, required_skills, preferred_skills,
		experience_required, location, status, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8, $9, $10
	)`

	_, err := r.db.ExecContext(ctx, query,
		job.ID, job.Title, job.Description, job.RequiredSkills, job.PreferredSkills,
		job.ExperienceRequired, job.Location, job.Status, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("jobPostingRepo.Create: %w", err)
	}
	return nil
}

func (r *jobPostingRepo) GetByID(ctx context.Context, jobID uuid.UUID) (*domain.JobPosting, error) {
	var job domain.JobPosting
	err := r.db.GetContext(ctx, &job,
		"SELECT * FROM job_postings WHERE id = $1", jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobPostingNotFound
		}
		return nil, fmt.Errorf("jobPostingRepo.GetByID: %w", err)
	}
	return &job, nil
}

func (r *jobPostingRepo) List(ctx context.Context, offset, limit int) ([]domain.JobPosting, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM job_postings")
	if err != nil {
		return nil, 0, fmt.Errorf("jobPostingRepo.List count: %w", err)
	}

	var jobs []domain.JobPosting
	err = r.db.SelectContext(ctx, &jobs,
		`SELECT * FROM job_postings ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("jobPostingRepo.List: %w", err)
	}
	return jobs, total, nil
}

func (r *jobPostingRepo) Update(ctx context.Context, job *domain.JobPosting) error {
	job.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE job_postings SET
			title = $1, description = $2, required_skills = $3,
			preferred_skills = $4, experience_required = $5, location = $6,
			status = $7, updated_at = $8
		 WHERE id = $9`,
		job.Title, job.Description, job.RequiredSkills,
		job.PreferredSkills, job.ExperienceRequired, job.Location,
		job.Status, job.UpdatedAt, job.ID)
	if err != nil {
		return fmt.Errorf("jobPostingRepo.Update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("jobPostingRepo.Update rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrJobPostingNotFound
	}
	return nil
}

func (r *jobPostingRepo) Delete(ctx context.Context, jobID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM job_postings WHERE id = $1", jobID)
	if err != nil {
		return fmt.Errorf("jobPostingRepo.Delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("jobPostingRepo.Delete rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrJobPostingNotFound
	}
	return nil
}
