package port

import (
	"context"

	"github.com/google/uuid"

	"docuflow/internal/domain"
)

// JobPostingRepository defines the contract for job posting persistence.
type JobPostingRepository interface {
	Create(ctx context.Context, job *domain.JobPosting) error
	GetByID(ctx context.Context, jobID uuid.UUID) (*domain.JobPosting, error)
	List(ctx context.Context, offset, limit int) ([]domain.JobPosting, int, error)
	Update(ctx context.Context, job *domain.JobPosting) error
	Delete(ctx context.Context, jobID uuid.UUID) error
}
