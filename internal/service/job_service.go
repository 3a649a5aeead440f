package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docuflow/internal/domain"
	"docuflow/internal/port"
)

// JobInput is the DTO for creating and updating job postings.
type JobInput struct {
	Title              string   `json:"title" binding:"required"`
	Description        string   `json:"description" binding:"required"`
	RequiredSkills     []string `json:"required_skills"`
	PreferredSkills    []string `json:"preferred_skills"`
	ExperienceRequired *string  `json:"experience_required"`
	Location           *string  `json:"location"`
	Status             *string  `json:"status"`
}

// JobService defines the job posting contract.
type JobService interface {
	Create(ctx context.Context, input JobInput) (*domain.JobPosting, error)
	GetByID(ctx context.Context, jobID uuid.UUID) (*domain.JobPosting, error)
	List(ctx context.Context, offset, limit int) ([]domain.JobPosting, int, error)
	Update(ctx context.Context, jobID uuid.UUID, input JobInput) (*domain.JobPosting, error)
	Delete(ctx context.Context, jobID uuid.UUID) error
}

type jobService struct {
	jobRepo    port.JobPostingRepository
	resumeRepo port.ResumeRepository
	log        *zap.Logger
}

// NewJobService creates a new JobService implementation.
func NewJobService(jobRepo port.JobPostingRepository, resumeRepo port.ResumeRepository, log *zap.Logger) JobService {
	return &jobService{jobRepo: jobRepo, resumeRepo: resumeRepo, log: log}
}

// jobStatusFrom validates an optional status value, defaulting to the given
// status when absent. An unknown value is rejected here rather than at the
// database CHECK constraint.
func jobStatusFrom(s *string, current domain.JobStatus) (domain.JobStatus, error) {
	if s == nil {
		return current, nil
	}
	status := domain.JobStatus(*s)
	if !domain.ValidJobStatuses[status] {
		return "", domain.ErrInvalidJobStatus
	}
	return status, nil
}

func (s *jobService) Create(ctx context.Context, input JobInput) (*domain.JobPosting, error) {
	status, err := jobStatusFrom(input.Status, domain.JobStatusOpen)
	if err != nil {
		return nil, err
	}

	job := &domain.JobPosting{
		ID:                 uuid.New(),
		Title:              input.Title,
		Description:        input.Description,
		RequiredSkills:     domain.StringList(input.RequiredSkills),
		PreferredSkills:    domain.StringList(input.PreferredSkills),
		ExperienceRequired: input.ExperienceRequired,
		Location:           input.Location,
		Status:             status,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *jobService) GetByID(ctx context.Context, jobID uuid.UUID) (*domain.JobPosting, error) {
	return s.jobRepo.GetByID(ctx, jobID)
}

func (s *jobService) List(ctx context.Context, offset, limit int) ([]domain.JobPosting, int, error) {
	return s.jobRepo.List(ctx, offset, limit)
}

func (s *jobService) Update(ctx context.Context, jobID uuid.UUID, input JobInput) (*domain.JobPosting, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	status, err := jobStatusFrom(input.Status, job.Status)
	if err != nil {
		return nil, err
	}

	job.Title = input.Title
	job.Description = input.Description
	job.RequiredSkills = domain.StringList(input.RequiredSkills)
	job.PreferredSkills = domain.StringList(input.PreferredSkills)
	job.ExperienceRequired = input.ExperienceRequired
	job.Location = input.Location
	job.Status = status

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Delete removes a posting after detaching every résumé that references it.
// Match history on those résumés survives; only the job link is cleared.
func (s *jobService) Delete(ctx context.Context, jobID uuid.UUID) error {
	if _, err := s.jobRepo.GetByID(ctx, jobID); err != nil {
		return err
	}

	if err := s.resumeRepo.ClearJobReferences(ctx, jobID); err != nil {
		return fmt.Errorf("clearing job references: %w", err)
	}

	if err := s.jobRepo.Delete(ctx, jobID); err != nil {
		return err
	}

	s.log.Info("job posting deleted", zap.String("job_id", jobID.String()))
	return nil
}
