package matching

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docuflow/internal/domain"
	"docuflow/internal/port"
)

// BatchEntry is one row of a batch-match result.
type BatchEntry struct {
	ResumeID      uuid.UUID `json:"resumeId"`
	CandidateName string    `json:"candidateName"`
	Score         int       `json:"score"`
}

// Service scores résumés against job postings and persists the outcome.
type Service interface {
	MatchResumeToJob(ctx context.Context, resumeID, jobID uuid.UUID) (*MatchResult, error)
	BatchMatch(ctx context.Context, jobID uuid.UUID) ([]BatchEntry, error)
}

type service struct {
	resumes    port.ResumeRepository
	jobs       port.JobPostingRepository
	batchLimit int
	log        *zap.Logger
}

// NewService creates the matching service. batchLimit bounds how many
// résumés a single batch request processes; zero means unbounded.
func NewService(resumes port.ResumeRepository, jobs port.JobPostingRepository, batchLimit int, log *zap.Logger) Service {
	return &service{resumes: resumes, jobs: jobs, batchLimit: batchLimit, log: log}
}

// MatchResumeToJob scores one résumé against one posting and overwrites the
// résumé's match state. Nothing is written when either id fails to resolve.
func (s *service) MatchResumeToJob(ctx context.Context, resumeID, jobID uuid.UUID) (*MatchResult, error) {
	res, err := s.resumes.GetByID(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	result := Score(res, job)

	res.JobID = &job.ID
	res.MatchScore = &result.Score
	res.MatchBreakdown = result.Breakdown
	res.MatchedSkills = domain.StringList(result.MatchedSkills)
	res.MissingSkills = domain.StringList(result.MissingSkills)
	rec := result.Recommendation
	res.Recommendation = &rec

	if err := s.resumes.UpdateMatch(ctx, res); err != nil {
		return nil, fmt.Errorf("persisting match result: %w", err)
	}

	s.log.Info("resume matched",
		zap.String("resume_id", resumeID.String()),
		zap.String("job_id", jobID.String()),
		zap.Int("score", result.Score),
		zap.String("recommendation", string(result.Recommendation)))

	return &result, nil
}

// BatchMatch scores every résumé in the system against one posting,
// sequentially. Each résumé's job reference is reassigned, so the last job
// matched wins the weak reference slot. The run stops at the configured
// batch limit and honors context cancellation between résumés.
func (s *service) BatchMatch(ctx context.Context, jobID uuid.UUID) ([]BatchEntry, error) {
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}

	limit := s.batchLimit
	if limit <= 0 {
		limit = -1
	}
	resumes, err := s.resumes.List(ctx, 0, limit)
	if err != nil {
		return nil, fmt.Errorf("listing resumes: %w", err)
	}

	entries := make([]BatchEntry, 0, len(resumes))
	for i := range resumes {
		if err := ctx.Err(); err != nil {
			return entries, err
		}
		res := &resumes[i]

		result, err := s.MatchResumeToJob(ctx, res.ID, jobID)
		if err != nil {
			return entries, fmt.Errorf("matching resume %s: %w", res.ID, err)
		}

		name := ""
		if res.CandidateName != nil {
			name = *res.CandidateName
		}
		entries = append(entries, BatchEntry{
			ResumeID:      res.ID,
			CandidateName: name,
			Score:         result.Score,
		})
	}

	s.log.Info("batch match finished",
		zap.String("job_id", jobID.String()),
		zap.Int("resumes", len(entries)))

	return entries, nil
}
