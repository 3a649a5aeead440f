package matching_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docuflow/internal/domain"
	"docuflow/internal/matching"
	"docuflow/mocks"
)

func TestMatchResumeToJob_PersistsMatchState(t *testing.T) {
	resumes := new(mocks.MockResumeRepo)
	jobs := new(mocks.MockJobPostingRepo)
	svc := matching.NewService(resumes, jobs, 0, zap.NewNop())

	resume := resumeWith(`{"technical":["go"]}`, f64Ptr(3), nil)
	job := &domain.JobPosting{
		ID:             uuid.New(),
		RequiredSkills: domain.StringList{"go"},
	}

	resumes.On("GetByID", mock.Anything, resume.ID).Return(resume, nil)
	jobs.On("GetByID", mock.Anything, job.ID).Return(job, nil)
	resumes.On("UpdateMatch", mock.Anything, resume).Return(nil)

	result, err := svc.MatchResumeToJob(context.Background(), resume.ID, job.ID)

	require.NoError(t, err)
	assert.Equal(t, 100, result.Score)
	require.NotNil(t, resume.JobID)
	assert.Equal(t, job.ID, *resume.JobID)
	require.NotNil(t, resume.MatchScore)
	assert.Equal(t, 100, *resume.MatchScore)
	require.NotNil(t, resume.Recommendation)
	assert.Equal(t, domain.RecommendationStrongYes, *resume.Recommendation)
	resumes.AssertCalled(t, "UpdateMatch", mock.Anything, resume)
}

func TestMatchResumeToJob_ResumeNotFoundWritesNothing(t *testing.T) {
	resumes := new(mocks.MockResumeRepo)
	jobs := new(mocks.MockJobPostingRepo)
	svc := matching.NewService(resumes, jobs, 0, zap.NewNop())

	resumeID := uuid.New()
	resumes.On("GetByID", mock.Anything, resumeID).Return(nil, domain.ErrResumeNotFound)

	_, err := svc.MatchResumeToJob(context.Background(), resumeID, uuid.New())

	require.ErrorIs(t, err, domain.ErrResumeNotFound)
	resumes.AssertNotCalled(t, "UpdateMatch", mock.Anything, mock.Anything)
}

func TestMatchResumeToJob_JobNotFoundWritesNothing(t *testing.T) {
	resumes := new(mocks.MockResumeRepo)
	jobs := new(mocks.MockJobPostingRepo)
	svc := matching.NewService(resumes, jobs, 0, zap.NewNop())

	resume := resumeWith(`{}`, nil, nil)
	jobID := uuid.New()
	resumes.On("GetByID", mock.Anything, resume.ID).Return(resume, nil)
	jobs.On("GetByID", mock.Anything, jobID).Return(nil, domain.ErrJobPostingNotFound)

	_, err := svc.MatchResumeToJob(context.Background(), resume.ID, jobID)

	require.ErrorIs(t, err, domain.ErrJobPostingNotFound)
	resumes.AssertNotCalled(t, "UpdateMatch", mock.Anything, mock.Anything)
	assert.Nil(t, resume.JobID)
}

func TestBatchMatch_ScoresEveryResume(t *testing.T) {
	resumes := new(mocks.MockResumeRepo)
	jobs := new(mocks.MockJobPostingRepo)
	svc := matching.NewService(resumes, jobs, 500, zap.NewNop())

	job := &domain.JobPosting{ID: uuid.New(), RequiredSkills: domain.StringList{"go"}}
	list := []domain.Resume{
		{ID: uuid.New(), CandidateName: strPtr("Ada"), Skills: json.RawMessage(`{"technical":["go"]}`)},
		{ID: uuid.New(), CandidateName: strPtr("Brin"), Skills: json.RawMessage(`{"technical":["java"]}`)},
	}

	jobs.On("GetByID", mock.Anything, job.ID).Return(job, nil)
	resumes.On("List", mock.Anything, 0, 500).Return(list, nil)
	for i := range list {
		r := list[i]
		resumes.On("GetByID", mock.Anything, r.ID).Return(&r, nil)
	}
	resumes.On("UpdateMatch", mock.Anything, mock.AnythingOfType("*domain.Resume")).Return(nil)

	entries, err := svc.BatchMatch(context.Background(), job.ID)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Ada", entries[0].CandidateName)
	assert.Equal(t, 100, entries[0].Score)
	assert.Equal(t, "Brin", entries[1].CandidateName)
	// Brin misses the only required skill: 0*0.6 + 100*0.3 + 100*0.1 = 40.
	assert.Equal(t, 40, entries[1].Score)
}

func TestBatchMatch_JobNotFound(t *testing.T) {
	resumes := new(mocks.MockResumeRepo)
	jobs := new(mocks.MockJobPostingRepo)
	svc := matching.NewService(resumes, jobs, 0, zap.NewNop())

	jobID := uuid.New()
	jobs.On("GetByID", mock.Anything, jobID).Return(nil, domain.ErrJobPostingNotFound)

	_, err := svc.BatchMatch(context.Background(), jobID)

	require.ErrorIs(t, err, domain.ErrJobPostingNotFound)
	resumes.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestBatchMatch_HonorsCancellation(t *testing.T) {
	resumes := new(mocks.MockResumeRepo)
	jobs := new(mocks.MockJobPostingRepo)
	svc := matching.NewService(resumes, jobs, 0, zap.NewNop())

	job := &domain.JobPosting{ID: uuid.New()}
	jobs.On("GetByID", mock.Anything, job.ID).Return(job, nil)
	resumes.On("List", mock.Anything, 0, -1).Return([]domain.Resume{{ID: uuid.New()}}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.BatchMatch(ctx, job.ID)
	require.ErrorIs(t, err, context.Canceled)
	resumes.AssertNotCalled(t, "UpdateMatch", mock.Anything, mock.Anything)
}
