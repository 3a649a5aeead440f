package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docuflow/internal/domain"
)

// MockJobPostingRepo is a mock implementation of port.JobPostingRepository.
type MockJobPostingRepo struct {
	mock.Mock
}

func (m *MockJobPostingRepo) Create(ctx context.Context, job *domain.JobPosting) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobPostingRepo) GetByID(ctx context.Context, jobID uuid.UUID) (*domain.JobPosting, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobPosting), args.Error(1)
}

func (m *MockJobPostingRepo) List(ctx context.Context, offset, limit int) ([]domain.JobPosting, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.JobPosting), args.Int(1), args.Error(2)
}

func (m *MockJobPostingRepo) Update(ctx context.Context, job *domain.JobPosting) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobPostingRepo) Delete(ctx context.Context, jobID uuid.UUID) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}
