package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docuflow/internal/domain"
)

// MockResumeRepo is a mock implementation of port.ResumeRepository.
type MockResumeRepo struct {
	mock.Mock
}

func (m *MockResumeRepo) Create(ctx context.Context, res *domain.Resume) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *MockResumeRepo) GetByID(ctx context.Context, resumeID uuid.UUID) (*domain.Resume, error) {
	args := m.Called(ctx, resumeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resume), args.Error(1)
}

func (m *MockResumeRepo) GetByDocumentID(ctx context.Context, docID uuid.UUID) (*domain.Resume, error) {
	args := m.Called(ctx, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resume), args.Error(1)
}

func (m *MockResumeRepo) List(ctx context.Context, offset, limit int) ([]domain.Resume, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resume), args.Error(1)
}

func (m *MockResumeRepo) Update(ctx context.Context, res *domain.Resume) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *MockResumeRepo) UpdateMatch(ctx context.Context, res *domain.Resume) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *MockResumeRepo) ClearJobReferences(ctx context.Context, jobID uuid.UUID) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}
