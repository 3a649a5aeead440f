package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docuflow/internal/domain"
)

// MockContractRepo is a mock implementation of port.ContractRepository.
type MockContractRepo struct {
	mock.Mock
}

func (m *MockContractRepo) Create(ctx context.Context, con *domain.Contract) error {
	args := m.Called(ctx, con)
	return args.Error(0)
}

func (m *MockContractRepo) GetByDocumentID(ctx context.Context, docID uuid.UUID) (*domain.Contract, error) {
	args := m.Called(ctx, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockContractRepo) Update(ctx context.Context, con *domain.Contract) error {
	args := m.Called(ctx, con)
	return args.Error(0)
}
