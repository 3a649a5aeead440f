package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docuflow/internal/domain"
)

// MockReceiptRepo is a mock implementation of port.ReceiptRepository.
type MockReceiptRepo struct {
	mock.Mock
}

func (m *MockReceiptRepo) Create(ctx context.Context, rec *domain.Receipt) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockReceiptRepo) GetByDocumentID(ctx context.Context, docID uuid.UUID) (*domain.Receipt, error) {
	args := m.Called(ctx, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepo) Update(ctx context.Context, rec *domain.Receipt) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
