package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"docuflow/internal/domain"
)

// DocumentRepository defines the contract for document persistence.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, docID uuid.UUID) (*domain.Document, error)
	GetByIDForUser(ctx context.Context, userID, docID uuid.UUID) (*domain.Document, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Document, int, error)
	// UpdateProcessingStatus commits a state machine transition. processedAt,
	// when non-nil, stamps the reconciliation time.
	UpdateProcessingStatus(ctx context.Context, docID uuid.UUID, status domain.ProcessingStatus, processedAt *time.Time) error
	UpdateExtractedText(ctx context.Context, docID uuid.UUID, text string) error
	Delete(ctx context.Context, userID, docID uuid.UUID) error
}

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
