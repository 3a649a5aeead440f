package reconcile_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docuflow/internal/domain"
	"docuflow/internal/reconcile"
	"docuflow/mocks"
)

func contractFixture(docID uuid.UUID) (*mocks.MockContractRepo, *mocks.MockDocumentRepo, reconcile.Reconciler, *domain.Contract) {
	contracts := new(mocks.MockContractRepo)
	docs := new(mocks.MockDocumentRepo)
	rec := reconcile.NewContractReconciler(contracts, docs, zap.NewNop())

	con := &domain.Contract{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		DocumentID: docID,
		Currency:   "USD",
	}
	contracts.On("GetByDocumentID", mock.Anything, docID).Return(con, nil)
	contracts.On("Update", mock.Anything, con).Return(nil)
	docs.On("GetByID", mock.Anything, docID).Return(&domain.Document{
		ID:               docID,
		DocumentType:     domain.DocumentTypeContract,
		ProcessingStatus: domain.ProcessingStatusProcessing,
	}, nil)
	return contracts, docs, rec, con
}

// Contract verdicts map the same way as every other type. In particular a
// needs_review verdict parks the document for review instead of completing.
func TestContractReconcile_StatusMapping(t *testing.T) {
	tests := []struct {
		verdict string
		want    domain.ProcessingStatus
	}{
		{"valid", domain.ProcessingStatusCompleted},
		{"needs_review", domain.ProcessingStatusNeedsReview},
		{"invalid", domain.ProcessingStatusFailed},
		{"something_else", domain.ProcessingStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.verdict, func(t *testing.T) {
			docID := uuid.New()
			_, docs, rec, _ := contractFixture(docID)
			docs.On("UpdateProcessingStatus", mock.Anything, docID, tt.want, mock.Anything).Return(nil)

			result, err := rec.Reconcile(context.Background(), &reconcile.Input{
				DocumentID: docID,
				Validation: reconcile.Validation{Status: tt.verdict, ConfidenceScore: 80},
				Now:        time.Now(),
			})

			require.NoError(t, err)
			assert.Equal(t, tt.want, result.DocumentStatus)
			docs.AssertCalled(t, "UpdateProcessingStatus", mock.Anything, docID, tt.want, mock.Anything)
		})
	}
}

func TestContractReconcile_AcceptsDateAliases(t *testing.T) {
	docID := uuid.New()
	_, docs, rec, con := contractFixture(docID)
	docs.On("UpdateProcessingStatus", mock.Anything, docID, mock.Anything, mock.Anything).Return(nil)

	_, err := rec.Reconcile(context.Background(), &reconcile.Input{
		DocumentID:    docID,
		ProcessedData: json.RawMessage(`{"start_date":"2025-01-01","end_date":"2026-01-01","obligations":["deliver quarterly report"]}`),
		Validation:    reconcile.Validation{Status: "valid", ConfidenceScore: 90},
		Now:           time.Now(),
	})

	require.NoError(t, err)
	require.NotNil(t, con.EffectiveDate)
	assert.Equal(t, 2025, con.EffectiveDate.Year())
	require.NotNil(t, con.ExpirationDate)
	assert.Equal(t, 2026, con.ExpirationDate.Year())
	assert.JSONEq(t, `["deliver quarterly report"]`, string(con.KeyObligations))
}

func TestContractReconcile_ExplicitNamesWinOverAliases(t *testing.T) {
	docID := uuid.New()
	_, docs, rec, con := contractFixture(docID)
	docs.On("UpdateProcessingStatus", mock.Anything, docID, mock.Anything, mock.Anything).Return(nil)

	_, err := rec.Reconcile(context.Background(), &reconcile.Input{
		DocumentID:    docID,
		ProcessedData: json.RawMessage(`{"start_date":"2020-01-01","effective_date":"2025-06-15"}`),
		Validation:    reconcile.Validation{Status: "valid"},
		Now:           time.Now(),
	})

	require.NoError(t, err)
	require.NotNil(t, con.EffectiveDate)
	assert.Equal(t, 2025, con.EffectiveDate.Year())
}

func TestContractReconcile_RiskScoreClamped(t *testing.T) {
	docID := uuid.New()
	_, docs, rec, con := contractFixture(docID)
	docs.On("UpdateProcessingStatus", mock.Anything, docID, mock.Anything, mock.Anything).Return(nil)

	_, err := rec.Reconcile(context.Background(), &reconcile.Input{
		DocumentID:    docID,
		ProcessedData: json.RawMessage(`{"risk_score":250,"requires_legal_review":true}`),
		Validation:    reconcile.Validation{Status: "valid"},
		Now:           time.Now(),
	})

	require.NoError(t, err)
	require.NotNil(t, con.RiskScore)
	assert.Equal(t, 100, *con.RiskScore)
	assert.True(t, con.RequiresLegalReview)
}
