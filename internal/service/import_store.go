package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/alexkola94/Paire-sub001/internal/operator/actions"
	"github.com/alexkola94/Paire-sub001/internal/reconcile"
	"github.com/alexkola94/Paire-sub001/internal/storage/importbatch"
	"github.com/alexkola94/Paire-sub001/internal/storage/transaction"
)

// candidateReader is the read side the engine store needs from storage.
type candidateReader interface {
	ExistingExternalIDs(ctx context.Context, userID uuid.UUID, externalIDs []string) (map[string]struct{}, error)
	ManualCandidates(ctx context.Context, userID uuid.UUID, rng transaction.CandidateRange) ([]transaction.ManualCandidate, error)
}

var _ reconcile.Store = (*engineStore)(nil)

// engineStore adapts the storage layer and the operator to the
// reconciliation engine's persistence boundary. Reads go straight to the
// reader (committed state); the single persistence step is submitted to
// the operator, which runs it inside one database transaction.
type engineStore struct {
	reader   candidateReader
	operator actionProcessor
}

func newEngineStore(reader candidateReader, op actionProcessor) *engineStore {
	return &engineStore{reader: reader, operator: op}
}

func (s *engineStore) ExistingExternalIDs(ctx context.Context, userID uuid.UUID, externalIDs []string) (map[string]struct{}, error) {
	return s.reader.ExistingExternalIDs(ctx, userID, externalIDs)
}

func (s *engineStore) ManualCandidates(ctx context.Context, userID uuid.UUID, query reconcile.CandidateQuery) ([]reconcile.Candidate, error) {
	rows, err := s.reader.ManualCandidates(ctx, userID, transaction.CandidateRange{
		DateMin:   query.DateMin,
		DateMax:   query.DateMax,
		AmountMin: query.AmountMin,
		AmountMax: query.AmountMax,
	})
	if err != nil {
		return nil, err
	}

	candidates := make([]reconcile.Candidate, len(rows))
	for i, row := range rows {
		candidates[i] = reconcile.Candidate{
			Description: row.Description,
			Amount:      row.Amount,
		}
	}
	return candidates, nil
}

func (s *engineStore) SaveImport(ctx context.Context, userID uuid.UUID, batch *reconcile.Batch, transactions []reconcile.NewTransaction) error {
	action := &actions.PersistImport{
		Transactions: make([]*transaction.TransactionCreate, len(transactions)),
	}
	if batch != nil {
		action.Batch = &importbatch.ImportBatch{
			ID:        batch.ID,
			UserID:    batch.UserID,
			Source:    batch.Source,
			CreatedAt: batch.CreatedAt,
		}
	}
	for i, tx := range transactions {
		externalID := tx.ExternalID
		action.Transactions[i] = &transaction.TransactionCreate{
			UserID:          tx.UserID,
			Type:            transaction.Type(tx.Type),
			Amount:          tx.Amount,
			Category:        tx.Category,
			Description:     tx.Description,
			TransactionDate: tx.Date,
			ExternalID:      &externalID,
			ImportBatchID:   tx.ImportBatchID,
		}
	}

	return s.operator.Process(ctx, action)
}
