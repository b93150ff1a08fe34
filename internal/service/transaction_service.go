package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/alexkola94/Paire-sub001/internal/category"
	"github.com/alexkola94/Paire-sub001/internal/operator/actions"
	"github.com/alexkola94/Paire-sub001/internal/storage/transaction"
)

const defaultListLimit = 20

// TransactionType represents a transaction direction in the service
// layer.
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Type            TransactionType
	Amount          decimal.Decimal
	Category        string
	Description     string
	TransactionDate time.Time
	ExternalID      *string
	CreatedAt       time.Time
}

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are
// consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

// transactionLister is the read side TransactionService needs from
// storage.
type transactionLister interface {
	List(ctx context.Context, userID uuid.UUID, filter *transaction.TransactionFilter) ([]transaction.Transaction, error)
}

// TransactionService handles manual transaction entry and listing.
type TransactionService struct {
	reader   transactionLister
	operator actionProcessor
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(reader transactionLister, op actionProcessor) *TransactionService {
	return &TransactionService{reader: reader, operator: op}
}

// CreateTransaction records a manually entered transaction and returns
// its ID. Manual entries are stored with a non-negative amount; the
// direction is carried by the type.
func (s *TransactionService) CreateTransaction(ctx context.Context, tx Transaction) (uuid.UUID, error) {
	if tx.Type != TransactionTypeExpense && tx.Type != TransactionTypeIncome {
		return uuid.Nil, fmt.Errorf("unknown transaction type %q", tx.Type)
	}
	if tx.Amount.IsNegative() {
		return uuid.Nil, fmt.Errorf("amount must be non-negative, got %s", tx.Amount)
	}
	if tx.Category == "" {
		tx.Category = category.Fallback
	}

	action := &actions.CreateTransaction{
		UserID:          tx.UserID,
		Type:            transaction.Type(tx.Type),
		Amount:          tx.Amount,
		Category:        tx.Category,
		Description:     tx.Description,
		TransactionDate: tx.TransactionDate,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.ID, nil
}

// ListTransactions returns a page of the user's transactions using
// cursor-based pagination.
func (s *TransactionService) ListTransactions(ctx context.Context, userID uuid.UUID, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	limit := defaultListLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		maxCreationTime = &cursor.MaxCreationTime
	}

	filter := &transaction.TransactionFilter{
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}

	rows, err := s.reader.List(ctx, userID, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := rows[0].CreatedAt
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	converted := make([]Transaction, len(rows))
	for i, row := range rows {
		converted[i] = Transaction{
			ID:              row.ID,
			UserID:          row.UserID,
			Type:            TransactionType(row.Type),
			Amount:          row.Amount,
			Category:        row.Category,
			Description:     row.Description,
			TransactionDate: row.TransactionDate,
			ExternalID:      row.ExternalID,
			CreatedAt:       row.CreatedAt,
		}
	}

	return converted, nextCursor, nil
}
