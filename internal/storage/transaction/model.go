package transaction

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Type is the stored direction of a transaction. Amounts are always
// non-negative; the sign lives here.
type Type string

const (
	TypeExpense Type = "expense"
	TypeIncome  Type = "income"
)

// Transaction represents a transaction record. ExternalID is set only for
// bank-sourced rows and ImportBatchID only for rows ingested as part of a
// tracked import; both are nil for manual entries.
type Transaction struct {
	ID              uuid.UUID       `db:"id"`
	UserID          uuid.UUID       `db:"user_id"`
	Type            Type            `db:"type"`
	Amount          decimal.Decimal `db:"amount"`
	Category        string          `db:"category"`
	Description     string          `db:"description"`
	TransactionDate time.Time       `db:"transaction_date"`
	ExternalID      *string         `db:"external_id"`
	ImportBatchID   *uuid.UUID      `db:"import_batch_id"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	UserID          uuid.UUID
	Type            Type
	Amount          decimal.Decimal
	Category        string
	Description     string
	TransactionDate time.Time
	ExternalID      *string
	ImportBatchID   *uuid.UUID
}

// ManualCandidate is a manually entered transaction returned by the
// near-duplicate candidate query. Only the fields the in-memory re-test
// reads are selected.
type ManualCandidate struct {
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
}

// CandidateRange bounds the manual-duplicate candidate query.
type CandidateRange struct {
	DateMin   time.Time
	DateMax   time.Time
	AmountMin decimal.Decimal
	AmountMax decimal.Decimal
}

// TransactionFilter specifies filters for listing a user's transactions.
type TransactionFilter struct {
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}
