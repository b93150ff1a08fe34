package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/alexkola94/Paire-sub001/internal/storage"
	"github.com/alexkola94/Paire-sub001/internal/storage/transaction"
)

// CreateTransaction records a manually entered transaction. Manual entries
// carry no external id and no import batch, which is what marks them as
// candidates for the import near-duplicate check later.
type CreateTransaction struct {
	UserID          uuid.UUID
	Type            transaction.Type
	Amount          decimal.Decimal
	Category        string
	Description     string
	TransactionDate time.Time

	// ID is set after a successful Perform.
	ID uuid.UUID
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	transactionDate := t.TransactionDate
	if transactionDate.IsZero() {
		transactionDate = time.Now().UTC()
	}

	id, err := writer.Transaction.Insert(ctx, &transaction.TransactionCreate{
		UserID:          t.UserID,
		Type:            t.Type,
		Amount:          t.Amount,
		Category:        t.Category,
		Description:     t.Description,
		TransactionDate: transactionDate,
	})
	if err != nil {
		return err
	}

	t.ID = id
	return nil
}
