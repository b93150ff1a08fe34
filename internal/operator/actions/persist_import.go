package actions

import (
	"context"

	"github.com/alexkola94/Paire-sub001/internal/storage"
	"github.com/alexkola94/Paire-sub001/internal/storage/importbatch"
	"github.com/alexkola94/Paire-sub001/internal/storage/transaction"
)

// PersistImport persists one reconciled statement import as a single
// unit: the batch record first (when supplied), so the transactions can
// reference its id, then every transaction in one bulk insert. The
// operator wraps Perform in a database transaction, so either everything
// commits or nothing does.
type PersistImport struct {
	Batch        *importbatch.ImportBatch
	Transactions []*transaction.TransactionCreate
}

func (p *PersistImport) Perform(ctx context.Context, writer *storage.Writer) error {
	if p.Batch != nil {
		if err := writer.ImportBatch.Insert(ctx, p.Batch); err != nil {
			return err
		}
	}
	return writer.Transaction.InsertMany(ctx, p.Transactions)
}
