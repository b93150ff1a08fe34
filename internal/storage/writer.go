package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/alexkola94/Paire-sub001/internal/storage/importbatch"
	"github.com/alexkola94/Paire-sub001/internal/storage/transaction"
)

type Writer struct {
	tx          bob.Tx
	Transaction *transaction.Writer
	ImportBatch *importbatch.Writer
}

func NewWriter(tx bob.Tx) Writer {
	return Writer{
		tx:          tx,
		Transaction: transaction.NewWriter(tx),
		ImportBatch: importbatch.NewWriter(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
