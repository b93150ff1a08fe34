package importbatch

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
)

type Writer struct {
	tx bob.Tx
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{tx: tx}
}

// Insert records an import batch. The batch id is caller-supplied so the
// transactions inserted in the same database transaction can reference it.
func (w *Writer) Insert(ctx context.Context, batch *ImportBatch) error {
	query := psql.Insert(
		im.Into("import_batches", "id", "user_id", "source", "created_at"),
		im.Values(psql.Arg(batch.ID, batch.UserID, batch.Source, batch.CreatedAt)),
	)

	_, err := bob.Exec(ctx, w.tx, query)
	return err
}
