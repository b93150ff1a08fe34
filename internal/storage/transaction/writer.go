package transaction

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/scan"
)

var insertColumns = []string{
	"user_id", "type", "amount", "category", "description",
	"transaction_date", "external_id", "import_batch_id",
}

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Insert creates a single transaction and returns its generated id.
func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	query := psql.Insert(
		im.Into("transactions", insertColumns...),
		im.Values(insertArgs(create)),
		im.Returning("id"),
	)

	id, err := bob.One(ctx, w.tx, query, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// InsertMany creates all transactions in one statement. Used by the
// import path so an entire statement lands in a single round trip.
func (w *Writer) InsertMany(ctx context.Context, creates []*TransactionCreate) error {
	if len(creates) == 0 {
		return nil
	}

	queryMods := []bob.Mod[*dialect.InsertQuery]{
		im.Into("transactions", insertColumns...),
	}
	for _, create := range creates {
		queryMods = append(queryMods, im.Values(insertArgs(create)))
	}

	_, err := bob.Exec(ctx, w.tx, psql.Insert(queryMods...))
	return err
}

func insertArgs(create *TransactionCreate) bob.Expression {
	return psql.Arg(
		create.UserID,
		string(create.Type),
		create.Amount,
		create.Category,
		create.Description,
		create.TransactionDate,
		nullableString(create.ExternalID),
		nullableUUID(create.ImportBatchID),
	)
}

// database/sql does not dereference typed nil pointers for us, so NULLs
// are passed explicitly.
func nullableString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullableUUID(p *uuid.UUID) any {
	if p == nil {
		return nil
	}
	return *p
}
