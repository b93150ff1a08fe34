package transaction

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// ExistingExternalIDs returns the subset of externalIDs already recorded
// for the user, as a membership set. One query per import batch, not one
// per row.
func (r *Reader) ExistingExternalIDs(ctx context.Context, userID uuid.UUID, externalIDs []string) (map[string]struct{}, error) {
	if len(externalIDs) == 0 {
		return map[string]struct{}{}, nil
	}

	args := make([]any, len(externalIDs))
	for i, id := range externalIDs {
		args[i] = id
	}

	query := psql.Select(
		sm.Columns("external_id"),
		sm.From("transactions"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("external_id").IsNotNull()),
		sm.Where(psql.Quote("external_id").In(psql.Arg(args...))),
	)

	found, err := bob.All(ctx, r.exec, query, scan.SingleColumnMapper[string])
	if err != nil {
		return nil, err
	}

	existing := make(map[string]struct{}, len(found))
	for _, id := range found {
		existing[id] = struct{}{}
	}
	return existing, nil
}

// ManualCandidates returns manually entered transactions (never imported,
// never batch-tagged) for the user within the date and amount window.
func (r *Reader) ManualCandidates(ctx context.Context, userID uuid.UUID, rng CandidateRange) ([]ManualCandidate, error) {
	query := psql.Select(
		sm.Columns("description", "amount"),
		sm.From("transactions"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("external_id").IsNull()),
		sm.Where(psql.Quote("import_batch_id").IsNull()),
		sm.Where(psql.Quote("transaction_date").GTE(psql.Arg(rng.DateMin))),
		sm.Where(psql.Quote("transaction_date").LTE(psql.Arg(rng.DateMax))),
		sm.Where(psql.Quote("amount").GTE(psql.Arg(rng.AmountMin))),
		sm.Where(psql.Quote("amount").LTE(psql.Arg(rng.AmountMax))),
	)

	return bob.All(ctx, r.exec, query, scan.StructMapper[ManualCandidate]())
}

// List returns the user's transactions matching the filter, newest first.
// One extra row beyond Limit is fetched so callers can detect another page.
func (r *Reader) List(ctx context.Context, userID uuid.UUID, filter *TransactionFilter) ([]Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns("id", "user_id", "type", "amount", "category", "description",
			"transaction_date", "external_id", "import_batch_id", "created_at", "updated_at"),
		sm.From("transactions"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	}
	if filter != nil {
		if filter.MaxCreationTime != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("created_at").LTE(psql.Arg(*filter.MaxCreationTime))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
	)

	return bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[Transaction]())
}
