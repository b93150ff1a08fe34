// Package reconcile decides, for each row of an externally sourced bank
// statement, whether it is a re-import of a previously imported row, a
// near-duplicate of a transaction the user already entered by hand, or a
// new transaction to persist.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/alexkola94/Paire-sub001/internal/category"
)

// SignConvention names how a source encodes the direction of money
// movement in the amount's sign. Different sources disagree, so the
// convention is an explicit parameter of the mapping step.
type SignConvention int

const (
	// SignedAmount: negative amount means money leaving (expense),
	// non-negative means income. Used by generic CSV/Excel statements.
	SignedAmount SignConvention = iota
	// PositiveDebit: positive amount means money leaving (expense),
	// negative means income. Used by aggregator feeds.
	PositiveDebit
)

// TransactionType is the stored direction of a transaction. The stored
// amount is always non-negative; the sign lives here.
type TransactionType string

const (
	TypeExpense TransactionType = "expense"
	TypeIncome  TransactionType = "income"
)

// defaultDescription is stored when a source row has no description.
const defaultDescription = "Imported transaction"

// manualMatchWindowDays is how far either side of a row's date the store
// is searched for manual-duplicate candidates.
const manualMatchWindowDays = 3

// Row is one externally sourced statement row. It is consumed once per
// import batch and never persisted as-is.
type Row struct {
	ExternalID  string
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	Category    string
}

// NewTransaction is a mapped row ready to be persisted. The store assigns
// the database id.
type NewTransaction struct {
	UserID        uuid.UUID
	Type          TransactionType
	Amount        decimal.Decimal
	Category      string
	Description   string
	Date          time.Time
	ExternalID    string
	ImportBatchID *uuid.UUID
}

// Batch groups the transactions created by one import run.
type Batch struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Source    string
	CreatedAt time.Time
}

// BatchMeta is caller-supplied metadata. When present, one Batch is
// persisted before the transactions so they can reference its id.
type BatchMeta struct {
	Source string
}

// Options configure one Reconcile call.
type Options struct {
	// Convention maps the row amount's sign onto expense/income.
	Convention SignConvention
	// ManualCheck enables the near-duplicate search against manually
	// entered transactions. Bulk statement imports turn this on; live
	// feed imports leave it off.
	ManualCheck bool
	// BatchMeta, when non-nil, records the import run as a Batch.
	BatchMeta *BatchMeta
}

// Result reports what one Reconcile call did, including row-level
// failures. Callers must inspect Errors and ErrorMessages; partial
// problems never surface as a returned error.
type Result struct {
	TotalImported           int
	DuplicatesSkipped       int
	ManualDuplicatesSkipped int
	Errors                  int
	ErrorMessages           []string
	LastTransactionDate     *time.Time
}

// Candidate is a manually entered transaction fetched from the store for
// the in-memory near-duplicate re-test.
type Candidate struct {
	Description string
	Amount      decimal.Decimal
}

// CandidateQuery is the widened window used to fetch Candidates.
type CandidateQuery struct {
	DateMin   time.Time
	DateMax   time.Time
	AmountMin decimal.Decimal
	AmountMax decimal.Decimal
}

// Store is the persistence boundary the engine depends on. SaveImport
// persists the batch record (when non-nil) and all transactions as a
// single unit: either everything commits or nothing does.
type Store interface {
	ExistingExternalIDs(ctx context.Context, userID uuid.UUID, externalIDs []string) (map[string]struct{}, error)
	ManualCandidates(ctx context.Context, userID uuid.UUID, query CandidateQuery) ([]Candidate, error)
	SaveImport(ctx context.Context, userID uuid.UUID, batch *Batch, transactions []NewTransaction) error
}

// Engine is the statement reconciliation engine. It holds no state across
// calls; all per-call state is local to Reconcile.
type Engine struct {
	store      Store
	classifier *category.Classifier
	logger     *logrus.Logger
}

// NewEngine creates an Engine. A nil logger disables logging.
func NewEngine(store Store, classifier *category.Classifier, logger *logrus.Logger) *Engine {
	return &Engine{
		store:      store,
		classifier: classifier,
		logger:     logger,
	}
}

// Reconcile processes one statement for one user. An empty row list
// short-circuits to an all-zero result with no store calls. Row-level
// mapping failures are counted and recorded; only store failures return
// an error, in which case nothing has been committed.
//
// Cancelling ctx stops further row processing; rows already decided are
// still handed to the store in the single persistence step, which runs
// detached from the cancellation.
func (e *Engine) Reconcile(ctx context.Context, userID uuid.UUID, rows []Row, opts Options) (*Result, error) {
	result := &Result{}
	if len(rows) == 0 {
		return result, nil
	}

	externalIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.ExternalID != "" {
			externalIDs = append(externalIDs, row.ExternalID)
		}
	}

	existing := map[string]struct{}{}
	if len(externalIDs) > 0 {
		var err error
		existing, err = e.store.ExistingExternalIDs(ctx, userID, externalIDs)
		if err != nil {
			return nil, fmt.Errorf("looking up imported external ids: %w", err)
		}
	}

	var batch *Batch
	if opts.BatchMeta != nil {
		batch = &Batch{
			ID:        uuid.Must(uuid.NewV4()),
			UserID:    userID,
			Source:    opts.BatchMeta.Source,
			CreatedAt: time.Now().UTC(),
		}
	}

	var pending []NewTransaction
	var lastDate time.Time
	// Statements repeat external ids within one batch too: synthesized ids
	// collide for identical same-day rows, and feeds resend rows. Only the
	// first occurrence is queued so the insert cannot trip the unique index.
	queued := make(map[string]struct{})
	for _, row := range rows {
		if ctx.Err() != nil {
			break
		}

		if row.ExternalID != "" {
			if _, ok := existing[row.ExternalID]; ok {
				result.DuplicatesSkipped++
				continue
			}
			if _, ok := queued[row.ExternalID]; ok {
				result.DuplicatesSkipped++
				continue
			}
		}

		if opts.ManualCheck {
			isDup, err := e.matchesManualEntry(ctx, userID, row)
			if err != nil {
				return nil, fmt.Errorf("searching manual duplicates: %w", err)
			}
			if isDup {
				result.DuplicatesSkipped++
				result.ManualDuplicatesSkipped++
				continue
			}
		}

		mapped, err := e.mapRow(userID, row, opts.Convention, batch)
		if err != nil {
			result.Errors++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("skipping row %q: %v", row.Description, err))
			continue
		}

		pending = append(pending, mapped)
		queued[mapped.ExternalID] = struct{}{}
		if mapped.Date.After(lastDate) {
			lastDate = mapped.Date
		}
	}

	if len(pending) > 0 {
		// Rows decided before a cancellation still count; the persistence
		// step runs detached from ctx's cancellation so they are not lost.
		if err := e.store.SaveImport(context.WithoutCancel(ctx), userID, batch, pending); err != nil {
			return nil, fmt.Errorf("persisting import: %w", err)
		}
		result.TotalImported = len(pending)
		result.LastTransactionDate = &lastDate
	}

	if e.logger != nil {
		e.logger.WithFields(logrus.Fields{
			"userID":            userID,
			"imported":          result.TotalImported,
			"duplicatesSkipped": result.DuplicatesSkipped,
			"manualDuplicates":  result.ManualDuplicatesSkipped,
			"rowErrors":         result.Errors,
		}).Info("Reconcile.Complete")
	}
	return result, nil
}

// matchesManualEntry reports whether row duplicates a manually entered
// transaction: within ±3 days, within amount tolerance, and with a
// matching description. The store query uses a widened amount window; the
// exact tolerance is re-evaluated here per candidate.
func (e *Engine) matchesManualEntry(ctx context.Context, userID uuid.UUID, row Row) (bool, error) {
	amount := row.Amount.Abs()
	amountMin, amountMax := candidateWindow(amount)

	candidates, err := e.store.ManualCandidates(ctx, userID, CandidateQuery{
		DateMin:   row.Date.AddDate(0, 0, -manualMatchWindowDays),
		DateMax:   row.Date.AddDate(0, 0, manualMatchWindowDays),
		AmountMin: amountMin,
		AmountMax: amountMax,
	})
	if err != nil {
		return false, err
	}

	for _, candidate := range candidates {
		if amountsMatch(candidate.Amount, amount) && descriptionsMatch(candidate.Description, row.Description) {
			return true, nil
		}
	}
	return false, nil
}

// mapRow maps a statement row into the internal transaction
// representation: sign convention applied, amount made non-negative, date
// normalized to UTC, category classified.
func (e *Engine) mapRow(userID uuid.UUID, row Row, convention SignConvention, batch *Batch) (NewTransaction, error) {
	if row.ExternalID == "" {
		return NewTransaction{}, errors.New("missing external identifier")
	}
	if row.Date.IsZero() {
		return NewTransaction{}, errors.New("missing date")
	}

	transactionType := TypeIncome
	switch convention {
	case SignedAmount:
		if row.Amount.IsNegative() {
			transactionType = TypeExpense
		}
	case PositiveDebit:
		if row.Amount.IsPositive() {
			transactionType = TypeExpense
		}
	default:
		return NewTransaction{}, fmt.Errorf("unknown sign convention %d", convention)
	}

	description := row.Description
	if strings.TrimSpace(description) == "" {
		description = defaultDescription
	}

	mapped := NewTransaction{
		UserID:      userID,
		Type:        transactionType,
		Amount:      row.Amount.Abs(),
		Category:    e.classifier.Classify(row.Category, description),
		Description: description,
		Date:        row.Date.UTC(),
		ExternalID:  row.ExternalID,
	}
	if batch != nil {
		mapped.ImportBatchID = &batch.ID
	}
	return mapped, nil
}
