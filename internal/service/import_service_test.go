package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alexkola94/Paire-sub001/internal/category"
	"github.com/alexkola94/Paire-sub001/internal/importer"
	"github.com/alexkola94/Paire-sub001/internal/jobs"
	"github.com/alexkola94/Paire-sub001/internal/operator/actions"
	"github.com/alexkola94/Paire-sub001/internal/reconcile"
	"github.com/alexkola94/Paire-sub001/internal/storage/transaction"
)

// mockCandidateReader is a mock for candidateReader.
type mockCandidateReader struct {
	mock.Mock
}

func (m *mockCandidateReader) ExistingExternalIDs(ctx context.Context, userID uuid.UUID, externalIDs []string) (map[string]struct{}, error) {
	args := m.Called(ctx, userID, externalIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

func (m *mockCandidateReader) ManualCandidates(ctx context.Context, userID uuid.UUID, rng transaction.CandidateRange) ([]transaction.ManualCandidate, error) {
	args := m.Called(ctx, userID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]transaction.ManualCandidate), args.Error(1)
}

func newTestImportService(t *testing.T) (*ImportService, *mockCandidateReader, *mockProcessor) {
	t.Helper()
	reader := new(mockCandidateReader)
	processor := new(mockProcessor)
	engine := reconcile.NewEngine(
		newEngineStore(reader, processor),
		category.NewClassifier(category.DefaultRules()),
		nil,
	)
	svc := NewImportService(engine, importer.DefaultRegistry(), jobs.NewStore(), nil)
	return svc, reader, processor
}

const statementCSV = "date,amount,description\n" +
	"2025-03-01,-45.00,ACME Store\n" +
	"2025-03-02,1200.00,Salary March\n"

func TestImportFile_CSV(t *testing.T) {
	svc, reader, processor := newTestImportService(t)
	userID := uuid.Must(uuid.NewV4())

	reader.On("ExistingExternalIDs", mock.Anything, userID, mock.Anything).
		Return(map[string]struct{}{}, nil)
	reader.On("ManualCandidates", mock.Anything, userID, mock.Anything).
		Return([]transaction.ManualCandidate{}, nil)

	var persisted *actions.PersistImport
	processor.On("Process", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*actions.PersistImport)
		}).Return(nil)

	jobID, result, err := svc.ImportFile(context.Background(), userID, "csv", []byte(statementCSV))

	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalImported)
	assert.Equal(t, 0, result.Errors)

	require.NotNil(t, persisted)
	require.NotNil(t, persisted.Batch, "file imports are tracked as a batch")
	assert.Equal(t, "csv", persisted.Batch.Source)
	require.Len(t, persisted.Transactions, 2)
	assert.Equal(t, transaction.TypeExpense, persisted.Transactions[0].Type)
	assert.True(t, persisted.Transactions[0].Amount.Equal(decimal.RequireFromString("45.00")))
	require.NotNil(t, persisted.Transactions[0].ExternalID)
	require.NotNil(t, persisted.Transactions[0].ImportBatchID)
	assert.Equal(t, persisted.Batch.ID, *persisted.Transactions[0].ImportBatchID)

	job, ok := svc.GetJob(jobID)
	require.True(t, ok)
	assert.Equal(t, jobs.StatusCompleted, job.Status)
	assert.Equal(t, 2, job.Result.TotalImported)
}

func TestImportFile_UnsupportedFormat(t *testing.T) {
	svc, _, processor := newTestImportService(t)

	_, _, err := svc.ImportFile(context.Background(), uuid.Must(uuid.NewV4()), "ofx", []byte("x"))

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStatement)
	assert.Contains(t, err.Error(), "unsupported format")
	processor.AssertNotCalled(t, "Process")
}

func TestImportFile_ParseError(t *testing.T) {
	svc, _, processor := newTestImportService(t)

	_, _, err := svc.ImportFile(context.Background(), uuid.Must(uuid.NewV4()), "csv", []byte("description\nno dates here\n"))

	assert.Error(t, err)
	processor.AssertNotCalled(t, "Process")
}

func TestImportFeed_SkipsManualCheck(t *testing.T) {
	svc, reader, processor := newTestImportService(t)
	userID := uuid.Must(uuid.NewV4())

	reader.On("ExistingExternalIDs", mock.Anything, userID, []string{"plaid-1"}).
		Return(map[string]struct{}{}, nil)
	processor.On("Process", mock.Anything, mock.Anything).Return(nil)

	rows := []reconcile.Row{{
		ExternalID:  "plaid-1",
		Amount:      decimal.RequireFromString("45.00"), // positive = debit for feeds
		Date:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Description: "ACME Store",
	}}

	_, result, err := svc.ImportFeed(context.Background(), userID, rows, "plaid", reconcile.PositiveDebit)

	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalImported)
	reader.AssertNotCalled(t, "ManualCandidates")
}

func TestImportFeed_EngineErrorFailsJob(t *testing.T) {
	svc, reader, _ := newTestImportService(t)
	userID := uuid.Must(uuid.NewV4())

	reader.On("ExistingExternalIDs", mock.Anything, userID, mock.Anything).
		Return(nil, errors.New("database unavailable"))

	rows := []reconcile.Row{{
		ExternalID: "plaid-1",
		Amount:     decimal.RequireFromString("45.00"),
		Date:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}}

	jobID, result, err := svc.ImportFeed(context.Background(), userID, rows, "plaid", reconcile.PositiveDebit)

	assert.Error(t, err)
	assert.Nil(t, result)

	job, ok := svc.GetJob(jobID)
	require.True(t, ok)
	assert.Equal(t, jobs.StatusFailed, job.Status)
	assert.Contains(t, job.Error, "database unavailable")
}

func TestEngineStore_ManualCandidatesConversion(t *testing.T) {
	reader := new(mockCandidateReader)
	store := newEngineStore(reader, new(mockProcessor))
	userID := uuid.Must(uuid.NewV4())

	dateMin := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	dateMax := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)

	reader.On("ManualCandidates", mock.Anything, userID, mock.MatchedBy(func(rng transaction.CandidateRange) bool {
		return rng.DateMin.Equal(dateMin) && rng.DateMax.Equal(dateMax)
	})).Return([]transaction.ManualCandidate{
		{Description: "Rent", Amount: decimal.RequireFromString("800.00")},
	}, nil)

	candidates, err := store.ManualCandidates(context.Background(), userID, reconcile.CandidateQuery{
		DateMin:   dateMin,
		DateMax:   dateMax,
		AmountMin: decimal.RequireFromString("792"),
		AmountMax: decimal.RequireFromString("808"),
	})

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Rent", candidates[0].Description)
	assert.True(t, candidates[0].Amount.Equal(decimal.RequireFromString("800.00")))
}
