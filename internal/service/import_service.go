package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/alexkola94/Paire-sub001/internal/importer"
	"github.com/alexkola94/Paire-sub001/internal/jobs"
	"github.com/alexkola94/Paire-sub001/internal/reconcile"
)

// ErrInvalidStatement marks failures caused by the uploaded statement
// itself rather than by the backend.
var ErrInvalidStatement = errors.New("invalid statement")

// ImportService drives statement imports: feed rows or uploaded files go
// through the reconciliation engine, and every run is tracked in the job
// store.
type ImportService struct {
	engine   *reconcile.Engine
	registry *importer.Registry
	jobs     *jobs.Store
	logger   *logrus.Logger
}

// NewImportService creates a new ImportService.
func NewImportService(engine *reconcile.Engine, registry *importer.Registry, jobStore *jobs.Store, logger *logrus.Logger) *ImportService {
	return &ImportService{
		engine:   engine,
		registry: registry,
		jobs:     jobStore,
		logger:   logger,
	}
}

// ImportFeed reconciles rows delivered by an aggregator feed. Feed rows
// carry source-supplied external identifiers, so the manual-duplicate
// check is skipped; only the exact-reimport check applies. The sign
// convention is the caller's because feeds disagree about it.
func (s *ImportService) ImportFeed(ctx context.Context, userID uuid.UUID, rows []reconcile.Row, source string, convention reconcile.SignConvention) (uuid.UUID, *reconcile.Result, error) {
	return s.run(ctx, userID, rows, reconcile.Options{
		Convention: convention,
		BatchMeta:  &reconcile.BatchMeta{Source: source},
	})
}

// ImportFile parses an uploaded statement file and reconciles its rows.
// Bulk statements overlap with what the user already typed in by hand, so
// the manual-duplicate check is enabled. Statement files use the signed
// amount convention.
func (s *ImportService) ImportFile(ctx context.Context, userID uuid.UUID, format string, content []byte) (uuid.UUID, *reconcile.Result, error) {
	parser := s.registry.Get(format)
	if parser == nil {
		return uuid.Nil, nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidStatement, format)
	}

	rows, err := parser.Parse(bytes.NewReader(content))
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("%w: parsing %s statement: %v", ErrInvalidStatement, format, err)
	}

	return s.run(ctx, userID, rows, reconcile.Options{
		Convention:  reconcile.SignedAmount,
		ManualCheck: true,
		BatchMeta:   &reconcile.BatchMeta{Source: format},
	})
}

// GetJob returns the status of an import run.
func (s *ImportService) GetJob(id uuid.UUID) (jobs.ImportJob, bool) {
	return s.jobs.Get(id)
}

func (s *ImportService) run(ctx context.Context, userID uuid.UUID, rows []reconcile.Row, opts reconcile.Options) (uuid.UUID, *reconcile.Result, error) {
	jobID := s.jobs.Start(userID)

	result, err := s.engine.Reconcile(ctx, userID, rows, opts)
	if err != nil {
		s.jobs.Fail(jobID, err)
		return jobID, nil, err
	}

	s.jobs.Complete(jobID, result)
	return jobID, result, nil
}
