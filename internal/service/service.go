package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/alexkola94/Paire-sub001/internal/category"
	"github.com/alexkola94/Paire-sub001/internal/importer"
	"github.com/alexkola94/Paire-sub001/internal/jobs"
	"github.com/alexkola94/Paire-sub001/internal/operator"
	"github.com/alexkola94/Paire-sub001/internal/operator/actions"
	"github.com/alexkola94/Paire-sub001/internal/reconcile"
	"github.com/alexkola94/Paire-sub001/internal/storage"
)

// actionProcessor submits an action to the operator for processing inside
// a database transaction.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Import      *ImportService
}

// NewService creates a new Service wired to the given storage and
// operator.
func NewService(store *storage.Storage, op *operator.OperatorDelegator, logger *logrus.Logger) *Service {
	reader := store.Read().Transactions
	engine := reconcile.NewEngine(
		newEngineStore(reader, op),
		category.NewClassifier(category.DefaultRules()),
		logger,
	)

	return &Service{
		Transaction: NewTransactionService(reader, op),
		Import:      NewImportService(engine, importer.DefaultRegistry(), jobs.NewStore(), logger),
	}
}
