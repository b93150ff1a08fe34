// Package jobs tracks the status of statement import runs in memory.
package jobs

import (
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/alexkola94/Paire-sub001/internal/reconcile"
)

type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// ImportJob is the recorded state of one import run.
type ImportJob struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Status     Status
	Result     *reconcile.Result
	Error      string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// Store is a mutex-guarded job map with upsert semantics. Jobs live only
// as long as the process; they are a status surface, not an audit log.
type Store struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*ImportJob
}

func NewStore() *Store {
	return &Store{jobs: make(map[uuid.UUID]*ImportJob)}
}

// Start registers a new running job and returns its id.
func (s *Store) Start(userID uuid.UUID) uuid.UUID {
	id := uuid.Must(uuid.NewV4())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[id] = &ImportJob{
		ID:        id,
		UserID:    userID,
		Status:    StatusRunning,
		StartedAt: time.Now().UTC(),
	}
	return id
}

// Complete marks the job completed with its result. Unknown ids are
// ignored.
func (s *Store) Complete(id uuid.UUID, result *reconcile.Result) {
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		job.Status = StatusCompleted
		job.Result = result
		job.FinishedAt = &now
	}
}

// Fail marks the job failed with the error message. Unknown ids are
// ignored.
func (s *Store) Fail(id uuid.UUID, err error) {
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		job.Status = StatusFailed
		job.Error = err.Error()
		job.FinishedAt = &now
	}
}

// Get returns a snapshot of the job, or false when the id is unknown.
func (s *Store) Get(id uuid.UUID) (ImportJob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return ImportJob{}, false
	}
	return *job, true
}
