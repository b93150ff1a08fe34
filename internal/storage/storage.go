package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stephenafamo/bob"

	"github.com/alexkola94/Paire-sub001/internal/config"
)

type Storage struct {
	DB  *sql.DB
	bob bob.DB
}

func NewStorage(env *config.Config) *Storage {
	connStr := "postgres://" + env.PostgresUsername + ":" +
		env.PostgresPassword + "@" + env.PostgresAddress + ":" +
		env.PostgresPort + "/" + env.PostgresDB + "?sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		logrus.WithError(err).Fatal("sql.Open")
	}

	return &Storage{
		DB:  db,
		bob: bob.NewDB(db),
	}
}

// Read returns a Reader over the shared connection pool.
func (s *Storage) Read() *Reader {
	return NewReader(s.bob)
}

// Write begins a database transaction and returns a Writer bound to it.
// The caller owns Commit/Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bob.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	writer := NewWriter(tx)
	return &writer, nil
}
