package importbatch

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// ImportBatch groups the transactions created by one import run.
type ImportBatch struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Source    string    `db:"source"`
	CreatedAt time.Time `db:"created_at"`
}
