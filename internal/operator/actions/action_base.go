package actions

import (
	"context"

	"github.com/alexkola94/Paire-sub001/internal/storage"
)

type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
