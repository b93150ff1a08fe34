package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/alexkola94/Paire-sub001/internal/storage/transaction"
)

type Reader struct {
	Transactions *transaction.Reader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Transactions: transaction.NewReader(exec),
	}
}
