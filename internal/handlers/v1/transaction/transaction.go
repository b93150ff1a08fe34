package transaction

import (
	"time"

	"github.com/alexkola94/Paire-sub001/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID              string  `json:"id" doc:"Transaction UUID"`
	UserID          string  `json:"userID" doc:"Owning user UUID"`
	Type            string  `json:"type" doc:"expense or income"`
	Amount          string  `json:"amount" doc:"Non-negative decimal amount"`
	Category        string  `json:"category" doc:"Category label"`
	Description     string  `json:"description" doc:"Description"`
	TransactionDate string  `json:"transactionDate" doc:"RFC3339 transaction date"`
	ExternalID      *string `json:"externalID,omitempty" doc:"Bank statement identifier, absent for manual entries"`
	CreatedAt       string  `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromServiceTransaction(t service.Transaction) Transaction {
	return Transaction{
		ID:              t.ID.String(),
		UserID:          t.UserID.String(),
		Type:            string(t.Type),
		Amount:          t.Amount.String(),
		Category:        t.Category,
		Description:     t.Description,
		TransactionDate: t.TransactionDate.Format(time.RFC3339),
		ExternalID:      t.ExternalID,
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
	}
}
