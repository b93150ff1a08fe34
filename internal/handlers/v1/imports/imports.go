// Package imports exposes the statement import endpoints: feed row
// imports, statement file uploads, and import job status.
package imports

import (
	"time"

	"github.com/alexkola94/Paire-sub001/internal/reconcile"
)

// ImportResult is the API model of a reconciliation outcome.
type ImportResult struct {
	TotalImported           int      `json:"totalImported" doc:"Rows persisted as new transactions"`
	DuplicatesSkipped       int      `json:"duplicatesSkipped" doc:"Rows skipped as exact re-imports"`
	ManualDuplicatesSkipped int      `json:"manualDuplicatesSkipped" doc:"Rows skipped as near-duplicates of manual entries"`
	Errors                  int      `json:"errors" doc:"Rows skipped because they could not be mapped"`
	ErrorMessages           []string `json:"errorMessages,omitempty" doc:"One message per skipped row"`
	LastTransactionDate     *string  `json:"lastTransactionDate,omitempty" doc:"RFC3339 date of the newest imported transaction"`
}

func fromReconcileResult(r *reconcile.Result) *ImportResult {
	if r == nil {
		return nil
	}
	out := &ImportResult{
		TotalImported:           r.TotalImported,
		DuplicatesSkipped:       r.DuplicatesSkipped,
		ManualDuplicatesSkipped: r.ManualDuplicatesSkipped,
		Errors:                  r.Errors,
		ErrorMessages:           r.ErrorMessages,
	}
	if r.LastTransactionDate != nil {
		formatted := r.LastTransactionDate.Format(time.RFC3339)
		out.LastTransactionDate = &formatted
	}
	return out
}

// parseRowDate accepts RFC3339 timestamps and bare dates, which is what
// aggregator feeds actually send.
func parseRowDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", value, time.UTC)
}
