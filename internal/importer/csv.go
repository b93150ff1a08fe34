package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/alexkola94/Paire-sub001/internal/reconcile"
)

// CSVParser parses generic bank statement CSV exports with a header row.
// Recognized columns: date, amount, description, category, id.
type CSVParser struct{}

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads a statement CSV and returns reconcile rows.
func (p *CSVParser) Parse(r io.Reader) ([]reconcile.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}

	return rowsFromRecords(p.Format(), records)
}
