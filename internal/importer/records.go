package importer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alexkola94/Paire-sub001/internal/reconcile"
)

// columnLayout maps statement columns to their position. date and amount
// are required; the rest are optional (-1 when absent).
type columnLayout struct {
	date        int
	amount      int
	description int
	category    int
	externalID  int
}

func layoutFromHeader(header []string) (columnLayout, error) {
	layout := columnLayout{date: -1, amount: -1, description: -1, category: -1, externalID: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date", "transaction_date":
			layout.date = i
		case "amount":
			layout.amount = i
		case "description", "name", "memo":
			layout.description = i
		case "category":
			layout.category = i
		case "id", "external_id", "reference":
			layout.externalID = i
		}
	}
	if layout.date < 0 || layout.amount < 0 {
		return layout, fmt.Errorf("header %v is missing a date or amount column", header)
	}
	return layout, nil
}

func field(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

// rowsFromRecords converts raw statement records (header row first) into
// reconcile rows. Rows without a source-supplied identifier get a
// deterministic synthesized one so re-imports of the same statement
// dedupe.
func rowsFromRecords(source string, records [][]string) ([]reconcile.Row, error) {
	if len(records) <= 1 {
		return nil, nil
	}

	layout, err := layoutFromHeader(records[0])
	if err != nil {
		return nil, err
	}

	var rows []reconcile.Row
	for i, record := range records[1:] {
		row, err := rowFromRecord(source, layout, record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func rowFromRecord(source string, layout columnLayout, record []string) (reconcile.Row, error) {
	date, err := parseStatementDate(field(record, layout.date))
	if err != nil {
		return reconcile.Row{}, err
	}

	rawAmount := field(record, layout.amount)
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return reconcile.Row{}, fmt.Errorf("parsing amount %q: %w", rawAmount, err)
	}

	description := field(record, layout.description)
	externalID := field(record, layout.externalID)
	if externalID == "" {
		externalID = SynthesizeExternalID(source, date, amount, description)
	}

	return reconcile.Row{
		ExternalID:  externalID,
		Amount:      amount,
		Date:        date,
		Description: description,
		Category:    field(record, layout.category),
	}, nil
}
