// Package importer turns uploaded statement files into reconcile rows.
package importer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexkola94/Paire-sub001/internal/reconcile"
)

// Parser converts a statement file into reconcile rows.
type Parser interface {
	Parse(r io.Reader) ([]reconcile.Row, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVParser{})
	r.Register(&XLSXParser{})
	return r
}

// SynthesizeExternalID derives a stable identifier for a statement row
// whose source supplies none. The same date, amount, and description
// always produce the same id, so repeated imports of the same statement
// dedupe against each other.
func SynthesizeExternalID(source string, date time.Time, amount decimal.Decimal, description string) string {
	sum := sha256.Sum256([]byte(date.UTC().Format("2006-01-02") + "|" + amount.String() + "|" + description))
	return source + "_" + hex.EncodeToString(sum[:])[:16]
}

// statementDateFormats are tried in order when parsing row dates. Formats
// without a zone are treated as already UTC.
var statementDateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
}

func parseStatementDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range statementDateFormats {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
