package reconcile

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Bank statement descriptions carry a lot of noise (processing keywords,
// references, dates) around the merchant name. These patterns strip the
// noise before two descriptions are compared.
var (
	boilerplateRe   = regexp.MustCompile(`(?i)\b(?:(?:DEBIT|CREDIT|SEPA)\b|REF:\S+)`)
	dateTokenRe     = regexp.MustCompile(`\d{1,2}/\d{1,2}(?:/\d{2,4})?`)
	nonAlphaNumRe   = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	whitespaceRunRe = regexp.MustCompile(`\s+`)
)

// centTolerance is the absolute amount tolerance for a manual-duplicate
// match: anything under one cent apart counts as the same amount.
var centTolerance = decimal.NewFromFloat(0.01)

// relativeTolerance is the relative amount tolerance (1% of the larger of
// the two amounts).
var relativeTolerance = decimal.NewFromFloat(0.01)

// normalizeDescription reduces a statement description to a comparable
// form: lowercased, processing boilerplate and date-like tokens removed,
// punctuation removed, whitespace collapsed.
func normalizeDescription(s string) string {
	s = strings.ToLower(s)
	s = boilerplateRe.ReplaceAllString(s, " ")
	s = dateTokenRe.ReplaceAllString(s, " ")
	s = nonAlphaNumRe.ReplaceAllString(s, "")
	s = whitespaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// descriptionsMatch reports whether two raw descriptions refer to the same
// movement. After normalization the descriptions match when either is
// empty (date and amount alone decide then), when one contains the other,
// or when they share at least one word longer than two characters.
//
// The either-empty rule is deliberately permissive so that minimal manual
// entries (amount only, no description) still pair up with statement rows.
func descriptionsMatch(a, b string) bool {
	na := normalizeDescription(a)
	nb := normalizeDescription(b)

	if na == "" || nb == "" {
		return true
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}

	seen := make(map[string]struct{})
	for _, w := range strings.Fields(na) {
		if len(w) > 2 {
			seen[w] = struct{}{}
		}
	}
	for _, w := range strings.Fields(nb) {
		if len(w) <= 2 {
			continue
		}
		if _, ok := seen[w]; ok {
			return true
		}
	}
	return false
}

// amountsMatch reports whether a candidate amount matches an imported
// amount: less than one cent apart, or within 1% of the larger of the two.
// Both inputs are expected to be non-negative.
func amountsMatch(a, b decimal.Decimal) bool {
	diff := a.Sub(b).Abs()
	if diff.LessThan(centTolerance) {
		return true
	}
	larger := decimal.Max(a, b)
	return diff.LessThanOrEqual(larger.Mul(relativeTolerance))
}

// candidateWindow returns the widened amount window used to fetch
// manual-duplicate candidates from the store: max(1% of amount, one cent)
// either side. The exact tolerance is re-evaluated in memory per candidate
// by amountsMatch.
func candidateWindow(amount decimal.Decimal) (min, max decimal.Decimal) {
	tolerance := decimal.Max(amount.Mul(relativeTolerance), centTolerance)
	return amount.Sub(tolerance), amount.Add(tolerance)
}
