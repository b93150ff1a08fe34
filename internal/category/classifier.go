package category

import "strings"

// Fallback is returned when no rule matches either input.
const Fallback = "Other"

// Rule maps a lowercase keyword substring to a category label.
type Rule struct {
	Keyword  string
	Category string
}

// Classifier assigns category labels to transactions based on an ordered
// rule list. Rules are evaluated in declaration order and the first keyword
// found as a substring wins, so specific keywords must be listed before
// generic ones (e.g. "bakery" before "food").
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a Classifier with the given rules. The slice is
// copied so callers cannot mutate the rule order afterwards.
func NewClassifier(rules []Rule) *Classifier {
	owned := make([]Rule, len(rules))
	copy(owned, rules)
	return &Classifier{rules: owned}
}

// Classify returns the category label for a raw source-provided category
// hint and a transaction description. The hint is scanned first; if no
// keyword matches it, the description is scanned with the same rules.
// Returns Fallback when neither matches.
func (c *Classifier) Classify(hint, description string) string {
	if label, ok := c.match(hint); ok {
		return label
	}
	if label, ok := c.match(description); ok {
		return label
	}
	return Fallback
}

func (c *Classifier) match(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	lowered := strings.ToLower(text)
	for _, rule := range c.rules {
		if strings.Contains(lowered, rule.Keyword) {
			return rule.Category, true
		}
	}
	return "", false
}
