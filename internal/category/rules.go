package category

// DefaultRules returns the built-in keyword table. Order matters: the first
// matching keyword wins, so narrower keywords come before the broad ones
// they would otherwise fall through to.
func DefaultRules() []Rule {
	return []Rule{
		// Food
		{"groceries", "Food & Groceries"},
		{"grocery", "Food & Groceries"},
		{"supermarket", "Food & Groceries"},
		{"bakery", "Food & Groceries"},
		{"butcher", "Food & Groceries"},
		{"lidl", "Food & Groceries"},
		{"aldi", "Food & Groceries"},
		{"carrefour", "Food & Groceries"},
		{"costco", "Food & Groceries"},
		{"restaurant", "Dining Out"},
		{"takeaway", "Dining Out"},
		{"deliveroo", "Dining Out"},
		{"cafe", "Dining Out"},
		{"coffee", "Dining Out"},
		{"food", "Food & Groceries"},

		// Transport
		{"uber", "Transportation"},
		{"taxi", "Transportation"},
		{"bolt", "Transportation"},
		{"fuel", "Transportation"},
		{"petrol", "Transportation"},
		{"parking", "Transportation"},
		{"metro", "Transportation"},
		{"train", "Transportation"},
		{"bus", "Transportation"},
		{"transport", "Transportation"},

		// Subscriptions and entertainment
		{"netflix", "Subscription"},
		{"spotify", "Subscription"},
		{"disney", "Subscription"},
		{"hbo", "Subscription"},
		{"subscription", "Subscription"},
		{"cinema", "Entertainment"},
		{"theatre", "Entertainment"},
		{"concert", "Entertainment"},
		{"entertainment", "Entertainment"},

		// Housing and utilities
		{"rent", "Housing"},
		{"mortgage", "Housing"},
		{"electricity", "Utilities"},
		{"water bill", "Utilities"},
		{"internet", "Utilities"},
		{"utility", "Utilities"},
		{"utilities", "Utilities"},

		// Health and fitness
		{"pharmacy", "Health"},
		{"doctor", "Health"},
		{"hospital", "Health"},
		{"dental", "Health"},
		{"gym", "Health"},
		{"fitness", "Health"},
		{"health", "Health"},

		// Shopping
		{"amazon", "Shopping"},
		{"clothing", "Shopping"},
		{"clothes", "Shopping"},
		{"zara", "Shopping"},
		{"ikea", "Shopping"},
		{"shopping", "Shopping"},

		// Travel
		{"hotel", "Travel"},
		{"airbnb", "Travel"},
		{"flight", "Travel"},
		{"ryanair", "Travel"},
		{"booking.com", "Travel"},
		{"travel", "Travel"},

		// Money in / recurring money out
		{"salary", "Income"},
		{"payroll", "Income"},
		{"wages", "Income"},
		{"insurance", "Insurance"},
		{"phone", "Utilities"},
	}
}
