package core

import "strings"

// AllCategories is the category selector sentinel that matches everything.
const AllCategories = "all"

// Filter combines a case-insensitive title search with a category selector.
// The zero value matches every expense.
type Filter struct {
	Query    string
	Category string
}

// IsZero reports whether the filter matches the whole collection.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Query) == "" &&
		(f.Category == "" || f.Category == AllCategories)
}

// Match applies both predicates with logical AND.
func (f Filter) Match(e Expense) bool {
	if q := strings.TrimSpace(f.Query); q != "" {
		if !strings.Contains(strings.ToLower(e.Title), strings.ToLower(q)) {
			return false
		}
	}
	if f.Category != "" && f.Category != AllCategories {
		if !strings.EqualFold(string(e.Category), f.Category) {
			return false
		}
	}
	return true
}

// Apply returns the expenses matching the filter, preserving input order.
// The input slice is never mutated.
func (f Filter) Apply(expenses []Expense) []Expense {
	if f.IsZero() {
		return expenses
	}
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}
