package core

import (
	"math"
	"sort"
	"time"
)

type (
	// CategorySum is a per-category amount within a collection.
	CategorySum struct {
		Category Category `json:"category"`
		Amount   Money    `json:"amount"`
	}

	// MonthSum is a per-calendar-month amount, keyed YYYY-MM.
	MonthSum struct {
		Month  string `json:"month"`
		Amount Money  `json:"amount"`
	}

	// Stats bundles the derived statistics of a collection snapshot.
	Stats struct {
		Count        int   `json:"count"`
		Total        Money `json:"total"`
		Average      Money `json:"average"`
		Highest      Money `json:"highest"`
		AverageDaily Money `json:"averageDaily"`
	}
)

// Total sums the amounts of the input.
func Total(expenses []Expense) Money {
	var cents int64
	for _, e := range expenses {
		cents += e.Amount.Cents
	}
	return Money{Cents: cents}
}

// Average is total/count, 0 for an empty input. Cents are rounded half-up.
func Average(expenses []Expense) Money {
	n := int64(len(expenses))
	if n == 0 {
		return Money{}
	}
	total := Total(expenses).Cents
	return Money{Cents: (total + n/2) / n}
}

// Highest is the largest single amount, 0 for an empty input.
func Highest(expenses []Expense) Money {
	var max int64
	for _, e := range expenses {
		if e.Amount.Cents > max {
			max = e.Amount.Cents
		}
	}
	return Money{Cents: max}
}

// AverageDaily is total divided by the inclusive day span between the
// earliest and latest expense date, floored at one day so same-day and
// single-record collections do not divide by zero.
func AverageDaily(expenses []Expense) Money {
	if len(expenses) == 0 {
		return Money{}
	}
	earliest, latest := expenses[0].Date.Time, expenses[0].Date.Time
	for _, e := range expenses[1:] {
		if e.Date.Before(earliest) {
			earliest = e.Date.Time
		}
		if e.Date.After(latest) {
			latest = e.Date.Time
		}
	}
	span := int64(latest.Sub(earliest)/(24*time.Hour)) + 1
	if span < 1 {
		span = 1
	}
	total := Total(expenses).Cents
	return Money{Cents: (total + span/2) / span}
}

// Snapshot computes all derived statistics in one pass over the input.
func Snapshot(expenses []Expense) Stats {
	return Stats{
		Count:        len(expenses),
		Total:        Total(expenses),
		Average:      Average(expenses),
		Highest:      Highest(expenses),
		AverageDaily: AverageDaily(expenses),
	}
}

// ByCategory groups amounts by category, sorted descending by sum.
// Categories with no matching expenses are omitted, not zero-filled.
// Ties break on category name so the order is deterministic.
func ByCategory(expenses []Expense) []CategorySum {
	sums := make(map[Category]int64)
	for _, e := range expenses {
		sums[e.Category] += e.Amount.Cents
	}
	out := make([]CategorySum, 0, len(sums))
	for cat, cents := range sums {
		out = append(out, CategorySum{Category: cat, Amount: Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// ByMonth groups amounts by the calendar month of the expense date (not
// CreatedAt, so backfilled entries land in the correct period), sorted
// ascending by YYYY-MM key.
func ByMonth(expenses []Expense) []MonthSum {
	sums := make(map[string]int64)
	for _, e := range expenses {
		sums[e.Date.MonthKey()] += e.Amount.Cents
	}
	out := make([]MonthSum, 0, len(sums))
	for month, cents := range sums {
		out = append(out, MonthSum{Month: month, Amount: Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// PercentageOfTotal is part/total as a percentage rounded to one decimal.
// Returns 0 when total is 0; callers should treat the whole breakdown as
// empty in that case rather than render percentages.
func PercentageOfTotal(part, total Money) float64 {
	if total.Cents == 0 {
		return 0
	}
	pct := float64(part.Cents) / float64(total.Cents) * 100
	return math.Round(pct*10) / 10
}
