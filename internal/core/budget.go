package core

import (
	"math"
	"time"
)

const (
	PeriodDaily   BudgetPeriod = "daily"
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
)

const (
	BudgetNormal     BudgetState = "normal"
	BudgetWarning    BudgetState = "warning"
	BudgetOverBudget BudgetState = "over-budget"
)

type (
	BudgetPeriod string

	BudgetState string

	// BudgetSettings is the singleton per-user budget configuration.
	BudgetSettings struct {
		BudgetAmount   Money        `json:"budgetAmount"`
		BudgetPeriod   BudgetPeriod `json:"budgetPeriod"`
		AlertThreshold int          `json:"alertThreshold"`
		EnableAlerts   bool         `json:"enableAlerts"`
	}

	// BudgetStatus is the evaluated spend against the current period window.
	BudgetStatus struct {
		Period     BudgetPeriod `json:"period"`
		Spent      Money        `json:"spent"`
		Percentage int          `json:"percentage"`
		Remaining  Money        `json:"remaining"`
		Status     BudgetState  `json:"status"`
	}
)

// DefaultBudgetSettings are used until the user overwrites them.
func DefaultBudgetSettings() BudgetSettings {
	return BudgetSettings{
		BudgetAmount:   Money{Cents: 10000 * 100},
		BudgetPeriod:   PeriodMonthly,
		AlertThreshold: 80,
		EnableAlerts:   true,
	}
}

func (p BudgetPeriod) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}

func (s BudgetSettings) Validate() error {
	if err := s.BudgetAmount.Validate(); err != nil {
		return err
	}
	if !s.BudgetPeriod.Valid() {
		return ErrInvalidPeriod
	}
	if s.AlertThreshold < 0 || s.AlertThreshold > 100 {
		return ErrInvalidAmount
	}
	return nil
}

// InPeriodWindow reports whether the expense date falls inside the current
// period window relative to now: today for daily, on/after the most recent
// Sunday for weekly, same YYYY-MM for monthly.
func (s BudgetSettings) InPeriodWindow(d Date, now time.Time) bool {
	switch s.BudgetPeriod {
	case PeriodDaily:
		return d.Equal(DateOf(now))
	case PeriodWeekly:
		weekStart := DateOf(now.AddDate(0, 0, -int(now.Weekday())))
		return !d.Before(weekStart.Time)
	default:
		return d.MonthKey() == DateOf(now).MonthKey()
	}
}

// CurrentPeriodSpent sums the expenses within the current period window.
func CurrentPeriodSpent(settings BudgetSettings, expenses []Expense, now time.Time) Money {
	var cents int64
	for _, e := range expenses {
		if settings.InPeriodWindow(e.Date, now) {
			cents += e.Amount.Cents
		}
	}
	return Money{Cents: cents}
}

// EvaluateBudget derives the budget status from settings, a collection
// snapshot and a reference time. Pure; safe to re-run on every snapshot.
//
// The displayed percentage is rounded, but the status thresholds compare
// exact cent values so that e.g. 799 of 1000 at an 80% threshold stays
// normal instead of rounding up into a warning. Reaching the budget exactly
// is over-budget, and reaching the threshold exactly is a warning.
func EvaluateBudget(settings BudgetSettings, expenses []Expense, now time.Time) BudgetStatus {
	spent := CurrentPeriodSpent(settings, expenses, now)
	status := BudgetStatus{
		Period: settings.BudgetPeriod,
		Spent:  spent,
		Status: BudgetNormal,
	}

	amount := settings.BudgetAmount.Cents
	if amount <= 0 {
		// No budget constraint; percentage is defined as 0.
		return status
	}

	status.Percentage = int(math.Round(float64(spent.Cents) / float64(amount) * 100))
	if remaining := amount - spent.Cents; remaining > 0 {
		status.Remaining = Money{Cents: remaining}
	}

	switch {
	case spent.Cents >= amount:
		status.Status = BudgetOverBudget
	case spent.Cents*100 >= amount*int64(settings.AlertThreshold):
		status.Status = BudgetWarning
	}
	return status
}
