package core

import (
	"testing"
	"time"
)

func settings(amountCents int64, period BudgetPeriod, threshold int) BudgetSettings {
	return BudgetSettings{
		BudgetAmount:   Money{Cents: amountCents},
		BudgetPeriod:   period,
		AlertThreshold: threshold,
		EnableAlerts:   true,
	}
}

func TestEvaluateBudgetThresholds(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	cfg := settings(1000*100, PeriodMonthly, 80)

	cases := []struct {
		name       string
		spentCents int64
		wantStatus BudgetState
		wantRemain int64
	}{
		{"under threshold", 799 * 100, BudgetNormal, 201 * 100},
		{"at threshold", 800 * 100, BudgetWarning, 200 * 100},
		{"at budget", 1000 * 100, BudgetOverBudget, 0},
		{"past budget", 1200 * 100, BudgetOverBudget, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expenses := []Expense{exp("spend", tc.spentCents, CategoryFood, 2024, 3, 10)}
			got := EvaluateBudget(cfg, expenses, now)
			if got.Status != tc.wantStatus {
				t.Fatalf("status = %s, want %s", got.Status, tc.wantStatus)
			}
			if got.Remaining.Cents != tc.wantRemain {
				t.Fatalf("remaining = %d, want %d", got.Remaining.Cents, tc.wantRemain)
			}
			if got.Spent.Cents != tc.spentCents {
				t.Fatalf("spent = %d, want %d", got.Spent.Cents, tc.spentCents)
			}
		})
	}
}

func TestEvaluateBudgetZeroAmount(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	expenses := []Expense{exp("spend", 5000, CategoryFood, 2024, 3, 10)}

	got := EvaluateBudget(settings(0, PeriodMonthly, 80), expenses, now)
	if got.Percentage != 0 || got.Status != BudgetNormal {
		t.Fatalf("zero budget: got %+v, want percentage 0 / normal", got)
	}
}

func TestPeriodWindows(t *testing.T) {
	// 2024-03-13 is a Wednesday; the week starts Sunday 2024-03-10.
	now := time.Date(2024, 3, 13, 18, 30, 0, 0, time.UTC)

	cases := []struct {
		name   string
		period BudgetPeriod
		date   Date
		in     bool
	}{
		{"daily same day", PeriodDaily, NewDate(2024, 3, 13), true},
		{"daily previous day", PeriodDaily, NewDate(2024, 3, 12), false},
		{"weekly at week start", PeriodWeekly, NewDate(2024, 3, 10), true},
		{"weekly before week start", PeriodWeekly, NewDate(2024, 3, 9), false},
		{"weekly mid week", PeriodWeekly, NewDate(2024, 3, 12), true},
		{"monthly same month", PeriodMonthly, NewDate(2024, 3, 1), true},
		{"monthly previous month", PeriodMonthly, NewDate(2024, 2, 29), false},
		{"monthly same month previous year", PeriodMonthly, NewDate(2023, 3, 13), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := settings(100000, tc.period, 80)
			if got := cfg.InPeriodWindow(tc.date, now); got != tc.in {
				t.Fatalf("InPeriodWindow(%s, %s) = %v, want %v", tc.date, tc.period, got, tc.in)
			}
		})
	}
}

func TestCurrentPeriodSpentScopesWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	expenses := []Expense{
		exp("in month", 3000, CategoryFood, 2024, 3, 1),
		exp("also in month", 2000, CategoryFood, 2024, 3, 15),
		exp("last month", 9999, CategoryFood, 2024, 2, 28),
	}
	spent := CurrentPeriodSpent(settings(100000, PeriodMonthly, 80), expenses, now)
	if spent.Cents != 5000 {
		t.Fatalf("spent = %d, want 5000", spent.Cents)
	}
}

func TestBudgetSettingsValidate(t *testing.T) {
	good := DefaultBudgetSettings()
	if err := good.Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}

	bads := []BudgetSettings{
		settings(-1, PeriodMonthly, 80),
		settings(1000, "yearly", 80),
		settings(1000, PeriodMonthly, -5),
		settings(1000, PeriodMonthly, 101),
	}
	for i, s := range bads {
		if err := s.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
