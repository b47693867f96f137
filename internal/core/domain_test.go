package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestExpenseDraftValidate(t *testing.T) {
	good := ExpenseDraft{
		Title:    "Lunch",
		Amount:   Money{Cents: 1250},
		Category: CategoryFood,
		Date:     NewDate(2024, 1, 15),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name  string
		draft ExpenseDraft
		want  error
	}{
		{"empty title", ExpenseDraft{Amount: Money{Cents: 1}, Category: CategoryFood, Date: NewDate(2024, 1, 1)}, ErrEmptyTitle},
		{"blank title", ExpenseDraft{Title: "   ", Amount: Money{Cents: 1}, Category: CategoryFood, Date: NewDate(2024, 1, 1)}, ErrEmptyTitle},
		{"negative amount", ExpenseDraft{Title: "a", Amount: Money{Cents: -1}, Category: CategoryFood, Date: NewDate(2024, 1, 1)}, ErrInvalidAmount},
		{"unknown category", ExpenseDraft{Title: "a", Amount: Money{Cents: 1}, Category: "Rent", Date: NewDate(2024, 1, 1)}, ErrUnknownCategory},
		{"zero date", ExpenseDraft{Title: "a", Amount: Money{Cents: 1}, Category: CategoryFood}, ErrInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.draft.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestZeroAmountIsValid(t *testing.T) {
	draft := ExpenseDraft{Title: "freebie", Category: CategoryOther, Date: NewDate(2024, 1, 1)}
	if err := draft.Validate(); err != nil {
		t.Fatalf("zero amount should validate, got %v", err)
	}
}

func TestExpenseUpdateApplyTo(t *testing.T) {
	e := Expense{
		ID:       "1",
		Title:    "old",
		Amount:   Money{Cents: 100},
		Category: CategoryFood,
		Date:     NewDate(2024, 1, 1),
	}
	title := "new"
	amount := Money{Cents: 250}
	(ExpenseUpdate{Title: &title, Amount: &amount}).ApplyTo(&e)

	if e.Title != "new" || e.Amount.Cents != 250 {
		t.Fatalf("update not applied: %+v", e)
	}
	if e.Category != CategoryFood || e.Date.String() != "2024-01-01" || e.ID != "1" {
		t.Fatalf("untouched fields changed: %+v", e)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 2, 29)
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"2024-02-29"` {
		t.Fatalf("marshal = %s", raw)
	}

	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Fatalf("round trip changed date: %s", back)
	}

	var bad Date
	if err := json.Unmarshal([]byte(`"15/01/2024"`), &bad); err == nil {
		t.Fatalf("expected error for non ISO date")
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range CategoryNames() {
		if !c.Valid() {
			t.Fatalf("canonical category %q reported invalid", c)
		}
	}
	if Category("Rent").Valid() {
		t.Fatalf("unknown category reported valid")
	}
	if len(CategoryNames()) != 7 {
		t.Fatalf("canonical list must have seven entries")
	}
}
