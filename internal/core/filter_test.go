package core

import (
	"reflect"
	"testing"
)

func TestFilterMatch(t *testing.T) {
	e := exp("Grocery run", 1000, CategoryFood, 2024, 1, 1)

	cases := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"zero filter", Filter{}, true},
		{"all sentinel", Filter{Category: AllCategories}, true},
		{"substring case-insensitive", Filter{Query: "gRoCeRy"}, true},
		{"substring miss", Filter{Query: "taxi"}, false},
		{"category match", Filter{Category: "Food"}, true},
		{"category case-insensitive", Filter{Category: "food"}, true},
		{"category miss", Filter{Category: "Shopping"}, false},
		{"both must match", Filter{Query: "grocery", Category: "Shopping"}, false},
		{"both matching", Filter{Query: "run", Category: "Food"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter.Match(e); got != tc.want {
				t.Fatalf("match = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilterIdempotence(t *testing.T) {
	expenses := []Expense{
		exp("Grocery run", 1000, CategoryFood, 2024, 1, 1),
		exp("Taxi home", 500, CategoryTransportation, 2024, 1, 2),
		exp("Grocery again", 2000, CategoryFood, 2024, 1, 3),
	}
	f := Filter{Query: "grocery", Category: "Food"}

	once := f.Apply(expenses)
	twice := f.Apply(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filter not idempotent: %v vs %v", once, twice)
	}
	if len(once) != 2 {
		t.Fatalf("filtered len = %d, want 2", len(once))
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	expenses := []Expense{
		exp("a", 100, CategoryFood, 2024, 1, 1),
		exp("b", 200, CategoryShopping, 2024, 1, 2),
	}
	before := make([]Expense, len(expenses))
	copy(before, expenses)

	Filter{Category: "Food"}.Apply(expenses)
	if !reflect.DeepEqual(expenses, before) {
		t.Fatalf("input mutated by Apply")
	}
}
