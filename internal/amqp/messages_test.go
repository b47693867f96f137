package amqp

import (
	"strings"
	"testing"
)

func TestExpenseEventRoundTrip(t *testing.T) {
	event := NewExpenseEvent(EventCreated, "abc-123")
	event.Title = "Groceries"
	event.Cents = 4599
	event.Category = "Food"
	event.Date = "2024-03-10"

	raw, err := event.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	decoded, err := ExpenseEventFromJSON(raw)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if decoded.Kind != EventCreated || decoded.ExpenseID != "abc-123" {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
	if decoded.Cents != 4599 || decoded.Category != "Food" {
		t.Fatalf("payload fields lost: %+v", decoded)
	}
	if decoded.Timestamp.IsZero() {
		t.Fatalf("timestamp not carried")
	}
}

func TestDeletedEventOmitsPayload(t *testing.T) {
	raw, err := NewExpenseEvent(EventDeleted, "abc-123").ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if strings.Contains(string(raw), "title") || strings.Contains(string(raw), "cents") {
		t.Fatalf("delete event should not carry payload fields: %s", raw)
	}
}

func TestExpenseEventFromJSONRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{{`},
		{"unknown kind", `{"kind":"renamed","expenseId":"x"}`},
		{"missing id", `{"kind":"created"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ExpenseEventFromJSON([]byte(tt.raw)); err == nil {
				t.Fatalf("expected error for %q", tt.raw)
			}
		})
	}
}
