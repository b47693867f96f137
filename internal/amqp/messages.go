package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventKind names the mutation a change event describes.
type EventKind string

const (
	EventCreated EventKind = "created"
	EventUpdated EventKind = "updated"
	EventDeleted EventKind = "deleted"
)

// ExpenseEvent tells the sync worker that an expense changed. Created and
// updated events carry the full row so the worker never reads the store;
// deleted events carry only the id.
type ExpenseEvent struct {
	Kind      EventKind `json:"kind"`
	ExpenseID string    `json:"expenseId"`
	Title     string    `json:"title,omitempty"`
	Cents     int64     `json:"cents,omitempty"`
	Category  string    `json:"category,omitempty"`
	Date      string    `json:"date,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseEvent builds an event stamped with the current time.
func NewExpenseEvent(kind EventKind, expenseID string) *ExpenseEvent {
	return &ExpenseEvent{
		Kind:      kind,
		ExpenseID: expenseID,
		Timestamp: time.Now().UTC(),
	}
}

func (e *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var event ExpenseEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	if err := event.validate(); err != nil {
		return nil, err
	}
	return &event, nil
}

func (e *ExpenseEvent) validate() error {
	switch e.Kind {
	case EventCreated, EventUpdated, EventDeleted:
	default:
		return fmt.Errorf("unknown event kind %q", e.Kind)
	}
	if e.ExpenseID == "" {
		return fmt.Errorf("event missing expense id")
	}
	return nil
}
