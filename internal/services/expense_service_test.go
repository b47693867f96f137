package services

import (
	"context"
	"errors"
	"testing"

	"gastos/internal/amqp"
	"gastos/internal/core"
	"gastos/internal/store"
	"gastos/internal/store/memory"
)

type fakePublisher struct {
	events []*amqp.ExpenseEvent
	err    error
	closed bool
}

func (p *fakePublisher) PublishExpenseEvent(_ context.Context, event *amqp.ExpenseEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) Close() error {
	p.closed = true
	return nil
}

func validDraft() core.ExpenseDraft {
	return core.ExpenseDraft{
		Title:    "Groceries",
		Amount:   core.Money{Cents: 4599},
		Category: core.CategoryFood,
		Date:     core.NewDate(2024, 3, 10),
	}
}

func TestCreatePublishesEvent(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewExpenseService(memory.New(), pub)
	defer svc.Close()

	created, err := svc.Create(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(pub.events) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.events))
	}
	event := pub.events[0]
	if event.Kind != amqp.EventCreated || event.ExpenseID != created.ID {
		t.Fatalf("wrong event: %+v", event)
	}
	if event.Cents != 4599 || event.Category != "Food" {
		t.Fatalf("event payload wrong: %+v", event)
	}
}

func TestCreateRejectsInvalidDraftBeforeStore(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewExpenseService(memory.New(), pub)
	defer svc.Close()

	draft := validDraft()
	draft.Title = ""
	if _, err := svc.Create(context.Background(), draft); !errors.Is(err, core.ErrEmptyTitle) {
		t.Fatalf("create: got %v, want ErrEmptyTitle", err)
	}

	list, _ := svc.List(context.Background(), "")
	if len(list) != 0 {
		t.Fatalf("invalid draft reached the store: %+v", list)
	}
	if len(pub.events) != 0 {
		t.Fatalf("invalid draft produced events: %+v", pub.events)
	}
}

func TestUpdateAndDeletePublishEvents(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewExpenseService(memory.New(), pub)
	defer svc.Close()

	created, _ := svc.Create(context.Background(), validDraft())

	title := "Weekly groceries"
	if _, err := svc.Update(context.Background(), created.ID, core.ExpenseUpdate{Title: &title}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if len(pub.events) != 3 {
		t.Fatalf("published %d events, want 3", len(pub.events))
	}
	kinds := []amqp.EventKind{pub.events[0].Kind, pub.events[1].Kind, pub.events[2].Kind}
	want := []amqp.EventKind{amqp.EventCreated, amqp.EventUpdated, amqp.EventDeleted}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("event kinds = %v, want %v", kinds, want)
		}
	}
}

func TestPublisherFailureDoesNotFailRequest(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewExpenseService(memory.New(), pub)
	defer svc.Close()

	created, err := svc.Create(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("create should survive a publish failure: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); err != nil {
		t.Fatalf("expense should be stored regardless: %v", err)
	}
}

func TestDeleteMissingExpense(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewExpenseService(memory.New(), pub)
	defer svc.Close()

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("delete: got %v, want ErrNotFound", err)
	}
	if len(pub.events) != 0 {
		t.Fatalf("failed delete produced events: %+v", pub.events)
	}
}

func TestCloseClosesPublisher(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewExpenseService(memory.New(), pub)

	if err := svc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !pub.closed {
		t.Fatalf("publisher not closed")
	}
}
