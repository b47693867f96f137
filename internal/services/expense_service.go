package services

import (
	"context"
	"fmt"
	"log/slog"

	"gastos/internal/amqp"
	"gastos/internal/core"
	"gastos/internal/store"
)

// EventPublisher pushes expense change events to the sync worker.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, event *amqp.ExpenseEvent) error
	Close() error
}

// ExpenseService validates input at the boundary, drives the store, and
// publishes change events. Publishing is best effort: the store is the
// source of truth, a lost event only delays the mirror.
type ExpenseService struct {
	store     store.Store
	publisher EventPublisher
}

func NewExpenseService(s store.Store, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{
		store:     s,
		publisher: publisher,
	}
}

func (s *ExpenseService) List(ctx context.Context, userID string) ([]core.Expense, error) {
	expenses, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

func (s *ExpenseService) Get(ctx context.Context, id string) (core.Expense, error) {
	return s.store.GetByID(ctx, id)
}

func (s *ExpenseService) Create(ctx context.Context, draft core.ExpenseDraft) (core.Expense, error) {
	if err := draft.Validate(); err != nil {
		return core.Expense{}, err
	}

	created, err := s.store.Create(ctx, draft)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	s.publish(ctx, expenseEvent(amqp.EventCreated, created))
	return created, nil
}

func (s *ExpenseService) Update(ctx context.Context, id string, update core.ExpenseUpdate) (core.Expense, error) {
	if err := update.Validate(); err != nil {
		return core.Expense{}, err
	}

	updated, err := s.store.Update(ctx, id, update)
	if err != nil {
		return core.Expense{}, err
	}

	s.publish(ctx, expenseEvent(amqp.EventUpdated, updated))
	return updated, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, amqp.NewExpenseEvent(amqp.EventDeleted, id))
	return nil
}

func (s *ExpenseService) Categories(ctx context.Context) ([]core.Category, error) {
	return s.store.Categories(ctx)
}

func expenseEvent(kind amqp.EventKind, e core.Expense) *amqp.ExpenseEvent {
	event := amqp.NewExpenseEvent(kind, e.ID)
	event.Title = e.Title
	event.Cents = e.Amount.Cents
	event.Category = string(e.Category)
	event.Date = e.Date.String()
	return event
}

func (s *ExpenseService) publish(ctx context.Context, event *amqp.ExpenseEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishExpenseEvent(ctx, event); err != nil {
		slog.ErrorContext(ctx, "failed to publish expense event",
			"kind", event.Kind,
			"expense_id", event.ExpenseID,
			"error", err)
	}
}

// Close closes the store and the publisher, collecting both errors.
func (s *ExpenseService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %v", errs)
	}
	return nil
}
