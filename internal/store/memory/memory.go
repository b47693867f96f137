// Package memory implements the expense store as a single in-process
// collection. It mirrors the client-side local-storage variant: one blob,
// synchronous access, and an empty default when nothing was ever written.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"gastos/internal/core"
	"gastos/internal/store"
)

type Store struct {
	mu       sync.Mutex
	expenses []core.Expense
	notifier *store.Broadcaster
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{notifier: store.NewBroadcaster()}
}

// NewSeeded creates a store preloaded with records, for tests and demos.
// Seeded records keep their ids and timestamps when present.
func NewSeeded(expenses []core.Expense) *Store {
	s := New()
	now := time.Now().UTC()
	for _, e := range expenses {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		if e.UpdatedAt.IsZero() {
			e.UpdatedAt = e.CreatedAt
		}
		s.expenses = append(s.expenses, e)
	}
	return s
}

func (s *Store) List(_ context.Context, _ string) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out, nil
}

func (s *Store) GetByID(_ context.Context, id string) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return core.Expense{}, store.ErrNotFound
}

func (s *Store) Create(_ context.Context, draft core.ExpenseDraft) (core.Expense, error) {
	now := time.Now().UTC()
	e := core.Expense{
		ID:        uuid.NewString(),
		Title:     draft.Title,
		Amount:    draft.Amount,
		Category:  draft.Category,
		Date:      draft.Date,
		CreatedAt: now,
		UpdatedAt: now,
		UserID:    draft.UserID,
	}

	s.mu.Lock()
	// Newest first keeps List in created-at descending order without sorting.
	s.expenses = append([]core.Expense{e}, s.expenses...)
	s.mu.Unlock()

	s.notifier.Notify()
	return e, nil
}

func (s *Store) Update(_ context.Context, id string, update core.ExpenseUpdate) (core.Expense, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return core.Expense{}, store.ErrNotFound
	}
	e := s.expenses[idx]
	update.ApplyTo(&e)
	e.UpdatedAt = time.Now().UTC()
	s.expenses[idx] = e
	s.mu.Unlock()

	s.notifier.Notify()
	return e, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return store.ErrNotFound
	}
	s.expenses = append(s.expenses[:idx], s.expenses[idx+1:]...)
	s.mu.Unlock()

	s.notifier.Notify()
	return nil
}

func (s *Store) Categories(_ context.Context) ([]core.Category, error) {
	return core.CategoryNames(), nil
}

func (s *Store) Subscribe() (<-chan struct{}, func()) {
	return s.notifier.Subscribe()
}

func (s *Store) Close() error {
	s.notifier.Close()
	return nil
}

// indexOf must be called with the mutex held.
func (s *Store) indexOf(id string) int {
	for i, e := range s.expenses {
		if e.ID == id {
			return i
		}
	}
	return -1
}
