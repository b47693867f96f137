// Package file implements the expense store as a single flat JSON document,
// read and written wholesale on every operation.
//
// An absent or unparsable file yields the default empty collection instead
// of an error; a broken data file must never take the views down with it.
// Writes are not coordinated across processes: two concurrent writers race
// at whole-collection granularity and the last write wins.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"gastos/internal/core"
	"gastos/internal/store"
)

// document is the persisted collection layout: the expense list plus the
// canonical category names. Repository operations never change categories.
type document struct {
	Expenses   []core.Expense  `json:"expenses"`
	Categories []core.Category `json:"categories"`
}

type Store struct {
	mu       sync.Mutex
	path     string
	notifier *store.Broadcaster
}

var _ store.Store = (*Store)(nil)

func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{path: path, notifier: store.NewBroadcaster()}, nil
}

func (s *Store) List(_ context.Context, _ string) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().Expenses, nil
}

func (s *Store) GetByID(_ context.Context, id string) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.read().Expenses {
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
	doc := s.read()
	doc.Expenses = append([]core.Expense{e}, doc.Expenses...)
	err := s.write(doc)
	s.mu.Unlock()
	if err != nil {
		return core.Expense{}, err
	}

	s.notifier.Notify()
	return e, nil
}

func (s *Store) Update(_ context.Context, id string, update core.ExpenseUpdate) (core.Expense, error) {
	s.mu.Lock()
	doc := s.read()
	idx := indexOf(doc.Expenses, id)
	if idx < 0 {
		s.mu.Unlock()
		return core.Expense{}, store.ErrNotFound
	}
	e := doc.Expenses[idx]
	update.ApplyTo(&e)
	e.UpdatedAt = time.Now().UTC()
	doc.Expenses[idx] = e
	err := s.write(doc)
	s.mu.Unlock()
	if err != nil {
		return core.Expense{}, err
	}

	s.notifier.Notify()
	return e, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	doc := s.read()
	idx := indexOf(doc.Expenses, id)
	if idx < 0 {
		s.mu.Unlock()
		return store.ErrNotFound
	}
	doc.Expenses = append(doc.Expenses[:idx], doc.Expenses[idx+1:]...)
	err := s.write(doc)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notifier.Notify()
	return nil
}

func (s *Store) Categories(_ context.Context) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().Categories, nil
}

func (s *Store) Subscribe() (<-chan struct{}, func()) {
	return s.notifier.Subscribe()
}

func (s *Store) Close() error {
	s.notifier.Close()
	return nil
}

// read loads the whole document, falling back to the empty default on any
// read or parse failure. Must be called with the mutex held.
func (s *Store) read() document {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read expense file, using empty collection",
				"path", s.path, "error", err)
		}
		return emptyDocument()
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		slog.Warn("Corrupt expense file, using empty collection",
			"path", s.path, "error", err)
		return emptyDocument()
	}
	// Older files may carry a stale category list; the canonical names win.
	doc.Categories = core.CategoryNames()
	if doc.Expenses == nil {
		doc.Expenses = []core.Expense{}
	}
	return doc
}

// write persists the whole document. Must be called with the mutex held.
func (s *Store) write(doc document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode expense file: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write expense file: %w", err)
	}
	return nil
}

func emptyDocument() document {
	return document{Expenses: []core.Expense{}, Categories: core.CategoryNames()}
}

func indexOf(expenses []core.Expense, id string) int {
	for i, e := range expenses {
		if e.ID == id {
			return i
		}
	}
	return -1
}
