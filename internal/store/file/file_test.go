package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gastos/internal/core"
	"gastos/internal/store"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "expenses.json"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func draft(title string, cents int64) core.ExpenseDraft {
	return core.ExpenseDraft{
		Title:    title,
		Amount:   core.Money{Cents: cents},
		Category: core.CategoryShopping,
		Date:     core.NewDate(2024, 3, 1),
	}
}

func TestAbsentFileYieldsEmptyCollection(t *testing.T) {
	s := newStore(t)

	list, err := s.List(context.Background(), "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("list = %v, want empty", list)
	}

	cats, _ := s.Categories(context.Background())
	if !reflect.DeepEqual(cats, core.CategoryNames()) {
		t.Fatalf("categories = %v", cats)
	}
}

func TestCorruptFileRecoversToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	if err := os.WriteFile(path, []byte(`{"expenses": [{`), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	s, err := New(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer s.Close()

	list, err := s.List(context.Background(), "")
	if err != nil {
		t.Fatalf("list must not fail on corrupt file: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("list = %v, want empty", list)
	}
}

func TestCreatePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	s, err := New(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	created, err := s.Create(context.Background(), draft("Shoes", 299900))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	s.Close()

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Title != "Shoes" || got.Amount.Cents != 299900 {
		t.Fatalf("persisted record mismatch: %+v", got)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	created, _ := s.Create(ctx, draft("Old", 100))
	title := "New"
	updated, err := s.Update(ctx, created.ID, core.ExpenseUpdate{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "New" || updated.Amount.Cents != 100 {
		t.Fatalf("update result: %+v", updated)
	}

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetByID(ctx, created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("get after delete: got %v, want ErrNotFound", err)
	}
}

func TestDeleteNonexistentLeavesFileUnchanged(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	s.Create(ctx, draft("keep", 500))
	before, _ := s.List(ctx, "")

	if err := s.Delete(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("delete: got %v, want ErrNotFound", err)
	}

	after, _ := s.List(ctx, "")
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("collection changed by failed delete")
	}
}

func TestPersistedLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	s, err := New(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer s.Close()

	s.Create(context.Background(), draft("layout", 1000))

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	for _, key := range []string{`"expenses"`, `"categories"`, `"Food"`, `"Other"`} {
		if !strings.Contains(string(raw), key) {
			t.Fatalf("persisted document missing %s:\n%s", key, raw)
		}
	}
}
