// Package sqlite implements the expense store as a server-managed document
// collection: one row per expense, per-user filtering, creation-time
// descending order and true partial field updates.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"gastos/internal/core"
	"gastos/internal/store"
)

type Store struct {
	db       *sql.DB
	notifier *store.Broadcaster
}

var (
	_ store.Store        = (*Store)(nil)
	_ store.ProfileStore = (*Store)(nil)
)

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, notifier: store.NewBroadcaster()}, nil
}

func (s *Store) List(ctx context.Context, userID string) ([]core.Expense, error) {
	query := `SELECT id, title, amount_cents, category, date, created_at, updated_at, user_id
	          FROM expenses`
	args := []any{}
	if userID != "" {
		query += ` WHERE user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []core.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (core.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, amount_cents, category, date, created_at, updated_at, user_id
		 FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, store.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

func (s *Store) Create(ctx context.Context, draft core.ExpenseDraft) (core.Expense, error) {
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

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, title, amount_cents, category, date, created_at, updated_at, user_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Amount.Cents, string(e.Category), e.Date.String(),
		formatTime(e.CreatedAt), formatTime(e.UpdatedAt), e.UserID)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", e.ID,
		"title", e.Title,
		"amount_cents", e.Amount.Cents,
		"category", e.Category)

	s.notifier.Notify()
	return e, nil
}

// Update issues a partial UPDATE touching only the supplied fields, unlike
// the memory and file backends which rewrite the whole collection.
func (s *Store) Update(ctx context.Context, id string, update core.ExpenseUpdate) (core.Expense, error) {
	sets := []string{"updated_at = ?"}
	args := []any{formatTime(time.Now().UTC())}
	if update.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Amount != nil {
		sets = append(sets, "amount_cents = ?")
		args = append(args, update.Amount.Cents)
	}
	if update.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, string(*update.Category))
	}
	if update.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, update.Date.String())
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	if affected == 0 {
		return core.Expense{}, store.ErrNotFound
	}

	s.notifier.Notify()
	return s.GetByID(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	slog.InfoContext(ctx, "Expense deleted", "id", id)
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
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetProfile implements store.ProfileStore.
func (s *Store) GetProfile(ctx context.Context, userID string) (store.Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT user_id, name, email, updated_at FROM profiles WHERE user_id = ?`, userID)

	var p store.Profile
	var updatedAt string
	err := row.Scan(&p.UserID, &p.Name, &p.Email, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Profile{}, store.ErrNotFound
	}
	if err != nil {
		return store.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	p.UpdatedAt = parseTime(updatedAt)
	return p, nil
}

// UpsertProfile implements store.ProfileStore.
func (s *Store) UpsertProfile(ctx context.Context, profile store.Profile) (store.Profile, error) {
	profile.UpdatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, name, email, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET name = excluded.name, email = excluded.email,
		 updated_at = excluded.updated_at`,
		profile.UserID, profile.Name, profile.Email, formatTime(profile.UpdatedAt))
	if err != nil {
		return store.Profile{}, fmt.Errorf("upsert profile: %w", err)
	}
	return profile, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		e         core.Expense
		category  string
		date      string
		createdAt string
		updatedAt string
	)
	err := row.Scan(&e.ID, &e.Title, &e.Amount.Cents, &category, &date,
		&createdAt, &updatedAt, &e.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, err
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("scan expense: %w", err)
	}

	e.Category = core.Category(category)
	if e.Date, err = core.ParseDate(date); err != nil {
		return core.Expense{}, fmt.Errorf("parse expense date %q: %w", date, err)
	}
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return e, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
