// Package store defines the persistence contract for the expense collection
// and the change-notification abstraction shared by all backends.
package store

import (
	"context"
	"errors"
	"time"

	"gastos/internal/core"
)

// ErrNotFound signals an update/delete/get against a nonexistent id. It is
// a distinct outcome, not a failure; callers decide the messaging.
var ErrNotFound = errors.New("expense not found")

// Store is the persistence contract over the expense collection. Three
// interchangeable backends implement it: memory, flat JSON file and sqlite.
// The backend is selected explicitly by configuration, never implicitly.
type Store interface {
	// List returns the collection ordered by creation time descending.
	// Backends without per-user records ignore userID.
	List(ctx context.Context, userID string) ([]core.Expense, error)

	// GetByID returns the expense or ErrNotFound.
	GetByID(ctx context.Context, id string) (core.Expense, error)

	// Create assigns the id and the created/updated timestamps.
	Create(ctx context.Context, draft core.ExpenseDraft) (core.Expense, error)

	// Update merges a partial update into the record, stamps UpdatedAt and
	// returns the result, or ErrNotFound.
	Update(ctx context.Context, id string, update core.ExpenseUpdate) (core.Expense, error)

	// Delete removes the record or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Categories returns the canonical category list the collection carries.
	Categories(ctx context.Context) ([]core.Category, error)

	// Subscribe registers for collection-changed notifications. The caller
	// must invoke the cancel func when done, or updates leak into stale
	// consumers. Memory and file backends fire once after every mutation;
	// the sqlite backend fires on its own mutations the same way.
	Subscribe() (<-chan struct{}, func())

	Close() error
}

// Profile is the per-user document kept next to the expense collection for
// display purposes. Only backends with per-user records support it.
type Profile struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfileStore is implemented by backends that keep per-user profile
// documents. Consumers discover support with a type assertion.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (Profile, error)
	UpsertProfile(ctx context.Context, profile Profile) (Profile, error)
}
