// Package worker applies expense change events to the spreadsheet mirror.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"gastos/internal/amqp"
)

// RowMirror is the slice of the sheets client the worker needs.
type RowMirror interface {
	Append(ctx context.Context, id, title string, cents int64, category, date string) error
	Replace(ctx context.Context, id, title string, cents int64, category, date string) error
	Delete(ctx context.Context, id string) error
}

// SyncWorker consumes expense events and keeps the mirror in step.
type SyncWorker struct {
	mirror RowMirror
}

func NewSyncWorker(mirror RowMirror) *SyncWorker {
	return &SyncWorker{mirror: mirror}
}

// HandleEvent applies one change event. Errors bubble up so the consumer
// can requeue the delivery.
func (w *SyncWorker) HandleEvent(ctx context.Context, event *amqp.ExpenseEvent) error {
	slog.InfoContext(ctx, "processing expense event",
		"kind", event.Kind,
		"expense_id", event.ExpenseID)

	switch event.Kind {
	case amqp.EventCreated:
		if err := w.mirror.Append(ctx, event.ExpenseID, event.Title, event.Cents, event.Category, event.Date); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	case amqp.EventUpdated:
		if err := w.mirror.Replace(ctx, event.ExpenseID, event.Title, event.Cents, event.Category, event.Date); err != nil {
			return fmt.Errorf("replace row: %w", err)
		}
	case amqp.EventDeleted:
		if err := w.mirror.Delete(ctx, event.ExpenseID); err != nil {
			return fmt.Errorf("delete row: %w", err)
		}
	default:
		// The decoder rejects unknown kinds, but keep the guard.
		return fmt.Errorf("unknown event kind %q", event.Kind)
	}

	return nil
}
