package worker

import (
	"context"
	"errors"
	"testing"

	"gastos/internal/amqp"
)

type mirrorCall struct {
	op string
	id string
}

type fakeMirror struct {
	calls []mirrorCall
	err   error
}

func (m *fakeMirror) Append(_ context.Context, id, _ string, _ int64, _, _ string) error {
	m.calls = append(m.calls, mirrorCall{"append", id})
	return m.err
}

func (m *fakeMirror) Replace(_ context.Context, id, _ string, _ int64, _, _ string) error {
	m.calls = append(m.calls, mirrorCall{"replace", id})
	return m.err
}

func (m *fakeMirror) Delete(_ context.Context, id string) error {
	m.calls = append(m.calls, mirrorCall{"delete", id})
	return m.err
}

func TestHandleEventDispatch(t *testing.T) {
	tests := []struct {
		kind   amqp.EventKind
		wantOp string
	}{
		{amqp.EventCreated, "append"},
		{amqp.EventUpdated, "replace"},
		{amqp.EventDeleted, "delete"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			mirror := &fakeMirror{}
			w := NewSyncWorker(mirror)

			if err := w.HandleEvent(context.Background(), amqp.NewExpenseEvent(tt.kind, "id-1")); err != nil {
				t.Fatalf("HandleEvent: %v", err)
			}
			if len(mirror.calls) != 1 || mirror.calls[0] != (mirrorCall{tt.wantOp, "id-1"}) {
				t.Fatalf("calls = %+v, want one %s", mirror.calls, tt.wantOp)
			}
		})
	}
}

func TestHandleEventPropagatesMirrorError(t *testing.T) {
	mirror := &fakeMirror{err: errors.New("quota exceeded")}
	w := NewSyncWorker(mirror)

	err := w.HandleEvent(context.Background(), amqp.NewExpenseEvent(amqp.EventCreated, "id-1"))
	if err == nil {
		t.Fatalf("mirror error should propagate for requeue")
	}
}

func TestHandleEventUnknownKind(t *testing.T) {
	w := NewSyncWorker(&fakeMirror{})

	event := &amqp.ExpenseEvent{Kind: "renamed", ExpenseID: "id-1"}
	if err := w.HandleEvent(context.Background(), event); err == nil {
		t.Fatalf("unknown kind should error")
	}
}
