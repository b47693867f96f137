package store

import (
	"testing"
	"time"
)

func TestBroadcasterDeliversToAllSubscribers(t *testing.T) {
	b := NewBroadcaster()
	ch1, cancel1 := b.Subscribe()
	ch2, cancel2 := b.Subscribe()
	defer cancel1()
	defer cancel2()

	b.Notify()

	for i, ch := range []<-chan struct{}{ch1, ch2} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d did not receive notification", i)
		}
	}
}

func TestBroadcasterCoalescesSignals(t *testing.T) {
	b := NewBroadcaster()
	ch, cancel := b.Subscribe()
	defer cancel()

	b.Notify()
	b.Notify()
	b.Notify()

	<-ch
	select {
	case <-ch:
		// A second pending signal is acceptable only if it arrived after the
		// first drain; three notifies before any drain must coalesce.
		t.Fatalf("signals not coalesced")
	default:
	}
}

func TestBroadcasterCancelStopsDelivery(t *testing.T) {
	b := NewBroadcaster()
	ch, cancel := b.Subscribe()
	cancel()
	cancel() // idempotent

	b.Notify()

	if _, open := <-ch; open {
		t.Fatalf("channel should be closed after cancel")
	}
}

func TestBroadcasterClose(t *testing.T) {
	b := NewBroadcaster()
	ch, _ := b.Subscribe()
	b.Close()

	if _, open := <-ch; open {
		t.Fatalf("channel should be closed after broadcaster close")
	}

	// Subscribing after close yields a closed channel, not a panic.
	late, cancel := b.Subscribe()
	defer cancel()
	if _, open := <-late; open {
		t.Fatalf("late subscription should be closed immediately")
	}
}
