// Package testbus provides test utilities for the event bus.
// It wraps a real EventBus with event recording and assertion helpers.
package testbus

import (
	"slices"
	"sync"
	"testing"

	"github.com/colonyops/seqmark/internal/core/eventbus"
)

// RecordedEvent holds a captured event name and payload.
type RecordedEvent struct {
	Event   eventbus.Event
	Payload any
}

// Bus wraps a real EventBus with event recording for tests.
type Bus struct {
	*eventbus.EventBus

	mu     sync.Mutex
	events []RecordedEvent
}

// New creates a test bus subscribed to every event type for recording.
// Delivery is synchronous, so an event is recorded by the time its Publish
// call returns. Recording stops when the test completes.
func New(t *testing.T) *Bus {
	t.Helper()

	tb := &Bus{EventBus: eventbus.New()}
	unsubscribe := tb.SubscribeAll(tb.record)
	t.Cleanup(unsubscribe)

	return tb
}

func (tb *Bus) record(event eventbus.Event, payload any) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.events = append(tb.events, RecordedEvent{Event: event, Payload: payload})
}

// Events returns a copy of all recorded events.
func (tb *Bus) Events() []RecordedEvent {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	out := make([]RecordedEvent, len(tb.events))
	copy(out, tb.events)
	return out
}

// Names returns the recorded event names in publish order.
func (tb *Bus) Names() []eventbus.Event {
	events := tb.Events()
	out := make([]eventbus.Event, len(events))
	for i, e := range events {
		out[i] = e.Event
	}
	return out
}

// Reset clears all recorded events.
func (tb *Bus) Reset() {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.events = nil
}

// Count returns how many times event was recorded.
func (tb *Bus) Count(event eventbus.Event) int {
	n := 0
	for _, e := range tb.Events() {
		if e.Event == event {
			n++
		}
	}
	return n
}

// Last returns the payload of the most recent event of the given type.
func (tb *Bus) Last(event eventbus.Event) (any, bool) {
	events := tb.Events()
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Event == event {
			return events[i].Payload, true
		}
	}
	return nil, false
}

// AssertPublished asserts that an event of the given type was recorded.
func (tb *Bus) AssertPublished(t *testing.T, event eventbus.Event) {
	t.Helper()
	if tb.Count(event) == 0 {
		t.Errorf("expected event %q to be published, but it was not", event)
	}
}

// AssertNotPublished asserts that an event of the given type was NOT recorded.
func (tb *Bus) AssertNotPublished(t *testing.T, event eventbus.Event) {
	t.Helper()
	if n := tb.Count(event); n > 0 {
		t.Errorf("expected event %q to NOT be published, but it was published %d times", event, n)
	}
}

// AssertNothingPublished asserts that no event at all was recorded.
func (tb *Bus) AssertNothingPublished(t *testing.T) {
	t.Helper()
	if names := tb.Names(); len(names) > 0 {
		t.Errorf("expected no events, got %v", names)
	}
}

// AssertOrder asserts that exactly the given events were recorded, in order.
func (tb *Bus) AssertOrder(t *testing.T, want ...eventbus.Event) {
	t.Helper()
	if got := tb.Names(); !slices.Equal(got, want) {
		t.Errorf("event order mismatch:\n  want %v\n  got  %v", want, got)
	}
}
