package eventbus

import "sync"

// latest wraps a handler so it only ever moves forward in state version.
// A payload older than one already delivered is dropped. A payload that
// arrives while the handler is running, from a nested publish or another
// goroutine, is parked and handed over once the running call returns; only
// the newest parked payload is kept.
type latest[P any] struct {
	version func(P) uint64
	fn      func(P)

	mu         sync.Mutex
	last       uint64
	delivering bool
	pending    *P
}

func newLatest[P any](version func(P) uint64, fn func(P)) *latest[P] {
	return &latest[P]{version: version, fn: fn}
}

func (l *latest[P]) deliver(p P) {
	l.mu.Lock()
	if l.version(p) < l.last {
		l.mu.Unlock()
		return
	}
	if l.delivering {
		if l.pending == nil || l.version(*l.pending) <= l.version(p) {
			l.pending = &p
		}
		l.mu.Unlock()
		return
	}
	l.delivering = true

	// fn runs unlocked; a panic must not leave the handler wedged.
	defer func() {
		if r := recover(); r != nil {
			l.mu.Lock()
			l.delivering = false
			l.pending = nil
			l.mu.Unlock()
			panic(r)
		}
	}()

	for {
		l.last = l.version(p)
		l.mu.Unlock()

		l.fn(p)

		l.mu.Lock()
		next := l.pending
		l.pending = nil
		if next == nil || l.version(*next) < l.last {
			l.delivering = false
			l.mu.Unlock()
			return
		}
		p = *next
	}
}

// SubscribeStateChangedLatest registers fn for EventStateChanged, skipping
// snapshots older than the newest one fn has seen.
func (bus *EventBus) SubscribeStateChangedLatest(fn func(StateChangedPayload)) func() {
	l := newLatest(func(p StateChangedPayload) uint64 { return p.State.Version }, fn)
	return bus.SubscribeStateChanged(l.deliver)
}

// SubscribeSelectionChangedLatest is SubscribeSelectionChanged with stale
// payloads dropped.
func (bus *EventBus) SubscribeSelectionChangedLatest(fn func(SelectionChangedPayload)) func() {
	l := newLatest(func(p SelectionChangedPayload) uint64 { return p.Version }, fn)
	return bus.SubscribeSelectionChanged(l.deliver)
}

// SubscribeCurrentAnnotationChangedLatest is SubscribeCurrentAnnotationChanged
// with stale payloads dropped.
func (bus *EventBus) SubscribeCurrentAnnotationChangedLatest(fn func(CurrentAnnotationChangedPayload)) func() {
	l := newLatest(func(p CurrentAnnotationChangedPayload) uint64 { return p.Version }, fn)
	return bus.SubscribeCurrentAnnotationChanged(l.deliver)
}
