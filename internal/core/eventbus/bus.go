package eventbus

import (
	"sync"
)

type subscriber struct {
	id uint64
	fn func(any)
}

// EventBus dispatches published payloads to subscribers synchronously.
// It is safe for concurrent use; subscribers may publish or subscribe from
// inside a handler.
type EventBus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[Event][]subscriber

	hooks hooks
}

// New creates an empty bus.
func New() *EventBus {
	return &EventBus{
		subs: make(map[Event][]subscriber),
	}
}

// subscribe registers fn for event and returns a func that removes it.
// The returned func is safe to call more than once.
func (bus *EventBus) subscribe(event Event, fn func(any)) func() {
	bus.mu.Lock()
	bus.nextID++
	id := bus.nextID
	bus.subs[event] = append(bus.subs[event], subscriber{id: id, fn: fn})
	bus.mu.Unlock()

	bus.runOnSubscribe(event)

	var once sync.Once
	return func() {
		once.Do(func() { bus.unsubscribe(event, id) })
	}
}

func (bus *EventBus) unsubscribe(event Event, id uint64) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	subs := bus.subs[event]
	for i, s := range subs {
		if s.id == id {
			next := make([]subscriber, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			bus.subs[event] = next
			return
		}
	}
}

// SubscriberCount returns the number of handlers registered for event.
func (bus *EventBus) SubscriberCount(event Event) int {
	bus.mu.RLock()
	defer bus.mu.RUnlock()
	return len(bus.subs[event])
}

// send delivers payload to every current subscriber of event. A panicking
// subscriber is recovered and reported through OnPanic hooks; the rest still
// run.
func (bus *EventBus) send(event Event, payload any) {
	bus.mu.RLock()
	subs := bus.subs[event]
	bus.mu.RUnlock()

	bus.runOnPublish(event, payload)

	for _, s := range subs {
		bus.deliver(event, payload, s.fn)
	}
}

func (bus *EventBus) deliver(event Event, payload any, fn func(any)) {
	defer func() {
		if r := recover(); r != nil {
			bus.runOnPanic(event, payload, r)
		}
	}()
	fn(payload)
}

// PublishStateChanged publishes on EventStateChanged.
func (bus *EventBus) PublishStateChanged(p StateChangedPayload) {
	bus.send(EventStateChanged, p)
}

// SubscribeStateChanged registers fn for EventStateChanged.
func (bus *EventBus) SubscribeStateChanged(fn func(StateChangedPayload)) func() {
	return bus.subscribe(EventStateChanged, func(p any) { fn(p.(StateChangedPayload)) })
}

// PublishSelectionChanged publishes on EventSelectionChanged.
func (bus *EventBus) PublishSelectionChanged(p SelectionChangedPayload) {
	bus.send(EventSelectionChanged, p)
}

// SubscribeSelectionChanged registers fn for EventSelectionChanged.
func (bus *EventBus) SubscribeSelectionChanged(fn func(SelectionChangedPayload)) func() {
	return bus.subscribe(EventSelectionChanged, func(p any) { fn(p.(SelectionChangedPayload)) })
}

// PublishLoadingStarted publishes on EventLoadingStarted.
func (bus *EventBus) PublishLoadingStarted(p LoadingStartedPayload) {
	bus.send(EventLoadingStarted, p)
}

// SubscribeLoadingStarted registers fn for EventLoadingStarted.
func (bus *EventBus) SubscribeLoadingStarted(fn func(LoadingStartedPayload)) func() {
	return bus.subscribe(EventLoadingStarted, func(p any) { fn(p.(LoadingStartedPayload)) })
}

// PublishLoadingEnded publishes on EventLoadingEnded.
func (bus *EventBus) PublishLoadingEnded(p LoadingEndedPayload) {
	bus.send(EventLoadingEnded, p)
}

// SubscribeLoadingEnded registers fn for EventLoadingEnded.
func (bus *EventBus) SubscribeLoadingEnded(fn func(LoadingEndedPayload)) func() {
	return bus.subscribe(EventLoadingEnded, func(p any) { fn(p.(LoadingEndedPayload)) })
}

// PublishLoadingFailed publishes on EventLoadingFailed.
func (bus *EventBus) PublishLoadingFailed(p LoadingFailedPayload) {
	bus.send(EventLoadingFailed, p)
}

// SubscribeLoadingFailed registers fn for EventLoadingFailed.
func (bus *EventBus) SubscribeLoadingFailed(fn func(LoadingFailedPayload)) func() {
	return bus.subscribe(EventLoadingFailed, func(p any) { fn(p.(LoadingFailedPayload)) })
}

// PublishCurrentAnnotationChanged publishes on EventCurrentAnnotationChanged.
func (bus *EventBus) PublishCurrentAnnotationChanged(p CurrentAnnotationChangedPayload) {
	bus.send(EventCurrentAnnotationChanged, p)
}

// SubscribeCurrentAnnotationChanged registers fn for EventCurrentAnnotationChanged.
func (bus *EventBus) SubscribeCurrentAnnotationChanged(fn func(CurrentAnnotationChangedPayload)) func() {
	return bus.subscribe(EventCurrentAnnotationChanged, func(p any) { fn(p.(CurrentAnnotationChangedPayload)) })
}

// SubscribeAll registers fn for every topic in Events. The returned func
// removes all of them.
func (bus *EventBus) SubscribeAll(fn func(Event, any)) func() {
	var subs Subscriptions
	for event := range Events {
		subs.Add(bus.subscribe(event, func(p any) { fn(event, p) }))
	}
	return subs.Close
}

// Subscriptions collects unsubscribe funcs so a consumer can drop all of its
// handlers when it goes away. The zero value is ready to use.
type Subscriptions struct {
	mu  sync.Mutex
	fns []func()
}

// Add records an unsubscribe func.
func (s *Subscriptions) Add(unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fns = append(s.fns, unsubscribe)
}

// Close calls every recorded unsubscribe func and forgets them.
func (s *Subscriptions) Close() {
	s.mu.Lock()
	fns := s.fns
	s.fns = nil
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
