package eventbus_test

import (
	"sync"
	"testing"

	"github.com/colonyops/seqmark/internal/core/eventbus"
	"github.com/colonyops/seqmark/internal/core/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_DeliversSynchronouslyInOrder(t *testing.T) {
	bus := eventbus.New()

	var got []string
	bus.SubscribeLoadingStarted(func(eventbus.LoadingStartedPayload) { got = append(got, "first") })
	bus.SubscribeLoadingStarted(func(eventbus.LoadingStartedPayload) { got = append(got, "second") })

	bus.PublishLoadingStarted(eventbus.LoadingStartedPayload{})

	assert.Equal(t, []string{"first", "second"}, got)
}

func TestPublish_NoSubscribers(t *testing.T) {
	bus := eventbus.New()
	assert.NotPanics(t, func() {
		bus.PublishLoadingEnded(eventbus.LoadingEndedPayload{})
	})
}

func TestSubscribe_TopicsAreIndependent(t *testing.T) {
	bus := eventbus.New()

	var started, ended int
	bus.SubscribeLoadingStarted(func(eventbus.LoadingStartedPayload) { started++ })
	bus.SubscribeLoadingEnded(func(eventbus.LoadingEndedPayload) { ended++ })

	bus.PublishLoadingEnded(eventbus.LoadingEndedPayload{})

	assert.Equal(t, 0, started)
	assert.Equal(t, 1, ended)
}

func TestSubscribe_PayloadIsTyped(t *testing.T) {
	bus := eventbus.New()

	var got selection.Selection
	bus.SubscribeSelectionChanged(func(p eventbus.SelectionChangedPayload) { got = p.Selection })

	bus.PublishSelectionChanged(eventbus.SelectionChangedPayload{Selection: selection.Range(7, 3)})

	assert.Equal(t, selection.Range(3, 7), got)
}

func TestUnsubscribe(t *testing.T) {
	bus := eventbus.New()

	calls := 0
	unsubscribe := bus.SubscribeLoadingStarted(func(eventbus.LoadingStartedPayload) { calls++ })
	require.Equal(t, 1, bus.SubscriberCount(eventbus.EventLoadingStarted))

	bus.PublishLoadingStarted(eventbus.LoadingStartedPayload{})
	unsubscribe()
	unsubscribe()
	bus.PublishLoadingStarted(eventbus.LoadingStartedPayload{})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.SubscriberCount(eventbus.EventLoadingStarted))
}

func TestUnsubscribe_LeavesOthers(t *testing.T) {
	bus := eventbus.New()

	var a, b int
	unA := bus.SubscribeLoadingStarted(func(eventbus.LoadingStartedPayload) { a++ })
	bus.SubscribeLoadingStarted(func(eventbus.LoadingStartedPayload) { b++ })

	unA()
	bus.PublishLoadingStarted(eventbus.LoadingStartedPayload{})

	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
}

func TestUnsubscribe_DuringDelivery(t *testing.T) {
	bus := eventbus.New()

	var calls []string
	var unSecond func()
	bus.SubscribeLoadingStarted(func(eventbus.LoadingStartedPayload) {
		calls = append(calls, "first")
		unSecond()
	})
	unSecond = bus.SubscribeLoadingStarted(func(eventbus.LoadingStartedPayload) {
		calls = append(calls, "second")
	})

	bus.PublishLoadingStarted(eventbus.LoadingStartedPayload{})
	bus.PublishLoadingStarted(eventbus.LoadingStartedPayload{})

	// The in-flight publish keeps its snapshot of subscribers.
	assert.Equal(t, []string{"first", "second", "first"}, calls)
}

func TestPublish_FromInsideHandler(t *testing.T) {
	bus := eventbus.New()

	var order []eventbus.Event
	bus.SubscribeLoadingStarted(func(eventbus.LoadingStartedPayload) {
		order = append(order, eventbus.EventLoadingStarted)
		bus.PublishLoadingEnded(eventbus.LoadingEndedPayload{})
	})
	bus.SubscribeLoadingEnded(func(eventbus.LoadingEndedPayload) {
		order = append(order, eventbus.EventLoadingEnded)
	})

	bus.PublishLoadingStarted(eventbus.LoadingStartedPayload{})

	assert.Equal(t, []eventbus.Event{eventbus.EventLoadingStarted, eventbus.EventLoadingEnded}, order)
}

func TestPanic_RecoveredAndReported(t *testing.T) {
	bus := eventbus.New()

	var reported any
	bus.OnPanic(func(event eventbus.Event, _ any, recovered any) {
		assert.Equal(t, eventbus.EventLoadingStarted, event)
		reported = recovered
	})

	after := false
	bus.SubscribeLoadingStarted(func(eventbus.LoadingStartedPayload) { panic("boom") })
	bus.SubscribeLoadingStarted(func(eventbus.LoadingStartedPayload) { after = true })

	assert.NotPanics(t, func() {
		bus.PublishLoadingStarted(eventbus.LoadingStartedPayload{})
	})
	assert.Equal(t, "boom", reported)
	assert.True(t, after, "subscribers after a panicking one still run")
}

func TestHooks(t *testing.T) {
	bus := eventbus.New()

	var published []eventbus.Event
	var subscribed []eventbus.Event
	bus.OnPublish(func(e eventbus.Event, _ any) { published = append(published, e) })
	bus.OnSubscribe(func(e eventbus.Event) { subscribed = append(subscribed, e) })

	bus.SubscribeStateChanged(func(eventbus.StateChangedPayload) {})
	bus.PublishStateChanged(eventbus.StateChangedPayload{})
	bus.PublishLoadingEnded(eventbus.LoadingEndedPayload{})

	assert.Equal(t, []eventbus.Event{eventbus.EventStateChanged}, subscribed)
	assert.Equal(t, []eventbus.Event{eventbus.EventStateChanged, eventbus.EventLoadingEnded}, published)
}

func TestSubscribeAll(t *testing.T) {
	bus := eventbus.New()

	seen := map[eventbus.Event]int{}
	unsubscribe := bus.SubscribeAll(func(e eventbus.Event, _ any) { seen[e]++ })

	bus.PublishLoadingStarted(eventbus.LoadingStartedPayload{})
	bus.PublishStateChanged(eventbus.StateChangedPayload{})
	bus.PublishCurrentAnnotationChanged(eventbus.CurrentAnnotationChangedPayload{})

	assert.Equal(t, map[eventbus.Event]int{
		eventbus.EventLoadingStarted:           1,
		eventbus.EventStateChanged:             1,
		eventbus.EventCurrentAnnotationChanged: 1,
	}, seen)

	unsubscribe()
	for event := range eventbus.Events {
		assert.Equal(t, 0, bus.SubscriberCount(event), event)
	}
}

func TestSubscriptions_Close(t *testing.T) {
	bus := eventbus.New()

	var subs eventbus.Subscriptions
	calls := 0
	subs.Add(bus.SubscribeLoadingStarted(func(eventbus.LoadingStartedPayload) { calls++ }))
	subs.Add(bus.SubscribeLoadingEnded(func(eventbus.LoadingEndedPayload) { calls++ }))

	subs.Close()
	subs.Close()

	bus.PublishLoadingStarted(eventbus.LoadingStartedPayload{})
	bus.PublishLoadingEnded(eventbus.LoadingEndedPayload{})
	assert.Equal(t, 0, calls)
}

func TestConcurrentPublishSubscribe(t *testing.T) {
	bus := eventbus.New()

	var mu sync.Mutex
	total := 0

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			un := bus.SubscribeLoadingStarted(func(eventbus.LoadingStartedPayload) {
				mu.Lock()
				total++
				mu.Unlock()
			})
			defer un()
		}()
		go func() {
			defer wg.Done()
			bus.PublishLoadingStarted(eventbus.LoadingStartedPayload{})
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, bus.SubscriberCount(eventbus.EventLoadingStarted))
	mu.Lock()
	assert.LessOrEqual(t, total, 8*8)
	mu.Unlock()
}
