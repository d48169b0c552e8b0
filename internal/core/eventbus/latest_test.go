package eventbus_test

import (
	"testing"

	"github.com/colonyops/seqmark/internal/core/eventbus"
	"github.com/colonyops/seqmark/internal/core/selection"
	"github.com/colonyops/seqmark/internal/core/state"
	"github.com/stretchr/testify/assert"
)

func stateAt(version uint64) eventbus.StateChangedPayload {
	return eventbus.StateChangedPayload{State: state.State{Version: version}}
}

func TestLatest_DropsOlderVersions(t *testing.T) {
	bus := eventbus.New()

	var got []uint64
	bus.SubscribeStateChangedLatest(func(p eventbus.StateChangedPayload) {
		got = append(got, p.State.Version)
	})

	bus.PublishStateChanged(stateAt(2))
	bus.PublishStateChanged(stateAt(1))
	bus.PublishStateChanged(stateAt(3))

	assert.Equal(t, []uint64{2, 3}, got)
}

func TestLatest_EqualVersionsPass(t *testing.T) {
	bus := eventbus.New()

	calls := 0
	bus.SubscribeSelectionChangedLatest(func(eventbus.SelectionChangedPayload) { calls++ })

	bus.PublishSelectionChanged(eventbus.SelectionChangedPayload{Selection: selection.Selection{}})
	bus.PublishSelectionChanged(eventbus.SelectionChangedPayload{Selection: selection.Selection{}})

	assert.Equal(t, 2, calls)
}

func TestLatest_NestedPublishRunsAfterHandlerReturns(t *testing.T) {
	bus := eventbus.New()

	var order []string
	bus.SubscribeStateChangedLatest(func(p eventbus.StateChangedPayload) {
		order = append(order, "enter")
		if p.State.Version == 1 {
			bus.PublishStateChanged(stateAt(2))
		}
		order = append(order, "leave")
	})

	bus.PublishStateChanged(stateAt(1))

	assert.Equal(t, []string{"enter", "leave", "enter", "leave"}, order)
}

func TestLatest_PanicDoesNotWedgeHandler(t *testing.T) {
	bus := eventbus.New()

	var got []uint64
	bus.SubscribeStateChangedLatest(func(p eventbus.StateChangedPayload) {
		if p.State.Version == 1 {
			panic("boom")
		}
		got = append(got, p.State.Version)
	})

	assert.NotPanics(t, func() { bus.PublishStateChanged(stateAt(1)) })
	bus.PublishStateChanged(stateAt(2))

	assert.Equal(t, []uint64{2}, got)
}

func TestLatest_Unsubscribe(t *testing.T) {
	bus := eventbus.New()

	calls := 0
	unsubscribe := bus.SubscribeCurrentAnnotationChangedLatest(func(eventbus.CurrentAnnotationChangedPayload) { calls++ })

	bus.PublishCurrentAnnotationChanged(eventbus.CurrentAnnotationChangedPayload{Version: 1})
	unsubscribe()
	bus.PublishCurrentAnnotationChanged(eventbus.CurrentAnnotationChangedPayload{Version: 2})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.SubscriberCount(eventbus.EventCurrentAnnotationChanged))
}
