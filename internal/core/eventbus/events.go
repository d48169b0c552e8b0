// Package eventbus provides a typed publish/subscribe event bus between the
// store and the components that render it.
//
// Delivery is synchronous: every subscriber registered for an event has run
// by the time the Publish call returns, in registration order. Publishes from
// different goroutines are not ordered against each other. The
// Subscribe*Latest variants compare the state version carried by the payload
// and never hand a handler something older than what it already saw.
package eventbus

import (
	"github.com/colonyops/seqmark/internal/core/annotation"
	"github.com/colonyops/seqmark/internal/core/selection"
	"github.com/colonyops/seqmark/internal/core/state"
)

// Event names a topic on the bus.
type Event string

// Topics consumers rely on. Keep list sorted A-Z.
const (
	EventCurrentAnnotationChanged Event = "current-annotation-changed"
	EventLoadingEnded             Event = "loading-ended"
	EventLoadingFailed            Event = "loading-failed"
	EventLoadingStarted           Event = "loading-started"
	EventSelectionChanged         Event = "selection-changed"
	EventStateChanged             Event = "state-changed"
)

// Events maps every topic to its payload type.
var Events = map[Event]any{
	EventCurrentAnnotationChanged: CurrentAnnotationChangedPayload{},
	EventLoadingEnded:             LoadingEndedPayload{},
	EventLoadingFailed:            LoadingFailedPayload{},
	EventLoadingStarted:           LoadingStartedPayload{},
	EventSelectionChanged:         SelectionChangedPayload{},
	EventStateChanged:             StateChangedPayload{},
}

// StateChangedPayload is emitted after any change to the sequence, bounds or
// labels.
type StateChangedPayload struct {
	State state.State
}

// SelectionChangedPayload is emitted after every selection transition.
type SelectionChangedPayload struct {
	Selection selection.Selection
	// Version is the state version the selection belongs to.
	Version uint64
}

// LoadingStartedPayload is emitted when a file load begins.
type LoadingStartedPayload struct{}

// LoadingEndedPayload is emitted when a file load has produced a sequence.
type LoadingEndedPayload struct{}

// LoadingFailedPayload is emitted when a file load is abandoned.
type LoadingFailedPayload struct {
	Err error
}

// CurrentAnnotationChangedPayload is emitted when an annotation is focused.
type CurrentAnnotationChangedPayload struct {
	Current annotation.CurrentAnnotation
	// Version is the state version the focus belongs to.
	Version uint64
}
