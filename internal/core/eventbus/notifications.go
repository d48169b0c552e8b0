package eventbus

import (
	"context"
	"errors"
	"fmt"

	"github.com/colonyops/seqmark/internal/core/annotation"
	"github.com/colonyops/seqmark/internal/core/notify"
)

// NotificationRouter maps store events to user-facing notifications.
type NotificationRouter struct {
	bus  *EventBus
	sink func(notify.Notification)
	subs Subscriptions
}

// NewNotificationRouter constructs a router that hands every notification to
// sink.
func NewNotificationRouter(bus *EventBus, sink func(notify.Notification)) *NotificationRouter {
	return &NotificationRouter{bus: bus, sink: sink}
}

// Register subscribes all supported event mappings.
func (r *NotificationRouter) Register() {
	if r == nil || r.bus == nil || r.sink == nil {
		return
	}

	r.subs.Add(r.bus.SubscribeLoadingStarted(func(LoadingStartedPayload) {
		r.notifyf(notify.LevelInfo, "loading started")
	}))

	r.subs.Add(r.bus.SubscribeLoadingEnded(func(LoadingEndedPayload) {
		r.notifyf(notify.LevelInfo, "loading ended")
	}))

	r.subs.Add(r.bus.SubscribeLoadingFailed(func(p LoadingFailedPayload) {
		level := notify.LevelError
		if isCancel(p.Err) {
			level = notify.LevelWarning
		}
		r.notifyf(level, "loading failed: %v", p.Err)
	}))

	r.subs.Add(r.bus.SubscribeSelectionChangedLatest(func(p SelectionChangedPayload) {
		r.notifyf(notify.LevelInfo, "selection %s (%s)", p.Selection, p.Selection.State())
	}))

	r.subs.Add(r.bus.SubscribeCurrentAnnotationChangedLatest(func(p CurrentAnnotationChangedPayload) {
		c := p.Current
		if c.AnnotationIndex == annotation.NoIndex {
			r.notifyf(notify.LevelWarning, "annotation %d-%d not found on label %d",
				c.Annotation.PositionFrom, c.Annotation.PositionTo, c.LabelIndex)
			return
		}
		r.notifyf(notify.LevelInfo, "annotation %d of label %d selected", c.AnnotationIndex, c.LabelIndex)
	}))

	r.subs.Add(r.bus.SubscribeStateChangedLatest(func(p StateChangedPayload) {
		s := p.State
		r.notifyf(notify.LevelInfo, "state changed: %d symbols, %d labels, %d annotations",
			s.Sequence.Len(), s.Labels.Len(), s.AnnotationCount())
	}))
}

// Close removes every subscription made by Register.
func (r *NotificationRouter) Close() {
	if r == nil {
		return
	}
	r.subs.Close()
}

func (r *NotificationRouter) notifyf(level notify.Level, format string, args ...any) {
	r.sink(notify.Notification{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
}

func isCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
