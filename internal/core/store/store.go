// Package store owns the editor state and is the single place that publishes
// change notifications on the event bus.
//
// Every operation swaps the store's snapshot under a mutex, releases it, and
// then publishes synchronously. Subscribers may call back into the store.
// Failed operations leave the state untouched and publish nothing.
//
// The store may be used from several goroutines. Each change bumps
// State.Version under the mutex, and the version travels with every state,
// selection and focus payload. Publishes from different goroutines are not
// ordered against each other, so a subscriber that needs the latest state
// should use the bus's Subscribe*Latest variants, which drop payloads older
// than one already delivered.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/colonyops/seqmark/internal/core/annotation"
	"github.com/colonyops/seqmark/internal/core/config"
	"github.com/colonyops/seqmark/internal/core/eventbus"
	"github.com/colonyops/seqmark/internal/core/loader"
	"github.com/colonyops/seqmark/internal/core/logging"
	"github.com/colonyops/seqmark/internal/core/sequence"
	"github.com/colonyops/seqmark/internal/core/state"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrLoadInProgress is returned when a load is requested while another file
// load has not finished.
var ErrLoadInProgress = errors.New("load already in progress")

// DemoSource is the State.Source value after LoadFromDemo.
const DemoSource = "demo"

// Store holds the single editor state snapshot.
type Store struct {
	bus    *eventbus.EventBus
	loader *loader.Loader
	demo   config.Demo
	log    zerolog.Logger

	loading atomic.Bool

	mu    sync.Mutex
	state state.State
}

// Option configures a Store.
type Option func(*Store)

// WithLabels sets the initial label collection.
func WithLabels(labels annotation.Labels) Option {
	return func(s *Store) {
		s.state.Labels = labels
	}
}

// WithDemo sets the data set used by LoadFromDemo.
func WithDemo(demo config.Demo) Option {
	return func(s *Store) {
		s.demo = demo
	}
}

// WithLoader sets the loader used by LoadFromFile.
func WithLoader(l *loader.Loader) Option {
	return func(s *Store) {
		if l != nil {
			s.loader = l
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.log = logger
	}
}

// New creates a store publishing on bus. Without options the store starts
// with no labels, a default loader, and the built-in demo data.
func New(bus *eventbus.EventBus, opts ...Option) *Store {
	if bus == nil {
		bus = eventbus.New()
	}

	s := &Store{
		bus:    bus,
		loader: loader.New(),
		log:    zerolog.Nop(),
		state:  state.New(annotation.NewLabels()),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.demo.IsZero() {
		if demo, err := config.BuiltinDemo(); err == nil {
			s.demo = demo
		} else {
			s.log.Warn().Err(err).Msg("built-in demo unavailable")
		}
	}

	return s
}

// Bus returns the bus the store publishes on.
func (s *Store) Bus() *eventbus.EventBus {
	return s.bus
}

// State returns the current snapshot. Later operations never modify a
// returned snapshot.
func (s *Store) State() state.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Loading reports whether a file load is in flight.
func (s *Store) Loading() bool {
	return s.loading.Load()
}

// LoadFromFile ingests src as the new sequence and resets the display bounds
// to cover it. Labels and selection are kept. It publishes loading-started,
// then loading-ended and state-changed on success or loading-failed when the
// load is canceled. A second call while one is running returns
// ErrLoadInProgress without publishing.
func (s *Store) LoadFromFile(ctx context.Context, src loader.Source) error {
	if !s.loading.CompareAndSwap(false, true) {
		s.log.Debug().Err(ErrLoadInProgress).Msg("load rejected")
		return ErrLoadInProgress
	}
	defer s.loading.Store(false)

	name := sourceName(src)
	ctx = logging.WithSource(logging.WithLoadID(ctx, uuid.NewString()), name)

	s.bus.PublishLoadingStarted(eventbus.LoadingStartedPayload{})

	seq, stats, err := s.loader.LoadStats(ctx, src)
	if err != nil {
		s.log.Warn().Ctx(ctx).Err(err).Msg("load failed")
		s.bus.PublishLoadingFailed(eventbus.LoadingFailedPayload{Err: err})
		return fmt.Errorf("load %s: %w", name, err)
	}

	s.mu.Lock()
	s.state.Sequence = seq
	s.state.Bounds = sequence.BoundsFor(seq)
	s.state.Source = name
	s.state.Version++
	snap := s.state
	s.mu.Unlock()

	s.log.Debug().Ctx(ctx).
		Int("symbols", seq.Len()).
		Int("windows", stats.Windows).
		Int("skipped", stats.Skipped).
		Str("header", stats.Header).
		Msg("load finished")

	s.bus.PublishLoadingEnded(eventbus.LoadingEndedPayload{})
	s.bus.PublishStateChanged(eventbus.StateChangedPayload{State: snap})
	return nil
}

// LoadFromDemo replaces the whole state with the demo data set and publishes
// state-changed. It is rejected while a file load is running.
func (s *Store) LoadFromDemo() error {
	if s.loading.Load() {
		s.log.Debug().Err(ErrLoadInProgress).Msg("demo load rejected")
		return ErrLoadInProgress
	}

	seq := s.demo.SequenceData()
	next := state.New(s.demo.LabelSet())
	next.Sequence = seq
	next.Bounds = sequence.BoundsFor(seq)
	next.Source = DemoSource

	s.mu.Lock()
	next.Version = s.state.Version + 1
	s.state = next
	s.mu.Unlock()

	s.log.Debug().Int("symbols", seq.Len()).Int("labels", next.Labels.Len()).Msg("demo loaded")
	s.bus.PublishStateChanged(eventbus.StateChangedPayload{State: next})
	return nil
}

func sourceName(src loader.Source) string {
	if n, ok := src.(interface{ Name() string }); ok {
		return n.Name()
	}
	return "input"
}
