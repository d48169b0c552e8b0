package commands

import (
	"context"

	"github.com/colonyops/seqmark/internal/core/config"
	"github.com/colonyops/seqmark/internal/core/eventbus"
	"github.com/colonyops/seqmark/internal/core/loader"
	"github.com/colonyops/seqmark/internal/core/logging"
	"github.com/colonyops/seqmark/internal/core/notify"
	"github.com/colonyops/seqmark/internal/core/store"
	"github.com/rs/zerolog"
)

// editor wires a store to its bus, debug logging and notification log for
// one command invocation.
type editor struct {
	bus    *eventbus.EventBus
	store  *store.Store
	notes  *notify.Log
	router *eventbus.NotificationRouter
}

func newEditor(cfg *config.Config, logger zerolog.Logger, loaderOpts ...loader.Option) *editor {
	bus := eventbus.New()
	eventbus.RegisterDebugLogger(bus, logging.ComponentOf(logger, "eventbus"))

	opts := append(cfg.LoaderOptions(), loaderOpts...)
	opts = append(opts, loader.WithLogger(logging.ComponentOf(logger, "loader")))

	e := &editor{
		bus:   bus,
		notes: &notify.Log{},
		store: store.New(bus,
			store.WithLabels(cfg.InitialLabels()),
			store.WithDemo(cfg.Demo),
			store.WithLoader(loader.New(opts...)),
			store.WithLogger(logging.ComponentOf(logger, "store")),
		),
	}

	e.router = eventbus.NewNotificationRouter(bus, func(n notify.Notification) { e.notes.Add(n) })
	e.router.Register()
	return e
}

// loadFile opens path and loads it into the store.
func (e *editor) loadFile(ctx context.Context, path string) error {
	src, err := loader.OpenFile(path)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	return e.store.LoadFromFile(ctx, src)
}

func (e *editor) Close() {
	e.router.Close()
}
