// Package app implements the application layer for intern.
package app

import (
	"context"
	"sync"

	"go.trai.ch/intern/internal/core/domain"
	"go.trai.ch/intern/internal/core/ports"
	"go.trai.ch/intern/internal/engine/pool"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	clock        ports.Clock
	logger       ports.Logger
	tracer       ports.Tracer
	telemetry    ports.Telemetry
	source       ports.LineSource

	mu   sync.Mutex
	cfg  *domain.Config
	pool *pool.Pool
	held []*domain.InternedString
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	clk ports.Clock,
	log ports.Logger,
	tracer ports.Tracer,
	telemetry ports.Telemetry,
	source ports.LineSource,
) *App {
	return &App{
		configLoader: loader,
		clock:        clk,
		logger:       log,
		tracer:       tracer,
		telemetry:    telemetry,
		source:       source,
	}
}

// Open loads the configuration at path and builds a fresh pool from it.
// jsonLogs switches the logger to JSON regardless of the file.
func (a *App) Open(path string, jsonLogs bool) error {
	cfg, err := a.configLoader.Load(path)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	if jsonLogs {
		cfg.JSONLogs = true
	}
	if cfg.JSONLogs {
		if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
			l.SetJSON(true)
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.releaseLocked()
	a.cfg = cfg
	a.pool = a.newPool(cfg)
	return nil
}

func (a *App) newPool(cfg *domain.Config) *pool.Pool {
	return pool.New(
		pool.WithConfig(cfg.Pool),
		pool.WithClock(a.clock),
		pool.WithLogger(a.logger),
	)
}

// state returns the active configuration and pool, building both from
// defaults when Open has not been called.
func (a *App) state() (*domain.Config, *pool.Pool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.pool == nil {
		a.cfg = domain.DefaultConfig()
		a.pool = a.newPool(a.cfg)
	}
	return a.cfg, a.pool
}

// Put interns values and returns one holder per value, in order.
// Empty values yield the empty handle.
func (a *App) Put(ctx context.Context, values []string) ([]*domain.InternedString, error) {
	if len(values) == 0 {
		return nil, domain.ErrNoInputs
	}

	_, p := a.state()

	_, span := a.tracer.Start(ctx, "put", ports.WithAttribute("values", len(values)))
	defer span.End()

	handles := make([]*domain.InternedString, len(values))
	for i, v := range values {
		handles[i] = p.Intern(v)
	}

	span.SetAttribute("entries", p.Size())
	return handles, nil
}

// Collect forces a collection pass and returns the number of reclaimed entries.
func (a *App) Collect(ctx context.Context) int {
	_, p := a.state()

	_, span := a.tracer.Start(ctx, "collect")
	defer span.End()

	n := p.Collect()
	span.SetAttribute("reclaimed", n)
	return n
}

// Stats returns a snapshot of the pool.
func (a *App) Stats() domain.PoolStats {
	_, p := a.state()
	return p.Stats()
}

// Values returns the pooled values in byte order.
func (a *App) Values() []string {
	_, p := a.state()
	return p.Values()
}

// releaseLocked drops every holder kept by Load.
func (a *App) releaseLocked() {
	for _, h := range a.held {
		h.Release()
	}
	a.held = nil
}

// Close flushes the telemetry session.
func (a *App) Close() error {
	if err := a.telemetry.Close(); err != nil {
		return zerr.Wrap(err, "failed to close telemetry")
	}
	return nil
}
