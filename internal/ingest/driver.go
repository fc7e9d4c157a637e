// Package ingest drives one or more row sources into a streaming engine
// or aggregation executor, one row per tick. It adapts the teacher's
// internal/scheduler (Source strategy + Aggregator fan-in + processing
// loop) to the row-at-a-time shape pkg/engine.Engine and pkg/aggexec.Executor
// expect instead of the teacher's task-queue shape.
package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/katalvlaran/dagflow/internal/streamlog"
	apperrors "github.com/katalvlaran/dagflow/pkg/errors"
	"github.com/katalvlaran/dagflow/pkg/parallel"
	"github.com/katalvlaran/dagflow/pkg/timing"
)

// Sink is the per-source destination for rows: typically an *engine.Engine
// Step method or an *aggexec.Executor OnData call closed over one group
// id. Each Sink belongs to exactly one source and is never called from
// more than one goroutine at a time, satisfying the strict single-
// threaded, monotonic-tick contract pkg/engine and pkg/aggexec require.
type Sink func(tick int64, values []float64) error

// DriverConfig configures batching and concurrency for a Driver.
type DriverConfig struct {
	// BatchSize is how many buffered rows for one source trigger an
	// immediate flush of that source's batch.
	BatchSize int
	// FlushInterval forces a flush of every source with pending rows even
	// if BatchSize has not been reached; zero disables time-based flush.
	FlushInterval time.Duration
	// MaxWorkers bounds how many sources are flushed concurrently. Since
	// each source owns an independent Sink (and, typically, an independent
	// engine instance), concurrent flush across sources is safe per the
	// core's concurrency model: "an application may run many engine
	// instances in parallel."
	MaxWorkers int
}

// DefaultDriverConfig returns sensible defaults: small batches, a short
// flush interval, and worker-count-bounded concurrency.
func DefaultDriverConfig() DriverConfig {
	return DriverConfig{
		BatchSize:     32,
		FlushInterval: 50 * time.Millisecond,
		MaxWorkers:    4,
	}
}

// pending is one source's buffered-but-not-yet-flushed rows.
type pending struct {
	mu   sync.Mutex
	rows []Row
}

// Driver consumes a Multiplexer's merged event stream, batches rows per
// source, and flushes each source's batch through its registered Sink.
// Distinct sources flush concurrently (bounded by MaxWorkers); rows within
// one source's batch are applied to its Sink strictly in arrival order,
// preserving the monotonic-tick contract of pkg/engine.Engine.Step.
type Driver struct {
	mux    *Multiplexer
	sinks  map[string]Sink
	cfg    DriverConfig
	logger streamlog.Logger
	clock  Clock
	timer  *timing.Timer

	mu       sync.Mutex
	queues   map[string]*pending
	rowCount int64
}

// NewDriver creates a Driver reading from mux and dispatching to sinks
// (keyed by source name). A nil logger falls back to streamlog.NullLogger
// and a nil clock falls back to a RealClock.
func NewDriver(mux *Multiplexer, sinks map[string]Sink, cfg DriverConfig, logger streamlog.Logger, clock Clock) *Driver {
	if logger == nil {
		logger = &streamlog.NullLogger{}
	}
	if clock == nil {
		clock = NewRealClock()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 1
	}
	queues := make(map[string]*pending, len(sinks))
	for name := range sinks {
		queues[name] = &pending{}
	}
	return &Driver{
		mux:    mux,
		sinks:  sinks,
		cfg:    cfg,
		logger: logger,
		clock:  clock,
		queues: queues,
		timer:  timing.NewTimer("ingest.driver", timing.WithLogger(logger)),
	}
}

// Run drives events from the multiplexer until its channel closes or ctx
// is cancelled, flushing periodically on FlushInterval in addition to the
// per-batch-size triggers. When the channel closes or ctx is cancelled it
// flushes everything still buffered before returning. A Sink error during
// any flush is returned at once; rows still buffered at that point are not
// flushed.
func (d *Driver) Run(ctx context.Context) error {
	var flushTicker *time.Ticker
	var tickC <-chan time.Time
	if d.cfg.FlushInterval > 0 {
		flushTicker = d.clock.NewTicker(d.cfg.FlushInterval)
		defer flushTicker.Stop()
		tickC = flushTicker.C
	}

	for {
		select {
		case <-ctx.Done():
			return d.flushAll(context.WithoutCancel(ctx))
		case <-tickC:
			if err := d.flushAll(ctx); err != nil {
				return err
			}
		case ev, ok := <-d.mux.Events():
			if !ok {
				return d.flushAll(ctx)
			}
			if err := d.enqueue(ctx, ev); err != nil {
				return err
			}
		}
	}
}

// enqueue buffers one event's row, flushing its source's batch immediately
// if it just reached BatchSize.
func (d *Driver) enqueue(ctx context.Context, ev Event) error {
	d.mu.Lock()
	q, ok := d.queues[ev.SourceName]
	d.mu.Unlock()
	if !ok {
		d.logger.Warn("ingest: event from unregistered source %q dropped", ev.SourceName)
		return nil
	}

	q.mu.Lock()
	q.rows = append(q.rows, ev.Row)
	full := len(q.rows) >= d.cfg.BatchSize
	q.mu.Unlock()

	if full {
		return d.flushSource(ctx, ev.SourceName)
	}
	return nil
}

// flushAll flushes every source with buffered rows, concurrently bounded
// by MaxWorkers.
func (d *Driver) flushAll(ctx context.Context) error {
	d.mu.Lock()
	names := make([]string, 0, len(d.queues))
	for name, q := range d.queues {
		q.mu.Lock()
		if len(q.rows) > 0 {
			names = append(names, name)
		}
		q.mu.Unlock()
	}
	d.mu.Unlock()

	if len(names) == 0 {
		return nil
	}

	cfg := parallel.DefaultPoolConfig().WithWorkers(d.cfg.MaxWorkers)
	_, err := parallel.ForEach(ctx, names, cfg, func(ctx context.Context, name string) error {
		return d.flushSource(ctx, name)
	})
	return err
}

// flushSource drains one source's batch and applies it to the source's
// Sink in order, timing the batch under the "flush:<source>" phase.
func (d *Driver) flushSource(_ context.Context, name string) error {
	d.mu.Lock()
	q := d.queues[name]
	sink := d.sinks[name]
	d.mu.Unlock()

	q.mu.Lock()
	batch := q.rows
	q.rows = nil
	q.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	phase := d.timer.Start(fmt.Sprintf("flush:%s", name))
	defer phase.Stop()

	for _, row := range batch {
		if err := sink(row.Tick, row.Values); err != nil {
			d.logger.Error("ingest: sink %q rejected tick %v: %v", name, row.Tick, err)
			return apperrors.Wrap(apperrors.CodeSourceError, fmt.Sprintf("sink %q rejected tick %v", name, row.Tick), err)
		}
	}
	d.mu.Lock()
	d.rowCount += int64(len(batch))
	d.mu.Unlock()
	return nil
}

// RowCount reports how many rows have been successfully applied so far.
func (d *Driver) RowCount() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rowCount
}

// Timer exposes the driver's phase timer for diagnostics (e.g. printing a
// per-source flush-latency summary after a run).
func (d *Driver) Timer() *timing.Timer { return d.timer }
