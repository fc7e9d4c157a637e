package ingest

import (
	"context"
	"sync"

	"github.com/katalvlaran/dagflow/internal/streamlog"
)

// Event is one row tagged with the source that produced it, as it leaves
// the Multiplexer.
type Event struct {
	Row        Row
	SourceName string
}

// Multiplexer fans the rows of several independent Sources into one
// channel, mirroring the teacher's source.Aggregator: each Source is
// started and given its own forwarder goroutine, and Stop tears every
// forwarder down before closing the merged channel.
type Multiplexer struct {
	sources []Source
	out     chan Event
	logger  streamlog.Logger

	mu        sync.Mutex
	running   bool
	wg        sync.WaitGroup
	stopCh    chan struct{}
	closeOnce sync.Once
}

// NewMultiplexer creates a Multiplexer over sources with an output buffer
// of bufferSize. A nil logger falls back to streamlog.NullLogger.
func NewMultiplexer(sources []Source, bufferSize int, logger streamlog.Logger) *Multiplexer {
	if bufferSize <= 0 {
		bufferSize = 128
	}
	if logger == nil {
		logger = &streamlog.NullLogger{}
	}
	return &Multiplexer{
		sources: sources,
		out:     make(chan Event, bufferSize),
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
}

// Start starts every source and its forwarder goroutine. It is a no-op if
// already running. Once every source's stream has ended the merged channel
// is closed.
func (m *Multiplexer) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return nil
	}
	m.running = true
	m.mu.Unlock()

	for _, src := range m.sources {
		if err := src.Start(ctx); err != nil {
			m.logger.Error("ingest: failed to start source %s: %v", src.Name(), err)
			_ = m.Stop()
			return err
		}
		m.wg.Add(1)
		go m.forward(ctx, src)
	}
	go func() {
		m.wg.Wait()
		m.closeOnce.Do(func() { close(m.out) })
	}()
	return nil
}

func (m *Multiplexer) forward(ctx context.Context, src Source) {
	defer m.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stopCh:
			return
		case row, ok := <-src.Rows():
			if !ok {
				return
			}
			event := Event{Row: row, SourceName: src.Name()}
			select {
			case m.out <- event:
			case <-ctx.Done():
				return
			case <-m.stopCh:
				return
			}
		}
	}
}

// Stop stops every source, waits for forwarders to drain, and closes the
// merged channel. Safe to call more than once.
func (m *Multiplexer) Stop() error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return nil
	}
	m.running = false
	m.mu.Unlock()

	close(m.stopCh)
	for _, src := range m.sources {
		if err := src.Stop(); err != nil {
			m.logger.Error("ingest: failed to stop source %s: %v", src.Name(), err)
		}
	}
	m.wg.Wait()
	m.closeOnce.Do(func() { close(m.out) })
	return nil
}

// Events returns the merged event channel.
func (m *Multiplexer) Events() <-chan Event { return m.out }
