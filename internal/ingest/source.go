package ingest

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"sync"
)

// Row is one timestamped input vector on its way to an Engine.Step or
// Executor.OnData call. Tick is specialised to int64 and Values to
// float64 at the ingestion boundary: the core stays generic (see
// pkg/history.Tick / pkg/history.Float), but a concrete producer needs a
// concrete wire type.
type Row struct {
	Tick   int64
	Values []float64
}

// Source is the strategy interface one producer of rows implements,
// mirroring the teacher's source.TaskSource: a named, independently
// startable/stoppable feed that emits onto its own channel.
type Source interface {
	// Name identifies this source instance for logging and diagnostics.
	Name() string
	// Start begins producing rows. It must return once the source has
	// launched whatever goroutine(s) it needs; Rows is readable
	// immediately after Start returns.
	Start(ctx context.Context) error
	// Stop stops the source and closes its Rows channel.
	Stop() error
	// Rows returns the channel this source emits rows onto.
	Rows() <-chan Row
}

// CSVSource reads rows from a reader in "tick,value0,value1,..." format,
// one row per line, emitting them onto its channel in a single goroutine
// started by Start. It is the reference Source implementation used by the
// demo CLI to drive a streaming engine from a file or stdin.
type CSVSource struct {
	name    string
	r       io.Reader
	out     chan Row
	done    chan struct{}
	once    sync.Once
	stopMu  sync.Mutex
	stopped bool
}

// NewCSVSource creates a CSVSource named name reading CSV rows from r.
// bufferSize sizes the output channel.
func NewCSVSource(name string, r io.Reader, bufferSize int) *CSVSource {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &CSVSource{
		name: name,
		r:    r,
		out:  make(chan Row, bufferSize),
		done: make(chan struct{}),
	}
}

// Name implements Source.
func (s *CSVSource) Name() string { return s.name }

// Rows implements Source.
func (s *CSVSource) Rows() <-chan Row { return s.out }

// Start implements Source. It launches the single reader goroutine. Lines
// with fewer than two fields or an unparsable tick or value are skipped; a
// CSV read error ends the goroutine without closing the process, visible
// only as the channel closing early.
func (s *CSVSource) Start(ctx context.Context) error {
	go s.run(ctx)
	return nil
}

func (s *CSVSource) run(ctx context.Context) {
	defer close(s.out)

	cr := csv.NewReader(bufio.NewReader(s.r))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	for {
		record, err := cr.Read()
		if err == io.EOF {
			return
		}
		if err != nil {
			return
		}
		if len(record) < 2 {
			continue
		}

		row, err := parseRow(record)
		if err != nil {
			continue
		}

		select {
		case s.out <- row:
		case <-ctx.Done():
			return
		case <-s.done:
			return
		}
	}
}

func parseRow(record []string) (Row, error) {
	tick, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return Row{}, fmt.Errorf("ingest: invalid tick %q: %w", record[0], err)
	}
	values := make([]float64, 0, len(record)-1)
	for _, field := range record[1:] {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return Row{}, fmt.Errorf("ingest: invalid value %q: %w", field, err)
		}
		values = append(values, v)
	}
	return Row{Tick: tick, Values: values}, nil
}

// Stop implements Source. It is safe to call multiple times and safe to
// call even if the reader goroutine has already exited on its own (EOF).
func (s *CSVSource) Stop() error {
	s.stopMu.Lock()
	defer s.stopMu.Unlock()
	if s.stopped {
		return nil
	}
	s.stopped = true
	s.once.Do(func() { close(s.done) })
	return nil
}
