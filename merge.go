package logmerge

import (
	"container/heap"
	"context"
	"fmt"
	"sync"

	"github.com/creastat/logmerge/core"
	"github.com/rs/zerolog"
)

// DefaultMaxBuffer is the global read-ahead ceiling used when none is
// configured.
const DefaultMaxBuffer = 64

// Merger merges independently sorted sources into a single sink in
// non-decreasing timestamp order. Each source is prefetched by its own worker
// goroutine under a shared read-ahead budget, so slow sources overlap their
// fetch latency with fast ones without buffering unboundedly.
//
// A Merger holds only configuration and may be reused for multiple runs.
type Merger struct {
	maxBuffer int
	logger    zerolog.Logger
	observer  Observer
}

// Option configures a Merger.
type Option func(*Merger)

// WithMaxBuffer sets the total number of entries that may sit in read-ahead
// buffers across all sources at any time. Values below 1 are raised to 1.
func WithMaxBuffer(n int) Option {
	return func(m *Merger) {
		m.maxBuffer = n
	}
}

// WithLogger sets the logger used by the engine. The default discards all
// output.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Merger) {
		m.logger = logger
	}
}

// WithObserver sets the metrics observer notified by the engine.
func WithObserver(obs Observer) Option {
	return func(m *Merger) {
		m.observer = obs
	}
}

// New creates a Merger with the given options.
func New(opts ...Option) *Merger {
	m := &Merger{
		maxBuffer: DefaultMaxBuffer,
		logger:    zerolog.Nop(),
		observer:  NoopObserver{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.maxBuffer < 1 {
		m.maxBuffer = 1
	}
	return m
}

// Run merges all sources into the sink and returns once the sink's Done has
// been invoked, or on the first failure. On failure (source fetch error, sink
// error, context cancellation) Done is never called and no further entries
// are emitted.
//
// Entries are emitted in non-decreasing timestamp order provided every
// source's own entries are ascending. Entries with equal timestamps are
// ordered by source position.
func (m *Merger) Run(ctx context.Context, sources []core.Source, sink core.Sink) error {
	runCtx, cancel := context.WithCancel(ctx)

	budget := make(chan struct{}, m.maxBuffer)

	states := make([]*sourceState, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		st := newSourceState(src, i, m.maxBuffer)
		states[i] = st
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.fetchLoop(runCtx, budget, m.observer)
		}()
	}
	defer func() {
		cancel()
		wg.Wait()
	}()

	m.logger.Info().
		Int("sources", len(sources)).
		Int("max_buffer", m.maxBuffer).
		Msg("merge started")

	// Collect the first head of every source. A source that is empty from
	// the start never enters the heap.
	h := make(sourceHeap, 0, len(states))
	for _, st := range states {
		d, ok, err := m.advance(runCtx, st, budget)
		if err != nil {
			return err
		}
		if !ok {
			m.observer.SourceExhausted(st.src.Name())
			m.logger.Debug().Str("source", st.src.Name()).Msg("source empty")
			continue
		}
		st.head = d.entry
		heap.Push(&h, st)
	}

	emitted := 0
	for h.Len() > 0 {
		st := heap.Pop(&h).(*sourceState)
		if err := sink.Write(st.head); err != nil {
			return fmt.Errorf("sink write: %w", err)
		}
		emitted++
		m.observer.EntryEmitted()

		d, ok, err := m.advance(runCtx, st, budget)
		if err != nil {
			return err
		}
		if !ok {
			m.observer.SourceExhausted(st.src.Name())
			m.logger.Debug().Str("source", st.src.Name()).Msg("source exhausted")
			continue
		}
		st.head = d.entry
		heap.Push(&h, st)
	}

	if err := sink.Done(); err != nil {
		return fmt.Errorf("sink done: %w", err)
	}
	m.logger.Info().Int("entries", emitted).Msg("merge complete")
	return nil
}

// advance produces the next head entry for st. The fast path reads straight
// from the read-ahead buffer; otherwise the driver grants a demand token so
// the worker can fetch past a full budget, then blocks until the worker
// delivers or the source terminates. Budget slots held by promoted entries
// are released here. ok is false once the source is fully drained.
func (m *Merger) advance(ctx context.Context, st *sourceState, budget chan struct{}) (delivery, bool, error) {
	var d delivery
	var ok bool
	select {
	case d, ok = <-st.deliveries:
	default:
		// Buffer empty: authorize one budget-free fetch unless a previous
		// token is still pending, then wait.
		select {
		case st.demand <- struct{}{}:
		default:
		}
		select {
		case d, ok = <-st.deliveries:
		case <-ctx.Done():
			return delivery{}, false, ctx.Err()
		}
	}

	// With a delivery in hand any still-pending demand token is stale: a
	// budgeted fetch won the race. Reclaim it before the worker spends it
	// on an uncounted fetch.
	select {
	case <-st.demand:
	default:
	}

	if !ok {
		if st.fetchErr != nil {
			return delivery{}, false, fmt.Errorf("source %s: %w", st.src.Name(), st.fetchErr)
		}
		return delivery{}, false, nil
	}
	if d.charged {
		<-budget
		m.observer.BufferOccupancy(len(budget))
	}
	return d, true, nil
}
