package logmerge

import (
	"context"
	"time"

	"github.com/creastat/logmerge/core"
)

// delivery is one fetched entry handed from a fetch worker to the merge
// driver. charged marks that the fetch holds a slot of the shared read-ahead
// budget; the driver releases the slot when it promotes the entry to head.
type delivery struct {
	entry   core.Entry
	charged bool
}

// sourceState is the per-source bundle owned by the merge engine: the head
// entry that represents the source in the priority heap, the delivery channel
// acting as its read-ahead buffer, and the terminal status written by the
// fetch worker. One state is created per source at merge start and discarded
// once the source is exhausted and drained.
type sourceState struct {
	src   core.Source
	index int

	head core.Entry

	// deliveries carries fetched entries in source order. The worker closes
	// it on exhaustion or fetch failure; buffered entries remain readable.
	deliveries chan delivery

	// demand lets the driver authorize a single budget-free fetch when it is
	// blocked waiting for this source's next head. Without it a full budget
	// held by other sources' buffers could stall the merge forever.
	demand chan struct{}

	// fetchErr is set by the worker before deliveries is closed.
	fetchErr error
}

func newSourceState(src core.Source, index, maxBuffer int) *sourceState {
	return &sourceState{
		src:   src,
		index: index,
		// One extra slot so a demand-authorized delivery never blocks the
		// worker behind a full budget's worth of buffered entries.
		deliveries: make(chan delivery, maxBuffer+1),
		demand:     make(chan struct{}, 1),
	}
}

// fetchLoop keeps the source's read-ahead buffer topped up. Every iteration
// waits for either a slot of the shared budget or a demand token from the
// driver, fetches exactly one entry, and delivers it in source order. The
// worker is sequential, so at most one fetch is ever outstanding per source.
// The loop exits on exhaustion, fetch failure, or cancellation.
func (s *sourceState) fetchLoop(ctx context.Context, budget chan struct{}, obs Observer) {
	for {
		charged := false
		select {
		case <-s.demand:
		case budget <- struct{}{}:
			charged = true
			obs.BufferOccupancy(len(budget))
		case <-ctx.Done():
			return
		}

		start := time.Now()
		entry, ok, err := s.src.Next(ctx)
		obs.FetchObserved(s.src.Name(), time.Since(start))

		if err != nil || !ok {
			if charged {
				<-budget
				obs.BufferOccupancy(len(budget))
			}
			s.fetchErr = err
			close(s.deliveries)
			return
		}

		select {
		case s.deliveries <- delivery{entry: entry, charged: charged}:
		case <-ctx.Done():
			if charged {
				<-budget
				obs.BufferOccupancy(len(budget))
			}
			return
		}
	}
}
