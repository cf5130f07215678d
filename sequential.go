package logmerge

import (
	"container/heap"
	"context"
	"fmt"

	"github.com/creastat/logmerge/core"
)

// MergeSequential merges sources with no prefetching or concurrency: one head
// per source, repeated extract-min, immediate refetch from the emitting
// source. It gives the same ordering, termination, and error guarantees as
// Merger.Run and serves as the correctness oracle for the asynchronous
// engine in tests.
func MergeSequential(ctx context.Context, sources []core.Source, sink core.Sink) error {
	h := make(sourceHeap, 0, len(sources))
	for i, src := range sources {
		entry, ok, err := src.Next(ctx)
		if err != nil {
			return fmt.Errorf("source %s: %w", src.Name(), err)
		}
		if !ok {
			continue
		}
		heap.Push(&h, &sourceState{src: src, index: i, head: entry})
	}

	for h.Len() > 0 {
		st := heap.Pop(&h).(*sourceState)
		if err := sink.Write(st.head); err != nil {
			return fmt.Errorf("sink write: %w", err)
		}

		entry, ok, err := st.src.Next(ctx)
		if err != nil {
			return fmt.Errorf("source %s: %w", st.src.Name(), err)
		}
		if ok {
			st.head = entry
			heap.Push(&h, st)
		}
	}

	if err := sink.Done(); err != nil {
		return fmt.Errorf("sink done: %w", err)
	}
	return nil
}
