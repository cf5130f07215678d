package core

import "context"

// Source is an ordered provider of entries, queried one at a time until
// exhausted. A source must yield entries in ascending timestamp order; the
// merge engine relies on this invariant and does not verify it.
type Source interface {
	Name() string

	// Next returns the source's next entry. ok is false once the source is
	// exhausted; after the first exhaustion signal the engine never queries
	// the source again. A non-nil error aborts the merge that issued the
	// fetch.
	//
	// The engine calls Next from a single goroutine per source, so
	// implementations do not need to be safe for concurrent use.
	Next(ctx context.Context) (entry Entry, ok bool, err error)
}
