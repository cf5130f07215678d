package sources

import (
	"context"

	"github.com/creastat/logmerge/core"
)

// SliceSource serves a fixed slice of entries from memory. The slice must
// already be ascending by timestamp.
type SliceSource struct {
	name    string
	entries []core.Entry
	pos     int
}

// NewSliceSource creates a source over the given entries.
func NewSliceSource(name string, entries []core.Entry) *SliceSource {
	return &SliceSource{name: name, entries: entries}
}

// Name returns the source name.
func (s *SliceSource) Name() string {
	return s.name
}

// Next returns the next entry until the slice is drained.
func (s *SliceSource) Next(ctx context.Context) (core.Entry, bool, error) {
	select {
	case <-ctx.Done():
		return core.Entry{}, false, ctx.Err()
	default:
	}

	if s.pos >= len(s.entries) {
		return core.Entry{}, false, nil
	}
	entry := s.entries[s.pos]
	s.pos++
	return entry, true, nil
}

var _ core.Source = (*SliceSource)(nil)
