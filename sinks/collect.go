package sinks

import (
	"sync"

	"github.com/creastat/logmerge/core"
)

// CollectSink accumulates merged entries in memory. It is safe for
// inspection while a merge is still running.
type CollectSink struct {
	mu      sync.Mutex
	entries []core.Entry
	done    int
}

// NewCollectSink creates an empty collect sink.
func NewCollectSink() *CollectSink {
	return &CollectSink{}
}

// Write appends one entry.
func (s *CollectSink) Write(entry core.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// Done records the completion signal.
func (s *CollectSink) Done() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done++
	return nil
}

// Entries returns a copy of the collected entries in emission order.
func (s *CollectSink) Entries() []core.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Entry(nil), s.entries...)
}

// DoneCalls returns how many times Done has been invoked.
func (s *CollectSink) DoneCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

var _ core.Sink = (*CollectSink)(nil)
