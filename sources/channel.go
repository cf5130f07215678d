package sources

import (
	"context"

	"github.com/creastat/logmerge/core"
)

// ChannelSource adapts a producer channel to the source contract. The
// producer signals exhaustion by closing the channel and is responsible for
// sending entries in ascending timestamp order.
type ChannelSource struct {
	name string
	ch   <-chan core.Entry
}

// NewChannelSource creates a source reading from ch.
func NewChannelSource(name string, ch <-chan core.Entry) *ChannelSource {
	return &ChannelSource{name: name, ch: ch}
}

// Name returns the source name.
func (s *ChannelSource) Name() string {
	return s.name
}

// Next blocks until the producer sends an entry, closes the channel, or the
// context is cancelled.
func (s *ChannelSource) Next(ctx context.Context) (core.Entry, bool, error) {
	select {
	case entry, ok := <-s.ch:
		if !ok {
			return core.Entry{}, false, nil
		}
		return entry, true, nil
	case <-ctx.Done():
		return core.Entry{}, false, ctx.Err()
	}
}

var _ core.Source = (*ChannelSource)(nil)
