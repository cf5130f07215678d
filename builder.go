package logmerge

import (
	"context"
	"fmt"

	"github.com/creastat/logmerge/core"
	"github.com/rs/zerolog"
)

// ValidationError describes an invalid merge configuration.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid merge configuration: %s: %s", e.Field, e.Message)
}

// Builder assembles a merge run with a fluent API.
type Builder struct {
	sources   []core.Source
	sink      core.Sink
	maxBuffer int
	logger    zerolog.Logger
	observer  Observer
}

// NewBuilder creates a new merge builder.
func NewBuilder() *Builder {
	return &Builder{
		maxBuffer: DefaultMaxBuffer,
		logger:    zerolog.Nop(),
		observer:  NoopObserver{},
	}
}

// AddSource appends one source to the merge. Source order determines the
// tie-break for entries with equal timestamps.
func (b *Builder) AddSource(src core.Source) *Builder {
	b.sources = append(b.sources, src)
	return b
}

// WithSink sets the sink receiving the merged stream.
func (b *Builder) WithSink(sink core.Sink) *Builder {
	b.sink = sink
	return b
}

// WithMaxBuffer sets the global read-ahead ceiling.
func (b *Builder) WithMaxBuffer(n int) *Builder {
	b.maxBuffer = n
	return b
}

// WithLogger sets the engine logger.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithObserver sets the metrics observer.
func (b *Builder) WithObserver(obs Observer) *Builder {
	b.observer = obs
	return b
}

// Build validates the configuration and returns a ready-to-run merge.
func (b *Builder) Build() (*Merge, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	merger := New(
		WithMaxBuffer(b.maxBuffer),
		WithLogger(b.logger),
		WithObserver(b.observer),
	)
	return &Merge{
		merger:  merger,
		sources: append([]core.Source(nil), b.sources...),
		sink:    b.sink,
	}, nil
}

func (b *Builder) validate() error {
	if b.sink == nil {
		return ValidationError{Field: "sink", Message: "a sink is required"}
	}
	if b.maxBuffer < 1 {
		return ValidationError{Field: "max_buffer", Message: "must be a positive integer"}
	}

	seen := make(map[string]bool, len(b.sources))
	for i, src := range b.sources {
		if src == nil {
			return ValidationError{
				Field:   "sources",
				Message: fmt.Sprintf("source %d is nil", i),
			}
		}
		name := src.Name()
		if seen[name] {
			return ValidationError{
				Field:   "sources",
				Message: fmt.Sprintf("duplicate source name %q", name),
			}
		}
		seen[name] = true
	}
	return nil
}

// Merge is a validated merge of a fixed set of sources into one sink.
type Merge struct {
	merger  *Merger
	sources []core.Source
	sink    core.Sink
}

// Run executes the merge. See Merger.Run for the full contract.
func (mg *Merge) Run(ctx context.Context) error {
	return mg.merger.Run(ctx, mg.sources, mg.sink)
}
