package logmerge

import "time"

// Observer receives engine-level measurements. Implementations must be safe
// for concurrent use: the engine calls it from the driver goroutine and from
// every per-source fetch worker.
type Observer interface {
	// EntryEmitted is called once per entry written to the sink.
	EntryEmitted()

	// SourceExhausted is called once per source, when it is fully drained.
	SourceExhausted(source string)

	// FetchObserved reports the duration of one source fetch.
	FetchObserved(source string, elapsed time.Duration)

	// BufferOccupancy reports the number of budget slots currently held by
	// read-ahead buffers.
	BufferOccupancy(buffered int)
}

// NoopObserver discards all measurements.
type NoopObserver struct{}

func (NoopObserver) EntryEmitted()                       {}
func (NoopObserver) SourceExhausted(string)              {}
func (NoopObserver) FetchObserved(string, time.Duration) {}
func (NoopObserver) BufferOccupancy(int)                 {}
