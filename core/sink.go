package core

// Sink consumes merged entries in their final timestamp order.
type Sink interface {
	// Write accepts one ordered entry. It must not block indefinitely.
	// A non-nil error aborts the merge immediately.
	Write(Entry) error

	// Done signals end of stream. It is called exactly once, after the last
	// entry, and only when the merge completed successfully.
	Done() error
}
