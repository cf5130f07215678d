package core

import "time"

// Entry is a single timestamped record produced by a source.
// It is an immutable value: the merge engine never inspects or mutates the
// payload and orders entries only by timestamp.
type Entry struct {
	Timestamp time.Time
	Payload   []byte
}

// Before reports whether e is strictly earlier than other.
func (e Entry) Before(other Entry) bool {
	return e.Timestamp.Before(other.Timestamp)
}
