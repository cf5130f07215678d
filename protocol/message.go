package protocol

import "time"

// MessageType defines stream-to-client message types
type MessageType string

const (
	// MessageEntry carries one merged log entry.
	MessageEntry MessageType = "entry"

	// MessageStreamEnd signals that the merged stream is complete.
	MessageStreamEnd MessageType = "stream.end"

	// MessageError reports a terminal merge failure.
	MessageError MessageType = "error"
)

// Message represents one wire message of the merged stream.
type Message struct {
	Type      MessageType `json:"type"`
	ID        string      `json:"id"` // Server-generated message ID
	Payload   any         `json:"payload"`
	Timestamp int64       `json:"timestamp"` // Wall-clock send time, unix millis
}

// EntryPayload for entry messages.
type EntryPayload struct {
	Timestamp time.Time `json:"ts"`      // Entry timestamp
	Payload   string    `json:"payload"` // Opaque entry payload
}

// StreamEndPayload for stream.end messages.
type StreamEndPayload struct {
	Entries int `json:"entries"` // Total entries emitted
}

// ErrorPayload for error messages.
type ErrorPayload struct {
	Message string `json:"message"`
}
