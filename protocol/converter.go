package protocol

import (
	"time"

	"github.com/creastat/logmerge/core"
	"github.com/google/uuid"
)

// EntryToMessage converts a merged entry to a wire message.
func EntryToMessage(entry core.Entry) *Message {
	return &Message{
		Type:      MessageEntry,
		ID:        newMessageID(),
		Payload:   EntryPayload{Timestamp: entry.Timestamp, Payload: string(entry.Payload)},
		Timestamp: time.Now().UnixMilli(),
	}
}

// NewStreamEndMessage builds the terminal message of a merged stream.
func NewStreamEndMessage(entries int) *Message {
	return &Message{
		Type:      MessageStreamEnd,
		ID:        newMessageID(),
		Payload:   StreamEndPayload{Entries: entries},
		Timestamp: time.Now().UnixMilli(),
	}
}

// NewErrorMessage builds an error message for a failed merge.
func NewErrorMessage(err error) *Message {
	return &Message{
		Type:      MessageError,
		ID:        newMessageID(),
		Payload:   ErrorPayload{Message: err.Error()},
		Timestamp: time.Now().UnixMilli(),
	}
}

// newMessageID generates a unique message ID
func newMessageID() string {
	return "msg-" + uuid.NewString()
}
