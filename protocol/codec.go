package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/creastat/logmerge/core"
)

// EncodeEntry renders one entry as a single JSON line (without the trailing
// newline). The format is shared by file sources and writer sinks.
func EncodeEntry(entry core.Entry) ([]byte, error) {
	line := EntryPayload{Timestamp: entry.Timestamp, Payload: string(entry.Payload)}
	data, err := json.Marshal(line)
	if err != nil {
		return nil, fmt.Errorf("encode entry: %w", err)
	}
	return data, nil
}

// DecodeEntry parses one JSON line back into an entry.
func DecodeEntry(data []byte) (core.Entry, error) {
	var line EntryPayload
	if err := json.Unmarshal(data, &line); err != nil {
		return core.Entry{}, fmt.Errorf("decode entry: %w", err)
	}
	if line.Timestamp.IsZero() {
		return core.Entry{}, fmt.Errorf("decode entry: missing timestamp")
	}
	return core.Entry{Timestamp: line.Timestamp, Payload: []byte(line.Payload)}, nil
}
