package sinks

import (
	"encoding/json"
	"fmt"

	"github.com/creastat/logmerge/core"
	"github.com/creastat/logmerge/protocol"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// WebSocketSink forwards merged entries to a WebSocket connection as JSON
// protocol messages, followed by a terminal stream.end message on Done.
// Unlike a lossy tail, a failed write aborts the merge: the receiving end
// expects the complete ordered stream or an aborted one, never a gap.
type WebSocketSink struct {
	conn   *websocket.Conn
	logger zerolog.Logger
	count  int
}

// NewWebSocketSink creates a sink over an established connection. The caller
// keeps ownership of the connection and closes it after the merge.
func NewWebSocketSink(conn *websocket.Conn, logger zerolog.Logger) *WebSocketSink {
	return &WebSocketSink{conn: conn, logger: logger}
}

// Write sends one entry message.
func (s *WebSocketSink) Write(entry core.Entry) error {
	msg := protocol.EntryToMessage(entry)
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal entry message: %w", err)
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.logger.Error().Err(err).Msg("websocket write failed")
		return fmt.Errorf("websocket write: %w", err)
	}
	s.count++
	return nil
}

// Done sends the stream.end message.
func (s *WebSocketSink) Done() error {
	msg := protocol.NewStreamEndMessage(s.count)
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal stream end: %w", err)
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.logger.Error().Err(err).Msg("websocket stream end failed")
		return fmt.Errorf("websocket write: %w", err)
	}
	s.logger.Debug().Int("entries", s.count).Msg("stream end sent")
	return nil
}

var _ core.Sink = (*WebSocketSink)(nil)
