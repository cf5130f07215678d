package sinks

import (
	"bufio"
	"fmt"
	"io"

	"github.com/creastat/logmerge/core"
	"github.com/creastat/logmerge/protocol"
)

// WriterSink renders each merged entry as one JSON line on an io.Writer.
// Output is buffered and flushed on Done.
type WriterSink struct {
	w *bufio.Writer
}

// NewWriterSink creates a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: bufio.NewWriter(w)}
}

// Write encodes and writes one entry line.
func (s *WriterSink) Write(entry core.Entry) error {
	line, err := protocol.EncodeEntry(entry)
	if err != nil {
		return err
	}
	if _, err := s.w.Write(line); err != nil {
		return fmt.Errorf("write entry: %w", err)
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write entry: %w", err)
	}
	return nil
}

// Done flushes buffered output.
func (s *WriterSink) Done() error {
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

var _ core.Sink = (*WriterSink)(nil)
