package sources

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/creastat/logmerge/core"
	"github.com/creastat/logmerge/protocol"
)

// FileSource reads a JSON-lines log file in the protocol line format. Lines
// must be ascending by timestamp. The file is closed automatically when the
// source reports exhaustion; Close covers aborted merges.
type FileSource struct {
	name    string
	file    *os.File
	scanner *bufio.Scanner
	line    int
}

// NewFileSource opens the file at path. An empty name defaults to the file
// base name.
func NewFileSource(name, path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	if name == "" {
		name = filepath.Base(path)
	}
	return &FileSource{
		name:    name,
		file:    f,
		scanner: bufio.NewScanner(f),
	}, nil
}

// Name returns the source name.
func (s *FileSource) Name() string {
	return s.name
}

// Next reads and decodes the next line of the file.
func (s *FileSource) Next(ctx context.Context) (core.Entry, bool, error) {
	select {
	case <-ctx.Done():
		return core.Entry{}, false, ctx.Err()
	default:
	}

	if s.scanner == nil {
		return core.Entry{}, false, nil
	}
	if !s.scanner.Scan() {
		err := s.scanner.Err()
		s.scanner = nil
		s.file.Close()
		if err != nil {
			return core.Entry{}, false, fmt.Errorf("read %s: %w", s.name, err)
		}
		return core.Entry{}, false, nil
	}
	s.line++

	entry, err := protocol.DecodeEntry(s.scanner.Bytes())
	if err != nil {
		return core.Entry{}, false, fmt.Errorf("%s line %d: %w", s.name, s.line, err)
	}
	return entry, true, nil
}

// Close releases the underlying file. It is safe to call after exhaustion.
func (s *FileSource) Close() error {
	if s.scanner == nil {
		return nil
	}
	s.scanner = nil
	return s.file.Close()
}

var _ core.Source = (*FileSource)(nil)
