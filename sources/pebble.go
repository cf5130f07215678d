package sources

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/creastat/logmerge/core"
)

// PebbleSource iterates a Pebble store whose keys embed the entry timestamp,
// so key order is timestamp order. Keys are 16 bytes: big-endian unix
// nanoseconds followed by a big-endian insertion sequence that keeps entries
// with equal timestamps distinct and stable.
type PebbleSource struct {
	name string
	db   *pebble.DB
	iter *pebble.Iterator
}

// NewPebbleSource opens the store at dir read-only.
func NewPebbleSource(name, dir string) (*PebbleSource, error) {
	db, err := pebble.Open(dir, &pebble.Options{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("open pebble store: %w", err)
	}
	return &PebbleSource{name: name, db: db}, nil
}

// Name returns the source name.
func (s *PebbleSource) Name() string {
	return s.name
}

// Next steps the iterator one key forward. The iterator is created on the
// first fetch and released once the store is drained.
func (s *PebbleSource) Next(ctx context.Context) (core.Entry, bool, error) {
	select {
	case <-ctx.Done():
		return core.Entry{}, false, ctx.Err()
	default:
	}

	if s.db == nil {
		return core.Entry{}, false, nil
	}

	var valid bool
	if s.iter == nil {
		iter, err := s.db.NewIter(&pebble.IterOptions{})
		if err != nil {
			s.release()
			return core.Entry{}, false, fmt.Errorf("pebble iterator %s: %w", s.name, err)
		}
		s.iter = iter
		valid = s.iter.First()
	} else {
		valid = s.iter.Next()
	}

	if !valid {
		err := s.iter.Error()
		s.release()
		if err != nil {
			return core.Entry{}, false, fmt.Errorf("pebble iterator %s: %w", s.name, err)
		}
		return core.Entry{}, false, nil
	}

	key := s.iter.Key()
	if len(key) < 8 {
		s.release()
		return core.Entry{}, false, fmt.Errorf("pebble source %s: malformed key of %d bytes", s.name, len(key))
	}
	ts := int64(binary.BigEndian.Uint64(key[:8]))
	payload := append([]byte(nil), s.iter.Value()...)
	return core.Entry{Timestamp: time.Unix(0, ts), Payload: payload}, true, nil
}

// Close releases the iterator and store of an aborted merge.
func (s *PebbleSource) Close() error {
	s.release()
	return nil
}

func (s *PebbleSource) release() {
	if s.iter != nil {
		s.iter.Close()
		s.iter = nil
	}
	if s.db != nil {
		s.db.Close()
		s.db = nil
	}
}

// WritePebbleEntries seeds the store at dir with entries in the key encoding
// PebbleSource expects. Intended for tooling and tests.
func WritePebbleEntries(dir string, entries []core.Entry) error {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return fmt.Errorf("open pebble store: %w", err)
	}
	defer db.Close()

	b := db.NewBatch()
	defer b.Close()
	for i, entry := range entries {
		key := make([]byte, 16)
		binary.BigEndian.PutUint64(key[:8], uint64(entry.Timestamp.UnixNano()))
		binary.BigEndian.PutUint64(key[8:], uint64(i))
		if err := b.Set(key, entry.Payload, nil); err != nil {
			return fmt.Errorf("batch entry %d: %w", i, err)
		}
	}
	if err := b.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("commit entries: %w", err)
	}
	return nil
}

var _ core.Source = (*PebbleSource)(nil)
