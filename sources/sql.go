package sources

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/creastat/logmerge/core"
)

// SQLSource streams the rows of a timestamp-ordered query. The query must
// select exactly two columns, the timestamp and the payload, and must order
// ascending by the timestamp column. The query is issued lazily on the first
// fetch so that building a merge does not touch the database.
type SQLSource struct {
	name  string
	db    *sql.DB
	query string
	args  []any
	rows  *sql.Rows
}

// NewSQLSource creates a source running the given query against db.
func NewSQLSource(name string, db *sql.DB, query string, args ...any) *SQLSource {
	return &SQLSource{name: name, db: db, query: query, args: args}
}

// NewTableSource creates a source reading the ts and payload columns of a
// table ascending by ts.
func NewTableSource(name string, db *sql.DB, table string) *SQLSource {
	query := fmt.Sprintf("SELECT ts, payload FROM %s ORDER BY ts ASC", table)
	return NewSQLSource(name, db, query)
}

// Name returns the source name.
func (s *SQLSource) Name() string {
	return s.name
}

// Next scans the next row. The row set is closed once drained.
func (s *SQLSource) Next(ctx context.Context) (core.Entry, bool, error) {
	if s.rows == nil {
		rows, err := s.db.QueryContext(ctx, s.query, s.args...)
		if err != nil {
			return core.Entry{}, false, fmt.Errorf("query %s: %w", s.name, err)
		}
		s.rows = rows
	}

	if !s.rows.Next() {
		err := s.rows.Err()
		s.rows.Close()
		if err != nil {
			return core.Entry{}, false, fmt.Errorf("scan %s: %w", s.name, err)
		}
		return core.Entry{}, false, nil
	}

	var (
		ts      time.Time
		payload []byte
	)
	if err := s.rows.Scan(&ts, &payload); err != nil {
		s.rows.Close()
		return core.Entry{}, false, fmt.Errorf("scan %s: %w", s.name, err)
	}
	return core.Entry{Timestamp: ts, Payload: payload}, true, nil
}

// Close releases the row set of an aborted merge.
func (s *SQLSource) Close() error {
	if s.rows == nil {
		return nil
	}
	return s.rows.Close()
}

var _ core.Source = (*SQLSource)(nil)
