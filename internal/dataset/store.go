package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"spool/internal/records"
)

// Store appends validated rows to one dataset CSV and tracks which item keys
// it already holds. A file lock guards the CSV against concurrent runs for
// the lifetime of the store.
type Store struct {
	path   string
	schema records.Schema
	lock   *flock.Flock

	mu   sync.Mutex
	keys map[string]struct{}
}

// Open locks the dataset at path and rebuilds the key ledger from its rows.
// The file itself may not exist yet; the lock file sits alongside it.
func Open(path string, schema records.Schema) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create dataset directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire dataset lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("dataset %s is locked by another process", path)
	}

	store := &Store{
		path:   path,
		schema: schema,
		lock:   lock,
		keys:   make(map[string]struct{}),
	}
	if err := store.loadKeys(); err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close releases the dataset lock.
func (s *Store) Close() error {
	if s.lock == nil {
		return nil
	}
	return s.lock.Unlock()
}

// Path returns the dataset file location.
func (s *Store) Path() string {
	return s.path
}

// Contains reports whether the dataset already holds rows for key.
func (s *Store) Contains(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.keys[key]
	return ok
}

// Count returns the number of distinct item keys in the dataset.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}

// Append writes all rows for one item in a single write and registers the
// item key afterwards. When the append fails the key stays unregistered, so
// a later run retries the item instead of trusting a torn batch.
func (s *Store) Append(recs []records.Record) error {
	if len(recs) == 0 {
		return errors.New("no rows to append")
	}

	var buf strings.Builder
	needHeader, err := s.fileEmpty()
	if err != nil {
		return err
	}
	if needHeader {
		writeRow(&buf, s.schema.Columns)
	}
	for _, rec := range recs {
		if len(rec.Values) != s.schema.Arity() {
			return fmt.Errorf("row has %d columns, schema %s wants %d", len(rec.Values), s.schema.Name, s.schema.Arity())
		}
		writeRow(&buf, rec.Values)
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	if _, err := file.WriteString(buf.String()); err != nil {
		_ = file.Close()
		return fmt.Errorf("append dataset rows: %w", err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return fmt.Errorf("sync dataset: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close dataset: %w", err)
	}

	s.mu.Lock()
	for _, rec := range recs {
		if key := rec.Key(); key != "" {
			s.keys[key] = struct{}{}
		}
	}
	s.mu.Unlock()
	return nil
}

// loadKeys scans the CSV and registers the key column of every structurally
// complete row. Rows with the wrong column count (a torn tail from a crashed
// run, stray noise) are ignored so their items run again.
func (s *Store) loadKeys() error {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A torn trailing line stops the scan; everything read so far
			// still counts.
			break
		}
		if len(row) != s.schema.Arity() || s.isHeader(row) {
			continue
		}
		if key := strings.TrimSpace(row[0]); key != "" {
			s.keys[key] = struct{}{}
		}
	}
	return nil
}

// isHeader reports whether a stored row restates the schema's column names.
func (s *Store) isHeader(row []string) bool {
	if len(row) != len(s.schema.Columns) {
		return false
	}
	for i, col := range s.schema.Columns {
		if !strings.EqualFold(strings.TrimSpace(row[i]), col) {
			return false
		}
	}
	return true
}

func (s *Store) fileEmpty() (bool, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat dataset: %w", err)
	}
	return info.Size() == 0, nil
}

// writeRow renders one CSV row with every field quoted, doubling embedded
// quotes. Forced quoting keeps the files uniform no matter what prose the
// model produced.
func writeRow(buf *strings.Builder, values []string) {
	for i, value := range values {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(value, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteByte('\n')
}
