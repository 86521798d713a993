// Package history provides the result history buffer: a capacity-bounded,
// recency-ordered list of previously computed values, persisted to a SQLite
// database between runs. Expressions reference entries as $1 (most recent),
// $2, and so on.
package history

import (
	"database/sql"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/aar10n/clc/pkg/clc/value"
)

// Buffer is a bounded ring of values, newest first. Once capacity is
// reached the oldest entry is dropped on each Add. A Buffer opened without
// a database keeps entries in memory only.
type Buffer struct {
	db       *sql.DB
	capacity int
	entries  []value.Value // newest first
}

// NewMemory creates an in-memory buffer with no persistence.
func NewMemory(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{capacity: capacity}
}

// Open opens (creating if needed) the history database at path and loads up
// to capacity entries, newest first. Use ":memory:" for a throwaway
// database.
func Open(path string, capacity int) (*Buffer, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			id     INTEGER PRIMARY KEY AUTOINCREMENT,
			width  TEXT NOT NULL,
			number TEXT NOT NULL,
			unit   TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create history table: %w", err)
	}

	b := &Buffer{db: db, capacity: capacity}
	if b.capacity < 1 {
		b.capacity = 1
	}
	if err := b.load(); err != nil {
		db.Close()
		return nil, err
	}
	return b, nil
}

// load reads persisted entries. Rows are stored newest-first by ascending
// id, so they map directly onto the in-memory order. Rows that fail to
// decode are skipped rather than failing the whole load.
func (b *Buffer) load() error {
	rows, err := b.db.Query(`SELECT width, number, unit FROM history ORDER BY id LIMIT ?`, b.capacity)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var width, number, unit string
		if err := rows.Scan(&width, &number, &unit); err != nil {
			return fmt.Errorf("scan history row: %w", err)
		}
		v, ok := decodeValue(width, number, unit)
		if !ok {
			continue
		}
		b.entries = append(b.entries, v)
	}
	return rows.Err()
}

// Get returns the i-th most recent value (1-based). Out-of-range indices
// yield the zero value by convention.
func (b *Buffer) Get(i int) value.Value {
	if i < 1 || i > len(b.entries) {
		return value.Zero()
	}
	return b.entries[i-1]
}

// Add pushes a newly computed value to the front, dropping the oldest entry
// once the buffer is at capacity.
func (b *Buffer) Add(v value.Value) {
	b.entries = append([]value.Value{v}, b.entries...)
	if len(b.entries) > b.capacity {
		b.entries = b.entries[:b.capacity]
	}
}

// Len returns the number of entries.
func (b *Buffer) Len() int {
	return len(b.entries)
}

// Values returns the entries newest first. The slice is a copy.
func (b *Buffer) Values() []value.Value {
	out := make([]value.Value, len(b.entries))
	copy(out, b.entries)
	return out
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.entries = nil
}

// Save rewrites the persisted history to match the in-memory entries.
// A memory-only buffer saves nothing.
func (b *Buffer) Save() error {
	if b.db == nil {
		return nil
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM history`); err != nil {
		return fmt.Errorf("clear history table: %w", err)
	}
	for _, v := range b.entries {
		width, number, unit := encodeValue(v)
		_, err := tx.Exec(`INSERT INTO history (width, number, unit) VALUES (?, ?, ?)`, width, number, unit)
		if err != nil {
			return fmt.Errorf("insert history row: %w", err)
		}
	}
	return tx.Commit()
}

// Close closes the underlying database, if any.
func (b *Buffer) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

// encodeValue serializes a value as a (width, number, unit) triple. Integers
// store their decimal form at their width ("i8", "-5"); floats store the
// shortest round-trip decimal under width "f64". The number column holds the
// base-scale payload, so unitted values re-specialize on display.
func encodeValue(v value.Value) (width, number, unit string) {
	n := v.Number
	if n.IsInteger() {
		width = n.Width().String()
		if n.Width().Signed() {
			number = strconv.FormatInt(n.Int64(), 10)
		} else {
			number = strconv.FormatUint(n.Bits(), 10)
		}
	} else {
		width = "f64"
		number = strconv.FormatFloat(n.Float64(), 'g', -1, 64)
	}
	return width, number, v.Unit.Name()
}

// decodeValue is the inverse of encodeValue.
func decodeValue(width, number, unitName string) (value.Value, bool) {
	u, ok := value.UnitFromName(unitName)
	if !ok {
		return value.Value{}, false
	}

	if width == "f64" {
		f, err := strconv.ParseFloat(number, 64)
		if err != nil {
			return value.Value{}, false
		}
		return value.With(value.NewFloat(f), u), true
	}

	w, ok := value.WidthFromString(width)
	if !ok {
		return value.Value{}, false
	}
	if w.Signed() {
		i, err := strconv.ParseInt(number, 10, 64)
		if err != nil {
			return value.Value{}, false
		}
		return value.With(value.NewInteger(uint64(i), w), u), true
	}
	n, err := strconv.ParseUint(number, 10, 64)
	if err != nil {
		return value.Value{}, false
	}
	return value.With(value.NewInteger(n, w), u), true
}
