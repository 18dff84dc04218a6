package db

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"
	"time"
)

// NoIndex is returned by FindIndex when no record matches.
const NoIndex = -1

// ErrMissingID is returned by Insert for a record without an id.
var ErrMissingID = errors.New("record has no id")

// Database owns the in-memory document and its on-disk copy. All methods are
// safe for concurrent use. Every mutation is written to disk before the call
// returns.
type Database struct {
	path string
	now  func() time.Time

	mu     sync.RWMutex
	tables map[string][]Record
}

// Patch is a partial update. Nil fields are left alone.
type Patch struct {
	Title       *string
	Description *string
}

// IsZero reports whether p sets nothing.
func (p Patch) IsZero() bool {
	return p.Title == nil && p.Description == nil
}

func (p Patch) changes(r Record) bool {
	return differs(p.Title, r, FieldTitle) || differs(p.Description, r, FieldDescription)
}

func differs(v *string, r Record, field string) bool {
	if v == nil {
		return false
	}
	cur, ok := r.String(field)
	return !ok || cur != *v
}

// Open loads the database at path. A missing or unparsable file is replaced
// by an empty document; an unparsable one is first moved aside. Only a
// failure to write the fresh file is returned.
func Open(path string) (*Database, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating directory for %s: %w", path, err)
	}
	d := &Database{path: path, now: now}

	tables, err := ReadFile(path)
	if err == nil {
		d.tables = tables
		slog.Debug("loaded database", "path", path, "tables", len(tables))
		return d, nil
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Info("creating database", "path", path)
	case errors.Is(err, ErrCorrupt):
		slog.Warn("database is corrupt, starting empty", "path", path, "err", err)
		d.quarantine()
	default:
		slog.Warn("database is unreadable, starting empty", "path", path, "err", err)
	}

	d.tables = make(map[string][]Record)
	if err := d.persist(); err != nil {
		return nil, err
	}
	return d, nil
}

// quarantine keeps the bytes of a corrupt file next to it.
func (d *Database) quarantine() {
	backup := fmt.Sprintf("%s.corrupt-%s", d.path, d.now().Format("20060102-150405"))
	if err := os.Rename(d.path, backup); err != nil {
		slog.Warn("failed to move corrupt database aside", "path", d.path, "err", err)
		return
	}
	slog.Warn("moved corrupt database aside", "backup", backup)
}

// Path returns the database file path.
func (d *Database) Path() string {
	return d.path
}

// FindIndex returns the position of the first record in table whose id
// equals id, or NoIndex.
func (d *Database) FindIndex(table string, id any) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.findIndex(table, id)
}

func (d *Database) findIndex(table string, id any) int {
	for i, r := range d.tables[table] {
		if SameID(r.ID(), id) {
			return i
		}
	}
	return NoIndex
}

// Select returns copies of the records in table matching f, in insertion
// order. A nil or empty filter returns every record. An absent table yields
// an empty slice.
func (d *Database) Select(table string, f Filter) []Record {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := []Record{}
	for _, r := range d.tables[table] {
		if f.Match(r) {
			out = append(out, r.Clone())
		}
	}
	return out
}

// Get returns a copy of the first record in table with the given id.
func (d *Database) Get(table string, id any) (Record, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i := d.findIndex(table, id)
	if i == NoIndex {
		return nil, false
	}
	return d.tables[table][i].Clone(), true
}

// Tables returns the sorted names of all tables.
func (d *Database) Tables() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.tables))
	for name := range d.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of records in table.
func (d *Database) Len(table string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.tables[table])
}

// Insert appends r to table, creating the table if needed, and returns r.
// Ids are not checked for uniqueness.
func (d *Database) Insert(table string, r Record) (Record, error) {
	if r.ID() == nil {
		return nil, ErrMissingID
	}
	stored, err := normalize(r)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.commit(table, append(d.tables[table], stored)); err != nil {
		return nil, err
	}
	slog.Debug("inserted record", "table", table, "id", r.ID())
	return r, nil
}

// Update sets title and/or description on the record with the given id and
// refreshes updated_at. Nothing is written when the values already match.
// The outcome is Unchanged whenever err is non-nil.
func (d *Database) Update(table string, id any, p Patch) (Outcome, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.findIndex(table, id)
	if i == NoIndex {
		return NotFound, nil
	}
	cur := d.tables[table][i]
	if !p.changes(cur) {
		return Unchanged, nil
	}

	next := cur.Clone()
	if p.Title != nil {
		next[FieldTitle] = *p.Title
	}
	if p.Description != nil {
		next[FieldDescription] = *p.Description
	}
	next[FieldUpdatedAt] = FormatTime(d.now())

	if err := d.replace(table, i, next); err != nil {
		return Unchanged, err
	}
	slog.Debug("updated record", "table", table, "id", id)
	return Applied, nil
}

// UpdateStatus toggles completed_at between null and the current time and
// refreshes updated_at.
func (d *Database) UpdateStatus(table string, id any) (Outcome, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.findIndex(table, id)
	if i == NoIndex {
		return NotFound, nil
	}
	cur := d.tables[table][i]

	t := FormatTime(d.now())
	next := cur.Clone()
	if cur.Completed() {
		next[FieldCompletedAt] = nil
	} else {
		next[FieldCompletedAt] = t
	}
	next[FieldUpdatedAt] = t

	if err := d.replace(table, i, next); err != nil {
		return Unchanged, err
	}
	slog.Debug("toggled record status", "table", table, "id", id, "completed", next.Completed())
	return Applied, nil
}

// Delete removes the first record with the given id.
func (d *Database) Delete(table string, id any) (Outcome, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.findIndex(table, id)
	if i == NoIndex {
		return NotFound, nil
	}
	rows := slices.Delete(slices.Clone(d.tables[table]), i, i+1)
	if err := d.commit(table, rows); err != nil {
		return Unchanged, err
	}
	slog.Debug("deleted record", "table", table, "id", id)
	return Applied, nil
}

func (d *Database) replace(table string, i int, r Record) error {
	rows := slices.Clone(d.tables[table])
	rows[i] = r
	return d.commit(table, rows)
}

// commit installs rows as table and persists. If the write fails the previous
// rows are restored so memory never runs ahead of disk. Callers hold mu.
func (d *Database) commit(table string, rows []Record) error {
	prev, existed := d.tables[table]
	d.tables[table] = rows
	if err := d.persist(); err != nil {
		if existed {
			d.tables[table] = prev
		} else {
			delete(d.tables, table)
		}
		return err
	}
	return nil
}

func (d *Database) persist() error {
	data, err := json.Marshal(d.tables)
	if err != nil {
		return fmt.Errorf("marshaling database: %w", err)
	}
	if err := writeFile(d.path, data); err != nil {
		return fmt.Errorf("persisting %s: %w", d.path, err)
	}
	return nil
}

// normalize returns r as it will read back from disk.
func normalize(r Record) (Record, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshaling record: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out Record
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	return out, nil
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
