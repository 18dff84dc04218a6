package model

import (
	"fmt"
	"time"

	"github.com/rogersnm/jot/internal/db"
)

// Todo is the typed view of a record in a todo table.
type Todo struct {
	ID          string
	Title       string
	Description string
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FromRecord reads the reserved fields of r. Missing or malformed fields are
// left zero.
func FromRecord(r db.Record) Todo {
	t := Todo{}
	if v := r.ID(); v != nil {
		t.ID = fmt.Sprint(v)
	}
	t.Title, _ = r.Title()
	t.Description, _ = r.Description()
	if ts, ok := r.CompletedAt(); ok {
		t.CompletedAt = &ts
	} else if r.Completed() {
		// Set but not a timestamp: still done.
		t.CompletedAt = &time.Time{}
	}
	t.CreatedAt, _ = r.CreatedAt()
	t.UpdatedAt, _ = r.UpdatedAt()
	return t
}

// Record returns the record stored for a new todo.
func (t *Todo) Record() db.Record {
	r := db.Record{
		db.FieldID:          t.ID,
		db.FieldTitle:       t.Title,
		db.FieldDescription: t.Description,
		db.FieldCompletedAt: nil,
		db.FieldCreatedAt:   db.FormatTime(t.CreatedAt),
		db.FieldUpdatedAt:   db.FormatTime(t.UpdatedAt),
	}
	if t.CompletedAt != nil {
		r[db.FieldCompletedAt] = db.FormatTime(*t.CompletedAt)
	}
	return r
}

func (t *Todo) Status() Status {
	if t.CompletedAt != nil {
		return StatusDone
	}
	return StatusOpen
}

func (t *Todo) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("todo id is required")
	}
	if t.Title == "" {
		return fmt.Errorf("todo title is required")
	}
	return nil
}
