package db

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// Reserved record fields.
const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCompletedAt = "completed_at"
	FieldCreatedAt   = "created_at"
	FieldUpdatedAt   = "updated_at"
)

// TimeFormat is the layout used for timestamps the store assigns.
const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Record is a schema-less row. Only the reserved fields have meaning to the
// store; everything else is passed through.
type Record map[string]any

// ID returns the record id, or nil if absent.
func (r Record) ID() any {
	return r[FieldID]
}

func (r Record) Title() (string, bool) {
	return r.String(FieldTitle)
}

func (r Record) Description() (string, bool) {
	return r.String(FieldDescription)
}

// String returns the field as a string. ok is false when the field is missing
// or holds a non-string value.
func (r Record) String(field string) (string, bool) {
	s, ok := r[field].(string)
	return s, ok
}

// CompletedAt returns the completion time. ok is false for an incomplete record.
func (r Record) CompletedAt() (time.Time, bool) {
	return r.Time(FieldCompletedAt)
}

func (r Record) CreatedAt() (time.Time, bool) {
	return r.Time(FieldCreatedAt)
}

func (r Record) UpdatedAt() (time.Time, bool) {
	return r.Time(FieldUpdatedAt)
}

// Time parses a timestamp field stored as an RFC 3339 string or a time.Time.
func (r Record) Time(field string) (time.Time, bool) {
	switch v := r[field].(type) {
	case time.Time:
		return v, true
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// Completed reports whether completed_at holds a value. null, "" and false
// all count as incomplete.
func (r Record) Completed() bool {
	switch v := r[FieldCompletedAt].(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	}
	return true
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = cloneValue(e)
		}
		return m
	case Record:
		return t.Clone()
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = cloneValue(e)
		}
		return s
	}
	return v
}

// FormatTime renders t the way the store writes timestamps.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// SameID reports whether two id values identify the same record. Strings
// compare exactly, numbers compare by value regardless of Go type, and a
// string never equals a number.
func SameID(a, b any) bool {
	ka, ok := idKey(a)
	if !ok {
		return false
	}
	kb, ok := idKey(b)
	if !ok {
		return false
	}
	return ka == kb
}

func idKey(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return "s:" + t, true
	case bool:
		return "b:" + strconv.FormatBool(t), true
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return "n:" + strconv.FormatInt(i, 10), true
		}
		f, err := t.Float64()
		if err != nil {
			return "", false
		}
		return floatKey(f), true
	case int:
		return "n:" + strconv.FormatInt(int64(t), 10), true
	case int8:
		return "n:" + strconv.FormatInt(int64(t), 10), true
	case int16:
		return "n:" + strconv.FormatInt(int64(t), 10), true
	case int32:
		return "n:" + strconv.FormatInt(int64(t), 10), true
	case int64:
		return "n:" + strconv.FormatInt(t, 10), true
	case uint:
		return uintKey(uint64(t)), true
	case uint8:
		return uintKey(uint64(t)), true
	case uint16:
		return uintKey(uint64(t)), true
	case uint32:
		return uintKey(uint64(t)), true
	case uint64:
		return uintKey(t), true
	case float32:
		return floatKey(float64(t)), true
	case float64:
		return floatKey(t), true
	}
	return "", false
}

func uintKey(u uint64) string {
	if u <= math.MaxInt64 {
		return "n:" + strconv.FormatInt(int64(u), 10)
	}
	return "n:" + strconv.FormatUint(u, 10)
}

func floatKey(f float64) string {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return "n:" + strconv.FormatInt(int64(f), 10)
	}
	return "n:" + strconv.FormatFloat(f, 'g', -1, 64)
}
