package db

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSameID(t *testing.T) {
	tests := []struct {
		a, b any
		want bool
	}{
		{"a", "a", true},
		{"a", "A", false},
		{1, 1, true},
		{1, int64(1), true},
		{uint8(7), 7.0, true},
		{json.Number("12"), 12, true},
		{json.Number("1e3"), 1000, true},
		{json.Number("1.5"), 1.5, true},
		{1.5, 1, false},
		{"1", 1, false},
		{"1", json.Number("1"), false},
		{true, true, true},
		{true, "true", false},
		{nil, nil, false},
		{map[string]any{}, map[string]any{}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SameID(tt.a, tt.b), "SameID(%#v, %#v)", tt.a, tt.b)
	}
}

func TestRecord_Completed(t *testing.T) {
	assert.False(t, Record{}.Completed())
	assert.False(t, Record{"completed_at": nil}.Completed())
	assert.False(t, Record{"completed_at": ""}.Completed())
	assert.False(t, Record{"completed_at": false}.Completed())
	assert.True(t, Record{"completed_at": "2026-01-01T00:00:00.000Z"}.Completed())
	assert.True(t, Record{"completed_at": time.Now()}.Completed())
}

func TestRecord_TimeAccessors(t *testing.T) {
	ts := time.Date(2026, 3, 4, 5, 6, 7, 8_000_000, time.UTC)
	r := Record{
		"created_at":   FormatTime(ts),
		"updated_at":   ts,
		"completed_at": "yesterday",
	}

	got, ok := r.CreatedAt()
	assert.True(t, ok)
	assert.True(t, got.Equal(ts))

	got, ok = r.UpdatedAt()
	assert.True(t, ok)
	assert.True(t, got.Equal(ts))

	_, ok = r.CompletedAt()
	assert.False(t, ok)
}

func TestFormatTime(t *testing.T) {
	loc := time.FixedZone("X", 2*60*60)
	ts := time.Date(2026, 3, 4, 7, 6, 7, 123_456_789, loc)
	assert.Equal(t, "2026-03-04T05:06:07.123Z", FormatTime(ts))
}

func TestRecord_StringAccessors(t *testing.T) {
	r := Record{"title": "T", "description": 3}
	title, ok := r.Title()
	assert.True(t, ok)
	assert.Equal(t, "T", title)

	_, ok = r.Description()
	assert.False(t, ok)
}

func TestRecord_CloneIsDeep(t *testing.T) {
	r := Record{"id": 1, "nested": map[string]any{"list": []any{"a"}}}
	c := r.Clone()
	c["nested"].(map[string]any)["list"].([]any)[0] = "b"
	assert.Equal(t, "a", r["nested"].(map[string]any)["list"].([]any)[0])
	assert.Nil(t, Record(nil).Clone())
}

func TestFilter_Match(t *testing.T) {
	r := Record{"title": "Buy Milk", "description": "2L", "n": json.Number("5")}

	assert.True(t, Filter(nil).Match(r))
	assert.True(t, Filter{"title": "milk"}.Match(r))
	assert.True(t, Filter{"title": ""}.Match(r))
	assert.True(t, Filter{"title": "zzz", "description": "2l"}.Match(r))
	assert.False(t, Filter{"title": "zzz"}.Match(r))
	assert.False(t, Filter{"missing": "x"}.Match(r))
	assert.False(t, Filter{"n": "5"}.Match(r))
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "not found", NotFound.String())
	assert.Equal(t, "unchanged", Unchanged.String())
	assert.Equal(t, "applied", Applied.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
