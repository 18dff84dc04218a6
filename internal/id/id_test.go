package id

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validPattern = regexp.MustCompile(`^T-[23456789ABCDEFGHJKMNPQRSTUVWXYZ]{5}$`)

func TestNew_Format(t *testing.T) {
	id, err := New()
	require.NoError(t, err)
	assert.Regexp(t, validPattern, id)
}

func TestNew_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id, err := New()
		require.NoError(t, err)
		assert.False(t, seen[id], "collision: %s", id)
		seen[id] = true
	}
}

func TestParse_Valid(t *testing.T) {
	id, err := New()
	require.NoError(t, err)

	hash, err := Parse(id)
	require.NoError(t, err)
	assert.Len(t, hash, hashLen)
	assert.Equal(t, id[2:], hash)
}

func TestParse_InvalidFormat(t *testing.T) {
	tests := []string{
		"",
		"T",
		"T-",
		"T-AB",     // too short
		"T-00000",  // 0 not in charset
		"T-1ABCD",  // 1 not in charset
		"T-OABCD",  // O not in charset
		"T-IABCD",  // I not in charset
		"T-LABCD",  // L not in charset
		"X-ABCDE",
		"t-ABCDE",
		"T-ABCDEF", // too long
		"TASK-ABCDE",
	}
	for _, id := range tests {
		_, err := Parse(id)
		assert.Error(t, err, "expected error for %q", id)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"T-ABCDE", "T-ABCDE"},
		{" t-abcde\n", "T-ABCDE"},
		{"my-custom-id", "my-custom-id"},
		{"  42 ", "42"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}
