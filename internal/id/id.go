package id

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const charset = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"
const hashLen = 5

// Prefix starts every generated todo id.
const Prefix = "T"

// New returns a random id such as T-7KQ2M.
func New() (string, error) {
	b := make([]byte, hashLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating id: %w", err)
	}
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return Prefix + "-" + string(b), nil
}

// Parse validates id and returns its hash part.
func Parse(id string) (string, error) {
	prefix, hash, ok := strings.Cut(id, "-")
	if !ok {
		return "", fmt.Errorf("invalid id %q: missing separator", id)
	}
	if prefix != Prefix {
		return "", fmt.Errorf("invalid id %q: unknown prefix %q", id, prefix)
	}
	if len(hash) != hashLen {
		return "", fmt.Errorf("invalid id %q: hash must be %d chars", id, hashLen)
	}
	for _, c := range hash {
		if !strings.ContainsRune(charset, c) {
			return "", fmt.Errorf("invalid id %q: invalid character %q", id, c)
		}
	}
	return hash, nil
}

// Normalize cleans up an id typed by a user: surrounding space is trimmed
// and generated ids are upper-cased. Anything that does not look like a
// generated id is returned trimmed but otherwise untouched, since callers may
// insert their own ids.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if up := strings.ToUpper(s); isGenerated(up) {
		return up
	}
	return s
}

func isGenerated(s string) bool {
	_, err := Parse(s)
	return err == nil
}
