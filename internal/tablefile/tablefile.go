// Package tablefile links a directory tree to a table through a .jot-table
// file, so commands run anywhere below it use that table by default.
package tablefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const FileName = ".jot-table"

// Find walks up from startDir looking for a .jot-table file.
// Returns ("", "", nil) if none is found.
func Find(startDir string) (table, dir string, err error) {
	dir = startDir
	for {
		table, err := Read(dir)
		if err != nil {
			return "", "", err
		}
		if table != "" {
			return table, dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", nil
		}
		dir = parent
	}
}

// Write links dir to table.
func Write(dir, table string) error {
	if err := Validate(table); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, FileName), []byte(table+"\n"), 0644)
}

// Read returns the trimmed table name linked in dir, or "" if there is none.
func Read(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Remove deletes the link in dir. removed is false if there was none.
func Remove(dir string) (removed bool, err error) {
	if err := os.Remove(filepath.Join(dir, FileName)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Validate rejects table names that cannot round-trip through the link file.
func Validate(table string) error {
	if strings.TrimSpace(table) == "" {
		return fmt.Errorf("table name is required")
	}
	if table != strings.TrimSpace(table) || strings.ContainsAny(table, "\r\n") {
		return fmt.Errorf("invalid table name %q: no surrounding space or newlines", table)
	}
	return nil
}
