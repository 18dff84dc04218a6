package db

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrCorrupt is returned by ReadFile when the file is not a JSON object of
// record arrays.
var ErrCorrupt = errors.New("corrupt database file")

// ReadFile loads a database file without taking ownership of it. A missing
// file yields an error wrapping fs.ErrNotExist.
func ReadFile(path string) (map[string][]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return decode(path, data)
}

func decode(path string, data []byte) (map[string][]Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tables map[string][]Record
	if err := dec.Decode(&tables); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	if tables == nil {
		return nil, fmt.Errorf("%w: %s: top level is not an object", ErrCorrupt, path)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: %s: trailing data", ErrCorrupt, path)
	}
	return tables, nil
}

// writeFile replaces path with data through a temp file in the same
// directory so readers only ever see a complete document.
func writeFile(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmp := f.Name()
	if err := f.Chmod(0644); err != nil {
		_ = f.Close()
		return errors.Join(fmt.Errorf("chmod %s: %w", tmp, err), os.Remove(tmp))
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return errors.Join(fmt.Errorf("writing %s: %w", tmp, err), os.Remove(tmp))
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return errors.Join(fmt.Errorf("syncing %s: %w", tmp, err), os.Remove(tmp))
	}
	if err := f.Close(); err != nil {
		return errors.Join(fmt.Errorf("closing %s: %w", tmp, err), os.Remove(tmp))
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Join(fmt.Errorf("renaming to %s: %w", path, err), os.Remove(tmp))
	}
	return nil
}
