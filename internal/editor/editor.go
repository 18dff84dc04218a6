package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

func editorCmd() []string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if e := strings.Fields(os.Getenv(env)); len(e) > 0 {
			return e
		}
	}
	return []string{"vi"}
}

// Open runs the user's editor on path and waits for it to exit.
func Open(path string) error {
	argv := append(editorCmd(), path)
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %q: %w", argv[0], err)
	}
	return nil
}

// Edit writes content to a temp file named after pattern, opens it in the
// editor and returns what was saved.
func Edit(content []byte, pattern string) ([]byte, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return nil, fmt.Errorf("creating edit buffer: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(content); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing edit buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("closing edit buffer: %w", err)
	}

	if err := Open(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading edit buffer: %w", err)
	}
	return data, nil
}
