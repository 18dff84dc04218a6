package markdown

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/rogersnm/jot/internal/model"
	"gopkg.in/yaml.v3"
)

// EditMeta is the frontmatter of a todo opened in an editor. Only the title
// is read back; id and status are shown for context.
type EditMeta struct {
	ID     string       `yaml:"id"`
	Title  string       `yaml:"title"`
	Status model.Status `yaml:"status"`
}

// Parse reads YAML frontmatter and body from r into T.
func Parse[T any](r io.Reader) (T, string, error) {
	var meta T
	body, err := frontmatter.Parse(r, &meta)
	if err != nil {
		return meta, "", fmt.Errorf("parsing frontmatter: %w", err)
	}
	return meta, strings.TrimSpace(string(body)), nil
}

// Marshal serializes meta as YAML frontmatter followed by body.
func Marshal[T any](meta T, body string) ([]byte, error) {
	yamlBytes, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(yamlBytes)
	buf.WriteString("---\n")
	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteString("\n")
		}
	}
	return buf.Bytes(), nil
}

// EncodeTodo renders t as an edit buffer: title in the frontmatter,
// description as the body.
func EncodeTodo(t model.Todo) ([]byte, error) {
	return Marshal(EditMeta{ID: t.ID, Title: t.Title, Status: t.Status()}, t.Description)
}

// DecodeTodo reads back an edit buffer produced by EncodeTodo.
func DecodeTodo(data []byte) (title, description string, err error) {
	meta, body, err := Parse[EditMeta](bytes.NewReader(data))
	if err != nil {
		return "", "", err
	}
	title = strings.TrimSpace(meta.Title)
	if title == "" {
		return "", "", fmt.Errorf("title is required")
	}
	return title, body, nil
}
