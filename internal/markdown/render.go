package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rogersnm/jot/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	openStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	doneTitle   = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
)

const timeLayout = "2006-01-02 15:04:05"

func RenderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

func StatusStyle(s model.Status) lipgloss.Style {
	if s == model.StatusDone {
		return doneStyle
	}
	return openStyle
}

func RenderStatus(s model.Status) string {
	return StatusStyle(s).Render(string(s))
}

// RenderTitle strikes through the titles of finished todos.
func RenderTitle(t model.Todo) string {
	if t.Status() == model.StatusDone {
		return doneTitle.Render(t.Title)
	}
	return t.Title
}

func RenderField(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

func RenderEntityHeader(title string, fields []string) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(title))
	sb.WriteString("\n")
	for _, f := range fields {
		sb.WriteString("  " + f + "\n")
	}
	return sb.String()
}

// RenderTodo renders the header block for jot show --pretty.
func RenderTodo(t model.Todo, table string) string {
	fields := []string{
		RenderField("ID", t.ID),
		RenderField("Table", table),
		RenderField("Status", RenderStatus(t.Status())),
	}
	if !t.CreatedAt.IsZero() {
		fields = append(fields, RenderField("Created", t.CreatedAt.Local().Format(timeLayout)))
	}
	if !t.UpdatedAt.IsZero() {
		fields = append(fields, RenderField("Updated", t.UpdatedAt.Local().Format(timeLayout)))
	}
	if t.CompletedAt != nil && !t.CompletedAt.IsZero() {
		fields = append(fields, RenderField("Completed", t.CompletedAt.Local().Format(timeLayout)))
	}
	return RenderEntityHeader(t.Title, fields)
}
