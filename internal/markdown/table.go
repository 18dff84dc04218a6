package markdown

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rogersnm/jot/internal/model"
)

var (
	headerRowStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle      = lipgloss.NewStyle()
)

// TableCount is one row of jot tables.
type TableCount struct {
	Name  string
	Count int
}

func RenderTodoTable(todos []model.Todo) string {
	if len(todos) == 0 {
		return "No todos found."
	}
	rows := make([][]string, len(todos))
	for i, t := range todos {
		created := ""
		if !t.CreatedAt.IsZero() {
			created = t.CreatedAt.Local().Format("2006-01-02")
		}
		rows[i] = []string{t.ID, RenderTitle(t), RenderStatus(t.Status()), created}
	}
	return renderTable([]string{"ID", "Title", "Status", "Created"}, rows)
}

func RenderTableList(tables []TableCount) string {
	if len(tables) == 0 {
		return "No tables found."
	}
	rows := make([][]string, len(tables))
	for i, t := range tables {
		rows[i] = []string{t.Name, strconv.Itoa(t.Count)}
	}
	return renderTable([]string{"Table", "Records"}, rows)
}

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerRowStyle
			}
			return cellStyle
		})
	return t.Render()
}
