package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rogersnm/jot/internal/db"
	"github.com/rogersnm/jot/internal/editor"
	"github.com/rogersnm/jot/internal/id"
	"github.com/rogersnm/jot/internal/markdown"
	"github.com/rogersnm/jot/internal/model"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := resolveTable()
		if err != nil {
			return err
		}

		desc, _ := cmd.Flags().GetString("description")
		if !cmd.Flags().Changed("description") {
			desc = strings.TrimSpace(readStdin(cmd))
		}

		tid, err := newID(table)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		t := model.Todo{
			ID:          tid,
			Title:       strings.TrimSpace(args[0]),
			Description: desc,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := t.Validate(); err != nil {
			return err
		}
		if _, err := st.Insert(table, t.Record()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created todo %s (%s)\n", t.Title, t.ID)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := resolveTable()
		if err != nil {
			return err
		}
		query, _ := cmd.Flags().GetString("search")
		statusStr, _ := cmd.Flags().GetString("status")
		asJSON, _ := cmd.Flags().GetBool("json")

		status := model.Status(statusStr)
		if status != "" {
			if err := model.ValidateStatus(status); err != nil {
				return err
			}
		}

		var filter db.Filter
		if query != "" {
			filter = db.Filter{db.FieldTitle: query, db.FieldDescription: query}
		}
		records := filterStatus(st.Select(table, filter), status)

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		}
		printTodos(cmd.OutOrStdout(), records)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := resolveTable()
		if err != nil {
			return err
		}
		r, err := getTodo(table, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		pretty, _ := cmd.Flags().GetBool("pretty")
		if !pretty {
			data, err := json.MarshalIndent(r, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		t := model.FromRecord(r)
		fmt.Fprint(out, markdown.RenderTodo(t, table))
		if t.Description != "" {
			rendered, err := markdown.RenderMarkdown(t.Description)
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
		}
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change the title or description of a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := resolveTable()
		if err != nil {
			return err
		}

		var p db.Patch
		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			title = strings.TrimSpace(title)
			if title == "" {
				return fmt.Errorf("title cannot be empty")
			}
			p.Title = &title
		}
		if cmd.Flags().Changed("description") {
			desc, _ := cmd.Flags().GetString("description")
			p.Description = &desc
		} else if body := strings.TrimSpace(readStdin(cmd)); body != "" {
			p.Description = &body
		}
		if p.IsZero() {
			return fmt.Errorf("at least one of --title, --description or piped stdin is required")
		}

		key, err := lookupID(table, args[0])
		if err != nil {
			return err
		}
		out, err := st.Update(table, key, p)
		if err != nil {
			return err
		}
		return reportUpdate(cmd, args[0], out)
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a todo in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := resolveTable()
		if err != nil {
			return err
		}
		key, err := lookupID(table, args[0])
		if err != nil {
			return err
		}
		r, _ := st.Get(table, key)

		buf, err := markdown.EncodeTodo(model.FromRecord(r))
		if err != nil {
			return err
		}
		edited, err := editor.Edit(buf, "jot-*.md")
		if err != nil {
			return err
		}
		title, desc, err := markdown.DecodeTodo(edited)
		if err != nil {
			return err
		}

		out, err := st.Update(table, key, db.Patch{Title: &title, Description: &desc})
		if err != nil {
			return err
		}
		return reportUpdate(cmd, args[0], out)
	},
}

var toggleCmd = &cobra.Command{
	Use:     "toggle <id>",
	Aliases: []string{"done"},
	Short:   "Mark a todo done, or reopen a done one",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := resolveTable()
		if err != nil {
			return err
		}
		key, err := lookupID(table, args[0])
		if err != nil {
			return err
		}
		out, err := st.UpdateStatus(table, key)
		if err != nil {
			return err
		}
		if out == db.NotFound {
			return notFound(args[0], table)
		}

		r, _ := st.Get(table, key)
		verb := "Reopened"
		if r.Completed() {
			verb = "Completed"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s todo %s\n", verb, args[0])
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := resolveTable()
		if err != nil {
			return err
		}
		key, err := lookupID(table, args[0])
		if err != nil {
			return err
		}
		r, _ := st.Get(table, key)
		t := model.FromRecord(r)

		fmt.Fprintf(cmd.OutOrStdout(), "Todo: %s (%s)\n", t.Title, t.ID)
		if err := confirmDelete(cmd, t.ID); err != nil {
			return err
		}
		out, err := st.Delete(table, key)
		if err != nil {
			return err
		}
		if out == db.NotFound {
			return notFound(args[0], table)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted todo %s\n", t.ID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringP("description", "d", "", "description (default: piped stdin)")

	listCmd.Flags().StringP("search", "s", "", "case-insensitive search in title or description")
	listCmd.Flags().String("status", "", "filter by status (open, done)")
	listCmd.Flags().Bool("json", false, "print records as JSON")

	showCmd.Flags().Bool("pretty", false, "render with ANSI styling")

	updateCmd.Flags().String("title", "", "new title")
	updateCmd.Flags().StringP("description", "d", "", "new description (default: piped stdin)")

	deleteCmd.Flags().BoolP("force", "f", false, "skip confirmation")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(deleteCmd)
}

// newID generates an id not yet used in table. Insert does not check for
// collisions, so this is where uniqueness is enforced.
func newID(table string) (string, error) {
	for i := 0; i < 10; i++ {
		tid, err := id.New()
		if err != nil {
			return "", err
		}
		if st.FindIndex(table, tid) == db.NoIndex {
			return tid, nil
		}
	}
	return "", fmt.Errorf("could not generate a free id in table %s", table)
}

// lookupID resolves a command-line id to the stored id value. Ids typed as
// numbers also match records whose id is a JSON number.
func lookupID(table, arg string) (any, error) {
	s := id.Normalize(arg)
	if st.FindIndex(table, s) != db.NoIndex {
		return s, nil
	}
	if n := json.Number(s); isNumber(n) && st.FindIndex(table, n) != db.NoIndex {
		return n, nil
	}
	return nil, notFound(arg, table)
}

func isNumber(n json.Number) bool {
	_, err := n.Float64()
	return err == nil
}

func getTodo(table, arg string) (db.Record, error) {
	key, err := lookupID(table, arg)
	if err != nil {
		return nil, err
	}
	r, ok := st.Get(table, key)
	if !ok {
		return nil, notFound(arg, table)
	}
	return r, nil
}

func notFound(arg, table string) error {
	return fmt.Errorf("todo %s not found in table %s", arg, table)
}

func reportUpdate(cmd *cobra.Command, arg string, out db.Outcome) error {
	switch out {
	case db.NotFound:
		return fmt.Errorf("todo %s not found", arg)
	case db.Unchanged:
		fmt.Fprintf(cmd.OutOrStdout(), "Todo %s unchanged\n", arg)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "Updated todo %s\n", arg)
	}
	return nil
}

func confirmDelete(cmd *cobra.Command, todoID string) error {
	if force, _ := cmd.Flags().GetBool("force"); force {
		return nil
	}
	var confirm bool
	if err := huh.NewConfirm().Title(fmt.Sprintf("Delete %s?", todoID)).Value(&confirm).Run(); err != nil || !confirm {
		return fmt.Errorf("deletion cancelled")
	}
	return nil
}

func filterStatus(records []db.Record, status model.Status) []db.Record {
	if status == "" {
		return records
	}
	out := records[:0]
	for _, r := range records {
		t := model.FromRecord(r)
		if t.Status() == status {
			out = append(out, r)
		}
	}
	return out
}

func toTodos(records []db.Record) []model.Todo {
	todos := make([]model.Todo, len(records))
	for i, r := range records {
		todos[i] = model.FromRecord(r)
	}
	return todos
}
