package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rogersnm/jot/internal/db"
	"github.com/rogersnm/jot/internal/markdown"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the todo list and reprint it whenever the database changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := resolveTable()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		printTodos(out, st.Select(table, nil))

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
		defer stop()
		err = db.Watch(ctx, st.Path(), func(tables map[string][]db.Record, err error) {
			if err != nil {
				slog.Warn("reloading database", "err", err)
				return
			}
			fmt.Fprintln(out)
			printTodos(out, tables[table])
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func printTodos(w io.Writer, records []db.Record) {
	fmt.Fprintln(w, markdown.RenderTodoTable(toTodos(records)))
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
