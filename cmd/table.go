package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/rogersnm/jot/internal/markdown"
	"github.com/rogersnm/jot/internal/tablefile"
	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List tables and their record counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := st.Tables()
		counts := make([]markdown.TableCount, len(names))
		for i, n := range names {
			counts[i] = markdown.TableCount{Name: n, Count: st.Len(n)}
		}
		fmt.Fprintln(cmd.OutOrStdout(), markdown.RenderTableList(counts))
		return nil
	},
}

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Manage the directory-local table link",
}

var tableLinkCmd = &cobra.Command{
	Use:   "link [table]",
	Short: "Use a table for commands run in the current directory tree",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var table string
		if len(args) == 1 {
			table = args[0]
		} else {
			names := st.Tables()
			if len(names) == 0 {
				return fmt.Errorf("no tables exist; name one explicitly: jot table link <name>")
			}
			opts := make([]huh.Option[string], len(names))
			for i, n := range names {
				opts[i] = huh.NewOption(fmt.Sprintf("%s  (%d)", n, st.Len(n)), n)
			}
			if err := huh.NewSelect[string]().
				Title("Select a table").
				Options(opts...).
				Value(&table).
				Run(); err != nil {
				return fmt.Errorf("selection cancelled")
			}
		}

		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		if err := tablefile.Write(cwd, table); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Linked %s to table %s\n", tablefile.FileName, table)
		return nil
	},
}

var tableShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show which table commands will use here",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if tableFlag != "" {
			fmt.Fprintf(out, "%s (from --table)\n", tableFlag)
			return nil
		}
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		table, dir, err := tablefile.Find(cwd)
		if err != nil {
			return err
		}
		if table != "" {
			fmt.Fprintf(out, "%s (from %s)\n", table, filepath.Join(dir, tablefile.FileName))
			return nil
		}
		fmt.Fprintf(out, "%s (default)\n", cfg.Table())
		return nil
	},
}

var tableUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Remove the table link in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		removed, err := tablefile.Remove(cwd)
		if err != nil {
			return err
		}
		if !removed {
			fmt.Fprintln(cmd.OutOrStdout(), "No table linked.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Unlinked table.")
		return nil
	},
}

func init() {
	tableCmd.AddCommand(tableLinkCmd)
	tableCmd.AddCommand(tableShowCmd)
	tableCmd.AddCommand(tableUnlinkCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(tablesCmd)
}
