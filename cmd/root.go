package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	mtp "github.com/modeltoolsprotocol/go-sdk"
	"github.com/rogersnm/jot/internal/config"
	"github.com/rogersnm/jot/internal/db"
	"github.com/rogersnm/jot/internal/logging"
	"github.com/rogersnm/jot/internal/tablefile"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	dataDir   string
	tableFlag string
	logLevel  string
	st        *db.Database
	cfg       *config.Config
)

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".jot")
	}
	return filepath.Join(home, ".jot")
}

var rootCmd = &cobra.Command{
	Use:     "jot",
	Short:   "A tiny to-do list backed by a single JSON file",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}

		var err error
		cfg, err = config.Load(dataDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		level := cfg.LogLevel
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		logging.Init(level)

		// Config commands must work even when the database cannot be opened.
		if cmd.Name() == "config" || (cmd.Parent() != nil && cmd.Parent().Name() == "config") {
			return nil
		}

		st, err = db.Open(cfg.DatabasePath(dataDir))
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "data directory path")
	rootCmd.PersistentFlags().StringVarP(&tableFlag, "table", "T", "", "table to operate on (default: linked table, then config default_table, then todos)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	mtpOpts := &mtp.DescribeOptions{
		Commands: map[string]*mtp.CommandAnnotation{
			"add": {
				Stdin: &mtp.IODescriptor{
					ContentType: "text/markdown",
					Description: "Description for the new todo (used when --description is not given)",
				},
				Examples: []mtp.Example{
					{Description: "Add a todo", Command: "jot add \"Buy milk\""},
					{Description: "Add a todo with a description", Command: "jot add \"Buy milk\" -d \"Two litres, skimmed\""},
					{Description: "Add to another table", Command: "jot add \"Fix gutter\" --table chores"},
				},
			},
			"list": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Table of todos with ID, title, status and creation date, or a JSON array with --json",
				},
				Examples: []mtp.Example{
					{Description: "List all todos", Command: "jot list"},
					{Description: "Search title and description", Command: "jot list --search milk"},
					{Description: "List open todos as JSON", Command: "jot list --status open --json"},
				},
			},
			"show": {
				Stdout: &mtp.IODescriptor{
					ContentType: "application/json",
					Description: "The stored record, or a styled view with --pretty",
				},
				Examples: []mtp.Example{
					{Description: "Show a todo", Command: "jot show T-XXXXX"},
				},
			},
			"update": {
				Stdin: &mtp.IODescriptor{
					ContentType: "text/markdown",
					Description: "New description (used when --description is not given)",
				},
				Examples: []mtp.Example{
					{Description: "Rename a todo", Command: "jot update T-XXXXX --title \"Buy oat milk\""},
					{Description: "Replace the description", Command: "echo 'From the corner shop' | jot update T-XXXXX"},
				},
			},
			"edit": {
				Examples: []mtp.Example{
					{Description: "Edit title and description in $EDITOR", Command: "jot edit T-XXXXX"},
				},
			},
			"toggle": {
				Examples: []mtp.Example{
					{Description: "Mark a todo done, or reopen it", Command: "jot toggle T-XXXXX"},
				},
			},
			"delete": {
				Examples: []mtp.Example{
					{Description: "Delete a todo (interactive confirm)", Command: "jot delete T-XXXXX"},
					{Description: "Delete a todo (skip confirm)", Command: "jot delete T-XXXXX --force"},
				},
			},
			"tables": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Table names with record counts",
				},
			},
			"table link": {
				Examples: []mtp.Example{
					{Description: "Use the chores table in this directory tree", Command: "jot table link chores"},
				},
			},
			"watch": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "The todo table, re-printed every time the database file changes",
				},
			},
		},
	}

	mtp.WithDescribe(rootCmd, mtpOpts)
}

func Execute() error {
	return rootCmd.Execute()
}

// resolveTable returns the table from the flag, the nearest .jot-table link,
// or the configured default.
func resolveTable() (string, error) {
	if tableFlag != "" {
		if err := tablefile.Validate(tableFlag); err != nil {
			return "", err
		}
		return tableFlag, nil
	}
	if cwd, err := os.Getwd(); err == nil {
		t, _, err := tablefile.Find(cwd)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", tablefile.FileName, err)
		}
		if t != "" {
			return t, nil
		}
	}
	if cfg != nil {
		return cfg.Table(), nil
	}
	return config.DefaultTable, nil
}

// readStdin returns piped input, or "" when stdin is a terminal.
func readStdin(cmd *cobra.Command) string {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		info, err := f.Stat()
		if err != nil {
			return ""
		}
		// Only read if stdin is explicitly a pipe (not a terminal, not a socket)
		if info.Mode()&os.ModeNamedPipe == 0 && info.Size() == 0 {
			return ""
		}
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return ""
	}
	return string(data)
}
