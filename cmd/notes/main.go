// Command notes is the command-line companion of the study notes server:
// a terminal browser plus dataset validation, export and usage statistics.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/cs-notes/internal/content"
	"github.com/p-n-ai/cs-notes/internal/platform/config"
	"github.com/p-n-ai/cs-notes/internal/platform/logging"
)

// version is set via -ldflags at build time.
var version = "(devel)"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "notes",
		Short:        "CS fundamentals study notes",
		Long:         "Browse, validate and export the OOP, OS and DBMS study notes.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if v, _ := cmd.Flags().GetBool("verbose"); v {
				level = "debug"
			}
			logger, err := logging.New(cmd.ErrOrStderr(), config.LogConfig{Level: level, Format: "text"})
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return nil
		},
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")
	root.PersistentFlags().String("content-dir", "", "Directory with catalog.yaml (overrides NOTES_CONTENT_DIR, default: embedded dataset)")

	root.AddCommand(newBrowseCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// loadCatalog uses --content-dir, then NOTES_CONTENT_DIR, then the embedded
// dataset.
func loadCatalog(cmd *cobra.Command) (*content.Catalog, error) {
	dir, _ := cmd.Flags().GetString("content-dir")
	if dir == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		dir = cfg.Content.Dir
	}
	if dir == "" {
		return content.Default()
	}
	cat, err := content.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", dir, err)
	}
	return cat, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "notes", version)
		},
	}
}
