package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/p-n-ai/cs-notes/internal/analytics"
	"github.com/p-n-ai/cs-notes/internal/platform/config"
	"github.com/p-n-ai/cs-notes/internal/platform/database"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the most visited topics recorded by the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			url, _ := cmd.Flags().GetString("database-url")
			if url == "" {
				url = cfg.Database.URL
			}
			if url == "" {
				return fmt.Errorf("no database configured: set NOTES_DATABASE_URL or --database-url")
			}
			limit, _ := cmd.Flags().GetInt("limit")

			db, err := database.Open(cmd.Context(), database.Options{URL: url, MaxConns: 2, MinConns: 1})
			if err != nil {
				return err
			}
			defer db.Close()

			top, err := analytics.NewPostgresEventLogger(db.Pool).TopTopics(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(top) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No visits recorded yet.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), topicsTable(top))
			return nil
		},
	}
	cmd.Flags().String("database-url", "", "PostgreSQL URL (default NOTES_DATABASE_URL)")
	cmd.Flags().Int("limit", 10, "Number of topics to show")
	return cmd
}

func topicsTable(top []analytics.TopicCount) *table.Table {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CATEGORY", "TOPIC", "VIEWS")
	for _, tc := range top {
		t.Row(tc.CategoryKey, tc.TopicID, strconv.FormatInt(tc.Views, 10))
	}
	return t
}
