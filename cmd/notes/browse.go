package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/cs-notes/internal/analytics"
	"github.com/p-n-ai/cs-notes/internal/platform/config"
	"github.com/p-n-ai/cs-notes/internal/platform/logging"
	"github.com/p-n-ai/cs-notes/internal/session"
	"github.com/p-n-ai/cs-notes/internal/tui"
)

func newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the notes in the terminal",
		Long: `Browse the study notes in an interactive terminal client.

Controls:
  ↑/k, ↓/j   - Move through topics or questions
  Enter      - Open topic / toggle answer
  Tab        - Switch between topic list and questions
  PgUp/PgDn  - Scroll the topic
  q          - Quit`,
		RunE: runBrowse,
	}
	cmd.Flags().String("category", "", "Start category key (default NOTES_START_CATEGORY)")
	cmd.Flags().String("topic", "", "Start topic id within the category")
	cmd.Flags().String("log-file", "", "Write logs to this file while the client owns the terminal")
	return cmd
}

func runBrowse(cmd *cobra.Command, args []string) error {
	logFile, _ := cmd.Flags().GetString("log-file")
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger, err := logging.New(f, config.LogConfig{Level: "debug", Format: "text"})
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
	} else {
		slog.SetDefault(logging.Discard())
	}

	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	opts, err := startOptions(cmd)
	if err != nil {
		return err
	}
	events := analytics.NewMemoryEventLogger()
	opts.Events = events

	s, err := session.New(cmd.Context(), cat, opts)
	if err != nil {
		return err
	}
	if err := tui.Run(cmd.Context(), s); err != nil {
		return fmt.Errorf("terminal client: %w", err)
	}

	printSummary(cmd, events.Events())
	return nil
}

// startOptions picks the start position from flags, falling back to the
// NOTES_START_* variables. A --category flag without --topic starts on the
// category's first topic.
func startOptions(cmd *cobra.Command) (session.Options, error) {
	cfg, err := config.Load()
	if err != nil {
		return session.Options{}, err
	}
	category, _ := cmd.Flags().GetString("category")
	topic, _ := cmd.Flags().GetString("topic")
	if category == "" {
		category = cfg.Content.StartCategory
		if topic == "" {
			topic = cfg.Content.StartTopic
		}
	}
	return session.Options{StartCategory: category, StartTopic: topic}, nil
}

func printSummary(cmd *cobra.Command, events []analytics.Event) {
	topics := map[string]bool{}
	toggles := 0
	for _, ev := range events {
		switch ev.EventType {
		case analytics.EventQuestionToggled:
			toggles++
		default:
			topics[ev.CategoryKey+"/"+ev.TopicID] = true
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Visited %d topics, toggled %d answers.\n", len(topics), toggles)
}
