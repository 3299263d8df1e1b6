package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/cs-notes/internal/content"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the dataset against the authoring rules",
		Long: `Load the dataset and check it against the authoring rules: every category
has topics, topic ids are unique within their category, required fields are
present and every file matches its schema. All problems are listed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cat, err := loadCatalog(cmd)
			var verr *content.ValidationError
			if errors.As(err, &verr) {
				fmt.Fprintf(out, "%d problems:\n", len(verr.Problems))
				for _, p := range verr.Problems {
					fmt.Fprintf(out, "  - %s\n", p)
				}
				return fmt.Errorf("dataset is invalid")
			}
			if err != nil {
				return err
			}

			stats := cat.Stats()
			fmt.Fprintln(out, "ok")
			fmt.Fprintf(out, "categories:    %d\n", stats.Categories)
			fmt.Fprintf(out, "topics:        %d\n", stats.Topics)
			fmt.Fprintf(out, "questions:     %d\n", stats.Questions)
			fmt.Fprintf(out, "code examples: %d\n", stats.CodeExamples)
			fmt.Fprintf(out, "digest:        %s\n", cat.Digest())
			for _, c := range cat.Categories() {
				fmt.Fprintf(out, "  %-5s %-30s %3d topics\n", c.Key, c.Name, len(c.Topics))
			}
			return nil
		},
	}
}
