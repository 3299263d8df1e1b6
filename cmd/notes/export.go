package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/cs-notes/internal/export"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the notes as a workbook, JSON or text",
		Long: `Export the dataset.

Formats:
  xlsx - study workbook: a Topics overview sheet plus one Q&A sheet per category
  json - data file for the web client bundle
  text - every topic with all answers shown, for printing`,
		RunE: runExport,
	}
	cmd.Flags().StringP("format", "f", "xlsx", "Output format: xlsx, json or text")
	cmd.Flags().StringP("out", "o", "", "Output file (default: stdout for json and text, notes.xlsx for xlsx)")
	cmd.Flags().Int("width", 100, "Wrap width for text output")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")
	width, _ := cmd.Flags().GetInt("width")

	var write func(io.Writer) error
	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	switch format {
	case "xlsx":
		write = func(w io.Writer) error { return export.WriteWorkbook(w, cat) }
		if out == "" {
			out = "notes.xlsx"
		}
	case "json":
		write = func(w io.Writer) error { return export.WriteJSON(w, cat) }
	case "text":
		write = func(w io.Writer) error { return export.WriteText(w, cat, width) }
	default:
		return fmt.Errorf("unknown format %q (want xlsx, json or text)", format)
	}

	if out == "" || out == "-" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
	return nil
}
