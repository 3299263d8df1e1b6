// Package export writes the catalog out as a study workbook or as the JSON
// data file loaded by the web client.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/p-n-ai/cs-notes/internal/content"
	"github.com/p-n-ai/cs-notes/internal/render"
)

// OverviewSheet lists every topic with its section counts.
const OverviewSheet = "Topics"

var (
	overviewHeader = []any{"Category", "Topic ID", "Title", "Key Points", "Code Examples", "Questions"}
	questionHeader = []any{"Topic", "#", "Question", "Answer"}
)

// WriteWorkbook writes an xlsx workbook: an overview sheet followed by one
// sheet of questions and answers per category.
func WriteWorkbook(w io.Writer, cat *content.Catalog) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", OverviewSheet); err != nil {
		return fmt.Errorf("rename overview sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := writeOverview(f, cat, bold); err != nil {
		return err
	}
	for _, c := range cat.Categories() {
		if err := writeCategory(f, c, bold); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeOverview(f *excelize.File, cat *content.Catalog, bold int) error {
	rows := [][]any{overviewHeader}
	for _, c := range cat.Categories() {
		for _, t := range c.Topics {
			rows = append(rows, []any{c.Name, t.ID, t.Title, len(t.KeyPoints), len(t.CodeExamples), len(t.Questions)})
		}
	}
	if err := writeRows(f, OverviewSheet, rows, bold); err != nil {
		return err
	}
	return setWidths(f, OverviewSheet, map[string]float64{"A": 30, "B": 36, "C": 44, "D": 12, "E": 14, "F": 12})
}

func writeCategory(f *excelize.File, c content.Category, bold int) error {
	sheet := SheetName(c)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %q: %w", sheet, err)
	}

	rows := [][]any{questionHeader}
	for _, t := range c.Topics {
		for i, q := range t.Questions {
			rows = append(rows, []any{t.Title, i + 1, q.Prompt, q.Answer})
		}
	}
	if err := writeRows(f, sheet, rows, bold); err != nil {
		return err
	}
	if err := setWidths(f, sheet, map[string]float64{"A": 36, "B": 5, "C": 60, "D": 100}); err != nil {
		return err
	}

	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return fmt.Errorf("create wrap style: %w", err)
	}
	if len(rows) > 1 {
		last, _ := excelize.CoordinatesToCellName(4, len(rows))
		if err := f.SetCellStyle(sheet, "C2", last, wrap); err != nil {
			return fmt.Errorf("style %q: %w", sheet, err)
		}
	}
	return nil
}

// SheetName is the worksheet name for a category. Excel limits names to 31
// characters.
func SheetName(c content.Category) string {
	name := c.Key
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

func writeRows(f *excelize.File, sheet string, rows [][]any, bold int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
		}
	}
	last, _ := excelize.ColumnNumberToName(len(rows[0]))
	if err := f.SetCellStyle(sheet, "A1", last+"1", bold); err != nil {
		return fmt.Errorf("style header of %q: %w", sheet, err)
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func setWidths(f *excelize.File, sheet string, widths map[string]float64) error {
	for col, w := range widths {
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("set width %s!%s: %w", sheet, col, err)
		}
	}
	return nil
}

// Bundle is the JSON data file consumed by the web client.
type Bundle struct {
	Version    string             `json:"version"`
	Categories []content.Category `json:"categories"`
}

// WriteJSON writes the catalog as an indented Bundle.
func WriteJSON(w io.Writer, cat *content.Catalog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Bundle{Version: cat.Digest(), Categories: cat.Categories()}); err != nil {
		return fmt.Errorf("encode bundle: %w", err)
	}
	return nil
}

// WriteText writes every topic as plain text with all answers shown, for
// printing.
func WriteText(w io.Writer, cat *content.Catalog, width int) error {
	for _, c := range cat.Categories() {
		if _, err := fmt.Fprintf(w, "# %s\n\n", c.Name); err != nil {
			return err
		}
		for _, t := range c.Topics {
			page := render.BuildPage(t, func(int) bool { return true })
			if _, err := io.WriteString(w, render.Text(page, width)+"\n"); err != nil {
				return err
			}
		}
	}
	return nil
}
