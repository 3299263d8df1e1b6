package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Text renders p as plain text wrapped at width columns. Code is written
// line for line as authored and never wrapped. A width of zero or less
// disables wrapping.
func Text(p Page, width int) string {
	var b strings.Builder

	b.WriteString(p.Title)
	b.WriteString("\n\n")
	writeWrapped(&b, p.Explanation, width, "")

	if len(p.KeyPoints) > 0 {
		b.WriteString("\n")
		b.WriteString(HeadingKeyPoints)
		b.WriteString("\n")
		for _, kp := range p.KeyPoints {
			writeWrapped(&b, kp, width, "  - ")
		}
	}

	if len(p.CodeExamples) > 0 {
		b.WriteString("\n")
		b.WriteString(HeadingCodeExamples)
		b.WriteString("\n")
		for _, ex := range p.CodeExamples {
			b.WriteString("\n")
			b.WriteString(ex.Title)
			if ex.Language != "" {
				b.WriteString(" [" + ex.Language + "]")
			}
			b.WriteString("\n")
			b.WriteString(ex.Code)
			if !strings.HasSuffix(ex.Code, "\n") {
				b.WriteString("\n")
			}
		}
	}

	if p.Questions != nil {
		b.WriteString("\n")
		b.WriteString(p.Questions.Heading)
		b.WriteString("\n")
		for _, q := range p.Questions.Items {
			marker := "+ "
			if q.Expanded {
				marker = "- "
			}
			writeWrapped(&b, q.Label+": "+q.Prompt, width, marker)
			if q.Expanded {
				writeWrapped(&b, AnswerPrefix+" "+q.Answer, width, "    ")
			}
		}
	}

	return b.String()
}

// writeWrapped writes s with prefix on the first line and matching
// indentation on continuation lines.
func writeWrapped(b *strings.Builder, s string, width int, prefix string) {
	indent := strings.Repeat(" ", len(prefix))
	for i, para := range strings.Split(s, "\n") {
		if width > len(prefix) {
			para = ansi.Wordwrap(para, width-len(prefix), "")
		}
		for j, line := range strings.Split(para, "\n") {
			if i == 0 && j == 0 {
				b.WriteString(prefix)
			} else {
				b.WriteString(indent)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
}
