package render

import (
	"fmt"

	"github.com/p-n-ai/cs-notes/internal/content"
)

// Section headings.
const (
	HeadingKeyPoints    = "Key Points:"
	HeadingCodeExamples = "Code Examples"
	AnswerPrefix        = "Answer:"
)

// Page is a rendered topic. Optional sections are nil when the topic has
// nothing to put in them.
type Page struct {
	Title        string           `json:"title"`
	Explanation  string           `json:"explanation"`
	KeyPoints    []string         `json:"keyPoints,omitempty"`
	CodeExamples []CodeBlock      `json:"codeExamples,omitempty"`
	Questions    *QuestionSection `json:"questions,omitempty"`
}

// CodeBlock is one preformatted code example.
type CodeBlock struct {
	Title    string `json:"title"`
	Language string `json:"language"`
	Code     string `json:"code"`
}

// QuestionSection is the interview question list.
type QuestionSection struct {
	Heading string         `json:"heading"`
	Items   []QuestionItem `json:"items"`
}

// QuestionItem is one question. Answer is always filled; Expanded says
// whether it is shown.
type QuestionItem struct {
	Number   int    `json:"number"`
	Label    string `json:"label"`
	Prompt   string `json:"prompt"`
	Answer   string `json:"answer"`
	Expanded bool   `json:"expanded"`
}

// QuestionsHeading is the heading of a question list of n entries.
func QuestionsHeading(n int) string {
	return fmt.Sprintf("Interview Questions (%d)", n)
}

// BuildPage renders t. expanded reports the visibility of question i and
// may be nil for an all-collapsed page.
func BuildPage(t content.Topic, expanded func(i int) bool) Page {
	p := Page{
		Title:       t.Title,
		Explanation: t.Explanation,
	}
	if len(t.KeyPoints) > 0 {
		p.KeyPoints = append([]string(nil), t.KeyPoints...)
	}
	if len(t.CodeExamples) > 0 {
		p.CodeExamples = make([]CodeBlock, len(t.CodeExamples))
		for i, ex := range t.CodeExamples {
			p.CodeExamples[i] = CodeBlock{Title: ex.Title, Language: ex.Language, Code: ex.Code}
		}
	}
	if len(t.Questions) > 0 {
		qs := &QuestionSection{
			Heading: QuestionsHeading(len(t.Questions)),
			Items:   make([]QuestionItem, len(t.Questions)),
		}
		for i, q := range t.Questions {
			qs.Items[i] = QuestionItem{
				Number:   i + 1,
				Label:    fmt.Sprintf("Q%d", i+1),
				Prompt:   q.Prompt,
				Answer:   q.Answer,
				Expanded: expanded != nil && expanded(i),
			}
		}
		p.Questions = qs
	}
	return p
}
