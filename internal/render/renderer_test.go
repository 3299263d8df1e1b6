package render_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/p-n-ai/cs-notes/internal/content"
	"github.com/p-n-ai/cs-notes/internal/render"
	"github.com/p-n-ai/cs-notes/internal/selection"
)

func topicWithQuestions(n int) content.Topic {
	t := content.Topic{ID: "t", Title: "T", Explanation: "e"}
	for i := 0; i < n; i++ {
		t.Questions = append(t.Questions, content.Question{Prompt: "p", Answer: "a"})
	}
	return t
}

func TestToggle_Independence(t *testing.T) {
	r := render.New()
	r.Show(render.TopicRef{CategoryKey: "c", TopicID: "t"}, topicWithQuestions(6))

	if err := r.Toggle(2); err != nil {
		t.Fatalf("Toggle(2) error = %v", err)
	}
	for i := 0; i < 6; i++ {
		want := i == 2
		if got := r.Expanded(i); got != want {
			t.Errorf("Expanded(%d) = %v, want %v", i, got, want)
		}
	}

	if err := r.Toggle(4); err != nil {
		t.Fatalf("Toggle(4) error = %v", err)
	}
	if got := r.ExpandedIndices(); !slices.Equal(got, []int{2, 4}) {
		t.Errorf("ExpandedIndices() = %v, want [2 4]", got)
	}
}

func TestToggle_TwiceRestores(t *testing.T) {
	r := render.New()
	r.Show(render.TopicRef{CategoryKey: "c", TopicID: "t"}, topicWithQuestions(3))
	_ = r.Toggle(0)

	for i := 0; i < 3; i++ {
		before := r.Expanded(i)
		_ = r.Toggle(i)
		_ = r.Toggle(i)
		if r.Expanded(i) != before {
			t.Errorf("question %d: visibility %v after double toggle, want %v", i, r.Expanded(i), before)
		}
	}
}

func TestToggle_OutOfRange(t *testing.T) {
	r := render.New()
	r.Show(render.TopicRef{CategoryKey: "c", TopicID: "t"}, topicWithQuestions(2))

	for _, i := range []int{-1, 2, 100} {
		if err := r.Toggle(i); !errors.Is(err, render.ErrQuestionIndex) {
			t.Errorf("Toggle(%d) error = %v, want ErrQuestionIndex", i, err)
		}
	}
	if len(r.ExpandedIndices()) != 0 {
		t.Errorf("failed toggles changed visibility: %v", r.ExpandedIndices())
	}
}

func TestShow_ResetsOnTopicChange(t *testing.T) {
	r := render.New()
	a := render.TopicRef{CategoryKey: "c", TopicID: "a"}
	b := render.TopicRef{CategoryKey: "c", TopicID: "b"}

	r.Show(a, topicWithQuestions(5))
	_ = r.Toggle(3)

	if reset := r.Show(a, topicWithQuestions(5)); reset {
		t.Error("Show() with the same ref should keep visibility")
	}
	if !r.Expanded(3) {
		t.Error("question 3 collapsed by re-showing the same topic")
	}

	// the new topic also has a question at index 3; it must not inherit state
	if reset := r.Show(b, topicWithQuestions(5)); !reset {
		t.Error("Show() with a new ref should reset visibility")
	}
	if got := r.ExpandedIndices(); len(got) != 0 {
		t.Errorf("ExpandedIndices() = %v after topic change, want none", got)
	}
	if r.Ref() != b {
		t.Errorf("Ref() = %+v, want %+v", r.Ref(), b)
	}
}

func TestShow_SameIDOtherCategoryResets(t *testing.T) {
	r := render.New()
	r.Show(render.TopicRef{CategoryKey: "x", TopicID: "intro"}, topicWithQuestions(2))
	_ = r.Toggle(1)

	r.Show(render.TopicRef{CategoryKey: "y", TopicID: "intro"}, topicWithQuestions(2))
	if r.Expanded(1) {
		t.Error("visibility leaked between topics sharing an id")
	}
}

func TestCollapseAll(t *testing.T) {
	r := render.New()
	r.Show(render.TopicRef{CategoryKey: "c", TopicID: "t"}, topicWithQuestions(4))
	_ = r.Toggle(0)
	_ = r.Toggle(1)

	r.CollapseAll()
	if got := r.ExpandedIndices(); len(got) != 0 {
		t.Errorf("ExpandedIndices() = %v, want none", got)
	}
}

// Expanding questions of encapsulation and then switching category shows
// the first dbms topic fully collapsed.
func TestScenario_VisibilityResetOnCategorySwitch(t *testing.T) {
	cat, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default() error = %v", err)
	}
	m, err := selection.New(cat)
	if err != nil {
		t.Fatalf("selection.New() error = %v", err)
	}
	show := func(r *render.Renderer) {
		st := m.State()
		r.Show(render.TopicRef{CategoryKey: st.CategoryKey, TopicID: st.TopicID}, m.ActiveTopic())
	}

	r := render.New()
	show(r)
	if n := len(m.ActiveTopic().Questions); n != 10 {
		t.Fatalf("encapsulation has %d questions, want 10", n)
	}
	_ = r.Toggle(0)
	_ = r.Toggle(3)
	if got := r.ExpandedIndices(); !slices.Equal(got, []int{0, 3}) {
		t.Fatalf("ExpandedIndices() = %v, want [0 3]", got)
	}

	if err := m.SelectCategory("dbms"); err != nil {
		t.Fatalf("SelectCategory(dbms) error = %v", err)
	}
	show(r)

	page := r.Page()
	if page.Title != m.ActiveTopic().Title {
		t.Fatalf("Page().Title = %q, want %q", page.Title, m.ActiveTopic().Title)
	}
	if page.Questions == nil {
		t.Fatal("acid-properties page has no questions")
	}
	for _, q := range page.Questions.Items {
		if q.Expanded {
			t.Errorf("%s expanded after category switch", q.Label)
		}
	}
}

func TestPage_ConditionalSections(t *testing.T) {
	bare := content.Topic{ID: "bare", Title: "Bare", Explanation: "only text", KeyPoints: []string{}}
	p := render.BuildPage(bare, nil)

	if p.Title != "Bare" || p.Explanation != "only text" {
		t.Errorf("Page() = %+v", p)
	}
	if p.KeyPoints != nil || p.CodeExamples != nil || p.Questions != nil {
		t.Errorf("bare topic rendered optional sections: %+v", p)
	}

	text := render.Text(p, 80)
	for _, heading := range []string{render.HeadingKeyPoints, render.HeadingCodeExamples, "Interview Questions"} {
		if strings.Contains(text, heading) {
			t.Errorf("Text() contains %q for a bare topic:\n%s", heading, text)
		}
	}
}

func TestPage_QuestionHeadingCount(t *testing.T) {
	p := render.BuildPage(topicWithQuestions(7), nil)
	if p.Questions == nil {
		t.Fatal("Questions = nil")
	}
	if p.Questions.Heading != "Interview Questions (7)" {
		t.Errorf("Heading = %q", p.Questions.Heading)
	}
	for i, q := range p.Questions.Items {
		if q.Number != i+1 || q.Expanded {
			t.Errorf("item %d = %+v", i, q)
		}
	}
	if p.Questions.Items[6].Label != "Q7" {
		t.Errorf("last label = %q, want Q7", p.Questions.Items[6].Label)
	}
}

func TestText_CodeVerbatim(t *testing.T) {
	code := "func main() {\n\tx := \"<b>&amp;</b>\"   \n\n\tfmt.Println(x) // a very long line that is much wider than the wrap width and must stay intact\n}"
	topic := content.Topic{
		ID: "c", Title: "Code", Explanation: "e",
		CodeExamples: []content.CodeExample{{Title: "Example", Language: "go", Code: code}},
	}
	p := render.BuildPage(topic, nil)

	if len(p.CodeExamples) != 1 {
		t.Fatalf("len(CodeExamples) = %d, want 1", len(p.CodeExamples))
	}
	if p.CodeExamples[0].Code != code {
		t.Errorf("Code = %q, want %q", p.CodeExamples[0].Code, code)
	}

	text := render.Text(p, 20)
	if strings.Count(text, code) != 1 {
		t.Errorf("Text() does not reproduce the code exactly once:\n%s", text)
	}
	if !strings.Contains(text, "Example [go]\n"+code+"\n") {
		t.Errorf("code block not emitted under its title:\n%s", text)
	}
}

func TestText_Questions(t *testing.T) {
	topic := content.Topic{
		ID: "q", Title: "Q", Explanation: "e",
		KeyPoints: []string{"first point"},
		Questions: []content.Question{
			{Prompt: "What is it?", Answer: "A thing."},
			{Prompt: "Why?", Answer: "Because."},
		},
	}
	r := render.New()
	r.Show(render.TopicRef{CategoryKey: "c", TopicID: "q"}, topic)
	_ = r.Toggle(1)

	text := render.Text(r.Page(), 0)
	wants := []string{
		"Key Points:\n  - first point\n",
		"Interview Questions (2)\n",
		"+ Q1: What is it?\n",
		"- Q2: Why?\n    Answer: Because.\n",
	}
	for _, want := range wants {
		if !strings.Contains(text, want) {
			t.Errorf("Text() missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "A thing.") {
		t.Errorf("collapsed answer rendered:\n%s", text)
	}
}

func TestText_WrapsProse(t *testing.T) {
	topic := content.Topic{ID: "w", Title: "W", Explanation: "one two three four five six seven eight nine ten"}
	text := render.Text(render.BuildPage(topic, nil), 20)

	for _, line := range strings.Split(text, "\n") {
		if len(line) > 20 {
			t.Errorf("line %q exceeds width 20", line)
		}
	}
	if !strings.Contains(strings.Join(strings.Fields(text), " "), "one two three four five six seven eight nine ten") {
		t.Errorf("wrapping lost words:\n%s", text)
	}
}
