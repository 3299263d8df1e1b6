// Package tui is the terminal client: a category/topic sidebar next to the
// rendered active topic, driven from the keyboard.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/p-n-ai/cs-notes/internal/navigation"
	"github.com/p-n-ai/cs-notes/internal/render"
	"github.com/p-n-ai/cs-notes/internal/session"
)

type focus int

const (
	focusNav focus = iota
	focusContent
)

const (
	sidebarWidth  = 36
	defaultWidth  = 110
	defaultHeight = 32
)

// Model is the bubbletea model of the terminal client.
type Model struct {
	ctx     context.Context
	session *session.Session
	keys    *KeyMap
	styles  *Styles
	cursor  *navigation.Cursor

	focus    focus
	question int
	scroll   int
	width    int
	height   int
	status   string
}

// New creates the client over s.
func New(ctx context.Context, s *session.Session) *Model {
	return &Model{
		ctx:     ctx,
		session: s,
		keys:    DefaultKeyMap(),
		styles:  DefaultStyles(),
		cursor:  navigation.NewCursor(s.Snapshot().Nav),
		width:   defaultWidth,
		height:  defaultHeight,
	}
}

// Run shows the client full screen until the user quits or ctx ends.
func Run(ctx context.Context, s *session.Session) error {
	p := tea.NewProgram(New(ctx, s), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init initialises the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.SwitchFocus):
		if m.focus == focusNav {
			m.focus = focusContent
		} else {
			m.focus = focusNav
		}

	case key.Matches(msg, m.keys.PageUp):
		m.scroll -= m.contentHeight()
		m.clampScroll()

	case key.Matches(msg, m.keys.PageDown):
		m.scroll += m.contentHeight()
		m.clampScroll()

	case key.Matches(msg, m.keys.Up):
		if m.focus == focusNav {
			m.cursor.Up()
		} else if m.question > 0 {
			m.question--
		}

	case key.Matches(msg, m.keys.Down):
		if m.focus == focusNav {
			m.cursor.Down()
		} else if m.question < m.questionCount()-1 {
			m.question++
		}

	case key.Matches(msg, m.keys.Select):
		m.activate()
	}
	return m, nil
}

// activate opens the highlighted sidebar row or toggles the highlighted
// question.
func (m *Model) activate() {
	if m.focus == focusContent {
		if m.questionCount() > 0 {
			m.dispatch(session.ToggleQuestion{Index: m.question})
		}
		return
	}

	entry, ok := m.cursor.Current()
	if !ok {
		return
	}
	before := m.session.Snapshot().State
	if !m.dispatch(entry.Intent()) {
		return
	}
	snap := m.session.Snapshot()
	m.cursor.Reset(snap.Nav)
	if snap.State != before {
		m.question = 0
		m.scroll = 0
	}
}

// dispatch sends in to the session. Rejections are logged and shown in the
// status line; state is left as it was.
func (m *Model) dispatch(in navigation.Intent) bool {
	if err := m.session.Dispatch(m.ctx, in); err != nil {
		slog.Warn("intent rejected", "type", in.EventType(), "error", err)
		m.status = err.Error()
		return false
	}
	m.status = ""
	return true
}

func (m *Model) questionCount() int {
	p := m.session.Snapshot().Page
	if p.Questions == nil {
		return 0
	}
	return len(p.Questions.Items)
}

func (m *Model) contentWidth() int {
	w := m.width - sidebarWidth - 6
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) contentHeight() int {
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) contentLines() []string {
	text := render.Text(m.session.Snapshot().Page, m.contentWidth())
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}

func (m *Model) clampScroll() {
	maxScroll := len(m.contentLines()) - m.contentHeight()
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// View renders the client.
func (m *Model) View() string {
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewSidebar(), m.viewContent())
	return body + "\n" + m.viewStatus()
}

func (m *Model) viewSidebar() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("CS Fundamentals"))
	b.WriteString("\n\n")

	labelWidth := sidebarWidth - 6
	for i, e := range m.cursor.Entries() {
		var line string
		style := m.styles.Normal
		if e.Kind == navigation.EntryCategory {
			marker := "▸ "
			if e.Active {
				marker = "▾ "
			}
			line = marker + ansi.Truncate(e.Label, labelWidth, "…")
			style = m.styles.Category
		} else {
			line = "  " + ansi.Truncate(e.Label, labelWidth, "…")
		}
		if e.Active {
			style = m.styles.Active
		}
		if i == m.cursor.Pos() && m.focus == focusNav {
			style = m.styles.Cursor
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return m.styles.Sidebar.Width(sidebarWidth).Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) viewContent() string {
	lines := m.contentLines()
	highlight := -1
	if m.focus == focusContent {
		highlight = questionLine(lines, m.question)
	}

	end := m.scroll + m.contentHeight()
	if end > len(lines) {
		end = len(lines)
	}
	visible := make([]string, 0, end-m.scroll)
	for i := m.scroll; i < end; i++ {
		line := lines[i]
		switch {
		case i == m.scroll && m.scroll == 0:
			line = m.styles.Title.Render(line)
		case i == highlight:
			line = m.styles.Cursor.Render(line)
		}
		visible = append(visible, line)
	}
	return m.styles.Content.Render(strings.Join(visible, "\n"))
}

// questionLine finds the first line of question i in rendered text.
func questionLine(lines []string, i int) int {
	label := fmt.Sprintf("Q%d: ", i+1)
	for n, line := range lines {
		if len(line) > 2 && (line[0] == '+' || line[0] == '-') && strings.HasPrefix(line[2:], label) {
			return n
		}
	}
	return -1
}

func (m *Model) viewStatus() string {
	pane := "topics"
	if m.focus == focusContent {
		pane = "questions"
	}
	parts := []string{pane}
	for _, k := range m.keys.ShortHelp() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	line := m.styles.Status.Render(strings.Join(parts, " • "))
	if m.status != "" {
		line += " " + m.styles.Warning.Render(m.status)
	}
	return line
}
