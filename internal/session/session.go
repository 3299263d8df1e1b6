// Package session is one user's study session: the selection model, the
// navigation list, the displayed topic and its question visibility.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/p-n-ai/cs-notes/internal/analytics"
	"github.com/p-n-ai/cs-notes/internal/content"
	"github.com/p-n-ai/cs-notes/internal/navigation"
	"github.com/p-n-ai/cs-notes/internal/render"
	"github.com/p-n-ai/cs-notes/internal/selection"
)

// ToggleQuestion expands or collapses one question of the displayed topic.
type ToggleQuestion struct {
	Index int
}

func (ToggleQuestion) EventType() string { return analytics.EventQuestionToggled }

// Options configures a Session.
type Options struct {
	StartCategory string
	StartTopic    string
	Events        analytics.EventLogger
	// ID overrides the generated session id.
	ID uuid.UUID
}

// Snapshot is everything a presenter needs to draw the session.
type Snapshot struct {
	State selection.State
	Nav   navigation.View
	Page  render.Page
}

// Session applies intents one at a time.
type Session struct {
	mu       sync.Mutex
	id       uuid.UUID
	catalog  *content.Catalog
	model    *selection.Model
	renderer *render.Renderer
	events   analytics.EventLogger
}

// New starts a session on the configured start position and reports
// session_started.
func New(ctx context.Context, cat *content.Catalog, opts Options) (*Session, error) {
	var selOpts []selection.Option
	if opts.StartCategory != "" {
		selOpts = append(selOpts, selection.WithStart(opts.StartCategory, opts.StartTopic))
	}
	model, err := selection.New(cat, selOpts...)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	id := opts.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	events := opts.Events
	if events == nil {
		events = analytics.NopEventLogger{}
	}

	s := &Session{
		id:       id,
		catalog:  cat,
		model:    model,
		renderer: render.New(),
		events:   events,
	}
	s.show()

	st := model.State()
	slog.Info("session started", "session_id", id, "category", st.CategoryKey, "topic", st.TopicID)
	s.report(ctx, analytics.EventSessionStarted, nil)
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Catalog returns the catalog the session browses.
func (s *Session) Catalog() *content.Catalog {
	return s.catalog
}

// Dispatch applies in. A rejected intent returns an error and leaves the
// session as it was.
func (s *Session) Dispatch(ctx context.Context, in navigation.Intent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var data map[string]any
	switch in := in.(type) {
	case ToggleQuestion:
		if err := s.renderer.Toggle(in.Index); err != nil {
			return err
		}
		data = map[string]any{
			"question": in.Index,
			"expanded": s.renderer.Expanded(in.Index),
		}
	default:
		if err := navigation.Apply(s.model, in); err != nil {
			return err
		}
		s.show()
	}

	s.report(ctx, in.EventType(), data)
	return nil
}

// Snapshot returns the current state, navigation list and page.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.model.State()
	return Snapshot{
		State: st,
		Nav:   navigation.Build(s.catalog, st),
		Page:  s.renderer.Page(),
	}
}

// show displays the active topic. The renderer resets question visibility
// when the topic identity differs from the one on screen.
func (s *Session) show() {
	st := s.model.State()
	s.renderer.Show(render.TopicRef{CategoryKey: st.CategoryKey, TopicID: st.TopicID}, s.model.ActiveTopic())
}

func (s *Session) report(ctx context.Context, eventType string, data map[string]any) {
	st := s.model.State()
	err := s.events.LogEvent(ctx, analytics.Event{
		SessionID:   s.id.String(),
		EventType:   eventType,
		CategoryKey: st.CategoryKey,
		TopicID:     st.TopicID,
		Data:        data,
	})
	if err != nil {
		slog.Warn("analytics event dropped", "session_id", s.id, "type", eventType, "error", err)
	}
}
