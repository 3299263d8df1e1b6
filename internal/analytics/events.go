// Package analytics records what users navigate to. Sinks are best effort:
// callers log failures and carry on.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Event types.
const (
	EventSessionStarted   = "session_started"
	EventCategorySelected = "category_selected"
	EventTopicSelected    = "topic_selected"
	EventQuestionToggled  = "question_toggled"
)

const dbTimeout = 5 * time.Second

// KnownEventType reports whether t is one of the recorded event types.
func KnownEventType(t string) bool {
	switch t {
	case EventSessionStarted, EventCategorySelected, EventTopicSelected, EventQuestionToggled:
		return true
	}
	return false
}

// Event is one navigation step of a session.
type Event struct {
	SessionID   string
	EventType   string
	CategoryKey string
	TopicID     string
	Data        map[string]any
	CreatedAt   time.Time
}

func (e Event) validate() error {
	if e.EventType == "" {
		return fmt.Errorf("event_type is required")
	}
	if e.SessionID == "" {
		return fmt.Errorf("session_id is required")
	}
	return nil
}

// EventLogger defines event logging behavior.
type EventLogger interface {
	LogEvent(ctx context.Context, event Event) error
}

// NopEventLogger ignores all events.
type NopEventLogger struct{}

func (NopEventLogger) LogEvent(context.Context, Event) error {
	return nil
}

// MemoryEventLogger keeps events in memory for tests and the terminal client.
type MemoryEventLogger struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryEventLogger() *MemoryEventLogger {
	return &MemoryEventLogger{
		events: []Event{},
	}
}

func (l *MemoryEventLogger) LogEvent(_ context.Context, event Event) error {
	if err := event.validate(); err != nil {
		return err
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	l.mu.Lock()
	l.events = append(l.events, event)
	l.mu.Unlock()

	return nil
}

func (l *MemoryEventLogger) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Event{}, l.events...)
}

// MultiEventLogger fans an event out to every sink. All sinks are tried;
// their errors are joined.
type MultiEventLogger []EventLogger

func (m MultiEventLogger) LogEvent(ctx context.Context, event Event) error {
	var errs []error
	for _, l := range m {
		if err := l.LogEvent(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Combine returns a single logger over the given sinks, skipping nils.
func Combine(loggers ...EventLogger) EventLogger {
	var out MultiEventLogger
	for _, l := range loggers {
		if l != nil {
			out = append(out, l)
		}
	}
	switch len(out) {
	case 0:
		return NopEventLogger{}
	case 1:
		return out[0]
	}
	return out
}

func logged(event Event, sink string) {
	slog.Debug("event logged",
		"sink", sink,
		"type", event.EventType,
		"session_id", event.SessionID,
		"category", event.CategoryKey,
		"topic", event.TopicID,
	)
}
