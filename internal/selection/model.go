// Package selection owns the active category and active topic and the two
// transitions that change them.
//
// After every transition the active topic id resolves to exactly one topic
// inside the active category. A rejected transition leaves state untouched.
package selection

import (
	"errors"
	"fmt"

	"github.com/p-n-ai/cs-notes/internal/content"
)

var (
	// ErrInvalidCategory is returned when a category key is not in the catalog.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrInvalidTopic is returned when a topic id is not in the active category.
	ErrInvalidTopic = errors.New("invalid topic")
)

// State is a pointer pair into the catalog.
type State struct {
	CategoryKey string `json:"category"`
	TopicID     string `json:"topic"`
}

// Model holds the selection state for one user. It is not safe for
// concurrent use; callers serialise transitions.
type Model struct {
	catalog *content.Catalog
	state   State
}

// Option configures a Model.
type Option func(*options)

type options struct {
	category string
	topic    string
}

// WithStart sets the initial selection. An empty topic id means the
// category's first topic.
func WithStart(categoryKey, topicID string) Option {
	return func(o *options) {
		o.category = categoryKey
		o.topic = topicID
	}
}

// New creates a model positioned on the first topic of the first category,
// or on the position given by WithStart.
func New(cat *content.Catalog, opts ...Option) (*Model, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog is nil")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.category == "" {
		o.category = cat.Keys()[0]
	}

	m := &Model{catalog: cat}
	if err := m.SelectCategory(o.category); err != nil {
		return nil, fmt.Errorf("start position: %w", err)
	}
	if o.topic != "" {
		if err := m.SelectTopic(o.topic); err != nil {
			return nil, fmt.Errorf("start position: %w", err)
		}
	}
	return m, nil
}

// FirstTopicID is the topic a category switch lands on: the first topic in
// the category's declared order.
func FirstTopicID(c content.Category) string {
	return c.Topics[0].ID
}

// SelectCategory makes key the active category and resets the active topic
// to that category's first topic, even when key is already active.
func (m *Model) SelectCategory(key string) error {
	c, ok := m.catalog.Category(key)
	if !ok {
		return fmt.Errorf("select category %q: %w", key, ErrInvalidCategory)
	}
	m.state = State{CategoryKey: c.Key, TopicID: FirstTopicID(c)}
	return nil
}

// SelectTopic makes id the active topic. The id must belong to the active
// category; the category is never switched to find it.
func (m *Model) SelectTopic(id string) error {
	c := m.ActiveCategory()
	if c.IndexOf(id) < 0 {
		return fmt.Errorf("select topic %q in category %q: %w", id, c.Key, ErrInvalidTopic)
	}
	m.state.TopicID = id
	return nil
}

// State returns the current selection.
func (m *Model) State() State {
	return m.state
}

// ActiveCategory returns the active category record.
func (m *Model) ActiveCategory() content.Category {
	c, ok := m.catalog.Category(m.state.CategoryKey)
	if !ok {
		panic(fmt.Sprintf("selection: active category %q missing from catalog", m.state.CategoryKey))
	}
	return c
}

// ActiveTopic resolves the active topic id within the active category.
// A miss means the model's invariant was broken and panics.
func (m *Model) ActiveTopic() content.Topic {
	t, ok := m.ActiveCategory().Lookup(m.state.TopicID)
	if !ok {
		panic(fmt.Sprintf("selection: topic %q missing from category %q", m.state.TopicID, m.state.CategoryKey))
	}
	return t
}

// Catalog returns the catalog the model points into.
func (m *Model) Catalog() *content.Catalog {
	return m.catalog
}
