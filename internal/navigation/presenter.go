// Package navigation builds the category/topic list shown beside a topic
// and turns clicks on it into selection transitions.
package navigation

import (
	"errors"
	"fmt"

	"github.com/p-n-ai/cs-notes/internal/content"
	"github.com/p-n-ai/cs-notes/internal/selection"
)

// Event types reported for navigation intents.
const (
	EventCategorySelected = "category_selected"
	EventTopicSelected    = "topic_selected"
)

// ErrUnknownIntent is returned by Apply for intents it does not handle.
var ErrUnknownIntent = errors.New("unknown intent")

// Intent is a user gesture reported upward by a presenter.
type Intent interface {
	EventType() string
}

// SwitchCategory asks for a category change.
type SwitchCategory struct {
	Key string
}

func (SwitchCategory) EventType() string { return EventCategorySelected }

// SwitchTopic asks for a topic change within the active category.
type SwitchTopic struct {
	ID string
}

func (SwitchTopic) EventType() string { return EventTopicSelected }

// Selector is the part of the selection model the presenter drives.
type Selector interface {
	SelectCategory(key string) error
	SelectTopic(id string) error
}

// Apply forwards a navigation intent to the selector.
func Apply(sel Selector, in Intent) error {
	switch in := in.(type) {
	case SwitchCategory:
		return sel.SelectCategory(in.Key)
	case SwitchTopic:
		return sel.SelectTopic(in.ID)
	default:
		return fmt.Errorf("%T: %w", in, ErrUnknownIntent)
	}
}

// TopicItem is one selectable topic.
type TopicItem struct {
	ID     string
	Title  string
	Active bool
}

// CategoryItem is one selectable category. Only the active category lists
// its topics.
type CategoryItem struct {
	Key    string
	Name   string
	Active bool
	Topics []TopicItem
}

// View is the full navigation list.
type View struct {
	Categories []CategoryItem
}

// Build lists every category in catalog order and expands the active one.
func Build(cat *content.Catalog, st selection.State) View {
	cats := cat.Categories()
	v := View{Categories: make([]CategoryItem, 0, len(cats))}
	for _, c := range cats {
		item := CategoryItem{
			Key:    c.Key,
			Name:   c.Name,
			Active: c.Key == st.CategoryKey,
		}
		if item.Active {
			item.Topics = make([]TopicItem, len(c.Topics))
			for i, t := range c.Topics {
				item.Topics[i] = TopicItem{
					ID:     t.ID,
					Title:  t.Title,
					Active: t.ID == st.TopicID,
				}
			}
		}
		v.Categories = append(v.Categories, item)
	}
	return v
}

// ActiveCategory returns the expanded category item.
func (v View) ActiveCategory() (CategoryItem, bool) {
	for _, c := range v.Categories {
		if c.Active {
			return c, true
		}
	}
	return CategoryItem{}, false
}
