// Package render turns a resolved topic into a page view-model and owns the
// expand/collapse state of the topic's questions.
package render

import (
	"errors"
	"fmt"
	"slices"

	"github.com/p-n-ai/cs-notes/internal/content"
)

// ErrQuestionIndex is returned when a question index is outside the
// displayed topic's question list.
var ErrQuestionIndex = errors.New("question index out of range")

// TopicRef identifies a displayed topic. Topic ids are only unique within a
// category, so both parts are needed.
type TopicRef struct {
	CategoryKey string
	TopicID     string
}

// Renderer displays one topic at a time. The set of expanded questions
// belongs to the displayed topic and is replaced whenever the topic changes.
type Renderer struct {
	ref      TopicRef
	topic    content.Topic
	shown    bool
	expanded map[int]struct{}
}

// New returns a renderer with nothing displayed.
func New() *Renderer {
	return &Renderer{expanded: map[int]struct{}{}}
}

// Show displays topic under ref. If ref differs from the displayed one the
// visibility set starts over empty. It reports whether the set was reset.
func (r *Renderer) Show(ref TopicRef, topic content.Topic) bool {
	if r.shown && r.ref == ref {
		r.topic = topic
		return false
	}
	r.ref = ref
	r.topic = topic
	r.shown = true
	r.expanded = map[int]struct{}{}
	return true
}

// Ref returns the identity of the displayed topic.
func (r *Renderer) Ref() TopicRef {
	return r.ref
}

// Toggle flips the visibility of question i and leaves every other
// question alone.
func (r *Renderer) Toggle(i int) error {
	if i < 0 || i >= len(r.topic.Questions) {
		return fmt.Errorf("toggle question %d of %d in %q: %w", i, len(r.topic.Questions), r.ref.TopicID, ErrQuestionIndex)
	}
	if _, ok := r.expanded[i]; ok {
		delete(r.expanded, i)
	} else {
		r.expanded[i] = struct{}{}
	}
	return nil
}

// Expanded reports whether question i shows its answer.
func (r *Renderer) Expanded(i int) bool {
	_, ok := r.expanded[i]
	return ok
}

// ExpandedIndices lists the expanded questions in ascending order.
func (r *Renderer) ExpandedIndices() []int {
	out := make([]int, 0, len(r.expanded))
	for i := range r.expanded {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// CollapseAll hides every answer.
func (r *Renderer) CollapseAll() {
	r.expanded = map[int]struct{}{}
}

// Page builds the view-model for the displayed topic.
func (r *Renderer) Page() Page {
	return BuildPage(r.topic, r.Expanded)
}
