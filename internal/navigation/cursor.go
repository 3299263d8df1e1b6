package navigation

// EntryKind distinguishes category rows from topic rows.
type EntryKind int

const (
	EntryCategory EntryKind = iota
	EntryTopic
)

// Entry is one visible row of a flattened View.
type Entry struct {
	Kind        EntryKind
	CategoryKey string
	TopicID     string
	Label       string
	Active      bool
}

// Intent is the gesture activating this row emits.
func (e Entry) Intent() Intent {
	if e.Kind == EntryCategory {
		return SwitchCategory{Key: e.CategoryKey}
	}
	return SwitchTopic{ID: e.TopicID}
}

// Flatten lists the rows of v top to bottom: each category followed by its
// topics when it is the active one.
func Flatten(v View) []Entry {
	var entries []Entry
	for _, c := range v.Categories {
		entries = append(entries, Entry{
			Kind:        EntryCategory,
			CategoryKey: c.Key,
			Label:       c.Name,
			Active:      c.Active,
		})
		for _, t := range c.Topics {
			entries = append(entries, Entry{
				Kind:        EntryTopic,
				CategoryKey: c.Key,
				TopicID:     t.ID,
				Label:       t.Title,
				Active:      t.Active,
			})
		}
	}
	return entries
}

// Cursor is a keyboard highlight over the flattened rows. Moving it never
// changes the selection; only activating the current row does.
type Cursor struct {
	entries []Entry
	pos     int
}

// NewCursor highlights the active topic row of v.
func NewCursor(v View) *Cursor {
	c := &Cursor{}
	c.Reset(v)
	return c
}

// Reset replaces the rows after a selection change and moves the highlight
// to the active topic.
func (c *Cursor) Reset(v View) {
	c.entries = Flatten(v)
	c.pos = 0
	for i, e := range c.entries {
		if e.Kind == EntryTopic && e.Active {
			c.pos = i
			return
		}
	}
}

// Up moves the highlight one row up.
func (c *Cursor) Up() {
	if c.pos > 0 {
		c.pos--
	}
}

// Down moves the highlight one row down.
func (c *Cursor) Down() {
	if c.pos < len(c.entries)-1 {
		c.pos++
	}
}

// Current returns the highlighted row.
func (c *Cursor) Current() (Entry, bool) {
	if len(c.entries) == 0 {
		return Entry{}, false
	}
	return c.entries[c.pos], true
}

// Pos is the index of the highlighted row.
func (c *Cursor) Pos() int {
	return c.pos
}

// Entries returns the rows.
func (c *Cursor) Entries() []Entry {
	return c.entries
}
