// Package content loads the study-notes catalog: categories of topics with
// explanations, key points, code examples and interview questions.
//
// The catalog is read once from YAML (embedded by default), merged, validated
// and then treated as immutable for the lifetime of the process.
package content

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sync"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// CatalogFile is the manifest every content tree must contain at its root.
const CatalogFile = "catalog.yaml"

// ErrNotFound is returned when a category or topic does not exist.
var ErrNotFound = errors.New("not found")

//go:embed data
var embedded embed.FS

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Catalog is the immutable, ordered set of categories.
type Catalog struct {
	categories []Category
	index      map[string]int
	digest     string
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		fsys, err := fs.Sub(embedded, "data")
		if err != nil {
			defaultErr = fmt.Errorf("opening embedded content: %w", err)
			return
		}
		defaultCatalog, defaultErr = Load(fsys)
	})
	return defaultCatalog, defaultErr
}

// LoadDir loads a catalog from a content directory on disk.
func LoadDir(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s is not a directory", dir)
	}
	return Load(os.DirFS(dir))
}

// Load reads catalog.yaml and every topic source it lists from fsys.
// Sources of a category are concatenated in manifest order. Every schema
// and authoring problem found is reported together in a *ValidationError.
func Load(fsys fs.FS) (*Catalog, error) {
	v, err := newValidator()
	if err != nil {
		return nil, err
	}

	var m manifest
	if ok, err := decodeFile(fsys, CatalogFile, v.catalog, v, &m); err != nil {
		return nil, err
	} else if !ok {
		return nil, v.err()
	}

	categories := make([]Category, 0, len(m.Categories))
	for _, entry := range m.Categories {
		c := Category{Key: entry.Key, Name: entry.Name}
		for _, src := range entry.Sources {
			var tf topicFile
			ok, err := decodeFile(fsys, path.Clean(src), v.topics, v, &tf)
			if err != nil {
				return nil, err
			}
			if ok {
				c.Topics = append(c.Topics, tf.Topics...)
			}
		}
		categories = append(categories, c)
	}

	if err := v.err(); err != nil {
		return nil, err
	}

	cat, err := NewCatalog(categories)
	if err != nil {
		return nil, err
	}

	st := cat.Stats()
	slog.Info("content loaded",
		"categories", st.Categories,
		"topics", st.Topics,
		"questions", st.Questions,
		"digest", cat.Digest()[:12],
	)
	return cat, nil
}

// NewCatalog normalises and validates categories and builds a Catalog.
// The slice is copied; callers must not mutate topics afterwards.
func NewCatalog(categories []Category) (*Catalog, error) {
	cats := make([]Category, len(categories))
	for i, c := range categories {
		cats[i] = normalizeCategory(c)
	}

	if problems := checkCategories(cats); len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	c := &Catalog{
		categories: cats,
		index:      make(map[string]int, len(cats)),
	}
	for i, cat := range cats {
		c.index[cat.Key] = i
	}

	data, err := json.Marshal(cats)
	if err != nil {
		return nil, fmt.Errorf("encoding catalog for digest: %w", err)
	}
	sum := blake2b.Sum256(data)
	c.digest = fmt.Sprintf("%x", sum)

	return c, nil
}

// Categories returns all categories in display order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Keys returns category keys in display order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.categories))
	for i, cat := range c.categories {
		keys[i] = cat.Key
	}
	return keys
}

// Category returns the category with the given key.
func (c *Catalog) Category(key string) (Category, bool) {
	i, ok := c.index[key]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

// Lookup returns a topic by category key and topic id.
func (c *Catalog) Lookup(categoryKey, topicID string) (Topic, error) {
	cat, ok := c.Category(categoryKey)
	if !ok {
		return Topic{}, fmt.Errorf("category %q: %w", categoryKey, ErrNotFound)
	}
	t, ok := cat.Lookup(topicID)
	if !ok {
		return Topic{}, fmt.Errorf("topic %q in category %q: %w", topicID, categoryKey, ErrNotFound)
	}
	return t, nil
}

// Digest is a hex BLAKE2b-256 of the merged catalog, usable as a content version.
func (c *Catalog) Digest() string {
	return c.digest
}

// Stats counts categories, topics, questions and code examples.
func (c *Catalog) Stats() Stats {
	st := Stats{Categories: len(c.categories)}
	for _, cat := range c.categories {
		st.Topics += len(cat.Topics)
		for _, t := range cat.Topics {
			st.Questions += len(t.Questions)
			st.CodeExamples += len(t.CodeExamples)
		}
	}
	return st
}

// decodeFile reads a YAML document, checks it against schema and decodes it
// into out. It reports false when the document failed schema validation.
func decodeFile(fsys fs.FS, name string, schema schemaChecker, v *validator, out any) (bool, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", name, err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false, fmt.Errorf("parsing %s: %w", name, err)
	}
	if !v.check(name, schema, doc) {
		return false, nil
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decoding %s: %w", name, err)
	}
	return true, nil
}

// normalizeCategory composes human-readable text to NFC. Code is left as authored.
func normalizeCategory(c Category) Category {
	c.Name = norm.NFC.String(c.Name)
	topics := make([]Topic, len(c.Topics))
	for i, t := range c.Topics {
		t.Title = norm.NFC.String(t.Title)
		t.Explanation = norm.NFC.String(t.Explanation)
		if t.KeyPoints != nil {
			points := make([]string, len(t.KeyPoints))
			for j, p := range t.KeyPoints {
				points[j] = norm.NFC.String(p)
			}
			t.KeyPoints = points
		}
		if t.CodeExamples != nil {
			examples := make([]CodeExample, len(t.CodeExamples))
			for j, ex := range t.CodeExamples {
				ex.Title = norm.NFC.String(ex.Title)
				if ex.Language == "" {
					ex.Language = DefaultLanguage
				}
				examples[j] = ex
			}
			t.CodeExamples = examples
		}
		if t.Questions != nil {
			questions := make([]Question, len(t.Questions))
			for j, q := range t.Questions {
				questions[j] = Question{
					Prompt: norm.NFC.String(q.Prompt),
					Answer: norm.NFC.String(q.Answer),
				}
			}
			t.Questions = questions
		}
		topics[i] = t
	}
	c.Topics = topics
	return c
}

// DefaultLanguage is the highlighting hint used when an example omits one.
const DefaultLanguage = "java"
