package content

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/*.json
var schemas embed.FS

// ValidationError lists every authoring problem found in a content tree.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid content: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid content: %d problems: %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

type schemaChecker interface {
	Validate(l gojsonschema.JSONLoader) (*gojsonschema.Result, error)
}

// validator accumulates schema problems across the files of one load.
type validator struct {
	catalog  *gojsonschema.Schema
	topics   *gojsonschema.Schema
	problems []string
}

func newValidator() (*validator, error) {
	catalog, err := compileSchema("schema/catalog.schema.json")
	if err != nil {
		return nil, err
	}
	topics, err := compileSchema("schema/topics.schema.json")
	if err != nil {
		return nil, err
	}
	return &validator{catalog: catalog, topics: topics}, nil
}

func compileSchema(name string) (*gojsonschema.Schema, error) {
	data, err := schemas.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", name, err)
	}
	return s, nil
}

// check validates doc and records any problems under the file name.
func (v *validator) check(file string, schema schemaChecker, doc any) bool {
	res, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		v.problems = append(v.problems, fmt.Sprintf("%s: %v", file, err))
		return false
	}
	if res.Valid() {
		return true
	}
	for _, re := range res.Errors() {
		v.problems = append(v.problems, fmt.Sprintf("%s: %s: %s", file, re.Field(), re.Description()))
	}
	return false
}

func (v *validator) err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: v.problems}
}

// checkCategories enforces the authoring rules a schema cannot express:
// unique category keys, non-empty topic lists and topic ids unique per category.
func checkCategories(cats []Category) []string {
	var problems []string
	if len(cats) == 0 {
		return []string{"catalog has no categories"}
	}

	seenKeys := make(map[string]bool, len(cats))
	for _, c := range cats {
		switch {
		case c.Key == "":
			problems = append(problems, "category with empty key")
		case seenKeys[c.Key]:
			problems = append(problems, fmt.Sprintf("duplicate category key %q", c.Key))
		}
		seenKeys[c.Key] = true

		if c.Name == "" {
			problems = append(problems, fmt.Sprintf("category %q has no name", c.Key))
		}
		if len(c.Topics) == 0 {
			problems = append(problems, fmt.Sprintf("category %q has no topics", c.Key))
		}

		seenIDs := make(map[string]bool, len(c.Topics))
		for i, t := range c.Topics {
			where := fmt.Sprintf("category %q topic %q", c.Key, t.ID)
			if t.ID == "" {
				problems = append(problems, fmt.Sprintf("category %q topic #%d has empty id", c.Key, i+1))
			} else if seenIDs[t.ID] {
				problems = append(problems, fmt.Sprintf("category %q has duplicate topic id %q", c.Key, t.ID))
			}
			seenIDs[t.ID] = true

			if strings.TrimSpace(t.Title) == "" {
				problems = append(problems, where+": empty title")
			}
			if strings.TrimSpace(t.Explanation) == "" {
				problems = append(problems, where+": empty explanation")
			}
			for j, ex := range t.CodeExamples {
				if ex.Code == "" {
					problems = append(problems, fmt.Sprintf("%s: code example #%d has no code", where, j+1))
				}
			}
			for j, q := range t.Questions {
				if strings.TrimSpace(q.Prompt) == "" || strings.TrimSpace(q.Answer) == "" {
					problems = append(problems, fmt.Sprintf("%s: question #%d needs prompt and answer", where, j+1))
				}
			}
		}
	}
	return problems
}
