package content_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/p-n-ai/cs-notes/internal/content"
)

func TestDefault_LoadsShippedCatalog(t *testing.T) {
	cat, err := content.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	keys := cat.Keys()
	want := []string{"oop", "os", "dbms"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}

	oop, _ := cat.Category("oop")
	if oop.Name != "Object-Oriented Programming" {
		t.Errorf("oop.Name = %q", oop.Name)
	}
	if oop.Topics[0].ID != "encapsulation" {
		t.Errorf("first oop topic = %q, want encapsulation", oop.Topics[0].ID)
	}
	if n := len(oop.Topics[0].Questions); n != 10 {
		t.Errorf("encapsulation has %d questions, want 10", n)
	}
	if oop.IndexOf("acid-properties") != -1 {
		t.Error("acid-properties should belong to dbms only")
	}

	osCat, _ := cat.Category("os")
	if osCat.Topics[0].ID != "process-management" || osCat.Topics[0].Title != "Process Management" {
		t.Errorf("first os topic = %q/%q", osCat.Topics[0].ID, osCat.Topics[0].Title)
	}

	if _, err := cat.Lookup("dbms", "acid-properties"); err != nil {
		t.Errorf("Lookup(dbms, acid-properties) error = %v", err)
	}
}

func TestDefault_MergesSourcesInManifestOrder(t *testing.T) {
	cat, err := content.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	oop, _ := cat.Category("oop")
	// core topics come before the advanced set
	if oop.IndexOf("abstraction") > oop.IndexOf("abstract-vs-interface") {
		t.Error("core topics should precede advanced topics")
	}

	dbms, _ := cat.Category("dbms")
	if dbms.Topics[0].ID != "acid-properties" {
		t.Errorf("first dbms topic = %q, want acid-properties", dbms.Topics[0].ID)
	}
	if dbms.Topics[len(dbms.Topics)-1].ID != "nosql-databases" {
		t.Errorf("last dbms topic = %q, want nosql-databases", dbms.Topics[len(dbms.Topics)-1].ID)
	}
}

func TestDefault_AuthoringContract(t *testing.T) {
	cat, err := content.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	for _, c := range cat.Categories() {
		if len(c.Topics) == 0 {
			t.Errorf("category %q has no topics", c.Key)
		}
		seen := map[string]bool{}
		for _, topic := range c.Topics {
			if seen[topic.ID] {
				t.Errorf("category %q: duplicate topic id %q", c.Key, topic.ID)
			}
			seen[topic.ID] = true
			if topic.Title == "" || topic.Explanation == "" {
				t.Errorf("category %q topic %q: missing title or explanation", c.Key, topic.ID)
			}
		}
	}
}

func TestLoadDir_OptionalSections(t *testing.T) {
	dir := setupTestContent(t)

	cat, err := content.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	bare, err := cat.Lookup("alpha", "bare")
	if err != nil {
		t.Fatalf("Lookup(alpha, bare) error = %v", err)
	}
	if bare.KeyPoints != nil || bare.CodeExamples != nil || bare.Questions != nil {
		t.Errorf("bare topic should have no optional sections, got %+v", bare)
	}

	full, _ := cat.Lookup("alpha", "full")
	if len(full.KeyPoints) != 2 || len(full.CodeExamples) != 1 || len(full.Questions) != 2 {
		t.Errorf("full topic sections = %d/%d/%d, want 2/1/2",
			len(full.KeyPoints), len(full.CodeExamples), len(full.Questions))
	}
	if full.CodeExamples[0].Language != content.DefaultLanguage {
		t.Errorf("Language = %q, want default %q", full.CodeExamples[0].Language, content.DefaultLanguage)
	}
}

func TestLoadDir_ConcatenatesSources(t *testing.T) {
	dir := setupTestContent(t)

	cat, err := content.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	alpha, _ := cat.Category("alpha")
	var ids []string
	for _, topic := range alpha.Topics {
		ids = append(ids, topic.ID)
	}
	if got := strings.Join(ids, ","); got != "full,bare,shared" {
		t.Errorf("alpha topics = %s, want full,bare,shared", got)
	}
}

func TestLoadDir_SameIDAcrossCategories(t *testing.T) {
	dir := setupTestContent(t)

	cat, err := content.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	a, errA := cat.Lookup("alpha", "shared")
	b, errB := cat.Lookup("beta", "shared")
	if errA != nil || errB != nil {
		t.Fatalf("Lookup errors = %v, %v", errA, errB)
	}
	if a.Title == b.Title {
		t.Error("shared id should resolve to distinct topics per category")
	}
}

func TestLoadDir_CodeKeptVerbatim(t *testing.T) {
	dir := setupTestContent(t)

	cat, err := content.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	full, _ := cat.Lookup("alpha", "full")
	want := "x := 1  \n\tif x > 0 {\n\t\tcafe\u0301()\n\t}"
	if got := full.CodeExamples[0].Code; got != want {
		t.Errorf("Code = %q, want %q", got, want)
	}
}

func TestLoadDir_NormalizesText(t *testing.T) {
	dir := setupTestContent(t)

	cat, err := content.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	full, _ := cat.Lookup("alpha", "full")
	if full.Title != "Caf\u00e9 topic" {
		t.Errorf("Title = %q, want NFC-composed form", full.Title)
	}
}

func TestLoadDir_SchemaViolation(t *testing.T) {
	dir := setupTestContent(t)
	writeFile(t, dir, "beta/topics.yaml", `
topics:
  - id: shared
    title: "Beta shared"
`)

	_, err := content.LoadDir(dir)
	var verr *content.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("LoadDir() error = %v, want *ValidationError", err)
	}
	if !strings.Contains(verr.Error(), "beta/topics.yaml") {
		t.Errorf("error %q should name the offending file", verr.Error())
	}
}

func TestLoadDir_DuplicateTopicID(t *testing.T) {
	dir := setupTestContent(t)
	writeFile(t, dir, "beta/topics.yaml", `
topics:
  - id: shared
    title: "One"
    explanation: "first"
  - id: shared
    title: "Two"
    explanation: "second"
`)

	_, err := content.LoadDir(dir)
	var verr *content.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("LoadDir() error = %v, want *ValidationError", err)
	}
	if !strings.Contains(verr.Error(), `duplicate topic id "shared"`) {
		t.Errorf("error = %q, want duplicate id problem", verr.Error())
	}
}

func TestLoadDir_EmptyCategory(t *testing.T) {
	dir := setupTestContent(t)
	writeFile(t, dir, "beta/topics.yaml", "topics: []\n")

	_, err := content.LoadDir(dir)
	var verr *content.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("LoadDir() error = %v, want *ValidationError", err)
	}
	if !strings.Contains(verr.Error(), `category "beta" has no topics`) {
		t.Errorf("error = %q, want empty category problem", verr.Error())
	}
}

func TestLoadDir_MissingSource(t *testing.T) {
	dir := setupTestContent(t)
	if err := os.Remove(filepath.Join(dir, "beta", "topics.yaml")); err != nil {
		t.Fatal(err)
	}

	_, err := content.LoadDir(dir)
	if err == nil {
		t.Fatal("LoadDir() should fail when a source is missing")
	}
	var verr *content.ValidationError
	if errors.As(err, &verr) {
		t.Error("missing file is an I/O error, not a validation error")
	}
}

func TestLoadDir_NotADirectory(t *testing.T) {
	_, err := content.LoadDir(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("LoadDir() should fail for a missing directory")
	}
}

func TestNewCatalog_Validation(t *testing.T) {
	tests := []struct {
		name string
		cats []content.Category
		want string
	}{
		{"no categories", nil, "catalog has no categories"},
		{"empty topics", []content.Category{{Key: "a", Name: "A"}}, `category "a" has no topics`},
		{"duplicate key", []content.Category{
			{Key: "a", Name: "A", Topics: []content.Topic{{ID: "t", Title: "T", Explanation: "E"}}},
			{Key: "a", Name: "A2", Topics: []content.Topic{{ID: "t", Title: "T", Explanation: "E"}}},
		}, `duplicate category key "a"`},
		{"empty code", []content.Category{
			{Key: "a", Name: "A", Topics: []content.Topic{{
				ID: "t", Title: "T", Explanation: "E",
				CodeExamples: []content.CodeExample{{Title: "x"}},
			}}},
		}, "has no code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := content.NewCatalog(tt.cats)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("NewCatalog() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestCatalog_Lookup_NotFound(t *testing.T) {
	cat, err := content.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	if _, err := cat.Lookup("nope", "encapsulation"); !errors.Is(err, content.ErrNotFound) {
		t.Errorf("Lookup(nope) error = %v, want ErrNotFound", err)
	}
	if _, err := cat.Lookup("os", "encapsulation"); !errors.Is(err, content.ErrNotFound) {
		t.Errorf("Lookup(os, encapsulation) error = %v, want ErrNotFound", err)
	}
}

func TestCatalog_Digest(t *testing.T) {
	dir := setupTestContent(t)

	a, err := content.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	b, _ := content.LoadDir(dir)
	if a.Digest() != b.Digest() {
		t.Error("digest should be stable for identical content")
	}
	if len(a.Digest()) != 64 {
		t.Errorf("len(Digest()) = %d, want 64", len(a.Digest()))
	}

	writeFile(t, dir, "beta/topics.yaml", `
topics:
  - id: shared
    title: "Beta shared, edited"
    explanation: "changed"
`)
	c, err := content.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if c.Digest() == a.Digest() {
		t.Error("digest should change when content changes")
	}
}

func TestCatalog_Stats(t *testing.T) {
	dir := setupTestContent(t)

	cat, err := content.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	st := cat.Stats()
	if st.Categories != 2 || st.Topics != 4 || st.Questions != 2 || st.CodeExamples != 1 {
		t.Errorf("Stats() = %+v, want 2 categories, 4 topics, 2 questions, 1 code example", st)
	}
}

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func setupTestContent(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, dir, "catalog.yaml", `
categories:
  - key: alpha
    name: Alpha
    sources:
      - alpha/first.yaml
      - alpha/second.yaml
  - key: beta
    name: Beta
    sources:
      - beta/topics.yaml
`)

	writeFile(t, dir, "alpha/first.yaml", `
topics:
  - id: full
    title: "Cafe`+"\u0301"+` topic"
    explanation: "Has every section."
    key_points:
      - one
      - two
    code_examples:
      - title: Sample
        code: "x := 1  \n\tif x > 0 {\n\t\tcafe`+"\u0301"+`()\n\t}"
    questions:
      - prompt: "Q one?"
        answer: "A one."
      - prompt: "Q two?"
        answer: "A two."
`)

	writeFile(t, dir, "alpha/second.yaml", `
topics:
  - id: bare
    title: Bare
    explanation: Only the required fields.
  - id: shared
    title: Alpha shared
    explanation: Same id as a beta topic.
`)

	writeFile(t, dir, "beta/topics.yaml", `
topics:
  - id: shared
    title: Beta shared
    explanation: Same id as an alpha topic.
`)

	return dir
}
