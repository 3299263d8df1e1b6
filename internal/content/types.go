package content

// Category is a named, ordered group of topics (e.g. OOP, OS, DBMS).
type Category struct {
	Key    string  `json:"key"`
	Name   string  `json:"name"`
	Topics []Topic `json:"topics"`
}

// Topic is a single study-note unit loaded from YAML.
type Topic struct {
	ID           string        `yaml:"id" json:"id"`
	Title        string        `yaml:"title" json:"title"`
	Explanation  string        `yaml:"explanation" json:"explanation"`
	KeyPoints    []string      `yaml:"key_points,omitempty" json:"keyPoints,omitempty"`
	CodeExamples []CodeExample `yaml:"code_examples,omitempty" json:"codeExamples,omitempty"`
	Questions    []Question    `yaml:"questions,omitempty" json:"questions,omitempty"`
}

// CodeExample is a titled snippet. Code is kept exactly as authored.
type CodeExample struct {
	Title    string `yaml:"title" json:"title"`
	Language string `yaml:"language" json:"language"`
	Code     string `yaml:"code" json:"code"`
}

// Question is an interview question with its answer.
type Question struct {
	Prompt string `yaml:"prompt" json:"question"`
	Answer string `yaml:"answer" json:"answer"`
}

// Stats summarises the size of a catalog.
type Stats struct {
	Categories   int `json:"categories"`
	Topics       int `json:"topics"`
	Questions    int `json:"questions"`
	CodeExamples int `json:"codeExamples"`
}

// IndexOf returns the position of the topic with the given id, or -1.
func (c Category) IndexOf(id string) int {
	for i, t := range c.Topics {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Lookup returns the topic with the given id.
func (c Category) Lookup(id string) (Topic, bool) {
	i := c.IndexOf(id)
	if i < 0 {
		return Topic{}, false
	}
	return c.Topics[i], true
}

// manifest is the on-disk layout of catalog.yaml.
type manifest struct {
	Categories []manifestEntry `yaml:"categories"`
}

type manifestEntry struct {
	Key     string   `yaml:"key"`
	Name    string   `yaml:"name"`
	Sources []string `yaml:"sources"`
}

// topicFile is the on-disk layout of a topic source file.
type topicFile struct {
	Topics []Topic `yaml:"topics"`
}
