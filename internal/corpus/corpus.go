// Package corpus is the passage store consulted by the epistemic
// evaluator. It is a read-only collaborator: the boundary fetches exact
// passage text and never trusts the proposer's paraphrase of it.
package corpus

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is a corpus document: an identifier plus ordered passages.
type Document struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title,omitempty"`
	Passages []string `yaml:"passages"`
}

// Store holds passages keyed by passage ID.
type Store struct {
	passages map[string]string
	docs     []Document
}

// PassageID builds the canonical passage identifier.
func PassageID(docID string, para int) string {
	return fmt.Sprintf("doc:%s:para:%d", docID, para)
}

// New builds a Store from documents.
func New(docs []Document) *Store {
	s := &Store{passages: make(map[string]string), docs: docs}
	for _, d := range docs {
		for i, text := range d.Passages {
			s.passages[PassageID(d.ID, i)] = text
		}
	}
	return s
}

// Load reads a corpus from a YAML file. Empty path or missing file
// returns the built-in default corpus.
func Load(path string) (*Store, error) {
	if path == "" {
		return NewDefault(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDefault(), nil
		}
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}
	var docs []Document
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}
	return New(docs), nil
}

// Fetch returns the exact text of a passage, or ok=false if the passage
// does not exist.
func (s *Store) Fetch(passageID string) (string, bool) {
	text, ok := s.passages[passageID]
	return text, ok
}

// Len returns the number of passages.
func (s *Store) Len() int { return len(s.passages) }

// Documents returns the loaded documents.
func (s *Store) Documents() []Document { return s.docs }
