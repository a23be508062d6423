// Package scenario runs declarative proposal test cases against the
// boundary. Scenario files pin expected decisions so policy edits that
// change behavior fail visibly before they ship.
package scenario

import "github.com/ppiankov/boundary/internal/model"

// Constraint pre-seeds constraint memory before the cases run, standing
// in for a catastrophe observed in an earlier episode.
type Constraint struct {
	Environment string          `yaml:"environment"`
	Action      model.EnvAction `yaml:"action"`
}

// Case is one proposal with its expected decision.
type Case struct {
	Name     string         `yaml:"name,omitempty"`
	Proposal model.Proposal `yaml:"proposal"`
	Expect   string         `yaml:"expect"`
	Reason   string         `yaml:"reason,omitempty"`
}

// Scenario is a named collection of boundary test cases.
type Scenario struct {
	Name        string       `yaml:"name"`
	Constraints []Constraint `yaml:"constraints,omitempty"`
	Cases       []Case       `yaml:"cases"`
}

// CaseResult is the outcome of evaluating one test case.
type CaseResult struct {
	Index    int    `json:"index"`
	Name     string `json:"name,omitempty"`
	Passed   bool   `json:"passed"`
	Kind     string `json:"kind"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Reason   string `json:"reason,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// RunResult is the outcome of running all cases in one scenario file.
type RunResult struct {
	File   string       `json:"file"`
	Name   string       `json:"name"`
	Total  int          `json:"total"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Cases  []CaseResult `json:"cases"`
}
