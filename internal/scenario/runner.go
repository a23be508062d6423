package scenario

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/boundary/internal/boundary"
	"github.com/ppiankov/boundary/internal/constraint"
	"github.com/ppiankov/boundary/internal/policy"
	"github.com/ppiankov/boundary/internal/temporal"
)

// Run evaluates all cases in a scenario against the given policy.
// Cases share one boundary, so earlier temporal cases see constraints
// seeded by the scenario header.
func Run(s *Scenario, cfg *policy.Config) *RunResult {
	mem := constraint.NewMemory()
	for i, c := range s.Constraints {
		temporal.Commit(temporal.CatastropheReport{
			EventID:       fmt.Sprintf("seed-%d", i),
			EnvironmentID: c.Environment,
			Action:        c.Action,
		}, mem)
	}

	b := boundary.New(boundary.Config{Policy: cfg, Memory: mem})

	result := &RunResult{
		Name:  s.Name,
		Total: len(s.Cases),
	}

	for i, c := range s.Cases {
		p := c.Proposal
		rec := b.Evaluate(&p)

		cr := CaseResult{
			Index:    i + 1,
			Name:     c.Name,
			Kind:     string(c.Proposal.Kind),
			Expected: strings.ToLower(c.Expect),
			Actual:   string(rec.Decision.Outcome),
			Reason:   string(rec.Decision.Reason),
			Detail:   rec.Decision.Detail,
		}

		cr.Passed = cr.Actual == cr.Expected
		if cr.Passed && c.Reason != "" {
			cr.Passed = cr.Reason == strings.ToLower(c.Reason)
		}
		if cr.Passed {
			result.Passed++
		} else {
			result.Failed++
		}

		result.Cases = append(result.Cases, cr)
	}

	return result
}

// LoadAndRun loads a scenario YAML file and the policy, then runs.
func LoadAndRun(path, policyPath string) (*RunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	cfg, err := policy.LoadConfig(policyPath)
	if err != nil {
		return nil, fmt.Errorf("load policy: %w", err)
	}

	result := Run(&s, cfg)
	result.File = path

	return result, nil
}
