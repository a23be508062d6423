package policy

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/boundary/internal/model"
)

// Effect is a rule outcome as written in policy YAML.
type Effect string

const (
	EffectAllow           Effect = "allow"
	EffectDeny            Effect = "deny"
	EffectRequireEvidence Effect = "require_evidence"
)

// Rule is a domain-scoped structural predicate with an effect.
// Rules are evaluated in order; first match wins.
type Rule struct {
	Domain      string `yaml:"domain"`
	ToolPattern string `yaml:"tool_pattern,omitempty"`
	ParamKey    string `yaml:"param_key,omitempty"`
	ParamValue  string `yaml:"param_value,omitempty"`
	Effect      string `yaml:"effect"`
	Reason      string `yaml:"reason,omitempty"`
}

// ToolScope declares the tool identifiers authorized for one task.
type ToolScope struct {
	Task  string   `yaml:"task"`
	Tools []string `yaml:"tools"`
}

// Thresholds holds the per-domain numeric boundaries.
type Thresholds struct {
	// EpistemicOverlap is the minimum token containment ratio between a
	// cited passage and the answer span. Below it, the claim is unsupported.
	EpistemicOverlap float64 `yaml:"epistemic_overlap"`
	// CorrectnessMin is the default minimum correctness a template
	// rendering must reach to dominate a free-form response.
	CorrectnessMin float64 `yaml:"correctness_min"`
}

// Config is the full policy rule store. Loaded once before a run begins
// and read-only for the run's lifetime, so it needs no synchronization.
type Config struct {
	ToolScopes []ToolScope `yaml:"tool_scopes"`
	Thresholds Thresholds  `yaml:"thresholds"`
	Rules      []Rule      `yaml:"rules"`
}

// DefaultConfig returns the built-in policy used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		ToolScopes: []ToolScope{
			{Task: "doc_summary", Tools: []string{"read_file", "send_email"}},
			{Task: "env_navigation", Tools: []string{"get_state", "take_action", "get_available_actions"}},
		},
		Thresholds: Thresholds{
			EpistemicOverlap: 0.6,
			CorrectnessMin:   0.8,
		},
		Rules: []Rule{
			{
				Domain:      "tool",
				ToolPattern: "fetch_internal_*",
				Effect:      "deny",
				Reason:      "internal data stores are outside every task scope",
			},
		},
	}
}

// ScopeFor returns the authorized tool set for a task. Missing task →
// empty scope: absence of a rule is not evidence of safety.
func (c *Config) ScopeFor(taskID string) map[string]bool {
	scope := make(map[string]bool)
	for _, ts := range c.ToolScopes {
		if strings.EqualFold(ts.Task, taskID) {
			for _, t := range ts.Tools {
				scope[t] = true
			}
			return scope
		}
	}
	return scope
}

// MatchRule returns the first rule for domain matching the tool name and
// parameters, or nil.
func (c *Config) MatchRule(domain model.Domain, tool string, params []model.Param) *Rule {
	for i, r := range c.Rules {
		if !strings.EqualFold(r.Domain, string(domain)) {
			continue
		}
		if r.ToolPattern != "" && !matchPattern(r.ToolPattern, tool) {
			continue
		}
		if r.ParamKey != "" {
			v := model.ParamValue(params, r.ParamKey)
			if !matchPattern(r.ParamValue, v) {
				continue
			}
		}
		return &c.Rules[i]
	}
	return nil
}

// RuleID generates a stable identifier for a rule.
func RuleID(r *Rule) string {
	pattern := strings.Trim(r.ToolPattern, "*")
	pattern = strings.Trim(pattern, "_")
	if pattern == "" {
		pattern = "all"
	}
	return fmt.Sprintf("rule.%s.%s", r.Domain, pattern)
}

// ParseEffect maps a rule effect string to an outcome. Fail-closed:
// unknown effects deny.
func ParseEffect(s string) model.Outcome {
	switch Effect(s) {
	case EffectAllow:
		return model.Approved
	case EffectRequireEvidence:
		return model.RequiresEvidence
	case EffectDeny:
		return model.Denied
	default:
		return model.Denied
	}
}

// LoadConfig loads policy from a YAML file. Empty path or missing file
// returns defaults. Invalid YAML returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg, _, err := LoadConfigWithHash(path)
	return cfg, err
}

// LoadConfigWithHash loads policy and returns the SHA-256 of the raw YAML
// bytes. The hash is stamped into every decision record so an audit
// consumer can tell which policy produced a decision. When defaults are
// used the hash is the SHA-256 of empty input.
func LoadConfigWithHash(path string) (*Config, string, error) {
	if path == "" {
		h := sha256.Sum256(nil)
		return DefaultConfig(), "sha256:" + hex.EncodeToString(h[:]), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			h := sha256.Sum256(nil)
			return DefaultConfig(), "sha256:" + hex.EncodeToString(h[:]), nil
		}
		return nil, "", fmt.Errorf("failed to read policy config: %w", err)
	}

	h := sha256.Sum256(data)
	hash := "sha256:" + hex.EncodeToString(h[:])

	// Start with defaults, YAML overwrites only specified fields.
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse policy config: %w", err)
	}

	return cfg, hash, nil
}

// matchPattern matches glob-ish patterns: *x* contains, x* prefix,
// *x suffix, exact otherwise. Case-insensitive. Empty pattern matches all.
func matchPattern(pattern, s string) bool {
	if pattern == "" || pattern == "*" {
		return true
	}
	lp := strings.ToLower(pattern)
	ls := strings.ToLower(s)

	if strings.HasPrefix(lp, "*") && strings.HasSuffix(lp, "*") {
		return strings.Contains(ls, lp[1:len(lp)-1])
	}
	if strings.HasPrefix(lp, "*") {
		return strings.HasSuffix(ls, lp[1:])
	}
	if strings.HasSuffix(lp, "*") {
		return strings.HasPrefix(ls, lp[:len(lp)-1])
	}
	return ls == lp
}

// DefaultConfigYAML returns a commented YAML string for init-policy.
func DefaultConfigYAML() string {
	return `# boundary policy configuration
# Generated by: boundary init-policy
#
# The rule store is loaded once per run and immutable afterwards.
# Absence of a matching scope or rule always denies.

# Authorized tool identifiers per task. A tool call outside the task's
# scope is denied regardless of how the request is phrased.
tool_scopes:
  - task: doc_summary
    tools: [read_file, send_email]
  - task: env_navigation
    tools: [get_state, take_action, get_available_actions]

# Numeric decision boundaries.
# epistemic_overlap: minimum passage/answer token containment for a
#   citation to count as supported.
# correctness_min: default correctness floor a template rendering must
#   reach before it dominates a free-form response.
thresholds:
  epistemic_overlap: 0.6
  correctness_min: 0.8

# Explicit domain rules evaluated in order. First match wins.
# effect: allow | deny | require_evidence (unknown effects deny)
rules:
  - domain: tool
    tool_pattern: "fetch_internal_*"
    effect: deny
    reason: "internal data stores are outside every task scope"
`
}
