package model

// Kind is the closed set of action kinds a proposal may carry.
// Evaluator dispatch is exhaustive over this set; an unknown kind is
// never silently approved.
type Kind string

const (
	KindToolCall          Kind = "tool_call"
	KindCitation          Kind = "citation"
	KindResponseStrategy  Kind = "response_strategy"
	KindEnvironmentAction Kind = "environment_action"
)

// Domain identifies the authority failure mode an evaluator covers.
type Domain string

const (
	DomainTool      Domain = "tool"
	DomainEpistemic Domain = "epistemic"
	DomainExecution Domain = "execution"
	DomainTemporal  Domain = "temporal"
)

// DomainForKind maps a proposal kind to its evaluator domain.
// Returns false for kinds outside the closed set.
func DomainForKind(k Kind) (Domain, bool) {
	switch k {
	case KindToolCall:
		return DomainTool, true
	case KindCitation:
		return DomainEpistemic, true
	case KindResponseStrategy:
		return DomainExecution, true
	case KindEnvironmentAction:
		return DomainTemporal, true
	default:
		return "", false
	}
}

// Param is one field of a proposal's ordered parameter list.
type Param struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// ParamValue returns the first value for key, or "" if absent.
func ParamValue(params []Param, key string) string {
	for _, p := range params {
		if p.Key == key {
			return p.Value
		}
	}
	return ""
}

// CitationClaim is an answer span plus the passage said to support it.
// An empty PassageID marks the canonical refusal outcome.
type CitationClaim struct {
	AnswerSpan string `json:"answer_span" yaml:"answer_span"`
	PassageID  string `json:"passage_id,omitempty" yaml:"passage_id,omitempty"`
}

// IsRefusal reports whether the claim declines to answer rather than cite.
func (c CitationClaim) IsRefusal() bool {
	return c.PassageID == "" && c.AnswerSpan == ""
}

// StrategyMode selects between a template rendering and free-form text.
type StrategyMode string

const (
	StrategyTemplate StrategyMode = "template"
	StrategyFreeForm StrategyMode = "freeform"
)

// Strategy is a ResponseStrategy payload.
type Strategy struct {
	Mode       StrategyMode `json:"mode" yaml:"mode"`
	TemplateID string       `json:"template_id,omitempty" yaml:"template_id,omitempty"`
	Fields     []Param      `json:"fields,omitempty" yaml:"fields,omitempty"`
	Text       string       `json:"text,omitempty" yaml:"text,omitempty"`
}

// EnvAction is an EnvironmentAction payload. Effects carry the
// observation-derived descriptors of what the action does (cell type at
// the destination, patient condition, market regime) so temporal matching
// works on causal identity, never on surface coordinates.
type EnvAction struct {
	Verb    string  `json:"verb" yaml:"verb"`
	Object  string  `json:"object" yaml:"object"`
	Effects []Param `json:"effects,omitempty" yaml:"effects,omitempty"`
}

// Provenance records where the content that motivated a proposal came from.
type Provenance struct {
	Source          string `json:"source,omitempty" yaml:"source,omitempty"`
	DocumentID      string `json:"document_id,omitempty" yaml:"document_id,omitempty"`
	DocumentDerived bool   `json:"document_derived,omitempty" yaml:"document_derived,omitempty"`
}

// RequestingContext identifies the task, episode and environment a
// proposal belongs to. Enforcement-layer context only, never shown to
// the proposing model.
type RequestingContext struct {
	TaskID        string     `json:"task_id" yaml:"task_id"`
	Episode       int        `json:"episode" yaml:"episode"`
	EnvironmentID string     `json:"environment_id,omitempty" yaml:"environment_id,omitempty"`
	Provenance    Provenance `json:"provenance,omitempty" yaml:"provenance,omitempty"`
	Justification string     `json:"justification,omitempty" yaml:"justification,omitempty"`
}

// Proposal is one requested action plus its justification context.
// Immutable once created; exactly one payload field matches Kind.
type Proposal struct {
	ID        string            `json:"id" yaml:"id"`
	Kind      Kind              `json:"kind" yaml:"kind"`
	Tool      string            `json:"tool,omitempty" yaml:"tool,omitempty"`
	Citation  *CitationClaim    `json:"citation,omitempty" yaml:"citation,omitempty"`
	Strategy  *Strategy         `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	EnvAction *EnvAction        `json:"env_action,omitempty" yaml:"env_action,omitempty"`
	Params    []Param           `json:"params,omitempty" yaml:"params,omitempty"`
	Context   RequestingContext `json:"context" yaml:"context"`
}

// ParamValue returns the proposal parameter for key, or "".
func (p *Proposal) ParamValue(key string) string {
	return ParamValue(p.Params, key)
}
