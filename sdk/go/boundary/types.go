package boundary

import (
	"fmt"

	"github.com/ppiankov/boundary/internal/model"
)

// Outcome is the boundary's verdict on a proposal.
type Outcome string

const (
	Approved         Outcome = Outcome(model.Approved)
	Denied           Outcome = Outcome(model.Denied)
	RequiresEvidence Outcome = Outcome(model.RequiresEvidence)
)

// ToolCall describes a tool invocation a tool function intends to make.
type ToolCall struct {
	Tool          string
	TaskID        string
	Params        map[string]string
	Justification string
	DocumentID    string // set when the call was motivated by document content
}

// Citation is a claimed answer span with its supporting passage. Leave
// both fields empty to represent a refusal.
type Citation struct {
	TaskID     string
	AnswerSpan string
	PassageID  string
}

// Strategy is a proposed response strategy for a workflow task.
type Strategy struct {
	TaskID     string
	TemplateID string            // set for template mode
	Fields     map[string]string // template field values
	Text       string            // set for free-form mode
}

// EnvAction is a proposed action in a simulation environment. Effects
// carry the environment-declared descriptors of what the action does.
type EnvAction struct {
	EnvironmentID string
	Episode       int
	Verb          string
	Object        string
	Effects       map[string]string
}

// Result is one boundary decision.
type Result struct {
	ProposalID          string
	Domain              string
	Outcome             Outcome
	Reason              string
	Detail              string
	RuleID              string
	MissingFields       []string
	RecommendedTemplate string
	PolicyHash          string
}

// Allowed returns true if the decision permits the action.
func (r Result) Allowed() bool {
	return r.Outcome == Approved
}

// BlockedError is returned when the boundary does not approve an action.
type BlockedError struct {
	Tool   string
	Result Result
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("boundary blocked %s (%s): %s", e.Tool, e.Result.Reason, e.Result.Detail)
}

// Constraint is one learned deny-rule from constraint memory.
type Constraint struct {
	ID            string
	EnvironmentID string
	Pattern       string
	Episode       int
}

func toParams(m map[string]string) []model.Param {
	if len(m) == 0 {
		return nil
	}
	out := make([]model.Param, 0, len(m))
	for k, v := range m {
		out = append(out, model.Param{Key: k, Value: v})
	}
	return out
}

func toResult(rec model.DecisionRecord) Result {
	return Result{
		ProposalID:          rec.ProposalID,
		Domain:              string(rec.Domain),
		Outcome:             Outcome(rec.Decision.Outcome),
		Reason:              string(rec.Decision.Reason),
		Detail:              rec.Decision.Detail,
		RuleID:              rec.Decision.RuleID,
		MissingFields:       rec.Decision.MissingFields,
		RecommendedTemplate: rec.Decision.RecommendedTemplate,
		PolicyHash:          rec.PolicyHash,
	}
}
