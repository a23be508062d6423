// Package toolauth is the Tool Authority evaluator (security domain).
package toolauth

import (
	"fmt"

	"github.com/ppiankov/boundary/internal/inject"
	"github.com/ppiankov/boundary/internal/model"
	"github.com/ppiankov/boundary/internal/policy"
)

// Evaluate decides a ToolCall proposal.
//
// Evaluation order (must not be changed):
//  1. Provenance: document-derived proposals are denied
//  2. Injection heuristics on the justification text
//  3. Explicit policy rules, first match wins
//  4. Scope membership: the tool must be declared for the task
//
// Content-derived intent is screened before any rule runs: no allow
// rule can widen authority for a flagged proposal, and injection denies
// even an in-scope tool.
func Evaluate(p *model.Proposal, cfg *policy.Config) model.Decision {
	if p.Context.Provenance.DocumentDerived {
		return model.Deny(model.ReasonPolicyViolation, "scope.provenance",
			fmt.Sprintf("call derived from untrusted document %q", p.Context.Provenance.DocumentID))
	}

	if hit, reason := inject.Detect(p.Context.Justification); hit {
		return model.Deny(model.ReasonPolicyViolation, "scope.injection", reason)
	}

	if rule := cfg.MatchRule(model.DomainTool, p.Tool, p.Params); rule != nil {
		outcome := policy.ParseEffect(rule.Effect)
		if outcome == model.Approved {
			return model.Approve(policy.RuleID(rule), rule.Reason)
		}
		return model.Decision{
			Outcome: outcome,
			Reason:  model.ReasonPolicyViolation,
			RuleID:  policy.RuleID(rule),
			Detail:  rule.Reason,
		}
	}

	scope := cfg.ScopeFor(p.Context.TaskID)
	if !scope[p.Tool] {
		return model.Deny(model.ReasonPolicyViolation, "scope.membership",
			fmt.Sprintf("tool %q is not in the authorized scope for task %q", p.Tool, p.Context.TaskID))
	}

	return model.Approve("scope.membership", "tool within authorized capability scope")
}
