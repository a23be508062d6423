// Package temporal is the Temporal Authority evaluator (one-shot
// constraint domain). Each (environment, pattern) pair is a two-state
// machine: Unconstrained until a catastrophic event, Constrained forever
// after. No input, including "forget" text in a proposal's
// justification, transitions a pattern back, because the constraint is
// a property of the environment/action pair, not of model-visible
// context.
package temporal

import (
	"fmt"

	"github.com/ppiankov/boundary/internal/constraint"
	"github.com/ppiankov/boundary/internal/model"
)

// CatastropheReport is the environment collaborator's notice that an
// action caused an irreversible, high-cost failure.
type CatastropheReport struct {
	EventID       string          `json:"event_id"`
	EnvironmentID string          `json:"environment_id"`
	Episode       int             `json:"episode"`
	Action        model.EnvAction `json:"action"`
}

// Evaluate decides an EnvironmentAction proposal against constraint
// memory. Matching is by normalized pattern only; the environment is
// never re-invoked here.
func Evaluate(p *model.Proposal, mem *constraint.Memory) model.Decision {
	a := p.EnvAction
	if a == nil {
		return model.Deny(model.ReasonEvaluatorFault, "temporal.payload", "environment action proposal without payload")
	}

	pattern := constraint.Normalize(p.Context.EnvironmentID, a)
	if entry, ok := mem.Match(pattern); ok {
		return model.Deny(model.ReasonPriorCatastrophe, entry.ID,
			fmt.Sprintf("pattern %q caused a catastrophe in episode %d", entry.Pattern, entry.CreatedAtEpisode))
	}

	return model.Approve("temporal.unconstrained", "no prior catastrophe for this action pattern")
}

// Commit records a catastrophe as a constraint memory entry. Idempotent:
// a second report for the same normalized pattern returns the original
// entry.
func Commit(report CatastropheReport, mem *constraint.Memory) (constraint.Entry, bool) {
	pattern := constraint.Normalize(report.EnvironmentID, &report.Action)
	return mem.Insert(report.EnvironmentID, pattern, report.Episode, report.EventID)
}
