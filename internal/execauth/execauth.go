// Package execauth is the Execution Authority evaluator
// (cost-correctness domain). It performs only the dominance comparison:
// a satisfiable template at or above the correctness floor beats any
// free-form response, including ties, because rendering costs less than
// generation. Correctness scoring belongs to the grading collaborator.
package execauth

import (
	"fmt"

	"github.com/ppiankov/boundary/internal/model"
	"github.com/ppiankov/boundary/internal/policy"
)

// Grader is the grading collaborator: it scores a rendered response for
// a task category against the task's expected data.
type Grader interface {
	Score(category, response string, expected map[string]string) float64
}

// Task carries the task-side inputs for the dominance comparison.
type Task struct {
	ID             string
	Category       string
	Data           map[string]string
	CorrectnessMin float64 // 0 → use policy default
}

// Evaluate decides a ResponseStrategy proposal for a task.
func Evaluate(p *model.Proposal, cfg *policy.Config, reg *Registry, grader Grader, task Task) model.Decision {
	s := p.Strategy
	if s == nil {
		return model.Deny(model.ReasonEvaluatorFault, "execution.payload", "response strategy proposal without payload")
	}

	floor := task.CorrectnessMin
	if floor == 0 {
		floor = cfg.Thresholds.CorrectnessMin
	}

	switch s.Mode {
	case model.StrategyTemplate:
		t, ok := reg.Get(s.TemplateID)
		if !ok {
			return model.Deny(model.ReasonPolicyViolation, "execution.unknown_template",
				fmt.Sprintf("template %q is not registered", s.TemplateID))
		}
		if missing := t.MissingFields(task.Data); len(missing) > 0 {
			return model.Decision{
				Outcome:       model.RequiresEvidence,
				Reason:        model.ReasonEvidenceMissing,
				RuleID:        "execution.fields",
				MissingFields: missing,
				Detail:        fmt.Sprintf("template %s is missing required fields", t.ID),
			}
		}
		return model.Approve("execution.template",
			fmt.Sprintf("template %s satisfiable from task data", t.ID))

	case model.StrategyFreeForm:
		if best, score := dominantTemplate(reg, grader, task, floor); best != nil {
			d := model.Deny(model.ReasonCheaperAlternative, "execution.dominance",
				fmt.Sprintf("template %s renders at %.2f correctness (floor %.2f) at lower cost", best.ID, score, floor))
			d.RecommendedTemplate = best.ID
			return d
		}
		return model.Approve("execution.freeform",
			"no satisfiable template meets the correctness floor")

	default:
		return model.Deny(model.ReasonNoApplicablePolicy, "execution.mode",
			fmt.Sprintf("unknown strategy mode %q", s.Mode))
	}
}

// dominantTemplate returns the best satisfiable template meeting the
// floor, or nil. Ties between templates resolve to the first declared.
func dominantTemplate(reg *Registry, grader Grader, task Task, floor float64) (*Template, float64) {
	var best *Template
	var bestScore float64

	for _, t := range reg.ForCategory(task.Category) {
		rendered, err := t.Render(task.Data)
		if err != nil {
			continue
		}
		score := grader.Score(task.Category, rendered, task.Data)
		if score < floor {
			continue
		}
		if best == nil || score > bestScore {
			tt := t
			best = &tt
			bestScore = score
		}
	}
	return best, bestScore
}
