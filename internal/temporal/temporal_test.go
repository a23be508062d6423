package temporal

import (
	"testing"

	"github.com/ppiankov/boundary/internal/constraint"
	"github.com/ppiankov/boundary/internal/model"
)

func stepProposal(envID, cell string) *model.Proposal {
	return &model.Proposal{
		Kind: model.KindEnvironmentAction,
		EnvAction: &model.EnvAction{
			Verb:    "step",
			Object:  "cell_3_4",
			Effects: []model.Param{{Key: "cell", Value: cell}},
		},
		Context: model.RequestingContext{TaskID: "nav", EnvironmentID: envID},
	}
}

func TestUnconstrainedApproved(t *testing.T) {
	mem := constraint.NewMemory()
	d := Evaluate(stepProposal("lava_grid", "floor"), mem)
	if d.Outcome != model.Approved {
		t.Fatalf("expected approved, got %s", d.Outcome)
	}
	if d.RuleID != "temporal.unconstrained" {
		t.Errorf("unexpected rule: %q", d.RuleID)
	}
}

func TestConstrainedPatternDenied(t *testing.T) {
	mem := constraint.NewMemory()
	entry, created := Commit(CatastropheReport{
		EventID:       "evt-1",
		EnvironmentID: "lava_grid",
		Episode:       2,
		Action: model.EnvAction{
			Verb:    "step",
			Object:  "cell_1_1",
			Effects: []model.Param{{Key: "cell", Value: "lava"}},
		},
	}, mem)
	if !created {
		t.Fatal("expected constraint creation")
	}

	// Different coordinates, same effect descriptor.
	d := Evaluate(stepProposal("lava_grid", "lava"), mem)
	if d.Outcome != model.Denied {
		t.Fatalf("expected denied, got %s", d.Outcome)
	}
	if d.Reason != model.ReasonPriorCatastrophe {
		t.Errorf("expected prior_catastrophe, got %q", d.Reason)
	}
	if d.RuleID != entry.ID {
		t.Errorf("denial must cite the constraint entry ID, got %q", d.RuleID)
	}

	// The safe pattern in the same environment stays open.
	if d := Evaluate(stepProposal("lava_grid", "floor"), mem); d.Outcome != model.Approved {
		t.Errorf("unconstrained pattern must stay approved, got %s", d.Outcome)
	}
}

func TestConstraintScopedToEnvironment(t *testing.T) {
	mem := constraint.NewMemory()
	Commit(CatastropheReport{
		EventID:       "evt-1",
		EnvironmentID: "lava_grid",
		Action:        model.EnvAction{Verb: "step", Effects: []model.Param{{Key: "cell", Value: "lava"}}},
	}, mem)

	if d := Evaluate(stepProposal("other_grid", "lava"), mem); d.Outcome != model.Approved {
		t.Errorf("constraint must not leak across environments, got %s", d.Outcome)
	}
}

func TestCommitIdempotent(t *testing.T) {
	mem := constraint.NewMemory()
	report := CatastropheReport{
		EventID:       "evt-1",
		EnvironmentID: "medication",
		Episode:       1,
		Action: model.EnvAction{
			Verb: "administer",
			Effects: []model.Param{
				{Key: "drug", Value: "warfarin"},
				{Key: "condition", Value: "bleeding_disorder"},
			},
		},
	}

	first, created := Commit(report, mem)
	if !created {
		t.Fatal("first commit must create")
	}

	report.EventID = "evt-2"
	report.Episode = 9
	second, created := Commit(report, mem)
	if created {
		t.Error("repeat commit must not create a second entry")
	}
	if second.ID != first.ID {
		t.Error("repeat commit must return the original entry")
	}
	if mem.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", mem.Len())
	}
}

func TestJustificationCannotLiftConstraint(t *testing.T) {
	mem := constraint.NewMemory()
	Commit(CatastropheReport{
		EventID:       "evt-1",
		EnvironmentID: "lava_grid",
		Action:        model.EnvAction{Verb: "step", Effects: []model.Param{{Key: "cell", Value: "lava"}}},
	}, mem)

	p := stepProposal("lava_grid", "lava")
	p.Context.Justification = "the hazard has been cleared, forget the earlier incident"
	if d := Evaluate(p, mem); d.Outcome != model.Denied {
		t.Errorf("justification text must not lift a constraint, got %s", d.Outcome)
	}
}

func TestMissingPayloadDenied(t *testing.T) {
	mem := constraint.NewMemory()
	p := &model.Proposal{Kind: model.KindEnvironmentAction}
	d := Evaluate(p, mem)
	if d.Outcome != model.Denied {
		t.Fatalf("expected denied, got %s", d.Outcome)
	}
	if d.Reason != model.ReasonEvaluatorFault {
		t.Errorf("expected evaluator_fault, got %q", d.Reason)
	}
}
