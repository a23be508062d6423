package mockmodel

import (
	"testing"

	"github.com/ppiankov/boundary/internal/envsim"
	"github.com/ppiankov/boundary/internal/model"
)

func TestChooseActionHeadsForGoal(t *testing.T) {
	g := envsim.NewLavaGrid(42)
	obs := g.Reset(0)

	m := New(1)
	a, ok := m.ChooseAction(obs, nil)
	if !ok {
		t.Fatal("expected an action")
	}
	if a.Object != "right" {
		t.Errorf("unblocked grid agent prefers right first, got %q", a.Object)
	}
	if m.Calls != 1 {
		t.Errorf("expected 1 charged call, got %d", m.Calls)
	}
	if m.Tokens == 0 {
		t.Error("observation text must be charged")
	}
}

func TestChooseActionRespectsBlocked(t *testing.T) {
	g := envsim.NewLavaGrid(42)
	obs := g.Reset(0)

	m := New(1)
	a, ok := m.ChooseAction(obs, func(act model.EnvAction) bool {
		return model.ParamValue(act.Effects, "cell") == "lava" || act.Object == "right"
	})
	if !ok {
		t.Fatal("expected a fallback action")
	}
	if a.Object == "right" || model.ParamValue(a.Effects, "cell") == "lava" {
		t.Errorf("blocked action proposed: %+v", a)
	}
}

func TestChooseActionAllBlocked(t *testing.T) {
	g := envsim.NewLavaGrid(42)
	obs := g.Reset(0)

	m := New(1)
	if _, ok := m.ChooseAction(obs, func(model.EnvAction) bool { return true }); ok {
		t.Error("fully blocked observation must yield no action")
	}
}

func TestHabitualPrescriptionIsTheBadOne(t *testing.T) {
	// The mock's habit reproduces the repeat-catastrophe failure mode:
	// it picks the contraindicated drug for every condition.
	env := envsim.NewMedication(42)
	for episode := 0; episode < 10; episode++ {
		obs := env.Reset(episode)
		m := New(1)
		a, ok := m.ChooseAction(obs, nil)
		if !ok {
			t.Fatal("expected a prescription")
		}
		res := env.Step(a)
		if res.Catastrophe == nil {
			t.Fatalf("episode %d: habitual prescription %s should be catastrophic", episode, a.Object)
		}
	}
}

func TestAnswerQuestionAnswerableCitesPassage(t *testing.T) {
	m := New(1)
	q := Question{
		ID:         "q1",
		Text:       "When does the review cycle run?",
		Answerable: true,
		PassageID:  "doc:d1:para:0",
		Answer:     "The quarterly review cycle runs in March, June, September and December",
	}
	claim := m.AnswerQuestion(q)
	if claim.IsRefusal() {
		t.Fatal("answerable question must be answered")
	}
	if claim.PassageID != q.PassageID || claim.AnswerSpan != q.Answer {
		t.Errorf("unexpected claim: %+v", claim)
	}
}

func TestAnswerQuestionUnanswerableMixesRefusalAndHallucination(t *testing.T) {
	m := New(7)
	q := Question{ID: "q9", Text: "Do quantum computers use qubits?", Answerable: false}

	refusals, hallucinations := 0, 0
	for i := 0; i < 200; i++ {
		claim := m.AnswerQuestion(q)
		if claim.IsRefusal() {
			refusals++
		} else {
			hallucinations++
			if claim.PassageID == "" {
				t.Error("hallucinated claims carry a fabricated citation")
			}
		}
	}
	if refusals == 0 || hallucinations == 0 {
		t.Errorf("expected a mix, got %d refusals / %d hallucinations", refusals, hallucinations)
	}
	if hallucinations < 40 || hallucinations > 120 {
		t.Errorf("hallucination rate out of expected band: %d/200", hallucinations)
	}
}

func TestDeterministicPerSeed(t *testing.T) {
	q := Question{ID: "q9", Text: "unknown", Answerable: false}

	a, b := New(5), New(5)
	for i := 0; i < 50; i++ {
		ca, cb := a.AnswerQuestion(q), b.AnswerQuestion(q)
		if ca.IsRefusal() != cb.IsRefusal() {
			t.Fatal("same seed must produce the same sequence")
		}
	}
}

func TestChooseStrategyModes(t *testing.T) {
	data := map[string]string{"balance": "142.50"}

	m := New(11)
	freeform, template := 0, 0
	for i := 0; i < 200; i++ {
		s := m.ChooseStrategy("billing", data, "billing_inquiry")
		switch s.Mode {
		case model.StrategyFreeForm:
			freeform++
			if s.Text == "" {
				t.Error("free-form strategy needs text")
			}
		case model.StrategyTemplate:
			template++
			if s.TemplateID != "billing_inquiry" {
				t.Errorf("unexpected template: %q", s.TemplateID)
			}
			if model.ParamValue(s.Fields, "balance") != "142.50" {
				t.Error("template strategy must carry the field values")
			}
		default:
			t.Fatalf("unknown mode %q", s.Mode)
		}
	}
	if freeform <= template {
		t.Errorf("model should prefer free-form, got %d free-form / %d template", freeform, template)
	}
	if template == 0 {
		t.Error("template mode should occur sometimes")
	}
}

func TestChooseStrategyNoTemplateAlwaysFreeForm(t *testing.T) {
	m := New(3)
	for i := 0; i < 50; i++ {
		if s := m.ChooseStrategy("complaint", nil, ""); s.Mode != model.StrategyFreeForm {
			t.Fatal("without a known template only free-form is possible")
		}
	}
}

func TestFreeFormChargesTokens(t *testing.T) {
	m := New(3)
	s := m.ChooseStrategy("billing", map[string]string{"balance": "1.00"}, "")
	if s.Mode != model.StrategyFreeForm {
		t.Fatal("expected free-form")
	}
	if m.Tokens == 0 {
		t.Error("free-form generation must be charged")
	}
}
