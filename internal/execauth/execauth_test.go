package execauth

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ppiankov/boundary/internal/model"
	"github.com/ppiankov/boundary/internal/policy"
)

// stubGrader returns a fixed score, optionally overridden per response.
type stubGrader struct {
	score    float64
	byPrefix map[string]float64
}

func (g stubGrader) Score(category, response string, expected map[string]string) float64 {
	for prefix, s := range g.byPrefix {
		if len(response) >= len(prefix) && response[:len(prefix)] == prefix {
			return s
		}
	}
	return g.score
}

var billingData = map[string]string{
	"balance":  "142.50",
	"amount":   "89.99",
	"due_date": "2026-09-15",
}

func strategyProposal(s *model.Strategy) *model.Proposal {
	return &model.Proposal{
		Kind:     model.KindResponseStrategy,
		Strategy: s,
		Context:  model.RequestingContext{TaskID: "task_1"},
	}
}

func billingTask(data map[string]string) Task {
	return Task{ID: "task_1", Category: "billing", Data: data}
}

func TestTemplateSatisfiableApproved(t *testing.T) {
	cfg := policy.DefaultConfig()
	reg := NewRegistry(DefaultTemplates)

	p := strategyProposal(&model.Strategy{Mode: model.StrategyTemplate, TemplateID: "billing_inquiry"})
	d := Evaluate(p, cfg, reg, stubGrader{score: 0.9}, billingTask(billingData))
	if d.Outcome != model.Approved {
		t.Fatalf("expected approved, got %s (%s)", d.Outcome, d.Detail)
	}
	if d.RuleID != "execution.template" {
		t.Errorf("unexpected rule: %q", d.RuleID)
	}
}

func TestUnknownTemplateDenied(t *testing.T) {
	cfg := policy.DefaultConfig()
	reg := NewRegistry(DefaultTemplates)

	p := strategyProposal(&model.Strategy{Mode: model.StrategyTemplate, TemplateID: "no_such_template"})
	d := Evaluate(p, cfg, reg, stubGrader{score: 0.9}, billingTask(billingData))
	if d.Outcome != model.Denied {
		t.Fatalf("expected denied, got %s", d.Outcome)
	}
	if d.RuleID != "execution.unknown_template" {
		t.Errorf("unexpected rule: %q", d.RuleID)
	}
}

func TestTemplateMissingFields(t *testing.T) {
	cfg := policy.DefaultConfig()
	reg := NewRegistry(DefaultTemplates)

	p := strategyProposal(&model.Strategy{Mode: model.StrategyTemplate, TemplateID: "billing_inquiry"})
	d := Evaluate(p, cfg, reg, stubGrader{score: 0.9}, billingTask(map[string]string{"balance": "142.50"}))
	if d.Outcome != model.RequiresEvidence {
		t.Fatalf("expected requires_evidence, got %s", d.Outcome)
	}
	want := []string{"amount", "due_date"}
	if !reflect.DeepEqual(d.MissingFields, want) {
		t.Errorf("missing fields = %v, want %v", d.MissingFields, want)
	}
}

func TestFreeFormDominatedByTemplate(t *testing.T) {
	cfg := policy.DefaultConfig()
	reg := NewRegistry(DefaultTemplates)

	p := strategyProposal(&model.Strategy{Mode: model.StrategyFreeForm, Text: "Let me look into your billing question..."})
	d := Evaluate(p, cfg, reg, stubGrader{score: 0.9}, billingTask(billingData))
	if d.Outcome != model.Denied {
		t.Fatalf("expected denied, got %s (%s)", d.Outcome, d.Detail)
	}
	if d.Reason != model.ReasonCheaperAlternative {
		t.Errorf("expected cheaper_alternative, got %q", d.Reason)
	}
	if d.RecommendedTemplate != "billing_inquiry" {
		t.Errorf("expected billing_inquiry recommendation, got %q", d.RecommendedTemplate)
	}
}

func TestFreeFormDominatedAtFloorExactly(t *testing.T) {
	// A template scoring exactly at the floor still dominates: ties go
	// to the cheaper rendering.
	cfg := policy.DefaultConfig()
	reg := NewRegistry(DefaultTemplates)

	p := strategyProposal(&model.Strategy{Mode: model.StrategyFreeForm, Text: "..."})
	d := Evaluate(p, cfg, reg, stubGrader{score: cfg.Thresholds.CorrectnessMin}, billingTask(billingData))
	if d.Outcome != model.Denied {
		t.Fatalf("template at the floor must dominate, got %s", d.Outcome)
	}
}

func TestFreeFormApprovedWhenFloorUnmet(t *testing.T) {
	cfg := policy.DefaultConfig()
	reg := NewRegistry(DefaultTemplates)

	p := strategyProposal(&model.Strategy{Mode: model.StrategyFreeForm, Text: "..."})
	d := Evaluate(p, cfg, reg, stubGrader{score: 0.5}, billingTask(billingData))
	if d.Outcome != model.Approved {
		t.Fatalf("expected approved, got %s (%s)", d.Outcome, d.Detail)
	}
	if d.RuleID != "execution.freeform" {
		t.Errorf("unexpected rule: %q", d.RuleID)
	}
}

func TestFreeFormApprovedWhenNoTemplateSatisfiable(t *testing.T) {
	// No task data, so every billing template fails to render.
	cfg := policy.DefaultConfig()
	reg := NewRegistry(DefaultTemplates)

	p := strategyProposal(&model.Strategy{Mode: model.StrategyFreeForm, Text: "..."})
	d := Evaluate(p, cfg, reg, stubGrader{score: 0.99}, billingTask(nil))
	if d.Outcome != model.Approved {
		t.Fatalf("expected approved, got %s", d.Outcome)
	}
}

func TestTaskFloorOverridesPolicyDefault(t *testing.T) {
	cfg := policy.DefaultConfig()
	reg := NewRegistry(DefaultTemplates)

	p := strategyProposal(&model.Strategy{Mode: model.StrategyFreeForm, Text: "..."})
	task := billingTask(billingData)
	task.CorrectnessMin = 0.95
	d := Evaluate(p, cfg, reg, stubGrader{score: 0.9}, task)
	if d.Outcome != model.Approved {
		t.Fatalf("template below the task floor must not dominate, got %s", d.Outcome)
	}
}

func TestDominanceTieResolvesToFirstDeclared(t *testing.T) {
	cfg := policy.DefaultConfig()
	reg := NewRegistry([]Template{
		{ID: "first", Category: "billing", Body: "A {balance}", Fields: []string{"balance"}},
		{ID: "second", Category: "billing", Body: "B {balance}", Fields: []string{"balance"}},
	})

	p := strategyProposal(&model.Strategy{Mode: model.StrategyFreeForm, Text: "..."})
	d := Evaluate(p, cfg, reg, stubGrader{score: 0.9}, billingTask(billingData))
	if d.Outcome != model.Denied {
		t.Fatalf("expected denied, got %s", d.Outcome)
	}
	if d.RecommendedTemplate != "first" {
		t.Errorf("tie must resolve to the first declared template, got %q", d.RecommendedTemplate)
	}
}

func TestUnknownModeDenied(t *testing.T) {
	cfg := policy.DefaultConfig()
	reg := NewRegistry(DefaultTemplates)

	p := strategyProposal(&model.Strategy{Mode: "hybrid"})
	d := Evaluate(p, cfg, reg, stubGrader{score: 0.9}, billingTask(billingData))
	if d.Outcome != model.Denied {
		t.Fatalf("expected denied, got %s", d.Outcome)
	}
	if d.Reason != model.ReasonNoApplicablePolicy {
		t.Errorf("expected no_applicable_policy, got %q", d.Reason)
	}
}

func TestMissingStrategyPayloadDenied(t *testing.T) {
	cfg := policy.DefaultConfig()
	reg := NewRegistry(DefaultTemplates)

	p := &model.Proposal{Kind: model.KindResponseStrategy}
	d := Evaluate(p, cfg, reg, stubGrader{score: 0.9}, billingTask(billingData))
	if d.Outcome != model.Denied {
		t.Fatalf("expected denied, got %s", d.Outcome)
	}
	if d.Reason != model.ReasonEvaluatorFault {
		t.Errorf("expected evaluator_fault, got %q", d.Reason)
	}
}

func TestTemplateRender(t *testing.T) {
	tpl := Template{
		ID:     "t",
		Body:   "Balance {balance}, due {due_date}.",
		Fields: []string{"balance", "due_date"},
	}

	out, err := tpl.Render(map[string]string{"balance": "10.00", "due_date": "Friday"})
	if err != nil {
		t.Fatal(err)
	}
	if out != "Balance 10.00, due Friday." {
		t.Errorf("unexpected render: %q", out)
	}

	if _, err := tpl.Render(map[string]string{"balance": "10.00"}); err == nil {
		t.Error("expected error for missing field")
	}
}

func TestMissingFieldsOrder(t *testing.T) {
	tpl := Template{Fields: []string{"c", "a", "b"}}
	got := tpl.MissingFields(map[string]string{"a": "x"})
	want := []string{"c", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("missing fields = %v, want %v", got, want)
	}
}

func TestRegistryForCategory(t *testing.T) {
	reg := NewRegistry(DefaultTemplates)

	billing := reg.ForCategory("billing")
	if len(billing) != 1 || billing[0].ID != "billing_inquiry" {
		t.Errorf("unexpected billing templates: %+v", billing)
	}
	if len(reg.ForCategory("BILLING")) != 1 {
		t.Error("category lookup should be case-insensitive")
	}
	if len(reg.ForCategory("no_such_category")) != 0 {
		t.Error("unknown category should be empty")
	}
}

func TestLoadRegistry(t *testing.T) {
	reg, err := LoadRegistry("")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := reg.Get("billing_inquiry"); !ok {
		t.Error("empty path should load default templates")
	}

	reg, err = LoadRegistry("/does/not/exist.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := reg.Get("password_reset"); !ok {
		t.Error("missing file should fall back to defaults")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "templates.yaml")
	content := `
- id: custom
  category: misc
  body: "Hello {name}"
  fields: [name]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	reg, err = LoadRegistry(path)
	if err != nil {
		t.Fatal(err)
	}
	tpl, ok := reg.Get("custom")
	if !ok {
		t.Fatal("expected custom template from file")
	}
	if out, err := tpl.Render(map[string]string{"name": "world"}); err != nil || out != "Hello world" {
		t.Errorf("unexpected render: %q, %v", out, err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("{{{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRegistry(bad); err == nil {
		t.Error("expected error for invalid YAML")
	}
}
