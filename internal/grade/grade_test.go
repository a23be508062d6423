package grade

import "testing"

func TestScoreFullCoverage(t *testing.T) {
	g := New()
	expected := map[string]string{"balance": "142.50", "due_date": "2026-09-15"}
	response := "Thank you for contacting us. Your account balance is $142.50 and your next payment is due on 2026-09-15. Please contact billing with questions."

	score := g.Score("billing", response, expected)
	if score < 0.8 {
		t.Errorf("full field coverage should clear the floor, got %v", score)
	}
	if score > 1 {
		t.Errorf("score must be capped at 1, got %v", score)
	}
}

func TestScoreNoCoverage(t *testing.T) {
	g := New()
	expected := map[string]string{"balance": "142.50"}
	score := g.Score("billing", "I cannot help with that.", expected)
	if score >= 0.5 {
		t.Errorf("missing all expected fields should score low, got %v", score)
	}
}

func TestScoreNoExpectations(t *testing.T) {
	// With nothing expected, coverage is full and only quality varies.
	g := New()
	score := g.Score("misc", "Thank you for your order. Please contact us regarding your account.", nil)
	if score < 0.7 {
		t.Errorf("unexpected score with no expectations: %v", score)
	}
}

func TestScoreDeterministic(t *testing.T) {
	g := New()
	expected := map[string]string{"order_id": "A-1009"}
	response := "Your order #A-1009 shipped today."
	if g.Score("shipping", response, expected) != g.Score("shipping", response, expected) {
		t.Error("scoring must be deterministic")
	}
}

func TestFieldCoveragePartialPhrase(t *testing.T) {
	// Multi-word values count with 70% of their words present.
	expected := map[string]string{"steps": "restart the router and check the cable"}
	response := "please restart the router and check your connection cable"
	if got := fieldCoverage(expected, response); got != 0.8 {
		t.Errorf("expected 0.8 partial credit, got %v", got)
	}
}

func TestFieldCoverageEmptyValueSkipped(t *testing.T) {
	expected := map[string]string{"a": "present", "b": ""}
	got := fieldCoverage(expected, "present here")
	if got != 0.5 {
		t.Errorf("empty expected values contribute nothing, got %v", got)
	}
}
