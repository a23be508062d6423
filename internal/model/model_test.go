package model

import "testing"

func TestDomainForKind(t *testing.T) {
	tests := []struct {
		kind   Kind
		domain Domain
		known  bool
	}{
		{KindToolCall, DomainTool, true},
		{KindCitation, DomainEpistemic, true},
		{KindResponseStrategy, DomainExecution, true},
		{KindEnvironmentAction, DomainTemporal, true},
		{Kind("unknown_kind"), Domain(""), false},
		{Kind(""), Domain(""), false},
	}
	for _, tt := range tests {
		domain, known := DomainForKind(tt.kind)
		if known != tt.known {
			t.Errorf("kind=%q: known=%v, want %v", tt.kind, known, tt.known)
		}
		if domain != tt.domain {
			t.Errorf("kind=%q: domain=%q, want %q", tt.kind, domain, tt.domain)
		}
	}
}

func TestParamValue(t *testing.T) {
	params := []Param{
		{Key: "project", Value: "Phoenix"},
		{Key: "project", Value: "second"},
		{Key: "path", Value: "docs/report.txt"},
	}
	if got := ParamValue(params, "project"); got != "Phoenix" {
		t.Errorf("expected first value, got %q", got)
	}
	if got := ParamValue(params, "missing"); got != "" {
		t.Errorf("expected empty for missing key, got %q", got)
	}
	if got := ParamValue(nil, "any"); got != "" {
		t.Errorf("expected empty for nil params, got %q", got)
	}
}

func TestCitationIsRefusal(t *testing.T) {
	if !(CitationClaim{}).IsRefusal() {
		t.Error("empty claim should be a refusal")
	}
	if (CitationClaim{AnswerSpan: "some answer"}).IsRefusal() {
		t.Error("claim with a span is not a refusal")
	}
	if (CitationClaim{PassageID: "doc:d1:para:0"}).IsRefusal() {
		t.Error("claim with a passage is not a refusal")
	}
}

func TestDecisionConstructors(t *testing.T) {
	a := Approve("scope.membership", "in scope")
	if a.Outcome != Approved || a.RuleID != "scope.membership" {
		t.Errorf("unexpected approve decision: %+v", a)
	}
	if a.Reason != "" {
		t.Errorf("approvals carry no reason code, got %q", a.Reason)
	}

	d := Deny(ReasonPolicyViolation, "scope.injection", "imperative text")
	if d.Outcome != Denied || d.Reason != ReasonPolicyViolation {
		t.Errorf("unexpected deny decision: %+v", d)
	}
}
