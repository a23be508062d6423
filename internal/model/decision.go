package model

import "time"

// Outcome is the boundary's final verdict on a proposal.
type Outcome string

const (
	Approved         Outcome = "approved"
	Denied           Outcome = "denied"
	RequiresEvidence Outcome = "requires_evidence"
)

// Reason codes for non-approved outcomes. Fail-closed: every deny carries
// exactly one of these.
type Reason string

const (
	ReasonPolicyViolation    Reason = "policy_violation"
	ReasonUnsupported        Reason = "unsupported"
	ReasonEvidenceMissing    Reason = "evidence_missing"
	ReasonCheaperAlternative Reason = "cheaper_alternative_available"
	ReasonPriorCatastrophe   Reason = "prior_catastrophe"
	ReasonEvaluatorFault     Reason = "evaluator_fault"
	ReasonNoApplicablePolicy Reason = "no_applicable_policy"
)

// Decision is the output of a domain evaluator.
type Decision struct {
	Outcome             Outcome  `json:"outcome"`
	Reason              Reason   `json:"reason,omitempty"`
	Detail              string   `json:"detail,omitempty"`
	MissingFields       []string `json:"missing_fields,omitempty"`
	RuleID              string   `json:"rule_id,omitempty"`
	RecommendedTemplate string   `json:"recommended_template,omitempty"`
}

// Approve returns an approved decision citing the rule that allowed it.
func Approve(ruleID, detail string) Decision {
	return Decision{Outcome: Approved, RuleID: ruleID, Detail: detail}
}

// Deny returns a denied decision with a reason code.
func Deny(reason Reason, ruleID, detail string) Decision {
	return Decision{Outcome: Denied, Reason: reason, RuleID: ruleID, Detail: detail}
}

// DecisionRecord is one immutable line of the audit log: the proposal
// reference, the domain that evaluated it, and the outcome.
type DecisionRecord struct {
	ProposalID    string    `json:"proposal_id"`
	TaskID        string    `json:"task_id"`
	Episode       int       `json:"episode"`
	EnvironmentID string    `json:"environment_id,omitempty"`
	Domain        Domain    `json:"domain"`
	Decision      Decision  `json:"decision"`
	EvaluatedAt   time.Time `json:"evaluated_at"`
	PolicyHash    string    `json:"policy_hash,omitempty"`
}
