package audit

import (
	"time"

	"github.com/ppiankov/boundary/internal/model"
)

// Entry is one line in the hash-chained JSONL audit log: a flattened
// decision record. All fields are scalars (no map[string]any) to
// guarantee deterministic json.Marshal field order for reproducible
// hashing.
type Entry struct {
	Timestamp     string `json:"ts"`
	ProposalID    string `json:"proposal_id"`
	TaskID        string `json:"task_id"`
	Episode       int    `json:"episode"`
	EnvironmentID string `json:"environment_id,omitempty"`
	Domain        string `json:"domain"`
	Outcome       string `json:"outcome"`
	Reason        string `json:"reason,omitempty"`
	Detail        string `json:"detail,omitempty"`
	RuleID        string `json:"rule_id,omitempty"`
	PolicyHash    string `json:"policy_hash,omitempty"`
	PrevHash      string `json:"prev_hash"`
}

// FromRecord flattens a decision record into an audit entry.
func FromRecord(rec model.DecisionRecord) Entry {
	return Entry{
		Timestamp:     rec.EvaluatedAt.UTC().Format(time.RFC3339Nano),
		ProposalID:    rec.ProposalID,
		TaskID:        rec.TaskID,
		Episode:       rec.Episode,
		EnvironmentID: rec.EnvironmentID,
		Domain:        string(rec.Domain),
		Outcome:       string(rec.Decision.Outcome),
		Reason:        string(rec.Decision.Reason),
		Detail:        rec.Decision.Detail,
		RuleID:        rec.Decision.RuleID,
		PolicyHash:    rec.PolicyHash,
	}
}
