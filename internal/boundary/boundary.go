// Package boundary is the trusted component that authorizes or denies
// proposed actions. It never executes anything: execution belongs to an
// external executor, and only after an Approved decision.
package boundary

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ppiankov/boundary/internal/audit"
	"github.com/ppiankov/boundary/internal/constraint"
	"github.com/ppiankov/boundary/internal/corpus"
	"github.com/ppiankov/boundary/internal/epistemic"
	"github.com/ppiankov/boundary/internal/execauth"
	"github.com/ppiankov/boundary/internal/grade"
	"github.com/ppiankov/boundary/internal/model"
	"github.com/ppiankov/boundary/internal/policy"
	"github.com/ppiankov/boundary/internal/temporal"
	"github.com/ppiankov/boundary/internal/toolauth"
)

// TaskSource resolves task-side data for the execution domain. The suite
// registers its dataset here; unknown tasks resolve to an empty task, in
// which case no template is satisfiable and free-form stands.
type TaskSource interface {
	TaskFor(taskID string) (execauth.Task, bool)
}

// Config assembles the boundary's collaborators. Zero-value fields get
// safe defaults.
type Config struct {
	Policy     *policy.Config
	PolicyHash string
	Corpus     epistemic.Fetcher
	Templates  *execauth.Registry
	Grader     execauth.Grader
	Memory     *constraint.Memory
	Audit      audit.Recorder
	Tasks      TaskSource
	Logger     *zap.Logger
}

// Boundary dispatches proposals to domain evaluators, converts their
// output into decision records, and appends exactly one audit entry per
// evaluation. Fails closed on evaluator errors.
type Boundary struct {
	cfg Config
	log *zap.Logger
}

// New creates a Boundary, filling in defaults for absent collaborators.
func New(cfg Config) *Boundary {
	if cfg.Policy == nil {
		cfg.Policy = policy.DefaultConfig()
	}
	if cfg.Corpus == nil {
		cfg.Corpus = corpus.NewDefault()
	}
	if cfg.Templates == nil {
		cfg.Templates = execauth.NewRegistry(execauth.DefaultTemplates)
	}
	if cfg.Grader == nil {
		cfg.Grader = grade.New()
	}
	if cfg.Memory == nil {
		cfg.Memory = constraint.NewMemory()
	}
	if cfg.Audit == nil {
		cfg.Audit = audit.NewMemoryLog()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Boundary{cfg: cfg, log: logger}
}

// Memory exposes the constraint memory for reporting.
func (b *Boundary) Memory() *constraint.Memory { return b.cfg.Memory }

// Evaluate runs the domain evaluator for a proposal and returns the
// decision record. Always returns a complete record: evaluator panics
// and unknown kinds become denials, never propagated errors.
func (b *Boundary) Evaluate(p *model.Proposal) model.DecisionRecord {
	// Proposals are immutable; a missing ID is generated into the record.
	proposalID := p.ID
	if proposalID == "" {
		proposalID = uuid.NewString()
	}

	domain, known := model.DomainForKind(p.Kind)
	var decision model.Decision
	if !known {
		domain = model.Domain("unknown")
		decision = model.Deny(model.ReasonNoApplicablePolicy, "boundary.dispatch",
			fmt.Sprintf("no evaluator configured for proposal kind %q", p.Kind))
	} else {
		decision = b.dispatch(domain, p)
	}

	rec := model.DecisionRecord{
		ProposalID:    proposalID,
		TaskID:        p.Context.TaskID,
		Episode:       p.Context.Episode,
		EnvironmentID: p.Context.EnvironmentID,
		Domain:        domain,
		Decision:      decision,
		EvaluatedAt:   time.Now().UTC(),
		PolicyHash:    b.cfg.PolicyHash,
	}

	if err := b.cfg.Audit.Record(audit.FromRecord(rec)); err != nil {
		b.log.Error("audit append failed", zap.Error(err), zap.String("proposal_id", proposalID))
	}

	b.log.Debug("proposal evaluated",
		zap.String("proposal_id", proposalID),
		zap.String("domain", string(domain)),
		zap.String("outcome", string(decision.Outcome)),
		zap.String("reason", string(decision.Reason)),
		zap.String("rule_id", decision.RuleID),
	)

	return rec
}

// dispatch routes to the domain evaluator, converting panics into
// EvaluatorFault denials. Absence of a rule is not evidence of safety.
func (b *Boundary) dispatch(domain model.Domain, p *model.Proposal) (decision model.Decision) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("evaluator panic", zap.String("domain", string(domain)), zap.Any("panic", r))
			decision = model.Deny(model.ReasonEvaluatorFault, "boundary.recover",
				fmt.Sprintf("%s evaluator fault: %v", domain, r))
		}
	}()

	switch domain {
	case model.DomainTool:
		return toolauth.Evaluate(p, b.cfg.Policy)
	case model.DomainEpistemic:
		return epistemic.Evaluate(p, b.cfg.Policy, b.cfg.Corpus)
	case model.DomainExecution:
		task := execauth.Task{ID: p.Context.TaskID}
		if b.cfg.Tasks != nil {
			if t, ok := b.cfg.Tasks.TaskFor(p.Context.TaskID); ok {
				task = t
			}
		}
		return execauth.Evaluate(p, b.cfg.Policy, b.cfg.Templates, b.cfg.Grader, task)
	case model.DomainTemporal:
		return temporal.Evaluate(p, b.cfg.Memory)
	default:
		return model.Deny(model.ReasonNoApplicablePolicy, "boundary.dispatch",
			fmt.Sprintf("no evaluator for domain %q", domain))
	}
}

// ReportCatastrophe commits a newly learned constraint. Returns the
// entry and whether it was newly created. The transition is permanent.
func (b *Boundary) ReportCatastrophe(report temporal.CatastropheReport) (constraint.Entry, bool) {
	if report.EventID == "" {
		report.EventID = uuid.NewString()
	}
	entry, created := temporal.Commit(report, b.cfg.Memory)
	if created {
		b.log.Info("constraint learned",
			zap.String("environment", report.EnvironmentID),
			zap.String("pattern", entry.Pattern),
			zap.Int("episode", report.Episode),
		)
	}
	return entry, created
}
