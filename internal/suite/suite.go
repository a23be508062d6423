// Package suite runs the authority separation evaluation: four tests,
// each comparing a baseline arm (model proposals execute directly)
// against a governed arm (proposals pass through the execution
// boundary). The suite is the driving agent loop: it feeds proposals
// in and consumes decisions; it never decides anything itself.
package suite

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ppiankov/boundary/internal/audit"
	"github.com/ppiankov/boundary/internal/boundary"
	"github.com/ppiankov/boundary/internal/constraint"
	"github.com/ppiankov/boundary/internal/corpus"
	"github.com/ppiankov/boundary/internal/execauth"
	"github.com/ppiankov/boundary/internal/grade"
	"github.com/ppiankov/boundary/internal/policy"
	"github.com/ppiankov/boundary/internal/report"
)

// Config controls a suite run.
type Config struct {
	Seed       int64
	Episodes   int // per environment; 0 → 10 (5 in quick mode)
	Quick      bool
	OutputDir  string
	PolicyPath string
	CorpusPath string
	AuditPath  string // optional JSONL audit log
	ResultsDB  string // optional SQLite results store
	Logger     *zap.Logger
}

// Runner executes the four tests and renders the scoreboard.
type Runner struct {
	cfg Config
	log *zap.Logger

	policyCfg  *policy.Config
	policyHash string
	corpus     *corpus.Store
	templates  *execauth.Registry
	grader     *grade.Heuristic
}

// NewRunner loads policy and collaborators for a run.
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Episodes == 0 {
		cfg.Episodes = 10
		if cfg.Quick {
			cfg.Episodes = 5
		}
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "artifacts"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	policyCfg, policyHash, err := policy.LoadConfigWithHash(cfg.PolicyPath)
	if err != nil {
		return nil, fmt.Errorf("suite: load policy: %w", err)
	}

	store, err := corpus.Load(cfg.CorpusPath)
	if err != nil {
		return nil, fmt.Errorf("suite: load corpus: %w", err)
	}

	return &Runner{
		cfg:        cfg,
		log:        logger,
		policyCfg:  policyCfg,
		policyHash: policyHash,
		corpus:     store,
		templates:  execauth.NewRegistry(execauth.DefaultTemplates),
		grader:     grade.New(),
	}, nil
}

// Run executes all four tests and writes the scoreboard. The returned
// results are ordered tool, epistemic, execution, temporal.
func (r *Runner) Run() ([]report.TestResult, error) {
	runID := uuid.NewString()
	startedAt := time.Now().UTC()
	r.log.Info("suite run starting",
		zap.String("run_id", runID),
		zap.Int64("seed", r.cfg.Seed),
		zap.Int("episodes", r.cfg.Episodes),
	)

	memLog := audit.NewMemoryLog()
	recorder := audit.Recorder(memLog)
	if r.cfg.AuditPath != "" {
		fileLog, err := audit.Open(r.cfg.AuditPath)
		if err != nil {
			return nil, fmt.Errorf("suite: open audit log: %w", err)
		}
		defer fileLog.Close()
		recorder = teeRecorder{memLog, fileLog}
	}

	results := []report.TestResult{
		r.runToolAuthority(recorder),
		r.runEpistemic(recorder),
		r.runExecution(recorder),
		r.runTemporal(recorder),
	}

	if _, _, err := report.WriteScoreboard(results, r.cfg.OutputDir); err != nil {
		return nil, fmt.Errorf("suite: %w", err)
	}

	if r.cfg.ResultsDB != "" {
		store, err := report.OpenStore(r.cfg.ResultsDB)
		if err != nil {
			return nil, fmt.Errorf("suite: %w", err)
		}
		defer store.Close()
		if err := store.SaveRun(runID, r.cfg.Seed, startedAt); err != nil {
			return nil, fmt.Errorf("suite: %w", err)
		}
		if err := store.SaveResults(runID, results); err != nil {
			return nil, fmt.Errorf("suite: %w", err)
		}
		if err := store.SaveDecisions(runID, memLog.Entries()); err != nil {
			return nil, fmt.Errorf("suite: %w", err)
		}
	}

	r.log.Info("suite run complete",
		zap.String("run_id", runID),
		zap.Int("decisions", memLog.Len()),
	)
	return results, nil
}

// newBoundary builds a governed-arm boundary sharing the run's policy
// and audit sink. Each test gets fresh constraint memory except the
// temporal test, which passes its own shared instance.
func (r *Runner) newBoundary(recorder audit.Recorder, mem *constraint.Memory, tasks boundary.TaskSource) *boundary.Boundary {
	return boundary.New(boundary.Config{
		Policy:     r.policyCfg,
		PolicyHash: r.policyHash,
		Corpus:     r.corpus,
		Templates:  r.templates,
		Grader:     r.grader,
		Memory:     mem,
		Audit:      recorder,
		Tasks:      tasks,
		Logger:     r.log,
	})
}

// teeRecorder fans one audit entry out to several sinks.
type teeRecorder []audit.Recorder

func (t teeRecorder) Record(entry audit.Entry) error {
	for _, rec := range t {
		if err := rec.Record(entry); err != nil {
			return err
		}
	}
	return nil
}
