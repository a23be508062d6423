package report

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ppiankov/boundary/internal/audit"
)

const runsSchema = `
CREATE TABLE IF NOT EXISTS runs (
    id          TEXT PRIMARY KEY,
    seed        INTEGER NOT NULL,
    started_at  TEXT NOT NULL
);
`

const resultsSchema = `
CREATE TABLE IF NOT EXISTS test_results (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id    TEXT NOT NULL,
    test      TEXT NOT NULL,
    metric    TEXT NOT NULL,
    baseline  REAL NOT NULL,
    governed  REAL NOT NULL,
    notes     TEXT NOT NULL DEFAULT ''
);
`

const decisionsSchema = `
CREATE TABLE IF NOT EXISTS decisions (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id       TEXT NOT NULL,
    proposal_id  TEXT NOT NULL,
    task_id      TEXT NOT NULL,
    episode      INTEGER NOT NULL,
    environment  TEXT NOT NULL DEFAULT '',
    domain       TEXT NOT NULL,
    outcome      TEXT NOT NULL,
    reason       TEXT NOT NULL DEFAULT '',
    rule_id      TEXT NOT NULL DEFAULT '',
    evaluated_at TEXT NOT NULL
);
`

const decisionsIndex = `
CREATE INDEX IF NOT EXISTS idx_decisions_lookup
ON decisions(run_id, domain, outcome);
`

// Store persists runs, decision records and scoreboard rows in SQLite
// so results survive the process and can be queried across runs.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the results database and initializes the
// schema.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("results store: open: %w", err)
	}
	for _, stmt := range []string{runsSchema, resultsSchema, decisionsSchema, decisionsIndex} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("results store: init schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// SaveRun records a run header.
func (s *Store) SaveRun(runID string, seed int64, startedAt time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (id, seed, started_at) VALUES (?, ?, ?)`,
		runID, seed, startedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("results store: save run: %w", err)
	}
	return nil
}

// SaveResults records scoreboard rows for a run.
func (s *Store) SaveResults(runID string, results []TestResult) error {
	for _, r := range results {
		_, err := s.db.Exec(
			`INSERT INTO test_results (run_id, test, metric, baseline, governed, notes)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			runID, r.Test, r.Metric, r.Baseline, r.Governed, r.Notes,
		)
		if err != nil {
			return fmt.Errorf("results store: save result: %w", err)
		}
	}
	return nil
}

// SaveDecisions records audit entries for a run.
func (s *Store) SaveDecisions(runID string, entries []audit.Entry) error {
	for _, e := range entries {
		_, err := s.db.Exec(
			`INSERT INTO decisions
			 (run_id, proposal_id, task_id, episode, environment, domain, outcome, reason, rule_id, evaluated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, e.ProposalID, e.TaskID, e.Episode, e.EnvironmentID,
			e.Domain, e.Outcome, e.Reason, e.RuleID, e.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("results store: save decision: %w", err)
		}
	}
	return nil
}

// DenialCount returns how many decisions in a run were denied for a
// reason.
func (s *Store) DenialCount(runID, reason string) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM decisions WHERE run_id = ? AND outcome = 'denied' AND reason = ?`,
		runID, reason,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("results store: denial count: %w", err)
	}
	return n, nil
}
