package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/boundary/internal/suite"
)

var (
	runSeed      int64
	runEpisodes  int
	runQuick     bool
	runOutputDir string
	runPolicy    string
	runCorpus    string
	runAuditLog  string
	runResultsDB string
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Int64Var(&runSeed, "seed", 42, "Random seed for environments and the mock model")
	runCmd.Flags().IntVar(&runEpisodes, "episodes", 0, "Episodes per environment (0 = default)")
	runCmd.Flags().BoolVar(&runQuick, "quick", false, "Reduced episode count for a fast pass")
	runCmd.Flags().StringVarP(&runOutputDir, "output", "o", "artifacts", "Output directory for scoreboard tables")
	runCmd.Flags().StringVar(&runPolicy, "policy", "", "Path to policy YAML")
	runCmd.Flags().StringVar(&runCorpus, "corpus", "", "Path to corpus YAML")
	runCmd.Flags().StringVar(&runAuditLog, "audit-log", "", "Path to JSONL audit log")
	runCmd.Flags().StringVar(&runResultsDB, "results-db", "", "Path to SQLite results database")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the authority separation evaluation",
	Long: "Runs all four tests (tool authority, epistemic, execution, temporal)\n" +
		"comparing a baseline arm against a governed arm, and writes the\n" +
		"scoreboard under the output directory.",
	RunE: runSuite,
}

func runSuite(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	runner, err := suite.NewRunner(suite.Config{
		Seed:       runSeed,
		Episodes:   runEpisodes,
		Quick:      runQuick,
		OutputDir:  runOutputDir,
		PolicyPath: runPolicy,
		CorpusPath: runCorpus,
		AuditPath:  runAuditLog,
		ResultsDB:  runResultsDB,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	results, err := runner.Run()
	if err != nil {
		return err
	}

	fmt.Printf("%-16s %-40s %10s %10s %12s\n", "TEST", "METRIC", "BASELINE", "GOVERNED", "IMPROVEMENT")
	for _, r := range results {
		fmt.Printf("%-16s %-40s %10.4f %10.4f %12s\n", r.Test, r.Metric, r.Baseline, r.Governed, r.Improvement())
	}
	fmt.Printf("\nScoreboard written to %s/tables/\n", runOutputDir)
	return nil
}
