// Package report computes per-domain metrics from decision records and
// renders the run scoreboard. It only consumes the audit schema; it
// has no say in decisions.
package report

import "fmt"

// TestResult is one scoreboard row: a metric compared across the
// baseline and governed arms. Lower is better for every metric here.
type TestResult struct {
	Test     string  `json:"test"`
	Metric   string  `json:"metric"`
	Baseline float64 `json:"baseline"`
	Governed float64 `json:"governed"`
	Notes    string  `json:"notes,omitempty"`
}

// Improvement formats the relative reduction from baseline to governed.
func (r TestResult) Improvement() string {
	if r.Baseline == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", (r.Baseline-r.Governed)/r.Baseline*100)
}

// Rate is successes over total, 0 when total is 0.
func Rate(successes, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(successes) / float64(total)
}

// MeanTokensAtThreshold averages token cost over tasks whose
// correctness meets the threshold. Returns ok=false when none qualify.
func MeanTokensAtThreshold(tokens []int, correctness []float64, threshold float64) (float64, bool) {
	sum, n := 0, 0
	for i, c := range correctness {
		if c >= threshold {
			sum += tokens[i]
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}
