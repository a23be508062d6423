package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// WriteScoreboard renders results as CSV and Markdown under
// dir/tables/. Returns the two file paths.
func WriteScoreboard(results []TestResult, dir string) (string, string, error) {
	tables := filepath.Join(dir, "tables")
	if err := os.MkdirAll(tables, 0755); err != nil {
		return "", "", fmt.Errorf("scoreboard: create directory: %w", err)
	}

	csvPath := filepath.Join(tables, "scoreboard.csv")
	if err := writeCSV(results, csvPath); err != nil {
		return "", "", err
	}

	mdPath := filepath.Join(tables, "scoreboard.md")
	if err := writeMarkdown(results, mdPath); err != nil {
		return "", "", err
	}

	return csvPath, mdPath, nil
}

func writeCSV(results []TestResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("scoreboard: create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Test", "Metric", "Baseline", "Governed", "Improvement", "Notes"}); err != nil {
		return fmt.Errorf("scoreboard: write header: %w", err)
	}
	for _, r := range results {
		row := []string{
			r.Test,
			r.Metric,
			strconv.FormatFloat(r.Baseline, 'f', 4, 64),
			strconv.FormatFloat(r.Governed, 'f', 4, 64),
			r.Improvement(),
			r.Notes,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("scoreboard: write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func writeMarkdown(results []TestResult, path string) error {
	var b strings.Builder
	b.WriteString("# Authority Separation Evaluation Results\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().UTC().Format("2006-01-02 15:04:05"))
	b.WriteString("| Test | Metric | Baseline | Governed | Improvement |\n")
	b.WriteString("|------|--------|----------|----------|-------------|\n")
	for _, r := range results {
		fmt.Fprintf(&b, "| %s | %s | %.4f | %.4f | %s |\n",
			r.Test, r.Metric, r.Baseline, r.Governed, r.Improvement())
	}
	b.WriteString("\n")
	for _, r := range results {
		if r.Notes != "" {
			fmt.Fprintf(&b, "- **%s**: %s\n", r.Test, r.Notes)
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("scoreboard: write markdown: %w", err)
	}
	return nil
}
