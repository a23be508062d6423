// Package grade is the built-in grading collaborator: a deterministic
// heuristic scorer for rendered responses. Field coverage dominates;
// generic content quality fills in the rest.
package grade

import "strings"

// Heuristic scores responses by expected-field coverage plus content
// quality. Satisfies execauth.Grader.
type Heuristic struct{}

// New returns a Heuristic grader.
func New() *Heuristic { return &Heuristic{} }

// Score returns a correctness score in [0, 1].
func (h *Heuristic) Score(category, response string, expected map[string]string) float64 {
	coverage := fieldCoverage(expected, response)
	quality := contentQuality(response)
	score := 0.7*coverage + 0.3*quality
	if score > 1 {
		score = 1
	}
	return score
}

// fieldCoverage returns the fraction of expected values present in the
// response. Longer values count with 70% word overlap.
func fieldCoverage(expected map[string]string, response string) float64 {
	if len(expected) == 0 {
		return 1.0
	}
	lower := strings.ToLower(response)

	covered := 0.0
	for _, value := range expected {
		v := strings.ToLower(value)
		if v == "" {
			continue
		}
		if strings.Contains(lower, v) {
			covered++
			continue
		}
		words := strings.Fields(v)
		if len(words) > 1 {
			hits := 0
			for _, w := range words {
				if strings.Contains(lower, w) {
					hits++
				}
			}
			if float64(hits) >= float64(len(words))*0.7 {
				covered += 0.8
			}
		}
	}
	return covered / float64(len(expected))
}

// contentQuality scores length, professional phrasing and sentence
// structure.
func contentQuality(response string) float64 {
	score := 0.5

	words := len(strings.Fields(response))
	switch {
	case words >= 20 && words <= 150:
		score += 0.2
	case words >= 10 && words <= 200:
		score += 0.1
	}

	professional := []string{"thank you", "please", "contact", "account", "order", "regarding"}
	lower := strings.ToLower(response)
	hits := 0
	for _, p := range professional {
		if strings.Contains(lower, p) {
			hits++
		}
	}
	bonus := float64(hits) * 0.05
	if bonus > 0.2 {
		bonus = 0.2
	}
	score += bonus

	if strings.Count(response, ".") >= 2 {
		score += 0.1
	}

	if score > 1 {
		score = 1
	}
	return score
}
