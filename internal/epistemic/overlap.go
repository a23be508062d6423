package epistemic

import "strings"

// Overlap returns the fraction of answer-span tokens contained in the
// passage. Tokens are lowercased with surrounding punctuation stripped.
// An empty answer span counts as fully contained.
func Overlap(passage, answer string) float64 {
	answerTokens := tokenize(answer)
	if len(answerTokens) == 0 {
		return 1.0
	}

	passageSet := make(map[string]bool)
	for _, t := range tokenize(passage) {
		passageSet[t] = true
	}

	hits := 0
	for _, t := range answerTokens {
		if passageSet[t] {
			hits++
		}
	}
	return float64(hits) / float64(len(answerTokens))
}

func tokenize(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		t := strings.Trim(f, ".,;:!?\"'()[]{}")
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
