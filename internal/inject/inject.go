// Package inject detects instruction content embedded in data payloads.
// Scope authorization and content-derived intent are evaluated
// independently: a tool call justified by injected text is denied even
// when the tool itself is in scope.
package inject

import "strings"

// imperativePatterns are phrases that mark an instruction smuggled into
// document text. Substring matching, case-insensitive.
var imperativePatterns = []string{
	"ignore previous instructions",
	"ignore all previous instructions",
	"disregard the above",
	"disregard previous",
	"forget your instructions",
	"you are now",
	"new instructions:",
	"system override",
	"do not tell the user",
	"as part of the summarization task",
	"retrieve internal",
	"this is an authorized request",
}

// Detect reports whether text carries embedded imperative instructions.
// Returns the matched pattern as reason.
func Detect(text string) (bool, string) {
	if text == "" {
		return false, ""
	}

	if hasControlChars(text) {
		return true, "control character injection"
	}

	lower := strings.ToLower(text)
	for _, p := range imperativePatterns {
		if strings.Contains(lower, p) {
			return true, "imperative instruction in payload: " + p
		}
	}
	return false, ""
}

// hasControlChars reports non-printable control characters other than
// ordinary whitespace.
func hasControlChars(s string) bool {
	for _, r := range s {
		if r < 0x20 && r != '\n' && r != '\r' && r != '\t' {
			return true
		}
	}
	return false
}
