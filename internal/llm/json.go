package llm

import "strings"

// extractJSON strips Markdown code fences that chat models like to wrap
// around JSON replies, returning the trimmed payload.
func extractJSON(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
