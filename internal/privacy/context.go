package privacy

import "strings"

// Window sizes for the lexical context heuristics, in bytes each side
// of the candidate span.
const (
	nameContextWindow    = 20
	addressContextWindow = 30
	contextSnippetWindow = 50
)

// isLikelyNameContext inspects the text surrounding [start,end) for
// keywords that contradict a person-name reading. The positive keyword
// list is informative only; absence of negatives is sufficient.
func isLikelyNameContext(text string, start, end int) bool {
	window := contextWindow(text, start, end, nameContextWindow)

	for _, kw := range nameContextNegative {
		if strings.Contains(window, kw) {
			return false
		}
	}
	return true
}

// isLikelyAddressContext requires at least one address keyword in the
// surrounding window.
func isLikelyAddressContext(text string, start, end int) bool {
	window := contextWindow(text, start, end, addressContextWindow)

	for _, kw := range addressContextKeywords {
		if strings.Contains(window, kw) {
			return true
		}
	}
	return false
}

// contextWindow returns the lowercased text around a span, clipped to
// the text bounds, with the span itself excluded.
func contextWindow(text string, start, end, size int) string {
	before := text[max(0, start-size):start]
	after := text[end:min(len(text), end+size)]
	return strings.ToLower(before) + " " + strings.ToLower(after)
}

// contextSnippet produces a short display excerpt with the matched
// value bracketed, for callers that ask for match context.
func contextSnippet(text string, start, end int) string {
	from := max(0, start-contextSnippetWindow)
	to := min(len(text), end+contextSnippetWindow)
	return "..." + text[from:start] + "[" + text[start:end] + "]" + text[end:to] + "..."
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
