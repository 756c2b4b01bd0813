package trends

import "strings"

// DefaultSummaryChars is the card-sized budget the dashboard uses.
const DefaultSummaryChars = 220

// Summarize trims text to at most maxChars, preferring to cut at a
// sentence or clause boundary when one lands past the first 40 characters.
func Summarize(text string, maxChars int) string {
	if text == "" {
		return ""
	}
	if maxChars <= 0 {
		maxChars = DefaultSummaryChars
	}

	t := strings.Join(strings.Fields(text), " ")
	runes := []rune(t)
	if len(runes) <= maxChars {
		return t
	}

	window := string(runes[:maxChars])
	stop := -1
	for _, sep := range []string{". ", "; ", ", "} {
		if i := strings.LastIndex(window, sep); i > stop {
			stop = i
		}
	}
	if stop < 40 {
		return strings.TrimRight(window, " ") + "…"
	}
	return strings.TrimRight(window[:stop], " ") + "…"
}
