package feed

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// DefaultQuery is substituted when the user gives an empty topic.
	DefaultQuery = "AI"

	searchBase = "https://news.google.com/rss/search"
)

// BuildSearchURL constructs the feed-search URL for a topic. Malformed
// inputs are coerced, not rejected: empty query falls back to DefaultQuery,
// non-positive day windows clamp to 1, empty locale parts default to US/en.
func BuildSearchURL(query string, daysBack int, region, lang string) string {
	q := strings.TrimSpace(query)
	if q == "" {
		q = DefaultQuery
	}
	if daysBack < 1 {
		daysBack = 1
	}
	if region == "" {
		region = "US"
	}
	if lang == "" {
		lang = "en"
	}

	return fmt.Sprintf(
		"%s?q=%s+when:%dd&hl=%s-%s&gl=%s&ceid=%s:%s",
		searchBase, url.QueryEscape(q), daysBack, lang, region, region, region, lang,
	)
}
