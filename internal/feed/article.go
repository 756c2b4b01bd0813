package feed

// Article is one normalized feed entry. Published stays as the raw feed
// timestamp text; the dashboard renders it as-is. Articles are never
// mutated after the parser builds them.
type Article struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published"`
	Source    string `json:"source"`
	Summary   string `json:"summary,omitempty"`
}
