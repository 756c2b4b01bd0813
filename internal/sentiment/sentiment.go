package sentiment

import (
	"github.com/jonreiter/govader"
)

const (
	LabelPositive = "positive"
	LabelNeutral  = "neutral"
	LabelNegative = "negative"
)

// Result is one article's sentiment. Results stay positionally aligned
// with the texts they were computed from.
type Result struct {
	Compound float64 `json:"compound"`
	Label    string  `json:"label"`
}

// Analyzer scores a single text. Available reports whether a real polarity
// model backs this analyzer; a false value means every score is 0.
type Analyzer interface {
	Available() bool
	Score(text string) float64
}

// NewAnalyzer picks the best available backend once, at startup. If the
// VADER lexicon cannot be initialized the analyzer degrades to neutral
// scoring, which is a defined mode rather than an error.
func NewAnalyzer() Analyzer {
	if a := newVader(); a != nil {
		return a
	}
	return Neutral{}
}

// AnalyzeBatch scores each text independently and returns one Result per
// input, in order. A nil or unavailable analyzer yields all-neutral output.
func AnalyzeBatch(a Analyzer, texts []string) []Result {
	results := make([]Result, len(texts))
	for i, t := range texts {
		compound := 0.0
		if a != nil && a.Available() {
			compound = a.Score(t)
		}
		results[i] = Result{Compound: compound, Label: LabelFor(compound)}
	}
	return results
}

// LabelFor maps a compound score to its three-way label. Both thresholds
// are exclusive: exactly ±0.2 is still neutral.
func LabelFor(compound float64) string {
	switch {
	case compound > 0.2:
		return LabelPositive
	case compound < -0.2:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

type vaderAnalyzer struct {
	sia *govader.SentimentIntensityAnalyzer
}

func newVader() Analyzer {
	var sia *govader.SentimentIntensityAnalyzer
	func() {
		defer func() {
			// A broken lexicon load must not take the process down;
			// we fall back to neutral scoring instead.
			recover()
		}()
		sia = govader.NewSentimentIntensityAnalyzer()
	}()
	if sia == nil {
		return nil
	}
	return &vaderAnalyzer{sia: sia}
}

func (v *vaderAnalyzer) Available() bool { return true }

func (v *vaderAnalyzer) Score(text string) float64 {
	return v.sia.PolarityScores(text).Compound
}

// Neutral is the degraded-mode analyzer used when no polarity model is
// available. Every text scores 0.
type Neutral struct{}

func (Neutral) Available() bool           { return false }
func (Neutral) Score(text string) float64 { return 0 }
