package geo

import (
	"testing"

	"github.com/Zainab2603/AI-Newschatbot/internal/feed"
	"github.com/Zainab2603/AI-Newschatbot/internal/sentiment"
)

func TestLocate(t *testing.T) {
	p, ok := Locate("AI lab opens in london this week")
	if !ok {
		t.Fatal("expected a match")
	}
	if p.Name != "London" {
		t.Errorf("got %q", p.Name)
	}

	if _, ok := Locate("nothing geographic here"); ok {
		t.Error("expected no match")
	}
	if _, ok := Locate(""); ok {
		t.Error("expected no match for empty text")
	}
}

func TestMapPoints(t *testing.T) {
	articles := []feed.Article{
		{Title: "Tokyo startup raises round", Link: "l1"},
		{Title: "No place mentioned", Link: "l2"},
		{Title: "Protests hit", Summary: "crowds in Paris", Link: "l3"},
	}
	sentiments := []sentiment.Result{
		{Compound: 0.6, Label: sentiment.LabelPositive},
		{Compound: 0.0, Label: sentiment.LabelNeutral},
		{Compound: -0.7, Label: sentiment.LabelNegative},
	}

	points := MapPoints(articles, sentiments)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Place != "Tokyo" || points[0].Mood != sentiment.LabelPositive {
		t.Errorf("points[0] = %+v", points[0])
	}
	if points[1].Place != "Paris" || points[1].Mood != sentiment.LabelNegative {
		t.Errorf("points[1] = %+v", points[1])
	}
}

func TestMapPointsMissingSentimentDefaultsNeutral(t *testing.T) {
	articles := []feed.Article{{Title: "Berlin conference", Link: "l"}}

	points := MapPoints(articles, nil)
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	if points[0].Mood != sentiment.LabelNeutral {
		t.Errorf("mood = %q", points[0].Mood)
	}
}
