// Package geo places articles on the dashboard's news map with a cheap
// known-places lookup. No network geocoding; unmatched articles simply get
// no point.
package geo

import (
	"strings"

	"github.com/Zainab2603/AI-Newschatbot/internal/feed"
	"github.com/Zainab2603/AI-Newschatbot/internal/sentiment"
)

type Place struct {
	Name string
	Lat  float64
	Lon  float64
}

// knownPlaces is checked in order so the same text always resolves to the
// same place.
var knownPlaces = []Place{
	{"San Francisco", 37.7749, -122.4194},
	{"New York", 40.7128, -74.0060},
	{"London", 51.5074, -0.1278},
	{"Paris", 48.8566, 2.3522},
	{"Berlin", 52.5200, 13.4050},
	{"Tokyo", 35.6895, 139.6917},
	{"Beijing", 39.9042, 116.4074},
	{"Seoul", 37.5665, 126.9780},
	{"Bengaluru", 12.9716, 77.5946},
	{"Mumbai", 19.0760, 72.8777},
	{"Sydney", -33.8688, 151.2093},
	{"Toronto", 43.6532, -79.3832},
}

// Locate returns the first known place mentioned in text.
func Locate(text string) (Place, bool) {
	if text == "" {
		return Place{}, false
	}
	lower := strings.ToLower(text)
	for _, p := range knownPlaces {
		if strings.Contains(lower, strings.ToLower(p.Name)) {
			return p, true
		}
	}
	return Place{}, false
}

// Point is one pin on the news map.
type Point struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Place string  `json:"place"`
	Title string  `json:"title"`
	Mood  string  `json:"mood"`
}

// MapPoints pairs articles with their sentiments (positionally aligned)
// and keeps the ones whose text mentions a known place.
func MapPoints(articles []feed.Article, sentiments []sentiment.Result) []Point {
	var points []Point
	for i, a := range articles {
		p, ok := Locate(a.Title + " " + a.Summary)
		if !ok {
			continue
		}
		mood := sentiment.LabelNeutral
		if i < len(sentiments) {
			mood = sentiments[i].Label
		}
		points = append(points, Point{
			Lat:   p.Lat,
			Lon:   p.Lon,
			Place: p.Name,
			Title: a.Title,
			Mood:  mood,
		})
	}
	return points
}
