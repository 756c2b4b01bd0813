// Package server exposes the pipeline to the dashboard UI as a JSON API.
// Pipeline failures never become 5xx responses: the payload carries either
// a technical warning (network/parse trouble) or a query hint (empty feed),
// and the UI decides how to surface it.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"strings"

	"github.com/Zainab2603/AI-Newschatbot/internal/buzzword"
	"github.com/Zainab2603/AI-Newschatbot/internal/config"
	"github.com/Zainab2603/AI-Newschatbot/internal/feed"
	"github.com/Zainab2603/AI-Newschatbot/internal/geo"
	"github.com/Zainab2603/AI-Newschatbot/internal/logger"
	"github.com/Zainab2603/AI-Newschatbot/internal/metrics"
	"github.com/Zainab2603/AI-Newschatbot/internal/news"
	"github.com/Zainab2603/AI-Newschatbot/internal/sentiment"
	"github.com/Zainab2603/AI-Newschatbot/internal/trends"
)

// emptyFeedHint is the user-facing guidance for the empty-feed case.
const emptyFeedHint = "No articles found. Try a different query or a longer time window."

// NewsProvider is what the handlers need from the news service. Empty
// region/lang mean the provider's own defaults.
type NewsProvider interface {
	FetchNewsLocalized(ctx context.Context, query string, daysBack, maxItems int, region, lang string) ([]feed.Article, error)
}

type Defaults struct {
	Query    string
	DaysBack int
	MaxItems int

	// Locales restricts which region/lang pairs requests may ask for.
	// Empty means no restriction.
	Locales []config.LocaleProfile
}

type Server struct {
	news      NewsProvider
	analyzer  sentiment.Analyzer
	extractor trends.Extractor
	defaults  Defaults
	rng       *rand.Rand
}

func New(provider NewsProvider, analyzer sentiment.Analyzer, extractor trends.Extractor, defaults Defaults) *Server {
	if defaults.Query == "" {
		defaults.Query = feed.DefaultQuery
	}
	if defaults.DaysBack < 1 {
		defaults.DaysBack = 7
	}
	if defaults.MaxItems < 1 {
		defaults.MaxItems = 15
	}
	return &Server{
		news:      provider,
		analyzer:  analyzer,
		extractor: extractor,
		defaults:  defaults,
		rng:       rand.New(rand.NewSource(rand.Int63())),
	}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/news", s.handleNews)
	mux.HandleFunc("GET /api/trends", s.handleTrends)
	mux.HandleFunc("GET /api/buzzwords", s.handleBuzzwords)
	mux.HandleFunc("GET /api/map", s.handleMap)
	mux.HandleFunc("GET /api/locales", s.handleLocales)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /metrics", s.handleMetrics)
	return mux
}

type newsResponse struct {
	Articles   []feed.Article     `json:"articles"`
	Sentiments []sentiment.Result `json:"sentiments"`
	Buzz       int                `json:"buzz"`
	Warning    string             `json:"warning,omitempty"`
	Hint       string             `json:"hint,omitempty"`
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	query, daysBack, maxItems := s.queryParams(r)
	region, lang, ok := s.localeParams(r)
	if !ok {
		writeLocaleError(w)
		return
	}

	articles, err := s.news.FetchNewsLocalized(r.Context(), query, daysBack, maxItems, region, lang)
	resp := newsResponse{Articles: trimSummaries(articles)}
	resp.Warning, resp.Hint = classifyFailure(err)

	resp.Sentiments = sentiment.AnalyzeBatch(s.analyzer, news.CombinedTexts(articles))
	resp.Buzz = trends.BuzzMeter(len(articles))

	writeJSON(w, http.StatusOK, resp)
}

type trendsResponse struct {
	Keywords  []trends.KeywordEntry `json:"keywords"`
	Buzz      int                   `json:"buzz"`
	Sentiment map[string]int        `json:"sentiment"`
	Warning   string                `json:"warning,omitempty"`
	Hint      string                `json:"hint,omitempty"`
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	query, daysBack, maxItems := s.queryParams(r)
	topK := intParam(r, "top_k", 10)
	region, lang, ok := s.localeParams(r)
	if !ok {
		writeLocaleError(w)
		return
	}

	articles, err := s.news.FetchNewsLocalized(r.Context(), query, daysBack, maxItems, region, lang)
	texts := news.CombinedTexts(articles)

	resp := trendsResponse{
		Keywords:  s.extractor.Extract(texts, topK),
		Buzz:      trends.BuzzMeter(len(articles)),
		Sentiment: labelCounts(sentiment.AnalyzeBatch(s.analyzer, texts)),
	}
	resp.Warning, resp.Hint = classifyFailure(err)

	writeJSON(w, http.StatusOK, resp)
}

// labelCounts aggregates per-article sentiments into label totals.
func labelCounts(results []sentiment.Result) map[string]int {
	counts := map[string]int{
		sentiment.LabelPositive: 0,
		sentiment.LabelNeutral:  0,
		sentiment.LabelNegative: 0,
	}
	for _, r := range results {
		counts[r.Label]++
	}
	return counts
}

func (s *Server) handleBuzzwords(w http.ResponseWriter, r *http.Request) {
	difficulty := buzzword.Difficulty(r.URL.Query().Get("difficulty"))
	if difficulty == "" {
		difficulty = buzzword.Easy
	}
	count := intParam(r, "count", 3)

	cards := buzzword.Draw(difficulty, count, s.rng)
	if cards == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "unknown difficulty; use Easy, Medium or Expert",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"difficulty": difficulty,
		"cards":      cards,
	})
}

type mapResponse struct {
	Points  []geo.Point `json:"points"`
	Warning string      `json:"warning,omitempty"`
	Hint    string      `json:"hint,omitempty"`
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	query, daysBack, maxItems := s.queryParams(r)
	region, lang, ok := s.localeParams(r)
	if !ok {
		writeLocaleError(w)
		return
	}

	articles, err := s.news.FetchNewsLocalized(r.Context(), query, daysBack, maxItems, region, lang)
	sentiments := sentiment.AnalyzeBatch(s.analyzer, news.CombinedTexts(articles))

	resp := mapResponse{Points: geo.MapPoints(articles, sentiments)}
	resp.Warning, resp.Hint = classifyFailure(err)

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLocales(w http.ResponseWriter, r *http.Request) {
	locales := s.defaults.Locales
	if locales == nil {
		locales = []config.LocaleProfile{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"locales": locales,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	code := http.StatusOK
	if healthy, ok := stats["is_healthy"].(bool); ok && !healthy {
		status = "error"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, metrics.Global.GetStats())
}

func (s *Server) queryParams(r *http.Request) (query string, daysBack, maxItems int) {
	query = r.URL.Query().Get("q")
	if query == "" {
		query = s.defaults.Query
	}
	daysBack = intParam(r, "days", s.defaults.DaysBack)
	maxItems = intParam(r, "max", s.defaults.MaxItems)
	return query, daysBack, maxItems
}

// localeParams resolves the request's region/lang pair. Omitted parts mean
// the provider's defaults; when locale profiles are configured, an explicit
// pair must match one of them.
func (s *Server) localeParams(r *http.Request) (region, lang string, ok bool) {
	region = r.URL.Query().Get("region")
	lang = r.URL.Query().Get("lang")
	if region == "" && lang == "" {
		return "", "", true
	}
	if len(s.defaults.Locales) == 0 {
		return region, lang, true
	}
	for _, p := range s.defaults.Locales {
		if (region == "" || strings.EqualFold(p.Region, region)) &&
			(lang == "" || strings.EqualFold(p.Lang, lang)) {
			return p.Region, p.Lang, true
		}
	}
	return "", "", false
}

func writeLocaleError(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": "unknown locale; see /api/locales for the configured profiles",
	})
}

// classifyFailure splits pipeline errors per the error taxonomy: empty feed
// gets user guidance, everything else a technical warning.
func classifyFailure(err error) (warning, hint string) {
	if err == nil {
		return "", ""
	}
	if errors.Is(err, feed.ErrEmptyFeed) {
		return "", emptyFeedHint
	}
	return err.Error(), ""
}

// trimSummaries shortens article summaries to card size for the dashboard.
func trimSummaries(articles []feed.Article) []feed.Article {
	out := make([]feed.Article, len(articles))
	copy(out, articles)
	for i := range out {
		out[i].Summary = trends.Summarize(out[i].Summary, trends.DefaultSummaryChars)
	}
	return out
}

func intParam(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encoding response", "error", err)
	}
}
