package metrics

import (
	"sync"
	"time"
)

// Metrics tracks pipeline counters for the /metrics and /health endpoints.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	FeedFetches    int64
	FetchRetries   int64
	FetchFailures  int64
	CacheHits      int64
	CacheMisses    int64
	ParseFallbacks int64
	EmptyFeeds     int64
	ArticlesServed int64

	// Timings
	LastFetchTime    time.Duration
	TotalFetchTime   time.Duration
	AverageFetchTime time.Duration
	FetchCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementFeedFetches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedFetches++
}

func (m *Metrics) IncrementFetchRetries() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchRetries++
}

func (m *Metrics) IncrementFetchFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchFailures++
}

func (m *Metrics) IncrementCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *Metrics) IncrementCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *Metrics) IncrementParseFallbacks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ParseFallbacks++
}

func (m *Metrics) IncrementEmptyFeeds() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmptyFeeds++
}

func (m *Metrics) AddArticlesServed(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesServed += int64(n)
}

func (m *Metrics) RecordFetchTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastFetchTime = duration
	m.TotalFetchTime += duration
	m.FetchCount++

	if m.FetchCount > 0 {
		m.AverageFetchTime = m.TotalFetchTime / time.Duration(m.FetchCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"feed_fetches":          m.FeedFetches,
		"fetch_retries":         m.FetchRetries,
		"fetch_failures":        m.FetchFailures,
		"cache_hits":            m.CacheHits,
		"cache_misses":          m.CacheMisses,
		"parse_fallbacks":       m.ParseFallbacks,
		"empty_feeds":           m.EmptyFeeds,
		"articles_served":       m.ArticlesServed,
		"last_fetch_time_ms":    m.LastFetchTime.Milliseconds(),
		"average_fetch_time_ms": m.AverageFetchTime.Milliseconds(),
		"last_run_time":         m.LastRunTime.Format(time.RFC3339),
		"last_error_time":       m.LastErrorTime.Format(time.RFC3339),
		"last_error":            m.LastError,
		"is_healthy":            m.IsHealthy,
	}
}
