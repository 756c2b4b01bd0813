package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Zainab2603/AI-Newschatbot/internal/logger"
	"github.com/Zainab2603/AI-Newschatbot/internal/metrics"
	"github.com/Zainab2603/AI-Newschatbot/internal/ratelimit"
	"github.com/Zainab2603/AI-Newschatbot/internal/retry"
)

// browserUA keeps the feed endpoint from rejecting us as a bot.
const browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/124.0.0.0 Safari/537.36"

// FetcherOptions tune the HTTP behavior. Zero values pick the defaults
// used against the live endpoint.
type FetcherOptions struct {
	Timeout  time.Duration // per-request timeout, default 10s
	Attempts int           // total attempts, default 3
	Delay    time.Duration // backoff base, default 500ms (linear: attempt * Delay)
	Limiter  *ratelimit.Limiter
}

// Fetcher performs the HTTP GET for a built feed URL with retries. All
// failures come back as *NetworkError; nothing panics across this boundary.
type Fetcher struct {
	client   *resty.Client
	attempts int
	delay    time.Duration
	limiter  *ratelimit.Limiter
}

func NewFetcher(opts FetcherOptions) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Attempts <= 0 {
		opts.Attempts = 3
	}
	if opts.Delay <= 0 {
		opts.Delay = 500 * time.Millisecond
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetHeader("User-Agent", browserUA)
	client.SetHeader("Accept", "application/rss+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.1")

	return &Fetcher{
		client:   client,
		attempts: opts.Attempts,
		delay:    opts.Delay,
		limiter:  opts.Limiter,
	}
}

// Fetch returns the raw response body for url, or a *NetworkError carrying
// the last underlying failure once all attempts are spent.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	start := time.Now()
	metrics.Global.IncrementFeedFetches()

	var body string
	cfg := retry.Config{
		MaxAttempts: f.attempts,
		Delay:       f.delay,
		Backoff:     true,
		OnRetry: func(attempt int, err error) {
			metrics.Global.IncrementFetchRetries()
			logger.Debug("retrying feed fetch", "attempt", attempt, "error", err)
		},
	}

	err := retry.WithRetry(ctx, cfg, func() error {
		if !f.limiter.Allow() {
			return fmt.Errorf("feed request budget exhausted")
		}

		resp, err := f.client.R().SetContext(ctx).Get(url)
		if err != nil {
			return err
		}
		if resp.IsError() {
			return fmt.Errorf("unexpected status %d", resp.StatusCode())
		}
		body = resp.String()
		return nil
	})
	if err != nil {
		metrics.Global.IncrementFetchFailures()
		return "", &NetworkError{URL: url, Err: err}
	}

	metrics.Global.RecordFetchTime(time.Since(start))
	return body, nil
}
