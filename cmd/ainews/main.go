package main

import (
	"net/http"
	"os"

	"github.com/Zainab2603/AI-Newschatbot/internal/cache"
	"github.com/Zainab2603/AI-Newschatbot/internal/config"
	"github.com/Zainab2603/AI-Newschatbot/internal/feed"
	"github.com/Zainab2603/AI-Newschatbot/internal/logger"
	"github.com/Zainab2603/AI-Newschatbot/internal/news"
	"github.com/Zainab2603/AI-Newschatbot/internal/ratelimit"
	"github.com/Zainab2603/AI-Newschatbot/internal/sentiment"
	"github.com/Zainab2603/AI-Newschatbot/internal/server"
	"github.com/Zainab2603/AI-Newschatbot/internal/trends"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading config", "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.Debug)

	var limiter *ratelimit.Limiter
	if cfg.FeedRequestBudget > 0 {
		limiter = ratelimit.New(cfg.FeedRequestBudget, cfg.FeedBudgetWindow)
	}

	fetcher := feed.NewFetcher(feed.FetcherOptions{
		Timeout:  cfg.RequestTimeout,
		Attempts: cfg.RetryAttempts,
		Delay:    cfg.RetryDelay,
		Limiter:  limiter,
	})

	service := news.NewService(fetcher, cache.New(), news.Options{
		TTL:    cfg.CacheTTL,
		Region: cfg.Region,
		Lang:   cfg.Lang,
	})

	// Strategy selection happens once here, not per request.
	analyzer := sentiment.NewAnalyzer()
	extractor := trends.NewExtractor()
	logger.Info("analysis backends selected",
		"sentiment_model", analyzer.Available(),
		"ngram_vectorizer", extractor.Available(),
	)

	locales := cfg.Locales
	if len(locales) == 0 {
		locales = []config.LocaleProfile{{Region: cfg.Region, Lang: cfg.Lang}}
	}

	srv := server.New(service, analyzer, extractor, server.Defaults{
		Query:    cfg.DefaultQuery,
		DaysBack: cfg.DefaultDaysBack,
		MaxItems: cfg.DefaultMaxItems,
		Locales:  locales,
	})

	logger.Info("starting dashboard API", "addr", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, srv.Routes()); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
