package news

import (
	"context"
	"strconv"
	"time"

	"github.com/Zainab2603/AI-Newschatbot/internal/cache"
	"github.com/Zainab2603/AI-Newschatbot/internal/feed"
	"github.com/Zainab2603/AI-Newschatbot/internal/logger"
	"github.com/Zainab2603/AI-Newschatbot/internal/metrics"
)

// Fetcher is the transport the service pulls feed bodies through. Tests
// substitute a counting fake here.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Service runs the fetch-and-parse pipeline behind a TTL cache. One call
// per UI interaction; identical parameter tuples inside the TTL window are
// answered from the cache without network I/O.
type Service struct {
	fetcher Fetcher
	parser  *feed.Parser
	cache   *cache.Cache
	ttl     time.Duration

	region string
	lang   string
}

type Options struct {
	TTL    time.Duration // default 5 minutes
	Region string        // default US
	Lang   string        // default en
}

func NewService(fetcher Fetcher, c *cache.Cache, opts Options) *Service {
	if opts.TTL <= 0 {
		opts.TTL = 5 * time.Minute
	}
	if opts.Region == "" {
		opts.Region = "US"
	}
	if opts.Lang == "" {
		opts.Lang = "en"
	}
	return &Service{
		fetcher: fetcher,
		parser:  feed.NewParser(),
		cache:   c,
		ttl:     opts.TTL,
		region:  opts.Region,
		lang:    opts.Lang,
	}
}

// result is the cached pair: whichever of (articles, error) the pipeline
// produced is what every caller inside the TTL window observes.
type result struct {
	articles []feed.Article
	err      error
}

// FetchNews returns up to maxItems articles for the query using the
// service's default locale.
func (s *Service) FetchNews(ctx context.Context, query string, daysBack, maxItems int) ([]feed.Article, error) {
	return s.FetchNewsLocalized(ctx, query, daysBack, maxItems, s.region, s.lang)
}

// FetchNewsLocalized is FetchNews with an explicit region/language pair.
// Empty locale parts fall back to the service defaults, so an explicit
// default locale and an omitted one share a cache entry.
func (s *Service) FetchNewsLocalized(ctx context.Context, query string, daysBack, maxItems int, region, lang string) ([]feed.Article, error) {
	if maxItems < 1 {
		maxItems = 1
	}
	if region == "" {
		region = s.region
	}
	if lang == "" {
		lang = s.lang
	}

	key := cache.GenerateKey(query, strconv.Itoa(daysBack), strconv.Itoa(maxItems), region, lang)

	// The miss is recorded by whichever caller actually runs the compute;
	// waiters sharing the flight and later callers count as hits.
	computed := false
	v := s.cache.GetOrCompute(key, s.ttl, func() interface{} {
		computed = true
		url := feed.BuildSearchURL(query, daysBack, region, lang)
		logger.Debug("fetching feed", "url", url)

		body, err := s.fetcher.Fetch(ctx, url)
		if err != nil {
			return result{nil, err}
		}

		articles, err := s.parser.Parse(body, maxItems)
		if err != nil {
			return result{nil, err}
		}
		return result{articles, nil}
	})
	if computed {
		metrics.Global.IncrementCacheMisses()
	} else {
		metrics.Global.IncrementCacheHits()
	}

	r := v.(result)
	if r.err != nil {
		metrics.Global.SetError(r.err.Error())
		return nil, r.err
	}

	metrics.Global.AddArticlesServed(len(r.articles))
	metrics.Global.SetLastRun()
	return r.articles, nil
}

// CombinedTexts builds the analyzer input for each article: title and
// summary joined by a single separating period.
func CombinedTexts(articles []feed.Article) []string {
	texts := make([]string, len(articles))
	for i, a := range articles {
		if a.Summary == "" {
			texts[i] = a.Title
			continue
		}
		texts[i] = a.Title + ". " + a.Summary
	}
	return texts
}
