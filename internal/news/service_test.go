package news

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/Zainab2603/AI-Newschatbot/internal/cache"
	"github.com/Zainab2603/AI-Newschatbot/internal/feed"
	"github.com/Zainab2603/AI-Newschatbot/internal/metrics"
)

const testRSS = `<?xml version="1.0"?><rss><channel>
<item><title>First</title><link>https://example.com/1</link><pubDate>Mon, 25 Aug 2025 10:00:00 GMT</pubDate><source url="https://a.example">Wire A</source></item>
<item><title>No link</title><link></link></item>
<item><title>Second</title><link>https://example.com/2</link><pubDate>Mon, 25 Aug 2025 09:00:00 GMT</pubDate></item>
<item><title>Third</title><link>https://example.com/3</link></item>
</channel></rss>`

const emptyRSS = `<?xml version="1.0"?><rss><channel><title>empty</title></channel></rss>`

type fakeFetcher struct {
	mu    sync.Mutex
	calls int
	body  string
	err   error
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.body, f.err
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestService(f *fakeFetcher, now *time.Time) *Service {
	c := cache.New(cache.WithClock(func() time.Time { return *now }))
	return NewService(f, c, Options{TTL: 5 * time.Minute})
}

func TestFetchNewsFiltersAndBounds(t *testing.T) {
	now := time.Now()
	fetcher := &fakeFetcher{body: testRSS}
	svc := newTestService(fetcher, &now)

	articles, err := svc.FetchNews(context.Background(), "AI", 7, 2)
	if err != nil {
		t.Fatalf("FetchNews: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	for _, a := range articles {
		if a.Title == "" || a.Link == "" {
			t.Errorf("article missing required field: %+v", a)
		}
	}
	// skipped no-link item must not consume the cap
	if articles[1].Title != "Second" {
		t.Errorf("expected Second, got %q", articles[1].Title)
	}
}

func TestFetchNewsCachesWithinTTL(t *testing.T) {
	now := time.Now()
	fetcher := &fakeFetcher{body: testRSS}
	svc := newTestService(fetcher, &now)

	first, err := svc.FetchNews(context.Background(), "AI", 7, 10)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.FetchNews(context.Background(), "AI", 7, 10)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if fetcher.callCount() != 1 {
		t.Errorf("expected 1 network call, got %d", fetcher.callCount())
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("cached call must return value-identical results")
	}
}

func TestFetchNewsRefetchesAfterTTL(t *testing.T) {
	now := time.Now()
	fetcher := &fakeFetcher{body: testRSS}
	svc := newTestService(fetcher, &now)

	if _, err := svc.FetchNews(context.Background(), "AI", 7, 10); err != nil {
		t.Fatalf("first call: %v", err)
	}

	now = now.Add(6 * time.Minute)
	if _, err := svc.FetchNews(context.Background(), "AI", 7, 10); err != nil {
		t.Fatalf("second call: %v", err)
	}

	if fetcher.callCount() != 2 {
		t.Errorf("expected refetch after TTL, got %d calls", fetcher.callCount())
	}
}

func TestFetchNewsDistinctTuplesDistinctEntries(t *testing.T) {
	now := time.Now()
	fetcher := &fakeFetcher{body: testRSS}
	svc := newTestService(fetcher, &now)

	svc.FetchNews(context.Background(), "AI", 7, 10)
	svc.FetchNews(context.Background(), "robots", 7, 10)
	svc.FetchNews(context.Background(), "AI", 3, 10)
	svc.FetchNews(context.Background(), "AI", 7, 5)

	if fetcher.callCount() != 4 {
		t.Errorf("expected 4 network calls for 4 tuples, got %d", fetcher.callCount())
	}
}

func TestFetchNewsCachesErrors(t *testing.T) {
	now := time.Now()
	fetcher := &fakeFetcher{body: emptyRSS}
	svc := newTestService(fetcher, &now)

	_, err := svc.FetchNews(context.Background(), "AI", 7, 10)
	if !errors.Is(err, feed.ErrEmptyFeed) {
		t.Fatalf("expected ErrEmptyFeed, got %v", err)
	}

	_, err = svc.FetchNews(context.Background(), "AI", 7, 10)
	if !errors.Is(err, feed.ErrEmptyFeed) {
		t.Fatalf("expected cached ErrEmptyFeed, got %v", err)
	}
	if fetcher.callCount() != 1 {
		t.Errorf("error result must be cached too, got %d calls", fetcher.callCount())
	}
}

func TestFetchNewsPropagatesNetworkError(t *testing.T) {
	now := time.Now()
	fetcher := &fakeFetcher{err: &feed.NetworkError{URL: "u", Err: errors.New("boom")}}
	svc := newTestService(fetcher, &now)

	_, err := svc.FetchNews(context.Background(), "AI", 7, 10)
	var ne *feed.NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected *feed.NetworkError, got %v", err)
	}
}

func TestFetchNewsLocalizedDistinctLocalesDistinctEntries(t *testing.T) {
	now := time.Now()
	fetcher := &fakeFetcher{body: testRSS}
	svc := newTestService(fetcher, &now)

	svc.FetchNewsLocalized(context.Background(), "AI", 7, 10, "US", "en")
	svc.FetchNewsLocalized(context.Background(), "AI", 7, 10, "IN", "en")
	svc.FetchNewsLocalized(context.Background(), "AI", 7, 10, "GB", "en")

	if fetcher.callCount() != 3 {
		t.Errorf("expected 3 network calls for 3 locales, got %d", fetcher.callCount())
	}
}

func TestFetchNewsLocalizedEmptyLocaleSharesDefaultEntry(t *testing.T) {
	now := time.Now()
	fetcher := &fakeFetcher{body: testRSS}
	svc := newTestService(fetcher, &now) // default locale US/en

	if _, err := svc.FetchNews(context.Background(), "AI", 7, 10); err != nil {
		t.Fatalf("default call: %v", err)
	}
	if _, err := svc.FetchNewsLocalized(context.Background(), "AI", 7, 10, "US", "en"); err != nil {
		t.Fatalf("explicit call: %v", err)
	}
	if _, err := svc.FetchNewsLocalized(context.Background(), "AI", 7, 10, "", ""); err != nil {
		t.Fatalf("empty-locale call: %v", err)
	}

	if fetcher.callCount() != 1 {
		t.Errorf("default, explicit-default and empty locales must share one cache entry, got %d calls", fetcher.callCount())
	}
}

func cacheCounters(t *testing.T) (hits, misses int64) {
	t.Helper()
	stats := metrics.Global.GetStats()
	return stats["cache_hits"].(int64), stats["cache_misses"].(int64)
}

func TestFetchNewsCacheAccounting(t *testing.T) {
	now := time.Now()
	fetcher := &fakeFetcher{body: testRSS}
	svc := newTestService(fetcher, &now)

	hits0, misses0 := cacheCounters(t)

	svc.FetchNews(context.Background(), "accounting", 7, 10)
	hits1, misses1 := cacheCounters(t)
	if misses1-misses0 != 1 || hits1-hits0 != 0 {
		t.Errorf("first call: miss delta %d, hit delta %d, want 1/0", misses1-misses0, hits1-hits0)
	}

	svc.FetchNews(context.Background(), "accounting", 7, 10)
	hits2, misses2 := cacheCounters(t)
	if misses2-misses1 != 0 || hits2-hits1 != 1 {
		t.Errorf("second call: miss delta %d, hit delta %d, want 0/1", misses2-misses1, hits2-hits1)
	}
}

func TestFetchNewsConcurrentFirstCallersCountOneMiss(t *testing.T) {
	now := time.Now()
	fetcher := &fakeFetcher{body: testRSS}
	svc := newTestService(fetcher, &now)

	hits0, misses0 := cacheCounters(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.FetchNews(context.Background(), "stampede", 7, 10)
		}()
	}
	wg.Wait()

	if fetcher.callCount() != 1 {
		t.Fatalf("expected a single shared fetch, got %d", fetcher.callCount())
	}

	hits1, misses1 := cacheCounters(t)
	if misses1-misses0 != 1 {
		t.Errorf("miss delta = %d, want 1 (only the computing caller)", misses1-misses0)
	}
	if hits1-hits0 != 7 {
		t.Errorf("hit delta = %d, want 7 (waiters and later callers)", hits1-hits0)
	}
}

func TestCombinedTexts(t *testing.T) {
	articles := []feed.Article{
		{Title: "Title one", Summary: "Summary one"},
		{Title: "Bare title"},
	}
	texts := CombinedTexts(articles)
	if len(texts) != 2 {
		t.Fatalf("expected 2 texts, got %d", len(texts))
	}
	if texts[0] != "Title one. Summary one" {
		t.Errorf("texts[0] = %q", texts[0])
	}
	if texts[1] != "Bare title" {
		t.Errorf("texts[1] = %q", texts[1])
	}
}
