package aggregator

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dailydigest/newsagent/internal/news"
)

// stubFetcher 按 URL/分类返回预置结果，缺失的 key 等价于源失败
type stubFetcher struct {
	feeds map[string][]news.Article
	api   map[string][]news.Article
}

func (s *stubFetcher) FetchFeed(_ context.Context, feedURL string) []news.Article {
	return s.feeds[feedURL]
}

func (s *stubFetcher) FetchAPI(_ context.Context, _, category string) []news.Article {
	return s.api[category]
}

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func article(title, url string, age time.Duration) news.Article {
	return news.Article{
		Title:       title,
		Description: title + " description",
		URL:         url,
		Source:      "Test Wire",
		PublishedAt: testNow.Add(-age),
	}
}

func newTestAggregator(fetcher Fetcher, catalog map[string][]string, enableAPI bool) *Aggregator {
	return New(fetcher, catalog, true, enableAPI, zap.NewNop())
}

func TestFetchByCategoryMergesAndSorts(t *testing.T) {
	fetcher := &stubFetcher{feeds: map[string][]news.Article{
		"feed-1": {article("old", "https://example.com/old", 48*time.Hour)},
		"feed-2": {
			article("newest", "https://example.com/newest", time.Minute),
			article("middle", "https://example.com/middle", 2*time.Hour),
		},
	}}
	agg := newTestAggregator(fetcher, map[string][]string{"technology": {"feed-1", "feed-2"}}, false)

	got := agg.FetchByCategory(context.Background(), "technology", 10)

	require.Len(t, got, 3)
	assert.Equal(t, "newest", got[0].Title)
	assert.Equal(t, "middle", got[1].Title)
	assert.Equal(t, "old", got[2].Title)
}

func TestFetchByCategoryTruncates(t *testing.T) {
	fetcher := &stubFetcher{feeds: map[string][]news.Article{
		"feed-1": {
			article("a", "https://example.com/a", time.Hour),
			article("b", "https://example.com/b", 2*time.Hour),
			article("c", "https://example.com/c", 3*time.Hour),
		},
	}}
	agg := newTestAggregator(fetcher, map[string][]string{"technology": {"feed-1"}}, false)

	got := agg.FetchByCategory(context.Background(), "technology", 2)
	assert.Len(t, got, 2)
}

func TestFetchByCategoryPartialFailure(t *testing.T) {
	// 三个源里两个失败，剩下一个的结果照常返回
	fetcher := &stubFetcher{feeds: map[string][]news.Article{
		"feed-ok": {article("survivor", "https://example.com/survivor", time.Hour)},
	}}
	agg := newTestAggregator(fetcher,
		map[string][]string{"crypto": {"feed-down-1", "feed-ok", "feed-down-2"}}, false)

	got := agg.FetchByCategory(context.Background(), "crypto", 10)

	require.Len(t, got, 1)
	assert.Equal(t, "survivor", got[0].Title)
}

func TestFetchByCategoryUnknownCategory(t *testing.T) {
	agg := newTestAggregator(&stubFetcher{}, map[string][]string{}, false)
	got := agg.FetchByCategory(context.Background(), "sports", 10)
	assert.Empty(t, got)
}

func TestFetchByCategoryIncludesAPIResults(t *testing.T) {
	fetcher := &stubFetcher{
		feeds: map[string][]news.Article{
			"feed-1": {article("rss", "https://example.com/rss", 2*time.Hour)},
		},
		api: map[string][]news.Article{
			"technology": {article("api", "https://example.com/api", time.Hour)},
		},
	}
	agg := newTestAggregator(fetcher, map[string][]string{"technology": {"feed-1"}}, true)

	got := agg.FetchByCategory(context.Background(), "technology", 10)

	require.Len(t, got, 2)
	assert.Equal(t, "api", got[0].Title)
}

func TestSearchNewsKeywordFilterAndLimit(t *testing.T) {
	fetcher := &stubFetcher{feeds: map[string][]news.Article{
		"feed-1": {
			article("Bitcoin rallies", "https://example.com/1", 1*time.Hour),
			article("Ethereum upgrade ships", "https://example.com/2", 2*time.Hour),
			article("Dogecoin memes", "https://example.com/3", 3*time.Hour),
			article("Bitcoin ETF inflows", "https://example.com/4", 4*time.Hour),
			article("Ethereum gas fees drop", "https://example.com/5", 5*time.Hour),
		},
	}}
	agg := newTestAggregator(fetcher, map[string][]string{"crypto": {"feed-1"}}, false)

	got, err := agg.SearchNews(context.Background(), []string{"bitcoin", "ethereum"}, []string{"crypto"}, 3)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(got), 3)
	for _, a := range got {
		text := strings.ToLower(a.Title + " " + a.Description)
		matched := strings.Contains(text, "bitcoin") || strings.Contains(text, "ethereum")
		assert.True(t, matched, "article %q should match a keyword", a.Title)
	}
}

func TestSearchNewsNoFilterWithoutKeywords(t *testing.T) {
	fetcher := &stubFetcher{feeds: map[string][]news.Article{
		"feed-1": {
			article("anything", "https://example.com/1", time.Hour),
			article("goes", "https://example.com/2", 2*time.Hour),
		},
	}}
	agg := newTestAggregator(fetcher, map[string][]string{"general": {"feed-1"}}, false)

	got, err := agg.SearchNews(context.Background(), nil, []string{"general"}, 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSearchNewsDedupesAcrossCategories(t *testing.T) {
	shared := article("shared story", "https://example.com/shared", time.Hour)
	fetcher := &stubFetcher{feeds: map[string][]news.Article{
		"feed-tech":   {shared, article("tech only", "https://example.com/tech", 2*time.Hour)},
		"feed-crypto": {shared},
	}}
	agg := newTestAggregator(fetcher, map[string][]string{
		"technology": {"feed-tech"},
		"crypto":     {"feed-crypto"},
	}, false)

	got, err := agg.SearchNews(context.Background(), nil, []string{"technology", "crypto"}, 10)
	require.NoError(t, err)

	require.Len(t, got, 2)
	seen := make(map[string]struct{})
	for _, a := range got {
		_, dup := seen[a.URL]
		assert.False(t, dup, "duplicate url %s", a.URL)
		seen[a.URL] = struct{}{}
	}
}

func TestSearchNewsSortedDescending(t *testing.T) {
	fetcher := &stubFetcher{feeds: map[string][]news.Article{
		"feed-1": {
			article("c", "https://example.com/c", 3*time.Hour),
			article("a", "https://example.com/a", 1*time.Hour),
			article("b", "https://example.com/b", 2*time.Hour),
		},
	}}
	agg := newTestAggregator(fetcher, map[string][]string{"general": {"feed-1"}}, false)

	got, err := agg.SearchNews(context.Background(), nil, []string{"general"}, 10)
	require.NoError(t, err)

	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].PublishedAt.After(got[i-1].PublishedAt),
			"articles must be sorted newest first")
	}
}

func TestSearchNewsEmptyResultIsNotAnError(t *testing.T) {
	agg := newTestAggregator(&stubFetcher{}, map[string][]string{}, false)

	got, err := agg.SearchNews(context.Background(), []string{"nomatch"}, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchNewsDefaultCategories(t *testing.T) {
	fetcher := &stubFetcher{feeds: map[string][]news.Article{
		"feed-general": {article("world", "https://example.com/world", time.Hour)},
	}}
	agg := newTestAggregator(fetcher, map[string][]string{"general": {"feed-general"}}, false)

	// categories 为空时默认搜全部已知分类，general 的结果应该在内
	got, err := agg.SearchNews(context.Background(), nil, nil, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "world", got[0].Title)
}

func TestSearchNewsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	agg := newTestAggregator(&stubFetcher{}, map[string][]string{}, false)
	_, err := agg.SearchNews(ctx, nil, []string{"general"}, 10)
	assert.ErrorIs(t, err, context.Canceled)
}
