package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const newsAPIFixture = `{
  "status": "ok",
  "articles": [
    {
      "source": {"name": "Example Wire"},
      "author": "someone",
      "title": "Bitcoin climbs",
      "description": "up only",
      "url": "https://example.com/btc",
      "urlToImage": "https://img.example.com/btc.jpg",
      "publishedAt": "2024-03-11T10:00:00Z"
    },
    {
      "source": {"name": "Example Wire"},
      "title": "Broken timestamp",
      "url": "https://example.com/broken",
      "publishedAt": "yesterday-ish"
    },
    {
      "source": {"name": ""},
      "title": "",
      "url": "https://example.com/untitled",
      "publishedAt": "2024-03-11T09:00:00Z"
    }
  ]
}`

func TestFetchAPIMapsAndSkipsBadItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "bitcoin", q.Get("q"))
		assert.Equal(t, "test-key", q.Get("apiKey"))
		assert.Equal(t, "en", q.Get("language"))
		assert.Equal(t, "publishedAt", q.Get("sortBy"))
		assert.Equal(t, "10", q.Get("pageSize"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, newsAPIFixture)
	}))
	t.Cleanup(srv.Close)

	f := NewFetcher("test-key", 10, 5*time.Second, zap.NewNop())
	f.apiBase = srv.URL

	articles := f.FetchAPI(context.Background(), "bitcoin", "")

	// 坏时间戳那条被跳过，其余正常返回
	require.Len(t, articles, 2)
	assert.Equal(t, "Bitcoin climbs", articles[0].Title)
	assert.Equal(t, "Example Wire", articles[0].Source)
	assert.Equal(t, "https://img.example.com/btc.jpg", articles[0].ImageURL)
	assert.Equal(t, time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC), articles[0].PublishedAt.UTC())

	assert.Equal(t, "No title", articles[1].Title)
	assert.Equal(t, "Unknown", articles[1].Source)
}

func TestFetchAPICategoryParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "crypto", r.URL.Query().Get("category"))
		fmt.Fprint(w, `{"status":"ok","articles":[]}`)
	}))
	t.Cleanup(srv.Close)

	f := NewFetcher("test-key", 10, 5*time.Second, zap.NewNop())
	f.apiBase = srv.URL

	assert.Empty(t, f.FetchAPI(context.Background(), "crypto", "crypto"))
}

func TestFetchAPIWithoutKeySkipsRequest(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"status":"ok","articles":[]}`)
	}))
	t.Cleanup(srv.Close)

	f := NewFetcher("", 10, 5*time.Second, zap.NewNop())
	f.apiBase = srv.URL

	assert.Nil(t, f.FetchAPI(context.Background(), "bitcoin", ""))
	assert.Zero(t, calls.Load())
}

func TestFetchAPIErrorStatusIsSoft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"status":"error"}`, http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	f := NewFetcher("bad-key", 10, 5*time.Second, zap.NewNop())
	f.apiBase = srv.URL

	assert.Empty(t, f.FetchAPI(context.Background(), "bitcoin", ""))
}

func TestFetchAPIDecodeErrorIsSoft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "not json")
	}))
	t.Cleanup(srv.Close)

	f := NewFetcher("test-key", 10, 5*time.Second, zap.NewNop())
	f.apiBase = srv.URL

	assert.Empty(t, f.FetchAPI(context.Background(), "bitcoin", ""))
}
