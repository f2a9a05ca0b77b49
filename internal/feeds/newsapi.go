package feeds

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/dailydigest/newsagent/internal/news"
)

const (
	newsAPIBase      = "https://newsapi.org/v2/everything"
	maxResponseBytes = 1 << 20 // 1MB
)

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
}

// FetchAPI 调用 NewsAPI 搜索文章。未配置 key 时直接返回空；
// 单条解析失败只跳过该条，不影响其余结果
func (f *Fetcher) FetchAPI(ctx context.Context, query, category string) []news.Article {
	if f.apiKey == "" {
		return nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("apiKey", f.apiKey)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(f.maxItems))
	if category != "" {
		params.Set("category", category)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.apiBase+"?"+params.Encode(), nil)
	if err != nil {
		f.log.Error("newsapi: build request failed", zap.Error(err))
		return nil
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Error("newsapi: request failed", zap.String("query", query), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.log.Error("newsapi: unexpected status", zap.Int("status", resp.StatusCode))
		return nil
	}

	var payload newsAPIResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		f.log.Error("newsapi: decode response failed", zap.Error(err))
		return nil
	}

	articles := make([]news.Article, 0, len(payload.Articles))
	for _, item := range payload.Articles {
		pub, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			f.log.Warn("newsapi: skip article with bad publishedAt",
				zap.String("url", item.URL), zap.Error(err))
			continue
		}

		title := item.Title
		if title == "" {
			title = "No title"
		}
		source := item.Source.Name
		if source == "" {
			source = "Unknown"
		}

		articles = append(articles, news.Article{
			Title:       title,
			Description: item.Description,
			URL:         item.URL,
			Source:      source,
			PublishedAt: pub,
			ImageURL:    item.URLToImage,
		})
	}

	return articles
}
