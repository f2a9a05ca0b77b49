package feeds

import (
	"context"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/dailydigest/newsagent/internal/news"
)

const (
	// userAgent 伪装成普通浏览器，部分站点会拒绝默认 Go UA
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	defaultTimeout = 30 * time.Second
)

// Fetcher 负责把一个 RSS 源或 NewsAPI 查询转成归一化的文章列表。
// 所有网络/解析错误在此处收敛：记日志并返回空列表，绝不向上抛
type Fetcher struct {
	client   *http.Client
	parser   *gofeed.Parser
	apiKey   string
	apiBase  string
	maxItems int
	log      *zap.Logger
}

func NewFetcher(apiKey string, maxItems int, timeout time.Duration, log *zap.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if maxItems <= 0 {
		maxItems = 10
	}

	client := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return nil // 跟随所有重定向
		},
	}

	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = userAgent

	return &Fetcher{
		client:   client,
		parser:   parser,
		apiKey:   apiKey,
		apiBase:  newsAPIBase,
		maxItems: maxItems,
		log:      log,
	}
}

// FetchFeed 抓取并解析一个 RSS/Atom 源，失败时返回空列表
func (f *Fetcher) FetchFeed(ctx context.Context, feedURL string) []news.Article {
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		f.log.Error("fetch rss feed failed", zap.String("url", feedURL), zap.Error(err))
		return nil
	}

	source := feed.Title
	if source == "" {
		source = "Unknown"
	}

	items := feed.Items
	if len(items) > f.maxItems {
		items = items[:f.maxItems]
	}

	now := time.Now()
	articles := make([]news.Article, 0, len(items))
	for _, item := range items {
		title := item.Title
		if title == "" {
			title = "No title"
		}

		// 发布时间解析失败时退回抓取时间
		pub := now
		if item.PublishedParsed != nil {
			pub = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			pub = *item.UpdatedParsed
		}

		desc := item.Description
		if desc == "" {
			desc = item.Content
		}

		articles = append(articles, news.Article{
			Title:       title,
			Description: desc,
			URL:         item.Link,
			Source:      source,
			PublishedAt: pub,
			ImageURL:    imageURL(item),
		})
	}

	return articles
}
