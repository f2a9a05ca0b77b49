package aggregator

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/dailydigest/newsagent/internal/feeds"
	"github.com/dailydigest/newsagent/internal/news"
)

// Fetcher 抽象单个数据源的抓取，便于测试替换
type Fetcher interface {
	FetchFeed(ctx context.Context, feedURL string) []news.Article
	FetchAPI(ctx context.Context, query, category string) []news.Article
}

// Aggregator 对一个分类的所有源做并发扇出，汇总、排序、去重、截断。
// 单个源失败只意味着该源本轮没有产出，不会中断其它源
type Aggregator struct {
	fetcher   Fetcher
	catalog   map[string][]string
	enableRSS bool
	enableAPI bool
	log       *zap.Logger
}

func New(fetcher Fetcher, catalog map[string][]string, enableRSS, enableAPI bool, log *zap.Logger) *Aggregator {
	return &Aggregator{
		fetcher:   fetcher,
		catalog:   catalog,
		enableRSS: enableRSS,
		enableAPI: enableAPI,
		log:       log,
	}
}

// FetchByCategory 并发抓取一个分类下的所有 RSS 源，再补一次 NewsAPI 查询，
// 按发布时间倒序截断到 maxResults
func (a *Aggregator) FetchByCategory(ctx context.Context, category string, maxResults int) []news.Article {
	var (
		mu       sync.Mutex
		articles []news.Article
	)

	if a.enableRSS {
		if urls, ok := a.catalog[category]; ok {
			var wg sync.WaitGroup
			for _, u := range urls {
				wg.Add(1)
				go func(feedURL string) {
					defer wg.Done()
					items := a.fetcher.FetchFeed(ctx, feedURL)
					if len(items) == 0 {
						return
					}
					mu.Lock()
					articles = append(articles, items...)
					mu.Unlock()
				}(u)
			}
			wg.Wait()
		}
	}

	if a.enableAPI {
		articles = append(articles, a.fetcher.FetchAPI(ctx, category, category)...)
	}

	sortByPublished(articles)
	return truncate(articles, maxResults)
}

// SearchNews 跨分类搜索。categories 为空时默认搜全部分类；
// keywords 非空时按标题+摘要做大小写不敏感的子串过滤。
// 只有请求级失败（上下文取消）才返回错误，源级失败已在下层收敛
func (a *Aggregator) SearchNews(ctx context.Context, keywords, categories []string, maxResults int) ([]news.Article, error) {
	if len(categories) == 0 {
		categories = feeds.Categories()
	}

	var all []news.Article
	for _, category := range categories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		all = append(all, a.FetchByCategory(ctx, category, maxResults)...)
	}

	if len(keywords) > 0 {
		all = filterByKeywords(all, keywords)
	}

	all = dedupeByURL(all)
	sortByPublished(all)

	result := truncate(all, maxResults)
	a.log.Info("search done",
		zap.Strings("categories", categories),
		zap.Int("keywords", len(keywords)),
		zap.Int("results", len(result)))
	return result, nil
}

func filterByKeywords(articles []news.Article, keywords []string) []news.Article {
	filtered := make([]news.Article, 0, len(articles))
	for _, article := range articles {
		text := strings.ToLower(article.Title + " " + article.Description)
		for _, kw := range keywords {
			if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
				filtered = append(filtered, article)
				break
			}
		}
	}
	return filtered
}

// dedupeByURL 以完整 URL 为键去重，保留首次出现的顺序
func dedupeByURL(articles []news.Article) []news.Article {
	seen := make(map[string]struct{}, len(articles))
	unique := make([]news.Article, 0, len(articles))
	for _, article := range articles {
		if _, ok := seen[article.URL]; ok {
			continue
		}
		seen[article.URL] = struct{}{}
		unique = append(unique, article)
	}
	return unique
}

func sortByPublished(articles []news.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
}

func truncate(articles []news.Article, max int) []news.Article {
	if max > 0 && len(articles) > max {
		return articles[:max]
	}
	return articles
}
