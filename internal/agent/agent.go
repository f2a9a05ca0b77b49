package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dailydigest/newsagent/internal/news"
)

const noResultsMessage = "I couldn't find any recent news matching your request. " +
	"Try different keywords or categories."

// Searcher 是 agent 依赖的唯一下游：跨分类新闻搜索
type Searcher interface {
	SearchNews(ctx context.Context, keywords, categories []string, maxResults int) ([]news.Article, error)
}

// Agent 驱动一次请求走完固定的分阶段事件序列：
// thinking → searching → [analyzing → content* → data] → complete，
// 失败时用 error 替换 complete，两者必居其一且只出现一次
type Agent struct {
	searcher   Searcher
	caps       Capabilities
	maxResults int
	log        *zap.Logger

	// 事件之间的节奏延迟，纯粹为了前端渐进展示，测试里置零
	thinkDelay   time.Duration
	articleDelay time.Duration
}

func New(searcher Searcher, caps Capabilities, maxResults int, log *zap.Logger) *Agent {
	if maxResults <= 0 {
		maxResults = 10
	}
	return &Agent{
		searcher:     searcher,
		caps:         caps,
		maxResults:   maxResults,
		log:          log,
		thinkDelay:   300 * time.Millisecond,
		articleDelay: 100 * time.Millisecond,
	}
}

func (a *Agent) Capabilities() Capabilities {
	return a.caps
}

// ProcessStream 启动一次流式处理，事件按固定顺序写入返回的 channel，
// channel 关闭即流结束。上下文取消后停止发送，不保证补发终止帧
func (a *Agent) ProcessStream(ctx context.Context, req Request) <-chan Response {
	out := make(chan Response)
	go func() {
		defer close(out)
		a.run(ctx, req, out)
	}()
	return out
}

func (a *Agent) run(ctx context.Context, req Request, out chan<- Response) {
	emit := func(r Response) bool {
		r.Timestamp = time.Now().UTC()
		select {
		case out <- r:
			return true
		case <-ctx.Done():
			return false
		}
	}

	if !emit(thinkingEvent("thinking", "Analyzing your request and identifying news topics...")) {
		return
	}
	if !a.pause(ctx, a.thinkDelay) {
		return
	}

	intent := ExtractIntent(req.Message, a.maxResults)
	a.log.Info("extracted intent",
		zap.Strings("keywords", intent.Keywords),
		zap.Strings("categories", intent.Categories))

	searching := "Searching for news about: " + strings.Join(intent.Categories, ", ")
	if len(intent.Keywords) > 0 {
		searching += " (keywords: " + strings.Join(intent.Keywords, ", ") + ")"
	}
	if !emit(thinkingEvent("searching", searching)) {
		return
	}

	articles, err := a.searcher.SearchNews(ctx, intent.Keywords, intent.Categories, intent.MaxResults)
	if err != nil {
		a.log.Error("search news failed", zap.Error(err))
		emit(Response{Type: TypeError, Content: "An error occurred: " + err.Error()})
		return
	}

	if len(articles) == 0 {
		if !emit(Response{Type: TypeContent, Content: noResultsMessage}) {
			return
		}
		emit(Response{Type: TypeComplete})
		return
	}

	analyzing := fmt.Sprintf("Found %d articles. Analyzing relevance and preparing summary...", len(articles))
	if !emit(thinkingEvent("analyzing", analyzing)) {
		return
	}
	if !a.pause(ctx, a.thinkDelay) {
		return
	}

	intro := fmt.Sprintf("📰 Found **%d** recent articles:\n\n", len(articles))
	if !emit(Response{Type: TypeContent, Content: intro}) {
		return
	}

	now := time.Now()
	for i, article := range articles {
		text := fmt.Sprintf("**%d.** %s\n", i+1, FormatArticleSummary(article, now))
		if !emit(Response{Type: TypeContent, Content: text}) {
			return
		}
		if !a.pause(ctx, a.articleDelay) {
			return
		}
	}

	data := &ResultData{
		Articles:     articles,
		Categories:   intent.Categories,
		TotalResults: len(articles),
	}
	if !emit(Response{Type: TypeData, Data: data}) {
		return
	}

	emit(Response{Type: TypeComplete})
}

// Process 非流式兜底路径，复用同样的意图识别、搜索与格式化逻辑
func (a *Agent) Process(ctx context.Context, req Request) (string, error) {
	intent := ExtractIntent(req.Message, a.maxResults)

	articles, err := a.searcher.SearchNews(ctx, intent.Keywords, intent.Categories, intent.MaxResults)
	if err != nil {
		return "", err
	}
	if len(articles) == 0 {
		return "I couldn't find any recent news matching your request.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📰 Found **%d** recent articles:\n\n", len(articles))
	now := time.Now()
	for i, article := range articles {
		fmt.Fprintf(&b, "**%d.** %s\n", i+1, FormatArticleSummary(article, now))
	}
	return b.String(), nil
}

func (a *Agent) pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	select {
	case <-time.After(d):
		return true
	case <-ctx.Done():
		return false
	}
}

func thinkingEvent(kind, content string) Response {
	return Response{
		Type: TypeThinking,
		Thinking: &Thinking{
			Type:      kind,
			Content:   content,
			Timestamp: time.Now().UTC(),
		},
	}
}
