package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/dailydigest/newsagent/internal/news"
)

// descriptionLimit 展示时摘要截断长度
const descriptionLimit = 200

// FormatArticleSummary 把一篇文章渲染成展示用的 markdown 块
func FormatArticleSummary(article news.Article, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n", article.Title)
	fmt.Fprintf(&b, "*%s* • %s\n", article.Source, TimeAgo(article.PublishedAt, now))
	if article.Description != "" {
		fmt.Fprintf(&b, "%s...\n", truncateRunes(article.Description, descriptionLimit))
	}
	fmt.Fprintf(&b, "🔗 [Read more](%s)\n", article.URL)
	return b.String()
}

// TimeAgo 把发布时间渲染成相对时间：天 → 小时 → 分钟 → just now
func TimeAgo(published, now time.Time) string {
	delta := now.Sub(published)
	switch {
	case delta >= 24*time.Hour:
		return plural(int(delta.Hours())/24, "day")
	case delta >= time.Hour:
		return plural(int(delta.Hours()), "hour")
	case delta >= time.Minute:
		return plural(int(delta.Minutes()), "minute")
	default:
		return "just now"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
