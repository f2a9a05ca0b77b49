package news

import "time"

// Article 是所有数据源归一化后的文章结构，URL 作为去重键
type Article struct {
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	URL            string    `json:"url"`
	Source         string    `json:"source"`
	PublishedAt    time.Time `json:"published_at"`
	ImageURL       string    `json:"image_url,omitempty"`
	Category       string    `json:"category,omitempty"`
	RelevanceScore float64   `json:"relevance_score,omitempty"`
}

// Query 直接查询接口的请求体，绕过意图识别
type Query struct {
	Keywords   []string `json:"keywords"`
	Categories []string `json:"categories"`
	MaxResults int      `json:"max_results"`
}
