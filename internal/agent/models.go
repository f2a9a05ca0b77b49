package agent

import (
	"time"

	"github.com/dailydigest/newsagent/internal/news"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ConversationContext 其它 agent 透传过来的上下文，核心逻辑不消费
type ConversationContext struct {
	AgentID  string         `json:"agent_id"`
	Messages []Message      `json:"messages"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type Request struct {
	Message             string                `json:"message" binding:"required"`
	ConversationHistory []Message             `json:"conversation_history,omitempty"`
	Context             []ConversationContext `json:"context,omitempty"`
	Stream              *bool                 `json:"stream,omitempty"`
	Parameters          map[string]any        `json:"parameters,omitempty"`
}

// Streaming 未显式指定时默认走流式
func (r Request) Streaming() bool {
	return r.Stream == nil || *r.Stream
}

type ResponseType string

const (
	TypeThinking ResponseType = "thinking"
	TypeContent  ResponseType = "content"
	TypeData     ResponseType = "data"
	TypeComplete ResponseType = "complete"
	TypeError    ResponseType = "error"
)

// Thinking 进度事件的载荷，type 取 thinking/searching/analyzing/summarizing
type Thinking struct {
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ResultData data 事件的结构化载荷
type ResultData struct {
	Articles     []news.Article `json:"articles"`
	Categories   []string       `json:"categories"`
	TotalResults int            `json:"total_results"`
}

// Response 流式响应的单个事件，complete/error 必为最后一帧
type Response struct {
	Type      ResponseType `json:"type"`
	Content   string       `json:"content,omitempty"`
	Data      *ResultData  `json:"data,omitempty"`
	Thinking  *Thinking    `json:"thinking,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

type Capabilities struct {
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Version            string   `json:"version"`
	Capabilities       []string `json:"capabilities"`
	SupportedLanguages []string `json:"supported_languages"`
	MaxContextLength   int      `json:"max_context_length"`
	StreamingSupported bool     `json:"streaming_supported"`
}

func NewCapabilities(name, description, version string) Capabilities {
	return Capabilities{
		Name:        name,
		Description: description,
		Version:     version,
		Capabilities: []string{
			"news_aggregation",
			"multi_source_search",
			"category_filtering",
			"real_time_updates",
			"context_aware_analysis",
		},
		SupportedLanguages: []string{"en", "ru"},
		MaxContextLength:   8000,
		StreamingSupported: true,
	}
}
