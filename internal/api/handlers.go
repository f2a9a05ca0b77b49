package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dailydigest/newsagent/internal/agent"
	"github.com/dailydigest/newsagent/internal/feeds"
	"github.com/dailydigest/newsagent/internal/news"
)

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        s.cfg.Agent.Name,
		"description": s.cfg.Agent.Description,
		"version":     s.cfg.Agent.Version,
		"status":      "running",
		"endpoints": gin.H{
			"capabilities": "/capabilities",
			"chat":         "/v1/chat (POST)",
			"chat_stream":  "/v1/chat/stream (POST)",
			"health":       "/health",
		},
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"agent":     s.cfg.Agent.Name,
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) capabilities(c *gin.Context) {
	c.JSON(http.StatusOK, s.agent.Capabilities())
}

// chat 非流式兜底接口，一次性返回拼好的文本
func (s *Server) chat(c *gin.Context) {
	var req agent.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "invalid_request",
			"message": err.Error(),
		})
		return
	}
	s.respondChat(c, req)
}

func (s *Server) respondChat(c *gin.Context, req agent.Request) {
	message, err := s.agent.Process(c.Request.Context(), req)
	if err != nil {
		s.log.Error("chat request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   message,
		"agent":     s.cfg.Agent.Name,
		"streaming": false,
	})
}

// chatStream 以 SSE 推送分阶段事件，每帧一个 JSON 对象，
// complete/error 必是最后一帧
func (s *Server) chatStream(c *gin.Context) {
	var req agent.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "invalid_request",
			"message": err.Error(),
		})
		return
	}

	if !req.Streaming() {
		s.respondChat(c, req)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	events := s.agent.ProcessStream(c.Request.Context(), req)
	c.Stream(func(w io.Writer) bool {
		event, ok := <-events
		if !ok {
			return false
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.log.Error("marshal stream event failed", zap.Error(err))
			return false
		}
		fmt.Fprintf(w, "data: %s\n\n", payload)
		return true
	})
}

// queryNews 直接查询接口，不走意图识别
func (s *Server) queryNews(c *gin.Context) {
	var query news.Query
	if err := c.ShouldBindJSON(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "invalid_request",
			"message": err.Error(),
		})
		return
	}

	if query.MaxResults <= 0 {
		query.MaxResults = 10
	}
	if len(query.Categories) == 0 {
		query.Categories = []string{"general"}
	}

	articles, err := s.searcher.SearchNews(c.Request.Context(), query.Keywords, query.Categories, query.MaxResults)
	if err != nil {
		s.log.Error("query news failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles":   articles,
		"total":      len(articles),
		"keywords":   query.Keywords,
		"categories": query.Categories,
	})
}

func (s *Server) categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories":  feeds.Categories(),
		"description": "Available news categories for filtering",
	})
}
