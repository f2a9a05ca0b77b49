package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dailydigest/newsagent/internal/agent"
	"github.com/dailydigest/newsagent/internal/config"
)

type Server struct {
	agent    *agent.Agent
	searcher agent.Searcher
	cfg      *config.Config
	log      *zap.Logger
}

func NewServer(newsAgent *agent.Agent, searcher agent.Searcher, cfg *config.Config, log *zap.Logger) *Server {
	return &Server{
		agent:    newsAgent,
		searcher: searcher,
		cfg:      cfg,
		log:      log,
	}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/", s.root)
	r.GET("/health", s.health)
	r.GET("/capabilities", s.capabilities)

	v1 := r.Group("/v1")
	{
		v1.POST("/chat", s.chat)
		v1.POST("/chat/stream", s.chatStream)
		v1.POST("/query/news", s.queryNews)
		v1.GET("/categories", s.categories)
	}
}
