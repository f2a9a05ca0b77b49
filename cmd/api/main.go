package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dailydigest/newsagent/internal/agent"
	"github.com/dailydigest/newsagent/internal/aggregator"
	"github.com/dailydigest/newsagent/internal/api"
	"github.com/dailydigest/newsagent/internal/config"
	"github.com/dailydigest/newsagent/internal/feeds"
	"github.com/dailydigest/newsagent/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	zl := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zl.Sync()

	fetcher := feeds.NewFetcher(cfg.News.APIKey, cfg.News.MaxItems, cfg.News.Timeout(), zl)
	agg := aggregator.New(fetcher, feeds.Catalog, cfg.News.EnableRSS, cfg.News.EnableNewsAPI, zl)

	caps := agent.NewCapabilities(cfg.Agent.Name, cfg.Agent.Description, cfg.Agent.Version)
	newsAgent := agent.New(agg, caps, cfg.News.MaxItems, zl)

	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), api.RequestID(), api.CORS())

	server := api.NewServer(newsAgent, agg, cfg, zl)
	server.RegisterRoutes(r)

	addr := cfg.Server.Addr()
	zl.Info("starting api server",
		zap.String("addr", addr),
		zap.String("agent", cfg.Agent.Name))
	if err := r.Run(addr); err != nil {
		zl.Fatal("server exit", zap.Error(err))
	}
}
