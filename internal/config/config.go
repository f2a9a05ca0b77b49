package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Agent   AgentConfig   `mapstructure:"agent"`
	News    NewsConfig    `mapstructure:"news"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type AgentConfig struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Version     string `mapstructure:"version"`
}

type NewsConfig struct {
	APIKey        string `mapstructure:"api_key"`
	MaxItems      int    `mapstructure:"max_items"`
	EnableRSS     bool   `mapstructure:"enable_rss"`
	EnableNewsAPI bool   `mapstructure:"enable_news_api"`
	FetchTimeout  int    `mapstructure:"fetch_timeout"` // seconds
}

func (n NewsConfig) Timeout() time.Duration {
	return time.Duration(n.FetchTimeout) * time.Second
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 读取可选的 config.yaml，环境变量可覆盖任意配置项
// （SERVER_PORT、NEWS_API_KEY 这类下划线风格）
func Load() (*Config, error) {
	// .env 不存在时静默忽略，沿用系统环境变量
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.News.APIKey == "" {
		cfg.News.APIKey = os.Getenv("NEWS_API_KEY")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "release")

	v.SetDefault("agent.name", "Daily Digest")
	v.SetDefault("agent.description", "AI-powered news aggregator and analyzer")
	v.SetDefault("agent.version", "1.0.0")

	v.SetDefault("news.api_key", "")
	v.SetDefault("news.max_items", 10)
	v.SetDefault("news.enable_rss", true)
	v.SetDefault("news.enable_news_api", true)
	v.SetDefault("news.fetch_timeout", 30)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
