package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	NLP        NLPConfig
	Ark        ArkConfig
	Moderation ModerationConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Port string `env:"PORT" envDefault:"8080"`
}

// Addr normalizes the configured port into a listen address. Passing ":8080"
// or "127.0.0.1:8080" directly is allowed.
func (c ServerConfig) Addr() (string, error) {
	port := strings.TrimSpace(c.Port)
	if strings.Contains(port, ":") {
		return port, nil
	}
	if port == "" || strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", c.Port)
	}
	return ":" + port, nil
}

// DatabaseConfig 描述存储相关配置。
type DatabaseConfig struct {
	URL            string        `env:"DATABASE_URL,required"`
	ExpiryInterval time.Duration `env:"ANALYSIS_EXPIRY_INTERVAL" envDefault:"1h"`
}

// NLPConfig describes the Comprehend-style HTTP classification backend.
type NLPConfig struct {
	BaseURL string        `env:"NLP_BASE_URL"`
	APIKey  string        `env:"NLP_API_KEY"`
	Timeout time.Duration `env:"NLP_TIMEOUT" envDefault:"15s"`
}

// Enabled 表示是否配置了 NLP 服务地址。
func (c NLPConfig) Enabled() bool {
	return strings.TrimSpace(c.BaseURL) != ""
}

// ArkConfig 描述大模型相关配置，作为分类后端的备选。
type ArkConfig struct {
	APIKey    string `env:"ARK_API_KEY"`
	AccessKey string `env:"ARK_ACCESS_KEY"`
	SecretKey string `env:"ARK_SECRET_KEY"`
	Model     string `env:"ARK_MODEL"`
	BaseURL   string `env:"ARK_BASE_URL" envDefault:"https://ark.cn-beijing.volces.com/api/v3"`
	Region    string `env:"ARK_REGION" envDefault:"cn-beijing"`
}

// Enabled 表示是否提供了必需的密钥。
func (c ArkConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel 使用配置创建一个模型实例。
func (c ArkConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("Ark 凭证或模型配置缺失，至少提供 ARK_API_KEY + ARK_MODEL 或 AK/SK 组合")
	}

	return ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL:   c.BaseURL,
		Region:    c.Region,
		APIKey:    c.APIKey,
		AccessKey: c.AccessKey,
		SecretKey: c.SecretKey,
		Model:     c.Model,
	})
}

// ModerationConfig allows overriding the default block-list.
type ModerationConfig struct {
	BlockList []string `env:"MODERATION_BLOCKLIST" envSeparator:","`
}
