// Package config defines the top-level configuration for the momenta
// service and provides validation helpers.
package config

import (
	"fmt"
	"strings"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by MOMENTA_* environment
// variables.
type Config struct {
	Server   ServerConfig `toml:"server"`
	Delta    DeltaConfig  `toml:"delta"`
	Trade    TradeConfig  `toml:"trade"`
	Redis    RedisConfig  `toml:"redis"`
	Notify   NotifyConfig `toml:"notify"`
	LogLevel string       `toml:"log_level"`
}

// ServerConfig holds the HTTP server parameters.
type ServerConfig struct {
	Port int `toml:"port"`
}

// DeltaConfig holds the market-data provider endpoint. The base URL is
// injected here rather than living as a package-level constant so tests and
// alternate environments can point the client elsewhere.
type DeltaConfig struct {
	BaseURL    string `toml:"base_url"`
	SpotSymbol string `toml:"spot_symbol"`
}

// TradeConfig holds the option-selection parameters.
type TradeConfig struct {
	UnderlyingAsset   string  `toml:"underlying_asset"`
	TargetDTE         float64 `toml:"target_dte"`
	CandidatePoolSize int     `toml:"candidate_pool_size"`
}

// RedisConfig holds the optional decision-feed publisher parameters.
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Channel  string `toml:"channel"`
}

// NotifyConfig holds operator notification channels. Outcomes lists the
// decision outcomes to forward; empty forwards everything.
type NotifyConfig struct {
	TelegramToken     string   `toml:"telegram_token"`
	TelegramChatID    string   `toml:"telegram_chat_id"`
	DiscordWebhookURL string   `toml:"discord_webhook_url"`
	Outcomes          []string `toml:"outcomes"`
}

// Defaults returns the built-in configuration used when the TOML file omits
// a value.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 10000,
		},
		Delta: DeltaConfig{
			BaseURL:    "https://api.delta.exchange",
			SpotSymbol: "ETHUSD",
		},
		Trade: TradeConfig{
			UnderlyingAsset:   "ETH",
			TargetDTE:         10,
			CandidatePoolSize: 20,
		},
		Redis: RedisConfig{
			Addr:    "localhost:6379",
			Channel: "momenta:decisions",
		},
		LogLevel: "info",
	}
}

// Validate checks the configuration for values that would make the service
// misbehave at runtime.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	if strings.TrimSpace(c.Delta.BaseURL) == "" {
		return fmt.Errorf("config: delta.base_url must be set")
	}
	if strings.TrimSpace(c.Delta.SpotSymbol) == "" {
		return fmt.Errorf("config: delta.spot_symbol must be set")
	}
	if strings.TrimSpace(c.Trade.UnderlyingAsset) == "" {
		return fmt.Errorf("config: trade.underlying_asset must be set")
	}
	if c.Trade.TargetDTE <= 0 {
		return fmt.Errorf("config: trade.target_dte must be positive, got %v", c.Trade.TargetDTE)
	}
	if c.Trade.CandidatePoolSize <= 0 {
		return fmt.Errorf("config: trade.candidate_pool_size must be positive, got %d", c.Trade.CandidatePoolSize)
	}
	if c.Redis.Enabled && strings.TrimSpace(c.Redis.Addr) == "" {
		return fmt.Errorf("config: redis.addr must be set when redis is enabled")
	}
	if (c.Notify.TelegramToken == "") != (c.Notify.TelegramChatID == "") {
		return fmt.Errorf("config: notify.telegram_token and notify.telegram_chat_id must be set together")
	}
	return nil
}
