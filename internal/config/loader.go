package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies MOMENTA_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known MOMENTA_* environment variables and
// overwrites the corresponding Config fields when a variable is set. This
// lets operators inject secrets at deploy time without touching the TOML
// file.
func applyEnvOverrides(cfg *Config) {
	// ── Server ──
	setInt(&cfg.Server.Port, "MOMENTA_SERVER_PORT")

	// ── Delta ──
	setStr(&cfg.Delta.BaseURL, "MOMENTA_DELTA_BASE_URL")
	setStr(&cfg.Delta.SpotSymbol, "MOMENTA_DELTA_SPOT_SYMBOL")

	// ── Trade ──
	setStr(&cfg.Trade.UnderlyingAsset, "MOMENTA_TRADE_UNDERLYING_ASSET")
	setFloat64(&cfg.Trade.TargetDTE, "MOMENTA_TRADE_TARGET_DTE")
	setInt(&cfg.Trade.CandidatePoolSize, "MOMENTA_TRADE_CANDIDATE_POOL_SIZE")

	// ── Redis ──
	setBool(&cfg.Redis.Enabled, "MOMENTA_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "MOMENTA_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "MOMENTA_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "MOMENTA_REDIS_DB")
	setStr(&cfg.Redis.Channel, "MOMENTA_REDIS_CHANNEL")

	// ── Notify ──
	setStr(&cfg.Notify.TelegramToken, "MOMENTA_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "MOMENTA_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhookURL, "MOMENTA_NOTIFY_DISCORD_WEBHOOK_URL")
	setStringSlice(&cfg.Notify.Outcomes, "MOMENTA_NOTIFY_OUTCOMES")

	// ── Top-level ──
	setStr(&cfg.LogLevel, "MOMENTA_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
