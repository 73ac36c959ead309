package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port     int
	LogLevel string

	StoreDriver string
	StorePath   string
	DatabaseURL string

	AgentProvider   string
	AgentTimeout    time.Duration
	AnthropicAPIKey string
	AnthropicModel  string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OpenAIModel     string
	GeminiAPIKey    string
	GeminiModel     string

	NatsURL      string
	NatsToken    string
	SlackToken   string
	SlackChannel string

	MinCompletedForSummary int
	AutoSummary            bool
}

func Load() Config {
	return Config{
		Port:     envInt("CHECKIN_PORT", 8760),
		LogLevel: envStr("LOG_LEVEL", "info"),

		StoreDriver: envStr("STORE_DRIVER", "file"),
		StorePath:   envStr("STORE_PATH", "~/.checkin/interviews.json"),
		DatabaseURL: envStr("DATABASE_URL", ""),

		AgentProvider:   envStr("AGENT_PROVIDER", ""),
		AgentTimeout:    envDuration("AGENT_TIMEOUT", 30*time.Second),
		AnthropicAPIKey: envStr("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  envStr("CHECKIN_MODEL", "claude-sonnet-4-20250514"),
		OpenAIAPIKey:    envStr("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   envStr("OPENAI_BASE_URL", ""),
		OpenAIModel:     envStr("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiAPIKey:    envStr("GEMINI_API_KEY", ""),
		GeminiModel:     envStr("GEMINI_MODEL", "gemini-1.5-flash"),

		NatsURL:      envStr("NATS_URL", ""),
		NatsToken:    envStr("NATS_TOKEN", ""),
		SlackToken:   envStr("SLACK_BOT_TOKEN", ""),
		SlackChannel: envStr("SLACK_SUMMARY_CHANNEL", ""),

		MinCompletedForSummary: envInt("MIN_COMPLETED_FOR_SUMMARY", 2),
		AutoSummary:            envBool("AUTO_SUMMARY", false),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
