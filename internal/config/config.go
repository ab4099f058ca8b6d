// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates configuration for the whole service.
type Config struct {
	Server   ServerConfig
	Provider ProviderConfig
	Chat     ChatConfig
	Session  SessionConfig
}

// Load reads every config section from the environment. It returns an
// error for missing credentials or unparseable values, so a
// misconfigured process fails at startup rather than per-request.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	prov, err := loadProviderConfig()
	if err != nil {
		return nil, err
	}

	chat, err := loadChatConfig()
	if err != nil {
		return nil, err
	}

	session, err := loadSessionConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Provider: prov, Chat: chat, Session: session}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr      string
	StaticDir string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	addr := port
	if !strings.Contains(port, ":") {
		if strings.Contains(port, " ") {
			return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
		}
		addr = ":" + port
	}

	return ServerConfig{
		Addr:      addr,
		StaticDir: getEnvOrDefault("STATIC_DIR", "web/static"),
	}, nil
}

// ProviderConfig describes the completion provider connection and
// generation parameters.
type ProviderConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

func loadProviderConfig() (ProviderConfig, error) {
	apiKey := strings.TrimSpace(os.Getenv("PROVIDER_API_KEY"))
	if apiKey == "" {
		return ProviderConfig{}, fmt.Errorf("PROVIDER_API_KEY is required")
	}

	maxTokens, err := parseIntEnv("PROVIDER_MAX_TOKENS", 512)
	if err != nil {
		return ProviderConfig{}, err
	}

	temperature, err := parseFloatEnv("PROVIDER_TEMPERATURE", 0.7)
	if err != nil {
		return ProviderConfig{}, err
	}

	timeout, err := parseDurationEnv("PROVIDER_TIMEOUT", 30*time.Second)
	if err != nil {
		return ProviderConfig{}, err
	}

	return ProviderConfig{
		BaseURL:     getEnvOrDefault("PROVIDER_BASE_URL", "https://api.hustlesynth.space/v1"),
		APIKey:      apiKey,
		Model:       getEnvOrDefault("PROVIDER_MODEL", "gpt-4o-mini"),
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Timeout:     timeout,
	}, nil
}

// ChatConfig describes context-window assembly.
type ChatConfig struct {
	SystemPrompt  string
	HistoryWindow int
}

const defaultSystemPrompt = "You are HustleSynth AI, a friendly productivity assistant. " +
	"Keep replies concise, practical, and encouraging."

func loadChatConfig() (ChatConfig, error) {
	window, err := parseIntEnv("HISTORY_WINDOW", 10)
	if err != nil {
		return ChatConfig{}, err
	}
	if window < 0 {
		return ChatConfig{}, fmt.Errorf("HISTORY_WINDOW must not be negative")
	}

	return ChatConfig{
		SystemPrompt:  getEnvOrDefault("SYSTEM_PROMPT", defaultSystemPrompt),
		HistoryWindow: window,
	}, nil
}

// SessionConfig describes session expiry.
type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

func loadSessionConfig() (SessionConfig, error) {
	ttl, err := parseDurationEnv("SESSION_TTL", 30*time.Minute)
	if err != nil {
		return SessionConfig{}, err
	}

	interval, err := parseDurationEnv("REAPER_INTERVAL", time.Minute)
	if err != nil {
		return SessionConfig{}, err
	}

	return SessionConfig{TTL: ttl, SweepInterval: interval}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseFloatEnv(key string, defaultValue float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}
