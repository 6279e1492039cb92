package inits

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultWebhookURL      = "https://script.google.com/macros/s/AKfycbxXrQBud-llIMQPLgDqSq882kZ8DXLvDjAFFXMp7bl-JDEgdEs2jdW0RuB-9jNm8NSnPQ/exec"
	DefaultPort            = "8080"
	DefaultMaxUploadMB     = 20
	DefaultAnalyzerSide    = 1024
	WebhookTimeout         = 15 * time.Second
	DefaultAnalyzerTimeout = 60 * time.Second
)

// Config is read once at startup and handed to everything that needs it.
type Config struct {
	WebhookURL         string
	WebhookTimeout     time.Duration
	Port               string
	MaxUploadBytes     int64
	RateLimitPerMinute float64
	RateLimitLookups   []string
	AllowedHosts       []string
	AnalyzerURL        string
	AnalyzerMaxSide    uint
	AnalyzerTimeout    time.Duration
}

func LoadConfig() *Config {
	return &Config{
		WebhookURL:         envOrDefault("APPS_SCRIPT_WEBHOOK_URL", DefaultWebhookURL),
		WebhookTimeout:     WebhookTimeout,
		Port:               envOrDefault("PORT", DefaultPort),
		MaxUploadBytes:     int64(envIntOrDefault("MMO_MAX_UPLOAD_MB", DefaultMaxUploadMB)) << 20,
		RateLimitPerMinute: float64(envIntOrDefault("MMO_RATE_LIMIT_PER_MINUTE", 0)),
		RateLimitLookups:   splitList(os.Getenv("MMO_RATE_LIMIT_IP_LOOKUPS")),
		AllowedHosts:       splitList(os.Getenv("MMO_ALLOWED_HOSTS")),
		AnalyzerURL:        envOrDefault("MMO_ANALYZER_URL", ""),
		AnalyzerMaxSide:    uint(envIntOrDefault("MMO_ANALYZER_MAX_SIDE", DefaultAnalyzerSide)),
		AnalyzerTimeout:    DefaultAnalyzerTimeout,
	}
}

func envOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envIntOrDefault(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		log.Printf("[config] invalid %s=%q, using %d", key, value, fallback)
		return fallback
	}
	return parsed
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
