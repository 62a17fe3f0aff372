// Package app builds the shared engine, pipeline and guide collaborators from the environment.
// The MCP server and the CLI both start here.
package app

import (
	"time"

	"github.com/anatolykoptev/go-kit/env"
)

// Config is the process configuration read from environment variables.
type Config struct {
	SearxngURL            string
	GithubToken           string
	YouTubeAPIKey         string
	YouTubeAPIKeyFallback string
	FeedChannels          []string
	WebshareAPIKey        string
	DirectScraping        bool // stealth DuckDuckGo scraping when SearXNG is down

	LLMAPIKey          string
	LLMAPIKeyFallbacks []string
	LLMAPIBase         string
	LLMModel           string
	LLMTemperature     float64
	LLMMaxTokens       int
	LLMTimeout         time.Duration

	FetchTimeout    time.Duration
	ProviderTimeout time.Duration
	Parallelism     int
	ProviderRate    float64
	TuningFile      string

	CacheBackend         string // memory, redis, sqlite, postgres
	CacheDSN             string
	CacheTTL             time.Duration
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
}

// LoadConfig reads Config from the environment with production defaults.
func LoadConfig() Config {
	return Config{
		SearxngURL:            env.Str("SEARXNG_URL", ""),
		GithubToken:           env.Str("GITHUB_TOKEN", ""),
		YouTubeAPIKey:         env.Str("YOUTUBE_API_KEY", ""),
		YouTubeAPIKeyFallback: env.Str("YOUTUBE_API_KEY_FALLBACK", ""),
		FeedChannels:          env.List("FEED_CHANNELS", ""),
		WebshareAPIKey:        env.Str("WEBSHARE_API_KEY", ""),
		DirectScraping:        env.Str("DIRECT_SCRAPING", "true") == "true",

		LLMAPIKey:          env.Str("LLM_API_KEY", ""),
		LLMAPIKeyFallbacks: env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:         env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:           env.Str("LLM_MODEL", "gemini-2.5-flash"),
		LLMTemperature:     env.Float("LLM_TEMPERATURE", 0.7),
		LLMMaxTokens:       env.Int("LLM_MAX_TOKENS", 4096),
		LLMTimeout:         env.Duration("LLM_TIMEOUT", 45*time.Second),

		FetchTimeout:    env.Duration("FETCH_TIMEOUT", 10*time.Second),
		ProviderTimeout: env.Duration("PROVIDER_TIMEOUT", 8*time.Second),
		Parallelism:     env.Int("PIPELINE_PARALLELISM", 4),
		ProviderRate:    env.Float("PROVIDER_RATE", 5),
		TuningFile:      env.Str("TUNING_FILE", ""),

		CacheBackend:         env.Str("CACHE_BACKEND", "memory"),
		CacheDSN:             env.Str("CACHE_DSN", ""),
		CacheTTL:             env.Duration("CACHE_TTL", 6*time.Hour),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 5*time.Minute),
	}
}
