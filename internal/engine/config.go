package engine

import (
	"net/http"
	"time"
)

// Config holds the engine collaborators shared by providers, injected from internal/app.
// It is passed explicitly to every constructor; there is no package-level copy.
type Config struct {
	SearxngURL            string
	GithubToken           string
	YouTubeAPIKey         string
	YouTubeAPIKeyFallback string
	FeedChannels          []string // YouTube channel IDs polled by the feed provider
	FetchTimeout          time.Duration
	Retry                 RetryConfig
	HTTPClient            *http.Client
	BrowserClient         *BrowserClient // nil = direct DDG scraping disabled
	LLM                   *LLM           // nil = text generation disabled
}

// HTTP returns the configured client, or http.DefaultClient when none is set.
func (c *Config) HTTP() *http.Client {
	if c == nil || c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}

// RetryPolicy returns the configured retry policy for provider, falling back to DefaultRetryConfig.
func (c *Config) RetryPolicy(provider string) RetryConfig {
	if c == nil || c.Retry.Multiplier == 0 {
		return DefaultRetryConfig.For(provider)
	}
	return c.Retry.For(provider)
}
