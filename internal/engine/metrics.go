package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	PipelineRuns          atomic.Int64
	StrategyRuns          atomic.Int64
	ProviderFailures      atomic.Int64
	ProviderTimeouts      atomic.Int64
	ProviderRetries       atomic.Int64
	CandidatesParsed      atomic.Int64
	CandidatesDropped     atomic.Int64
	FallbacksUsed         atomic.Int64
	SearchRequests        atomic.Int64
	DirectDDGRequests     atomic.Int64
	DirectStartpage       atomic.Int64
	YouTubeSearchRequests atomic.Int64
	GitHubSearchRequests  atomic.Int64
	FeedRequests          atomic.Int64
	ComponentSearches     atomic.Int64
	LLMCalls              atomic.Int64
	LLMErrors             atomic.Int64
}

var metricKeys = []string{
	"pipeline_runs", "strategy_runs",
	"provider_failures", "provider_timeouts", "provider_retries",
	"candidates_parsed", "candidates_dropped", "fallbacks_used",
	"search_requests", "direct_ddg_requests", "direct_startpage_requests",
	"youtube_search_requests", "github_search_requests", "feed_requests",
	"component_searches",
	"llm_calls", "llm_errors",
	"cache_hits", "cache_misses",
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"pipeline_runs":             metrics.PipelineRuns.Load(),
		"strategy_runs":             metrics.StrategyRuns.Load(),
		"provider_failures":         metrics.ProviderFailures.Load(),
		"provider_timeouts":         metrics.ProviderTimeouts.Load(),
		"provider_retries":          metrics.ProviderRetries.Load(),
		"candidates_parsed":         metrics.CandidatesParsed.Load(),
		"candidates_dropped":        metrics.CandidatesDropped.Load(),
		"fallbacks_used":            metrics.FallbacksUsed.Load(),
		"search_requests":           metrics.SearchRequests.Load(),
		"direct_ddg_requests":       metrics.DirectDDGRequests.Load(),
		"direct_startpage_requests": metrics.DirectStartpage.Load(),
		"youtube_search_requests":   metrics.YouTubeSearchRequests.Load(),
		"github_search_requests":    metrics.GitHubSearchRequests.Load(),
		"feed_requests":             metrics.FeedRequests.Load(),
		"component_searches":        metrics.ComponentSearches.Load(),
		"llm_calls":                 metrics.LLMCalls.Load(),
		"llm_errors":                metrics.LLMErrors.Load(),
		"cache_hits":                hits,
		"cache_misses":              misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the resources pipeline.
func IncrPipelineRun() { metrics.PipelineRuns.Add(1) }
func IncrStrategyRun() { metrics.StrategyRuns.Add(1) }
func IncrProviderFailure() { metrics.ProviderFailures.Add(1) }
func IncrProviderTimeout() { metrics.ProviderTimeouts.Add(1) }
func IncrCandidatesParsed(n int) { metrics.CandidatesParsed.Add(int64(n)) }
func IncrCandidatesDropped(n int) { metrics.CandidatesDropped.Add(int64(n)) }
func IncrFallbackUsed() { metrics.FallbacksUsed.Add(1) }

// Incrementors for sources/ sub-package.
func IncrYouTubeSearch() { metrics.YouTubeSearchRequests.Add(1) }
func IncrGitHubSearch() { metrics.GitHubSearchRequests.Add(1) }
func IncrFeedRequest() { metrics.FeedRequests.Add(1) }
func IncrComponentSearch() { metrics.ComponentSearches.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
