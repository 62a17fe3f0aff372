package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
	"github.com/anatolykoptev/go_guide/internal/engine"
	"github.com/anatolykoptev/go_guide/internal/engine/guide"
	"github.com/anatolykoptev/go_guide/internal/engine/resources"
	"github.com/anatolykoptev/go_guide/internal/engine/sources"
	"github.com/anatolykoptev/go_guide/internal/guideserver"
)

// App holds the wired collaborators. Close releases the cache.
type App struct {
	Engine     *engine.Config
	Resources  *resources.Service
	Drafter    *guide.Drafter
	Components *sources.ComponentSearch
	Cache      *engine.Cache
}

// New wires everything from cfg. Optional backends that fail to start are logged and skipped.
func New(ctx context.Context, cfg Config) (*App, error) {
	ec := &engine.Config{
		SearxngURL:            cfg.SearxngURL,
		GithubToken:           cfg.GithubToken,
		YouTubeAPIKey:         cfg.YouTubeAPIKey,
		YouTubeAPIKeyFallback: cfg.YouTubeAPIKeyFallback,
		FeedChannels:          cfg.FeedChannels,
		FetchTimeout:          cfg.FetchTimeout,
		Retry:                 engine.DefaultRetryConfig,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
		LLM: newLLM(cfg),
	}

	if cfg.DirectScraping {
		bc, err := engine.NewBrowserClient(cfg.WebshareAPIKey)
		if err != nil {
			slog.Warn("stealth client init failed", slog.Any("error", err))
		} else {
			ec.BrowserClient = bc
			slog.Info("stealth browser client initialized")
		}
	}

	rc := resources.DefaultConfig()
	if cfg.ProviderTimeout > 0 {
		rc.ProviderTimeout = cfg.ProviderTimeout
	}
	if cfg.Parallelism > 0 {
		rc.Parallelism = cfg.Parallelism
	}
	rc.ProviderRate = cfg.ProviderRate
	if cfg.TuningFile != "" {
		if err := resources.LoadTuning(cfg.TuningFile, &rc); err != nil {
			return nil, err
		}
		slog.Info("tuning loaded", slog.String("path", cfg.TuningFile))
	}

	store, err := engine.OpenStore(ctx, cfg.CacheBackend, cfg.CacheDSN)
	if err != nil {
		slog.Warn("cache store init failed, running memory-only", slog.String("backend", cfg.CacheBackend), slog.Any("error", err))
		store = nil
	}
	cache := engine.NewCache(store, cfg.CacheTTL, cfg.CacheMaxEntries, cfg.CacheCleanupInterval)

	svc := resources.NewService(rc, Providers(ec), cache)
	return &App{
		Engine:     ec,
		Resources:  svc,
		Drafter:    guide.NewDrafter(ec.LLM, svc),
		Components: sources.NewComponentSearch(ec),
		Cache:      cache,
	}, nil
}

// Providers builds the provider map for ec. Optional providers are included only when configured.
func Providers(ec *engine.Config) map[string]resources.Provider {
	providers := map[string]resources.Provider{
		resources.ProviderYouTube: sources.NewYouTube(ec),
		resources.ProviderGitHub:  sources.NewGitHub(ec),
	}
	// The optional constructors return typed nils; keep them out of the interface map.
	if w := sources.NewWeb(ec); w != nil {
		providers[resources.ProviderWeb] = w
	}
	if f := sources.NewFeeds(ec); f != nil {
		providers[resources.ProviderFeeds] = f
	}
	if s := sources.NewSuggest(ec.LLM); s != nil {
		providers[resources.ProviderSuggest] = s
	}
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	slog.Info("providers ready", slog.Any("providers", names))
	return providers
}

// ToolDeps returns the collaborators the MCP tools need.
func (a *App) ToolDeps() guideserver.Deps {
	return guideserver.Deps{
		Resources:  a.Resources,
		Drafter:    a.Drafter,
		Components: a.Components,
		Cache:      a.Cache,
	}
}

// Close releases the cache and its store.
func (a *App) Close() error {
	if err := a.Cache.Close(); err != nil {
		return fmt.Errorf("close cache: %w", err)
	}
	return nil
}

func newLLM(cfg Config) *engine.LLM {
	if cfg.LLMAPIKey == "" {
		slog.Info("llm: no API key, text generation uses fallbacks")
		return nil
	}
	client := llm.NewClient(cfg.LLMAPIBase, cfg.LLMAPIKey, cfg.LLMModel,
		llm.WithFallbackKeys(cfg.LLMAPIKeyFallbacks),
		llm.WithMaxTokens(cfg.LLMMaxTokens),
		llm.WithTemperature(cfg.LLMTemperature),
		llm.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
	)
	return engine.NewLLM(func(ctx context.Context, system, prompt string) (string, error) {
		return client.Complete(ctx, system, prompt)
	}, cfg.LLMTimeout)
}
