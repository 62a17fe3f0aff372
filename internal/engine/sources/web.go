package sources

import (
	"context"
	"errors"
	"fmt"

	"github.com/anatolykoptev/go_guide/internal/engine"
	"github.com/anatolykoptev/go_guide/internal/engine/resources"
)

// Web searches the general web index (SearXNG and direct DuckDuckGo) for canonical links.
type Web struct {
	cfg *engine.Config
}

// NewWeb returns the web provider, or nil when no web backend is configured.
func NewWeb(cfg *engine.Config) *Web {
	if cfg == nil || (cfg.SearxngURL == "" && cfg.BrowserClient == nil) {
		return nil
	}
	return &Web{cfg: cfg}
}

// Search returns every hit as a record; the parser drops links of the wrong shape.
func (w *Web) Search(ctx context.Context, st resources.Strategy) (resources.Response, error) {
	results, err := engine.SearchWeb(ctx, w.cfg, st.Query, engine.SearchOptions{})
	if err != nil {
		if errors.Is(err, engine.ErrNoWebBackend) {
			return resources.Empty{Reason: err}, nil
		}
		return nil, fmt.Errorf("web search: %w", err)
	}
	recs := make([]resources.Record, 0, len(results))
	for _, r := range results {
		recs = append(recs, resources.Record{
			Title:       r.Title,
			Description: engine.TruncateAtWord(r.Content, 300),
			URL:         r.URL,
		})
	}
	return resources.Structured{Records: recs}, nil
}
