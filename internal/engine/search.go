package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// ErrNoWebBackend is returned when neither SearXNG nor the direct scraper is configured.
var ErrNoWebBackend = errors.New("web search: no backend configured")

// SearchSearXNG queries the SearXNG instance and returns raw results.
func SearchSearXNG(ctx context.Context, c *Config, query string, opts SearchOptions) ([]SearxngResult, error) {
	if c == nil || c.SearxngURL == "" {
		return nil, ErrNoWebBackend
	}
	u, err := url.Parse(strings.TrimRight(c.SearxngURL, "/") + "/search")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	if opts.Language != "" && opts.Language != "all" {
		q.Set("language", opts.Language)
	}
	if opts.TimeRange != "" {
		q.Set("time_range", opts.TimeRange)
	}
	if opts.Engines != "" {
		q.Set("engines", opts.Engines)
	}
	u.RawQuery = q.Encode()

	metrics.SearchRequests.Add(1)

	resp, err := RetryHTTP(ctx, c.RetryPolicy("searxng"), func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", UserAgentBot)
		return c.HTTP().Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("searxng: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Provider: "searxng"}
	}

	var data searxngResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("searxng: decode: %w", err)
	}
	for i := range data.Results {
		data.Results[i].Title = CleanHTML(data.Results[i].Title)
		data.Results[i].Content = CleanHTML(data.Results[i].Content)
	}
	return data.Results, nil
}

// SearchWeb queries SearXNG and, when a browser client is configured, DuckDuckGo and Startpage
// directly, in parallel. Results are merged in backend order and deduplicated by URL.
// Fails only when every backend fails.
func SearchWeb(ctx context.Context, c *Config, query string, opts SearchOptions) ([]SearxngResult, error) {
	type backend struct {
		name string
		run  func() ([]SearxngResult, error)
	}
	var backends []backend
	if c != nil && c.SearxngURL != "" {
		backends = append(backends, backend{"searxng", func() ([]SearxngResult, error) {
			return SearchSearXNG(ctx, c, query, opts)
		}})
	}
	if c != nil && c.BrowserClient != nil {
		backends = append(backends, backend{"ddg", func() ([]SearxngResult, error) {
			return RetryDo(ctx, c.RetryPolicy("ddg"), func() ([]SearxngResult, error) {
				return SearchDDGDirect(ctx, c.BrowserClient, query, "wt-wt")
			})
		}})
		backends = append(backends, backend{"startpage", func() ([]SearxngResult, error) {
			return SearchStartpageDirect(ctx, c.BrowserClient, query, "")
		}})
	}
	if len(backends) == 0 {
		return nil, ErrNoWebBackend
	}

	results := make([][]SearxngResult, len(backends))
	errs := make([]error, len(backends))
	var wg sync.WaitGroup
	for i, b := range backends {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = b.run()
			if errs[i] != nil {
				slog.Debug("web backend failed", slog.String("backend", b.name), slog.Any("error", errs[i]))
			}
		}()
	}
	wg.Wait()

	merged := MergeByURL(results...)
	if len(merged) == 0 {
		if err := errors.Join(errs...); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

// MergeByURL concatenates result lists, keeping the first occurrence of each URL.
func MergeByURL(lists ...[]SearxngResult) []SearxngResult {
	seen := make(map[string]bool)
	var out []SearxngResult
	for _, list := range lists {
		for _, r := range list {
			key := strings.TrimRight(r.URL, "/")
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, r)
		}
	}
	return out
}
