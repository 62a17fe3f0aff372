package sources

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/anatolykoptev/go_guide/internal/engine"
)

const (
	maxComponents       = 5
	componentSnippetLen = 200
	componentResults    = 3
)

var componentStores = []string{"aliexpress.com", "amazon.com", "adafruit.com", "sparkfun.com", "digikey.com", "mouser.com"}

// ComponentLink is the purchase and datasheet summary for one guide component.
type ComponentLink struct {
	Name     string   `json:"name"`
	Summary  string   `json:"summary"`
	Links    []string `json:"links,omitempty"`
	Fallback bool     `json:"fallback,omitempty"`
}

// ComponentSearch looks up where to buy guide components through the web index.
type ComponentSearch struct {
	cfg *engine.Config
}

// NewComponentSearch returns a ComponentSearch. Without a web backend every lookup
// returns the supplier fallback text.
func NewComponentSearch(cfg *engine.Config) *ComponentSearch {
	return &ComponentSearch{cfg: cfg}
}

// Links searches the first five non-empty component names concurrently, keeping input order.
func (cs *ComponentSearch) Links(ctx context.Context, names []string) []ComponentLink {
	var picked []string
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			picked = append(picked, n)
		}
		if len(picked) == maxComponents {
			break
		}
	}

	out := make([]ComponentLink, len(picked))
	var wg sync.WaitGroup
	for i, name := range picked {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out[i] = cs.lookup(ctx, name)
		}()
	}
	wg.Wait()
	return out
}

func (cs *ComponentSearch) lookup(ctx context.Context, name string) ComponentLink {
	engine.IncrComponentSearch()
	results, err := engine.SearchWeb(ctx, cs.cfg, componentQuery(name), engine.SearchOptions{})
	if err != nil || len(results) == 0 {
		if err != nil {
			slog.Debug("components: search failed", slog.String("component", name), slog.Any("error", err))
		}
		return ComponentLink{Name: name, Summary: supplierFallback(name), Fallback: true}
	}

	cl := ComponentLink{Name: name}
	var parts []string
	for _, r := range results {
		if len(cl.Links) == componentResults {
			break
		}
		cl.Links = append(cl.Links, r.URL)
		if r.Content != "" {
			parts = append(parts, engine.HTMLToMarkdown(r.Content))
		} else if r.Title != "" {
			parts = append(parts, r.Title)
		}
	}
	cl.Summary = engine.TruncateAtWord(engine.NormalizeSpace(strings.Join(parts, " ")), componentSnippetLen)
	if cl.Summary == "" {
		cl.Summary = supplierFallback(name)
	}
	return cl
}

func componentQuery(name string) string {
	sites := make([]string, len(componentStores))
	for i, s := range componentStores {
		sites[i] = "site:" + s
	}
	return fmt.Sprintf("%s specs price datasheet %s", name, strings.Join(sites, " OR "))
}

func supplierFallback(name string) string {
	return fmt.Sprintf("Search online stores like Amazon, Adafruit, SparkFun or local electronics suppliers for %s.", name)
}
