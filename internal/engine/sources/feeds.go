package sources

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_guide/internal/engine"
	"github.com/anatolykoptev/go_guide/internal/engine/resources"
	"github.com/mmcdole/gofeed"
)

const ytFeedBase = "https://www.youtube.com/feeds/videos.xml?channel_id="

// Feeds pulls the Atom feeds of configured YouTube channels and keeps uploads matching
// the query. Feeds are not searchable, so matching happens locally.
type Feeds struct {
	cfg      *engine.Config
	channels []string
	feedBase string
}

// NewFeeds returns nil when no channels are configured.
func NewFeeds(cfg *engine.Config) *Feeds {
	if cfg == nil || len(cfg.FeedChannels) == 0 {
		return nil
	}
	return &Feeds{cfg: cfg, channels: cfg.FeedChannels, feedBase: ytFeedBase}
}

func (f *Feeds) Search(ctx context.Context, st resources.Strategy) (resources.Response, error) {
	keywords := feedKeywords(st.Query)
	if len(keywords) == 0 {
		return resources.Empty{}, nil
	}

	parser := gofeed.NewParser()
	var (
		recs []resources.Record
		errs []error
	)
	for _, ch := range f.channels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		feed, err := f.fetch(ctx, parser, ch)
		if err != nil {
			slog.Debug("feeds: channel failed", slog.String("channel", ch), slog.Any("error", err))
			errs = append(errs, err)
			continue
		}
		for _, it := range feed.Items {
			desc := feedDescription(it)
			if !matchesKeywords(strings.ToLower(it.Title+" "+desc), keywords) {
				continue
			}
			rec := resources.Record{
				Title:       strings.TrimSpace(it.Title),
				Description: engine.TruncateAtWord(engine.NormalizeSpace(desc), 300),
				Channel:     strings.TrimSpace(feed.Title),
				URL:         strings.TrimSpace(it.Link),
				Popularity:  feedViews(it),
			}
			if it.PublishedParsed != nil {
				rec.PublishedAt = *it.PublishedParsed
			} else if it.UpdatedParsed != nil {
				rec.PublishedAt = *it.UpdatedParsed
			}
			recs = append(recs, rec)
		}
	}
	if len(recs) == 0 && len(errs) == len(f.channels) {
		return nil, fmt.Errorf("feeds: %w", errors.Join(errs...))
	}
	return resources.Structured{Records: recs}, nil
}

func (f *Feeds) fetch(ctx context.Context, parser *gofeed.Parser, channel string) (*gofeed.Feed, error) {
	engine.IncrFeedRequest()
	u := f.feedBase + channel
	resp, err := engine.RetryHTTP(ctx, f.cfg.RetryPolicy("feeds"), func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return f.cfg.HTTP().Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &engine.StatusError{StatusCode: resp.StatusCode, Provider: "feeds"}
	}
	return parser.Parse(resp.Body)
}

// feedKeywords keeps query words of three or more characters.
func feedKeywords(query string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if len(w) >= 3 {
			out = append(out, w)
		}
	}
	return out
}

// matchesKeywords requires at least half of the keywords, and always at least one.
func matchesKeywords(text string, keywords []string) bool {
	hits := 0
	for _, k := range keywords {
		if strings.Contains(text, k) {
			hits++
		}
	}
	return hits > 0 && hits*2 >= len(keywords)
}

// feedDescription prefers the item description and falls back to media:group/media:description.
func feedDescription(it *gofeed.Item) string {
	if it.Description != "" {
		return it.Description
	}
	group := it.Extensions["media"]["group"]
	if len(group) == 0 {
		return ""
	}
	if d := group[0].Children["description"]; len(d) > 0 {
		return d[0].Value
	}
	return ""
}

// feedViews reads media:group/media:community/media:statistics@views.
func feedViews(it *gofeed.Item) int {
	group := it.Extensions["media"]["group"]
	if len(group) == 0 {
		return 0
	}
	community := group[0].Children["community"]
	if len(community) == 0 {
		return 0
	}
	stats := community[0].Children["statistics"]
	if len(stats) == 0 {
		return 0
	}
	n, _ := strconv.Atoi(stats[0].Attrs["views"])
	return n
}
