package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/anatolykoptev/go_guide/internal/engine"
	"github.com/anatolykoptev/go_guide/internal/engine/resources"
)

// Video search is split across two files:
//   youtube.go        — provider entry point and the Data API v3 search → videos.list path
//   youtube_search.go — ytInitialData scraping used when no API key is configured

const (
	ytDataAPIBase  = "https://www.googleapis.com/youtube/v3"
	ytResultsBase  = "https://www.youtube.com/results"
	ytSearchFilter = "EgIQAQ%3D%3D" // videos-only filter param
	ytMaxResults   = 10
)

// YouTube searches videos for video strategies.
type YouTube struct {
	cfg      *engine.Config
	apiBase  string
	pageBase string
}

// NewYouTube returns the video provider. The Data API is used when cfg carries a key.
func NewYouTube(cfg *engine.Config) *YouTube {
	return &YouTube{cfg: cfg, apiBase: ytDataAPIBase, pageBase: ytResultsBase}
}

// Search runs st.Query. Params videoDuration and order are passed to the Data API.
func (y *YouTube) Search(ctx context.Context, st resources.Strategy) (resources.Response, error) {
	engine.IncrYouTubeSearch()
	var (
		recs []resources.Record
		err  error
	)
	if y.cfg != nil && y.cfg.YouTubeAPIKey != "" {
		recs, err = y.searchDataAPI(ctx, st)
		if err != nil {
			slog.Debug("youtube: data API failed, scraping results page", slog.Any("error", err))
			recs, err = y.searchInitialData(ctx, st.Query, ytMaxResults)
		}
	} else {
		recs, err = y.searchInitialData(ctx, st.Query, ytMaxResults)
	}
	if err != nil {
		return nil, err
	}
	return resources.Structured{Records: recs}, nil
}

// --- YouTube Data API v3 types ---

type ytSearchResp struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

type ytVideosResp struct {
	Items []ytVideo `json:"items"`
}

type ytVideo struct {
	ID      string `json:"id"`
	Snippet struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		ChannelTitle string `json:"channelTitle"`
		PublishedAt  string `json:"publishedAt"`
	} `json:"snippet"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
	Statistics struct {
		ViewCount string `json:"viewCount"`
	} `json:"statistics"`
}

// searchDataAPI tries each configured key in turn; quota errors on the primary key
// fall through to the secondary one.
func (y *YouTube) searchDataAPI(ctx context.Context, st resources.Strategy) ([]resources.Record, error) {
	keys := []string{y.cfg.YouTubeAPIKey}
	if y.cfg.YouTubeAPIKeyFallback != "" {
		keys = append(keys, y.cfg.YouTubeAPIKeyFallback)
	}
	var lastErr error
	for _, key := range keys {
		recs, err := y.dataSearch(ctx, st, key)
		if err == nil {
			return recs, nil
		}
		lastErr = err
		slog.Debug("youtube: data API key failed, trying fallback", slog.Any("error", err))
	}
	return nil, lastErr
}

func (y *YouTube) dataSearch(ctx context.Context, st resources.Strategy, key string) ([]resources.Record, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", st.Query)
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(ytMaxResults))
	params.Set("key", key)
	if d := st.Param("videoDuration"); d != "" {
		params.Set("videoDuration", d)
	}
	if o := st.Param("order"); o != "" {
		params.Set("order", o)
	}

	var search ytSearchResp
	if err := y.getJSON(ctx, y.apiBase+"/search?"+params.Encode(), &search); err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}
	ids := make([]string, 0, len(search.Items))
	for _, it := range search.Items {
		if it.ID.VideoID != "" {
			ids = append(ids, it.ID.VideoID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	details := url.Values{}
	details.Set("part", "snippet,contentDetails,statistics")
	details.Set("id", strings.Join(ids, ","))
	details.Set("key", key)
	var videos ytVideosResp
	if err := y.getJSON(ctx, y.apiBase+"/videos?"+details.Encode(), &videos); err != nil {
		return nil, fmt.Errorf("youtube videos: %w", err)
	}

	// videos.list does not preserve the search order.
	byID := make(map[string]ytVideo, len(videos.Items))
	for _, v := range videos.Items {
		byID[v.ID] = v
	}
	recs := make([]resources.Record, 0, len(ids))
	for _, id := range ids {
		v, ok := byID[id]
		if !ok {
			continue
		}
		views, _ := strconv.Atoi(v.Statistics.ViewCount)
		published, _ := time.Parse(time.RFC3339, v.Snippet.PublishedAt)
		recs = append(recs, resources.Record{
			Title:           v.Snippet.Title,
			Description:     engine.TruncateAtWord(engine.NormalizeSpace(v.Snippet.Description), 300),
			Channel:         v.Snippet.ChannelTitle,
			URL:             "https://www.youtube.com/watch?v=" + id,
			Popularity:      views,
			DurationSeconds: resources.ParseISODuration(v.ContentDetails.Duration),
			PublishedAt:     published,
		})
	}
	return recs, nil
}

func (y *YouTube) getJSON(ctx context.Context, u string, out any) error {
	resp, err := engine.RetryHTTP(ctx, y.cfg.RetryPolicy("youtube"), func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return y.cfg.HTTP().Do(req)
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.Debug("youtube data API error body", slog.String("body", string(body)))
		return &engine.StatusError{StatusCode: resp.StatusCode, Provider: "youtube"}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
