package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/anatolykoptev/go_guide/internal/engine"
	"github.com/anatolykoptev/go_guide/internal/engine/resources"
)

const ytInitialDataMarker = "var ytInitialData = "

var errNoInitialData = errors.New("ytInitialData not found in YouTube search response")

type ytText struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

func (t ytText) String() string {
	if t.SimpleText != "" {
		return t.SimpleText
	}
	var parts []string
	for _, r := range t.Runs {
		parts = append(parts, r.Text)
	}
	return strings.Join(parts, "")
}

type ytVideoRenderer struct {
	VideoID            string  `json:"videoId"`
	Title              ytText  `json:"title"`
	OwnerText          ytText  `json:"ownerText"`
	LengthText         ytText  `json:"lengthText"`
	ViewCountText      ytText  `json:"viewCountText"`
	DescriptionSnippet *ytText `json:"descriptionSnippet"`
}

// searchInitialData scrapes the results page and parses the embedded ytInitialData.
func (y *YouTube) searchInitialData(ctx context.Context, query string, limit int) ([]resources.Record, error) {
	searchURL := y.pageBase + "?search_query=" + url.QueryEscape(query) + "&sp=" + ytSearchFilter

	resp, err := engine.RetryHTTP(ctx, y.cfg.RetryPolicy("youtube"), func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.RandomUserAgent())
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		return y.cfg.HTTP().Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("youtube search page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &engine.StatusError{StatusCode: resp.StatusCode, Provider: "youtube"}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read youtube search response: %w", err)
	}

	idx := bytes.Index(body, []byte(ytInitialDataMarker))
	if idx < 0 {
		return nil, errNoInitialData
	}
	jsonData := extractJSON(body[idx+len(ytInitialDataMarker):])
	if jsonData == nil {
		return nil, fmt.Errorf("failed to extract ytInitialData JSON")
	}
	return videosFromInitialData(jsonData, limit), nil
}

// extractJSON extracts a complete JSON object starting at b[0] == '{' by tracking brace depth.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}

// videosFromInitialData walks ytInitialData for videoRenderer entries in document order.
func videosFromInitialData(data []byte, limit int) []resources.Record {
	var out []resources.Record
	var walk func(v json.RawMessage)
	walk = func(v json.RawMessage) {
		if len(out) >= limit {
			return
		}
		switch firstByte(v) {
		case '{':
			var obj map[string]json.RawMessage
			if json.Unmarshal(v, &obj) != nil {
				return
			}
			if raw, ok := obj["videoRenderer"]; ok {
				var vr ytVideoRenderer
				if json.Unmarshal(raw, &vr) == nil && vr.VideoID != "" {
					out = append(out, vr.record())
					return
				}
			}
			// Sorted keys keep sibling containers deterministic; arrays keep document order.
			for _, key := range sortedRawKeys(obj) {
				walk(obj[key])
			}
		case '[':
			var arr []json.RawMessage
			if json.Unmarshal(v, &arr) != nil {
				return
			}
			for _, item := range arr {
				walk(item)
			}
		}
	}
	walk(data)
	return out
}

func (vr ytVideoRenderer) record() resources.Record {
	rec := resources.Record{
		Title:           vr.Title.String(),
		Channel:         vr.OwnerText.String(),
		URL:             "https://www.youtube.com/watch?v=" + vr.VideoID,
		DurationSeconds: resources.ParseDuration(vr.LengthText.String()),
		Popularity:      resources.ParsePopularity(vr.ViewCountText.String()),
	}
	if vr.DescriptionSnippet != nil {
		rec.Description = engine.NormalizeSpace(vr.DescriptionSnippet.String())
	}
	return rec
}

func firstByte(v json.RawMessage) byte {
	s := bytes.TrimSpace(v)
	if len(s) == 0 {
		return 0
	}
	return s[0]
}

func sortedRawKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
