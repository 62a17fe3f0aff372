package engine

import (
	"context"
	"errors"
	"testing"
)

func TestParseStartpageHTML(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		wantURLs  []string
		wantTitle string
	}{
		{
			name: "result blocks",
			html: `<html><body>
				<div class="w-gl__result">
					<a class="w-gl__result-title" href="https://www.youtube.com/watch?v=abcdefghij1">  Arduino Weather
						Station Tutorial </a>
					<p class="w-gl__description">Build it step by step.</p>
				</div>
				<div class="w-gl__result">
					<a class="w-gl__result-title" href="https://github.com/user/weather-station">user/weather-station</a>
				</div>
			</body></html>`,
			wantURLs:  []string{"https://www.youtube.com/watch?v=abcdefghij1", "https://github.com/user/weather-station"},
			wantTitle: "Arduino Weather Station Tutorial",
		},
		{
			name: "older layout",
			html: `<div class="result"><h3><a href="https://example.com/guide">Guide</a></h3>
				<p class="result-description">Guide text.</p></div>`,
			wantURLs:  []string{"https://example.com/guide"},
			wantTitle: "Guide",
		},
		{
			name: "skips internal and empty links",
			html: `<div class="w-gl__result"><a class="w-gl__result-title" href="">No URL</a></div>
				<div class="w-gl__result"><a class="w-gl__result-title" href="https://www.startpage.com/do/settings">Settings</a></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := parseStartpageHTML([]byte(tt.html))
			if err != nil {
				t.Fatalf("parseStartpageHTML() error = %v", err)
			}
			if len(results) != len(tt.wantURLs) {
				t.Fatalf("got %d results, want %d", len(results), len(tt.wantURLs))
			}
			for i, r := range results {
				if r.URL != tt.wantURLs[i] {
					t.Errorf("result[%d].URL = %q, want %q", i, r.URL, tt.wantURLs[i])
				}
			}
			if len(results) > 0 && results[0].Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", results[0].Title, tt.wantTitle)
			}
		})
	}
}

func TestSearchStartpageDirectWithoutClient(t *testing.T) {
	_, err := SearchStartpageDirect(context.Background(), nil, "weather station", "")
	if !errors.Is(err, ErrNoWebBackend) {
		t.Errorf("err = %v, want ErrNoWebBackend", err)
	}
}
