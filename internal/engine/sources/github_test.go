package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anatolykoptev/go_guide/internal/engine"
	"github.com/anatolykoptev/go_guide/internal/engine/resources"
)

func TestGitHubSearch(t *testing.T) {
	var gotQ, gotSort, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/repositories" {
			http.NotFound(w, r)
			return
		}
		gotQ = r.URL.Query().Get("q")
		gotSort = r.URL.Query().Get("sort")
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"items":[
			{"full_name":"user/smart-irrigation","description":"ESP32  soil\nmonitor","stargazers_count":120,
			 "language":"C++","fork":false,"pushed_at":"2026-05-01T00:00:00Z","html_url":"https://github.com/user/smart-irrigation",
			 "owner":{"login":"user"}},
			{"full_name":"old/irrigation","archived":true,"html_url":"https://github.com/old/irrigation","owner":{"login":"old"}},
			{"full_name":"copy/smart-irrigation","fork":true,"stargazers_count":2,"html_url":"https://github.com/copy/smart-irrigation","owner":{"login":"copy"}}
		]}`)
	}))
	defer srv.Close()

	cfg := testEngineConfig(srv.Client())
	cfg.GithubToken = "tok"
	g := NewGitHub(cfg)
	g.apiBase = srv.URL

	resp, err := g.Search(context.Background(), resources.Strategy{
		Kind:   resources.KindRepository,
		Query:  "smart irrigation arduino",
		Params: map[string]string{"sort": "stars"},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	recs := resp.(resources.Structured).Records
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2 (archived skipped)", len(recs))
	}
	r := recs[0]
	if r.Title != "user/smart-irrigation" || r.Channel != "user" || r.Popularity != 120 {
		t.Errorf("first = %+v", r)
	}
	if r.Description != "ESP32 soil monitor (C++)" {
		t.Errorf("description = %q", r.Description)
	}
	if r.PublishedAt.IsZero() {
		t.Error("pushed_at not parsed")
	}
	if !recs[1].Fork {
		t.Error("fork flag lost")
	}

	if !strings.HasPrefix(gotQ, "smart irrigation arduino NOT homework") || !strings.Contains(gotQ, "NOT hello-world") {
		t.Errorf("q = %q", gotQ)
	}
	if gotSort != "stars" {
		t.Errorf("sort = %q", gotSort)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestGitHubSearchStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	g := NewGitHub(testEngineConfig(srv.Client()))
	g.apiBase = srv.URL
	_, err := g.Search(context.Background(), resources.Strategy{Query: "x"})
	var se *engine.StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("err = %v, want StatusError 422", err)
	}
}

func TestSearchQuery(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"robot arm", "robot arm NOT homework NOT assignment NOT practice NOT test NOT hello-world"},
		{"robot arm NOT ros", "robot arm NOT ros"},
	}
	for _, tt := range tests {
		if got := searchQuery(tt.in); got != tt.want {
			t.Errorf("searchQuery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
