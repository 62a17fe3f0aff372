package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/anatolykoptev/go_guide/internal/engine"
	"github.com/anatolykoptev/go_guide/internal/engine/resources"
)

const (
	githubAPIBase = "https://api.github.com"
	githubPerPage = 10
)

// githubExclusions keeps coursework and scaffolding repositories out of the search results.
var githubExclusions = []string{"homework", "assignment", "practice", "test", "hello-world"}

// repoItem holds the repository fields used from the search API.
type repoItem struct {
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Language    string `json:"language"`
	Fork        bool   `json:"fork"`
	Archived    bool   `json:"archived"`
	PushedAt    string `json:"pushed_at"`
	HTMLURL     string `json:"html_url"`
	Owner       struct {
		Login string `json:"login"`
	} `json:"owner"`
}

// ghRepoSearchResponse is the GitHub Repository Search API response.
type ghRepoSearchResponse struct {
	Items []repoItem `json:"items"`
}

// GitHub searches repositories for repository strategies.
type GitHub struct {
	cfg     *engine.Config
	apiBase string
}

// NewGitHub returns the repository provider. A token in cfg raises the search rate limit.
func NewGitHub(cfg *engine.Config) *GitHub {
	return &GitHub{cfg: cfg, apiBase: githubAPIBase}
}

// Search runs st.Query through the repository search API.
// Supports full GitHub search syntax (pushed:>2025-01-01, language:go) and st.Params["sort"].
func (g *GitHub) Search(ctx context.Context, st resources.Strategy) (resources.Response, error) {
	engine.IncrGitHubSearch()

	params := url.Values{
		"q":        {searchQuery(st.Query)},
		"per_page": {strconv.Itoa(githubPerPage)},
	}
	if sort := st.Param("sort"); sort != "" {
		params.Set("sort", sort)
		params.Set("order", "desc")
	}
	apiURL := g.apiBase + "/search/repositories?" + params.Encode()

	resp, err := engine.RetryHTTP(ctx, g.cfg.RetryPolicy("github"), func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/vnd.github.v3+json")
		req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
		req.Header.Set("User-Agent", engine.UserAgentBot)
		if g.cfg != nil && g.cfg.GithubToken != "" {
			req.Header.Set("Authorization", "Bearer "+g.cfg.GithubToken)
		}
		return g.cfg.HTTP().Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("github search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &engine.StatusError{StatusCode: resp.StatusCode, Provider: "github"}
	}

	var result ghRepoSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("github search: decode: %w", err)
	}

	recs := make([]resources.Record, 0, len(result.Items))
	for _, it := range result.Items {
		if it.Archived || it.HTMLURL == "" {
			continue
		}
		pushed, _ := time.Parse(time.RFC3339, it.PushedAt)
		recs = append(recs, resources.Record{
			Title:       it.FullName,
			Description: repoDescription(it),
			Channel:     it.Owner.Login,
			URL:         it.HTMLURL,
			Popularity:  it.Stars,
			Fork:        it.Fork,
			PublishedAt: pushed,
		})
	}
	return resources.Structured{Records: recs}, nil
}

// searchQuery appends the exclusion qualifiers unless the query already negates terms.
func searchQuery(q string) string {
	if strings.Contains(q, " NOT ") {
		return q
	}
	var b strings.Builder
	b.WriteString(q)
	for _, term := range githubExclusions {
		b.WriteString(" NOT ")
		b.WriteString(term)
	}
	return b.String()
}

func repoDescription(it repoItem) string {
	desc := engine.NormalizeSpace(it.Description)
	if it.Language == "" {
		return desc
	}
	if desc == "" {
		return it.Language
	}
	return desc + " (" + it.Language + ")"
}
