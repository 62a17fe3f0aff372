package guideserver

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/anatolykoptev/go_guide/internal/engine"
	"github.com/anatolykoptev/go_guide/internal/engine/guide"
	"github.com/anatolykoptev/go_guide/internal/engine/resources"
	"github.com/anatolykoptev/go_guide/internal/engine/sources"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tutorialURL = "https://www.youtube.com/watch?v=abcdefghij1"

func testToolset(t *testing.T) *toolset {
	t.Helper()
	youtube := resources.ProviderFunc(func(ctx context.Context, st resources.Strategy) (resources.Response, error) {
		if st.Name == "fallback-direct" {
			return resources.Empty{}, nil
		}
		return resources.Structured{Records: []resources.Record{
			{Title: "Weather Station Tutorial Full Build", URL: tutorialURL, DurationSeconds: 900, Popularity: 12000},
		}}, nil
	})
	empty := resources.ProviderFunc(func(ctx context.Context, st resources.Strategy) (resources.Response, error) {
		return resources.Empty{}, nil
	})

	cfg := resources.DefaultConfig()
	cfg.ProviderRate = 0
	svc := resources.NewService(cfg, map[string]resources.Provider{
		resources.ProviderYouTube: youtube,
		resources.ProviderGitHub:  empty,
	}, nil)

	cache := engine.NewCache(nil, time.Minute, 100, time.Minute)
	t.Cleanup(func() { cache.Close() })

	return &toolset{Deps: Deps{
		Resources:  svc,
		Drafter:    guide.NewDrafter(nil, svc),
		Components: sources.NewComponentSearch(&engine.Config{}),
		Cache:      cache,
	}}
}

func TestRegisterTools(t *testing.T) {
	server := mcp.NewServer(&mcp.Implementation{Name: "go_guide", Version: "test"}, nil)
	RegisterTools(server, testToolset(t).Deps)
}

func TestRankedResourcesTool(t *testing.T) {
	ts := testToolset(t)
	ctx := context.Background()

	_, out, err := ts.rankedResources(ctx, nil, ResourcesInput{Subject: "Weather Station", Detailed: true})
	require.NoError(t, err)
	assert.Equal(t, resources.KindVideo, out.Kind)
	assert.Equal(t, []string{tutorialURL}, out.Links)
	assert.False(t, out.Fallback)
	assert.NotEmpty(t, out.RunID)
	assert.NotEmpty(t, out.Attempts)
	require.Len(t, out.Candidates, 1)
	assert.Equal(t, tutorialURL, out.Candidates[0].URL)

	_, repos, err := ts.rankedResources(ctx, nil, ResourcesInput{Subject: "Weather Station", Kind: "Repo"})
	require.NoError(t, err)
	assert.Equal(t, resources.KindRepository, repos.Kind)
	assert.True(t, repos.Fallback)
	assert.Equal(t, resources.SearchURLs("Weather Station", "", resources.KindRepository), repos.Links)
	assert.Empty(t, repos.Attempts)
}

func TestToolInputErrors(t *testing.T) {
	ts := testToolset(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want string
	}{
		{"ranked blank subject", func() error {
			_, _, err := ts.rankedResources(ctx, nil, ResourcesInput{Subject: "  "})
			return err
		}, "subject is required"},
		{"ranked bad kind", func() error {
			_, _, err := ts.rankedResources(ctx, nil, ResourcesInput{Subject: "x", Kind: "podcast"})
			return err
		}, "invalid kind"},
		{"strategies blank subject", func() error {
			_, _, err := ts.strategies(ctx, nil, ResourcesInput{})
			return err
		}, "subject is required"},
		{"fallback blank subject", func() error {
			_, _, err := ts.fallbackLinks(ctx, nil, FallbackInput{})
			return err
		}, "subject is required"},
		{"guide blank subject", func() error {
			_, _, err := ts.projectGuide(ctx, nil, GuideInput{})
			return err
		}, "subject is required"},
		{"refinement blank subject", func() error {
			_, _, err := ts.refinementQuestion(ctx, nil, RefinementInput{})
			return err
		}, "subject is required"},
		{"components empty", func() error {
			_, _, err := ts.componentLinks(ctx, nil, ComponentsInput{Components: []string{" "}})
			return err
		}, "components are required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestStrategiesTool(t *testing.T) {
	_, out, err := testToolset(t).strategies(context.Background(), nil, ResourcesInput{Subject: "Weather Station", Kind: "repository"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Strategies)
	for _, st := range out.Strategies {
		assert.Equal(t, resources.KindRepository, st.Kind, st.Name)
	}
}

func TestFallbackLinksTool(t *testing.T) {
	_, out, err := testToolset(t).fallbackLinks(context.Background(), nil, FallbackInput{Subject: "Weather Station", Domain: "Electrical"})
	require.NoError(t, err)
	assert.Equal(t, resources.SearchURLs("Weather Station", "Electrical", resources.KindVideo), out.Links)
}

func TestProjectGuideTool(t *testing.T) {
	ts := testToolset(t)
	_, out, err := ts.projectGuide(context.Background(), nil, GuideInput{
		Subject:           "Weather Station",
		Field:             "Electrical Engineering",
		IncludeComponents: true,
	})
	require.NoError(t, err)
	assert.False(t, out.Guide.Generated)
	assert.Equal(t, []string{tutorialURL}, out.Guide.Videos)
	require.Len(t, out.Components, len(out.Guide.Components))
	for _, c := range out.Components {
		assert.True(t, c.Fallback, c.Name)
	}
}

func TestTrendingToolCaches(t *testing.T) {
	ctx := context.Background()

	t.Run("fallback ideas are not cached", func(t *testing.T) {
		ts := testToolset(t)
		_, out, err := ts.trending(ctx, nil, TrendingInput{Field: " Electrical "})
		require.NoError(t, err)
		assert.Equal(t, "Electrical", out.Field)
		assert.NotEmpty(t, out.Ideas)

		_, ok := ts.Cache.Get(ctx, engine.CacheKey("trending_projects", "electrical"))
		assert.False(t, ok)
	})

	t.Run("generated ideas are cached", func(t *testing.T) {
		ts := testToolset(t)
		llm := engine.NewLLM(func(ctx context.Context, system, prompt string) (string, error) {
			return `{"projects": [{"title": "Smart Grid Simulator", "difficulty": "Advanced"}]}`, nil
		}, 0)
		ts.Drafter = guide.NewDrafter(llm, ts.Resources)

		_, out, err := ts.trending(ctx, nil, TrendingInput{Field: "Electrical"})
		require.NoError(t, err)
		require.Len(t, out.Ideas, 1)
		assert.Equal(t, "Smart Grid Simulator", out.Ideas[0].Title)

		_, ok := ts.Cache.Get(ctx, engine.CacheKey("trending_projects", "electrical"))
		assert.True(t, ok)
	})
}

func TestRefinementQuestionTool(t *testing.T) {
	_, out, err := testToolset(t).refinementQuestion(context.Background(), nil, RefinementInput{Subject: "Weather Station"})
	require.NoError(t, err)
	assert.Contains(t, out.Question, "Weather Station")
}
