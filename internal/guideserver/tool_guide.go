package guideserver

import (
	"context"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_guide/internal/engine"
	"github.com/anatolykoptev/go_guide/internal/engine/guide"
	"github.com/anatolykoptev/go_guide/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (ts *toolset) projectGuide(ctx context.Context, _ *mcp.CallToolRequest, input GuideInput) (*mcp.CallToolResult, GuideOutput, error) {
	if err := requireSubject(input.Subject); err != nil {
		return nil, GuideOutput{}, err
	}

	cacheKey := engine.CacheKey("project_guide", engine.NormalizeSpace(input.Subject), input.Field, input.ProjectType,
		input.Complexity, toolutil.AnswersKey(input.Answers), strconv.FormatBool(input.IncludeComponents))
	if out, ok := toolutil.CacheLoadJSON[GuideOutput](ctx, ts.Cache, cacheKey); ok {
		return nil, out, nil
	}

	g, err := ts.Drafter.Draft(ctx, input.request())
	if err != nil {
		return nil, GuideOutput{}, err
	}
	out := GuideOutput{Guide: g}
	if input.IncludeComponents && ts.Components != nil {
		names := make([]string, 0, len(g.Components))
		for _, c := range g.Components {
			names = append(names, c.Name)
		}
		out.Components = ts.Components.Links(ctx, names)
	}

	// Fallback drafts are not cached so a later call can pick up generated text.
	if g.Generated {
		toolutil.CacheStoreJSON(ctx, ts.Cache, cacheKey, out)
	}
	return nil, out, nil
}

func (ts *toolset) trending(ctx context.Context, _ *mcp.CallToolRequest, input TrendingInput) (*mcp.CallToolResult, TrendingOutput, error) {
	field := strings.TrimSpace(input.Field)
	if field == "" {
		field = "Engineering"
	}
	cacheKey := engine.CacheKey("trending_projects", strings.ToLower(field))
	if out, ok := toolutil.CacheLoadJSON[TrendingOutput](ctx, ts.Cache, cacheKey); ok {
		return nil, out, nil
	}
	ideas, generated := ts.Drafter.Trending(ctx, field)
	out := TrendingOutput{Field: field, Ideas: ideas}
	if generated {
		toolutil.CacheStoreJSON(ctx, ts.Cache, cacheKey, out)
	}
	return nil, out, nil
}

func (ts *toolset) refinementQuestion(ctx context.Context, _ *mcp.CallToolRequest, input RefinementInput) (*mcp.CallToolResult, RefinementOutput, error) {
	if err := requireSubject(input.Subject); err != nil {
		return nil, RefinementOutput{}, err
	}
	q, err := ts.Drafter.RefinementQuestion(ctx, guide.Request{
		Subject:     input.Subject,
		Field:       input.Field,
		ProjectType: input.ProjectType,
		Complexity:  input.Complexity,
		Answers:     input.Answers,
	})
	if err != nil {
		return nil, RefinementOutput{}, err
	}
	return nil, RefinementOutput{Question: q}, nil
}
