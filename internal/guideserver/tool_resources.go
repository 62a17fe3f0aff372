package guideserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (ts *toolset) rankedResources(ctx context.Context, _ *mcp.CallToolRequest, input ResourcesInput) (*mcp.CallToolResult, ResourcesOutput, error) {
	req, err := resourceRequest(input)
	if err != nil {
		return nil, ResourcesOutput{}, err
	}

	rep, err := ts.Resources.Rank(ctx, req)
	if err != nil {
		return nil, ResourcesOutput{}, err
	}
	slog.Info("get_ranked_resources",
		slog.String("run_id", rep.RunID),
		slog.String("kind", string(rep.Kind)),
		slog.Int("links", len(rep.Links)),
		slog.Bool("fallback", rep.Fallback),
	)

	out := ResourcesOutput{
		RunID:    rep.RunID,
		Kind:     rep.Kind,
		Links:    rep.Links,
		Fallback: rep.Fallback,
	}
	if input.Detailed {
		out.Attempts = rep.Attempts
		out.Candidates = candidateViews(rep.Candidates)
	}
	return nil, out, nil
}

func (ts *toolset) strategies(_ context.Context, _ *mcp.CallToolRequest, input ResourcesInput) (*mcp.CallToolResult, StrategiesOutput, error) {
	req, err := resourceRequest(input)
	if err != nil {
		return nil, StrategiesOutput{}, err
	}
	strats, err := ts.Resources.Strategies(req)
	if err != nil {
		return nil, StrategiesOutput{}, err
	}
	return nil, StrategiesOutput{Kind: req.Kind, Strategies: strats}, nil
}

func (ts *toolset) fallbackLinks(ctx context.Context, _ *mcp.CallToolRequest, input FallbackInput) (*mcp.CallToolResult, LinksOutput, error) {
	if err := requireSubject(input.Subject); err != nil {
		return nil, LinksOutput{}, err
	}
	kind, err := parseKind(input.Kind)
	if err != nil {
		return nil, LinksOutput{}, err
	}
	links, err := ts.Resources.Fallback(ctx, input.Subject, input.Domain, kind)
	if err != nil {
		return nil, LinksOutput{}, err
	}
	return nil, LinksOutput{Kind: kind, Links: links}, nil
}
