package guideserver

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (ts *toolset) componentLinks(ctx context.Context, _ *mcp.CallToolRequest, input ComponentsInput) (*mcp.CallToolResult, ComponentsOutput, error) {
	var names []string
	for _, n := range input.Components {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return nil, ComponentsOutput{}, errors.New("components are required")
	}
	return nil, ComponentsOutput{Components: ts.Components.Links(ctx, names)}, nil
}
