// go_guide — project guide and learning resource MCP server.
//
// Exposes seven MCP tools: get_ranked_resources, search_strategies, fallback_links,
// project_guide, trending_projects, refinement_question, component_links.
// Runs as HTTP MCP server or stdio transport.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_guide/internal/app"
	"github.com/anatolykoptev/go_guide/internal/engine"
	"github.com/anatolykoptev/go_guide/internal/guideserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	a, err := app.New(context.Background(), app.LoadConfig())
	if err != nil {
		slog.Error("init failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer a.Close()

	slog.Info("starting go_guide",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_guide",
		Version: version,
	}, nil)

	guideserver.RegisterTools(server, a.ToolDeps())
	slog.Info("tools registered", slog.Int("count", guideserver.ToolCount))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_guide",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 300 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}
