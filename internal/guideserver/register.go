// Package guideserver exposes the resource pipeline and guide drafting as MCP tools.
package guideserver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_guide/internal/engine"
	"github.com/anatolykoptev/go_guide/internal/engine/guide"
	"github.com/anatolykoptev/go_guide/internal/engine/resources"
	"github.com/anatolykoptev/go_guide/internal/engine/sources"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Deps are the collaborators the tools call. Cache may be nil.
type Deps struct {
	Resources  *resources.Service
	Drafter    *guide.Drafter
	Components *sources.ComponentSearch
	Cache      *engine.Cache
}

type toolset struct {
	Deps
}

// ToolCount is the number of tools RegisterTools adds.
const ToolCount = 7

// RegisterTools registers the guide tools on the given MCP server:
// get_ranked_resources, search_strategies, fallback_links, project_guide,
// trending_projects, refinement_question, component_links.
func RegisterTools(server *mcp.Server, d Deps) {
	ts := &toolset{Deps: d}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_ranked_resources",
		Description: "Find the best learning resources for a project subject. Runs several YouTube, GitHub, web and feed search strategies concurrently, scores and filters the results, and returns up to 6 video or 5 repository URLs, best first. Falls back to search-page URLs when nothing qualifies. Set detailed=true for the per-strategy report.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, ts.rankedResources)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_strategies",
		Description: "Show the search strategies planned for a project subject without running them: provider, query, filter profile and domain keywords per strategy.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, ts.strategies)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "fallback_links",
		Description: "Return fallback resource links for a subject: a direct provider search when it yields canonical links, otherwise YouTube or GitHub search-page URLs.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, ts.fallbackLinks)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "project_guide",
		Description: "Draft a step-by-step project guide (overview, components, frameworks, difficulty, estimated time) with ranked tutorial videos and reference repositories. Optionally adds supplier links for each component.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, ts.projectGuide)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "trending_projects",
		Description: "Suggest six trending project ideas for an engineering field with difficulty, category, key technologies and why each is trending.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, ts.trending)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "refinement_question",
		Description: "Ask one follow-up question that narrows a project's scope, given the answers collected so far.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, ts.refinementQuestion)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "component_links",
		Description: "Look up price and datasheet links for up to five project components on electronics stores (AliExpress, Amazon, Adafruit, SparkFun, DigiKey, Mouser).",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, ts.componentLinks)
}

func parseKind(s string) (resources.Kind, error) {
	k, err := resources.ParseKind(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return "", fmt.Errorf("invalid kind %q: %w", s, err)
	}
	return k, nil
}

func requireSubject(subject string) error {
	if strings.TrimSpace(subject) == "" {
		return errors.New("subject is required")
	}
	return nil
}

// resourceRequest validates input and builds the pipeline request.
func resourceRequest(in ResourcesInput) (resources.Request, error) {
	if err := requireSubject(in.Subject); err != nil {
		return resources.Request{}, err
	}
	kind, err := parseKind(in.Kind)
	if err != nil {
		return resources.Request{}, err
	}
	return resources.Request{
		Subject:     in.Subject,
		Domain:      in.Domain,
		Aux:         in.Answers,
		Complexity:  in.Complexity,
		ProjectType: in.ProjectType,
		Kind:        kind,
	}, nil
}
