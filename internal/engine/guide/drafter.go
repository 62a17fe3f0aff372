package guide

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/anatolykoptev/go_guide/internal/engine"
	"github.com/anatolykoptev/go_guide/internal/engine/resources"
	"golang.org/x/sync/errgroup"
)

const maxIdeas = 6

// Resources ranks learning resources for a project. *resources.Service implements it.
type Resources interface {
	RankedResources(ctx context.Context, req resources.Request) ([]string, error)
}

// Drafter generates guide text and collects resources. Every text operation degrades to
// deterministic fallback content when generation is unavailable or unparseable.
type Drafter struct {
	llm *engine.LLM
	res Resources
}

// NewDrafter returns a Drafter. llm and res may be nil.
func NewDrafter(llm *engine.LLM, res Resources) *Drafter {
	return &Drafter{llm: llm, res: res}
}

type guideJSON struct {
	Title               string      `json:"title"`
	ShortDescription    string      `json:"short_description"`
	DetailedDescription string      `json:"detailed_description"`
	Components          []Component `json:"components"`
	Frameworks          []string    `json:"frameworks"`
	DifficultyLevel     string      `json:"difficulty_level"`
	EstimatedTime       string      `json:"estimated_time"`
}

// Draft writes the guide text and ranks videos and repositories concurrently.
func (d *Drafter) Draft(ctx context.Context, req Request) (ProjectGuide, error) {
	req.Subject = engine.NormalizeSpace(req.Subject)
	if req.Subject == "" {
		return ProjectGuide{}, fmt.Errorf("draft guide: %w", ErrInvalidSubject)
	}

	var (
		g      ProjectGuide
		videos []string
		repos  []string
	)
	var eg errgroup.Group
	eg.Go(func() error {
		g = d.text(ctx, req)
		return nil
	})
	eg.Go(func() error {
		videos = d.links(ctx, req, resources.KindVideo)
		return nil
	})
	eg.Go(func() error {
		repos = d.links(ctx, req, resources.KindRepository)
		return nil
	})
	_ = eg.Wait()

	g.Videos = videos
	g.Repositories = repos
	return g, nil
}

func (d *Drafter) text(ctx context.Context, req Request) ProjectGuide {
	difficulty := difficultyLevel(req.Complexity)
	prompt := fmt.Sprintf(engine.GuidePrompt,
		req.Subject, orDefault(req.Field, "General"), orDefault(req.ProjectType, "General Project"),
		orDefault(req.Complexity, "Intermediate"), answersLine(req.Answers), difficulty)

	var out guideJSON
	generated := true
	if err := d.llm.CompleteJSON(ctx, engine.SystemMentor, prompt, &out); err != nil {
		slog.Warn("guide: generation failed, using fallback", slog.String("subject", req.Subject), slog.Any("error", err))
		generated = false
	}

	g := ProjectGuide{
		Title:               orDefault(strings.TrimSpace(out.Title), req.Subject),
		ShortDescription:    strings.TrimSpace(out.ShortDescription),
		DetailedDescription: strings.TrimSpace(out.DetailedDescription),
		Components:          cleanComponents(out.Components),
		Frameworks:          cleanList(out.Frameworks),
		DifficultyLevel:     orDefault(strings.TrimSpace(out.DifficultyLevel), difficulty),
		EstimatedTime:       orDefault(strings.TrimSpace(out.EstimatedTime), "4-8 weeks"),
		Generated:           generated,
	}
	field := orDefault(req.Field, "Engineering")
	if g.ShortDescription == "" {
		g.ShortDescription = fmt.Sprintf("A comprehensive %s project focusing on %s", field, req.Subject)
	}
	if g.DetailedDescription == "" {
		g.DetailedDescription = fallbackDescription(req.Subject, field, difficulty)
	}
	if len(g.Components) == 0 {
		g.Components = fallbackComponents(req.Field)
	}
	if len(g.Frameworks) == 0 {
		g.Frameworks = fallbackFrameworks(req.Field)
	}
	return g
}

func (d *Drafter) links(ctx context.Context, req Request, kind resources.Kind) []string {
	if d.res == nil {
		return resources.SearchURLs(req.Subject, req.Field, kind)
	}
	links, err := d.res.RankedResources(ctx, resources.Request{
		Subject:     req.Subject,
		Domain:      req.Field,
		Aux:         req.Answers,
		Complexity:  req.Complexity,
		ProjectType: req.ProjectType,
		Kind:        kind,
	})
	if err != nil {
		slog.Warn("guide: resource ranking failed", slog.String("kind", string(kind)), slog.Any("error", err))
		return resources.SearchURLs(req.Subject, req.Field, kind)
	}
	return links
}

// Trending returns up to six project ideas for field. generated is false when
// the ideas come from the built-in catalogue.
func (d *Drafter) Trending(ctx context.Context, field string) (ideas []Idea, generated bool) {
	var out struct {
		Projects []Idea `json:"projects"`
	}
	if err := d.llm.CompleteJSON(ctx, engine.SystemMentor, fmt.Sprintf(engine.TrendingPrompt, orDefault(field, "Engineering")), &out); err != nil {
		slog.Debug("guide: trending generation failed", slog.String("field", field), slog.Any("error", err))
		return fallbackIdeas(field), false
	}
	for _, idea := range out.Projects {
		if strings.TrimSpace(idea.Title) == "" {
			continue
		}
		ideas = append(ideas, idea)
		if len(ideas) == maxIdeas {
			break
		}
	}
	if len(ideas) == 0 {
		return fallbackIdeas(field), false
	}
	return ideas, true
}

// RefinementQuestion asks one question that narrows the project scope.
func (d *Drafter) RefinementQuestion(ctx context.Context, req Request) (string, error) {
	req.Subject = engine.NormalizeSpace(req.Subject)
	if req.Subject == "" {
		return "", fmt.Errorf("refinement question: %w", ErrInvalidSubject)
	}
	prompt := fmt.Sprintf(engine.RefinementPrompt,
		req.Subject, orDefault(req.Field, "General"), orDefault(req.ProjectType, "General Project"),
		orDefault(req.Complexity, "Intermediate"), answersLine(req.Answers))
	q, err := d.llm.Complete(ctx, engine.SystemMentor, prompt)
	if q = strings.Trim(strings.TrimSpace(q), `"`); err != nil || q == "" {
		if err != nil {
			slog.Debug("guide: refinement generation failed", slog.Any("error", err))
		}
		return fallbackQuestion(req.Subject, len(req.Answers)), nil
	}
	return q, nil
}

// difficultyLevel takes the level name from labels like "Intermediate - some experience".
func difficultyLevel(complexity string) string {
	c := strings.TrimSpace(complexity)
	if i := strings.Index(c, " - "); i >= 0 {
		c = c[:i]
	}
	return orDefault(strings.TrimSpace(c), "Intermediate")
}

// answersLine renders answers as "question: answer" pairs in key order.
func answersLine(answers map[string]string) string {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+answers[k])
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "; ")
}

func cleanComponents(in []Component) []Component {
	var out []Component
	for _, c := range in {
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func cleanList(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
