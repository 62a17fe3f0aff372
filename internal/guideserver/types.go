package guideserver

import (
	"time"

	"github.com/anatolykoptev/go_guide/internal/engine/guide"
	"github.com/anatolykoptev/go_guide/internal/engine/resources"
	"github.com/anatolykoptev/go_guide/internal/engine/sources"
)

// --- Resource pipeline types ---

type ResourcesInput struct {
	Subject     string            `json:"subject" jsonschema:"Project subject (e.g. Smart Irrigation System, Line Following Robot)"`
	Domain      string            `json:"domain,omitempty" jsonschema:"Engineering field: computing, electrical, mechanical, civil, chemical"`
	Kind        string            `json:"kind,omitempty" jsonschema:"Resource kind: video (default) or repository"`
	Complexity  string            `json:"complexity,omitempty" jsonschema:"Skill level: Beginner, Intermediate, Advanced"`
	ProjectType string            `json:"project_type,omitempty" jsonschema:"Project type (e.g. FYP, Semester Project)"`
	Answers     map[string]string `json:"answers,omitempty" jsonschema:"Refinement answers keyed by question"`
	Detailed    bool              `json:"detailed,omitempty" jsonschema:"Include per-strategy attempts and scored candidates"`
}

// ResourcesOutput is the structured output for get_ranked_resources.
type ResourcesOutput struct {
	RunID      string                    `json:"run_id"`
	Kind       resources.Kind            `json:"kind"`
	Links      []string                  `json:"links"`
	Fallback   bool                      `json:"fallback"`
	Attempts   []resources.AttemptReport `json:"attempts,omitempty"`
	Candidates []CandidateView           `json:"candidates,omitempty"`
}

// CandidateView is a ranked candidate with its publish date rendered as text.
type CandidateView struct {
	URL             string `json:"url"`
	Title           string `json:"title"`
	Channel         string `json:"channel,omitempty"`
	Popularity      int    `json:"popularity"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	PublishedAt     string `json:"published_at,omitempty"`
	Origin          string `json:"origin"`
	Score           int    `json:"score"`
}

func candidateViews(cands []resources.Candidate) []CandidateView {
	out := make([]CandidateView, 0, len(cands))
	for _, c := range cands {
		v := CandidateView{
			URL:             c.SourceID,
			Title:           c.Title,
			Channel:         c.Channel,
			Popularity:      c.Popularity,
			DurationSeconds: c.DurationSeconds,
			Origin:          c.Origin,
			Score:           c.Score,
		}
		if !c.PublishedAt.IsZero() {
			v.PublishedAt = c.PublishedAt.Format(time.DateOnly)
		}
		out = append(out, v)
	}
	return out
}

// StrategiesOutput is the structured output for search_strategies.
type StrategiesOutput struct {
	Kind       resources.Kind       `json:"kind"`
	Strategies []resources.Strategy `json:"strategies"`
}

type FallbackInput struct {
	Subject string `json:"subject" jsonschema:"Project subject"`
	Domain  string `json:"domain,omitempty" jsonschema:"Engineering field used to widen the last query"`
	Kind    string `json:"kind,omitempty" jsonschema:"Resource kind: video (default) or repository"`
}

// LinksOutput is the structured output for fallback_links.
type LinksOutput struct {
	Kind  resources.Kind `json:"kind"`
	Links []string       `json:"links"`
}

// --- Guide types ---

type GuideInput struct {
	Subject           string            `json:"subject" jsonschema:"Project subject"`
	Field             string            `json:"field,omitempty" jsonschema:"Engineering field"`
	ProjectType       string            `json:"project_type,omitempty" jsonschema:"Project type (e.g. FYP, Semester Project)"`
	Complexity        string            `json:"complexity,omitempty" jsonschema:"Skill level: Beginner, Intermediate, Advanced"`
	Answers           map[string]string `json:"answers,omitempty" jsonschema:"Refinement answers keyed by question"`
	IncludeComponents bool              `json:"include_components,omitempty" jsonschema:"Also look up supplier links for each component"`
}

func (in GuideInput) request() guide.Request {
	return guide.Request{
		Subject:     in.Subject,
		Field:       in.Field,
		ProjectType: in.ProjectType,
		Complexity:  in.Complexity,
		Answers:     in.Answers,
	}
}

// GuideOutput is the structured output for project_guide.
type GuideOutput struct {
	Guide      guide.ProjectGuide      `json:"guide"`
	Components []sources.ComponentLink `json:"components,omitempty"`
}

type TrendingInput struct {
	Field string `json:"field,omitempty" jsonschema:"Engineering field (default: Engineering)"`
}

// TrendingOutput is the structured output for trending_projects.
type TrendingOutput struct {
	Field string       `json:"field"`
	Ideas []guide.Idea `json:"ideas"`
}

type RefinementInput struct {
	Subject     string            `json:"subject" jsonschema:"Project subject"`
	Field       string            `json:"field,omitempty" jsonschema:"Engineering field"`
	ProjectType string            `json:"project_type,omitempty" jsonschema:"Project type"`
	Complexity  string            `json:"complexity,omitempty" jsonschema:"Skill level"`
	Answers     map[string]string `json:"answers,omitempty" jsonschema:"Answers collected so far, keyed by question"`
}

// RefinementOutput is the structured output for refinement_question.
type RefinementOutput struct {
	Question string `json:"question"`
}

type ComponentsInput struct {
	Components []string `json:"components" jsonschema:"Component names (first five are searched)"`
}

// ComponentsOutput is the structured output for component_links.
type ComponentsOutput struct {
	Components []sources.ComponentLink `json:"components"`
}
