// Package resources locates and ranks learning resources (videos, code repositories)
// for a project subject through a multi-strategy search pipeline:
// strategies → invoke → parse → score → filter → merge → rank → fallback.
package resources

import (
	"errors"
	"time"
)

// Kind selects the resource family a pipeline run looks for.
type Kind string

const (
	KindVideo      Kind = "video"
	KindRepository Kind = "repository"
)

// ParseKind maps user input to a Kind; anything unrecognised is an error.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "video", "videos", "youtube", "":
		return KindVideo, nil
	case "repository", "repositories", "repo", "repos", "github":
		return KindRepository, nil
	}
	return "", errors.New("kind must be video or repository")
}

// Provider keys used by strategies to select an executor.
const (
	ProviderYouTube = "youtube"
	ProviderGitHub  = "github"
	ProviderWeb     = "web"
	ProviderSuggest = "suggest"
	ProviderFeeds   = "feeds"
)

// FilterProfile declares the hard constraints and emphasis of one strategy.
// The zero value of every field means "no constraint".
type FilterProfile struct {
	MinDurationSeconds int     `json:"min_duration_seconds,omitempty"`
	MinPopularity      int     `json:"min_popularity,omitempty"`
	ExcludeShortForm   bool    `json:"exclude_short_form,omitempty"`
	RequireTechnical   bool    `json:"require_technical,omitempty"`
	RequireDomainMatch bool    `json:"require_domain_match,omitempty"`
	MinSubjectCoverage float64 `json:"min_subject_coverage,omitempty"`

	BoostCodeTutorials    bool `json:"boost_code_tutorials,omitempty"`
	BoostCompleteProjects bool `json:"boost_complete_projects,omitempty"`
	BoostExpertChannels   bool `json:"boost_expert_channels,omitempty"`
	PreferStepByStep      bool `json:"prefer_step_by_step,omitempty"`
	PreferRecent          bool `json:"prefer_recent,omitempty"`
}

// Strategy is one parameterized search attempt. Built fresh per run and treated as immutable.
type Strategy struct {
	Name           string            `json:"name"`
	Kind           Kind              `json:"kind"`
	Subject        string            `json:"subject"`
	Provider       string            `json:"provider"`
	Query          string            `json:"query"`
	Params         map[string]string `json:"params,omitempty"`
	Filter         FilterProfile     `json:"filter"`
	DomainKeywords []string          `json:"domain_keywords,omitempty"`
	RecencyFocused bool              `json:"recency_focused,omitempty"`
}

// Param returns a provider parameter or "" when unset.
func (s Strategy) Param(key string) string { return s.Params[key] }

// Candidate is one located resource before or after scoring.
type Candidate struct {
	SourceID        string    `json:"source_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Channel         string    `json:"channel,omitempty"`
	Popularity      int       `json:"popularity"`
	DurationSeconds int       `json:"duration_seconds,omitempty"`
	Fork            bool      `json:"fork,omitempty"`
	ShortForm       bool      `json:"short_form,omitempty"`
	PublishedAt     time.Time `json:"published_at,omitempty"`
	Origin          string    `json:"origin"`
	Recent          bool      `json:"recent,omitempty"` // origin strategy is recency-focused
	Score           int       `json:"score"`
}

// Record is one provider result as delivered, before canonicalisation.
type Record struct {
	Title           string
	Description     string
	Channel         string
	URL             string
	Popularity      int
	DurationSeconds int
	Fork            bool
	PublishedAt     time.Time
}

// Response is the tagged union returned by providers: Structured, Prose or Empty.
type Response interface {
	isResponse()
}

// Structured carries records that already have typed fields.
type Structured struct {
	Records []Record
}

// Prose carries loosely formatted text to be scanned for labelled blocks and links.
type Prose struct {
	Text string
}

// Empty marks a strategy that produced nothing; Reason says why.
type Empty struct {
	Reason error
}

func (Structured) isResponse() {}
func (Prose) isResponse()      {}
func (Empty) isResponse()      {}

// Failure reasons recorded per strategy attempt and per parse.
var (
	ErrInvalidSubject   = errors.New("subject is required")
	ErrUnknownProvider  = errors.New("unknown provider")
	ErrProviderFailed   = errors.New("provider failed")
	ErrProviderTimeout  = errors.New("provider timed out")
	ErrNoCanonicalLink  = errors.New("no canonical link in response")
	ErrNoStructuredJSON = errors.New("no structured JSON in prose")
	ErrUnlabeledRecord  = errors.New("link without labelled record")
	ErrMalformedRecord  = errors.New("malformed record")
	ErrBatchParse       = errors.New("batch parse failed")
)
