package resources

import (
	"strconv"
	"strings"
)

// Request is the caller input for one pipeline run.
type Request struct {
	Subject     string            `json:"subject"`
	Domain      string            `json:"domain,omitempty"`
	Aux         map[string]string `json:"aux,omitempty"` // free-text answers keyed by question
	Complexity  string            `json:"complexity,omitempty"`
	ProjectType string            `json:"project_type,omitempty"`
	Kind        Kind              `json:"kind"`
}

// Optional providers the generator may plan for. Core providers are always planned.
type Optional struct {
	Web     bool
	Feeds   bool
	Suggest bool
}

// Generator builds the ordered strategy list for a request. Pure given Config.Now.
type Generator struct {
	cfg Config
	opt Optional
}

// NewGenerator returns a Generator bound to cfg.
func NewGenerator(cfg Config, opt Optional) *Generator {
	return &Generator{cfg: cfg, opt: opt}
}

// Generate returns at least one strategy for any request with a non-empty subject.
func (g *Generator) Generate(req Request) []Strategy {
	subject := strings.Join(strings.Fields(req.Subject), " ")
	if subject == "" {
		return nil
	}
	var out []Strategy
	if req.Kind == KindRepository {
		out = g.repoStrategies(subject, req)
	} else {
		out = g.videoStrategies(subject, req)
	}
	for i := range out {
		out[i].Subject = subject
	}
	return out
}

func (g *Generator) videoStrategies(subject string, req Request) []Strategy {
	kw := g.cfg.Keywords
	domainTerms := kw.DomainTerms(req.Domain)
	year := strconv.Itoa(g.cfg.now().Year())

	deep := subject + " tutorial complete"
	if terms, ok := kw.ComplexityTerms(req.Complexity); ok {
		deep += " " + terms[0]
	}

	out := []Strategy{
		{
			Name:     "deep-tutorial",
			Kind:     KindVideo,
			Provider: ProviderYouTube,
			Query:    deep,
			Params:   map[string]string{"videoDuration": "medium", "order": "relevance"},
			Filter: FilterProfile{
				MinDurationSeconds: 240,
				ExcludeShortForm:   true,
				RequireTechnical:   true,
				BoostCodeTutorials: true,
			},
			DomainKeywords: domainTerms,
		},
		{
			Name:     "build-guide",
			Kind:     KindVideo,
			Provider: ProviderYouTube,
			Query:    "build " + subject + " step by step",
			Params:   map[string]string{"videoDuration": "long", "order": "rating"},
			Filter: FilterProfile{
				MinDurationSeconds:    600,
				PreferStepByStep:      true,
				BoostCompleteProjects: true,
			},
			DomainKeywords: domainTerms,
		},
	}

	if len(domainTerms) > 0 {
		out = append(out, Strategy{
			Name:     "domain-expert",
			Kind:     KindVideo,
			Provider: ProviderYouTube,
			Query:    subject + " " + strings.TrimSpace(req.Domain) + " guide",
			Params:   map[string]string{"videoDuration": "any", "order": "viewCount"},
			Filter: FilterProfile{
				MinPopularity:       1000,
				RequireDomainMatch:  true,
				BoostExpertChannels: true,
			},
			DomainKeywords: domainTerms,
		})
	}

	out = append(out, Strategy{
		Name:           "recency",
		Kind:           KindVideo,
		Provider:       ProviderYouTube,
		Query:          subject + " " + year + " tutorial",
		Params:         map[string]string{"videoDuration": "medium", "order": "date"},
		Filter:         FilterProfile{PreferRecent: true},
		DomainKeywords: domainTerms,
		RecencyFocused: true,
	})

	if g.opt.Web {
		out = append(out, Strategy{
			Name:           "web-index",
			Kind:           KindVideo,
			Provider:       ProviderWeb,
			Query:          subject + " tutorial site:youtube.com",
			Filter:         FilterProfile{ExcludeShortForm: true},
			DomainKeywords: domainTerms,
		})
	}
	if g.opt.Feeds {
		out = append(out, Strategy{
			Name:           "channel-feeds",
			Kind:           KindVideo,
			Provider:       ProviderFeeds,
			Query:          subject,
			Filter:         FilterProfile{ExcludeShortForm: true, PreferRecent: true},
			DomainKeywords: domainTerms,
			RecencyFocused: true,
		})
	}
	if g.opt.Suggest {
		out = append(out, Strategy{
			Name:           "assistant-suggestions",
			Kind:           KindVideo,
			Provider:       ProviderSuggest,
			Query:          subject + " tutorial",
			Params:         suggestParams(req),
			Filter:         FilterProfile{ExcludeShortForm: true},
			DomainKeywords: domainTerms,
		})
	}
	return out
}

func (g *Generator) repoStrategies(subject string, req Request) []Strategy {
	kw := g.cfg.Keywords
	domainTerms := kw.DomainTerms(req.Domain)
	year := g.cfg.now().Year()

	implTerm := ""
	if tech := kw.TechStack(subject, req.Domain, req.Aux); len(tech) > 0 {
		implTerm = tech[0]
	} else if pt := kw.ProjectTypeTerms(req.ProjectType); len(pt) > 0 {
		implTerm = pt[0]
	} else if len(domainTerms) > 0 {
		implTerm = domainTerms[0]
	}
	impl := subject
	if implTerm != "" && !containsWord(strings.ToLower(subject), implTerm) {
		impl += " " + implTerm
	}

	coverage := FilterProfile{MinSubjectCoverage: 0.4}

	out := []Strategy{
		{
			Name:           "repo-implementation",
			Kind:           KindRepository,
			Provider:       ProviderGitHub,
			Query:          impl,
			Params:         map[string]string{"sort": "stars"},
			Filter:         coverage,
			DomainKeywords: domainTerms,
		},
		{
			Name:     "repo-complete-project",
			Kind:     KindRepository,
			Provider: ProviderGitHub,
			Query:    subject + " project",
			Filter: FilterProfile{
				MinSubjectCoverage:    0.4,
				BoostCompleteProjects: true,
			},
			DomainKeywords: domainTerms,
		},
	}

	if len(domainTerms) > 0 {
		out = append(out, Strategy{
			Name:     "repo-domain",
			Kind:     KindRepository,
			Provider: ProviderGitHub,
			Query:    subject + " " + domainTerms[0],
			Params:   map[string]string{"sort": "stars"},
			Filter: FilterProfile{
				MinSubjectCoverage: 0.4,
				RequireDomainMatch: true,
				MinPopularity:      10,
			},
			DomainKeywords: domainTerms,
		})
	}

	out = append(out, Strategy{
		Name:           "repo-recent",
		Kind:           KindRepository,
		Provider:       ProviderGitHub,
		Query:          subject + " pushed:>" + strconv.Itoa(year-1) + "-01-01",
		Params:         map[string]string{"sort": "updated"},
		Filter:         FilterProfile{MinSubjectCoverage: 0.4, PreferRecent: true},
		DomainKeywords: domainTerms,
		RecencyFocused: true,
	})

	if g.opt.Web {
		out = append(out, Strategy{
			Name:           "repo-web-index",
			Kind:           KindRepository,
			Provider:       ProviderWeb,
			Query:          subject + " site:github.com",
			Filter:         coverage,
			DomainKeywords: domainTerms,
		})
	}
	return out
}

// suggestParams carries the request context the suggestion provider folds into its prompt.
func suggestParams(req Request) map[string]string {
	p := map[string]string{}
	if d := strings.TrimSpace(req.Domain); d != "" {
		p["domain"] = d
	}
	if c := strings.TrimSpace(req.Complexity); c != "" {
		p["complexity"] = c
	}
	if a := joinValues(req.Aux); a != "" {
		p["context"] = a
	}
	return p
}
