package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_guide/internal/engine"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// AttemptReport summarises one strategy of a run.
type AttemptReport struct {
	Strategy  string   `json:"strategy"`
	Provider  string   `json:"provider"`
	Query     string   `json:"query"`
	Parsed    int      `json:"parsed"`
	Kept      int      `json:"kept"`
	Reasons   []string `json:"reasons,omitempty"`
	ElapsedMs int64    `json:"elapsed_ms"`
}

// Report is the full outcome of a pipeline run.
type Report struct {
	RunID      string          `json:"run_id"`
	Kind       Kind            `json:"kind"`
	Subject    string          `json:"subject"`
	Strategies []Strategy      `json:"strategies"`
	Attempts   []AttemptReport `json:"attempts"`
	Candidates []Candidate     `json:"candidates"`
	Links      []string        `json:"links"`
	Fallback   bool            `json:"fallback"`
}

// Service runs the strategy → invoke → parse → score → filter → rank → fallback pipeline.
type Service struct {
	cfg      Config
	gen      *Generator
	invoker  *Invoker
	parser   *Parser
	filter   *Filter
	ranker   *Ranker
	fallback *Fallback
	cache    *engine.Cache
}

// NewService wires the pipeline components. Optional strategies are planned only for the
// providers present in providers. cache may be nil.
func NewService(cfg Config, providers map[string]Provider, cache *engine.Cache) *Service {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = DefaultConfig().PoolSize
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = 1
	}
	inv := NewInvoker(cfg, providers)
	parser := NewParser(cfg, NewScorer(cfg))
	return &Service{
		cfg: cfg,
		gen: NewGenerator(cfg, Optional{
			Web:     inv.Has(ProviderWeb),
			Feeds:   inv.Has(ProviderFeeds),
			Suggest: inv.Has(ProviderSuggest),
		}),
		invoker:  inv,
		parser:   parser,
		filter:   NewFilter(cfg),
		ranker:   NewRanker(cfg),
		fallback: NewFallback(inv, parser),
		cache:    cache,
	}
}

// Strategies returns the plan for req without running it.
func (s *Service) Strategies(req Request) ([]Strategy, error) {
	if strings.TrimSpace(req.Subject) == "" {
		return nil, fmt.Errorf("strategies: %w", ErrInvalidSubject)
	}
	return s.gen.Generate(normalize(req)), nil
}

// Fallback returns fallback links for subject, including the direct provider attempt.
func (s *Service) Fallback(ctx context.Context, subject, domain string, kind Kind) ([]string, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, fmt.Errorf("fallback: %w", ErrInvalidSubject)
	}
	return s.fallback.Links(ctx, subject, domain, kind), nil
}

// RankedResources returns at most the kind's limit of URLs, best first. It fails only for an
// empty subject; provider failures degrade to fallback links.
func (s *Service) RankedResources(ctx context.Context, req Request) ([]string, error) {
	rep, err := s.Rank(ctx, req)
	if err != nil {
		return nil, err
	}
	return rep.Links, nil
}

// Rank runs the pipeline and returns the full report.
func (s *Service) Rank(ctx context.Context, req Request) (Report, error) {
	if strings.TrimSpace(req.Subject) == "" {
		return Report{}, fmt.Errorf("rank resources: %w", ErrInvalidSubject)
	}
	req = normalize(req)

	key := cacheKey(req, s.cfg.now().Year())
	if data, ok := s.cache.Get(ctx, key); ok {
		var rep Report
		if err := json.Unmarshal(data, &rep); err == nil {
			return rep, nil
		}
	}

	var rep Report
	_ = engine.TrackOperation(ctx, "resources.rank", func(ctx context.Context) error {
		rep = s.run(ctx, req)
		return nil
	})

	if !rep.Fallback {
		if data, err := json.Marshal(rep); err == nil {
			s.cache.Set(ctx, key, data)
		}
	}
	return rep, nil
}

type slot struct {
	attempt Attempt
	parsed  []Candidate
	kept    []Candidate
	parse   ParseReport
}

func (s *Service) run(ctx context.Context, req Request) Report {
	engine.IncrPipelineRun()
	rep := Report{RunID: uuid.NewString(), Kind: req.Kind, Subject: req.Subject}

	strategies := s.gen.Generate(req)
	rep.Strategies = strategies

	// Each goroutine owns its slot; a failing strategy never cancels its siblings.
	slots := make([]slot, len(strategies))
	var g errgroup.Group
	g.SetLimit(s.cfg.Parallelism)
	for i, st := range strategies {
		g.Go(func() error {
			a := s.invoker.Invoke(ctx, st)
			parsed, pr := s.parser.Parse(a.Response, st, st.Subject)
			slots[i] = slot{attempt: a, parsed: parsed, kept: s.filter.Apply(parsed, st), parse: pr}
			return nil
		})
	}
	_ = g.Wait()

	var merged []Candidate
	parsedTotal := 0
	for _, sl := range slots {
		merged = append(merged, sl.kept...)
		parsedTotal += len(sl.parsed)
		rep.Attempts = append(rep.Attempts, attemptReport(sl))
	}
	engine.IncrCandidatesParsed(parsedTotal)
	engine.IncrCandidatesDropped(parsedTotal - len(merged))

	rep.Candidates = s.ranker.Rank(merged)
	if len(rep.Candidates) > 0 {
		limit := s.cfg.Limit(req.Kind)
		for i, c := range rep.Candidates {
			if i == limit {
				break
			}
			rep.Links = append(rep.Links, c.SourceID)
		}
		slog.Debug("resources: ranked",
			slog.String("run", rep.RunID), slog.String("kind", string(req.Kind)),
			slog.Int("strategies", len(strategies)), slog.Int("parsed", parsedTotal),
			slog.Int("ranked", len(rep.Candidates)))
		return rep
	}

	engine.IncrFallbackUsed()
	rep.Fallback = true
	rep.Links = s.fallback.Links(ctx, req.Subject, req.Domain, req.Kind)
	slog.Warn("resources: no candidates survived, using fallback",
		slog.String("run", rep.RunID), slog.String("subject", req.Subject),
		slog.String("kind", string(req.Kind)), slog.Int("links", len(rep.Links)))
	return rep
}

func attemptReport(sl slot) AttemptReport {
	st := sl.attempt.Strategy
	ar := AttemptReport{
		Strategy:  st.Name,
		Provider:  st.Provider,
		Query:     st.Query,
		Parsed:    len(sl.parsed),
		Kept:      len(sl.kept),
		ElapsedMs: sl.attempt.Elapsed.Milliseconds(),
	}
	if sl.attempt.Err != nil {
		ar.Reasons = append(ar.Reasons, sl.attempt.Err.Error())
	}
	for _, r := range sl.parse.Reasons {
		if sl.attempt.Err != nil && r == sl.attempt.Err {
			continue
		}
		ar.Reasons = append(ar.Reasons, r.Error())
	}
	return ar
}

func normalize(req Request) Request {
	req.Subject = strings.Join(strings.Fields(req.Subject), " ")
	req.Domain = strings.TrimSpace(req.Domain)
	if req.Kind == "" {
		req.Kind = KindVideo
	}
	return req
}

func cacheKey(req Request, year int) string {
	keys := make([]string, 0, len(req.Aux))
	for k := range req.Aux {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := []string{"rank", string(req.Kind), strings.ToLower(req.Subject), strings.ToLower(req.Domain),
		strings.ToLower(req.Complexity), strings.ToLower(req.ProjectType), strconv.Itoa(year)}
	for _, k := range keys {
		parts = append(parts, k+"="+req.Aux[k])
	}
	return engine.CacheKey(parts...)
}
