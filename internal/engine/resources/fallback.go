package resources

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
)

const (
	videoSearchBase = "https://www.youtube.com/results?search_query="
	repoSearchBase  = "https://github.com/search?q="

	directVideoLimit = 4
	directRepoLimit  = 6
)

// Fallback produces links when the pipeline yields nothing.
type Fallback struct {
	invoker *Invoker
	parser  *Parser
}

// NewFallback returns a Fallback. A nil invoker disables the direct attempt.
func NewFallback(invoker *Invoker, parser *Parser) *Fallback {
	return &Fallback{invoker: invoker, parser: parser}
}

// Links makes one simplified direct provider call and returns its canonical links.
// When that yields nothing it returns the deterministic SearchURLs.
func (f *Fallback) Links(ctx context.Context, subject, domain string, kind Kind) []string {
	if links := f.direct(ctx, subject, domain, kind); len(links) > 0 {
		return links
	}
	return SearchURLs(subject, domain, kind)
}

func (f *Fallback) direct(ctx context.Context, subject, domain string, kind Kind) []string {
	if f == nil || f.invoker == nil || f.parser == nil {
		return nil
	}
	subject = strings.Join(strings.Fields(subject), " ")
	st := Strategy{
		Name:     "fallback-direct",
		Kind:     kind,
		Subject:  subject,
		Provider: ProviderYouTube,
		Query:    subject + " tutorial",
	}
	limit := directVideoLimit
	if kind == KindRepository {
		st.Provider = ProviderGitHub
		st.Query = joinQuery(subject, domain, "project")
		limit = directRepoLimit
	}
	if !f.invoker.Has(st.Provider) {
		return nil
	}

	a := f.invoker.Invoke(ctx, st)
	if a.Err != nil {
		slog.Debug("resources: direct fallback failed", slog.String("provider", st.Provider), slog.Any("error", a.Err))
		return nil
	}
	cands, _ := f.parser.Parse(a.Response, st, subject)
	var out []string
	for _, c := range Dedupe(cands) {
		if kind == KindVideo && c.ShortForm {
			continue
		}
		out = append(out, c.SourceID)
		if len(out) == limit {
			break
		}
	}
	return out
}

// SearchURLs builds the provider search-page URLs for subject. Never empty for a non-empty subject.
func SearchURLs(subject, domain string, kind Kind) []string {
	subject = strings.Join(strings.Fields(subject), " ")
	domain = strings.Join(strings.Fields(domain), " ")
	if subject == "" {
		return nil
	}

	if kind == KindRepository {
		third := joinQuery(domain, subject)
		if domain == "" {
			third = subject + " open source"
		}
		queries := []string{
			subject + " project implementation",
			subject + " source code example",
			third,
			subject + " tutorial repository",
			"awesome " + subject + " projects",
			subject + " complete implementation",
		}
		out := make([]string, len(queries))
		for i, q := range queries {
			out[i] = repoSearchBase + url.QueryEscape(q) + "&type=repositories"
		}
		return out
	}

	last := subject + " step by step"
	if domain != "" {
		last = subject + " " + domain + " tutorial"
	}
	queries := []string{
		subject + " tutorial",
		subject + " complete guide",
		"how to build " + subject,
		last,
	}
	out := make([]string, len(queries))
	for i, q := range queries {
		out[i] = videoSearchBase + url.QueryEscape(q)
	}
	return out
}

// joinQuery joins the non-empty parts with single spaces.
func joinQuery(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
