package resources

import "strings"

var (
	requiredTechTerms = []string{"code", "programming", "implementation", "tutorial", "guide", "build"}
	lowValueRepoTerms = []string{"test", "hello-world", "practice", "homework", "assignment", "copy", "clone"}
)

// Filter drops candidates that fail a strategy's declared constraints.
type Filter struct {
	cfg Config
}

// NewFilter returns a Filter bound to cfg's thresholds.
func NewFilter(cfg Config) *Filter {
	return &Filter{cfg: cfg}
}

// Apply keeps the candidates that pass every constraint st declares, preserving order.
// A zero threshold or false flag never drops anything.
func (f *Filter) Apply(cands []Candidate, st Strategy) []Candidate {
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if f.Reject(c, st) == "" {
			out = append(out, c)
		}
	}
	return out
}

// Reject returns the name of the first failed constraint, or "" when c passes.
func (f *Filter) Reject(c Candidate, st Strategy) string {
	fp := st.Filter
	title := strings.ToLower(c.Title)
	desc := strings.ToLower(c.Description)

	if link, _, ok := Canonical(st.Kind, c.SourceID); !ok || link != c.SourceID {
		return "link_shape"
	}
	if fp.MinDurationSeconds > 0 && c.DurationSeconds > 0 && c.DurationSeconds < fp.MinDurationSeconds {
		return "min_duration"
	}
	if fp.ExcludeShortForm && isShortForm(c, title) {
		return "short_form"
	}
	if fp.RequireTechnical && !containsAny(title, requiredTechTerms) && !containsAny(desc, requiredTechTerms) {
		return "technical"
	}
	if fp.RequireDomainMatch && len(st.DomainKeywords) > 0 && !containsAny(title+" "+desc, lowerAll(st.DomainKeywords)) {
		return "domain"
	}
	if fp.MinPopularity > 0 && c.Popularity < fp.MinPopularity {
		return "min_popularity"
	}
	if fp.MinSubjectCoverage > 0 {
		haystack := title + " " + desc + " " + strings.ToLower(c.SourceID)
		required := fp.MinSubjectCoverage
		if hasLowValueMarker(haystack) {
			required = max(required, f.cfg.LowValueCoverage)
		}
		if cov, ok := subjectCoverage(st.Subject, haystack); ok && cov < required {
			return "subject_coverage"
		}
	}
	if c.Score < f.cfg.MinRelevance(st.Kind) {
		return "min_relevance"
	}
	return ""
}

// isShortForm reports short-form markers: a /shorts/ link, "#shorts" or a "shorts" title word,
// or a known duration under a minute.
func isShortForm(c Candidate, title string) bool {
	if c.ShortForm || strings.Contains(title, "#shorts") || containsWord(title, "shorts") {
		return true
	}
	return c.DurationSeconds > 0 && c.DurationSeconds < 60
}

func hasLowValueMarker(text string) bool {
	for _, m := range lowValueRepoTerms {
		if containsWord(text, m) {
			return true
		}
	}
	return false
}

// subjectCoverage is the fraction of subject words found in text; ok is false for an empty subject.
func subjectCoverage(subject, text string) (float64, bool) {
	sw := subjectWords(subject)
	if len(sw) == 0 {
		return 0, false
	}
	hits := 0
	for _, w := range sw {
		if strings.Contains(text, w) {
			hits++
		}
	}
	return float64(hits) / float64(len(sw)), true
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if t != "" && strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
