package resources

import "strings"

var (
	qualityPhrases = []string{"tutorial", "complete", "full course", "step by step", "guide", "build", "create", "comprehensive"}
	techTerms      = []string{"implementation", "code", "programming", "development", "project"}
)

// Scorer computes the provisional relevance score of a candidate.
type Scorer struct {
	w         Weights
	reputable []string
}

// NewScorer returns a Scorer using cfg's weights and reputable-source list.
func NewScorer(cfg Config) *Scorer {
	return &Scorer{w: cfg.Weights, reputable: cfg.ReputableSources}
}

// Score is deterministic and never negative.
func (s *Scorer) Score(c Candidate, subject string, st Strategy) int {
	w := s.w
	title := strings.ToLower(c.Title)
	desc := strings.ToLower(c.Description)
	score := 0

	for _, word := range subjectWords(subject) {
		switch {
		case strings.Contains(title, word):
			score += w.TitleTerm
		case strings.Contains(desc, word):
			score += w.DescriptionTerm
		}
	}

	for _, phrase := range qualityPhrases {
		if strings.Contains(title, phrase) {
			score += w.QualityPhrase
		}
	}
	for _, term := range techTerms {
		if strings.Contains(title, term) || strings.Contains(desc, term) {
			score += w.TechTerm
		}
	}

	switch d := c.DurationSeconds; {
	case d >= 300 && d <= 3600:
		score += w.DurationSweetSpot
	case d > 3600:
		score += w.DurationLongForm
	}

	score += s.popularity(c.Popularity, st.Kind)

	for _, kw := range st.DomainKeywords {
		if strings.Contains(desc, strings.ToLower(kw)) {
			score += w.DomainInDescription
			break
		}
	}
	if len(c.Description) > 50 {
		score += w.LongDescription
	}

	f := st.Filter
	if f.BoostCompleteProjects && strings.Contains(title, "complete") {
		score += w.BonusComplete
	}
	if f.BoostCodeTutorials && (strings.Contains(title, "code") || strings.Contains(title, "programming")) {
		score += w.BonusCode
	}
	if f.PreferStepByStep && strings.Contains(title, "step by step") {
		score += w.BonusStepByStep
	}
	if f.BoostExpertChannels && isReputable(c.Channel, s.reputable) {
		score += w.BonusExpertChannel
	}

	return max(score, 0)
}

func (s *Scorer) popularity(n int, kind Kind) int {
	w := s.w
	if kind == KindRepository {
		switch {
		case n > 100:
			return w.RepoStars100
		case n > 50:
			return w.RepoStars50
		case n > 10:
			return w.RepoStars10
		}
		return 0
	}
	switch {
	case n > 100_000:
		return w.VideoViews100k
	case n > 10_000:
		return w.VideoViews10k
	case n > 1_000:
		return w.VideoViews1k
	}
	return 0
}

// subjectWords returns the distinct lower-case words of subject with at least two characters.
func subjectWords(subject string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, w := range words(subject) {
		if len(w) < 2 || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

// isReputable matches a channel or owner name against the allow-list.
func isReputable(channel string, list []string) bool {
	ch := strings.ToLower(strings.TrimSpace(channel))
	if ch == "" {
		return false
	}
	for _, r := range list {
		if r != "" && strings.Contains(ch, r) {
			return true
		}
	}
	return false
}
