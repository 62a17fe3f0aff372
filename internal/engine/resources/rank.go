package resources

import (
	"sort"
	"strings"
)

var (
	comprehensiveMarkers = []string{"complete", "full course", "comprehensive", "masterclass"}
	lowValueTitleMarkers = []string{"clickbait", "reaction", "prank", "fork"}
)

// Ranker merges, deduplicates and orders candidates from all strategies.
type Ranker struct {
	cfg Config
}

// NewRanker returns a Ranker bound to cfg.
func NewRanker(cfg Config) *Ranker {
	return &Ranker{cfg: cfg}
}

// Dedupe keeps the first candidate seen for each SourceID. Later duplicates are dropped
// without merging their scores.
func Dedupe(cands []Candidate) []Candidate {
	seen := make(map[string]bool, len(cands))
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if c.SourceID == "" || seen[c.SourceID] {
			continue
		}
		seen[c.SourceID] = true
		out = append(out, c)
	}
	return out
}

// Rank dedupes, applies the final adjustments once, sorts by score (stable on ties)
// and truncates to the pool size. The input slice is not modified.
func (r *Ranker) Rank(cands []Candidate) []Candidate {
	out := Dedupe(cands)
	for i := range out {
		out[i].Score = r.adjust(out[i])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if k := r.cfg.PoolSize; k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

func (r *Ranker) adjust(c Candidate) int {
	w := r.cfg.Weights
	title := strings.ToLower(c.Title)
	score := c.Score

	if isReputable(c.Channel, r.cfg.ReputableSources) {
		score += w.Reputable
	}
	if containsAny(title, comprehensiveMarkers) {
		score += w.Comprehensive
	}
	if c.Recent {
		score += w.RecencyOrigin
	}
	if c.DurationSeconds >= 600 && c.DurationSeconds <= 3600 {
		score += w.IdealDuration
	}
	if c.Fork || hasTitleMarker(title, lowValueTitleMarkers) {
		score -= w.LowValuePenalty
	}
	return max(score, 0)
}

func hasTitleMarker(title string, markers []string) bool {
	for _, m := range markers {
		if containsWord(title, m) {
			return true
		}
	}
	return false
}
