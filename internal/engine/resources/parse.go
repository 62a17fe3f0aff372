package resources

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// ParseReport records what happened while parsing one response.
type ParseReport struct {
	Emitted int
	Skipped int
	Reasons []error
}

func (r *ParseReport) note(err error) {
	for _, e := range r.Reasons {
		if errors.Is(e, err) {
			return
		}
	}
	r.Reasons = append(r.Reasons, err)
}

// Has reports whether target was recorded as a parse reason.
func (r ParseReport) Has(target error) bool {
	for _, e := range r.Reasons {
		if errors.Is(e, target) {
			return true
		}
	}
	return false
}

const (
	placeholderVideo      = "YouTube Video"
	placeholderVideoBatch = "YouTube Tutorial"
	placeholderRepo       = "GitHub Repository"
)

// Parser turns provider responses into candidates with provisional scores.
type Parser struct {
	weights Weights
	score   func(Candidate, string, Strategy) int
}

// NewParser returns a Parser that scores labelled records with scorer.
func NewParser(cfg Config, scorer *Scorer) *Parser {
	return &Parser{weights: cfg.Weights, score: scorer.Score}
}

// Parse dispatches on the response variant. Candidates keep discovery order.
func (p *Parser) Parse(resp Response, st Strategy, subject string) ([]Candidate, ParseReport) {
	var rep ParseReport
	switch r := resp.(type) {
	case Structured:
		out := p.parseRecords(r.Records, st, subject, &rep)
		return out, rep
	case Prose:
		if recs, err := embeddedRecords(r.Text); err == nil {
			out := p.parseRecords(recs, st, subject, &rep)
			if len(out) > 0 {
				return out, rep
			}
		} else {
			rep.note(err)
		}
		out := p.parseProse(r.Text, st, subject, &rep)
		return out, rep
	case Empty:
		if r.Reason != nil {
			rep.note(r.Reason)
		}
		return nil, rep
	default:
		rep.note(fmt.Errorf("%w: response type %T", ErrMalformedRecord, resp))
		return nil, rep
	}
}

func (p *Parser) parseRecords(recs []Record, st Strategy, subject string, rep *ParseReport) []Candidate {
	seen := make(map[string]bool, len(recs))
	out := make([]Candidate, 0, len(recs))
	for _, rec := range recs {
		link, short, ok := Canonical(st.Kind, rec.URL)
		if !ok {
			rep.Skipped++
			rep.note(ErrMalformedRecord)
			continue
		}
		if seen[link] {
			continue
		}
		seen[link] = true
		c := Candidate{
			SourceID:        link,
			Title:           strings.TrimSpace(rec.Title),
			Description:     strings.TrimSpace(rec.Description),
			Channel:         strings.TrimSpace(rec.Channel),
			Popularity:      max(rec.Popularity, 0),
			DurationSeconds: max(rec.DurationSeconds, 0),
			Fork:            rec.Fork,
			ShortForm:       short,
			PublishedAt:     rec.PublishedAt,
			Origin:          st.Name,
			Recent:          st.RecencyFocused,
		}
		if c.Title == "" {
			c.Title = placeholder(st.Kind, false)
		}
		if c.Channel == "" && st.Kind == KindRepository {
			c.Channel = repoOwner(link)
		}
		c.Score = p.score(c, subject, st)
		out = append(out, c)
	}
	rep.Emitted += len(out)
	return out
}

var (
	// Optional bullets, numbering, emoji and markdown emphasis before a "Label:" prefix.
	labelRe = regexp.MustCompile(`(?i)^[\s\p{So}\p{Sk}\p{M}\p{Cf}*•·\->#\d.)\]\[]*` +
		`(title|name|repository|repo|duration|length|views|view count|stars|channel|owner|author|description|desc|about)` +
		`\s*[:：]\s*(.*)$`)
	fieldSepRe = regexp.MustCompile(`\s+[|│]\s+`)
)

type workingRecord struct {
	title, description, channel string
	duration, popularity        int
	labels                      int
}

func (w *workingRecord) apply(label, value string) {
	value = strings.TrimSpace(strings.Trim(value, "*_` "))
	if value == "" {
		return
	}
	w.labels++
	switch strings.ToLower(label) {
	case "title", "name", "repository", "repo":
		w.title = value
	case "duration", "length":
		w.duration = ParseDuration(value)
	case "views", "view count", "stars":
		w.popularity = ParsePopularity(value)
	case "channel", "owner", "author":
		w.channel = value
	default:
		w.description = value
	}
}

// parseProse scans labelled blocks terminated by link lines. A panic anywhere in the
// scan discards the partial batch and falls back to bare link extraction.
func (p *Parser) parseProse(text string, st Strategy, subject string, rep *ParseReport) (out []Candidate) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("resources: prose parse failed, extracting bare links",
				slog.String("strategy", st.Name), slog.Any("panic", r))
			rep.note(ErrBatchParse)
			out = p.bareLinks(findLinks(st.Kind, text), st, p.weights.BatchFallback, placeholder(st.Kind, true))
			rep.Emitted = len(out)
		}
	}()

	emitted := make(map[string]bool)
	var cur workingRecord
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		links := findLinks(st.Kind, line)
		for _, seg := range fieldSepRe.Split(line, -1) {
			m := labelRe.FindStringSubmatch(seg)
			if m == nil {
				continue
			}
			value := m[2]
			if len(links) > 0 {
				value = stripLinks(st.Kind, value)
			}
			cur.apply(m[1], value)
		}
		if len(links) == 0 {
			continue
		}
		link := links[0]
		if emitted[link.URL] {
			cur = workingRecord{}
			continue
		}
		if cur.labels == 0 {
			// Link without a preceding label block.
			rep.note(ErrUnlabeledRecord)
			out = append(out, p.bareLinks(links[:1], st, p.weights.BareLink, placeholder(st.Kind, false))...)
			emitted[link.URL] = true
			continue
		}
		out = append(out, p.finalize(cur, link, st, subject))
		emitted[link.URL] = true
		cur = workingRecord{}
	}

	var leftover []foundLink
	for _, link := range findLinks(st.Kind, text) {
		if !emitted[link.URL] {
			leftover = append(leftover, link)
		}
	}
	if len(leftover) > 0 {
		rep.note(ErrUnlabeledRecord)
		out = append(out, p.bareLinks(leftover, st, p.weights.BareLink, placeholder(st.Kind, false))...)
	}
	rep.Emitted += len(out)
	return out
}

func (p *Parser) finalize(w workingRecord, link foundLink, st Strategy, subject string) Candidate {
	c := Candidate{
		SourceID:        link.URL,
		Title:           w.title,
		Description:     w.description,
		Channel:         w.channel,
		Popularity:      max(w.popularity, 0),
		DurationSeconds: max(w.duration, 0),
		ShortForm:       link.Short,
		Origin:          st.Name,
		Recent:          st.RecencyFocused,
	}
	if c.Title == "" {
		c.Title = placeholder(st.Kind, false)
	}
	if c.Channel == "" && st.Kind == KindRepository {
		c.Channel = repoOwner(link.URL)
	}
	c.Score = p.score(c, subject, st)
	return c
}

// bareLinks emits minimal candidates with a fixed score.
func (p *Parser) bareLinks(links []foundLink, st Strategy, score int, title string) []Candidate {
	out := make([]Candidate, 0, len(links))
	for _, link := range links {
		c := Candidate{
			SourceID:  link.URL,
			Title:     title,
			ShortForm: link.Short,
			Origin:    st.Name,
			Recent:    st.RecencyFocused,
			Score:     score,
		}
		if st.Kind == KindRepository {
			c.Channel = repoOwner(link.URL)
		}
		out = append(out, c)
	}
	return out
}

func placeholder(kind Kind, batch bool) string {
	switch {
	case kind == KindRepository:
		return placeholderRepo
	case batch:
		return placeholderVideoBatch
	default:
		return placeholderVideo
	}
}

// stripLinks drops every whitespace-separated token that carries a canonical link.
func stripLinks(kind Kind, value string) string {
	fields := strings.Fields(value)
	kept := fields[:0]
	for _, f := range fields {
		if !hasCanonicalLink(kind, f) {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

// proseRecord is the loose JSON shape accepted inside prose responses.
type proseRecord struct {
	Title       string          `json:"title"`
	Name        string          `json:"name"`
	FullName    string          `json:"full_name"`
	URL         string          `json:"url"`
	Link        string          `json:"link"`
	HTMLURL     string          `json:"html_url"`
	Description string          `json:"description"`
	Channel     string          `json:"channel"`
	Owner       string          `json:"owner"`
	Duration    json.RawMessage `json:"duration"`
	Views       json.RawMessage `json:"views"`
	Stars       json.RawMessage `json:"stars"`
	Fork        bool            `json:"fork"`
}

// embeddedRecords decodes the widest [...] span of text as a JSON array of records.
func embeddedRecords(text string) ([]Record, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil, ErrNoStructuredJSON
	}
	var raw []proseRecord
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoStructuredJSON, err)
	}
	out := make([]Record, 0, len(raw))
	for _, r := range raw {
		rec := Record{
			Title:           firstNonEmpty(r.Title, r.Name, r.FullName),
			Description:     r.Description,
			Channel:         firstNonEmpty(r.Channel, r.Owner),
			URL:             firstNonEmpty(r.URL, r.Link, r.HTMLURL),
			DurationSeconds: rawDuration(r.Duration),
			Popularity:      max(rawCount(r.Views), rawCount(r.Stars)),
			Fork:            r.Fork,
		}
		if rec.URL == "" {
			continue
		}
		out = append(out, rec)
	}
	if len(out) == 0 {
		return nil, ErrNoStructuredJSON
	}
	return out, nil
}

// rawDuration accepts seconds as a number or any ParseDuration string.
func rawDuration(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if json.Unmarshal(raw, &n) == nil {
		return clampParsed(n)
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return ParseDuration(s)
	}
	return 0
}

// rawCount accepts a count as a number or any ParsePopularity string.
func rawCount(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if json.Unmarshal(raw, &n) == nil {
		return clampParsed(n)
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return ParsePopularity(s)
	}
	return 0
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
