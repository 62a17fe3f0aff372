package resources

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Now = func() time.Time { return fixedNow }
	cfg.ProviderTimeout = 500 * time.Millisecond
	cfg.ProviderRate = 0
	return cfg
}

func strategyNames(ss []Strategy) []string {
	names := make([]string, len(ss))
	for i, s := range ss {
		names[i] = s.Name
	}
	return names
}

func TestGenerateVideoStrategies(t *testing.T) {
	g := NewGenerator(testConfig(), Optional{})
	got := g.Generate(Request{
		Subject:    "  Smart   Irrigation System ",
		Domain:     "Electrical Engineering",
		Complexity: "Beginner",
		Kind:       KindVideo,
	})

	wantNames := []string{"deep-tutorial", "build-guide", "domain-expert", "recency"}
	if diff := cmp.Diff(wantNames, strategyNames(got)); diff != "" {
		t.Fatalf("strategy names mismatch (-want +got):\n%s", diff)
	}

	wantQueries := []string{
		"Smart Irrigation System tutorial complete beginner",
		"build Smart Irrigation System step by step",
		"Smart Irrigation System Electrical Engineering guide",
		"Smart Irrigation System 2026 tutorial",
	}
	for i, q := range wantQueries {
		if got[i].Query != q {
			t.Errorf("%s query = %q, want %q", got[i].Name, got[i].Query, q)
		}
		if got[i].Subject != "Smart Irrigation System" {
			t.Errorf("%s subject = %q", got[i].Name, got[i].Subject)
		}
	}

	deep := got[0]
	if deep.Filter.MinDurationSeconds != 240 || !deep.Filter.ExcludeShortForm || !deep.Filter.RequireTechnical {
		t.Errorf("deep-tutorial filter = %+v", deep.Filter)
	}
	if deep.Param("videoDuration") != "medium" || deep.Param("order") != "relevance" {
		t.Errorf("deep-tutorial params = %v", deep.Params)
	}
	if got[1].Filter.MinDurationSeconds != 600 || !got[1].Filter.PreferStepByStep {
		t.Errorf("build-guide filter = %+v", got[1].Filter)
	}
	expert := got[2]
	if expert.Filter.MinPopularity != 1000 || !expert.Filter.RequireDomainMatch {
		t.Errorf("domain-expert filter = %+v", expert.Filter)
	}
	if diff := cmp.Diff([]string{"electronics", "circuit", "embedded"}, expert.DomainKeywords); diff != "" {
		t.Errorf("domain keywords mismatch (-want +got):\n%s", diff)
	}
	if !got[3].RecencyFocused || got[3].Param("order") != "date" {
		t.Errorf("recency strategy = %+v", got[3])
	}
}

func TestGenerateWithoutDomainOrContext(t *testing.T) {
	g := NewGenerator(testConfig(), Optional{})
	got := g.Generate(Request{Subject: "chess engine"})
	want := []string{"deep-tutorial", "build-guide", "recency"}
	if diff := cmp.Diff(want, strategyNames(got)); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if got[0].Query != "chess engine tutorial complete" {
		t.Errorf("unrecognised complexity should not extend the query: %q", got[0].Query)
	}
}

func TestGenerateUnknownDomainSkipsExpert(t *testing.T) {
	g := NewGenerator(testConfig(), Optional{})
	got := g.Generate(Request{Subject: "chess engine", Domain: "Philosophy"})
	for _, s := range got {
		if s.Name == "domain-expert" {
			t.Fatal("domain-expert planned for a domain without keywords")
		}
	}
}

func TestGenerateOptionalProviders(t *testing.T) {
	g := NewGenerator(testConfig(), Optional{Web: true, Feeds: true, Suggest: true})
	got := g.Generate(Request{Subject: "line follower robot", Domain: "robotics", Aux: map[string]string{"q1": "arduino"}})
	want := []string{"deep-tutorial", "build-guide", "domain-expert", "recency", "web-index", "channel-feeds", "assistant-suggestions"}
	if diff := cmp.Diff(want, strategyNames(got)); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if got[4].Provider != ProviderWeb || got[4].Query != "line follower robot tutorial site:youtube.com" {
		t.Errorf("web-index = %+v", got[4])
	}
	if got[6].Param("domain") != "robotics" || got[6].Param("context") != "arduino" {
		t.Errorf("suggest params = %v", got[6].Params)
	}
}

func TestGenerateRepoStrategies(t *testing.T) {
	g := NewGenerator(testConfig(), Optional{Web: true})
	got := g.Generate(Request{
		Subject: "Smart Irrigation System",
		Domain:  "Electrical Engineering",
		Aux:     map[string]string{"tools": "I want to use an Arduino and ESP32"},
		Kind:    KindRepository,
	})
	want := []string{"repo-implementation", "repo-complete-project", "repo-domain", "repo-recent", "repo-web-index"}
	if diff := cmp.Diff(want, strategyNames(got)); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	queries := map[string]string{
		"repo-implementation":   "Smart Irrigation System arduino",
		"repo-complete-project": "Smart Irrigation System project",
		"repo-domain":           "Smart Irrigation System electronics",
		"repo-recent":           "Smart Irrigation System pushed:>2025-01-01",
		"repo-web-index":        "Smart Irrigation System site:github.com",
	}
	for _, s := range got {
		if s.Query != queries[s.Name] {
			t.Errorf("%s query = %q, want %q", s.Name, s.Query, queries[s.Name])
		}
		if s.Kind != KindRepository {
			t.Errorf("%s kind = %q", s.Name, s.Kind)
		}
		if s.Filter.MinSubjectCoverage != 0.4 {
			t.Errorf("%s coverage = %v, want 0.4", s.Name, s.Filter.MinSubjectCoverage)
		}
	}
}

func TestGenerateInvariants(t *testing.T) {
	g := NewGenerator(testConfig(), Optional{Web: true, Feeds: true, Suggest: true})
	reqs := []Request{
		{Subject: "x"},
		{Subject: "weather station", Domain: "computer", Kind: KindRepository},
		{Subject: "drone", Domain: "aerospace engineering", Complexity: "expert", ProjectType: "mobile app"},
	}
	for _, req := range reqs {
		got := g.Generate(req)
		if len(got) == 0 {
			t.Fatalf("no strategies for %+v", req)
		}
		seen := map[string]bool{}
		for _, s := range got {
			if s.Query == "" {
				t.Errorf("%s: empty query", s.Name)
			}
			if seen[s.Name] {
				t.Errorf("duplicate strategy name %q", s.Name)
			}
			seen[s.Name] = true
		}
	}
	if got := g.Generate(Request{Subject: "   "}); got != nil {
		t.Errorf("blank subject should yield no strategies, got %d", len(got))
	}
}

func TestTechStack(t *testing.T) {
	kw := DefaultKeywords()
	got := kw.TechStack("AI plant doctor", "", map[string]string{"a": "python and opencv please"})
	want := []string{"machine learning", "deep learning", "tensorflow", "opencv", "python"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TechStack mismatch (-want +got):\n%s", diff)
	}
}
