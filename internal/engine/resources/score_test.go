package resources

import "testing"

func TestScore(t *testing.T) {
	s := NewScorer(testConfig())
	tests := []struct {
		name string
		c    Candidate
		st   Strategy
		want int
	}{
		{
			name: "title overlap, quality phrase, duration, views",
			c:    Candidate{Title: "Smart Irrigation Tutorial", DurationSeconds: 600, Popularity: 2500},
			st:   Strategy{Kind: KindVideo},
			want: 10 + 10 + 8 + 10 + 5,
		},
		{
			name: "complete bonus fires on literal title word",
			c:    Candidate{Title: "Complete Smart Irrigation Project"},
			st:   Strategy{Kind: KindVideo, Filter: FilterProfile{BoostCompleteProjects: true}},
			want: 10 + 10 + 8 + 6 + 15,
		},
		{
			name: "description words count once",
			c:    Candidate{Title: "Irrigation", Description: "a smart irrigation system"},
			st:   Strategy{Kind: KindVideo},
			want: 10 + 5 + 5,
		},
		{
			name: "long description with domain word",
			c: Candidate{
				Title:       "Moisture sensor",
				Description: "Wiring a capacitive moisture sensor to a microcontroller with embedded C",
			},
			st:   Strategy{Kind: KindVideo, DomainKeywords: []string{"electronics", "embedded"}},
			want: 3 + 3,
		},
		{
			name: "repository star bands",
			c:    Candidate{Title: "smart-irrigation", Popularity: 120},
			st:   Strategy{Kind: KindRepository},
			want: 10 + 10 + 5,
		},
		{
			name: "expert channel bonus",
			c:    Candidate{Title: "Irrigation", Channel: "Corey Schafer"},
			st:   Strategy{Kind: KindVideo, Filter: FilterProfile{BoostExpertChannels: true}},
			want: 10 + 10,
		},
		{
			name: "long form and step by step",
			c:    Candidate{Title: "Irrigation step by step", DurationSeconds: 4000, Popularity: 200000},
			st:   Strategy{Kind: KindVideo, Filter: FilterProfile{PreferStepByStep: true}},
			want: 10 + 8 + 15 + 10 + 10,
		},
		{
			name: "no signal",
			c:    Candidate{Title: "unrelated"},
			st:   Strategy{Kind: KindVideo},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(tt.c, "Smart Irrigation System", tt.st)
			if got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
			if again := s.Score(tt.c, "Smart Irrigation System", tt.st); again != got {
				t.Errorf("Score() not deterministic: %d then %d", got, again)
			}
		})
	}
}

func TestScoreNeverNegative(t *testing.T) {
	cfg := testConfig()
	cfg.Weights.TitleTerm = -100
	s := NewScorer(cfg)
	if got := s.Score(Candidate{Title: "smart irrigation"}, "smart irrigation", Strategy{}); got != 0 {
		t.Errorf("Score() = %d, want 0", got)
	}
}
