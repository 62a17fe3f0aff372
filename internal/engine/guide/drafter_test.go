package guide

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/anatolykoptev/go_guide/internal/engine"
	"github.com/anatolykoptev/go_guide/internal/engine/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResources struct {
	mu   sync.Mutex
	reqs []resources.Request
	err  error
}

func (s *stubResources) RankedResources(ctx context.Context, req resources.Request) ([]string, error) {
	s.mu.Lock()
	s.reqs = append(s.reqs, req)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if req.Kind == resources.KindRepository {
		return []string{"https://github.com/user/smart-irrigation"}, nil
	}
	return []string{"https://www.youtube.com/watch?v=abcdefghij1"}, nil
}

func stubLLM(answer string, err error) *engine.LLM {
	return engine.NewLLM(func(ctx context.Context, system, prompt string) (string, error) {
		return answer, err
	}, 0)
}

func TestDraftGenerated(t *testing.T) {
	answer := "```json\n" + `{
		"title": "Smart Irrigation System",
		"short_description": "Waters plants when the soil is dry.",
		"detailed_description": "Step 1 ...",
		"components": [{"name": "ESP32", "purpose": "controller", "specs": "dual core"}, {"name": " "}],
		"frameworks": ["Arduino IDE", ""],
		"difficulty_level": "Intermediate",
		"estimated_time": "3 weeks",
	}` + "\n```"
	res := &stubResources{}
	d := NewDrafter(stubLLM(answer, nil), res)

	g, err := d.Draft(context.Background(), Request{
		Subject:    "  Smart   Irrigation System ",
		Field:      "Electrical Engineering",
		Complexity: "Intermediate - some experience",
		Answers:    map[string]string{"sensors": "soil moisture"},
	})
	require.NoError(t, err)
	assert.True(t, g.Generated)
	assert.Equal(t, "Smart Irrigation System", g.Title)
	assert.Equal(t, []Component{{Name: "ESP32", Purpose: "controller", Specs: "dual core"}}, g.Components)
	assert.Equal(t, []string{"Arduino IDE"}, g.Frameworks)
	assert.Equal(t, "3 weeks", g.EstimatedTime)
	assert.Equal(t, []string{"https://www.youtube.com/watch?v=abcdefghij1"}, g.Videos)
	assert.Equal(t, []string{"https://github.com/user/smart-irrigation"}, g.Repositories)

	require.Len(t, res.reqs, 2)
	for _, r := range res.reqs {
		assert.Equal(t, "Smart Irrigation System", r.Subject)
		assert.Equal(t, "Electrical Engineering", r.Domain)
		assert.Equal(t, "soil moisture", r.Aux["sensors"])
	}
}

func TestDraftFallback(t *testing.T) {
	d := NewDrafter(stubLLM("", errors.New("quota")), &stubResources{err: errors.New("boom")})
	g, err := d.Draft(context.Background(), Request{Subject: "Line Follower", Field: "⚡ Electrical & Electronics", Complexity: "Beginner - new"})
	require.NoError(t, err)
	assert.False(t, g.Generated)
	assert.Equal(t, "Line Follower", g.Title)
	assert.Equal(t, "Beginner", g.DifficultyLevel)
	assert.Equal(t, "4-8 weeks", g.EstimatedTime)
	assert.Contains(t, g.DetailedDescription, "Line Follower is a beginner level project")
	assert.Equal(t, "Microcontroller", g.Components[0].Name)
	assert.Contains(t, g.Frameworks, "KiCad")
	assert.Equal(t, resources.SearchURLs("Line Follower", "⚡ Electrical & Electronics", resources.KindVideo), g.Videos)
	assert.Len(t, g.Repositories, 6)
}

func TestDraftWithoutCollaborators(t *testing.T) {
	d := NewDrafter(nil, nil)
	g, err := d.Draft(context.Background(), Request{Subject: "Chess engine"})
	require.NoError(t, err)
	assert.False(t, g.Generated)
	assert.Equal(t, "Development Environment", g.Components[0].Name)
	assert.Len(t, g.Videos, 4)

	_, err = d.Draft(context.Background(), Request{Subject: " \t"})
	assert.ErrorIs(t, err, ErrInvalidSubject)
}

func TestTrending(t *testing.T) {
	var ideas []string
	for range 8 {
		ideas = append(ideas, `{"title":"Idea","difficulty":"Beginner"}`)
	}
	answer := `Here you go: {"projects": [` + strings.Join(ideas, ",") + `, {"title": ""}]}`

	got, generated := NewDrafter(stubLLM(answer, nil), nil).Trending(context.Background(), "Computing")
	assert.Len(t, got, 6)
	assert.True(t, generated)

	fallback, generated := NewDrafter(stubLLM("not json", nil), nil).Trending(context.Background(), "Electrical & Electronics")
	require.NotEmpty(t, fallback)
	assert.False(t, generated)
	assert.Equal(t, "Solar Panel Monitoring System", fallback[0].Title)

	other, generated := NewDrafter(nil, nil).Trending(context.Background(), "Aerospace")
	assert.False(t, generated)
	assert.Equal(t, "AI Chatbot with RAG", other[0].Title)
}

func TestRefinementQuestion(t *testing.T) {
	q, err := NewDrafter(stubLLM(`"Which sensors will you use?"`, nil), nil).
		RefinementQuestion(context.Background(), Request{Subject: "Weather Station"})
	require.NoError(t, err)
	assert.Equal(t, "Which sensors will you use?", q)

	d := NewDrafter(nil, nil)
	first, err := d.RefinementQuestion(context.Background(), Request{Subject: "Weather Station"})
	require.NoError(t, err)
	second, err := d.RefinementQuestion(context.Background(), Request{
		Subject: "Weather Station",
		Answers: map[string]string{"features": "rain gauge"},
	})
	require.NoError(t, err)
	assert.Equal(t, "What specific features would you like to include in your Weather Station?", first)
	assert.NotEqual(t, first, second)
	assert.Contains(t, second, "Weather Station")

	_, err = d.RefinementQuestion(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrInvalidSubject)
}

func TestClassifyField(t *testing.T) {
	tests := []struct {
		field string
		want  fieldKind
	}{
		{"", fieldComputing},
		{"💻 Computing & Software", fieldComputing},
		{"Electrical Engineering", fieldElectrical},
		{"⚙️ Mechanical & Manufacturing", fieldMechanical},
		{"Civil", fieldCivil},
		{"Chemical & Materials", fieldChemical},
		{"Aerospace", fieldOther},
	}
	for _, tt := range tests {
		if got := classifyField(tt.field); got != tt.want {
			t.Errorf("classifyField(%q) = %v, want %v", tt.field, got, tt.want)
		}
	}
}

func TestFallbackIdeasPerField(t *testing.T) {
	for _, field := range []string{"Computing", "Electrical", "Mechanical", "Civil", "Chemical", "Aerospace"} {
		t.Run(field, func(t *testing.T) {
			ideas := fallbackIdeas(field)
			if len(ideas) != maxIdeas {
				t.Fatalf("got %d ideas, want %d", len(ideas), maxIdeas)
			}
			seen := make(map[string]bool)
			for _, idea := range ideas {
				if idea.Title == "" || seen[idea.Title] {
					t.Errorf("empty or duplicate title %q", idea.Title)
				}
				seen[idea.Title] = true
			}
		})
	}
}
