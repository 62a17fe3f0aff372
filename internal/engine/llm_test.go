package engine

import (
	"context"
	"errors"
	"testing"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\nplain\n```", "plain"},
		{"no fence", "  text  ", "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFences(tt.in); got != tt.want {
				t.Errorf("StripFences() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"plain object", `{"title":"x"}`, `{"title":"x"}`, true},
		{"prose around", `Here you go: {"title":"x"} hope it helps`, `{"title":"x"}`, true},
		{"trailing comma", `{"items":["a","b",],}`, `{"items":["a","b"]}`, true},
		{"no object", `sorry, I cannot`, "", false},
		{"broken", `{"title": "x"`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tt.raw)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ExtractJSONObject() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLLMDisabled(t *testing.T) {
	var l *LLM
	if l.Enabled() {
		t.Fatal("nil LLM must be disabled")
	}
	if _, err := l.Complete(context.Background(), "", "hi"); !errors.Is(err, ErrLLMDisabled) {
		t.Errorf("err = %v, want ErrLLMDisabled", err)
	}
	if NewLLM(nil, 0) != nil {
		t.Error("NewLLM(nil) should return nil")
	}
}

func TestLLMCompleteJSON(t *testing.T) {
	l := NewLLM(func(ctx context.Context, system, prompt string) (string, error) {
		return "```json\n{\"question\": \"Which sensors?\",}\n```", nil
	}, 0)

	var out struct {
		Question string `json:"question"`
	}
	if err := l.CompleteJSON(context.Background(), "", "ask", &out); err != nil {
		t.Fatalf("CompleteJSON: %v", err)
	}
	if out.Question != "Which sensors?" {
		t.Errorf("Question = %q", out.Question)
	}
}

func TestLLMCompleteError(t *testing.T) {
	before := metrics.LLMErrors.Load()
	l := NewLLM(func(ctx context.Context, system, prompt string) (string, error) {
		return "", errors.New("quota")
	}, 0)
	if _, err := l.Complete(context.Background(), "", "x"); err == nil {
		t.Fatal("expected error")
	}
	if metrics.LLMErrors.Load() != before+1 {
		t.Error("llm error counter not incremented")
	}
}
