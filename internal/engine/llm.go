package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
)

// ErrLLMDisabled is returned when no text-generation backend is configured.
var ErrLLMDisabled = errors.New("llm: not configured")

// CompleteFunc sends one system+user prompt pair and returns the raw completion.
// main wires it to a go-kit llm.Client; tests use stubs.
type CompleteFunc func(ctx context.Context, system, prompt string) (string, error)

// LLM wraps the text-generation collaborator with metrics and output cleanup.
// A nil *LLM is valid and reports ErrLLMDisabled.
type LLM struct {
	complete CompleteFunc
	timeout  time.Duration
}

// NewLLM returns nil when fn is nil so callers can test Enabled().
func NewLLM(fn CompleteFunc, timeout time.Duration) *LLM {
	if fn == nil {
		return nil
	}
	return &LLM{complete: fn, timeout: timeout}
}

// Enabled reports whether text generation is available.
func (l *LLM) Enabled() bool { return l != nil && l.complete != nil }

// Complete runs the prompt and strips markdown fences from the answer.
func (l *LLM) Complete(ctx context.Context, system, prompt string) (string, error) {
	if !l.Enabled() {
		return "", ErrLLMDisabled
	}
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	metrics.LLMCalls.Add(1)
	resp, err := l.complete(ctx, system, prompt)
	if err != nil {
		metrics.LLMErrors.Add(1)
		slog.Debug("llm: completion failed", slog.Any("error", err))
		return "", err
	}
	return StripFences(resp), nil
}

// CompleteJSON runs the prompt and decodes the first JSON object of the answer into out.
func (l *LLM) CompleteJSON(ctx context.Context, system, prompt string, out any) error {
	raw, err := l.Complete(ctx, system, prompt)
	if err != nil {
		return err
	}
	obj, ok := ExtractJSONObject(raw)
	if !ok {
		return fmt.Errorf("llm: no JSON object in %q", Truncate(raw, 120))
	}
	if err := json.Unmarshal([]byte(obj), out); err != nil {
		return fmt.Errorf("llm: decode JSON: %w", err)
	}
	return nil
}

// StripFences removes markdown code fences from LLM output.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

var trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)

// ExtractJSONObject finds a decodable JSON object in free text.
// Attempts, in order: the whole text, the widest {...} span, that span with trailing commas removed.
func ExtractJSONObject(s string) (string, bool) {
	s = StripFences(s)
	if strings.HasPrefix(s, "{") && json.Valid([]byte(s)) {
		return s, true
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	span := s[start : end+1]
	if json.Valid([]byte(span)) {
		return span, true
	}
	repaired := trailingCommaRe.ReplaceAllString(span, "$1")
	if json.Valid([]byte(repaired)) {
		return repaired, true
	}
	return "", false
}
