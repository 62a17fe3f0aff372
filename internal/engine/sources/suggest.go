package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_guide/internal/engine"
	"github.com/anatolykoptev/go_guide/internal/engine/resources"
)

// Suggest asks the text-generation backend for resources and returns its answer as prose.
// Answers are untrusted: the parser keeps only canonical links and the filter still applies.
type Suggest struct {
	llm *engine.LLM
}

// NewSuggest returns nil when llm is disabled.
func NewSuggest(llm *engine.LLM) *Suggest {
	if !llm.Enabled() {
		return nil
	}
	return &Suggest{llm: llm}
}

func (s *Suggest) Search(ctx context.Context, st resources.Strategy) (resources.Response, error) {
	tmpl := engine.SuggestVideosPrompt
	if st.Kind == resources.KindRepository {
		tmpl = engine.SuggestReposPrompt
	}
	text, err := s.llm.Complete(ctx, engine.SystemResourceFinder, fmt.Sprintf(tmpl, st.Query, contextLines(st)))
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return resources.Empty{}, nil
	}
	return resources.Prose{Text: text}, nil
}

func contextLines(st resources.Strategy) string {
	var b strings.Builder
	for _, kv := range [][2]string{
		{"Field", st.Param("domain")},
		{"Level", st.Param("complexity")},
		{"Requirements", st.Param("context")},
	} {
		if kv[1] != "" {
			fmt.Fprintf(&b, "%s: %s\n", kv[0], kv[1])
		}
	}
	return b.String()
}
