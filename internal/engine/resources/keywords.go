package resources

import (
	"sort"
	"strings"
)

// Keywords holds the lookup tables used to build strategy queries and filter domain matches.
// Every map is keyed by a lower-case category; values keep their priority order.
type Keywords struct {
	Domains      map[string][]string `yaml:"domains"`
	ProjectTypes map[string][]string `yaml:"project_types"`
	TechPatterns map[string][]string `yaml:"tech_patterns"`
	Complexity   map[string][]string `yaml:"complexity"`
}

// DefaultKeywords returns the built-in tables.
func DefaultKeywords() Keywords {
	return Keywords{
		Domains: map[string][]string{
			"computer":   {"software", "programming", "development", "coding", "algorithm"},
			"electrical": {"electronics", "circuit", "embedded", "microcontroller", "arduino"},
			"mechanical": {"engineering", "design", "cad", "modeling", "simulation"},
			"civil":      {"construction", "structural", "design", "autocad", "engineering"},
			"aerospace":  {"aerodynamics", "flight", "aircraft", "aerospace", "simulation"},
			"chemical":   {"process", "chemical", "reaction", "plant", "engineering"},
			"biomedical": {"medical", "biomedical", "healthcare", "device", "signal"},
			"robotics":   {"robot", "robotics", "automation", "control", "sensors"},
		},
		ProjectTypes: map[string][]string{
			"web app":     {"web", "application", "frontend", "backend"},
			"mobile app":  {"mobile", "app", "android", "ios"},
			"desktop app": {"desktop", "application", "gui", "interface"},
			"api":         {"api", "rest", "endpoint", "service"},
			"database":    {"database", "sql", "data", "storage"},
			"game":        {"game", "gaming", "graphics", "engine"},
		},
		TechPatterns: map[string][]string{
			"web":        {"react", "vue", "angular", "node", "express", "django", "flask", "javascript", "python"},
			"mobile":     {"react native", "flutter", "swift", "kotlin", "ionic", "xamarin"},
			"data":       {"python", "pandas", "numpy", "tensorflow", "pytorch", "sql", "mongodb"},
			"ai":         {"machine learning", "deep learning", "tensorflow", "pytorch", "opencv", "nlp"},
			"iot":        {"arduino", "raspberry pi", "esp32", "sensors", "mqtt", "bluetooth"},
			"automation": {"selenium", "pytest", "jenkins", "docker", "kubernetes"},
			"game":       {"unity", "unreal", "c#", "python", "godot", "blender"},
		},
		Complexity: map[string][]string{
			"beginner":     {"beginner", "basic", "introduction", "getting started", "simple"},
			"intermediate": {"intermediate", "practical", "hands-on", "project-based"},
			"advanced":     {"advanced", "expert", "professional", "production", "enterprise"},
			"expert":       {"expert", "advanced", "master", "professional", "industry"},
		},
	}
}

// merge overlays non-empty tables from o onto k.
func (k *Keywords) merge(o Keywords) {
	overlay := func(dst *map[string][]string, src map[string][]string) {
		if len(src) == 0 {
			return
		}
		if *dst == nil {
			*dst = make(map[string][]string, len(src))
		}
		for key, v := range src {
			(*dst)[strings.ToLower(key)] = v
		}
	}
	overlay(&k.Domains, o.Domains)
	overlay(&k.ProjectTypes, o.ProjectTypes)
	overlay(&k.TechPatterns, o.TechPatterns)
	overlay(&k.Complexity, o.Complexity)
}

// DomainTerms returns up to three keywords for the domain. The domain may be a map key
// or a phrase containing one ("Electrical Engineering" → electrical).
func (k Keywords) DomainTerms(domain string) []string {
	d := strings.ToLower(strings.TrimSpace(domain))
	if d == "" {
		return nil
	}
	if terms, ok := k.Domains[d]; ok {
		return firstN(terms, 3)
	}
	for _, key := range sortedKeys(k.Domains) {
		if strings.Contains(d, key) {
			return firstN(k.Domains[key], 3)
		}
	}
	return nil
}

// ProjectTypeTerms returns up to two keywords for a project type such as "web app".
func (k Keywords) ProjectTypeTerms(projectType string) []string {
	p := strings.ToLower(strings.TrimSpace(projectType))
	if p == "" {
		return nil
	}
	if terms, ok := k.ProjectTypes[p]; ok {
		return firstN(terms, 2)
	}
	for _, key := range sortedKeys(k.ProjectTypes) {
		if strings.Contains(p, key) {
			return firstN(k.ProjectTypes[key], 2)
		}
	}
	return nil
}

// ComplexityTerms returns up to three keywords for a complexity level.
// Unknown or empty levels yield the generic tutorial terms and ok=false.
func (k Keywords) ComplexityTerms(level string) (terms []string, ok bool) {
	l := strings.ToLower(strings.TrimSpace(level))
	if t, found := k.Complexity[l]; found && l != "" {
		return firstN(t, 3), true
	}
	return []string{"tutorial", "guide", "course"}, false
}

// TechStack collects technology keywords: a category named in subject or domain contributes
// its first three technologies, and any technology mentioned in the aux answers is added.
// The result is deduplicated and capped at eight entries.
func (k Keywords) TechStack(subject, domain string, aux map[string]string) []string {
	text := strings.ToLower(subject + " " + domain)
	var out []string
	seen := make(map[string]bool)
	add := func(t string) {
		if len(out) >= 8 || seen[t] {
			return
		}
		seen[t] = true
		out = append(out, t)
	}

	categories := sortedKeys(k.TechPatterns)
	for _, cat := range categories {
		if containsWord(text, cat) {
			for _, t := range firstN(k.TechPatterns[cat], 3) {
				add(t)
			}
		}
	}

	answers := strings.ToLower(joinValues(aux))
	if answers != "" {
		for _, cat := range categories {
			for _, t := range k.TechPatterns[cat] {
				if containsWord(answers, t) {
					add(t)
				}
			}
		}
	}
	return out
}

func firstN(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// joinValues concatenates map values in key order.
func joinValues(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(m[k])
		sb.WriteByte(' ')
	}
	return strings.TrimSpace(sb.String())
}

// containsWord reports whether phrase occurs in text on word boundaries.
// Both arguments must already be lower case.
func containsWord(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	for i := 0; ; {
		j := strings.Index(text[i:], phrase)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(phrase)
		if (start == 0 || !isWordByte(text[start-1])) && (end == len(text) || !isWordByte(text[end])) {
			return true
		}
		i = start + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b == '_' || b >= 0x80
}

// words splits text into lower-case alphanumeric words.
func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r > 0x7f)
	})
}
