package resources

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Weights are the scoring and ranking constants. All values are points.
type Weights struct {
	TitleTerm       int `yaml:"title_term"`
	DescriptionTerm int `yaml:"description_term"`
	QualityPhrase   int `yaml:"quality_phrase"`
	TechTerm        int `yaml:"tech_term"`

	DurationSweetSpot int `yaml:"duration_sweet_spot"` // 300..3600s
	DurationLongForm  int `yaml:"duration_long_form"`  // >3600s

	VideoViews100k int `yaml:"video_views_100k"`
	VideoViews10k  int `yaml:"video_views_10k"`
	VideoViews1k   int `yaml:"video_views_1k"`
	RepoStars100   int `yaml:"repo_stars_100"`
	RepoStars50    int `yaml:"repo_stars_50"`
	RepoStars10    int `yaml:"repo_stars_10"`

	DomainInDescription int `yaml:"domain_in_description"`
	LongDescription     int `yaml:"long_description"`

	BonusComplete      int `yaml:"bonus_complete"`
	BonusCode          int `yaml:"bonus_code"`
	BonusStepByStep    int `yaml:"bonus_step_by_step"`
	BonusExpertChannel int `yaml:"bonus_expert_channel"`

	Reputable       int `yaml:"reputable"`
	Comprehensive   int `yaml:"comprehensive"`
	RecencyOrigin   int `yaml:"recency_origin"`
	IdealDuration   int `yaml:"ideal_duration"` // 600..3600s
	LowValuePenalty int `yaml:"low_value_penalty"`

	BareLink      int `yaml:"bare_link"`
	BatchFallback int `yaml:"batch_fallback"`
}

// DefaultWeights returns the built-in scoring constants.
func DefaultWeights() Weights {
	return Weights{
		TitleTerm:       10,
		DescriptionTerm: 5,
		QualityPhrase:   8,
		TechTerm:        6,

		DurationSweetSpot: 10,
		DurationLongForm:  15,

		VideoViews100k: 10,
		VideoViews10k:  8,
		VideoViews1k:   5,
		RepoStars100:   5,
		RepoStars50:    3,
		RepoStars10:    1,

		DomainInDescription: 3,
		LongDescription:     3,

		BonusComplete:      15,
		BonusCode:          12,
		BonusStepByStep:    10,
		BonusExpertChannel: 10,

		Reputable:       20,
		Comprehensive:   15,
		RecencyOrigin:   10,
		IdealDuration:   12,
		LowValuePenalty: 15,

		BareLink:      50,
		BatchFallback: 40,
	}
}

// Config threads every pipeline constant into the component constructors.
type Config struct {
	Weights  Weights
	Keywords Keywords

	MinRelevanceVideo int
	MinRelevanceRepo  int
	LowValueCoverage  float64 // subject coverage required when low-value repo markers are present

	ReputableSources []string // lower-case channel or owner names

	PoolSize   int // ranking stage K
	VideoLimit int // caller-facing K for videos
	RepoLimit  int // caller-facing K for repositories

	ProviderTimeout time.Duration
	Parallelism     int
	ProviderRate    float64 // requests per second per provider, 0 = unlimited

	Now func() time.Time
}

// DefaultConfig returns a Config with the built-in constants.
func DefaultConfig() Config {
	return Config{
		Weights:           DefaultWeights(),
		Keywords:          DefaultKeywords(),
		MinRelevanceVideo: 30,
		MinRelevanceRepo:  15,
		LowValueCoverage:  0.8,
		ReputableSources: []string{
			"traversy media", "code with mosh", "programming with mosh", "freecodecamp",
			"the net ninja", "academind", "clever programmer", "tech with tim",
			"corey schafer", "sentdex", "derek banas",
		},
		PoolSize:        8,
		VideoLimit:      6,
		RepoLimit:       5,
		ProviderTimeout: 8 * time.Second,
		Parallelism:     4,
		ProviderRate:    5,
		Now:             time.Now,
	}
}

// MinRelevance returns the score floor for kind.
func (c Config) MinRelevance(kind Kind) int {
	if kind == KindRepository {
		return c.MinRelevanceRepo
	}
	return c.MinRelevanceVideo
}

// Limit returns the caller-facing result count for kind, never above the pool size.
func (c Config) Limit(kind Kind) int {
	n := c.VideoLimit
	if kind == KindRepository {
		n = c.RepoLimit
	}
	if n <= 0 || n > c.PoolSize {
		n = c.PoolSize
	}
	return n
}

func (c Config) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Tuning is the YAML shape of the optional tuning file. Absent fields keep their defaults.
type Tuning struct {
	Weights           *Weights  `yaml:"weights"`
	Keywords          *Keywords `yaml:"keywords"`
	MinRelevanceVideo *int      `yaml:"min_relevance_video"`
	MinRelevanceRepo  *int      `yaml:"min_relevance_repo"`
	ReputableSources  []string  `yaml:"reputable_sources"`
	PoolSize          *int      `yaml:"pool_size"`
	VideoLimit        *int      `yaml:"video_limit"`
	RepoLimit         *int      `yaml:"repo_limit"`
}

// LoadTuning reads a YAML tuning file and applies it to cfg.
func LoadTuning(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("tuning: %w", err)
	}
	return ApplyTuning(data, cfg)
}

// ApplyTuning decodes YAML tuning data onto cfg.
// A weights block is decoded over the current weights, so partial blocks are allowed.
func ApplyTuning(data []byte, cfg *Config) error {
	t := Tuning{Weights: &cfg.Weights}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("tuning: parse: %w", err)
	}
	if t.Keywords != nil {
		cfg.Keywords.merge(*t.Keywords)
	}
	if t.MinRelevanceVideo != nil {
		cfg.MinRelevanceVideo = *t.MinRelevanceVideo
	}
	if t.MinRelevanceRepo != nil {
		cfg.MinRelevanceRepo = *t.MinRelevanceRepo
	}
	if len(t.ReputableSources) > 0 {
		cfg.ReputableSources = nil
		for _, s := range t.ReputableSources {
			cfg.ReputableSources = append(cfg.ReputableSources, strings.ToLower(strings.TrimSpace(s)))
		}
	}
	if t.PoolSize != nil && *t.PoolSize > 0 {
		cfg.PoolSize = *t.PoolSize
	}
	if t.VideoLimit != nil {
		cfg.VideoLimit = *t.VideoLimit
	}
	if t.RepoLimit != nil {
		cfg.RepoLimit = *t.RepoLimit
	}
	return nil
}
