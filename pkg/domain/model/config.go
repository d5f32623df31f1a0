package model

import (
	"time"

	"github.com/m-mizutani/devpost/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const (
	MaxParallelism = 8

	LongFormMaxChars  = 1300
	ShortFormMaxChars = 280
)

// PipelineConfig is the tuning of one GeneratePosts run. Fields are filled by defaults, then overridden by a TOML file and CLI flags.
type PipelineConfig struct {
	Source   SourceConfig   `koanf:"source"`
	Scan     ScanConfig     `koanf:"scan"`
	Bot      BotConfig      `koanf:"bot"`
	Context  ContextConfig  `koanf:"context"`
	Generate GenerateConfig `koanf:"generate"`
	Timeouts StageTimeouts  `koanf:"timeouts"`
}

// SourceConfig controls repository listing on the source host
type SourceConfig struct {
	MaxRepositoryPages int     `koanf:"max_repository_pages"`
	IncludeForks       bool    `koanf:"include_forks"`
	RequestsPerSecond  float64 `koanf:"requests_per_second"`
	Burst              int     `koanf:"burst"`
}

// ScanConfig controls the activity resolver
type ScanConfig struct {
	// Window is the maximum number of repositories examined
	Window int `koanf:"window"`
	// MaxEmptyStreak stops the scan after this many consecutive repositories without activity. 0 disables it.
	MaxEmptyStreak int `koanf:"max_empty_streak"`
	Parallelism    int `koanf:"parallelism"`
	PerRepoLimit   int `koanf:"per_repo_limit"`
	// PerRepoCommits is the number of latest commits queried per repository in the fallback phase
	PerRepoCommits int `koanf:"per_repo_commits"`
}

// BotConfig identifies review bot entries in a discussion
type BotConfig struct {
	Name    string   `koanf:"name"`
	Handles []string `koanf:"handles"`
	Markers []string `koanf:"markers"`
}

// ContextConfig bounds the generation context
type ContextConfig struct {
	MaxHighlights       int `koanf:"max_highlights"`
	MaxSuggestions      int `koanf:"max_suggestions"`
	MaxSummaryChars     int `koanf:"max_summary_chars"`
	MaxSuggestionChars  int `koanf:"max_suggestion_chars"`
	MaxTitleChars       int `koanf:"max_title_chars"`
	MaxDescriptionChars int `koanf:"max_description_chars"`
	// MaxFieldChars caps short metadata such as repository name, URL and author
	MaxFieldChars int `koanf:"max_field_chars"`
}

// renderOverhead covers labels, separators, timestamps and numbers written by GenerationContext.Render
const renderOverhead = 512

// RenderBound returns the maximum rune length of GenerationContext.Render for a context assembled under this config.
func (x ContextConfig) RenderBound() int {
	highlight := max(x.MaxSummaryChars, x.MaxSuggestionChars, x.MaxFieldChars)
	// repository name, repository URL, reference, author, URL, insight source
	const fields = 6
	return renderOverhead +
		fields*x.MaxFieldChars +
		x.MaxTitleChars +
		x.MaxDescriptionChars +
		x.MaxHighlights*(highlight+3)
}

// GenerateConfig controls the content generator
type GenerateConfig struct {
	LongFormMaxChars   int           `koanf:"long_form_max_chars"`
	ShortFormMaxChars  int           `koanf:"short_form_max_chars"`
	LongFormMaxTokens  int           `koanf:"long_form_max_tokens"`
	ShortFormMaxTokens int           `koanf:"short_form_max_tokens"`
	CallTimeout        time.Duration `koanf:"call_timeout"`
}

// MaxChars returns the character budget of the form
func (x GenerateConfig) MaxChars(form Form) int {
	if form == FormShort {
		return x.ShortFormMaxChars
	}
	return x.LongFormMaxChars
}

// MaxTokens returns the output token limit of the form
func (x GenerateConfig) MaxTokens(form Form) int {
	if form == FormShort {
		return x.ShortFormMaxTokens
	}
	return x.LongFormMaxTokens
}

// StageTimeouts is a deadline for each pipeline stage
type StageTimeouts struct {
	Source     time.Duration `koanf:"source"`
	Resolve    time.Duration `koanf:"resolve"`
	Discussion time.Duration `koanf:"discussion"`
	Generate   time.Duration `koanf:"generate"`
	Publish    time.Duration `koanf:"publish"`
}

func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Source: SourceConfig{
			MaxRepositoryPages: 3,
			RequestsPerSecond:  10,
			Burst:              10,
		},
		Scan: ScanConfig{
			Window:         30,
			MaxEmptyStreak: 10,
			Parallelism:    4,
			PerRepoLimit:   5,
			PerRepoCommits: 3,
		},
		Bot: BotConfig{
			Name:    "CodeRabbit",
			Handles: []string{"coderabbitai"},
			Markers: []string{
				"auto-generated comment: summarize by coderabbit",
				"auto-generated reply by coderabbit",
			},
		},
		Context: ContextConfig{
			MaxHighlights:       5,
			MaxSuggestions:      3,
			MaxSummaryChars:     200,
			MaxSuggestionChars:  160,
			MaxTitleChars:       200,
			MaxDescriptionChars: 1000,
			MaxFieldChars:       200,
		},
		Generate: GenerateConfig{
			LongFormMaxChars:   LongFormMaxChars,
			ShortFormMaxChars:  ShortFormMaxChars,
			LongFormMaxTokens:  500,
			ShortFormMaxTokens: 200,
			CallTimeout:        45 * time.Second,
		},
		Timeouts: StageTimeouts{
			Source:     30 * time.Second,
			Resolve:    60 * time.Second,
			Discussion: 30 * time.Second,
			Generate:   2 * time.Minute,
			Publish:    10 * time.Second,
		},
	}
}

func (x PipelineConfig) Validate() error {
	if x.Source.MaxRepositoryPages < 1 {
		return goerr.Wrap(types.ErrInvalidConfig, "source.max_repository_pages must be positive", goerr.V("value", x.Source.MaxRepositoryPages))
	}
	if x.Source.RequestsPerSecond <= 0 || x.Source.Burst < 1 {
		return goerr.Wrap(types.ErrInvalidConfig, "source rate limit must be positive",
			goerr.V("requests_per_second", x.Source.RequestsPerSecond),
			goerr.V("burst", x.Source.Burst))
	}

	if x.Scan.Window < 1 {
		return goerr.Wrap(types.ErrInvalidConfig, "scan.window must be positive", goerr.V("value", x.Scan.Window))
	}
	if x.Scan.MaxEmptyStreak < 0 {
		return goerr.Wrap(types.ErrInvalidConfig, "scan.max_empty_streak must not be negative", goerr.V("value", x.Scan.MaxEmptyStreak))
	}
	if x.Scan.Parallelism < 1 || x.Scan.Parallelism > MaxParallelism {
		return goerr.Wrap(types.ErrInvalidConfig, "scan.parallelism must be between 1 and 8", goerr.V("value", x.Scan.Parallelism))
	}
	if x.Scan.PerRepoLimit < 1 || x.Scan.PerRepoCommits < 1 {
		return goerr.Wrap(types.ErrInvalidConfig, "per repository limits must be positive",
			goerr.V("per_repo_limit", x.Scan.PerRepoLimit),
			goerr.V("per_repo_commits", x.Scan.PerRepoCommits))
	}

	if len(x.Bot.Handles) == 0 && len(x.Bot.Markers) == 0 {
		return goerr.Wrap(types.ErrInvalidConfig, "bot needs at least one handle or marker")
	}

	c := x.Context
	for name, v := range map[string]int{
		"max_highlights":        c.MaxHighlights,
		"max_suggestions":       c.MaxSuggestions,
		"max_summary_chars":     c.MaxSummaryChars,
		"max_suggestion_chars":  c.MaxSuggestionChars,
		"max_title_chars":       c.MaxTitleChars,
		"max_description_chars": c.MaxDescriptionChars,
		"max_field_chars":       c.MaxFieldChars,
	} {
		if v < 1 {
			return goerr.Wrap(types.ErrInvalidConfig, "context limit must be positive", goerr.V("name", name), goerr.V("value", v))
		}
	}

	g := x.Generate
	if g.LongFormMaxChars < 1 || g.LongFormMaxChars > LongFormMaxChars {
		return goerr.Wrap(types.ErrInvalidConfig, "generate.long_form_max_chars out of range", goerr.V("value", g.LongFormMaxChars))
	}
	if g.ShortFormMaxChars < 1 || g.ShortFormMaxChars > ShortFormMaxChars {
		return goerr.Wrap(types.ErrInvalidConfig, "generate.short_form_max_chars out of range", goerr.V("value", g.ShortFormMaxChars))
	}
	if g.LongFormMaxTokens < 1 || g.ShortFormMaxTokens < 1 {
		return goerr.Wrap(types.ErrInvalidConfig, "max tokens must be positive")
	}
	if g.CallTimeout <= 0 {
		return goerr.Wrap(types.ErrInvalidConfig, "generate.call_timeout must be positive")
	}

	t := x.Timeouts
	if t.Source <= 0 || t.Resolve <= 0 || t.Discussion <= 0 || t.Generate <= 0 || t.Publish <= 0 {
		return goerr.Wrap(types.ErrInvalidConfig, "stage timeouts must be positive", goerr.V("timeouts", t))
	}

	return nil
}
