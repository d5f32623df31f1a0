package config

import (
	"log/slog"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/m-mizutani/devpost/pkg/domain/model"
	"github.com/m-mizutani/devpost/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// EnvPrefix of pipeline settings. Nested keys are separated by a double underscore, e.g. DEVPOST_PIPELINE_SCAN__WINDOW.
const EnvPrefix = "DEVPOST_PIPELINE_"

// Pipeline loads tuning parameters of the pipeline. Values are applied in order: defaults, TOML file, environment variables and flags.
type Pipeline struct {
	path        string
	window      int
	parallelism int
}

func (x *Pipeline) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to pipeline config file (TOML)",
			Category:    "Pipeline",
			Destination: &x.path,
			Sources:     cli.EnvVars("DEVPOST_CONFIG"),
		},
		&cli.IntFlag{
			Name:        "window",
			Usage:       "Maximum number of repositories to scan",
			Category:    "Pipeline",
			Destination: &x.window,
		},
		&cli.IntFlag{
			Name:        "parallelism",
			Usage:       "Number of repositories queried concurrently (1-8)",
			Category:    "Pipeline",
			Destination: &x.parallelism,
		},
	}
}

func (x *Pipeline) Load() (model.PipelineConfig, error) {
	cfg := model.DefaultPipelineConfig()
	k := koanf.New(".")

	if x.path != "" {
		if err := k.Load(file.Provider(x.path), toml.Parser()); err != nil {
			return cfg, goerr.Wrap(types.ErrInvalidConfig, "failed to load config file",
				goerr.V("path", x.path),
				goerr.V("error", err.Error()),
			)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil); err != nil {
		return cfg, goerr.Wrap(err, "failed to load config from environment variables")
	}

	resetLists(k, &cfg)
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, goerr.Wrap(types.ErrInvalidConfig, "failed to decode config",
			goerr.V("path", x.path),
			goerr.V("error", err.Error()),
		)
	}

	if x.window > 0 {
		cfg.Scan.Window = x.window
	}
	if x.parallelism > 0 {
		cfg.Scan.Parallelism = x.parallelism
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// resetLists makes list keys given by a source replace the default list instead of merging into it by index
func resetLists(k *koanf.Koanf, cfg *model.PipelineConfig) {
	if k.Exists("bot.handles") {
		cfg.Bot.Handles = nil
	}
	if k.Exists("bot.markers") {
		cfg.Bot.Markers = nil
	}
}

func (x Pipeline) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("Path", x.path),
		slog.Int("Window", x.window),
		slog.Int("Parallelism", x.parallelism),
	)
}
