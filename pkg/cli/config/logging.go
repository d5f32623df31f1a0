package config

import (
	"log/slog"

	"github.com/m-mizutani/devpost/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Logging holds the global log flags. Logs go to stderr by default because posts are written to stdout.
type Logging struct {
	level  string
	format string
	output string
}

func (x *Logging) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level [debug|info|warn|error]",
			Aliases:     []string{"l"},
			Category:    "Logging",
			Sources:     cli.EnvVars("DEVPOST_LOG_LEVEL"),
			Destination: &x.level,
			Value:       "info",
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format [text|json]",
			Aliases:     []string{"f"},
			Category:    "Logging",
			Sources:     cli.EnvVars("DEVPOST_LOG_FORMAT"),
			Destination: &x.format,
			Value:       "text",
		},
		&cli.StringFlag{
			Name:        "log-output",
			Usage:       "Log output [-|stdout|stderr|<file>], '-' is stderr",
			Aliases:     []string{"o"},
			Category:    "Logging",
			Sources:     cli.EnvVars("DEVPOST_LOG_OUTPUT"),
			Destination: &x.output,
			Value:       "-",
		},
	}
}

// Configure replaces the default logger
func (x *Logging) Configure() error {
	return logging.Configure(x.format, x.level, x.output)
}

func (x Logging) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("Level", x.level),
		slog.String("Format", x.format),
		slog.String("Output", x.output),
	)
}
