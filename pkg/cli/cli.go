package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/devpost/pkg/cli/config"
	"github.com/m-mizutani/devpost/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Version is set at build time with -ldflags "-X github.com/m-mizutani/devpost/pkg/cli.Version=..."
var Version = "dev"

type CLI struct {
	version string
}

type Option func(*CLI)

func WithVersion(version string) Option {
	return func(x *CLI) {
		x.version = version
	}
}

func New(options ...Option) *CLI {
	x := &CLI{version: Version}
	for _, opt := range options {
		opt(x)
	}
	return x
}

// Run executes the command line. SIGINT and SIGTERM cancel the context of a running command.
func (x *CLI) Run(argv []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var logCfg config.Logging

	app := &cli.Command{
		Name:    "devpost",
		Usage:   "Generate social media posts from your latest GitHub activity",
		Version: x.version,
		Flags:   logCfg.Flags(),
		Commands: []*cli.Command{
			generateCommand(),
			serveCommand(),
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := logCfg.Configure(); err != nil {
				return ctx, err
			}
			logging.Default().Debug("logging configured", "config", logCfg, "version", x.version)
			return ctx, nil
		},
	}

	if err := app.Run(ctx, argv); err != nil {
		logging.Default().Error("fatal error", "error", err)
		return err
	}

	return nil
}
