package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/devpost/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const sentryFlushTimeout = 2 * time.Second

// Sentry reports run failures. Reporting is disabled without a DSN.
type Sentry struct {
	dsn         string
	environment string
	release     string
}

func (x *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN",
			Category:    "Sentry",
			Destination: &x.dsn,
			Sources:     cli.EnvVars("DEVPOST_SENTRY_DSN", "SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Category:    "Sentry",
			Destination: &x.environment,
			Sources:     cli.EnvVars("DEVPOST_SENTRY_ENV"),
		},
		&cli.StringFlag{
			Name:        "sentry-release",
			Usage:       "Release name attached to Sentry events",
			Category:    "Sentry",
			Destination: &x.release,
			Sources:     cli.EnvVars("DEVPOST_SENTRY_RELEASE"),
		},
	}
}

func (x *Sentry) Enabled() bool {
	return x.dsn != ""
}

func (x *Sentry) Configure(ctx context.Context) error {
	if !x.Enabled() {
		logging.From(ctx).Debug("sentry is not configured, error reporting is disabled")
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         x.dsn,
		Environment: x.environment,
		Release:     x.release,
	}); err != nil {
		return goerr.Wrap(err, "failed to initialize sentry", goerr.V("environment", x.environment))
	}

	return nil
}

// Flush waits for queued events. A one-shot command must call it before exiting.
func (x *Sentry) Flush(ctx context.Context) {
	if !x.Enabled() {
		return
	}
	if !sentry.Flush(sentryFlushTimeout) {
		logging.From(ctx).Warn("timed out flushing sentry events", slog.Duration("timeout", sentryFlushTimeout))
	}
}

func (x *Sentry) LogValue() slog.Value {
	dsn := "(none)"
	if x.dsn != "" {
		dsn = "(configured)"
	}
	return slog.GroupValue(
		slog.String("DSN", dsn),
		slog.String("Environment", x.environment),
		slog.String("Release", x.release),
	)
}
