package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/devpost/pkg/cli/config"
	"github.com/m-mizutani/devpost/pkg/controller/server"
	"github.com/m-mizutani/devpost/pkg/domain/model"
	"github.com/m-mizutani/devpost/pkg/infra"
	"github.com/m-mizutani/devpost/pkg/usecase"
	"github.com/m-mizutani/devpost/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"
)

// runDeadline is the longest time one GeneratePosts run can take
func runDeadline(t model.StageTimeouts) time.Duration {
	return t.Source + t.Resolve + t.Discussion + t.Generate + t.Publish
}

func serveCommand() *cli.Command {
	var (
		addr string

		github   config.GitHub
		llm      config.LLM
		pipeline config.Pipeline
		sentry   config.Sentry
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("DEVPOST_ADDR"),
			Destination: &addr,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Server mode",
		Flags: slice.Flatten(
			serveFlags,
			github.Flags(),
			llm.Flags(),
			pipeline.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("GitHub", github),
				slog.Any("LLM", llm),
				slog.Any("Pipeline", pipeline),
				slog.Any("Sentry", &sentry),
			)

			if err := sentry.Configure(ctx); err != nil {
				return err
			}
			defer sentry.Flush(ctx)

			cfg, err := pipeline.Load()
			if err != nil {
				return err
			}

			// GitHub App installation must be given explicitly as the server serves any user
			ghClient, err := github.New(ctx, "", cfg.Source)
			if err != nil {
				return err
			}
			llmClient, err := llm.New()
			if err != nil {
				return err
			}

			uc := usecase.New(infra.New(
				infra.WithGitHub(ghClient),
				infra.WithLLM(llmClient),
			), usecase.WithConfig(cfg))
			s := server.New(uc)

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      runDeadline(cfg.Timeouts) + 30*time.Second,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", "signal", sig)

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
			}

			return nil
		},
	}
}
