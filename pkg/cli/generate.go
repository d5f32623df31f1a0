package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/devpost/pkg/cli/config"
	"github.com/m-mizutani/devpost/pkg/domain/interfaces"
	"github.com/m-mizutani/devpost/pkg/domain/model"
	"github.com/m-mizutani/devpost/pkg/domain/types"
	"github.com/m-mizutani/devpost/pkg/infra"
	"github.com/m-mizutani/devpost/pkg/infra/sink"
	"github.com/m-mizutani/devpost/pkg/usecase"
	"github.com/m-mizutani/devpost/pkg/utils/errutil"
	"github.com/m-mizutani/devpost/pkg/utils/logging"
	"github.com/m-mizutani/devpost/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"
)

type output struct {
	format  string
	path    string
	noColor bool
}

func (x *output) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Usage:       "Output format [text|json]",
			Category:    "Output",
			Value:       "text",
			Sources:     cli.EnvVars("DEVPOST_OUTPUT_FORMAT"),
			Destination: &x.format,
		},
		&cli.StringFlag{
			Name:        "output",
			Usage:       "Output file path, - for stdout",
			Category:    "Output",
			Value:       "-",
			Sources:     cli.EnvVars("DEVPOST_OUTPUT"),
			Destination: &x.path,
		},
		&cli.BoolFlag{
			Name:        "no-color",
			Usage:       "Disable colored text output",
			Category:    "Output",
			Sources:     cli.EnvVars("NO_COLOR"),
			Destination: &x.noColor,
		},
	}
}

// open returns the sink and a closer of the output file
func (x *output) open() (interfaces.ContentSink, io.Closer, error) {
	var (
		w      io.Writer = os.Stdout
		closer io.Closer
	)
	if x.path != "" && x.path != "-" {
		f, err := os.Create(x.path)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to create output file", goerr.V("path", x.path))
		}
		w, closer = f, f
	}

	switch x.format {
	case "text":
		var options []sink.TerminalOption
		if x.noColor || closer != nil {
			options = append(options, sink.WithNoColor())
		}
		return sink.NewTerminal(w, options...), closer, nil
	case "json":
		return sink.NewJSON(w, true), closer, nil
	default:
		if closer != nil {
			_ = closer.Close()
		}
		return nil, nil, goerr.Wrap(types.ErrInvalidOption, "invalid output format", goerr.V("format", x.format))
	}
}

func generateCommand() *cli.Command {
	var (
		user string

		github   config.GitHub
		llm      config.LLM
		pipeline config.Pipeline
		sentry   config.Sentry
		out      output
	)

	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"g"},
		Usage:   "Generate posts about the latest activity of a GitHub user",
		Flags: slice.Flatten([]cli.Flag{
			&cli.StringFlag{
				Name:        "user",
				Aliases:     []string{"u"},
				Usage:       "GitHub user name (auto-detect from git origin remote if not specified)",
				Sources:     cli.EnvVars("DEVPOST_USER"),
				Destination: &user,
			},
		}, github.Flags(), llm.Flags(), pipeline.Flags(), sentry.Flags(), out.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = logging.WithAttrs(ctx, slog.String("run_id", types.NewRequestID().String()))
			logger := logging.From(ctx)

			if user == "" {
				owner, err := DetectOwner(".")
				if err != nil {
					return goerr.Wrap(err, "user is not specified and cannot be detected from git repository")
				}
				user = owner
				logger.Info("Detected user from git remote", slog.String("user", user))
			}

			logger.Info("starting generate",
				slog.String("user", user),
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

			ghClient, err := github.New(ctx, user, cfg.Source)
			if err != nil {
				return err
			}
			llmClient, err := llm.New()
			if err != nil {
				return err
			}

			contentSink, closer, err := out.open()
			if err != nil {
				return err
			}
			if closer != nil {
				defer safe.Close(ctx, closer)
			}

			uc := usecase.New(infra.New(
				infra.WithGitHub(ghClient),
				infra.WithLLM(llmClient),
				infra.WithSink(contentSink),
			), usecase.WithConfig(cfg))

			return runGenerate(ctx, uc, user)
		},
	}
}

func runGenerate(ctx context.Context, uc interfaces.UseCase, user string) error {
	result, err := uc.GeneratePosts(ctx, &model.GeneratePostsInput{User: user})
	if err != nil {
		errutil.HandleError(ctx, "failed to generate posts", err)
		return err
	}

	logging.From(ctx).Info("done", slog.Any("status", result.Status))
	return nil
}
