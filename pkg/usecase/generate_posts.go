package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/devpost/pkg/domain/model"
	"github.com/m-mizutani/devpost/pkg/domain/types"
	"github.com/m-mizutani/devpost/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// GeneratePosts finds the latest activity of input.User and generates posts about it. An account without activity ends with RunStatusNoActivity and no error. Every error is tagged with the stage it came from.
func (x *UseCase) GeneratePosts(ctx context.Context, input *model.GeneratePostsInput) (*model.RunResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	cfg := x.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if x.clients.GitHub() == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "GitHub client is not configured")
	}
	if x.clients.LLM() == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "LLM client is not configured")
	}

	ctx = logging.WithAttrs(ctx, slog.String("user", input.User))
	logger := logging.From(ctx)
	started := logging.CtxTime(ctx)

	repos, err := withTimeout(ctx, cfg.Timeouts.Source, func(ctx context.Context) ([]*model.Repository, error) {
		return x.clients.GitHub().ListRepositories(ctx, input.User)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list repositories", types.StageSource.Tag(), goerr.V("user", input.User))
	}
	logger.Info("Listed repositories", slog.Int("count", len(repos)))

	resolver := NewActivityResolver(x.clients.GitHub(), cfg.Scan)
	activity, err := withTimeout(ctx, cfg.Timeouts.Resolve, func(ctx context.Context) (*model.ResolvedActivity, error) {
		return resolver.Resolve(ctx, input.User, repos)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve activity", types.StageResolve.Tag(), goerr.V("user", input.User))
	}

	result := &model.RunResult{
		User:     input.User,
		Activity: activity,
	}

	if activity.Kind == model.ActivityNothing {
		result.Status = model.RunStatusNoActivity
		if err := x.publish(ctx, cfg.Timeouts.Publish, result); err != nil {
			return nil, err
		}
		logger.Info("No activity to post about", slog.Int("scanned", len(activity.Scanned)))
		return result, nil
	}

	if activity.Kind == model.ActivityMergeRequest {
		mr := activity.MergeRequest
		entries, err := withTimeout(ctx, cfg.Timeouts.Discussion, func(ctx context.Context) ([]model.DiscussionEntry, error) {
			return x.clients.GitHub().ListDiscussion(ctx, activity.Repository, mr.Number)
		})
		switch {
		case err != nil && ctx.Err() != nil:
			return nil, goerr.Wrap(err, "failed to fetch discussion", types.StageDiscussion.Tag(),
				goerr.V("repo", activity.Repository.ID),
				goerr.V("number", mr.Number),
			)

		case err != nil:
			// posts are still generated from the pull request itself
			logger.Warn("Failed to fetch discussion, continuing without review insight",
				slog.Any("repo", activity.Repository.ID),
				slog.Int("number", mr.Number),
				slog.Any("error", err),
			)

		default:
			result.Insight = NewInsightExtractor(cfg.Bot).Extract(entries)
			logger.Info("Extracted review insight",
				slog.Int("entries", len(entries)),
				slog.Bool("found", result.Insight != nil),
			)
		}
	}

	gc, err := NewContextAssembler(cfg.Context, cfg.Bot.Name).Assemble(activity, result.Insight)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to assemble generation context", types.StageAssemble.Tag())
	}
	result.Context = &gc

	generator := NewContentGenerator(x.clients.LLM(), cfg.Generate, x.retryPolicy)
	genCtx, cancel := context.WithTimeout(ctx, cfg.Timeouts.Generate)
	content, genErr := generator.Generate(genCtx, gc)
	cancel()

	if genErr != nil && content.LongForm == "" && content.ShortForm == "" {
		return nil, goerr.Wrap(genErr, "failed to generate posts", types.StageGenerate.Tag())
	}
	result.Content = content
	result.Status = model.RunStatusGenerated
	if genErr != nil {
		result.Status = model.RunStatusPartial
	}

	if err := x.publish(ctx, cfg.Timeouts.Publish, result); err != nil {
		return nil, err
	}

	logger.Info("Generated posts",
		slog.Any("status", result.Status),
		slog.Any("kind", activity.Kind),
		slog.Any("repo", activity.Repository.ID),
		slog.Duration("elapsed", logging.CtxTime(ctx).Sub(started)),
	)

	if genErr != nil {
		return result, goerr.Wrap(genErr, "some posts could not be generated", types.StageGenerate.Tag())
	}
	return result, nil
}

func (x *UseCase) publish(ctx context.Context, timeout time.Duration, result *model.RunResult) error {
	sink := x.clients.Sink()
	if sink == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := sink.Publish(ctx, result); err != nil {
		return goerr.Wrap(err, "failed to publish result", types.StagePublish.Tag(), goerr.V("status", result.Status))
	}
	return nil
}

// withTimeout runs fn under a stage deadline
func withTimeout[T any](ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(ctx)
}
