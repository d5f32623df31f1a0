package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/devpost/pkg/domain/interfaces"
	"github.com/m-mizutani/devpost/pkg/domain/model"
	"github.com/m-mizutani/devpost/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// ActivityResolver finds the latest merged pull request of an account, falling back to the latest commit
type ActivityResolver struct {
	github interfaces.GitHub
	cfg    model.ScanConfig
}

func NewActivityResolver(github interfaces.GitHub, cfg model.ScanConfig) *ActivityResolver {
	return &ActivityResolver{
		github: github,
		cfg:    cfg,
	}
}

// Resolve scans repos in the given order. The result does not depend on Parallelism.
func (x *ActivityResolver) Resolve(ctx context.Context, user string, repos []*model.Repository) (*model.ResolvedActivity, error) {
	logger := logging.From(ctx)

	mrScan, err := scanLatest(ctx, x.cfg, repos,
		func(ctx context.Context, repo *model.Repository) ([]*model.MergeRequest, error) {
			return x.github.ListMergedPullRequests(ctx, repo, x.cfg.PerRepoLimit)
		},
		func(mr *model.MergeRequest) time.Time { return mr.MergedAt },
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to scan merged pull requests", goerr.V("user", user))
	}

	if mrScan.found {
		mr := mrScan.best
		logger.Info("Found merged pull request",
			slog.Any("repo", mrScan.repo.ID),
			slog.Int("number", mr.Number),
			slog.Time("merged_at", mr.MergedAt),
			slog.Int("scanned", len(mrScan.scanned)),
		)

		detail, err := x.github.GetPullRequest(ctx, mrScan.repo, mr.Number)
		if err != nil {
			logger.Warn("Failed to get pull request detail, continue without diff stats",
				slog.Any("repo", mrScan.repo.ID),
				slog.Int("number", mr.Number),
				slog.Any("error", err),
			)
		} else {
			mr = mergeDetail(mr, detail)
		}

		return model.NewMergeRequestFound(mr, mrScan.repo, mrScan.scanned), nil
	}

	// the commit phase revisits only repositories the merge request phase reached
	commitScan, err := scanLatest(ctx, x.cfg, mrScan.scanned,
		func(ctx context.Context, repo *model.Repository) ([]*model.Commit, error) {
			return x.github.ListCommits(ctx, repo, user, x.cfg.PerRepoCommits)
		},
		func(c *model.Commit) time.Time { return c.AuthoredAt },
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to scan commits", goerr.V("user", user))
	}

	if commitScan.found {
		logger.Info("No merged pull request, found commit",
			slog.Any("repo", commitScan.repo.ID),
			slog.String("sha", commitScan.best.ShortSHA()),
			slog.Int("scanned", len(commitScan.scanned)),
		)
		return model.NewCommitFound(commitScan.best, commitScan.repo, commitScan.scanned), nil
	}

	logger.Info("No activity found", slog.Int("scanned", len(commitScan.scanned)))
	return model.NewNothingFound(commitScan.scanned), nil
}

// mergeDetail keeps the listed pull request and fills fields only available from the detail endpoint
func mergeDetail(listed, detail *model.MergeRequest) *model.MergeRequest {
	mr := *listed
	mr.SourceBranch = detail.SourceBranch
	mr.TargetBranch = detail.TargetBranch
	mr.ChangedFiles = detail.ChangedFiles
	mr.Additions = detail.Additions
	mr.Deletions = detail.Deletions
	if mr.Description == "" {
		mr.Description = detail.Description
	}
	return &mr
}

type scanResult[T any] struct {
	found   bool
	best    T
	repo    *model.Repository
	scanned []*model.Repository
}

// scanLatest finds the item with the latest timestamp across repos. Repositories are fetched in batches of Parallelism and the results are reduced in input order, so an exact tie is won by the repository earlier in repos.
func scanLatest[T any](
	ctx context.Context,
	cfg model.ScanConfig,
	repos []*model.Repository,
	fetch func(ctx context.Context, repo *model.Repository) ([]T, error),
	at func(T) time.Time,
) (*scanResult[T], error) {
	window := repos
	if len(window) > cfg.Window {
		window = window[:cfg.Window]
	}
	parallelism := max(1, min(cfg.Parallelism, model.MaxParallelism))

	var (
		result  scanResult[T]
		bestAt  time.Time
		streak  int
		stopped bool
	)

	// pruned means no later repository can hold a newer item
	pruned := func(repo *model.Repository) bool {
		return result.found && repo.LastActivity().Before(bestAt)
	}

	for start := 0; start < len(window) && !stopped; start += parallelism {
		batch := window[start:min(start+parallelism, len(window))]
		for i, repo := range batch {
			if pruned(repo) {
				batch = batch[:i]
				stopped = true
				break
			}
		}

		items := make([][]T, len(batch))
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(parallelism)
		for i, repo := range batch {
			eg.Go(func() error {
				resp, err := fetch(egCtx, repo)
				if err != nil {
					return goerr.Wrap(err, "failed to query repository", goerr.V("repo", repo.ID))
				}
				items[i] = resp
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}

		for i, repo := range batch {
			if pruned(repo) {
				stopped = true
				break
			}
			result.scanned = append(result.scanned, repo)

			latest, ok := latestOf(items[i], at)
			if !ok {
				streak++
				if cfg.MaxEmptyStreak > 0 && streak >= cfg.MaxEmptyStreak {
					stopped = true
					break
				}
				continue
			}
			streak = 0

			if !result.found || at(latest).After(bestAt) {
				result.found = true
				result.best = latest
				result.repo = repo
				bestAt = at(latest)
			}
		}
	}

	return &result, nil
}

// latestOf returns the item with the latest timestamp, the earliest one on a tie
func latestOf[T any](items []T, at func(T) time.Time) (T, bool) {
	var latest T
	if len(items) == 0 {
		return latest, false
	}
	latest = items[0]
	for _, item := range items[1:] {
		if at(item).After(at(latest)) {
			latest = item
		}
	}
	return latest, true
}
