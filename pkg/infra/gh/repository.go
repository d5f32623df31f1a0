package gh

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/devpost/pkg/domain/model"
	"github.com/m-mizutani/devpost/pkg/domain/types"
	"github.com/m-mizutani/devpost/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// ListRepositories returns public repositories owned by user, most recently active first. Listing stops after MaxRepositoryPages pages.
func (x *Client) ListRepositories(ctx context.Context, user string) ([]*model.Repository, error) {
	opts := &github.RepositoryListByUserOptions{
		Type:        "owner",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	repos := []*model.Repository{}
	var skipped int

	for page := 0; page < x.source.MaxRepositoryPages; page++ {
		result, resp, err := call(ctx, x, func(ctx context.Context) ([]*github.Repository, *github.Response, error) {
			return x.client.Repositories.ListByUser(ctx, user, opts)
		})
		if err != nil {
			return nil, wrapError(err, "failed to list repositories", goerr.V("user", user), goerr.V("page", opts.Page))
		}

		for _, r := range result {
			if r.GetPrivate() || r.GetArchived() || r.GetDisabled() || (r.GetFork() && !x.source.IncludeForks) {
				skipped++
				continue
			}
			repos = append(repos, toRepository(r))
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	sort.SliceStable(repos, func(i, j int) bool {
		return repos[i].LastActivity().After(repos[j].LastActivity())
	})

	logging.From(ctx).Debug("Listed repositories",
		slog.String("user", user),
		slog.Int("count", len(repos)),
		slog.Int("skipped", skipped),
	)

	return repos, nil
}

func toRepository(r *github.Repository) *model.Repository {
	owner := r.GetOwner().GetLogin()
	return &model.Repository{
		ID:            model.NewRepoID(owner, r.GetName()),
		Owner:         owner,
		Name:          r.GetName(),
		DefaultBranch: types.BranchName(r.GetDefaultBranch()),
		HTMLURL:       r.GetHTMLURL(),
		Fork:          r.GetFork(),
		Archived:      r.GetArchived(),
		Private:       r.GetPrivate(),
		UpdatedAt:     r.GetUpdatedAt().Time,
		PushedAt:      r.GetPushedAt().Time,
	}
}
