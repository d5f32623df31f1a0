package gh

import (
	"context"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/devpost/pkg/domain/model"
	"github.com/m-mizutani/devpost/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ListCommits returns up to limit latest commits of the default branch authored by author
func (x *Client) ListCommits(ctx context.Context, repo *model.Repository, author string, limit int) ([]*model.Commit, error) {
	if limit < 1 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "limit must be positive", goerr.V("limit", limit))
	}

	opts := &github.CommitsListOptions{
		SHA:         string(repo.DefaultBranch),
		Author:      author,
		ListOptions: github.ListOptions{PerPage: min(limit, 100)},
	}

	commits, resp, err := call(ctx, x, func(ctx context.Context) ([]*github.RepositoryCommit, *github.Response, error) {
		return x.client.Repositories.ListCommits(ctx, repo.Owner, repo.Name, opts)
	})
	if err != nil {
		if isEmptyResult(resp) {
			return nil, nil
		}
		return nil, wrapError(err, "failed to list commits", goerr.V("repo", repo.ID), goerr.V("author", author))
	}

	result := make([]*model.Commit, 0, len(commits))
	for _, c := range commits {
		login := c.GetAuthor().GetLogin()
		if login == "" {
			login = c.GetCommit().GetAuthor().GetName()
		}
		result = append(result, &model.Commit{
			SHA:        types.CommitSHA(c.GetSHA()),
			Message:    c.GetCommit().GetMessage(),
			Author:     login,
			HTMLURL:    c.GetHTMLURL(),
			AuthoredAt: c.GetCommit().GetAuthor().GetDate().Time,
			Repository: repo.ID,
		})
	}
	if len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}
