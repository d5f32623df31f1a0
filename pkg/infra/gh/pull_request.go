package gh

import (
	"context"
	"sort"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/devpost/pkg/domain/model"
	"github.com/m-mizutani/devpost/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ListMergedPullRequests returns up to limit merged pull requests of repo, latest merge first. Closed pull requests are listed by update time and filtered by merge time, so twice the limit is requested.
func (x *Client) ListMergedPullRequests(ctx context.Context, repo *model.Repository, limit int) ([]*model.MergeRequest, error) {
	if limit < 1 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "limit must be positive", goerr.V("limit", limit))
	}

	opts := &github.PullRequestListOptions{
		State:       "closed",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: min(limit*2, 100)},
	}

	prs, resp, err := call(ctx, x, func(ctx context.Context) ([]*github.PullRequest, *github.Response, error) {
		return x.client.PullRequests.List(ctx, repo.Owner, repo.Name, opts)
	})
	if err != nil {
		if isEmptyResult(resp) {
			return nil, nil
		}
		return nil, wrapError(err, "failed to list pull requests", goerr.V("repo", repo.ID))
	}

	var merged []*model.MergeRequest
	for _, pr := range prs {
		if pr.MergedAt == nil {
			continue
		}
		merged = append(merged, toMergeRequest(repo, pr))
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].MergedAt.After(merged[j].MergedAt)
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}

	return merged, nil
}

// GetPullRequest returns the pull request with diff stats and branches
func (x *Client) GetPullRequest(ctx context.Context, repo *model.Repository, number int) (*model.MergeRequest, error) {
	pr, _, err := call(ctx, x, func(ctx context.Context) (*github.PullRequest, *github.Response, error) {
		return x.client.PullRequests.Get(ctx, repo.Owner, repo.Name, number)
	})
	if err != nil {
		return nil, wrapError(err, "failed to get pull request", goerr.V("repo", repo.ID), goerr.V("number", number))
	}

	return toMergeRequest(repo, pr), nil
}

func toMergeRequest(repo *model.Repository, pr *github.PullRequest) *model.MergeRequest {
	return &model.MergeRequest{
		Number:       pr.GetNumber(),
		Title:        pr.GetTitle(),
		Description:  pr.GetBody(),
		Author:       pr.GetUser().GetLogin(),
		HTMLURL:      pr.GetHTMLURL(),
		MergedAt:     pr.GetMergedAt().Time,
		SourceBranch: types.BranchName(pr.GetHead().GetRef()),
		TargetBranch: types.BranchName(pr.GetBase().GetRef()),
		ChangedFiles: pr.GetChangedFiles(),
		Additions:    pr.GetAdditions(),
		Deletions:    pr.GetDeletions(),
		Repository:   repo.ID,
	}
}
