package gh

import (
	"context"
	"strings"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/devpost/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// maxDiscussionPages bounds each of the three comment listings
const maxDiscussionPages = 3

// ListDiscussion collects issue comments, inline review comments and review bodies of a pull request. Reviews without body are dropped.
func (x *Client) ListDiscussion(ctx context.Context, repo *model.Repository, number int) ([]model.DiscussionEntry, error) {
	var entries []model.DiscussionEntry
	vals := []goerr.Option{goerr.V("repo", repo.ID), goerr.V("number", number)}

	issueOpts := &github.IssueListCommentsOptions{ListOptions: github.ListOptions{PerPage: 100}}
	for page := 0; page < maxDiscussionPages; page++ {
		comments, resp, err := call(ctx, x, func(ctx context.Context) ([]*github.IssueComment, *github.Response, error) {
			return x.client.Issues.ListComments(ctx, repo.Owner, repo.Name, number, issueOpts)
		})
		if err != nil {
			if isEmptyResult(resp) {
				break
			}
			return nil, wrapError(err, "failed to list issue comments", vals...)
		}
		for _, c := range comments {
			entries = append(entries, model.DiscussionEntry{
				Author:    c.GetUser().GetLogin(),
				Body:      c.GetBody(),
				Kind:      model.DiscussionGeneralComment,
				CreatedAt: c.GetCreatedAt().Time,
			})
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		issueOpts.Page = resp.NextPage
	}

	reviewCommentOpts := &github.PullRequestListCommentsOptions{ListOptions: github.ListOptions{PerPage: 100}}
	for page := 0; page < maxDiscussionPages; page++ {
		comments, resp, err := call(ctx, x, func(ctx context.Context) ([]*github.PullRequestComment, *github.Response, error) {
			return x.client.PullRequests.ListComments(ctx, repo.Owner, repo.Name, number, reviewCommentOpts)
		})
		if err != nil {
			if isEmptyResult(resp) {
				break
			}
			return nil, wrapError(err, "failed to list review comments", vals...)
		}
		for _, c := range comments {
			entries = append(entries, model.DiscussionEntry{
				Author:    c.GetUser().GetLogin(),
				Body:      c.GetBody(),
				Kind:      model.DiscussionReviewComment,
				CreatedAt: c.GetCreatedAt().Time,
			})
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		reviewCommentOpts.Page = resp.NextPage
	}

	reviewOpts := &github.ListOptions{PerPage: 100}
	for page := 0; page < maxDiscussionPages; page++ {
		reviews, resp, err := call(ctx, x, func(ctx context.Context) ([]*github.PullRequestReview, *github.Response, error) {
			return x.client.PullRequests.ListReviews(ctx, repo.Owner, repo.Name, number, reviewOpts)
		})
		if err != nil {
			if isEmptyResult(resp) {
				break
			}
			return nil, wrapError(err, "failed to list reviews", vals...)
		}
		for _, r := range reviews {
			if strings.TrimSpace(r.GetBody()) == "" {
				continue
			}
			entries = append(entries, model.DiscussionEntry{
				Author:    r.GetUser().GetLogin(),
				Body:      r.GetBody(),
				Kind:      model.DiscussionReview,
				CreatedAt: r.GetSubmittedAt().Time,
			})
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		reviewOpts.Page = resp.NextPage
	}

	return entries, nil
}
