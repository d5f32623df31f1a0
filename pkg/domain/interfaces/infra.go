package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . GitHub LLM ContentSink

import (
	"context"

	"github.com/m-mizutani/devpost/pkg/domain/model"
)

// GitHub is the source host. Per-repository queries report a missing or empty repository as an empty result.
type GitHub interface {
	// ListRepositories returns public repositories owned by user, ordered by LastActivity descending
	ListRepositories(ctx context.Context, user string) ([]*model.Repository, error)
	// ListMergedPullRequests returns up to limit merged pull requests, ordered by merge time descending
	ListMergedPullRequests(ctx context.Context, repo *model.Repository, limit int) ([]*model.MergeRequest, error)
	GetPullRequest(ctx context.Context, repo *model.Repository, number int) (*model.MergeRequest, error)
	// ListDiscussion returns general comments, inline review comments and review bodies of a pull request
	ListDiscussion(ctx context.Context, repo *model.Repository, number int) ([]model.DiscussionEntry, error)
	// ListCommits returns up to limit latest commits authored by author on the default branch
	ListCommits(ctx context.Context, repo *model.Repository, author string, limit int) ([]*model.Commit, error)
}

type LLM interface {
	Generate(ctx context.Context, instruction, prompt string, maxTokens int) (string, error)
}

// ContentSink receives the result of a run. It must not post anywhere.
type ContentSink interface {
	Publish(ctx context.Context, result *model.RunResult) error
}
