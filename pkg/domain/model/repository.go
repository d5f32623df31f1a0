package model

import (
	"time"

	"github.com/m-mizutani/devpost/pkg/domain/types"
)

// Repository is a snapshot of a GitHub repository taken for a single scan
type Repository struct {
	ID            types.GitHubRepoID
	Owner         string
	Name          string
	DefaultBranch types.BranchName
	HTMLURL       string
	Fork          bool
	Archived      bool
	Private       bool
	UpdatedAt     time.Time
	PushedAt      time.Time
}

// LastActivity returns the later of UpdatedAt and PushedAt. A merge pushes to the base branch, so a merged pull request is never newer than the LastActivity of its repository.
func (x Repository) LastActivity() time.Time {
	if x.PushedAt.After(x.UpdatedAt) {
		return x.PushedAt
	}
	return x.UpdatedAt
}

// FullName returns "owner/name"
func (x Repository) FullName() string {
	return x.Owner + "/" + x.Name
}

func NewRepoID(owner, name string) types.GitHubRepoID {
	return types.GitHubRepoID(owner + "/" + name)
}
