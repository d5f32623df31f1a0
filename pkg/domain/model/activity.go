package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/devpost/pkg/domain/types"
)

// MergeRequest is a merged GitHub pull request
type MergeRequest struct {
	Number       int
	Title        string
	Description  string
	Author       string
	HTMLURL      string
	MergedAt     time.Time
	SourceBranch types.BranchName
	TargetBranch types.BranchName
	ChangedFiles int
	Additions    int
	Deletions    int
	Repository   types.GitHubRepoID
}

// Commit is a commit on a repository's default branch authored by the scanned user
type Commit struct {
	SHA        types.CommitSHA
	Message    string
	Author     string
	HTMLURL    string
	AuthoredAt time.Time
	Repository types.GitHubRepoID
}

// ShortSHA returns the abbreviated commit hash
func (x Commit) ShortSHA() string {
	return x.SHA.Short()
}

// Title returns the first line of the commit message
func (x Commit) Title() string {
	for i, c := range x.Message {
		if c == '\n' || c == '\r' {
			return x.Message[:i]
		}
	}
	return x.Message
}

// Body returns the commit message without its first line
func (x Commit) Body() string {
	title := x.Title()
	return strings.TrimSpace(x.Message[len(title):])
}

type ActivityKind string

const (
	ActivityMergeRequest ActivityKind = "merge_request"
	ActivityCommit       ActivityKind = "commit"
	ActivityNothing      ActivityKind = "nothing"
)

// ResolvedActivity is the single unit of work chosen for an account. Exactly one of MergeRequest and Commit is set according to Kind; both are nil for ActivityNothing.
type ResolvedActivity struct {
	Kind         ActivityKind
	MergeRequest *MergeRequest
	Commit       *Commit
	Repository   *Repository

	// Scanned lists the repositories examined by the resolver, in input order
	Scanned []*Repository
}

func NewMergeRequestFound(mr *MergeRequest, repo *Repository, scanned []*Repository) *ResolvedActivity {
	return &ResolvedActivity{
		Kind:         ActivityMergeRequest,
		MergeRequest: mr,
		Repository:   repo,
		Scanned:      scanned,
	}
}

func NewCommitFound(commit *Commit, repo *Repository, scanned []*Repository) *ResolvedActivity {
	return &ResolvedActivity{
		Kind:       ActivityCommit,
		Commit:     commit,
		Repository: repo,
		Scanned:    scanned,
	}
}

func NewNothingFound(scanned []*Repository) *ResolvedActivity {
	return &ResolvedActivity{
		Kind:    ActivityNothing,
		Scanned: scanned,
	}
}

// Timestamp returns the merge time or the authored time of the resolved activity
func (x *ResolvedActivity) Timestamp() time.Time {
	switch x.Kind {
	case ActivityMergeRequest:
		return x.MergeRequest.MergedAt
	case ActivityCommit:
		return x.Commit.AuthoredAt
	default:
		return time.Time{}
	}
}
