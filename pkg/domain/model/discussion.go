package model

import "time"

type DiscussionKind string

const (
	DiscussionGeneralComment DiscussionKind = "general_comment"
	DiscussionReviewComment  DiscussionKind = "review_comment"
	DiscussionReview         DiscussionKind = "review"
)

// DiscussionEntry is one comment or review body on a pull request
type DiscussionEntry struct {
	Author    string
	Body      string
	Kind      DiscussionKind
	CreatedAt time.Time
}
