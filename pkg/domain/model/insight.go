package model

import "fmt"

// Category is a closed set of issue areas flagged by a review bot
type Category string

const (
	CategorySecurity        Category = "security"
	CategoryPerformance     Category = "performance"
	CategoryBug             Category = "bug"
	CategoryMaintainability Category = "maintainability"
	CategoryTesting         Category = "testing"
	CategoryDocumentation   Category = "documentation"
	CategoryStyle           Category = "style"
)

// Score is a quality score as written by the bot, e.g. 8 out of 10
type Score struct {
	Value float64
	Max   float64
}

func (x Score) String() string {
	return fmt.Sprintf("%g/%g", x.Value, x.Max)
}

// ReviewInsight is the aggregated output of review bot comments on one pull request
type ReviewInsight struct {
	Summary     string
	Suggestions []string
	Categories  []Category
	Score       *Score

	// SourceEntries is the number of bot entries merged into this insight
	SourceEntries int
}

// Empty returns true if no field carries data
func (x *ReviewInsight) Empty() bool {
	return x == nil || (x.Summary == "" && len(x.Suggestions) == 0 && len(x.Categories) == 0 && x.Score == nil)
}
