package model

import (
	"fmt"
	"strings"
	"time"
)

// Subject is the kind-independent description of the resolved activity
type Subject struct {
	Title        string
	Description  string
	Author       string
	Reference    string
	URL          string
	At           time.Time
	ChangedFiles int
	Additions    int
	Deletions    int
}

// GenerationContext is the bounded input of content generation
type GenerationContext struct {
	Kind           ActivityKind
	RepositoryName string
	RepositoryURL  string
	Subject        Subject

	// Highlights are insight lines, earliest kept when truncated
	Highlights    []string
	InsightSource string
	// TotalInsights counts insight items before truncation
	TotalInsights int
}

// HasInsight returns true if the context carries review bot highlights
func (x GenerationContext) HasInsight() bool {
	return len(x.Highlights) > 0
}

// Render returns the textual context passed to the model. The output only contains fields of the context, so its size is bounded by ContextConfig.RenderBound when the context was built by the assembler.
func (x GenerationContext) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Repository: %s\n", x.RepositoryName)
	if x.RepositoryURL != "" {
		fmt.Fprintf(&b, "Repository URL: %s\n", x.RepositoryURL)
	}

	switch x.Kind {
	case ActivityMergeRequest:
		fmt.Fprintf(&b, "PR Title: %s\n", x.Subject.Title)
		fmt.Fprintf(&b, "PR Number: %s\n", x.Subject.Reference)
		fmt.Fprintf(&b, "Author: %s\n", valueOr(x.Subject.Author, "unknown"))
		if !x.Subject.At.IsZero() {
			fmt.Fprintf(&b, "Merged: %s\n", x.Subject.At.UTC().Format(time.RFC3339))
		}
		fmt.Fprintf(&b, "Changes: %d files changed, %d additions, %d deletions\n",
			x.Subject.ChangedFiles, x.Subject.Additions, x.Subject.Deletions)
		fmt.Fprintf(&b, "PR Description: %s\n", valueOr(x.Subject.Description, "No description provided"))

	case ActivityCommit:
		fmt.Fprintf(&b, "Commit Message: %s\n", x.Subject.Title)
		if x.Subject.Description != "" {
			fmt.Fprintf(&b, "Commit Details: %s\n", x.Subject.Description)
		}
		fmt.Fprintf(&b, "Commit SHA: %s\n", x.Subject.Reference)
		fmt.Fprintf(&b, "Author: %s\n", valueOr(x.Subject.Author, "unknown"))
		if !x.Subject.At.IsZero() {
			fmt.Fprintf(&b, "Committed: %s\n", x.Subject.At.UTC().Format(time.RFC3339))
		}
	}

	if x.Subject.URL != "" {
		fmt.Fprintf(&b, "URL: %s\n", x.Subject.URL)
	}

	if x.HasInsight() {
		fmt.Fprintf(&b, "\n%s AI Review Insights (%d in total):\n", valueOr(x.InsightSource, "Review bot"), x.TotalInsights)
		for _, h := range x.Highlights {
			fmt.Fprintf(&b, "- %s\n", h)
		}
	}

	return b.String()
}

func valueOr(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}

// Form is the shape of a generated post
type Form string

const (
	// FormLong is a long-form post such as LinkedIn
	FormLong Form = "long_form"
	// FormShort is a short-form post such as Twitter/X
	FormShort Form = "short_form"
)

var Forms = []Form{FormLong, FormShort}

// GeneratedContent holds the accepted posts. A form that failed generation is left empty and its reason is kept in Failures.
type GeneratedContent struct {
	LongForm  string          `json:"long_form"`
	ShortForm string          `json:"short_form"`
	Failures  map[Form]string `json:"failures,omitempty"`
}

func (x *GeneratedContent) Get(form Form) string {
	if x == nil {
		return ""
	}
	switch form {
	case FormLong:
		return x.LongForm
	case FormShort:
		return x.ShortForm
	}
	return ""
}

func (x *GeneratedContent) Set(form Form, text string) {
	switch form {
	case FormLong:
		x.LongForm = text
	case FormShort:
		x.ShortForm = text
	}
}

// Fail records why form was not generated
func (x *GeneratedContent) Fail(form Form, reason string) {
	if x.Failures == nil {
		x.Failures = make(map[Form]string)
	}
	x.Failures[form] = reason
}

func (x *GeneratedContent) FailureOf(form Form) string {
	if x == nil {
		return ""
	}
	return x.Failures[form]
}

// Complete returns true if both forms were generated
func (x *GeneratedContent) Complete() bool {
	return x != nil && x.LongForm != "" && x.ShortForm != ""
}
