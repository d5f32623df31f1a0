package usecase

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/m-mizutani/devpost/pkg/domain/model"
	"github.com/m-mizutani/devpost/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ContextAssembler builds the bounded generation context. It does no I/O.
type ContextAssembler struct {
	cfg    model.ContextConfig
	source string
}

// NewContextAssembler creates an assembler. source is the display name of the review bot.
func NewContextAssembler(cfg model.ContextConfig, source string) *ContextAssembler {
	return &ContextAssembler{
		cfg:    cfg,
		source: source,
	}
}

func (x *ContextAssembler) Assemble(activity *model.ResolvedActivity, insight *model.ReviewInsight) (model.GenerationContext, error) {
	if activity == nil || activity.Kind == model.ActivityNothing {
		return model.GenerationContext{}, goerr.Wrap(types.ErrNoActivity, "cannot assemble context without activity")
	}

	fieldCap := x.cfg.MaxFieldChars
	gc := model.GenerationContext{
		Kind: activity.Kind,
	}
	if activity.Repository != nil {
		gc.RepositoryName = truncate(activity.Repository.FullName(), fieldCap)
		gc.RepositoryURL = truncate(activity.Repository.HTMLURL, fieldCap)
	}

	switch activity.Kind {
	case model.ActivityMergeRequest:
		mr := activity.MergeRequest
		if mr == nil {
			return model.GenerationContext{}, goerr.Wrap(types.ErrNoActivity, "merge request is missing")
		}
		gc.Subject = model.Subject{
			Title:        truncate(collapse(mr.Title), x.cfg.MaxTitleChars),
			Description:  truncate(strings.TrimSpace(mr.Description), x.cfg.MaxDescriptionChars),
			Author:       truncate(mr.Author, fieldCap),
			Reference:    truncate(fmt.Sprintf("#%d", mr.Number), fieldCap),
			URL:          truncate(mr.HTMLURL, fieldCap),
			At:           mr.MergedAt,
			ChangedFiles: mr.ChangedFiles,
			Additions:    mr.Additions,
			Deletions:    mr.Deletions,
		}

		highlights := x.highlights(insight)
		gc.TotalInsights = len(highlights)
		if len(highlights) > x.cfg.MaxHighlights {
			highlights = highlights[:x.cfg.MaxHighlights]
		}
		gc.Highlights = highlights
		if len(highlights) > 0 {
			gc.InsightSource = truncate(x.source, fieldCap)
		}

	case model.ActivityCommit:
		c := activity.Commit
		if c == nil {
			return model.GenerationContext{}, goerr.Wrap(types.ErrNoActivity, "commit is missing")
		}
		gc.Subject = model.Subject{
			Title:       truncate(collapse(c.Title()), x.cfg.MaxTitleChars),
			Description: truncate(c.Body(), x.cfg.MaxDescriptionChars),
			Author:      truncate(c.Author, fieldCap),
			Reference:   truncate(c.ShortSHA(), fieldCap),
			URL:         truncate(c.HTMLURL, fieldCap),
			At:          c.AuthoredAt,
		}

	default:
		return model.GenerationContext{}, goerr.New("unknown activity kind", goerr.V("kind", activity.Kind))
	}

	return gc, nil
}

// highlights lists insight lines in priority order: summary, suggestions, flagged areas and score. Each line is cut to its own limit.
func (x *ContextAssembler) highlights(insight *model.ReviewInsight) []string {
	if insight.Empty() {
		return nil
	}

	var lines []string
	if insight.Summary != "" {
		lines = append(lines, truncate("Summary: "+insight.Summary, x.cfg.MaxSummaryChars))
	}

	suggestions := insight.Suggestions
	if len(suggestions) > x.cfg.MaxSuggestions {
		suggestions = suggestions[:x.cfg.MaxSuggestions]
	}
	for _, s := range suggestions {
		lines = append(lines, truncate("Suggestion: "+s, x.cfg.MaxSuggestionChars))
	}

	if len(insight.Categories) > 0 {
		names := make([]string, len(insight.Categories))
		for i, c := range insight.Categories {
			names[i] = string(c)
		}
		lines = append(lines, truncate("Flagged areas: "+strings.Join(names, ", "), x.cfg.MaxFieldChars))
	}

	if insight.Score != nil {
		lines = append(lines, truncate("Review score: "+insight.Score.String(), x.cfg.MaxFieldChars))
	}

	return lines
}

const ellipsis = "…"

// truncate cuts s to at most limit runes, ending with an ellipsis when cut
func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit == 1 {
		return string(runes[:1])
	}
	cut := strings.TrimRightFunc(string(runes[:limit-1]), unicode.IsSpace)
	return cut + ellipsis
}
