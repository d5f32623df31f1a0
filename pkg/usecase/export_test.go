package usecase

import "github.com/m-mizutani/devpost/pkg/domain/model"

// Export unexported functions for testing
var (
	TruncateForTest     = truncate
	CleanPostForTest    = cleanPost
	ValidatePostForTest = validatePost
)

type ParsedBodyForTest struct {
	Summaries    []string
	Walkthroughs []string
	Suggestions  []string
	IssueLines   []string
	Scores       []model.Score
}

func ParseBotBodyForTest(body string) ParsedBodyForTest {
	p := parseBotBody(body)
	return ParsedBodyForTest{
		Summaries:    p.summaries,
		Walkthroughs: p.walkthroughs,
		Suggestions:  p.suggestions,
		IssueLines:   p.issueLines,
		Scores:       p.scores,
	}
}
