package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/m-mizutani/devpost/pkg/domain/mock"
	"github.com/m-mizutani/devpost/pkg/domain/model"
	"github.com/m-mizutani/devpost/pkg/domain/types"
	"github.com/m-mizutani/devpost/pkg/usecase"
	"github.com/m-mizutani/devpost/pkg/utils/retry"
	"github.com/m-mizutani/gt"
)

// noWaitPolicy retries without backoff
var noWaitPolicy = retry.Policy{MaxRetries: 2}

func isShortForm(instruction string) bool {
	return strings.Contains(instruction, "Twitter/X")
}

func sampleContext(t *testing.T) model.GenerationContext {
	t.Helper()
	asm, _ := newAssembler()
	activity := mergeRequestActivity(&model.MergeRequest{
		Number:   42,
		Title:    "Add response cache",
		Author:   "alice",
		HTMLURL:  "https://github.com/alice/app/pull/42",
		MergedAt: baseTime,
	})
	insight := &model.ReviewInsight{Summary: "Adds caching.", Suggestions: []string{"Add tests."}}
	return gt.R1(asm.Assemble(activity, insight)).NoError(t)
}

func TestGenerateBothForms(t *testing.T) {
	cfg := model.DefaultPipelineConfig().Generate
	llm := &mock.LLMMock{
		GenerateFunc: func(ctx context.Context, instruction, prompt string, maxTokens int) (string, error) {
			if isShortForm(instruction) {
				return "Shipped a response cache in alice/app! #Go #OpenSource", nil
			}
			return "```\nExcited to share that alice/app now caches search responses.\n\n#Development #Go #OpenSource\n```", nil
		},
	}

	gc := sampleContext(t)
	content := gt.R1(usecase.NewContentGenerator(llm, cfg, noWaitPolicy).Generate(context.Background(), gc)).NoError(t)
	gt.V(t, content.ShortForm).Equal("Shipped a response cache in alice/app! #Go #OpenSource")
	gt.V(t, content.LongForm).Equal("Excited to share that alice/app now caches search responses.\n\n#Development #Go #OpenSource")
	gt.True(t, content.Complete())

	calls := llm.GenerateCalls()
	gt.A(t, calls).Length(2)
	for _, call := range calls {
		gt.V(t, call.Prompt).Equal(gc.Render())
		gt.True(t, strings.Contains(call.Instruction, "CodeRabbit"))
		if isShortForm(call.Instruction) {
			gt.V(t, call.MaxTokens).Equal(cfg.ShortFormMaxTokens)
			gt.True(t, strings.Contains(call.Instruction, "at most 280 characters"))
		} else {
			gt.V(t, call.MaxTokens).Equal(cfg.LongFormMaxTokens)
			gt.True(t, strings.Contains(call.Instruction, "at most 1300 characters"))
		}
	}
}

func TestGenerateRetriesRejectedAnswer(t *testing.T) {
	cfg := model.DefaultPipelineConfig().Generate

	var (
		mutex   sync.Mutex
		prompts []string
	)
	llm := &mock.LLMMock{
		GenerateFunc: func(ctx context.Context, instruction, prompt string, maxTokens int) (string, error) {
			if !isShortForm(instruction) {
				return "A long post about alice/app. #Go", nil
			}
			mutex.Lock()
			defer mutex.Unlock()
			prompts = append(prompts, prompt)
			if len(prompts) == 1 {
				return strings.Repeat("too long ", 50), nil
			}
			return "Short post about alice/app #Go", nil
		},
	}

	content := gt.R1(usecase.NewContentGenerator(llm, cfg, noWaitPolicy).Generate(context.Background(), sampleContext(t))).NoError(t)
	gt.V(t, content.ShortForm).Equal("Short post about alice/app #Go")
	gt.A(t, prompts).Length(2)
	gt.False(t, strings.Contains(prompts[0], "rejected"))
	gt.True(t, strings.Contains(prompts[1], "Your previous answer was rejected: answer has"))
}

func TestGenerateFailsAfterRetryBudget(t *testing.T) {
	cfg := model.DefaultPipelineConfig().Generate
	llm := &mock.LLMMock{
		GenerateFunc: func(ctx context.Context, instruction, prompt string, maxTokens int) (string, error) {
			if isShortForm(instruction) {
				return strings.Repeat("x", cfg.ShortFormMaxChars+1), nil
			}
			return "A long post about alice/app. #Go", nil
		},
	}

	content, err := usecase.NewContentGenerator(llm, cfg, noWaitPolicy).Generate(context.Background(), sampleContext(t))
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrGenerationFailed))

	// the long form is kept and the short form is not
	gt.V(t, content.LongForm).Equal("A long post about alice/app. #Go")
	gt.V(t, content.ShortForm).Equal("")
	gt.False(t, content.Complete())
	gt.V(t, content.FailureOf(model.FormShort)).Equal("rejected: answer has 281 characters, the limit is 280")
	gt.V(t, content.FailureOf(model.FormLong)).Equal("")

	var short int
	for _, call := range llm.GenerateCalls() {
		if isShortForm(call.Instruction) {
			short++
		}
	}
	gt.V(t, short).Equal(noWaitPolicy.Attempts())
}

func TestGenerateModelError(t *testing.T) {
	llm := &mock.LLMMock{
		GenerateFunc: func(ctx context.Context, instruction, prompt string, maxTokens int) (string, error) {
			return "", errors.New("service unavailable")
		},
	}

	content, err := usecase.NewContentGenerator(llm, model.DefaultPipelineConfig().Generate, noWaitPolicy).Generate(context.Background(), sampleContext(t))
	gt.True(t, errors.Is(err, types.ErrGenerationFailed))
	gt.V(t, content.LongForm).Equal("")
	gt.V(t, content.ShortForm).Equal("")
	gt.V(t, content.Failures).Equal(map[model.Form]string{
		model.FormLong:  "model call failed",
		model.FormShort: "model call failed",
	})
	gt.A(t, llm.GenerateCalls()).Length(2 * noWaitPolicy.Attempts())
}

func TestGenerateShortBound(t *testing.T) {
	cfg := model.DefaultPipelineConfig().Generate
	answers := []string{
		strings.Repeat("a", cfg.ShortFormMaxChars),
		strings.Repeat("あ", cfg.ShortFormMaxChars),
		"  " + strings.Repeat("b", cfg.ShortFormMaxChars) + "  \n",
		`"` + strings.Repeat("c", cfg.ShortFormMaxChars) + `"`,
	}

	for _, answer := range answers {
		llm := &mock.LLMMock{
			GenerateFunc: func(ctx context.Context, instruction, prompt string, maxTokens int) (string, error) {
				return answer, nil
			},
		}
		content := gt.R1(usecase.NewContentGenerator(llm, cfg, noWaitPolicy).Generate(context.Background(), sampleContext(t))).NoError(t)
		gt.True(t, utf8.RuneCountInString(content.ShortForm) <= cfg.ShortFormMaxChars)
		gt.A(t, llm.GenerateCalls()).Length(2)
	}
}

func TestValidatePost(t *testing.T) {
	testCases := map[string]struct {
		text  string
		valid bool
	}{
		"plain post":         {text: "Shipped caching in alice/app #Go", valid: true},
		"empty":              {text: "", valid: false},
		"too long":           {text: strings.Repeat("a", 61), valid: false},
		"template braces":    {text: "Check {{link}}", valid: false},
		"snake placeholder":  {text: "Read more at {repo_url}", valid: false},
		"bracket insert":     {text: "See [Insert link here]", valid: false},
		"bracket your":       {text: "[Your Name] shipped it", valid: false},
		"angle placeholder":  {text: "Visit <REPO_URL>", valid: false},
		"markdown link text": {text: "See [docs]", valid: true},
		"code braces":        {text: "map{}", valid: true},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			err := usecase.ValidatePostForTest(tc.text, 60)
			if tc.valid {
				gt.NoError(t, err)
			} else {
				gt.Error(t, err)
			}
		})
	}
}

func TestCleanPost(t *testing.T) {
	testCases := map[string]struct {
		input string
		want  string
	}{
		"trim":            {input: "  hello \n", want: "hello"},
		"fence":           {input: "```\nhello\n```", want: "hello"},
		"fence with lang": {input: "```markdown\nhello world\n```", want: "hello world"},
		"double quotes":   {input: `"hello"`, want: "hello"},
		"smart quotes":    {input: "“hello”", want: "hello"},
		"inner quotes":    {input: `"a" and "b"`, want: `"a" and "b"`},
		"single line":     {input: "```hello world```", want: "hello world"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			gt.V(t, usecase.CleanPostForTest(tc.input)).Equal(tc.want)
		})
	}
}
