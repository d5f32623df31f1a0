package usecase

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"text/template"
	"unicode/utf8"

	"github.com/m-mizutani/devpost/pkg/domain/interfaces"
	"github.com/m-mizutani/devpost/pkg/domain/model"
	"github.com/m-mizutani/devpost/pkg/domain/types"
	"github.com/m-mizutani/devpost/pkg/utils/logging"
	"github.com/m-mizutani/devpost/pkg/utils/retry"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var instructionTemplates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

type instructionInput struct {
	MaxChars      int
	HasInsight    bool
	InsightSource string
}

func instructionName(form model.Form, kind model.ActivityKind) string {
	return fmt.Sprintf("%s_%s.tmpl", form, kind)
}

// ContentGenerator asks the model for a long-form and a short-form post and validates each answer
type ContentGenerator struct {
	llm   interfaces.LLM
	cfg   model.GenerateConfig
	retry retry.Policy
}

func NewContentGenerator(llm interfaces.LLM, cfg model.GenerateConfig, policy retry.Policy) *ContentGenerator {
	return &ContentGenerator{
		llm:   llm,
		cfg:   cfg,
		retry: policy,
	}
}

// Generate runs both forms concurrently. A failed form does not block the other: the returned content holds every accepted form and the error joins failures of the others.
func (x *ContentGenerator) Generate(ctx context.Context, gc model.GenerationContext) (*model.GeneratedContent, error) {
	prompt := gc.Render()

	var (
		content model.GeneratedContent
		mutex   sync.Mutex
		errs    []error
		eg      errgroup.Group
	)

	for _, form := range model.Forms {
		eg.Go(func() error {
			text, reason, err := x.generateForm(ctx, form, gc, prompt)

			mutex.Lock()
			defer mutex.Unlock()
			if err != nil {
				errs = append(errs, err)
				content.Fail(form, reason)
				return nil
			}
			content.Set(form, text)
			return nil
		})
	}
	_ = eg.Wait()

	if len(errs) > 0 {
		return &content, errors.Join(errs...)
	}
	return &content, nil
}

// generateForm returns the accepted post, or a short failure reason together with the error
func (x *ContentGenerator) generateForm(ctx context.Context, form model.Form, gc model.GenerationContext, prompt string) (string, string, error) {
	maxChars := x.cfg.MaxChars(form)

	var buf bytes.Buffer
	if err := instructionTemplates.ExecuteTemplate(&buf, instructionName(form, gc.Kind), instructionInput{
		MaxChars:      maxChars,
		HasInsight:    gc.HasInsight(),
		InsightSource: gc.InsightSource,
	}); err != nil {
		return "", "instruction template failed", goerr.Wrap(errors.Join(types.ErrGenerationFailed, err), "failed to render instruction",
			goerr.V("form", form),
			goerr.V("kind", gc.Kind),
		)
	}
	instruction := buf.String()

	var (
		accepted  string
		rejection string
		reason    string
		attempts  int
	)

	err := x.retry.Do(ctx, func(ctx context.Context, attempt int) error {
		attempts = attempt
		userMessage := prompt
		if rejection != "" {
			userMessage += "\n\nYour previous answer was rejected: " + rejection + ". Follow the rules strictly."
		}

		callCtx, cancel := context.WithTimeout(ctx, x.cfg.CallTimeout)
		defer cancel()

		out, err := x.llm.Generate(callCtx, instruction, userMessage, x.cfg.MaxTokens(form))
		if err != nil {
			reason = "model call failed"
			return err
		}

		text := cleanPost(out)
		if err := validatePost(text, maxChars); err != nil {
			rejection = err.Error()
			reason = "rejected: " + rejection
			logging.From(ctx).Warn("Generated post is rejected",
				slog.Any("form", form),
				slog.Int("attempt", attempt),
				slog.String("reason", rejection),
			)
			return err
		}

		accepted = text
		return nil
	})
	if err != nil {
		if ctx.Err() != nil || reason == "" {
			reason = "generation timed out"
		}
		return "", reason, goerr.Wrap(errors.Join(types.ErrGenerationFailed, err), "failed to generate post",
			goerr.V("form", form),
			goerr.V("attempts", attempts),
		)
	}

	return accepted, "", nil
}

type violationError struct {
	reason string
}

func (x *violationError) Error() string { return x.reason }

var placeholderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\{\{[^}]*\}\}`),
	regexp.MustCompile(`\{[a-z][a-z0-9]*(?:_[a-z0-9]+)*\}`),
	regexp.MustCompile(`(?i)\[(?:insert|your)\b[^\]]*\]`),
	regexp.MustCompile(`<[A-Z][A-Z0-9_]{2,}>`),
}

// validatePost checks an accepted post is non-empty, within maxChars runes and free of unresolved placeholders
func validatePost(text string, maxChars int) error {
	if text == "" {
		return &violationError{reason: "answer is empty"}
	}
	if n := utf8.RuneCountInString(text); n > maxChars {
		return &violationError{reason: fmt.Sprintf("answer has %d characters, the limit is %d", n, maxChars)}
	}
	for _, p := range placeholderPatterns {
		if m := p.FindString(text); m != "" {
			return &violationError{reason: fmt.Sprintf("answer contains unresolved placeholder %q", m)}
		}
	}
	return nil
}

var quotePairs = [][2]string{
	{`"`, `"`},
	{"'", "'"},
	{"“", "”"},
	{"「", "」"},
}

// cleanPost trims the answer and removes a code fence or a single pair of wrapping quotes
func cleanPost(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") && strings.HasSuffix(text, "```") && len(text) >= 6 {
		body := strings.TrimSuffix(strings.TrimPrefix(text, "```"), "```")
		if nl := strings.Index(body, "\n"); nl >= 0 && !strings.ContainsAny(body[:nl], " \t") {
			// drop language tag of the fence
			body = body[nl+1:]
		}
		text = strings.TrimSpace(body)
	}

	for _, q := range quotePairs {
		if len(text) >= len(q[0])+len(q[1]) && strings.HasPrefix(text, q[0]) && strings.HasSuffix(text, q[1]) {
			inner := text[len(q[0]) : len(text)-len(q[1])]
			if !strings.Contains(inner, q[0]) && !strings.Contains(inner, q[1]) {
				text = strings.TrimSpace(inner)
			}
			break
		}
	}

	return text
}
