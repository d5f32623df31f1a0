package sink

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/m-mizutani/devpost/pkg/domain/interfaces"
	"github.com/m-mizutani/devpost/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// Terminal prints the run result for humans
type Terminal struct {
	w       io.Writer
	heading *color.Color
	label   *color.Color
	dim     *color.Color
	warn    *color.Color
}

var _ interfaces.ContentSink = (*Terminal)(nil)

type TerminalOption func(*Terminal)

// WithNoColor disables colored output
func WithNoColor() TerminalOption {
	return func(x *Terminal) {
		for _, c := range []*color.Color{x.heading, x.label, x.dim, x.warn} {
			c.DisableColor()
		}
	}
}

func NewTerminal(w io.Writer, options ...TerminalOption) *Terminal {
	x := &Terminal{
		w:       w,
		heading: color.New(color.FgHiCyan, color.Bold),
		label:   color.New(color.FgHiWhite, color.Bold),
		dim:     color.New(color.FgWhite),
		warn:    color.New(color.FgYellow, color.Bold),
	}
	for _, opt := range options {
		opt(x)
	}
	return x
}

func (x *Terminal) Publish(ctx context.Context, result *model.RunResult) error {
	p := &printer{w: x.w}

	if result.Status == model.RunStatusNoActivity {
		p.line(x.warn, "No recent activity found for %s", result.User)
		if result.Activity != nil {
			p.line(x.dim, "%d repositories scanned", len(result.Activity.Scanned))
		}
		return p.err
	}

	if gc := result.Context; gc != nil {
		switch gc.Kind {
		case model.ActivityMergeRequest:
			p.line(x.heading, "Merged pull request %s in %s", gc.Subject.Reference, gc.RepositoryName)
		case model.ActivityCommit:
			p.line(x.heading, "Commit %s in %s", gc.Subject.Reference, gc.RepositoryName)
		}
		p.line(x.dim, "%s", gc.Subject.Title)
		if gc.Subject.URL != "" {
			p.line(x.dim, "%s", gc.Subject.URL)
		}
		if gc.HasInsight() {
			p.line(x.dim, "%d insights from %s", gc.TotalInsights, gc.InsightSource)
		}
	}

	for _, form := range model.Forms {
		p.blank()
		text := result.Content.Get(form)
		if text == "" {
			if reason := result.Content.FailureOf(form); reason != "" {
				p.line(x.warn, "%s: not generated (%s)", formTitle(form), reason)
			} else {
				p.line(x.warn, "%s: not generated", formTitle(form))
			}
			continue
		}
		p.line(x.label, "%s (%d chars)", formTitle(form), utf8.RuneCountInString(text))
		p.text(text)
	}

	if result.Status == model.RunStatusPartial {
		p.blank()
		p.line(x.warn, "Some posts could not be generated")
	}

	if p.err != nil {
		return goerr.Wrap(p.err, "failed to write result to terminal")
	}
	return nil
}

func formTitle(form model.Form) string {
	switch form {
	case model.FormLong:
		return "Long form (LinkedIn)"
	case model.FormShort:
		return "Short form (Twitter/X)"
	default:
		return string(form)
	}
}

// printer keeps the first write error
type printer struct {
	w   io.Writer
	err error
}

func (x *printer) line(c *color.Color, format string, args ...any) {
	if x.err != nil {
		return
	}
	_, x.err = c.Fprintf(x.w, format+"\n", args...)
}

func (x *printer) text(s string) {
	if x.err != nil {
		return
	}
	_, x.err = fmt.Fprintln(x.w, s)
}

func (x *printer) blank() {
	x.text("")
}
