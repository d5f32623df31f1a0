package gh

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/devpost/pkg/domain/types"
	"github.com/m-mizutani/devpost/pkg/utils/retry"
	"github.com/m-mizutani/goerr/v2"
)

// rateLimitedError is a retryable error with the wait suggested by GitHub
type rateLimitedError struct {
	err   error
	after time.Duration
}

func (x *rateLimitedError) Error() string             { return x.err.Error() }
func (x *rateLimitedError) Unwrap() error             { return x.err }
func (x *rateLimitedError) RetryAfter() time.Duration { return x.after }

// classify marks rate limit errors as retryable and everything else as permanent
func classify(err error) error {
	var rle *github.RateLimitError
	if errors.As(err, &rle) {
		return &rateLimitedError{err: err, after: time.Until(rle.Rate.Reset.Time)}
	}

	var are *github.AbuseRateLimitError
	if errors.As(err, &are) {
		var after time.Duration
		if are.RetryAfter != nil {
			after = *are.RetryAfter
		}
		return &rateLimitedError{err: err, after: after}
	}

	return retry.Stop(err)
}

// call runs fn under the rate limit retry policy of the client
func call[T any](ctx context.Context, x *Client, fn func(ctx context.Context) (T, *github.Response, error)) (T, *github.Response, error) {
	var (
		result T
		resp   *github.Response
	)

	err := x.retry.Do(ctx, func(ctx context.Context, attempt int) error {
		r, rs, err := fn(ctx)
		resp = rs
		if err != nil {
			return classify(err)
		}
		result = r
		return nil
	})

	return result, resp, err
}

// isEmptyResult returns true for responses meaning the repository has nothing to report: not found, empty repository (409) or unavailable for legal reasons.
func isEmptyResult(resp *github.Response) bool {
	if resp == nil {
		return false
	}
	switch resp.StatusCode {
	case http.StatusNotFound, http.StatusConflict, http.StatusUnavailableForLegalReasons:
		return true
	}
	return false
}

// wrapError maps a failed call to ErrRateLimited or ErrSourceUnavailable, keeping the cause
func wrapError(err error, msg string, options ...goerr.Option) error {
	var rle *rateLimitedError
	var ghRate *github.RateLimitError
	var ghAbuse *github.AbuseRateLimitError
	if errors.As(err, &rle) || errors.As(err, &ghRate) || errors.As(err, &ghAbuse) {
		return goerr.Wrap(errors.Join(types.ErrRateLimited, err), msg, options...)
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		options = append(options, goerr.V("status", ghErr.Response.StatusCode))
	}

	return goerr.Wrap(errors.Join(types.ErrSourceUnavailable, err), msg, options...)
}
