package types

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidOption = goerr.New("invalid option")
	ErrInvalidConfig = goerr.New("invalid config")

	// ErrSourceUnavailable means the source host could not be reached or rejected the credential.
	ErrSourceUnavailable = goerr.New("source host unavailable")
	// ErrRateLimited is returned when the source host keeps rate limiting after the retry budget.
	ErrRateLimited = goerr.New("rate limited by source host")
	// ErrGenerationFailed is returned when a model call exhausted its retry budget.
	ErrGenerationFailed = goerr.New("content generation failed")
	ErrNoActivity       = goerr.New("no activity found")
)
