package model

import (
	"regexp"

	"github.com/m-mizutani/devpost/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const maxGitHubLoginLen = 39

// GitHub login: alphanumeric or single hyphens
var ptnGitHubLogin = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9]|-[A-Za-z0-9]){0,38}$`)

type GeneratePostsInput struct {
	User string
}

func (x *GeneratePostsInput) Validate() error {
	if x.User == "" {
		return goerr.Wrap(types.ErrInvalidOption, "user is empty")
	}
	if len(x.User) > maxGitHubLoginLen || !ptnGitHubLogin.MatchString(x.User) {
		return goerr.Wrap(types.ErrInvalidOption, "invalid GitHub user name", goerr.V("user", x.User))
	}
	return nil
}
