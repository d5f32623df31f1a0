package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/devpost/pkg/domain/model"
	"github.com/m-mizutani/devpost/pkg/domain/types"
	"github.com/m-mizutani/devpost/pkg/infra/gh"
	"github.com/m-mizutani/devpost/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// GitHub holds credentials of the source host. A personal access token and a GitHub App are exclusive; without both the public API is used anonymously.
type GitHub struct {
	token      types.GitHubToken `masq:"secret"`
	appID      types.GitHubAppID
	installID  types.GitHubAppInstallID
	privateKey types.GitHubAppPrivateKey `masq:"secret"`
	baseURL    string
}

func (x *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub personal access token",
			Category:    "GitHub",
			Destination: (*string)(&x.token),
			Sources:     cli.EnvVars("DEVPOST_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Category:    "GitHub",
			Destination: (*int64)(&x.appID),
			Sources:     cli.EnvVars("DEVPOST_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-app-install-id",
			Usage:       "GitHub App installation ID (looked up from the user if not set)",
			Category:    "GitHub",
			Destination: (*int64)(&x.installID),
			Sources:     cli.EnvVars("DEVPOST_GITHUB_APP_INSTALL_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App private key (PEM)",
			Category:    "GitHub",
			Destination: (*string)(&x.privateKey),
			Sources:     cli.EnvVars("DEVPOST_GITHUB_APP_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "github-base-url",
			Usage:       "GitHub API base URL for GitHub Enterprise Server",
			Category:    "GitHub",
			Destination: &x.baseURL,
			Sources:     cli.EnvVars("DEVPOST_GITHUB_BASE_URL"),
		},
	}
}

// New creates the GitHub client. owner is used to find the App installation when its ID is not given.
func (x *GitHub) New(ctx context.Context, owner string, source model.SourceConfig) (*gh.Client, error) {
	options := []gh.Option{
		gh.WithSourceConfig(source),
	}
	if x.baseURL != "" {
		options = append(options, gh.WithBaseURL(x.baseURL))
	}

	switch {
	case x.appID != 0:
		if x.privateKey == "" {
			return nil, goerr.Wrap(types.ErrInvalidOption, "github-app-private-key is required with github-app-id")
		}
		installID := x.installID
		if installID == 0 {
			if owner == "" {
				return nil, goerr.Wrap(types.ErrInvalidOption, "owner is required to find GitHub App installation")
			}
			found, err := gh.FindInstallation(ctx, x.appID, x.privateKey, owner)
			if err != nil {
				return nil, err
			}
			installID = found
		}
		options = append(options, gh.WithGitHubApp(x.appID, installID, x.privateKey))

	case x.token != "":
		options = append(options, gh.WithToken(x.token))

	default:
		logging.From(ctx).Warn("no GitHub credential, using anonymous access with lower rate limit")
	}

	return gh.New(options...)
}

func (x GitHub) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("Token.len", len(x.token)),
		slog.Int64("AppID", int64(x.appID)),
		slog.Int64("InstallID", int64(x.installID)),
		slog.Int("PrivateKey.len", len(x.privateKey)),
		slog.String("BaseURL", x.baseURL),
	)
}
