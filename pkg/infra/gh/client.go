package gh

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/devpost/pkg/domain/interfaces"
	"github.com/m-mizutani/devpost/pkg/domain/model"
	"github.com/m-mizutani/devpost/pkg/domain/types"
	"github.com/m-mizutani/devpost/pkg/utils/logging"
	"github.com/m-mizutani/devpost/pkg/utils/retry"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// Client is the GitHub REST API client for public repository activity
type Client struct {
	client *github.Client
	source model.SourceConfig
	retry  retry.Policy
}

var _ interfaces.GitHub = (*Client)(nil)

type config struct {
	token     types.GitHubToken
	appID     types.GitHubAppID
	installID types.GitHubAppInstallID
	pem       types.GitHubAppPrivateKey
	baseURL   string
	transport http.RoundTripper
	source    model.SourceConfig
	retry     retry.Policy
}

type Option func(*config)

// WithToken authenticates requests with a personal access token
func WithToken(token types.GitHubToken) Option {
	return func(c *config) {
		c.token = token
	}
}

// WithGitHubApp authenticates requests as a GitHub App installation
func WithGitHubApp(appID types.GitHubAppID, installID types.GitHubAppInstallID, pem types.GitHubAppPrivateKey) Option {
	return func(c *config) {
		c.appID = appID
		c.installID = installID
		c.pem = pem
	}
}

// WithBaseURL replaces the API endpoint, e.g. for GitHub Enterprise Server or a test server
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

func WithTransport(tr http.RoundTripper) Option {
	return func(c *config) {
		c.transport = tr
	}
}

func WithSourceConfig(cfg model.SourceConfig) Option {
	return func(c *config) {
		c.source = cfg
	}
}

// WithRetryPolicy sets the policy applied to rate limited requests
func WithRetryPolicy(p retry.Policy) Option {
	return func(c *config) {
		c.retry = p
	}
}

func New(options ...Option) (*Client, error) {
	cfg := config{
		transport: http.DefaultTransport,
		source:    model.DefaultPipelineConfig().Source,
		retry:     retry.RateLimitPolicy(),
	}
	for _, opt := range options {
		opt(&cfg)
	}

	if cfg.token != "" && cfg.appID != 0 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "both token and GitHub App are configured")
	}
	if cfg.source.RequestsPerSecond <= 0 || cfg.source.Burst < 1 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "invalid rate limit",
			goerr.V("requests_per_second", cfg.source.RequestsPerSecond),
			goerr.V("burst", cfg.source.Burst),
		)
	}

	tr, err := cfg.authTransport()
	if err != nil {
		return nil, err
	}
	tr = &limitTransport{
		base:    tr,
		limiter: rate.NewLimiter(rate.Limit(cfg.source.RequestsPerSecond), cfg.source.Burst),
	}

	client := github.NewClient(&http.Client{Transport: tr})
	if cfg.baseURL != "" {
		baseURL := cfg.baseURL
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub base URL", goerr.V("url", cfg.baseURL))
		}
		client.BaseURL = u
	}

	return &Client{
		client: client,
		source: cfg.source,
		retry:  cfg.retry,
	}, nil
}

func (x *config) authTransport() (http.RoundTripper, error) {
	switch {
	case x.token != "":
		return &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: string(x.token)}),
			Base:   x.transport,
		}, nil

	case x.appID != 0:
		if x.installID == 0 {
			return nil, goerr.Wrap(types.ErrInvalidOption, "GitHub App installation ID is empty")
		}
		if x.pem == "" {
			return nil, goerr.Wrap(types.ErrInvalidOption, "GitHub App private key is empty")
		}
		itr, err := ghinstallation.New(x.transport, int64(x.appID), int64(x.installID), []byte(x.pem))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create GitHub App transport", goerr.V("app_id", x.appID))
		}
		if x.baseURL != "" {
			itr.BaseURL = strings.TrimSuffix(x.baseURL, "/")
		}
		return itr, nil

	default:
		// Anonymous access works for public repositories with a low rate limit
		return x.transport, nil
	}
}

// FindInstallation returns the installation ID of the GitHub App for owner, trying organization first and then user.
func FindInstallation(ctx context.Context, appID types.GitHubAppID, pem types.GitHubAppPrivateKey, owner string) (types.GitHubAppInstallID, error) {
	if appID == 0 {
		return 0, goerr.Wrap(types.ErrInvalidOption, "appID is empty")
	}
	if pem == "" {
		return 0, goerr.Wrap(types.ErrInvalidOption, "pem is empty")
	}

	itr, err := ghinstallation.NewAppsTransport(http.DefaultTransport, int64(appID), []byte(pem))
	if err != nil {
		return 0, goerr.Wrap(err, "failed to create app transport")
	}
	client := github.NewClient(&http.Client{Transport: itr})

	installation, resp, orgErr := client.Apps.FindOrganizationInstallation(ctx, owner)
	if orgErr == nil && installation != nil {
		logging.From(ctx).Info("Found organization installation",
			slog.String("owner", owner),
			slog.Int64("installID", installation.GetID()),
		)
		return types.GitHubAppInstallID(installation.GetID()), nil
	}

	if resp == nil || resp.StatusCode != http.StatusNotFound {
		return 0, goerr.Wrap(orgErr, "failed to find organization installation for owner", goerr.V("owner", owner))
	}

	installation, _, userErr := client.Apps.FindUserInstallation(ctx, owner)
	if userErr != nil {
		return 0, goerr.Wrap(userErr, "failed to find user installation for owner", goerr.V("owner", owner))
	}

	logging.From(ctx).Info("Found user installation",
		slog.String("owner", owner),
		slog.Int64("installID", installation.GetID()),
	)
	return types.GitHubAppInstallID(installation.GetID()), nil
}
