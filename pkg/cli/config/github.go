package config

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octopages/pkg/domain/interfaces"
	"github.com/m-mizutani/octopages/pkg/domain/types"
	"github.com/m-mizutani/octopages/pkg/infra/githubapi"
	"github.com/m-mizutani/octopages/pkg/infra/httpcache"
	"github.com/urfave/cli/v3"
)

const publicAPIURL = "https://api.github.com"

type GitHub struct {
	token      types.GitHubToken
	appID      types.GitHubAppID
	installID  types.GitHubAppInstallID
	privateKey types.GitHubAppPrivateKey

	apiURL          string
	timeout         time.Duration
	downloadTimeout time.Duration
	maxRetries      int
}

func (x *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token (GITHUB_TOKEN of the workflow or a personal access token)",
			Category:    "GitHub",
			Sources:     cli.EnvVars("OCTOPAGES_GITHUB_TOKEN", "GITHUB_TOKEN"),
			Destination: (*string)(&x.token),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Category:    "GitHub",
			Sources:     cli.EnvVars("OCTOPAGES_GITHUB_APP_ID"),
			Destination: (*int64)(&x.appID),
		},
		&cli.Int64Flag{
			Name:        "github-app-installation-id",
			Usage:       "GitHub App installation ID",
			Category:    "GitHub",
			Sources:     cli.EnvVars("OCTOPAGES_GITHUB_APP_INSTALLATION_ID"),
			Destination: (*int64)(&x.installID),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App private key (PEM)",
			Category:    "GitHub",
			Sources:     cli.EnvVars("OCTOPAGES_GITHUB_APP_PRIVATE_KEY"),
			Destination: (*string)(&x.privateKey),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub API base URL",
			Category:    "GitHub",
			Sources:     cli.EnvVars("OCTOPAGES_GITHUB_API_URL", "GITHUB_API_URL"),
			Value:       publicAPIURL,
			Destination: &x.apiURL,
		},
		&cli.DurationFlag{
			Name:        "http-timeout",
			Usage:       "Timeout of a single GitHub API request",
			Category:    "GitHub",
			Sources:     cli.EnvVars("OCTOPAGES_HTTP_TIMEOUT"),
			Value:       60 * time.Second,
			Destination: &x.timeout,
		},
		&cli.DurationFlag{
			Name:        "download-timeout",
			Usage:       "Timeout of a whole archive download",
			Category:    "GitHub",
			Sources:     cli.EnvVars("OCTOPAGES_DOWNLOAD_TIMEOUT"),
			Value:       10 * time.Minute,
			Destination: &x.downloadTimeout,
		},
		&cli.IntFlag{
			Name:        "max-retries",
			Usage:       "Retries of a rate limited or failed request",
			Category:    "GitHub",
			Sources:     cli.EnvVars("OCTOPAGES_MAX_RETRIES"),
			Value:       3,
			Destination: &x.maxRetries,
		},
	}
}

func (x *GitHub) enterprise() bool {
	return x.apiURL != "" && strings.TrimSuffix(x.apiURL, "/") != publicAPIURL
}

// auth wraps base with GitHub App credentials when an app ID is set, and
// with the token otherwise.
func (x *GitHub) auth(base http.RoundTripper) (http.RoundTripper, error) {
	if x.appID != 0 {
		var apiURL string
		if x.enterprise() {
			apiURL = x.apiURL
		}
		return githubapi.AppTransport(base, x.appID, x.installID, x.privateKey, apiURL)
	}
	if x.token == "" {
		return nil, goerr.Wrap(types.ErrConfiguration, "either --github-token or GitHub App credentials are required")
	}
	return githubapi.TokenTransport(base, x.token)
}

// NewClient builds the API client. API calls go through auth, the response
// cache (when cache is not nil) and retries, in that order. Downloads only
// retry.
func (x *GitHub) NewClient(cache interfaces.HTTPCache, ttl time.Duration) (*githubapi.Client, error) {
	retryOptions := []githubapi.RetryOption{githubapi.WithMaxRetries(x.maxRetries)}

	var base http.RoundTripper = githubapi.NewRetryTransport(http.DefaultTransport, retryOptions...)
	if cache != nil {
		base = httpcache.New(base, cache, ttl)
	}

	tr, err := x.auth(base)
	if err != nil {
		return nil, err
	}

	options := []githubapi.Option{
		githubapi.WithTimeout(x.timeout),
		githubapi.WithDownloadTimeout(x.downloadTimeout),
		githubapi.WithDownloadTransport(githubapi.NewRetryTransport(http.DefaultTransport, retryOptions...)),
	}
	if x.enterprise() {
		options = append(options, githubapi.WithBaseURL(x.apiURL))
	}

	return githubapi.New(&http.Client{Transport: tr}, options...)
}

func (x *GitHub) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("Token.len", len(x.token)),
		slog.Int64("AppID", int64(x.appID)),
		slog.Int64("InstallID", int64(x.installID)),
		slog.Int("PrivateKey.len", len(x.privateKey)),
		slog.String("APIURL", x.apiURL),
		slog.Duration("Timeout", x.timeout),
		slog.Duration("DownloadTimeout", x.downloadTimeout),
		slog.Int("MaxRetries", x.maxRetries),
	)
}
