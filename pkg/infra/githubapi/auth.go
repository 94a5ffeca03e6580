package githubapi

import (
	"net/http"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octopages/pkg/domain/types"
	"golang.org/x/oauth2"
)

// TokenTransport authenticates requests with a personal access token or the
// workflow's GITHUB_TOKEN.
func TokenTransport(base http.RoundTripper, token types.GitHubToken) (http.RoundTripper, error) {
	if token == "" {
		return nil, goerr.Wrap(types.ErrConfiguration, "GitHub token is empty")
	}

	return &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: string(token)}),
		Base:   base,
	}, nil
}

// AppTransport authenticates requests as a GitHub App installation.
// apiURL is only needed for GitHub Enterprise Server.
func AppTransport(base http.RoundTripper, appID types.GitHubAppID, installID types.GitHubAppInstallID, pem types.GitHubAppPrivateKey, apiURL string) (http.RoundTripper, error) {
	if appID == 0 {
		return nil, goerr.Wrap(types.ErrConfiguration, "GitHub App ID is empty")
	}
	if installID == 0 {
		return nil, goerr.Wrap(types.ErrConfiguration, "GitHub App installation ID is empty")
	}
	if pem == "" {
		return nil, goerr.Wrap(types.ErrConfiguration, "GitHub App private key is empty")
	}

	itr, err := ghinstallation.New(base, int64(appID), int64(installID), []byte(pem))
	if err != nil {
		return nil, goerr.Wrap(types.ErrConfiguration, "failed to create GitHub App transport",
			goerr.V("app_id", appID),
			goerr.V("error", err.Error()),
		)
	}
	if apiURL != "" {
		itr.BaseURL = strings.TrimSuffix(apiURL, "/")
	}

	return itr, nil
}
