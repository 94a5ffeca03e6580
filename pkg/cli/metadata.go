package cli

import (
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octopages/pkg/domain/types"
)

// DetectRepository reads owner/name from the origin remote of the git
// repository containing dir.
func DetectRepository(dir string) (types.RepoName, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", goerr.Wrap(types.ErrConfiguration, "no --repository given and not in a git repository",
			goerr.V("dir", dir), goerr.V("error", err.Error()))
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return "", goerr.Wrap(types.ErrConfiguration, "no --repository given and no origin remote",
			goerr.V("error", err.Error()))
	}
	if len(remote.Config().URLs) == 0 {
		return "", goerr.Wrap(types.ErrConfiguration, "origin remote has no URL")
	}

	return ParseRemoteURL(remote.Config().URLs[0])
}

// ParseRemoteURL accepts scp-like (git@host:owner/repo.git) and URL
// (https://host/owner/repo, ssh://git@host/owner/repo.git) remotes.
func ParseRemoteURL(remote string) (types.RepoName, error) {
	var repoPath string
	if u, err := url.Parse(remote); err == nil && u.Scheme != "" && u.Host != "" {
		repoPath = u.Path
	} else if _, after, ok := strings.Cut(remote, ":"); ok && strings.Contains(remote, "@") {
		repoPath = after
	}

	repoPath = strings.TrimSuffix(strings.Trim(repoPath, "/"), ".git")
	repo := types.RepoName(repoPath)
	if err := repo.Validate(); err != nil {
		return "", goerr.Wrap(types.ErrConfiguration, "failed to parse owner/repo from git remote URL",
			goerr.V("url", remote))
	}

	return repo, nil
}
