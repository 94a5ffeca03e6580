package types

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type (
	GitHubAppID           int64
	GitHubAppInstallID    int64
	GitHubAppPrivateKey   string
	GitHubToken           string
	RequestID             string
	PullRequestState      string
	WorkflowRunConclusion string
	CacheBackend          string
)

const (
	PullRequestOpen   PullRequestState = "open"
	PullRequestClosed PullRequestState = "closed"
	PullRequestMerged PullRequestState = "merged"
)

const (
	ConclusionSuccess WorkflowRunConclusion = "success"
)

const (
	CacheBackendSQLite CacheBackend = "sqlite"
	CacheBackendMemory CacheBackend = "memory"
	CacheBackendNone   CacheBackend = "none"
)

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

func (x GitHubAppPrivateKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubAppPrivateKey) String() string {
	return "***********"
}

func (x GitHubToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubToken) String() string {
	return "***********"
}

// RepoName is a repository in "owner/name" form.
type RepoName string

func (x RepoName) Split() (owner, name string) {
	owner, name, _ = strings.Cut(string(x), "/")
	return owner, name
}

func (x RepoName) Owner() string {
	owner, _ := x.Split()
	return owner
}

func (x RepoName) Name() string {
	_, name := x.Split()
	return name
}

func (x RepoName) Validate() error {
	owner, name, ok := strings.Cut(string(x), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return goerr.Wrap(ErrConfiguration, "repository must be in owner/name form", goerr.V("repository", x))
	}
	return nil
}
