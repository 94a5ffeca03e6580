package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . GitHub HTTPCache Renderer

import (
	"context"
	"io"
	"time"

	"github.com/m-mizutani/octopages/pkg/domain/model"
	"github.com/m-mizutani/octopages/pkg/domain/types"
)

// GitHub is the read-only view of the upstream repository. Failures are
// classified as types.ErrAuth, types.ErrTransient or types.ErrNotFound.
type GitHub interface {
	GetRepository(ctx context.Context, repo types.RepoName) (*model.Repository, error)
	ListBranches(ctx context.Context, repo types.RepoName) ([]*model.Branch, error)
	ListPullRequests(ctx context.Context, repo types.RepoName, state string) ([]*model.PullRequest, error)
	FindWorkflow(ctx context.Context, repo types.RepoName, name string) (*model.Workflow, error)
	ListWorkflowRuns(ctx context.Context, repo types.RepoName, workflowID int64) ([]*model.WorkflowRun, error)
	ListRunArtifacts(ctx context.Context, repo types.RepoName, runID int64) ([]*model.Artifact, error)
	ListReleases(ctx context.Context, repo types.RepoName) ([]*model.Release, error)

	// GetPagesBuildType returns the Pages build type ("workflow" or
	// "legacy"), or types.ErrNotFound when Pages is not enabled.
	GetPagesBuildType(ctx context.Context, repo types.RepoName) (string, error)

	DownloadArtifact(ctx context.Context, repo types.RepoName, artifactID int64) (io.ReadCloser, error)
	DownloadReleaseAsset(ctx context.Context, repo types.RepoName, assetID int64) (io.ReadCloser, error)
}

// HTTPCache stores HTTP responses keyed by request signature. Concurrent
// writers of the same key resolve as last writer wins.
type HTTPCache interface {
	// Get returns types.ErrNotFound when the key is not cached.
	Get(ctx context.Context, key string) (*model.CachedResponse, error)
	Put(ctx context.Context, resp *model.CachedResponse) error
	Prune(ctx context.Context, olderThan time.Time) (int, error)
	Close() error
}

// Renderer renders the presentation documents of the site.
type Renderer interface {
	RenderIndex(w io.Writer, page *model.IndexPage) error
	RenderRedirect(w io.Writer, target string) error
	Stylesheet() []byte
}
