package githubapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octopages/pkg/domain/interfaces"
	"github.com/m-mizutani/octopages/pkg/domain/model"
	"github.com/m-mizutani/octopages/pkg/domain/types"
	"github.com/m-mizutani/octopages/pkg/utils/logging"
	"github.com/m-mizutani/octopages/pkg/utils/safe"
)

const (
	perPage = 100

	// Listing stops after these many pages. Newest entries come first.
	maxPullRequestPages = 10
	maxWorkflowRunPages = 5
	maxReleasePages     = 3

	defaultTimeout         = 60 * time.Second
	defaultDownloadTimeout = 10 * time.Minute
)

type Client struct {
	api             *github.Client
	download        *http.Client
	timeout         time.Duration
	downloadTimeout time.Duration
	baseURL         string
}

var _ interfaces.GitHub = (*Client)(nil)

type Option func(*Client)

// WithBaseURL points the client at GitHub Enterprise Server or a test server.
func WithBaseURL(baseURL string) Option {
	return func(x *Client) {
		x.baseURL = baseURL
	}
}

// WithTimeout bounds every API request.
func WithTimeout(d time.Duration) Option {
	return func(x *Client) {
		x.timeout = d
	}
}

// WithDownloadTimeout bounds a whole archive download, body included.
func WithDownloadTimeout(d time.Duration) Option {
	return func(x *Client) {
		x.downloadTimeout = d
	}
}

// WithDownloadTransport sets the transport used for archive downloads after
// GitHub redirects to storage. It must not carry a response cache.
func WithDownloadTransport(tr http.RoundTripper) Option {
	return func(x *Client) {
		x.download = &http.Client{Transport: tr}
	}
}

// New creates a client. apiClient carries authentication, caching and
// retries; it is used for API calls only.
func New(apiClient *http.Client, options ...Option) (*Client, error) {
	x := &Client{
		api:             github.NewClient(apiClient),
		download:        &http.Client{Transport: NewRetryTransport(http.DefaultTransport)},
		timeout:         defaultTimeout,
		downloadTimeout: defaultDownloadTimeout,
	}

	for _, opt := range options {
		opt(x)
	}
	x.download.Timeout = x.downloadTimeout

	if x.baseURL != "" {
		u, err := url.Parse(x.baseURL)
		if err != nil {
			return nil, goerr.Wrap(types.ErrConfiguration, "invalid GitHub API URL", goerr.V("url", x.baseURL))
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		x.api.BaseURL = u
	}

	return x, nil
}

// paginate walks pages until GitHub reports no next page or maxPages is
// reached. Each page gets its own timeout.
func paginate[T any](ctx context.Context, timeout time.Duration, maxPages int, fetch func(ctx context.Context, opt github.ListOptions) ([]T, *github.Response, error)) ([]T, error) {
	var all []T
	opt := github.ListOptions{PerPage: perPage}

	for page := 0; maxPages <= 0 || page < maxPages; page++ {
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		items, resp, err := fetch(callCtx, opt)
		cancel()
		if err != nil {
			return nil, err
		}

		all = append(all, items...)

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	return all, nil
}

func (x *Client) GetRepository(ctx context.Context, repo types.RepoName) (*model.Repository, error) {
	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	owner, name := repo.Split()
	r, _, err := x.api.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, classify(err, "failed to get repository", goerr.V("repo", repo))
	}

	return &model.Repository{
		Owner:         r.GetOwner().GetLogin(),
		Name:          r.GetName(),
		DefaultBranch: r.GetDefaultBranch(),
		HTMLURL:       r.GetHTMLURL(),
	}, nil
}

func (x *Client) ListBranches(ctx context.Context, repo types.RepoName) ([]*model.Branch, error) {
	owner, name := repo.Split()

	branches, err := paginate(ctx, x.timeout, 0, func(ctx context.Context, opt github.ListOptions) ([]*github.Branch, *github.Response, error) {
		return x.api.Repositories.ListBranches(ctx, owner, name, &github.BranchListOptions{ListOptions: opt})
	})
	if err != nil {
		return nil, classify(err, "failed to list branches", goerr.V("repo", repo))
	}

	result := make([]*model.Branch, 0, len(branches))
	for _, b := range branches {
		result = append(result, &model.Branch{
			Name:    b.GetName(),
			HeadSHA: b.GetCommit().GetSHA(),
		})
	}

	logging.From(ctx).Debug("listed branches", slog.Any("repo", repo), slog.Int("count", len(result)))
	return result, nil
}

func (x *Client) ListPullRequests(ctx context.Context, repo types.RepoName, state string) ([]*model.PullRequest, error) {
	owner, name := repo.Split()

	prs, err := paginate(ctx, x.timeout, maxPullRequestPages, func(ctx context.Context, opt github.ListOptions) ([]*github.PullRequest, *github.Response, error) {
		return x.api.PullRequests.List(ctx, owner, name, &github.PullRequestListOptions{
			State:       state,
			Sort:        "updated",
			Direction:   "desc",
			ListOptions: opt,
		})
	})
	if err != nil {
		return nil, classify(err, "failed to list pull requests", goerr.V("repo", repo), goerr.V("state", state))
	}

	result := make([]*model.PullRequest, 0, len(prs))
	for _, pr := range prs {
		result = append(result, toPullRequest(pr))
	}

	logging.From(ctx).Debug("listed pull requests", slog.Any("repo", repo), slog.Int("count", len(result)))
	return result, nil
}

func toPullRequest(pr *github.PullRequest) *model.PullRequest {
	state := types.PullRequestState(pr.GetState())
	if state == types.PullRequestClosed && !pr.GetMergedAt().IsZero() {
		state = types.PullRequestMerged
	}

	head := pr.GetHead()
	headOwner := head.GetRepo().GetOwner().GetLogin()
	if headOwner == "" {
		headOwner = head.GetUser().GetLogin()
	}

	return &model.PullRequest{
		Number:    pr.GetNumber(),
		Title:     pr.GetTitle(),
		HTMLURL:   pr.GetHTMLURL(),
		State:     state,
		HeadRef:   head.GetRef(),
		HeadOwner: headOwner,
		HeadRepo:  types.RepoName(head.GetRepo().GetFullName()),
		HeadSHA:   head.GetSHA(),
		UpdatedAt: pr.GetUpdatedAt().Time,
	}
}

// FindWorkflow looks a workflow up by display name, falling back to its
// file name.
func (x *Client) FindWorkflow(ctx context.Context, repo types.RepoName, workflowName string) (*model.Workflow, error) {
	owner, name := repo.Split()

	workflows, err := paginate(ctx, x.timeout, 0, func(ctx context.Context, opt github.ListOptions) ([]*github.Workflow, *github.Response, error) {
		resp, r, err := x.api.Actions.ListWorkflows(ctx, owner, name, &opt)
		if err != nil {
			return nil, r, err
		}
		return resp.Workflows, r, nil
	})
	if err != nil {
		return nil, classify(err, "failed to list workflows", goerr.V("repo", repo))
	}

	var available []string
	for _, wf := range workflows {
		if wf.GetName() == workflowName || path.Base(wf.GetPath()) == workflowName {
			return &model.Workflow{
				ID:   wf.GetID(),
				Name: wf.GetName(),
				Path: wf.GetPath(),
			}, nil
		}
		available = append(available, wf.GetName())
	}

	return nil, goerr.Wrap(types.ErrConfiguration, "workflow not found",
		goerr.V("repo", repo),
		goerr.V("workflow", workflowName),
		goerr.V("available", available),
	)
}

func (x *Client) ListWorkflowRuns(ctx context.Context, repo types.RepoName, workflowID int64) ([]*model.WorkflowRun, error) {
	owner, name := repo.Split()

	runs, err := paginate(ctx, x.timeout, maxWorkflowRunPages, func(ctx context.Context, opt github.ListOptions) ([]*github.WorkflowRun, *github.Response, error) {
		resp, r, err := x.api.Actions.ListWorkflowRunsByID(ctx, owner, name, workflowID, &github.ListWorkflowRunsOptions{
			Status:      string(types.ConclusionSuccess),
			ListOptions: opt,
		})
		if err != nil {
			return nil, r, err
		}
		return resp.WorkflowRuns, r, nil
	})
	if err != nil {
		return nil, classify(err, "failed to list workflow runs", goerr.V("repo", repo), goerr.V("workflow_id", workflowID))
	}

	result := make([]*model.WorkflowRun, 0, len(runs))
	for _, run := range runs {
		result = append(result, &model.WorkflowRun{
			ID:          run.GetID(),
			WorkflowID:  run.GetWorkflowID(),
			Name:        run.GetName(),
			RunNumber:   run.GetRunNumber(),
			HeadSHA:     run.GetHeadSHA(),
			HeadBranch:  run.GetHeadBranch(),
			HeadOwner:   run.GetHeadRepository().GetOwner().GetLogin(),
			HeadRepo:    types.RepoName(run.GetHeadRepository().GetFullName()),
			Conclusion:  types.WorkflowRunConclusion(run.GetConclusion()),
			HTMLURL:     run.GetHTMLURL(),
			CompletedAt: run.GetUpdatedAt().Time,
		})
	}

	logging.From(ctx).Debug("listed workflow runs", slog.Any("repo", repo), slog.Int("count", len(result)))
	return result, nil
}

func (x *Client) ListRunArtifacts(ctx context.Context, repo types.RepoName, runID int64) ([]*model.Artifact, error) {
	owner, name := repo.Split()

	artifacts, err := paginate(ctx, x.timeout, 0, func(ctx context.Context, opt github.ListOptions) ([]*github.Artifact, *github.Response, error) {
		resp, r, err := x.api.Actions.ListWorkflowRunArtifacts(ctx, owner, name, runID, &opt)
		if err != nil {
			return nil, r, err
		}
		return resp.Artifacts, r, nil
	})
	if err != nil {
		return nil, classify(err, "failed to list run artifacts", goerr.V("repo", repo), goerr.V("run_id", runID))
	}

	result := make([]*model.Artifact, 0, len(artifacts))
	for _, a := range artifacts {
		result = append(result, &model.Artifact{
			ID:                 a.GetID(),
			RunID:              runID,
			Name:               a.GetName(),
			SizeInBytes:        a.GetSizeInBytes(),
			CreatedAt:          a.GetCreatedAt().Time,
			UpdatedAt:          a.GetUpdatedAt().Time,
			ExpiresAt:          a.GetExpiresAt().Time,
			Expired:            a.GetExpired(),
			ArchiveDownloadURL: a.GetArchiveDownloadURL(),
		})
	}

	return result, nil
}

func (x *Client) ListReleases(ctx context.Context, repo types.RepoName) ([]*model.Release, error) {
	owner, name := repo.Split()

	releases, err := paginate(ctx, x.timeout, maxReleasePages, func(ctx context.Context, opt github.ListOptions) ([]*github.RepositoryRelease, *github.Response, error) {
		return x.api.Repositories.ListReleases(ctx, owner, name, &opt)
	})
	if err != nil {
		return nil, classify(err, "failed to list releases", goerr.V("repo", repo))
	}

	result := make([]*model.Release, 0, len(releases))
	for _, r := range releases {
		release := &model.Release{
			ID:          r.GetID(),
			TagName:     r.GetTagName(),
			Name:        r.GetName(),
			Body:        r.GetBody(),
			HTMLURL:     r.GetHTMLURL(),
			Draft:       r.GetDraft(),
			Prerelease:  r.GetPrerelease(),
			PublishedAt: r.GetPublishedAt().Time,
		}
		for _, a := range r.Assets {
			release.Assets = append(release.Assets, &model.ReleaseAsset{
				ID:          a.GetID(),
				Name:        a.GetName(),
				ContentType: a.GetContentType(),
				Size:        int64(a.GetSize()),
				UpdatedAt:   a.GetUpdatedAt().Time,
				DownloadURL: a.GetBrowserDownloadURL(),
			})
		}
		result = append(result, release)
	}

	return result, nil
}

func (x *Client) GetPagesBuildType(ctx context.Context, repo types.RepoName) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	owner, name := repo.Split()
	pages, _, err := x.api.Repositories.GetPagesInfo(ctx, owner, name)
	if err != nil {
		return "", classify(err, "failed to get pages configuration", goerr.V("repo", repo))
	}

	return pages.GetBuildType(), nil
}

// DownloadArtifact resolves the short-lived storage URL of an artifact
// archive and streams it. The caller closes the returned reader.
func (x *Client) DownloadArtifact(ctx context.Context, repo types.RepoName, artifactID int64) (io.ReadCloser, error) {
	owner, name := repo.Split()

	callCtx, cancel := context.WithTimeout(ctx, x.timeout)
	u, resp, err := x.api.Actions.DownloadArtifact(callCtx, owner, name, artifactID, false)
	cancel()
	if err != nil {
		return nil, classifyResponse(err, resp, "failed to resolve artifact download URL",
			goerr.V("repo", repo),
			goerr.V("artifact_id", artifactID),
		)
	}

	return x.get(ctx, u.String(), goerr.V("artifact_id", artifactID))
}

// DownloadReleaseAsset streams a release asset. GitHub answers with a
// redirect to storage which is fetched by the download client.
func (x *Client) DownloadReleaseAsset(ctx context.Context, repo types.RepoName, assetID int64) (io.ReadCloser, error) {
	owner, name := repo.Split()

	rc, redirectURL, err := x.api.Repositories.DownloadReleaseAsset(ctx, owner, name, assetID, nil)
	if err != nil {
		return nil, classify(err, "failed to download release asset",
			goerr.V("repo", repo),
			goerr.V("asset_id", assetID),
		)
	}
	if rc != nil {
		return rc, nil
	}

	return x.get(ctx, redirectURL, goerr.V("asset_id", assetID))
}

func (x *Client) get(ctx context.Context, rawURL string, options ...goerr.Option) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create download request", options...)
	}
	req.Header.Set("Accept", "application/octet-stream")

	resp, err := x.download.Do(req)
	if err != nil {
		return nil, goerr.Wrap(types.ErrTransient, "failed to download archive", append(options, goerr.V("error", err.Error()))...)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		safe.Close(resp.Body)
		return nil, goerr.Wrap(classifyStorageStatus(resp.StatusCode), "unexpected download status",
			append(options,
				goerr.V("status", resp.StatusCode),
				goerr.V("body", string(body)),
			)...,
		)
	}

	return resp.Body, nil
}
