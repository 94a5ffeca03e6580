package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octopages/pkg/domain/interfaces"
	"github.com/m-mizutani/octopages/pkg/domain/model"
	"github.com/m-mizutani/octopages/pkg/domain/types"
	"github.com/m-mizutani/octopages/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

const pullRequestStateAll = "all"

// fetcher collects the upstream state of one run. Only authentication and
// configuration failures abort; any other failure of a single collection
// or run is recorded as a warning.
type fetcher struct {
	gh          interfaces.GitHub
	input       *model.AssembleSiteInput
	concurrency int

	mu sync.Mutex
	up *model.Upstream
}

func (x *fetcher) warn(subject, format string, args ...any) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.up.Warn(subject, format, args...)
}

// degrade turns a per-item failure into a warning. It returns the error
// itself when the run must stop.
func (x *fetcher) degrade(ctx context.Context, subject string, err error) error {
	if errors.Is(err, types.ErrAuth) || errors.Is(err, types.ErrConfiguration) ||
		errors.Is(err, context.Canceled) {
		return err
	}

	logging.From(ctx).Warn("skipping upstream item", slog.String("subject", subject), slog.Any("error", err))
	x.warn(subject, "%s", err.Error())
	return nil
}

func pagesSettingsURL(repo types.RepoName) string {
	return fmt.Sprintf("https://github.com/%s/settings/pages", repo)
}

// checkPages requires the repository's Pages site to be deployed by a
// workflow, since the assembled directory is uploaded by one.
func (x *fetcher) checkPages(ctx context.Context) error {
	buildType, err := x.gh.GetPagesBuildType(ctx, x.input.Repo)
	if errors.Is(err, types.ErrNotFound) {
		return goerr.Wrap(types.ErrConfiguration, "GitHub Pages is not enabled for the repository; select \"GitHub Actions\" as the source",
			goerr.V("repo", x.input.Repo),
			goerr.V("settings", pagesSettingsURL(x.input.Repo)),
		)
	}
	if err != nil {
		return err
	}

	if buildType != "workflow" {
		return goerr.Wrap(types.ErrConfiguration, "GitHub Pages must be built by a workflow; select \"GitHub Actions\" as the source",
			goerr.V("repo", x.input.Repo),
			goerr.V("build_type", buildType),
			goerr.V("settings", pagesSettingsURL(x.input.Repo)),
		)
	}

	return nil
}

func (x *fetcher) fetch(ctx context.Context) (*model.Upstream, error) {
	x.up = &model.Upstream{Artifacts: make(map[int64][]*model.Artifact)}

	if x.input.CheckPages {
		if err := x.checkPages(ctx); err != nil {
			return nil, err
		}
	}

	repo := x.input.Repo
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		r, err := x.gh.GetRepository(egCtx, repo)
		if errors.Is(err, types.ErrNotFound) {
			return goerr.Wrap(types.ErrConfiguration, "repository not found or not accessible", goerr.V("repo", repo))
		}
		if err != nil {
			return err
		}
		x.up.Repository = r
		return nil
	})

	eg.Go(func() error {
		branches, err := x.gh.ListBranches(egCtx, repo)
		if err != nil {
			return x.degrade(egCtx, "branches", err)
		}
		x.up.Branches = branches
		return nil
	})

	eg.Go(func() error {
		prs, err := x.gh.ListPullRequests(egCtx, repo, pullRequestStateAll)
		if err != nil {
			return x.degrade(egCtx, "pull_requests", err)
		}
		x.up.PullRequests = prs
		return nil
	})

	eg.Go(func() error {
		releases, err := x.gh.ListReleases(egCtx, repo)
		if err != nil {
			return x.degrade(egCtx, "releases", err)
		}
		x.up.Releases = releases
		return nil
	})

	eg.Go(func() error {
		wf, err := x.gh.FindWorkflow(egCtx, repo, x.input.WorkflowName)
		if err != nil {
			return err
		}
		x.up.Workflow = wf
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for _, branch := range x.up.Branches {
		if branch != nil && branch.Name == x.up.Repository.DefaultBranch {
			branch.IsDefault = true
		}
	}

	if err := x.fetchBuilds(ctx); err != nil {
		return nil, err
	}

	return x.up, nil
}

// fetchBuilds lists the successful runs of the workflow and retrieves
// artifact records per head label, newest run first, until an unexpired
// artifact with the configured name is found for that label.
func (x *fetcher) fetchBuilds(ctx context.Context) error {
	runs, err := x.gh.ListWorkflowRuns(ctx, x.input.Repo, x.up.Workflow.ID)
	if err != nil {
		return x.degrade(ctx, "workflow_runs", err)
	}

	byLabel := make(map[string][]*model.WorkflowRun)
	var labels []string
	for _, run := range runs {
		if run == nil {
			continue
		}
		if run.HeadRepo == "" || run.HeadOwner == "" {
			x.warn("workflow_run:"+strconv.FormatInt(run.ID, 10), "head repository of the run no longer exists")
			continue
		}
		x.up.WorkflowRuns = append(x.up.WorkflowRuns, run)
		if !run.Succeeded() {
			continue
		}

		label := run.Label()
		if _, ok := byLabel[label]; !ok {
			labels = append(labels, label)
		}
		byLabel[label] = append(byLabel[label], run)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(x.concurrency)

	for _, label := range labels {
		labelRuns := byLabel[label]
		sort.SliceStable(labelRuns, func(i, j int) bool {
			a, b := labelRuns[i], labelRuns[j]
			if !a.CompletedAt.Equal(b.CompletedAt) {
				return a.CompletedAt.After(b.CompletedAt)
			}
			return a.ID > b.ID
		})

		eg.Go(func() error {
			return x.fetchLabelArtifacts(egCtx, labelRuns)
		})
	}

	return eg.Wait()
}

func (x *fetcher) fetchLabelArtifacts(ctx context.Context, runs []*model.WorkflowRun) error {
	for _, run := range runs {
		artifacts, err := x.gh.ListRunArtifacts(ctx, x.input.Repo, run.ID)
		if err != nil {
			if err := x.degrade(ctx, "workflow_run:"+strconv.FormatInt(run.ID, 10), err); err != nil {
				return err
			}
			continue
		}

		x.mu.Lock()
		x.up.Artifacts[run.ID] = artifacts
		x.mu.Unlock()

		for _, artifact := range artifacts {
			if artifact != nil && artifact.Name == x.input.ArtifactName && !artifact.Expired {
				return nil
			}
		}
	}

	return nil
}
