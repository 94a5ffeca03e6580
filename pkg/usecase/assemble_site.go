package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octopages/pkg/domain/interfaces"
	"github.com/m-mizutani/octopages/pkg/domain/model"
	"github.com/m-mizutani/octopages/pkg/domain/types"
	"github.com/m-mizutani/octopages/pkg/reconciler"
	"github.com/m-mizutani/octopages/pkg/utils/logging"
	"github.com/m-mizutani/octopages/pkg/utils/safe"
	"golang.org/x/sync/errgroup"
)

const (
	indexFileName      = "index.html"
	stylesheetFileName = "branches.css"
	stagingPrefix      = ".octopages-staging-"
)

// AssembleSite fetches the upstream state of the repository, reconciles
// it and writes the site into input.OutputDir. Failures of a single unit
// or of the release asset are returned as warnings on the site model.
func (x *UseCase) AssembleSite(ctx context.Context, input *model.AssembleSiteInput) (*model.SiteModel, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if x.clients.GitHub() == nil {
		return nil, goerr.Wrap(types.ErrConfiguration, "GitHub client is not configured")
	}
	if x.clients.Renderer() == nil {
		return nil, goerr.Wrap(types.ErrConfiguration, "renderer is not configured")
	}

	concurrency := input.Concurrency
	if concurrency == 0 {
		concurrency = DefaultConcurrency
	}

	if err := checkOutputDir(input.OutputDir, input.Clean); err != nil {
		return nil, err
	}

	logger := logging.From(ctx).With(slog.Any("repo", input.Repo))
	ctx = logging.With(ctx, logger)

	f := &fetcher{gh: x.clients.GitHub(), input: input, concurrency: concurrency}
	up, err := f.fetch(ctx)
	if err != nil {
		return nil, err
	}

	site := reconciler.Reconcile(reconciler.Config{
		WorkflowName:       input.WorkflowName,
		ArtifactName:       input.ArtifactName,
		HideClosedBranches: input.HideClosedBranches,
	}, up, x.clock(ctx))

	jobs, err := planUnits(site.Units)
	if err != nil {
		return nil, err
	}

	if err := prepareOutputDir(input.OutputDir, input.Clean); err != nil {
		return nil, err
	}

	tmpDir, err := os.MkdirTemp("", "octopages.*")
	if err != nil {
		return nil, goerr.Wrap(types.ErrFilesystem, "failed to create temp directory", goerr.V("error", err.Error()))
	}
	defer safe.RemoveAll(tmpDir)

	a := &assembler{
		gh:          x.clients.GitHub(),
		renderer:    x.clients.Renderer(),
		repo:        input.Repo,
		outputDir:   input.OutputDir,
		tmpDir:      tmpDir,
		concurrency: concurrency,
		site:        site,
	}

	if err := a.run(ctx, jobs); err != nil {
		// A fatal error leaves no half-built site behind.
		safe.RemoveAll(input.OutputDir)
		return nil, err
	}

	if x.githubOutput != "" {
		if err := writeGitHubOutput(x.githubOutput, input.OutputDir); err != nil {
			logger.Warn("failed to write GitHub Actions output", slog.Any("error", err))
			site.Warn("github_output", "%s", err.Error())
		}
	}

	x.pruneAfterRun(ctx)

	for _, w := range site.Warnings {
		logger.Warn("warning", slog.String("subject", w.Subject), slog.String("message", w.Message))
	}
	logger.Info("site assembled",
		slog.String("output", input.OutputDir),
		slog.String("root", string(site.Root)),
		slog.Int("units", len(site.Units)),
		slog.Int("warnings", len(site.Warnings)),
	)

	return site, nil
}

func (x *UseCase) pruneAfterRun(ctx context.Context) {
	cache := x.clients.HTTPCache()
	if cache == nil || x.cacheRetention <= 0 {
		return
	}

	n, err := cache.Prune(ctx, x.clock(ctx).Add(-x.cacheRetention))
	if err != nil {
		logging.From(ctx).Warn("failed to prune HTTP cache", slog.Any("error", err))
		return
	}
	logging.From(ctx).Debug("pruned HTTP cache", slog.Int("deleted", n))
}

func checkOutputDir(dir string, clean bool) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return goerr.Wrap(types.ErrFilesystem, "failed to read output directory", goerr.V("dir", dir), goerr.V("error", err.Error()))
	}
	if len(entries) > 0 && !clean {
		return goerr.Wrap(types.ErrConfiguration, "output directory is not empty, use --clean to replace it", goerr.V("dir", dir))
	}
	return nil
}

func prepareOutputDir(dir string, clean bool) error {
	if err := checkOutputDir(dir, clean); err != nil {
		return err
	}
	if clean {
		if err := os.RemoveAll(dir); err != nil {
			return goerr.Wrap(types.ErrFilesystem, "failed to clean output directory", goerr.V("dir", dir), goerr.V("error", err.Error()))
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, branchesDir), 0o755); err != nil {
		return goerr.Wrap(types.ErrFilesystem, "failed to create output directory", goerr.V("dir", dir), goerr.V("error", err.Error()))
	}
	return nil
}

func writeGitHubOutput(outputFile, dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return goerr.Wrap(err, "failed to resolve output directory", goerr.V("dir", dir))
	}

	// #nosec
	fd, err := os.OpenFile(outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return goerr.Wrap(types.ErrFilesystem, "failed to open GitHub output file", goerr.V("path", outputFile), goerr.V("error", err.Error()))
	}
	defer safe.Close(fd)

	if _, err := fmt.Fprintf(fd, "path=%s\n", abs); err != nil {
		return goerr.Wrap(types.ErrFilesystem, "failed to write GitHub output file", goerr.V("path", outputFile), goerr.V("error", err.Error()))
	}
	return nil
}

type assembler struct {
	gh          interfaces.GitHub
	renderer    interfaces.Renderer
	repo        types.RepoName
	outputDir   string
	tmpDir      string
	concurrency int

	mu   sync.Mutex
	site *model.SiteModel

	// defaultArchive is the downloaded archive of the default unit, kept
	// for the root.
	defaultArchive string
}

func (x *assembler) warn(subject, format string, args ...any) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.site.Warn(subject, format, args...)
}

func (x *assembler) run(ctx context.Context, jobs []*unitJob) error {
	if err := x.materializeUnits(ctx, jobs); err != nil {
		return err
	}
	if err := x.assembleRoot(ctx); err != nil {
		return err
	}
	return x.writeIndex()
}

// fatalDownload returns the error when a download failure must abort the run
// instead of demoting a unit. Credentials that stop working affect every
// later request as well.
func fatalDownload(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, types.ErrAuth) {
		return err
	}
	return nil
}

func (x *assembler) materializeUnits(ctx context.Context, jobs []*unitJob) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(x.concurrency)

	for _, job := range jobs {
		eg.Go(func() error {
			return x.materializeUnit(egCtx, job)
		})
	}

	return eg.Wait()
}

// materializeUnit downloads and unpacks one unit. Any failure demotes the
// unit to "no build" while keeping its build metadata.
func (x *assembler) materializeUnit(ctx context.Context, job *unitJob) error {
	unit := job.Unit
	logger := logging.From(ctx).With(slog.String("unit", unit.Name))

	artifact := unit.Build.Artifact
	archive, err := x.download(ctx, "artifact-"+strconv.FormatInt(artifact.ID, 10), func(ctx context.Context) (io.ReadCloser, error) {
		return x.gh.DownloadArtifact(ctx, x.repo, artifact.ID)
	}, 0)
	if err == nil {
		target := filepath.Join(x.outputDir, branchesDir, filepath.FromSlash(job.Path))
		err = x.installTree(ctx, archive, target)
	}

	if err != nil {
		if archive != "" {
			safe.Remove(archive)
		}
		if fatal := fatalDownload(ctx, err); fatal != nil {
			return fatal
		}
		logger.Warn("failed to materialize unit", slog.Any("error", err))
		x.warn("unit:"+unit.Name, "build could not be unpacked: %s", err.Error())
		return nil
	}

	x.mu.Lock()
	unit.RelativePath = job.Path
	if unit.IsDefault {
		x.defaultArchive = archive
	} else {
		safe.Remove(archive)
	}
	x.mu.Unlock()

	logger.Info("unit materialized", slog.String("path", job.Path), slog.Int64("artifact_id", artifact.ID))
	return nil
}

func (x *assembler) download(ctx context.Context, name string, open func(ctx context.Context) (io.ReadCloser, error), size int64) (string, error) {
	rc, err := open(ctx)
	if err != nil {
		return "", err
	}

	fd, err := os.CreateTemp(x.tmpDir, name+".*")
	if err != nil {
		safe.Close(rc)
		return "", goerr.Wrap(types.ErrFilesystem, "failed to create temp file", goerr.V("error", err.Error()))
	}

	if err := downloadFile(ctx, rc, fd, size); err != nil {
		safe.Close(fd)
		safe.Remove(fd.Name())
		return "", goerr.Wrap(err, "failed to download archive", goerr.V("name", name))
	}
	if err := fd.Close(); err != nil {
		safe.Remove(fd.Name())
		return "", goerr.Wrap(types.ErrFilesystem, "failed to close temp file", goerr.V("error", err.Error()))
	}

	return fd.Name(), nil
}

// installTree unpacks archive into a staging directory next to target and
// renames it into place, so target either holds the complete tree or does
// not exist.
func (x *assembler) installTree(ctx context.Context, archive, target string) error {
	staging, err := os.MkdirTemp(x.outputDir, stagingPrefix+"*")
	if err != nil {
		return goerr.Wrap(types.ErrFilesystem, "failed to create staging directory", goerr.V("error", err.Error()))
	}

	if _, err := extractArchive(ctx, archive, staging); err != nil {
		safe.RemoveAll(staging)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		safe.RemoveAll(staging)
		return goerr.Wrap(types.ErrFilesystem, "failed to create unit directory", goerr.V("path", target), goerr.V("error", err.Error()))
	}
	if err := os.Rename(staging, target); err != nil {
		safe.RemoveAll(staging)
		return goerr.Wrap(types.ErrFilesystem, "failed to move unit into place", goerr.V("path", target), goerr.V("error", err.Error()))
	}

	return nil
}

// assembleRoot fills the output root from the latest release asset, the
// default unit's build or, failing both, a redirect to branches/.
func (x *assembler) assembleRoot(ctx context.Context) error {
	logger := logging.From(ctx)

	if latest := x.site.LatestRelease; latest != nil && latest.Asset != nil {
		asset := latest.Asset
		archive, err := x.download(ctx, "asset-"+strconv.FormatInt(asset.ID, 10), func(ctx context.Context) (io.ReadCloser, error) {
			return x.gh.DownloadReleaseAsset(ctx, x.repo, asset.ID)
		}, asset.Size)
		if err == nil {
			err = x.installRoot(ctx, archive)
		}
		if err == nil {
			x.site.Root = model.RootRelease
			logger.Info("root assembled from release", slog.String("tag", latest.Release.TagName), slog.String("asset", asset.Name))
			return nil
		}
		if fatal := fatalDownload(ctx, err); fatal != nil {
			return fatal
		}
		logger.Warn("failed to unpack release asset", slog.Any("error", err))
		x.site.Warn("release:"+latest.Release.TagName, "asset %s could not be unpacked: %s", asset.Name, err.Error())
	}

	if x.defaultArchive != "" {
		err := x.installRoot(ctx, x.defaultArchive)
		if err == nil {
			x.site.Root = model.RootDefaultBranch
			logger.Info("root assembled from default branch")
			return nil
		}
		logger.Warn("failed to unpack default branch build into root", slog.Any("error", err))
		x.site.Warn("root", "default branch build could not be unpacked: %s", err.Error())
	}

	if err := x.writeFile(filepath.Join(x.outputDir, indexFileName), func(w io.Writer) error {
		return x.renderer.RenderRedirect(w, branchesDir+"/")
	}); err != nil {
		return err
	}
	x.site.Root = model.RootRedirect
	logger.Info("root redirects to branches")
	return nil
}

// installRoot unpacks archive into a staging directory and moves its
// top-level entries into the output root. Entries already moved are
// removed again when a later one fails.
func (x *assembler) installRoot(ctx context.Context, archive string) error {
	staging, err := os.MkdirTemp(x.outputDir, stagingPrefix+"root-*")
	if err != nil {
		return goerr.Wrap(types.ErrFilesystem, "failed to create staging directory", goerr.V("error", err.Error()))
	}
	defer safe.RemoveAll(staging)

	names, err := extractArchive(ctx, archive, staging)
	if err != nil {
		return err
	}
	if archiveRootHas(names, branchesDir) {
		return goerr.Wrap(types.ErrDownloadCorruption, "root archive must not contain a top-level branches entry")
	}

	var moved []string
	for _, name := range names {
		dst := filepath.Join(x.outputDir, name)
		if err := os.Rename(filepath.Join(staging, name), dst); err != nil {
			for _, m := range moved {
				safe.RemoveAll(m)
			}
			return goerr.Wrap(types.ErrFilesystem, "failed to move root entry into place", goerr.V("name", name), goerr.V("error", err.Error()))
		}
		moved = append(moved, dst)
	}

	return nil
}

func (x *assembler) writeIndex() error {
	page := model.NewIndexPage(x.site)
	dir := filepath.Join(x.outputDir, branchesDir)

	if err := x.writeFile(filepath.Join(dir, indexFileName), func(w io.Writer) error {
		return x.renderer.RenderIndex(w, page)
	}); err != nil {
		return err
	}

	return x.writeFile(filepath.Join(dir, stylesheetFileName), func(w io.Writer) error {
		_, err := w.Write(x.renderer.Stylesheet())
		return err
	})
}

func (x *assembler) writeFile(path string, write func(w io.Writer) error) error {
	// #nosec
	fd, err := os.Create(path)
	if err != nil {
		return goerr.Wrap(types.ErrFilesystem, "failed to create file", goerr.V("path", path), goerr.V("error", err.Error()))
	}
	if err := write(fd); err != nil {
		safe.Close(fd)
		return goerr.Wrap(err, "failed to write file", goerr.V("path", path))
	}
	if err := fd.Close(); err != nil {
		return goerr.Wrap(types.ErrFilesystem, "failed to close file", goerr.V("path", path), goerr.V("error", err.Error()))
	}
	return nil
}
