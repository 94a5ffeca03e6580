package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/octopages/pkg/domain/mock"
	"github.com/m-mizutani/octopages/pkg/domain/model"
	"github.com/m-mizutani/octopages/pkg/domain/types"
	"github.com/m-mizutani/octopages/pkg/infra"
	"github.com/m-mizutani/octopages/pkg/infra/render"
	"github.com/m-mizutani/octopages/pkg/usecase"
	"github.com/m-mizutani/octopages/pkg/utils/testutil"
)

var baseTime = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

const (
	workflowID   = 100
	artifactName = "web"
)

type fixture struct {
	pagesType string
	branches  []*model.Branch
	prs       []*model.PullRequest
	runs      []*model.WorkflowRun
	artifacts map[int64][]*model.Artifact
	releases  []*model.Release
	downloads map[int64][]byte
	assets    map[int64][]byte

	gh *mock.GitHubMock
}

func siteArchive(t *testing.T, content string) []byte {
	return testutil.ZipArchive(t, testutil.Files{
		"index.html":    content,
		"assets/app.js": "// " + content,
	})
}

func newRun(id int64, owner, branch string, completed time.Time) *model.WorkflowRun {
	return &model.WorkflowRun{
		ID:          id,
		WorkflowID:  workflowID,
		Name:        "build",
		HeadSHA:     strings.Repeat("a", 40),
		HeadBranch:  branch,
		HeadOwner:   owner,
		HeadRepo:    types.RepoName(owner + "/game"),
		Conclusion:  types.ConclusionSuccess,
		HTMLURL:     "https://github.com/octo/game/actions/runs/1",
		CompletedAt: completed,
	}
}

func newArtifact(id, runID int64, expired bool) *model.Artifact {
	return &model.Artifact{
		ID:        id,
		RunID:     runID,
		Name:      artifactName,
		UpdatedAt: baseTime,
		ExpiresAt: baseTime.Add(90 * 24 * time.Hour),
		Expired:   expired,
	}
}

// newFixture has branches main and feature/new-ui, an open fork pull
// request from alice and a closed one from bob, each with one build.
func newFixture(t *testing.T) *fixture {
	fx := &fixture{
		pagesType: "workflow",
		branches: []*model.Branch{
			{Name: "main", HeadSHA: "m"},
			{Name: "feature/new-ui", HeadSHA: "f"},
		},
		prs: []*model.PullRequest{
			{Number: 5, Title: "Patch", State: types.PullRequestOpen, HeadRef: "patch", HeadOwner: "alice", HeadRepo: "alice/game", UpdatedAt: baseTime},
			{Number: 3, Title: "Old", State: types.PullRequestClosed, HeadRef: "old", HeadOwner: "bob", HeadRepo: "bob/game", UpdatedAt: baseTime},
		},
		runs: []*model.WorkflowRun{
			newRun(1, "octo", "main", baseTime.Add(2*time.Hour)),
			newRun(2, "octo", "feature/new-ui", baseTime.Add(3*time.Hour)),
			newRun(3, "alice", "patch", baseTime.Add(1*time.Hour)),
			newRun(4, "bob", "old", baseTime.Add(4*time.Hour)),
		},
		artifacts: map[int64][]*model.Artifact{
			1: {newArtifact(11, 1, false)},
			2: {newArtifact(12, 2, false)},
			3: {newArtifact(13, 3, false)},
			4: {newArtifact(14, 4, false)},
		},
		downloads: map[int64][]byte{
			11: siteArchive(t, "main"),
			12: siteArchive(t, "new-ui"),
			13: siteArchive(t, "alice-patch"),
			14: siteArchive(t, "bob-old"),
		},
		assets: map[int64][]byte{},
	}

	fx.gh = &mock.GitHubMock{
		GetPagesBuildTypeFunc: func(ctx context.Context, repo types.RepoName) (string, error) {
			return fx.pagesType, nil
		},
		GetRepositoryFunc: func(ctx context.Context, repo types.RepoName) (*model.Repository, error) {
			return &model.Repository{Owner: "octo", Name: "game", DefaultBranch: "main", HTMLURL: "https://github.com/octo/game"}, nil
		},
		ListBranchesFunc: func(ctx context.Context, repo types.RepoName) ([]*model.Branch, error) {
			return fx.branches, nil
		},
		ListPullRequestsFunc: func(ctx context.Context, repo types.RepoName, state string) ([]*model.PullRequest, error) {
			return fx.prs, nil
		},
		ListReleasesFunc: func(ctx context.Context, repo types.RepoName) ([]*model.Release, error) {
			return fx.releases, nil
		},
		FindWorkflowFunc: func(ctx context.Context, repo types.RepoName, name string) (*model.Workflow, error) {
			return &model.Workflow{ID: workflowID, Name: name, Path: ".github/workflows/build.yml"}, nil
		},
		ListWorkflowRunsFunc: func(ctx context.Context, repo types.RepoName, id int64) ([]*model.WorkflowRun, error) {
			return fx.runs, nil
		},
		ListRunArtifactsFunc: func(ctx context.Context, repo types.RepoName, runID int64) ([]*model.Artifact, error) {
			return fx.artifacts[runID], nil
		},
		DownloadArtifactFunc: func(ctx context.Context, repo types.RepoName, artifactID int64) (io.ReadCloser, error) {
			data, ok := fx.downloads[artifactID]
			if !ok {
				return nil, goerr.Wrap(types.ErrNotFound, "no such artifact")
			}
			return io.NopCloser(bytes.NewReader(data)), nil
		},
		DownloadReleaseAssetFunc: func(ctx context.Context, repo types.RepoName, assetID int64) (io.ReadCloser, error) {
			data, ok := fx.assets[assetID]
			if !ok {
				return nil, goerr.Wrap(types.ErrNotFound, "no such asset")
			}
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}

	return fx
}

func (x *fixture) withRelease(t *testing.T, assetName string) {
	data := siteArchive(t, "release")
	x.releases = []*model.Release{
		{
			ID:          20,
			TagName:     "v1.0",
			HTMLURL:     "https://github.com/octo/game/releases/tag/v1.0",
			PublishedAt: baseTime,
			Assets: []*model.ReleaseAsset{
				{ID: 21, Name: assetName, Size: int64(len(data))},
			},
		},
	}
	x.assets[21] = data
}

func (x *fixture) useCase(t *testing.T, options ...usecase.Option) *usecase.UseCase {
	renderer := gt.R1(render.New()).NoError(t)
	options = append([]usecase.Option{usecase.WithNow(func() time.Time { return baseTime.Add(24 * time.Hour) })}, options...)
	return usecase.New(infra.New(
		infra.WithGitHub(x.gh),
		infra.WithRenderer(renderer),
	), options...)
}

func newInput(outputDir string) *model.AssembleSiteInput {
	return &model.AssembleSiteInput{
		Repo:         "octo/game",
		WorkflowName: "build",
		ArtifactName: artifactName,
		OutputDir:    outputDir,
		CheckPages:   true,
	}
}

func treeOf(t *testing.T, dir string) map[string]string {
	t.Helper()
	tree := make(map[string]string)
	gt.NoError(t, filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := gt.R1(filepath.Rel(dir, path)).NoError(t)
		if d.IsDir() {
			tree[filepath.ToSlash(rel)+"/"] = ""
			return nil
		}
		tree[filepath.ToSlash(rel)] = readFile(t, path)
		return nil
	}))
	return tree
}

func findUnit(site *model.SiteModel, name string) *model.PublishableUnit {
	for _, unit := range site.Units {
		if unit.Name == name {
			return unit
		}
	}
	return nil
}

func hasWarning(site *model.SiteModel, subject string) bool {
	for _, w := range site.Warnings {
		if w.Subject == subject {
			return true
		}
	}
	return false
}

func TestAssembleSiteRootPrecedence(t *testing.T) {
	t.Run("release asset", func(t *testing.T) {
		fx := newFixture(t)
		fx.withRelease(t, "game-v1.0-web.zip")
		out := filepath.Join(t.TempDir(), "_build")

		site := gt.R1(fx.useCase(t).AssembleSite(context.Background(), newInput(out))).NoError(t)

		gt.V(t, site.Root).Equal(model.RootRelease)
		gt.V(t, readFile(t, filepath.Join(out, "index.html"))).Equal("release")
		gt.V(t, readFile(t, filepath.Join(out, "assets", "app.js"))).Equal("// release")
		gt.V(t, readFile(t, filepath.Join(out, "branches", "octo", "main", "index.html"))).Equal("main")
		gt.V(t, len(fx.gh.DownloadReleaseAssetCalls())).Equal(1)
	})

	t.Run("default branch build", func(t *testing.T) {
		fx := newFixture(t)
		out := filepath.Join(t.TempDir(), "_build")

		site := gt.R1(fx.useCase(t).AssembleSite(context.Background(), newInput(out))).NoError(t)

		gt.V(t, site.Root).Equal(model.RootDefaultBranch)
		gt.V(t, readFile(t, filepath.Join(out, "index.html"))).Equal("main")
		gt.V(t, readFile(t, filepath.Join(out, "branches", "octo", "main", "index.html"))).Equal("main")
		gt.V(t, len(fx.gh.DownloadReleaseAssetCalls())).Equal(0)
	})

	t.Run("redirect document", func(t *testing.T) {
		fx := newFixture(t)
		fx.runs = fx.runs[1:]
		out := filepath.Join(t.TempDir(), "_build")

		site := gt.R1(fx.useCase(t).AssembleSite(context.Background(), newInput(out))).NoError(t)

		gt.V(t, site.Root).Equal(model.RootRedirect)
		gt.S(t, readFile(t, filepath.Join(out, "index.html"))).Contains("url=branches/")
		gt.True(t, findUnit(site, "main").Build == nil)
	})

	t.Run("release asset without matching suffix", func(t *testing.T) {
		fx := newFixture(t)
		fx.withRelease(t, "game-v1.0-desktop.zip")
		out := filepath.Join(t.TempDir(), "_build")

		site := gt.R1(fx.useCase(t).AssembleSite(context.Background(), newInput(out))).NoError(t)

		gt.V(t, site.Root).Equal(model.RootDefaultBranch)
		gt.True(t, site.LatestRelease == nil)
	})

	t.Run("corrupt release asset degrades to default build", func(t *testing.T) {
		fx := newFixture(t)
		fx.withRelease(t, "game-v1.0-web.zip")
		fx.assets[21] = fx.assets[21][:len(fx.assets[21])/2]
		out := filepath.Join(t.TempDir(), "_build")

		site := gt.R1(fx.useCase(t).AssembleSite(context.Background(), newInput(out))).NoError(t)

		gt.V(t, site.Root).Equal(model.RootDefaultBranch)
		gt.V(t, readFile(t, filepath.Join(out, "index.html"))).Equal("main")
		gt.True(t, hasWarning(site, "release:v1.0"))
	})

	t.Run("unsupported release archive format is reported", func(t *testing.T) {
		for name, data := range map[string][]byte{
			"game-v1.0-web.tar.xz":  []byte("\xfd7zXZ\x00\x00\x04\xe6\xd6\xb4\x46"),
			"game-v1.0-web.tar.bz2": []byte("BZh91AY&SY"),
			"game-v1.0-web.7z":      []byte("7z\xbc\xaf\x27\x1c\x00\x04"),
		} {
			t.Run(name, func(t *testing.T) {
				fx := newFixture(t)
				fx.withRelease(t, name)
				fx.assets[21] = data
				fx.releases[0].Assets[0].Size = int64(len(data))
				out := filepath.Join(t.TempDir(), "_build")

				site := gt.R1(fx.useCase(t).AssembleSite(context.Background(), newInput(out))).NoError(t)

				gt.True(t, site.LatestRelease != nil)
				gt.V(t, site.Root).Equal(model.RootDefaultBranch)
				gt.V(t, readFile(t, filepath.Join(out, "index.html"))).Equal("main")
				gt.True(t, hasWarning(site, "release:v1.0"))
			})
		}
	})

	t.Run("root archive with branches entry degrades", func(t *testing.T) {
		fx := newFixture(t)
		fx.withRelease(t, "game-v1.0-web.zip")
		data := testutil.ZipArchive(t, testutil.Files{
			"index.html":          "release",
			"branches/index.html": "shadow",
		})
		fx.assets[21] = data
		fx.releases[0].Assets[0].Size = int64(len(data))
		out := filepath.Join(t.TempDir(), "_build")

		site := gt.R1(fx.useCase(t).AssembleSite(context.Background(), newInput(out))).NoError(t)

		gt.V(t, site.Root).Equal(model.RootDefaultBranch)
		gt.V(t, readFile(t, filepath.Join(out, "index.html"))).Equal("main")
		gt.True(t, hasWarning(site, "release:v1.0"))
		gt.False(t, strings.Contains(readFile(t, filepath.Join(out, "branches", "index.html")), "shadow"))
	})
}

func TestAssembleSiteUnits(t *testing.T) {
	fx := newFixture(t)
	out := filepath.Join(t.TempDir(), "_build")

	site := gt.R1(fx.useCase(t).AssembleSite(context.Background(), newInput(out))).NoError(t)

	names := make([]string, 0, len(site.Units))
	for _, unit := range site.Units {
		names = append(names, unit.Name)
	}
	gt.V(t, names).Equal([]string{"main", "feature/new-ui", "alice:patch"})

	gt.V(t, findUnit(site, "main").RelativePath).Equal("octo/main")
	gt.V(t, findUnit(site, "feature/new-ui").RelativePath).Equal("octo/feature/new-ui")
	gt.V(t, findUnit(site, "alice:patch").RelativePath).Equal("alice/patch")

	gt.V(t, readFile(t, filepath.Join(out, "branches", "octo", "feature", "new-ui", "index.html"))).Equal("new-ui")
	gt.V(t, readFile(t, filepath.Join(out, "branches", "alice", "patch", "index.html"))).Equal("alice-patch")

	// Closed fork pull request is dropped and never downloaded
	_, err := os.Stat(filepath.Join(out, "branches", "bob"))
	gt.True(t, errors.Is(err, fs.ErrNotExist))
	for _, call := range fx.gh.DownloadArtifactCalls() {
		gt.V(t, call.ArtifactID).NotEqual(int64(14))
	}

	index := readFile(t, filepath.Join(out, "branches", "index.html"))
	gt.S(t, index).Contains(`href="octo/feature/new-ui/"`)
	gt.S(t, index).Contains(`href="alice/patch/"`)
	gt.S(t, readFile(t, filepath.Join(out, "branches", "branches.css"))).Contains(".never-built")

	// No staging directories are left behind
	entries := gt.R1(os.ReadDir(out)).NoError(t)
	for _, entry := range entries {
		gt.False(t, strings.HasPrefix(entry.Name(), ".octopages"))
	}
}

func TestAssembleSiteExpiredBuild(t *testing.T) {
	fx := newFixture(t)
	fx.artifacts[2] = []*model.Artifact{newArtifact(12, 2, true)}
	out := filepath.Join(t.TempDir(), "_build")

	site := gt.R1(fx.useCase(t).AssembleSite(context.Background(), newInput(out))).NoError(t)

	unit := findUnit(site, "feature/new-ui")
	gt.True(t, unit.Build != nil)
	gt.V(t, unit.RelativePath).Equal("")
	gt.S(t, readFile(t, filepath.Join(out, "branches", "index.html"))).Contains("Build expired on")
	for _, call := range fx.gh.DownloadArtifactCalls() {
		gt.V(t, call.ArtifactID).NotEqual(int64(12))
	}
}

func TestAssembleSitePartialFailure(t *testing.T) {
	fx := newFixture(t)
	fx.downloads[12] = []byte("PK\x03\x04 this is not really a zip file")
	out := filepath.Join(t.TempDir(), "_build")

	site := gt.R1(fx.useCase(t).AssembleSite(context.Background(), newInput(out))).NoError(t)

	broken := findUnit(site, "feature/new-ui")
	gt.True(t, broken.Build != nil)
	gt.V(t, broken.RelativePath).Equal("")
	gt.True(t, hasWarning(site, "unit:feature/new-ui"))

	_, err := os.Stat(filepath.Join(out, "branches", "octo", "feature"))
	gt.True(t, errors.Is(err, fs.ErrNotExist))

	gt.V(t, findUnit(site, "main").RelativePath).Equal("octo/main")
	gt.V(t, findUnit(site, "alice:patch").RelativePath).Equal("alice/patch")
	gt.S(t, readFile(t, filepath.Join(out, "branches", "index.html"))).Contains("Never built")
}

func TestAssembleSiteIsIdempotent(t *testing.T) {
	fx := newFixture(t)
	fx.withRelease(t, "game-v1.0-web.zip")
	uc := fx.useCase(t)

	first := filepath.Join(t.TempDir(), "first")
	second := filepath.Join(t.TempDir(), "second")
	gt.R1(uc.AssembleSite(context.Background(), newInput(first))).NoError(t)
	gt.R1(uc.AssembleSite(context.Background(), newInput(second))).NoError(t)

	gt.V(t, treeOf(t, second)).Equal(treeOf(t, first))
}

func TestAssembleSiteOutputDirectory(t *testing.T) {
	t.Run("non-empty directory is refused", func(t *testing.T) {
		fx := newFixture(t)
		out := t.TempDir()
		gt.NoError(t, os.WriteFile(filepath.Join(out, "stale.txt"), []byte("x"), 0o600))

		_, err := fx.useCase(t).AssembleSite(context.Background(), newInput(out))
		gt.True(t, errors.Is(err, types.ErrConfiguration))
		gt.V(t, len(fx.gh.GetRepositoryCalls())).Equal(0)
		gt.V(t, readFile(t, filepath.Join(out, "stale.txt"))).Equal("x")
	})

	t.Run("clean replaces directory", func(t *testing.T) {
		fx := newFixture(t)
		out := t.TempDir()
		gt.NoError(t, os.WriteFile(filepath.Join(out, "stale.txt"), []byte("x"), 0o600))

		input := newInput(out)
		input.Clean = true
		gt.R1(fx.useCase(t).AssembleSite(context.Background(), input)).NoError(t)

		_, err := os.Stat(filepath.Join(out, "stale.txt"))
		gt.True(t, errors.Is(err, fs.ErrNotExist))
		gt.V(t, readFile(t, filepath.Join(out, "index.html"))).Equal("main")
	})

	t.Run("empty existing directory is used", func(t *testing.T) {
		fx := newFixture(t)
		out := t.TempDir()
		gt.R1(fx.useCase(t).AssembleSite(context.Background(), newInput(out))).NoError(t)
		gt.V(t, readFile(t, filepath.Join(out, "index.html"))).Equal("main")
	})
}

func TestAssembleSiteNameCollision(t *testing.T) {
	fx := newFixture(t)
	fx.branches = append(fx.branches, &model.Branch{Name: "fix a"}, &model.Branch{Name: "fix_a"})
	fx.runs = append(fx.runs,
		newRun(7, "octo", "fix a", baseTime.Add(5*time.Hour)),
		newRun(8, "octo", "fix_a", baseTime.Add(5*time.Hour)),
	)
	fx.artifacts[7] = []*model.Artifact{newArtifact(17, 7, false)}
	fx.artifacts[8] = []*model.Artifact{newArtifact(18, 8, false)}
	out := filepath.Join(t.TempDir(), "_build")

	_, err := fx.useCase(t).AssembleSite(context.Background(), newInput(out))
	gt.True(t, errors.Is(err, types.ErrFilesystem))

	_, statErr := os.Stat(out)
	gt.True(t, errors.Is(statErr, fs.ErrNotExist))
	gt.V(t, len(fx.gh.DownloadArtifactCalls())).Equal(0)
}

func TestAssembleSiteGitHubOutput(t *testing.T) {
	fx := newFixture(t)
	out := filepath.Join(t.TempDir(), "_build")
	outputFile := filepath.Join(t.TempDir(), "github_output")
	gt.NoError(t, os.WriteFile(outputFile, []byte("other=1\n"), 0o600))

	gt.R1(fx.useCase(t, usecase.WithGitHubOutput(outputFile)).AssembleSite(context.Background(), newInput(out))).NoError(t)

	abs := gt.R1(filepath.Abs(out)).NoError(t)
	gt.V(t, readFile(t, outputFile)).Equal("other=1\npath=" + abs + "\n")
}

func TestAssembleSitePagesPrerequisite(t *testing.T) {
	t.Run("legacy build type", func(t *testing.T) {
		fx := newFixture(t)
		fx.pagesType = "legacy"
		out := filepath.Join(t.TempDir(), "_build")

		_, err := fx.useCase(t).AssembleSite(context.Background(), newInput(out))
		gt.True(t, errors.Is(err, types.ErrConfiguration))
		_, statErr := os.Stat(out)
		gt.True(t, errors.Is(statErr, fs.ErrNotExist))
	})

	t.Run("pages disabled", func(t *testing.T) {
		fx := newFixture(t)
		fx.gh.GetPagesBuildTypeFunc = func(ctx context.Context, repo types.RepoName) (string, error) {
			return "", goerr.Wrap(types.ErrNotFound, "pages not found")
		}

		_, err := fx.useCase(t).AssembleSite(context.Background(), newInput(filepath.Join(t.TempDir(), "_build")))
		gt.True(t, errors.Is(err, types.ErrConfiguration))
	})

	t.Run("check disabled", func(t *testing.T) {
		fx := newFixture(t)
		fx.pagesType = "legacy"
		input := newInput(filepath.Join(t.TempDir(), "_build"))
		input.CheckPages = false

		gt.R1(fx.useCase(t).AssembleSite(context.Background(), input)).NoError(t)
		gt.V(t, len(fx.gh.GetPagesBuildTypeCalls())).Equal(0)
	})
}

func TestAssembleSiteUpstreamFailures(t *testing.T) {
	t.Run("auth failure aborts", func(t *testing.T) {
		fx := newFixture(t)
		fx.gh.ListBranchesFunc = func(ctx context.Context, repo types.RepoName) ([]*model.Branch, error) {
			return nil, goerr.Wrap(types.ErrAuth, "bad credentials")
		}
		out := filepath.Join(t.TempDir(), "_build")

		_, err := fx.useCase(t).AssembleSite(context.Background(), newInput(out))
		gt.True(t, errors.Is(err, types.ErrAuth))
		_, statErr := os.Stat(out)
		gt.True(t, errors.Is(statErr, fs.ErrNotExist))
	})

	t.Run("auth failure on artifact download aborts", func(t *testing.T) {
		fx := newFixture(t)
		fx.gh.DownloadArtifactFunc = func(ctx context.Context, repo types.RepoName, artifactID int64) (io.ReadCloser, error) {
			return nil, goerr.Wrap(types.ErrAuth, "bad credentials")
		}
		out := filepath.Join(t.TempDir(), "_build")

		site, err := fx.useCase(t).AssembleSite(context.Background(), newInput(out))
		gt.True(t, errors.Is(err, types.ErrAuth))
		gt.True(t, site == nil)
		_, statErr := os.Stat(out)
		gt.True(t, errors.Is(statErr, fs.ErrNotExist))
	})

	t.Run("auth failure on release asset download aborts", func(t *testing.T) {
		fx := newFixture(t)
		fx.withRelease(t, "game-v1.0-web.zip")
		fx.gh.DownloadReleaseAssetFunc = func(ctx context.Context, repo types.RepoName, assetID int64) (io.ReadCloser, error) {
			return nil, goerr.Wrap(types.ErrAuth, "bad credentials")
		}
		out := filepath.Join(t.TempDir(), "_build")

		_, err := fx.useCase(t).AssembleSite(context.Background(), newInput(out))
		gt.True(t, errors.Is(err, types.ErrAuth))
		_, statErr := os.Stat(out)
		gt.True(t, errors.Is(statErr, fs.ErrNotExist))
	})

	t.Run("transient download failure demotes the unit", func(t *testing.T) {
		fx := newFixture(t)
		fx.gh.DownloadArtifactFunc = func(ctx context.Context, repo types.RepoName, artifactID int64) (io.ReadCloser, error) {
			if artifactID == 12 {
				return nil, goerr.Wrap(types.ErrTransient, "storage returned 403")
			}
			return io.NopCloser(bytes.NewReader(fx.downloads[artifactID])), nil
		}
		out := filepath.Join(t.TempDir(), "_build")

		site := gt.R1(fx.useCase(t).AssembleSite(context.Background(), newInput(out))).NoError(t)
		gt.True(t, hasWarning(site, "unit:feature/new-ui"))
		gt.V(t, findUnit(site, "feature/new-ui").RelativePath).Equal("")
		gt.V(t, findUnit(site, "main").RelativePath).Equal("octo/main")
	})

	t.Run("unknown workflow aborts", func(t *testing.T) {
		fx := newFixture(t)
		fx.gh.FindWorkflowFunc = func(ctx context.Context, repo types.RepoName, name string) (*model.Workflow, error) {
			return nil, goerr.Wrap(types.ErrConfiguration, "workflow not found")
		}

		_, err := fx.useCase(t).AssembleSite(context.Background(), newInput(filepath.Join(t.TempDir(), "_build")))
		gt.True(t, errors.Is(err, types.ErrConfiguration))
	})

	t.Run("transient failures degrade", func(t *testing.T) {
		fx := newFixture(t)
		fx.withRelease(t, "game-v1.0-web.zip")
		fx.gh.ListReleasesFunc = func(ctx context.Context, repo types.RepoName) ([]*model.Release, error) {
			return nil, goerr.Wrap(types.ErrTransient, "bad gateway")
		}
		fx.gh.ListRunArtifactsFunc = func(ctx context.Context, repo types.RepoName, runID int64) ([]*model.Artifact, error) {
			if runID == 2 {
				return nil, goerr.Wrap(types.ErrTransient, "timeout")
			}
			return fx.artifacts[runID], nil
		}
		out := filepath.Join(t.TempDir(), "_build")

		site := gt.R1(fx.useCase(t).AssembleSite(context.Background(), newInput(out))).NoError(t)

		gt.V(t, site.Root).Equal(model.RootDefaultBranch)
		gt.True(t, hasWarning(site, "releases"))
		gt.True(t, hasWarning(site, "workflow_run:2"))
		gt.True(t, findUnit(site, "feature/new-ui").Build == nil)
	})

	t.Run("repository not found is a configuration error", func(t *testing.T) {
		fx := newFixture(t)
		fx.gh.GetRepositoryFunc = func(ctx context.Context, repo types.RepoName) (*model.Repository, error) {
			return nil, goerr.Wrap(types.ErrNotFound, "not found")
		}

		_, err := fx.useCase(t).AssembleSite(context.Background(), newInput(filepath.Join(t.TempDir(), "_build")))
		gt.True(t, errors.Is(err, types.ErrConfiguration))
	})
}

func TestAssembleSiteArtifactWalk(t *testing.T) {
	fx := newFixture(t)
	// Newest run of feature/new-ui only has an expired artifact, so the
	// walk continues to run 2 and stops there.
	fx.runs = append(fx.runs,
		newRun(5, "octo", "feature/new-ui", baseTime.Add(6*time.Hour)),
		newRun(6, "octo", "feature/new-ui", baseTime.Add(30*time.Minute)),
	)
	fx.artifacts[5] = []*model.Artifact{newArtifact(15, 5, true)}
	fx.artifacts[6] = []*model.Artifact{newArtifact(16, 6, false)}

	deleted := newRun(9, "", "gone", baseTime.Add(time.Hour))
	deleted.HeadRepo = ""
	fx.runs = append(fx.runs, deleted)

	out := filepath.Join(t.TempDir(), "_build")
	site := gt.R1(fx.useCase(t).AssembleSite(context.Background(), newInput(out))).NoError(t)

	fetched := map[int64]bool{}
	for _, call := range fx.gh.ListRunArtifactsCalls() {
		fetched[call.RunID] = true
	}
	gt.True(t, fetched[5])
	gt.True(t, fetched[2])
	gt.False(t, fetched[6])
	gt.False(t, fetched[9])
	gt.True(t, hasWarning(site, "workflow_run:9"))

	unit := findUnit(site, "feature/new-ui")
	gt.V(t, unit.Build.WorkflowRun.ID).Equal(int64(2))
	gt.V(t, unit.RelativePath).Equal("octo/feature/new-ui")
}

func TestAssembleSitePrunesCache(t *testing.T) {
	fx := newFixture(t)
	cache := &mock.HTTPCacheMock{
		PruneFunc: func(ctx context.Context, olderThan time.Time) (int, error) {
			return 3, nil
		},
	}
	renderer := gt.R1(render.New()).NoError(t)
	now := baseTime.Add(24 * time.Hour)
	uc := usecase.New(infra.New(
		infra.WithGitHub(fx.gh),
		infra.WithRenderer(renderer),
		infra.WithHTTPCache(cache),
	), usecase.WithNow(func() time.Time { return now }))

	gt.R1(uc.AssembleSite(context.Background(), newInput(filepath.Join(t.TempDir(), "_build")))).NoError(t)

	calls := cache.PruneCalls()
	gt.V(t, len(calls)).Equal(1)
	gt.True(t, calls[0].OlderThan.Equal(now.Add(-usecase.DefaultCacheRetention)))
}

func TestAssembleSiteInvalidInput(t *testing.T) {
	fx := newFixture(t)
	input := newInput(filepath.Join(t.TempDir(), "_build"))
	input.ArtifactName = ""

	_, err := fx.useCase(t).AssembleSite(context.Background(), input)
	gt.True(t, errors.Is(err, types.ErrConfiguration))
	gt.V(t, len(fx.gh.GetRepositoryCalls())).Equal(0)
}
