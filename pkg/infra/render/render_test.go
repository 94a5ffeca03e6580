package render_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/octopages/pkg/domain/model"
	"github.com/m-mizutani/octopages/pkg/infra/render"
)

var generatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func renderIndex(t *testing.T, page *model.IndexPage) string {
	r := gt.R1(render.New()).NoError(t)
	var buf bytes.Buffer
	gt.NoError(t, r.RenderIndex(&buf, page))
	return buf.String()
}

func TestRenderEmptyIndex(t *testing.T) {
	out := renderIndex(t, &model.IndexPage{
		Repository:     &model.Repository{Owner: "octo", Name: "game", DefaultBranch: "main", HTMLURL: "https://github.com/octo/game"},
		GenerationTime: generatedAt,
	})

	gt.S(t, out).Contains("<title>octo/game branches</title>")
	gt.S(t, out).Contains("No branches have been built yet.")
	gt.S(t, out).Contains("The site root redirects to this page.")
	gt.S(t, out).Contains(`href="branches.css"`)
	gt.S(t, out).Contains("2026-03-01 12:00 UTC")
}

func TestRenderUnits(t *testing.T) {
	page := &model.IndexPage{
		Repository:     &model.Repository{Owner: "octo", Name: "game", DefaultBranch: "main"},
		Root:           model.RootDefaultBranch,
		GenerationTime: generatedAt,
		Branches: []*model.UnitView{
			{
				Name:         "main",
				Owner:        "octo",
				IsDefault:    true,
				RelativePath: "octo/main",
				Build: &model.BuildView{
					WorkflowRun: &model.WorkflowRun{
						HeadSHA:     "0123456789abcdef",
						HeadBranch:  "main",
						HTMLURL:     "https://github.com/octo/game/actions/runs/1",
						CompletedAt: generatedAt.Add(-2 * time.Hour),
					},
					Artifact: &model.Artifact{
						SizeInBytes: 2_500_000,
						ExpiresAt:   time.Date(2026, 5, 30, 8, 0, 0, 0, time.UTC),
					},
				},
			},
			{
				Name:  "stale",
				Owner: "octo",
				Build: &model.BuildView{
					WorkflowRun: &model.WorkflowRun{HeadSHA: "fedcba9876543210", HeadBranch: "stale", CompletedAt: generatedAt.Add(-100 * 24 * time.Hour)},
					Artifact:    &model.Artifact{Expired: true, ExpiresAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)},
				},
			},
			{
				Name:   "alice:feature<x>",
				Owner:  "alice",
				IsFork: true,
				PullRequest: &model.PullRequest{
					Number:  42,
					Title:   "Add <script> support",
					HTMLURL: "https://github.com/octo/game/pull/42",
				},
			},
		},
	}

	out := renderIndex(t, page)

	gt.S(t, out).Contains("The site root serves the default branch.")
	gt.S(t, out).Contains(`<a href="octo/main/">main</a>`)
	gt.S(t, out).Contains(`<span class="badge">default</span>`)
	gt.S(t, out).Contains("<code>0123456</code>")
	gt.S(t, out).Contains("2 hours ago")
	gt.S(t, out).Contains("2.5 MB, expires")

	// Expired build shows its expiry timestamp and no link
	gt.S(t, out).Contains("Build expired on")
	gt.S(t, out).Contains("2026-01-02 03:04 UTC")
	gt.False(t, strings.Contains(out, `href="octo/stale/"`))

	// Never built fork PR is escaped and flagged
	gt.S(t, out).Contains("alice:feature&lt;x&gt;")
	gt.S(t, out).Contains("Add &lt;script&gt; support")
	gt.S(t, out).Contains(`<span class="badge">fork</span>`)
	gt.S(t, out).Contains("Never built")
	gt.V(t, strings.Count(out, "Never built")).Equal(1)
}

func TestRenderLatestRelease(t *testing.T) {
	out := renderIndex(t, &model.IndexPage{
		Root:           model.RootRelease,
		GenerationTime: generatedAt,
		LatestRelease: &model.ReleaseView{
			Data: &model.Release{
				TagName:     "v1.2",
				HTMLURL:     "https://github.com/octo/game/releases/tag/v1.2",
				Prerelease:  true,
				Body:        "## Changes\n\n- **faster** loading\n\n<script>alert(1)</script>",
				PublishedAt: generatedAt.Add(-3 * 24 * time.Hour),
			},
			Asset: &model.ReleaseAsset{Name: "game-v1.2-web.zip", Size: 1024, DownloadURL: "https://example.com/game-v1.2-web.zip"},
		},
	})

	gt.S(t, out).Contains("The site root serves the latest release.")
	gt.S(t, out).Contains(">v1.2</a>")
	gt.S(t, out).Contains("pre-release")
	gt.S(t, out).Contains("<h2>Changes</h2>")
	gt.S(t, out).Contains("<strong>faster</strong>")
	gt.S(t, out).Contains("3 days ago")
	gt.S(t, out).Contains("game-v1.2-web.zip")
	gt.S(t, out).Contains("1.0 kB")
	gt.S(t, out).Contains(`<a href="../">Play</a>`)
	gt.False(t, strings.Contains(out, "<script>alert(1)</script>"))
}

func TestRenderLatestReleaseNotAtRoot(t *testing.T) {
	for _, root := range []model.RootSource{model.RootDefaultBranch, model.RootRedirect} {
		t.Run(string(root), func(t *testing.T) {
			out := renderIndex(t, &model.IndexPage{
				Root:           root,
				GenerationTime: generatedAt,
				LatestRelease: &model.ReleaseView{
					Data: &model.Release{
						TagName:     "v1.2",
						HTMLURL:     "https://github.com/octo/game/releases/tag/v1.2",
						PublishedAt: generatedAt.Add(-time.Hour),
					},
					Asset: &model.ReleaseAsset{Name: "game-v1.2-web.7z", Size: 1024, DownloadURL: "https://example.com/game-v1.2-web.7z"},
				},
			})

			gt.S(t, out).Contains(">v1.2</a>")
			gt.S(t, out).Contains("game-v1.2-web.7z")
			gt.False(t, strings.Contains(out, ">Play</a>"))
		})
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	page := &model.IndexPage{
		GenerationTime: generatedAt,
		Branches: []*model.UnitView{
			{Name: "main", IsDefault: true, RelativePath: "octo/main"},
			{Name: "dev"},
		},
	}
	gt.V(t, renderIndex(t, page)).Equal(renderIndex(t, page))
}

func TestRenderRedirect(t *testing.T) {
	r := gt.R1(render.New()).NoError(t)
	var buf bytes.Buffer
	gt.NoError(t, r.RenderRedirect(&buf, "branches/"))

	gt.S(t, buf.String()).Contains(`content="0; url=branches/"`)
	gt.S(t, buf.String()).Contains(`<a href="branches/">branches/</a>`)
}

func TestStylesheet(t *testing.T) {
	r := gt.R1(render.New()).NoError(t)
	css := r.Stylesheet()
	gt.S(t, string(css)).Contains(".never-built")

	// Callers must not be able to modify the embedded copy
	css[0] = 'X'
	gt.V(t, r.Stylesheet()[0]).NotEqual(byte('X'))
}
