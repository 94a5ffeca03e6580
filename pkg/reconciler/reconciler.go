package reconciler

import (
	"sort"
	"time"

	"github.com/m-mizutani/octopages/pkg/domain/model"
)

// Config names the workflow and artifact that builds come from.
type Config struct {
	WorkflowName       string
	ArtifactName       string
	HideClosedBranches bool
}

// Reconcile computes the site model from already fetched upstream records.
// It never fails: malformed records are skipped and recorded as warnings on
// the returned model.
func Reconcile(cfg Config, up *model.Upstream, now time.Time) *model.SiteModel {
	site := &model.SiteModel{
		Repository:  up.Repository,
		GeneratedAt: now,
	}
	site.Warnings = append(site.Warnings, up.Warnings...)

	repo := up.Repository
	if repo == nil {
		repo = &model.Repository{}
		site.Repository = repo
		site.Warn("repository", "repository details are missing")
	} else if err := repo.Validate(); err != nil {
		site.Warn("repository", "%s", err.Error())
	}

	builds := selectBuilds(cfg, up, site)
	site.Units = buildUnits(cfg, repo, up, builds, site)
	sortUnits(site.Units)
	site.LatestRelease = selectLatestRelease(cfg, up.Releases, site)

	return site
}

// sortUnits puts the default unit first when it has a build, then built
// units by completion time descending, then units without a build. Name
// ascending breaks remaining ties.
func sortUnits(units []*model.PublishableUnit) {
	sort.SliceStable(units, func(i, j int) bool {
		a, b := units[i], units[j]

		aDefault := a.IsDefault && a.Build != nil
		bDefault := b.IsDefault && b.Build != nil
		if aDefault != bDefault {
			return aDefault
		}

		if (a.Build != nil) != (b.Build != nil) {
			return a.Build != nil
		}

		if ta, tb := a.BuildTime(), b.BuildTime(); !ta.Equal(tb) {
			return ta.After(tb)
		}

		return a.Name < b.Name
	})
}
