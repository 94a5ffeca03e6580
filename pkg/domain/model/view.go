package model

import "time"

// IndexPage is the data handed to the branch index template.
type IndexPage struct {
	Repository     *Repository
	Branches       []*UnitView
	LatestRelease  *ReleaseView
	Root           RootSource
	GenerationTime time.Time
}

type UnitView struct {
	Name         string
	Owner        string
	IsDefault    bool
	IsFork       bool
	RelativePath string
	PullRequest  *PullRequest
	Build        *BuildView
}

type BuildView struct {
	Artifact    *Artifact
	WorkflowRun *WorkflowRun
}

type ReleaseView struct {
	Data  *Release
	Asset *ReleaseAsset
}

// NewIndexPage converts the site model after assembly into the view model.
// Unit order is preserved.
func NewIndexPage(site *SiteModel) *IndexPage {
	page := &IndexPage{
		Repository:     site.Repository,
		Root:           site.Root,
		GenerationTime: site.GeneratedAt,
		Branches:       make([]*UnitView, 0, len(site.Units)),
	}

	for _, unit := range site.Units {
		view := &UnitView{
			Name:         unit.Name,
			Owner:        unit.Owner,
			IsDefault:    unit.IsDefault,
			IsFork:       unit.IsFork,
			RelativePath: unit.RelativePath,
			PullRequest:  unit.PullRequest,
		}
		if unit.Build != nil {
			view.Build = &BuildView{
				Artifact:    unit.Build.Artifact,
				WorkflowRun: unit.Build.WorkflowRun,
			}
		}
		page.Branches = append(page.Branches, view)
	}

	if site.LatestRelease != nil {
		page.LatestRelease = &ReleaseView{
			Data:  site.LatestRelease.Release,
			Asset: site.LatestRelease.Asset,
		}
	}

	return page
}
