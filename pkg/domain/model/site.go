package model

import (
	"fmt"
	"time"
)

// Build pairs a workflow run with the artifact it uploaded.
type Build struct {
	WorkflowRun *WorkflowRun
	Artifact    *Artifact
}

// Available reports whether the artifact can still be downloaded.
func (x *Build) Available() bool {
	return x != nil && x.Artifact != nil && !x.Artifact.Expired
}

// PublishableUnit is one entry of the branches listing.
type PublishableUnit struct {
	// Name is the branch name for base repository branches and the head
	// label "owner:branch" for fork pull requests.
	Name      string
	Owner     string
	Branch    string
	IsDefault bool
	IsFork    bool

	PullRequest *PullRequest
	Build       *Build

	// RelativePath is the unit's location relative to branches/index.html.
	// Empty when the unit was never built, expired or failed to unpack.
	RelativePath string
}

func (x *PublishableUnit) Label() string {
	return Label(x.Owner, x.Branch)
}

// BuildTime is the completion time of the selected run, zero without a build.
func (x *PublishableUnit) BuildTime() time.Time {
	if x.Build == nil || x.Build.WorkflowRun == nil {
		return time.Time{}
	}
	return x.Build.WorkflowRun.CompletedAt
}

type LatestRelease struct {
	Release *Release
	Asset   *ReleaseAsset
}

// RootSource records what the assembled root directory contains.
type RootSource string

const (
	RootNone          RootSource = ""
	RootRelease       RootSource = "release"
	RootDefaultBranch RootSource = "default_branch"
	RootRedirect      RootSource = "redirect"
)

// SiteModel is the reconciled state of one run.
type SiteModel struct {
	Repository    *Repository
	Units         []*PublishableUnit
	LatestRelease *LatestRelease
	Root          RootSource
	GeneratedAt   time.Time
	Warnings      []Warning
}

func (x *SiteModel) DefaultUnit() *PublishableUnit {
	for _, unit := range x.Units {
		if unit.IsDefault {
			return unit
		}
	}
	return nil
}

func (x *SiteModel) Warn(subject, format string, args ...any) {
	x.Warnings = append(x.Warnings, Warning{Subject: subject, Message: fmt.Sprintf(format, args...)})
}
