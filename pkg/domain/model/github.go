package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octopages/pkg/domain/types"
)

// Repository is the base repository whose site is assembled.
type Repository struct {
	Owner         string
	Name          string
	DefaultBranch string
	HTMLURL       string
}

func (x *Repository) FullName() types.RepoName {
	return types.RepoName(x.Owner + "/" + x.Name)
}

func (x *Repository) Validate() error {
	if x.Owner == "" || x.Name == "" {
		return goerr.Wrap(types.ErrMalformedRecord, "repository owner and name are required")
	}
	if x.DefaultBranch == "" {
		return goerr.Wrap(types.ErrMalformedRecord, "repository has no default branch", goerr.V("repo", x.FullName()))
	}
	return nil
}

// Branch is a live branch ref of the base repository.
type Branch struct {
	Name      string
	HeadSHA   string
	IsDefault bool
}

func (x *Branch) Validate() error {
	if x.Name == "" {
		return goerr.Wrap(types.ErrMalformedRecord, "branch has no name")
	}
	return nil
}

type PullRequest struct {
	Number    int
	Title     string
	HTMLURL   string
	State     types.PullRequestState
	HeadRef   string
	HeadOwner string
	HeadRepo  types.RepoName
	HeadSHA   string
	UpdatedAt time.Time
}

// Label returns the head label "owner:branch". An owner has at most one
// fork of a repository, so the label is unambiguous.
func (x *PullRequest) Label() string {
	return Label(x.HeadOwner, x.HeadRef)
}

func (x *PullRequest) IsOpen() bool {
	return x.State == types.PullRequestOpen
}

func (x *PullRequest) Validate() error {
	if x.Number == 0 {
		return goerr.Wrap(types.ErrMalformedRecord, "pull request has no number")
	}
	if x.HeadRef == "" || x.HeadOwner == "" {
		return goerr.Wrap(types.ErrMalformedRecord, "pull request has no head", goerr.V("number", x.Number))
	}
	switch x.State {
	case types.PullRequestOpen, types.PullRequestClosed, types.PullRequestMerged:
	default:
		return goerr.Wrap(types.ErrMalformedRecord, "pull request has unknown state",
			goerr.V("number", x.Number),
			goerr.V("state", x.State),
		)
	}
	return nil
}

type Workflow struct {
	ID   int64
	Name string
	Path string
}

type WorkflowRun struct {
	ID          int64
	WorkflowID  int64
	Name        string
	RunNumber   int
	HeadSHA     string
	HeadBranch  string
	HeadOwner   string
	HeadRepo    types.RepoName
	Conclusion  types.WorkflowRunConclusion
	HTMLURL     string
	CompletedAt time.Time
}

func (x *WorkflowRun) Label() string {
	return Label(x.HeadOwner, x.HeadBranch)
}

func (x *WorkflowRun) Succeeded() bool {
	return x.Conclusion == types.ConclusionSuccess
}

func (x *WorkflowRun) Validate() error {
	if x.ID == 0 {
		return goerr.Wrap(types.ErrMalformedRecord, "workflow run has no ID")
	}
	if x.HeadBranch == "" || x.HeadOwner == "" {
		return goerr.Wrap(types.ErrMalformedRecord, "workflow run has no head", goerr.V("run_id", x.ID))
	}
	if x.HeadSHA == "" {
		return goerr.Wrap(types.ErrMalformedRecord, "workflow run has no head SHA", goerr.V("run_id", x.ID))
	}
	if x.CompletedAt.IsZero() {
		return goerr.Wrap(types.ErrMalformedRecord, "workflow run has no completion time", goerr.V("run_id", x.ID))
	}
	return nil
}

// Artifact is a time-limited build output of a workflow run. Expired is
// always read from a fresh API response.
type Artifact struct {
	ID                 int64
	RunID              int64
	Name               string
	SizeInBytes        int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
	ExpiresAt          time.Time
	Expired            bool
	ArchiveDownloadURL string
}

func (x *Artifact) Validate() error {
	if x.ID == 0 || x.Name == "" {
		return goerr.Wrap(types.ErrMalformedRecord, "artifact has no ID or name", goerr.V("run_id", x.RunID))
	}
	return nil
}

type Release struct {
	ID          int64
	TagName     string
	Name        string
	Body        string
	HTMLURL     string
	Draft       bool
	Prerelease  bool
	PublishedAt time.Time
	Assets      []*ReleaseAsset
}

// DisplayName falls back to the tag when the release is unnamed.
func (x *Release) DisplayName() string {
	if x.Name != "" {
		return x.Name
	}
	return x.TagName
}

func (x *Release) Validate() error {
	if x.ID == 0 || x.TagName == "" {
		return goerr.Wrap(types.ErrMalformedRecord, "release has no ID or tag")
	}
	if !x.Draft && x.PublishedAt.IsZero() {
		return goerr.Wrap(types.ErrMalformedRecord, "published release has no publication time", goerr.V("tag", x.TagName))
	}
	return nil
}

type ReleaseAsset struct {
	ID          int64
	Name        string
	ContentType string
	Size        int64
	UpdatedAt   time.Time
	DownloadURL string
}

// Label joins an owner and a branch name the way GitHub labels PR heads.
func Label(owner, branch string) string {
	return owner + ":" + branch
}

// SplitLabel is the inverse of Label.
func SplitLabel(label string) (owner, branch string) {
	owner, branch, _ = strings.Cut(label, ":")
	return owner, branch
}
