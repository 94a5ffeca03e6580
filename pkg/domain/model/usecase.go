package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octopages/pkg/domain/types"
)

type AssembleSiteInput struct {
	Repo         types.RepoName
	WorkflowName string
	ArtifactName string
	OutputDir    string

	// Clean removes an existing non-empty output directory first.
	Clean bool

	// CheckPages requires the repository's Pages site to be built by a
	// workflow before anything is fetched.
	CheckPages bool

	// HideClosedBranches hides live branches whose newest pull request is
	// closed and which have no open pull request.
	HideClosedBranches bool

	// Concurrency bounds parallel downloads. Zero means the default.
	Concurrency int
}

func (x *AssembleSiteInput) Validate() error {
	if err := x.Repo.Validate(); err != nil {
		return err
	}
	if x.WorkflowName == "" {
		return goerr.Wrap(types.ErrConfiguration, "workflow name is required")
	}
	if x.ArtifactName == "" {
		return goerr.Wrap(types.ErrConfiguration, "artifact name is required")
	}
	if x.OutputDir == "" {
		return goerr.Wrap(types.ErrConfiguration, "output directory is required")
	}
	if x.Concurrency < 0 {
		return goerr.Wrap(types.ErrInvalidOption, "concurrency must not be negative", goerr.V("concurrency", x.Concurrency))
	}
	return nil
}
