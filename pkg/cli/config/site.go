package config

import (
	"log/slog"

	"github.com/m-mizutani/octopages/pkg/domain/model"
	"github.com/m-mizutani/octopages/pkg/domain/types"
	"github.com/m-mizutani/octopages/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Site holds what to assemble and where.
type Site struct {
	repository         string
	workflowName       string
	artifactName       string
	output             string
	clean              bool
	concurrency        int
	checkPages         bool
	hideClosedBranches bool
	githubOutput       string
}

func (x *Site) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository",
			Aliases:     []string{"r"},
			Usage:       "Repository as owner/name (default: detected from the git origin remote)",
			Category:    "Site",
			Sources:     cli.EnvVars("OCTOPAGES_REPOSITORY", "GITHUB_REPOSITORY"),
			Destination: &x.repository,
		},
		&cli.StringFlag{
			Name:        "workflow-name",
			Aliases:     []string{"w"},
			Usage:       "Name of the workflow that uploads the site artifact",
			Category:    "Site",
			Sources:     cli.EnvVars("OCTOPAGES_WORKFLOW_NAME", "WORKFLOW_NAME"),
			Destination: &x.workflowName,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "artifact-name",
			Aliases:     []string{"a"},
			Usage:       "Name of the site artifact and suffix of release assets",
			Category:    "Site",
			Sources:     cli.EnvVars("OCTOPAGES_ARTIFACT_NAME", "ARTIFACT_NAME"),
			Destination: &x.artifactName,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"d"},
			Usage:       "Output directory of the site",
			Category:    "Site",
			Sources:     cli.EnvVars("OCTOPAGES_OUTPUT"),
			Value:       "_build",
			Destination: &x.output,
		},
		&cli.BoolFlag{
			Name:        "clean",
			Usage:       "Remove an existing non-empty output directory first",
			Category:    "Site",
			Destination: &x.clean,
		},
		&cli.IntFlag{
			Name:        "concurrency",
			Usage:       "Number of parallel downloads",
			Category:    "Site",
			Sources:     cli.EnvVars("OCTOPAGES_CONCURRENCY"),
			Value:       usecase.DefaultConcurrency,
			Destination: &x.concurrency,
		},
		&cli.BoolFlag{
			Name:        "check-pages",
			Usage:       "Require GitHub Pages to be deployed by a workflow",
			Category:    "Site",
			Sources:     cli.EnvVars("OCTOPAGES_CHECK_PAGES"),
			Value:       true,
			Destination: &x.checkPages,
		},
		&cli.BoolFlag{
			Name:        "hide-closed-branches",
			Usage:       "Hide branches whose pull request has been closed",
			Category:    "Site",
			Destination: &x.hideClosedBranches,
		},
		&cli.StringFlag{
			Name:        "github-output",
			Usage:       "File to append the step output path to",
			Category:    "Site",
			Sources:     cli.EnvVars("GITHUB_OUTPUT"),
			Destination: &x.githubOutput,
		},
	}
}

func (x *Site) Repository() types.RepoName {
	return types.RepoName(x.repository)
}

func (x *Site) GitHubOutput() string {
	return x.githubOutput
}

// Input builds the use case input. repo overrides --repository when set.
func (x *Site) Input(repo types.RepoName) *model.AssembleSiteInput {
	if repo == "" {
		repo = x.Repository()
	}
	return &model.AssembleSiteInput{
		Repo:               repo,
		WorkflowName:       x.workflowName,
		ArtifactName:       x.artifactName,
		OutputDir:          x.output,
		Clean:              x.clean,
		CheckPages:         x.checkPages,
		HideClosedBranches: x.hideClosedBranches,
		Concurrency:        x.concurrency,
	}
}

func (x *Site) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("Repository", x.repository),
		slog.String("WorkflowName", x.workflowName),
		slog.String("ArtifactName", x.artifactName),
		slog.String("Output", x.output),
		slog.Bool("Clean", x.clean),
		slog.Int("Concurrency", x.concurrency),
		slog.Bool("CheckPages", x.checkPages),
		slog.Bool("HideClosedBranches", x.hideClosedBranches),
		slog.String("GitHubOutput", x.githubOutput),
	)
}
