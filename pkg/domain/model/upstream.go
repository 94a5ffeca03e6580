package model

import "fmt"

// Upstream holds the raw collections fetched for one run.
type Upstream struct {
	Repository   *Repository
	Branches     []*Branch
	PullRequests []*PullRequest
	Workflow     *Workflow
	WorkflowRuns []*WorkflowRun

	// Artifacts maps a workflow run ID to the artifacts retrieved for it.
	// A run without an entry had no retrievable artifact record.
	Artifacts map[int64][]*Artifact
	Releases  []*Release
	Warnings  []Warning
}

// Warning is a non-fatal problem recorded during a run.
type Warning struct {
	Subject string
	Message string
}

func (x Warning) String() string {
	return fmt.Sprintf("%s: %s", x.Subject, x.Message)
}

func (x *Upstream) Warn(subject, format string, args ...any) {
	x.Warnings = append(x.Warnings, Warning{Subject: subject, Message: fmt.Sprintf(format, args...)})
}
