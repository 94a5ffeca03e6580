package reconciler

import (
	"cmp"
	"sort"
	"strconv"

	"github.com/m-mizutani/octopages/pkg/domain/model"
	"github.com/samber/lo"
)

// buildRule compares two candidate builds of the same head label. A
// positive result means a is preferred.
type buildRule struct {
	Name    string
	Compare func(a, b *model.Build) int
}

// buildPrecedence is evaluated in order; the first rule that tells the
// candidates apart decides.
var buildPrecedence = []buildRule{
	{
		Name: "unexpired",
		Compare: func(a, b *model.Build) int {
			return compareBool(!a.Artifact.Expired, !b.Artifact.Expired)
		},
	},
	{
		Name: "completed_at",
		Compare: func(a, b *model.Build) int {
			return a.WorkflowRun.CompletedAt.Compare(b.WorkflowRun.CompletedAt)
		},
	},
	{
		Name: "artifact_updated_at",
		Compare: func(a, b *model.Build) int {
			return a.Artifact.UpdatedAt.Compare(b.Artifact.UpdatedAt)
		},
	},
	{
		Name: "run_id",
		Compare: func(a, b *model.Build) int {
			return cmp.Compare(a.WorkflowRun.ID, b.WorkflowRun.ID)
		},
	},
}

func preferBuild(a, b *model.Build) bool {
	for _, rule := range buildPrecedence {
		if c := rule.Compare(a, b); c != 0 {
			return c > 0
		}
	}
	return false
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

// selectBuilds returns the best build per head label. Only successful runs
// of the configured workflow that uploaded an artifact named
// cfg.ArtifactName are candidates.
func selectBuilds(cfg Config, up *model.Upstream, site *model.SiteModel) map[string]*model.Build {
	runs := lo.Filter(up.WorkflowRuns, func(run *model.WorkflowRun, _ int) bool {
		if run == nil || !matchWorkflow(cfg, up.Workflow, run) || !run.Succeeded() {
			return false
		}
		if err := run.Validate(); err != nil {
			site.Warn("workflow_run:"+strconv.FormatInt(run.ID, 10), "%s", err.Error())
			return false
		}
		return true
	})

	groups := lo.GroupBy(runs, func(run *model.WorkflowRun) string { return run.Label() })
	labels := lo.Keys(groups)
	sort.Strings(labels)

	selected := make(map[string]*model.Build)
	for _, label := range labels {
		for _, run := range groups[label] {
			artifact := findArtifact(cfg.ArtifactName, up.Artifacts[run.ID], site)
			if artifact == nil {
				continue
			}

			candidate := &model.Build{WorkflowRun: run, Artifact: artifact}
			if current, ok := selected[label]; !ok || preferBuild(candidate, current) {
				selected[label] = candidate
			}
		}
	}

	return selected
}

func matchWorkflow(cfg Config, workflow *model.Workflow, run *model.WorkflowRun) bool {
	if workflow != nil && run.WorkflowID != 0 {
		return run.WorkflowID == workflow.ID
	}
	return run.Name == cfg.WorkflowName
}

// findArtifact picks the artifact named name, preferring an unexpired one
// when a run uploaded several with the same name.
func findArtifact(name string, artifacts []*model.Artifact, site *model.SiteModel) *model.Artifact {
	var found *model.Artifact
	for _, artifact := range artifacts {
		if artifact == nil {
			continue
		}
		if err := artifact.Validate(); err != nil {
			site.Warn("artifact:"+strconv.FormatInt(artifact.RunID, 10), "%s", err.Error())
			continue
		}
		if artifact.Name != name {
			continue
		}
		if found == nil || (found.Expired && !artifact.Expired) {
			found = artifact
		}
	}
	return found
}
