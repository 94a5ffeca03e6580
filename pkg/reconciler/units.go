package reconciler

import (
	"sort"
	"strconv"

	"github.com/m-mizutani/octopages/pkg/domain/model"
)

// headState is everything known about one head label before a unit is
// created for it.
type headState struct {
	Owner  string
	Branch string

	// Live is the base repository branch, nil when the label has no live ref
	// in the base repository.
	Live *model.Branch

	// OpenPR is the most recently updated open pull request of the label.
	OpenPR *model.PullRequest

	// LatestPR is the most recently updated pull request in any state.
	LatestPR *model.PullRequest

	Build   *model.Build
	Fork    bool
	Default bool
}

type unitAction int

const (
	dropUnit unitAction = iota
	keepBranchUnit
	keepPullRequestUnit
)

type unitRule struct {
	Name   string
	Match  func(cfg Config, head *headState) bool
	Action unitAction
}

// unitRules is evaluated in order and the first matching rule decides.
var unitRules = []unitRule{
	{
		Name: "hidden_closed_branch",
		Match: func(cfg Config, head *headState) bool {
			return cfg.HideClosedBranches && head.Live != nil && !head.Default &&
				head.OpenPR == nil && head.LatestPR != nil
		},
		Action: dropUnit,
	},
	{
		Name: "live_branch",
		Match: func(cfg Config, head *headState) bool {
			return head.Live != nil
		},
		Action: keepBranchUnit,
	},
	{
		Name: "open_pull_request",
		Match: func(cfg Config, head *headState) bool {
			return head.OpenPR != nil
		},
		Action: keepPullRequestUnit,
	},
	{
		Name: "closed_pull_request",
		Match: func(cfg Config, head *headState) bool {
			return head.LatestPR != nil
		},
		Action: dropUnit,
	},
	{
		Name: "orphan_build",
		Match: func(cfg Config, head *headState) bool {
			return true
		},
		Action: dropUnit,
	},
}

func evaluateUnitRules(cfg Config, head *headState) unitRule {
	for _, rule := range unitRules {
		if rule.Match(cfg, head) {
			return rule
		}
	}
	return unitRules[len(unitRules)-1]
}

// buildUnits collects every head label seen in branches, pull requests and
// builds, and turns each into a unit according to unitRules.
func buildUnits(cfg Config, repo *model.Repository, up *model.Upstream, builds map[string]*model.Build, site *model.SiteModel) []*model.PublishableUnit {
	heads := make(map[string]*headState)
	head := func(owner, branch string) *headState {
		label := model.Label(owner, branch)
		if h, ok := heads[label]; ok {
			return h
		}
		h := &headState{Owner: owner, Branch: branch, Fork: owner != repo.Owner}
		heads[label] = h
		return h
	}

	for _, branch := range up.Branches {
		if branch == nil {
			continue
		}
		if err := branch.Validate(); err != nil {
			site.Warn("branch", "%s", err.Error())
			continue
		}
		h := head(repo.Owner, branch.Name)
		h.Live = branch
		h.Default = branch.IsDefault || branch.Name == repo.DefaultBranch
	}

	for _, pr := range up.PullRequests {
		if pr == nil {
			continue
		}
		if err := pr.Validate(); err != nil {
			site.Warn("pull_request:"+strconv.Itoa(pr.Number), "%s", err.Error())
			continue
		}

		h := head(pr.HeadOwner, pr.HeadRef)
		if newerPullRequest(pr, h.LatestPR) {
			h.LatestPR = pr
		}
		if pr.IsOpen() && newerPullRequest(pr, h.OpenPR) {
			h.OpenPR = pr
		}
	}

	for label, build := range builds {
		owner, branch := model.SplitLabel(label)
		head(owner, branch).Build = build
	}

	labels := make([]string, 0, len(heads))
	for label := range heads {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var units []*model.PublishableUnit
	for _, label := range labels {
		h := heads[label]
		rule := evaluateUnitRules(cfg, h)

		var unit *model.PublishableUnit
		switch rule.Action {
		case keepBranchUnit:
			unit = &model.PublishableUnit{
				Name:      h.Live.Name,
				Owner:     h.Owner,
				Branch:    h.Branch,
				IsDefault: h.Default,
			}
		case keepPullRequestUnit:
			unit = &model.PublishableUnit{
				Name:   h.Branch,
				Owner:  h.Owner,
				Branch: h.Branch,
				IsFork: h.Fork,
			}
			if h.Fork {
				unit.Name = label
			}
		default:
			continue
		}

		unit.PullRequest = h.OpenPR
		unit.Build = h.Build
		units = append(units, unit)
	}

	resolveDefault(repo, units, site)
	return units
}

// resolveDefault keeps at most one default unit, preferring the
// repository's default branch name.
func resolveDefault(repo *model.Repository, units []*model.PublishableUnit, site *model.SiteModel) {
	var keep *model.PublishableUnit
	for _, unit := range units {
		if !unit.IsDefault {
			continue
		}
		if keep == nil || (unit.Name == repo.DefaultBranch && keep.Name != repo.DefaultBranch) {
			keep = unit
		}
	}

	for _, unit := range units {
		if unit.IsDefault && unit != keep {
			site.Warn("branch:"+unit.Name, "more than one default branch, keeping %q", keep.Name)
			unit.IsDefault = false
		}
	}
}

func newerPullRequest(pr, current *model.PullRequest) bool {
	if current == nil {
		return true
	}
	if !pr.UpdatedAt.Equal(current.UpdatedAt) {
		return pr.UpdatedAt.After(current.UpdatedAt)
	}
	return pr.Number > current.Number
}
