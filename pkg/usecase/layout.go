package usecase

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octopages/pkg/domain/model"
	"github.com/m-mizutani/octopages/pkg/domain/types"
)

const branchesDir = "branches"

func sanitizeSegment(segment string) string {
	var b strings.Builder
	for _, r := range segment {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// unitPath maps a unit to its directory below branches/, one sanitized
// segment for the owner and one per branch name component.
func unitPath(owner, branch string) (string, error) {
	segments := append([]string{owner}, strings.Split(branch, "/")...)

	for i, segment := range segments {
		switch segment {
		case "", ".", "..":
			return "", goerr.Wrap(types.ErrFilesystem, "unit name cannot be used as a directory",
				goerr.V("owner", owner),
				goerr.V("branch", branch),
			)
		}
		segments[i] = sanitizeSegment(segment)
	}

	return strings.Join(segments, "/"), nil
}

type unitJob struct {
	Unit *model.PublishableUnit
	Path string
}

// planUnits assigns a directory to every unit with a downloadable build.
// Two units sharing a directory, or one nested in another's, is fatal.
func planUnits(units []*model.PublishableUnit) ([]*unitJob, error) {
	var jobs []*unitJob
	owners := make(map[string]*model.PublishableUnit)

	for _, unit := range units {
		if !unit.Build.Available() {
			continue
		}

		p, err := unitPath(unit.Owner, unit.Branch)
		if err != nil {
			return nil, err
		}

		for other, otherUnit := range owners {
			if other == p || strings.HasPrefix(other, p+"/") || strings.HasPrefix(p, other+"/") {
				return nil, goerr.Wrap(types.ErrFilesystem, "units map to overlapping directories",
					goerr.V("unit", unit.Name),
					goerr.V("other", otherUnit.Name),
					goerr.V("path", p),
					goerr.V("other_path", other),
				)
			}
		}

		owners[p] = unit
		jobs = append(jobs, &unitJob{Unit: unit, Path: p})
	}

	return jobs, nil
}
