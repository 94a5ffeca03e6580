package usecase_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/octopages/pkg/domain/model"
	"github.com/m-mizutani/octopages/pkg/domain/types"
	"github.com/m-mizutani/octopages/pkg/usecase"
)

func TestUnitPath(t *testing.T) {
	testCases := []struct {
		owner, branch string
		expected      string
	}{
		{"octo", "main", "octo/main"},
		{"octo", "feature/new-ui", "octo/feature/new-ui"},
		{"alice", "fix#12 (wip)", "alice/fix_12__wip_"},
		{"octo", "release/v1.2", "octo/release/v1.2"},
		{"octo", "日本語", "octo/___"},
	}

	for _, tc := range testCases {
		t.Run(tc.branch, func(t *testing.T) {
			got, err := usecase.UnitPathForTest(tc.owner, tc.branch)
			gt.NoError(t, err)
			gt.V(t, got).Equal(tc.expected)
		})
	}

	for _, branch := range []string{"..", "a/../b", "a//b", "./x", ""} {
		_, err := usecase.UnitPathForTest("octo", branch)
		gt.True(t, errors.Is(err, types.ErrFilesystem))
	}
}

func builtUnit(owner, branch string) *model.PublishableUnit {
	return &model.PublishableUnit{
		Name:   branch,
		Owner:  owner,
		Branch: branch,
		Build: &model.Build{
			WorkflowRun: &model.WorkflowRun{ID: 1},
			Artifact:    &model.Artifact{ID: 1, Name: "web"},
		},
	}
}

func TestPlanUnits(t *testing.T) {
	t.Run("assigns paths to downloadable units", func(t *testing.T) {
		expired := builtUnit("octo", "old")
		expired.Build.Artifact.Expired = true

		jobs, err := usecase.PlanUnitsForTest([]*model.PublishableUnit{
			builtUnit("octo", "main"),
			{Name: "never", Owner: "octo", Branch: "never"},
			expired,
			builtUnit("alice", "main"),
		})
		gt.NoError(t, err)
		gt.V(t, len(jobs)).Equal(2)
		gt.V(t, jobs[0].Path).Equal("octo/main")
		gt.V(t, jobs[1].Path).Equal("alice/main")
	})

	t.Run("sanitized names collide", func(t *testing.T) {
		_, err := usecase.PlanUnitsForTest([]*model.PublishableUnit{
			builtUnit("octo", "fix a"),
			builtUnit("octo", "fix:a"),
		})
		gt.True(t, errors.Is(err, types.ErrFilesystem))
	})

	t.Run("nested directories collide", func(t *testing.T) {
		_, err := usecase.PlanUnitsForTest([]*model.PublishableUnit{
			builtUnit("octo", "feature"),
			builtUnit("octo", "feature/x"),
		})
		gt.True(t, errors.Is(err, types.ErrFilesystem))
	})

	t.Run("collision among unbuilt units is ignored", func(t *testing.T) {
		jobs, err := usecase.PlanUnitsForTest([]*model.PublishableUnit{
			{Name: "fix a", Owner: "octo", Branch: "fix a"},
			builtUnit("octo", "fix_a"),
		})
		gt.NoError(t, err)
		gt.V(t, len(jobs)).Equal(1)
	})
}
