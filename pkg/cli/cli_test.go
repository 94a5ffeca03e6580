package cli_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/octopages/pkg/cli"
	"github.com/m-mizutani/octopages/pkg/domain/types"
)

func TestRun(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("OCTOPAGES_GITHUB_TOKEN", "")

	t.Run("debug flag forces debug level", func(t *testing.T) {
		var level string
		orig := cli.ConfigureLogging
		cli.ConfigureLogging = func(format, lvl, output string) error {
			level = lvl
			return nil
		}
		defer func() { cli.ConfigureLogging = orig }()

		gt.NoError(t, cli.New().Run([]string{"octopages", "--debug", "cache", "prune", "--cache-backend", "memory"}))
		gt.V(t, level).Equal("debug")
	})

	t.Run("prune a sqlite cache", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "http.db")
		gt.NoError(t, cli.New().Run([]string{"octopages", "cache", "prune", "--cache-path", dbPath, "--older-than", "1h"}))
	})

	t.Run("prune without a cache backend", func(t *testing.T) {
		err := cli.New().Run([]string{"octopages", "cache", "prune", "--cache-backend", "none"})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrConfiguration))
	})

	t.Run("assemble without credentials", func(t *testing.T) {
		err := cli.New().Run([]string{"octopages", "assemble",
			"--repository", "octo/game",
			"--workflow-name", "Export",
			"--artifact-name", "web",
			"--cache-backend", "none",
			"--output", t.TempDir(),
		})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrConfiguration))
	})

	t.Run("assemble requires a workflow name", func(t *testing.T) {
		err := cli.New().Run([]string{"octopages", "assemble", "--repository", "octo/game", "--artifact-name", "web"})
		gt.Error(t, err)
	})

	t.Run("serve requires an assembled directory", func(t *testing.T) {
		err := cli.New().Run([]string{"octopages", "serve", "--dir", filepath.Join(t.TempDir(), "missing")})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrConfiguration))
	})
}
