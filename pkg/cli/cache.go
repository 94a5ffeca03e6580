package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/m-mizutani/octopages/pkg/cli/config"
	"github.com/m-mizutani/octopages/pkg/domain/types"
	"github.com/m-mizutani/octopages/pkg/infra"
	"github.com/m-mizutani/octopages/pkg/usecase"
	"github.com/m-mizutani/octopages/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cacheCommand() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the HTTP response cache",
		Commands: []*cli.Command{
			cachePruneCommand(),
		},
	}
}

func cachePruneCommand() *cli.Command {
	var (
		olderThan time.Duration
		cache     config.Cache
	)

	pruneFlags := []cli.Flag{
		&cli.DurationFlag{
			Name:        "older-than",
			Usage:       "Delete entries stored longer ago than this",
			Sources:     cli.EnvVars("OCTOPAGES_CACHE_RETENTION"),
			Value:       usecase.DefaultCacheRetention,
			Destination: &olderThan,
		},
	}

	return &cli.Command{
		Name:  "prune",
		Usage: "Delete old cache entries",
		Flags: slice.Flatten(pruneFlags, cache.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()
			ctx = logging.With(ctx, logger)

			store, err := cache.New(ctx)
			if err != nil {
				return err
			}
			if store == nil {
				return goerr.Wrap(types.ErrConfiguration, "cache backend is none, nothing to prune")
			}
			defer func() {
				if err := store.Close(); err != nil {
					logger.Warn("failed to close HTTP cache", slog.Any("error", err))
				}
			}()

			uc := usecase.New(infra.New(infra.WithHTTPCache(store)))
			_, err = uc.PruneCache(ctx, olderThan)
			return err
		},
	}
}
