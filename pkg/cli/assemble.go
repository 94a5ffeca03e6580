package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/gots/slice"
	"github.com/m-mizutani/octopages/pkg/cli/config"
	"github.com/m-mizutani/octopages/pkg/infra"
	"github.com/m-mizutani/octopages/pkg/infra/render"
	"github.com/m-mizutani/octopages/pkg/usecase"
	"github.com/m-mizutani/octopages/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func assembleCommand() *cli.Command {
	var (
		site   config.Site
		github config.GitHub
		cache  config.Cache
		sentry config.Sentry
	)

	return &cli.Command{
		Name:    "assemble",
		Aliases: []string{"a"},
		Usage:   "Assemble the site into the output directory",
		Flags: slice.Flatten(
			site.Flags(),
			github.Flags(),
			cache.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			runID, ctx := logging.CtxRequestID(ctx)
			logger := logging.Default().With(slog.Any("run_id", runID))
			ctx = logging.With(ctx, logger)

			logger.Info("starting assemble",
				slog.Any("Site", &site),
				slog.Any("GitHub", &github),
				slog.Any("Cache", &cache),
				slog.Any("Sentry", &sentry),
			)

			if err := sentry.Configure(ctx); err != nil {
				return err
			}

			repo := site.Repository()
			if repo == "" {
				detected, err := DetectRepository(".")
				if err != nil {
					return err
				}
				logger.Info("detected repository from git remote", slog.Any("repository", detected))
				repo = detected
			}

			store, err := cache.New(ctx)
			if err != nil {
				return err
			}
			if store != nil {
				defer func() {
					if err := store.Close(); err != nil {
						logger.Warn("failed to close HTTP cache", slog.Any("error", err))
					}
				}()
			}

			gh, err := github.NewClient(store, cache.TTL())
			if err != nil {
				return err
			}

			renderer, err := render.New()
			if err != nil {
				return err
			}

			options := []infra.Option{
				infra.WithGitHub(gh),
				infra.WithRenderer(renderer),
			}
			if store != nil {
				options = append(options, infra.WithHTTPCache(store))
			}

			uc := usecase.New(infra.New(options...),
				usecase.WithGitHubOutput(site.GitHubOutput()),
			)

			_, err = uc.AssembleSite(ctx, site.Input(repo))
			return err
		},
	}
}
