package cli

import (
	"context"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/octopages/pkg/cli/config"
	"github.com/m-mizutani/octopages/pkg/utils/errutil"
	"github.com/m-mizutani/octopages/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// ConfigureLogging is exported for testing purposes
var ConfigureLogging = logging.Configure

type CLI struct {
}

func New() *CLI {
	return &CLI{}
}

func (x *CLI) Run(argv []string) error {
	var logCfg config.Logging

	app := &cli.Command{
		Name:  "octopages",
		Usage: "Assemble a GitHub Pages site from branch, pull request and release builds",
		Flags: logCfg.Flags(),
		Commands: []*cli.Command{
			assembleCommand(),
			serveCommand(),
			cacheCommand(),
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, ConfigureLogging(logCfg.Format(), logCfg.Level(), logCfg.Output())
		},
	}

	err := app.Run(context.Background(), argv)
	if err == nil {
		return nil
	}

	// Configuration mistakes also show up in the workflow summary.
	errutil.Annotate(os.Stdout, err)
	errutil.HandleError(context.Background(), "fatal error", err)
	sentry.Flush(2 * time.Second)
	return err
}
