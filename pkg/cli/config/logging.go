package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
)

// Logging is the global log setup shared by every command.
type Logging struct {
	level  string
	format string
	output string
	debug  bool
}

func (x *Logging) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level [debug|info|warn|error]",
			Aliases:     []string{"l"},
			Sources:     cli.EnvVars("OCTOPAGES_LOG_LEVEL"),
			Destination: &x.level,
			Value:       "info",
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format [text|json]",
			Aliases:     []string{"f"},
			Sources:     cli.EnvVars("OCTOPAGES_LOG_FORMAT"),
			Destination: &x.format,
			Value:       "text",
		},
		&cli.StringFlag{
			Name:        "log-output",
			Usage:       "Log output [-|stdout|stderr|<file>]",
			Aliases:     []string{"o"},
			Sources:     cli.EnvVars("OCTOPAGES_LOG_OUTPUT"),
			Destination: &x.output,
			Value:       "-",
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "Same as --log-level debug",
			Sources:     cli.EnvVars("DEBUG"),
			Destination: &x.debug,
		},
	}
}

// Level is the effective level. --debug wins over --log-level.
func (x *Logging) Level() string {
	if x.debug {
		return "debug"
	}
	return x.level
}

func (x *Logging) Format() string { return x.format }
func (x *Logging) Output() string { return x.output }

func (x *Logging) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("Level", x.Level()),
		slog.String("Format", x.format),
		slog.String("Output", x.output),
	)
}
