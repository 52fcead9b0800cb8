package main

import (
	"os"
	"runtime/debug"

	"github.com/carlmjohnson/versioninfo"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/pennsieve/stager/cmd/stager/inspect"
	"github.com/pennsieve/stager/cmd/stager/run"
)

func main() {
	if err := app.Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}

var logger = logrus.New()

var app = &cli.App{
	Name:    "stager",
	Version: toolVersion,
	Usage:   "Stages the input directory of a workflow step into its output directory",
	Commands: []*cli.Command{
		run.MakeCmd(logger),
		inspect.Cmd,
	},
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "Minimum level of log messages (trace, debug, info, warn, error)",
			EnvVars: []string{"STAGER_LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "log-format",
			Value:   "text",
			Usage:   "Format of log messages (text or json)",
			EnvVars: []string{"STAGER_LOG_FORMAT"},
		},
	}, run.Flags...),
	Before: func(c *cli.Context) error {
		return configureLogger(logger, c.String("log-level"), c.String("log-format"))
	},
	// Containers built from the template run the stager without arguments
	Action:  run.MakeAction(logger),
	Suggest: true,
}

// configureLogger sets up logger to write to stdout, where the orchestrating platform collects
// diagnostics from.
func configureLogger(logger *logrus.Logger, level, format string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "couldn't parse log level %s", level)
	}
	logger.SetLevel(parsed)
	switch format {
	default:
		return errors.Errorf("unknown log format %s", format)
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.SetOutput(os.Stdout)
	return nil
}

// Versioning

// fallbackVersion is the version which the stager reports itself as if its actual version is
// unknown.
const fallbackVersion = "v0.1.0-dev"

var (
	toolVersion = determineVersion(buildSummary, fallbackVersion)
	// buildSummary should be overridden by ldflags, such as with GoReleaser's "Summary".
	buildSummary = ""
)

// determineVersion returns either a semver, a pseudoversion, or a Git hash based on information
// available from Go's `debug.ReadBuildInfo()`.
func determineVersion(override, fallback string) string {
	if override != "" {
		return override
	}

	const dirtySuffix = "-dirty"
	if info, ok := debug.ReadBuildInfo(); ok &&
		info.Main.Version != "" && info.Main.Version != "(devel)" {
		v := info.Main.Version
		if versioninfo.DirtyBuild {
			v += dirtySuffix
		}
		return v
	}
	if v := versioninfo.Version; v != "unknown" && v != "(devel)" {
		if versioninfo.DirtyBuild {
			v += dirtySuffix
		}
		return v
	}

	if r := versioninfo.Revision; r != "unknown" && r != "" {
		if versioninfo.DirtyBuild {
			r += dirtySuffix
		}
		return r
	}
	return fallback
}
