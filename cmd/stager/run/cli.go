// Package run provides the subcommand which stages the input directory into the output directory
package run

import (
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// Flags are the flags of the run subcommand. They're also used by the root command, which runs the
// same action when no subcommand is specified.
var Flags = []cli.Flag{
	&cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "Path of the input directory (overrides INPUT_DIR)",
	},
	&cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Path of the output directory (overrides OUTPUT_DIR)",
	},
	&cli.StringFlag{
		Name:  "resources",
		Usage: "Path of the static resources directory (overrides RESOURCES_DIR)",
	},
	&cli.StringFlag{
		Name:  "resource-file",
		Usage: "Name of the resource file in the resources directory (overrides STAGER_RESOURCE_FILE)",
	},
	&cli.StringSliceFlag{
		Name:  "exclude",
		Usage: "Glob pattern of input paths which should not be copied (overrides STAGER_EXCLUDE)",
	},
	&cli.StringFlag{
		Name:  "report",
		Usage: "Path to save a YAML report of the staging run at",
	},
	&cli.BoolFlag{
		Name:    "quiet",
		Aliases: []string{"q"},
		Usage:   "Don't print diagnostics (arguments, environment, resources) before staging",
	},
}

func MakeCmd(logger *logrus.Logger) *cli.Command {
	return &cli.Command{
		Name:    "run",
		Aliases: []string{"stage"},
		Usage:   "Copies the input directory tree into the output directory",
		Flags:   Flags,
		Action:  MakeAction(logger),
	}
}
