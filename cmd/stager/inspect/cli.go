// Package inspect provides subcommands for examining directories, resources, and staging reports
package inspect

import (
	"github.com/urfave/cli/v2"
)

var Cmd = &cli.Command{
	Name:  "inspect",
	Usage: "Examines directories, resources, and staging reports",
	Subcommands: []*cli.Command{
		{
			Name:      "tree",
			Aliases:   []string{"ls"},
			Usage:     "Lists the files in a directory, or in INPUT_DIR if no directory is given",
			ArgsUsage: "[dir_path]",
			Action:    treeAction,
		},
		{
			Name:  "resource",
			Usage: "Prints the resource file of the resources directory",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "resources",
					Usage: "Path of the static resources directory (overrides RESOURCES_DIR)",
				},
			},
			Action: resourceAction,
		},
		{
			Name:      "report",
			Usage:     "Prints a staging report saved by the run subcommand",
			ArgsUsage: "report_path",
			Action:    reportAction,
		},
	},
}
