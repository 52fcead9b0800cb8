package inspect

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/pennsieve/stager/internal/app/stager"
	scli "github.com/pennsieve/stager/internal/clients/cli"
	sfs "github.com/pennsieve/stager/pkg/fs"
)

// tree

func treeAction(c *cli.Context) error {
	dirPath := c.Args().First()
	if dirPath == "" {
		cfg, err := stager.LoadConfig()
		if err != nil {
			return err
		}
		if dirPath = cfg.InputDir; dirPath == "" {
			return errors.New("no directory was specified and INPUT_DIR is not set")
		}
	}
	if !sfs.DirExists(dirPath) {
		return errors.Errorf("%s is not a directory", dirPath)
	}
	return scli.FprintTree(0, c.App.Writer, sfs.DirFS(dirPath))
}

// resource

func resourceAction(c *cli.Context) error {
	cfg, err := stager.LoadConfig()
	if err != nil {
		return err
	}
	if c.IsSet("resources") {
		cfg.ResourcesDir = c.String("resources")
	}
	if cfg.ResourcesDir == "" {
		return errors.New("RESOURCES_DIR is not set")
	}

	res, err := stager.ReadResource(cfg.ResourcesDir, cfg.ResourceFile)
	if err != nil {
		return err
	}
	if !res.Present {
		return errors.Errorf("resource file %s doesn't exist", res.Path)
	}
	if res.IsBinary() {
		return errors.Errorf("resource file %s has binary (%s) content", res.Path, res.MIME)
	}
	_, _ = fmt.Fprint(c.App.Writer, string(res.Content))
	return nil
}

// report

func reportAction(c *cli.Context) error {
	reportPath := c.Args().First()
	if reportPath == "" {
		return errors.New("a report path is required")
	}
	report, err := stager.LoadReport(reportPath)
	if err != nil {
		return err
	}
	return scli.IndentedFprintYaml(0, c.App.Writer, report)
}
