package run

import (
	"io"
	"os"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/pennsieve/stager/internal/app/stager"
	scli "github.com/pennsieve/stager/internal/clients/cli"
	sfs "github.com/pennsieve/stager/pkg/fs"
)

// MakeAction makes the action which loads the configuration, prints diagnostics, and stages the
// input directory.
func MakeAction(logger *logrus.Logger) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := stager.LoadConfig()
		if err != nil {
			return err
		}
		cfg = applyFlags(c, cfg)

		out := c.App.Writer
		quiet := c.Bool("quiet")
		if !quiet {
			if err = printDiagnostics(out, cfg, logger); err != nil {
				return err
			}
		}

		report, stageErr := stager.Stage(cfg, logger)
		if reportPath := c.String("report"); reportPath != "" {
			if err = report.Write(reportPath); err != nil {
				if stageErr != nil {
					logger.WithError(err).Error("couldn't save staging report")
					return stageErr
				}
				return err
			}
		}
		if stageErr != nil {
			return stageErr
		}
		if !quiet {
			scli.IndentedFprintln(0, out, "Staging report:")
			if err = scli.IndentedFprintYaml(1, out, report); err != nil {
				return err
			}
		}
		return nil
	}
}

func applyFlags(c *cli.Context, cfg stager.Config) stager.Config {
	if c.IsSet("input") {
		cfg.InputDir = c.String("input")
	}
	if c.IsSet("output") {
		cfg.OutputDir = c.String("output")
	}
	if c.IsSet("resources") {
		cfg.ResourcesDir = c.String("resources")
	}
	if c.IsSet("resource-file") {
		cfg.ResourceFile = c.String("resource-file")
	}
	if c.IsSet("exclude") {
		cfg.Exclude = c.StringSlice("exclude")
	}
	return cfg
}

// printDiagnostics prints the arguments, environment, configuration, resources listing, and resource
// file. Problems with the resources are logged rather than returned, since they must not prevent
// staging.
func printDiagnostics(out io.Writer, cfg stager.Config, logger logrus.FieldLogger) error {
	scli.IndentedFprintln(0, out, "Command line arguments:")
	for _, arg := range os.Args {
		scli.BulletedFprintln(1, out, arg)
	}

	scli.IndentedFprintln(0, out, "Environment variables:")
	env := os.Environ()
	slices.Sort(env)
	for _, v := range env {
		scli.BulletedFprintln(1, out, v)
	}

	scli.IndentedFprintln(0, out, "Configuration:")
	if err := scli.IndentedFprintYaml(1, out, cfg); err != nil {
		return err
	}

	if cfg.ResourcesDir == "" {
		return nil
	}
	scli.IndentedFprintln(0, out, "Resources:")
	if !sfs.DirExists(cfg.ResourcesDir) {
		scli.IndentedFprintf(1, out, "%s doesn't exist\n", cfg.ResourcesDir)
		return nil
	}
	if err := scli.FprintTree(1, out, sfs.DirFS(cfg.ResourcesDir)); err != nil {
		logger.WithError(err).WithField("resources", cfg.ResourcesDir).Warn(
			"couldn't list resources directory",
		)
	}

	// the resource file is shown before copying; Stage reads it again to log and report it
	res, err := stager.ReadResource(cfg.ResourcesDir, cfg.ResourceFile)
	if err != nil {
		// Stage logs this error itself
		return nil
	}
	printResource(out, res)
	return nil
}

func printResource(out io.Writer, res stager.Resource) {
	if !res.Present || res.Content == nil {
		return
	}
	scli.IndentedFprintf(0, out, "Resource file %s:\n", res.Path)
	if res.IsBinary() {
		scli.IndentedFprintf(1, out, "[%d bytes of %s content]\n", res.Size, res.MIME)
		return
	}
	w := scli.NewIndentedWriter(1, out)
	_, _ = w.Write(res.Content)
	if len(res.Content) > 0 && res.Content[len(res.Content)-1] != '\n' {
		scli.IndentedFprintln(0, out)
	}
}
