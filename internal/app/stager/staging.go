// Package stager implements staging of an input directory tree into an output directory tree, the
// core contract of an application run by a workflow orchestration platform.
package stager

import (
	"io/fs"
	"os"
	"time"

	"github.com/docker/go-units"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	sfs "github.com/pennsieve/stager/pkg/fs"
)

// Stage copies the input tree of cfg into its output tree, after reading the resource file (if
// any) for informational purposes. The returned Report describes whatever was done, even if an
// error occurred.
//
// Stage fails with a [*ConfigError] for an invalid cfg and with a [*MissingInputError] if the input
// root doesn't exist; in both cases nothing is written. Errors while copying are not rolled back,
// so they may leave a partially-copied output tree. An unreadable resource file is logged and
// otherwise ignored.
func Stage(cfg Config, log logrus.FieldLogger) (report Report, err error) {
	report = Report{
		InputDir:     cfg.InputDir,
		OutputDir:    cfg.OutputDir,
		ResourcesDir: cfg.ResourcesDir,
		Started:      time.Now(),
	}
	defer func() {
		report.Finished = time.Now()
		if err != nil {
			report.Error = err.Error()
		}
	}()

	if err = cfg.Validate(); err != nil {
		return report, err
	}
	log = log.WithFields(logrus.Fields{
		"input":  cfg.InputDir,
		"output": cfg.OutputDir,
	})
	if err = checkInputDir(cfg.InputDir); err != nil {
		return report, err
	}

	log.Info("start of processing")
	if cfg.ResourcesDir != "" {
		report.Resource = readResource(cfg, log)
	}

	stats, err := sfs.CopyFS(sfs.DirFS(cfg.InputDir), cfg.OutputDir, sfs.CopyOptions{
		Exclude: cfg.Exclude,
		OnCopy: func(entry sfs.CopiedEntry) {
			log.WithFields(logrus.Fields{
				"path": entry.Path,
				"kind": entry.Kind,
			}).Debug("copied")
		},
	})
	report.Dirs = stats.Dirs
	report.Files = stats.Files
	report.Symlinks = stats.Symlinks
	report.Bytes = stats.Bytes
	report.Skipped = stats.Skipped
	if err != nil {
		return report, errors.Wrapf(err, "couldn't copy %s to %s", cfg.InputDir, cfg.OutputDir)
	}

	for _, skipped := range stats.Skipped {
		log.WithField("path", skipped).Info("skipped")
	}
	log.WithFields(logrus.Fields{
		"dirs":     stats.Dirs,
		"files":    stats.Files,
		"symlinks": stats.Symlinks,
		"size":     units.HumanSize(float64(stats.Bytes)),
	}).Info("end of processing")
	return report, nil
}

func checkInputDir(inputDir string) error {
	info, err := os.Stat(inputDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &MissingInputError{Path: inputDir, Err: err}
	case err != nil:
		return errors.Wrapf(err, "couldn't stat input directory %s", inputDir)
	case !info.IsDir():
		return &MissingInputError{Path: inputDir}
	}
	return nil
}

func readResource(cfg Config, log logrus.FieldLogger) *Resource {
	log = log.WithField("resources", cfg.ResourcesDir)
	res, err := ReadResource(cfg.ResourcesDir, cfg.ResourceFile)
	if err != nil {
		log.WithError(err).Warn("couldn't read resource file, continuing without it")
		return &res
	}
	if !res.Present {
		log.WithField("path", res.Path).Info("no resource file found")
		return &res
	}
	log.WithFields(logrus.Fields{
		"path": res.Path,
		"size": units.HumanSize(float64(res.Size)),
	}).Info("read resource file")
	return &res
}
