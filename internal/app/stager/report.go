package stager

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	sfs "github.com/pennsieve/stager/pkg/fs"
)

// A Report summarizes a staging run.
type Report struct {
	InputDir     string    `yaml:"input-dir"`
	OutputDir    string    `yaml:"output-dir"`
	ResourcesDir string    `yaml:"resources-dir,omitempty"`
	Resource     *Resource `yaml:"resource,omitempty"`
	// Dirs is the number of directories copied, not counting the output root.
	Dirs     int      `yaml:"dirs"`
	Files    int      `yaml:"files"`
	Symlinks int      `yaml:"symlinks"`
	Bytes    int64    `yaml:"bytes"`
	Skipped  []string `yaml:"skipped,omitempty"`
	// Error is the message of the error which ended the run, if it failed.
	Error    string    `yaml:"error,omitempty"`
	Started  time.Time `yaml:"started"`
	Finished time.Time `yaml:"finished"`
}

// Write saves the report as a YAML document at outputPath.
func (r Report) Write(outputPath string) error {
	marshaled, err := yaml.Marshal(r)
	if err != nil {
		return errors.Wrap(err, "couldn't marshal staging report")
	}
	if err = sfs.EnsureExists(filepath.Dir(filepath.FromSlash(outputPath))); err != nil {
		return errors.Wrapf(err, "couldn't make directory for staging report %s", outputPath)
	}
	const perm = 0o644 // owner rw, group r, public r
	if err = os.WriteFile(filepath.FromSlash(outputPath), marshaled, perm); err != nil {
		return errors.Wrapf(err, "couldn't save staging report to %s", outputPath)
	}
	return nil
}

// LoadReport loads a report previously saved with [Report.Write].
func LoadReport(filePath string) (Report, error) {
	bytes, err := os.ReadFile(filepath.FromSlash(filePath))
	if err != nil {
		return Report{}, errors.Wrapf(err, "couldn't read staging report %s", filePath)
	}
	var r Report
	if err = yaml.Unmarshal(bytes, &r); err != nil {
		return Report{}, errors.Wrapf(err, "couldn't parse staging report %s", filePath)
	}
	return r, nil
}
