package stager

import (
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"

	sfs "github.com/pennsieve/stager/pkg/fs"
)

// DefaultResourceFile is the name of the well-known file in the resources root.
const DefaultResourceFile = "static-file.txt"

// Config is the path configuration of a staging run. It is loaded once at process start.
type Config struct {
	// InputDir is the root of the input file tree.
	InputDir string `envconfig:"INPUT_DIR" yaml:"input-dir"`
	// OutputDir is the root which the input file tree is copied into.
	OutputDir string `envconfig:"OUTPUT_DIR" yaml:"output-dir"`
	// ResourcesDir is the optional root of static resources.
	ResourcesDir string `envconfig:"RESOURCES_DIR" yaml:"resources-dir,omitempty"`
	// ResourceFile is the name of the resource file to read from ResourcesDir.
	ResourceFile string `envconfig:"STAGER_RESOURCE_FILE" default:"static-file.txt" yaml:"resource-file"`
	// Exclude is a list of glob patterns of input paths which should not be copied.
	Exclude []string `envconfig:"STAGER_EXCLUDE" yaml:"exclude,omitempty"`
}

// LoadConfig loads the configuration from environment variables. It doesn't validate the result,
// so that values can still be overridden before [Config.Validate] is called.
func LoadConfig() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, errors.Wrap(err, "couldn't load configuration from the environment")
	}
	return c, nil
}

// Validate checks that the required paths are set, that the output root doesn't lie within the
// input root, and that the exclusion patterns are well-formed.
func (c Config) Validate() error {
	if c.InputDir == "" {
		return &ConfigError{Var: "INPUT_DIR", Reason: "is not set"}
	}
	if c.OutputDir == "" {
		return &ConfigError{Var: "OUTPUT_DIR", Reason: "is not set"}
	}

	input, err := filepath.Abs(c.InputDir)
	if err != nil {
		return errors.Wrapf(err, "couldn't resolve input directory %s", c.InputDir)
	}
	output, err := filepath.Abs(c.OutputDir)
	if err != nil {
		return errors.Wrapf(err, "couldn't resolve output directory %s", c.OutputDir)
	}
	if isWithin(input, output) {
		return &ConfigError{
			Var:    "OUTPUT_DIR",
			Reason: "must not be the input directory or lie inside it (" + c.InputDir + ")",
		}
	}

	if err = sfs.ValidatePatterns(c.Exclude); err != nil {
		return &ConfigError{Var: "STAGER_EXCLUDE", Reason: "has " + err.Error()}
	}
	return nil
}

func isWithin(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
