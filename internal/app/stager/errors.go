package stager

import (
	"fmt"

	sfs "github.com/pennsieve/stager/pkg/fs"
)

// A ConfigError reports a missing or invalid configuration value.
type ConfigError struct {
	// Var is the name of the environment variable which provides the value.
	Var    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Var, e.Reason)
}

// A MissingInputError reports that the input root doesn't exist or isn't a directory.
type MissingInputError struct {
	Path string
	Err  error
}

func (e *MissingInputError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("input directory %s is not a directory", e.Path)
	}
	return fmt.Sprintf("input directory %s doesn't exist: %s", e.Path, e.Err)
}

func (e *MissingInputError) Unwrap() error {
	return e.Err
}

// A TypeConflictError reports that an entry in the output tree has a different type than the
// corresponding entry in the input tree.
type TypeConflictError = sfs.TypeConflictError
