package fs

import (
	"fmt"
)

// A TypeConflictError reports that a destination path already holds an entry whose type is
// incompatible with the source entry being copied to it. Directories never replace non-directories
// and vice versa.
type TypeConflictError struct {
	Path   string
	Source EntryKind
	Dest   EntryKind
}

func (e *TypeConflictError) Error() string {
	return fmt.Sprintf(
		"couldn't copy %s to %s: a %s already exists there", e.Source, e.Path, e.Dest,
	)
}
