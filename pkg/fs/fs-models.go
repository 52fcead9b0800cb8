// Package fs provides filesystem primitives for staging directory trees.
package fs

import (
	"io/fs"
)

// Pather is something with a path.
type Pather interface {
	// Path returns the path of the instance.
	Path() string
}

// A PathedFS provides access to a hierarchical file system locatable at some path.
type PathedFS interface {
	fs.FS
	Pather
}

// ReadLinkFS is the interface implemented by a file system that supports symbolic links.
type ReadLinkFS interface {
	PathedFS

	// ReadLink returns the destination of the named symbolic link.
	ReadLink(name string) (string, error)

	// StatLink returns a [fs.FileInfo] describing the file without following any symbolic links.
	// If there is an error, it should be of type [*fs.PathError].
	StatLink(name string) (fs.FileInfo, error)
}

// EntryKind identifies the type of a file tree entry.
type EntryKind string

const (
	EntryKindDir     EntryKind = "directory"
	EntryKindFile    EntryKind = "file"
	EntryKindSymlink EntryKind = "symlink"
	EntryKindOther   EntryKind = "special file"
)

// KindOf returns the EntryKind corresponding to the type bits of mode.
func KindOf(mode fs.FileMode) EntryKind {
	switch {
	case mode.IsDir():
		return EntryKindDir
	case mode&fs.ModeSymlink != 0:
		return EntryKindSymlink
	case mode.IsRegular():
		return EntryKindFile
	default:
		return EntryKindOther
	}
}
