package cli

import (
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/docker/go-units"
	"github.com/pkg/errors"

	sfs "github.com/pennsieve/stager/pkg/fs"
)

// FprintTree prints every entry under the root of fsys as an indented listing, one entry per line.
// Directories are suffixed with "/", symlinks show their targets, and regular files show their
// sizes. An entry which can't be read is marked in the listing and skipped; only a failure to read
// the root is returned as an error.
func FprintTree(indent int, w io.Writer, fsys sfs.PathedFS) error {
	IndentedFprintln(indent, w, filepath.Base(fsys.Path())+"/")
	return fs.WalkDir(fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil && filePath == "." {
			return errors.Wrapf(err, "couldn't list %s", fsys.Path())
		}
		if filePath == "." {
			return nil
		}

		level := indent + 1 + strings.Count(filePath, "/")
		if err != nil {
			// for a directory, WalkDir reports a failed ReadDir after the directory itself was listed
			IndentedFprintf(level+1, w, "[couldn't read: %s]\n", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		switch sfs.KindOf(d.Type()) {
		case sfs.EntryKindDir:
			IndentedFprintln(level, w, d.Name()+"/")
		case sfs.EntryKindSymlink:
			target, err := sfs.ReadLink(fsys, filePath)
			if err != nil {
				IndentedFprintf(level, w, "%s -> [couldn't read: %s]\n", d.Name(), err)
				return nil
			}
			IndentedFprintf(level, w, "%s -> %s\n", d.Name(), target)
		case sfs.EntryKindFile:
			info, err := d.Info()
			if err != nil {
				IndentedFprintf(level, w, "%s [couldn't read: %s]\n", d.Name(), err)
				return nil
			}
			IndentedFprintf(level, w, "%s (%s)\n", d.Name(), units.HumanSize(float64(info.Size())))
		default:
			IndentedFprintln(level, w, d.Name())
		}
		return nil
	})
}
