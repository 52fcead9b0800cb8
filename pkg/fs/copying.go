package fs

import (
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

// CopyOptions controls how [CopyFS] copies a file tree.
type CopyOptions struct {
	// Exclude is a list of doublestar glob patterns matched against the slash-separated path of each
	// entry relative to the root of the source FS. A matched directory is skipped with its subtree.
	Exclude []string
	// OnCopy, if non-nil, is called after each entry has been copied.
	OnCopy func(entry CopiedEntry)
}

// A CopiedEntry describes one entry written by [CopyFS].
type CopiedEntry struct {
	// Path is the slash-separated path of the entry relative to the root of the source FS.
	Path string
	Kind EntryKind
	// Size is the number of bytes written, for regular files.
	Size int64
}

// CopyStats summarizes the entries written by [CopyFS].
type CopyStats struct {
	Dirs     int
	Files    int
	Symlinks int
	Bytes    int64
	// Skipped lists the paths which were excluded or which were special files (e.g. sockets, named
	// pipes, or devices), relative to the root of the source FS.
	Skipped []string
}

// ValidatePatterns checks that every pattern is a well-formed doublestar pattern.
func ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid glob pattern %q", pattern)
		}
	}
	return nil
}

// CopyFS recursively copies the tree of fsys into the directory dest, creating dest if it doesn't
// exist. Existing destination files are overwritten; existing destination entries with no
// counterpart in fsys are left alone. A destination entry whose type conflicts with the source
// entry results in a [*TypeConflictError]. Symbolic links are recreated with the same target
// rather than followed, so fsys should be a [ReadLinkFS].
func CopyFS(fsys PathedFS, dest string, opts CopyOptions) (stats CopyStats, err error) {
	if err = ValidatePatterns(opts.Exclude); err != nil {
		return stats, errors.Wrap(err, "couldn't use exclusion patterns")
	}

	err = fs.WalkDir(fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "couldn't walk %s", path.Join(fsys.Path(), filePath))
		}

		if filePath != "." && matchesAny(opts.Exclude, filePath) {
			stats.Skipped = append(stats.Skipped, filePath)
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		destPath := filepath.Join(dest, filepath.FromSlash(filePath))
		entry := CopiedEntry{Path: filePath, Kind: KindOf(d.Type())}
		switch entry.Kind {
		case EntryKindDir:
			fileInfo, err := d.Info()
			if err != nil {
				return errors.Wrapf(err, "couldn't stat %s", path.Join(fsys.Path(), filePath))
			}
			if err = ensureDestDir(destPath, fileInfo.Mode().Perm(), filePath == "."); err != nil {
				return err
			}
			if filePath == "." {
				return nil
			}
			stats.Dirs++
		case EntryKindSymlink:
			if err = copyFSSymlink(fsys, filePath, destPath); err != nil {
				return err
			}
			stats.Symlinks++
		case EntryKindFile:
			if entry.Size, err = CopyFSFile(fsys, filePath, destPath, 0); err != nil {
				return err
			}
			stats.Files++
			stats.Bytes += entry.Size
		default:
			stats.Skipped = append(stats.Skipped, filePath)
			return nil
		}

		if opts.OnCopy != nil {
			opts.OnCopy(entry)
		}
		return nil
	})
	return stats, err
}

func matchesAny(patterns []string, filePath string) bool {
	for _, pattern := range patterns {
		// patterns were already validated, so Match can't fail
		if match, _ := doublestar.Match(pattern, filePath); match {
			return true
		}
	}
	return false
}

// ensureDestDir makes a directory at destPath unless one already exists. The root of a copy may
// itself be a symlink to a directory, so it's checked with symlinks followed.
func ensureDestDir(destPath string, perm fs.FileMode, isRoot bool) error {
	stat := os.Lstat
	if isRoot {
		stat = os.Stat
	}
	info, err := stat(destPath)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return &TypeConflictError{Path: destPath, Source: EntryKindDir, Dest: KindOf(info.Mode())}
	case errors.Is(err, fs.ErrNotExist):
		const ownerRWX = 0o700
		// the owner must be able to write into the directory to fill it
		if err = os.MkdirAll(destPath, perm|ownerRWX); err != nil {
			return errors.Wrapf(err, "couldn't make directory %s", destPath)
		}
		return nil
	default:
		return errors.Wrapf(err, "couldn't stat %s", destPath)
	}
}

// clearDestFile prepares destPath to be overwritten by a non-directory entry of the specified kind.
// Symlinks are removed rather than written through, so that a copy never modifies files outside
// of the destination tree. An existing regular file is kept in place for a regular source file,
// which is reported by kept.
func clearDestFile(destPath string, source EntryKind) (kept bool, err error) {
	info, err := os.Lstat(destPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, errors.Wrapf(err, "couldn't stat %s", destPath)
	case info.IsDir():
		return false, &TypeConflictError{Path: destPath, Source: source, Dest: EntryKindDir}
	case source == EntryKindFile && info.Mode().IsRegular():
		return true, nil
	}
	if err = os.Remove(destPath); err != nil {
		return false, errors.Wrapf(err, "couldn't remove %s to overwrite it", destPath)
	}
	return false, nil
}

// CopyFSFile copies the regular file at sourcePath in fsys to destPath, truncating any existing
// file at destPath. If destPerms is 0, the permissions of the source file are used for a newly
// created file. It returns the number of bytes copied.
func CopyFSFile(
	fsys PathedFS, sourcePath, destPath string, destPerms fs.FileMode,
) (written int64, err error) {
	fullSourcePath := path.Join(fsys.Path(), sourcePath)
	sourceFile, err := fsys.Open(sourcePath)
	if err != nil {
		return 0, errors.Wrapf(err, "couldn't open source file %s for copying", fullSourcePath)
	}
	defer func() {
		_ = sourceFile.Close()
	}()
	sourceInfo, err := sourceFile.Stat()
	if err != nil {
		return 0, errors.Wrapf(err, "couldn't stat source file %s for copying", fullSourcePath)
	}
	if sourceInfo.IsDir() {
		return 0, errors.Errorf("source file %s is a directory", fullSourcePath)
	}

	kept, err := clearDestFile(destPath, EntryKindFile)
	if err != nil {
		return 0, err
	}
	if destPerms == 0 {
		destPerms = sourceInfo.Mode().Perm()
	}
	const flags = os.O_CREATE | os.O_TRUNC | os.O_WRONLY
	destFile, err := os.OpenFile(destPath, flags, destPerms)
	if kept && errors.Is(err, fs.ErrPermission) {
		// a read-only file, e.g. from an earlier copy of a read-only source, is replaced instead
		if rerr := os.Remove(destPath); rerr != nil {
			return 0, errors.Wrapf(
				rerr, "couldn't remove read-only dest file %s to overwrite it", destPath,
			)
		}
		destFile, err = os.OpenFile(destPath, flags, destPerms)
	}
	if err != nil {
		return 0, errors.Wrapf(err, "couldn't open dest file %s for copying", destPath)
	}
	defer func() {
		// write errors such as a full disk may only be reported on close
		if cerr := destFile.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "couldn't close dest file %s", destPath)
		}
	}()

	if written, err = io.Copy(destFile, sourceFile); err != nil {
		return written, errors.Wrapf(err, "couldn't copy %s to %s", fullSourcePath, destPath)
	}
	return written, nil
}

func copyFSSymlink(fsys PathedFS, sourcePath, destPath string) error {
	readLinkFS, ok := fsys.(ReadLinkFS)
	if !ok {
		return errors.Errorf("%s is not a ReadLinkFS!", fsys.Path())
	}

	linkTarget, err := readLinkFS.ReadLink(sourcePath)
	if err != nil {
		return errors.Wrapf(err, "couldn't determine symlink target of %s", sourcePath)
	}
	if _, err = clearDestFile(destPath, EntryKindSymlink); err != nil {
		return err
	}
	if err = os.Symlink(linkTarget, destPath); err != nil {
		return errors.Wrapf(err, "couldn't make symlink %s -> %s", destPath, linkTarget)
	}
	return nil
}
