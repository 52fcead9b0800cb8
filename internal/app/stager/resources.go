package stager

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
	"github.com/pkg/errors"
)

// A Resource is the well-known resource file of a resources root.
type Resource struct {
	// Path is the path where the resource file is expected.
	Path string `yaml:"path"`
	// Present is true if the resource file exists.
	Present bool `yaml:"present"`
	// Size is the size of the resource file in bytes.
	Size int64 `yaml:"size,omitempty"`
	// MIME is the detected media type of binary contents. It's empty for text.
	MIME string `yaml:"mime,omitempty"`
	// Content is the raw contents of the resource file.
	Content []byte `yaml:"-"`
}

// IsBinary checks whether the resource file's contents were recognized as a binary format.
func (r Resource) IsBinary() bool {
	return r.MIME != ""
}

// ReadResource reads the resource file with the specified name (or [DefaultResourceFile] if name
// is empty) from resourcesDir. A missing resources root or a missing resource file is reported as
// a Resource which isn't present, rather than as an error. An error is only returned when the
// resource file exists but couldn't be read; callers are expected to log it and proceed.
func ReadResource(resourcesDir, name string) (Resource, error) {
	if resourcesDir == "" {
		return Resource{}, nil
	}
	if name == "" {
		name = DefaultResourceFile
	}
	r := Resource{Path: filepath.Join(resourcesDir, name)}

	info, err := os.Stat(r.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return r, nil
	case err != nil:
		return r, errors.Wrapf(err, "couldn't stat resource file %s", r.Path)
	}
	r.Present = true
	if info.IsDir() {
		return r, errors.Errorf("resource file %s is a directory", r.Path)
	}

	if r.Content, err = os.ReadFile(r.Path); err != nil {
		return r, errors.Wrapf(err, "couldn't read resource file %s", r.Path)
	}
	r.Size = int64(len(r.Content))
	if len(r.Content) > 0 {
		if kind, err := filetype.Match(r.Content); err == nil && kind != filetype.Unknown {
			r.MIME = kind.MIME.Value
		}
	}
	return r, nil
}
