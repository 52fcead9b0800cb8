package cli

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	sfs "github.com/pennsieve/stager/pkg/fs"
)

var indentedWriterTests = map[string]struct {
	indent int
	writes []string
	want   string
}{
	"single line": {
		indent: 1,
		writes: []string{"hello\n"},
		want:   "  hello\n",
	},
	"split writes": {
		indent: 2,
		writes: []string{"hel", "lo\nwor", "ld\n"},
		want:   "    hello\n    world\n",
	},
	"carriage return": {
		indent: 1,
		writes: []string{"50%\r100%\n"},
		want:   "  50%\r  100%\n",
	},
	"latin-1": {
		indent: 1,
		writes: []string{"caf\xe9\n"},
		want:   "  caf�\n",
	},
	"no indent": {
		writes: []string{"a\nb"},
		want:   "a\nb",
	},
}

func TestIndentedWriter(t *testing.T) {
	t.Parallel()
	for name, test := range indentedWriterTests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			w := NewIndentedWriter(test.indent, buf)
			for _, s := range test.writes {
				if _, err := w.Write([]byte(s)); err != nil {
					t.Fatal(err)
				}
			}
			if diff := cmp.Diff(test.want, buf.String()); diff != "" {
				t.Errorf("output diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFprintTree(t *testing.T) {
	t.Parallel()
	root := filepath.Join(t.TempDir(), "resources")
	if err := os.MkdirAll(filepath.Join(root, "sub", "deeper"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "static-file.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "sub", "a.bin"), []byte{}, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink("static-file.txt", filepath.Join(root, "link")); err != nil {
		t.Fatal(err)
	}

	buf := &bytes.Buffer{}
	if err := FprintTree(0, buf, sfs.DirFS(root)); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	want := "resources/\n" +
		"  link -> static-file.txt\n" +
		"  static-file.txt (5B)\n" +
		"  sub/\n" +
		"    a.bin (0B)\n" +
		"    deeper/\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output diff (-want +got):\n%s", diff)
	}
}

// unreadableDirFS fails to read the entries of one directory.
type unreadableDirFS struct {
	sfs.ReadLinkFS
	unreadable string
}

func (f unreadableDirFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if name == f.unreadable {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	return fs.ReadDir(f.ReadLinkFS, name)
}

func TestFprintTreeUnreadableDir(t *testing.T) {
	t.Parallel()
	root := filepath.Join(t.TempDir(), "resources")
	if err := os.MkdirAll(filepath.Join(root, "private"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "private", "secret.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "static-file.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	buf := &bytes.Buffer{}
	fsys := unreadableDirFS{ReadLinkFS: sfs.DirFS(root), unreadable: "private"}
	if err := FprintTree(0, buf, fsys); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	want := "resources/\n" +
		"  private/\n" +
		"    [couldn't read: open private: permission denied]\n" +
		"  static-file.txt (5B)\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output diff (-want +got):\n%s", diff)
	}
}

func TestFprintTreeUnreadableRoot(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	fsys := unreadableDirFS{ReadLinkFS: sfs.DirFS(root), unreadable: "."}
	if err := FprintTree(0, &bytes.Buffer{}, fsys); err == nil {
		t.Fatal("expected an error for an unreadable root")
	}
}

func TestIndentedFprintYaml(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	value := struct {
		Name  string   `yaml:"name"`
		Items []string `yaml:"items"`
	}{Name: "report", Items: []string{"a"}}
	if err := IndentedFprintYaml(1, buf, value); err != nil {
		t.Fatal(err)
	}
	want := "  name: report\n  items:\n    - a\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output diff (-want +got):\n%s", diff)
	}
}
