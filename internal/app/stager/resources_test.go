package stager

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadResourceAbsent(t *testing.T) {
	t.Parallel()
	base := t.TempDir()

	res, err := ReadResource("", "")
	require.NoError(t, err)
	require.False(t, res.Present)

	res, err = ReadResource(filepath.Join(base, "missing"), "")
	require.NoError(t, err)
	require.False(t, res.Present)
	require.Equal(t, filepath.Join(base, "missing", DefaultResourceFile), res.Path)

	res, err = ReadResource(base, "")
	require.NoError(t, err)
	require.False(t, res.Present)
}

func TestReadResourceText(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(base, DefaultResourceFile), []byte("static content\n"), 0o644,
	))

	res, err := ReadResource(base, "")
	require.NoError(t, err)
	require.True(t, res.Present)
	require.False(t, res.IsBinary())
	require.Equal(t, int64(15), res.Size)
	require.Equal(t, "static content\n", string(res.Content))
}

func TestReadResourceBinary(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	require.NoError(t, os.WriteFile(filepath.Join(base, "logo.png"), png, 0o644))

	res, err := ReadResource(base, "logo.png")
	require.NoError(t, err)
	require.True(t, res.Present)
	require.True(t, res.IsBinary())
	require.Equal(t, "image/png", res.MIME)
}

func TestReadResourceUnreadable(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, DefaultResourceFile), 0o755))

	res, err := ReadResource(base, "")
	require.Error(t, err)
	require.True(t, res.Present)
	require.Nil(t, res.Content)
}
