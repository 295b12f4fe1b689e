package inventory_test

import (
	"testing"

	"bucket-sync/core/inventory"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/site/index.html", []byte("<html>"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/site/a/b/c.txt", []byte("nested"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/site/empty.txt", nil, 0o644))
	require.NoError(t, fs.MkdirAll("/site/hollow", 0o755))

	entries, err := inventory.Local(fs, "/site")
	require.NoError(t, err)

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"a/b/c.txt", "empty.txt", "index.html"}, keys)

	index := inventory.IndexLocal(entries)
	assert.Equal(t, "/site/a/b/c.txt", index["a/b/c.txt"].Path)
	assert.Equal(t, int64(6), index["a/b/c.txt"].Size)
	assert.Equal(t, int64(0), index["empty.txt"].Size)
}

func TestLocal_MissingRoot(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := inventory.Local(fs, "/nowhere")
	assert.ErrorIs(t, err, inventory.ErrDirectoryNotFound)

	require.NoError(t, afero.WriteFile(fs, "/file.txt", []byte("x"), 0o644))
	_, err = inventory.Local(fs, "/file.txt")
	assert.ErrorIs(t, err, inventory.ErrDirectoryNotFound)
}

func TestLocal_EmptyRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/site", 0o755))

	entries, err := inventory.Local(fs, "/site")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalPath(t *testing.T) {
	assert.Equal(t, "/site/a/b.txt", inventory.LocalPath("/site", "a/b.txt"))
}
