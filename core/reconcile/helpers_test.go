package reconcile_test

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"testing"

	"bucket-sync/core/inventory"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// failingFs refuses to open one path.
type failingFs struct {
	afero.Fs
	bad string
}

func (f failingFs) Open(name string) (afero.File, error) {
	if name == f.bad {
		return nil, errors.New("permission denied")
	}
	return f.Fs.Open(name)
}

func md5Hex(data string) string {
	sum := md5.Sum([]byte(data))
	return hex.EncodeToString(sum[:])
}

// tree writes files under /site and returns the walked inventory.
func tree(t *testing.T, fs afero.Fs, files map[string]string) []inventory.LocalEntry {
	t.Helper()
	require.NoError(t, fs.MkdirAll("/site", 0o755))
	for key, content := range files {
		require.NoError(t, afero.WriteFile(fs, "/site/"+key, []byte(content), 0o644))
	}
	local, err := inventory.Local(fs, "/site")
	require.NoError(t, err)
	return local
}

func remoteOf(files map[string]string) map[string]inventory.RemoteEntry {
	out := make(map[string]inventory.RemoteEntry, len(files))
	for key, content := range files {
		out[key] = inventory.RemoteEntry{Key: key, ETag: md5Hex(content), Size: int64(len(content))}
	}
	return out
}
