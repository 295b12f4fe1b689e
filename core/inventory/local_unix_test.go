//go:build unix

package inventory_test

import (
	"path/filepath"
	"syscall"
	"testing"

	"bucket-sync/core/inventory"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_SkipsNamedPipes(t *testing.T) {
	root := t.TempDir()
	writeOsFile(t, filepath.Join(root, "index.html"), "<html>")
	require.NoError(t, syscall.Mkfifo(filepath.Join(root, "queue"), 0o644))

	entries, err := inventory.Local(afero.NewOsFs(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{"index.html"}, keysOf(entries))
}
