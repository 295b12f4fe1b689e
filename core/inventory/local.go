package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrDirectoryNotFound indicates the local root is missing or not a directory.
var ErrDirectoryNotFound = errors.New("inventory: directory not found")

// LocalEntry is a regular file found under the local root.
type LocalEntry struct {
	// Key is the forward-slash path relative to the root.
	Key string `json:"key"`
	// Path is the file path on the local filesystem.
	Path string `json:"path"`
	// Size is the size reported by the walk.
	Size int64 `json:"size"`
}

// CheckDir returns ErrDirectoryNotFound unless root is an existing directory.
func CheckDir(fs afero.Fs, root string) error {
	info, err := fs.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", root, ErrDirectoryNotFound)
		}
		return fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory: %w", root, ErrDirectoryNotFound)
	}
	return nil
}

// Local enumerates the regular files under root. A symlinked root is
// followed; symlinks and special files inside the tree are skipped.
func Local(fs afero.Fs, root string) ([]LocalEntry, error) {
	if err := CheckDir(fs, root); err != nil {
		return nil, err
	}

	var entries []LocalEntry
	err := afero.Walk(fs, walkRoot(fs, root), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", path, err)
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}

		entries = append(entries, LocalEntry{
			Key:  filepath.ToSlash(rel),
			Path: path,
			Size: info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// walkRoot returns root with a trailing separator when root itself is a
// symlink. Walk lstats its root, and the separator makes that resolve to the
// target directory. Keys stay relative to root either way.
func walkRoot(fs afero.Fs, root string) string {
	lstater, ok := fs.(afero.Lstater)
	if !ok {
		return root
	}
	info, lstatCalled, err := lstater.LstatIfPossible(root)
	if err != nil || !lstatCalled || info.Mode()&os.ModeSymlink == 0 {
		return root
	}
	return root + string(filepath.Separator)
}

// IndexLocal maps local entries by key.
func IndexLocal(entries []LocalEntry) map[string]LocalEntry {
	index := make(map[string]LocalEntry, len(entries))
	for _, e := range entries {
		index[e.Key] = e
	}
	return index
}

// LocalPath joins a relative key onto root using the host separator.
func LocalPath(root, key string) string {
	return filepath.Join(root, filepath.FromSlash(key))
}
