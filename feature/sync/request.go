package sync

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRequest is returned for requests missing a directory or bucket.
var ErrInvalidRequest = errors.New("sync: invalid request")

// Request describes one pass.
type Request struct {
	// LocalDir is the local root.
	LocalDir string `json:"local_dir"`
	// Bucket is the remote bucket.
	Bucket string `json:"bucket"`
	// Prefix is the remote directory. Surrounding slashes are ignored.
	Prefix string `json:"prefix"`
	// DeleteMissing removes destination keys absent from the source.
	DeleteMissing bool `json:"delete_missing"`
	// DryRun reports mutating actions without performing them.
	DryRun bool `json:"dry_run"`
}

// Validate checks the required fields.
func (r Request) Validate() error {
	if r.LocalDir == "" {
		return fmt.Errorf("%w: local directory is required", ErrInvalidRequest)
	}
	if r.Bucket == "" {
		return fmt.Errorf("%w: bucket is required", ErrInvalidRequest)
	}
	return nil
}

// NormalizePrefix turns a remote directory into a key prefix: surrounding
// slashes are trimmed and one trailing slash is added. Empty stays empty.
func NormalizePrefix(prefix string) string {
	p := strings.Trim(prefix, "/")
	if p == "" {
		return ""
	}
	return p + "/"
}
