package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"bucket-sync/core/storage"
)

// RemoteEntry is an object found under the remote prefix.
type RemoteEntry struct {
	// Key is the object key with the prefix stripped.
	Key string `json:"key"`
	// ETag is the quote-stripped entity tag.
	ETag string `json:"etag"`
	// Size is the object size in bytes.
	Size int64 `json:"size"`
	// LastModified is informational only and never drives a decision.
	LastModified time.Time `json:"last_modified"`
}

// Remote lists every object under prefix and keys it by relative key.
func Remote(ctx context.Context, client storage.Client, bucket, prefix string) (map[string]RemoteEntry, error) {
	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	entries := make(map[string]RemoteEntry)
	for obj := range client.ListObjects(listCtx, bucket, prefix) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s/%s: %w", bucket, prefix, obj.Err)
		}

		key := strings.TrimPrefix(obj.Key, prefix)
		if key == "" {
			continue
		}

		entries[key] = RemoteEntry{
			Key:          key,
			ETag:         obj.ETag,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		}
	}

	// The channel also closes on cancellation, which leaves the view partial.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("listing %s/%s interrupted: %w", bucket, prefix, err)
	}

	return entries, nil
}

// SortedKeys returns the keys of a remote inventory in lexical order.
func SortedKeys(entries map[string]RemoteEntry) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
