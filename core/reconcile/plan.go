package reconcile

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"bucket-sync/core/fingerprint"
	"bucket-sync/core/inventory"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Inventories are the two views a plan is built from.
type Inventories struct {
	// Root is the local directory the local keys are relative to.
	Root string
	// Local holds the local entries in walk order.
	Local []inventory.LocalEntry
	// Remote holds the complete remote listing.
	Remote map[string]inventory.RemoteEntry
}

// BuildPlan compares the inventories and returns the actions of one pass.
// It fingerprints local files but does NOT mutate anything; use
// Executor.Apply for that. A fingerprint failure becomes an ActionFail for
// that key. Only context cancellation aborts planning.
func BuildPlan(ctx context.Context, fs afero.Fs, inv Inventories, opts Options) (*Plan, error) {
	var (
		actions []Action
		err     error
	)

	dir := opts.direction()
	switch dir {
	case Push:
		actions, err = planPush(ctx, fs, inv, opts)
	case Pull:
		actions, err = planPull(ctx, fs, inv, opts)
	default:
		return nil, fmt.Errorf("unknown sync direction %q", dir)
	}
	if err != nil {
		return nil, err
	}

	if opts.DryRun {
		for i := range actions {
			if actions[i].Mutates() {
				actions[i].DryRun = true
			}
		}
	}

	return &Plan{
		Direction: dir,
		Actions:   actions,
		Summary:   summarize(actions),
	}, nil
}

// planPush makes the remote side mirror the local tree.
func planPush(ctx context.Context, fs afero.Fs, inv Inventories, opts Options) ([]Action, error) {
	paths := make([]string, len(inv.Local))
	for i, e := range inv.Local {
		paths[i] = e.Path
	}
	hashes, err := hashAll(ctx, fs, paths, opts.workers())
	if err != nil {
		return nil, err
	}

	actions := make([]Action, 0, len(inv.Local))
	seen := make(map[string]struct{}, len(inv.Local))

	for i, local := range inv.Local {
		// Unreadable files count as seen so their remote copy survives.
		seen[local.Key] = struct{}{}

		h := hashes[i]
		if h.err != nil {
			actions = append(actions, failAction(local.Key, local.Path, h.err))
			continue
		}

		action := Action{Key: local.Key, LocalPath: local.Path, Size: h.fp.Size}
		remote, ok := inv.Remote[local.Key]
		switch {
		case !ok:
			action.Type, action.Reason = ActionUpload, "new file"
		case h.fp.Matches(remote.ETag, remote.Size):
			action.Type, action.Reason, action.Size = ActionSkip, "unchanged", 0
		default:
			action.Type, action.Reason = ActionUpload, "changed content"
		}
		actions = append(actions, action)
	}

	if opts.DeleteMissing {
		for _, key := range inventory.SortedKeys(inv.Remote) {
			if _, ok := seen[key]; ok {
				continue
			}
			actions = append(actions, Action{Type: ActionDelete, Key: key, Reason: "missing locally"})
		}
	}

	return actions, nil
}

// planPull makes the local tree mirror the remote side. Only local files
// with a remote counterpart are fingerprinted.
func planPull(ctx context.Context, fs afero.Fs, inv Inventories, opts Options) ([]Action, error) {
	localIndex := inventory.IndexLocal(inv.Local)
	remoteKeys := inventory.SortedKeys(inv.Remote)

	var (
		paths   []string
		hashIdx = make(map[string]int)
	)
	for _, key := range remoteKeys {
		if local, ok := localIndex[key]; ok {
			hashIdx[key] = len(paths)
			paths = append(paths, local.Path)
		}
	}
	hashes, err := hashAll(ctx, fs, paths, opts.workers())
	if err != nil {
		return nil, err
	}

	actions := make([]Action, 0, len(remoteKeys))
	for _, key := range remoteKeys {
		remote := inv.Remote[key]

		target, err := targetPath(inv.Root, key)
		if err != nil {
			actions = append(actions, failAction(key, "", err))
			continue
		}

		action := Action{Key: key, LocalPath: target, Size: remote.Size}
		idx, ok := hashIdx[key]
		switch {
		case !ok:
			action.Type, action.Reason = ActionDownload, "new object"
		case hashes[idx].err != nil:
			action = failAction(key, target, hashes[idx].err)
		case hashes[idx].fp.Matches(remote.ETag, remote.Size):
			action.Type, action.Reason, action.Size = ActionSkip, "unchanged", 0
		default:
			action.Type, action.Reason = ActionDownload, "changed content"
		}
		actions = append(actions, action)
	}

	if opts.DeleteMissing {
		for _, local := range inv.Local {
			if _, ok := inv.Remote[local.Key]; ok {
				continue
			}
			actions = append(actions, Action{
				Type:      ActionDelete,
				Key:       local.Key,
				LocalPath: local.Path,
				Reason:    "missing remotely",
			})
		}
	}

	return actions, nil
}

type hashResult struct {
	fp  fingerprint.Fingerprint
	err error
}

// hashAll fingerprints paths in a bounded pool. Results keep the input order.
func hashAll(ctx context.Context, fs afero.Fs, paths []string, workers int) ([]hashResult, error) {
	results := make([]hashResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fp, err := fingerprint.File(fs, path)
			results[i] = hashResult{fp: fp, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func failAction(key, path string, err error) Action {
	return Action{
		Type:      ActionFail,
		Key:       key,
		LocalPath: path,
		Reason:    err.Error(),
		Err:       err,
	}
}

// targetPath resolves key under root and rejects keys that would escape it.
func targetPath(root, key string) (string, error) {
	path := inventory.LocalPath(root, key)
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == "." {
		return "", fmt.Errorf("key %q resolves outside %s", key, root)
	}
	return path, nil
}
