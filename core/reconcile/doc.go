// Package reconcile decides and applies the actions of a sync pass between a
// local tree and a bucket prefix.
//
// # Architecture
//
// The package has two halves that never overlap:
//
// 1. BuildPlan compares a local inventory against a remote inventory and
// returns a Plan. It fingerprints local files but performs no mutation.
//
// 2. Executor.Apply consumes a Plan and performs each action through the
// storage client or the local filesystem, emitting exactly one Event per
// action to a Sink.
//
// # Decisions
//
// A key present on both sides is skipped when the local MD5 and size equal the
// remote ETag and size, and transferred otherwise. Modification times are
// never consulted. Keys present only on the destination side are deleted when
// Options.DeleteMissing is set and ignored otherwise. With Options.DryRun every
// transfer and delete is reported as a dryrun_* event and no call is made.
//
// Objects uploaded in several parts carry a composite ETag that never equals a
// plain MD5. Such objects are transferred again on every pass. The storage
// backends upload files up to storage.MaxSinglePutSize in a single PUT, so
// only larger files, or objects written by other tools, hit this.
//
// # Concurrency
//
// Fingerprinting and execution each run in a pool bounded by Options.Workers.
// Plans keep walk order regardless of pool size. Events are serialized before
// they reach the sink, but with more than one worker their order is not
// guaranteed. Cancelling the context stops new actions from starting; actions
// already running finish on a detached context. Nothing is retried.
//
// # Usage Example
//
//	plan, err := reconcile.BuildPlan(ctx, fs, reconcile.Inventories{
//	    Root:   root,
//	    Local:  local,
//	    Remote: remote,
//	}, opts)
//	if err != nil {
//	    return err
//	}
//
//	exec := &reconcile.Executor{Client: client, FS: fs, Bucket: bucket, Prefix: prefix}
//	executed, err := exec.Apply(ctx, plan, sink)
package reconcile
