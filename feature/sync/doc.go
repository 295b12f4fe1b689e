// Package sync runs sync passes between a local directory and a bucket
// prefix.
//
// A pass validates the local root, verifies the bucket, takes a complete
// remote listing, walks the local tree, plans and then executes. Any failure
// up to and including the listing aborts the pass before an action runs and
// is returned as an error. Failures on single keys are reported as error
// events and the pass continues.
//
// # Entry Points
//
//   - Run builds a client from storage configuration and performs one push.
//   - Service.Push makes the prefix mirror the local tree.
//   - Service.Pull makes the local tree mirror the prefix.
//
// # Routes
//
//	GET  /sync/plan  dry-run push of the configured directory
//	POST /sync       push with {"dry_run": bool, "delete_missing": bool}
//
// Concurrent plan requests for the same target share one pass.
package sync
