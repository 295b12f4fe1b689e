// Package history keeps a journal of sync passes in the optional database.
//
// Each pass is stored as one Run row holding its direction, target, dry-run
// flag, per-kind event counts and start/finish times. A Run is also a
// reconcile.Sink, so it can be teed next to the caller's sink and count
// events as they are emitted.
//
// # Routes
//
//	GET /sync/history?limit=n
//
// The route answers 503 when the service runs without a database.
package history
