// Package inventory builds the two views a sync pass compares: the files
// under a local root and the objects under a remote prefix.
//
// # Keys
//
// Both sides are keyed by relative key: a forward-slash path relative to the
// local root or to the remote prefix. Local keys are normalized with
// filepath.ToSlash so a nested file compares against "a/b/c.txt" on every host.
//
// # Local
//
// Local walks the root with afero and keeps regular files only. Directories,
// symbolic links, sockets and devices never become keys. Entries are returned
// in walk order, which is lexical.
//
// # Remote
//
// Remote drains a full paginated listing into a map. Directory markers, whose
// key is empty once the prefix is stripped, are dropped. Any listing error
// aborts the call: a partial view must never be used to plan deletions.
package inventory
