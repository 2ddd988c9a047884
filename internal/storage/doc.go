// Package storage groups the host's read-only views of the shared folders.
//
//   - snapshot: walks every shared root once at start-up into an
//     immutable tree of domain.Node values
//   - shareroot: resolves requested paths against the roots and reads
//     file contents, optionally confined to the roots
//
// Nothing is written to disk; the tree is not refreshed while the server
// runs.
package storage
