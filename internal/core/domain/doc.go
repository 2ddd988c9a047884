// Package domain defines the core domain models for FolderShare.
//
// Domain models are pure values without IO dependencies. This package
// contains:
//
//   - Node: the folder/file tree captured from a shared root
//   - Errors: coded domain errors shared by server and client
//
// A Node tree is immutable once built; it is only ever replaced by a
// fresh snapshot.
package domain
