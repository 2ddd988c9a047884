// Package snapshot captures point-in-time trees of shared folders.
//
// A snapshot is taken once, when the host starts serving, and is never
// updated in place: later changes on disk only become visible after a new
// snapshot replaces the old one.
//
// Walk rules:
//
//   - entries are ordered by name (os.ReadDir order)
//   - symlinks to regular files are listed as files
//   - symlinks to directories, dangling links and special files are skipped
//   - a subfolder that cannot be listed is kept, marked with an error
//   - an entry that vanishes or cannot be statted mid-walk is skipped
//
// TakeAll walks several roots concurrently and keeps them in the order
// given. Only a failure on a root itself fails the whole snapshot.
package snapshot
