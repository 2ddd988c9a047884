// Package service provides the host-side services for FolderShare.
//
// This package contains:
//
//   - ShareService: authenticates each call, decodes the request and
//     answers it from the start-up snapshot or the shared roots
//   - Verifier: Argon2id password hashing and constant-time checks
//   - RateLimiterRegistry: token buckets per peer address
//
// ShareService holds no mutable state after construction and is safe for
// concurrent use by every inbound call.
package service
