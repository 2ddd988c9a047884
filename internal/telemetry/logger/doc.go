// Package logger provides structured logging for FolderShare.
//
// It configures log/slog handlers for the server and the CLI:
//
//   - logger.go: handler construction and the shared level variable
//   - context.go: request id propagation through context.Context
//   - redact.go: masking of passwords and password hashes
//
// The level is held in a single slog.LevelVar so that a configuration
// reload can adjust it without rebuilding the handler.
package logger
