// Package config provides server configuration for FolderShare.
//
// This package defines the server configuration structure and validation:
//
//   - spec.go: ServerConfig struct definition
//   - default.go: Default configuration values
//   - verify.go: Validation (address, folders, password source)
//   - sanitize.go: Log sanitization (hide the password and its hash)
//   - load.go: Layered loading through internal/infra/confloader
//
// Configuration is loaded via internal/infra/confloader from a YAML file,
// FOLDERSHARE_ environment variables and command-line flags.
package config
