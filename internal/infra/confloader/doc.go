// Package confloader loads foldershare-server configuration with koanf.
//
// Sources are layered, later ones overriding earlier ones:
//
//  1. the values already present in the target struct (defaults)
//  2. a YAML file
//  3. FOLDERSHARE_* environment variables
//  4. a map of command-line overrides
//
// Environment names map onto the known keys of the target, so
// FOLDERSHARE_SHARE_PASSWORD_HASH sets share.password_hash and
// FOLDERSHARE_SERVER_RPC_RATE_LIMIT sets server.rpc.rate_limit. Slice keys
// accept a comma-separated value.
//
// Watcher reports writes to a config file so the server can re-apply the
// settings that are safe to change while running.
package confloader
