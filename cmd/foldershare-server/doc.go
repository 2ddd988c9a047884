// Package main provides the entry point for foldershare-server.
//
// The server snapshots the shared folders once at start-up and answers
// password-authenticated list and file requests over a Connect RPC
// endpoint. /healthz and, when enabled, /metrics share the listener.
//
// Usage:
//
//	foldershare-server --folder ~/music --folder ~/docs --password secret
//	foldershare-server --config /etc/foldershare/server.yaml --port 7171
//
// Settings come from the defaults, the YAML file, FOLDERSHARE_*
// variables and flags, in increasing priority. Editing log.level in the
// file takes effect without a restart.
package main
