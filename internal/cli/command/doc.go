// Package command defines the foldershare-cli commands on urfave/cli/v2.
//
//   - root.go: the app, global flags and option resolution
//   - list.go: print the shared tree
//   - get.go: fetch one file
//   - shell.go: interactive shell over one session
//   - version.go: build information
//
// Every command that talks to a host connects through a
// connection.Manager stored in the app metadata; the connection is closed
// when the app exits. Options resolve flag or environment first, then
// ~/.foldershare/cli.yaml, then built-in defaults.
package command
