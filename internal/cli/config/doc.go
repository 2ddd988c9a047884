// Package config holds the foldershare-cli preferences file
// (~/.foldershare/cli.yaml): default server, output format, call timeout
// and shell history location. The file is optional and never written by
// the CLI.
package config
