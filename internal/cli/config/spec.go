package config

import "time"

// CLIConfig is the configuration for foldershare-cli, read from
// ~/.foldershare/cli.yaml. Flags and environment override every field.
type CLIConfig struct {
	// Server is the host used when --server is not given.
	Server string `yaml:"server"`
	// Output is the default output format: tree, table, json or yaml.
	Output string `yaml:"output"`
	// Timeout bounds each call to the host.
	Timeout time.Duration `yaml:"timeout"`
	// History is the shell history file. Empty disables history.
	History string `yaml:"history"`
}

// Default values.
const (
	DefaultServer  = "localhost:7070"
	DefaultOutput  = "tree"
	DefaultTimeout = 30 * time.Second
)

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Server:  DefaultServer,
		Output:  DefaultOutput,
		Timeout: DefaultTimeout,
		History: defaultHistoryPath(),
	}
}
