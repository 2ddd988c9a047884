package buildinfo

import (
	"fmt"
	"runtime"
)

// Stamped by ldflags; see the package doc.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildTime string `json:"build_time" yaml:"build_time"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the stamped values plus the Go runtime and platform.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders Info on one line, e.g.
// "v1.2.0 (abc123, built 2026-01-02T15:04:05Z, go1.24.4 linux/amd64)".
func String() string {
	i := Get()
	return fmt.Sprintf("%s (%s, built %s, %s %s)", i.Version, i.Commit, i.BuildTime, i.GoVersion, i.Platform)
}

// UserAgent returns the User-Agent header sent by program, e.g.
// "foldershare-cli/v1.2.0".
func UserAgent(program string) string {
	return program + "/" + Version
}
