// Package buildinfo reports the version stamped into foldershare binaries.
//
// Values are injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/foldershare-go/internal/infra/buildinfo.Version=v1.0.0 \
//	  -X github.com/yndnr/foldershare-go/internal/infra/buildinfo.Commit=abc123"
package buildinfo
