//go:build !linux

package snapshot

import (
	"io/fs"

	"github.com/yndnr/foldershare-go/internal/core/domain"
)

func fillPlatformTimes(meta *domain.Metadata, info fs.FileInfo) {}
