//go:build linux

package snapshot

import (
	"io/fs"
	"syscall"
	"time"

	"github.com/yndnr/foldershare-go/internal/core/domain"
)

// fillPlatformTimes records the access time. Linux stat exposes no birth time.
func fillPlatformTimes(meta *domain.Metadata, info fs.FileInfo) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return
	}
	accessed := time.Unix(int64(st.Atim.Sec), int64(st.Atim.Nsec)).UTC()
	meta.Accessed = &accessed
}
