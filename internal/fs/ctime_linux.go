//go:build linux

package fs

import (
	"os"
	"syscall"
	"time"
)

// creationTime falls back to the inode change time; Linux stat does not
// expose a birth time.
func creationTime(info os.FileInfo) time.Time {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok || st == nil {
		return time.Time{}
	}
	return time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec))
}
