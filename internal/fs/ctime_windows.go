//go:build windows

package fs

import (
	"os"
	"syscall"
	"time"
)

func creationTime(info os.FileInfo) time.Time {
	attrs, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok || attrs == nil {
		return time.Time{}
	}
	return time.Unix(0, attrs.CreationTime.Nanoseconds())
}
