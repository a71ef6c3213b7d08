//go:build windows

package filesystem

import (
	"os"
	"syscall"
	"time"
)

// getChangeTime returns the file creation time (Windows)
func getChangeTime(info os.FileInfo) time.Time {
	stat, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(0, stat.CreationTime.Nanoseconds())
}
