//go:build linux

package filesystem

import (
	"os"
	"syscall"
	"time"
)

// getChangeTime returns the inode change time, the closest thing to a
// creation time most Unix filesystems expose. Falls back to mtime when the
// platform stat is unavailable.
func getChangeTime(info os.FileInfo) time.Time {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(int64(stat.Ctim.Sec), int64(stat.Ctim.Nsec)) //nolint:unconvert
}
