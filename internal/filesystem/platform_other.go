//go:build !linux && !darwin && !freebsd && !netbsd && !windows

package filesystem

import (
	"os"
	"time"
)

// getChangeTime falls back to the modification time where no change or
// creation time is exposed
func getChangeTime(info os.FileInfo) time.Time {
	return info.ModTime()
}
