//go:build !windows

package fsmeta

import (
	"os"
	"syscall"
	"time"
)

// changeTime gets the change time from FileInfo (Unix)
func changeTime(info os.FileInfo) (time.Time, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(stat.Ctim.Sec, stat.Ctim.Nsec), true
}

// DevIno returns the device and inode numbers identifying the file, used
// by the traversal engines to detect symlink cycles.
func DevIno(info os.FileInfo) (dev, ino uint64, ok bool) {
	stat, sok := info.Sys().(*syscall.Stat_t)
	if !sok {
		return 0, 0, false
	}
	return uint64(stat.Dev), uint64(stat.Ino), true
}

// EnsureLongPath is a no-op outside Windows.
func EnsureLongPath(p string) string {
	return p
}
