package convert

import (
	"os"
	"syscall"
	"time"
)

// creationTime returns the inode change time; Linux stat exposes no birth time.
func creationTime(info os.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec))
	}
	return info.ModTime()
}
