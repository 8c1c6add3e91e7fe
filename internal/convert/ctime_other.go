//go:build !linux && !darwin

package convert

import (
	"os"
	"time"
)

func creationTime(info os.FileInfo) time.Time {
	return info.ModTime()
}
