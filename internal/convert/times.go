package convert

import (
	"os"

	"git.home.luguber.info/inful/vault2hugo/internal/frontmatter"
)

// TimeSource reports the timestamps injected as date and lastmod.
type TimeSource interface {
	Times(path string) (frontmatter.FileTimes, error)
}

// StatTimes reads timestamps from filesystem metadata on every call.
type StatTimes struct{}

// Times implements TimeSource. Created falls back to the modification time
// on platforms without a usable creation or change time.
func (StatTimes) Times(path string) (frontmatter.FileTimes, error) {
	info, err := os.Stat(path)
	if err != nil {
		return frontmatter.FileTimes{}, err
	}
	return frontmatter.FileTimes{
		Created:  creationTime(info),
		Modified: info.ModTime(),
	}, nil
}
