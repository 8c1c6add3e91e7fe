package watch

import (
	"sync"
	"time"
)

// newDebouncer returns a trigger that calls fn once delay has passed
// without another trigger, and a stop function cancelling a pending call.
func newDebouncer(delay time.Duration, fn func()) (trigger func(), stop func()) {
	var mu sync.Mutex
	var timer *time.Timer
	stopped := false

	trigger = func() {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, fn)
	}
	stop = func() {
		mu.Lock()
		defer mu.Unlock()
		stopped = true
		if timer != nil {
			timer.Stop()
		}
	}
	return trigger, stop
}
