package booking

import (
	"sync"
	"time"
)

// countdown is the cancellable handle for the 1-second lease ticker.
// Exactly one countdown is active per session; starting a new one
// always stops the previous one first, so ticks can never be delivered
// twice for the same second.
type countdown struct {
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// startCountdown spawns a ticker that calls tick once per interval
// until tick reports the countdown has finished or stop is requested.
// The returned handle owns the goroutine.
func startCountdown(interval time.Duration, tick func() (finished bool)) *countdown {
	cd := &countdown{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go func() {
		defer close(cd.done)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-cd.stop:
				return
			case <-t.C:
				if tick() {
					return
				}
			}
		}
	}()
	return cd
}

// Stop cancels the ticker.  It is safe to call more than once and safe
// to call on a countdown that already finished on its own.
func (cd *countdown) Stop() {
	cd.stopOnce.Do(func() { close(cd.stop) })
}
