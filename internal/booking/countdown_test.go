package booking

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountdownTicksUntilFinished(t *testing.T) {
	var ticks int32
	done := make(chan struct{})

	cd := startCountdown(time.Millisecond, func() bool {
		if atomic.AddInt32(&ticks, 1) >= 3 {
			close(done)
			return true
		}
		return false
	})
	defer cd.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("countdown never finished")
	}

	// the goroutine exits after the finishing tick; no further ticks arrive
	<-cd.done
	assert.Equal(t, int32(3), atomic.LoadInt32(&ticks))
}

func TestCountdownStopHaltsTicks(t *testing.T) {
	var ticks int32
	cd := startCountdown(time.Millisecond, func() bool {
		atomic.AddInt32(&ticks, 1)
		return false
	})

	cd.Stop()
	<-cd.done

	n := atomic.LoadInt32(&ticks)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, n, atomic.LoadInt32(&ticks), "no ticks after stop")
}

func TestCountdownStopIsSafeToRepeat(t *testing.T) {
	cd := startCountdown(time.Millisecond, func() bool { return true })

	cd.Stop()
	cd.Stop()

	select {
	case <-cd.done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not exit")
	}
	require.NotPanics(t, cd.Stop)
}
