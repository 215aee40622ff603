package sim

import "time"

// Clock paces the workers and measures the run.
// Both methods work in simulated seconds.
type Clock interface {
	// Now returns simulated seconds since an arbitrary, fixed epoch.
	Now() float64
	// Sleep blocks the calling goroutine for the given simulated duration.
	Sleep(seconds float64)
	// SleepUntil blocks until Now() has reached t. Returns at once if it
	// already has. Loops that pace against absolute deadlines this way do not
	// accumulate the lateness of each wake-up.
	SleepUntil(t float64)
}

// RealClock maps simulated time onto the wall clock.
// Scale is real seconds per simulated second; 1.0 runs in real time,
// 0.01 runs a hundred times faster.
type RealClock struct {
	epoch time.Time
	scale float64
}

// NewRealClock returns a RealClock whose epoch is the moment of the call.
// A non-positive scale is treated as 1.0.
func NewRealClock(scale float64) *RealClock {
	if scale <= 0 {
		scale = 1.0
	}
	return &RealClock{epoch: time.Now(), scale: scale}
}

func (c *RealClock) Now() float64 {
	return time.Since(c.epoch).Seconds() / c.scale
}

func (c *RealClock) Sleep(seconds float64) {
	if seconds <= 0 {
		return
	}
	time.Sleep(time.Duration(seconds * c.scale * float64(time.Second)))
}

func (c *RealClock) SleepUntil(t float64) {
	c.Sleep(t - c.Now())
}
