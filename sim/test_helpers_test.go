package sim

import (
	"math"
	"runtime"
	"sync/atomic"
	"testing"
	"time"
)

// uAtMean is the uniform whose exponential inverse-CDF is exactly the mean:
// -ln(1-u)/rate == 1/rate.
var uAtMean = 1 - math.Exp(-1)

// constSource always returns u.
type constSource struct{ u float64 }

func (c constSource) Float64() float64 { return c.u }

// seqSource returns vals in order, then repeats the last one.
type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) Float64() float64 {
	v := s.vals[min(s.i, len(s.vals)-1)]
	s.i++
	return v
}

// constSources hands every role the same constant stream and counts calls.
func constSources(u float64, calls *atomic.Int64) SourceFactory {
	return func(role string) UniformSource {
		if calls != nil {
			calls.Add(1)
		}
		return constSource{u: u}
	}
}

// scriptedClock never blocks. Its first Now() is 0 and every later call
// returns horizon, so a run measures exactly horizon simulated seconds.
type scriptedClock struct {
	horizon float64
	nows    atomic.Int64
	sleeps  atomic.Int64
}

func newScriptedClock(horizon float64) *scriptedClock {
	return &scriptedClock{horizon: horizon}
}

func (c *scriptedClock) Now() float64 {
	if c.nows.Add(1) == 1 {
		return 0
	}
	return c.horizon
}

func (c *scriptedClock) Sleep(float64) {
	c.sleeps.Add(1)
	runtime.Gosched()
}

func (c *scriptedClock) SleepUntil(float64) {
	c.Sleep(0)
}

// lateClock is a virtual clock for a single goroutine. Every wake-up lands
// later than requested by a lag: lags[i] for the i-th wake-up, the last value
// repeating. onWake, when set, runs after each wake-up with its 1-based count.
type lateClock struct {
	now    float64
	lags   []float64
	wakes  int
	onWake func(n int)
}

func (c *lateClock) Now() float64 { return c.now }

func (c *lateClock) Sleep(seconds float64) { c.wake(c.now + max(seconds, 0)) }

func (c *lateClock) SleepUntil(t float64) { c.wake(max(t, c.now)) }

func (c *lateClock) wake(t float64) {
	lag := 0.0
	if len(c.lags) > 0 {
		lag = c.lags[min(c.wakes, len(c.lags)-1)]
	}
	c.wakes++
	c.now = t + lag
	if c.onWake != nil {
		c.onWake(c.wakes)
	}
}

// mustFinish fails the test if fn does not return within d.
func mustFinish(t *testing.T, d time.Duration, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatalf("did not finish within %v (workers blocked?)", d)
	}
}

// newTestSimulator builds a simulator with default sampling and the given
// collaborators, failing the test on error.
func newTestSimulator(t *testing.T, cfg Config, clock Clock, sources SourceFactory) *Simulator {
	t.Helper()
	s, err := NewSimulator(cfg, Options{Clock: clock, Sources: sources})
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return s
}
