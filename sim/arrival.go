package sim

import "github.com/sirupsen/logrus"

// ArrivalGenerator produces customers with exponential(λ) interarrival
// times until the configured number has been generated.
type ArrivalGenerator struct {
	rate  float64
	state *SharedState
	clock Clock
	start float64 // clock reading the arrival schedule is anchored to
	rng   *VariateSource
}

// NewArrivalGenerator creates a generator whose first arrival is scheduled
// relative to start. It owns rng exclusively.
func NewArrivalGenerator(rate float64, state *SharedState, clock Clock, start float64, rng *VariateSource) *ArrivalGenerator {
	return &ArrivalGenerator{rate: rate, state: state, clock: clock, start: start, rng: rng}
}

// Run generates customers until the target count is reached.
// Arrival k is due at start + dt1 + ... + dtk, so a late wake-up shortens the
// next wait instead of pushing every later arrival back.
// The pacing sleep happens before the lock is taken.
func (g *ArrivalGenerator) Run() {
	next := g.start
	for {
		dt := g.rng.Exponential(g.rate)
		next += dt
		g.clock.SleepUntil(next)
		queueLen, generated, ok := g.state.arrive(dt)
		if !ok {
			return
		}
		logrus.Debugf("[arrival] #%d interarrival=%.6fs queue=%d", generated, dt, queueLen)
		if generated == g.state.customers {
			logrus.Debugf("[arrival] all %d customers generated", g.state.customers)
			return
		}
	}
}
