package sim

import "github.com/sirupsen/logrus"

// QueueSample is one poll of the queue by the sampler.
// Generated, Served and InService are read in the same critical section as
// Length, so each sample is a consistent snapshot.
type QueueSample struct {
	At        float64 // simulated seconds since the run started
	Length    int
	Generated int
	Served    int
	InService int
}

// QueueLengthSampler polls the queue length at a fixed interval.
//
// Each sample is weighted by the clock time elapsed since the previous one,
// so the mean it yields is Σ(length·elapsed) / Σelapsed even when wake-ups
// run late. Its resolution is the interval.
type QueueLengthSampler struct {
	interval float64
	state    *SharedState
	clock    Clock
	start    float64

	weighted float64 // Σ length·elapsed
	horizon  float64 // Σ elapsed
	samples  []QueueSample
}

// NewQueueLengthSampler creates a sampler that timestamps samples relative
// to start.
func NewQueueLengthSampler(interval float64, state *SharedState, clock Clock, start float64) *QueueLengthSampler {
	return &QueueLengthSampler{interval: interval, state: state, clock: clock, start: start}
}

// Run polls until the state reports that every customer has been served.
func (q *QueueLengthSampler) Run() {
	prevAt := 0.0
	for {
		select {
		case <-q.state.Done():
			logrus.Debugf("[sampler] stopped after %d samples", len(q.samples))
			return
		default:
		}
		q.clock.Sleep(q.interval)
		c := q.state.Counts()
		at := q.clock.Now() - q.start
		elapsed := at - prevAt
		if elapsed < 0 {
			elapsed = 0
		}
		prevAt = at
		q.weighted += float64(c.Queue) * elapsed
		q.horizon += elapsed
		q.samples = append(q.samples, QueueSample{
			At:        at,
			Length:    c.Queue,
			Generated: c.Generated,
			Served:    c.Served,
			InService: c.InService,
		})
	}
}

// Samples returns the private sample buffer. Only valid after Run returned.
func (q *QueueLengthSampler) Samples() []QueueSample {
	return q.samples
}

// TimeWeightedMean returns Σ(length·elapsed) / Σelapsed, or NaN when no
// time was covered by a sample.
func (q *QueueLengthSampler) TimeWeightedMean() float64 {
	return safeDiv(q.weighted, q.horizon)
}
