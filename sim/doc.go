// Package sim implements a multi-threaded M/M/c queueing simulator.
//
// # Reading Guide
//
//   - state.go: SharedState, the one mutex-guarded source of truth for a run
//   - arrival.go, server.go, sampler.go: the three goroutine roles
//   - simulator.go: wiring, start/join, and the hand-off to Summarize
//   - metrics.go, stats.go: post-join reduction (Welford mean/std-dev, utilization)
//
// # Concurrency
//
// A run has 2+C goroutines: one ArrivalGenerator, C Servers and one
// QueueLengthSampler. They share a single sync.Mutex. Servers wait on one
// condition variable that the generator signals on the empty→non-empty
// transition; the completion that serves the last customer broadcasts on it
// and closes a done channel so no server or sampler is left blocked.
// Simulated delays (interarrival and service sleeps) are always taken outside
// the lock.
//
// # Randomness
//
// Each goroutine owns its VariateSource. With a non-zero seed the streams are
// derived per role (see NewSourceFactory) and arrival/service samples are
// reproducible; queue-length and wait estimates still depend on goroutine
// interleaving.
//
// The analytic M/M/c reference lives in sim/analytic.
package sim
