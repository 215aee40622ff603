package sim

import (
	"fmt"
	"sync"
)

// Customer is the record the arrival generator keeps for one arrival.
type Customer struct {
	Interarrival float64 // seconds since the previous arrival
	WaitEstimate float64 // queue length at arrival × Interarrival; an approximation, not the customer's own delay
}

// ServiceRecord is the record a server keeps for one completed customer.
type ServiceRecord struct {
	Server   int     // index of the server that did the work
	Duration float64 // realized service time in seconds
}

// SharedState is the single source of truth for one run: queue length,
// counters, running sums and the append-only sample logs.
// Every field is guarded by mu.
//
// Invariants (at any instant the lock is free):
//   - served <= generated <= customers
//   - queue == generated - served - inService, queue >= 0
type SharedState struct {
	mu       sync.Mutex
	notEmpty *sync.Cond    // signaled on the 0→1 queue transition; broadcast once all customers are served
	done     chan struct{} // closed exactly once, when served reaches customers

	customers int

	queue     int
	generated int
	served    int
	inService int

	arrivalSum  float64
	waitSum     float64
	serviceSum  float64
	occupiedSum float64

	arrivals []Customer
	services []ServiceRecord
}

// NewSharedState allocates the state for a run of n customers.
// The logs start with room for n entries and grow on demand beyond that.
// An allocation that the runtime refuses is reported as a *ResourceError.
func NewSharedState(n int) (st *SharedState, err error) {
	if n <= 0 {
		return nil, &ConfigurationError{Field: "customers", Reason: fmt.Sprintf("must be > 0, got %d", n)}
	}
	arrivals, err := reserve[Customer]("arrival log", n)
	if err != nil {
		return nil, err
	}
	services, err := reserve[ServiceRecord]("service log", n)
	if err != nil {
		return nil, err
	}
	st = &SharedState{
		done:      make(chan struct{}),
		customers: n,
		arrivals:  arrivals,
		services:  services,
	}
	st.notEmpty = sync.NewCond(&st.mu)
	return st, nil
}

// reserve returns an empty slice with capacity n, converting the runtime
// panic from an impossible size into a *ResourceError.
func reserve[T any](what string, n int) (s []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			s = nil
			err = &ResourceError{What: what, Capacity: n, Cause: fmt.Errorf("%v", r)}
		}
	}()
	return make([]T, 0, n), nil
}

// Done is closed once every customer has been served.
func (st *SharedState) Done() <-chan struct{} {
	return st.done
}

// arrive enqueues one customer that arrived dt seconds after the previous one.
// Returns false, without changing anything, once all customers were generated.
func (st *SharedState) arrive(dt float64) (queueLen, generated int, ok bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.generated >= st.customers {
		return st.queue, st.generated, false
	}
	st.queue++
	st.generated++
	wait := float64(st.queue) * dt
	st.arrivalSum += dt
	st.waitSum += wait
	st.arrivals = append(st.arrivals, Customer{Interarrival: dt, WaitEstimate: wait})
	if st.queue == 1 {
		// Edge-triggered: one sleeping server is enough for one customer.
		st.notEmpty.Signal()
	}
	return st.queue, st.generated, true
}

// claim blocks until a customer can be taken off the queue and takes it.
// ok is false when every customer has already been claimed by some server.
// waited reports whether the caller had to block for the customer.
func (st *SharedState) claim() (ok, waited bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for st.queue == 0 && st.served+st.inService < st.customers {
		waited = true
		st.notEmpty.Wait()
	}
	if st.queue == 0 {
		return false, waited
	}
	st.queue--
	st.inService++
	return true, waited
}

// complete records a finished service of d seconds by server.
// The completion that reaches the target count wakes every waiting server
// and closes Done.
func (st *SharedState) complete(server int, d float64) (served int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.inService--
	st.served++
	st.serviceSum += d
	st.occupiedSum += d
	st.services = append(st.services, ServiceRecord{Server: server, Duration: d})
	if st.served == st.customers {
		st.notEmpty.Broadcast()
		close(st.done)
	}
	return st.served
}

// Counts is a consistent view of the counters taken under the lock.
type Counts struct {
	Queue     int
	Generated int
	Served    int
	InService int
}

// Counts returns the current counters.
func (st *SharedState) Counts() Counts {
	st.mu.Lock()
	defer st.mu.Unlock()
	return Counts{Queue: st.queue, Generated: st.generated, Served: st.served, InService: st.inService}
}

// Totals holds the running sums kept alongside the logs.
type Totals struct {
	Arrival  float64
	Wait     float64
	Service  float64
	Occupied float64
}

// Totals returns the running sums.
func (st *SharedState) Totals() Totals {
	st.mu.Lock()
	defer st.mu.Unlock()
	return Totals{Arrival: st.arrivalSum, Wait: st.waitSum, Service: st.serviceSum, Occupied: st.occupiedSum}
}

// Arrivals returns the arrival log. Only valid once every worker has
// returned; the slice is the state's storage and must not be modified.
func (st *SharedState) Arrivals() []Customer {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.arrivals
}

// Services returns the service log under the same rules as Arrivals.
func (st *SharedState) Services() []ServiceRecord {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.services
}
