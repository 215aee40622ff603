// Package analytic holds the closed-form steady-state M/M/c results that a
// simulated run is compared against.
package analytic

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// MMC is the steady-state solution of an M/M/c queue.
// All times are in seconds, all lengths in customers.
type MMC struct {
	Lambda  float64 `yaml:"lambda"`
	Mu      float64 `yaml:"mu"`
	Servers int     `yaml:"servers"`

	OfferedLoad      float64 `yaml:"offered_load"`      // a = λ/μ
	Utilization      float64 `yaml:"utilization"`       // ρ = λ/(cμ)
	ProbWait         float64 `yaml:"prob_wait"`         // Erlang C: P(arriving customer waits)
	MeanQueueLength  float64 `yaml:"mean_queue_length"` // Lq
	MeanWait         float64 `yaml:"mean_wait"`         // Wq
	MeanResponse     float64 `yaml:"mean_response"`     // W = Wq + 1/μ
	MeanInSystem     float64 `yaml:"mean_in_system"`    // L = λW
	MeanInterarrival float64 `yaml:"mean_interarrival"` // 1/λ
	MeanService      float64 `yaml:"mean_service"`      // 1/μ
}

// Solve computes the M/M/c steady state. It fails when the queue is not
// stable (ρ >= 1) or the inputs are out of range.
func Solve(lambda, mu float64, servers int) (MMC, error) {
	if lambda <= 0 || mu <= 0 || servers < 1 {
		return MMC{}, fmt.Errorf("analytic: need λ > 0, μ > 0, c >= 1; got λ=%v μ=%v c=%d", lambda, mu, servers)
	}
	c := float64(servers)
	a := lambda / mu
	rho := a / c
	if rho >= 1 {
		return MMC{}, fmt.Errorf("analytic: unstable queue, ρ=%v", rho)
	}

	// terms[k] = a^k / k! for k < c; tail = a^c / (c! (1-ρ)).
	terms := make([]float64, servers)
	term := 1.0
	for k := 0; k < servers; k++ {
		terms[k] = term
		term *= a / float64(k+1)
	}
	tail := term / (1 - rho)
	p0 := 1 / (floats.Sum(terms) + tail)
	probWait := tail * p0

	lq := probWait * rho / (1 - rho)
	wq := lq / lambda
	w := wq + 1/mu
	return MMC{
		Lambda:           lambda,
		Mu:               mu,
		Servers:          servers,
		OfferedLoad:      a,
		Utilization:      rho,
		ProbWait:         probWait,
		MeanQueueLength:  lq,
		MeanWait:         wq,
		MeanResponse:     w,
		MeanInSystem:     lambda * w,
		MeanInterarrival: 1 / lambda,
		MeanService:      1 / mu,
	}, nil
}
