package sim

import "math"

// RunningStat accumulates a mean and variance in one pass with Welford's
// update, which avoids the cancellation of Σx² − n·mean² for long runs.
// The zero value is ready to use.
type RunningStat struct {
	n    int
	mean float64
	m2   float64 // Σ (x - mean)² so far
}

// Add folds x into the statistic.
func (r *RunningStat) Add(x float64) {
	r.n++
	delta := x - r.mean
	r.mean += delta / float64(r.n)
	r.m2 += delta * (x - r.mean)
}

// Count returns the number of values added.
func (r *RunningStat) Count() int {
	return r.n
}

// Mean returns the arithmetic mean, or NaN with no values.
func (r *RunningStat) Mean() float64 {
	if r.n == 0 {
		return math.NaN()
	}
	return r.mean
}

// Variance returns the sample (n−1) variance, or NaN with fewer than two values.
func (r *RunningStat) Variance() float64 {
	if r.n < 2 {
		return math.NaN()
	}
	return r.m2 / float64(r.n-1)
}

// StdDev returns the sample standard deviation, or NaN with fewer than two values.
func (r *RunningStat) StdDev() float64 {
	return math.Sqrt(r.Variance())
}

// Summary is the reported form of a RunningStat.
// NaN fields mean "undefined" (too few samples).
type Summary struct {
	Count  int     `yaml:"count"`
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"std_dev"`
}

// Summary freezes the statistic.
func (r *RunningStat) Summary() Summary {
	return Summary{Count: r.n, Mean: r.Mean(), StdDev: r.StdDev()}
}

// summarize runs values through a RunningStat.
func summarize[T any](values []T, get func(T) float64) Summary {
	var r RunningStat
	for _, v := range values {
		r.Add(get(v))
	}
	return r.Summary()
}

// safeDiv returns num/den, or NaN when den is zero or not finite.
func safeDiv(num, den float64) float64 {
	if den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
		return math.NaN()
	}
	return num / den
}
