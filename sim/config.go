package sim

import (
	"fmt"
	"math"
)

// Defaults for the command-line surface.
const (
	DefaultArrivalRate    = 5.0
	DefaultServiceRate    = 7.0
	DefaultCustomers      = 1000
	DefaultServers        = 1
	DefaultSampleInterval = 0.005 // simulated seconds between queue-length polls
	DefaultTimeScale      = 1.0
)

// Config groups the parameters of one M/M/c run.
type Config struct {
	ArrivalRate    float64       // λ, customers per second (must be > 0)
	ServiceRate    float64       // μ, customers per second per server (must be > 0)
	Customers      int           // N, customers generated and served before the run ends (must be > 0)
	Servers        int           // C, concurrent servers (must be >= 1)
	Seed           SimulationKey // 0 = wall-clock seeding
	SampleInterval float64       // queue-length polling period in simulated seconds (must be > 0)
	TimeScale      float64       // real seconds per simulated second (must be > 0)
}

// NewConfig returns a Config with the given rates and sizes and default
// sampling, pacing and seeding.
func NewConfig(lambda, mu float64, customers, servers int) Config {
	return Config{
		ArrivalRate:    lambda,
		ServiceRate:    mu,
		Customers:      customers,
		Servers:        servers,
		SampleInterval: DefaultSampleInterval,
		TimeScale:      DefaultTimeScale,
	}
}

// TrafficIntensity returns ρ = λ/(μ·C).
func (c Config) TrafficIntensity() float64 {
	return c.ArrivalRate / (c.ServiceRate * float64(c.Servers))
}

// Validate checks field ranges and the stability condition λ < μ·C.
// Returns a *ConfigurationError describing the first violation.
func (c Config) Validate() error {
	if !positiveFinite(c.ArrivalRate) {
		return &ConfigurationError{Field: "arrival rate", Reason: fmt.Sprintf("must be positive and finite, got %v", c.ArrivalRate)}
	}
	if !positiveFinite(c.ServiceRate) {
		return &ConfigurationError{Field: "service rate", Reason: fmt.Sprintf("must be positive and finite, got %v", c.ServiceRate)}
	}
	if c.Customers <= 0 {
		return &ConfigurationError{Field: "customers", Reason: fmt.Sprintf("must be > 0, got %d", c.Customers)}
	}
	if c.Servers < 1 {
		return &ConfigurationError{Field: "servers", Reason: fmt.Sprintf("must be >= 1, got %d", c.Servers)}
	}
	if !positiveFinite(c.SampleInterval) {
		return &ConfigurationError{Field: "sample interval", Reason: fmt.Sprintf("must be positive and finite, got %v", c.SampleInterval)}
	}
	if !positiveFinite(c.TimeScale) {
		return &ConfigurationError{Field: "time scale", Reason: fmt.Sprintf("must be positive and finite, got %v", c.TimeScale)}
	}
	if c.ArrivalRate >= c.ServiceRate*float64(c.Servers) {
		return &ConfigurationError{
			Field: "stability",
			Reason: fmt.Sprintf("need λ < μ·C, got λ=%v, μ=%v, C=%d (μ·C=%v)",
				c.ArrivalRate, c.ServiceRate, c.Servers, c.ServiceRate*float64(c.Servers)),
		}
	}
	return nil
}

func positiveFinite(x float64) bool {
	return x > 0 && !math.IsInf(x, 0) && !math.IsNaN(x)
}
