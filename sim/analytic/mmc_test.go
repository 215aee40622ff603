package analytic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolve_MM1_ClosedForm(t *testing.T) {
	// GIVEN λ=5, μ=7, c=1: ρ=5/7, Lq=ρ²/(1-ρ), W=1/(μ-λ)
	m, err := Solve(5, 7, 1)
	require.NoError(t, err)

	rho := 5.0 / 7
	assert.InDelta(t, rho, m.Utilization, 1e-12)
	assert.InDelta(t, rho, m.ProbWait, 1e-12, "Erlang C with one server is ρ")
	assert.InDelta(t, rho*rho/(1-rho), m.MeanQueueLength, 1e-12)
	assert.InDelta(t, 0.5, m.MeanResponse, 1e-12)
	assert.InDelta(t, 2.5, m.MeanInSystem, 1e-12)
	assert.InDelta(t, 0.2, m.MeanInterarrival, 1e-15)
	assert.InDelta(t, 1.0/7, m.MeanService, 1e-15)
}

func TestSolve_MM2_ClosedForm(t *testing.T) {
	// GIVEN λ=μ=1, c=2: a=1, ρ=1/2, P0=1/3, C=1/3, L = 2ρ/(1-ρ²) = 4/3
	m, err := Solve(1, 1, 2)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, m.OfferedLoad, 1e-12)
	assert.InDelta(t, 0.5, m.Utilization, 1e-12)
	assert.InDelta(t, 1.0/3, m.ProbWait, 1e-12)
	assert.InDelta(t, 1.0/3, m.MeanQueueLength, 1e-12)
	assert.InDelta(t, 1.0/3, m.MeanWait, 1e-12)
	assert.InDelta(t, 4.0/3, m.MeanInSystem, 1e-12)
}

func TestSolve_LittlesLaw(t *testing.T) {
	for _, c := range []int{1, 2, 5, 20} {
		m, err := Solve(0.9*float64(c), 1, c)
		require.NoError(t, err)
		assert.InDelta(t, m.Lambda*m.MeanWait, m.MeanQueueLength, 1e-9, "c=%d", c)
		assert.InDelta(t, m.Lambda*m.MeanResponse, m.MeanInSystem, 1e-9, "c=%d", c)
		assert.Greater(t, m.ProbWait, 0.0)
		assert.Less(t, m.ProbWait, 1.0)
	}
}

func TestSolve_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		lambda  float64
		mu      float64
		servers int
	}{
		{"unstable", 10, 5, 1},
		{"saturated", 10, 5, 2},
		{"zero lambda", 0, 5, 1},
		{"zero mu", 1, 0, 1},
		{"no servers", 1, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Solve(tt.lambda, tt.mu, tt.servers)
			assert.Error(t, err)
		})
	}
}
