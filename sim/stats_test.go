package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat"
)

func TestRunningStat_MatchesTwoPassReference(t *testing.T) {
	// GIVEN a few thousand exponential samples
	v := NewVariateSource(NewSourceFactory(NewSimulationKey(11))(RoleArrival))
	xs := make([]float64, 5000)
	var r RunningStat
	for i := range xs {
		xs[i] = v.Exponential(3)
		r.Add(xs[i])
	}

	// WHEN compared with gonum's two-pass mean and unbiased std-dev
	mean, std := stat.MeanStdDev(xs, nil)

	// THEN both agree to rounding
	assert.Equal(t, len(xs), r.Count())
	assert.InDelta(t, mean, r.Mean(), 1e-12)
	assert.InDelta(t, std, r.StdDev(), 1e-12)
	assert.InDelta(t, stat.Variance(xs, nil), r.Variance(), 1e-12)
}

func TestRunningStat_LargeOffset_NoCancellation(t *testing.T) {
	// GIVEN values with a huge common offset, where Σx² − n·mean² loses all digits
	var r RunningStat
	for _, d := range []float64{4, 7, 13, 16} {
		r.Add(1e9 + d)
	}

	// THEN the variance of {4, 7, 13, 16} is recovered: Σ(d−10)² / 3 = 90/3
	assert.InDelta(t, 1e9+10, r.Mean(), 1e-6)
	assert.InDelta(t, 30.0, r.Variance(), 1e-6)
}

func TestRunningStat_ConstantValues_ZeroSpread(t *testing.T) {
	var r RunningStat
	for i := 0; i < 1000; i++ {
		r.Add(0.2)
	}
	assert.Equal(t, 0.2, r.Mean())
	assert.Equal(t, 0.0, r.StdDev())
}

func TestRunningStat_Degenerate(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var r RunningStat
		s := r.Summary()
		assert.Equal(t, 0, s.Count)
		assert.True(t, math.IsNaN(s.Mean))
		assert.True(t, math.IsNaN(s.StdDev))
	})
	t.Run("single value", func(t *testing.T) {
		var r RunningStat
		r.Add(3.5)
		s := r.Summary()
		assert.Equal(t, 1, s.Count)
		assert.Equal(t, 3.5, s.Mean)
		assert.True(t, math.IsNaN(s.StdDev), "sample std-dev of one value is undefined")
	})
}

func TestSafeDiv(t *testing.T) {
	assert.Equal(t, 2.0, safeDiv(4, 2))
	assert.True(t, math.IsNaN(safeDiv(1, 0)))
	assert.True(t, math.IsNaN(safeDiv(1, math.NaN())))
	assert.True(t, math.IsNaN(safeDiv(1, math.Inf(1))))
}
