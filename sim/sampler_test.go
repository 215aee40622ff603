package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueLengthSampler_WeightsSamplesByElapsedTime(t *testing.T) {
	// GIVEN one queued customer and a sampler polling every second
	st, err := NewSharedState(1)
	require.NoError(t, err)
	st.arrive(0.1)

	// AND a clock whose first wake-up is on time and whose second is 2s late;
	// the customer is served during that second, longer interval
	clock := &lateClock{lags: []float64{0, 2}}
	clock.onWake = func(n int) {
		if n == 2 {
			ok, _ := st.claim()
			require.True(t, ok)
			st.complete(0, 0.5)
		}
	}
	q := NewQueueLengthSampler(1, st, clock, 0)

	// WHEN the sampler runs until every customer is served
	q.Run()

	// THEN the samples cover 1s at length 1 and 3s at length 0
	samples := q.Samples()
	require.Len(t, samples, 2)
	assert.Equal(t, 1.0, samples[0].At)
	assert.Equal(t, 1, samples[0].Length)
	assert.Equal(t, 4.0, samples[1].At)
	assert.Equal(t, 0, samples[1].Length)
	assert.InDelta(t, 0.25, q.TimeWeightedMean(), 1e-12, "a count-weighted mean would be 0.5")
}
