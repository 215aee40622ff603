package sim

import (
	"fmt"
	"hash/fnv"
	"math"
	"time"

	"golang.org/x/exp/rand"
)

// === SimulationKey ===

// SimulationKey identifies a reproducible simulation run.
// Zero means "unseeded": every source is seeded from the wall clock.
type SimulationKey uint64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed uint64) SimulationKey {
	return SimulationKey(seed)
}

// === Roles ===

// RoleArrival is the RNG role of the single arrival generator.
const RoleArrival = "arrival"

// RoleServer returns the RNG role name for server i.
func RoleServer(i int) string {
	return fmt.Sprintf("server_%d", i)
}

// === Sources ===

// UniformSource yields uniform variates in [0, 1).
// *rand.Rand from golang.org/x/exp/rand satisfies it.
type UniformSource interface {
	Float64() float64
}

// SourceFactory returns the private uniform stream for a role.
// It is called once per goroutine, from that goroutine.
type SourceFactory func(role string) UniformSource

// NewSourceFactory derives one independent stream per role.
//
// Derivation formula:
//   - key != 0: seed = key XOR fnv1a64(role)
//   - key == 0: seed = wall-clock nanoseconds XOR fnv1a64(role), taken when
//     the factory is called
func NewSourceFactory(key SimulationKey) SourceFactory {
	return func(role string) UniformSource {
		base := uint64(key)
		if key == 0 {
			base = uint64(time.Now().UnixNano())
		}
		return rand.New(rand.NewSource(base ^ fnv1a64(role)))
	}
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// === VariateSource ===

// VariateSource turns a private uniform stream into the variates the
// simulation needs.
//
// Thread-safety: NOT thread-safe. Each goroutine owns its own VariateSource.
type VariateSource struct {
	src UniformSource
}

// NewVariateSource wraps src. Panics on nil.
func NewVariateSource(src UniformSource) *VariateSource {
	if src == nil {
		panic("NewVariateSource: src must not be nil")
	}
	return &VariateSource{src: src}
}

// maxResample bounds the retries for out-of-range uniforms so a broken
// stub cannot spin forever.
const maxResample = 64

// Uniform01 returns a uniform variate in [0, 1).
// Out-of-range values from the underlying stream are resampled.
func (v *VariateSource) Uniform01() float64 {
	for i := 0; i < maxResample; i++ {
		u := v.src.Float64()
		if u >= 0 && u < 1 {
			return u
		}
	}
	panic("VariateSource: uniform stream keeps producing values outside [0, 1)")
}

// Exponential returns an exponential(rate) variate by inverse-CDF sampling,
// -ln(1-U)/rate. Always finite and >= 0.
func (v *VariateSource) Exponential(rate float64) float64 {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		panic(fmt.Sprintf("Exponential: rate must be positive and finite, got %v", rate))
	}
	for {
		x := -math.Log1p(-v.Uniform01()) / rate
		if !math.IsInf(x, 0) && !math.IsNaN(x) {
			return x
		}
	}
}
