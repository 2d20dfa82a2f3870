// Package dist implements finite weighted sampling over an arbitrary
// payload vector.
package dist

import (
	"fmt"
	"sort"
)

const probabilityTolerance = 1e-3

// RNG is the randomness source required to sample from a Categorical.
// *math/rand.Rand satisfies this directly, so callers get deterministic
// sampling for free by seeding their own generator.
type RNG interface {
	Float64() float64
	Intn(n int) int
}

// Categorical is a finite discrete distribution over a payload vector,
// with explicit per-item probabilities and a precomputed cumulative
// index for sampling.
type Categorical[T any] struct {
	probs   []float64
	cumProb []float64
	payload []T
}

// Uniform builds a Categorical that assigns equal probability to every
// element of payload.
func Uniform[T any](payload []T) *Categorical[T] {
	n := len(payload)
	if n == 0 {
		panic(fmt.Errorf("dist: cannot build a categorical over zero items"))
	}

	probs := make([]float64, n)
	p := 1.0 / float64(n)
	for i := range probs {
		probs[i] = p
	}

	return New(probs, payload)
}

// NewNormalized builds a Categorical from raw (not necessarily
// normalized) weights, dividing through by their sum.
func NewNormalized[T any](weights []float64, payload []T) *Categorical[T] {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		panic(fmt.Errorf("dist: weights must sum to a positive value, got %v", sum))
	}

	probs := make([]float64, len(weights))
	for i, w := range weights {
		probs[i] = w / sum
	}

	return New(probs, payload)
}

// New builds a Categorical from probabilities that must already sum to
// 1 within probabilityTolerance. It panics on a malformed distribution
// (length mismatch, empty support, or invalid probability sum) since
// that is a contract violation with no recoverable fallback.
func New[T any](probs []float64, payload []T) *Categorical[T] {
	if len(probs) != len(payload) {
		panic(fmt.Errorf("dist: %d probabilities for %d payload items", len(probs), len(payload)))
	}
	if len(probs) == 0 {
		panic(fmt.Errorf("dist: cannot build a categorical over zero items"))
	}

	sum := 0.0
	cum := make([]float64, len(probs))
	for i, p := range probs {
		sum += p
		cum[i] = sum
	}
	if d := sum - 1.0; d > probabilityTolerance || d < -probabilityTolerance {
		panic(fmt.Errorf("dist: probabilities sum to %v, want 1.0 +/- %v", sum, probabilityTolerance))
	}

	return &Categorical[T]{
		probs:   append([]float64(nil), probs...),
		cumProb: cum,
		payload: append([]T(nil), payload...),
	}
}

// SampleIndex draws an index in [0, n) according to the distribution.
func (c *Categorical[T]) SampleIndex(rng RNG) int {
	x := rng.Float64() * c.cumProb[len(c.cumProb)-1]
	i := sort.Search(len(c.cumProb), func(i int) bool { return c.cumProb[i] >= x })
	if i >= len(c.cumProb) {
		i = len(c.cumProb) - 1
	}
	return i
}

// Sample draws a payload element according to the distribution.
func (c *Categorical[T]) Sample(rng RNG) T {
	return c.payload[c.SampleIndex(rng)]
}

// ProbabilityOf returns the probability assigned to index i.
func (c *Categorical[T]) ProbabilityOf(i int) float64 {
	return c.probs[i]
}

// Payload returns the ordered payload vector backing this distribution.
// The returned slice must not be mutated by the caller.
func (c *Categorical[T]) Payload() []T {
	return c.payload
}

// SampleIndexCDF draws an index in [0, len(weights)) from an ad-hoc,
// possibly unnormalized, probability vector by walking its CDF. It is
// used by the solver to sample from a freshly computed regret-matching
// policy without materializing a Categorical for it.
func SampleIndexCDF(weights []float64, rng RNG) int {
	if len(weights) == 0 {
		panic(fmt.Errorf("dist: cannot sample an index from zero weights"))
	}

	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		return rng.Intn(len(weights))
	}

	x := rng.Float64() * sum
	cum := 0.0
	for i, w := range weights {
		cum += w
		if cum >= x {
			return i
		}
	}
	return len(weights) - 1
}
