// Package random provides the injectable random source used by every outcome roll.
package random

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// Source produces uniform floats in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// New returns a PCG-backed source for the given seed.
func New(seed int64) *rand.Rand {
	// Non-cryptographic PRNG is intentional; outcomes only need to look random.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// IntN returns floor(r*n) for one draw, clamped to [0, n).
// Returns 0 without drawing when n <= 0.
func IntN(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	v := int(src.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

// IntRange returns an integer in [lo, hi) from one draw.
func IntRange(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + int(src.Float64()*float64(hi-lo))
}

// Chance reports whether one draw falls below p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Pick returns a uniformly chosen element of items.
func Pick[T any](src Source, items []T) T {
	return items[IntN(src, len(items))]
}
