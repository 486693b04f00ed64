package utils

import (
	"math"
	"math/rand/v2"
)

// RandomSource draws uniform values in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// DefaultRandom returns a goroutine-safe source backed by the math/rand/v2 global generator.
func DefaultRandom() RandomSource {
	return globalSource{}
}

// UniformRange maps a draw from src onto [lo, hi).
func UniformRange(src RandomSource, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + src.Float64()*(hi-lo)
}

// NaNTo returns fallback when v is NaN, otherwise v.
func NaNTo(v, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return v
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// RoundToUint rounds v half away from zero and converts it, flooring negatives at zero.
func RoundToUint(v float64) uint32 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(math.Round(v))
}
