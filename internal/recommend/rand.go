package recommend

import "math/rand"

// Rand is the injectable randomness source behind the score smoothing and
// ordering jitter. Tests substitute a fixed source and assert bounded ranges
// instead of exact values.
type Rand interface {
	Float64() float64
}

type defaultRand struct{}

func (defaultRand) Float64() float64 {
	return rand.Float64()
}
