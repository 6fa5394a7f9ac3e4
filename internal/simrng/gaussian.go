package simrng

import "math"

// Gaussian draws one sample from N(mean, stddev) using the Box-Muller
// transform over two uniform draws from rng. No distribution-sampling
// library in the dependency set covers this, so it's implemented directly
// against math — the one ambient concern in this package that stays on
// the standard library.
func Gaussian(rng Rng, mean, stddev float32) float32 {
	if stddev <= 0 {
		return mean
	}
	u1 := rng.Float32()
	// Avoid log(0): u1 is in [0,1); nudge the zero edge case away from it.
	if u1 <= 0 {
		u1 = 1e-7
	}
	u2 := rng.Float32()
	z0 := math.Sqrt(-2*math.Log(float64(u1))) * math.Cos(2*math.Pi*float64(u2))
	return mean + stddev*float32(z0)
}
