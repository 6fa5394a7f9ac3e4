// Package wear implements the piecewise wear-to-efficiency curve shared by
// every station module kind.
package wear

import "github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"

// Efficiency maps a module's wear in [0,1] to its output multiplier using
// the three-band curve from constants: nominal at 1.0 below
// WearBandDegradedThreshold, WearBandDegradedEfficiency at or above it, and
// WearBandCriticalEfficiency at or above WearBandCriticalThreshold.
func Efficiency(wear float32, c *content.Constants) float32 {
	switch {
	case wear >= c.WearBandCriticalThreshold:
		return c.WearBandCriticalEfficiency
	case wear >= c.WearBandDegradedThreshold:
		return c.WearBandDegradedEfficiency
	default:
		return 1.0
	}
}
