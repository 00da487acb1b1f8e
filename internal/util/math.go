package util

import (
	"golang.org/x/exp/constraints"
	"math"
)

// Ratio calculates the ration that target has in comparison to rangeMin and rangeMax
// Make sure that:
// rangeMin <= target <= rangeMax
// rangeMax - rangeMin != 0
func Ratio(target float64, rangeMin float64, rangeMax float64) float64 {
	return (target - rangeMin) / (rangeMax - rangeMin)
}

// Lerp linearly interpolates between a and b, t being the ratio in [0..1]
func Lerp(a float64, b float64, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits value to [minValue..maxValue]
func Clamp[T constraints.Ordered](value T, minValue T, maxValue T) T {
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}

// RoundPercent rounds the given value to the nearest integer (half away from zero)
// and clamps it to [0..100]
func RoundPercent(value float64) int {
	return Clamp(int(math.Round(value)), 0, 100)
}

// IsFinite returns false for NaN and +/-Inf
func IsFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
