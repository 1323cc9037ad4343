// Package floatutils provides utilities for working with floats
package floatutils

import (
	"math"

	"gonum.org/v1/gonum/spatial/r1"
)

var (
	// Unit is the closed interval [0, 1]
	Unit = r1.Interval{Min: 0, Max: 1}
)

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max
// If min exceeds the floating point, then the function returns the min
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// ClipInterval is a wrapper to use Clip with an r1.Interval instead of
// a separate max and min value
func ClipInterval(value float64, interval r1.Interval) float64 {
	return Clip(value, interval.Min, interval.Max)
}

// InInterval returns whether value lies in the closed interval. NaN is
// never in an interval.
func InInterval(value float64, interval r1.Interval) bool {
	return value >= interval.Min && value <= interval.Max
}

// InLeftOpen returns whether value lies in the interval with its
// minimum excluded
func InLeftOpen(value float64, interval r1.Interval) bool {
	return value > interval.Min && value <= interval.Max
}
