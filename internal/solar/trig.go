// Package solar implements the low-order solar model used to place the sun
// for prayer-time calculation: Julian dates, declination and equation of
// time, hour angles, and the fixed-pass time solver built on them.
//
// All angles are in degrees unless a name says otherwise.
package solar

import "math"

const (
	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi
)

// Sin returns the sine of d degrees.
func Sin(d float64) float64 { return math.Sin(d * deg2rad) }

// Cos returns the cosine of d degrees.
func Cos(d float64) float64 { return math.Cos(d * deg2rad) }

// Tan returns the tangent of d degrees.
func Tan(d float64) float64 { return math.Tan(d * deg2rad) }

// Asin returns the arcsine of x in degrees.
func Asin(x float64) float64 { return rad2deg * math.Asin(clamp(x)) }

// Acos returns the arccosine of x in degrees. x is clamped to [-1, 1] so the
// result is always finite.
func Acos(x float64) float64 { return rad2deg * math.Acos(clamp(x)) }

// Atan returns the arctangent of x in degrees.
func Atan(x float64) float64 { return rad2deg * math.Atan(x) }

func clamp(x float64) float64 {
	return math.Min(1, math.Max(-1, x))
}
