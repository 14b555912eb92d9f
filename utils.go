package draft

import (
	"math"
)

const (
	pi  = math.Pi
	tau = 2 * pi
	// tolerance is used by the membership predicates (IsOnLine, IsOnArc radius
	// checks). The intersection routines themselves never use it.
	tolerance = 1e-9
)

// DtoR converts degrees to radians
func DtoR(degrees float64) float64 {
	return (pi / 180) * degrees
}

// RtoD converts radians to degrees
func RtoD(radians float64) float64 {
	return (180 / pi) * radians
}

// Sign returns the sign of x
func Sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	if x > 0 {
		return 1
	}
	return 0
}
