package d2

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	pi  = math.Pi
	tau = 2 * math.Pi
)

// AnglePrecision is the number of decimal places angles are rounded to
// before they are compared.
const AnglePrecision = 6

func Elem(sides float64) r2.Vec {
	return r2.Vec{
		X: sides,
		Y: sides,
	}
}

func EqualWithin(a, b r2.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

// MinElem return a vector with the minimum components of two vectors.
func MinElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
}

// MaxElem return a vector with the maximum components of two vectors.
func MaxElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

// Cross returns the z component of the cross product of a and b.
func Cross(a, b r2.Vec) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(b, a))
}

// Mid returns the point halfway between a and b.
func Mid(a, b r2.Vec) r2.Vec {
	return Lerp(a, b, 0.5)
}

// Lerp does a linear interpolation from a to b, t = [0,1]
func Lerp(a, b r2.Vec, t float64) r2.Vec {
	return r2.Add(a, r2.Scale(t, r2.Sub(b, a)))
}

// Direction returns the unit vector pointing at angle theta.
func Direction(theta float64) r2.Vec {
	return r2.Vec{X: math.Cos(theta), Y: math.Sin(theta)}
}

// Angle returns the angle in [0, 2π) of the vector going from a to b.
func Angle(a, b r2.Vec) float64 {
	return NormAngle(math.Atan2(b.Y-a.Y, b.X-a.X))
}

// Project returns the point found at distance dist from p in direction theta.
func Project(p r2.Vec, theta, dist float64) r2.Vec {
	return r2.Add(p, r2.Scale(dist, Direction(theta)))
}

// Rotate rotates p about centre by theta radians counter-clockwise.
func Rotate(p, centre r2.Vec, theta float64) r2.Vec {
	s, c := math.Sincos(theta)
	d := r2.Sub(p, centre)
	return r2.Vec{
		X: centre.X + d.X*c - d.Y*s,
		Y: centre.Y + d.X*s + d.Y*c,
	}
}

// Perpendicular returns the foot of the perpendicular dropped from p onto
// the infinite line through a and b. The projection parameter is not clamped.
// If a and b coincide a is returned.
func Perpendicular(p, a, b r2.Vec) r2.Vec {
	ab := r2.Sub(b, a)
	l2 := r2.Norm2(ab)
	if l2 == 0 {
		return a
	}
	t := r2.Dot(r2.Sub(p, a), ab) / l2
	return r2.Add(a, r2.Scale(t, ab))
}

// NormAngle returns theta wrapped to [0, 2π).
func NormAngle(theta float64) float64 {
	theta = math.Mod(theta, tau)
	if theta < 0 {
		theta += tau
	}
	if theta >= tau {
		// -tiny + tau rounds up to tau.
		theta = 0
	}
	return theta
}

// AngleEqual reports whether a and b are the same direction once both are
// normalised and rounded to AnglePrecision.
func AngleEqual(a, b float64) bool {
	ra := scalar.Round(NormAngle(a), AnglePrecision)
	rb := scalar.Round(NormAngle(b), AnglePrecision)
	return ra == rb || math.Abs(ra-rb) == scalar.Round(tau, AnglePrecision)
}

// AngleBetween returns the counter-clockwise sweep going from angle a to angle b, in [0, 2π).
func AngleBetween(a, b float64) float64 {
	return NormAngle(b - a)
}

// RoundTo rounds x to prec decimal places.
func RoundTo(x float64, prec int) float64 {
	return scalar.Round(x, prec)
}

// IsZero reports whether v is the zero vector.
func IsZero(v r2.Vec) bool {
	return v.X == 0 && v.Y == 0
}

// Set is a list of vectors.
type Set []r2.Vec

// Min return the minimum components of a set of vectors.
func (a Set) Min() r2.Vec {
	vmin := a[0]
	for _, v := range a[1:] {
		vmin = MinElem(vmin, v)
	}
	return vmin
}

// Max return the maximum components of a set of vectors.
func (a Set) Max() r2.Vec {
	vmax := a[0]
	for _, v := range a[1:] {
		vmax = MaxElem(vmax, v)
	}
	return vmax
}

// Box returns the smallest box containing all the vectors of the set.
func (a Set) Box() Box {
	return Box{Min: a.Min(), Max: a.Max()}
}
