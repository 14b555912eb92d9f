package draft

import (
	"math"
	"strconv"

	"github.com/soypat/draft/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Role identifies which slot a point fills within the definition points of a
// dimension. Its value is the interchange field identifier of the X
// coordinate the point is stored under, so layouts look points up by role and
// never by position.
type Role int

const (
	RoleNone       Role = 0
	RoleDefinition Role = 10 // dimension line location, centre or opposite point
	RoleText       Role = 11 // label middle point
	RoleExtension1 Role = 13 // first extension line origin / first line start
	RoleExtension2 Role = 14 // second extension line origin / first line end
	RoleRadius     Role = 15 // point on the curve / second line start
	RoleArc        Role = 16 // angular dimension arc location
)

func (r Role) String() string {
	switch r {
	case RoleNone:
		return "none"
	case RoleDefinition:
		return "definition"
	case RoleText:
		return "text"
	case RoleExtension1:
		return "extension1"
	case RoleExtension2:
		return "extension2"
	case RoleRadius:
		return "radius"
	case RoleArc:
		return "arc"
	}
	return "role(" + strconv.Itoa(int(r)) + ")"
}

// Point is a 2D point. When part of a polyline, Bulge encodes the circular
// arc running from this point to the next one as tan(includedAngle/4), a
// positive bulge being counter-clockwise. Role tags the point when it is
// one of the definition points of a dimension.
type Point struct {
	r2.Vec
	Bulge float64
	Role  Role
}

// Pt returns an untagged point without bulge.
func Pt(x, y float64) Point {
	return Point{Vec: r2.Vec{X: x, Y: y}}
}

// Tagged returns p tagged with role r.
func Tagged(r Role, x, y float64) Point {
	return Point{Vec: r2.Vec{X: x, Y: y}, Role: r}
}

// Distance returns the distance from p to q.
func (p Point) Distance(q r2.Vec) float64 {
	return d2.Distance(p.Vec, q)
}

// Angle returns the direction in [0, 2π) going from p to q.
func (p Point) Angle(q r2.Vec) float64 {
	return d2.Angle(p.Vec, q)
}

// Rotate rotates p about centre by theta radians counter-clockwise.
// Bulge and role are kept.
func (p Point) Rotate(centre r2.Vec, theta float64) Point {
	p.Vec = d2.Rotate(p.Vec, centre, theta)
	return p
}

// Project returns p moved dist along direction theta. Bulge and role are kept.
func (p Point) Project(theta, dist float64) Point {
	p.Vec = d2.Project(p.Vec, theta, dist)
	return p
}

// Perpendicular returns the foot of the perpendicular from p onto the
// infinite line through a and b.
func (p Point) Perpendicular(a, b r2.Vec) r2.Vec {
	return d2.Perpendicular(p.Vec, a, b)
}

// MidPoint returns the point halfway between p and q.
func (p Point) MidPoint(q r2.Vec) r2.Vec {
	return d2.Mid(p.Vec, q)
}

// Lerp interpolates from p to q, t = [0,1].
func (p Point) Lerp(q r2.Vec, t float64) r2.Vec {
	return d2.Lerp(p.Vec, q, t)
}

// IsOnLine reports whether p lies on the segment a-b.
func (p Point) IsOnLine(a, b r2.Vec) bool {
	ab := r2.Sub(b, a)
	l := r2.Norm(ab)
	ap := r2.Sub(p.Vec, a)
	if l == 0 {
		return r2.Norm(ap) <= tolerance
	}
	if math.Abs(d2.Cross(ab, ap))/l > tolerance*math.Max(1, l) {
		return false
	}
	t := r2.Dot(ap, ab) / (l * l)
	return t >= -tolerance && t <= 1+tolerance
}

// IsOnArc reports whether the direction from the arc centre to p lies within
// the angular span of arc. The distance to the centre is not checked.
func (p Point) IsOnArc(arc Arc) bool {
	return arc.Contains(p.Vec)
}
