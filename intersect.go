package draft

import (
	"math"

	"github.com/soypat/draft/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Status classifies the outcome of an intersection test.
type Status int

const (
	NoIntersection Status = iota
	// Outside means the shapes do not meet and one does not contain the other.
	Outside
	// Inside means one shape lies within the other without meeting it.
	Inside
	// Tangent means the shapes touch at a single point.
	Tangent
	// Intersection means at least one intersection point was found.
	Intersection
	// Parallel lines never meet.
	Parallel
	// Coincident lines or circles overlap everywhere.
	Coincident
)

func (s Status) String() string {
	switch s {
	case NoIntersection:
		return "no intersection"
	case Outside:
		return "outside"
	case Inside:
		return "inside"
	case Tangent:
		return "tangent"
	case Intersection:
		return "intersection"
	case Parallel:
		return "parallel"
	case Coincident:
		return "coincident"
	}
	return "unknown"
}

// Intersections is the result of an intersection test. Degenerate outcomes
// (Parallel, Coincident, Outside...) are ordinary results; callers branch
// on Status.
//
// None of the tests apply a tolerance: exact equality drives the
// Parallel/Coincident and Tangent branches. Callers that need tolerance
// round their inputs first.
type Intersections struct {
	Status Status
	Points []r2.Vec
}

// Has reports whether any intersection point was found.
func (z Intersections) Has() bool { return len(z.Points) > 0 }

func (z *Intersections) add(p ...r2.Vec) {
	z.Points = append(z.Points, p...)
}

// LineLine intersects segments l1 and l2. With extend set both are treated
// as infinite lines.
func LineLine(l1, l2 Line, extend bool) Intersections {
	a1, a2, b1, b2 := l1.A, l1.B, l2.A, l2.B
	uaT := (b2.X-b1.X)*(a1.Y-b1.Y) - (b2.Y-b1.Y)*(a1.X-b1.X)
	ubT := (a2.X-a1.X)*(a1.Y-b1.Y) - (a2.Y-a1.Y)*(a1.X-b1.X)
	uB := (b2.Y-b1.Y)*(a2.X-a1.X) - (b2.X-b1.X)*(a2.Y-a1.Y)
	if uB == 0 {
		if uaT == 0 || ubT == 0 {
			return Intersections{Status: Coincident}
		}
		return Intersections{Status: Parallel}
	}
	ua := uaT / uB
	ub := ubT / uB
	if !extend && (ua < 0 || ua > 1 || ub < 0 || ub > 1) {
		return Intersections{Status: NoIntersection}
	}
	return Intersections{
		Status: Intersection,
		Points: []r2.Vec{d2.Lerp(a1, a2, ua)},
	}
}

// LineParameters returns the parametric positions ua, ub of p along l1 and l2.
// It is the inverse of LineLine for a point lying on both lines.
func LineParameters(l1, l2 Line, p r2.Vec) (ua, ub float64) {
	return lineParam(l1, p), lineParam(l2, p)
}

func lineParam(l Line, p r2.Vec) float64 {
	d := r2.Sub(l.B, l.A)
	return r2.Dot(r2.Sub(p, l.A), d) / r2.Norm2(d)
}

// CircleLine intersects circle c with segment l. The roots of the quadratic
// in the segment parameter classify the result: both outside [0,1] on the
// same side gives Outside, on opposite sides Inside (the segment lies within
// the circle), otherwise Intersection. With extend set out of segment roots
// are still reported.
func CircleLine(c Circle, l Line, extend bool) Intersections {
	d := r2.Sub(l.B, l.A)
	f := r2.Sub(l.A, c.Centre)
	a := r2.Dot(d, d)
	if a == 0 {
		return Intersections{Status: NoIntersection}
	}
	b := 2 * r2.Dot(d, f)
	cc := r2.Dot(f, f) - c.Radius*c.Radius
	deter := b*b - 4*a*cc
	switch {
	case deter < 0:
		return Intersections{Status: Outside}
	case deter == 0:
		u := -b / (2 * a)
		z := Intersections{Status: Tangent}
		if extend || (u >= 0 && u <= 1) {
			z.add(d2.Lerp(l.A, l.B, u))
		}
		return z
	}
	e := math.Sqrt(deter)
	u1 := (-b + e) / (2 * a)
	u2 := (-b - e) / (2 * a)
	in1 := u1 >= 0 && u1 <= 1
	in2 := u2 >= 0 && u2 <= 1
	var z Intersections
	if extend {
		z.Status = Intersection
		z.add(d2.Lerp(l.A, l.B, u1), d2.Lerp(l.A, l.B, u2))
		return z
	}
	if !in1 && !in2 {
		if (u1 < 0 && u2 < 0) || (u1 > 1 && u2 > 1) {
			z.Status = Outside
		} else {
			z.Status = Inside
		}
		return z
	}
	z.Status = Intersection
	if in1 {
		z.add(d2.Lerp(l.A, l.B, u1))
	}
	if in2 {
		z.add(d2.Lerp(l.A, l.B, u2))
	}
	return z
}

// CircleCircle intersects two circles using the chord construction.
func CircleCircle(c1, c2 Circle) Intersections {
	rMax := c1.Radius + c2.Radius
	rMin := math.Abs(c1.Radius - c2.Radius)
	d := d2.Distance(c1.Centre, c2.Centre)
	switch {
	case d == 0 && rMin == 0:
		return Intersections{Status: Coincident}
	case d > rMax:
		return Intersections{Status: Outside}
	case d < rMin:
		return Intersections{Status: Inside}
	}
	a := (c1.Radius*c1.Radius - c2.Radius*c2.Radius + d*d) / (2 * d)
	h := math.Sqrt(math.Max(0, c1.Radius*c1.Radius-a*a))
	u := r2.Scale(1/d, r2.Sub(c2.Centre, c1.Centre))
	p := r2.Add(c1.Centre, r2.Scale(a, u))
	if d == rMax || d == rMin {
		return Intersections{Status: Tangent, Points: []r2.Vec{p}}
	}
	n := r2.Vec{X: -u.Y, Y: u.X}
	return Intersections{
		Status: Intersection,
		Points: []r2.Vec{r2.Add(p, r2.Scale(h, n)), r2.Sub(p, r2.Scale(h, n))},
	}
}

// ArcLine intersects arc a with segment l. The circle result is filtered by
// arc membership unless extend is set, in which case the whole circle and
// infinite line are used.
func ArcLine(a Arc, l Line, extend bool) Intersections {
	z := CircleLine(a.Circle(), l, extend)
	if extend {
		return z
	}
	return filterArc(z, a)
}

// CircleArc intersects circle c with arc a. The points are filtered by arc
// membership unless extend is set.
func CircleArc(c Circle, a Arc, extend bool) Intersections {
	z := CircleCircle(c, a.Circle())
	if extend {
		return z
	}
	return filterArc(z, a)
}

// ArcArc intersects two arcs, keeping points lying on both unless extend is set.
func ArcArc(a1, a2 Arc, extend bool) Intersections {
	z := CircleCircle(a1.Circle(), a2.Circle())
	if extend {
		return z
	}
	return filterArc(filterArc(z, a1), a2)
}

func filterArc(z Intersections, a Arc) Intersections {
	if len(z.Points) == 0 {
		return z
	}
	var kept []r2.Vec
	for _, p := range z.Points {
		if a.Contains(p) {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return Intersections{Status: NoIntersection}
	}
	z.Points = kept
	return z
}

// LineRect intersects segment l with the four edges of rect.
func LineRect(l Line, rect Box) Intersections {
	return rectUnion(rect, func(edge Line) Intersections {
		return LineLine(l, edge, false)
	})
}

// CircleRect intersects circle c with the four edges of rect.
func CircleRect(c Circle, rect Box) Intersections {
	return rectUnion(rect, func(edge Line) Intersections {
		return CircleLine(c, edge, false)
	})
}

// ArcRect intersects arc a with the four edges of rect.
func ArcRect(a Arc, rect Box) Intersections {
	return rectUnion(rect, func(edge Line) Intersections {
		return ArcLine(a, edge, false)
	})
}

// PolylineRect intersects every segment of pl with the edges of rect.
func PolylineRect(pl Polyline, rect Box) Intersections {
	var z Intersections
	for _, s := range pl.Segments() {
		z.add(ShapeRect(s, rect).Points...)
	}
	if z.Has() {
		z.Status = Intersection
	}
	return z
}

// ShapeRect dispatches the rectangle test on the concrete shape type.
// Shapes without a rectangle test never intersect.
func ShapeRect(s Shape, rect Box) Intersections {
	switch s := s.(type) {
	case Line:
		return LineRect(s, rect)
	case Circle:
		return CircleRect(s, rect)
	case Arc:
		return ArcRect(s, rect)
	case Polyline:
		return PolylineRect(s, rect)
	}
	return Intersections{Status: NoIntersection}
}

// rectUnion unions the per-edge results; the status is Intersection iff
// any point was found.
func rectUnion(rect Box, edgeTest func(edge Line) Intersections) Intersections {
	var z Intersections
	for _, e := range rect.Edges() {
		z.add(edgeTest(Line{A: e[0], B: e[1]}).Points...)
	}
	if z.Has() {
		z.Status = Intersection
	}
	return z
}
