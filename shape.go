package draft

import (
	"math"

	"github.com/soypat/draft/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Box is an axis aligned bounding box.
type Box = d2.Box

// Shape is a 2D entity with extents.
type Shape interface {
	// Bounds returns the axis aligned box that completely contains the shape.
	Bounds() Box
}

// Line is the segment going from A to B.
type Line struct {
	A, B r2.Vec
}

// Length returns the length of the segment.
func (l Line) Length() float64 { return d2.Distance(l.A, l.B) }

// Angle returns the direction of the segment in [0, 2π).
func (l Line) Angle() float64 { return d2.Angle(l.A, l.B) }

// Degenerate reports whether both ends of the segment coincide.
func (l Line) Degenerate() bool { return l.A == l.B }

// Bounds returns the bounding box of the segment.
func (l Line) Bounds() Box { return LineBoundingBox(l.A, l.B) }

// Circle is a full circle.
type Circle struct {
	Centre r2.Vec
	Radius float64
}

// Bounds returns the bounding box of the circle.
func (c Circle) Bounds() Box {
	return d2.Box{
		Min: r2.Sub(c.Centre, d2.Elem(c.Radius)),
		Max: r2.Add(c.Centre, d2.Elem(c.Radius)),
	}
}

// Arc is a circular arc around Centre going from Start to End.
// Direction > 0 is counter-clockwise, otherwise clockwise.
// Start and End are expected to be equidistant from Centre; the radius is
// taken from Start. Start and end angles are derived, never stored.
type Arc struct {
	Centre     r2.Vec
	Start, End r2.Vec
	Direction  float64
}

// ArcFromAngles returns the arc of the given radius going from angle
// start to angle end in the given direction.
func ArcFromAngles(centre r2.Vec, radius, start, end, direction float64) Arc {
	return Arc{
		Centre:    centre,
		Start:     d2.Project(centre, start, radius),
		End:       d2.Project(centre, end, radius),
		Direction: direction,
	}
}

// CCW reports whether the arc runs counter-clockwise.
func (a Arc) CCW() bool { return a.Direction > 0 }

// Radius returns the arc radius.
func (a Arc) Radius() float64 { return d2.Distance(a.Centre, a.Start) }

// StartAngle returns the angle of Start about Centre in [0, 2π).
func (a Arc) StartAngle() float64 { return d2.Angle(a.Centre, a.Start) }

// EndAngle returns the angle of End about Centre in [0, 2π).
func (a Arc) EndAngle() float64 { return d2.Angle(a.Centre, a.End) }

// Sweep returns the included angle of the arc in (0, 2π]. Arcs whose start
// and end angles coincide are full circles.
func (a Arc) Sweep() float64 {
	s, e := a.StartAngle(), a.EndAngle()
	var sweep float64
	if a.CCW() {
		sweep = d2.AngleBetween(s, e)
	} else {
		sweep = d2.AngleBetween(e, s)
	}
	if sweep == 0 {
		return tau
	}
	return sweep
}

// Length returns the arc length.
func (a Arc) Length() float64 { return a.Radius() * a.Sweep() }

// Circle returns the circle the arc lies on.
func (a Arc) Circle() Circle { return Circle{Centre: a.Centre, Radius: a.Radius()} }

// Mid returns the point of the arc halfway between Start and End.
func (a Arc) Mid() r2.Vec {
	half := a.Sweep() / 2
	if !a.CCW() {
		half = -half
	}
	return d2.Project(a.Centre, a.StartAngle()+half, a.Radius())
}

// Reverse returns the same arc traversed in the opposite direction.
func (a Arc) Reverse() Arc {
	dir := 1.0
	if a.CCW() {
		dir = -1
	}
	return Arc{Centre: a.Centre, Start: a.End, End: a.Start, Direction: dir}
}

// Contains reports whether the direction from Centre to p lies within the
// angular span of the arc, ends included. The distance to the centre is
// ignored, so this is also the sector membership test.
func (a Arc) Contains(p r2.Vec) bool {
	s, e := a.StartAngle(), a.EndAngle()
	if d2.AngleEqual(s, e) {
		return true // full circle
	}
	ang := d2.Angle(a.Centre, p)
	if d2.AngleEqual(ang, s) || d2.AngleEqual(ang, e) {
		return true
	}
	if a.CCW() {
		return d2.AngleBetween(s, ang) <= d2.AngleBetween(s, e)
	}
	return d2.AngleBetween(ang, s) <= d2.AngleBetween(e, s)
}

// Bounds returns the exact bounding box of the arc.
func (a Arc) Bounds() Box {
	return ArcBoundingBox(a.Centre, a.Start, a.End, a.Direction)
}

// Polyline is a chain of vertices where each vertex bulge describes the
// segment running to the following vertex.
type Polyline struct {
	Vertices []Point
	Closed   bool
}

// Segments decomposes the polyline into Line and Arc shapes.
func (pl Polyline) Segments() []Shape {
	n := len(pl.Vertices)
	if n < 2 {
		return nil
	}
	last := n - 1
	if pl.Closed {
		last = n
	}
	segs := make([]Shape, 0, last)
	for i := 0; i < last; i++ {
		p := pl.Vertices[i]
		next := pl.Vertices[(i+1)%n]
		if p.Bulge == 0 || p.Vec == next.Vec {
			segs = append(segs, Line{A: p.Vec, B: next.Vec})
			continue
		}
		segs = append(segs, p.BulgeArc(next.Vec))
	}
	return segs
}

// Bounds returns the bounding box of the polyline including its arc segments.
func (pl Polyline) Bounds() Box {
	box := d2.EmptyBox()
	for _, v := range pl.Vertices {
		box = box.Include(v.Vec)
	}
	for _, s := range pl.Segments() {
		box = box.Extend(s.Bounds())
	}
	return box
}

// Length returns the total length of the polyline.
func (pl Polyline) Length() (l float64) {
	for _, s := range pl.Segments() {
		switch s := s.(type) {
		case Line:
			l += s.Length()
		case Arc:
			l += s.Length()
		}
	}
	return l
}

// BulgeAngle returns the included angle of the arc that starts at p,
// signed like the bulge.
func (p Point) BulgeAngle() float64 {
	return 4 * math.Atan(p.Bulge)
}

// BulgeRadius returns the radius of the arc going from p to next.
// It is infinite for a zero bulge.
func (p Point) BulgeRadius(next r2.Vec) float64 {
	if p.Bulge == 0 {
		return math.Inf(1)
	}
	chord := d2.Distance(p.Vec, next)
	return chord * (1 + p.Bulge*p.Bulge) / (4 * math.Abs(p.Bulge))
}

// BulgeCentre returns the centre of the arc going from p to next. The
// centre sits on the perpendicular bisector of the chord, on the side given
// by the bulge sign, and on the far side when the arc spans more than half a
// circle. A zero bulge returns the chord midpoint.
func (p Point) BulgeCentre(next r2.Vec) r2.Vec {
	mid := d2.Mid(p.Vec, next)
	if p.Bulge == 0 {
		return mid
	}
	r := p.BulgeRadius(next)
	halfChord := d2.Distance(p.Vec, next) / 2
	apothem := math.Sqrt(math.Max(0, r*r-halfChord*halfChord))
	if math.Abs(p.BulgeAngle()) > pi {
		apothem = -apothem
	}
	chordAngle := d2.Angle(p.Vec, next)
	return d2.Project(mid, chordAngle+Sign(p.Bulge)*pi/2, apothem)
}

// BulgeArc returns the arc going from p to next described by p's bulge.
func (p Point) BulgeArc(next r2.Vec) Arc {
	return Arc{
		Centre:    p.BulgeCentre(next),
		Start:     p.Vec,
		End:       next,
		Direction: Sign(p.Bulge),
	}
}

// BulgeFromArc returns the bulge that describes arc a.
func BulgeFromArc(a Arc) float64 {
	b := math.Tan(a.Sweep() / 4)
	if !a.CCW() {
		b = -b
	}
	return b
}
