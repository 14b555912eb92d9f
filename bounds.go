package draft

import (
	"math"

	"github.com/soypat/draft/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// cardinal axis angles, in the order +X, +Y, -X, -Y.
var cardinalAxes = [4]float64{0, pi / 2, pi, 3 * pi / 2}

// LineBoundingBox returns the axis aligned box of the segment a-b.
func LineBoundingBox(a, b r2.Vec) Box {
	return d2.Box{Min: d2.MinElem(a, b), Max: d2.MaxElem(a, b)}
}

// ArcBoundingBox returns the exact axis aligned box of the arc around centre
// going from start to end. direction > 0 is counter-clockwise; zero, like
// any other non-positive direction, is clockwise as for Arc.CCW.
//
// Instead of sampling the arc, each cardinal axis is tested for crossing:
// the start and end angles are taken relative to the axis angle; a
// counter-clockwise arc crosses the axis when the relative start is not
// smaller than the relative end, and the inequality flips for clockwise arcs.
// A crossed axis extends its side of the box to centre ± radius, otherwise
// the side is given by the end points.
func ArcBoundingBox(centre, start, end r2.Vec, direction float64) Box {
	r := d2.Distance(centre, start)
	box := LineBoundingBox(start, end)
	sa := d2.Angle(centre, start)
	ea := d2.Angle(centre, end)
	for i, axis := range cardinalAxes {
		if !crossesAxis(sa, ea, axis, direction > 0) {
			continue
		}
		switch i {
		case 0:
			box.Max.X = centre.X + r
		case 1:
			box.Max.Y = centre.Y + r
		case 2:
			box.Min.X = centre.X - r
		case 3:
			box.Min.Y = centre.Y - r
		}
	}
	return box
}

func crossesAxis(start, end, axis float64, ccw bool) bool {
	ns := math.Mod(start-axis+tau, tau)
	ne := math.Mod(end-axis+tau, tau)
	if ccw {
		return ns >= ne
	}
	return ns <= ne
}

// BoundingBox returns the box enclosing all shapes. An empty box is
// returned when no shapes are given (see d2.Box.Empty).
func BoundingBox(shapes ...Shape) Box {
	box := d2.EmptyBox()
	for _, s := range shapes {
		box = box.Extend(s.Bounds())
	}
	return box
}
