package render

import (
	"math"
	"testing"

	"github.com/soypat/draft/dim"
	"github.com/soypat/draft/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestFlatten(t *testing.T) {
	for _, dir := range []float64{1, -1} {
		arc := dim.ArcSegment{Centre: r2.Vec{X: 1, Y: 1}, Start: r2.Vec{X: 3, Y: 1}, End: r2.Vec{X: 1, Y: 3}, Direction: dir}
		xys := flatten(arc)
		first, last := xys[0], xys[len(xys)-1]
		if !d2.EqualWithin(r2.Vec{X: first.X, Y: first.Y}, arc.Start, 1e-12) ||
			!d2.EqualWithin(r2.Vec{X: last.X, Y: last.Y}, arc.End, 1e-12) {
			t.Errorf("direction %g: ends got %v %v", dir, first, last)
		}
		// the clockwise arc runs through the lower right.
		mid := xys[len(xys)/2]
		if below := mid.Y < 1; below != (dir < 0) {
			t.Errorf("direction %g: midpoint %v on the wrong side", dir, mid)
		}
		for _, xy := range xys {
			if r := math.Hypot(xy.X-1, xy.Y-1); math.Abs(r-2) > 1e-12 {
				t.Fatalf("point %v off the circle", xy)
			}
		}
	}
}

func TestFitAspect(t *testing.T) {
	box := fitAspect(d2.Box{Max: r2.Vec{X: 10, Y: 1}}, 2)
	size := box.Size()
	if math.Abs(size.X/size.Y-2) > 1e-12 || !d2.EqualWithin(box.Center(), r2.Vec{X: 5, Y: 0.5}, 1e-12) {
		t.Errorf("got %v", box)
	}
	// a single point still gets an area.
	if size := fitAspect(d2.Box{}, 1).Size(); size.X <= 0 || size.Y <= 0 {
		t.Errorf("degenerate box size %v", size)
	}
}

func TestPrimitiveBuffer(t *testing.T) {
	var b primitiveBuffer
	b.Write([]dim.Primitive{dim.LineSegment{}, dim.Triangle{}, dim.Label{}})
	dst := make([]dim.Primitive, 2)
	if n := b.Read(dst); n != 2 || b.Len() != 1 {
		t.Errorf("read %d, %d left", n, b.Len())
	}
	if _, ok := dst[1].(dim.Triangle); !ok {
		t.Errorf("order not kept: %T", dst[1])
	}
}
