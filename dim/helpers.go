package dim

import (
	"math"

	"github.com/soypat/draft/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	pi  = math.Pi
	tau = 2 * math.Pi
	// arrowAspect is the arrowhead length over its base width.
	arrowAspect = 3
)

// ArrowHead returns the arrowhead with its tip at tip pointing along angle.
func ArrowHead(tip r2.Vec, angle float64, st Style) Triangle {
	size := st.ArrowSize
	half := size / (2 * arrowAspect)
	t := d2.Translate(tip).Mul(d2.RotateAbout(r2.Vec{}, angle))
	return Triangle{
		P0: tip,
		P1: t.ApplyPos(r2.Vec{X: -size, Y: half}),
		P2: t.ApplyPos(r2.Vec{X: -size, Y: -half}),
	}
}

// CentreMark returns the centre mark of a circle as set by DIMCENSTYL:
// 0 draws nothing, 1 a cross of half size DIMCENVALUE and anything greater
// adds centre line ticks reaching past the circle.
func CentreMark(centre r2.Vec, radius float64, st Style) []Primitive {
	size := st.CentreMarkSize
	if st.CentreMarkStyle == 0 || size <= 0 {
		return nil
	}
	x := r2.Vec{X: size}
	y := r2.Vec{Y: size}
	prims := []Primitive{
		LineSegment{A: r2.Sub(centre, x), B: r2.Add(centre, x)},
		LineSegment{A: r2.Sub(centre, y), B: r2.Add(centre, y)},
	}
	if st.CentreMarkStyle == 1 {
		return prims
	}
	for i := 0; i < 4; i++ {
		theta := float64(i) * pi / 2
		prims = append(prims, LineSegment{
			A: d2.Project(centre, theta, 2*size),
			B: d2.Project(centre, theta, radius+size),
		})
	}
	return prims
}

// TextDirection returns the reading direction of text running along angle:
// angles pointing left are flipped so text never reads upside down.
func TextDirection(angle float64) float64 {
	a := d2.NormAngle(angle)
	if a > pi/2 && a <= 3*pi/2 {
		return d2.NormAngle(a + pi)
	}
	return a
}

// AlignedOrOpposite reports whether directions a and b are parallel.
func AlignedOrOpposite(a, b float64) bool {
	diff := math.Mod(d2.NormAngle(a-b), pi)
	diff = d2.RoundTo(diff, d2.AnglePrecision)
	return diff == 0 || diff == d2.RoundTo(pi, d2.AnglePrecision)
}

// halfExtent returns half the extent of a w by h text box, rotated by rel
// relative to a line, measured along that line.
func halfExtent(w, h, rel float64) float64 {
	s, c := math.Sincos(rel)
	return (math.Abs(c)*w + math.Abs(s)*h) / 2
}

// verticalOffset returns the distance the label centre is moved off the
// dimension line for DIMTAD positions above or below the line.
func verticalOffset(st Style) float64 {
	switch st.Vertical {
	case VerticalCentre:
		return 0
	case VerticalBelow:
		return -(st.TextGap + st.TextHeight/2)
	}
	return st.TextGap + st.TextHeight/2
}

func unit(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n == 0 {
		return r2.Vec{}
	}
	return r2.Scale(1/n, v)
}

func along(p, u r2.Vec, dist float64) r2.Vec {
	return r2.Add(p, r2.Scale(dist, u))
}
