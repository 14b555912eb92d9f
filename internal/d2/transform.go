package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Transform represents a 2D affine transformation
// including translation and rotation.
type Transform struct {
	data [3 * 3]float64 // row major
}

func NewTransform(data []float64) Transform {
	if len(data) != 9 {
		panic("bad length")
	}
	t := Transform{}
	copy(t.data[:], data)
	return t
}

// Identity returns the identity transform.
func Identity() Transform {
	return NewTransform([]float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
}

// Translate returns a transform translating by v.
func Translate(v r2.Vec) Transform {
	return NewTransform([]float64{
		1, 0, v.X,
		0, 1, v.Y,
		0, 0, 1,
	})
}

// RotateAbout returns a transform rotating by theta radians
// counter-clockwise around centre.
func RotateAbout(centre r2.Vec, theta float64) Transform {
	s, c := math.Sincos(theta)
	rot := NewTransform([]float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	})
	return Translate(centre).Mul(rot).Mul(Translate(r2.Scale(-1, centre)))
}

func (t *Transform) At(i, j int) float64 {
	return t.data[i*3+j]
}

func (t *Transform) Set(i, j int, v float64) {
	t.data[i*3+j] = v
}

// Mul multiplies 3x3 matrices. The result applies b first, then a.
func (a Transform) Mul(b Transform) Transform {
	m := Transform{}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, a.At(i, 0)*b.At(0, j)+a.At(i, 1)*b.At(1, j)+a.At(i, 2)*b.At(2, j))
		}
	}
	return m
}

func (t Transform) ApplyPos(b r2.Vec) r2.Vec {
	return r2.Vec{
		X: t.At(0, 0)*b.X + t.At(0, 1)*b.Y + t.At(0, 2),
		Y: t.At(1, 0)*b.X + t.At(1, 1)*b.Y + t.At(1, 2),
	}
}

// ApplySet transforms every vector of a set in place and returns it.
func (t Transform) ApplySet(s Set) Set {
	for i := range s {
		s[i] = t.ApplyPos(s[i])
	}
	return s
}

// ApplyBox rotates/translates a 2d bounding box and resizes for axis-alignment.
func (a Transform) ApplyBox(box Box) Box {
	// http://dev.theomader.com/transform-bounding-boxes/
	r := r2.Vec{X: a.At(0, 0), Y: a.At(1, 0)}
	u := r2.Vec{X: a.At(0, 1), Y: a.At(1, 1)}
	t := r2.Vec{X: a.At(0, 2), Y: a.At(1, 2)}
	xa := r2.Scale(box.Min.X, r)
	xb := r2.Scale(box.Max.X, r)
	ya := r2.Scale(box.Min.Y, u)
	yb := r2.Scale(box.Max.Y, u)
	xa, xb = MinElem(xa, xb), MaxElem(xa, xb)
	ya, yb = MinElem(ya, yb), MaxElem(ya, yb)
	min := r2.Add(r2.Add(xa, ya), t)
	max := r2.Add(r2.Add(xb, yb), t)
	return Box{min, max}
}
