package dim

import (
	"github.com/soypat/draft"
	"github.com/soypat/draft/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Primitive is one drawable element produced by laying out a dimension:
// a LineSegment, ArcSegment, Triangle or Label.
type Primitive interface {
	Bounds() draft.Box
	primitive()
}

// LineSegment is a straight line from A to B.
type LineSegment struct {
	A, B r2.Vec
}

// ArcSegment is a circular arc. Direction > 0 is counter-clockwise.
type ArcSegment struct {
	Centre    r2.Vec
	Start     r2.Vec
	End       r2.Vec
	Direction float64
}

// Triangle is a filled triangle, used for arrowheads. P0 is the tip.
type Triangle struct {
	P0, P1, P2 r2.Vec
}

// HAlign is the horizontal anchor of a label relative to its Position.
type HAlign uint8

const (
	HAlignCentre HAlign = iota
	HAlignLeft          // text starts at Position
	HAlignRight         // text ends at Position
)

// VAlign is the vertical anchor of a label relative to its Position.
type VAlign uint8

const (
	VAlignMiddle VAlign = iota
	VAlignBottom        // text sits on Position
	VAlignTop           // text hangs from Position
)

// Label is a single line of text. Rotation is in radians.
type Label struct {
	Position r2.Vec
	Rotation float64
	Height   float64
	Text     string
	HAlign   HAlign
	VAlign   VAlign
}

func (LineSegment) primitive() {}
func (ArcSegment) primitive()  {}
func (Triangle) primitive()    {}
func (Label) primitive()       {}

// Bounds returns the bounding box of the segment.
func (l LineSegment) Bounds() draft.Box { return draft.LineBoundingBox(l.A, l.B) }

// Arc returns the arc as a draft shape.
func (a ArcSegment) Arc() draft.Arc {
	return draft.Arc{Centre: a.Centre, Start: a.Start, End: a.End, Direction: a.Direction}
}

// Bounds returns the exact bounding box of the arc.
func (a ArcSegment) Bounds() draft.Box {
	return draft.ArcBoundingBox(a.Centre, a.Start, a.End, a.Direction)
}

// Bounds returns the bounding box of the triangle.
func (t Triangle) Bounds() draft.Box {
	return d2.Set{t.P0, t.P1, t.P2}.Box()
}

// Width returns the advance width of the label text.
func (l Label) Width() float64 { return TextWidth(l.Text, l.Height) }

// Corners returns the corners of the text rectangle in counter-clockwise
// order starting at the bottom left of the text.
func (l Label) Corners() d2.Set {
	local, t := l.frame()
	return t.ApplySet(local.Vertices())
}

// Bounds returns the bounding box of the rotated text rectangle.
func (l Label) Bounds() draft.Box {
	local, t := l.frame()
	return t.ApplyBox(local)
}

// frame returns the text rectangle relative to the anchor and the transform
// placing it in the drawing.
func (l Label) frame() (d2.Box, d2.Transform) {
	w, h := l.Width(), l.Height
	var x0, y0 float64
	switch l.HAlign {
	case HAlignCentre:
		x0 = -w / 2
	case HAlignRight:
		x0 = -w
	}
	switch l.VAlign {
	case VAlignMiddle:
		y0 = -h / 2
	case VAlignTop:
		y0 = -h
	}
	local := d2.Box{Min: r2.Vec{X: x0, Y: y0}, Max: r2.Vec{X: x0 + w, Y: y0 + h}}
	return local, d2.Translate(l.Position).Mul(d2.RotateAbout(r2.Vec{}, l.Rotation))
}

// Bounds returns the box containing every primitive in prims.
func Bounds(prims []Primitive) draft.Box {
	box := d2.EmptyBox()
	for _, p := range prims {
		box = box.Extend(p.Bounds())
	}
	return box
}
