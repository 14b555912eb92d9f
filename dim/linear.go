package dim

import (
	"math"

	"github.com/soypat/draft"
	"github.com/soypat/draft/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// slopePrecision is the number of decimals the cosine between the
	// reference line and the placement offset is rounded to when testing
	// whether the placement sits square off the reference line.
	slopePrecision = 3
	// minLength is the shortest measurable distance.
	minLength = 1e-9
)

// Linear is the geometry of rotated and aligned dimensions.
type Linear struct {
	Origin1 Ref // first extension line origin
	Origin2 Ref // second extension line origin
	Line    Ref // dimension line location
	Text    Ref // user label position
	// Aligned dimensions always run parallel to the origins.
	Aligned bool
}

func (g *Linear) set(r draft.Role, v r2.Vec) bool {
	ref := Ref{Vec: v, Valid: true}
	switch r {
	case draft.RoleExtension1:
		g.Origin1 = ref
	case draft.RoleExtension2:
		g.Origin2 = ref
	case draft.RoleDefinition:
		g.Line = ref
	case draft.RoleText:
		g.Text = ref
	default:
		return false
	}
	return true
}

func (g *Linear) Points() []draft.Point {
	return tagged(map[draft.Role]Ref{
		draft.RoleExtension1: g.Origin1,
		draft.RoleExtension2: g.Origin2,
		draft.RoleDefinition: g.Line,
		draft.RoleText:       g.Text,
	})
}

// Angle returns the direction of the dimension line. Aligned dimensions and
// rotated dimensions placed square off the middle of the origins follow the
// origins, otherwise the dimension is horizontal or vertical depending on
// which side of the origins the placement is.
func (g *Linear) Angle() float64 {
	p1, p2 := g.Origin1.Vec, g.Origin2.Vec
	ref := d2.Angle(p1, p2)
	if g.Aligned {
		return ref
	}
	off := r2.Sub(g.Line.Vec, d2.Mid(p1, p2))
	if !d2.IsZero(off) && d2.RoundTo(r2.Dot(unit(r2.Sub(p2, p1)), unit(off)), slopePrecision) == 0 {
		return ref
	}
	switch {
	case p1.Y == p2.Y:
		return 0
	case p1.X == p2.X:
		return pi / 2
	}
	if beyond(g.Line.X, p1.X, p2.X) > beyond(g.Line.Y, p1.Y, p2.Y) {
		return pi / 2
	}
	return 0
}

// beyond returns how far v lies outside the range spanned by a and b.
func beyond(v, a, b float64) float64 {
	lo, hi := math.Min(a, b), math.Max(a, b)
	switch {
	case v < lo:
		return lo - v
	case v > hi:
		return v - hi
	}
	return 0
}

// feet returns the ends of the dimension line: the feet of the perpendiculars
// dropped from the origins onto the line through the placement.
func (g *Linear) feet() (f1, f2 r2.Vec, ok bool) {
	if !g.Origin1.Valid || !g.Origin2.Valid || !g.Line.Valid || g.Origin1.Vec == g.Origin2.Vec {
		return f1, f2, false
	}
	q := along(g.Line.Vec, d2.Direction(g.Angle()), 1)
	f1 = d2.Perpendicular(g.Origin1.Vec, g.Line.Vec, q)
	f2 = d2.Perpendicular(g.Origin2.Vec, g.Line.Vec, q)
	return f1, f2, d2.Distance(f1, f2) > minLength
}

func (g *Linear) measure() (float64, bool) {
	f1, f2, ok := g.feet()
	if !ok {
		return 0, false
	}
	return d2.Distance(f1, f2), true
}

func (g *Linear) layout(d *Dimension, st Style) []Primitive {
	f1, f2, ok := g.feet()
	if !ok {
		return nil
	}
	length := d2.Distance(f1, f2)
	phi := d2.Angle(f1, f2)
	u := d2.Direction(phi)
	n := r2.Vec{X: -u.Y, Y: u.X}
	p1, p2 := g.Origin1.Vec, g.Origin2.Vec
	e1 := extensionDir(p1, f1, n)
	e2 := extensionDir(p2, f2, n)
	ext1End := along(f1, e1, st.ExtensionExtend)
	ext2End := along(f2, e2, st.ExtensionExtend)

	asz, gap, txt := st.ArrowSize, st.TextGap, st.TextHeight
	text, visible := d.label(st, length)
	var w float64
	if visible {
		w = TextWidth(text, txt)
	}
	arrowsInside := 2*asz <= length
	need := w + 2*gap
	if st.Vertical == VerticalCentre {
		need += 2 * asz
	}
	textInside := !visible || need <= length

	var (
		lbl    Label
		split  bool
		leader bool
		at     r2.Vec
		ha     float64
	)
	switch {
	case !visible:
	case d.userText(g.Text):
		rot := TextDirection(phi)
		if st.InsideHorizontal {
			rot = 0
		}
		lbl = Label{Position: g.Text.Vec, Rotation: d.rotation(rot)}
	case st.Justify == JustifyAboveFirst || st.Justify == JustifyAboveSecond:
		e, f, end := e1, f1, &ext1End
		if st.Justify == JustifyAboveSecond {
			e, f, end = e2, f2, &ext2End
		}
		rot := d.rotation(TextDirection(d2.Angle(r2.Vec{}, e)))
		pos := along(f, e, gap+w/2)
		pos = along(pos, d2.Direction(rot+pi/2), gap+txt/2)
		lbl = Label{Position: pos, Rotation: rot}
		if reach := 2*gap + w; reach > st.ExtensionExtend {
			*end = along(f, e, reach)
		}
	default:
		horizontal := st.OutsideHorizontal
		if textInside {
			horizontal = st.InsideHorizontal
		}
		rot := TextDirection(phi)
		if horizontal {
			rot = 0
		}
		rot = d.rotation(rot)
		ha = halfExtent(w, txt, rot-phi)
		switch {
		case !textInside:
			at = along(f2, u, 2*asz+gap+ha)
			leader = true
		case st.Justify == JustifyFirst:
			at = along(f1, u, asz+gap+ha)
		case st.Justify == JustifySecond:
			at = along(f2, u, -(asz + gap + ha))
		default:
			at = d2.Mid(f1, f2)
		}
		pos := at
		if st.Vertical != VerticalCentre {
			// above is the side text running along the line reads upwards.
			up := n
			if r2.Dot(d2.Direction(TextDirection(phi)+pi/2), n) < 0 {
				up = r2.Scale(-1, n)
			}
			switch st.Vertical {
			case VerticalBelow:
				up = r2.Scale(-1, up)
			case VerticalOutside:
				up = n
				if r2.Dot(r2.Sub(f1, p1), n)+r2.Dot(r2.Sub(f2, p2), n) < 0 {
					up = r2.Scale(-1, n)
				}
			}
			pos = along(pos, up, gap+halfExtent(w, txt, rot-phi+pi/2))
		}
		lbl = Label{Position: pos, Rotation: rot}
		split = st.Vertical == VerticalCentre && textInside && AlignedOrOpposite(rot, phi)
	}

	var prims []Primitive
	if !st.SuppressExt1 {
		prims = append(prims, LineSegment{A: along(p1, e1, st.ExtensionOffset), B: ext1End})
	}
	if !st.SuppressExt2 {
		prims = append(prims, LineSegment{A: along(p2, e2, st.ExtensionOffset), B: ext2End})
	}
	if arrowsInside || st.ForceLineInside {
		c1, c2 := d2.Mid(f1, f2), d2.Mid(f1, f2)
		if split {
			c1 = along(at, u, -(ha + gap))
			c2 = along(at, u, ha+gap)
		}
		if !split && !st.SuppressDim1 && !st.SuppressDim2 {
			prims = append(prims, LineSegment{A: f1, B: f2})
		} else {
			if !st.SuppressDim1 {
				prims = append(prims, LineSegment{A: f1, B: c1})
			}
			if !st.SuppressDim2 {
				prims = append(prims, LineSegment{A: c2, B: f2})
			}
		}
	}
	tail := 2 * asz
	if arrowsInside {
		if !st.SuppressDim1 {
			prims = append(prims, ArrowHead(f1, phi+pi, st))
		}
		if !st.SuppressDim2 {
			prims = append(prims, ArrowHead(f2, phi, st))
		}
	} else {
		if !st.SuppressDim1 {
			prims = append(prims, ArrowHead(f1, phi, st), LineSegment{A: along(f1, u, -tail), B: f1})
		}
		if !st.SuppressDim2 {
			prims = append(prims, ArrowHead(f2, phi+pi, st))
		}
	}
	if (!arrowsInside || leader) && !st.SuppressDim2 {
		prims = append(prims, LineSegment{A: f2, B: along(f2, u, tail)})
	}
	if visible {
		lbl.Text = text
		lbl.Height = txt
		prims = append(prims, lbl)
	}
	return prims
}

// extensionDir returns the direction extension lines run from origin p
// towards the dimension line foot f. An origin on the dimension line uses
// the fallback normal n.
func extensionDir(p, f, n r2.Vec) r2.Vec {
	if e := unit(r2.Sub(f, p)); !d2.IsZero(e) {
		return e
	}
	return n
}
