package dim

import (
	"math"

	"github.com/soypat/draft"
	"github.com/soypat/draft/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Radial is the geometry of a radius dimension.
type Radial struct {
	Centre Ref
	Point  Ref // point on the curve
	Text   Ref // label placement
}

func (g *Radial) set(r draft.Role, v r2.Vec) bool {
	ref := Ref{Vec: v, Valid: true}
	switch r {
	case draft.RoleDefinition:
		g.Centre = ref
	case draft.RoleRadius:
		g.Point = ref
	case draft.RoleText:
		g.Text = ref
	default:
		return false
	}
	return true
}

func (g *Radial) Points() []draft.Point {
	return tagged(map[draft.Role]Ref{
		draft.RoleDefinition: g.Centre,
		draft.RoleRadius:     g.Point,
		draft.RoleText:       g.Text,
	})
}

func (g *Radial) measure() (float64, bool) {
	if !g.Centre.Valid || !g.Point.Valid {
		return 0, false
	}
	r := d2.Distance(g.Centre.Vec, g.Point.Vec)
	return r, r > minLength
}

func (g *Radial) layout(d *Dimension, st Style) []Primitive {
	if !g.Centre.Valid || !g.Point.Valid || !g.Text.Valid {
		return nil
	}
	return radialLayout(d, st, radialFrame{
		centre:    g.Centre.Vec,
		point:     g.Point.Vec,
		far:       g.Centre.Vec,
		placement: g.Text.Vec,
	})
}

// Diametric is the geometry of a diameter dimension. The centre is the
// midpoint of the two points on the curve.
type Diametric struct {
	Point    Ref // point on the curve
	Opposite Ref // diametrically opposite point
	Text     Ref // label placement
}

func (g *Diametric) set(r draft.Role, v r2.Vec) bool {
	ref := Ref{Vec: v, Valid: true}
	switch r {
	case draft.RoleRadius:
		g.Point = ref
	case draft.RoleDefinition:
		g.Opposite = ref
	case draft.RoleText:
		g.Text = ref
	default:
		return false
	}
	return true
}

func (g *Diametric) Points() []draft.Point {
	return tagged(map[draft.Role]Ref{
		draft.RoleRadius:     g.Point,
		draft.RoleDefinition: g.Opposite,
		draft.RoleText:       g.Text,
	})
}

func (g *Diametric) measure() (float64, bool) {
	if !g.Point.Valid || !g.Opposite.Valid {
		return 0, false
	}
	dia := d2.Distance(g.Point.Vec, g.Opposite.Vec)
	return dia, dia > minLength
}

func (g *Diametric) layout(d *Dimension, st Style) []Primitive {
	if !g.Point.Valid || !g.Opposite.Valid || !g.Text.Valid {
		return nil
	}
	return radialLayout(d, st, radialFrame{
		centre:    d2.Mid(g.Point.Vec, g.Opposite.Vec),
		point:     g.Point.Vec,
		far:       g.Opposite.Vec,
		placement: g.Text.Vec,
		diameter:  true,
	})
}

type radialFrame struct {
	centre, point r2.Vec
	// far is where a line forced inside ends: the centre for radii, the
	// opposite point for diameters.
	far       r2.Vec
	placement r2.Vec
	diameter  bool
}

// realign moves the placement onto the ray going from the centre through
// the point on the curve, keeping it at least an arrow and a text height
// away from the curve. The returned distance is measured from the centre.
func (f radialFrame) realign(st Style, radius float64) float64 {
	u := unit(r2.Sub(f.point, f.centre))
	p := f.placement
	if d2.RoundTo(d2.Cross(u, r2.Sub(p, f.centre)), d2.AnglePrecision) != 0 {
		horizontal := draft.Line{A: p, B: r2.Add(p, r2.Vec{X: 1})}
		z := draft.LineLine(horizontal, draft.Line{A: f.centre, B: f.point}, true)
		if z.Status == draft.Intersection {
			p = z.Points[0]
		} else {
			p = d2.Perpendicular(p, f.centre, f.point)
		}
	}
	t := math.Max(0, r2.Dot(r2.Sub(p, f.centre), u))
	minDist := st.ArrowSize + st.TextHeight
	if math.Abs(t-radius) < minDist {
		if t >= radius {
			t = radius + minDist
		} else {
			t = math.Max(0, radius-minDist)
		}
	}
	return t
}

func radialLayout(d *Dimension, st Style, f radialFrame) []Primitive {
	radius := d2.Distance(f.centre, f.point)
	if radius <= minLength {
		return nil
	}
	value := radius
	if f.diameter {
		value *= 2
	}
	theta := d2.Angle(f.centre, f.point)
	u := d2.Direction(theta)
	t := f.realign(st, radius)
	p := along(f.centre, u, t)
	inside := t < radius

	asz, gap, txt := st.ArrowSize, st.TextGap, st.TextHeight
	text, visible := d.label(st, value)
	var w float64
	if visible {
		w = TextWidth(text, txt)
	}
	horizontal := st.OutsideHorizontal
	if inside {
		horizontal = st.InsideHorizontal
	}

	var prims []Primitive
	lbl := Label{Text: text, Height: txt}
	if inside {
		rot := TextDirection(theta)
		if horizontal {
			rot = 0
		}
		rot = d.rotation(rot)
		lbl.Position = p
		lbl.Rotation = rot
		var ext float64
		if visible && st.Vertical == VerticalCentre {
			ext = halfExtent(w, txt, rot-theta) + gap
		} else if visible {
			lbl.Position = along(p, d2.Direction(rot+pi/2), verticalOffset(st))
		}
		if a := t + ext; a < radius {
			prims = append(prims, LineSegment{A: along(f.centre, u, a), B: f.point})
		}
		prims = append(prims, ArrowHead(f.point, theta, st))
		if b := t - ext; f.diameter || st.ForceLineInside {
			if reachFar := -d2.Distance(f.centre, f.far); b > reachFar {
				prims = append(prims, LineSegment{A: along(f.centre, u, b), B: f.far})
			}
			prims = append(prims, ArrowHead(f.far, theta+pi, st))
		}
	} else {
		prims = append(prims,
			LineSegment{A: f.point, B: p},
			ArrowHead(f.point, theta+pi, st),
		)
		if horizontal {
			dir := 1.0
			if u.X < 0 {
				dir = -1
			}
			legEnd := along(p, r2.Vec{X: dir}, asz)
			prims = append(prims, LineSegment{A: p, B: legEnd})
			lbl.Position = along(legEnd, r2.Vec{X: dir}, gap)
			lbl.Rotation = d.rotation(0)
			lbl.HAlign = HAlignLeft
			if dir < 0 {
				lbl.HAlign = HAlignRight
			}
			switch st.Vertical {
			case VerticalCentre:
			case VerticalBelow:
				lbl.Position.Y -= gap
				lbl.VAlign = VAlignTop
			default:
				lbl.Position.Y += gap
				lbl.VAlign = VAlignBottom
			}
		} else {
			rot := d.rotation(TextDirection(theta))
			lbl.Rotation = rot
			lbl.Position = along(p, u, gap+halfExtent(w, txt, rot-theta))
			if st.Vertical != VerticalCentre {
				lbl.Position = along(lbl.Position, d2.Direction(rot+pi/2), verticalOffset(st))
			}
		}
		if st.ForceLineInside {
			prims = append(prims,
				LineSegment{A: f.point, B: f.far},
				ArrowHead(f.far, theta+pi, st),
			)
		}
	}
	if visible {
		prims = append(prims, lbl)
	}
	if !st.ForceLineInside {
		prims = append(prims, CentreMark(f.centre, radius, st)...)
	}
	return prims
}
