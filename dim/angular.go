package dim

import (
	"math"
	"sort"

	"github.com/soypat/draft"
	"github.com/soypat/draft/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// boundaryEndsQuadrant decides which quadrant owns an arc location lying
// exactly on one of the four rays: when true it belongs to the quadrant that
// ends at the ray, sweeping counter-clockwise from the first line, otherwise
// to the quadrant that starts there.
const boundaryEndsQuadrant = true

// Angular is the geometry of an angle between two lines. The vertex is the
// intersection of the infinite lines; the arc location selects which of the
// four quadrants they form is measured.
type Angular struct {
	Line1Start, Line1End Ref
	Line2Start, Line2End Ref
	Arc                  Ref // dimension arc location
	Text                 Ref // user label position
}

func (g *Angular) set(r draft.Role, v r2.Vec) bool {
	ref := Ref{Vec: v, Valid: true}
	switch r {
	case draft.RoleExtension1:
		g.Line1Start = ref
	case draft.RoleExtension2:
		g.Line1End = ref
	case draft.RoleRadius:
		g.Line2Start = ref
	case draft.RoleDefinition:
		g.Line2End = ref
	case draft.RoleArc:
		g.Arc = ref
	case draft.RoleText:
		g.Text = ref
	default:
		return false
	}
	return true
}

func (g *Angular) Points() []draft.Point {
	return tagged(map[draft.Role]Ref{
		draft.RoleExtension1: g.Line1Start,
		draft.RoleExtension2: g.Line1End,
		draft.RoleRadius:     g.Line2Start,
		draft.RoleDefinition: g.Line2End,
		draft.RoleArc:        g.Arc,
		draft.RoleText:       g.Text,
	})
}

// sector is the measured quadrant: the arc runs counter-clockwise from
// start by sweep at radius around vertex.
type sector struct {
	vertex       r2.Vec
	radius       float64
	start, sweep float64
	// extent is how far the reference lines reach along the start and end rays.
	extent [2]float64
}

type ray struct {
	angle float64
	line  draft.Line
}

func (g *Angular) sector() (sector, bool) {
	var s sector
	if !g.Line1Start.Valid || !g.Line1End.Valid || !g.Line2Start.Valid || !g.Line2End.Valid || !g.Arc.Valid {
		return s, false
	}
	l1 := draft.Line{A: g.Line1Start.Vec, B: g.Line1End.Vec}
	l2 := draft.Line{A: g.Line2Start.Vec, B: g.Line2End.Vec}
	if l1.Degenerate() || l2.Degenerate() {
		return s, false
	}
	z := draft.LineLine(l1, l2, true)
	if z.Status != draft.Intersection {
		return s, false
	}
	v := z.Points[0]
	r := d2.Distance(v, g.Arc.Vec)
	if r <= minLength {
		return s, false
	}
	a1, a2 := rayAngle(v, l1), rayAngle(v, l2)
	rays := []ray{
		{a1, l1},
		{a2, l2},
		{d2.NormAngle(a1 + pi), l1},
		{d2.NormAngle(a2 + pi), l2},
	}
	full := d2.RoundTo(tau, d2.AnglePrecision)
	rel := func(a float64) float64 {
		x := d2.RoundTo(d2.AngleBetween(a1, a), d2.AnglePrecision)
		if x == full {
			return 0
		}
		return x
	}
	sort.SliceStable(rays, func(i, j int) bool { return rel(rays[i].angle) < rel(rays[j].angle) })
	pa := rel(d2.Angle(v, g.Arc.Vec))
	if boundaryEndsQuadrant && pa == 0 {
		pa = full
	}
	q := -1
	for i := range rays {
		lo, hi := rel(rays[i].angle), full
		if i+1 < len(rays) {
			hi = rel(rays[i+1].angle)
		}
		if boundaryEndsQuadrant && pa > lo && pa <= hi || !boundaryEndsQuadrant && pa >= lo && pa < hi {
			q = i
			break
		}
	}
	if q < 0 {
		return s, false
	}
	first, last := rays[q], rays[(q+1)%len(rays)]
	s = sector{
		vertex: v,
		radius: r,
		start:  first.angle,
		sweep:  d2.AngleBetween(first.angle, last.angle),
		extent: [2]float64{reach(v, first), reach(v, last)},
	}
	return s, s.sweep > 0
}

// rayAngle returns the direction from v towards the end of l farthest from v.
func rayAngle(v r2.Vec, l draft.Line) float64 {
	if d2.Distance(v, l.A) > d2.Distance(v, l.B) {
		return d2.Angle(v, l.A)
	}
	return d2.Angle(v, l.B)
}

// reach returns how far the line of rr extends from v along the ray.
func reach(v r2.Vec, rr ray) float64 {
	u := d2.Direction(rr.angle)
	a := r2.Dot(r2.Sub(rr.line.A, v), u)
	b := r2.Dot(r2.Sub(rr.line.B, v), u)
	return math.Max(0, math.Max(a, b))
}

func (g *Angular) measure() (float64, bool) {
	s, ok := g.sector()
	if !ok {
		return 0, false
	}
	return draft.RtoD(s.sweep), true
}

func (g *Angular) layout(d *Dimension, st Style) []Primitive {
	s, ok := g.sector()
	if !ok {
		return nil
	}
	v, r := s.vertex, s.radius
	start, sweep := s.start, s.sweep
	end := start + sweep
	asz, gap, txt := st.ArrowSize, st.TextGap, st.TextHeight

	text, visible := d.label(st, draft.RtoD(sweep))
	var w, hw float64
	if visible {
		w = TextWidth(text, txt)
		hw = (w/2 + gap) / r
	}
	aa := asz / r
	arrowsInside := 2*aa <= sweep
	need := 2 * hw
	if st.Vertical == VerticalCentre {
		need += 2 * aa
	}
	textInside := !visible || need <= sweep

	extEnd := [2]float64{r + st.ExtensionExtend, r + st.ExtensionExtend}
	var (
		onRay  [2]bool
		lbl    Label
		split  bool
		leader bool
		lam    float64
	)
	switch {
	case !visible:
	case d.userText(g.Text):
		rot := TextDirection(d2.Angle(v, g.Text.Vec) + pi/2)
		if st.InsideHorizontal {
			rot = 0
		}
		lbl = Label{Position: g.Text.Vec, Rotation: d.rotation(rot)}
	case st.Justify == JustifyAboveFirst || st.Justify == JustifyAboveSecond:
		k, theta := 0, start
		if st.Justify == JustifyAboveSecond {
			k, theta = 1, end
		}
		rot := d.rotation(TextDirection(theta))
		pos := d2.Project(v, theta, r+gap+w/2)
		pos = along(pos, d2.Direction(rot+pi/2), gap+txt/2)
		lbl = Label{Position: pos, Rotation: rot}
		extEnd[k] = math.Max(extEnd[k], r+2*gap+w)
		onRay[k] = true
	default:
		// Positions along the arc are angles so the label rotates about the
		// vertex instead of moving along a straight line.
		switch {
		case !textInside:
			lam = end + 2*aa + hw
			leader = true
		case st.Justify == JustifyFirst:
			lam = start + aa + hw
		case st.Justify == JustifySecond:
			lam = end - aa - hw
		default:
			lam = start + sweep/2
		}
		horizontal := st.OutsideHorizontal
		if textInside {
			horizontal = st.InsideHorizontal
		}
		rot := TextDirection(lam + pi/2)
		if horizontal {
			rot = 0
		}
		lbl = Label{Position: d2.Project(v, lam, r+verticalOffset(st)), Rotation: d.rotation(rot)}
		split = st.Vertical == VerticalCentre && textInside
	}

	var prims []Primitive
	suppressExt := [2]bool{st.SuppressExt1, st.SuppressExt2}
	for k, theta := range [2]float64{start, end} {
		from := s.extent[k] + st.ExtensionOffset
		needed := onRay[k] || r > s.extent[k]+st.ExtensionExtend
		if suppressExt[k] || !needed || from >= extEnd[k] {
			continue
		}
		prims = append(prims, LineSegment{A: d2.Project(v, theta, from), B: d2.Project(v, theta, extEnd[k])})
	}

	arc := func(a, b float64) ArcSegment {
		return ArcSegment{Centre: v, Start: d2.Project(v, a, r), End: d2.Project(v, b, r), Direction: 1}
	}
	if arrowsInside || st.ForceLineInside {
		c1, c2 := start+sweep/2, start+sweep/2
		if split {
			c1, c2 = lam-hw, lam+hw
		}
		if !split && !st.SuppressDim1 && !st.SuppressDim2 {
			prims = append(prims, arc(start, end))
		} else {
			if !st.SuppressDim1 {
				prims = append(prims, arc(start, c1))
			}
			if !st.SuppressDim2 {
				prims = append(prims, arc(c2, end))
			}
		}
	}
	// Arrowheads lie along the chord from their base to their tip.
	chord := math.Asin(math.Min(1, asz/(2*r)))
	p1, p2 := d2.Project(v, start, r), d2.Project(v, end, r)
	tail := 2 * aa
	if arrowsInside {
		if !st.SuppressDim1 {
			prims = append(prims, ArrowHead(p1, start-pi/2+chord, st))
		}
		if !st.SuppressDim2 {
			prims = append(prims, ArrowHead(p2, end+pi/2-chord, st))
		}
	} else {
		if !st.SuppressDim1 {
			prims = append(prims, ArrowHead(p1, start+pi/2-chord, st), arc(start-tail, start))
		}
		if !st.SuppressDim2 {
			prims = append(prims, ArrowHead(p2, end-pi/2+chord, st))
		}
	}
	if (!arrowsInside || leader) && !st.SuppressDim2 {
		prims = append(prims, arc(end, end+tail))
	}
	if visible {
		lbl.Text = text
		lbl.Height = txt
		prims = append(prims, lbl)
	}
	return prims
}
