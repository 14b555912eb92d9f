package dim_test

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/soypat/draft"
	"github.com/soypat/draft/dim"
	"github.com/soypat/draft/internal/d2"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

func tag(r draft.Role, x, y float64) draft.Point { return draft.Tagged(r, x, y) }

func mustDim(t *testing.T, code int, pts ...draft.Point) *dim.Dimension {
	t.Helper()
	d, err := dim.NewDimension(code, pts)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

type census struct {
	lines, arcs, arrows int
	labels              []dim.Label
}

func count(prims []dim.Primitive) census {
	var c census
	for _, p := range prims {
		switch p := p.(type) {
		case dim.LineSegment:
			c.lines++
		case dim.ArcSegment:
			c.arcs++
		case dim.Triangle:
			c.arrows++
		case dim.Label:
			c.labels = append(c.labels, p)
		}
	}
	return c
}

func angular45(placement r2.Vec) []draft.Point {
	return []draft.Point{
		tag(draft.RoleExtension1, 0, 0),
		tag(draft.RoleExtension2, 10, 0),
		tag(draft.RoleRadius, 0, 0),
		tag(draft.RoleDefinition, 10, 10),
		tag(draft.RoleArc, placement.X, placement.Y),
	}
}

func TestAngularScenario(t *testing.T) {
	d := mustDim(t, int(dim.KindAngular), angular45(r2.Vec{X: 5, Y: 5})...)
	deg, ok := d.Measurement()
	if !ok || !scalar.EqualWithinAbs(deg, 45, 1e-9) {
		t.Fatalf("angle got %g (ok=%v), want 45", deg, ok)
	}
	prims := d.Layout(dim.NewStyleTable())
	if len(prims) != 5 {
		t.Fatalf("got %d primitives, want 5: %+v", len(prims), prims)
	}
	c := count(prims)
	if c.arcs != 2 || c.arrows != 2 || len(c.labels) != 1 || c.lines != 0 {
		t.Errorf("got %+v, want split arc, two arrows and a label", c)
	}
	if c.labels[0].Text != "45°" {
		t.Errorf("label got %q, want 45°", c.labels[0].Text)
	}
	// Arrow bases lie on the dimension arc.
	for _, p := range prims {
		if tri, ok := p.(dim.Triangle); ok {
			r := d2.Distance(r2.Vec{}, tri.P0)
			base := d2.Mid(tri.P1, tri.P2)
			if !scalar.EqualWithinAbs(d2.Distance(r2.Vec{}, base), r, 1e-9) {
				t.Errorf("arrow base %v off the arc of radius %g", base, r)
			}
			if !scalar.EqualWithinAbs(r, math.Sqrt(50), 1e-9) {
				t.Errorf("arrow tip %v off the arc", tri.P0)
			}
		}
	}
}

func TestAngularQuadrants(t *testing.T) {
	for _, test := range []struct {
		placement r2.Vec
		want      float64
	}{
		{r2.Vec{X: 5, Y: 5}, 45},     // on the second line: quadrant ending there.
		{r2.Vec{X: 6, Y: 2}, 45},     // between the lines.
		{r2.Vec{X: -5, Y: -4}, 45},   // opposite quadrant.
		{r2.Vec{X: -5, Y: 5}, 135},   // between line 2 and line 1 reversed.
		{r2.Vec{X: 5, Y: -1}, 135},   // between line 2 reversed and line 1.
		{r2.Vec{X: 5, Y: 0}, 135},    // on the first line: quadrant ending there.
		{r2.Vec{X: -3, Y: -0.5}, 45}, // just past line 1 reversed.
	} {
		d := mustDim(t, int(dim.KindAngular), angular45(test.placement)...)
		got, ok := d.Measurement()
		if !ok || !scalar.EqualWithinAbs(got, test.want, 1e-9) {
			t.Errorf("placement %v: got %g (ok=%v), want %g", test.placement, got, ok, test.want)
		}
	}
}

func TestAngularDegenerate(t *testing.T) {
	parallel := mustDim(t, int(dim.KindAngular),
		tag(draft.RoleExtension1, 0, 0),
		tag(draft.RoleExtension2, 10, 0),
		tag(draft.RoleRadius, 0, 1),
		tag(draft.RoleDefinition, 10, 1),
		tag(draft.RoleArc, 5, 5),
	)
	if prims := parallel.Layout(nil); prims != nil {
		t.Errorf("parallel lines: got %d primitives, want none", len(prims))
	}
	atVertex := mustDim(t, int(dim.KindAngular), angular45(r2.Vec{})...)
	if prims := atVertex.Layout(nil); prims != nil {
		t.Errorf("zero radius: got %d primitives, want none", len(prims))
	}
}

func TestAngularExtensionLines(t *testing.T) {
	// Arc well beyond the reference lines: both extension lines are needed.
	d := mustDim(t, int(dim.KindAngular), angular45(r2.Vec{X: 20, Y: 5})...)
	c := count(d.Layout(nil))
	if c.lines != 2 {
		t.Errorf("got %d extension lines, want 2", c.lines)
	}
	st := dim.Standard()
	st.SuppressExt1 = true
	c = count(d.Layout(dim.StyleFunc(func(string) dim.Style { return st })))
	if c.lines != 1 {
		t.Errorf("suppressed first extension line: got %d lines, want 1", c.lines)
	}
}

func TestAngularJustification(t *testing.T) {
	d := mustDim(t, int(dim.KindAngular), angular45(r2.Vec{X: 20, Y: 5})...)
	r := math.Hypot(20, 5)
	for _, test := range []struct {
		just  dim.Justify
		check func(lbl dim.Label) bool
	}{
		{dim.JustifyCentre, func(l dim.Label) bool {
			return scalar.EqualWithinAbs(d2.Angle(r2.Vec{}, l.Position), math.Pi/8, 1e-9)
		}},
		{dim.JustifyFirst, func(l dim.Label) bool { return d2.Angle(r2.Vec{}, l.Position) < draft.DtoR(5) }},
		{dim.JustifySecond, func(l dim.Label) bool {
			a := d2.Angle(r2.Vec{}, l.Position)
			return a > draft.DtoR(40) && a < math.Pi/4
		}},
		{dim.JustifyAboveFirst, func(l dim.Label) bool { return l.Position.X > r && l.Position.Y > 0 && l.Rotation == 0 }},
		{dim.JustifyAboveSecond, func(l dim.Label) bool {
			return d2.Angle(r2.Vec{}, l.Position) > math.Pi/4 && scalar.EqualWithinAbs(l.Rotation, math.Pi/4, 1e-9)
		}},
	} {
		st := dim.Standard()
		st.Justify = test.just
		c := count(d.Layout(dim.StyleFunc(func(string) dim.Style { return st })))
		if len(c.labels) != 1 || !test.check(c.labels[0]) {
			t.Errorf("justify %d: label %+v", test.just, c.labels)
		}
	}
}

func TestAngularLabelOnExtensionLine(t *testing.T) {
	d := mustDim(t, int(dim.KindAngular), angular45(r2.Vec{X: 20, Y: 5})...)
	r := math.Hypot(20, 5)
	for _, test := range []struct {
		just  dim.Justify
		theta float64
	}{
		{dim.JustifyAboveFirst, 0},
		{dim.JustifyAboveSecond, math.Pi / 4},
	} {
		st := dim.Standard()
		st.Justify = test.just
		text, _ := d.Text(nil)
		// The extension line reaches past the label it carries.
		want := r + 2*st.TextGap + dim.TextWidth(text, st.TextHeight)
		end := d2.Project(r2.Vec{}, test.theta, want)
		var lines []dim.LineSegment
		found := false
		for _, p := range d.Layout(dim.StyleFunc(func(string) dim.Style { return st })) {
			if l, ok := p.(dim.LineSegment); ok {
				lines = append(lines, l)
				found = found || d2.Distance(l.B, end) < 1e-9
			}
		}
		if !found {
			t.Errorf("justify %d: no extension line ending at %v: %+v", test.just, end, lines)
		}
	}
}

func TestAngularArrowsOutside(t *testing.T) {
	d := mustDim(t, int(dim.KindAngular), angular45(r2.Vec{X: 0.3, Y: 0.1})...)
	r := math.Hypot(0.3, 0.1)
	prims := d.Layout(nil)
	c := count(prims)
	// No dimension arc between the arrows, only the two tails.
	if c.arcs != 2 || c.arrows != 2 || c.lines != 0 || len(c.labels) != 1 {
		t.Fatalf("got %+v, want two tails, two arrows and a label", c)
	}
	if a := d2.Angle(r2.Vec{}, c.labels[0].Position); a <= math.Pi/4 {
		t.Errorf("label at %g rad, want it past the second line", a)
	}
	p1 := r2.Vec{X: r}
	p2 := d2.Project(r2.Vec{}, math.Pi/4, r)
	for _, p := range prims {
		switch p := p.(type) {
		case dim.ArcSegment:
			switch {
			case d2.Distance(p.End, p1) < 1e-9:
				if p.Start.Y >= 0 {
					t.Errorf("first tail starts at %v, want below the first line", p.Start)
				}
			case d2.Distance(p.Start, p2) < 1e-9:
				if d2.Angle(r2.Vec{}, p.End) <= math.Pi/4 {
					t.Errorf("second tail ends at %v, want past the second line", p.End)
				}
			default:
				t.Errorf("unexpected arc %+v", p)
			}
		case dim.Triangle:
			base := d2.Mid(p.P1, p.P2)
			switch {
			case d2.Distance(p.P0, p1) < 1e-9:
				if base.Y >= 0 {
					t.Errorf("first arrow base %v, want outside the angle", base)
				}
			case d2.Distance(p.P0, p2) < 1e-9:
				if d2.Angle(r2.Vec{}, base) <= math.Pi/4 {
					t.Errorf("second arrow base %v, want outside the angle", base)
				}
			default:
				t.Errorf("arrow tip %v off the arc ends", p.P0)
			}
		}
	}
}

func TestAngularVerticalPlacement(t *testing.T) {
	d := mustDim(t, int(dim.KindAngular), angular45(r2.Vec{X: 20, Y: 5})...)
	r := math.Hypot(20, 5)
	for _, test := range []struct {
		tad  dim.Vertical
		dist func(st dim.Style) float64
		arcs int
	}{
		{dim.VerticalCentre, func(dim.Style) float64 { return r }, 2},
		{dim.VerticalAbove, func(st dim.Style) float64 { return r + st.TextGap + st.TextHeight/2 }, 1},
		{dim.VerticalBelow, func(st dim.Style) float64 { return r - st.TextGap - st.TextHeight/2 }, 1},
	} {
		st := dim.Standard()
		st.Vertical = test.tad
		c := count(d.Layout(dim.StyleFunc(func(string) dim.Style { return st })))
		if len(c.labels) != 1 {
			t.Fatalf("dimtad %d: got %d labels", test.tad, len(c.labels))
		}
		if got := d2.Distance(r2.Vec{}, c.labels[0].Position); !scalar.EqualWithinAbs(got, test.dist(st), 1e-9) {
			t.Errorf("dimtad %d: label at radius %g, want %g", test.tad, got, test.dist(st))
		}
		// the arc is split only around inline text.
		if c.arcs != test.arcs {
			t.Errorf("dimtad %d: got %d arcs, want %d", test.tad, c.arcs, test.arcs)
		}
	}
}

func radialPoints(placement r2.Vec) []draft.Point {
	return []draft.Point{
		tag(draft.RoleDefinition, 0, 0),
		tag(draft.RoleRadius, 10, 0),
		tag(draft.RoleText, placement.X, placement.Y),
	}
}

func TestRadialScenario(t *testing.T) {
	styles := dim.NewStyleTable()
	inside := mustDim(t, int(dim.KindRadial), radialPoints(r2.Vec{})...)
	prims := inside.Layout(styles)
	if len(prims) != 5 {
		t.Fatalf("inside: got %d primitives, want 5: %+v", len(prims), prims)
	}
	c := count(prims)
	if len(c.labels) != 1 || !strings.Contains(c.labels[0].Text, "R10") {
		t.Errorf("inside: labels %+v, want one containing R10", c.labels)
	}
	outside := mustDim(t, int(dim.KindRadial), radialPoints(r2.Vec{X: 20})...)
	prims = outside.Layout(styles)
	if len(prims) != 6 {
		t.Fatalf("outside: got %d primitives, want 6: %+v", len(prims), prims)
	}
	c = count(prims)
	if c.arrows != 1 || c.lines != 4 || len(c.labels) != 1 {
		t.Errorf("outside: got %+v, want leader, leg, centre mark, arrow and label", c)
	}
	if lbl := c.labels[0]; lbl.HAlign != dim.HAlignLeft || lbl.Position.X <= 20 {
		t.Errorf("outside label should start right of the leg, got %+v", lbl)
	}
}

func TestRadialPlacementRealigned(t *testing.T) {
	// A placement off the radius line is moved onto it along a horizontal.
	d := mustDim(t, int(dim.KindRadial),
		tag(draft.RoleDefinition, 0, 0),
		tag(draft.RoleRadius, 10, 10),
		tag(draft.RoleText, 20, 15),
	)
	for _, p := range d.Layout(nil) {
		if l, ok := p.(dim.LineSegment); ok && l.A == (r2.Vec{X: 10, Y: 10}) {
			if !d2.EqualWithin(l.B, r2.Vec{X: 15, Y: 15}, 1e-9) {
				t.Errorf("leader ends at %v, want (15,15)", l.B)
			}
			return
		}
	}
	t.Error("no leader from the point on the curve")
}

func TestRadialForceLineInside(t *testing.T) {
	st := dim.Standard()
	st.ForceLineInside = true
	styles := dim.StyleFunc(func(string) dim.Style { return st })
	inside := mustDim(t, int(dim.KindRadial), radialPoints(r2.Vec{X: 5})...)
	c := count(inside.Layout(styles))
	// line to the curve, line through the centre, two arrows, no centre mark.
	if c.lines != 2 || c.arrows != 2 || len(c.labels) != 1 {
		t.Errorf("inside: got %+v", c)
	}
	outside := mustDim(t, int(dim.KindRadial), radialPoints(r2.Vec{X: 20})...)
	c = count(outside.Layout(styles))
	if c.lines != 3 || c.arrows != 2 {
		t.Errorf("outside: got %+v", c)
	}
}

func TestDiametric(t *testing.T) {
	d := mustDim(t, int(dim.KindDiametric),
		tag(draft.RoleRadius, 10, 0),
		tag(draft.RoleDefinition, -10, 0),
		tag(draft.RoleText, 0, 0),
	)
	v, ok := d.Measurement()
	if !ok || v != 20 {
		t.Errorf("diameter got %g, want 20", v)
	}
	c := count(d.Layout(nil))
	if c.arrows != 2 || c.lines != 4 || len(c.labels) != 1 {
		t.Errorf("got %+v, want two halves, two arrows, centre mark and label", c)
	}
	if c.labels[0].Text != "Ø20.0000" {
		t.Errorf("label got %q", c.labels[0].Text)
	}
}

func TestDiametricMissingRole(t *testing.T) {
	d, err := dim.NewDimension(int(dim.KindDiametric), []draft.Point{
		tag(draft.RoleDefinition, -10, 0),
		tag(draft.RoleText, 0, 0),
	})
	if err != nil {
		t.Fatalf("missing role must not be an error: %v", err)
	}
	if prims := d.Layout(dim.NewStyleTable()); len(prims) != 0 {
		t.Errorf("got %d primitives, want none", len(prims))
	}
}

func horizontal(t *testing.T) *dim.Dimension {
	return mustDim(t, int(dim.KindRotated),
		tag(draft.RoleExtension1, 0, 0),
		tag(draft.RoleExtension2, 10, 0),
		tag(draft.RoleDefinition, 5, 2),
	)
}

func TestLinearOrientation(t *testing.T) {
	origins := []draft.Point{tag(draft.RoleExtension1, 0, 0), tag(draft.RoleExtension2, 4, 3)}
	for _, test := range []struct {
		name      string
		kind      dim.Kind
		placement r2.Vec
		want      float64
	}{
		{"vertical", dim.KindRotated, r2.Vec{X: 10, Y: 1}, 3},
		{"horizontal", dim.KindRotated, r2.Vec{X: 2, Y: 8}, 4},
		{"square off the middle", dim.KindRotated, r2.Vec{X: -1, Y: 5.5}, 5},
		{"aligned", dim.KindAligned, r2.Vec{X: 10, Y: 1}, 5},
	} {
		pts := append([]draft.Point{tag(draft.RoleDefinition, test.placement.X, test.placement.Y)}, origins...)
		d := mustDim(t, int(test.kind), pts...)
		got, ok := d.Measurement()
		if !ok || !scalar.EqualWithinAbs(got, test.want, 1e-9) {
			t.Errorf("%s: got %g (ok=%v), want %g", test.name, got, ok, test.want)
		}
	}
}

func TestLinearLayout(t *testing.T) {
	d := horizontal(t)
	prims := d.Layout(nil)
	c := count(prims)
	// two extension lines, dimension line split around the label, two arrows.
	if c.lines != 4 || c.arrows != 2 || len(c.labels) != 1 {
		t.Fatalf("got %+v", c)
	}
	lbl := c.labels[0]
	if lbl.Text != "10.0000" || lbl.Rotation != 0 || !d2.EqualWithin(lbl.Position, r2.Vec{X: 5, Y: 2}, 1e-12) {
		t.Errorf("label got %+v", lbl)
	}
	// extension lines start DIMEXO off the origins and overrun by DIMEXE.
	st := dim.Standard()
	ext := prims[0].(dim.LineSegment)
	if !d2.EqualWithin(ext.A, r2.Vec{Y: st.ExtensionOffset}, 1e-12) || !d2.EqualWithin(ext.B, r2.Vec{Y: 2 + st.ExtensionExtend}, 1e-12) {
		t.Errorf("first extension line got %+v", ext)
	}
	box := dim.Bounds(prims)
	if box.Min.X > 0 || box.Max.X < 10 || box.Max.Y < 2+st.ExtensionExtend {
		t.Errorf("bounds %v do not contain the dimension", box)
	}
}

func TestLinearVerticalTextNotSplit(t *testing.T) {
	d := mustDim(t, int(dim.KindRotated),
		tag(draft.RoleExtension1, 0, 0),
		tag(draft.RoleExtension2, 4, 3),
		tag(draft.RoleDefinition, 10, 1),
	)
	c := count(d.Layout(nil))
	// horizontal text does not sit flush with a vertical line.
	if c.lines != 3 || c.arrows != 2 || len(c.labels) != 1 {
		t.Errorf("got %+v", c)
	}
}

func TestLinearArrowsOutside(t *testing.T) {
	d := mustDim(t, int(dim.KindAligned),
		tag(draft.RoleExtension1, 0, 0),
		tag(draft.RoleExtension2, 0.3, 0),
		tag(draft.RoleDefinition, 0.15, 1),
	)
	c := count(d.Layout(nil))
	// extension lines, two tails, two arrows, label outside past the second line.
	if c.lines != 4 || c.arrows != 2 || len(c.labels) != 1 {
		t.Fatalf("got %+v", c)
	}
	if c.labels[0].Position.X <= 0.3+0.36 {
		t.Errorf("label at %v should be beyond the arrow tail", c.labels[0].Position)
	}
}

func TestLinearSuppression(t *testing.T) {
	st := dim.Standard()
	st.SuppressExt1, st.SuppressExt2 = true, true
	st.SuppressDim1, st.SuppressDim2 = true, true
	prims := horizontal(t).Layout(dim.StyleFunc(func(string) dim.Style { return st }))
	if len(prims) != 1 {
		t.Fatalf("got %d primitives, want only the label", len(prims))
	}
	if _, ok := prims[0].(dim.Label); !ok {
		t.Errorf("got %T, want label", prims[0])
	}
}

func TestLinearJustification(t *testing.T) {
	for _, test := range []struct {
		just  dim.Justify
		check func(lbl dim.Label) bool
	}{
		{dim.JustifyFirst, func(l dim.Label) bool { return l.Position.X < 2 && l.Position.Y == 2 }},
		{dim.JustifySecond, func(l dim.Label) bool { return l.Position.X > 8 && l.Position.Y == 2 }},
		{dim.JustifyAboveFirst, func(l dim.Label) bool { return l.Position.X < 0 && l.Position.Y > 2 }},
		{dim.JustifyAboveSecond, func(l dim.Label) bool { return l.Position.X < 10 && l.Position.Y > 2 }},
	} {
		st := dim.Standard()
		st.Justify = test.just
		c := count(horizontal(t).Layout(dim.StyleFunc(func(string) dim.Style { return st })))
		if len(c.labels) != 1 || !test.check(c.labels[0]) {
			t.Errorf("justify %d: label %+v", test.just, c.labels)
		}
	}
}

func TestLinearVerticalPlacement(t *testing.T) {
	for _, test := range []struct {
		tad   dim.Vertical
		above bool
	}{
		{dim.VerticalAbove, true},
		{dim.VerticalJIS, true},
		{dim.VerticalOutside, true}, // origins are below the dimension line.
		{dim.VerticalBelow, false},
	} {
		st := dim.Standard()
		st.Vertical = test.tad
		prims := horizontal(t).Layout(dim.StyleFunc(func(string) dim.Style { return st }))
		c := count(prims)
		if len(c.labels) != 1 || (c.labels[0].Position.Y > 2) != test.above {
			t.Errorf("dimtad %d: label %+v", test.tad, c.labels)
		}
		// the dimension line is whole when the text is off it.
		if c.lines != 3 {
			t.Errorf("dimtad %d: got %d lines, want 3", test.tad, c.lines)
		}
	}
}

func TestOverride(t *testing.T) {
	d := horizontal(t)
	d.Override = " "
	c := count(d.Layout(nil))
	if len(c.labels) != 0 || c.lines != 3 {
		t.Errorf("suppressed label: got %+v", c)
	}
	d.Override = "<> mm"
	if text, ok := d.Text(nil); !ok || text != "10.0000 mm" {
		t.Errorf("override got %q", text)
	}
}

func TestUserText(t *testing.T) {
	d := mustDim(t, int(dim.KindRotated)|int(dim.UserText),
		tag(draft.RoleExtension1, 0, 0),
		tag(draft.RoleExtension2, 10, 0),
		tag(draft.RoleDefinition, 5, 2),
		tag(draft.RoleText, 3, 7),
	)
	c := count(d.Layout(nil))
	if len(c.labels) != 1 || c.labels[0].Position != (r2.Vec{X: 3, Y: 7}) {
		t.Errorf("label %+v, want at user position", c.labels)
	}
	d.TextRotation = 90
	c = count(d.Layout(nil))
	if !scalar.EqualWithinAbs(c.labels[0].Rotation, math.Pi/2, 1e-12) {
		t.Errorf("rotation override got %g", c.labels[0].Rotation)
	}
}

func TestLayoutIdempotent(t *testing.T) {
	styles := dim.NewStyleTable()
	for _, d := range []*dim.Dimension{
		horizontal(t),
		mustDim(t, int(dim.KindAngular), angular45(r2.Vec{X: 5, Y: 5})...),
		mustDim(t, int(dim.KindRadial), radialPoints(r2.Vec{X: 20})...),
	} {
		a, b := d.Layout(styles), d.Layout(styles)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%v: layouts differ", d.Kind)
		}
	}
}

func TestStyleEditsAffectLayout(t *testing.T) {
	styles := dim.NewStyleTable()
	d := horizontal(t)
	before := dim.Bounds(d.Layout(styles))
	st, _ := styles.Lookup("standard")
	st.ExtensionExtend = 1
	styles.Set(st)
	after := dim.Bounds(d.Layout(styles))
	if after.Max.Y != 3 || before.Max.Y == after.Max.Y {
		t.Errorf("edited style not used: before %v after %v", before, after)
	}
}

func TestNewDimensionErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		code int
		pts  []draft.Point
		want error
	}{
		{"base kind 7", 7, nil, dim.ErrInvalidKind},
		{"flagged kind 7", 128 | 7, nil, dim.ErrInvalidKind},
		{"negative", -1, nil, dim.ErrInvalidKind},
		{"duplicate", 4, []draft.Point{tag(draft.RoleRadius, 1, 0), tag(draft.RoleRadius, 2, 0)}, dim.ErrDuplicateRole},
		{"unexpected", 4, []draft.Point{tag(draft.RoleArc, 1, 0)}, dim.ErrUnexpectedRole},
		{"untagged", 0, []draft.Point{draft.Pt(1, 0)}, dim.ErrUnexpectedRole},
	} {
		_, err := dim.NewDimension(test.code, test.pts)
		if !errors.Is(err, test.want) {
			t.Errorf("%s: got error %v, want %v", test.name, err, test.want)
		}
	}
	d, err := dim.NewDimension(128|32|int(dim.KindRadial), nil)
	if err != nil {
		t.Fatal(err)
	}
	if d.Kind != dim.KindRadial || !d.Flags.Has(dim.UserText|dim.BlockReferenced) || d.Code() != 160+4 {
		t.Errorf("decoded %v %v", d.Kind, d.Flags)
	}
}

func TestUnsupportedKinds(t *testing.T) {
	for _, kind := range []dim.Kind{dim.KindAngular3Point, dim.KindOrdinate} {
		pts := []draft.Point{tag(draft.RoleArc, 1, 2), tag(draft.RoleDefinition, 3, 4)}
		d := mustDim(t, int(kind), pts...)
		if prims := d.Layout(nil); prims != nil {
			t.Errorf("%v: got %d primitives", kind, len(prims))
		}
		got := d.Points()
		if len(got) != 2 || got[0].Role != draft.RoleDefinition || got[1].Role != draft.RoleArc {
			t.Errorf("%v: points not kept: %+v", kind, got)
		}
	}
}

func TestPointsSortedByRole(t *testing.T) {
	d := mustDim(t, int(dim.KindAngular), angular45(r2.Vec{X: 5, Y: 5})...)
	pts := d.Points()
	if len(pts) != 5 {
		t.Fatalf("got %d points", len(pts))
	}
	for i := 1; i < len(pts); i++ {
		if pts[i-1].Role >= pts[i].Role {
			t.Errorf("points not sorted by role: %+v", pts)
		}
	}
}

func TestStyleTableLoad(t *testing.T) {
	styles := dim.NewStyleTable()
	err := styles.Load(strings.NewReader(`
Metric:
  dimasz: 2.5
  dimtxt: 2.5
  dimdsep: ","
  dimzin: 8
`))
	if err != nil {
		t.Fatal(err)
	}
	st, ok := styles.Lookup("METRIC")
	if !ok {
		t.Fatal("metric style not loaded")
	}
	if st.ArrowSize != 2.5 || st.TextHeight != 2.5 || st.ExtensionOffset != dim.Standard().ExtensionOffset || !st.InsideHorizontal {
		t.Errorf("loaded style %+v", st)
	}
	if names := styles.Names(); !reflect.DeepEqual(names, []string{"Metric", "Standard"}) {
		t.Errorf("names got %v", names)
	}
	if got := styles.ResolveStyle("missing"); got.Name != dim.DefaultStyleName {
		t.Errorf("unknown style resolved to %q", got.Name)
	}
	d := horizontal(t)
	d.Style = "Metric"
	lower, _ := dim.NewDimension(int(dim.KindRotated), d.Points())
	lower.Style = "metric"
	for _, dd := range []*dim.Dimension{d, lower} {
		if text, _ := dd.Text(styles); text != "10" {
			t.Errorf("metric text got %q, want 10", text)
		}
	}
	if err := styles.Load(strings.NewReader("Bad:\n  dimtad: 9\n")); err == nil {
		t.Error("expected out of range dimtad error")
	}
	styles.Delete("standard")
	if _, ok := styles.Lookup(dim.DefaultStyleName); !ok {
		t.Error("default style must not be deletable")
	}
}

func TestLabelBounds(t *testing.T) {
	lbl := dim.Label{Text: "10", Height: 13}
	want := d2.Box{Min: r2.Vec{X: -7, Y: -6.5}, Max: r2.Vec{X: 7, Y: 6.5}}
	if got := lbl.Bounds(); !got.Equals(want, 1e-9) {
		t.Errorf("got %v, want %v", got, want)
	}
	lbl.Rotation = math.Pi / 2
	want = d2.Box{Min: r2.Vec{X: -6.5, Y: -7}, Max: r2.Vec{X: 6.5, Y: 7}}
	if got := lbl.Bounds(); !got.Equals(want, 1e-9) {
		t.Errorf("rotated got %v, want %v", got, want)
	}
	lbl = dim.Label{Text: "10", Height: 13, HAlign: dim.HAlignLeft, VAlign: dim.VAlignBottom}
	want = d2.Box{Min: r2.Vec{}, Max: r2.Vec{X: 14, Y: 13}}
	if got := lbl.Bounds(); !got.Equals(want, 1e-9) {
		t.Errorf("anchored got %v, want %v", got, want)
	}
	lbl.Position = r2.Vec{X: 3, Y: -2}
	lbl.Rotation = math.Pi / 6
	if got, want := lbl.Bounds(), lbl.Corners().Box(); !got.Equals(want, 1e-9) {
		t.Errorf("oblique got %v, want the box of the corners %v", got, want)
	}
}
