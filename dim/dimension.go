package dim

import (
	"fmt"
	"sort"

	"github.com/soypat/draft"
	"gonum.org/v1/gonum/spatial/r2"
)

// Ref is an optional definition point.
type Ref struct {
	r2.Vec
	Valid bool
}

// Geometry holds the definition points of one dimension kind.
type Geometry interface {
	// Points returns the definition points tagged with their roles, sorted by role.
	Points() []draft.Point

	set(r draft.Role, v r2.Vec) bool
	measure() (float64, bool)
	layout(d *Dimension, st Style) []Primitive
}

// Dimension is an annotation measuring a geometric quantity. Its definition
// points are stored once, decoded into the Geometry of its kind. The style
// is resolved by name on every layout, never cached.
type Dimension struct {
	Kind   Kind
	Flags  Flags
	Handle string
	Layer  string
	Style  string
	// Override replaces the generated label text. See FormatMeasurement.
	Override string
	// TextRotation is the label rotation in degrees. Zero lays the label out
	// automatically.
	TextRotation float64

	geom Geometry
}

// NewDimension builds a dimension from its bit-coded interchange type and
// a set of role-tagged definition points. Roles may be given in any order
// but only once; roles the kind does not use are an error. Missing roles
// are allowed and make layout produce nothing.
func NewDimension(code int, pts []draft.Point) (*Dimension, error) {
	kind, flags, err := DecodeType(code)
	if err != nil {
		return nil, err
	}
	geom := newGeometry(kind)
	seen := make(map[draft.Role]bool, len(pts))
	for _, p := range pts {
		if seen[p.Role] {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateRole, p.Role)
		}
		seen[p.Role] = true
		if !geom.set(p.Role, p.Vec) {
			return nil, fmt.Errorf("%w: %v for %v dimension", ErrUnexpectedRole, p.Role, kind)
		}
	}
	return &Dimension{
		Kind:  kind,
		Flags: flags,
		Style: DefaultStyleName,
		geom:  geom,
	}, nil
}

func newGeometry(k Kind) Geometry {
	switch k {
	case KindRotated, KindAligned:
		return &Linear{Aligned: k == KindAligned}
	case KindAngular:
		return &Angular{}
	case KindRadial:
		return &Radial{}
	case KindDiametric:
		return &Diametric{}
	case KindAngular3Point, KindOrdinate:
		return &unsupported{}
	}
	panic("unreachable kind " + k.String())
}

// Code returns the bit-coded interchange type of d.
func (d *Dimension) Code() int { return EncodeType(d.Kind, d.Flags) }

// Geometry returns the decoded definition points of d.
func (d *Dimension) Geometry() Geometry { return d.geom }

// Points returns the definition points of d tagged with their roles.
func (d *Dimension) Points() []draft.Point { return d.geom.Points() }

// Measurement returns the measured value: a length for linear kinds, the
// radius or diameter for radial kinds and degrees for angular kinds.
// The boolean result is false for degenerate or unsupported dimensions.
func (d *Dimension) Measurement() (float64, bool) {
	return d.geom.measure()
}

// Text returns the label text of d with the style resolved from styles.
// The boolean result is false when there is no label.
func (d *Dimension) Text(styles StyleResolver) (string, bool) {
	v, ok := d.Measurement()
	if !ok {
		return "", false
	}
	return FormatMeasurement(v, d.Kind, d.resolve(styles), d.Override)
}

// Layout computes the primitives that draw d with the current value of its
// style. Degenerate geometry, missing definition points and unsupported
// kinds yield nil. A nil resolver lays out with the Standard style.
func (d *Dimension) Layout(styles StyleResolver) []Primitive {
	return d.geom.layout(d, d.resolve(styles))
}

func (d *Dimension) resolve(styles StyleResolver) Style {
	if styles == nil {
		return Standard()
	}
	return styles.ResolveStyle(d.Style)
}

// label returns the label text for value and whether it is drawn.
func (d *Dimension) label(st Style, value float64) (string, bool) {
	return FormatMeasurement(value, d.Kind, st, d.Override)
}

// userText reports whether the label goes at the user given text point.
func (d *Dimension) userText(text Ref) bool {
	return d.Flags.Has(UserText) && text.Valid
}

// rotation returns the label rotation: the user override if any, else auto.
func (d *Dimension) rotation(auto float64) float64 {
	if d.TextRotation != 0 {
		return draft.DtoR(d.TextRotation)
	}
	return auto
}

// tagged collects the valid references into role-sorted points.
func tagged(refs map[draft.Role]Ref) []draft.Point {
	pts := make([]draft.Point, 0, len(refs))
	for role, r := range refs {
		if r.Valid {
			pts = append(pts, draft.Point{Vec: r.Vec, Role: role})
		}
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].Role < pts[j].Role })
	return pts
}

// unsupported keeps the points of kinds that are stored but not laid out.
type unsupported struct {
	pts []draft.Point
}

func (u *unsupported) set(r draft.Role, v r2.Vec) bool {
	u.pts = append(u.pts, draft.Point{Vec: v, Role: r})
	sort.SliceStable(u.pts, func(i, j int) bool { return u.pts[i].Role < u.pts[j].Role })
	return true
}

func (u *unsupported) Points() []draft.Point {
	return append([]draft.Point(nil), u.pts...)
}

func (u *unsupported) measure() (float64, bool) { return 0, false }

func (u *unsupported) layout(d *Dimension, st Style) []Primitive { return nil }
