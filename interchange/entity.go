package interchange

import (
	"fmt"

	"github.com/soypat/draft"
	"github.com/soypat/draft/dim"
	"gonum.org/v1/gonum/spatial/r2"
)

// Group codes shared by every entity.
const (
	codeType   = 0
	codeText   = 1
	codeStyle  = 3
	codeHandle = 5
	codeLayer  = 8
	codeRadius = 40
	codeBulge  = 42
	codeStart  = 50
	codeEnd    = 51
	codeRotate = 53
	codeFlags  = 70
	codeCount  = 90
)

// DefaultLayer is written for entities without a layer.
const DefaultLayer = "0"

// Entity is a decoded drawing entity: a *Dimension or a *Shape.
type Entity interface {
	// Type returns the entity type name as written in the stream.
	Type() string
}

// Dimension is a DIMENSION entity.
type Dimension struct {
	*dim.Dimension
}

func (*Dimension) Type() string { return "DIMENSION" }

// Shape is a LINE, CIRCLE, ARC or LWPOLYLINE entity.
type Shape struct {
	Handle string
	Layer  string
	draft.Shape

	// group values of a decoded ARC, written back while Shape still holds
	// the arc they produced.
	arc *arcGroups
}

type arcGroups struct {
	radius, start, end float64
	decoded            draft.Arc
}

func (s *Shape) Type() string {
	switch s.Shape.(type) {
	case draft.Line:
		return "LINE"
	case draft.Circle:
		return "CIRCLE"
	case draft.Arc:
		return "ARC"
	case draft.Polyline:
		return "LWPOLYLINE"
	}
	return ""
}

func decodeEntity(typ string, pairs []Pair) (Entity, error) {
	switch typ {
	case "DIMENSION":
		return decodeDimension(pairs)
	case "LINE", "CIRCLE", "ARC":
		return decodeCurve(typ, pairs)
	case "LWPOLYLINE":
		return decodePolyline(pairs)
	}
	return nil, nil
}

// isRole reports whether code is the X coordinate of a definition point.
func isRole(code int) bool {
	switch draft.Role(code) {
	case draft.RoleDefinition, draft.RoleText, draft.RoleExtension1,
		draft.RoleExtension2, draft.RoleRadius, draft.RoleArc:
		return true
	}
	return false
}

func decodeDimension(pairs []Pair) (Entity, error) {
	var (
		handle, layer, override string
		style                   string
		code                    int
		rotation                float64
		pts                     []draft.Point
		err                     error
	)
	last := make(map[int]int) // role code to index in pts
	for _, p := range pairs {
		switch {
		case p.Code == codeHandle:
			handle = p.Value
		case p.Code == codeLayer:
			layer = p.Value
		case p.Code == codeStyle:
			style = p.Value
		case p.Code == codeText:
			override = p.Value
		case p.Code == codeRotate:
			rotation, err = p.Float()
		case p.Code == codeFlags:
			code, err = p.Int()
		case isRole(p.Code):
			var x float64
			x, err = p.Float()
			pts = append(pts, draft.Point{Vec: r2.Vec{X: x}, Role: draft.Role(p.Code)})
			last[p.Code] = len(pts) - 1
		case isRole(p.Code - 10):
			i, ok := last[p.Code-10]
			if !ok {
				return nil, p.errorf("group %d without group %d", p.Code, p.Code-10)
			}
			pts[i].Y, err = p.Float()
		}
		if err != nil {
			return nil, err
		}
	}
	d, err := dim.NewDimension(code, pts)
	if err != nil {
		return nil, fmt.Errorf("dimension %q: %w", handle, err)
	}
	d.Handle = handle
	d.Layer = layer
	d.Style = style
	d.Override = override
	d.TextRotation = rotation
	return &Dimension{Dimension: d}, nil
}

func decodeCurve(typ string, pairs []Pair) (Entity, error) {
	var (
		s          Shape
		a, b       r2.Vec
		r          float64
		start, end float64
		err        error
	)
	for _, p := range pairs {
		switch p.Code {
		case codeHandle:
			s.Handle = p.Value
		case codeLayer:
			s.Layer = p.Value
		case 10:
			a.X, err = p.Float()
		case 20:
			a.Y, err = p.Float()
		case 11:
			b.X, err = p.Float()
		case 21:
			b.Y, err = p.Float()
		case codeRadius:
			r, err = p.Float()
		case codeStart:
			start, err = p.Float()
		case codeEnd:
			end, err = p.Float()
		}
		if err != nil {
			return nil, err
		}
	}
	switch typ {
	case "LINE":
		s.Shape = draft.Line{A: a, B: b}
	case "CIRCLE":
		s.Shape = draft.Circle{Centre: a, Radius: r}
	case "ARC":
		arc := draft.ArcFromAngles(a, r, draft.DtoR(start), draft.DtoR(end), 1)
		s.Shape = arc
		s.arc = &arcGroups{radius: r, start: start, end: end, decoded: arc}
	}
	return &s, nil
}

func decodePolyline(pairs []Pair) (Entity, error) {
	var (
		s    Shape
		pl   draft.Polyline
		flag int
		err  error
	)
	current := func(p Pair) (*draft.Point, error) {
		if len(pl.Vertices) == 0 {
			return nil, p.errorf("group %d before the first vertex", p.Code)
		}
		return &pl.Vertices[len(pl.Vertices)-1], nil
	}
	for _, p := range pairs {
		var v *draft.Point
		switch p.Code {
		case codeHandle:
			s.Handle = p.Value
		case codeLayer:
			s.Layer = p.Value
		case codeFlags:
			flag, err = p.Int()
		case 10:
			var x float64
			x, err = p.Float()
			pl.Vertices = append(pl.Vertices, draft.Pt(x, 0))
		case 20:
			if v, err = current(p); err == nil {
				v.Y, err = p.Float()
			}
		case codeBulge:
			if v, err = current(p); err == nil {
				v.Bulge, err = p.Float()
			}
		}
		if err != nil {
			return nil, err
		}
	}
	pl.Closed = flag&1 != 0
	s.Shape = pl
	return &s, nil
}

// WriteEntity writes e as one entity. Entities of unknown type are an error.
func (w *Writer) WriteEntity(e Entity) {
	if w.err != nil {
		return
	}
	switch e := e.(type) {
	case *Dimension:
		w.writeDimension(e.Dimension)
	case *Shape:
		w.writeShape(e)
	default:
		w.err = fmt.Errorf("interchange: cannot write entity %T", e)
	}
}

func (w *Writer) header(typ, handle, layer string) {
	w.WritePair(codeType, typ)
	if handle != "" {
		w.WritePair(codeHandle, handle)
	}
	if layer == "" {
		layer = DefaultLayer
	}
	w.WritePair(codeLayer, layer)
}

func (w *Writer) writeDimension(d *dim.Dimension) {
	w.header("DIMENSION", d.Handle, d.Layer)
	style := d.Style
	if style == "" {
		style = dim.DefaultStyleName
	}
	w.WritePair(codeStyle, style)
	w.WriteInt(codeFlags, d.Code())
	if d.Override != "" {
		w.WritePair(codeText, d.Override)
	}
	if d.TextRotation != 0 {
		w.WriteFloat(codeRotate, d.TextRotation)
	}
	for _, p := range d.Points() {
		w.WritePoint(int(p.Role), p.Vec)
	}
}

func (w *Writer) writeShape(s *Shape) {
	typ := s.Type()
	if typ == "" {
		w.err = fmt.Errorf("interchange: cannot write shape %T", s.Shape)
		return
	}
	w.header(typ, s.Handle, s.Layer)
	switch sh := s.Shape.(type) {
	case draft.Line:
		w.WritePoint(10, sh.A)
		w.WritePoint(11, sh.B)
	case draft.Circle:
		w.WritePoint(10, sh.Centre)
		w.WriteFloat(codeRadius, sh.Radius)
	case draft.Arc:
		if g := s.arc; g != nil && g.decoded == sh {
			w.WritePoint(10, sh.Centre)
			w.WriteFloat(codeRadius, g.radius)
			w.WriteFloat(codeStart, g.start)
			w.WriteFloat(codeEnd, g.end)
			break
		}
		// Arcs are stored counter-clockwise.
		if !sh.CCW() {
			sh = sh.Reverse()
		}
		w.WritePoint(10, sh.Centre)
		w.WriteFloat(codeRadius, sh.Radius())
		w.WriteFloat(codeStart, draft.RtoD(sh.StartAngle()))
		w.WriteFloat(codeEnd, draft.RtoD(sh.EndAngle()))
	case draft.Polyline:
		w.WriteInt(codeCount, len(sh.Vertices))
		flag := 0
		if sh.Closed {
			flag = 1
		}
		w.WriteInt(codeFlags, flag)
		for _, v := range sh.Vertices {
			w.WritePoint(10, v.Vec)
			if v.Bulge != 0 {
				w.WriteFloat(codeBulge, v.Bulge)
			}
		}
	}
}
