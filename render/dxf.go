package render

import (
	"fmt"

	"github.com/soypat/draft"
	"github.com/soypat/draft/dim"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// CreateDXF writes the primitives read from r as a DXF drawing at path.
// Every entity is placed on layer, which is created if needed.
func CreateDXF(path, layer string, r Renderer) error {
	d, err := NewDXF(layer, r)
	if err != nil {
		return err
	}
	return d.SaveAs(path)
}

// NewDXF draws the primitives read from r into a new DXF drawing.
// Lines and arcs map to LINE and ARC entities, arrowheads to their three
// edges and labels to TEXT anchored at their bottom left corner.
func NewDXF(layer string, r Renderer) (*drawing.Drawing, error) {
	d := dxf.NewDrawing()
	if layer != "" {
		if _, err := d.AddLayer(layer, color.White, dxf.DefaultLineType, true); err != nil {
			// The layer already exists, as "0" always does.
			if err := d.ChangeLayer(layer); err != nil {
				return nil, err
			}
		}
	}
	err := each(r, func(p dim.Primitive) error {
		return drawDXF(d, p)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func drawDXF(d *drawing.Drawing, p dim.Primitive) (err error) {
	switch p := p.(type) {
	case dim.LineSegment:
		_, err = d.Line(p.A.X, p.A.Y, 0, p.B.X, p.B.Y, 0)
	case dim.ArcSegment:
		arc := p.Arc()
		if arc.Start == arc.End {
			_, err = d.Circle(arc.Centre.X, arc.Centre.Y, 0, arc.Radius())
			break
		}
		if !arc.CCW() {
			arc = arc.Reverse()
		}
		_, err = d.Arc(arc.Centre.X, arc.Centre.Y, 0, arc.Radius(),
			draft.RtoD(arc.StartAngle()), draft.RtoD(arc.EndAngle()))
	case dim.Triangle:
		v := [3]dim.LineSegment{{A: p.P0, B: p.P1}, {A: p.P1, B: p.P2}, {A: p.P2, B: p.P0}}
		for i := 0; i < 3 && err == nil; i++ {
			_, err = d.Line(v[i].A.X, v[i].A.Y, 0, v[i].B.X, v[i].B.Y, 0)
		}
	case dim.Label:
		at := p.Corners()[0]
		text, terr := d.Text(p.Text, at.X, at.Y, 0, p.Height)
		if terr != nil {
			return terr
		}
		text.Rotate = draft.RtoD(p.Rotation)
	default:
		err = fmt.Errorf("render: unknown primitive %T", p)
	}
	return err
}
