package render

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/nfnt/resize"
	"github.com/soypat/draft/dim"
	"github.com/soypat/draft/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	previewDPI = 96
	// maximum angle subtended by one chord of a flattened arc.
	arcChordAngle = math.Pi / 36
)

// Plot draws the primitives read from r on a plot with hidden axes and
// equal scales. The drawing area has the given size in pixels, which is
// needed to scale label text.
func Plot(r Renderer, width, height int) (*plot.Plot, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: invalid preview size %dx%d", width, height)
	}
	prims, err := RenderAll(r)
	if err != nil {
		return nil, err
	}
	if len(prims) == 0 {
		return nil, errors.New("render: nothing to plot")
	}
	box := fitAspect(dim.Bounds(prims), float64(width)/float64(height))
	// points per drawing unit
	scale := pixels(width).Points() / box.Size().X

	p := plot.New()
	p.HideAxes()
	var labels []dim.Label
	for _, prim := range prims {
		var pl plot.Plotter
		switch prim := prim.(type) {
		case dim.LineSegment:
			pl, err = plotter.NewLine(plotter.XYs{{X: prim.A.X, Y: prim.A.Y}, {X: prim.B.X, Y: prim.B.Y}})
		case dim.ArcSegment:
			pl, err = plotter.NewLine(flatten(prim))
		case dim.Triangle:
			var poly *plotter.Polygon
			poly, err = plotter.NewPolygon(plotter.XYs{
				{X: prim.P0.X, Y: prim.P0.Y}, {X: prim.P1.X, Y: prim.P1.Y}, {X: prim.P2.X, Y: prim.P2.Y},
			})
			if err == nil {
				poly.Color = poly.LineStyle.Color
			}
			pl = poly
		case dim.Label:
			labels = append(labels, prim)
			continue
		}
		if err != nil {
			return nil, err
		}
		p.Add(pl)
	}
	if len(labels) > 0 {
		lbl, err := plotLabels(labels, scale)
		if err != nil {
			return nil, err
		}
		p.Add(lbl)
	}
	p.X.Min, p.X.Max = box.Min.X, box.Max.X
	p.Y.Min, p.Y.Max = box.Min.Y, box.Max.Y
	return p, nil
}

func plotLabels(labels []dim.Label, scale float64) (*plotter.Labels, error) {
	xyl := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(labels)),
		Labels: make([]string, len(labels)),
	}
	for i, l := range labels {
		xyl.XYs[i] = plotter.XY{X: l.Position.X, Y: l.Position.Y}
		xyl.Labels[i] = l.Text
	}
	pl, err := plotter.NewLabels(xyl)
	if err != nil {
		return nil, err
	}
	for i, l := range labels {
		sty := &pl.TextStyle[i]
		sty.Rotation = l.Rotation
		sty.Font.Size = vg.Length(l.Height * scale)
		switch l.HAlign {
		case dim.HAlignLeft:
			sty.XAlign = draw.XLeft
		case dim.HAlignRight:
			sty.XAlign = draw.XRight
		default:
			sty.XAlign = draw.XCenter
		}
		switch l.VAlign {
		case dim.VAlignBottom:
			sty.YAlign = draw.YBottom
		case dim.VAlignTop:
			sty.YAlign = draw.YTop
		default:
			sty.YAlign = draw.YCenter
		}
	}
	return pl, nil
}

// Image rasterizes the primitives read from r.
func Image(r Renderer, width, height int) (image.Image, error) {
	c, err := rasterize(r, width, height)
	if err != nil {
		return nil, err
	}
	return c.Image(), nil
}

// WritePNG writes a PNG preview of the primitives read from r.
func WritePNG(w io.Writer, r Renderer, width, height int) error {
	c, err := rasterize(r, width, height)
	if err != nil {
		return err
	}
	_, err = vgimg.PngCanvas{Canvas: c}.WriteTo(w)
	return err
}

func rasterize(r Renderer, width, height int) (*vgimg.Canvas, error) {
	p, err := Plot(r, width, height)
	if err != nil {
		return nil, err
	}
	c := vgimg.NewWith(vgimg.UseWH(pixels(width), pixels(height)), vgimg.UseDPI(previewDPI))
	p.Draw(draw.New(c))
	return c, nil
}

// Thumbnail downsamples img to fit within maxWidth by maxHeight pixels,
// preserving its aspect ratio.
func Thumbnail(img image.Image, maxWidth, maxHeight uint) image.Image {
	return resize.Thumbnail(maxWidth, maxHeight, img, resize.Bilinear)
}

func pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / previewDPI
}

// fitAspect grows box about its centre so that its width over height
// equals aspect. Degenerate boxes get a unit size.
func fitAspect(box d2.Box, aspect float64) d2.Box {
	size := box.Size()
	if size.X <= 0 {
		size.X = 1
	}
	if size.Y <= 0 {
		size.Y = 1
	}
	if size.X/size.Y < aspect {
		size.X = size.Y * aspect
	} else {
		size.Y = size.X / aspect
	}
	// margin
	size = r2.Scale(1.05, size)
	return d2.NewBox2(box.Center(), size)
}

// flatten approximates an arc by chords.
func flatten(a dim.ArcSegment) plotter.XYs {
	arc := a.Arc()
	sweep := arc.Sweep()
	n := int(math.Ceil(sweep/arcChordAngle)) + 1
	if n < 2 {
		n = 2
	}
	radius := arc.Radius()
	start := arc.StartAngle()
	step := sweep / float64(n-1)
	if !arc.CCW() {
		step = -step
	}
	xys := make(plotter.XYs, n)
	for i := range xys {
		v := d2.Project(arc.Centre, start+float64(i)*step, radius)
		xys[i] = plotter.XY{X: v.X, Y: v.Y}
	}
	return xys
}
