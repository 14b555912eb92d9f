package interchange

import (
	"io"
	"strings"

	"github.com/soypat/draft"
	"github.com/soypat/draft/dim"
)

const entitiesSection = "ENTITIES"

// Document is an ordered list of drawing entities.
type Document struct {
	Entities []Entity
}

// AddDimension appends d to the document.
func (doc *Document) AddDimension(d *dim.Dimension) {
	doc.Entities = append(doc.Entities, &Dimension{Dimension: d})
}

// AddShape appends s on the given layer.
func (doc *Document) AddShape(layer string, s draft.Shape) {
	doc.Entities = append(doc.Entities, &Shape{Layer: layer, Shape: s})
}

// Dimensions returns the dimensions of the document in order.
func (doc *Document) Dimensions() []*dim.Dimension {
	var dims []*dim.Dimension
	for _, e := range doc.Entities {
		if d, ok := e.(*Dimension); ok {
			dims = append(dims, d.Dimension)
		}
	}
	return dims
}

// Shapes returns the geometric entities of the document in order.
func (doc *Document) Shapes() []draft.Shape {
	var shapes []draft.Shape
	for _, e := range doc.Entities {
		if s, ok := e.(*Shape); ok {
			shapes = append(shapes, s.Shape)
		}
	}
	return shapes
}

// Bounds returns the extents of the document. Dimensions contribute their
// laid out primitives, or their definition points when they lay out to nothing.
func (doc *Document) Bounds(styles dim.StyleResolver) draft.Box {
	box := draft.BoundingBox(doc.Shapes()...)
	for _, d := range doc.Dimensions() {
		prims := d.Layout(styles)
		if len(prims) > 0 {
			box = box.Extend(dim.Bounds(prims))
			continue
		}
		for _, p := range d.Points() {
			box = box.Include(p.Vec)
		}
	}
	return box
}

// Decode reads a group code stream. Both a bare list of entities and a
// sectioned file are accepted; in a sectioned file only the ENTITIES section
// is read. Entity types other than DIMENSION, LINE, CIRCLE, ARC and
// LWPOLYLINE are skipped.
func Decode(r io.Reader) (*Document, error) {
	var (
		doc       Document
		sc        = NewScanner(r)
		typ       string
		pairs     []Pair
		section   string
		sectioned bool
		naming    bool
	)
	flush := func() error {
		if typ == "" || (sectioned && section != entitiesSection) {
			return nil
		}
		e, err := decodeEntity(typ, pairs)
		if err != nil {
			return err
		}
		if e != nil {
			doc.Entities = append(doc.Entities, e)
		}
		return nil
	}
	for sc.Scan() {
		p := sc.Pair()
		if p.Code != codeType {
			if naming && p.Code == 2 {
				section = strings.TrimSpace(p.Value)
				naming = false
			}
			if typ != "" {
				pairs = append(pairs, p)
			}
			continue
		}
		if err := flush(); err != nil {
			return nil, err
		}
		typ, pairs = "", pairs[:0]
		switch v := strings.TrimSpace(p.Value); v {
		case "EOF":
			return &doc, nil
		case "SECTION":
			sectioned, naming = true, true
		case "ENDSEC":
			section = ""
		default:
			typ = v
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Encode writes doc as a sectioned group code stream.
func Encode(w io.Writer, doc *Document) error {
	pw := NewWriter(w)
	pw.WritePair(codeType, "SECTION")
	pw.WritePair(2, entitiesSection)
	for _, e := range doc.Entities {
		pw.WriteEntity(e)
	}
	pw.WritePair(codeType, "ENDSEC")
	pw.WritePair(codeType, "EOF")
	return pw.Flush()
}
