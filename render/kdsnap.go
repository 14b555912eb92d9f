package render

import (
	"math"
	"sort"

	"github.com/soypat/draft/dim"
	"github.com/soypat/draft/internal/d2"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	_ kdtree.Interface = kdPoints{}
	_ kdtree.Bounder   = kdPoints{}
)

// SnapIndex finds the snap points of laid out primitives nearest to a
// location.
type SnapIndex struct {
	tree *kdtree.Tree
}

// NewSnapIndex indexes the snap points of prims.
func NewSnapIndex(prims []dim.Primitive) *SnapIndex {
	pts := SnapPoints(prims)
	mykd := make(kdPoints, len(pts))
	for i := range mykd {
		mykd[i] = kdPoint(pts[i])
	}
	return &SnapIndex{tree: kdtree.New(mykd, true)}
}

// SnapPoints returns the points of prims a cursor may snap to: segment
// and arc end points, arc centres and midpoints, arrow tips and label
// anchors.
func SnapPoints(prims []dim.Primitive) []r2.Vec {
	var pts []r2.Vec
	for _, p := range prims {
		switch p := p.(type) {
		case dim.LineSegment:
			pts = append(pts, p.A, p.B)
		case dim.ArcSegment:
			pts = append(pts, p.Centre, p.Start, p.End, p.Arc().Mid())
		case dim.Triangle:
			pts = append(pts, p.P0)
		case dim.Label:
			pts = append(pts, p.Position)
		}
	}
	return pts
}

// Len returns the number of indexed points.
func (s *SnapIndex) Len() int {
	if s.tree.Root == nil {
		return 0
	}
	return s.tree.Len()
}

// Nearest returns the snap point nearest to v and its distance to v.
// ok is false when the index is empty.
func (s *SnapIndex) Nearest(v r2.Vec) (snap r2.Vec, dist float64, ok bool) {
	if s.Len() == 0 {
		return r2.Vec{}, 0, false
	}
	got, sq := s.tree.Nearest(kdPoint(v))
	return r2.Vec(got.(kdPoint)), math.Sqrt(sq), true
}

// Within returns the snap points no further than radius from v, nearest first.
func (s *SnapIndex) Within(v r2.Vec, radius float64) []r2.Vec {
	if s.Len() == 0 || radius < 0 {
		return nil
	}
	keep := kdtree.NewDistKeeper(radius * radius)
	s.tree.NearestSet(keep, kdPoint(v))
	found := make([]kdtree.ComparableDist, 0, len(keep.Heap))
	for _, c := range keep.Heap {
		if c.Comparable != nil {
			found = append(found, c)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Dist < found[j].Dist })
	pts := make([]r2.Vec, len(found))
	for i, c := range found {
		pts[i] = r2.Vec(c.Comparable.(kdPoint))
	}
	return pts
}

// Bounds returns the box containing every indexed point.
func (s *SnapIndex) Bounds() d2.Box {
	bb := s.tree.Root
	if bb == nil || bb.Bounding == nil {
		return d2.EmptyBox()
	}
	return d2.Box{
		Min: r2.Vec(bb.Bounding.Min.(kdPoint)),
		Max: r2.Vec(bb.Bounding.Max.(kdPoint)),
	}
}

type kdPoints []kdPoint

type kdPoint r2.Vec

func (k kdPoints) Index(i int) kdtree.Comparable { return k[i] }

// Len returns the length of the list.
func (k kdPoints) Len() int { return len(k) }

// Pivot partitions the list based on the dimension specified.
func (k kdPoints) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: d, points: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (k kdPoints) Slice(start, end int) kdtree.Interface {
	return k[start:end]
}

func (k kdPoints) Bounds() *kdtree.Bounding {
	min := d2.Elem(math.MaxFloat64)
	max := d2.Elem(-math.MaxFloat64)
	for _, p := range k {
		min = d2.MinElem(min, r2.Vec(p))
		max = d2.MaxElem(max, r2.Vec(p))
	}
	return &kdtree.Bounding{Min: kdPoint(min), Max: kdPoint(max)}
}

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d.
//
// Given c = a.Compare(b, d):
//
//	c = a_d - b_d
func (a kdPoint) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return kdComp(a, b.(kdPoint), d)
}

// Dims returns the number of dimensions described in the Comparable.
func (a kdPoint) Dims() int { return 2 }

// Distance returns the squared Euclidean distance between the receiver and
// the parameter.
func (a kdPoint) Distance(b kdtree.Comparable) float64 {
	return r2.Norm2(r2.Sub(r2.Vec(a), r2.Vec(b.(kdPoint))))
}

// c = a.d - b.d
func kdComp(a, b kdPoint, d kdtree.Dim) float64 {
	if d == 0 {
		return a.X - b.X
	}
	return a.Y - b.Y
}

type kdPlane struct {
	dim    kdtree.Dim
	points kdPoints
}

func (p kdPlane) Less(i, j int) bool {
	return kdComp(p.points[i], p.points[j], p.dim) < 0
}
func (p kdPlane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}
func (p kdPlane) Len() int {
	return len(p.points)
}
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
