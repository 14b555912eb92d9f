package render

import (
	"io"
	"sync"

	"github.com/soypat/draft/dim"
)

// layouter renders dimensions by laying each one out with the styles
// current at the time it is read.
type layouter struct {
	styles    dim.StyleResolver
	todo      []*dim.Dimension
	unwritten primitiveBuffer
	// concurrent goroutine processing.
	concurrent int
	empty      int
}

// NewLayoutRenderer returns a Renderer that lays out dims in order.
// Dimensions with degenerate geometry contribute no primitives.
func NewLayoutRenderer(styles dim.StyleResolver, dims ...*dim.Dimension) *layouter {
	return &layouter{
		styles:    styles,
		todo:      dims,
		unwritten: primitiveBuffer{buf: make([]dim.Primitive, 0, 64)},
	}
}

// SetConcurrency sets how many dimensions are laid out at once. Output
// order does not depend on it. Styles must not be edited while rendering
// concurrently.
func (l *layouter) SetConcurrency(n int) {
	l.concurrent = n
}

// Empty returns the number of dimensions read so far that laid out to nothing.
func (l *layouter) Empty() int { return l.empty }

// ReadPrimitives writes primitives laid out from the dimensions into dst.
func (l *layouter) ReadPrimitives(dst []dim.Primitive) (n int, err error) {
	if len(dst) == 0 {
		panic("cannot write to empty primitive slice")
	}
	n = l.unwritten.Read(dst)
	for n < len(dst) && len(l.todo) > 0 {
		k := min(max(l.concurrent, 1), len(l.todo))
		for _, prims := range l.layoutBatch(l.todo[:k]) {
			if len(prims) == 0 {
				l.empty++
			}
			l.unwritten.Write(prims)
		}
		l.todo = l.todo[k:]
		n += l.unwritten.Read(dst[n:])
	}
	if n == 0 {
		// Done rendering dimensions.
		return 0, io.EOF
	}
	return n, nil
}

func (l *layouter) layoutBatch(dims []*dim.Dimension) [][]dim.Primitive {
	out := make([][]dim.Primitive, len(dims))
	if len(dims) == 1 {
		out[0] = dims[0].Layout(l.styles)
		return out
	}
	var wg sync.WaitGroup
	wg.Add(len(dims))
	for i := range dims {
		go func(i int) {
			defer wg.Done()
			out[i] = dims[i].Layout(l.styles)
		}(i)
	}
	wg.Wait()
	return out
}
