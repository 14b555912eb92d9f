package render

import (
	"io"

	"github.com/soypat/draft/dim"
)

const primitivesInBuffer = 1 << 10

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.ReadAll implementation.
func RenderAll(r Renderer) ([]dim.Primitive, error) {
	var err error
	var n int
	result := make([]dim.Primitive, 0, primitivesInBuffer)
	buf := make([]dim.Primitive, primitivesInBuffer)
	for {
		n, err = r.ReadPrimitives(buf)
		result = append(result, buf[:n]...)
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

// each calls fn for every primitive read from r.
func each(r Renderer, fn func(dim.Primitive) error) error {
	buf := make([]dim.Primitive, primitivesInBuffer)
	for {
		n, err := r.ReadPrimitives(buf)
		for _, p := range buf[:n] {
			if ferr := fn(p); ferr != nil {
				return ferr
			}
		}
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
	}
}

type primitiveBuffer struct {
	buf []dim.Primitive
}

// Read reads from this buffer.
func (b *primitiveBuffer) Read(p []dim.Primitive) int {
	n := copy(p, b.buf)
	b.buf = b.buf[n:]
	return n
}

// Write appends primitives to this buffer.
func (b *primitiveBuffer) Write(p []dim.Primitive) int {
	b.buf = append(b.buf, p...)
	return len(p)
}

func (b *primitiveBuffer) Len() int { return len(b.buf) }

// Primitives is a Renderer over an in-memory primitive list.
type Primitives []dim.Primitive

// ReadPrimitives implements Renderer. The receiver is consumed as it is read.
func (p *Primitives) ReadPrimitives(dst []dim.Primitive) (int, error) {
	if len(*p) == 0 {
		return 0, io.EOF
	}
	n := copy(dst, *p)
	*p = (*p)[n:]
	return n, nil
}
