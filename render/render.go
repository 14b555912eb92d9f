package render

import "github.com/soypat/draft/dim"

// Renderer streams drawable primitives.
type Renderer interface {
	// ReadPrimitives writes primitives into dst and returns the number
	// written. It returns io.EOF once every primitive has been read.
	ReadPrimitives(dst []dim.Primitive) (int, error)
}
