package path

import (
	"oxsvg/svgren/internal/basics"
)

// VertexSource interface represents a source of path vertices.
// This corresponds to AGG's vertex_source concept.
type VertexSource interface {
	// Rewind resets the vertex source to start from the beginning of the specified path.
	Rewind(pathID uint)

	// NextVertex returns the next vertex coordinates and command.
	// When the path is finished, it returns PathCmdStop.
	NextVertex() (x, y float64, cmd uint32)
}

// PolyPlainAdaptor adapts a plain array of coordinates to the VertexSource interface.
// This is a direct port of AGG's poly_plain_adaptor template class.
type PolyPlainAdaptor[T ~int | ~int32 | ~float32 | ~float64] struct {
	data   []T
	ptr    int
	end    int
	closed bool
	stop   bool
}

// NewPolyPlainAdaptor creates a new polygon plain adaptor.
func NewPolyPlainAdaptor[T ~int | ~int32 | ~float32 | ~float64]() *PolyPlainAdaptor[T] {
	return &PolyPlainAdaptor[T]{}
}

// NewPolyPlainAdaptorWithData creates a new polygon plain adaptor with data.
func NewPolyPlainAdaptorWithData[T ~int | ~int32 | ~float32 | ~float64](data []T, numPoints uint, closed bool) *PolyPlainAdaptor[T] {
	adaptor := &PolyPlainAdaptor[T]{}
	adaptor.Init(data, numPoints, closed)
	return adaptor
}

// Init initializes the adaptor with coordinate data.
// data should contain interleaved x,y coordinates, so numPoints*2 elements total.
func (ppa *PolyPlainAdaptor[T]) Init(data []T, numPoints uint, closed bool) {
	ppa.data = data
	ppa.ptr = 0
	ppa.end = int(numPoints * 2)
	ppa.closed = closed
	ppa.stop = false
}

// Rewind implements the VertexSource interface.
func (ppa *PolyPlainAdaptor[T]) Rewind(pathID uint) {
	ppa.ptr = 0
	ppa.stop = false
}

// NextVertex implements the VertexSource interface.
func (ppa *PolyPlainAdaptor[T]) NextVertex() (x, y float64, cmd uint32) {
	if ppa.ptr < ppa.end {
		first := ppa.ptr == 0
		x = float64(ppa.data[ppa.ptr])
		y = float64(ppa.data[ppa.ptr+1])
		ppa.ptr += 2

		if first {
			return x, y, uint32(basics.PathCmdMoveTo)
		}
		return x, y, uint32(basics.PathCmdLineTo)
	}

	if ppa.closed && !ppa.stop {
		ppa.stop = true
		return 0, 0, uint32(basics.PathCmdEndPoly) | uint32(basics.PathFlagsClose)
	}

	return 0, 0, uint32(basics.PathCmdStop)
}
