package mboard

import (
	"fmt"
	"math"
)

// Dimensions is an unsigned width/height pair. A zero width or height
// denotes an empty region.
type Dimensions struct {
	Width, Height uint32
}

// Empty reports whether the region has zero area.
func (d Dimensions) Empty() bool {
	return d.Width == 0 || d.Height == 0
}

// Area returns the number of pixels covered.
func (d Dimensions) Area() int {
	return int(d.Width) * int(d.Height)
}

// CanvasPosition is a point in the signed, unbounded canvas space.
type CanvasPosition struct {
	X, Y int64
}

// PixelPosition is a point in view space.
type PixelPosition struct {
	X, Y uint32
}

// ChunkCoord identifies a chunk in units of the chunk edge length.
type ChunkCoord struct {
	X, Y int64
}

// CanvasRect is a rectangle in canvas space. It may lie anywhere in the
// unbounded canvas, including at negative coordinates.
type CanvasRect struct {
	X, Y          int64
	Width, Height uint32
}

// Rect is shorthand for a CanvasRect literal.
func Rect(x, y int64, width, height uint32) CanvasRect {
	return CanvasRect{X: x, Y: y, Width: width, Height: height}
}

// Empty reports whether the rectangle has zero area.
func (r CanvasRect) Empty() bool {
	return r.Width == 0 || r.Height == 0
}

// Dimensions returns the rectangle size.
func (r CanvasRect) Dimensions() Dimensions {
	return Dimensions{Width: r.Width, Height: r.Height}
}

// TopLeft returns the top-left corner.
func (r CanvasRect) TopLeft() CanvasPosition {
	return CanvasPosition{X: r.X, Y: r.Y}
}

// MaxX returns the exclusive right edge, saturating at math.MaxInt64.
func (r CanvasRect) MaxX() int64 { return addSat(r.X, int64(r.Width)) }

// MaxY returns the exclusive bottom edge, saturating at math.MaxInt64.
func (r CanvasRect) MaxY() int64 { return addSat(r.Y, int64(r.Height)) }

// clipToSpace trims r so that both far edges are representable. Pixels
// past math.MaxInt64 do not exist.
func (r CanvasRect) clipToSpace() CanvasRect {
	r.Width = uint32(r.MaxX() - r.X)  //nolint:gosec // <= r.Width
	r.Height = uint32(r.MaxY() - r.Y) //nolint:gosec // <= r.Height
	return r
}

// Contains reports whether the pixel (x, y) lies inside the rectangle.
func (r CanvasRect) Contains(x, y int64) bool {
	return x >= r.X && x < r.MaxX() && y >= r.Y && y < r.MaxY()
}

// Intersect returns the overlap of r and o. The boolean is false when the
// rectangles do not overlap or either is empty.
func (r CanvasRect) Intersect(o CanvasRect) (CanvasRect, bool) {
	if r.Empty() || o.Empty() {
		return CanvasRect{}, false
	}
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.MaxX(), o.MaxX())
	y1 := min(r.MaxY(), o.MaxY())
	if x0 >= x1 || y0 >= y1 {
		return CanvasRect{}, false
	}
	return CanvasRect{X: x0, Y: y0, Width: uint32(x1 - x0), Height: uint32(y1 - y0)}, true //nolint:gosec // bounded by the inputs' sizes
}

// Union returns the smallest rectangle covering both r and o.
// Empty rectangles are ignored.
func (r CanvasRect) Union(o CanvasRect) CanvasRect {
	switch {
	case r.Empty():
		return o
	case o.Empty():
		return r
	}
	x0 := min(r.X, o.X)
	y0 := min(r.Y, o.Y)
	x1 := max(r.MaxX(), o.MaxX())
	y1 := max(r.MaxY(), o.MaxY())
	return CanvasRect{X: x0, Y: y0, Width: clampUint32(x1 - x0), Height: clampUint32(y1 - y0)}
}

// ToViewRect clips r against the visible window of v and returns the
// overlap in view space. The boolean is false when nothing is visible.
func (r CanvasRect) ToViewRect(v CanvasView) (ViewRect, bool) {
	visible, ok := r.Intersect(v.VisibleRect())
	if !ok {
		return ViewRect{}, false
	}
	return ViewRect{
		X:      uint32(visible.X - v.anchor.X), //nolint:gosec // within [0, view width)
		Y:      uint32(visible.Y - v.anchor.Y), //nolint:gosec // within [0, view height)
		Width:  visible.Width,
		Height: visible.Height,
	}, true
}

// String returns the rectangle as "(x,y wxh)".
func (r CanvasRect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// ViewRect is a rectangle in view space, always inside the view it was
// clipped against.
type ViewRect struct {
	X, Y          uint32
	Width, Height uint32
}

// TopLeft returns the top-left corner.
func (r ViewRect) TopLeft() PixelPosition {
	return PixelPosition{X: r.X, Y: r.Y}
}

// Dimensions returns the rectangle size.
func (r ViewRect) Dimensions() Dimensions {
	return Dimensions{Width: r.Width, Height: r.Height}
}

// floorDiv divides rounding toward negative infinity, so that canvas
// coordinate -1 falls into chunk -1 rather than chunk 0.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// chunkRange returns the inclusive chunk coordinate range covering r.
// r must not be empty.
func chunkRange(r CanvasRect, edge int64) (c0, c1 ChunkCoord) {
	c0 = ChunkCoord{X: floorDiv(r.X, edge), Y: floorDiv(r.Y, edge)}
	c1 = ChunkCoord{X: floorDiv(r.MaxX()-1, edge), Y: floorDiv(r.MaxY()-1, edge)}
	return c0, c1
}

// chunkRect returns the canvas-space rectangle covered by chunk c.
func chunkRect(c ChunkCoord, edge int) CanvasRect {
	e := int64(edge)
	return CanvasRect{X: c.X * e, Y: c.Y * e, Width: uint32(edge), Height: uint32(edge)} //nolint:gosec // edge is a validated positive int
}

// addSat returns v+d for d >= 0, saturating at math.MaxInt64.
func addSat(v, d int64) int64 {
	if v > math.MaxInt64-d {
		return math.MaxInt64
	}
	return v + d
}

// clampUint32 saturates a non-negative int64 into uint32 range.
func clampUint32(v int64) uint32 {
	switch {
	case v <= 0:
		return 0
	case v > math.MaxUint32:
		return math.MaxUint32
	default:
		return uint32(v)
	}
}
