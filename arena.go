package mboard

import (
	"log/slog"
)

// Arena is a bump allocator for rendered frames.
//
// A driver producing a frame per animation tick renders into the arena,
// hands the frame to the display, then calls Reset. After the first few
// frames the arena's slab has grown to the high-water mark and rendering
// stops allocating.
//
// Frames obtained from an arena are valid only until the next Reset; every
// Frame accessor returns ErrFrameReleased afterwards.
//
// Arena is NOT safe for concurrent use.
type Arena struct {
	slab  []Pixel
	off   int    // next free pixel in slab
	spill int    // pixels handed out from the heap this generation
	gen   uint64 // bumped by Reset
}

// NewArena creates an arena with room for capacity pixels.
func NewArena(capacity int) *Arena {
	return &Arena{slab: make([]Pixel, max(capacity, 0))}
}

// alloc returns n pixels with unspecified contents.
// Requests that do not fit the slab are served from the heap and counted,
// so the next Reset grows the slab to fit the whole generation.
func (a *Arena) alloc(n int) []Pixel {
	if a.off+n <= len(a.slab) {
		s := a.slab[a.off : a.off+n : a.off+n]
		a.off += n
		return s
	}
	a.spill += n
	return make([]Pixel, n)
}

// Reset invalidates every frame handed out so far and makes the whole
// slab available again.
func (a *Arena) Reset() {
	a.gen++
	if need := a.off + a.spill; need > len(a.slab) {
		Logger().Debug("mboard: arena grown",
			slog.Int("from", len(a.slab)),
			slog.Int("to", need))
		a.slab = make([]Pixel, need)
	}
	a.off, a.spill = 0, 0
}

// Len returns the number of pixels handed out since the last Reset.
func (a *Arena) Len() int {
	return a.off + a.spill
}

// Cap returns the slab capacity in pixels.
func (a *Arena) Cap() int {
	return len(a.slab)
}

// Frame is a rendered pixel buffer that may live in an Arena.
type Frame struct {
	arena  *Arena // nil for heap-backed frames
	gen    uint64
	width  int
	height int
	pix    []Pixel
}

// newFrame allocates a frame from a, or from the heap when a is nil.
func newFrame(a *Arena, width, height int) *Frame {
	f := &Frame{arena: a, width: width, height: height}
	if a == nil {
		f.pix = make([]Pixel, width*height)
		return f
	}
	f.gen = a.gen
	f.pix = a.alloc(width * height)
	return f
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int {
	return f.width
}

// Height returns the frame height in pixels.
func (f *Frame) Height() int {
	return f.height
}

// Dimensions returns the frame size.
func (f *Frame) Dimensions() Dimensions {
	return Dimensions{Width: uint32(f.width), Height: uint32(f.height)} //nolint:gosec // sizes come from uint32 geometry
}

// Valid reports whether the frame can still be read.
func (f *Frame) Valid() bool {
	return f.arena == nil || f.arena.gen == f.gen
}

// Pixels returns the row-major pixels. The slice aliases arena memory: it
// must not be used after the arena is reset.
func (f *Frame) Pixels() ([]Pixel, error) {
	if !f.Valid() {
		return nil, ErrFrameReleased
	}
	return f.pix, nil
}

// AppendImageData appends the frame as RGBA bytes to dst.
func (f *Frame) AppendImageData(dst []byte) ([]byte, error) {
	if !f.Valid() {
		return dst, ErrFrameReleased
	}
	return appendImageData(dst, f.pix), nil
}

// Chunk copies the frame out of the arena into a heap-backed Chunk that
// outlives Reset.
func (f *Frame) Chunk() (*Chunk, error) {
	if !f.Valid() {
		return nil, ErrFrameReleased
	}
	c := newChunk(f.width, f.height)
	copy(c.pix, f.pix)
	return c, nil
}
