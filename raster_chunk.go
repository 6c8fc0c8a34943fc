package mboard

import "math/bits"

// rasterChunk is the owned, mutable chunk stored inside a Layer.
//
// Besides the pixels it keeps one "written" bit per pixel. Compositing
// copies only written pixels, so an untouched pixel lets the layers below
// show through even if a fill stored the same value as DefaultPixel.
//
// rasterChunk is NOT thread-safe; its owning Layer serializes access.
type rasterChunk struct {
	edge    int
	pix     []Pixel
	written []uint64 // bit i set => pix[i] was painted
}

// newRasterChunk allocates a default-filled edge×edge chunk.
func newRasterChunk(edge int) *rasterChunk {
	n := edge * edge
	return &rasterChunk{
		edge:    edge,
		pix:     make([]Pixel, n),
		written: make([]uint64, (n+63)/64),
	}
}

// reset restores every pixel to DefaultPixel and clears the written bits.
func (c *rasterChunk) reset() {
	clear(c.pix)
	clear(c.written)
}

// fillSpan paints pixels [x0, x1) of row y. Coordinates are chunk-local.
func (c *rasterChunk) fillSpan(y, x0, x1 int, p Pixel) {
	row := y * c.edge
	span := c.pix[row+x0 : row+x1]
	for i := range span {
		span[i] = p
	}
	c.setBits(row+x0, row+x1)
}

// eraseSpan returns pixels [x0, x1) of row y to the unwritten state.
func (c *rasterChunk) eraseSpan(y, x0, x1 int) {
	row := y * c.edge
	clear(c.pix[row+x0 : row+x1])
	c.clearBits(row+x0, row+x1)
}

// setBits sets the written bits for pixel indices [i0, i1).
func (c *rasterChunk) setBits(i0, i1 int) {
	for i0 < i1 {
		w, b := i0>>6, i0&63
		n := min(64-b, i1-i0)
		c.written[w] |= spanMask(b, n)
		i0 += n
	}
}

// clearBits clears the written bits for pixel indices [i0, i1).
func (c *rasterChunk) clearBits(i0, i1 int) {
	for i0 < i1 {
		w, b := i0>>6, i0&63
		n := min(64-b, i1-i0)
		c.written[w] &^= spanMask(b, n)
		i0 += n
	}
}

// spanMask returns n consecutive set bits starting at bit b (n in [1, 64]).
func spanMask(b, n int) uint64 {
	if n == 64 {
		return ^uint64(0)
	}
	return ((uint64(1) << n) - 1) << b
}

// compositeRow copies the written pixels of chunk-local row y, columns
// [x0, x1), into dst, where dst[0] corresponds to column x0.
func (c *rasterChunk) compositeRow(dst []Pixel, y, x0, x1 int) {
	row := y * c.edge
	i, end := row+x0, row+x1
	for i < end {
		w, b := i>>6, i&63
		n := min(64-b, end-i)
		bitsWord := (c.written[w] >> b) & spanMask(0, n)
		switch bitsWord {
		case 0:
			// nothing painted in this run
		case spanMask(0, n):
			copy(dst[i-row-x0:i-row-x0+n], c.pix[i:i+n])
		default:
			for bitsWord != 0 {
				k := bits.TrailingZeros64(bitsWord)
				dst[i-row-x0+k] = c.pix[i+k]
				bitsWord &= bitsWord - 1
			}
		}
		i += n
	}
}

// snapshot copies the chunk into a read-only Chunk.
func (c *rasterChunk) snapshot() *Chunk {
	out := newChunk(c.edge, c.edge)
	copy(out.pix, c.pix)
	return out
}
