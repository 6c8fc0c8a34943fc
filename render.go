package mboard

// Render composites all visible layers over the view's window and returns
// a freshly allocated view-sized buffer.
func (c *Canvas) Render(view CanvasView) *Chunk {
	return c.RenderCanvasRect(view.VisibleRect())
}

// RenderCanvasRect composites all visible layers over r and returns a
// freshly allocated r-sized buffer. It bypasses any viewport, e.g. for export.
func (c *Canvas) RenderCanvasRect(r CanvasRect) *Chunk {
	f := newFrame(nil, int(r.Width), int(r.Height))
	c.composite(f.pix, r)
	return wrapChunk(f.width, f.height, f.pix)
}

// RenderInto is the low-allocation variant of Render: the frame is carved
// out of arena and is only readable until arena.Reset. A nil arena yields
// a heap-backed frame that never expires.
func (c *Canvas) RenderInto(view CanvasView, arena *Arena) *Frame {
	return c.RenderCanvasRectInto(view.VisibleRect(), arena)
}

// RenderCanvasRectInto is the arena-backed variant of RenderCanvasRect.
func (c *Canvas) RenderCanvasRectInto(r CanvasRect, arena *Arena) *Frame {
	f := newFrame(arena, int(r.Width), int(r.Height))
	c.composite(f.pix, r)
	return f
}

// composite writes the composition of region r into dst (len r.Width*r.Height).
//
// The output starts as the background. Then, for each chunk cell of r and
// each visible layer from bottom to top, the layer's written pixels in
// that cell overwrite what is below. Each layer chunk is visited once per
// call. Absent chunks are skipped, which is the same as compositing an
// all-default chunk.
func (c *Canvas) composite(dst []Pixel, r CanvasRect) {
	for i := range dst {
		dst[i] = c.background
	}
	if r.Empty() {
		return
	}

	layers := make([]*Layer, 0, len(c.layers))
	for _, l := range c.layers {
		if l.Visible() && len(l.chunks) > 0 {
			layers = append(layers, l)
		}
	}
	if len(layers) == 0 {
		return
	}

	edge := int64(c.chunkSize)
	c0, c1 := chunkRange(r, edge)
	cells := (c1.X - c0.X + 1) * (c1.Y - c0.Y + 1)

	if c.workers == nil || cells < 2 {
		for cy := c0.Y; cy <= c1.Y; cy++ {
			for cx := c0.X; cx <= c1.X; cx++ {
				c.compositeCell(dst, r, ChunkCoord{X: cx, Y: cy}, layers)
			}
		}
		return
	}

	tasks := make([]func(), 0, cells)
	for cy := c0.Y; cy <= c1.Y; cy++ {
		for cx := c0.X; cx <= c1.X; cx++ {
			coord := ChunkCoord{X: cx, Y: cy}
			tasks = append(tasks, func() {
				c.compositeCell(dst, r, coord, layers)
			})
		}
	}
	c.workers.ExecuteAll(tasks)
}

// compositeCell composites the part of r inside chunk coord. Cells of the
// same region write disjoint parts of dst.
func (c *Canvas) compositeCell(dst []Pixel, r CanvasRect, coord ChunkCoord, layers []*Layer) {
	sub, ok := r.Intersect(chunkRect(coord, c.chunkSize))
	if !ok {
		return
	}

	edge := int64(c.chunkSize)
	stride := int64(r.Width)
	lx0 := int(sub.X - coord.X*edge)
	lx1 := lx0 + int(sub.Width)
	width := int64(sub.Width)

	for _, l := range layers {
		chunk := l.chunk(coord)
		if chunk == nil {
			continue
		}
		for y := sub.Y; y < sub.MaxY(); y++ {
			off := (y-r.Y)*stride + (sub.X - r.X)
			chunk.compositeRow(dst[off:off+width], int(y-coord.Y*edge), lx0, lx1)
		}
	}
}
