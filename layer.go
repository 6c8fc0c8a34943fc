package mboard

import (
	"cmp"
	"fmt"
	"log/slog"
	"maps"
	"slices"
)

// Layer is a sparse, unbounded grid of chunks addressed by chunk coordinate.
//
// Chunks are allocated lazily the first time an action paints into them;
// an absent chunk is indistinguishable from one holding only DefaultPixel.
//
// Layer is NOT safe for concurrent use.
type Layer struct {
	name      string
	chunkSize int
	chunks    map[ChunkCoord]*rasterChunk
	hidden    bool
	pool      *chunkPool
	owner     *Canvas // nil while the layer is not part of a canvas
}

// NewLayer creates an empty layer with the given chunk edge length.
func NewLayer(chunkSize int) (*Layer, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChunkSize, chunkSize)
	}
	return &Layer{
		chunkSize: chunkSize,
		chunks:    make(map[ChunkCoord]*rasterChunk),
		pool:      defaultChunkPool,
	}, nil
}

// ChunkSize returns the chunk edge length.
func (l *Layer) ChunkSize() int {
	return l.chunkSize
}

// Name returns the layer name.
func (l *Layer) Name() string {
	return l.name
}

// SetName sets a descriptive name, used in logs only.
func (l *Layer) SetName(name string) {
	l.name = name
}

// Visible reports whether the layer takes part in compositing.
func (l *Layer) Visible() bool {
	return !l.hidden
}

// SetVisible controls layer visibility without discarding its contents.
func (l *Layer) SetVisible(visible bool) {
	l.hidden = !visible
}

// PerformAction applies a to the layer and returns the canvas-space
// rectangle it covered: the target, minus any part past math.MaxInt64.
// The boolean is false when that leaves nothing.
func (l *Layer) PerformAction(a RasterLayerAction) (CanvasRect, bool) {
	target := a.Target.clipToSpace()
	if target.Empty() {
		return CanvasRect{}, false
	}
	return l.apply(a, target), true
}

// PerformActionWithin is like PerformAction but confines all changes to
// bounds. The returned rectangle is the target clipped to bounds; the
// boolean is false when they do not overlap.
func (l *Layer) PerformActionWithin(a RasterLayerAction, bounds CanvasRect) (CanvasRect, bool) {
	region, ok := a.Target.Intersect(bounds)
	if !ok {
		return CanvasRect{}, false
	}
	return l.apply(a, region), true
}

// apply rasterizes a inside region, chunk by chunk. region must be a
// non-empty subset of a.Target.
func (l *Layer) apply(a RasterLayerAction, region CanvasRect) CanvasRect {
	shape := a.shape()
	edge := int64(l.chunkSize)
	c0, c1 := chunkRange(region, edge)

	for cy := c0.Y; cy <= c1.Y; cy++ {
		for cx := c0.X; cx <= c1.X; cx++ {
			coord := ChunkCoord{X: cx, Y: cy}
			sub, _ := region.Intersect(chunkRect(coord, l.chunkSize))
			l.applyInChunk(a, shape, coord, sub)
		}
	}
	return region
}

// applyInChunk rasterizes the part of a that falls in sub, which lies
// entirely inside chunk coord.
func (l *Layer) applyInChunk(a RasterLayerAction, shape Shape, coord ChunkCoord, sub CanvasRect) {
	edge := int64(l.chunkSize)
	originX, originY := coord.X*edge, coord.Y*edge
	chunk := l.chunks[coord]

	for y := sub.Y; y < sub.MaxY(); y++ {
		x0, x1 := shape.Span(a.Target, y)
		x0 = max(x0, sub.X)
		x1 = min(x1, sub.MaxX())
		if x0 >= x1 {
			continue
		}
		if a.Erase {
			if chunk == nil {
				return // nothing to erase in an unallocated chunk
			}
			chunk.eraseSpan(int(y-originY), int(x0-originX), int(x1-originX))
			continue
		}
		if chunk == nil {
			chunk = l.allocate(coord)
		}
		chunk.fillSpan(int(y-originY), int(x0-originX), int(x1-originX), a.Pixel)
	}
}

// allocate creates storage for coord.
func (l *Layer) allocate(coord ChunkCoord) *rasterChunk {
	c := l.pool.get(l.chunkSize)
	l.chunks[coord] = c
	Logger().Debug("mboard: chunk allocated",
		slog.String("layer", l.name),
		slog.Int64("cx", coord.X),
		slog.Int64("cy", coord.Y),
		slog.Int("chunks", len(l.chunks)))
	return c
}

// Chunk returns a snapshot of the chunk at coord. Absent chunks yield a
// fresh all-default chunk. The result is the caller's to modify.
func (l *Layer) Chunk(coord ChunkCoord) *Chunk {
	c, ok := l.chunks[coord]
	if !ok {
		return newChunk(l.chunkSize, l.chunkSize)
	}
	return c.snapshot()
}

// HasChunk reports whether storage exists for coord.
func (l *Layer) HasChunk(coord ChunkCoord) bool {
	_, ok := l.chunks[coord]
	return ok
}

// ChunkCount returns the number of allocated chunks.
func (l *Layer) ChunkCount() int {
	return len(l.chunks)
}

// Coords returns the allocated chunk coordinates in row-major order.
func (l *Layer) Coords() []ChunkCoord {
	return slices.SortedFunc(maps.Keys(l.chunks), func(a, b ChunkCoord) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
}

// Bounds returns the canvas-space extent of all allocated chunks.
// The boolean is false for a layer with no chunks.
func (l *Layer) Bounds() (CanvasRect, bool) {
	var r CanvasRect
	for coord := range l.chunks {
		r = r.Union(chunkRect(coord, l.chunkSize))
	}
	return r, !r.Empty()
}

// Clear drops every chunk, returning their memory to the pool.
func (l *Layer) Clear() {
	for coord, c := range l.chunks {
		l.pool.put(c)
		delete(l.chunks, coord)
	}
}

// chunk returns the owned chunk at coord, or nil.
func (l *Layer) chunk(coord ChunkCoord) *rasterChunk {
	return l.chunks[coord]
}
