package mboard

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/mboard/internal/parallel"
)

// Canvas is an ordered stack of layers; later layers are drawn on top.
//
// Canvas is the entry point for mutating content and for rendering frames.
// It is NOT safe for concurrent use: the driver must serialize calls (one
// mutation/render goroutine, or external locking).
type Canvas struct {
	layers     []*Layer
	chunkSize  int
	background Pixel
	pool       *chunkPool
	workers    *parallel.WorkerPool
	closed     bool
}

// NewCanvas creates an empty canvas.
func NewCanvas(opts ...Option) *Canvas {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Canvas{
		chunkSize:  o.chunkSize,
		background: o.background,
		pool:       newChunkPool(),
	}
	if o.workers > 1 {
		c.workers = parallel.NewWorkerPool(o.workers)
	}
	return c
}

// ChunkSize returns the chunk edge length shared by all layers.
func (c *Canvas) ChunkSize() int {
	return c.chunkSize
}

// Background returns the pixel shown where no layer has painted.
func (c *Canvas) Background() Pixel {
	return c.background
}

// LayerCount returns the number of layers.
func (c *Canvas) LayerCount() int {
	return len(c.layers)
}

// AddLayer appends l on top of the stack and returns its index.
// The layer's chunk size must match the canvas's. The canvas takes
// exclusive ownership of l: a layer already on a canvas, this one or
// another, is rejected with ErrLayerOwned until it is removed.
func (c *Canvas) AddLayer(l *Layer) (int, error) {
	if c.closed {
		return 0, ErrCanvasClosed
	}
	if l == nil {
		return 0, ErrNilLayer
	}
	if l.owner != nil {
		Logger().Warn("mboard: rejected layer already on a canvas",
			slog.String("name", l.name),
			slog.Bool("sameCanvas", l.owner == c))
		return 0, ErrLayerOwned
	}
	if l.chunkSize != c.chunkSize {
		Logger().Warn("mboard: rejected layer",
			slog.Int("layerChunkSize", l.chunkSize),
			slog.Int("canvasChunkSize", c.chunkSize))
		return 0, fmt.Errorf("%w: layer %d, canvas %d", ErrChunkSizeMismatch, l.chunkSize, c.chunkSize)
	}

	l.pool = c.pool
	l.owner = c
	c.layers = append(c.layers, l)
	idx := len(c.layers) - 1
	Logger().Debug("mboard: layer added", slog.Int("index", idx), slog.String("name", l.name))
	return idx, nil
}

// AddRasterLayer appends a new empty layer using the canvas chunk size
// and returns its index.
func (c *Canvas) AddRasterLayer() (int, error) {
	if c.closed {
		return 0, ErrCanvasClosed
	}
	l := &Layer{
		chunkSize: c.chunkSize,
		chunks:    make(map[ChunkCoord]*rasterChunk),
		pool:      c.pool,
		owner:     c,
	}
	c.layers = append(c.layers, l)
	idx := len(c.layers) - 1
	Logger().Debug("mboard: layer added", slog.Int("index", idx))
	return idx, nil
}

// Layer returns the layer at index i.
func (c *Canvas) Layer(i int) (*Layer, error) {
	if err := c.checkIndex(i); err != nil {
		return nil, err
	}
	return c.layers[i], nil
}

// RemoveLayer removes and destroys the layer at index i. Layers above it
// move down by one.
func (c *Canvas) RemoveLayer(i int) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.layers[i].Clear()
	c.layers[i].owner = nil
	c.layers = append(c.layers[:i], c.layers[i+1:]...)
	Logger().Debug("mboard: layer removed", slog.Int("index", i), slog.Int("remaining", len(c.layers)))
	return nil
}

// PerformRasterAction applies a to layer i and returns the canvas-space
// rectangle it changed. The boolean is false when the action's target is
// empty. An out-of-range index is reported as ErrLayerIndex and leaves
// the canvas untouched.
func (c *Canvas) PerformRasterAction(i int, a RasterLayerAction) (CanvasRect, bool, error) {
	if c.closed {
		return CanvasRect{}, false, ErrCanvasClosed
	}
	if err := c.checkIndex(i); err != nil {
		return CanvasRect{}, false, err
	}
	r, ok := c.layers[i].PerformAction(a)
	return r, ok, nil
}

// checkIndex validates a layer index.
func (c *Canvas) checkIndex(i int) error {
	if i < 0 || i >= len(c.layers) {
		Logger().Warn("mboard: layer index out of range",
			slog.Int("index", i),
			slog.Int("layers", len(c.layers)))
		return fmt.Errorf("%w: index %d, layer count %d", ErrLayerIndex, i, len(c.layers))
	}
	return nil
}

// Close destroys all layers and stops the compositing workers.
// Close is idempotent.
func (c *Canvas) Close() {
	if c.closed {
		return
	}
	c.closed = true
	for _, l := range c.layers {
		l.Clear()
		l.owner = nil
	}
	c.layers = nil
	if c.workers != nil {
		c.workers.Close()
		c.workers = nil
	}
}
