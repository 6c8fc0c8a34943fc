// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mbcanvas

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/mboard"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("mbcanvas: canvas is closed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("mbcanvas: invalid dimensions")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("mbcanvas: nil DeviceProvider")
)

// textureDestroyer is the interface for destroying textures.
// This matches the gogpu.Texture.Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// Canvas shows an mboard.Canvas through a CanvasView in a gogpu window.
// It manages the CPU-to-GPU pipeline automatically.
//
// Canvas is NOT safe for concurrent use.
type Canvas struct {
	board    *mboard.Canvas
	view     mboard.CanvasView
	provider gpucontext.DeviceProvider

	arena     *mboard.Arena
	staging   []byte // full-frame upload buffer, reused
	regionBuf []byte // damage upload buffer, reused

	texture     any               // *pendingTexture until RenderTo, then gpucontext.Texture
	oldTexture  any               // Previous texture awaiting deferred destruction
	dirty       bool              // Whole view needs upload
	damage      mboard.CanvasRect // Visible canvas area changed since the last upload
	sizeChanged bool              // Resize pending, texture must be recreated
	closed      bool
}

// New creates a Canvas of the given view size for integrated mode.
// The provider should come from gogpu.App.GPUContextProvider(). Options
// configure the underlying mboard.Canvas.
//
// Returns error if dimensions are invalid or provider is nil.
func New(provider gpucontext.DeviceProvider, width, height int, opts ...mboard.Option) (*Canvas, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	info := provider.AdapterInfo()
	mboard.Logger().Debug("mbcanvas: created",
		slog.Int("width", width),
		slog.Int("height", height),
		slog.String("adapter", info.Name),
		slog.String("adapterType", info.Type.String()),
		slog.String("surfaceFormat", provider.SurfaceFormat().String()))

	return &Canvas{
		board:    mboard.NewCanvas(opts...),
		view:     mboard.NewCanvasView(uint32(width), uint32(height)), //nolint:gosec // validated positive
		provider: provider,
		arena:    mboard.NewArena(width * height),
		dirty:    true, // Mark dirty so first Flush creates texture
	}, nil
}

// MustNew is like New but panics on error.
// Use only when errors are programming mistakes (e.g., hardcoded dimensions).
func MustNew(provider gpucontext.DeviceProvider, width, height int, opts ...mboard.Option) *Canvas {
	c, err := New(provider, width, height, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// checkDimensions validates a view size.
func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 || int64(width) > int64(^uint32(0)) || int64(height) > int64(^uint32(0)) {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	return nil
}

// Board returns the layered canvas being shown.
// Mutating it directly bypasses damage tracking: call MarkDirty afterwards,
// or use Perform.
//
// Returns nil if the canvas is closed.
func (c *Canvas) Board() *mboard.Canvas {
	if c.closed {
		return nil
	}
	return c.board
}

// View returns the current view.
func (c *Canvas) View() mboard.CanvasView {
	return c.view
}

// Width returns the view width in pixels.
func (c *Canvas) Width() int {
	return int(c.view.ViewDimensions().Width)
}

// Height returns the view height in pixels.
func (c *Canvas) Height() int {
	return int(c.view.ViewDimensions().Height)
}

// Size returns width and height as a convenience.
func (c *Canvas) Size() (width, height int) {
	return c.Width(), c.Height()
}

// Perform applies a raster action to layer i and returns the canvas area it
// changed. Only the visible part of that area is scheduled for upload.
func (c *Canvas) Perform(i int, a mboard.RasterLayerAction) (mboard.CanvasRect, bool, error) {
	if c.closed {
		return mboard.CanvasRect{}, false, ErrCanvasClosed
	}
	r, ok, err := c.board.PerformRasterAction(i, a)
	if err != nil || !ok {
		return r, ok, err
	}
	if visible, vis := r.Intersect(c.view.VisibleRect()); vis && !c.dirty {
		c.damage = c.damage.Union(visible)
	}
	return r, ok, nil
}

// Pan moves the view by (dx, dy) canvas pixels.
func (c *Canvas) Pan(dx, dy int64) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if dx == 0 && dy == 0 {
		return nil
	}
	c.view.Translate(dx, dy)
	c.MarkDirty()
	return nil
}

// PinScale scales the logical canvas extent, keeping the anchor at the same
// fractional position. See mboard.CanvasView.PinScaleCanvas.
func (c *Canvas) PinScale(widthFactor, heightFactor float64) error {
	if c.closed {
		return ErrCanvasClosed
	}
	before := c.view.Anchor()
	if err := c.view.PinScaleCanvas(widthFactor, heightFactor); err != nil {
		return err
	}
	if c.view.Anchor() != before {
		c.MarkDirty()
	}
	return nil
}

// MarkDirty flags the whole view for upload on next Flush().
// Call this after mutating Board() directly.
func (c *Canvas) MarkDirty() {
	c.dirty = true
	c.damage = mboard.CanvasRect{}
}

// IsDirty returns true if the canvas has pending changes
// that need to be uploaded to the GPU.
func (c *Canvas) IsDirty() bool {
	return c.dirty || !c.damage.Empty()
}

// Resize changes the view dimensions. Canvas content is kept; the window
// onto it grows or shrinks from its top-left corner.
//
// Returns error if dimensions are invalid or canvas is closed.
func (c *Canvas) Resize(width, height int) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if err := checkDimensions(width, height); err != nil {
		return err
	}

	// No-op if dimensions haven't changed
	if c.Width() == width && c.Height() == height {
		return nil
	}

	c.view.ResizeView(uint32(width), uint32(height)) //nolint:gosec // validated
	c.sizeChanged = true
	c.MarkDirty()
	return nil
}

// Flush uploads the visible canvas content to the GPU texture if needed.
// Returns the texture for manual drawing if needed.
//
// The texture is created lazily on first Flush(). Later calls upload the
// damaged region when possible and the whole view otherwise.
//
// Returns error if rendering or texture update fails, or if canvas is closed.
func (c *Canvas) Flush() (any, error) {
	if c.closed {
		return nil, ErrCanvasClosed
	}

	// The old texture may still be referenced by in-flight GPU command
	// buffers; keep it alive until the replacement has been created in
	// RenderTo.
	if c.sizeChanged {
		if c.texture != nil {
			if _, pending := c.texture.(*pendingTexture); !pending {
				c.destroyOld()
				c.oldTexture = c.texture
			}
			c.texture = nil
		}
		c.sizeChanged = false
	}

	// Skip if nothing changed
	if !c.IsDirty() && c.texture != nil {
		return c.texture, nil
	}

	if !c.dirty && c.texture != nil {
		if ru, ok := c.texture.(gpucontext.TextureRegionUpdater); ok {
			if err := c.uploadDamage(ru); err != nil {
				return nil, err
			}
			return c.texture, nil
		}
	}

	data, err := c.renderView()
	if err != nil {
		return nil, err
	}

	switch tex := c.texture.(type) {
	case nil:
		// Create texture lazily
		c.texture = c.createTexture(data)
	case *pendingTexture:
		tex.data = data
	case gpucontext.TextureUpdater:
		if err := tex.UpdateData(data); err != nil {
			return nil, fmt.Errorf("mbcanvas: texture update failed: %w", err)
		}
	}

	c.dirty = false
	c.damage = mboard.CanvasRect{}
	return c.texture, nil
}

// renderView renders the whole view into the staging buffer as RGBA bytes.
func (c *Canvas) renderView() ([]byte, error) {
	frame := c.board.RenderInto(c.view, c.arena)
	data, err := frame.AppendImageData(c.staging[:0])
	c.arena.Reset()
	if err != nil {
		return nil, fmt.Errorf("mbcanvas: render failed: %w", err)
	}
	c.staging = data
	return data, nil
}

// uploadDamage renders only the damaged subview and uploads it in place.
func (c *Canvas) uploadDamage(ru gpucontext.TextureRegionUpdater) error {
	damage := c.damage
	c.damage = mboard.CanvasRect{}

	sub, ok := c.view.CanvasRectSubview(damage)
	if !ok {
		return nil
	}
	vr, _ := damage.ToViewRect(c.view)

	frame := c.board.RenderInto(sub, c.arena)
	data, err := frame.AppendImageData(c.regionBuf[:0])
	c.arena.Reset()
	if err != nil {
		return fmt.Errorf("mbcanvas: render failed: %w", err)
	}
	c.regionBuf = data

	if err := ru.UpdateRegion(int(vr.X), int(vr.Y), int(vr.Width), int(vr.Height), data); err != nil {
		return fmt.Errorf("mbcanvas: texture region update failed: %w", err)
	}
	mboard.Logger().Debug("mbcanvas: region uploaded", slog.String("rect", damage.String()))
	return nil
}

// Texture returns the current GPU texture without flushing.
// Returns nil if texture hasn't been created yet.
//
// Use Flush() to ensure the texture exists and is up-to-date.
func (c *Canvas) Texture() any {
	return c.texture
}

// Close releases all resources associated with the Canvas.
// After Close, the Canvas should not be used.
// Close is idempotent - multiple calls are safe.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	// Destroy textures (current and any deferred old texture)
	c.destroyOld()
	if destroyer, ok := c.texture.(textureDestroyer); ok {
		destroyer.Destroy()
	}
	c.texture = nil

	c.board.Close()
	c.staging = nil
	c.regionBuf = nil
	c.provider = nil
	return nil
}

// destroyOld destroys the texture kept alive across a resize, if any.
func (c *Canvas) destroyOld() {
	if c.oldTexture == nil {
		return
	}
	if destroyer, ok := c.oldTexture.(textureDestroyer); ok {
		destroyer.Destroy()
	}
	c.oldTexture = nil
}

// createTexture creates a pending texture placeholder from pixel data.
// The actual GPU texture is created during RenderTo, when a
// gpucontext.TextureCreator is available.
func (c *Canvas) createTexture(data []byte) *pendingTexture {
	return &pendingTexture{
		width:  c.Width(),
		height: c.Height(),
		data:   data,
	}
}

// pendingTexture is a placeholder for texture creation.
// It holds the data needed to create a real texture when we have
// access to a TextureCreator (during RenderTo).
type pendingTexture struct {
	width  int
	height int
	data   []byte
}

// Provider returns the DeviceProvider associated with this canvas.
// Returns nil if the canvas is closed.
func (c *Canvas) Provider() gpucontext.DeviceProvider {
	if c.closed {
		return nil
	}
	return c.provider
}
