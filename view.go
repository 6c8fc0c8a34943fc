package mboard

import (
	"fmt"
	"math"
)

// CanvasView maps a finite view (the output pixel grid) onto the canvas.
//
// The anchor is the canvas position shown at view pixel (0, 0); view pixel
// (x, y) shows canvas position anchor+(x, y). The canvas dimensions are a
// logical extent used only by the pin operations to keep the anchor at the
// same fractional position; they never clamp drawing or rendering.
//
// Mutators only touch the view's own fields, never canvas storage.
type CanvasView struct {
	view   Dimensions
	canvas Dimensions
	anchor CanvasPosition
}

// NewCanvasView creates a view of the given size anchored at the origin,
// with canvas dimensions equal to the view dimensions.
func NewCanvasView(width, height uint32) CanvasView {
	d := Dimensions{Width: width, Height: height}
	return CanvasView{view: d, canvas: d}
}

// ViewDimensions returns the output size in pixels.
func (v CanvasView) ViewDimensions() Dimensions {
	return v.view
}

// CanvasDimensions returns the logical canvas extent.
func (v CanvasView) CanvasDimensions() Dimensions {
	return v.canvas
}

// Anchor returns the canvas position shown at view pixel (0, 0).
func (v CanvasView) Anchor() CanvasPosition {
	return v.anchor
}

// VisibleRect returns the canvas-space window covered by the view.
func (v CanvasView) VisibleRect() CanvasRect {
	return CanvasRect{X: v.anchor.X, Y: v.anchor.Y, Width: v.view.Width, Height: v.view.Height}
}

// Translate pans the view by (dx, dy) canvas pixels.
func (v *CanvasView) Translate(dx, dy int64) {
	v.anchor.X += dx
	v.anchor.Y += dy
}

// ResizeView changes the output size. The anchor and canvas dimensions
// are unchanged, so the window grows or shrinks from its top-left corner.
func (v *CanvasView) ResizeView(width, height uint32) {
	v.view = Dimensions{Width: width, Height: height}
}

// ResizeCanvasSource sets the logical canvas extent without moving the anchor.
func (v *CanvasView) ResizeCanvasSource(width, height uint32) {
	v.canvas = Dimensions{Width: width, Height: height}
}

// PinResizeCanvas changes the logical canvas extent and moves the anchor
// so that it keeps the same fractional position within the extent.
// An axis whose previous extent is zero keeps its anchor.
func (v *CanvasView) PinResizeCanvas(d Dimensions) {
	v.anchor.X = pinAxis(v.anchor.X, v.canvas.Width, d.Width)
	v.anchor.Y = pinAxis(v.anchor.Y, v.canvas.Height, d.Height)
	v.canvas = d
}

// PinScaleCanvas multiplies the logical canvas extent by the given
// factors and re-anchors like PinResizeCanvas. Factors must be positive
// and finite; a factor of 1 leaves that axis unchanged.
func (v *CanvasView) PinScaleCanvas(widthFactor, heightFactor float64) error {
	if !validFactor(widthFactor) || !validFactor(heightFactor) {
		return fmt.Errorf("%w: (%v, %v)", ErrInvalidScale, widthFactor, heightFactor)
	}
	v.PinResizeCanvas(Dimensions{
		Width:  scaleAxis(v.canvas.Width, widthFactor),
		Height: scaleAxis(v.canvas.Height, heightFactor),
	})
	return nil
}

// TransformViewToCanvas returns the canvas position shown at view pixel
// (x, y). It always succeeds; the result may lie outside the logical extent.
func (v CanvasView) TransformViewToCanvas(x, y uint32) CanvasPosition {
	return CanvasPosition{X: v.anchor.X + int64(x), Y: v.anchor.Y + int64(y)}
}

// TransformCanvasToView returns the view pixel showing canvas position
// (x, y). The boolean is false when the position is outside the view.
func (v CanvasView) TransformCanvasToView(x, y int64) (PixelPosition, bool) {
	vx, vy := x-v.anchor.X, y-v.anchor.Y
	if vx < 0 || vy < 0 || vx >= int64(v.view.Width) || vy >= int64(v.view.Height) {
		return PixelPosition{}, false
	}
	return PixelPosition{X: uint32(vx), Y: uint32(vy)}, true //nolint:gosec // bounded by view size
}

// CanvasRectSubview returns a view covering exactly the visible part of r,
// for re-rendering only a damaged region. The boolean is false when no
// part of r is visible. Pair it with r.ToViewRect(v) to find where the
// sub-frame goes in the full frame.
func (v CanvasView) CanvasRectSubview(r CanvasRect) (CanvasView, bool) {
	visible, ok := r.Intersect(v.VisibleRect())
	if !ok {
		return CanvasView{}, false
	}
	return CanvasView{
		view:   visible.Dimensions(),
		canvas: visible.Dimensions(),
		anchor: visible.TopLeft(),
	}, true
}

// pinAxis rescales an anchor coordinate from extent prev to extent next.
func pinAxis(anchor int64, prev, next uint32) int64 {
	if prev == 0 || prev == next {
		return anchor
	}
	return int64(math.Round(float64(anchor) * float64(next) / float64(prev)))
}

// scaleAxis multiplies an extent by f, rounding and saturating.
func scaleAxis(d uint32, f float64) uint32 {
	s := math.Round(float64(d) * f)
	if s >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(s)
}

// validFactor reports whether f is a usable scale factor.
func validFactor(f float64) bool {
	return f > 0 && !math.IsInf(f, 0)
}
