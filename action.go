package mboard

import "math"

// Shape decides which pixels of an action's target rectangle are covered.
//
// Span reports the half-open column range [x0, x1) covered on canvas row y
// of target. A range with x0 >= x1 means nothing is covered on that row.
// Implementations only need to handle rows inside target; the result is
// clipped to the target by the caller.
//
// Custom shapes can be rasterized through the same contract as the
// built-in RectShape and OvalShape.
type Shape interface {
	Span(target CanvasRect, y int64) (x0, x1 int64)
}

// RectShape covers the whole target rectangle.
type RectShape struct{}

// Span implements Shape.
func (RectShape) Span(target CanvasRect, _ int64) (x0, x1 int64) {
	return target.X, target.MaxX()
}

// OvalShape covers the ellipse inscribed in the target rectangle.
//
// A pixel (px, py) is inside when its center satisfies
//
//	((px+0.5-cx)/rx)^2 + ((py+0.5-cy)/ry)^2 <= 1
//
// where (cx, cy) is the rectangle center and (rx, ry) = (width/2, height/2).
// The test is evaluated in float64 relative to the rectangle's top-left
// corner, so results do not depend on where the rectangle sits on the canvas.
type OvalShape struct{}

// Span implements Shape.
func (OvalShape) Span(target CanvasRect, y int64) (x0, x1 int64) {
	rx := float64(target.Width) / 2
	ry := float64(target.Height) / 2
	ty := (float64(y-target.Y) + 0.5 - ry) / ry
	dy := ty * ty
	if dy > 1 {
		return 0, 0
	}

	inside := func(lx int64) bool {
		tx := (float64(lx) + 0.5 - rx) / rx
		return tx*tx+dy <= 1
	}

	w := int64(target.Width)
	half := rx * math.Sqrt(1-dy)

	// Analytic estimate, then settle on the exact inclusion test.
	l := clampInt64(int64(math.Ceil(rx-half-0.5)), 0, w)
	for l > 0 && inside(l-1) {
		l--
	}
	for l < w && !inside(l) {
		l++
	}
	r := clampInt64(int64(math.Floor(rx+half-0.5))+1, l, w)
	for r < w && inside(r) {
		r++
	}
	for r > l && !inside(r-1) {
		r--
	}
	return addSat(target.X, l), addSat(target.X, r)
}

// clampInt64 restricts v to [lo, hi].
func clampInt64(v, lo, hi int64) int64 {
	return max(lo, min(v, hi))
}

// RasterLayerAction is a shape fill applied to a single layer.
//
// Painting overwrites the covered pixels with Pixel; there is no blending.
// Erasing returns the covered pixels to the unwritten state, so lower
// layers show through again.
type RasterLayerAction struct {
	Target CanvasRect
	Pixel  Pixel
	Shape  Shape
	Erase  bool
}

// FillRect returns an action that paints every pixel of r with p.
func FillRect(r CanvasRect, p Pixel) RasterLayerAction {
	return RasterLayerAction{Target: r, Pixel: p, Shape: RectShape{}}
}

// FillOval returns an action that paints the ellipse inscribed in r with p.
func FillOval(r CanvasRect, p Pixel) RasterLayerAction {
	return RasterLayerAction{Target: r, Pixel: p, Shape: OvalShape{}}
}

// EraseRect returns an action that clears every pixel of r.
func EraseRect(r CanvasRect) RasterLayerAction {
	return RasterLayerAction{Target: r, Shape: RectShape{}, Erase: true}
}

// EraseOval returns an action that clears the ellipse inscribed in r.
func EraseOval(r CanvasRect) RasterLayerAction {
	return RasterLayerAction{Target: r, Shape: OvalShape{}, Erase: true}
}

// Brush returns a round dab of the given radius centered on center.
func Brush(center CanvasPosition, radius uint32, p Pixel) RasterLayerAction {
	return FillOval(brushRect(center, radius), p)
}

// EraseBrush returns a round eraser dab of the given radius centered on
// center.
func EraseBrush(center CanvasPosition, radius uint32) RasterLayerAction {
	return EraseOval(brushRect(center, radius))
}

// brushRect returns the square of side 2*radius centered on center.
func brushRect(center CanvasPosition, radius uint32) CanvasRect {
	r := int64(radius)
	return CanvasRect{X: center.X - r, Y: center.Y - r, Width: clampUint32(2 * r), Height: clampUint32(2 * r)}
}

// shape returns the action's shape, defaulting to a rectangle.
func (a RasterLayerAction) shape() Shape {
	if a.Shape == nil {
		return RectShape{}
	}
	return a.Shape
}
