// Package mboard provides an infinite, layered raster canvas for Go.
//
// # Overview
//
// mboard stores pixels in sparse layers of fixed-size chunks, so a drawing
// can grow and pan in any direction, including negative coordinates,
// without allocating a dense buffer. Frames are produced by compositing
// the layers over a rectangular window of the canvas.
//
// # Quick Start
//
//	import "github.com/gogpu/mboard"
//
//	c := mboard.NewCanvas(mboard.WithBackground(mboard.White))
//	defer c.Close()
//	ink, _ := c.AddRasterLayer()
//
//	// Paint shapes
//	c.PerformRasterAction(ink, mboard.FillRect(mboard.Rect(-50, -50, 100, 100), mboard.Red))
//	c.PerformRasterAction(ink, mboard.FillOval(mboard.Rect(0, 0, 80, 40), mboard.Blue))
//
//	// Render what a 640x480 viewport sees
//	v := mboard.NewCanvasView(640, 480)
//	v.Translate(-320, -240)
//	frame := c.Render(v)
//	frame.SavePNG("output.png")
//
// # Compositing
//
// Each layer chunk remembers which of its pixels have been written. Layers
// are composited bottom to top and a written pixel replaces whatever is
// beneath it; there is no alpha blending. Pixels no layer has written show
// the canvas background.
//
// # Coordinate System
//
//   - Canvas space is signed and unbounded (CanvasPosition, CanvasRect)
//   - View space is the unsigned output pixel grid (PixelPosition, ViewRect)
//   - Origin at top-left, X increases right, Y increases down
//
// A CanvasView maps between the two by a translation (its anchor). Its
// logical canvas dimensions only drive the pin-resize and pin-scale anchor
// math; rendering is always 1:1.
//
// # Allocation
//
// Render and RenderCanvasRect return freshly allocated buffers. For
// per-frame rendering, RenderInto and RenderCanvasRectInto carve frames out
// of an Arena; such a frame is readable only until the arena is reset.
//
// # Concurrency
//
// A Canvas is not safe for concurrent use. Compositing itself can be spread
// over worker goroutines with WithWorkers; render calls still return only
// after the whole frame is done.
package mboard

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
