// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package mbcanvas presents an mboard canvas in gogpu GPU-accelerated windows.
//
// The data flow is:
//
//	mboard.Canvas (layers) -> Arena frame (CPU) -> staging RGBA bytes -> GPU Texture -> Window
//
// # Architecture
//
// Canvas owns an mboard.Canvas and the CanvasView it is shown through, and
// manages the texture upload pipeline:
//
//   - Perform applies raster actions and records visible damage
//   - Pan, PinScale and Resize move or resize the view
//   - Flush renders the view into a reused arena and uploads it
//   - RenderTo draws the texture to a gogpu window
//
// # Usage
//
//	canvas, err := mbcanvas.New(app.GPUContextProvider(), 800, 600,
//	    mboard.WithBackground(mboard.White))
//	if err != nil {
//	    return err
//	}
//	defer canvas.Close()
//
//	ink, _ := canvas.Board().AddRasterLayer()
//	canvas.Perform(ink, mboard.FillOval(mboard.Rect(100, 100, 200, 120), mboard.Red))
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    canvas.RenderTo(dc.AsTextureDrawer())
//	})
//
// # Incremental Upload
//
// When only raster actions changed the picture since the last upload and
// the texture implements gpucontext.TextureRegionUpdater, Flush renders and
// uploads just the damaged part of the view. Any view change forces a full
// upload.
//
// # Thread Safety
//
// Canvas is NOT safe for concurrent use. Drive it from the window's draw
// goroutine, or use external synchronization.
//
// # Integration Without Circular Imports
//
// This package only depends on gpucontext interfaces:
//
//   - gpucontext.DeviceProvider for device access
//   - gpucontext.TextureDrawer and gpucontext.TextureCreator for drawing
//
// so mboard can be hosted by gogpu without importing it.
package mbcanvas
