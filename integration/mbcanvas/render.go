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

// Rendering errors.
var (
	// ErrInvalidTexture is returned when the uploaded texture does not
	// implement gpucontext.Texture.
	ErrInvalidTexture = errors.New("mbcanvas: texture must implement gpucontext.Texture")

	// ErrInvalidRenderer is returned when the drawer has no
	// gpucontext.TextureCreator.
	ErrInvalidRenderer = errors.New("mbcanvas: drawer has no gpucontext.TextureCreator")
)

// RenderTo draws the canvas content to a gpucontext.TextureDrawer.
// This is the primary integration method.
//
// The dc parameter should be obtained from gogpu.Context.AsTextureDrawer().
// The canvas content is flushed to GPU and drawn at position (0, 0).
//
// Example:
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    canvas.RenderTo(dc.AsTextureDrawer())
//	})
//
// Returns error if:
//   - Canvas is closed
//   - Texture creation or drawing fails
func (c *Canvas) RenderTo(dc gpucontext.TextureDrawer) error {
	return c.RenderToPosition(dc, 0, 0)
}

// RenderToPosition draws the canvas content with its top-left corner at
// (x, y) in window pixels.
//
//	canvas.RenderToPosition(dc.AsTextureDrawer(), 100, 50)
func (c *Canvas) RenderToPosition(dc gpucontext.TextureDrawer, x, y float32) error {
	if c.closed {
		return ErrCanvasClosed
	}

	// Flush canvas to ensure the texture is up-to-date
	tex, err := c.Flush()
	if err != nil {
		return err
	}

	// If texture is pending (placeholder), create real GPU texture now
	if pending, isPending := tex.(*pendingTexture); isPending {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrInvalidRenderer
		}

		realTex, err := creator.NewTextureFromRGBA(pending.width, pending.height, pending.data)
		if err != nil {
			return fmt.Errorf("mbcanvas: NewTextureFromRGBA failed: %w", err)
		}
		mboard.Logger().Debug("mbcanvas: texture created",
			slog.Int("width", pending.width),
			slog.Int("height", pending.height))

		c.texture = realTex
		tex = realTex

		// Safe to destroy the texture replaced by a resize: creation waited
		// for the GPU.
		c.destroyOld()
	}

	gpuTex, ok := tex.(gpucontext.Texture)
	if !ok {
		return ErrInvalidTexture
	}
	return dc.DrawTexture(gpuTex, x, y)
}
