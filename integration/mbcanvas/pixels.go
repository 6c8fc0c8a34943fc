// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mbcanvas

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/mboard"
)

// ErrUnsupportedFormat is returned when pixels are requested in a texture
// format other than 8-bit RGBA or BGRA.
var ErrUnsupportedFormat = errors.New("mbcanvas: unsupported texture format")

// EncodePixels appends pix to dst in the byte order of format.
//
// Supported formats are RGBA8Unorm and BGRA8Unorm and their sRGB variants;
// the sRGB variants only change how the GPU interprets the bytes.
func EncodePixels(dst []byte, pix []mboard.Pixel, format gputypes.TextureFormat) ([]byte, error) {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb:
		for _, p := range pix {
			r, g, b, a := p.Bytes()
			dst = append(dst, r, g, b, a)
		}
	case gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
		for _, p := range pix {
			r, g, b, a := p.Bytes()
			dst = append(dst, b, g, r, a)
		}
	default:
		return dst, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	return dst, nil
}

// ReadPixels renders the current view and appends it to dst in the byte
// order of format. Pass Provider().SurfaceFormat() to match the window
// surface.
func (c *Canvas) ReadPixels(dst []byte, format gputypes.TextureFormat) ([]byte, error) {
	if c.closed {
		return dst, ErrCanvasClosed
	}
	frame := c.board.RenderInto(c.view, c.arena)
	defer c.arena.Reset()

	pix, err := frame.Pixels()
	if err != nil {
		return dst, err
	}
	return EncodePixels(dst, pix, format)
}
