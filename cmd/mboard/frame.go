package main

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/mboard"
)

const statusHeight = 18

var statusBackground = color.RGBA{32, 32, 32, 255}

// blit copies a row-major frame of the given width into dst with its
// top-left corner at at, clipped to dst. image.RGBA is alpha-premultiplied,
// so translucent pixels are premultiplied on the way.
func blit(dst *image.RGBA, at image.Point, pix []mboard.Pixel, width int) {
	if width <= 0 {
		return
	}
	height := len(pix) / width
	r := image.Rectangle{Min: at, Max: at.Add(image.Pt(width, height))}.Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		src := pix[(y-at.Y)*width+(r.Min.X-at.X):]
		row := dst.Pix[dst.PixOffset(r.Min.X, y):]
		for i := range r.Dx() {
			cr, cg, cb, ca := src[i].Bytes()
			if ca != 0xff {
				cr = premul(cr, ca)
				cg = premul(cg, ca)
				cb = premul(cb, ca)
			}
			o := 4 * i
			row[o], row[o+1], row[o+2], row[o+3] = cr, cg, cb, ca
		}
	}
}

func premul(c, a uint8) uint8 {
	return uint8((uint32(c)*uint32(a) + 127) / 255) //nolint:gosec // <= 255
}

// statusRect is the strip at the bottom of a window of the given bounds.
func statusRect(bounds image.Rectangle) image.Rectangle {
	r := bounds
	r.Min.Y = max(r.Max.Y-statusHeight, r.Min.Y)
	return r
}

// drawStatus paints a one-line status bar over the bottom of dst and
// returns the rectangle it covered.
func drawStatus(dst *image.RGBA, text string) image.Rectangle {
	r := statusRect(dst.Bounds())
	draw.Draw(dst, r, image.NewUniform(statusBackground), image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(r.Min.X+6, r.Max.Y-5),
	}
	d.DrawString(text)
	return r
}
