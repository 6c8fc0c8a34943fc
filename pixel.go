package mboard

import (
	"fmt"
	"image/color"
)

// Pixel is a straight (non-premultiplied) RGBA color packed as 0xRRGGBBAA.
type Pixel uint32

// DefaultPixel is the value of every pixel that has never been written.
const DefaultPixel = Transparent

// Common colors.
const (
	Transparent Pixel = 0x00000000
	Black       Pixel = 0x000000ff
	White       Pixel = 0xffffffff
	Red         Pixel = 0xff0000ff
	Green       Pixel = 0x00ff00ff
	Blue        Pixel = 0x0000ffff
)

// RGB creates an opaque pixel from byte channels.
func RGB(r, g, b uint8) Pixel {
	return RGBA(r, g, b, 0xff)
}

// RGBA creates a pixel from byte channels.
func RGBA(r, g, b, a uint8) Pixel {
	return Pixel(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// RGBNorm creates an opaque pixel from normalized channels.
// See RGBANorm for the quantization policy.
func RGBNorm(r, g, b float32) Pixel {
	return RGBANorm(r, g, b, 1)
}

// RGBANorm creates a pixel from normalized channels in [0, 1].
//
// Out-of-range inputs saturate: values below 0 (and NaN) become 0, values
// above 1 become 255. In-range values are rounded to the nearest byte.
func RGBANorm(r, g, b, a float32) Pixel {
	return RGBA(quantize(r), quantize(g), quantize(b), quantize(a))
}

// quantize maps a normalized channel to a byte with saturation.
func quantize(v float32) uint8 {
	if !(v > 0) { // also catches NaN
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v*255 + 0.5)
}

// Bytes returns the byte channels.
func (p Pixel) Bytes() (r, g, b, a uint8) {
	return uint8(p >> 24), uint8(p >> 16), uint8(p >> 8), uint8(p)
}

// Norm returns the channels normalized to [0, 1].
func (p Pixel) Norm() (r, g, b, a float32) {
	br, bg, bb, ba := p.Bytes()
	return float32(br) / 255, float32(bg) / 255, float32(bb) / 255, float32(ba) / 255
}

// NRGBA converts the pixel to a color.NRGBA.
func (p Pixel) NRGBA() color.NRGBA {
	r, g, b, a := p.Bytes()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// RGBA implements color.Color. The returned values are alpha-premultiplied
// 16-bit channels, as for color.NRGBA.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return p.NRGBA().RGBA()
}

// String returns the pixel as "#rrggbbaa".
func (p Pixel) String() string {
	return fmt.Sprintf("#%08x", uint32(p))
}

// PixelModel converts any color.Color to a Pixel.
var PixelModel = color.ModelFunc(func(c color.Color) color.Color {
	return PixelFromColor(c)
})

// PixelFromColor converts a standard color.Color to a Pixel.
func PixelFromColor(c color.Color) Pixel {
	if p, ok := c.(Pixel); ok {
		return p
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA(n.R, n.G, n.B, n.A)
}

// ParseHex parses a hex color string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with an optional
// leading '#'. Short forms expand each digit (f -> ff).
func ParseHex(s string) (Pixel, error) {
	hex := s
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var digits [8]uint8
	for i := 0; i < len(hex) && i < len(digits); i++ {
		d, ok := hexDigit(hex[i])
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrInvalidHex, s)
		}
		digits[i] = d
	}

	switch len(hex) {
	case 3: // RGB
		return RGB(digits[0]*17, digits[1]*17, digits[2]*17), nil
	case 4: // RGBA
		return RGBA(digits[0]*17, digits[1]*17, digits[2]*17, digits[3]*17), nil
	case 6: // RRGGBB
		return RGB(digits[0]<<4|digits[1], digits[2]<<4|digits[3], digits[4]<<4|digits[5]), nil
	case 8: // RRGGBBAA
		return RGBA(digits[0]<<4|digits[1], digits[2]<<4|digits[3],
			digits[4]<<4|digits[5], digits[6]<<4|digits[7]), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
}

// hexDigit decodes a single hex digit.
func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
