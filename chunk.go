package mboard

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// DefaultChunkSize is the default chunk edge length in pixels.
const DefaultChunkSize = 512

// Chunk is a read-only, row-major block of pixels. It is the form in which
// rendered frames and chunk snapshots are handed to callers.
//
// Chunk implements image.Image so it can be passed directly to image/draw,
// image/png and friends.
type Chunk struct {
	width  int
	height int
	pix    []Pixel
}

// NewChunk creates an edge×edge chunk filled with DefaultPixel.
func NewChunk(edge int) (*Chunk, error) {
	if edge <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChunkSize, edge)
	}
	return newChunk(edge, edge), nil
}

// NewChunkFromPixels creates a chunk from an explicit row-major pixel
// sequence. The slice is copied. Returns ErrPixelCount if len(pix) is not
// width*height.
func NewChunkFromPixels(width, height int, pix []Pixel) (*Chunk, error) {
	if width < 0 || height < 0 || len(pix) != width*height {
		return nil, fmt.Errorf("%w: %dx%d needs %d, got %d",
			ErrPixelCount, width, height, max(width*height, 0), len(pix))
	}
	c := newChunk(width, height)
	copy(c.pix, pix)
	return c, nil
}

// newChunk allocates a chunk; DefaultPixel is the zero Pixel, so the fresh
// slice is already default-filled.
func newChunk(width, height int) *Chunk {
	return &Chunk{
		width:  width,
		height: height,
		pix:    make([]Pixel, width*height),
	}
}

// wrapChunk builds a chunk around pix without copying.
func wrapChunk(width, height int, pix []Pixel) *Chunk {
	return &Chunk{width: width, height: height, pix: pix}
}

// Width returns the chunk width in pixels.
func (c *Chunk) Width() int {
	return c.width
}

// Height returns the chunk height in pixels.
func (c *Chunk) Height() int {
	return c.height
}

// Dimensions returns the chunk size.
func (c *Chunk) Dimensions() Dimensions {
	return Dimensions{Width: uint32(c.width), Height: uint32(c.height)} //nolint:gosec // sizes come from uint32 geometry
}

// Pixels returns the row-major pixel buffer. The slice is shared with the
// chunk, so writes through it change the chunk.
func (c *Chunk) Pixels() []Pixel {
	return c.pix
}

// PixelAt returns the pixel at (x, y), or DefaultPixel when out of bounds.
func (c *Chunk) PixelAt(x, y int) Pixel {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return DefaultPixel
	}
	return c.pix[y*c.width+x]
}

// ImageData returns the pixels as row-major RGBA bytes, 4 bytes per pixel.
func (c *Chunk) ImageData() []byte {
	return c.AppendImageData(make([]byte, 0, len(c.pix)*4))
}

// AppendImageData appends the pixels as RGBA bytes to dst.
func (c *Chunk) AppendImageData(dst []byte) []byte {
	return appendImageData(dst, c.pix)
}

// appendImageData appends pix as RGBA bytes to dst.
func appendImageData(dst []byte, pix []Pixel) []byte {
	for _, p := range pix {
		dst = append(dst, byte(p>>24), byte(p>>16), byte(p>>8), byte(p))
	}
	return dst
}

// ToImage converts the chunk to an image.NRGBA.
func (c *Chunk) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.width, c.height))
	img.Pix = c.AppendImageData(img.Pix[:0])
	return img
}

// SavePNG saves the chunk to a PNG file.
func (c *Chunk) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, c.ToImage())
}

// At implements the image.Image interface.
func (c *Chunk) At(x, y int) color.Color {
	return c.PixelAt(x, y)
}

// Bounds implements the image.Image interface.
func (c *Chunk) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// ColorModel implements the image.Image interface.
func (c *Chunk) ColorModel() color.Model {
	return PixelModel
}
