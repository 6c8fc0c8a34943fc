package mboard

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestNewChunk(t *testing.T) {
	c, err := NewChunk(16)
	if err != nil {
		t.Fatalf("NewChunk(16) error: %v", err)
	}
	if c.Width() != 16 || c.Height() != 16 {
		t.Errorf("size = %dx%d, want 16x16", c.Width(), c.Height())
	}
	if len(c.Pixels()) != 256 {
		t.Errorf("len(Pixels()) = %d, want 256", len(c.Pixels()))
	}
	for i, p := range c.Pixels() {
		if p != DefaultPixel {
			t.Fatalf("pixel %d = %v, want default", i, p)
		}
	}

	for _, edge := range []int{0, -1} {
		if _, err := NewChunk(edge); !errors.Is(err, ErrInvalidChunkSize) {
			t.Errorf("NewChunk(%d) error = %v, want ErrInvalidChunkSize", edge, err)
		}
	}
}

func TestNewChunkFromPixels(t *testing.T) {
	pix := []Pixel{Red, Green, Blue, White, Black, Transparent}
	c, err := NewChunkFromPixels(3, 2, pix)
	if err != nil {
		t.Fatalf("NewChunkFromPixels error: %v", err)
	}
	if c.PixelAt(2, 0) != Blue || c.PixelAt(0, 1) != White {
		t.Error("pixels are not row-major")
	}

	pix[0] = Black
	if c.PixelAt(0, 0) != Red {
		t.Error("NewChunkFromPixels must copy its input")
	}

	if _, err := NewChunkFromPixels(3, 3, pix); !errors.Is(err, ErrPixelCount) {
		t.Errorf("wrong length error = %v, want ErrPixelCount", err)
	}
	if _, err := NewChunkFromPixels(-1, 2, nil); !errors.Is(err, ErrPixelCount) {
		t.Errorf("negative width error = %v, want ErrPixelCount", err)
	}
}

func TestChunk_PixelAtOutOfBounds(t *testing.T) {
	c, _ := NewChunkFromPixels(1, 1, []Pixel{Red})
	for _, pt := range [][2]int{{-1, 0}, {0, -1}, {1, 0}, {0, 1}} {
		if got := c.PixelAt(pt[0], pt[1]); got != DefaultPixel {
			t.Errorf("PixelAt(%d, %d) = %v, want default", pt[0], pt[1], got)
		}
	}
}

func TestChunk_ImageData(t *testing.T) {
	c, _ := NewChunkFromPixels(2, 1, []Pixel{0x11223344, 0xaabbccdd})
	want := []byte{0x11, 0x22, 0x33, 0x44, 0xaa, 0xbb, 0xcc, 0xdd}
	if got := c.ImageData(); !bytes.Equal(got, want) {
		t.Errorf("ImageData() = %x, want %x", got, want)
	}

	prefix := []byte{0xff}
	if got := c.AppendImageData(prefix); !bytes.Equal(got, append([]byte{0xff}, want...)) {
		t.Errorf("AppendImageData() = %x", got)
	}
}

func TestChunk_ImageInterface(t *testing.T) {
	c, _ := NewChunkFromPixels(2, 2, []Pixel{Red, Green, Blue, White})
	if b := c.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("Bounds() = %v", b)
	}
	if got := c.At(1, 0); got != Green {
		t.Errorf("At(1, 0) = %v, want %v", got, Green)
	}
	if got := c.ColorModel().Convert(Blue); got != Blue {
		t.Errorf("ColorModel().Convert = %v", got)
	}

	img := c.ToImage()
	if got := img.NRGBAAt(0, 1); got != Blue.NRGBA() {
		t.Errorf("ToImage().NRGBAAt(0, 1) = %v", got)
	}
}

func TestChunk_SavePNG(t *testing.T) {
	c, _ := NewChunkFromPixels(2, 1, []Pixel{Red, 0x00ff0080})
	path := filepath.Join(t.TempDir(), "chunk.png")
	if err := c.SavePNG(path); err != nil {
		t.Fatalf("SavePNG error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode error: %v", err)
	}
	if got := PixelFromColor(img.At(1, 0)); got != 0x00ff0080 {
		t.Errorf("decoded pixel = %v, want #00ff0080", got)
	}
}
