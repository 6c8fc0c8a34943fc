package mboard

import (
	"bytes"
	"errors"
	"testing"
)

func TestArena_AllocWithinSlab(t *testing.T) {
	a := NewArena(100)
	if a.Cap() != 100 || a.Len() != 0 {
		t.Fatalf("Cap/Len = %d/%d", a.Cap(), a.Len())
	}

	p1 := a.alloc(40)
	p2 := a.alloc(60)
	if len(p1) != 40 || len(p2) != 60 || a.Len() != 100 {
		t.Fatalf("alloc lengths %d/%d, Len %d", len(p1), len(p2), a.Len())
	}
	if cap(p1) != 40 {
		t.Error("allocations must not be able to grow into each other")
	}
	p1[39] = Red
	if p2[0] == Red {
		t.Error("allocations overlap")
	}
}

func TestArena_GrowsToHighWaterMark(t *testing.T) {
	a := NewArena(10)
	a.alloc(8)
	a.alloc(50) // spills to heap
	if a.Len() != 58 || a.Cap() != 10 {
		t.Errorf("Len/Cap = %d/%d, want 58/10", a.Len(), a.Cap())
	}

	a.Reset()
	if a.Cap() != 58 || a.Len() != 0 {
		t.Errorf("after Reset Len/Cap = %d/%d, want 0/58", a.Len(), a.Cap())
	}

	// Smaller generations never shrink the slab.
	a.alloc(5)
	a.Reset()
	if a.Cap() != 58 {
		t.Errorf("Cap() = %d, want 58", a.Cap())
	}
}

func TestArena_NegativeCapacity(t *testing.T) {
	if a := NewArena(-5); a.Cap() != 0 {
		t.Errorf("Cap() = %d, want 0", a.Cap())
	}
}

func TestFrame_ReleasedAfterReset(t *testing.T) {
	c := NewCanvas(WithChunkSize(8))
	defer c.Close()
	i := addRasterLayer(t, c)
	c.PerformRasterAction(i, FillRect(Rect(0, 0, 2, 2), Red))

	a := NewArena(64)
	f := c.RenderCanvasRectInto(Rect(0, 0, 2, 2), a)
	if !f.Valid() {
		t.Fatal("fresh frame should be valid")
	}
	if f.Dimensions() != (Dimensions{2, 2}) || f.Height() != 2 {
		t.Errorf("Dimensions() = %+v", f.Dimensions())
	}

	data, err := f.AppendImageData(nil)
	if err != nil || !bytes.Equal(data[:4], []byte{0xff, 0, 0, 0xff}) {
		t.Errorf("AppendImageData = %x, %v", data, err)
	}
	kept, err := f.Chunk()
	if err != nil {
		t.Fatalf("Chunk() error: %v", err)
	}

	a.Reset()

	if f.Valid() {
		t.Error("frame should be invalid after Reset")
	}
	if _, err := f.Pixels(); !errors.Is(err, ErrFrameReleased) {
		t.Errorf("Pixels() error = %v, want ErrFrameReleased", err)
	}
	if _, err := f.AppendImageData(nil); !errors.Is(err, ErrFrameReleased) {
		t.Errorf("AppendImageData() error = %v, want ErrFrameReleased", err)
	}
	if _, err := f.Chunk(); !errors.Is(err, ErrFrameReleased) {
		t.Errorf("Chunk() error = %v, want ErrFrameReleased", err)
	}

	// The copied chunk survives reuse of the arena memory.
	c.RenderCanvasRectInto(Rect(10, 10, 2, 2), a)
	if kept.PixelAt(0, 0) != Red {
		t.Error("Chunk() copy was overwritten by the next frame")
	}
}

// Rendering into a warmed-up arena does not allocate pixel memory.
func TestArena_SteadyStateNoGrowth(t *testing.T) {
	c := NewCanvas(WithChunkSize(32))
	defer c.Close()
	i := addRasterLayer(t, c)
	c.PerformRasterAction(i, FillRect(Rect(0, 0, 100, 100), Blue))

	v := NewCanvasView(64, 48)
	a := NewArena(0)
	c.RenderInto(v, a)
	a.Reset()
	warm := a.Cap()

	for range 10 {
		c.RenderInto(v, a)
		a.Reset()
	}
	if a.Cap() != warm || warm != 64*48 {
		t.Errorf("Cap() = %d (warm %d), want stable %d", a.Cap(), warm, 64*48)
	}
}
