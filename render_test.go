package mboard

import (
	"slices"
	"testing"
)

// referenceFill paints r with p into a dense buffer covering region,
// with no chunking involved.
func referenceFill(region, r CanvasRect, bg, p Pixel) []Pixel {
	out := make([]Pixel, region.Dimensions().Area())
	for i := range out {
		out[i] = bg
	}
	for y := region.Y; y < region.MaxY(); y++ {
		for x := region.X; x < region.MaxX(); x++ {
			if r.Contains(x, y) {
				out[(y-region.Y)*int64(region.Width)+(x-region.X)] = p
			}
		}
	}
	return out
}

func TestRender_FillRectContainment(t *testing.T) {
	c := NewCanvas(WithChunkSize(16))
	defer c.Close()
	i := addRasterLayer(t, c)
	rect := Rect(-7, 3, 30, 20)
	c.PerformRasterAction(i, FillRect(rect, Green))

	inside := c.RenderCanvasRect(rect)
	if inside.Width() != 30 || inside.Height() != 20 {
		t.Fatalf("buffer size = %dx%d, want 30x20", inside.Width(), inside.Height())
	}
	for i, p := range inside.Pixels() {
		if p != Green {
			t.Fatalf("pixel %d inside rect = %v, want %v", i, p, Green)
		}
	}

	around := Rect(rect.X-5, rect.Y-5, rect.Width+10, rect.Height+10)
	out := c.RenderCanvasRect(around)
	for y := around.Y; y < around.MaxY(); y++ {
		for x := around.X; x < around.MaxX(); x++ {
			if rect.Contains(x, y) {
				continue
			}
			if p := out.PixelAt(int(x-around.X), int(y-around.Y)); p != DefaultPixel {
				t.Fatalf("pixel (%d,%d) outside rect = %v, want default", x, y, p)
			}
		}
	}
}

// A fill straddling chunk boundaries composites to the same pixels as a
// dense, unchunked fill.
func TestRender_ChunkBoundary(t *testing.T) {
	c := NewCanvas() // 512px chunks
	defer c.Close()
	i := addRasterLayer(t, c)
	fill := Rect(500, 500, 20, 20)
	c.PerformRasterAction(i, FillRect(fill, Red))

	region := Rect(480, 480, 60, 60)
	got := c.RenderCanvasRect(region).Pixels()
	want := referenceFill(region, fill, DefaultPixel, Red)
	if !slices.Equal(got, want) {
		t.Error("composited pixels across chunk boundary differ from dense reference")
	}

	l, _ := c.Layer(i)
	if l.ChunkCount() != 4 {
		t.Errorf("ChunkCount() = %d, want 4", l.ChunkCount())
	}
}

func TestRender_ChunkBoundaryOval(t *testing.T) {
	oval := Rect(-13, -9, 41, 27)

	// One chunk holds the whole reference oval.
	ref := NewCanvas(WithChunkSize(256))
	defer ref.Close()
	ri := addRasterLayer(t, ref)
	ref.PerformRasterAction(ri, FillOval(Rect(0, 0, 41, 27), Blue))

	c := NewCanvas(WithChunkSize(8))
	defer c.Close()
	i := addRasterLayer(t, c)
	c.PerformRasterAction(i, FillOval(oval, Blue))

	got := c.RenderCanvasRect(oval).Pixels()
	want := ref.RenderCanvasRect(Rect(0, 0, 41, 27)).Pixels()
	if !slices.Equal(got, want) {
		t.Error("oval split across 8px chunks differs from single-chunk reference")
	}
}

// Later layers win where they have written; elsewhere lower layers show through.
func TestRender_Layering(t *testing.T) {
	c := NewCanvas(WithChunkSize(32))
	defer c.Close()
	bottom := addRasterLayer(t, c)
	top := addRasterLayer(t, c)

	r := Rect(0, 0, 100, 60)
	sub := Rect(20, 10, 30, 30)
	c.PerformRasterAction(bottom, FillRect(r, Red))
	c.PerformRasterAction(top, FillRect(sub, Blue))

	v := NewCanvasView(100, 60)
	out := c.Render(v)
	for y := range 60 {
		for x := range 100 {
			want := Red
			if sub.Contains(int64(x), int64(y)) {
				want = Blue
			}
			if got := out.PixelAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

// A written pixel wins even when it holds the default value; an erased
// pixel lets the layer below show through again.
func TestRender_WrittenVersusErased(t *testing.T) {
	c := NewCanvas(WithChunkSize(8), WithBackground(White))
	defer c.Close()
	bottom := addRasterLayer(t, c)
	top := addRasterLayer(t, c)

	c.PerformRasterAction(bottom, FillRect(Rect(0, 0, 4, 1), Red))
	c.PerformRasterAction(top, FillRect(Rect(0, 0, 4, 1), Transparent))
	c.PerformRasterAction(top, EraseRect(Rect(2, 0, 1, 1)))

	got := c.RenderCanvasRect(Rect(0, 0, 5, 1)).Pixels()
	want := []Pixel{Transparent, Transparent, Red, Transparent, White}
	if !slices.Equal(got, want) {
		t.Errorf("row = %v, want %v", got, want)
	}
}

func TestRender_Background(t *testing.T) {
	c := NewCanvas(WithBackground(Black))
	defer c.Close()
	addRasterLayer(t, c)

	out := c.RenderCanvasRect(Rect(-1000, -1000, 3, 3))
	for _, p := range out.Pixels() {
		if p != Black {
			t.Fatalf("empty canvas rendered %v, want background %v", p, Black)
		}
	}
}

func TestRender_HiddenLayer(t *testing.T) {
	c := NewCanvas(WithChunkSize(8))
	defer c.Close()
	bottom := addRasterLayer(t, c)
	top := addRasterLayer(t, c)
	c.PerformRasterAction(bottom, FillRect(Rect(0, 0, 2, 2), Red))
	c.PerformRasterAction(top, FillRect(Rect(0, 0, 2, 2), Blue))

	l, _ := c.Layer(top)
	l.SetVisible(false)
	if got := c.RenderCanvasRect(Rect(0, 0, 1, 1)).PixelAt(0, 0); got != Red {
		t.Errorf("hidden top layer still composited: got %v", got)
	}
}

func TestRender_ViewWindow(t *testing.T) {
	c := NewCanvas(WithChunkSize(16))
	defer c.Close()
	i := addRasterLayer(t, c)
	c.PerformRasterAction(i, FillRect(Rect(-3, -3, 1, 1), Green))

	v := NewCanvasView(8, 4)
	v.Translate(-5, -4)
	out := c.Render(v)
	if out.Width() != 8 || out.Height() != 4 {
		t.Fatalf("Render size = %dx%d, want 8x4", out.Width(), out.Height())
	}
	pos, ok := v.TransformCanvasToView(-3, -3)
	if !ok {
		t.Fatal("painted pixel should be visible")
	}
	if got := out.PixelAt(int(pos.X), int(pos.Y)); got != Green {
		t.Errorf("view pixel %+v = %v, want %v", pos, got, Green)
	}

	// Panning moves the content in the output.
	v.Translate(1, 0)
	if got := c.Render(v).PixelAt(int(pos.X)-1, int(pos.Y)); got != Green {
		t.Errorf("after pan, pixel = %v, want %v", got, Green)
	}
}

func TestRender_EmptyRegion(t *testing.T) {
	c := NewCanvas()
	defer c.Close()
	addRasterLayer(t, c)
	out := c.RenderCanvasRect(Rect(5, 5, 0, 10))
	if out.Width() != 0 || out.Height() != 10 || len(out.Pixels()) != 0 {
		t.Errorf("empty render = %dx%d with %d pixels", out.Width(), out.Height(), len(out.Pixels()))
	}
	if out := c.Render(NewCanvasView(0, 0)); len(out.Pixels()) != 0 {
		t.Error("zero-sized view should render no pixels")
	}
}

// Parallel compositing produces exactly the serial result.
func TestRender_ParallelMatchesSerial(t *testing.T) {
	build := func(opts ...Option) *Canvas {
		c := NewCanvas(append([]Option{WithChunkSize(16)}, opts...)...)
		a := addRasterLayer(t, c)
		b := addRasterLayer(t, c)
		c.PerformRasterAction(a, FillRect(Rect(-40, -40, 120, 90), Red))
		c.PerformRasterAction(b, FillOval(Rect(-25, -10, 70, 50), Blue))
		c.PerformRasterAction(b, EraseOval(Rect(0, 0, 20, 20)))
		c.PerformRasterAction(a, FillRect(Rect(33, 17, 5, 60), Green))
		return c
	}

	serial := build()
	defer serial.Close()
	par := build(WithWorkers(4))
	defer par.Close()

	region := Rect(-50, -45, 140, 130)
	for range 3 {
		if !slices.Equal(serial.RenderCanvasRect(region).Pixels(), par.RenderCanvasRect(region).Pixels()) {
			t.Fatal("parallel render differs from serial render")
		}
	}
}

func TestRenderInto_MatchesRender(t *testing.T) {
	c := NewCanvas(WithChunkSize(16))
	defer c.Close()
	i := addRasterLayer(t, c)
	c.PerformRasterAction(i, FillOval(Rect(0, 0, 40, 30), Red))

	v := NewCanvasView(50, 40)
	v.Translate(-5, -5)
	arena := NewArena(0)

	for range 3 {
		f := c.RenderInto(v, arena)
		pix, err := f.Pixels()
		if err != nil {
			t.Fatalf("Pixels() error: %v", err)
		}
		if !slices.Equal(pix, c.Render(v).Pixels()) {
			t.Fatal("arena render differs from heap render")
		}
		arena.Reset()
	}

	// A nil arena falls back to the heap.
	f := c.RenderCanvasRectInto(Rect(0, 0, 4, 4), nil)
	if !f.Valid() || f.Width() != 4 {
		t.Error("heap-backed frame should be valid")
	}
}
