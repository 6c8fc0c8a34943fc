// Command mboard drives the mboard tiled canvas engine.
//
// Usage:
//
//	mboard view   [-width 1024] [-height 768] [-chunk 512] [-color #ff0000] [-radius 50]
//	mboard render [-o board.png] [-width 1024] [-height 768] [-chunk 512] [-workers 0]
//
// view opens an interactive window. Keys: b brush, e eraser, p pan,
// r rectangle, o oval, arrow up/down scale the canvas, c copy, s save, q quit.
// render draws a demo scene and exports it as PNG, BMP or TIFF.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/mboard"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "view":
		err = runView(args)
	case "render":
		err = runRender(args)
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		log.Printf("unknown command %q", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("mboard %s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: mboard view|render [flags]")
}

// commonFlags are shared by every subcommand.
type commonFlags struct {
	width   int
	height  int
	chunk   int
	workers int
	verbose bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.IntVar(&c.width, "width", 1024, "view width in pixels")
	fs.IntVar(&c.height, "height", 768, "view height in pixels")
	fs.IntVar(&c.chunk, "chunk", mboard.DefaultChunkSize, "chunk edge length")
	fs.IntVar(&c.workers, "workers", 0, "compositing workers (0 or 1 = none)")
	fs.BoolVar(&c.verbose, "v", false, "debug logging")
}

func (c *commonFlags) validate() error {
	if c.width <= 0 || c.height <= 0 {
		return fmt.Errorf("invalid size %dx%d", c.width, c.height)
	}
	if c.chunk <= 0 {
		return fmt.Errorf("%w: %d", mboard.ErrInvalidChunkSize, c.chunk)
	}
	if c.verbose {
		mboard.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	return nil
}

func (c *commonFlags) canvas(bg mboard.Pixel) *mboard.Canvas {
	return mboard.NewCanvas(
		mboard.WithChunkSize(c.chunk),
		mboard.WithBackground(bg),
		mboard.WithWorkers(c.workers),
	)
}

func runRender(args []string) error {
	var common commonFlags
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	common.register(fs)
	output := fs.String("o", "board.png", "output file (.png, .bmp, .tif, .tiff)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := common.validate(); err != nil {
		return err
	}
	if _, err := formatFor(*output); err != nil {
		return err
	}

	board := common.canvas(mboard.White)
	defer board.Close()

	area := mboard.Rect(0, 0, uint32(common.width), uint32(common.height)) //nolint:gosec // validated
	if err := drawDemo(board, area); err != nil {
		return err
	}

	img := board.RenderCanvasRect(area)
	if err := saveImage(*output, img); err != nil {
		return err
	}
	log.Printf("Board saved to %s (%dx%d)", *output, common.width, common.height)
	return nil
}

// drawDemo paints a two-layer scene over area. Shapes are placed relative to
// the area's center so they straddle chunk boundaries at any chunk size.
func drawDemo(board *mboard.Canvas, area mboard.CanvasRect) error {
	base, err := board.AddRasterLayer()
	if err != nil {
		return err
	}
	ink, err := board.AddRasterLayer()
	if err != nil {
		return err
	}

	w, h := int64(area.Width), int64(area.Height)
	cx, cy := area.X+w/2, area.Y+h/2
	q := min(w, h) / 4
	uq := uint32(q) //nolint:gosec // q >= 0

	actions := []struct {
		layer int
		a     mboard.RasterLayerAction
	}{
		{base, mboard.FillRect(mboard.Rect(area.X, area.Y, area.Width, area.Height/2), mboard.RGB(0x2a, 0x4d, 0x7a))},
		{base, mboard.FillOval(mboard.Rect(cx-2*q, cy-q, 4*uq, 2*uq), mboard.RGB(0xff, 0xc8, 0x00))},
		{base, mboard.EraseOval(mboard.Rect(cx-q/2, cy-q/2, uq, uq))},
		{ink, mboard.FillRect(mboard.Rect(cx-q, cy-q/4, 2*uq, uq/2), mboard.Red)},
		{ink, mboard.Brush(mboard.CanvasPosition{X: cx + q, Y: cy + q}, uq/3, mboard.Green)},
		{ink, mboard.Brush(mboard.CanvasPosition{X: cx - q, Y: cy + q}, uq/3, mboard.Blue)},
	}
	for _, s := range actions {
		if _, _, err := board.PerformRasterAction(s.layer, s.a); err != nil {
			return err
		}
	}
	return nil
}
