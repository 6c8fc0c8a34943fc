package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"

	"golang.design/x/clipboard"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/gogpu/mboard"
)

// errQuit ends the event loop without an error.
var errQuit = errors.New("quit")

func runView(args []string) error {
	var common commonFlags
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	common.register(fs)
	colorHex := fs.String("color", "#ff0000", "paint color (RGB, RGBA, RRGGBB or RRGGBBAA)")
	radius := fs.Uint("radius", 50, "brush radius in pixels")
	output := fs.String("o", "board.png", "file written by the s key")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := common.validate(); err != nil {
		return err
	}
	paintColor, err := mboard.ParseHex(*colorHex)
	if err != nil {
		return err
	}
	if _, err := formatFor(*output); err != nil {
		return err
	}

	board := common.canvas(mboard.White)
	defer board.Close()
	sess, err := newSession(board, common.width, common.height, paintColor, uint32(*radius)) //nolint:gosec // flag value
	if err != nil {
		return err
	}

	var runErr error
	driver.Main(func(s screen.Screen) {
		runErr = newViewer(sess, *output).run(s, common.width, common.height)
	})
	return runErr
}

// viewer shows a session in a shiny window and feeds it input events.
type viewer struct {
	sess    *session
	arena   *mboard.Arena
	output  string
	message string

	scr screen.Screen
	win screen.Window
	buf screen.Buffer
}

func newViewer(sess *session, output string) *viewer {
	d := sess.view.ViewDimensions()
	return &viewer{
		sess:   sess,
		arena:  mboard.NewArena(d.Area()),
		output: output,
	}
}

func (v *viewer) run(s screen.Screen, width, height int) error {
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard init: %v", err)
	}

	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "mboard"})
	if err != nil {
		return fmt.Errorf("new window: %w", err)
	}
	defer w.Release()
	v.scr, v.win = s, w
	if err := v.ensureBuffer(image.Pt(width, height)); err != nil {
		return err
	}
	defer func() { v.buf.Release() }()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return nil
			}
		case size.Event:
			if e.WidthPx <= 0 || e.HeightPx <= 0 {
				continue
			}
			if err := v.ensureBuffer(e.Size()); err != nil {
				return err
			}
			v.sess.resize(e.WidthPx, e.HeightPx)
			w.Send(paint.Event{})
		case paint.Event:
			v.paintAll()
		case mouse.Event:
			v.apply(v.mouse(e))
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if err := v.key(e); errors.Is(err, errQuit) {
				return nil
			} else if err != nil {
				log.Printf("%v", err)
			}
		}
	}
}

// ensureBuffer replaces the back buffer when the window size changes.
func (v *viewer) ensureBuffer(sz image.Point) error {
	if v.buf != nil && v.buf.Size() == sz {
		return nil
	}
	b, err := v.scr.NewBuffer(sz)
	if err != nil {
		return fmt.Errorf("new buffer: %w", err)
	}
	if v.buf != nil {
		v.buf.Release()
	}
	v.buf = b
	return nil
}

func (v *viewer) mouse(e mouse.Event) update {
	p := image.Pt(int(e.X), int(e.Y))
	if e.Button != mouse.ButtonLeft && e.Direction != mouse.DirNone {
		return update{}
	}
	switch e.Direction {
	case mouse.DirPress:
		return v.sess.press(p)
	case mouse.DirRelease:
		return v.sess.release(p)
	case mouse.DirNone:
		return v.sess.move(p)
	}
	return update{}
}

func (v *viewer) key(e key.Event) error {
	switch e.Code {
	case key.CodeUpArrow:
		return v.scale(1.1)
	case key.CodeDownArrow:
		return v.scale(0.9)
	}

	if t, ok := toolForKey(e.Rune); ok {
		v.sess.setTool(t)
		v.notify("")
		return nil
	}
	switch e.Rune {
	case 'c', 'C':
		var buf bytes.Buffer
		if err := png.Encode(&buf, v.sess.board.Render(v.sess.view)); err != nil {
			return fmt.Errorf("copy: %w", err)
		}
		clipboard.Write(clipboard.FmtImage, buf.Bytes())
		v.notify("copied to clipboard")
	case 's', 'S':
		if err := saveImage(v.output, v.sess.board.Render(v.sess.view)); err != nil {
			return fmt.Errorf("save: %w", err)
		}
		v.notify("saved " + v.output)
	case 'q', 'Q':
		return errQuit
	}
	return nil
}

func (v *viewer) scale(f float64) error {
	u, err := v.sess.scale(f)
	if err != nil {
		return err
	}
	v.apply(u)
	// The status line shows the canvas extent, which changes even when the
	// anchor does not.
	v.notify("")
	return nil
}

// notify replaces the status message and repaints the status bar.
func (v *viewer) notify(msg string) {
	v.message = msg
	r := drawStatus(v.buf.RGBA(), v.status())
	v.win.Upload(r.Min, v.buf, r)
	v.win.Publish()
}

func (v *viewer) apply(u update) {
	switch {
	case u.full:
		v.paintAll()
	case !u.damage.Empty():
		v.paintDamage(u.damage)
	}
}

// paintAll renders the whole view into the back buffer and uploads it.
func (v *viewer) paintAll() {
	frame := v.sess.board.RenderInto(v.sess.view, v.arena)
	if pix, err := frame.Pixels(); err == nil {
		blit(v.buf.RGBA(), image.Point{}, pix, frame.Width())
	}
	v.arena.Reset()

	drawStatus(v.buf.RGBA(), v.status())
	v.win.Upload(image.Point{}, v.buf, v.buf.Bounds())
	v.win.Publish()
}

// paintDamage re-renders only the visible part of a changed canvas area.
func (v *viewer) paintDamage(damage mboard.CanvasRect) {
	sub, ok := v.sess.view.CanvasRectSubview(damage)
	if !ok {
		return
	}
	vr, _ := damage.ToViewRect(v.sess.view)
	at := image.Pt(int(vr.X), int(vr.Y))

	frame := v.sess.board.RenderInto(sub, v.arena)
	if pix, err := frame.Pixels(); err == nil {
		blit(v.buf.RGBA(), at, pix, frame.Width())
	}
	v.arena.Reset()

	r := image.Rectangle{Min: at, Max: at.Add(image.Pt(int(vr.Width), int(vr.Height)))}.Intersect(v.buf.Bounds())
	status := statusRect(v.buf.Bounds())
	if r.Overlaps(status) {
		drawStatus(v.buf.RGBA(), v.status())
		r = r.Union(status)
	}
	mboard.Logger().Debug("mboard: damage repaint", slog.String("rect", damage.String()))
	v.win.Upload(r.Min, v.buf, r)
	v.win.Publish()
}

func (v *viewer) status() string {
	a := v.sess.view.Anchor()
	d := v.sess.view.CanvasDimensions()
	chunks := 0
	if l, err := v.sess.board.Layer(v.sess.layer); err == nil {
		chunks = l.ChunkCount()
	}
	s := fmt.Sprintf("%s  anchor %d,%d  canvas %dx%d  chunks %d",
		v.sess.tool, a.X, a.Y, d.Width, d.Height, chunks)
	if v.message != "" {
		s += "  | " + v.message
	}
	return s
}
