package main

import (
	"image"

	"github.com/gogpu/mboard"
)

// tool is the active pointer tool of the viewer.
type tool int

const (
	toolBrush tool = iota
	toolEraser
	toolPan
	toolRect
	toolOval
)

var toolNames = [...]string{
	toolBrush:  "brush",
	toolEraser: "eraser",
	toolPan:    "pan",
	toolRect:   "rect",
	toolOval:   "oval",
}

func (t tool) String() string {
	if int(t) < len(toolNames) {
		return toolNames[t]
	}
	return "unknown"
}

// toolForKey maps a shortcut key to a tool.
func toolForKey(r rune) (tool, bool) {
	switch r {
	case 'b', 'B':
		return toolBrush, true
	case 'e', 'E':
		return toolEraser, true
	case 'p', 'P':
		return toolPan, true
	case 'r', 'R':
		return toolRect, true
	case 'o', 'O':
		return toolOval, true
	}
	return 0, false
}

// update tells the window what to redraw after an input event.
type update struct {
	damage mboard.CanvasRect // canvas area changed by an action
	full   bool              // the view moved; redraw everything
}

// session holds the editing state of one viewer window: the canvas, the
// view onto it, and the pointer drag in progress. It knows nothing about
// windows so it can be driven from tests.
type session struct {
	board  *mboard.Canvas
	view   mboard.CanvasView
	layer  int
	tool   tool
	color  mboard.Pixel
	radius uint32

	dragging  bool
	dragStart image.Point
	last      image.Point
}

func newSession(board *mboard.Canvas, width, height int, color mboard.Pixel, radius uint32) (*session, error) {
	layer, err := board.AddRasterLayer()
	if err != nil {
		return nil, err
	}
	return &session{
		board:  board,
		view:   mboard.NewCanvasView(uint32(width), uint32(height)), //nolint:gosec // window size
		layer:  layer,
		color:  color,
		radius: radius,
	}, nil
}

// setTool switches tools, dropping any drag in progress.
func (s *session) setTool(t tool) {
	s.tool = t
	s.dragging = false
}

// press starts a drag at view point p. Brush and eraser paint immediately.
func (s *session) press(p image.Point) update {
	s.dragging = true
	s.dragStart = p
	s.last = p
	switch s.tool {
	case toolBrush, toolEraser:
		return s.dab(p)
	}
	return update{}
}

// move continues a drag. Brush and eraser leave a dab per event; pan moves
// the view opposite to the pointer so the canvas follows it.
func (s *session) move(p image.Point) update {
	if !s.dragging {
		return update{}
	}
	defer func() { s.last = p }()
	switch s.tool {
	case toolBrush, toolEraser:
		return s.dab(p)
	case toolPan:
		dx, dy := p.X-s.last.X, p.Y-s.last.Y
		if dx == 0 && dy == 0 {
			return update{}
		}
		s.view.Translate(int64(-dx), int64(-dy))
		return update{full: true}
	}
	return update{}
}

// release ends a drag. Rectangle and oval tools fill the dragged box.
func (s *session) release(p image.Point) update {
	if !s.dragging {
		return update{}
	}
	s.dragging = false
	var a mboard.RasterLayerAction
	switch s.tool {
	case toolRect:
		a = mboard.FillRect(s.dragRect(s.dragStart, p), s.color)
	case toolOval:
		a = mboard.FillOval(s.dragRect(s.dragStart, p), s.color)
	default:
		return update{}
	}
	return s.perform(a)
}

// scale pin-scales the canvas by f on both axes.
func (s *session) scale(f float64) (update, error) {
	before := s.view.Anchor()
	if err := s.view.PinScaleCanvas(f, f); err != nil {
		return update{}, err
	}
	return update{full: s.view.Anchor() != before}, nil
}

// resize follows the window size.
func (s *session) resize(width, height int) update {
	d := s.view.ViewDimensions()
	if int(d.Width) == width && int(d.Height) == height {
		return update{}
	}
	s.view.ResizeView(uint32(width), uint32(height)) //nolint:gosec // window size
	return update{full: true}
}

func (s *session) dab(p image.Point) update {
	center := s.canvasPoint(p)
	if s.tool == toolEraser {
		return s.perform(mboard.EraseBrush(center, s.radius))
	}
	return s.perform(mboard.Brush(center, s.radius, s.color))
}

func (s *session) perform(a mboard.RasterLayerAction) update {
	r, ok, err := s.board.PerformRasterAction(s.layer, a)
	if err != nil || !ok {
		return update{}
	}
	return update{damage: r}
}

// canvasPoint converts a view point to canvas space. Points left of or
// above the window clamp to its edge.
func (s *session) canvasPoint(p image.Point) mboard.CanvasPosition {
	return s.view.TransformViewToCanvas(uint32(max(p.X, 0)), uint32(max(p.Y, 0))) //nolint:gosec // clamped
}

// dragRect returns the canvas rectangle spanned by two view points.
func (s *session) dragRect(a, b image.Point) mboard.CanvasRect {
	r := image.Rectangle{Min: a, Max: b}.Canon()
	tl := s.canvasPoint(r.Min)
	br := s.canvasPoint(r.Max)
	return mboard.Rect(tl.X, tl.Y, uint32(br.X-tl.X), uint32(br.Y-tl.Y)) //nolint:gosec // canonical
}
