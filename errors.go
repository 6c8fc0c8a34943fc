package mboard

import "errors"

// Caller-contract errors. Degenerate geometry (empty rectangles, no overlap)
// is never reported through these; it is a (value, false) result instead.
var (
	// ErrLayerIndex is returned when a layer index is outside [0, LayerCount).
	ErrLayerIndex = errors.New("mboard: layer index out of range")

	// ErrNilLayer is returned when a nil *Layer is added to a canvas.
	ErrNilLayer = errors.New("mboard: nil layer")

	// ErrLayerOwned is returned when a layer that already belongs to a
	// canvas is added to a canvas again.
	ErrLayerOwned = errors.New("mboard: layer already belongs to a canvas")

	// ErrChunkSizeMismatch is returned when a layer's chunk edge length
	// differs from the canvas's.
	ErrChunkSizeMismatch = errors.New("mboard: layer chunk size does not match canvas")

	// ErrInvalidChunkSize is returned for a non-positive chunk edge length.
	ErrInvalidChunkSize = errors.New("mboard: invalid chunk size")

	// ErrPixelCount is returned when a chunk is built from a pixel slice whose
	// length is not width*height.
	ErrPixelCount = errors.New("mboard: pixel count does not match dimensions")

	// ErrInvalidScale is returned for a non-positive or non-finite scale factor.
	ErrInvalidScale = errors.New("mboard: invalid scale factor")

	// ErrInvalidHex is returned by ParseHex for malformed color strings.
	ErrInvalidHex = errors.New("mboard: invalid hex color")

	// ErrFrameReleased is returned when an arena-backed frame is read after
	// its arena has been reset.
	ErrFrameReleased = errors.New("mboard: frame read after arena reset")

	// ErrCanvasClosed is returned when a closed canvas is mutated.
	ErrCanvasClosed = errors.New("mboard: canvas is closed")
)
