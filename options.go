package mboard

// Option configures a Canvas during creation.
// Use functional options to customize Canvas behavior.
//
// Example:
//
//	// Defaults: 512px chunks, transparent background, single-threaded
//	c := mboard.NewCanvas()
//
//	// Smaller chunks over a white background, compositing on 4 workers
//	c := mboard.NewCanvas(
//	    mboard.WithChunkSize(256),
//	    mboard.WithBackground(mboard.White),
//	    mboard.WithWorkers(4),
//	)
type Option func(*canvasOptions)

// canvasOptions holds optional configuration for Canvas creation.
type canvasOptions struct {
	chunkSize  int
	background Pixel
	workers    int
}

// defaultOptions returns the default canvas options.
func defaultOptions() canvasOptions {
	return canvasOptions{
		chunkSize:  DefaultChunkSize,
		background: DefaultPixel,
		workers:    0, // composite on the calling goroutine
	}
}

// WithChunkSize sets the chunk edge length shared by all layers of the
// canvas. Non-positive values are ignored.
func WithChunkSize(n int) Option {
	return func(o *canvasOptions) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

// WithBackground sets the pixel shown where no layer has painted.
func WithBackground(p Pixel) Option {
	return func(o *canvasOptions) {
		o.background = p
	}
}

// WithWorkers enables parallel compositing on n worker goroutines.
// Values below 2 keep compositing on the calling goroutine. Rendering stays
// synchronous either way: the render call returns once every chunk region
// has been composited.
func WithWorkers(n int) Option {
	return func(o *canvasOptions) {
		o.workers = n
	}
}
