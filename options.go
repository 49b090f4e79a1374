package plotgpu

import (
	"log/slog"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/plotgpu/batch"
	"github.com/gogpu/plotgpu/tess"
)

// Option configures a Canvas during creation.
//
// Example:
//
//	// Best available registered backend
//	c, err := plotgpu.NewCanvas(800, 600)
//
//	// Explicit device (dependency injection)
//	c, err := plotgpu.NewCanvas(800, 600, plotgpu.WithDevice(software.New(800, 600)))
type Option func(*options)

// options holds optional configuration for Canvas creation.
type options struct {
	device       batch.Backend
	provider     gpucontext.DeviceProvider
	chunk        int
	scaleFactor  float32
	logger       *slog.Logger
	triangulator tess.Triangulator
}

// defaultOptions returns the default canvas options.
func defaultOptions() options {
	return options{
		device:       nil, // Selected from the backend registry if nil
		chunk:        batch.DefaultChunk,
		scaleFactor:  1,
		triangulator: tess.EarClip{},
	}
}

// WithDevice sets the backend the canvas flushes to.
func WithDevice(d batch.Backend) Option {
	return func(o *options) {
		o.device = d
	}
}

// WithProvider shares a GPU device with the backend registry. It only
// matters when no device is set and a GPU backend is registered.
func WithProvider(p gpucontext.DeviceProvider) Option {
	return func(o *options) {
		o.provider = p
	}
}

// WithChunk sets the growth increment of the batch buffers in elements.
func WithChunk(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunk = n
		}
	}
}

// WithScaleFactor sets the display scale factor, as for SetScaleFactor.
func WithScaleFactor(f float32) Option {
	return func(o *options) {
		o.scaleFactor = f
	}
}

// WithLogger sets the logger of the canvas, its buffers and backend.
// Without it the package logger at creation time is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithTriangulator sets the polygon triangulator used for fills.
// The default is ear clipping.
func WithTriangulator(t tess.Triangulator) Option {
	return func(o *options) {
		if t != nil {
			o.triangulator = t
		}
	}
}
