package backend

import (
	"errors"
	"log/slog"

	"github.com/gogpu/gpucontext"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered or cannot run with the given configuration.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("backend: invalid dimensions")
)

// Backend name constants.
const (
	// BackendSoftware is the name of the CPU rasterizing backend.
	BackendSoftware = "software"
	// BackendWGPU is the name of the GPU backend (gogpu/wgpu HAL).
	BackendWGPU = "wgpu"
)

// Config is passed to a Factory.
type Config struct {
	// Width and Height of the render target in pixels.
	Width, Height int

	// Provider supplies a shared GPU device. Backends that need a GPU
	// report ErrBackendNotAvailable when it is nil.
	Provider gpucontext.DeviceProvider

	// Logger for the backend. nil disables logging.
	Logger *slog.Logger
}

// Validate reports ErrInvalidDimensions for an empty target.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return ErrInvalidDimensions
	}
	return nil
}
