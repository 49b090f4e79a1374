package plotgpu

import "errors"

var (
	// ErrNotImplemented is returned by renderers that do not support an
	// operation.
	ErrNotImplemented = errors.New("plotgpu: not implemented")

	// ErrNoDevice is returned when no backend is configured or available.
	ErrNoDevice = errors.New("plotgpu: no device")

	// ErrInvalidScaleFactor is returned for a scale factor that is not
	// positive and finite.
	ErrInvalidScaleFactor = errors.New("plotgpu: invalid scale factor")

	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("plotgpu: invalid dimensions")

	// ErrMismatchedLength is returned when per-vertex or per-marker slices
	// do not line up.
	ErrMismatchedLength = errors.New("plotgpu: mismatched slice lengths")

	// ErrInvalidDash is returned for a dash pattern with a negative entry
	// or no positive entry.
	ErrInvalidDash = errors.New("plotgpu: invalid dash pattern")

	// ErrInvalidIndex is returned when a triangle names a vertex that does
	// not exist.
	ErrInvalidIndex = errors.New("plotgpu: triangle index out of range")

	// ErrClosed is returned by a Canvas after Close.
	ErrClosed = errors.New("plotgpu: canvas closed")
)
