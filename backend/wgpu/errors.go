//go:build !nogpu

package wgpu

import "errors"

var (
	// ErrNoDevice is returned when the provider does not expose a HAL device.
	ErrNoDevice = errors.New("wgpu: provider does not expose a HAL device")

	// ErrShaderCompile is returned when a pipeline shader fails to compile.
	ErrShaderCompile = errors.New("wgpu: shader compilation failed")

	// ErrUnknownBuffer is returned for a destroyed or foreign buffer ID.
	ErrUnknownBuffer = errors.New("wgpu: unknown buffer")

	// ErrFrameEnded is returned when drawing into a frame after End.
	ErrFrameEnded = errors.New("wgpu: frame already ended")

	// ErrFrameActive is returned by BeginFrame while another frame is open.
	ErrFrameActive = errors.New("wgpu: frame already active")
)
