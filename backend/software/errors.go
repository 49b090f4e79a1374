package software

import "errors"

var (
	// ErrUnknownBuffer is returned when writing to a destroyed or foreign buffer.
	ErrUnknownBuffer = errors.New("software: unknown buffer")

	// ErrOutOfRange is returned when a write or draw reaches past a buffer end.
	ErrOutOfRange = errors.New("software: access out of buffer range")

	// ErrInvalidSize is returned for a negative buffer size.
	ErrInvalidSize = errors.New("software: invalid buffer size")

	// ErrFrameEnded is returned when drawing into a frame after End.
	ErrFrameEnded = errors.New("software: frame already ended")
)
