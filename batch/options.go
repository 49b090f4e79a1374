package batch

import "log/slog"

// DefaultChunk is the number of elements backing arrays grow by.
const DefaultChunk = 2048

// Option configures a Buffer.
type Option func(*bufferOptions)

type bufferOptions struct {
	chunk   int
	initial int
	label   string
	logger  *slog.Logger
}

func defaultOptions() bufferOptions {
	return bufferOptions{
		chunk:   DefaultChunk,
		initial: DefaultChunk,
	}
}

// WithChunk sets the growth increment in elements. Values below one
// are ignored.
func WithChunk(n int) Option {
	return func(o *bufferOptions) {
		if n > 0 {
			o.chunk = n
		}
	}
}

// WithInitialCapacity sets the starting capacity in elements of each
// backing array.
func WithInitialCapacity(n int) Option {
	return func(o *bufferOptions) {
		if n >= 0 {
			o.initial = n
		}
	}
}

// WithLabel sets the label used for GPU buffers and log records.
func WithLabel(label string) Option {
	return func(o *bufferOptions) {
		o.label = label
	}
}

// WithLogger sets the logger. nil keeps logging disabled.
func WithLogger(l *slog.Logger) Option {
	return func(o *bufferOptions) {
		o.logger = l
	}
}
