package software

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/image/vector"

	"github.com/gogpu/plotgpu/backend"
	"github.com/gogpu/plotgpu/batch"
)

// init registers the software backend on package import.
func init() {
	backend.Register(backend.BackendSoftware, func(cfg backend.Config) (batch.Backend, error) {
		return New(cfg.Width, cfg.Height, WithLogger(cfg.Logger)), nil
	})
}

type hostBuffer struct {
	label string
	usage batch.Usage
	data  []byte
}

// Backend rasterizes batch draw calls into an RGBA image.
//
// Buffer management is safe for concurrent use; frames are not.
type Backend struct {
	mu      sync.Mutex
	buffers map[batch.BufferID]*hostBuffer
	nextID  batch.BufferID

	img        *image.RGBA
	background color.Color
	raster     *vector.Rasterizer
	logger     *slog.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithBackground sets the color a frame is cleared to. The default is
// transparent.
func WithBackground(c color.Color) Option {
	return func(b *Backend) {
		b.background = c
	}
}

// WithLogger sets the logger. nil keeps logging disabled.
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.logger = l
		}
	}
}

// New creates a backend rendering into a width×height image.
func New(width, height int, opts ...Option) *Backend {
	b := &Backend{
		buffers:    make(map[batch.BufferID]*hostBuffer),
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		background: color.Transparent,
		raster:     vector.NewRasterizer(width, height),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetLogger replaces the logger. nil disables logging.
func (b *Backend) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	b.logger = l
}

// CreateBuffer allocates a zeroed host buffer.
func (b *Backend) CreateBuffer(label string, usage batch.Usage, size int) (batch.BufferID, error) {
	if size < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.buffers[b.nextID] = &hostBuffer{label: label, usage: usage, data: make([]byte, size)}
	return b.nextID, nil
}

// WriteBuffer copies data into the buffer at offset.
func (b *Backend) WriteBuffer(id batch.BufferID, offset int, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	buf, ok := b.buffers[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBuffer, id)
	}
	if offset < 0 || offset+len(data) > len(buf.data) {
		return fmt.Errorf("%w: %s [%d, %d) of %d", ErrOutOfRange, buf.label, offset, offset+len(data), len(buf.data))
	}
	copy(buf.data[offset:], data)
	return nil
}

// DestroyBuffer releases a buffer. Unknown IDs are ignored.
func (b *Backend) DestroyBuffer(id batch.BufferID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.buffers, id)
}

// Buffers returns the number of live buffers.
func (b *Backend) Buffers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buffers)
}

func (b *Backend) bytes(id batch.BufferID) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	buf, ok := b.buffers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBuffer, id)
	}
	return buf.data, nil
}

// Size returns the image dimensions.
func (b *Backend) Size() (width, height int) {
	r := b.img.Bounds()
	return r.Dx(), r.Dy()
}

// Resize replaces the image with a cleared one of the new size.
func (b *Backend) Resize(width, height int) {
	if w, h := b.Size(); w == width && h == height {
		return
	}
	b.img = image.NewRGBA(image.Rect(0, 0, width, height))
	b.logger.Debug("software: resized", "width", width, "height", height)
}

// Image returns the render target. It is overwritten by the next frame.
func (b *Backend) Image() *image.RGBA {
	return b.img
}

// WritePNG encodes the render target as PNG.
func (b *Backend) WritePNG(w io.Writer) error {
	return png.Encode(w, b.img)
}

// BeginFrame clears the image to the background color and returns a
// frame drawing into it.
func (b *Backend) BeginFrame() (batch.Frame, error) {
	draw.Draw(b.img, b.img.Bounds(), image.NewUniform(b.background), image.Point{}, draw.Src)
	return &frame{b: b}, nil
}
