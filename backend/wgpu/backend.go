//go:build !nogpu

package wgpu

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/plotgpu/backend"
	"github.com/gogpu/plotgpu/batch"
)

// init registers the wgpu backend on package import.
func init() {
	backend.Register(backend.BackendWGPU, func(cfg backend.Config) (batch.Backend, error) {
		if cfg.Provider == nil {
			return nil, fmt.Errorf("%w: wgpu needs a device provider", backend.ErrBackendNotAvailable)
		}
		b, err := New(cfg.Provider, cfg.Width, cfg.Height, WithLogger(cfg.Logger))
		if errors.Is(err, ErrNoDevice) {
			return nil, fmt.Errorf("%w: %w", backend.ErrBackendNotAvailable, err)
		}
		if err != nil {
			return nil, err
		}
		return b, nil
	})
}

// defaultSampleCount is the MSAA sample count of the render target.
const defaultSampleCount = 4

// Backend renders batch draw calls with the gogpu/wgpu HAL.
//
// Buffer management is safe for concurrent use. Frames are not, and at
// most one frame is open at a time.
type Backend struct {
	mu      sync.RWMutex
	device  hal.Device
	queue   hal.Queue
	buffers map[batch.BufferID]hal.Buffer
	nextID  batch.BufferID

	pipelines map[batch.Kind]*pipeline
	target    target
	img       *image.RGBA
	active    bool

	width, height int
	sampleCount   uint32
	format        gputypes.TextureFormat
	clear         gputypes.Color
	spirv         bool
	logger        *slog.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithSampleCount sets the MSAA sample count. 1 disables multisampling.
func WithSampleCount(n uint32) Option {
	return func(b *Backend) {
		if n > 0 {
			b.sampleCount = n
		}
	}
}

// WithFormat sets the render target format. Only BGRA8Unorm (default)
// and RGBA8Unorm are accepted; other values are ignored.
func WithFormat(f gputypes.TextureFormat) Option {
	return func(b *Backend) {
		if f == gputypes.TextureFormatBGRA8Unorm || f == gputypes.TextureFormatRGBA8Unorm {
			b.format = f
		}
	}
}

// WithClearColor sets the color each frame starts from. The default is
// transparent black.
func WithClearColor(c gputypes.Color) Option {
	return func(b *Backend) {
		b.clear = c
	}
}

// WithSPIRV makes the backend compile its shaders to SPIR-V with naga
// instead of handing WGSL to the device.
func WithSPIRV(enabled bool) Option {
	return func(b *Backend) {
		b.spirv = enabled
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

// New creates a backend on the device shared by provider. The provider
// must implement HalDevice() any and HalQueue() any returning hal.Device
// and hal.Queue.
func New(provider gpucontext.DeviceProvider, width, height int, opts ...Option) (*Backend, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoDevice
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoDevice)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoDevice)
	}
	return NewWithDevice(device, queue, width, height, opts...)
}

// NewWithDevice creates a backend on an existing HAL device and queue.
// Pipelines are compiled eagerly so shader errors surface here.
func NewWithDevice(device hal.Device, queue hal.Queue, width, height int, opts ...Option) (*Backend, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", backend.ErrInvalidDimensions, width, height)
	}

	b := &Backend{
		device:      device,
		queue:       queue,
		buffers:     make(map[batch.BufferID]hal.Buffer),
		pipelines:   make(map[batch.Kind]*pipeline),
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		width:       width,
		height:      height,
		sampleCount: defaultSampleCount,
		format:      gputypes.TextureFormatBGRA8Unorm,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := b.ensurePipelines(); err != nil {
		b.Destroy()
		return nil, err
	}
	return b, nil
}

// SetLogger replaces the logger. nil disables logging.
func (b *Backend) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	b.logger = l
}

// Size returns the render target dimensions.
func (b *Backend) Size() (width, height int) {
	return b.width, b.height
}

// Resize changes the render target size. Textures are recreated by the
// next frame.
func (b *Backend) Resize(width, height int) {
	if width == b.width && height == b.height {
		return
	}
	b.width, b.height = width, height
	b.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Image returns the pixels read back by the last frame.
func (b *Backend) Image() *image.RGBA {
	return b.img
}

// Destroy releases all GPU resources. The backend must not be used
// afterwards. Safe to call more than once.
func (b *Backend) Destroy() {
	if b.device == nil {
		return
	}

	b.mu.Lock()
	for id, buf := range b.buffers {
		b.device.DestroyBuffer(buf)
		delete(b.buffers, id)
	}
	b.mu.Unlock()

	for kind, p := range b.pipelines {
		b.destroyPipeline(p)
		delete(b.pipelines, kind)
	}
	b.target.destroy(b.device)
	b.device = nil
	b.queue = nil
}
