package plotcanvas

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/plotgpu"
	_ "github.com/gogpu/plotgpu/backend/software" // fallback when no GPU backend is registered
)

// Common errors returned by Surface operations.
var (
	// ErrSurfaceClosed is returned when operations are attempted on a closed surface.
	ErrSurfaceClosed = errors.New("plotcanvas: surface is closed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("plotcanvas: invalid dimensions")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("plotcanvas: nil DeviceProvider")

	// ErrNoReadback is returned when the canvas backend keeps no image
	// that could be uploaded.
	ErrNoReadback = errors.New("plotcanvas: backend has no readable image")
)

// imageSource is a backend that keeps its last frame in memory. Both
// bundled backends implement it.
type imageSource interface {
	Image() *image.RGBA
}

// textureDestroyer matches the Destroy method of gogpu textures.
type textureDestroyer interface {
	Destroy()
}

// Surface presents a plotgpu Canvas in a gogpu window. Plots are drawn
// and flushed on the canvas, then the backend image is uploaded to a
// GPU texture and drawn by a gpucontext.TextureDrawer.
//
// Surface is NOT safe for concurrent use.
type Surface struct {
	canvas      *plotgpu.Canvas
	src         imageSource
	provider    gpucontext.DeviceProvider
	texture     any // *pendingTexture or a gpucontext.Texture
	oldTexture  any // previous texture awaiting destruction
	dirty       bool
	sizeChanged bool
	width       int
	height      int
	closed      bool
}

// New creates a Surface sharing the GPU device of provider, which
// usually comes from gogpu.App.GPUContextProvider(). The wgpu backend
// is used when it is registered; otherwise plots are rasterized on the
// CPU. opts are passed to plotgpu.NewCanvas.
func New(provider gpucontext.DeviceProvider, width, height int, opts ...plotgpu.Option) (*Surface, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}

	opts = append([]plotgpu.Option{plotgpu.WithProvider(provider)}, opts...)
	canvas, err := plotgpu.NewCanvas(width, height, opts...)
	if err != nil {
		return nil, fmt.Errorf("plotcanvas: %w", err)
	}
	src, ok := canvas.Device().(imageSource)
	if !ok {
		_ = canvas.Close()
		return nil, fmt.Errorf("%w: %T", ErrNoReadback, canvas.Device())
	}

	return &Surface{
		canvas:   canvas,
		src:      src,
		provider: provider,
		width:    width,
		height:   height,
		dirty:    true,
	}, nil
}

// MustNew is like New but panics on error.
func MustNew(provider gpucontext.DeviceProvider, width, height int, opts ...plotgpu.Option) *Surface {
	s, err := New(provider, width, height, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Canvas returns the plot canvas, or nil if the surface is closed.
//
// Drawing directly on the canvas requires Canvas().Flush() and
// MarkDirty() before the next upload. Draw does both.
func (s *Surface) Canvas() *plotgpu.Canvas {
	if s.closed {
		return nil
	}
	return s.canvas
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the surface height in pixels.
func (s *Surface) Height() int {
	return s.height
}

// Size returns width and height as a convenience.
func (s *Surface) Size() (width, height int) {
	return s.width, s.height
}

// MarkDirty flags the surface for upload on the next Upload.
func (s *Surface) MarkDirty() {
	s.dirty = true
}

// IsDirty reports whether the surface has pixels not yet uploaded.
func (s *Surface) IsDirty() bool {
	return s.dirty
}

// Draw calls fn with the canvas, flushes the queued draws to the
// backend and marks the surface dirty. Queued draws are flushed even
// when fn fails.
func (s *Surface) Draw(fn func(*plotgpu.Canvas) error) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	drawErr := fn(s.canvas)
	flushErr := s.canvas.Flush()
	s.dirty = true
	return errors.Join(drawErr, flushErr)
}

// Resize changes the surface and canvas size. The texture is recreated
// on the next upload.
func (s *Surface) Resize(width, height int) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if s.width == width && s.height == height {
		return nil
	}

	if err := s.canvas.Resize(width, height); err != nil {
		return fmt.Errorf("plotcanvas: canvas resize failed: %w", err)
	}

	s.width = width
	s.height = height
	s.sizeChanged = true
	s.dirty = true
	return nil
}

// Upload copies the backend image into the texture if dirty and
// returns the texture. The first upload only records the pixels; the
// GPU texture is created by RenderTo, which has a TextureCreator.
func (s *Surface) Upload() (any, error) {
	if s.closed {
		return nil, ErrSurfaceClosed
	}

	// The old texture may still be in use by in-flight command buffers.
	// It is destroyed once its replacement has been created.
	if s.sizeChanged {
		if s.texture != nil {
			destroy(s.oldTexture)
			s.oldTexture = s.texture
			s.texture = nil
		}
		s.sizeChanged = false
	}

	if !s.dirty && s.texture != nil {
		return s.texture, nil
	}

	img := s.src.Image()
	data := img.Pix
	if b := img.Bounds(); b.Dx() != s.width || b.Dy() != s.height {
		return nil, fmt.Errorf("plotcanvas: image is %dx%d, surface is %dx%d",
			b.Dx(), b.Dy(), s.width, s.height)
	}

	switch tex := s.texture.(type) {
	case nil, *pendingTexture:
		s.texture = &pendingTexture{width: s.width, height: s.height, data: data}
	case gpucontext.TextureUpdater:
		if err := tex.UpdateData(data); err != nil {
			return nil, fmt.Errorf("plotcanvas: texture update failed: %w", err)
		}
	default:
		// Not updatable: recreate it.
		destroy(s.oldTexture)
		s.oldTexture = s.texture
		s.texture = &pendingTexture{width: s.width, height: s.height, data: data}
	}

	s.dirty = false
	return s.texture, nil
}

// Texture returns the current texture without uploading. It is nil
// before the first Upload.
func (s *Surface) Texture() any {
	return s.texture
}

// Provider returns the DeviceProvider of the surface, or nil if closed.
func (s *Surface) Provider() gpucontext.DeviceProvider {
	if s.closed {
		return nil
	}
	return s.provider
}

// Close releases the textures and the canvas. Close is idempotent.
func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	destroy(s.oldTexture)
	destroy(s.texture)
	s.oldTexture, s.texture = nil, nil

	var err error
	if s.canvas != nil {
		err = s.canvas.Close()
		s.canvas = nil
	}
	s.src = nil
	s.provider = nil
	return err
}

func destroy(tex any) {
	if d, ok := tex.(textureDestroyer); ok {
		d.Destroy()
	}
}

// pendingTexture holds pixels until RenderTo can create the texture.
type pendingTexture struct {
	width  int
	height int
	data   []byte
}
