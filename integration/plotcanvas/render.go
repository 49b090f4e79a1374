package plotcanvas

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
)

// Rendering errors.
var (
	// ErrInvalidTexture is returned when the created texture does not
	// implement gpucontext.Texture.
	ErrInvalidTexture = errors.New("plotcanvas: texture must implement gpucontext.Texture")

	// ErrInvalidRenderer is returned when the draw context has no
	// gpucontext.TextureCreator.
	ErrInvalidRenderer = errors.New("plotcanvas: draw context has no TextureCreator")
)

// RenderTo uploads the surface and draws it at (0, 0).
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    surface.RenderTo(dc.AsTextureDrawer())
//	})
func (s *Surface) RenderTo(dc gpucontext.TextureDrawer) error {
	return s.RenderAt(dc, 0, 0)
}

// RenderAt uploads the surface and draws it with its top-left corner
// at (x, y) in window pixels.
func (s *Surface) RenderAt(dc gpucontext.TextureDrawer, x, y float32) error {
	if s.closed {
		return ErrSurfaceClosed
	}

	tex, err := s.Upload()
	if err != nil {
		return err
	}

	if pending, ok := tex.(*pendingTexture); ok {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrInvalidRenderer
		}
		created, err := creator.NewTextureFromRGBA(pending.width, pending.height, pending.data)
		if err != nil {
			return fmt.Errorf("plotcanvas: NewTextureFromRGBA failed: %w", err)
		}

		// Backend images are alpha premultiplied.
		if pt, ok := created.(interface{ SetPremultiplied(bool) }); ok {
			pt.SetPremultiplied(true)
		}

		s.texture = created
		tex = created

		// Texture creation waits for the GPU, so the old one is idle.
		destroy(s.oldTexture)
		s.oldTexture = nil
	}

	gpuTex, ok := tex.(gpucontext.Texture)
	if !ok {
		return ErrInvalidTexture
	}
	return dc.DrawTexture(gpuTex, x, y)
}
