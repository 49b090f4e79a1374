//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// target is the offscreen color attachment: an optional MSAA texture
// resolving into a single-sample texture that is copied out for readback.
type target struct {
	msaaTex     hal.Texture
	msaaView    hal.TextureView
	resolveTex  hal.Texture
	resolveView hal.TextureView
	width       uint32
	height      uint32
	samples     uint32
	format      gputypes.TextureFormat
}

// ensure creates or recreates the textures if size, sample count or
// format changed.
func (t *target) ensure(device hal.Device, w, h, samples uint32, format gputypes.TextureFormat) error {
	if t.resolveTex != nil && t.width == w && t.height == h && t.samples == samples && t.format == format {
		return nil
	}
	t.destroy(device)

	size := hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}

	if samples > 1 {
		msaaTex, err := device.CreateTexture(&hal.TextureDescriptor{
			Label:         "plot_msaa",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   samples,
			Dimension:     gputypes.TextureDimension2D,
			Format:        format,
			Usage:         gputypes.TextureUsageRenderAttachment,
		})
		if err != nil {
			return fmt.Errorf("create MSAA texture: %w", err)
		}
		t.msaaTex = msaaTex

		msaaView, err := device.CreateTextureView(msaaTex, &hal.TextureViewDescriptor{
			Label:         "plot_msaa_view",
			Format:        format,
			Dimension:     gputypes.TextureViewDimension2D,
			Aspect:        gputypes.TextureAspectAll,
			MipLevelCount: 1,
		})
		if err != nil {
			t.destroy(device)
			return fmt.Errorf("create MSAA view: %w", err)
		}
		t.msaaView = msaaView
	}

	resolveTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "plot_resolve",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		t.destroy(device)
		return fmt.Errorf("create resolve texture: %w", err)
	}
	t.resolveTex = resolveTex

	resolveView, err := device.CreateTextureView(resolveTex, &hal.TextureViewDescriptor{
		Label:         "plot_resolve_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		t.destroy(device)
		return fmt.Errorf("create resolve view: %w", err)
	}
	t.resolveView = resolveView

	t.width, t.height, t.samples, t.format = w, h, samples, format
	return nil
}

// attachment returns the color attachment of a pass clearing to c.
func (t *target) attachment(c gputypes.Color) hal.RenderPassColorAttachment {
	a := hal.RenderPassColorAttachment{
		View:       t.resolveView,
		LoadOp:     gputypes.LoadOpClear,
		StoreOp:    gputypes.StoreOpStore,
		ClearValue: c,
	}
	if t.msaaView != nil {
		a.View = t.msaaView
		a.ResolveTarget = t.resolveView
	}
	return a
}

// destroy releases all textures and resets dimensions.
func (t *target) destroy(device hal.Device) {
	if t.resolveView != nil {
		device.DestroyTextureView(t.resolveView)
	}
	if t.resolveTex != nil {
		device.DestroyTexture(t.resolveTex)
	}
	if t.msaaView != nil {
		device.DestroyTextureView(t.msaaView)
	}
	if t.msaaTex != nil {
		device.DestroyTexture(t.msaaTex)
	}
	*t = target{}
}
