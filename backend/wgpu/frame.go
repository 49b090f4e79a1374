//go:build !nogpu

package wgpu

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/plotgpu/batch"
)

// frame records draw calls into one render pass.
type frame struct {
	b       *Backend
	encoder hal.CommandEncoder
	pass    hal.RenderPassEncoder
	current batch.Kind
	bound   bool
	draws   int
	ended   bool
}

// BeginFrame starts a render pass that clears the target.
func (b *Backend) BeginFrame() (batch.Frame, error) {
	if b.active {
		return nil, ErrFrameActive
	}
	if err := b.ensurePipelines(); err != nil {
		return nil, err
	}
	w, h := uint32(b.width), uint32(b.height) //nolint:gosec // dimensions are positive
	if err := b.target.ensure(b.device, w, h, b.sampleCount, b.format); err != nil {
		return nil, fmt.Errorf("ensure target: %w", err)
	}

	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "plot_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("plot_frame"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	pass := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label:            "plot_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{b.target.attachment(b.clear)},
	})

	b.active = true
	return &frame{b: b, encoder: encoder, pass: pass}, nil
}

// Draw records one indexed, instanced draw.
func (f *frame) Draw(call batch.DrawCall) error {
	if f.ended {
		return ErrFrameEnded
	}
	if call.IndexCount == 0 || call.InstanceCount == 0 {
		return nil
	}

	p, ok := f.b.pipelines[call.Kind]
	if !ok {
		return fmt.Errorf("wgpu: unsupported pipeline %v", call.Kind)
	}
	vertices, err := f.b.buffer(call.Vertices)
	if err != nil {
		return err
	}
	indices, err := f.b.buffer(call.Indices)
	if err != nil {
		return err
	}
	styles, err := f.b.buffer(call.Styles)
	if err != nil {
		return err
	}

	if !f.bound || f.current != call.Kind {
		f.pass.SetPipeline(p.pipeline)
		f.current, f.bound = call.Kind, true
	}
	f.pass.SetVertexBuffer(0, vertices, 0)
	f.pass.SetVertexBuffer(1, styles, 0)
	f.pass.SetIndexBuffer(indices, gputypes.IndexFormatUint32, 0)

	x, y, w, h := f.scissor(call.Scissor)
	if w == 0 || h == 0 {
		return nil
	}
	f.pass.SetScissorRect(x, y, w, h)

	f.pass.DrawIndexed(call.IndexCount, call.InstanceCount, call.FirstIndex,
		int32(call.BaseVertex), call.FirstInstance) //nolint:gosec // vertex offsets fit int32
	f.draws++
	return nil
}

// scissor clamps sc to the target; a disabled scissor covers it all.
func (f *frame) scissor(sc batch.Scissor) (x, y, w, h uint32) {
	tw, th := f.b.target.width, f.b.target.height
	if !sc.Enabled {
		return 0, 0, tw, th
	}
	x, y = min(sc.X, tw), min(sc.Y, th)
	w = min(sc.Width, tw-x)
	h = min(sc.Height, th-y)
	return x, y, w, h
}

// End submits the frame, waits for the GPU and reads the target back
// into the backend image.
func (f *frame) End() error {
	if f.ended {
		return ErrFrameEnded
	}
	f.ended = true
	b := f.b
	defer func() { b.active = false }()

	f.pass.End()

	t := &b.target
	encoder := f.encoder
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.resolveTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	pixelBufSize := uint64(t.width) * uint64(t.height) * 4
	stagingBuf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "plot_staging",
		Size:  pixelBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer b.device.DestroyBuffer(stagingBuf)

	encoder.CopyTextureToBuffer(t.resolveTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: t.width * 4, RowsPerImage: t.height},
		TextureBase:  hal.ImageCopyTexture{Texture: t.resolveTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer b.device.FreeCommandBuffer(cmdBuf)

	if _, err := b.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if err := b.device.WaitIdle(); err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}

	mapping, err := b.device.MapBuffer(stagingBuf, 0, pixelBufSize)
	if err != nil {
		return fmt.Errorf("map staging buffer: %w", err)
	}
	defer func() { _ = b.device.UnmapBuffer(stagingBuf) }()
	readback := unsafe.Slice((*byte)(mapping.Ptr), pixelBufSize)
	copyPixels(b.img.Pix, readback, t.format == gputypes.TextureFormatBGRA8Unorm)

	b.logger.Debug("wgpu: frame submitted", "draws", f.draws)
	return nil
}

// copyPixels copies premultiplied 8-bit pixels into an RGBA image,
// swapping red and blue for BGRA sources.
func copyPixels(dst, src []byte, bgra bool) {
	n := min(len(dst), len(src))
	if !bgra {
		copy(dst[:n], src[:n])
		return
	}
	for i := 0; i+3 < n; i += 4 {
		dst[i+0] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i+0]
		dst[i+3] = src[i+3]
	}
}
