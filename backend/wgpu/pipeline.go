//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/plotgpu/batch"
)

var kinds = [...]batch.Kind{batch.KindMesh, batch.KindShape, batch.KindCurve}

// pipeline is the render pipeline of one batch.Kind.
type pipeline struct {
	shader   hal.ShaderModule
	layout   hal.PipelineLayout
	pipeline hal.RenderPipeline
}

// affineAttributes are the two transform rows of an instance record.
func affineAttributes(location uint32) []gputypes.VertexAttribute {
	return []gputypes.VertexAttribute{
		{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: location},
		{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: location + 1},
	}
}

// vertexLayouts returns the buffer layouts of a pipeline kind: slot 0
// steps per vertex, slot 1 per instance. They mirror the batch layouts.
func vertexLayouts(kind batch.Kind) []gputypes.VertexBufferLayout {
	switch kind {
	case batch.KindMesh:
		return []gputypes.VertexBufferLayout{
			{
				ArrayStride: uint64(batch.MeshLayout{}.Stride()),
				StepMode:    gputypes.VertexStepModeVertex,
				Attributes: []gputypes.VertexAttribute{
					{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
					{Format: gputypes.VertexFormatFloat32x4, Offset: 8, ShaderLocation: 1}, // color
				},
			},
			{
				ArrayStride: uint64(batch.AffineLayout{}.Stride()),
				StepMode:    gputypes.VertexStepModeInstance,
				Attributes:  affineAttributes(2),
			},
		}
	case batch.KindShape:
		return []gputypes.VertexBufferLayout{
			{
				ArrayStride: uint64(batch.PointLayout{}.Stride()),
				StepMode:    gputypes.VertexStepModeVertex,
				Attributes: []gputypes.VertexAttribute{
					{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				},
			},
			{
				ArrayStride: uint64(batch.ColorStyleLayout{}.Stride()),
				StepMode:    gputypes.VertexStepModeInstance,
				Attributes: append(affineAttributes(1),
					gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 3}), // color
			},
		}
	case batch.KindCurve:
		return []gputypes.VertexBufferLayout{
			{
				ArrayStride: uint64(batch.CurveLayout{}.Stride()),
				StepMode:    gputypes.VertexStepModeVertex,
				Attributes: []gputypes.VertexAttribute{
					{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
					{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1}, // uv
					{Format: gputypes.VertexFormatFloat32, Offset: 16, ShaderLocation: 2},  // side
				},
			},
			{
				ArrayStride: uint64(batch.ColorStyleLayout{}.Stride()),
				StepMode:    gputypes.VertexStepModeInstance,
				Attributes: append(affineAttributes(3),
					gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 5}), // color
			},
		}
	default:
		return nil
	}
}

// createPipeline compiles the shader of kind and creates its render
// pipeline with premultiplied alpha blending.
func (b *Backend) createPipeline(kind batch.Kind) (*pipeline, error) {
	shader, err := createShader(b.device, kind, b.spirv)
	if err != nil {
		return nil, err
	}
	p := &pipeline{shader: shader}

	label := kind.String()
	p.layout, err = b.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: label + "_pipe_layout",
	})
	if err != nil {
		b.destroyPipeline(p)
		return nil, fmt.Errorf("create %s pipeline layout: %w", label, err)
	}

	premulBlend := gputypes.BlendStatePremultiplied()
	p.pipeline, err = b.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label + "_pipeline",
		Layout: p.layout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    vertexLayouts(kind),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    b.format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: b.sampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		b.destroyPipeline(p)
		return nil, fmt.Errorf("create %s render pipeline: %w", label, err)
	}
	return p, nil
}

// ensurePipelines creates the pipelines that do not exist yet.
func (b *Backend) ensurePipelines() error {
	for _, kind := range kinds {
		if b.pipelines[kind] != nil {
			continue
		}
		p, err := b.createPipeline(kind)
		if err != nil {
			return err
		}
		b.pipelines[kind] = p
		b.logger.Debug("wgpu: pipeline created", "kind", kind.String())
	}
	return nil
}

// destroyPipeline releases pipeline resources in reverse creation order.
func (b *Backend) destroyPipeline(p *pipeline) {
	if p == nil {
		return
	}
	if p.pipeline != nil {
		b.device.DestroyRenderPipeline(p.pipeline)
	}
	if p.layout != nil {
		b.device.DestroyPipelineLayout(p.layout)
	}
	if p.shader != nil {
		b.device.DestroyShaderModule(p.shader)
	}
}
