package plotgpu

import (
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/plotgpu/backend"
	"github.com/gogpu/plotgpu/batch"
	"github.com/gogpu/plotgpu/geom"
	"github.com/gogpu/plotgpu/tess"
)

// countingTriangulator counts polygons and delegates to ear clipping.
type countingTriangulator struct {
	polygons int
}

func (c *countingTriangulator) Triangulate(sink tess.Sink, poly []geom.Point) {
	c.polygons++
	tess.EarClip{}.Triangulate(sink, poly)
}

// stubProvider implements gpucontext.DeviceProvider without a GPU.
type stubProvider struct{}

func (stubProvider) Device() gpucontext.Device   { return nil }
func (stubProvider) Queue() gpucontext.Queue     { return nil }
func (stubProvider) Adapter() gpucontext.Adapter { return nil }
func (stubProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}
func (stubProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "stub"}
}

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.device != nil || o.provider != nil {
		t.Error("default options carry a device")
	}
	if o.chunk != batch.DefaultChunk {
		t.Errorf("chunk = %d, want %d", o.chunk, batch.DefaultChunk)
	}
	if o.scaleFactor != 1 {
		t.Errorf("scaleFactor = %v, want 1", o.scaleFactor)
	}
	if _, ok := o.triangulator.(tess.EarClip); !ok {
		t.Errorf("triangulator = %T, want tess.EarClip", o.triangulator)
	}
}

func TestOptionsIgnoreInvalid(t *testing.T) {
	o := defaultOptions()
	WithChunk(0)(&o)
	WithChunk(-5)(&o)
	WithTriangulator(nil)(&o)
	if o.chunk != batch.DefaultChunk {
		t.Errorf("chunk = %d after invalid WithChunk, want %d", o.chunk, batch.DefaultChunk)
	}
	if o.triangulator == nil {
		t.Error("WithTriangulator(nil) cleared the triangulator")
	}

	WithChunk(64)(&o)
	if o.chunk != 64 {
		t.Errorf("chunk = %d, want 64", o.chunk)
	}
}

func TestWithTriangulator(t *testing.T) {
	tri := &countingTriangulator{}
	c, err := NewCanvas(40, 40, WithDevice(newRecordingDevice(40, 40)), WithTriangulator(tri))
	if err != nil {
		t.Fatalf("NewCanvas() error = %v", err)
	}
	defer c.Close()

	style := new(PathStyle).SetFace(Red)
	if err := c.DrawPath(rect(5, 5, 30, 30), style, geom.NoClip); err != nil {
		t.Fatalf("DrawPath() error = %v", err)
	}
	if tri.polygons != 1 {
		t.Errorf("triangulated %d polygons, want 1", tri.polygons)
	}
}

func TestWithProvider(t *testing.T) {
	var got gpucontext.DeviceProvider
	backend.Register(backend.BackendWGPU, func(cfg backend.Config) (batch.Backend, error) {
		got = cfg.Provider
		return newRecordingDevice(cfg.Width, cfg.Height), nil
	})
	t.Cleanup(func() { backend.Unregister(backend.BackendWGPU) })

	c, err := NewCanvas(10, 10, WithProvider(stubProvider{}))
	if err != nil {
		t.Fatalf("NewCanvas() error = %v", err)
	}
	defer c.Close()

	if _, ok := got.(stubProvider); !ok {
		t.Errorf("factory saw provider %T, want stubProvider", got)
	}
	if _, ok := c.Device().(*recordingDevice); !ok {
		t.Errorf("Device() = %T, want *recordingDevice", c.Device())
	}
}
