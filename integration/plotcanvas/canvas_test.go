package plotcanvas

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/plotgpu"
	"github.com/gogpu/plotgpu/backend/software"
	"github.com/gogpu/plotgpu/batch"
	"github.com/gogpu/plotgpu/geom"
	"github.com/gogpu/plotgpu/path"
)

// mockProvider implements gpucontext.DeviceProvider for testing.
type mockProvider struct{}

func (m *mockProvider) Device() gpucontext.Device   { return nil }
func (m *mockProvider) Queue() gpucontext.Queue     { return nil }
func (m *mockProvider) Adapter() gpucontext.Adapter { return nil }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}
func (m *mockProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "mock", Type: gpucontext.AdapterTypeUnknown}
}

// mockTexture implements gpucontext.Texture and gpucontext.TextureUpdater.
type mockTexture struct {
	width, height int
	data          []byte
	updated       int
	destroyed     bool
	premultiplied bool
}

func (m *mockTexture) Width() int  { return m.width }
func (m *mockTexture) Height() int { return m.height }

func (m *mockTexture) UpdateData(data []byte) error {
	m.data = append(m.data[:0], data...)
	m.updated++
	return nil
}

func (m *mockTexture) Destroy()                 { m.destroyed = true }
func (m *mockTexture) SetPremultiplied(pm bool) { m.premultiplied = pm }

// fixedTexture cannot be updated in place.
type fixedTexture struct {
	mockTexture
}

func (f *fixedTexture) UpdateData([]byte) {}

// mockCreator implements gpucontext.TextureCreator.
type mockCreator struct {
	textures []gpucontext.Texture
	failNext bool
	fixed    bool
}

func (m *mockCreator) NewTextureFromRGBA(width, height int, data []byte) (gpucontext.Texture, error) {
	if m.failNext {
		m.failNext = false
		return nil, errors.New("mock texture creation failed")
	}
	tex := &mockTexture{width: width, height: height, data: append([]byte(nil), data...)}
	if m.fixed {
		f := &fixedTexture{mockTexture: *tex}
		m.textures = append(m.textures, f)
		return f, nil
	}
	m.textures = append(m.textures, tex)
	return tex, nil
}

// mockDrawer implements gpucontext.TextureDrawer.
type mockDrawer struct {
	creator   *mockCreator
	drawn     gpucontext.Texture
	x, y      float32
	drawCount int
}

func (m *mockDrawer) DrawTexture(tex gpucontext.Texture, x, y float32) error {
	m.drawn, m.x, m.y = tex, x, y
	m.drawCount++
	return nil
}

func (m *mockDrawer) TextureCreator() gpucontext.TextureCreator {
	if m.creator == nil {
		return nil
	}
	return m.creator
}

// blindDevice is a backend without a readable image.
type blindDevice struct{}

func (blindDevice) CreateBuffer(string, batch.Usage, int) (batch.BufferID, error) { return 1, nil }
func (blindDevice) WriteBuffer(batch.BufferID, int, []byte) error                 { return nil }
func (blindDevice) DestroyBuffer(batch.BufferID)                                  {}
func (blindDevice) BeginFrame() (batch.Frame, error)                              { return nil, nil }
func (blindDevice) Size() (int, int)                                              { return 1, 1 }

func newSurface(t *testing.T, w, h int) *Surface {
	t.Helper()
	s, err := New(&mockProvider{}, w, h, plotgpu.WithDevice(software.New(w, h)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func drawRect(c *plotgpu.Canvas) error {
	r := path.Rect[path.Canvas](geom.Pt(20, 20), geom.Pt(80, 60))
	return c.DrawPath(r, new(plotgpu.PathStyle).SetFace(plotgpu.Red), geom.NoClip)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		provider gpucontext.DeviceProvider
		width    int
		height   int
		wantErr  error
	}{
		{"nil provider", nil, 800, 600, ErrNilProvider},
		{"zero width", &mockProvider{}, 0, 600, ErrInvalidDimensions},
		{"negative height", &mockProvider{}, 800, -1, ErrInvalidDimensions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.provider, tt.width, tt.height); !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	s := newSurface(t, 80, 60)
	if w, h := s.Size(); w != 80 || h != 60 {
		t.Errorf("Size() = %dx%d, want 80x60", w, h)
	}
	if s.Canvas() == nil {
		t.Error("Canvas() = nil")
	}
	if !s.IsDirty() {
		t.Error("IsDirty() = false, want true (newly created)")
	}
	if s.Texture() != nil {
		t.Error("Texture() before upload is not nil")
	}
}

func TestNewDefaultBackend(t *testing.T) {
	s, err := New(&mockProvider{}, 16, 8)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()
	if _, ok := s.Canvas().Device().(*software.Backend); !ok {
		t.Errorf("Device() = %T, want *software.Backend", s.Canvas().Device())
	}
}

func TestNewNoReadback(t *testing.T) {
	_, err := New(&mockProvider{}, 1, 1, plotgpu.WithDevice(blindDevice{}))
	if !errors.Is(err, ErrNoReadback) {
		t.Errorf("New(blind device) error = %v, want ErrNoReadback", err)
	}
}

func TestMustNew(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew(nil) did not panic")
		}
	}()
	MustNew(nil, 10, 10)
}

func TestRenderToCreatesTexture(t *testing.T) {
	s := newSurface(t, 100, 100)
	if err := s.Draw(drawRect); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	creator := &mockCreator{}
	dc := &mockDrawer{creator: creator}
	if err := s.RenderAt(dc, 5, 7); err != nil {
		t.Fatalf("RenderAt() error = %v", err)
	}

	if len(creator.textures) != 1 {
		t.Fatalf("created %d textures, want 1", len(creator.textures))
	}
	tex := creator.textures[0].(*mockTexture)
	if tex.width != 100 || tex.height != 100 {
		t.Errorf("texture size = %dx%d, want 100x100", tex.width, tex.height)
	}
	if !tex.premultiplied {
		t.Error("texture not marked premultiplied")
	}
	i := (50*100 + 30) * 4
	if got := (color.RGBA{tex.data[i], tex.data[i+1], tex.data[i+2], tex.data[i+3]}); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("texture pixel (30, 50) = %v, want red", got)
	}
	if dc.drawn != tex || dc.x != 5 || dc.y != 7 {
		t.Errorf("drew %v at (%v, %v), want texture at (5, 7)", dc.drawn, dc.x, dc.y)
	}
	if s.IsDirty() {
		t.Error("IsDirty() after render = true")
	}
}

func TestRenderToUpdatesWhenDirty(t *testing.T) {
	s := newSurface(t, 100, 100)
	creator := &mockCreator{}
	dc := &mockDrawer{creator: creator}

	if err := s.RenderTo(dc); err != nil {
		t.Fatalf("RenderTo() error = %v", err)
	}
	if err := s.RenderTo(dc); err != nil {
		t.Fatalf("RenderTo() error = %v", err)
	}
	tex := creator.textures[0].(*mockTexture)
	if tex.updated != 0 {
		t.Errorf("clean surface uploaded %d times", tex.updated)
	}

	if err := s.Draw(drawRect); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if err := s.RenderTo(dc); err != nil {
		t.Fatalf("RenderTo() error = %v", err)
	}
	if tex.updated != 1 {
		t.Errorf("UpdateData called %d times, want 1", tex.updated)
	}
	if len(creator.textures) != 1 {
		t.Errorf("created %d textures, want 1", len(creator.textures))
	}
	if dc.drawCount != 3 {
		t.Errorf("drawCount = %d, want 3", dc.drawCount)
	}
}

func TestRenderToFixedTextureRecreated(t *testing.T) {
	s := newSurface(t, 10, 10)
	creator := &mockCreator{fixed: true}
	dc := &mockDrawer{creator: creator}

	if err := s.RenderTo(dc); err != nil {
		t.Fatalf("RenderTo() error = %v", err)
	}
	s.MarkDirty()
	if err := s.RenderTo(dc); err != nil {
		t.Fatalf("RenderTo() error = %v", err)
	}
	if len(creator.textures) != 2 {
		t.Fatalf("created %d textures, want 2", len(creator.textures))
	}
	if !creator.textures[0].(*fixedTexture).destroyed {
		t.Error("replaced texture not destroyed")
	}
}

func TestResizeRecreatesTexture(t *testing.T) {
	s := newSurface(t, 100, 100)
	creator := &mockCreator{}
	dc := &mockDrawer{creator: creator}
	if err := s.RenderTo(dc); err != nil {
		t.Fatalf("RenderTo() error = %v", err)
	}

	if err := s.Resize(100, 100); err != nil {
		t.Fatalf("Resize(same) error = %v", err)
	}
	if s.IsDirty() {
		t.Error("Resize to the same size marked the surface dirty")
	}
	if err := s.Resize(0, 10); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Resize(0, 10) error = %v, want ErrInvalidDimensions", err)
	}

	if err := s.Resize(50, 40); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if _, err := s.Upload(); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	old := creator.textures[0].(*mockTexture)
	if old.destroyed {
		t.Error("old texture destroyed before its replacement exists")
	}

	if err := s.RenderTo(dc); err != nil {
		t.Fatalf("RenderTo() error = %v", err)
	}
	if !old.destroyed {
		t.Error("old texture not destroyed after replacement")
	}
	tex := creator.textures[1].(*mockTexture)
	if tex.width != 50 || tex.height != 40 || len(tex.data) != 50*40*4 {
		t.Errorf("new texture = %dx%d with %d bytes, want 50x40", tex.width, tex.height, len(tex.data))
	}
}

func TestRenderToErrors(t *testing.T) {
	s := newSurface(t, 10, 10)

	if err := s.RenderTo(&mockDrawer{}); !errors.Is(err, ErrInvalidRenderer) {
		t.Errorf("RenderTo(no creator) error = %v, want ErrInvalidRenderer", err)
	}

	creator := &mockCreator{failNext: true}
	if err := s.RenderTo(&mockDrawer{creator: creator}); err == nil {
		t.Error("RenderTo() with failing creator error = nil")
	}
	if err := s.RenderTo(&mockDrawer{creator: creator}); err != nil {
		t.Errorf("RenderTo() retry error = %v", err)
	}
}

func TestDrawJoinsErrors(t *testing.T) {
	s := newSurface(t, 10, 10)
	boom := errors.New("boom")
	err := s.Draw(func(*plotgpu.Canvas) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("Draw() error = %v, want boom", err)
	}
	if !s.IsDirty() {
		t.Error("IsDirty() after failed Draw = false")
	}
}

func TestClose(t *testing.T) {
	s := newSurface(t, 10, 10)
	creator := &mockCreator{}
	if err := s.RenderTo(&mockDrawer{creator: creator}); err != nil {
		t.Fatalf("RenderTo() error = %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if !creator.textures[0].(*mockTexture).destroyed {
		t.Error("texture not destroyed by Close")
	}
	if s.Canvas() != nil || s.Provider() != nil {
		t.Error("closed surface still exposes its canvas or provider")
	}

	if err := s.Draw(drawRect); !errors.Is(err, ErrSurfaceClosed) {
		t.Errorf("Draw() error = %v, want ErrSurfaceClosed", err)
	}
	if err := s.Resize(20, 20); !errors.Is(err, ErrSurfaceClosed) {
		t.Errorf("Resize() error = %v, want ErrSurfaceClosed", err)
	}
	if _, err := s.Upload(); !errors.Is(err, ErrSurfaceClosed) {
		t.Errorf("Upload() error = %v, want ErrSurfaceClosed", err)
	}
	if err := s.RenderTo(&mockDrawer{creator: creator}); !errors.Is(err, ErrSurfaceClosed) {
		t.Errorf("RenderTo() error = %v, want ErrSurfaceClosed", err)
	}
}
