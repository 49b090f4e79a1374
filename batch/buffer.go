package batch

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/plotgpu/geom"
)

// Errors returned by Flush.
var (
	// ErrBufferCreate is returned when the device cannot allocate a buffer.
	ErrBufferCreate = errors.New("batch: failed to create GPU buffer")

	// ErrBufferWrite is returned when the device rejects an upload.
	ErrBufferWrite = errors.New("batch: failed to write GPU buffer")
)

// Item is the range of a buffer drawn by one draw call.
type Item struct {
	VertexStart, VertexEnd uint32
	IndexStart, IndexEnd   uint32
	StyleStart, StyleEnd   uint32
	Scissor                Scissor
}

// Empty reports whether drawing the item would produce nothing.
func (it Item) Empty() bool {
	return it.VertexEnd <= it.VertexStart ||
		it.IndexEnd <= it.IndexStart ||
		it.StyleEnd <= it.StyleStart
}

type itemState uint8

const (
	itemIdle itemState = iota
	itemOpen
	itemFinished
)

// gpuBuffers are the device-side mirrors of the backing arrays.
type gpuBuffers struct {
	dev       Device
	vertices  BufferID
	indices   BufferID
	styles    BufferID
	allocated bool
}

// Buffer accumulates items of vertex type V and style type S.
//
// Buffer is not safe for concurrent use.
type Buffer[V, S any] struct {
	kind   Kind
	label  string
	vl     Layout[V]
	sl     Layout[S]
	chunk  int
	logger *slog.Logger

	vertices []V
	indices  []uint32
	styles   []S

	vertexOffset int
	indexOffset  int
	styleOffset  int

	items []Item
	item  Item
	state itemState

	capacityChanged bool
	contentsChanged bool

	gpu     gpuBuffers
	staging []byte
}

// New creates a buffer drawn with pipeline kind, encoding vertices with
// vl and styles with sl.
func New[V, S any](kind Kind, vl Layout[V], sl Layout[S], opts ...Option) *Buffer[V, S] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.label == "" {
		o.label = kind.String()
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	return &Buffer[V, S]{
		kind:     kind,
		label:    o.label,
		vl:       vl,
		sl:       sl,
		chunk:    o.chunk,
		logger:   o.logger,
		vertices: make([]V, o.initial),
		indices:  make([]uint32, o.initial),
		styles:   make([]S, o.initial),
	}
}

// NewMeshBuffer creates a buffer of per-vertex colored triangles.
func NewMeshBuffer(opts ...Option) *Buffer[MeshVertex, geom.Affine2D] {
	return New(KindMesh, MeshLayout{}, AffineLayout{}, opts...)
}

// NewShapeBuffer creates a buffer of solid triangles.
func NewShapeBuffer(opts ...Option) *Buffer[geom.Point, ColorStyle] {
	return New(KindShape, PointLayout{}, ColorStyleLayout{}, opts...)
}

// NewCurveBuffer creates a buffer of quadratic curve fills.
func NewCurveBuffer(opts ...Option) *Buffer[CurveVertex, ColorStyle] {
	return New(KindCurve, CurveLayout{}, ColorStyleLayout{}, opts...)
}

// SetLogger replaces the logger. nil disables logging.
func (b *Buffer[V, S]) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	b.logger = l
}

// Kind returns the pipeline kind of the buffer.
func (b *Buffer[V, S]) Kind() Kind { return b.kind }

// Clear resets the write cursors and drops all items. Capacity is kept.
func (b *Buffer[V, S]) Clear() {
	b.vertexOffset = 0
	b.indexOffset = 0
	b.styleOffset = 0
	b.items = b.items[:0]
	b.item = Item{}
	b.state = itemIdle
}

// StartItem opens a new item clipped to sc. Geometry pushed into a
// previous item that was never finished is abandoned.
func (b *Buffer[V, S]) StartItem(sc Scissor) {
	b.item = Item{
		VertexStart: uint32(b.vertexOffset),
		IndexStart:  uint32(b.indexOffset),
		StyleStart:  uint32(b.styleOffset),
		Scissor:     sc,
	}
	b.state = itemOpen
}

// PushVertex appends a vertex to the open item and returns its index
// relative to the item start.
func (b *Buffer[V, S]) PushVertex(v V) uint32 {
	b.mustOpen()
	if b.vertexOffset == len(b.vertices) {
		b.vertices = append(b.vertices, make([]V, b.chunk)...)
		b.capacityChanged = true
	}
	b.vertices[b.vertexOffset] = v
	b.vertexOffset++
	b.contentsChanged = true
	return uint32(b.vertexOffset) - 1 - b.item.VertexStart
}

// PushTriangle appends a triangle of item-relative vertex indices. It
// panics if an index does not name a vertex already pushed into the
// open item.
func (b *Buffer[V, S]) PushTriangle(v0, v1, v2 uint32) {
	b.mustOpen()
	n := uint32(b.vertexOffset) - b.item.VertexStart
	if v0 >= n || v1 >= n || v2 >= n {
		panic(fmt.Sprintf("batch: triangle (%d, %d, %d) out of range for %d vertices", v0, v1, v2, n))
	}
	for b.indexOffset+3 > len(b.indices) {
		b.indices = append(b.indices, make([]uint32, b.chunk)...)
		b.capacityChanged = true
	}
	b.indices[b.indexOffset] = v0
	b.indices[b.indexOffset+1] = v1
	b.indices[b.indexOffset+2] = v2
	b.indexOffset += 3
	b.contentsChanged = true
}

// FinishItem closes the open item with style. On an already finished
// item it adds another instance with the new style.
func (b *Buffer[V, S]) FinishItem(style S) {
	switch b.state {
	case itemIdle:
		panic("batch: FinishItem without StartItem")
	case itemOpen:
		b.item.VertexEnd = uint32(b.vertexOffset)
		b.item.IndexEnd = uint32(b.indexOffset)
		b.pushStyle(style)
		b.item.StyleEnd = uint32(b.styleOffset)
		b.items = append(b.items, b.item)
		b.state = itemFinished
	case itemFinished:
		b.pushStyle(style)
		b.items[len(b.items)-1].StyleEnd = uint32(b.styleOffset)
	}
}

func (b *Buffer[V, S]) pushStyle(s S) {
	if b.styleOffset == len(b.styles) {
		b.styles = append(b.styles, make([]S, b.chunk)...)
		b.capacityChanged = true
	}
	b.styles[b.styleOffset] = s
	b.styleOffset++
	b.contentsChanged = true
}

func (b *Buffer[V, S]) mustOpen() {
	if b.state != itemOpen {
		panic("batch: push outside of an open item")
	}
}

// Items returns the finished items waiting for Flush.
func (b *Buffer[V, S]) Items() []Item { return b.items }

// Offsets returns the vertex, index and style write cursors.
func (b *Buffer[V, S]) Offsets() (vertices, indices, styles int) {
	return b.vertexOffset, b.indexOffset, b.styleOffset
}

// Capacity returns the lengths of the backing arrays.
func (b *Buffer[V, S]) Capacity() (vertices, indices, styles int) {
	return len(b.vertices), len(b.indices), len(b.styles)
}

// Dirty returns the capacity-changed and contents-changed flags.
func (b *Buffer[V, S]) Dirty() (capacity, contents bool) {
	return b.capacityChanged, b.contentsChanged
}

// Vertex returns the vertex at absolute index i.
func (b *Buffer[V, S]) Vertex(i int) V { return b.vertices[i] }

// Flush makes the device buffers current and draws every finished item
// into pass, in finish order. The item list is drained even on error.
//
// Device buffers are recreated when capacity grew or dev changed, and
// rewritten when contents changed since the last upload.
func (b *Buffer[V, S]) Flush(dev Device, pass Pass) error {
	if len(b.items) == 0 {
		return nil
	}
	defer func() { b.items = b.items[:0] }()

	if b.capacityChanged || !b.gpu.allocated || b.gpu.dev != dev {
		if err := b.allocate(dev); err != nil {
			return err
		}
		b.capacityChanged = false
		b.contentsChanged = true
	}

	if b.contentsChanged {
		if err := b.upload(); err != nil {
			return err
		}
		b.contentsChanged = false
	}

	drawn := 0
	for _, it := range b.items {
		if it.Empty() {
			continue
		}
		call := DrawCall{
			Kind:          b.kind,
			Vertices:      b.gpu.vertices,
			Indices:       b.gpu.indices,
			Styles:        b.gpu.styles,
			BaseVertex:    it.VertexStart,
			FirstIndex:    it.IndexStart,
			IndexCount:    it.IndexEnd - it.IndexStart,
			FirstInstance: it.StyleStart,
			InstanceCount: it.StyleEnd - it.StyleStart,
			Scissor:       it.Scissor,
		}
		if err := pass.Draw(call); err != nil {
			return fmt.Errorf("batch: draw %s item: %w", b.label, err)
		}
		drawn++
	}

	b.logger.Debug("batch: flushed",
		slog.String("buffer", b.label),
		slog.Int("items", len(b.items)),
		slog.Int("draws", drawn))
	return nil
}

// Release destroys the device buffers. The next Flush recreates them.
func (b *Buffer[V, S]) Release() {
	if !b.gpu.allocated {
		return
	}
	b.gpu.dev.DestroyBuffer(b.gpu.vertices)
	b.gpu.dev.DestroyBuffer(b.gpu.indices)
	b.gpu.dev.DestroyBuffer(b.gpu.styles)
	b.gpu = gpuBuffers{}
}

func (b *Buffer[V, S]) allocate(dev Device) error {
	b.Release()

	vsize := len(b.vertices) * b.vl.Stride()
	isize := len(b.indices) * IndexStride
	ssize := len(b.styles) * b.sl.Stride()

	vid, err := dev.CreateBuffer(b.label+"_vertices", UsageVertex, vsize)
	if err != nil {
		return fmt.Errorf("%w: %s vertices: %w", ErrBufferCreate, b.label, err)
	}
	iid, err := dev.CreateBuffer(b.label+"_indices", UsageIndex, isize)
	if err != nil {
		dev.DestroyBuffer(vid)
		return fmt.Errorf("%w: %s indices: %w", ErrBufferCreate, b.label, err)
	}
	sid, err := dev.CreateBuffer(b.label+"_styles", UsageInstance, ssize)
	if err != nil {
		dev.DestroyBuffer(vid)
		dev.DestroyBuffer(iid)
		return fmt.Errorf("%w: %s styles: %w", ErrBufferCreate, b.label, err)
	}

	b.gpu = gpuBuffers{dev: dev, vertices: vid, indices: iid, styles: sid, allocated: true}
	b.logger.Debug("batch: allocated device buffers",
		slog.String("buffer", b.label),
		slog.Int("vertex_bytes", vsize),
		slog.Int("index_bytes", isize),
		slog.Int("style_bytes", ssize))
	return nil
}

func (b *Buffer[V, S]) upload() error {
	dev := b.gpu.dev

	data := b.stage(b.vertexOffset * b.vl.Stride())
	for i, v := range b.vertices[:b.vertexOffset] {
		b.vl.Put(data[i*b.vl.Stride():], v)
	}
	if err := write(dev, b.gpu.vertices, data); err != nil {
		return fmt.Errorf("%w: %s vertices: %w", ErrBufferWrite, b.label, err)
	}

	data = b.stage(b.indexOffset * IndexStride)
	for i, idx := range b.indices[:b.indexOffset] {
		putU32(data[i*IndexStride:], idx)
	}
	if err := write(dev, b.gpu.indices, data); err != nil {
		return fmt.Errorf("%w: %s indices: %w", ErrBufferWrite, b.label, err)
	}

	data = b.stage(b.styleOffset * b.sl.Stride())
	for i, s := range b.styles[:b.styleOffset] {
		b.sl.Put(data[i*b.sl.Stride():], s)
	}
	if err := write(dev, b.gpu.styles, data); err != nil {
		return fmt.Errorf("%w: %s styles: %w", ErrBufferWrite, b.label, err)
	}
	return nil
}

// stage returns the reusable staging slice resized to n bytes.
func (b *Buffer[V, S]) stage(n int) []byte {
	if cap(b.staging) < n {
		b.staging = make([]byte, n)
	}
	b.staging = b.staging[:n]
	return b.staging
}

func write(dev Device, id BufferID, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return dev.WriteBuffer(id, 0, data)
}
