package batch

import "fmt"

// Kind identifies the pipeline an item is drawn with. The set is closed.
type Kind uint8

const (
	// KindMesh draws per-vertex colored triangles with an affine style.
	KindMesh Kind = iota
	// KindShape draws solid triangles with an affine and color style.
	KindShape
	// KindCurve draws quadratic curve fills with an affine and color style.
	KindCurve
)

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindShape:
		return "shape"
	case KindCurve:
		return "curve"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Usage describes how a GPU buffer is bound.
type Usage uint8

const (
	UsageVertex Usage = 1 << iota
	UsageIndex
	UsageInstance
)

// BufferID identifies a GPU buffer owned by a Device.
type BufferID uint32

// Device allocates and fills GPU buffers.
type Device interface {
	CreateBuffer(label string, usage Usage, size int) (BufferID, error)
	WriteBuffer(id BufferID, offset int, data []byte) error
	DestroyBuffer(id BufferID)
}

// Scissor is a pixel rectangle in target coordinates, origin top-left.
type Scissor struct {
	X, Y          uint32
	Width, Height uint32
	Enabled       bool
}

// DrawCall is one indexed, instanced draw of an item.
//
// Indices are relative to BaseVertex. Instances FirstInstance through
// FirstInstance+InstanceCount-1 read consecutive style records.
type DrawCall struct {
	Kind     Kind
	Vertices BufferID
	Indices  BufferID
	Styles   BufferID

	BaseVertex    uint32
	FirstIndex    uint32
	IndexCount    uint32
	FirstInstance uint32
	InstanceCount uint32

	Scissor Scissor
}

// Pass records draw calls into a render target.
type Pass interface {
	Draw(call DrawCall) error
}

// Frame is a Pass that submits its recorded draws on End.
type Frame interface {
	Pass
	End() error
}

// Backend is a Device that can also open frames on its render target.
type Backend interface {
	Device
	BeginFrame() (Frame, error)
	Size() (width, height int)
}
