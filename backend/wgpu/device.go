//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/plotgpu/batch"
)

// convertUsage maps batch usages to HAL usages. Instance records are
// read through a vertex buffer slot.
func convertUsage(u batch.Usage) gputypes.BufferUsage {
	result := gputypes.BufferUsageCopyDst
	if u&(batch.UsageVertex|batch.UsageInstance) != 0 {
		result |= gputypes.BufferUsageVertex
	}
	if u&batch.UsageIndex != 0 {
		result |= gputypes.BufferUsageIndex
	}
	return result
}

// alignedSize rounds a buffer size up to a non-zero multiple of four,
// as queue writes require.
func alignedSize(size int) uint64 {
	return uint64(max(4, (size+3)&^3))
}

// CreateBuffer creates a GPU buffer.
func (b *Backend) CreateBuffer(label string, usage batch.Usage, size int) (batch.BufferID, error) {
	if size < 0 {
		return 0, fmt.Errorf("wgpu: negative buffer size %d", size)
	}

	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  alignedSize(size),
		Usage: convertUsage(usage),
	})
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", label, err)
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.buffers[id] = buf
	b.mu.Unlock()

	return id, nil
}

// WriteBuffer uploads data into the buffer at offset.
func (b *Backend) WriteBuffer(id batch.BufferID, offset int, data []byte) error {
	buf, err := b.buffer(id)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if err := b.queue.WriteBuffer(buf, uint64(offset), data); err != nil {
		return fmt.Errorf("write buffer %d: %w", id, err)
	}
	return nil
}

// DestroyBuffer releases a GPU buffer. Unknown IDs are ignored.
func (b *Backend) DestroyBuffer(id batch.BufferID) {
	b.mu.Lock()
	buf, ok := b.buffers[id]
	if ok {
		delete(b.buffers, id)
	}
	b.mu.Unlock()

	if ok {
		b.device.DestroyBuffer(buf)
	}
}

func (b *Backend) buffer(id batch.BufferID) (hal.Buffer, error) {
	b.mu.RLock()
	buf, ok := b.buffers[id]
	b.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBuffer, id)
	}
	return buf, nil
}
