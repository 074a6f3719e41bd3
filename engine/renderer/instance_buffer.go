package renderer

import (
	"fmt"

	"github.com/fredizzimo/vide/common"
	"github.com/fredizzimo/vide/engine/renderer/gpu"
)

// InstanceBuffer is a growable per-instance vertex stream of fixed-size
// records. It contributes a vertex buffer layout with instance step mode
// through the Reference contract and no binding slot, so growing it never
// invalidates a bind group.
type InstanceBuffer[T any] struct {
	BaseReference

	device gpu.Device
	queue  gpu.Queue
	label  string

	attributes []gpu.VertexAttribute
	buffer     gpu.Buffer
	count      int
}

// NewInstanceBuffer creates an instance stream for records of type T with the
// given attribute layout. Attribute offsets are relative to one record; the
// stride is the size of T.
//
// Parameters:
//   - device: the device the buffer is created on
//   - queue: the queue uploads go through
//   - label: the buffer's debug label
//   - capacity: initial capacity in instances
//   - attributes: the per-instance vertex attributes
//
// Returns:
//   - *InstanceBuffer[T]: the created buffer
//   - error: GPU allocation failure
func NewInstanceBuffer[T any](device gpu.Device, queue gpu.Queue, label string, capacity int, attributes []gpu.VertexAttribute) (*InstanceBuffer[T], error) {
	b := &InstanceBuffer[T]{
		device:     device,
		queue:      queue,
		label:      label,
		attributes: attributes,
	}
	if err := b.allocate(capacity); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *InstanceBuffer[T]) allocate(capacity int) error {
	if capacity < 1 {
		capacity = 1
	}
	buffer, err := b.device.CreateBuffer(&gpu.BufferDescriptor{
		Label: b.label,
		Size:  uint64(capacity) * uint64(common.SizeOf[T]()),
		Usage: gpu.BufferUsageVertex | gpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("failed to create instance buffer %s: %w", b.label, err)
	}
	if b.buffer != nil {
		b.buffer.Release()
	}
	b.buffer = buffer
	return nil
}

// Update uploads the given instances, growing the buffer when they do not fit.
//
// Parameters:
//   - instances: the instance records
//
// Returns:
//   - error: GPU allocation failure while growing
func (b *InstanceBuffer[T]) Update(instances []T) error {
	needed := uint64(len(instances)) * uint64(common.SizeOf[T]())
	if needed > b.buffer.Size() {
		capacity := int(b.buffer.Size() / uint64(common.SizeOf[T]()))
		if capacity < 1 {
			capacity = 1
		}
		for uint64(capacity)*uint64(common.SizeOf[T]()) < needed {
			capacity *= 2
		}
		if err := b.allocate(capacity); err != nil {
			return err
		}
	}
	if len(instances) > 0 {
		b.queue.WriteBuffer(b.buffer, 0, common.SliceToBytes(instances))
	}
	b.count = len(instances)
	return nil
}

// Count returns the number of instances last uploaded.
func (b *InstanceBuffer[T]) Count() int {
	return b.count
}

// Bind sets the buffer on the given vertex slot. Called by the owning
// drawable's Draw before it issues instanced draws.
//
// Parameters:
//   - pass: the active render pass
//   - slot: the vertex buffer slot matching this stream's pipeline position
func (b *InstanceBuffer[T]) Bind(pass gpu.RenderPass, slot uint32) {
	pass.SetVertexBuffer(slot, b.buffer)
}

// Vertex contributes the per-instance stream layout.
func (b *InstanceBuffer[T]) Vertex() *gpu.VertexBufferLayout {
	return &gpu.VertexBufferLayout{
		ArrayStride: uint64(common.SizeOf[T]()),
		StepMode:    gpu.VertexStepModeInstance,
		Attributes:  b.attributes,
	}
}

// Release frees the GPU buffer.
func (b *InstanceBuffer[T]) Release() {
	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
}
