package renderer

import (
	"fmt"

	"github.com/fredizzimo/vide/common"
	"github.com/fredizzimo/vide/engine/renderer/gpu"
)

// GeometryBuffer is a growable read-only storage buffer of packed floats,
// typically quad geometry indexed by the vertex shader. It contributes one
// binding slot through the Reference contract.
//
// Growing replaces the underlying GPU buffer. The bind group built at
// registration keeps referencing the old buffer, so a drawable that lets its
// geometry grow must be re-registered (or sized generously up front).
type GeometryBuffer struct {
	BaseReference

	device gpu.Device
	queue  gpu.Queue
	label  string

	buffer gpu.Buffer
	length int
}

// NewGeometryBuffer creates a storage buffer with capacity for the given
// number of floats.
//
// Parameters:
//   - device: the device the buffer is created on
//   - queue: the queue uploads go through
//   - label: the buffer's debug label
//   - capacity: initial capacity in floats
//
// Returns:
//   - *GeometryBuffer: the created buffer
//   - error: GPU allocation failure
func NewGeometryBuffer(device gpu.Device, queue gpu.Queue, label string, capacity int) (*GeometryBuffer, error) {
	g := &GeometryBuffer{
		device: device,
		queue:  queue,
		label:  label,
	}
	if err := g.allocate(capacity); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *GeometryBuffer) allocate(capacity int) error {
	if capacity < 1 {
		capacity = 1
	}
	buffer, err := g.device.CreateBuffer(&gpu.BufferDescriptor{
		Label: g.label,
		Size:  uint64(capacity) * uint64(common.SizeOf[float32]()),
		Usage: gpu.BufferUsageStorage | gpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("failed to create geometry buffer %s: %w", g.label, err)
	}
	if g.buffer != nil {
		g.buffer.Release()
	}
	g.buffer = buffer
	return nil
}

// Update uploads the given geometry, growing the buffer when it does not fit.
//
// Parameters:
//   - data: the packed geometry floats
//
// Returns:
//   - bool: true if the underlying buffer was replaced
//   - error: GPU allocation failure while growing
func (g *GeometryBuffer) Update(data []float32) (bool, error) {
	grown := false
	needed := uint64(len(data)) * uint64(common.SizeOf[float32]())
	if needed > g.buffer.Size() {
		capacity := int(g.buffer.Size()) / int(common.SizeOf[float32]())
		for uint64(capacity)*uint64(common.SizeOf[float32]()) < needed {
			capacity *= 2
		}
		if err := g.allocate(capacity); err != nil {
			return false, err
		}
		grown = true
	}
	if len(data) > 0 {
		g.queue.WriteBuffer(g.buffer, 0, common.SliceToBytes(data))
	}
	g.length = len(data)
	return grown, nil
}

// Len returns the number of floats last uploaded.
func (g *GeometryBuffer) Len() int {
	return g.length
}

// Layout contributes a read-only storage slot visible to the vertex and
// fragment stages.
func (g *GeometryBuffer) Layout() *gpu.BindGroupLayoutEntry {
	return &gpu.BindGroupLayoutEntry{
		Visibility: gpu.ShaderStageVertex | gpu.ShaderStageFragment,
		Buffer:     &gpu.BufferBindingLayout{Type: gpu.BufferBindingTypeReadOnlyStorage},
	}
}

// Entry binds the whole buffer.
func (g *GeometryBuffer) Entry() *gpu.BindGroupEntry {
	return &gpu.BindGroupEntry{
		Buffer: g.buffer,
		Offset: 0,
		Size:   gpu.WholeSize,
	}
}

// Release frees the GPU buffer.
func (g *GeometryBuffer) Release() {
	if g.buffer != nil {
		g.buffer.Release()
		g.buffer = nil
	}
}
