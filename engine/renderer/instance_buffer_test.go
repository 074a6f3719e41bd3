package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredizzimo/vide/engine/renderer/gpu"
)

type spriteInstance struct {
	Position [2]float32
	Size     [2]float32
}

var spriteAttributes = []gpu.VertexAttribute{
	{Format: gpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
	{Format: gpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
}

func TestInstanceBufferContributesVertexStreamOnly(t *testing.T) {
	device := newMockDevice()
	queue := &mockQueue{rec: device.rec}

	b, err := NewInstanceBuffer[spriteInstance](device, queue, "sprites", 4, spriteAttributes)
	require.NoError(t, err)

	assert.Nil(t, b.Layout())
	assert.Nil(t, b.Entry())

	v := b.Vertex()
	require.NotNil(t, v)
	assert.Equal(t, uint64(16), v.ArrayStride)
	assert.Equal(t, gpu.VertexStepModeInstance, v.StepMode)
	assert.Equal(t, spriteAttributes, v.Attributes)
}

func TestInstanceBufferUploadAndGrow(t *testing.T) {
	device := newMockDevice()
	queue := &mockQueue{rec: device.rec}

	b, err := NewInstanceBuffer[spriteInstance](device, queue, "sprites", 2, spriteAttributes)
	require.NoError(t, err)

	require.NoError(t, b.Update(make([]spriteInstance, 2)))
	assert.Equal(t, 2, b.Count())
	require.Len(t, device.bufferSizes, 1)

	require.NoError(t, b.Update(make([]spriteInstance, 5)))
	assert.Equal(t, 5, b.Count())
	require.Len(t, device.bufferSizes, 2)
	assert.Equal(t, uint64(8*16), device.bufferSizes[1])
}

func TestInstanceBufferBindsVertexSlot(t *testing.T) {
	device := newMockDevice()
	queue := &mockQueue{rec: device.rec}

	b, err := NewInstanceBuffer[spriteInstance](device, queue, "sprites", 2, spriteAttributes)
	require.NoError(t, err)

	rec := &recorder{}
	b.Bind(&mockPass{rec: rec}, 0)
	assert.Equal(t, []string{"SetVertexBuffer 0"}, rec.log)
}
