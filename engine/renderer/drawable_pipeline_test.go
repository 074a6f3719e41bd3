package renderer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredizzimo/vide/engine/renderer/gpu"
)

func universalTestLayout(t *testing.T, device *mockDevice) gpu.BindGroupLayout {
	t.Helper()
	layout, err := device.CreateBindGroupLayout(&gpu.BindGroupLayoutDescriptor{
		Label: "universal bind group layout",
	})
	require.NoError(t, err)
	return layout
}

func TestBindGroupIndicesFollowFilteredOrder(t *testing.T) {
	device := newMockDevice()

	// Interleave non-contributing references with contributing ones; only
	// the contributing ones get binding slots, renumbered 0..N-1.
	texture := textureReference()
	buffer := bufferReference()
	d := &stubDrawable{
		name: "quad",
		refs: []Reference{&stubReference{}, texture, &stubReference{}, buffer},
	}

	dp := newDrawablePipeline(device, d)

	layout := dp.bindGroupLayout.(*mockBindGroupLayout)
	group := dp.bindGroup.(*mockBindGroup)
	require.Len(t, layout.entries, 2)
	require.Len(t, group.entries, 2)

	assert.Equal(t, uint32(0), layout.entries[0].Binding)
	assert.NotNil(t, layout.entries[0].Texture)
	assert.Equal(t, uint32(1), layout.entries[1].Binding)
	assert.NotNil(t, layout.entries[1].Buffer)

	assert.Equal(t, uint32(0), group.entries[0].Binding)
	assert.NotNil(t, group.entries[0].TextureView)
	assert.Equal(t, uint32(1), group.entries[1].Binding)
	assert.NotNil(t, group.entries[1].Buffer)
}

func TestNotReadyAfterConstruction(t *testing.T) {
	device := newMockDevice()
	dp := newDrawablePipeline(device, &stubDrawable{name: "quad", refs: []Reference{textureReference()}})
	assert.False(t, dp.ready())
}

func TestMismatchedReferencePanics(t *testing.T) {
	device := newMockDevice()

	layoutOnly := &stubReference{layout: textureReference().layout}
	assert.Panics(t, func() {
		newDrawablePipeline(device, &stubDrawable{name: "broken", refs: []Reference{layoutOnly}})
	})

	entryOnly := &stubReference{entry: textureReference().entry}
	assert.Panics(t, func() {
		newDrawablePipeline(device, &stubDrawable{name: "broken", refs: []Reference{entryOnly}})
	})
}

func TestBindGroupAllocationFailurePanics(t *testing.T) {
	device := newMockDevice()
	device.bindGroupLayoutErr = errors.New("out of memory")

	assert.Panics(t, func() {
		newDrawablePipeline(device, &stubDrawable{name: "quad", refs: []Reference{textureReference()}})
	})
}

func TestMissingShaderLeavesPipelineAbsent(t *testing.T) {
	device := newMockDevice()
	dp := newDrawablePipeline(device, &stubDrawable{name: "quad", refs: []Reference{textureReference()}})

	shaders := newTestModules(device) // no sources at all
	dp.createPipeline(device, shaders, gpu.TextureFormatBGRA8Unorm, universalTestLayout(t, device))

	assert.False(t, dp.ready())
	assert.Zero(t, device.pipelines)
}

func TestValidationFailureLeavesPipelineAbsent(t *testing.T) {
	device := newMockDevice()
	device.pipelineErr = errors.New("vertex shader entry point not found")
	dp := newDrawablePipeline(device, &stubDrawable{name: "quad", refs: []Reference{textureReference()}})

	dp.createPipeline(device, newTestModules(device, "quad"), gpu.TextureFormatBGRA8Unorm, universalTestLayout(t, device))

	assert.False(t, dp.ready())
}

func TestFailedRetryKeepsPreviousPipeline(t *testing.T) {
	device := newMockDevice()
	dp := newDrawablePipeline(device, &stubDrawable{name: "quad", refs: []Reference{textureReference()}})
	universal := universalTestLayout(t, device)

	dp.createPipeline(device, newTestModules(device, "quad"), gpu.TextureFormatBGRA8Unorm, universal)
	require.True(t, dp.ready())
	installed := dp.renderPipeline.(*mockPipeline)

	device.pipelineErr = errors.New("format mismatch")
	dp.createPipeline(device, newTestModules(device, "quad"), gpu.TextureFormatBGRA8Unorm, universal)

	assert.True(t, dp.ready())
	assert.Same(t, installed, dp.renderPipeline.(*mockPipeline))
	assert.False(t, installed.released)
}

func TestSuccessfulRetryReplacesPipeline(t *testing.T) {
	device := newMockDevice()
	dp := newDrawablePipeline(device, &stubDrawable{name: "quad", refs: []Reference{textureReference()}})
	universal := universalTestLayout(t, device)

	dp.createPipeline(device, newTestModules(device, "quad"), gpu.TextureFormatBGRA8Unorm, universal)
	first := dp.renderPipeline.(*mockPipeline)

	dp.createPipeline(device, newTestModules(device, "quad"), gpu.TextureFormatBGRA8Unorm, universal)

	assert.NotSame(t, first, dp.renderPipeline.(*mockPipeline))
	assert.True(t, first.released)
}

func TestVertexLayoutsCollectedIndependently(t *testing.T) {
	device := newMockDevice()

	instances := &stubReference{vertex: &gpu.VertexBufferLayout{
		ArrayStride: 32,
		StepMode:    gpu.VertexStepModeInstance,
		Attributes: []gpu.VertexAttribute{
			{Format: gpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 0},
		},
	}}
	d := &stubDrawable{name: "quad", refs: []Reference{textureReference(), instances}}
	dp := newDrawablePipeline(device, d)

	// The vertex-only reference takes no binding slot.
	assert.Len(t, dp.bindGroupLayout.(*mockBindGroupLayout).entries, 1)

	dp.createPipeline(device, newTestModules(device, "quad"), gpu.TextureFormatBGRA8Unorm, universalTestLayout(t, device))
	require.True(t, dp.ready())

	pipeline := dp.renderPipeline.(*mockPipeline)
	require.Len(t, pipeline.vertexBuffers, 1)
	assert.Equal(t, uint64(32), pipeline.vertexBuffers[0].ArrayStride)
	assert.Equal(t, gpu.VertexStepModeInstance, pipeline.vertexBuffers[0].StepMode)
}

func TestDrawOrderIsFixed(t *testing.T) {
	device := newMockDevice()
	d := &stubDrawable{
		name: "quad",
		refs: []Reference{textureReference()},
		emit: func(pass gpu.RenderPass) {
			pass.Draw(6, 10, 0, 0)
		},
	}
	dp := newDrawablePipeline(device, d)
	dp.createPipeline(device, newTestModules(device, "quad"), gpu.TextureFormatBGRA8Unorm, universalTestLayout(t, device))
	require.True(t, dp.ready())

	universalGroup, err := device.CreateBindGroup(&gpu.BindGroupDescriptor{Label: "universal bind group"})
	require.NoError(t, err)

	rec := &recorder{}
	pass := &mockPass{rec: rec}
	queue := &mockQueue{rec: rec}

	dp.draw(queue, pass, ShaderConstants{}, universalGroup, nil, nil)
	dp.draw(queue, pass, ShaderConstants{}, universalGroup, nil, nil)

	expected := []string{
		"SetPipeline quad Pipeline",
		"SetPushConstants 80 bytes",
		"SetBindGroup 0 quad bind group",
		"SetBindGroup 1 universal bind group",
		"Draw 6 10",
	}
	require.Len(t, rec.log, 2*len(expected))
	assert.Equal(t, expected, rec.log[:len(expected)])
	assert.Equal(t, expected, rec.log[len(expected):])
	assert.Equal(t, 2, d.drawn)
}

func TestNoOpDrawableEmitsOnlyOrchestratorCalls(t *testing.T) {
	device := newMockDevice()
	d := &stubDrawable{name: "blank", refs: []Reference{textureReference()}}
	dp := newDrawablePipeline(device, d)
	dp.createPipeline(device, newTestModules(device, "blank"), gpu.TextureFormatBGRA8Unorm, universalTestLayout(t, device))
	require.True(t, dp.ready())

	universalGroup, err := device.CreateBindGroup(&gpu.BindGroupDescriptor{Label: "universal bind group"})
	require.NoError(t, err)

	rec := &recorder{}
	dp.draw(&mockQueue{rec: rec}, &mockPass{rec: rec}, ShaderConstants{}, universalGroup, nil, nil)

	assert.Len(t, rec.log, 4)
}
