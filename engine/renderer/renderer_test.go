package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredizzimo/vide/engine/renderer/gpu"
	"github.com/fredizzimo/vide/engine/scene"
)

func newTestRenderer(device *mockDevice, shaderNames ...string) Renderer {
	queue := &mockQueue{rec: device.rec}
	return NewRenderer(device, queue, newTestModules(device, shaderNames...), 640, 480, gpu.TextureFormatBGRA8Unorm)
}

func singleLayerScene() scene.Scene {
	return scene.NewScene(scene.WithLayers(&scene.Layer{Name: "base"}))
}

func TestAddDrawableRejectsDuplicateNames(t *testing.T) {
	device := newMockDevice()
	r := newTestRenderer(device)

	assert.NoError(t, r.AddDrawable(&stubDrawable{name: "quad", refs: []Reference{textureReference()}}))
	assert.Error(t, r.AddDrawable(&stubDrawable{name: "quad", refs: []Reference{textureReference()}}))
}

func TestReadyReflectsPipelineState(t *testing.T) {
	device := newMockDevice()
	r := newTestRenderer(device, "quad")
	require.NoError(t, r.AddDrawable(&stubDrawable{name: "quad", refs: []Reference{textureReference()}}))

	assert.False(t, r.Ready("quad"))
	assert.False(t, r.Ready("unknown"))

	r.CreatePipelines()
	assert.True(t, r.Ready("quad"))
	assert.False(t, r.Ready("unknown"))
}

func TestRenderSkipsDrawablesWithoutPipelines(t *testing.T) {
	device := newMockDevice()
	r := newTestRenderer(device, "ready") // no shaders for "pending"

	ready := &stubDrawable{name: "ready", refs: []Reference{textureReference()}}
	pending := &stubDrawable{name: "pending", refs: []Reference{textureReference()}}
	require.NoError(t, r.AddDrawable(ready))
	require.NoError(t, r.AddDrawable(pending))
	r.CreatePipelines()

	r.Render(singleLayerScene(), &mockHandle{})

	assert.Contains(t, device.rec.log, "SetPipeline ready Pipeline")
	assert.NotContains(t, device.rec.log, "SetPipeline pending Pipeline")
	assert.Equal(t, 1, ready.drawn)
	assert.Zero(t, pending.drawn)
}

func TestRenderDrawsInRegistrationOrderPerLayer(t *testing.T) {
	device := newMockDevice()
	r := newTestRenderer(device, "first", "second")
	require.NoError(t, r.AddDrawable(&stubDrawable{name: "first", refs: []Reference{textureReference()}}))
	require.NoError(t, r.AddDrawable(&stubDrawable{name: "second", refs: []Reference{textureReference()}}))
	r.CreatePipelines()

	scn := scene.NewScene(scene.WithLayers(
		&scene.Layer{Name: "background"},
		&scene.Layer{Name: "foreground"},
	))
	r.Render(scn, &mockHandle{})

	var pipelineBinds []string
	for _, call := range device.rec.log {
		if call == "SetPipeline first Pipeline" || call == "SetPipeline second Pipeline" {
			pipelineBinds = append(pipelineBinds, call)
		}
	}
	assert.Equal(t, []string{
		"SetPipeline first Pipeline",
		"SetPipeline second Pipeline",
		"SetPipeline first Pipeline",
		"SetPipeline second Pipeline",
	}, pipelineBinds)

	assert.Equal(t, "Submit", device.rec.log[len(device.rec.log)-1])
}

func TestResizeRebuildsOnlyTheTarget(t *testing.T) {
	device := newMockDevice()
	r := newTestRenderer(device, "quad")
	require.NoError(t, r.AddDrawable(&stubDrawable{name: "quad", refs: []Reference{textureReference()}}))
	r.CreatePipelines()

	texturesBefore := device.textures
	pipelinesBefore := device.pipelines

	r.Resize(1920, 1080)
	assert.Equal(t, texturesBefore+1, device.textures)
	assert.Equal(t, pipelinesBefore, device.pipelines)
	assert.True(t, r.Ready("quad"))

	// Same size and zero sizes are no-ops.
	r.Resize(1920, 1080)
	r.Resize(0, 1080)
	assert.Equal(t, texturesBefore+1, device.textures)
}

func TestUniversalReferencesFollowDefaultSampler(t *testing.T) {
	device := newMockDevice()
	queue := &mockQueue{rec: device.rec}

	extra := textureReference()
	r := NewRenderer(device, queue, newTestModules(device), 640, 480,
		gpu.TextureFormatBGRA8Unorm, WithUniversalReferences(extra))

	group := r.(*renderer).universalGroup.(*mockBindGroup)
	require.Len(t, group.entries, 2)
	assert.Equal(t, uint32(0), group.entries[0].Binding)
	assert.NotNil(t, group.entries[0].Sampler)
	assert.Equal(t, uint32(1), group.entries[1].Binding)
	assert.NotNil(t, group.entries[1].TextureView)
}

func TestShaderConstantsMatchTargetSize(t *testing.T) {
	device := newMockDevice()
	r := newTestRenderer(device).(*renderer)

	c := r.shaderConstants()
	assert.Equal(t, [2]float32{640, 480}, c.SurfaceSize)

	// Pixel origin maps to the top-left clip corner.
	assert.InDelta(t, -1.0, c.ViewTransform[12], 1e-6)
	assert.InDelta(t, 1.0, c.ViewTransform[13], 1e-6)
}
