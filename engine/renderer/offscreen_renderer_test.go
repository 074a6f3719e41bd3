package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredizzimo/vide/engine/renderer/gpu"
)

func TestOffscreenDrawReturnsImageOfRequestedSize(t *testing.T) {
	device := newMockDevice()
	queue := &mockQueue{rec: device.rec}
	o := NewOffscreenRenderer(device, queue, newTestModules(device, "quad"), 100, 40)

	require.NoError(t, o.AddDrawable(&stubDrawable{name: "quad", refs: []Reference{textureReference()}}))
	o.CreatePipelines()
	require.True(t, o.Ready("quad"))

	img, err := o.Draw(singleLayerScene())
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())

	assert.Contains(t, device.rec.log, "SetPipeline quad Pipeline")
	assert.Contains(t, device.rec.log, "CopyTextureToBuffer 100x40")
}

func TestOffscreenReadbackPadsRowsToCopyAlignment(t *testing.T) {
	device := newMockDevice()
	queue := &mockQueue{rec: device.rec}

	// 100 px rows are 400 bytes, which must round up to 512.
	o := NewOffscreenRenderer(device, queue, newTestModules(device), 100, 40)
	_, err := o.Draw(singleLayerScene())
	require.NoError(t, err)

	require.NotEmpty(t, device.bufferSizes)
	readback := device.bufferSizes[len(device.bufferSizes)-1]
	assert.Equal(t, uint64(512*40), readback)
}

func TestOffscreenReadbackAlreadyAlignedRowsAreNotPadded(t *testing.T) {
	device := newMockDevice()
	queue := &mockQueue{rec: device.rec}

	// 64 px rows are exactly 256 bytes.
	o := NewOffscreenRenderer(device, queue, newTestModules(device), 64, 8)
	_, err := o.Draw(singleLayerScene())
	require.NoError(t, err)

	readback := device.bufferSizes[len(device.bufferSizes)-1]
	assert.Equal(t, uint64(256*8), readback)
}

func TestOffscreenResizeChangesOutputSize(t *testing.T) {
	device := newMockDevice()
	queue := &mockQueue{rec: device.rec}
	o := NewOffscreenRenderer(device, queue, newTestModules(device), 64, 64)

	o.Resize(32, 16)
	img, err := o.Draw(singleLayerScene())
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())
}

func TestOffscreenUsesRGBAFormat(t *testing.T) {
	device := newMockDevice()
	queue := &mockQueue{rec: device.rec}
	o := NewOffscreenRenderer(device, queue, newTestModules(device), 16, 16).(*offscreenRenderer)

	assert.Equal(t, gpu.TextureFormatRGBA8UnormSrgb, o.renderer.(*renderer).format)
}
