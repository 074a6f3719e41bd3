package renderer

import (
	"fmt"
	"image"

	"github.com/fredizzimo/vide/engine/renderer/gpu"
	"github.com/fredizzimo/vide/engine/renderer/shader"
	"github.com/fredizzimo/vide/engine/scene"
)

// OffscreenRenderer renders scenes headlessly and reads the result back into
// a CPU image. Intended for tests and capture tools.
type OffscreenRenderer interface {
	// AddDrawable registers a drawable. See Renderer.AddDrawable.
	AddDrawable(d Drawable) error

	// CreatePipelines attempts pipeline creation for every registered
	// drawable. See Renderer.CreatePipelines.
	CreatePipelines()

	// Ready reports whether the named drawable has a validated pipeline.
	Ready(name string) bool

	// Draw renders one frame and reads it back.
	//
	// Parameters:
	//   - scn: the scene to draw
	//
	// Returns:
	//   - *image.RGBA: the rendered frame
	//   - error: GPU allocation or readback failure
	Draw(scn scene.Scene) (*image.RGBA, error)

	// Resize changes the output dimensions for subsequent draws.
	Resize(width, height uint32)

	// Release frees the underlying renderer's resources.
	Release()
}

type offscreenRenderer struct {
	device gpu.Device
	queue  gpu.Queue

	width, height uint32
	renderer      Renderer
}

var _ OffscreenRenderer = &offscreenRenderer{}

// NewOffscreenRenderer creates an offscreen renderer producing RGBA images of
// the given size.
//
// Parameters:
//   - device: the device, typically from gpu.NewOffscreenContext
//   - queue: the device's queue
//   - shaders: the shader module provider
//   - width: output width in pixels
//   - height: output height in pixels
//   - options: optional renderer builder options
//
// Returns:
//   - OffscreenRenderer: the created renderer
func NewOffscreenRenderer(device gpu.Device, queue gpu.Queue, shaders shader.Modules, width, height uint32, options ...RendererBuilderOption) OffscreenRenderer {
	return &offscreenRenderer{
		device: device,
		queue:  queue,
		width:  width,
		height: height,
		renderer: NewRenderer(device, queue, shaders, width, height,
			gpu.TextureFormatRGBA8UnormSrgb, options...),
	}
}

func (o *offscreenRenderer) AddDrawable(d Drawable) error {
	return o.renderer.AddDrawable(d)
}

func (o *offscreenRenderer) CreatePipelines() {
	o.renderer.CreatePipelines()
}

func (o *offscreenRenderer) Ready(name string) bool {
	return o.renderer.Ready(name)
}

func (o *offscreenRenderer) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	o.width = width
	o.height = height
	o.renderer.Resize(width, height)
}

func (o *offscreenRenderer) Draw(scn scene.Scene) (*image.RGBA, error) {
	texture, err := o.device.CreateTexture(&gpu.TextureDescriptor{
		Label:         "Offscreen Target",
		Width:         o.width,
		Height:        o.height,
		MipLevelCount: 1,
		SampleCount:   1,
		Format:        gpu.TextureFormatRGBA8UnormSrgb,
		Usage:         gpu.TextureUsageRenderAttachment | gpu.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create offscreen target: %w", err)
	}
	defer texture.Release()

	view, err := texture.CreateView()
	if err != nil {
		return nil, fmt.Errorf("failed to create offscreen target view: %w", err)
	}
	defer view.Release()

	o.renderer.Render(scn, view)

	return o.readback(texture)
}

// readback copies the rendered texture into a mappable buffer with rows
// padded to the copy alignment, waits for the map, and crops the padding away
// while converting to an image.
func (o *offscreenRenderer) readback(texture gpu.Texture) (*image.RGBA, error) {
	bytesPerRow := 4 * o.width
	padding := (gpu.CopyBytesPerRowAlignment - bytesPerRow%gpu.CopyBytesPerRowAlignment) % gpu.CopyBytesPerRowAlignment
	paddedBytesPerRow := bytesPerRow + padding
	bufferSize := uint64(paddedBytesPerRow) * uint64(o.height)

	buffer, err := o.device.CreateBuffer(&gpu.BufferDescriptor{
		Label: "Offscreen Readback",
		Size:  bufferSize,
		Usage: gpu.BufferUsageCopyDst | gpu.BufferUsageMapRead,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readback buffer: %w", err)
	}
	defer buffer.Release()

	encoder, err := o.device.CreateCommandEncoder("Readback Encoder")
	if err != nil {
		return nil, fmt.Errorf("failed to create readback encoder: %w", err)
	}
	defer encoder.Release()

	encoder.CopyTextureToBuffer(
		&gpu.TexelCopyTexture{Texture: texture},
		&gpu.TexelCopyBuffer{
			Buffer: buffer,
			Layout: gpu.TexelCopyBufferLayout{
				BytesPerRow:  paddedBytesPerRow,
				RowsPerImage: o.height,
			},
		},
		gpu.Extent3D{Width: o.width, Height: o.height, DepthOrArrayLayers: 1},
	)

	commands, err := encoder.Finish()
	if err != nil {
		return nil, fmt.Errorf("failed to finish readback encoder: %w", err)
	}
	defer commands.Release()
	o.queue.Submit(commands)

	// The mapping must be requested before polling, and the poll must wait,
	// or the callback never fires.
	var mapErr error
	done := false
	buffer.MapReadAsync(func(err error) {
		mapErr = err
		done = true
	})
	o.device.Poll(true)
	if !done {
		return nil, fmt.Errorf("readback buffer map did not complete")
	}
	if mapErr != nil {
		return nil, fmt.Errorf("failed to map readback buffer: %w", mapErr)
	}

	data := buffer.MappedRange(0, bufferSize)
	img := image.NewRGBA(image.Rect(0, 0, int(o.width), int(o.height)))
	for row := uint32(0); row < o.height; row++ {
		src := data[row*paddedBytesPerRow : row*paddedBytesPerRow+bytesPerRow]
		copy(img.Pix[row*bytesPerRow:(row+1)*bytesPerRow], src)
	}
	buffer.Unmap()

	return img, nil
}

func (o *offscreenRenderer) Release() {
	o.renderer.Release()
}
