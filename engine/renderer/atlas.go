package renderer

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/fredizzimo/vide/engine/renderer/gpu"
)

// maxAtlasSize caps atlas growth; guaranteed supported by every WebGPU
// adapter's default limits.
const maxAtlasSize = 8192

// Atlas packs small images (glyphs, sprites) into one GPU texture using shelf
// packing. It owns the texture and a nearest-filtering sampler and exposes
// both through the Reference contract.
//
// The atlas grows by doubling when full, which replaces the GPU texture. As
// with GeometryBuffer, a bind group built before a grow keeps the old
// texture; drawables should size the atlas for their working set or
// re-register after growth.
type Atlas struct {
	device gpu.Device
	queue  gpu.Queue
	label  string

	size    uint32
	texture gpu.Texture
	view    gpu.TextureView
	sampler gpu.Sampler

	// pixels mirrors the texture contents so a grow can re-upload
	// everything placed so far.
	pixels  *image.RGBA
	shelves []shelf
}

// shelf is one packed row: images of similar height placed left to right.
type shelf struct {
	y      uint32
	height uint32
	x      uint32
}

// NewAtlas creates a square RGBA atlas of the given initial size.
//
// Parameters:
//   - device: the device the texture is created on
//   - queue: the queue uploads go through
//   - label: the texture's debug label
//   - size: initial edge length in pixels
//
// Returns:
//   - *Atlas: the created atlas
//   - error: GPU allocation failure
func NewAtlas(device gpu.Device, queue gpu.Queue, label string, size uint32) (*Atlas, error) {
	a := &Atlas{
		device: device,
		queue:  queue,
		label:  label,
		size:   size,
		pixels: image.NewRGBA(image.Rect(0, 0, int(size), int(size))),
	}

	sampler, err := device.CreateSampler(&gpu.SamplerDescriptor{
		Label:        label + " Sampler",
		AddressModeU: gpu.AddressModeClampToEdge,
		AddressModeV: gpu.AddressModeClampToEdge,
		MagFilter:    gpu.FilterModeNearest,
		MinFilter:    gpu.FilterModeNearest,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create atlas sampler: %w", err)
	}
	a.sampler = sampler

	if err := a.allocateTexture(); err != nil {
		a.sampler.Release()
		return nil, err
	}
	return a, nil
}

func (a *Atlas) allocateTexture() error {
	texture, err := a.device.CreateTexture(&gpu.TextureDescriptor{
		Label:         a.label,
		Width:         a.size,
		Height:        a.size,
		MipLevelCount: 1,
		SampleCount:   1,
		Format:        gpu.TextureFormatRGBA8Unorm,
		Usage:         gpu.TextureUsageTextureBinding | gpu.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("failed to create atlas texture %s: %w", a.label, err)
	}
	view, err := texture.CreateView()
	if err != nil {
		texture.Release()
		return fmt.Errorf("failed to create atlas texture view %s: %w", a.label, err)
	}
	if a.view != nil {
		a.view.Release()
	}
	if a.texture != nil {
		a.texture.Release()
	}
	a.texture = texture
	a.view = view
	return nil
}

// Add packs the given image into the atlas and uploads it, growing the atlas
// when there is no room.
//
// Parameters:
//   - img: the image to pack
//
// Returns:
//   - image.Rectangle: the image's placement in texels
//   - error: the image is larger than the maximum atlas size, or growth
//     failed at the GPU level
func (a *Atlas) Add(img image.Image) (image.Rectangle, error) {
	bounds := img.Bounds()
	w := uint32(bounds.Dx())
	h := uint32(bounds.Dy())
	if w > maxAtlasSize || h > maxAtlasSize {
		return image.Rectangle{}, fmt.Errorf("image %dx%d exceeds maximum atlas size %d", w, h, maxAtlasSize)
	}

	x, y, ok := a.place(w, h)
	for !ok {
		if err := a.grow(); err != nil {
			return image.Rectangle{}, err
		}
		x, y, ok = a.place(w, h)
	}

	rect := image.Rect(int(x), int(y), int(x+w), int(y+h))
	draw.Draw(a.pixels, rect, img, bounds.Min, draw.Src)
	a.upload(rect)
	return rect, nil
}

// place finds a shelf position for a w x h image, opening a new shelf when
// the existing ones are full.
func (a *Atlas) place(w, h uint32) (x, y uint32, ok bool) {
	for i := range a.shelves {
		s := &a.shelves[i]
		if h <= s.height && s.x+w <= a.size {
			x, y = s.x, s.y
			s.x += w
			return x, y, true
		}
	}

	top := uint32(0)
	if n := len(a.shelves); n > 0 {
		last := a.shelves[n-1]
		top = last.y + last.height
	}
	if top+h > a.size || w > a.size {
		return 0, 0, false
	}
	a.shelves = append(a.shelves, shelf{y: top, height: h, x: w})
	return 0, top, true
}

// grow doubles the atlas edge length and re-uploads everything placed so far.
func (a *Atlas) grow() error {
	if a.size*2 > maxAtlasSize {
		return fmt.Errorf("atlas %s is full at maximum size %d", a.label, maxAtlasSize)
	}
	a.size *= 2

	grown := image.NewRGBA(image.Rect(0, 0, int(a.size), int(a.size)))
	draw.Draw(grown, a.pixels.Bounds(), a.pixels, image.Point{}, draw.Src)
	a.pixels = grown

	if err := a.allocateTexture(); err != nil {
		return err
	}
	a.upload(a.pixels.Bounds())
	return nil
}

// upload writes one region of the CPU mirror to the texture, packing the
// region's rows tightly.
func (a *Atlas) upload(rect image.Rectangle) {
	w := rect.Dx()
	h := rect.Dy()
	if w == 0 || h == 0 {
		return
	}

	data := make([]byte, w*h*4)
	for row := 0; row < h; row++ {
		src := a.pixels.PixOffset(rect.Min.X, rect.Min.Y+row)
		copy(data[row*w*4:(row+1)*w*4], a.pixels.Pix[src:src+w*4])
	}

	a.queue.WriteTexture(
		&gpu.TexelCopyTexture{
			Texture: a.texture,
			OriginX: uint32(rect.Min.X),
			OriginY: uint32(rect.Min.Y),
		},
		data,
		&gpu.TexelCopyBufferLayout{
			BytesPerRow:  uint32(w * 4),
			RowsPerImage: uint32(h),
		},
		gpu.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
	)
}

// Size returns the current edge length in pixels. Drawables divide placement
// rectangles by this to produce texture coordinates.
func (a *Atlas) Size() uint32 {
	return a.size
}

// References returns the atlas's texture and sampler references, in that
// order, for inclusion in a drawable's reference set.
func (a *Atlas) References() []Reference {
	return []Reference{
		&atlasTextureReference{atlas: a},
		&atlasSamplerReference{atlas: a},
	}
}

// Release frees the texture and sampler.
func (a *Atlas) Release() {
	if a.view != nil {
		a.view.Release()
		a.view = nil
	}
	if a.texture != nil {
		a.texture.Release()
		a.texture = nil
	}
	if a.sampler != nil {
		a.sampler.Release()
		a.sampler = nil
	}
}

type atlasTextureReference struct {
	BaseReference
	atlas *Atlas
}

func (r *atlasTextureReference) Layout() *gpu.BindGroupLayoutEntry {
	return &gpu.BindGroupLayoutEntry{
		Visibility: gpu.ShaderStageFragment,
		Texture:    &gpu.TextureBindingLayout{SampleType: gpu.TextureSampleTypeFloat},
	}
}

func (r *atlasTextureReference) Entry() *gpu.BindGroupEntry {
	return &gpu.BindGroupEntry{TextureView: r.atlas.view}
}

type atlasSamplerReference struct {
	BaseReference
	atlas *Atlas
}

func (r *atlasSamplerReference) Layout() *gpu.BindGroupLayoutEntry {
	return &gpu.BindGroupLayoutEntry{
		Visibility: gpu.ShaderStageFragment,
		Sampler:    &gpu.SamplerBindingLayout{Type: gpu.SamplerBindingTypeNonFiltering},
	}
}

func (r *atlasSamplerReference) Entry() *gpu.BindGroupEntry {
	return &gpu.BindGroupEntry{Sampler: r.atlas.sampler}
}
