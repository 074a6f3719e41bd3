package renderer

import (
	"fmt"
	"sync"

	"github.com/fredizzimo/vide/common"
	"github.com/fredizzimo/vide/engine/renderer/gpu"
	"github.com/fredizzimo/vide/engine/renderer/shader"
	"github.com/fredizzimo/vide/engine/scene"
)

// sampleCount is the fixed multisample count for every drawable pipeline and
// the shared MSAA color target.
const sampleCount = 4

// ShaderConstants is the fixed-size per-frame record pushed to every ready
// pipeline via push constants. It changes every frame, so it bypasses bind
// groups entirely.
type ShaderConstants struct {
	// ViewTransform maps pixel coordinates (origin top-left) to clip space,
	// column-major.
	ViewTransform [16]float32

	// SurfaceSize is the render target size in pixels.
	SurfaceSize [2]float32

	_ [2]float32
}

// Renderer registers drawables, owns their pipelines and the shared universal
// bind group (group index 1), and draws all ready pipelines each frame.
// All methods must be called from the render thread except Ready, which is
// safe from any goroutine.
type Renderer interface {
	// AddDrawable registers a drawable, building its bind group synchronously.
	// The drawable's pipeline stays absent until CreatePipelines succeeds for
	// it. Panics on GPU allocation failure.
	//
	// Parameters:
	//   - d: the drawable to register
	//
	// Returns:
	//   - error: if a drawable with the same name is already registered
	AddDrawable(d Drawable) error

	// CreatePipelines attempts pipeline creation for every registered
	// drawable. Failures are logged and skipped; the affected drawables
	// simply stay not ready. Safe to call again later (for example after
	// shader hot-reload) — a failed retry never clears a working pipeline.
	CreatePipelines()

	// Ready reports whether the named drawable has a validated pipeline.
	//
	// Parameters:
	//   - name: the drawable name
	//
	// Returns:
	//   - bool: true if the drawable's pipeline is installed
	Ready(name string) bool

	// Render draws every ready pipeline, once per scene layer, into the
	// given resolve target in a single MSAA render pass. Drawables that are
	// not ready are skipped.
	//
	// Parameters:
	//   - scn: the scene whose layers and resources are drawn
	//   - target: the single-sample texture view resolved into
	Render(scn scene.Scene, target gpu.TextureView)

	// Resize reallocates the MSAA color target for the new dimensions.
	// Drawable pipelines are resolution-independent and are not rebuilt.
	//
	// Parameters:
	//   - width: new target width in pixels
	//   - height: new target height in pixels
	Resize(width, height uint32)

	// Release frees all pipelines, the universal bind group, and the MSAA
	// target.
	Release()
}

type renderer struct {
	mu sync.Mutex

	device  gpu.Device
	queue   gpu.Queue
	shaders shader.Modules

	format        gpu.TextureFormat
	width, height uint32
	clearColor    gpu.Color

	universalSampler gpu.Sampler
	universalLayout  gpu.BindGroupLayout
	universalGroup   gpu.BindGroup

	msaaTexture gpu.Texture
	msaaView    gpu.TextureView

	// pipelines in registration order; byName indexes the same set.
	pipelines []*drawablePipeline
	byName    map[string]*drawablePipeline

	// extraUniversalRefs holds caller-supplied references appended to the
	// universal bind group; consumed once during construction.
	extraUniversalRefs []Reference
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing to targets of the given format and
// size. The universal bind group is built immediately; allocation failure
// there is fatal and panics, matching drawable registration.
//
// Parameters:
//   - device: the device all GPU objects are created on
//   - queue: the queue drawables upload through
//   - shaders: the shader module provider, keyed by drawable name
//   - width: initial target width in pixels
//   - height: initial target height in pixels
//   - format: the resolve target's texture format
//   - options: optional renderer builder options
//
// Returns:
//   - Renderer: the created renderer
func NewRenderer(device gpu.Device, queue gpu.Queue, shaders shader.Modules, width, height uint32, format gpu.TextureFormat, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		device:  device,
		queue:   queue,
		shaders: shaders,
		format:  format,
		width:   width,
		height:  height,
		byName:  make(map[string]*drawablePipeline),
	}

	for _, option := range options {
		option(r)
	}

	r.buildUniversalBindGroup(r.extraUniversalRefs)
	r.extraUniversalRefs = nil
	r.buildTarget()

	return r
}

// samplerReference exposes the renderer's default linear sampler through the
// same reference contract drawables use, so the universal bind group is
// assembled by the exact machinery that builds private bind groups.
type samplerReference struct {
	BaseReference
	sampler gpu.Sampler
}

func (s *samplerReference) Layout() *gpu.BindGroupLayoutEntry {
	return &gpu.BindGroupLayoutEntry{
		Visibility: gpu.ShaderStageFragment,
		Sampler:    &gpu.SamplerBindingLayout{Type: gpu.SamplerBindingTypeFiltering},
	}
}

func (s *samplerReference) Entry() *gpu.BindGroupEntry {
	return &gpu.BindGroupEntry{Sampler: s.sampler}
}

func (r *renderer) buildUniversalBindGroup(extra []Reference) {
	sampler, err := r.device.CreateSampler(&gpu.SamplerDescriptor{
		Label:        "Universal Sampler",
		AddressModeU: gpu.AddressModeClampToEdge,
		AddressModeV: gpu.AddressModeClampToEdge,
		MagFilter:    gpu.FilterModeLinear,
		MinFilter:    gpu.FilterModeLinear,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create universal sampler: %v", err))
	}
	r.universalSampler = sampler

	refs := append([]Reference{&samplerReference{sampler: sampler}}, extra...)
	contributing := contributingReferences("universal", refs)

	layoutEntries := make([]gpu.BindGroupLayoutEntry, len(contributing))
	groupEntries := make([]gpu.BindGroupEntry, len(contributing))
	for i, ref := range contributing {
		layoutEntry := *ref.Layout()
		layoutEntry.Binding = uint32(i)
		layoutEntries[i] = layoutEntry

		groupEntry := *ref.Entry()
		groupEntry.Binding = uint32(i)
		groupEntries[i] = groupEntry
	}

	layout, err := r.device.CreateBindGroupLayout(&gpu.BindGroupLayoutDescriptor{
		Label:   "universal bind group layout",
		Entries: layoutEntries,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create universal bind group layout: %v", err))
	}
	r.universalLayout = layout

	group, err := r.device.CreateBindGroup(&gpu.BindGroupDescriptor{
		Label:   "universal bind group",
		Layout:  layout,
		Entries: groupEntries,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create universal bind group: %v", err))
	}
	r.universalGroup = group
}

// buildTarget allocates the multisampled color texture drawn into each frame
// and resolved to the caller's target.
func (r *renderer) buildTarget() {
	texture, err := r.device.CreateTexture(&gpu.TextureDescriptor{
		Label:         "MSAA Color Target",
		Width:         r.width,
		Height:        r.height,
		MipLevelCount: 1,
		SampleCount:   sampleCount,
		Format:        r.format,
		Usage:         gpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create MSAA color target: %v", err))
	}
	view, err := texture.CreateView()
	if err != nil {
		panic(fmt.Sprintf("failed to create MSAA color target view: %v", err))
	}
	r.msaaTexture = texture
	r.msaaView = view
}

func (r *renderer) AddDrawable(d Drawable) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := d.Name()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("drawable %s is already registered", name)
	}

	dp := newDrawablePipeline(r.device, d)
	r.pipelines = append(r.pipelines, dp)
	r.byName[name] = dp
	return nil
}

func (r *renderer) CreatePipelines() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, dp := range r.pipelines {
		dp.createPipeline(r.device, r.shaders, r.format, r.universalLayout)
	}
}

func (r *renderer) Ready(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	dp, ok := r.byName[name]
	return ok && dp.ready()
}

func (r *renderer) Render(scn scene.Scene, target gpu.TextureView) {
	r.mu.Lock()
	defer r.mu.Unlock()

	constants := r.shaderConstants()

	encoder, err := r.device.CreateCommandEncoder("Render Encoder")
	if err != nil {
		logger().Warn("failed to create command encoder", "error", err)
		return
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&gpu.RenderPassDescriptor{
		Label: "Render Pass",
		ColorAttachments: []gpu.RenderPassColorAttachment{{
			View:          r.msaaView,
			ResolveTarget: target,
			LoadOp:        gpu.LoadOpClear,
			StoreOp:       gpu.StoreOpDiscard,
			ClearValue:    r.clearColor,
		}},
	})

	resources := scn.Resources()
	for _, layer := range scn.Layers() {
		for _, dp := range r.pipelines {
			if !dp.ready() {
				continue
			}
			dp.draw(r.queue, pass, constants, r.universalGroup, resources, layer)
		}
	}
	pass.End()

	commands, err := encoder.Finish()
	if err != nil {
		logger().Warn("failed to finish command encoder", "error", err)
		return
	}
	defer commands.Release()

	r.queue.Submit(commands)
}

func (r *renderer) Resize(width, height uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if width == 0 || height == 0 || (width == r.width && height == r.height) {
		return
	}
	r.width = width
	r.height = height

	r.msaaView.Release()
	r.msaaTexture.Release()
	r.buildTarget()
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, dp := range r.pipelines {
		dp.release()
	}
	r.pipelines = nil
	r.byName = make(map[string]*drawablePipeline)

	r.msaaView.Release()
	r.msaaTexture.Release()
	r.universalGroup.Release()
	r.universalLayout.Release()
	r.universalSampler.Release()
}

// shaderConstants assembles the per-frame constants for the current target
// size: an orthographic pixel-to-clip transform plus the size itself.
func (r *renderer) shaderConstants() ShaderConstants {
	c := ShaderConstants{
		SurfaceSize: [2]float32{float32(r.width), float32(r.height)},
	}
	common.Ortho(c.ViewTransform[:], float32(r.width), float32(r.height))
	return c
}
