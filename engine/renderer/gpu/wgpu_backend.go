package gpu

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// maxPushConstantBytes is the push constant capacity requested from the device.
// Large enough for the shared per-frame constants with headroom.
const maxPushConstantBytes = 128

// WGPUContext owns the wgpu instance, adapter, device, and queue, and the
// window surface when one exists. It is the concrete backend behind the
// Device/Queue/Surface interfaces.
type WGPUContext struct {
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
}

// NewWindowedContext creates a wgpu context whose adapter is compatible with
// the given window surface. The surface descriptor is platform-specific and
// typically comes from window.Window.SurfaceDescriptor().
//
// Parameters:
//   - surfaceDescriptor: the platform-specific surface descriptor
//   - forceFallbackAdapter: request a software adapter
//
// Returns:
//   - *WGPUContext: the created context
//   - error: adapter or device acquisition failure
func NewWindowedContext(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) (*WGPUContext, error) {
	runtime.LockOSThread()
	c := &WGPUContext{instance: wgpu.CreateInstance(nil)}
	c.surface = c.instance.CreateSurface(surfaceDescriptor)
	if err := c.requestDeviceAndQueue(forceFallbackAdapter); err != nil {
		return nil, err
	}
	return c, nil
}

// NewOffscreenContext creates a wgpu context with no surface, suitable for
// headless rendering and readback.
//
// Parameters:
//   - forceFallbackAdapter: request a software adapter
//
// Returns:
//   - *WGPUContext: the created context
//   - error: adapter or device acquisition failure
func NewOffscreenContext(forceFallbackAdapter bool) (*WGPUContext, error) {
	runtime.LockOSThread()
	c := &WGPUContext{instance: wgpu.CreateInstance(nil)}
	if err := c.requestDeviceAndQueue(forceFallbackAdapter); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *WGPUContext) requestDeviceAndQueue(forceFallbackAdapter bool) error {
	a, err := c.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    c.surface,
	})
	if err != nil {
		return fmt.Errorf("failed to request adapter: %w", err)
	}
	c.adapter = a

	// Push constants are a wgpu-native extension; the per-frame shader
	// constants are delivered through them, so raise the limit from its
	// default of zero.
	limits := wgpu.DefaultLimits()
	limits.MaxPushConstantSize = maxPushConstantBytes

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: limits,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to request device: %w", err)
	}
	c.device = d
	c.queue = d.GetQueue()
	return nil
}

// Device returns the context's device.
//
// Returns:
//   - Device: the device interface
func (c *WGPUContext) Device() Device {
	return &wgpuDevice{d: c.device}
}

// Queue returns the context's queue.
//
// Returns:
//   - Queue: the queue interface
func (c *WGPUContext) Queue() Queue {
	return &wgpuQueue{q: c.queue}
}

// Surface returns the context's window surface, or nil for offscreen contexts.
//
// Returns:
//   - Surface: the surface interface, or nil
func (c *WGPUContext) Surface() Surface {
	if c.surface == nil {
		return nil
	}
	return &wgpuSurface{s: c.surface, adapter: c.adapter, device: c.device}
}

// Release frees the context's device, adapter, surface, and instance.
func (c *WGPUContext) Release() {
	if c.device != nil {
		c.device.Release()
		c.device = nil
	}
	if c.adapter != nil {
		c.adapter.Release()
		c.adapter = nil
	}
	if c.surface != nil {
		c.surface.Release()
		c.surface = nil
	}
	if c.instance != nil {
		c.instance.Release()
		c.instance = nil
	}
}

// wgpuDevice implements Device over *wgpu.Device.
type wgpuDevice struct {
	d *wgpu.Device
}

var _ Device = &wgpuDevice{}

func (dv *wgpuDevice) CreateShaderModule(label, source string) (ShaderModule, error) {
	m, err := dv.d.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	})
	if err != nil {
		return nil, err
	}
	return &wgpuShaderModule{m: m}, nil
}

func (dv *wgpuDevice) CreateBindGroupLayout(desc *BindGroupLayoutDescriptor) (BindGroupLayout, error) {
	entries := make([]wgpu.BindGroupLayoutEntry, len(desc.Entries))
	for i, e := range desc.Entries {
		entries[i] = toWGPULayoutEntry(e)
	}
	l, err := dv.d.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   desc.Label,
		Entries: entries,
	})
	if err != nil {
		return nil, err
	}
	return &wgpuBindGroupLayout{l: l}, nil
}

func (dv *wgpuDevice) CreateBindGroup(desc *BindGroupDescriptor) (BindGroup, error) {
	entries := make([]wgpu.BindGroupEntry, len(desc.Entries))
	for i, e := range desc.Entries {
		entries[i] = wgpu.BindGroupEntry{
			Binding:     e.Binding,
			Buffer:      unwrapBuffer(e.Buffer),
			Offset:      e.Offset,
			Size:        e.Size,
			Sampler:     unwrapSampler(e.Sampler),
			TextureView: unwrapTextureView(e.TextureView),
		}
	}
	g, err := dv.d.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   desc.Label,
		Layout:  unwrapBindGroupLayout(desc.Layout),
		Entries: entries,
	})
	if err != nil {
		return nil, err
	}
	return &wgpuBindGroup{g: g}, nil
}

func (dv *wgpuDevice) CreatePipelineLayout(desc *PipelineLayoutDescriptor) (PipelineLayout, error) {
	layouts := make([]*wgpu.BindGroupLayout, len(desc.BindGroupLayouts))
	for i, l := range desc.BindGroupLayouts {
		layouts[i] = unwrapBindGroupLayout(l)
	}
	ranges := make([]wgpu.PushConstantRange, len(desc.PushConstantRanges))
	for i, r := range desc.PushConstantRanges {
		ranges[i] = wgpu.PushConstantRange{
			Stages: toWGPUShaderStage(r.Stages),
			Start:  r.Start,
			End:    r.End,
		}
	}
	l, err := dv.d.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:              desc.Label,
		BindGroupLayouts:   layouts,
		PushConstantRanges: ranges,
	})
	if err != nil {
		return nil, err
	}
	return &wgpuPipelineLayout{l: l}, nil
}

func (dv *wgpuDevice) CreateRenderPipeline(desc *RenderPipelineDescriptor) (RenderPipeline, error) {
	vertexBuffers := make([]wgpu.VertexBufferLayout, len(desc.Vertex.Buffers))
	for i, vb := range desc.Vertex.Buffers {
		vertexBuffers[i] = toWGPUVertexBufferLayout(vb)
	}

	wdesc := &wgpu.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: unwrapPipelineLayout(desc.Layout),
		Vertex: wgpu.VertexState{
			Module:     unwrapShaderModule(desc.Vertex.Module),
			EntryPoint: desc.Vertex.EntryPoint,
			Buffers:    vertexBuffers,
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  toWGPUTopology(desc.Primitive.Topology),
			FrontFace: toWGPUFrontFace(desc.Primitive.FrontFace),
			CullMode:  toWGPUCullMode(desc.Primitive.CullMode),
		},
		Multisample: wgpu.MultisampleState{
			Count: desc.Multisample.Count,
			Mask:  desc.Multisample.Mask,
		},
	}

	if desc.Fragment != nil {
		targets := make([]wgpu.ColorTargetState, len(desc.Fragment.Targets))
		for i, t := range desc.Fragment.Targets {
			targets[i] = wgpu.ColorTargetState{
				Format:    toWGPUTextureFormat(t.Format),
				Blend:     toWGPUBlendState(t.Blend),
				WriteMask: wgpu.ColorWriteMask(t.WriteMask),
			}
		}
		wdesc.Fragment = &wgpu.FragmentState{
			Module:     unwrapShaderModule(desc.Fragment.Module),
			EntryPoint: desc.Fragment.EntryPoint,
			Targets:    targets,
		}
	}

	p, err := dv.d.CreateRenderPipeline(wdesc)
	if err != nil {
		return nil, err
	}
	return &wgpuRenderPipeline{p: p}, nil
}

func (dv *wgpuDevice) CreateBuffer(desc *BufferDescriptor) (Buffer, error) {
	b, err := dv.d.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            desc.Label,
		Size:             desc.Size,
		Usage:            toWGPUBufferUsage(desc.Usage),
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, err
	}
	return &wgpuBuffer{b: b, size: desc.Size}, nil
}

func (dv *wgpuDevice) CreateTexture(desc *TextureDescriptor) (Texture, error) {
	t, err := dv.d.CreateTexture(&wgpu.TextureDescriptor{
		Label: desc.Label,
		Size: wgpu.Extent3D{
			Width:              desc.Width,
			Height:             desc.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: desc.MipLevelCount,
		SampleCount:   desc.SampleCount,
		Dimension:     wgpu.TextureDimension2D,
		Format:        toWGPUTextureFormat(desc.Format),
		Usage:         toWGPUTextureUsage(desc.Usage),
	})
	if err != nil {
		return nil, err
	}
	return &wgpuTexture{t: t}, nil
}

func (dv *wgpuDevice) CreateSampler(desc *SamplerDescriptor) (Sampler, error) {
	s, err := dv.d.CreateSampler(toWGPUSamplerDescriptor(desc))
	if err != nil {
		return nil, err
	}
	return &wgpuSampler{s: s}, nil
}

// Samplers only address 2D textures; the W axis is always clamped.
func toWGPUSamplerDescriptor(desc *SamplerDescriptor) *wgpu.SamplerDescriptor {
	return &wgpu.SamplerDescriptor{
		Label:         desc.Label,
		AddressModeU:  toWGPUAddressMode(desc.AddressModeU),
		AddressModeV:  toWGPUAddressMode(desc.AddressModeV),
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     toWGPUFilterMode(desc.MagFilter),
		MinFilter:     toWGPUFilterMode(desc.MinFilter),
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
}

func (dv *wgpuDevice) CreateCommandEncoder(label string) (CommandEncoder, error) {
	e, err := dv.d.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, err
	}
	return &wgpuCommandEncoder{e: e}, nil
}

func (dv *wgpuDevice) Poll(wait bool) {
	dv.d.Poll(wait, nil)
}

func (dv *wgpuDevice) Release() {
	dv.d.Release()
}

// wgpuQueue implements Queue over *wgpu.Queue.
type wgpuQueue struct {
	q *wgpu.Queue
}

var _ Queue = &wgpuQueue{}

func (q *wgpuQueue) WriteBuffer(buf Buffer, offset uint64, data []byte) {
	q.q.WriteBuffer(unwrapBuffer(buf), offset, data)
}

func (q *wgpuQueue) WriteTexture(dst *TexelCopyTexture, data []byte, layout *TexelCopyBufferLayout, size Extent3D) {
	q.q.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  unwrapTexture(dst.Texture),
			MipLevel: dst.MipLevel,
			Origin:   wgpu.Origin3D{X: dst.OriginX, Y: dst.OriginY},
			Aspect:   wgpu.TextureAspectAll,
		},
		data,
		&wgpu.TextureDataLayout{
			Offset:       layout.Offset,
			BytesPerRow:  layout.BytesPerRow,
			RowsPerImage: layout.RowsPerImage,
		},
		&wgpu.Extent3D{
			Width:              size.Width,
			Height:             size.Height,
			DepthOrArrayLayers: size.DepthOrArrayLayers,
		},
	)
}

func (q *wgpuQueue) Submit(commands ...CommandBuffer) {
	bufs := make([]*wgpu.CommandBuffer, len(commands))
	for i, c := range commands {
		bufs[i] = c.(*wgpuCommandBuffer).b
	}
	q.q.Submit(bufs...)
}

// wgpuCommandEncoder implements CommandEncoder over *wgpu.CommandEncoder.
type wgpuCommandEncoder struct {
	e *wgpu.CommandEncoder
}

var _ CommandEncoder = &wgpuCommandEncoder{}

func (ce *wgpuCommandEncoder) BeginRenderPass(desc *RenderPassDescriptor) RenderPass {
	attachments := make([]wgpu.RenderPassColorAttachment, len(desc.ColorAttachments))
	for i, a := range desc.ColorAttachments {
		attachments[i] = wgpu.RenderPassColorAttachment{
			View:          unwrapTextureView(a.View),
			ResolveTarget: unwrapTextureView(a.ResolveTarget),
			LoadOp:        toWGPULoadOp(a.LoadOp),
			StoreOp:       toWGPUStoreOp(a.StoreOp),
			ClearValue: wgpu.Color{
				R: a.ClearValue.R,
				G: a.ClearValue.G,
				B: a.ClearValue.B,
				A: a.ClearValue.A,
			},
		}
	}
	p := ce.e.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label:            desc.Label,
		ColorAttachments: attachments,
	})
	return &wgpuRenderPass{p: p}
}

func (ce *wgpuCommandEncoder) CopyTextureToBuffer(src *TexelCopyTexture, dst *TexelCopyBuffer, size Extent3D) {
	ce.e.CopyTextureToBuffer(
		&wgpu.ImageCopyTexture{
			Texture:  unwrapTexture(src.Texture),
			MipLevel: src.MipLevel,
			Origin:   wgpu.Origin3D{X: src.OriginX, Y: src.OriginY},
			Aspect:   wgpu.TextureAspectAll,
		},
		&wgpu.ImageCopyBuffer{
			Buffer: unwrapBuffer(dst.Buffer),
			Layout: wgpu.TextureDataLayout{
				Offset:       dst.Layout.Offset,
				BytesPerRow:  dst.Layout.BytesPerRow,
				RowsPerImage: dst.Layout.RowsPerImage,
			},
		},
		&wgpu.Extent3D{
			Width:              size.Width,
			Height:             size.Height,
			DepthOrArrayLayers: size.DepthOrArrayLayers,
		},
	)
}

func (ce *wgpuCommandEncoder) Finish() (CommandBuffer, error) {
	b, err := ce.e.Finish(nil)
	if err != nil {
		return nil, err
	}
	return &wgpuCommandBuffer{b: b}, nil
}

func (ce *wgpuCommandEncoder) Release() {
	ce.e.Release()
}

// wgpuRenderPass implements RenderPass over *wgpu.RenderPassEncoder.
type wgpuRenderPass struct {
	p *wgpu.RenderPassEncoder
}

var _ RenderPass = &wgpuRenderPass{}

func (rp *wgpuRenderPass) SetPipeline(p RenderPipeline) {
	rp.p.SetPipeline(p.(*wgpuRenderPipeline).p)
}

func (rp *wgpuRenderPass) SetPushConstants(stages ShaderStage, offset uint32, data []byte) {
	rp.p.SetPushConstants(toWGPUShaderStage(stages), offset, data)
}

func (rp *wgpuRenderPass) SetBindGroup(index uint32, group BindGroup, dynamicOffsets []uint32) {
	rp.p.SetBindGroup(index, group.(*wgpuBindGroup).g, dynamicOffsets)
}

func (rp *wgpuRenderPass) SetVertexBuffer(slot uint32, buf Buffer) {
	rp.p.SetVertexBuffer(slot, unwrapBuffer(buf), 0, wgpu.WholeSize)
}

func (rp *wgpuRenderPass) SetIndexBuffer(buf Buffer, format IndexFormat) {
	wf := wgpu.IndexFormatUint32
	if format == IndexFormatUint16 {
		wf = wgpu.IndexFormatUint16
	}
	rp.p.SetIndexBuffer(unwrapBuffer(buf), wf, 0, wgpu.WholeSize)
}

func (rp *wgpuRenderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	rp.p.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (rp *wgpuRenderPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	rp.p.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

func (rp *wgpuRenderPass) End() {
	rp.p.End()
}

// wgpuSurface implements Surface over *wgpu.Surface.
type wgpuSurface struct {
	s       *wgpu.Surface
	adapter *wgpu.Adapter
	device  *wgpu.Device
}

var _ Surface = &wgpuSurface{}

func (s *wgpuSurface) PreferredFormat() TextureFormat {
	caps := s.s.GetCapabilities(s.adapter)
	if len(caps.Formats) == 0 {
		return TextureFormatBGRA8Unorm
	}
	return fromWGPUTextureFormat(caps.Formats[0])
}

func (s *wgpuSurface) Configure(width, height int, mode PresentMode) {
	caps := s.s.GetCapabilities(s.adapter)
	presentMode := wgpu.PresentModeFifo
	if mode == PresentModeImmediate {
		presentMode = wgpu.PresentModeImmediate
	}
	s.s.Configure(s.adapter, s.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: presentMode,
		AlphaMode:   caps.AlphaModes[0],
	})
}

func (s *wgpuSurface) AcquireTexture() (Texture, error) {
	t, err := s.s.GetCurrentTexture()
	if err != nil {
		return nil, err
	}
	return &wgpuTexture{t: t}, nil
}

func (s *wgpuSurface) Present() {
	s.s.Present()
}

func (s *wgpuSurface) Release() {
	s.s.Release()
}

// Handle wrappers.

type wgpuBuffer struct {
	b    *wgpu.Buffer
	size uint64
}

func (b *wgpuBuffer) Size() uint64 { return b.size }

func (b *wgpuBuffer) MapReadAsync(callback func(err error)) {
	err := b.b.MapAsync(wgpu.MapModeRead, 0, b.size, func(status wgpu.BufferMapAsyncStatus) {
		if status != wgpu.BufferMapAsyncStatusSuccess {
			callback(fmt.Errorf("buffer map failed with status %v", status))
			return
		}
		callback(nil)
	})
	if err != nil {
		callback(err)
	}
}

func (b *wgpuBuffer) MappedRange(offset, size uint64) []byte {
	return b.b.GetMappedRange(uint(offset), uint(size))
}

func (b *wgpuBuffer) Unmap()   { b.b.Unmap() }
func (b *wgpuBuffer) Release() { b.b.Release() }

type wgpuTexture struct {
	t *wgpu.Texture
}

func (t *wgpuTexture) CreateView() (TextureView, error) {
	v, err := t.t.CreateView(nil)
	if err != nil {
		return nil, err
	}
	return &wgpuTextureView{v: v}, nil
}

func (t *wgpuTexture) Release() { t.t.Release() }

type wgpuTextureView struct {
	v *wgpu.TextureView
}

func (v *wgpuTextureView) Release() { v.v.Release() }

type wgpuSampler struct {
	s *wgpu.Sampler
}

func (s *wgpuSampler) Release() { s.s.Release() }

type wgpuShaderModule struct {
	m *wgpu.ShaderModule
}

func (m *wgpuShaderModule) Release() { m.m.Release() }

type wgpuBindGroupLayout struct {
	l *wgpu.BindGroupLayout
}

func (l *wgpuBindGroupLayout) Release() { l.l.Release() }

type wgpuBindGroup struct {
	g *wgpu.BindGroup
}

func (g *wgpuBindGroup) Release() { g.g.Release() }

type wgpuPipelineLayout struct {
	l *wgpu.PipelineLayout
}

func (l *wgpuPipelineLayout) Release() { l.l.Release() }

type wgpuRenderPipeline struct {
	p *wgpu.RenderPipeline
}

func (p *wgpuRenderPipeline) Release() { p.p.Release() }

type wgpuCommandBuffer struct {
	b *wgpu.CommandBuffer
}

func (b *wgpuCommandBuffer) Release() { b.b.Release() }

// Unwrap helpers. A nil interface unwraps to a nil wgpu pointer so optional
// descriptor fields pass through cleanly.

func unwrapBuffer(b Buffer) *wgpu.Buffer {
	if b == nil {
		return nil
	}
	return b.(*wgpuBuffer).b
}

func unwrapSampler(s Sampler) *wgpu.Sampler {
	if s == nil {
		return nil
	}
	return s.(*wgpuSampler).s
}

func unwrapTexture(t Texture) *wgpu.Texture {
	if t == nil {
		return nil
	}
	return t.(*wgpuTexture).t
}

func unwrapTextureView(v TextureView) *wgpu.TextureView {
	if v == nil {
		return nil
	}
	return v.(*wgpuTextureView).v
}

func unwrapBindGroupLayout(l BindGroupLayout) *wgpu.BindGroupLayout {
	if l == nil {
		return nil
	}
	return l.(*wgpuBindGroupLayout).l
}

func unwrapPipelineLayout(l PipelineLayout) *wgpu.PipelineLayout {
	if l == nil {
		return nil
	}
	return l.(*wgpuPipelineLayout).l
}

func unwrapShaderModule(m ShaderModule) *wgpu.ShaderModule {
	if m == nil {
		return nil
	}
	return m.(*wgpuShaderModule).m
}

// Enum conversions.

func toWGPUShaderStage(s ShaderStage) wgpu.ShaderStage {
	var out wgpu.ShaderStage
	if s&ShaderStageVertex != 0 {
		out |= wgpu.ShaderStageVertex
	}
	if s&ShaderStageFragment != 0 {
		out |= wgpu.ShaderStageFragment
	}
	if s&ShaderStageCompute != 0 {
		out |= wgpu.ShaderStageCompute
	}
	return out
}

func toWGPULayoutEntry(e BindGroupLayoutEntry) wgpu.BindGroupLayoutEntry {
	out := wgpu.BindGroupLayoutEntry{
		Binding:    e.Binding,
		Visibility: toWGPUShaderStage(e.Visibility),
	}
	switch {
	case e.Buffer != nil:
		switch e.Buffer.Type {
		case BufferBindingTypeStorage:
			out.Buffer.Type = wgpu.BufferBindingTypeStorage
		case BufferBindingTypeReadOnlyStorage:
			out.Buffer.Type = wgpu.BufferBindingTypeReadOnlyStorage
		default:
			out.Buffer.Type = wgpu.BufferBindingTypeUniform
		}
		out.Buffer.HasDynamicOffset = e.Buffer.HasDynamicOffset
	case e.Sampler != nil:
		switch e.Sampler.Type {
		case SamplerBindingTypeComparison:
			out.Sampler.Type = wgpu.SamplerBindingTypeComparison
		case SamplerBindingTypeNonFiltering:
			out.Sampler.Type = wgpu.SamplerBindingTypeNonFiltering
		default:
			out.Sampler.Type = wgpu.SamplerBindingTypeFiltering
		}
	case e.Texture != nil:
		switch e.Texture.SampleType {
		case TextureSampleTypeSint:
			out.Texture.SampleType = wgpu.TextureSampleTypeSint
		case TextureSampleTypeUint:
			out.Texture.SampleType = wgpu.TextureSampleTypeUint
		default:
			out.Texture.SampleType = wgpu.TextureSampleTypeFloat
		}
		out.Texture.ViewDimension = wgpu.TextureViewDimension2D
		out.Texture.Multisampled = e.Texture.Multisampled
	}
	return out
}

func toWGPUTextureFormat(f TextureFormat) wgpu.TextureFormat {
	switch f {
	case TextureFormatRGBA8Unorm:
		return wgpu.TextureFormatRGBA8Unorm
	case TextureFormatRGBA8UnormSrgb:
		return wgpu.TextureFormatRGBA8UnormSrgb
	case TextureFormatBGRA8Unorm:
		return wgpu.TextureFormatBGRA8Unorm
	case TextureFormatBGRA8UnormSrgb:
		return wgpu.TextureFormatBGRA8UnormSrgb
	default:
		return wgpu.TextureFormatUndefined
	}
}

func fromWGPUTextureFormat(f wgpu.TextureFormat) TextureFormat {
	switch f {
	case wgpu.TextureFormatRGBA8Unorm:
		return TextureFormatRGBA8Unorm
	case wgpu.TextureFormatRGBA8UnormSrgb:
		return TextureFormatRGBA8UnormSrgb
	case wgpu.TextureFormatBGRA8Unorm:
		return TextureFormatBGRA8Unorm
	case wgpu.TextureFormatBGRA8UnormSrgb:
		return TextureFormatBGRA8UnormSrgb
	default:
		return TextureFormatUndefined
	}
}

func toWGPUTextureUsage(u TextureUsage) wgpu.TextureUsage {
	var out wgpu.TextureUsage
	if u&TextureUsageCopySrc != 0 {
		out |= wgpu.TextureUsageCopySrc
	}
	if u&TextureUsageCopyDst != 0 {
		out |= wgpu.TextureUsageCopyDst
	}
	if u&TextureUsageTextureBinding != 0 {
		out |= wgpu.TextureUsageTextureBinding
	}
	if u&TextureUsageRenderAttachment != 0 {
		out |= wgpu.TextureUsageRenderAttachment
	}
	return out
}

func toWGPUBufferUsage(u BufferUsage) wgpu.BufferUsage {
	var out wgpu.BufferUsage
	if u&BufferUsageMapRead != 0 {
		out |= wgpu.BufferUsageMapRead
	}
	if u&BufferUsageCopySrc != 0 {
		out |= wgpu.BufferUsageCopySrc
	}
	if u&BufferUsageCopyDst != 0 {
		out |= wgpu.BufferUsageCopyDst
	}
	if u&BufferUsageIndex != 0 {
		out |= wgpu.BufferUsageIndex
	}
	if u&BufferUsageVertex != 0 {
		out |= wgpu.BufferUsageVertex
	}
	if u&BufferUsageUniform != 0 {
		out |= wgpu.BufferUsageUniform
	}
	if u&BufferUsageStorage != 0 {
		out |= wgpu.BufferUsageStorage
	}
	return out
}

func toWGPUVertexBufferLayout(vb VertexBufferLayout) wgpu.VertexBufferLayout {
	attrs := make([]wgpu.VertexAttribute, len(vb.Attributes))
	for i, a := range vb.Attributes {
		attrs[i] = wgpu.VertexAttribute{
			Format:         toWGPUVertexFormat(a.Format),
			Offset:         a.Offset,
			ShaderLocation: a.ShaderLocation,
		}
	}
	stepMode := wgpu.VertexStepModeVertex
	if vb.StepMode == VertexStepModeInstance {
		stepMode = wgpu.VertexStepModeInstance
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: vb.ArrayStride,
		StepMode:    stepMode,
		Attributes:  attrs,
	}
}

func toWGPUVertexFormat(f VertexFormat) wgpu.VertexFormat {
	switch f {
	case VertexFormatFloat32x2:
		return wgpu.VertexFormatFloat32x2
	case VertexFormatFloat32x3:
		return wgpu.VertexFormatFloat32x3
	case VertexFormatFloat32x4:
		return wgpu.VertexFormatFloat32x4
	case VertexFormatUint32:
		return wgpu.VertexFormatUint32
	case VertexFormatUint32x2:
		return wgpu.VertexFormatUint32x2
	default:
		return wgpu.VertexFormatFloat32
	}
}

func toWGPUTopology(t PrimitiveTopology) wgpu.PrimitiveTopology {
	if t == PrimitiveTopologyTriangleStrip {
		return wgpu.PrimitiveTopologyTriangleStrip
	}
	return wgpu.PrimitiveTopologyTriangleList
}

func toWGPUFrontFace(f FrontFace) wgpu.FrontFace {
	if f == FrontFaceCW {
		return wgpu.FrontFaceCW
	}
	return wgpu.FrontFaceCCW
}

func toWGPUCullMode(m CullMode) wgpu.CullMode {
	switch m {
	case CullModeFront:
		return wgpu.CullModeFront
	case CullModeBack:
		return wgpu.CullModeBack
	default:
		return wgpu.CullModeNone
	}
}

func toWGPUBlendState(b *BlendState) *wgpu.BlendState {
	if b == nil {
		return nil
	}
	return &wgpu.BlendState{
		Color: toWGPUBlendComponent(b.Color),
		Alpha: toWGPUBlendComponent(b.Alpha),
	}
}

func toWGPUBlendComponent(c BlendComponent) wgpu.BlendComponent {
	return wgpu.BlendComponent{
		SrcFactor: toWGPUBlendFactor(c.SrcFactor),
		DstFactor: toWGPUBlendFactor(c.DstFactor),
		Operation: wgpu.BlendOperationAdd,
	}
}

func toWGPUBlendFactor(f BlendFactor) wgpu.BlendFactor {
	switch f {
	case BlendFactorZero:
		return wgpu.BlendFactorZero
	case BlendFactorOne:
		return wgpu.BlendFactorOne
	case BlendFactorSrcAlpha:
		return wgpu.BlendFactorSrcAlpha
	case BlendFactorOneMinusSrcAlpha:
		return wgpu.BlendFactorOneMinusSrcAlpha
	default:
		return wgpu.BlendFactorOne
	}
}

func toWGPUAddressMode(m AddressMode) wgpu.AddressMode {
	if m == AddressModeRepeat {
		return wgpu.AddressModeRepeat
	}
	return wgpu.AddressModeClampToEdge
}

func toWGPUFilterMode(m FilterMode) wgpu.FilterMode {
	if m == FilterModeNearest {
		return wgpu.FilterModeNearest
	}
	return wgpu.FilterModeLinear
}

func toWGPULoadOp(op LoadOp) wgpu.LoadOp {
	if op == LoadOpLoad {
		return wgpu.LoadOpLoad
	}
	return wgpu.LoadOpClear
}

func toWGPUStoreOp(op StoreOp) wgpu.StoreOp {
	if op == StoreOpDiscard {
		return wgpu.StoreOpDiscard
	}
	return wgpu.StoreOpStore
}
