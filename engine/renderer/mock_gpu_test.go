package renderer

import (
	"fmt"
	"testing/fstest"

	"github.com/fredizzimo/vide/engine/renderer/gpu"
	"github.com/fredizzimo/vide/engine/renderer/shader"
	"github.com/fredizzimo/vide/engine/scene"
)

// recorder collects GPU call descriptions in issue order so tests can assert
// on exact command sequences.
type recorder struct {
	log []string
}

func (r *recorder) record(format string, args ...any) {
	r.log = append(r.log, fmt.Sprintf(format, args...))
}

type mockDevice struct {
	rec *recorder

	bindGroupLayoutErr error
	bindGroupErr       error
	pipelineErr        error

	textures    int
	pipelines   int
	bufferSizes []uint64
}

var _ gpu.Device = &mockDevice{}

func newMockDevice() *mockDevice {
	return &mockDevice{rec: &recorder{}}
}

func (d *mockDevice) CreateShaderModule(label, source string) (gpu.ShaderModule, error) {
	return &mockHandle{}, nil
}

func (d *mockDevice) CreateBindGroupLayout(desc *gpu.BindGroupLayoutDescriptor) (gpu.BindGroupLayout, error) {
	if d.bindGroupLayoutErr != nil {
		return nil, d.bindGroupLayoutErr
	}
	return &mockBindGroupLayout{entries: desc.Entries}, nil
}

func (d *mockDevice) CreateBindGroup(desc *gpu.BindGroupDescriptor) (gpu.BindGroup, error) {
	if d.bindGroupErr != nil {
		return nil, d.bindGroupErr
	}
	return &mockBindGroup{label: desc.Label, entries: desc.Entries}, nil
}

func (d *mockDevice) CreatePipelineLayout(desc *gpu.PipelineLayoutDescriptor) (gpu.PipelineLayout, error) {
	return &mockHandle{}, nil
}

func (d *mockDevice) CreateRenderPipeline(desc *gpu.RenderPipelineDescriptor) (gpu.RenderPipeline, error) {
	if d.pipelineErr != nil {
		return nil, d.pipelineErr
	}
	d.pipelines++
	return &mockPipeline{label: desc.Label, vertexBuffers: desc.Vertex.Buffers}, nil
}

func (d *mockDevice) CreateBuffer(desc *gpu.BufferDescriptor) (gpu.Buffer, error) {
	d.bufferSizes = append(d.bufferSizes, desc.Size)
	return &mockBuffer{size: desc.Size}, nil
}

func (d *mockDevice) CreateTexture(desc *gpu.TextureDescriptor) (gpu.Texture, error) {
	d.textures++
	return &mockTexture{}, nil
}

func (d *mockDevice) CreateSampler(desc *gpu.SamplerDescriptor) (gpu.Sampler, error) {
	return &mockSampler{}, nil
}

func (d *mockDevice) CreateCommandEncoder(label string) (gpu.CommandEncoder, error) {
	return &mockEncoder{rec: d.rec}, nil
}

func (d *mockDevice) Poll(wait bool) {}
func (d *mockDevice) Release()       {}

type mockQueue struct {
	rec *recorder
}

var _ gpu.Queue = &mockQueue{}

func (q *mockQueue) WriteBuffer(buf gpu.Buffer, offset uint64, data []byte) {
	q.rec.record("WriteBuffer %d bytes at %d", len(data), offset)
}

func (q *mockQueue) WriteTexture(dst *gpu.TexelCopyTexture, data []byte, layout *gpu.TexelCopyBufferLayout, size gpu.Extent3D) {
	q.rec.record("WriteTexture %dx%d at %d,%d", size.Width, size.Height, dst.OriginX, dst.OriginY)
}

func (q *mockQueue) Submit(commands ...gpu.CommandBuffer) {
	q.rec.record("Submit")
}

type mockEncoder struct {
	rec *recorder
}

var _ gpu.CommandEncoder = &mockEncoder{}

func (e *mockEncoder) BeginRenderPass(desc *gpu.RenderPassDescriptor) gpu.RenderPass {
	return &mockPass{rec: e.rec}
}

func (e *mockEncoder) CopyTextureToBuffer(src *gpu.TexelCopyTexture, dst *gpu.TexelCopyBuffer, size gpu.Extent3D) {
	e.rec.record("CopyTextureToBuffer %dx%d", size.Width, size.Height)
}

func (e *mockEncoder) Finish() (gpu.CommandBuffer, error) {
	return &mockHandle{}, nil
}

func (e *mockEncoder) Release() {}

type mockPass struct {
	rec *recorder
}

var _ gpu.RenderPass = &mockPass{}

func (p *mockPass) SetPipeline(pl gpu.RenderPipeline) {
	p.rec.record("SetPipeline %s", pl.(*mockPipeline).label)
}

func (p *mockPass) SetPushConstants(stages gpu.ShaderStage, offset uint32, data []byte) {
	p.rec.record("SetPushConstants %d bytes", len(data))
}

func (p *mockPass) SetBindGroup(index uint32, group gpu.BindGroup, dynamicOffsets []uint32) {
	p.rec.record("SetBindGroup %d %s", index, group.(*mockBindGroup).label)
}

func (p *mockPass) SetVertexBuffer(slot uint32, buf gpu.Buffer) {
	p.rec.record("SetVertexBuffer %d", slot)
}

func (p *mockPass) SetIndexBuffer(buf gpu.Buffer, format gpu.IndexFormat) {
	p.rec.record("SetIndexBuffer")
}

func (p *mockPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.rec.record("Draw %d %d", vertexCount, instanceCount)
}

func (p *mockPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.rec.record("DrawIndexed %d %d", indexCount, instanceCount)
}

func (p *mockPass) End() {}

// Handle types. mockPipeline tracks release so tests can verify a working
// pipeline survives a failed retry.

type mockHandle struct{}

func (*mockHandle) Release() {}

type mockBindGroupLayout struct {
	entries []gpu.BindGroupLayoutEntry
}

func (*mockBindGroupLayout) Release() {}

type mockBindGroup struct {
	label   string
	entries []gpu.BindGroupEntry
}

func (*mockBindGroup) Release() {}

type mockPipeline struct {
	label         string
	vertexBuffers []gpu.VertexBufferLayout
	released      bool
}

func (p *mockPipeline) Release() { p.released = true }

type mockBuffer struct {
	size uint64
	data []byte
}

func (b *mockBuffer) Size() uint64 { return b.size }

func (b *mockBuffer) MapReadAsync(callback func(err error)) {
	callback(nil)
}

func (b *mockBuffer) MappedRange(offset, size uint64) []byte {
	if b.data == nil {
		b.data = make([]byte, b.size)
	}
	return b.data[offset : offset+size]
}

func (b *mockBuffer) Unmap()   {}
func (b *mockBuffer) Release() {}

type mockTexture struct {
	viewErr  error
	released bool
}

func (t *mockTexture) CreateView() (gpu.TextureView, error) {
	if t.viewErr != nil {
		return nil, t.viewErr
	}
	return &mockHandle{}, nil
}

func (t *mockTexture) Release() { t.released = true }

type mockSampler struct{}

func (*mockSampler) Release() {}

type mockSurface struct {
	rec        *recorder
	acquireErr error
	viewErr    error
	lastFrame  *mockTexture
}

var _ gpu.Surface = &mockSurface{}

func (s *mockSurface) PreferredFormat() gpu.TextureFormat {
	return gpu.TextureFormatBGRA8Unorm
}

func (s *mockSurface) Configure(width, height int, mode gpu.PresentMode) {
	s.rec.record("Configure %dx%d", width, height)
}

func (s *mockSurface) AcquireTexture() (gpu.Texture, error) {
	if s.acquireErr != nil {
		return nil, s.acquireErr
	}
	s.lastFrame = &mockTexture{viewErr: s.viewErr}
	return s.lastFrame, nil
}

func (s *mockSurface) Present() {
	s.rec.record("Present")
}

func (s *mockSurface) Release() {}

// Test drawables and references.

type stubReference struct {
	BaseReference
	layout *gpu.BindGroupLayoutEntry
	entry  *gpu.BindGroupEntry
	vertex *gpu.VertexBufferLayout
}

func (r *stubReference) Layout() *gpu.BindGroupLayoutEntry { return r.layout }
func (r *stubReference) Entry() *gpu.BindGroupEntry        { return r.entry }
func (r *stubReference) Vertex() *gpu.VertexBufferLayout   { return r.vertex }

func textureReference() *stubReference {
	return &stubReference{
		layout: &gpu.BindGroupLayoutEntry{
			Visibility: gpu.ShaderStageFragment,
			Texture:    &gpu.TextureBindingLayout{SampleType: gpu.TextureSampleTypeFloat},
		},
		entry: &gpu.BindGroupEntry{TextureView: &mockHandle{}},
	}
}

func bufferReference() *stubReference {
	return &stubReference{
		layout: &gpu.BindGroupLayoutEntry{
			Visibility: gpu.ShaderStageVertex,
			Buffer:     &gpu.BufferBindingLayout{Type: gpu.BufferBindingTypeReadOnlyStorage},
		},
		entry: &gpu.BindGroupEntry{Buffer: &mockBuffer{size: 64}, Size: gpu.WholeSize},
	}
}

type stubDrawable struct {
	name  string
	refs  []Reference
	emit  func(pass gpu.RenderPass)
	drawn int
}

func (d *stubDrawable) Name() string            { return d.name }
func (d *stubDrawable) References() []Reference { return d.refs }

func (d *stubDrawable) Draw(queue gpu.Queue, pass gpu.RenderPass, constants ShaderConstants, resources scene.Resources, layer *scene.Layer) {
	d.drawn++
	if d.emit != nil {
		d.emit(pass)
	}
}

// shaderFS builds a file system with a vertex/fragment pair per name.
func shaderFS(names ...string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for _, name := range names {
		fsys[name+".vert.wgsl"] = &fstest.MapFile{Data: []byte("// vert")}
		fsys[name+".frag.wgsl"] = &fstest.MapFile{Data: []byte("// frag")}
	}
	return fsys
}

func newTestModules(device gpu.Device, names ...string) shader.Modules {
	return shader.NewModules(device, shaderFS(names...))
}
