package gpu

// ShaderStage is a bitmask identifying which shader stages can see a resource.
type ShaderStage uint32

const (
	// ShaderStageNone marks a resource as invisible to all stages.
	ShaderStageNone ShaderStage = 0

	// ShaderStageVertex makes a resource visible to vertex shaders.
	ShaderStageVertex ShaderStage = 1 << 0

	// ShaderStageFragment makes a resource visible to fragment shaders.
	ShaderStageFragment ShaderStage = 1 << 1

	// ShaderStageCompute makes a resource visible to compute shaders.
	ShaderStageCompute ShaderStage = 1 << 2

	// ShaderStageAll makes a resource visible to every stage.
	ShaderStageAll = ShaderStageVertex | ShaderStageFragment | ShaderStageCompute
)

// TextureFormat identifies the texel layout of a texture.
type TextureFormat int

const (
	// TextureFormatUndefined is the zero value; no format selected.
	TextureFormatUndefined TextureFormat = iota

	// TextureFormatRGBA8Unorm is 8-bit RGBA, linear.
	TextureFormatRGBA8Unorm

	// TextureFormatRGBA8UnormSrgb is 8-bit RGBA with sRGB transfer. Used for
	// offscreen capture targets and texture atlases.
	TextureFormatRGBA8UnormSrgb

	// TextureFormatBGRA8Unorm is 8-bit BGRA, linear. A common swapchain format.
	TextureFormatBGRA8Unorm

	// TextureFormatBGRA8UnormSrgb is 8-bit BGRA with sRGB transfer.
	TextureFormatBGRA8UnormSrgb
)

// TextureUsage is a bitmask of allowed texture uses.
type TextureUsage uint32

const (
	// TextureUsageCopySrc allows the texture to be the source of a copy.
	TextureUsageCopySrc TextureUsage = 1 << iota

	// TextureUsageCopyDst allows the texture to be the destination of a copy.
	TextureUsageCopyDst

	// TextureUsageTextureBinding allows sampling the texture from shaders.
	TextureUsageTextureBinding

	// TextureUsageRenderAttachment allows rendering into the texture.
	TextureUsageRenderAttachment
)

// BufferUsage is a bitmask of allowed buffer uses.
type BufferUsage uint32

const (
	// BufferUsageMapRead allows mapping the buffer for CPU reads.
	BufferUsageMapRead BufferUsage = 1 << iota

	// BufferUsageCopySrc allows the buffer to be the source of a copy.
	BufferUsageCopySrc

	// BufferUsageCopyDst allows the buffer to be the destination of a copy
	// or queue write.
	BufferUsageCopyDst

	// BufferUsageIndex allows binding the buffer as an index buffer.
	BufferUsageIndex

	// BufferUsageVertex allows binding the buffer as a vertex buffer.
	BufferUsageVertex

	// BufferUsageUniform allows binding the buffer as a uniform.
	BufferUsageUniform

	// BufferUsageStorage allows binding the buffer as a storage buffer.
	BufferUsageStorage
)

// BufferBindingType identifies how a buffer binding is accessed by shaders.
type BufferBindingType int

const (
	// BufferBindingTypeUniform is a read-only uniform buffer binding.
	BufferBindingTypeUniform BufferBindingType = iota

	// BufferBindingTypeStorage is a read-write storage buffer binding.
	BufferBindingTypeStorage

	// BufferBindingTypeReadOnlyStorage is a read-only storage buffer binding.
	BufferBindingTypeReadOnlyStorage
)

// SamplerBindingType identifies the sampler flavor a binding expects.
type SamplerBindingType int

const (
	// SamplerBindingTypeFiltering is a sampler that may use linear filtering.
	SamplerBindingTypeFiltering SamplerBindingType = iota

	// SamplerBindingTypeNonFiltering is a sampler restricted to nearest filtering.
	SamplerBindingTypeNonFiltering

	// SamplerBindingTypeComparison is a comparison sampler.
	SamplerBindingTypeComparison
)

// TextureSampleType identifies how a sampled texture binding is read.
type TextureSampleType int

const (
	// TextureSampleTypeFloat is a filterable float texture.
	TextureSampleTypeFloat TextureSampleType = iota

	// TextureSampleTypeUnfilterableFloat is a float texture that cannot be filtered.
	TextureSampleTypeUnfilterableFloat

	// TextureSampleTypeSint is a signed integer texture.
	TextureSampleTypeSint

	// TextureSampleTypeUint is an unsigned integer texture.
	TextureSampleTypeUint
)

// BufferBindingLayout describes a buffer slot in a bind group layout.
type BufferBindingLayout struct {
	// Type is the buffer access mode for this slot.
	Type BufferBindingType

	// HasDynamicOffset enables per-draw dynamic offsets for this slot.
	HasDynamicOffset bool

	// MinBindingSize is the minimum buffer size the shader requires, or 0
	// to defer validation to draw time.
	MinBindingSize uint64
}

// SamplerBindingLayout describes a sampler slot in a bind group layout.
type SamplerBindingLayout struct {
	// Type is the sampler flavor for this slot.
	Type SamplerBindingType
}

// TextureBindingLayout describes a sampled texture slot in a bind group layout.
type TextureBindingLayout struct {
	// SampleType is how the shader reads the texture.
	SampleType TextureSampleType

	// Multisampled is true for multisampled texture bindings.
	Multisampled bool
}

// BindGroupLayoutEntry describes one slot of a bind group layout: its binding
// index, stage visibility, and resource kind. Exactly one of Buffer, Sampler,
// or Texture must be non-nil.
type BindGroupLayoutEntry struct {
	// Binding is the slot index. Drawable references leave this zero; the
	// drawable pipeline assigns it from declaration order.
	Binding uint32

	// Visibility is the set of shader stages that can see this slot.
	Visibility ShaderStage

	// Buffer is set for buffer slots.
	Buffer *BufferBindingLayout

	// Sampler is set for sampler slots.
	Sampler *SamplerBindingLayout

	// Texture is set for sampled texture slots.
	Texture *TextureBindingLayout
}

// BindGroupLayoutDescriptor describes a bind group layout to be created.
type BindGroupLayoutDescriptor struct {
	// Label is a debug label.
	Label string

	// Entries are the slots of the layout, one per binding index.
	Entries []BindGroupLayoutEntry
}

// WholeSize passed as a binding or buffer size means "to the end of the buffer".
const WholeSize = ^uint64(0)

// BindGroupEntry describes one concrete resource satisfying a layout slot.
// Exactly one of Buffer, Sampler, or TextureView must be non-nil.
type BindGroupEntry struct {
	// Binding is the slot index. Drawable references leave this zero; the
	// drawable pipeline assigns it from declaration order.
	Binding uint32

	// Buffer is the bound buffer for buffer slots.
	Buffer Buffer

	// Offset is the byte offset into Buffer.
	Offset uint64

	// Size is the bound byte range of Buffer, or WholeSize.
	Size uint64

	// Sampler is the bound sampler for sampler slots.
	Sampler Sampler

	// TextureView is the bound view for texture slots.
	TextureView TextureView
}

// BindGroupDescriptor describes a bind group to be created.
type BindGroupDescriptor struct {
	// Label is a debug label.
	Label string

	// Layout is the layout the group must satisfy.
	Layout BindGroupLayout

	// Entries are the concrete resources, one per layout slot.
	Entries []BindGroupEntry
}

// PushConstantRange declares a byte range of push constant space visible to
// a set of shader stages.
type PushConstantRange struct {
	// Stages is the set of stages that can read the range.
	Stages ShaderStage

	// Start is the first byte of the range.
	Start uint32

	// End is one past the last byte of the range.
	End uint32
}

// PipelineLayoutDescriptor describes a pipeline layout to be created.
type PipelineLayoutDescriptor struct {
	// Label is a debug label.
	Label string

	// BindGroupLayouts are the group layouts in group-index order.
	BindGroupLayouts []BindGroupLayout

	// PushConstantRanges are the declared push constant ranges.
	PushConstantRanges []PushConstantRange
}

// VertexFormat identifies the component layout of one vertex attribute.
type VertexFormat int

const (
	// VertexFormatFloat32 is a single 32-bit float.
	VertexFormatFloat32 VertexFormat = iota

	// VertexFormatFloat32x2 is two 32-bit floats.
	VertexFormatFloat32x2

	// VertexFormatFloat32x3 is three 32-bit floats.
	VertexFormatFloat32x3

	// VertexFormatFloat32x4 is four 32-bit floats.
	VertexFormatFloat32x4

	// VertexFormatUint32 is a single 32-bit unsigned integer.
	VertexFormatUint32

	// VertexFormatUint32x2 is two 32-bit unsigned integers.
	VertexFormatUint32x2
)

// VertexStepMode controls whether a vertex buffer advances per vertex or
// per instance.
type VertexStepMode int

const (
	// VertexStepModeVertex advances the buffer once per vertex.
	VertexStepModeVertex VertexStepMode = iota

	// VertexStepModeInstance advances the buffer once per instance.
	VertexStepModeInstance
)

// VertexAttribute describes one attribute within a vertex buffer layout.
type VertexAttribute struct {
	// Format is the attribute's component layout.
	Format VertexFormat

	// Offset is the attribute's byte offset within one element.
	Offset uint64

	// ShaderLocation is the @location index the attribute feeds.
	ShaderLocation uint32
}

// VertexBufferLayout describes the element stride, step mode, and attributes
// of one vertex buffer slot.
type VertexBufferLayout struct {
	// ArrayStride is the byte stride between elements.
	ArrayStride uint64

	// StepMode selects per-vertex or per-instance stepping.
	StepMode VertexStepMode

	// Attributes are the attributes read from this buffer.
	Attributes []VertexAttribute
}

// IndexFormat identifies the width of index buffer entries.
type IndexFormat int

const (
	// IndexFormatUint16 is 16-bit indices.
	IndexFormatUint16 IndexFormat = iota

	// IndexFormatUint32 is 32-bit indices.
	IndexFormatUint32
)

// PrimitiveTopology identifies how vertices are assembled into primitives.
type PrimitiveTopology int

const (
	// PrimitiveTopologyTriangleList assembles independent triangles.
	PrimitiveTopologyTriangleList PrimitiveTopology = iota

	// PrimitiveTopologyTriangleStrip assembles a triangle strip.
	PrimitiveTopologyTriangleStrip
)

// FrontFace identifies the winding order of front-facing triangles.
type FrontFace int

const (
	// FrontFaceCCW treats counter-clockwise triangles as front-facing.
	FrontFaceCCW FrontFace = iota

	// FrontFaceCW treats clockwise triangles as front-facing.
	FrontFaceCW
)

// CullMode identifies which triangle faces are discarded.
type CullMode int

const (
	// CullModeNone disables culling.
	CullModeNone CullMode = iota

	// CullModeFront discards front-facing triangles.
	CullModeFront

	// CullModeBack discards back-facing triangles.
	CullModeBack
)

// ColorWriteMask is a bitmask of color channels written by a pipeline.
type ColorWriteMask uint32

const (
	// ColorWriteMaskAll writes every channel.
	ColorWriteMaskAll ColorWriteMask = 0xF
)

// BlendFactor identifies one operand scale of a blend equation.
type BlendFactor int

const (
	// BlendFactorZero scales the operand by zero.
	BlendFactorZero BlendFactor = iota

	// BlendFactorOne scales the operand by one.
	BlendFactorOne

	// BlendFactorSrcAlpha scales the operand by source alpha.
	BlendFactorSrcAlpha

	// BlendFactorOneMinusSrcAlpha scales the operand by 1 - source alpha.
	BlendFactorOneMinusSrcAlpha
)

// BlendOperation identifies how the scaled operands are combined.
type BlendOperation int

const (
	// BlendOperationAdd sums the scaled operands.
	BlendOperationAdd BlendOperation = iota
)

// BlendComponent describes the blend equation for one channel group.
type BlendComponent struct {
	// SrcFactor scales the incoming fragment value.
	SrcFactor BlendFactor

	// DstFactor scales the existing attachment value.
	DstFactor BlendFactor

	// Operation combines the two scaled values.
	Operation BlendOperation
}

// BlendState describes blending for color and alpha channels.
type BlendState struct {
	// Color is the blend equation for the RGB channels.
	Color BlendComponent

	// Alpha is the blend equation for the alpha channel.
	Alpha BlendComponent
}

// BlendStateAlphaBlending returns the standard premultiplication-free alpha
// blend: src*alpha + dst*(1-alpha) for color, src + dst*(1-alpha) for alpha.
//
// Returns:
//   - *BlendState: the alpha blending configuration
func BlendStateAlphaBlending() *BlendState {
	return &BlendState{
		Color: BlendComponent{
			SrcFactor: BlendFactorSrcAlpha,
			DstFactor: BlendFactorOneMinusSrcAlpha,
			Operation: BlendOperationAdd,
		},
		Alpha: BlendComponent{
			SrcFactor: BlendFactorOne,
			DstFactor: BlendFactorOneMinusSrcAlpha,
			Operation: BlendOperationAdd,
		},
	}
}

// ColorTargetState describes one color attachment a pipeline renders to.
type ColorTargetState struct {
	// Format is the attachment's texture format.
	Format TextureFormat

	// Blend is the blend state, or nil to disable blending.
	Blend *BlendState

	// WriteMask selects the channels written.
	WriteMask ColorWriteMask
}

// VertexState is the vertex stage configuration of a render pipeline.
type VertexState struct {
	// Module is the compiled vertex shader module.
	Module ShaderModule

	// EntryPoint is the shader entry function name.
	EntryPoint string

	// Buffers are the vertex buffer layouts in slot order.
	Buffers []VertexBufferLayout
}

// FragmentState is the fragment stage configuration of a render pipeline.
type FragmentState struct {
	// Module is the compiled fragment shader module.
	Module ShaderModule

	// EntryPoint is the shader entry function name.
	EntryPoint string

	// Targets are the color attachments written.
	Targets []ColorTargetState
}

// PrimitiveState is the primitive assembly configuration of a render pipeline.
type PrimitiveState struct {
	// Topology selects how vertices form primitives.
	Topology PrimitiveTopology

	// FrontFace selects the front-facing winding order.
	FrontFace FrontFace

	// CullMode selects which faces are discarded.
	CullMode CullMode
}

// MultisampleState is the multisampling configuration of a render pipeline.
type MultisampleState struct {
	// Count is the sample count. 1 disables multisampling.
	Count uint32

	// Mask is the sample mask. 0xFFFFFFFF enables all samples.
	Mask uint32
}

// RenderPipelineDescriptor describes a render pipeline to be created.
type RenderPipelineDescriptor struct {
	// Label is a debug label.
	Label string

	// Layout is the pipeline layout.
	Layout PipelineLayout

	// Vertex is the vertex stage configuration.
	Vertex VertexState

	// Fragment is the fragment stage configuration, or nil for depth-only
	// pipelines.
	Fragment *FragmentState

	// Primitive is the primitive assembly configuration.
	Primitive PrimitiveState

	// Multisample is the multisampling configuration.
	Multisample MultisampleState
}

// Color is a double-precision RGBA clear color.
type Color struct {
	R, G, B, A float64
}

// LoadOp identifies what happens to an attachment at pass begin.
type LoadOp int

const (
	// LoadOpClear clears the attachment to the clear value.
	LoadOpClear LoadOp = iota

	// LoadOpLoad preserves the attachment's existing contents.
	LoadOpLoad
)

// StoreOp identifies what happens to an attachment at pass end.
type StoreOp int

const (
	// StoreOpStore writes the pass results to the attachment.
	StoreOpStore StoreOp = iota

	// StoreOpDiscard drops the pass results (used for MSAA textures whose
	// resolved output is all that matters).
	StoreOpDiscard
)

// RenderPassColorAttachment describes one color attachment of a render pass.
type RenderPassColorAttachment struct {
	// View is the texture view rendered into.
	View TextureView

	// ResolveTarget receives the resolved output of a multisampled View,
	// or nil when View is single-sampled.
	ResolveTarget TextureView

	// LoadOp selects clear or load at pass begin.
	LoadOp LoadOp

	// StoreOp selects store or discard at pass end.
	StoreOp StoreOp

	// ClearValue is the clear color used with LoadOpClear.
	ClearValue Color
}

// RenderPassDescriptor describes a render pass to be begun.
type RenderPassDescriptor struct {
	// Label is a debug label.
	Label string

	// ColorAttachments are the pass's color attachments.
	ColorAttachments []RenderPassColorAttachment
}

// TextureDescriptor describes a 2D texture to be created.
type TextureDescriptor struct {
	// Label is a debug label.
	Label string

	// Width is the texture width in texels.
	Width uint32

	// Height is the texture height in texels.
	Height uint32

	// MipLevelCount is the number of mip levels. Use 1 for no mipmaps.
	MipLevelCount uint32

	// SampleCount is the multisample count. Use 1 for no multisampling.
	SampleCount uint32

	// Format is the texel format.
	Format TextureFormat

	// Usage is the set of allowed uses.
	Usage TextureUsage
}

// BufferDescriptor describes a buffer to be created.
type BufferDescriptor struct {
	// Label is a debug label.
	Label string

	// Size is the buffer size in bytes.
	Size uint64

	// Usage is the set of allowed uses.
	Usage BufferUsage
}

// AddressMode identifies how texture coordinates outside [0, 1] are handled.
type AddressMode int

const (
	// AddressModeClampToEdge clamps coordinates to the edge texel.
	AddressModeClampToEdge AddressMode = iota

	// AddressModeRepeat wraps coordinates.
	AddressModeRepeat
)

// FilterMode identifies a sampler filter.
type FilterMode int

const (
	// FilterModeNearest picks the nearest texel.
	FilterModeNearest FilterMode = iota

	// FilterModeLinear interpolates between texels.
	FilterModeLinear
)

// SamplerDescriptor describes a sampler to be created.
type SamplerDescriptor struct {
	// Label is a debug label.
	Label string

	// AddressModeU and AddressModeV control coordinate wrapping.
	AddressModeU, AddressModeV AddressMode

	// MagFilter and MinFilter control magnification and minification filtering.
	MagFilter, MinFilter FilterMode
}

// TexelCopyTexture identifies the texture side of a texture copy.
type TexelCopyTexture struct {
	// Texture is the texture copied from or to.
	Texture Texture

	// MipLevel is the mip level accessed.
	MipLevel uint32

	// OriginX and OriginY are the texel origin of the copy region.
	OriginX, OriginY uint32
}

// TexelCopyBufferLayout describes the memory layout of texel rows in a buffer.
type TexelCopyBufferLayout struct {
	// Offset is the byte offset of the first texel.
	Offset uint64

	// BytesPerRow is the byte stride between rows. Buffer copies require this
	// to be a multiple of CopyBytesPerRowAlignment.
	BytesPerRow uint32

	// RowsPerImage is the number of rows per image layer.
	RowsPerImage uint32
}

// TexelCopyBuffer identifies the buffer side of a texture copy.
type TexelCopyBuffer struct {
	// Buffer is the buffer copied from or to.
	Buffer Buffer

	// Layout describes the row layout within the buffer.
	Layout TexelCopyBufferLayout
}

// Extent3D is a copy or texture extent in texels.
type Extent3D struct {
	// Width and Height are the 2D extent.
	Width, Height uint32

	// DepthOrArrayLayers is the depth or array layer count. Use 1 for 2D.
	DepthOrArrayLayers uint32
}

// CopyBytesPerRowAlignment is the required row alignment, in bytes, for
// texture-to-buffer copies.
const CopyBytesPerRowAlignment = 256

// PresentMode controls how a surface presents frames to the display.
type PresentMode int

const (
	// PresentModeFifo waits for vertical blank (vsync).
	PresentModeFifo PresentMode = iota

	// PresentModeImmediate presents without waiting; may tear.
	PresentModeImmediate
)
